package commands

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"xqr/document"
)

// StateCommand shows or clears the persisted session.
type StateCommand struct {
	Meta
}

func (c *StateCommand) Run(args []string) int {
	var clear bool
	cmdFlags := c.flagSet("state")
	cmdFlags.Usage = func() { c.Ui.Error(c.Help()) }
	cmdFlags.BoolVar(&clear, "clear", false, "forget the current file")
	if err := cmdFlags.Parse(args); err != nil {
		c.Ui.Error(fmt.Sprintf("Error parsing command-line flags: %s", err))
		return 1
	}
	if len(cmdFlags.Args()) > 0 {
		c.Ui.Error(c.Help())
		return 1
	}

	ctx := context.Background()
	if clear {
		if err := c.Store.Clear(ctx); err != nil {
			c.failf("Error clearing session: %s", err)
			return 1
		}
		c.successf("Session cleared")
		return 0
	}

	state, err := c.Store.Load(ctx)
	if err != nil {
		c.failf("Error loading session: %s", err)
		return 1
	}
	if state.CurrentFile == "" {
		c.failf("No file loaded")
		return 1
	}

	c.Ui.Output(fmt.Sprintf("📁 File: %s", state.CurrentFile))
	if content, err := os.ReadFile(state.CurrentFile); err == nil {
		c.Ui.Output(fmt.Sprintf("📄 Type: %s", document.DetectType(state.CurrentFile, content)))
	} else {
		c.Ui.Output("📄 Type: unknown (file missing)")
	}
	if !state.UpdatedAt.IsZero() {
		c.Ui.Output(fmt.Sprintf("   Loaded: %s", state.UpdatedAt.Format(time.RFC3339)))
	}
	return 0
}

func (c *StateCommand) Help() string {
	helpText := `
Usage: xqr state [options]

  Show the persisted session: which file is loaded and when. Commands
  like query and set operate on this file.

Options:

  -clear    Forget the current file.
`
	return strings.TrimSpace(helpText)
}

func (c *StateCommand) Synopsis() string {
	return "Show or clear the persisted session"
}
