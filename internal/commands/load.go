package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"xqr/editor"
	"xqr/internal/session"
)

// LoadCommand opens a file and records it as the session's current
// file, so later commands can omit the file argument.
type LoadCommand struct {
	Meta
}

func (c *LoadCommand) Run(args []string) int {
	cmdFlags := c.flagSet("load")
	cmdFlags.Usage = func() { c.Ui.Error(c.Help()) }
	if err := cmdFlags.Parse(args); err != nil {
		c.Ui.Error(fmt.Sprintf("Error parsing command-line flags: %s", err))
		return 1
	}
	args = cmdFlags.Args()
	if len(args) != 1 {
		c.Ui.Error(c.Help())
		return 1
	}

	path, err := filepath.Abs(args[0])
	if err != nil {
		c.failf("Error loading file: %s", err)
		return 1
	}
	if _, err := os.Stat(path); err != nil {
		c.failf("File not found: %s", args[0])
		return 1
	}

	ed, err := editor.Open(path)
	if err != nil {
		c.failf("Error loading file: %s", err)
		return 1
	}

	ctx := context.Background()
	state := session.State{CurrentFile: path, UpdatedAt: time.Now().UTC()}
	if err := c.Store.Save(ctx, state); err != nil {
		c.failf("Error saving session: %s", err)
		return 1
	}

	c.successf("Loaded %s (%s)", args[0], ed.Type())
	return 0
}

func (c *LoadCommand) Help() string {
	helpText := `
Usage: xqr load <file>

  Load an XML, HTML or SVG file and remember it as the current file.
  Subsequent commands like query, set and ls operate on it until
  another file is loaded.
`
	return strings.TrimSpace(helpText)
}

func (c *LoadCommand) Synopsis() string {
	return "Load a file for editing"
}
