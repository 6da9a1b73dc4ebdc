package commands

import (
	"context"
	"fmt"
	"strings"
)

// SaveCommand writes the current file back to disk, or to another path.
type SaveCommand struct {
	Meta
}

func (c *SaveCommand) Run(args []string) int {
	var output string
	cmdFlags := c.flagSet("save")
	cmdFlags.Usage = func() { c.Ui.Error(c.Help()) }
	cmdFlags.StringVar(&output, "output", "", "output file path")
	cmdFlags.StringVar(&output, "o", "", "output file path")
	if err := cmdFlags.Parse(args); err != nil {
		c.Ui.Error(fmt.Sprintf("Error parsing command-line flags: %s", err))
		return 1
	}
	if len(cmdFlags.Args()) > 0 {
		c.Ui.Error(c.Help())
		return 1
	}

	ed, ok := c.requireEditor(context.Background())
	if !ok {
		return 1
	}

	if err := ed.Save(output); err != nil {
		c.failf("Error saving file: %s", err)
		return 1
	}
	target := output
	if target == "" {
		target = ed.Path()
	}
	c.successf("Saved to %s", target)
	return 0
}

func (c *SaveCommand) Help() string {
	helpText := `
Usage: xqr save [options]

  Save the current file. Without -output the source file is
  overwritten.

Options:

  -output=path    Write to this path instead of the source file.
                  Also available as -o.
`
	return strings.TrimSpace(helpText)
}

func (c *SaveCommand) Synopsis() string {
	return "Save the current file"
}
