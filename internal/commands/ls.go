package commands

import (
	"context"
	"fmt"
	"strings"
)

// LsCommand lists elements matching an XPath expression with their
// attributes, a text preview and child counts.
type LsCommand struct {
	Meta
}

func (c *LsCommand) Run(args []string) int {
	cmdFlags := c.flagSet("ls")
	cmdFlags.Usage = func() { c.Ui.Error(c.Help()) }
	if err := cmdFlags.Parse(args); err != nil {
		c.Ui.Error(fmt.Sprintf("Error parsing command-line flags: %s", err))
		return 1
	}
	args = cmdFlags.Args()
	expr := "//*"
	if len(args) > 0 {
		expr = args[0]
	}

	ed, ok := c.requireEditor(context.Background())
	if !ok {
		return 1
	}

	infos, err := ed.ListElements(expr)
	if err != nil {
		c.failf("Error listing elements: %s", err)
		return 1
	}
	if len(infos) == 0 {
		c.failf("No elements found matching XPath: %s", expr)
		return 0
	}

	c.Ui.Output(fmt.Sprintf("Found %d element(s) matching '%s':\n", len(infos), expr))
	for i, info := range infos {
		var attrs strings.Builder
		for _, a := range info.Attributes {
			fmt.Fprintf(&attrs, " %s=%q", a.Name, a.Value)
		}
		line := fmt.Sprintf("%d. <%s%s>", i+1, info.Tag, attrs.String())
		if info.Text != "" {
			line += fmt.Sprintf(" - '%s'", preview(info.Text, 50))
		}
		c.Ui.Output(line)

		if strings.HasSuffix(info.Tag, "text") && info.Children == 0 && info.Text != "" {
			c.Ui.Output(fmt.Sprintf("   Text: %s", info.Text))
		}
		if info.Children > 0 {
			c.Ui.Output(fmt.Sprintf("   Contains %d child elements", info.Children))
		}
	}
	return 0
}

// preview truncates s to max runes, marking the cut with an ellipsis.
func preview(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

func (c *LsCommand) Help() string {
	helpText := `
Usage: xqr ls [xpath]

  List elements matching an XPath expression in the current file, with
  attributes, a text preview and child counts. Defaults to //* which
  lists every element.
`
	return strings.TrimSpace(helpText)
}

func (c *LsCommand) Synopsis() string {
	return "List elements matching an XPath"
}
