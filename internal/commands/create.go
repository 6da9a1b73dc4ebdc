package commands

import (
	"context"
	"fmt"
	"strings"

	"xqr/document"
)

// attrList collects repeated -attr name=value flags.
type attrList []document.Attribute

func (l *attrList) String() string {
	parts := make([]string, 0, len(*l))
	for _, a := range *l {
		parts = append(parts, a.Name+"="+a.Value)
	}
	return strings.Join(parts, ",")
}

func (l *attrList) Set(raw string) error {
	name, value, ok := strings.Cut(raw, "=")
	if !ok || name == "" {
		return fmt.Errorf("expected name=value, got %q", raw)
	}
	*l = append(*l, document.Attribute{Name: name, Value: value})
	return nil
}

// CreateCommand appends a new child element under the first element
// matching an XPath expression and saves the file.
type CreateCommand struct {
	Meta
}

func (c *CreateCommand) Run(args []string) int {
	var (
		content string
		attrs   attrList
	)
	cmdFlags := c.flagSet("create")
	cmdFlags.Usage = func() { c.Ui.Error(c.Help()) }
	cmdFlags.StringVar(&content, "content", "", "text content for the new element")
	cmdFlags.Var(&attrs, "attr", "attribute as name=value, repeatable")
	if err := cmdFlags.Parse(args); err != nil {
		c.Ui.Error(fmt.Sprintf("Error parsing command-line flags: %s", err))
		return 1
	}
	args = cmdFlags.Args()
	if len(args) != 2 {
		c.Ui.Error(c.Help())
		return 1
	}
	parent, tag := args[0], args[1]

	ed, ok := c.requireEditor(context.Background())
	if !ok {
		return 1
	}

	created, err := ed.AddElement(parent, tag, content, attrs)
	if err != nil {
		c.failf("Error creating element: %s", err)
		return 1
	}
	if !created {
		c.failf("Failed to create element at %s", parent)
		return 1
	}

	if err := ed.Save(""); err != nil {
		c.failf("Error saving file: %s", err)
		return 1
	}
	c.successf("Created new %s element under %s", tag, parent)
	return 0
}

func (c *CreateCommand) Help() string {
	helpText := `
Usage: xqr create [options] <parent-xpath> <tag>

  Append a new child element under the first element matching the
  parent XPath expression and save the file.

Options:

  -content=text      Text content for the new element.
  -attr=name=value   Attribute for the new element. May be repeated.
`
	return strings.TrimSpace(helpText)
}

func (c *CreateCommand) Synopsis() string {
	return "Create a new element under a parent XPath"
}
