package commands

import (
	"context"
	"fmt"
	"strings"

	"xqr/document"
)

// QueryCommand prints the content selected by an XPath expression from
// the current file. Registered as both "query" and "get".
type QueryCommand struct {
	Meta
}

func (c *QueryCommand) Run(args []string) int {
	var outputType string
	cmdFlags := c.flagSet("query")
	cmdFlags.Usage = func() { c.Ui.Error(c.Help()) }
	cmdFlags.StringVar(&outputType, "type", "text", "output type: text, html or xml")
	if err := cmdFlags.Parse(args); err != nil {
		c.Ui.Error(fmt.Sprintf("Error parsing command-line flags: %s", err))
		return 1
	}
	args = cmdFlags.Args()
	if len(args) != 1 {
		c.Ui.Error(c.Help())
		return 1
	}
	expr := args[0]
	if outputType != "text" && outputType != "html" && outputType != "xml" {
		c.Ui.Error(c.Help())
		return 1
	}

	ed, ok := c.requireEditor(context.Background())
	if !ok {
		return 1
	}

	nodes, err := ed.Find(expr)
	if err != nil {
		c.failf("Error executing query: %s", err)
		return 1
	}
	if len(nodes) == 0 {
		label := outputType
		if label != "text" {
			label = strings.ToUpper(label)
		}
		c.failf("No %s content found for XPath: %s", label, expr)
		return 0
	}

	if outputType == "text" {
		c.Ui.Output(strings.TrimSpace(nodes[0].Text()))
	} else {
		c.Ui.Output(outerMarkup(nodes[0]))
	}
	return 0
}

// outerMarkup reassembles an element's own markup from its tag,
// attributes and inner content.
func outerMarkup(n document.Node) string {
	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(n.Tag())
	for _, a := range n.Attrs() {
		fmt.Fprintf(&b, " %s=%q", a.Name, a.Value)
	}
	inner := n.InnerXML()
	if inner == "" {
		b.WriteString("/>")
		return b.String()
	}
	fmt.Fprintf(&b, ">%s</%s>", inner, n.Tag())
	return b.String()
}

func (c *QueryCommand) Help() string {
	helpText := `
Usage: xqr query [options] <xpath>

  Print the content selected by an XPath expression from the current
  file. Also available as "get".

Options:

  -type=text    Output type: text (element text, the default), html or
                xml (the element's own markup).
`
	return strings.TrimSpace(helpText)
}

func (c *QueryCommand) Synopsis() string {
	return "Query elements using XPath"
}
