package commands

import (
	"fmt"
	"sort"
	"strings"

	"xqr/document"
	"xqr/internal/examples"
)

// ExamplesCommand writes the bundled sample documents and prints
// queries that work against them.
type ExamplesCommand struct {
	Meta
}

func (c *ExamplesCommand) Run(args []string) int {
	var dir string
	cmdFlags := c.flagSet("examples")
	cmdFlags.Usage = func() { c.Ui.Error(c.Help()) }
	cmdFlags.StringVar(&dir, "dir", ".", "directory to write the example files into")
	if err := cmdFlags.Parse(args); err != nil {
		c.Ui.Error(fmt.Sprintf("Error parsing command-line flags: %s", err))
		return 1
	}
	if len(cmdFlags.Args()) > 0 {
		c.Ui.Error(c.Help())
		return 1
	}

	paths, err := examples.Create(dir)
	if err != nil {
		c.failf("Could not create example files: %s", err)
		return 1
	}

	c.successf("Created example files:")
	for _, p := range paths {
		c.Ui.Output(fmt.Sprintf("📄 %s", p))
	}

	c.Ui.Output("\n💡 Try these queries:")
	byType := examples.SampleXPathQueries()
	types := make([]document.FileType, 0, len(byType))
	for ft := range byType {
		types = append(types, ft)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	for _, ft := range types {
		c.Ui.Output(fmt.Sprintf("\nexample.%s:", ft))
		for _, q := range byType[ft] {
			c.Ui.Output(fmt.Sprintf("  xqr example.%s//%s", ft, strings.TrimPrefix(q, "//")))
		}
	}
	c.Ui.Output("\nexample.html with CSS selectors:")
	for _, q := range examples.SampleCSSQueries() {
		c.Ui.Output(fmt.Sprintf("  xqr \"example.html$('%s')\"", q))
	}
	return 0
}

func (c *ExamplesCommand) Help() string {
	helpText := `
Usage: xqr examples [options]

  Write the bundled sample documents (example.svg, example.xml,
  example.html, complex_chart.svg) and print queries to try on them.

Options:

  -dir=path    Directory to write into (default: current directory).
`
	return strings.TrimSpace(helpText)
}

func (c *ExamplesCommand) Synopsis() string {
	return "Create example files to experiment with"
}
