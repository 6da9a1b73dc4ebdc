package commands

import (
	"fmt"
	"strings"

	"xqr/internal/pdfsvg"
)

// PDF2SVGCommand converts the text layer of a PDF into per-page SVG
// files that the rest of the tool can query and edit.
type PDF2SVGCommand struct {
	Meta
}

func (c *PDF2SVGCommand) Run(args []string) int {
	var out string
	cmdFlags := c.flagSet("pdf2svg")
	cmdFlags.Usage = func() { c.Ui.Error(c.Help()) }
	cmdFlags.StringVar(&out, "out", "", "output path prefix")
	if err := cmdFlags.Parse(args); err != nil {
		c.Ui.Error(fmt.Sprintf("Error parsing command-line flags: %s", err))
		return 1
	}
	args = cmdFlags.Args()
	if len(args) != 1 {
		c.Ui.Error(c.Help())
		return 1
	}

	paths, err := pdfsvg.Convert(args[0], out)
	if err != nil {
		c.failf("Error converting PDF: %s", err)
		return 1
	}

	c.successf("Converted %s (%d pages)", args[0], len(paths))
	for _, p := range paths {
		c.Ui.Output(fmt.Sprintf("📄 %s", p))
	}
	return 0
}

func (c *PDF2SVGCommand) Help() string {
	helpText := `
Usage: xqr pdf2svg [options] <file.pdf>

  Convert the text layer of a PDF into one SVG file per page. Each row
  of text becomes a <text> element with an id like row-1, so the output
  can be queried and edited like any other SVG:

      xqr report-1.svg//text[@id="row-1"]

Options:

  -out=prefix    Output path prefix; pages are written as
                 <prefix>-<n>.svg. Defaults to the input path without
                 its extension.
`
	return strings.TrimSpace(helpText)
}

func (c *PDF2SVGCommand) Synopsis() string {
	return "Convert PDF text into editable SVG pages"
}
