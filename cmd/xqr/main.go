// Command xqr is the XPath query and replace tool: it loads XML, HTML
// and SVG files, queries them with XPath or CSS selectors and edits
// them in place from the command line, a shell or a web UI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/cli"

	"xqr/internal/commands"
	"xqr/internal/config"
)

const version = "0.1.0"

func main() {
	os.Exit(realMain())
}

func realMain() int {
	cfg := config.Load()
	ui := &cli.BasicUi{
		Reader:      os.Stdin,
		Writer:      os.Stdout,
		ErrorWriter: os.Stderr,
	}

	store, err := commands.NewStore(context.Background(), cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "xqr: %s\n", err)
		return 1
	}
	meta := commands.Meta{Ui: ui, Store: store, Config: cfg}

	args := os.Args[1:]

	// file//xpath, file//xpath value and file$('sel') forms short-cut
	// subcommand routing entirely.
	if code, handled := commands.Direct(&meta, args); handled {
		return code
	}

	c := &cli.CLI{
		Name:     "xqr",
		Version:  version,
		Args:     args,
		Commands: commands.Factories(meta),
		HelpFunc: cli.BasicHelpFunc("xqr"),
	}
	exitCode, err := c.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error executing CLI: %s\n", err)
		return 1
	}
	return exitCode
}
