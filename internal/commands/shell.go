package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/chzyer/readline"
	"github.com/hashicorp/cli"

	"xqr/internal/jqlite"
)

// ShellCommand runs an interactive prompt dispatching to the same
// commands as the CLI, plus the direct file//xpath and $('selector')
// forms.
type ShellCommand struct {
	Meta
}

func (c *ShellCommand) Run(args []string) int {
	cmdFlags := c.flagSet("shell")
	cmdFlags.Usage = func() { c.Ui.Error(c.Help()) }
	if err := cmdFlags.Parse(args); err != nil {
		c.Ui.Error(fmt.Sprintf("Error parsing command-line flags: %s", err))
		return 1
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "xqr> ",
		HistoryFile:     filepath.Join(os.TempDir(), ".xqr_history"),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		c.failf("Error in shell: %s", err)
		return 1
	}
	defer rl.Close()

	c.Ui.Output("XQR Interactive Shell")
	c.Ui.Output("Type 'help' for a list of commands, 'exit' to quit\n")
	if ed, err := c.currentEditor(context.Background()); err == nil {
		c.Ui.Output(fmt.Sprintf("Currently loaded: %s (%s)\n", ed.Path(), ed.Type()))
	}

	factories := Factories(c.Meta)
	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			c.Ui.Output("Use 'exit' to quit")
			continue
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			c.failf("Error in shell: %s", err)
			return 1
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}
		c.dispatch(factories, line)
	}
	c.Ui.Output("Goodbye!")
	return 0
}

func (c *ShellCommand) dispatch(factories map[string]cli.CommandFactory, line string) {
	// jquery-style lines keep their raw form so quoted arguments
	// survive; everything else is split into fields.
	if strings.HasPrefix(line, "$(") {
		c.runChainOnSession(line)
		return
	}
	if dollar := strings.Index(line, "$"); dollar >= 0 {
		if rest := strings.TrimLeft(line[dollar+1:], " \t"); strings.HasPrefix(rest, "(") {
			c.runChain(line[:dollar], "$"+rest)
			return
		}
	}

	fields := splitFields(line)
	if len(fields) == 0 {
		return
	}
	switch fields[0] {
	case "clear":
		c.Ui.Output("\033c")
	case "help":
		c.printHelp(factories, fields[1:])
	default:
		if factory, ok := factories[fields[0]]; ok {
			cmd, err := factory()
			if err != nil {
				c.failf("Error executing command: %s", err)
				return
			}
			cmd.Run(fields[1:])
			return
		}
		// Only lines that name a file qualify as direct operations;
		// anything else is a typo, not a missing file.
		if strings.Contains(fields[0], "//") || fileExists(fields[0]) {
			if _, handled := Direct(&c.Meta, fields); handled {
				return
			}
		}
		c.failf("Unknown command: %s", fields[0])
		c.Ui.Output("Type 'help' for a list of commands.")
	}
}

// runChainOnSession evaluates a $('selector') chain against the session
// file, saving it when the chain mutated the document.
func (c *ShellCommand) runChainOnSession(line string) {
	ctx := context.Background()
	ed, ok := c.requireEditor(ctx)
	if !ok {
		return
	}
	result, changed, err := jqlite.Process(ed, line)
	if err != nil {
		c.failf("Error processing jQuery command: %s", err)
		return
	}
	c.Ui.Output(result)
	if changed {
		if err := ed.Save(""); err != nil {
			c.failf("Error saving file: %s", err)
		}
	}
}

func (c *ShellCommand) printHelp(factories map[string]cli.CommandFactory, args []string) {
	if len(args) > 0 {
		factory, ok := factories[args[0]]
		if !ok {
			c.Ui.Output(fmt.Sprintf("\nNo help available for '%s'", args[0]))
			return
		}
		cmd, err := factory()
		if err != nil {
			return
		}
		c.Ui.Output("\n" + cmd.Help())
		return
	}

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	c.Ui.Output("\nAvailable commands:")
	for _, name := range names {
		cmd, err := factories[name]()
		if err != nil {
			continue
		}
		c.Ui.Output(fmt.Sprintf("  %-10s %s", name, cmd.Synopsis()))
	}
	c.Ui.Output("\nType 'help <command>' for help on a specific command.")
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// splitFields splits a shell line on whitespace outside single or
// double quotes and strips the quotes, so `set //title "New Title"`
// keeps the value as one field and `set //title ""` keeps the empty
// one.
func splitFields(line string) []string {
	var (
		fields  []string
		current strings.Builder
		quote   byte
		quoted  bool
	)
	flush := func() {
		if current.Len() > 0 || quoted {
			fields = append(fields, current.String())
		}
		current.Reset()
		quoted = false
	}
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			} else {
				current.WriteByte(c)
			}
		case c == '\'' || c == '"':
			quote = c
			quoted = true
		case c == ' ' || c == '\t':
			flush()
		default:
			current.WriteByte(c)
		}
	}
	flush()
	return fields
}

func (c *ShellCommand) Help() string {
	helpText := `
Usage: xqr shell

  Start an interactive prompt. Every CLI command works inside it, plus
  the direct file//xpath and $('selector').method() forms against the
  current file. 'help' lists commands, 'exit' quits.
`
	return strings.TrimSpace(helpText)
}

func (c *ShellCommand) Synopsis() string {
	return "Start an interactive shell"
}
