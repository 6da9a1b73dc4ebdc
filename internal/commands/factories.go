package commands

import (
	"github.com/hashicorp/cli"
)

// Factories returns the subcommand registry for cli.CLI. "get" is an
// alias for "query", matching the help text users expect from both.
func Factories(meta Meta) map[string]cli.CommandFactory {
	return map[string]cli.CommandFactory{
		"load": func() (cli.Command, error) {
			return &LoadCommand{Meta: meta}, nil
		},
		"query": func() (cli.Command, error) {
			return &QueryCommand{Meta: meta}, nil
		},
		"get": func() (cli.Command, error) {
			return &QueryCommand{Meta: meta}, nil
		},
		"set": func() (cli.Command, error) {
			return &SetCommand{Meta: meta}, nil
		},
		"create": func() (cli.Command, error) {
			return &CreateCommand{Meta: meta}, nil
		},
		"ls": func() (cli.Command, error) {
			return &LsCommand{Meta: meta}, nil
		},
		"save": func() (cli.Command, error) {
			return &SaveCommand{Meta: meta}, nil
		},
		"state": func() (cli.Command, error) {
			return &StateCommand{Meta: meta}, nil
		},
		"examples": func() (cli.Command, error) {
			return &ExamplesCommand{Meta: meta}, nil
		},
		"pdf2svg": func() (cli.Command, error) {
			return &PDF2SVGCommand{Meta: meta}, nil
		},
		"shell": func() (cli.Command, error) {
			return &ShellCommand{Meta: meta}, nil
		},
		"server": func() (cli.Command, error) {
			return &ServerCommand{Meta: meta}, nil
		},
	}
}

// commandNames are the registered subcommands, consulted by the direct
// operation dispatcher so `xqr load x.svg` is never mistaken for a
// file/xpath operation.
var commandNames = map[string]bool{
	"load":     true,
	"query":    true,
	"get":      true,
	"set":      true,
	"create":   true,
	"ls":       true,
	"save":     true,
	"state":    true,
	"examples": true,
	"pdf2svg":  true,
	"shell":    true,
	"server":   true,
}
