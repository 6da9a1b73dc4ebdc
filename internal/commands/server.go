package commands

import (
	"fmt"
	"net"
	"strings"

	"xqr/internal/server"
)

// ServerCommand starts the web editing UI and API.
type ServerCommand struct {
	Meta
}

func (c *ServerCommand) Run(args []string) int {
	var (
		port string
		host string
	)
	cmdFlags := c.flagSet("server")
	cmdFlags.Usage = func() { c.Ui.Error(c.Help()) }
	cmdFlags.StringVar(&port, "port", c.Config.Port, "port to listen on")
	cmdFlags.StringVar(&host, "host", "127.0.0.1", "host to bind to")
	if err := cmdFlags.Parse(args); err != nil {
		c.Ui.Error(fmt.Sprintf("Error parsing command-line flags: %s", err))
		return 1
	}
	if len(cmdFlags.Args()) > 0 {
		c.Ui.Error(c.Help())
		return 1
	}

	c.Ui.Output(fmt.Sprintf("Starting server at http://%s:%s", host, port))
	c.Ui.Output("Press Ctrl+C to stop")

	r := server.NewRouter(c.Config)
	if err := r.Run(net.JoinHostPort(host, port)); err != nil {
		c.failf("Error starting server: %s", err)
		return 1
	}
	return 0
}

func (c *ServerCommand) Help() string {
	helpText := `
Usage: xqr server [options]

  Start the web editing UI and JSON API. Open the printed address in a
  browser to load, query, edit and save files interactively.

Options:

  -port=n       Port to listen on (default: $XQR_PORT or 8080).
  -host=addr    Host to bind to (default: 127.0.0.1).
`
	return strings.TrimSpace(helpText)
}

func (c *ServerCommand) Synopsis() string {
	return "Start the web editing UI and API"
}
