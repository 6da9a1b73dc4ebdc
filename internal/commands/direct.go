package commands

import (
	"fmt"
	"os"
	"strings"

	"xqr/editor"
	"xqr/internal/jqlite"
)

// Direct handles the shorthand operations given without a subcommand:
//
//	xqr file.svg//xpath              print matching elements
//	xqr file.svg//xpath value        set text and save
//	xqr file.svg//xpath/@attr value  set attribute and save
//	xqr "file.html$('sel').text()"   jquery-style chain
//
// The bool reports whether the arguments were consumed; when false the
// caller should fall through to subcommand routing.
func Direct(m *Meta, args []string) (int, bool) {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return 0, false
	}
	if commandNames[args[0]] {
		return 0, false
	}

	joined := strings.Join(args, " ")
	if dollar := strings.Index(joined, "$"); dollar >= 0 {
		rest := strings.TrimLeft(joined[dollar+1:], " \t")
		if strings.HasPrefix(rest, "(") {
			return m.runChain(joined[:dollar], "$"+rest), true
		}
	}

	file, expr := parseFileXPath(args[0])
	if _, err := os.Stat(file); err != nil {
		m.failf("File not found: %s", file)
		return 1, true
	}
	ed, err := editor.Open(file)
	if err != nil {
		m.failf("Error: %s", err)
		return 1, true
	}

	if len(args) > 1 {
		value := strings.Join(args[1:], " ")
		return m.directSet(ed, file, expr, value), true
	}
	return m.directQuery(ed, expr), true
}

// parseFileXPath splits `file.svg//xpath` at the first double slash. An
// argument without one addresses the whole file.
func parseFileXPath(arg string) (file, expr string) {
	if head, rest, ok := strings.Cut(arg, "//"); ok {
		return head, "//" + rest
	}
	return arg, "//*"
}

func (m *Meta) runChain(filePart, command string) int {
	filePart = strings.TrimSpace(filePart)
	if filePart == "" {
		m.failf("No file specified")
		return 1
	}
	ed, err := editor.Open(filePart)
	if err != nil {
		m.failf("Error processing jQuery command: %s", err)
		return 1
	}
	result, changed, err := jqlite.Process(ed, command)
	if err != nil {
		m.failf("Error processing jQuery command: %s", err)
		return 1
	}
	m.Ui.Output(result)
	if changed {
		if err := ed.Save(""); err != nil {
			m.failf("Error saving file: %s", err)
			return 1
		}
	}
	return 0
}

func (m *Meta) directSet(ed *editor.Editor, file, expr, value string) int {
	var (
		updated bool
		err     error
	)
	if match := attrStep.FindStringSubmatch(expr); match != nil {
		updated, err = ed.SetAttribute(match[1], match[2], value)
	} else {
		updated, err = ed.SetText(expr, value)
	}
	if err != nil {
		m.failf("Error: %s", err)
		return 1
	}
	if !updated {
		if value == "" {
			m.failf("Element not found: %s", expr)
		} else {
			m.failf("Could not update %s (element not found)", expr)
		}
		return 1
	}
	if err := ed.Save(""); err != nil {
		m.failf("Error: %s", err)
		return 1
	}
	if value == "" {
		m.successf("Deleted content of %s in %s", expr, file)
	} else {
		m.successf("Updated %s in %s", expr, file)
	}
	return 0
}

func (m *Meta) directQuery(ed *editor.Editor, expr string) int {
	nodes, err := ed.Find(expr)
	if err != nil {
		m.failf("Error: %s", err)
		return 1
	}
	if len(nodes) == 0 {
		m.failf("No elements found matching XPath: %s", expr)
		return 1
	}
	for i, n := range nodes {
		if text := strings.TrimSpace(n.Text()); text != "" {
			m.Ui.Output(fmt.Sprintf("%d. %s", i+1, text))
		} else {
			m.Ui.Output(fmt.Sprintf("%d. <%s> (no text content)", i+1, n.Tag()))
		}
	}
	return 0
}
