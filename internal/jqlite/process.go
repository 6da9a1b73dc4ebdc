package jqlite

import (
	"fmt"
	"strings"

	"xqr/editor"
)

// Process executes one $('selector').method(args) command against the
// editor and returns a printable result. Commands without a method call
// report how many elements the selector matched. The changed flag is
// true when the command mutated the document, so callers know whether
// a save is warranted.
func Process(ed *editor.Editor, command string) (result string, changed bool, err error) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(command), "$(")
	if !ok {
		return "", false, fmt.Errorf("expected $('selector').method(...)")
	}

	selRaw, rest, err := cutCall(rest)
	if err != nil {
		return "", false, fmt.Errorf("selector: %w", err)
	}
	selector := unquote(strings.TrimSpace(selRaw))

	sel, err := Select(ed, selector)
	if err != nil {
		return "", false, err
	}

	rest = strings.TrimSpace(rest)
	if rest == "" {
		return fmt.Sprintf("selected %d elements", sel.Len()), false, nil
	}

	call, ok := strings.CutPrefix(rest, ".")
	if !ok {
		return "", false, fmt.Errorf("expected a method call after the selector, got %q", rest)
	}
	name, argsRaw, ok := strings.Cut(call, "(")
	if !ok {
		return "", false, fmt.Errorf("expected a method call after the selector, got %q", rest)
	}
	argsStr, trailing, err := cutCall(argsRaw)
	if err != nil {
		return "", false, fmt.Errorf("method %s: %w", name, err)
	}
	if strings.TrimSpace(trailing) != "" {
		return "", false, fmt.Errorf("unexpected input after method call: %q", trailing)
	}
	args := splitArgs(argsStr)

	return invoke(sel, strings.TrimSpace(name), args)
}

func invoke(sel *Selection, name string, args []string) (string, bool, error) {
	applied := func(count int) string {
		return fmt.Sprintf("applied %s to %d elements", name, count)
	}
	switch name {
	case "css":
		switch len(args) {
		case 1:
			return sel.CSS(args[0]), false, nil
		case 2:
			return applied(sel.SetCSS(args[0], args[1])), true, nil
		}
		return "", false, fmt.Errorf("css takes a property, or a property and a value")
	case "attr":
		switch len(args) {
		case 1:
			return sel.Attr(args[0]), false, nil
		case 2:
			return applied(sel.SetAttr(args[0], args[1])), true, nil
		}
		return "", false, fmt.Errorf("attr takes a name, or a name and a value")
	case "text":
		switch len(args) {
		case 0:
			return sel.Text(), false, nil
		case 1:
			return applied(sel.SetText(args[0])), true, nil
		}
		return "", false, fmt.Errorf("text takes no argument, or the new text")
	case "html":
		switch len(args) {
		case 0:
			return sel.HTML(), false, nil
		case 1:
			count, err := sel.SetHTML(args[0])
			if err != nil {
				return "", false, err
			}
			return applied(count), true, nil
		}
		return "", false, fmt.Errorf("html takes no argument, or the new markup")
	}
	return "", false, fmt.Errorf("unknown method: %s", name)
}

// cutCall splits s at the parenthesis closing the call it is inside of,
// honoring nesting and quoted strings.
func cutCall(s string) (inside, rest string, err error) {
	depth := 1
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"':
			quote = c
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return s[:i], s[i+1:], nil
			}
		}
	}
	return "", "", fmt.Errorf("missing closing parenthesis")
}

// splitArgs splits a call's argument list on commas outside quotes and
// strips the quotes from each argument.
func splitArgs(s string) []string {
	var args []string
	var current strings.Builder
	var quote byte
	flush := func() {
		arg := strings.TrimSpace(current.String())
		current.Reset()
		if arg != "" {
			args = append(args, unquote(arg))
		}
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			current.WriteByte(c)
			if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"':
			quote = c
			current.WriteByte(c)
		case ',':
			flush()
		default:
			current.WriteByte(c)
		}
	}
	flush()
	return args
}

func unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '\'' && s[len(s)-1] == '\'') || (s[0] == '"' && s[len(s)-1] == '"') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
