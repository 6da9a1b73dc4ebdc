package query

import (
	"fmt"
	"strings"
)

type bracket struct {
	char byte
	pos  int
}

// Validate checks an XPath expression for structural problems (bracket
// and quote balance, disallowed step forms) so the caller gets a named
// position instead of an opaque evaluator rejection. It never mutates or
// interprets the expression beyond this inspection.
func Validate(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return &SyntaxError{Msg: "xpath expression cannot be empty", Offset: -1}
	}

	var stack []bracket
	inQuotes := false
	var quoteChar byte
	quoteStart := -1

	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		// A backslash before a quote suppresses its toggling effect.
		case (c == '\'' || c == '"') && (i == 0 || raw[i-1] != '\\'):
			if !inQuotes {
				inQuotes = true
				quoteChar = c
				quoteStart = i
			} else if c == quoteChar {
				inQuotes = false
				quoteChar = 0
			}
		case inQuotes:
		case c == '[' || c == '(' || c == '{':
			stack = append(stack, bracket{char: c, pos: i})
		case c == ']' || c == ')' || c == '}':
			if len(stack) == 0 {
				return &SyntaxError{
					Msg:    fmt.Sprintf("unmatched %q at position %d", c, i),
					Offset: i,
					Char:   c,
				}
			}
			open := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if !bracketsPair(open.char, c) {
				return &SyntaxError{
					Msg:    fmt.Sprintf("mismatched %q and %q", open.char, c),
					Offset: i,
					Char:   c,
				}
			}
		}
	}

	if inQuotes {
		return &SyntaxError{Msg: "unclosed string literal", Offset: quoteStart, Char: quoteChar}
	}
	if len(stack) > 0 {
		top := stack[len(stack)-1]
		return &SyntaxError{
			Msg:    fmt.Sprintf("unmatched %q at position %d", top.char, top.pos),
			Offset: top.pos,
			Char:   top.char,
		}
	}

	if i := strings.Index(raw, "//."); i >= 0 {
		return &SyntaxError{Msg: "'//.' is not a valid xpath step", Offset: i, Char: '.'}
	}
	// ]]> stays legal: it appears in CDATA-escape contexts in XPath
	// 2.0+, and rejecting it here would be stricter than the evaluator.
	for i := 0; i+1 < len(raw); i++ {
		if raw[i] == ']' && raw[i+1] == ']' && (i+2 >= len(raw) || raw[i+2] != '>') {
			return &SyntaxError{Msg: "']]' is not valid outside of CDATA", Offset: i, Char: ']'}
		}
	}
	return nil
}

func bracketsPair(open, close byte) bool {
	switch close {
	case ']':
		return open == '['
	case ')':
		return open == '('
	case '}':
		return open == '{'
	}
	return false
}
