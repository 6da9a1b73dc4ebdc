package query

import "fmt"

// SyntaxError reports a structurally malformed XPath expression caught
// by Validate before it reaches the evaluator. Offset is the 0-based
// index of the offending character in the raw expression (-1 when the
// error has no single position) and Char is the character itself (0 when
// not applicable), enough for callers to render a caret diagnostic.
type SyntaxError struct {
	Msg    string
	Offset int
	Char   byte
}

func (e *SyntaxError) Error() string { return e.Msg }

// EvaluationError wraps an evaluator rejection with the expression that
// was actually attempted, which can differ from what the user typed
// after namespace normalization.
type EvaluationError struct {
	Expr string
	Err  error
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("error evaluating xpath expression %q: %v", e.Expr, e.Err)
}

func (e *EvaluationError) Unwrap() error { return e.Err }
