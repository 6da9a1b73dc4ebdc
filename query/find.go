package query

import (
	"fmt"

	"github.com/antchfx/xpath"

	"xqr/document"
)

// FindElements resolves a raw XPath expression against a parsed tree:
// it validates the expression, rewrites it for SVG documents (other
// types evaluate the raw string with no namespace map), and returns the
// matches in document order. An empty result is a successful "no
// matches", distinct from a malformed query.
//
// Validation failures propagate untouched as *SyntaxError; evaluator
// rejections come back as *EvaluationError carrying the attempted,
// possibly rewritten, expression.
func FindElements(tree document.Tree, raw string, ft document.FileType) (nodes []document.Node, err error) {
	if err := Validate(raw); err != nil {
		return nil, err
	}

	expr := raw
	var namespaces map[string]string
	if ft == document.FileTypeSVG {
		expr, namespaces = Normalize(raw)
	}

	// The evaluator panics on some inputs that compile but cannot be
	// selected, e.g. expressions yielding a number instead of a node
	// set; surface those as evaluation errors too.
	defer func() {
		if r := recover(); r != nil {
			nodes = nil
			err = &EvaluationError{Expr: expr, Err: fmt.Errorf("%v", r)}
		}
	}()

	var compiled *xpath.Expr
	var compileErr error
	if len(namespaces) > 0 {
		compiled, compileErr = xpath.CompileWithNS(expr, namespaces)
	} else {
		compiled, compileErr = xpath.Compile(expr)
	}
	if compileErr != nil {
		return nil, &EvaluationError{Expr: expr, Err: compileErr}
	}

	return tree.Select(compiled), nil
}
