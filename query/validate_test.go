package query_test

import (
	"errors"
	"strings"
	"testing"

	"xqr/query"
)

func TestValidateAccepts(t *testing.T) {
	exprs := []string{
		"//rect",
		"//*",
		`//*[local-name()="text"][@*[local-name()='id']='t1']`,
		"//rect[@id='foo']",
		"count(//g[@class='layer'])",
		"//a[@href=\"http://example.com\"]",
		"//item[position() > 1]",
		"//text()[contains(., ']]>')]",
		`//a[@title='it\'s fine']`,
		".//child::node()",
	}
	for _, expr := range exprs {
		if err := query.Validate(expr); err != nil {
			t.Fatalf("Validate(%q) = %v, want nil", expr, err)
		}
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name    string
		expr    string
		msgPart string
		offset  int
	}{
		{
			name:    "empty",
			expr:    "",
			msgPart: "cannot be empty",
			offset:  -1,
		},
		{
			name:    "whitespace only",
			expr:    "   \t",
			msgPart: "cannot be empty",
			offset:  -1,
		},
		{
			name:    "unclosed bracket",
			expr:    "//rect[@id='x'",
			msgPart: "unmatched '['",
			offset:  6,
		},
		{
			name:    "unclosed quote swallows bracket",
			expr:    "//rect[@id='x]",
			msgPart: "unclosed string literal",
			offset:  11,
		},
		{
			name:    "unmatched closer",
			expr:    "//rect]",
			msgPart: "unmatched ']'",
			offset:  6,
		},
		{
			name:    "mismatched pair",
			expr:    "//rect[@id)",
			msgPart: "mismatched '[' and ')'",
			offset:  10,
		},
		{
			name:    "unclosed paren",
			expr:    "count(//rect",
			msgPart: "unmatched '('",
			offset:  5,
		},
		{
			name:    "stray dot step",
			expr:    "//./rect",
			msgPart: "'//.' is not a valid xpath step",
			offset:  0,
		},
		{
			name:    "double close bracket outside cdata",
			expr:    "//rect]]",
			msgPart: "']]' is not valid outside of CDATA",
			offset:  6,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := query.Validate(tt.expr)
			if err == nil {
				t.Fatalf("Validate(%q) = nil, want error", tt.expr)
			}
			var serr *query.SyntaxError
			if !errors.As(err, &serr) {
				t.Fatalf("Validate(%q) returned %T, want *query.SyntaxError", tt.expr, err)
			}
			if !strings.Contains(serr.Msg, tt.msgPart) {
				t.Fatalf("Validate(%q) message %q, want it to contain %q", tt.expr, serr.Msg, tt.msgPart)
			}
			if serr.Offset != tt.offset {
				t.Fatalf("Validate(%q) offset = %d, want %d", tt.expr, serr.Offset, tt.offset)
			}
		})
	}
}

func TestValidateEscapedQuoteStaysOpen(t *testing.T) {
	// The backslash keeps the second quote from closing the literal.
	err := query.Validate(`//a[@b='it\'`)
	if err == nil {
		t.Fatal("want error for literal left open by escaped quote")
	}
	var serr *query.SyntaxError
	if !errors.As(err, &serr) {
		t.Fatalf("got %T, want *query.SyntaxError", err)
	}
	if !strings.Contains(serr.Msg, "unclosed string literal") {
		t.Fatalf("message = %q, want unclosed string literal", serr.Msg)
	}
}

func TestValidateCDATAEndingAllowed(t *testing.T) {
	if err := query.Validate("//text()[contains(., ']]>')]"); err != nil {
		t.Fatalf("']]>' inside a literal should pass, got %v", err)
	}
	err := query.Validate("//a[.=']]']")
	if err == nil {
		t.Fatal("']]' without '>' should be rejected even when brackets balance")
	}
	var serr *query.SyntaxError
	if !errors.As(err, &serr) || !strings.Contains(serr.Msg, "CDATA") {
		t.Fatalf("got %v, want CDATA syntax error", err)
	}
}

func TestValidateBracketInsideLiteralIgnored(t *testing.T) {
	if err := query.Validate("//a[@href='[draft)']"); err != nil {
		t.Fatalf("brackets inside string literals must not count, got %v", err)
	}
}
