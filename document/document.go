// Package document parses XML, HTML and SVG files into a queryable tree
// behind a single Node interface, so callers never branch on which
// underlying tree library backs a given file type.
package document

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/antchfx/xpath"
)

// FileType tags a parsed document and controls namespace handling.
type FileType string

const (
	FileTypeSVG  FileType = "svg"
	FileTypeHTML FileType = "html"
	FileTypeXML  FileType = "xml"
)

// Attribute is one name/value pair on an element, in document order.
type Attribute struct {
	Name  string
	Value string
}

// Node is the polymorphic view over both tree backends. Attribute and
// text results from a query are read-only views: their setters report
// false and Remove is a no-op.
type Node interface {
	Tag() string
	Text() string
	SetText(value string) bool
	Attr(name string) (string, bool)
	SetAttr(name, value string) bool
	RemoveAttr(name string) bool
	Attrs() []Attribute
	InnerXML() string
	SetInnerXML(markup string) error
	AppendChild(tag, text string, attrs []Attribute) Node
	Remove() bool
	Path() string
	ChildCount() int
}

// Tree is the evaluator-facing slice of a document: it runs a compiled
// XPath expression and returns the matches in document order.
type Tree interface {
	Select(expr *xpath.Expr) []Node
}

type backend interface {
	Select(expr *xpath.Expr) []Node
	SelectCSS(selector string) ([]Node, error)
	Root() Node
	Serialize() (string, error)
}

// Document is a parsed file plus its detected type.
type Document struct {
	ftype FileType
	back  backend
}

// Type returns the detected file type.
func (d *Document) Type() FileType { return d.ftype }

// Select runs a compiled XPath expression against the tree.
func (d *Document) Select(expr *xpath.Expr) []Node { return d.back.Select(expr) }

// SelectCSS runs a CSS selector against the tree. Only HTML documents
// support the full selector grammar; other types return an error.
func (d *Document) SelectCSS(selector string) ([]Node, error) { return d.back.SelectCSS(selector) }

// Root returns the document's root element.
func (d *Document) Root() Node { return d.back.Root() }

// Serialize renders the tree back to markup, declaration included where
// one was parsed.
func (d *Document) Serialize() (string, error) { return d.back.Serialize() }

// Parse builds a Document from raw content. HTML goes through the
// net/html parser (which repairs real-world markup); SVG and XML go
// through the stricter XML parser.
func Parse(content []byte, ft FileType) (*Document, error) {
	switch ft {
	case FileTypeHTML:
		back, err := parseHTML(bytes.NewReader(content))
		if err != nil {
			return nil, fmt.Errorf("parse html: %w", err)
		}
		return &Document{ftype: ft, back: back}, nil
	case FileTypeSVG, FileTypeXML:
		back, err := parseXML(bytes.NewReader(content))
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", ft, err)
		}
		return &Document{ftype: ft, back: back}, nil
	default:
		return nil, fmt.Errorf("unsupported file type %q", ft)
	}
}

// Load reads a file, detects its type and parses it.
func Load(path string) (*Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(content, DetectType(path, content))
}

// DetectType decides a file's type from its extension first, then from a
// sniff of the content. SVG is checked before XML because SVG files
// usually carry an XML declaration too. Unrecognized content is treated
// as XML.
func DetectType(path string, content []byte) FileType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".svg":
		return FileTypeSVG
	case ".html", ".htm":
		return FileTypeHTML
	case ".xml":
		return FileTypeXML
	}

	head := content
	if len(head) > 512 {
		head = head[:512]
	}
	sniff := strings.ToLower(string(head))
	trimmed := strings.TrimSpace(sniff)

	switch {
	case strings.Contains(sniff, "<svg"):
		return FileTypeSVG
	case strings.HasPrefix(trimmed, "<!doctype html") || strings.Contains(sniff, "<html"):
		return FileTypeHTML
	case strings.HasPrefix(trimmed, "<?xml"):
		return FileTypeXML
	}
	return FileTypeXML
}
