// Package editor is the high-level interface for loading, querying and
// modifying XML, HTML and SVG files. It ties the document tree to the
// file it came from so changes can be saved back or backed up.
package editor

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/beevik/etree"

	"xqr/document"
	"xqr/query"
)

// ElementInfo describes one matched element for listings.
type ElementInfo struct {
	Path       string               `json:"path"`
	Tag        string               `json:"tag"`
	Text       string               `json:"text"`
	Attributes []document.Attribute `json:"attributes"`
	Children   int                  `json:"children"`
}

// Editor holds a parsed document together with its source file. Query
// and mutation methods operate on the first match of an expression;
// lookups on a missing element return the zero value rather than an
// error, so only malformed expressions fail.
type Editor struct {
	path     string
	ftype    document.FileType
	doc      *document.Document
	original []byte
}

// Open reads and parses the file at path.
func Open(path string) (*Editor, error) {
	e := &Editor{path: path}
	if err := e.load(); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Editor) load() error {
	content, err := os.ReadFile(e.path)
	if err != nil {
		return fmt.Errorf("read %s: %w", e.path, err)
	}
	ftype := document.DetectType(e.path, content)
	doc, err := document.Parse(content, ftype)
	if err != nil {
		return fmt.Errorf("parse %s: %w", e.path, err)
	}
	e.ftype = ftype
	e.doc = doc
	e.original = content
	return nil
}

// Reload re-reads the file from disk, discarding unsaved changes.
func (e *Editor) Reload() error { return e.load() }

// Path returns the file the editor was opened on.
func (e *Editor) Path() string { return e.path }

// Type returns the detected file type.
func (e *Editor) Type() document.FileType { return e.ftype }

// Document exposes the parsed tree for callers that need direct access.
func (e *Editor) Document() *document.Document { return e.doc }

// OriginalContent returns the file content as of the last load or save.
func (e *Editor) OriginalContent() []byte { return e.original }

// Find returns all elements matching the XPath expression.
func (e *Editor) Find(expr string) ([]document.Node, error) {
	return query.FindElements(e.doc, expr, e.ftype)
}

// FindCSS returns all elements matching a CSS selector. Only HTML
// documents support this.
func (e *Editor) FindCSS(selector string) ([]document.Node, error) {
	return e.doc.SelectCSS(selector)
}

// Text returns the text content of the first matching element, or ""
// when nothing matches.
func (e *Editor) Text(expr string) (string, error) {
	nodes, err := e.Find(expr)
	if err != nil {
		return "", err
	}
	if len(nodes) == 0 {
		return "", nil
	}
	return nodes[0].Text(), nil
}

// Attribute returns the named attribute of the first matching element,
// or "" when the element or the attribute is absent.
func (e *Editor) Attribute(expr, name string) (string, error) {
	nodes, err := e.Find(expr)
	if err != nil {
		return "", err
	}
	if len(nodes) == 0 {
		return "", nil
	}
	value, _ := nodes[0].Attr(name)
	return value, nil
}

// SetText replaces the text content of the first matching element. The
// bool reports whether an element was found and updated.
func (e *Editor) SetText(expr, value string) (bool, error) {
	nodes, err := e.Find(expr)
	if err != nil {
		return false, err
	}
	if len(nodes) == 0 {
		return false, nil
	}
	return nodes[0].SetText(value), nil
}

// SetAttribute sets an attribute on the first matching element.
func (e *Editor) SetAttribute(expr, name, value string) (bool, error) {
	nodes, err := e.Find(expr)
	if err != nil {
		return false, err
	}
	if len(nodes) == 0 {
		return false, nil
	}
	return nodes[0].SetAttr(name, value), nil
}

// AddElement appends a new child element to the first element matching
// parentExpr.
func (e *Editor) AddElement(parentExpr, tag, text string, attrs []document.Attribute) (bool, error) {
	nodes, err := e.Find(parentExpr)
	if err != nil {
		return false, err
	}
	if len(nodes) == 0 {
		return false, nil
	}
	return nodes[0].AppendChild(tag, text, attrs) != nil, nil
}

// RemoveElement detaches the first matching element from its parent.
// The document root cannot be removed.
func (e *Editor) RemoveElement(expr string) (bool, error) {
	nodes, err := e.Find(expr)
	if err != nil {
		return false, err
	}
	if len(nodes) == 0 {
		return false, nil
	}
	return nodes[0].Remove(), nil
}

// ListElements describes every element matching expr. An empty expr
// lists the whole document.
func (e *Editor) ListElements(expr string) ([]ElementInfo, error) {
	if strings.TrimSpace(expr) == "" {
		expr = "//*"
	}
	nodes, err := e.Find(expr)
	if err != nil {
		return nil, err
	}
	infos := make([]ElementInfo, 0, len(nodes))
	for _, n := range nodes {
		infos = append(infos, ElementInfo{
			Path:       n.Path(),
			Tag:        n.Tag(),
			Text:       strings.TrimSpace(n.Text()),
			Attributes: n.Attrs(),
			Children:   n.ChildCount(),
		})
	}
	return infos, nil
}

// Save writes the document to outputPath, or back to the source file
// when outputPath is empty. XML and SVG output is pretty-printed and
// carries an XML declaration; HTML is written as-is. Saving to the
// source file refreshes OriginalContent.
func (e *Editor) Save(outputPath string) error {
	savePath := outputPath
	if savePath == "" {
		savePath = e.path
	}
	if dir := filepath.Dir(savePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	serialized, err := e.doc.Serialize()
	if err != nil {
		return fmt.Errorf("serialize %s: %w", e.path, err)
	}
	content := serialized
	if e.ftype != document.FileTypeHTML {
		content, err = prettyXML(serialized)
		if err != nil {
			return fmt.Errorf("format %s: %w", e.path, err)
		}
	}

	if err := os.WriteFile(savePath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", savePath, err)
	}
	if sameFile(savePath, e.path) {
		e.original = []byte(content)
	}
	return nil
}

// Backup copies the on-disk file, content as of the last save, to the
// same path with suffix appended and returns the backup path.
func (e *Editor) Backup(suffix string) (string, error) {
	if suffix == "" {
		suffix = ".bak"
	}
	backupPath := e.path + suffix
	content, err := os.ReadFile(e.path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", e.path, err)
	}
	if err := os.WriteFile(backupPath, content, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", backupPath, err)
	}
	return backupPath, nil
}

// prettyXML reindents a serialized document and guarantees a leading
// XML declaration.
func prettyXML(serialized string) (string, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(serialized); err != nil {
		return "", err
	}
	doc.Indent(2)
	out, err := doc.WriteToString()
	if err != nil {
		return "", err
	}
	if !strings.HasPrefix(out, "<?xml") {
		out = "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n" + out
	}
	return out, nil
}

func sameFile(a, b string) bool {
	if filepath.Clean(a) == filepath.Clean(b) {
		return true
	}
	ai, err := os.Stat(a)
	if err != nil {
		return false
	}
	bi, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ai, bi)
}
