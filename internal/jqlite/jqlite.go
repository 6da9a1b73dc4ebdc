// Package jqlite implements the $('selector').method(...) command
// syntax: a small jQuery-flavored layer over the editor for people who
// would rather not write XPath.
package jqlite

import (
	"fmt"
	"strings"

	"xqr/document"
	"xqr/editor"
)

// Selection is the set of nodes a selector matched. Getters read from
// the first node; setters apply to every node and report how many they
// touched.
type Selection struct {
	ed       *editor.Editor
	selector string
	nodes    []document.Node
}

// Select resolves a selector against the editor's document. Selectors
// may be raw XPath, an #id shorthand, a bare tag name, or, for HTML
// documents, any CSS selector.
func Select(ed *editor.Editor, selector string) (*Selection, error) {
	selector = strings.TrimSpace(selector)
	if selector == "" {
		return nil, fmt.Errorf("empty selector")
	}

	nodes, err := resolve(ed, selector)
	if err != nil {
		return nil, err
	}
	return &Selection{ed: ed, selector: selector, nodes: nodes}, nil
}

func resolve(ed *editor.Editor, selector string) ([]document.Node, error) {
	if isXPath(selector) {
		return ed.Find(selector)
	}
	if name, ok := strings.CutPrefix(selector, "#"); ok && isName(name) {
		return ed.Find(fmt.Sprintf("//*[@id='%s']", name))
	}
	if ed.Type() == document.FileTypeHTML {
		return ed.FindCSS(selector)
	}
	if isName(selector) {
		return ed.Find("//" + selector)
	}
	return nil, fmt.Errorf("selector %q needs an HTML document; use XPath, #id or a tag name here", selector)
}

// isXPath reports whether the selector reads as XPath rather than CSS:
// a path prefix, attribute access, or an explicit axis. A lone dot or
// dot-slash walks the tree; ".class" stays CSS.
func isXPath(s string) bool {
	if strings.HasPrefix(s, "/") || strings.HasPrefix(s, "(") || strings.HasPrefix(s, "@") {
		return true
	}
	if s == "." || s == ".." || strings.HasPrefix(s, "./") || strings.HasPrefix(s, "../") {
		return true
	}
	return strings.Contains(s, "::")
}

func isName(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}

// Len returns the number of matched nodes.
func (s *Selection) Len() int { return len(s.nodes) }

// Nodes returns the matched nodes.
func (s *Selection) Nodes() []document.Node { return s.nodes }

// Text returns the text of the first matched node.
func (s *Selection) Text() string {
	if len(s.nodes) == 0 {
		return ""
	}
	return s.nodes[0].Text()
}

// SetText sets the text on every matched node.
func (s *Selection) SetText(value string) int {
	count := 0
	for _, n := range s.nodes {
		if n.SetText(value) {
			count++
		}
	}
	return count
}

// Attr returns the named attribute of the first matched node.
func (s *Selection) Attr(name string) string {
	if len(s.nodes) == 0 {
		return ""
	}
	value, _ := s.nodes[0].Attr(name)
	return value
}

// SetAttr sets an attribute on every matched node.
func (s *Selection) SetAttr(name, value string) int {
	count := 0
	for _, n := range s.nodes {
		if n.SetAttr(name, value) {
			count++
		}
	}
	return count
}

// CSS returns a style property of the first matched node. It reads the
// style attribute first and falls back to a presentation attribute of
// the same name, which is how SVG expresses most styling.
func (s *Selection) CSS(property string) string {
	if len(s.nodes) == 0 {
		return ""
	}
	style, _ := s.nodes[0].Attr("style")
	if value := styleValue(style, property); value != "" {
		return value
	}
	value, _ := s.nodes[0].Attr(property)
	return value
}

// SetCSS sets a style property on every matched node, rewriting the
// style attribute in place.
func (s *Selection) SetCSS(property, value string) int {
	count := 0
	for _, n := range s.nodes {
		style, _ := n.Attr("style")
		if n.SetAttr("style", setStyleValue(style, property, value)) {
			count++
		}
	}
	return count
}

// HTML returns the inner markup of the first matched node.
func (s *Selection) HTML() string {
	if len(s.nodes) == 0 {
		return ""
	}
	return s.nodes[0].InnerXML()
}

// SetHTML replaces the inner markup of every matched node.
func (s *Selection) SetHTML(markup string) (int, error) {
	count := 0
	for _, n := range s.nodes {
		if err := n.SetInnerXML(markup); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// styleValue extracts one property from a style attribute string.
func styleValue(style, property string) string {
	for _, decl := range strings.Split(style, ";") {
		name, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		if strings.TrimSpace(name) == property {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

// setStyleValue returns the style string with one property replaced or
// appended, preserving the order of the remaining declarations.
func setStyleValue(style, property, value string) string {
	var decls []string
	replaced := false
	for _, decl := range strings.Split(style, ";") {
		name, _, ok := strings.Cut(decl, ":")
		if !ok {
			if strings.TrimSpace(decl) != "" {
				decls = append(decls, strings.TrimSpace(decl))
			}
			continue
		}
		trimmed := strings.TrimSpace(name)
		if trimmed == property {
			decls = append(decls, property+": "+value)
			replaced = true
		} else {
			decls = append(decls, strings.TrimSpace(decl))
		}
	}
	if !replaced {
		decls = append(decls, property+": "+value)
	}
	return strings.Join(decls, "; ")
}
