package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/antchfx/htmlquery"
	"github.com/antchfx/xpath"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

type htmlBackend struct {
	doc *html.Node
}

func parseHTML(r io.Reader) (*htmlBackend, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	return &htmlBackend{doc: doc}, nil
}

func (b *htmlBackend) Select(expr *xpath.Expr) []Node {
	matches := htmlquery.QuerySelectorAll(b.doc, expr)
	nodes := make([]Node, 0, len(matches))
	for _, m := range matches {
		nodes = append(nodes, wrapHTMLNode(m))
	}
	return nodes
}

func (b *htmlBackend) SelectCSS(selector string) ([]Node, error) {
	matcher, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("invalid css selector %q: %w", selector, err)
	}
	sel := goquery.NewDocumentFromNode(b.doc).FindMatcher(matcher)
	nodes := make([]Node, 0, len(sel.Nodes))
	for _, n := range sel.Nodes {
		nodes = append(nodes, wrapHTMLNode(n))
	}
	return nodes, nil
}

func (b *htmlBackend) Root() Node {
	for c := b.doc.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return wrapHTMLNode(c)
		}
	}
	return &htmlNode{n: b.doc}
}

func (b *htmlBackend) Serialize() (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, b.doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// wrapHTMLNode adapts an evaluator result. Attribute matches come back
// as detached element nodes fabricated by the evaluator (nil parent,
// value held in a text child); those are read-only views.
func wrapHTMLNode(n *html.Node) Node {
	view := n.Type == html.ElementNode && n.Parent == nil
	return &htmlNode{n: n, view: view}
}

type htmlNode struct {
	n    *html.Node
	view bool
}

func (h *htmlNode) Tag() string {
	switch {
	case h.view:
		return "@" + h.n.Data
	case h.n.Type == html.TextNode:
		return "text()"
	}
	return h.n.Data
}

func (h *htmlNode) Text() string {
	if h.view || h.n.Type == html.TextNode {
		return htmlquery.InnerText(h.n)
	}
	var sb strings.Builder
	for c := h.n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			break
		}
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
	}
	return sb.String()
}

func (h *htmlNode) SetText(value string) bool {
	if h.view || h.n.Type != html.ElementNode {
		return false
	}
	for c := h.n.FirstChild; c != nil && c.Type != html.ElementNode; {
		next := c.NextSibling
		if c.Type == html.TextNode {
			h.n.RemoveChild(c)
		}
		c = next
	}
	t := &html.Node{Type: html.TextNode, Data: value}
	if h.n.FirstChild != nil {
		h.n.InsertBefore(t, h.n.FirstChild)
	} else {
		h.n.AppendChild(t)
	}
	return true
}

func (h *htmlNode) Attr(name string) (string, bool) {
	for _, a := range h.n.Attr {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

func (h *htmlNode) SetAttr(name, value string) bool {
	if h.view || h.n.Type != html.ElementNode {
		return false
	}
	for i := range h.n.Attr {
		if h.n.Attr[i].Key == name {
			h.n.Attr[i].Val = value
			return true
		}
	}
	h.n.Attr = append(h.n.Attr, html.Attribute{Key: name, Val: value})
	return true
}

func (h *htmlNode) RemoveAttr(name string) bool {
	if h.view || h.n.Type != html.ElementNode {
		return false
	}
	for i := range h.n.Attr {
		if h.n.Attr[i].Key == name {
			h.n.Attr = append(h.n.Attr[:i], h.n.Attr[i+1:]...)
			return true
		}
	}
	return false
}

func (h *htmlNode) Attrs() []Attribute {
	attrs := make([]Attribute, 0, len(h.n.Attr))
	for _, a := range h.n.Attr {
		attrs = append(attrs, Attribute{Name: a.Key, Value: a.Val})
	}
	return attrs
}

func (h *htmlNode) InnerXML() string {
	if h.view {
		return htmlquery.InnerText(h.n)
	}
	return htmlquery.OutputHTML(h.n, false)
}

func (h *htmlNode) SetInnerXML(markup string) error {
	if h.view || h.n.Type != html.ElementNode {
		return errors.New("cannot set markup on a non-element node")
	}
	frag, err := html.ParseFragment(strings.NewReader(markup), h.n)
	if err != nil {
		return fmt.Errorf("parse fragment: %w", err)
	}
	for h.n.FirstChild != nil {
		h.n.RemoveChild(h.n.FirstChild)
	}
	for _, c := range frag {
		h.n.AppendChild(c)
	}
	return nil
}

func (h *htmlNode) AppendChild(tag, text string, attrs []Attribute) Node {
	if h.view || (h.n.Type != html.ElementNode && h.n.Type != html.DocumentNode) {
		return nil
	}
	child := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	for _, a := range attrs {
		child.Attr = append(child.Attr, html.Attribute{Key: a.Name, Val: a.Value})
	}
	if text != "" {
		child.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	}
	h.n.AppendChild(child)
	return wrapHTMLNode(child)
}

func (h *htmlNode) Remove() bool {
	if h.view || h.n.Type != html.ElementNode || h.n.Parent == nil {
		return false
	}
	h.n.Parent.RemoveChild(h.n)
	return true
}

func (h *htmlNode) Path() string {
	if h.view {
		return "@" + h.n.Data
	}
	if h.n.Type == html.TextNode {
		if h.n.Parent == nil {
			return "text()"
		}
		return (&htmlNode{n: h.n.Parent}).Path() + "/text()"
	}
	var segs []string
	for n := h.n; n != nil && n.Type == html.ElementNode; n = n.Parent {
		segs = append([]string{htmlPathSegment(n)}, segs...)
	}
	return "/" + strings.Join(segs, "/")
}

func (h *htmlNode) ChildCount() int {
	count := 0
	for c := h.n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			count++
		}
	}
	return count
}

func htmlPathSegment(n *html.Node) string {
	idx := 1
	for sib := n.PrevSibling; sib != nil; sib = sib.PrevSibling {
		if sib.Type == html.ElementNode && sib.Data == n.Data {
			idx++
		}
	}
	dup := idx > 1
	if !dup {
		for sib := n.NextSibling; sib != nil; sib = sib.NextSibling {
			if sib.Type == html.ElementNode && sib.Data == n.Data {
				dup = true
				break
			}
		}
	}
	if dup {
		return fmt.Sprintf("%s[%d]", n.Data, idx)
	}
	return n.Data
}
