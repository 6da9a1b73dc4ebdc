package document

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
)

type xmlBackend struct {
	doc *xmlquery.Node
}

func parseXML(r io.Reader) (*xmlBackend, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, err
	}
	return &xmlBackend{doc: doc}, nil
}

func (b *xmlBackend) Select(expr *xpath.Expr) []Node {
	matches := xmlquery.QuerySelectorAll(b.doc, expr)
	nodes := make([]Node, 0, len(matches))
	for _, m := range matches {
		nodes = append(nodes, &xmlNode{n: m})
	}
	return nodes
}

func (b *xmlBackend) SelectCSS(string) ([]Node, error) {
	return nil, errors.New("css selectors require an html document")
}

func (b *xmlBackend) Root() Node {
	for c := b.doc.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode {
			return &xmlNode{n: c}
		}
	}
	return &xmlNode{n: b.doc}
}

func (b *xmlBackend) Serialize() (string, error) {
	var sb strings.Builder
	for c := b.doc.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(c.OutputXML(true))
	}
	return sb.String(), nil
}

// xmlNode adapts one xmlquery node to the Node interface. Attribute
// matches come back from the evaluator as synthesized nodes that are not
// linked into the child list, so mutation on them is refused.
type xmlNode struct {
	n *xmlquery.Node
}

func (x *xmlNode) Tag() string {
	switch x.n.Type {
	case xmlquery.AttributeNode:
		return "@" + x.n.Data
	case xmlquery.TextNode, xmlquery.CharDataNode:
		return "text()"
	}
	if x.n.Prefix != "" {
		return x.n.Prefix + ":" + x.n.Data
	}
	return x.n.Data
}

func (x *xmlNode) Text() string {
	switch x.n.Type {
	case xmlquery.AttributeNode, xmlquery.TextNode, xmlquery.CharDataNode:
		return x.n.InnerText()
	}
	// Leading text run only: the text between the start tag and the
	// first child element, matching how the editor reads element text.
	var sb strings.Builder
	for c := x.n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode {
			break
		}
		if c.Type == xmlquery.TextNode || c.Type == xmlquery.CharDataNode {
			sb.WriteString(c.Data)
		}
	}
	return sb.String()
}

func (x *xmlNode) SetText(value string) bool {
	if x.n.Type != xmlquery.ElementNode {
		return false
	}
	for c := x.n.FirstChild; c != nil && c.Type != xmlquery.ElementNode; {
		next := c.NextSibling
		if c.Type == xmlquery.TextNode || c.Type == xmlquery.CharDataNode {
			unlinkXMLChild(x.n, c)
		}
		c = next
	}
	prependXMLChild(x.n, &xmlquery.Node{Type: xmlquery.TextNode, Data: value})
	return true
}

func (x *xmlNode) Attr(name string) (string, bool) {
	for _, a := range x.n.Attr {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

func (x *xmlNode) SetAttr(name, value string) bool {
	if x.n.Type != xmlquery.ElementNode {
		return false
	}
	for i := range x.n.Attr {
		if x.n.Attr[i].Name.Local == name {
			x.n.Attr[i].Value = value
			return true
		}
	}
	x.n.Attr = append(x.n.Attr, xmlquery.Attr{Name: xml.Name{Local: name}, Value: value})
	return true
}

func (x *xmlNode) RemoveAttr(name string) bool {
	if x.n.Type != xmlquery.ElementNode {
		return false
	}
	for i := range x.n.Attr {
		if x.n.Attr[i].Name.Local == name {
			x.n.Attr = append(x.n.Attr[:i], x.n.Attr[i+1:]...)
			return true
		}
	}
	return false
}

func (x *xmlNode) Attrs() []Attribute {
	attrs := make([]Attribute, 0, len(x.n.Attr))
	for _, a := range x.n.Attr {
		name := a.Name.Local
		if a.Name.Space != "" {
			name = a.Name.Space + ":" + name
		}
		attrs = append(attrs, Attribute{Name: name, Value: a.Value})
	}
	return attrs
}

func (x *xmlNode) InnerXML() string {
	if x.n.Type == xmlquery.AttributeNode {
		return x.n.InnerText()
	}
	var sb strings.Builder
	for c := x.n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(c.OutputXML(true))
	}
	return sb.String()
}

func (x *xmlNode) SetInnerXML(markup string) error {
	if x.n.Type != xmlquery.ElementNode {
		return errors.New("cannot set markup on a non-element node")
	}
	frag, err := xmlquery.Parse(strings.NewReader("<fragment>" + markup + "</fragment>"))
	if err != nil {
		return fmt.Errorf("parse fragment: %w", err)
	}
	var wrapper *xmlquery.Node
	for c := frag.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode {
			wrapper = c
			break
		}
	}
	if wrapper == nil {
		return errors.New("parse fragment: empty result")
	}
	for x.n.FirstChild != nil {
		unlinkXMLChild(x.n, x.n.FirstChild)
	}
	for c := wrapper.FirstChild; c != nil; {
		next := c.NextSibling
		unlinkXMLChild(wrapper, c)
		appendXMLChild(x.n, c)
		c = next
	}
	return nil
}

func (x *xmlNode) AppendChild(tag, text string, attrs []Attribute) Node {
	if x.n.Type != xmlquery.ElementNode && x.n.Type != xmlquery.DocumentNode {
		return nil
	}
	child := &xmlquery.Node{
		Type:         xmlquery.ElementNode,
		Data:         tag,
		NamespaceURI: x.n.NamespaceURI,
	}
	for _, a := range attrs {
		child.Attr = append(child.Attr, xmlquery.Attr{Name: xml.Name{Local: a.Name}, Value: a.Value})
	}
	if text != "" {
		appendXMLChild(child, &xmlquery.Node{Type: xmlquery.TextNode, Data: text})
	}
	appendXMLChild(x.n, child)
	return &xmlNode{n: child}
}

func (x *xmlNode) Remove() bool {
	if x.n.Type != xmlquery.ElementNode || x.n.Parent == nil {
		return false
	}
	unlinkXMLChild(x.n.Parent, x.n)
	return true
}

func (x *xmlNode) Path() string {
	switch x.n.Type {
	case xmlquery.AttributeNode:
		if x.n.Parent == nil {
			return "@" + x.n.Data
		}
		return (&xmlNode{n: x.n.Parent}).Path() + "/@" + x.n.Data
	case xmlquery.TextNode, xmlquery.CharDataNode:
		if x.n.Parent == nil {
			return "text()"
		}
		return (&xmlNode{n: x.n.Parent}).Path() + "/text()"
	}

	var segs []string
	for n := x.n; n != nil && n.Type == xmlquery.ElementNode; n = n.Parent {
		segs = append([]string{xmlPathSegment(n)}, segs...)
	}
	return "/" + strings.Join(segs, "/")
}

func (x *xmlNode) ChildCount() int {
	count := 0
	for c := x.n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode {
			count++
		}
	}
	return count
}

// xmlPathSegment names one ancestor step, adding a positional index only
// when same-named siblings make it ambiguous.
func xmlPathSegment(n *xmlquery.Node) string {
	name := n.Data
	if n.Prefix != "" {
		name = n.Prefix + ":" + name
	}
	idx := 1
	for sib := n.PrevSibling; sib != nil; sib = sib.PrevSibling {
		if sib.Type == xmlquery.ElementNode && sib.Data == n.Data && sib.Prefix == n.Prefix {
			idx++
		}
	}
	dup := idx > 1
	if !dup {
		for sib := n.NextSibling; sib != nil; sib = sib.NextSibling {
			if sib.Type == xmlquery.ElementNode && sib.Data == n.Data && sib.Prefix == n.Prefix {
				dup = true
				break
			}
		}
	}
	if dup {
		return fmt.Sprintf("%s[%d]", name, idx)
	}
	return name
}

func appendXMLChild(parent, n *xmlquery.Node) {
	n.Parent = parent
	n.NextSibling = nil
	if parent.FirstChild == nil {
		parent.FirstChild = n
		n.PrevSibling = nil
	} else {
		parent.LastChild.NextSibling = n
		n.PrevSibling = parent.LastChild
	}
	parent.LastChild = n
}

func prependXMLChild(parent, n *xmlquery.Node) {
	n.Parent = parent
	n.PrevSibling = nil
	n.NextSibling = parent.FirstChild
	if parent.FirstChild != nil {
		parent.FirstChild.PrevSibling = n
	} else {
		parent.LastChild = n
	}
	parent.FirstChild = n
}

func unlinkXMLChild(parent, n *xmlquery.Node) {
	if n.PrevSibling != nil {
		n.PrevSibling.NextSibling = n.NextSibling
	} else {
		parent.FirstChild = n.NextSibling
	}
	if n.NextSibling != nil {
		n.NextSibling.PrevSibling = n.PrevSibling
	} else {
		parent.LastChild = n.PrevSibling
	}
	n.Parent = nil
	n.PrevSibling = nil
	n.NextSibling = nil
}
