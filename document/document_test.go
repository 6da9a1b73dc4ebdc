package document_test

import (
	"strings"
	"testing"

	"github.com/antchfx/xpath"

	"xqr/document"
)

const sampleSVG = `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="200" height="200">
    <metadata>
        <title>Test SVG</title>
    </metadata>
    <rect x="10" y="10" width="50" height="50" fill="red" id="test-rect"/>
    <text x="50" y="150" id="test-text" font-size="16">Hello World</text>
</svg>`

const sampleXML = `<?xml version="1.0" encoding="UTF-8"?>
<data>
    <records>
        <record id="1">
            <name>John Doe</name>
            <age>30</age>
        </record>
        <record id="2">
            <name>Jane Smith</name>
            <age>25</age>
        </record>
    </records>
</data>`

const sampleHTML = `<!DOCTYPE html>
<html>
<head><title>Test HTML</title></head>
<body>
    <h1 id="main-title">Welcome</h1>
    <p class="intro">This is a test.</p>
    <ul>
        <li class="item">Item 1</li>
        <li class="item">Item 2</li>
    </ul>
</body>
</html>`

func compileExpr(t *testing.T, expr string, ns map[string]string) *xpath.Expr {
	t.Helper()
	var (
		compiled *xpath.Expr
		err      error
	)
	if ns == nil {
		compiled, err = xpath.Compile(expr)
	} else {
		compiled, err = xpath.CompileWithNS(expr, ns)
	}
	if err != nil {
		t.Fatalf("compile %q: %v", expr, err)
	}
	return compiled
}

func mustParse(t *testing.T, content string, ft document.FileType) *document.Document {
	t.Helper()
	doc, err := document.Parse([]byte(content), ft)
	if err != nil {
		t.Fatalf("parse %s: %v", ft, err)
	}
	return doc
}

func TestDetectType(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		content string
		want    document.FileType
	}{
		{"svg extension", "chart.svg", "", document.FileTypeSVG},
		{"html extension", "page.html", "", document.FileTypeHTML},
		{"htm extension", "page.htm", "", document.FileTypeHTML},
		{"xml extension", "data.xml", "", document.FileTypeXML},
		{"uppercase extension", "CHART.SVG", "", document.FileTypeSVG},
		{"svg content", "noext", `<svg xmlns="http://www.w3.org/2000/svg"/>`, document.FileTypeSVG},
		{"svg content with declaration", "noext", "<?xml version=\"1.0\"?>\n<svg/>", document.FileTypeSVG},
		{"doctype html", "noext", "<!DOCTYPE html><html></html>", document.FileTypeHTML},
		{"html tag", "noext", "\n<html lang=\"en\"></html>", document.FileTypeHTML},
		{"xml declaration", "noext", "<?xml version=\"1.0\"?><data/>", document.FileTypeXML},
		{"unknown content", "noext", "<data><a/></data>", document.FileTypeXML},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := document.DetectType(tt.path, []byte(tt.content))
			if got != tt.want {
				t.Fatalf("DetectType(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestParseSVGNamespaceQuery(t *testing.T) {
	doc := mustParse(t, sampleSVG, document.FileTypeSVG)

	prefixed := compileExpr(t, "//svg:text", map[string]string{"svg": "http://www.w3.org/2000/svg"})
	nodes := doc.Select(prefixed)
	if len(nodes) != 1 {
		t.Fatalf("prefixed query matched %d nodes, want 1", len(nodes))
	}
	if got := nodes[0].Text(); got != "Hello World" {
		t.Fatalf("text = %q, want %q", got, "Hello World")
	}

	localName := compileExpr(t, `//*[local-name()="rect"]`, nil)
	nodes = doc.Select(localName)
	if len(nodes) != 1 {
		t.Fatalf("local-name query matched %d nodes, want 1", len(nodes))
	}
	if fill, ok := nodes[0].Attr("fill"); !ok || fill != "red" {
		t.Fatalf("fill = %q (ok=%v), want red", fill, ok)
	}

	// An unprefixed element step must not resolve into the default
	// namespace; that silent mismatch is the reason normalization exists.
	bare := compileExpr(t, "//rect", nil)
	if nodes := doc.Select(bare); len(nodes) != 0 {
		t.Fatalf("bare query matched %d nodes, want 0", len(nodes))
	}
}

func TestNodeMutation(t *testing.T) {
	doc := mustParse(t, sampleXML, document.FileTypeXML)

	nodes := doc.Select(compileExpr(t, "//record[@id='1']/name", nil))
	if len(nodes) != 1 {
		t.Fatalf("matched %d nodes, want 1", len(nodes))
	}
	n := nodes[0]
	if n.Text() != "John Doe" {
		t.Fatalf("text = %q, want John Doe", n.Text())
	}
	if !n.SetText("Johnny") {
		t.Fatal("SetText returned false")
	}
	if n.Text() != "Johnny" {
		t.Fatalf("text after set = %q, want Johnny", n.Text())
	}

	rec := doc.Select(compileExpr(t, "//record[@id='2']", nil))[0]
	if !rec.SetAttr("dept", "Sales") {
		t.Fatal("SetAttr returned false")
	}
	if v, ok := rec.Attr("dept"); !ok || v != "Sales" {
		t.Fatalf("dept = %q (ok=%v), want Sales", v, ok)
	}
	if !rec.SetAttr("id", "20") {
		t.Fatal("SetAttr on existing attribute returned false")
	}
	if v, _ := rec.Attr("id"); v != "20" {
		t.Fatalf("id = %q, want 20", v)
	}
	if !rec.RemoveAttr("dept") {
		t.Fatal("RemoveAttr returned false")
	}
	if _, ok := rec.Attr("dept"); ok {
		t.Fatal("dept still present after RemoveAttr")
	}

	out, err := doc.Serialize()
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if !strings.Contains(out, "Johnny") {
		t.Fatalf("serialized output missing edit:\n%s", out)
	}
	if !strings.Contains(out, "<?xml") {
		t.Fatalf("serialized output dropped the declaration:\n%s", out)
	}
}

func TestSetTextKeepsChildElements(t *testing.T) {
	doc := mustParse(t, `<doc><item>lead<sub/>tail</item></doc>`, document.FileTypeXML)
	item := doc.Select(compileExpr(t, "//item", nil))[0]

	if !item.SetText("updated") {
		t.Fatal("SetText returned false")
	}
	if item.Text() != "updated" {
		t.Fatalf("text = %q, want updated", item.Text())
	}
	out, err := doc.Serialize()
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if !strings.Contains(out, "<sub") {
		t.Fatalf("child element lost on SetText:\n%s", out)
	}
	if !strings.Contains(out, "tail") {
		t.Fatalf("trailing text lost on SetText:\n%s", out)
	}
}

func TestAppendAndRemoveChild(t *testing.T) {
	doc := mustParse(t, sampleXML, document.FileTypeXML)
	records := doc.Select(compileExpr(t, "//records", nil))[0]

	if records.ChildCount() != 2 {
		t.Fatalf("child count = %d, want 2", records.ChildCount())
	}
	added := records.AppendChild("record", "pending", []document.Attribute{{Name: "id", Value: "3"}})
	if added == nil {
		t.Fatal("AppendChild returned nil")
	}
	if records.ChildCount() != 3 {
		t.Fatalf("child count after append = %d, want 3", records.ChildCount())
	}
	nodes := doc.Select(compileExpr(t, "//record[@id='3']", nil))
	if len(nodes) != 1 || nodes[0].Text() != "pending" {
		t.Fatalf("appended record not queryable: %d matches", len(nodes))
	}
	if !nodes[0].Remove() {
		t.Fatal("Remove returned false")
	}
	if records.ChildCount() != 2 {
		t.Fatalf("child count after remove = %d, want 2", records.ChildCount())
	}
}

func TestNodePath(t *testing.T) {
	doc := mustParse(t, sampleXML, document.FileTypeXML)
	nodes := doc.Select(compileExpr(t, "//record", nil))
	if len(nodes) != 2 {
		t.Fatalf("matched %d nodes, want 2", len(nodes))
	}
	if got := nodes[1].Path(); got != "/data/records/record[2]" {
		t.Fatalf("path = %q, want /data/records/record[2]", got)
	}
	unique := doc.Select(compileExpr(t, "//records", nil))[0]
	if got := unique.Path(); got != "/data/records" {
		t.Fatalf("path = %q, want /data/records", got)
	}
}

func TestAttributeResultIsReadOnly(t *testing.T) {
	doc := mustParse(t, sampleSVG, document.FileTypeSVG)
	nodes := doc.Select(compileExpr(t, `//*[local-name()="rect"]/@fill`, nil))
	if len(nodes) != 1 {
		t.Fatalf("matched %d attribute nodes, want 1", len(nodes))
	}
	attr := nodes[0]
	if attr.Text() != "red" {
		t.Fatalf("attribute text = %q, want red", attr.Text())
	}
	if attr.Tag() != "@fill" {
		t.Fatalf("attribute tag = %q, want @fill", attr.Tag())
	}
	if attr.SetText("blue") {
		t.Fatal("SetText on attribute result should report false")
	}
	if attr.Remove() {
		t.Fatal("Remove on attribute result should report false")
	}
}

func TestHTMLQueryAndCSS(t *testing.T) {
	doc := mustParse(t, sampleHTML, document.FileTypeHTML)

	nodes := doc.Select(compileExpr(t, "//h1[@id='main-title']", nil))
	if len(nodes) != 1 {
		t.Fatalf("matched %d nodes, want 1", len(nodes))
	}
	if nodes[0].Text() != "Welcome" {
		t.Fatalf("text = %q, want Welcome", nodes[0].Text())
	}
	if !nodes[0].SetText("Hello") {
		t.Fatal("SetText returned false")
	}

	items, err := doc.SelectCSS(".item")
	if err != nil {
		t.Fatalf("SelectCSS: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("css matched %d nodes, want 2", len(items))
	}
	if items[0].Text() != "Item 1" {
		t.Fatalf("css item text = %q, want Item 1", items[0].Text())
	}

	if _, err := doc.SelectCSS("p..bad"); err == nil {
		t.Fatal("expected error for invalid selector")
	}

	out, err := doc.Serialize()
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if !strings.Contains(out, "Hello") {
		t.Fatalf("serialized output missing edit:\n%s", out)
	}
}

func TestCSSRequiresHTML(t *testing.T) {
	doc := mustParse(t, sampleXML, document.FileTypeXML)
	if _, err := doc.SelectCSS(".item"); err == nil {
		t.Fatal("expected error for css selector on xml document")
	}
}

func TestInnerXML(t *testing.T) {
	doc := mustParse(t, `<doc><box><a>1</a><b>2</b></box></doc>`, document.FileTypeXML)
	box := doc.Select(compileExpr(t, "//box", nil))[0]

	inner := box.InnerXML()
	if !strings.Contains(inner, "<a>1</a>") || !strings.Contains(inner, "<b>2</b>") {
		t.Fatalf("inner xml = %q", inner)
	}
	if err := box.SetInnerXML("<c>3</c>"); err != nil {
		t.Fatalf("SetInnerXML: %v", err)
	}
	nodes := doc.Select(compileExpr(t, "//box/c", nil))
	if len(nodes) != 1 || nodes[0].Text() != "3" {
		t.Fatalf("replacement markup not queryable: %d matches", len(nodes))
	}
	if len(doc.Select(compileExpr(t, "//box/a", nil))) != 0 {
		t.Fatal("old child still present after SetInnerXML")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := document.Load("does-not-exist.xml"); err == nil {
		t.Fatal("expected error for missing file")
	}
}
