// Package pdfsvg converts the text layer of a PDF into per-page SVG
// documents that the editor can query and modify like any other SVG.
package pdfsvg

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/ledongthuc/pdf"
)

// Page is the extracted text of one PDF page, one string per text row.
type Page struct {
	Source string
	Number int
	Rows   []string
}

// Geometry of the generated SVG, A4 at 72 dpi.
const (
	pageWidth  = 595
	pageHeight = 842
	marginX    = 40
	topY       = 60
	lineStep   = 18
	fontSize   = 12
)

// ExtractPages reads a PDF and returns the text rows of every page.
func ExtractPages(path string) ([]Page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	source := filepath.Base(path)
	pages := make([]Page, 0, reader.NumPage())
	for i := 1; i <= reader.NumPage(); i++ {
		p := reader.Page(i)
		if p.V.IsNull() {
			continue
		}
		rows, err := p.GetTextByRow()
		if err != nil {
			return nil, fmt.Errorf("extract %s page %d: %w", path, i, err)
		}
		page := Page{Source: source, Number: i}
		for _, row := range rows {
			if text := rowText(row); text != "" {
				page.Rows = append(page.Rows, text)
			}
		}
		pages = append(pages, page)
	}
	return pages, nil
}

// rowText joins the fragments the parser split a row into.
func rowText(row *pdf.Row) string {
	var b strings.Builder
	for _, word := range row.Content {
		b.WriteString(word.S)
	}
	return strings.TrimSpace(b.String())
}

// PageSVG renders one extracted page as a standalone SVG document. Each
// row becomes a text element with a stable row-<n> id, so a rendered
// page stays addressable by the query commands.
func PageSVG(p Page) string {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	svg := doc.CreateElement("svg")
	svg.CreateAttr("xmlns", "http://www.w3.org/2000/svg")
	svg.CreateAttr("width", strconv.Itoa(pageWidth))
	svg.CreateAttr("height", strconv.Itoa(pageHeight))
	svg.CreateAttr("viewBox", fmt.Sprintf("0 0 %d %d", pageWidth, pageHeight))

	meta := svg.CreateElement("metadata")
	meta.CreateElement("source").SetText(p.Source)
	meta.CreateElement("page").SetText(strconv.Itoa(p.Number))
	meta.CreateElement("generator").SetText("xqr")

	y := topY
	for i, row := range p.Rows {
		text := svg.CreateElement("text")
		text.CreateAttr("id", fmt.Sprintf("row-%d", i+1))
		text.CreateAttr("x", strconv.Itoa(marginX))
		text.CreateAttr("y", strconv.Itoa(y))
		text.CreateAttr("font-size", strconv.Itoa(fontSize))
		text.SetText(row)
		y += lineStep
	}

	doc.Indent(2)
	out, _ := doc.WriteToString()
	return out
}

// Convert writes one SVG per PDF page and returns the written paths. An
// empty prefix derives one from the input name, so in.pdf becomes
// in-1.svg, in-2.svg and so on.
func Convert(inPath, outPrefix string) ([]string, error) {
	pages, err := ExtractPages(inPath)
	if err != nil {
		return nil, err
	}
	if outPrefix == "" {
		outPrefix = strings.TrimSuffix(inPath, filepath.Ext(inPath))
	}
	if dir := filepath.Dir(outPrefix); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	paths := make([]string, 0, len(pages))
	for _, page := range pages {
		path := fmt.Sprintf("%s-%d.svg", outPrefix, page.Number)
		if err := os.WriteFile(path, []byte(PageSVG(page)), 0o644); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
