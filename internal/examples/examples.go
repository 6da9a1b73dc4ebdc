// Package examples generates sample SVG, XML and HTML files so the CLI
// can be tried without any input documents at hand.
package examples

import (
	"fmt"
	"os"
	"path/filepath"

	"xqr/document"
)

const exampleSVG = `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="200" height="200">
    <metadata>
        <title>Example SVG</title>
        <description>Test file for editor</description>
        <version>1.0</version>
        <author>File Editor</author>
    </metadata>
    <rect x="10" y="10" width="50" height="50" fill="red" id="square1"/>
    <circle cx="100" cy="100" r="30" fill="blue" id="circle1"/>
    <text x="50" y="150" id="text1" font-size="16">Hello World</text>
    <text x="120" y="170" id="text2" font-size="12" fill="green">Sample Text</text>
</svg>`

const exampleXML = `<?xml version="1.0" encoding="UTF-8"?>
<data>
    <metadata>
        <title>Example Data</title>
        <version>1.0</version>
        <created>2025-06-28</created>
        <format>sample-data</format>
    </metadata>
    <records>
        <record id="1">
            <name>John Doe</name>
            <age>30</age>
            <email>john@example.com</email>
            <department>Engineering</department>
        </record>
        <record id="2">
            <name>Jane Smith</name>
            <age>25</age>
            <email>jane@example.com</email>
            <department>Marketing</department>
        </record>
        <record id="3">
            <name>Bob Johnson</name>
            <age>35</age>
            <email>bob@example.com</email>
            <department>Sales</department>
        </record>
    </records>
    <configuration>
        <setting name="debug" value="true"/>
        <setting name="timeout" value="30"/>
        <setting name="max_records" value="1000"/>
    </configuration>
</data>`

const exampleHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <meta name="description" content="Test HTML file for the file editor">
    <title>Example HTML</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 20px; }
        .header { background: #f0f0f0; padding: 20px; }
        .content { margin: 20px 0; }
        .item { margin: 10px 0; padding: 10px; border: 1px solid #ddd; }
    </style>
</head>
<body>
    <div class="header">
        <h1 id="main-title">Welcome to Test Page</h1>
        <p id="subtitle">This is a sample HTML file for testing</p>
    </div>

    <div class="content">
        <h2 id="section-title">Sample Content</h2>
        <p id="intro">This is a test paragraph with some sample content.</p>

        <h3>List of Items</h3>
        <ul id="item-list">
            <li class="item" data-type="feature">Interactive editing</li>
            <li class="item" data-type="feature">XPath support</li>
            <li class="item" data-type="feature">CSS selectors</li>
            <li class="item" data-type="bonus">Web interface</li>
        </ul>

        <div id="info-box" class="info">
            <h4>Information</h4>
            <p>You can edit this content from the command line.</p>
            <a href="#" id="sample-link">Sample Link</a>
        </div>
    </div>

    <footer id="footer">
        <p>Last updated <span id="year">2025</span></p>
    </footer>
</body>
</html>`

const complexChartSVG = `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg"
     width="400" height="300" viewBox="0 0 400 300">

    <metadata>
        <data-store>
        {
            "chart_data": [
                {"month": "Jan", "sales": 120, "color": "#3498db"},
                {"month": "Feb", "sales": 150, "color": "#e74c3c"},
                {"month": "Mar", "sales": 180, "color": "#2ecc71"}
            ],
            "config": {
                "title": "Q1 Sales Data",
                "currency": "USD",
                "scale": 1000
            }
        }
        </data-store>
    </metadata>

    <defs>
        <linearGradient id="bg" x1="0%" y1="0%" x2="100%" y2="100%">
            <stop offset="0%" style="stop-color:#f8f9fa"/>
            <stop offset="100%" style="stop-color:#e9ecef"/>
        </linearGradient>
    </defs>

    <rect width="100%" height="100%" fill="url(#bg)"/>

    <text x="200" y="30" text-anchor="middle" font-size="18" font-weight="bold" id="chart-title">
        Q1 Sales Data
    </text>

    <g id="chart-bars">
        <rect x="50" y="200" width="40" height="80" fill="#3498db" id="bar-jan">
            <title>January: $120k</title>
        </rect>
        <text x="70" y="295" text-anchor="middle" font-size="12">Jan</text>

        <rect x="150" y="170" width="40" height="110" fill="#e74c3c" id="bar-feb">
            <title>February: $150k</title>
        </rect>
        <text x="170" y="295" text-anchor="middle" font-size="12">Feb</text>

        <rect x="250" y="140" width="40" height="140" fill="#2ecc71" id="bar-mar">
            <title>March: $180k</title>
        </rect>
        <text x="270" y="295" text-anchor="middle" font-size="12">Mar</text>
    </g>

    <text x="50" y="290" font-size="10" fill="#666" id="footer-text">
        Generated sample chart
    </text>
</svg>`

// Create writes the sample files into dir, creating it if needed. An
// empty dir targets the current working directory. It returns the paths
// written, in a stable order.
func Create(dir string) ([]string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create directory %s: %w", dir, err)
	}

	files := []struct {
		name    string
		content string
	}{
		{"example.svg", exampleSVG},
		{"example.xml", exampleXML},
		{"example.html", exampleHTML},
		{"complex_chart.svg", complexChartSVG},
	}

	paths := make([]string, 0, len(files))
	for _, f := range files {
		path := filepath.Join(dir, f.name)
		if err := os.WriteFile(path, []byte(f.content), 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// SampleXPathQueries returns queries that match the generated files,
// keyed by file type, for help output and smoke tests.
func SampleXPathQueries() map[document.FileType][]string {
	return map[document.FileType][]string{
		document.FileTypeSVG: {
			`//text[@id="text1"]`,
			`//rect[@fill="red"]`,
			`//metadata/title`,
			`//*[@id="circle1"]`,
			`//text[contains(@font-size, "16")]`,
		},
		document.FileTypeXML: {
			`//record[@id="1"]`,
			`//record/name`,
			`//metadata/title`,
			`//setting[@name="debug"]`,
			`//record[age>30]/name`,
		},
		document.FileTypeHTML: {
			`//*[@id="main-title"]`,
			`//meta[@name="description"]`,
			`//li[@class="item"]`,
			`//a[@href="#"]`,
			`//span[@id="year"]`,
		},
	}
}

// SampleCSSQueries returns CSS selectors that match the generated HTML
// file.
func SampleCSSQueries() []string {
	return []string{
		"#main-title",
		".item",
		`li[data-type="feature"]`,
		`meta[name="description"]`,
		"div.content p",
		"footer#footer",
	}
}
