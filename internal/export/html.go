// Copyright (c) 2025 Richard Iannone
// SPDX-License-Identifier: MIT

package export

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/rich-iannone/sweet-data/internal/transform"
	"github.com/rich-iannone/sweet-data/internal/workbook"
)

// =============================================================================
// HTML EXPORTER
// =============================================================================

// HTMLExporter renders sheets as standalone HTML documents.
type HTMLExporter struct {
	options *Options
}

// NewHTMLExporter creates a new HTML exporter.
func NewHTMLExporter(opts *Options) *HTMLExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &HTMLExporter{options: opts}
}

// Export converts a sheet to a full HTML document.
func (e *HTMLExporter) Export(sheet *workbook.Sheet) ([]byte, error) {
	if sheet == nil {
		return nil, fmt.Errorf("sheet is nil")
	}
	if sheet.Frame.NumCols() == 0 {
		return nil, fmt.Errorf("sheet %q has no data", sheet.Name)
	}

	var sb strings.Builder

	sb.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	sb.WriteString(fmt.Sprintf("<title>%s</title>\n", html.EscapeString(sheet.Name)))
	sb.WriteString("<meta charset=\"utf-8\">\n")
	sb.WriteString("<style>\n")
	sb.WriteString(e.styles())
	sb.WriteString("</style>\n</head>\n<body>\n")

	sb.WriteString(fmt.Sprintf("<h1>%s</h1>\n", html.EscapeString(sheet.Name)))

	if e.options.IncludeMetadata {
		rows, cols := sheet.Frame.Shape()
		sb.WriteString("<ul class=\"meta\">\n")
		fmt.Fprintf(&sb, "<li>%d rows x %d columns</li>\n", rows, cols)
		if sheet.Source != "" {
			fmt.Fprintf(&sb, "<li>Source: %s</li>\n", html.EscapeString(sheet.Source))
		}
		fmt.Fprintf(&sb, "<li>Exported %s</li>\n", time.Now().Format(time.RFC3339))
		sb.WriteString("</ul>\n")
	}

	e.writeTable(&sb, sheet)

	if e.options.IncludePipeline && len(sheet.Steps) > 0 {
		sb.WriteString("<h2>Pipeline</h2>\n<pre>")
		sb.WriteString(html.EscapeString(transform.GenerateScript(sheet.Name, sheet.Steps)))
		sb.WriteString("</pre>\n")
	}

	sb.WriteString("</body>\n</html>\n")
	return []byte(sb.String()), nil
}

// writeTable renders the frame as an HTML table.
func (e *HTMLExporter) writeTable(sb *strings.Builder, sheet *workbook.Sheet) {
	sb.WriteString("<table>\n<thead>\n<tr>")
	for _, name := range sheet.Frame.ColumnNames() {
		fmt.Fprintf(sb, "<th>%s</th>", html.EscapeString(name))
	}
	sb.WriteString("</tr>\n</thead>\n<tbody>\n")

	limit := rowLimit(sheet, e.options)
	for r := 0; r < limit; r++ {
		sb.WriteString("<tr>")
		for _, cell := range sheet.Frame.Row(r) {
			fmt.Fprintf(sb, "<td>%s</td>", html.EscapeString(cell))
		}
		sb.WriteString("</tr>\n")
	}
	sb.WriteString("</tbody>\n</table>\n")
}

// styles returns the embedded stylesheet for the chosen theme.
func (e *HTMLExporter) styles() string {
	fg, bg, line := "#1a1a1a", "#ffffff", "#d0d0d0"
	if e.options.Theme == "dark" {
		fg, bg, line = "#e6e6e6", "#141414", "#3a3a3a"
	}
	return fmt.Sprintf(`body { font-family: sans-serif; color: %s; background: %s; margin: 2em; }
table { border-collapse: collapse; }
th, td { border: 1px solid %s; padding: 4px 10px; text-align: left; }
th { font-weight: 600; }
.meta { color: #888; }
pre { background: rgba(128,128,128,0.1); padding: 1em; }
`, fg, bg, line)
}

// FileExtension returns the file extension for HTML.
func (e *HTMLExporter) FileExtension() string {
	return ".html"
}

// MimeType returns the MIME type for HTML.
func (e *HTMLExporter) MimeType() string {
	return "text/html"
}
