// Copyright (c) 2025 Richard Iannone
// SPDX-License-Identifier: MIT

package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/rich-iannone/sweet-data/internal/transform"
	"github.com/rich-iannone/sweet-data/internal/workbook"
)

// =============================================================================
// MARKDOWN EXPORTER
// =============================================================================

// MarkdownExporter renders sheets as Markdown documents with a pipe table.
type MarkdownExporter struct {
	options *Options
}

// NewMarkdownExporter creates a new Markdown exporter.
func NewMarkdownExporter(opts *Options) *MarkdownExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &MarkdownExporter{options: opts}
}

// Export converts a sheet to Markdown.
func (e *MarkdownExporter) Export(sheet *workbook.Sheet) ([]byte, error) {
	if sheet == nil {
		return nil, fmt.Errorf("sheet is nil")
	}
	if sheet.Frame.NumCols() == 0 {
		return nil, fmt.Errorf("sheet %q has no data", sheet.Name)
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# %s\n\n", escapeMarkdown(sheet.Name)))

	if e.options.IncludeMetadata {
		rows, cols := sheet.Frame.Shape()
		sb.WriteString(fmt.Sprintf("- **Shape**: %d rows x %d columns\n", rows, cols))
		if sheet.Source != "" {
			sb.WriteString(fmt.Sprintf("- **Source**: %s\n", sheet.Source))
		}
		if sheet.Parent != "" {
			sb.WriteString(fmt.Sprintf("- **Branched from**: %s\n", sheet.Parent))
		}
		sb.WriteString(fmt.Sprintf("- **Steps applied**: %d\n", len(sheet.Steps)))
		sb.WriteString(fmt.Sprintf("- **Exported**: %s\n", time.Now().Format(time.RFC3339)))
		sb.WriteString("\n")
	}

	e.writeTable(&sb, sheet)

	if e.options.IncludePipeline && len(sheet.Steps) > 0 {
		sb.WriteString("\n## Pipeline\n\n```\n")
		sb.WriteString(transform.GenerateScript(sheet.Name, sheet.Steps))
		sb.WriteString("```\n")
	}

	return []byte(sb.String()), nil
}

// writeTable renders the frame as a pipe table.
func (e *MarkdownExporter) writeTable(sb *strings.Builder, sheet *workbook.Sheet) {
	names := sheet.Frame.ColumnNames()

	sb.WriteString("|")
	for _, name := range names {
		sb.WriteString(" " + escapeMarkdown(name) + " |")
	}
	sb.WriteString("\n|")
	for range names {
		sb.WriteString(" --- |")
	}
	sb.WriteString("\n")

	limit := rowLimit(sheet, e.options)
	for r := 0; r < limit; r++ {
		sb.WriteString("|")
		for _, cell := range sheet.Frame.Row(r) {
			sb.WriteString(" " + escapeMarkdown(cell) + " |")
		}
		sb.WriteString("\n")
	}
	if limit < sheet.Frame.NumRows() {
		fmt.Fprintf(sb, "\n_%d of %d rows shown._\n", limit, sheet.Frame.NumRows())
	}
}

// FileExtension returns the file extension for Markdown.
func (e *MarkdownExporter) FileExtension() string {
	return ".md"
}

// MimeType returns the MIME type for Markdown.
func (e *MarkdownExporter) MimeType() string {
	return "text/markdown"
}

// escapeMarkdown escapes the characters that would break a pipe table.
func escapeMarkdown(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}
