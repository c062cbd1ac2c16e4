// Copyright (c) 2025 Richard Iannone
// SPDX-License-Identifier: MIT

// Package export renders sheets as documents: Markdown, HTML, and JSON with
// the pipeline that produced the data. Plain data-file output (csv, xlsx and
// friends) lives in dataio; this package is for things meant to be read.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rich-iannone/sweet-data/internal/util"
	"github.com/rich-iannone/sweet-data/internal/workbook"
)

// =============================================================================
// EXPORT INTERFACE
// =============================================================================

// Exporter defines the interface for sheet exporters.
type Exporter interface {
	// Export renders a sheet to the target format.
	Export(sheet *workbook.Sheet) ([]byte, error)

	// FileExtension returns the appropriate file extension (e.g., ".md").
	FileExtension() string

	// MimeType returns the MIME type for the exported format.
	MimeType() string
}

// =============================================================================
// EXPORT OPTIONS
// =============================================================================

// Options configures export behavior.
type Options struct {
	// OutputDir is the directory where files will be saved.
	// Default: current working directory
	OutputDir string

	// IncludeMetadata includes a metadata header (timestamp, shape, source).
	IncludeMetadata bool

	// IncludePipeline appends the sheet's transformation script.
	IncludePipeline bool

	// MaxRows caps how many rows land in the document (0 = all).
	MaxRows int

	// Theme for HTML export ("light" or "dark").
	Theme string
}

// DefaultOptions returns default export options.
func DefaultOptions() *Options {
	return &Options{
		OutputDir:       ".",
		IncludeMetadata: true,
		IncludePipeline: true,
		Theme:           "light",
	}
}

// =============================================================================
// EXPORT FUNCTIONS
// =============================================================================

// ExportToFile renders a sheet with the given exporter and writes the result
// under opts.OutputDir. Returns the output file path.
func ExportToFile(sheet *workbook.Sheet, exporter Exporter, opts *Options) (string, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	content, err := exporter.Export(sheet)
	if err != nil {
		return "", fmt.Errorf("export failed: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s%s",
		sanitizeFilename(sheet.Name), timestamp, exporter.FileExtension())

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	outputPath := filepath.Join(opts.OutputDir, filename)
	if err := util.AtomicWriteFile(outputPath, content, 0644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return outputPath, nil
}

// ExportMarkdown renders a sheet to a Markdown file.
func ExportMarkdown(sheet *workbook.Sheet, opts *Options) (string, error) {
	return ExportToFile(sheet, NewMarkdownExporter(opts), opts)
}

// ExportHTML renders a sheet to an HTML file.
func ExportHTML(sheet *workbook.Sheet, opts *Options) (string, error) {
	return ExportToFile(sheet, NewHTMLExporter(opts), opts)
}

// ExportJSON renders a sheet to a JSON document.
func ExportJSON(sheet *workbook.Sheet, opts *Options) (string, error) {
	return ExportToFile(sheet, NewJSONExporter(opts), opts)
}

// ExportScript writes a transform script document under opts.OutputDir and
// returns the output file path. The result is replayable with :run.
func ExportScript(name, script string, opts *Options) (string, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.sweet", sanitizeFilename(name), timestamp)

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	outputPath := filepath.Join(opts.OutputDir, filename)
	if err := util.AtomicWriteFile(outputPath, []byte(script), 0644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return outputPath, nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// sanitizeFilename removes or replaces characters that are invalid in
// filenames on Windows and Unix.
func sanitizeFilename(s string) string {
	maxLen := 50
	runes := []rune(s)
	if len(runes) > maxLen {
		s = string(runes[:maxLen])
	}

	replacer := map[rune]rune{
		'/': '-', '\\': '-', ':': '-', '*': '-', '?': '-',
		'"': '-', '<': '-', '>': '-', '|': '-',
		' ': '_', '\t': '_', '\n': '_', '\r': '_',
	}

	var result []rune
	for _, r := range s {
		if replacement, found := replacer[r]; found {
			result = append(result, replacement)
		} else if r < 32 || r == 127 {
			result = append(result, '-')
		} else {
			result = append(result, r)
		}
	}

	if len(result) == 0 {
		return "sheet"
	}
	return string(result)
}

// rowLimit resolves the effective row cap for a sheet.
func rowLimit(sheet *workbook.Sheet, opts *Options) int {
	n := sheet.Frame.NumRows()
	if opts.MaxRows > 0 && opts.MaxRows < n {
		return opts.MaxRows
	}
	return n
}
