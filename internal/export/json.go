// Copyright (c) 2025 Richard Iannone
// SPDX-License-Identifier: MIT

package export

import (
	"encoding/json"
	"fmt"

	"github.com/rich-iannone/sweet-data/internal/frame"
	"github.com/rich-iannone/sweet-data/internal/transform"
	"github.com/rich-iannone/sweet-data/internal/workbook"
)

// =============================================================================
// JSON EXPORTER
// =============================================================================

// JSONExporter renders a sheet as a JSON document carrying both the records
// and the pipeline, so an export can be re-imported without losing lineage.
type JSONExporter struct {
	options *Options
}

// NewJSONExporter creates a new JSON exporter.
func NewJSONExporter(opts *Options) *JSONExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &JSONExporter{options: opts}
}

// jsonDocument is the exported structure.
type jsonDocument struct {
	Sheet   string           `json:"sheet"`
	Source  string           `json:"source,omitempty"`
	Parent  string           `json:"parent,omitempty"`
	Schema  []frame.Field    `json:"schema"`
	Rows    int              `json:"rows"`
	Steps   []transform.Step `json:"steps,omitempty"`
	Records []map[string]any `json:"records"`
}

// Export converts a sheet to JSON.
func (e *JSONExporter) Export(sheet *workbook.Sheet) ([]byte, error) {
	if sheet == nil {
		return nil, fmt.Errorf("sheet is nil")
	}

	names := sheet.Frame.ColumnNames()
	limit := rowLimit(sheet, e.options)

	records := make([]map[string]any, limit)
	for r := 0; r < limit; r++ {
		rec := make(map[string]any, len(names))
		for c, name := range names {
			rec[name] = sheet.Frame.Cell(r, c)
		}
		records[r] = rec
	}

	doc := jsonDocument{
		Sheet:   sheet.Name,
		Source:  sheet.Source,
		Parent:  sheet.Parent,
		Schema:  sheet.Frame.Schema(),
		Rows:    sheet.Frame.NumRows(),
		Records: records,
	}
	if e.options.IncludePipeline {
		doc.Steps = sheet.Steps
	}

	return json.MarshalIndent(doc, "", "  ")
}

// FileExtension returns the file extension for JSON.
func (e *JSONExporter) FileExtension() string {
	return ".json"
}

// MimeType returns the MIME type for JSON.
func (e *JSONExporter) MimeType() string {
	return "application/json"
}
