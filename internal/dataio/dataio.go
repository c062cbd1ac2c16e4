// Copyright (c) 2025 Richard Iannone
// SPDX-License-Identifier: MIT

// Package dataio reads and writes the tabular file formats sweet understands:
// CSV, TSV, JSON (array of objects), and XLSX.
package dataio

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rich-iannone/sweet-data/internal/frame"
)

// =============================================================================
// FORMATS
// =============================================================================

// Format names a supported file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatTSV  Format = "tsv"
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
)

var (
	// ErrUnknownFormat is returned when a format cannot be determined or
	// is not supported.
	ErrUnknownFormat = errors.New("unknown file format")

	// ErrEmptyFile is returned when a file contains no table at all.
	ErrEmptyFile = errors.New("file contains no data")
)

// Formats lists every supported format, for help text and validation.
func Formats() []Format {
	return []Format{FormatCSV, FormatTSV, FormatJSON, FormatXLSX}
}

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FormatCSV, FormatTSV, FormatJSON, FormatXLSX:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// DetectFormat infers the format from a file extension.
func DetectFormat(path string) (Format, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch ext {
	case "csv":
		return FormatCSV, nil
	case "tsv", "tab":
		return FormatTSV, nil
	case "json":
		return FormatJSON, nil
	case "xlsx":
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("%w: extension %q", ErrUnknownFormat, ext)
}

// =============================================================================
// READ / WRITE DISPATCH
// =============================================================================

// ReadFile loads path into a frame. An empty format means detect from the
// extension.
func ReadFile(path string, format Format) (*frame.Frame, error) {
	var err error
	if format == "" {
		format, err = DetectFormat(path)
		if err != nil {
			return nil, err
		}
	}
	switch format {
	case FormatCSV:
		return readCSV(path, ',')
	case FormatTSV:
		return readCSV(path, '\t')
	case FormatJSON:
		return readJSON(path)
	case FormatXLSX:
		return readXLSX(path)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// WriteFile saves a frame to path. An empty format means detect from the
// extension.
func WriteFile(f *frame.Frame, path string, format Format) error {
	var err error
	if format == "" {
		format, err = DetectFormat(path)
		if err != nil {
			return err
		}
	}
	switch format {
	case FormatCSV:
		return writeCSV(f, path, ',')
	case FormatTSV:
		return writeCSV(f, path, '\t')
	case FormatJSON:
		return writeJSON(f, path)
	case FormatXLSX:
		return writeXLSX(f, path)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}
