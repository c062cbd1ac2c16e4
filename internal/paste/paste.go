// Copyright (c) 2025 Richard Iannone
// SPDX-License-Identifier: MIT

// Package paste parses tab-separated text copied out of a browser into table
// data. Wikipedia tables are the main target: they arrive with footnote
// markers, multi-line headers, title lines, and rank numbers on lines of
// their own, and this package straightens all of that out.
package paste

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/rich-iannone/sweet-data/internal/frame"
)

// ErrNoData is returned when the pasted text contains no table at all.
var ErrNoData = errors.New("no table data in pasted text")

// footnoteRe matches the reference markers Wikipedia attaches to cells:
// numbered citations, single-letter notes, and the editorial tags.
var footnoteRe = regexp.MustCompile(`\[(?:\d+|[a-z]|citation needed|needs update)\]`)

// Result is a parsed clipboard table.
type Result struct {
	// Headers holds the detected header row, padded to NumCols. Empty
	// when HasHeaders is false.
	Headers []string

	// Rows holds the data rows, each padded or truncated to NumCols.
	Rows [][]string

	HasHeaders bool
	NumCols    int

	// WikipediaStyle reports whether artifacts specific to Wikipedia
	// copies were seen: footnotes, title lines, folded headers, or
	// rank-on-own-line rows.
	WikipediaStyle bool
}

// NumRows returns the data row count.
func (r *Result) NumRows() int {
	return len(r.Rows)
}

// Frame types the parsed rows into a frame. Without detected headers,
// generated column names are used.
func (r *Result) Frame() (*frame.Frame, error) {
	headers := r.Headers
	if !r.HasHeaders {
		headers = make([]string, r.NumCols)
	}
	return frame.FromRows(headers, r.Rows)
}

// =============================================================================
// PARSER
// =============================================================================

// Parse turns pasted text into a table.
func Parse(text string) (*Result, error) {
	lines, sawFootnotes := splitLines(text)
	if len(lines) == 0 {
		return nil, ErrNoData
	}

	res := &Result{WikipediaStyle: sawFootnotes}

	target := 0
	for _, cells := range lines {
		if len(cells) > target {
			target = len(cells)
		}
	}
	res.NumCols = target

	// A single-cell line ahead of a full-width line is a table title, not
	// data.
	if target > 1 && len(lines) >= 2 && len(lines[0]) == 1 && len(lines[1]) == target {
		lines = lines[1:]
		res.WikipediaStyle = true
	}

	res.HasHeaders = detectHeaders(lines)

	i := 0
	if res.HasHeaders {
		res.Headers = append([]string(nil), lines[0]...)
		i = 1

		// Continuation lines: browsers break spanning headers onto extra
		// lines. Fold each one's first cell into the previous header and
		// take the rest as further headers, until the full width is
		// reached.
		for i < len(lines) && len(lines[i]) < target && !isNumeric(lines[i][0]) &&
			(len(res.Headers) < target || len(lines[i]) == 1) {
			res.Headers = foldHeaderLine(res.Headers, lines[i], target)
			res.WikipediaStyle = true
			i++
		}
		for len(res.Headers) < target {
			res.Headers = append(res.Headers, "")
		}
	}

	// Data rows, merging rank-on-own-line pairs.
	for i < len(lines) {
		cells := lines[i]
		if len(cells) == 1 && isNumeric(cells[0]) && i+1 < len(lines) && len(lines[i+1]) == target-1 {
			merged := append([]string{cells[0]}, lines[i+1]...)
			res.Rows = append(res.Rows, merged)
			res.WikipediaStyle = true
			i += 2
			continue
		}
		res.Rows = append(res.Rows, padRow(cells, target))
		i++
	}

	if res.NumCols == 0 || (len(res.Rows) == 0 && !res.HasHeaders) {
		return nil, ErrNoData
	}
	return res, nil
}

// splitLines breaks the text into cleaned cell slices, dropping blank lines
// and stripping footnote markers. The second return reports whether any
// markers were stripped.
func splitLines(text string) ([][]string, bool) {
	sawFootnotes := false
	var lines [][]string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		cells := strings.Split(line, "\t")
		for j, cell := range cells {
			cleaned := footnoteRe.ReplaceAllString(cell, "")
			if cleaned != cell {
				sawFootnotes = true
			}
			cells[j] = strings.TrimSpace(cleaned)
		}
		lines = append(lines, cells)
	}
	return lines, sawFootnotes
}

// detectHeaders reports whether the first line is a header row: none of its
// cells are numeric (empty leading cells are fine), while the data below
// contains numbers.
func detectHeaders(lines [][]string) bool {
	if len(lines) < 2 {
		return false
	}
	nonEmpty := 0
	for _, cell := range lines[0] {
		if cell == "" {
			continue
		}
		nonEmpty++
		if isNumeric(cell) {
			return false
		}
	}
	if nonEmpty == 0 {
		return false
	}
	for _, cells := range lines[1:] {
		for _, cell := range cells {
			if cell != "" && isNumeric(cell) {
				return true
			}
		}
	}
	return false
}

// foldHeaderLine merges one continuation line into the headers collected so
// far: the line's first cell continues the previous header, the rest become
// new headers up to target columns, and overflow joins the last header.
func foldHeaderLine(headers []string, cells []string, target int) []string {
	appendToLast := func(cell string) {
		if cell == "" || len(headers) == 0 {
			return
		}
		headers[len(headers)-1] = strings.TrimSpace(headers[len(headers)-1] + " " + cell)
	}
	for k, cell := range cells {
		switch {
		case k == 0:
			appendToLast(cell)
		case len(headers) < target:
			headers = append(headers, cell)
		default:
			appendToLast(cell)
		}
	}
	return headers
}

// isNumeric reports whether a cell reads as a number once the decoration
// Wikipedia puts on figures is stripped.
func isNumeric(cell string) bool {
	s := strings.TrimSpace(cell)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "−", "-")
	s = strings.TrimSuffix(s, "%")
	s = strings.TrimPrefix(s, "+")
	s = strings.TrimPrefix(s, "$")
	if s == "" {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// padRow pads or truncates a row to width cells.
func padRow(cells []string, width int) []string {
	if len(cells) == width {
		return cells
	}
	if len(cells) > width {
		return cells[:width]
	}
	out := make([]string, width)
	copy(out, cells)
	return out
}
