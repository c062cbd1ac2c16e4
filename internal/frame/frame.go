// Copyright (c) 2025 Richard Iannone
// SPDX-License-Identifier: MIT

// Package frame implements the typed in-memory table that every sheet in a
// sweet workbook holds. A Frame is a small ordered set of typed columns; it
// is deliberately not a query engine, just enough structure for the editing
// verbs the application exposes.
package frame

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrColumnNotFound is returned when an operation names a column the
	// frame does not have.
	ErrColumnNotFound = errors.New("column not found")

	// ErrDuplicateColumn is returned when a column name would collide.
	ErrDuplicateColumn = errors.New("duplicate column name")

	// ErrLengthMismatch is returned when columns of unequal length are
	// combined into one frame.
	ErrLengthMismatch = errors.New("columns have unequal lengths")

	// ErrRowOutOfRange is returned for cell access past the frame bounds.
	ErrRowOutOfRange = errors.New("row index out of range")
)

// =============================================================================
// TYPES
// =============================================================================

// DType identifies the element type of a column.
type DType int

const (
	TypeString DType = iota
	TypeInt
	TypeFloat
	TypeBool
	TypeTime
)

// String returns the short lowercase name used in schemas and the status bar.
func (t DType) String() string {
	switch t {
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeBool:
		return "bool"
	case TypeTime:
		return "time"
	default:
		return "str"
	}
}

// Column is a named, typed vector of cells. Values hold int64, float64, bool,
// time.Time or string according to Type; nil marks a missing cell.
type Column struct {
	Name   string
	Type   DType
	Values []any
}

// Field is one entry of a frame schema.
type Field struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Frame is an ordered collection of equal-length columns.
type Frame struct {
	Columns []Column
}

// =============================================================================
// CONSTRUCTION
// =============================================================================

// Empty returns a frame with no columns and no rows.
func Empty() *Frame {
	return &Frame{}
}

// New builds a frame from prepared columns, validating the frame invariants:
// equal column lengths and unique, non-empty column names.
func New(cols ...Column) (*Frame, error) {
	seen := make(map[string]bool, len(cols))
	rows := -1
	for _, c := range cols {
		if c.Name == "" {
			return nil, fmt.Errorf("column name must not be empty")
		}
		if seen[c.Name] {
			return nil, fmt.Errorf("column %q: %w", c.Name, ErrDuplicateColumn)
		}
		seen[c.Name] = true
		if rows == -1 {
			rows = len(c.Values)
		} else if len(c.Values) != rows {
			return nil, fmt.Errorf("column %q has %d rows, want %d: %w",
				c.Name, len(c.Values), rows, ErrLengthMismatch)
		}
	}
	return &Frame{Columns: cols}, nil
}

// FromRows builds a typed frame from raw string data, the path every file
// reader and paste operation funnels through. Headers are deduplicated and
// blanks replaced with generated names; ragged rows are padded with empty
// cells; each column's type is inferred from its values.
func FromRows(headers []string, rows [][]string) (*Frame, error) {
	headers = normalizeHeaders(headers)

	cols := make([]Column, len(headers))
	for i, name := range headers {
		raw := make([]string, len(rows))
		for r, row := range rows {
			if i < len(row) {
				raw[r] = row[i]
			}
		}
		dtype := inferType(raw)
		values := make([]any, len(raw))
		for r, cell := range raw {
			v, err := parseValue(cell, dtype)
			if err != nil {
				// A late value the sample missed; the whole column
				// falls back to strings.
				dtype = TypeString
				for rr := 0; rr <= r; rr++ {
					values[rr], _ = parseValue(raw[rr], TypeString)
				}
				continue
			}
			values[r] = v
		}
		cols[i] = Column{Name: name, Type: dtype, Values: values}
	}
	return New(cols...)
}

// normalizeHeaders fills blanks and resolves duplicates so the frame name
// invariant always holds, whatever the input file looked like.
func normalizeHeaders(headers []string) []string {
	out := make([]string, len(headers))
	seen := make(map[string]int, len(headers))
	for i, h := range headers {
		h = strings.TrimSpace(h)
		if h == "" {
			h = "column_" + strconv.Itoa(i+1)
		}
		if n, ok := seen[h]; ok {
			base := h
			for {
				n++
				h = base + "_" + strconv.Itoa(n)
				if _, taken := seen[h]; !taken {
					break
				}
			}
			seen[base] = n
		}
		seen[h] = 1
		out[i] = h
	}
	return out
}

// =============================================================================
// SHAPE AND ACCESS
// =============================================================================

// NumRows returns the row count.
func (f *Frame) NumRows() int {
	if len(f.Columns) == 0 {
		return 0
	}
	return len(f.Columns[0].Values)
}

// NumCols returns the column count.
func (f *Frame) NumCols() int {
	return len(f.Columns)
}

// Shape returns (rows, cols).
func (f *Frame) Shape() (int, int) {
	return f.NumRows(), f.NumCols()
}

// ColumnNames returns the column names in order.
func (f *Frame) ColumnNames() []string {
	names := make([]string, len(f.Columns))
	for i, c := range f.Columns {
		names[i] = c.Name
	}
	return names
}

// ColumnIndex returns the position of the named column, or -1.
func (f *Frame) ColumnIndex(name string) int {
	for i, c := range f.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// Schema returns the ordered name/type pairs of the frame.
func (f *Frame) Schema() []Field {
	fields := make([]Field, len(f.Columns))
	for i, c := range f.Columns {
		fields[i] = Field{Name: c.Name, Type: c.Type.String()}
	}
	return fields
}

// Cell returns the raw value at (row, col). Out-of-range access returns nil.
func (f *Frame) Cell(row, col int) any {
	if col < 0 || col >= len(f.Columns) {
		return nil
	}
	if row < 0 || row >= len(f.Columns[col].Values) {
		return nil
	}
	return f.Columns[col].Values[row]
}

// CellString returns the display form of the cell at (row, col).
func (f *Frame) CellString(row, col int) string {
	return FormatValue(f.Cell(row, col))
}

// SetCell parses raw into the column's type and stores it. When raw does not
// parse, the column is demoted to String and the text kept verbatim, so an
// edit never fails outright.
func (f *Frame) SetCell(row, col int, raw string) error {
	if col < 0 || col >= len(f.Columns) {
		return fmt.Errorf("column %d: %w", col, ErrColumnNotFound)
	}
	c := &f.Columns[col]
	if row < 0 || row >= len(c.Values) {
		return fmt.Errorf("row %d: %w", row, ErrRowOutOfRange)
	}
	v, err := parseValue(raw, c.Type)
	if err != nil {
		c.Type = TypeString
		v = strings.TrimSpace(raw)
	}
	c.Values[row] = v
	return nil
}

// Row returns one row's display values, used by writers and the grid.
func (f *Frame) Row(row int) []string {
	out := make([]string, len(f.Columns))
	for i := range f.Columns {
		out[i] = f.CellString(row, i)
	}
	return out
}

// =============================================================================
// COPYING
// =============================================================================

// Clone returns a deep copy of the frame.
func (f *Frame) Clone() *Frame {
	cols := make([]Column, len(f.Columns))
	for i, c := range f.Columns {
		values := make([]any, len(c.Values))
		copy(values, c.Values)
		cols[i] = Column{Name: c.Name, Type: c.Type, Values: values}
	}
	return &Frame{Columns: cols}
}

// sliceRows copies the rows in [lo, hi) into a new frame.
func (f *Frame) sliceRows(lo, hi int) *Frame {
	cols := make([]Column, len(f.Columns))
	for i, c := range f.Columns {
		values := make([]any, hi-lo)
		copy(values, c.Values[lo:hi])
		cols[i] = Column{Name: c.Name, Type: c.Type, Values: values}
	}
	return &Frame{Columns: cols}
}

// takeRows copies the given row indices, in order, into a new frame.
func (f *Frame) takeRows(idx []int) *Frame {
	cols := make([]Column, len(f.Columns))
	for i, c := range f.Columns {
		values := make([]any, len(idx))
		for j, r := range idx {
			values[j] = c.Values[r]
		}
		cols[i] = Column{Name: c.Name, Type: c.Type, Values: values}
	}
	return &Frame{Columns: cols}
}

// =============================================================================
// TRANSFORM VERBS
// =============================================================================

// Head returns the first n rows (all rows when n exceeds the frame).
func (f *Frame) Head(n int) *Frame {
	if n < 0 {
		n = 0
	}
	if n > f.NumRows() {
		n = f.NumRows()
	}
	return f.sliceRows(0, n)
}

// Tail returns the last n rows.
func (f *Frame) Tail(n int) *Frame {
	rows := f.NumRows()
	if n < 0 {
		n = 0
	}
	if n > rows {
		n = rows
	}
	return f.sliceRows(rows-n, rows)
}

// Select keeps only the named columns, in the given order.
func (f *Frame) Select(names ...string) (*Frame, error) {
	cols := make([]Column, 0, len(names))
	for _, name := range names {
		i := f.ColumnIndex(name)
		if i < 0 {
			return nil, fmt.Errorf("select %q: %w", name, ErrColumnNotFound)
		}
		c := f.Columns[i]
		values := make([]any, len(c.Values))
		copy(values, c.Values)
		cols = append(cols, Column{Name: c.Name, Type: c.Type, Values: values})
	}
	return New(cols...)
}

// Drop removes the named columns.
func (f *Frame) Drop(names ...string) (*Frame, error) {
	drop := make(map[string]bool, len(names))
	for _, name := range names {
		if f.ColumnIndex(name) < 0 {
			return nil, fmt.Errorf("drop %q: %w", name, ErrColumnNotFound)
		}
		drop[name] = true
	}
	keep := make([]string, 0, len(f.Columns))
	for _, c := range f.Columns {
		if !drop[c.Name] {
			keep = append(keep, c.Name)
		}
	}
	return f.Select(keep...)
}

// Rename changes one column's name.
func (f *Frame) Rename(old, new string) (*Frame, error) {
	i := f.ColumnIndex(old)
	if i < 0 {
		return nil, fmt.Errorf("rename %q: %w", old, ErrColumnNotFound)
	}
	if new == "" {
		return nil, fmt.Errorf("rename: new name must not be empty")
	}
	if j := f.ColumnIndex(new); j >= 0 && j != i {
		return nil, fmt.Errorf("rename to %q: %w", new, ErrDuplicateColumn)
	}
	out := f.Clone()
	out.Columns[i].Name = new
	return out, nil
}

// SortBy orders rows by one column. Nil cells sort first; the sort is stable
// so prior orderings survive as secondary keys.
func (f *Frame) SortBy(name string, desc bool) (*Frame, error) {
	ci := f.ColumnIndex(name)
	if ci < 0 {
		return nil, fmt.Errorf("sort %q: %w", name, ErrColumnNotFound)
	}
	c := f.Columns[ci]
	idx := make([]int, f.NumRows())
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		cmp := compareValues(c.Values[idx[a]], c.Values[idx[b]])
		if desc {
			return cmp > 0
		}
		return cmp < 0
	})
	return f.takeRows(idx), nil
}

// Filter keeps rows where the named column satisfies `op value`. The value
// is parsed into the column's type; "contains" matches on the display form.
func (f *Frame) Filter(name, op, value string) (*Frame, error) {
	ci := f.ColumnIndex(name)
	if ci < 0 {
		return nil, fmt.Errorf("filter %q: %w", name, ErrColumnNotFound)
	}
	c := f.Columns[ci]

	if op == "contains" {
		var idx []int
		needle := strings.ToLower(value)
		for r, v := range c.Values {
			if strings.Contains(strings.ToLower(FormatValue(v)), needle) {
				idx = append(idx, r)
			}
		}
		return f.takeRows(idx), nil
	}

	want, err := parseValue(value, c.Type)
	if err != nil || want == nil {
		return nil, fmt.Errorf("filter: value %q does not parse as %s", value, c.Type)
	}

	var idx []int
	for r, v := range c.Values {
		if v == nil {
			continue
		}
		cmp := compareValues(v, want)
		keep := false
		switch op {
		case "==":
			keep = cmp == 0
		case "!=":
			keep = cmp != 0
		case ">":
			keep = cmp > 0
		case ">=":
			keep = cmp >= 0
		case "<":
			keep = cmp < 0
		case "<=":
			keep = cmp <= 0
		default:
			return nil, fmt.Errorf("filter: unknown operator %q", op)
		}
		if keep {
			idx = append(idx, r)
		}
	}
	return f.takeRows(idx), nil
}

// Distinct removes duplicate rows, judged on the named columns (all columns
// when none are given). The first occurrence of each key wins.
func (f *Frame) Distinct(names ...string) (*Frame, error) {
	if len(names) == 0 {
		names = f.ColumnNames()
	}
	cis := make([]int, len(names))
	for i, name := range names {
		ci := f.ColumnIndex(name)
		if ci < 0 {
			return nil, fmt.Errorf("distinct %q: %w", name, ErrColumnNotFound)
		}
		cis[i] = ci
	}
	seen := make(map[string]bool)
	var idx []int
	for r := 0; r < f.NumRows(); r++ {
		var key strings.Builder
		for _, ci := range cis {
			key.WriteString(FormatValue(f.Columns[ci].Values[r]))
			key.WriteByte('\x1f')
		}
		k := key.String()
		if !seen[k] {
			seen[k] = true
			idx = append(idx, r)
		}
	}
	return f.takeRows(idx), nil
}

// WithColumn appends a derived numeric column: name = left op right, where
// right is either another column or a literal number. Rows where an operand
// is missing or non-numeric yield nil.
func (f *Frame) WithColumn(name, left, op, right string) (*Frame, error) {
	if f.ColumnIndex(name) >= 0 {
		return nil, fmt.Errorf("withcol %q: %w", name, ErrDuplicateColumn)
	}
	li := f.ColumnIndex(left)
	if li < 0 {
		return nil, fmt.Errorf("withcol %q: %w", left, ErrColumnNotFound)
	}

	ri := f.ColumnIndex(right)
	var lit float64
	var haveLit bool
	if ri < 0 {
		v, err := strconv.ParseFloat(right, 64)
		if err != nil {
			return nil, fmt.Errorf("withcol: %q is neither a column nor a number", right)
		}
		lit = v
		haveLit = true
	}

	rows := f.NumRows()
	values := make([]any, rows)
	for r := 0; r < rows; r++ {
		a, ok := asFloat(f.Columns[li].Values[r])
		if !ok {
			continue
		}
		b := lit
		if !haveLit {
			var bok bool
			b, bok = asFloat(f.Columns[ri].Values[r])
			if !bok {
				continue
			}
		}
		switch op {
		case "+":
			values[r] = a + b
		case "-":
			values[r] = a - b
		case "*":
			values[r] = a * b
		case "/":
			if b == 0 {
				continue
			}
			values[r] = a / b
		default:
			return nil, fmt.Errorf("withcol: unknown operator %q", op)
		}
	}

	out := f.Clone()
	out.Columns = append(out.Columns, Column{Name: name, Type: TypeFloat, Values: values})
	return out, nil
}

// =============================================================================
// FINGERPRINT
// =============================================================================

// hashSampleRows caps how much data feeds the fingerprint.
const hashSampleRows = 100

// Hash fingerprints the frame over its schema, shape, and a bounded sample of
// rows. Transform steps record it so a pipeline can tell when its input data
// changed underneath it.
func (f *Frame) Hash() string {
	h := sha256.New()
	for _, fd := range f.Schema() {
		fmt.Fprintf(h, "%s:%s;", fd.Name, fd.Type)
	}
	rows, cols := f.Shape()
	fmt.Fprintf(h, "|%dx%d|", rows, cols)
	n := rows
	if n > hashSampleRows {
		n = hashSampleRows
	}
	for r := 0; r < n; r++ {
		for c := 0; c < cols; c++ {
			h.Write([]byte(f.CellString(r, c)))
			h.Write([]byte{'\x1f'})
		}
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// =============================================================================
// VALUE HELPERS
// =============================================================================

// FormatValue renders a cell for display and hashing. Missing cells render
// as the empty string.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		if x.Hour() == 0 && x.Minute() == 0 && x.Second() == 0 {
			return x.Format("2006-01-02")
		}
		return x.Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", x)
	}
}

// compareValues orders two cells of the same column. Nil sorts before
// everything; mismatched kinds fall back to string comparison.
func compareValues(a, b any) int {
	if a == nil && b == nil {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}
	switch x := a.(type) {
	case int64:
		if y, ok := b.(int64); ok {
			switch {
			case x < y:
				return -1
			case x > y:
				return 1
			}
			return 0
		}
	case float64:
		if y, ok := b.(float64); ok {
			switch {
			case x < y:
				return -1
			case x > y:
				return 1
			}
			return 0
		}
	case bool:
		if y, ok := b.(bool); ok {
			switch {
			case !x && y:
				return -1
			case x && !y:
				return 1
			}
			return 0
		}
	case time.Time:
		if y, ok := b.(time.Time); ok {
			switch {
			case x.Before(y):
				return -1
			case x.After(y):
				return 1
			}
			return 0
		}
	}
	return strings.Compare(FormatValue(a), FormatValue(b))
}

// asFloat widens a numeric cell to float64 for arithmetic.
func asFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case int64:
		return float64(x), true
	case float64:
		return x, true
	default:
		return 0, false
	}
}
