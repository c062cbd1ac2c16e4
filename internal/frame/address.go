// Copyright (c) 2025 Richard Iannone
// SPDX-License-Identifier: MIT

package frame

import (
	"fmt"
	"strings"
)

// ColumnLabel converts a zero-based column index to its spreadsheet letter
// label: 0 -> "A", 25 -> "Z", 26 -> "AA".
func ColumnLabel(col int) string {
	if col < 0 {
		return ""
	}
	var b []byte
	for col >= 0 {
		b = append([]byte{byte('A' + col%26)}, b...)
		col = col/26 - 1
	}
	return string(b)
}

// ColumnFromLabel converts a letter label back to its zero-based index.
func ColumnFromLabel(label string) (int, error) {
	label = strings.ToUpper(strings.TrimSpace(label))
	if label == "" {
		return 0, fmt.Errorf("empty column label")
	}
	col := 0
	for _, ch := range label {
		if ch < 'A' || ch > 'Z' {
			return 0, fmt.Errorf("invalid column label %q", label)
		}
		col = col*26 + int(ch-'A'+1)
	}
	return col - 1, nil
}

// CellAddress renders zero-based (row, col) coordinates as a spreadsheet
// address, e.g. (6, 1) -> "B7".
func CellAddress(row, col int) string {
	return fmt.Sprintf("%s%d", ColumnLabel(col), row+1)
}

// ParseAddress converts a spreadsheet address like "B7" to zero-based
// (row, col) coordinates.
func ParseAddress(addr string) (row, col int, err error) {
	addr = strings.ToUpper(strings.TrimSpace(addr))
	i := 0
	for i < len(addr) && addr[i] >= 'A' && addr[i] <= 'Z' {
		i++
	}
	if i == 0 || i == len(addr) {
		return 0, 0, fmt.Errorf("invalid cell address %q", addr)
	}
	col, err = ColumnFromLabel(addr[:i])
	if err != nil {
		return 0, 0, err
	}
	n := 0
	for _, ch := range addr[i:] {
		if ch < '0' || ch > '9' {
			return 0, 0, fmt.Errorf("invalid cell address %q", addr)
		}
		n = n*10 + int(ch-'0')
	}
	if n == 0 {
		return 0, 0, fmt.Errorf("invalid cell address %q", addr)
	}
	return n - 1, col, nil
}
