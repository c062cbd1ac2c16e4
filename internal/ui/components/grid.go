// Copyright (c) 2025 Richard Iannone
// SPDX-License-Identifier: MIT

// Package components provides the visual UI components for the sweet TUI.
package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/rich-iannone/sweet-data/internal/frame"
	"github.com/rich-iannone/sweet-data/internal/ui/styles"
)

// =============================================================================
// GRID COMPONENT
// =============================================================================

// Grid renders a frame as a spreadsheet-style table with Excel column labels,
// numbered row labels, and a movable cell cursor.
type Grid struct {
	Width  int
	Height int

	// MaxColWidth caps rendered cell width.
	MaxColWidth int

	// ShowRowNumbers toggles the row label gutter.
	ShowRowNumbers bool

	CursorRow int
	CursorCol int

	frame     *frame.Frame
	offsetRow int
	offsetCol int
	theme     *styles.Theme
}

// NewGrid creates a grid bound to a theme.
func NewGrid(theme *styles.Theme) *Grid {
	return &Grid{
		Width:          80,
		Height:         20,
		MaxColWidth:    32,
		ShowRowNumbers: true,
		theme:          theme,
	}
}

// SetFrame replaces the displayed frame and clamps the cursor.
func (g *Grid) SetFrame(f *frame.Frame) {
	g.frame = f
	g.clampCursor()
}

// Frame returns the displayed frame (may be nil).
func (g *Grid) Frame() *frame.Frame {
	return g.frame
}

// SetSize updates the viewport dimensions.
func (g *Grid) SetSize(width, height int) {
	g.Width = width
	g.Height = height
	g.scrollToCursor()
}

// MoveCursor moves the cell cursor by the given deltas, scrolling as needed.
func (g *Grid) MoveCursor(dRow, dCol int) {
	g.CursorRow += dRow
	g.CursorCol += dCol
	g.clampCursor()
	g.scrollToCursor()
}

// JumpTo positions the cursor at an absolute cell.
func (g *Grid) JumpTo(row, col int) {
	g.CursorRow = row
	g.CursorCol = col
	g.clampCursor()
	g.scrollToCursor()
}

// PageDown moves the cursor a page of rows forward.
func (g *Grid) PageDown() {
	g.MoveCursor(g.visibleRows(), 0)
}

// PageUp moves the cursor a page of rows back.
func (g *Grid) PageUp() {
	g.MoveCursor(-g.visibleRows(), 0)
}

// Home moves the cursor to the first cell.
func (g *Grid) Home() {
	g.JumpTo(0, 0)
}

// End moves the cursor to the last row of the current column.
func (g *Grid) End() {
	if g.frame == nil {
		return
	}
	g.JumpTo(g.frame.NumRows()-1, g.CursorCol)
}

// CursorAddress returns the spreadsheet address of the cursor (e.g. "C7").
func (g *Grid) CursorAddress() string {
	if g.frame == nil || g.frame.NumCols() == 0 {
		return ""
	}
	return frame.CellAddress(g.CursorRow, g.CursorCol)
}

// CursorColumn returns the column under the cursor (nil when empty).
func (g *Grid) CursorColumn() *frame.Column {
	if g.frame == nil || g.CursorCol >= g.frame.NumCols() {
		return nil
	}
	return &g.frame.Columns[g.CursorCol]
}

// CursorValue returns the formatted value under the cursor.
func (g *Grid) CursorValue() string {
	if g.frame == nil || g.frame.NumRows() == 0 {
		return ""
	}
	return g.frame.CellString(g.CursorRow, g.CursorCol)
}

func (g *Grid) clampCursor() {
	if g.frame == nil {
		g.CursorRow, g.CursorCol = 0, 0
		return
	}
	if g.CursorRow < 0 {
		g.CursorRow = 0
	}
	if max := g.frame.NumRows() - 1; g.CursorRow > max && max >= 0 {
		g.CursorRow = max
	}
	if g.CursorCol < 0 {
		g.CursorCol = 0
	}
	if max := g.frame.NumCols() - 1; g.CursorCol > max && max >= 0 {
		g.CursorCol = max
	}
}

func (g *Grid) scrollToCursor() {
	rows := g.visibleRows()
	if g.CursorRow < g.offsetRow {
		g.offsetRow = g.CursorRow
	}
	if g.CursorRow >= g.offsetRow+rows {
		g.offsetRow = g.CursorRow - rows + 1
	}
	if g.offsetRow < 0 {
		g.offsetRow = 0
	}

	if g.CursorCol < g.offsetCol {
		g.offsetCol = g.CursorCol
	}
	// Scroll right until the cursor column fits
	for g.offsetCol < g.CursorCol && !g.columnVisible(g.CursorCol) {
		g.offsetCol++
	}
}

// visibleRows is the number of data rows that fit (one line is the header).
func (g *Grid) visibleRows() int {
	rows := g.Height - 1
	if rows < 1 {
		rows = 1
	}
	return rows
}

// columnVisible reports whether col fits on screen with the current offset.
func (g *Grid) columnVisible(col int) bool {
	x := g.gutterWidth()
	for c := g.offsetCol; c <= col && c < g.frame.NumCols(); c++ {
		x += g.columnWidth(c) + 1
		if x > g.Width {
			return c > col
		}
	}
	return true
}

// gutterWidth is the width of the row label column.
func (g *Grid) gutterWidth() int {
	if !g.ShowRowNumbers || g.frame == nil {
		return 0
	}
	w := len(strconv.Itoa(g.frame.NumRows()))
	if w < 3 {
		w = 3
	}
	return w + 1
}

// columnWidth computes the render width of a column from its header and the
// visible window of values.
func (g *Grid) columnWidth(col int) int {
	header := g.headerLabel(col)
	w := runewidth.StringWidth(header)

	end := g.offsetRow + g.visibleRows()
	if end > g.frame.NumRows() {
		end = g.frame.NumRows()
	}
	for r := g.offsetRow; r < end; r++ {
		if cw := runewidth.StringWidth(g.frame.CellString(r, col)); cw > w {
			w = cw
		}
	}

	if w > g.MaxColWidth {
		w = g.MaxColWidth
	}
	if w < 3 {
		w = 3
	}
	// Cell padding
	return w + 2
}

// headerLabel renders the Excel-style header, e.g. `A (city)`.
func (g *Grid) headerLabel(col int) string {
	return frame.ColumnLabel(col) + " (" + g.frame.Columns[col].Name + ")"
}

// View renders the grid.
func (g *Grid) View() string {
	if g.frame == nil || g.frame.NumCols() == 0 {
		return g.theme.GridNilCell.Render("no data")
	}

	cols := g.visibleCols()
	var b strings.Builder

	// Header row
	if g.ShowRowNumbers {
		b.WriteString(g.theme.GridRowLabel.Width(g.gutterWidth()).Render(""))
	}
	for _, c := range cols {
		label := clampCell(g.headerLabel(c), g.columnWidth(c)-2)
		b.WriteString(g.theme.GridHeader.Width(g.columnWidth(c)).Render(label))
	}
	b.WriteString("\n")

	// Data rows
	end := g.offsetRow + g.visibleRows()
	if end > g.frame.NumRows() {
		end = g.frame.NumRows()
	}
	for r := g.offsetRow; r < end; r++ {
		if g.ShowRowNumbers {
			label := strconv.Itoa(r + 1)
			b.WriteString(g.theme.GridRowLabel.Width(g.gutterWidth()).Render(label))
		}
		for _, c := range cols {
			b.WriteString(g.renderCell(r, c))
		}
		if r < end-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}

// visibleCols returns the column indexes that fit on screen.
func (g *Grid) visibleCols() []int {
	var cols []int
	x := g.gutterWidth()
	for c := g.offsetCol; c < g.frame.NumCols(); c++ {
		w := g.columnWidth(c)
		if x+w > g.Width && len(cols) > 0 {
			break
		}
		cols = append(cols, c)
		x += w
	}
	return cols
}

func (g *Grid) renderCell(row, col int) string {
	width := g.columnWidth(col)
	value := g.frame.CellString(row, col)
	text := clampCell(value, width-2)

	style := g.theme.GridCell
	switch {
	case row == g.CursorRow && col == g.CursorCol:
		style = g.theme.GridCursor
	case value == "":
		style = g.theme.GridNilCell
		text = "-"
	case row%2 == 1:
		style = g.theme.GridCellAlt
	}

	// Right-align numeric columns
	if t := g.frame.Columns[col].Type; t == frame.TypeInt || t == frame.TypeFloat {
		return style.Width(width).Align(lipgloss.Right).Render(text)
	}
	return style.Width(width).Render(text)
}

// clampCell truncates a cell value to the given display width.
func clampCell(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "...")
}
