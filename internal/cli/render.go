// Copyright (c) 2025 Richard Iannone
// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/rich-iannone/sweet-data/internal/frame"
	"github.com/rich-iannone/sweet-data/internal/ui/styles"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(styles.Teal).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(styles.TextMuted)

	errStyle = lipgloss.NewStyle().
			Foreground(styles.Rose).
			Bold(true)

	promptStyle = lipgloss.NewStyle().
			Foreground(styles.Violet).
			Bold(true)
)

// maxRenderRows caps terminal output for large result sets.
const maxRenderRows = 40

// renderFrame renders a frame as an aligned plain-text table sized to
// the terminal. Rows beyond maxRenderRows are elided with a footer.
func renderFrame(f *frame.Frame, width int) string {
	rows, cols := f.Shape()
	if cols == 0 {
		return dimStyle.Render("(empty result)") + "\n"
	}
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}

	shown := rows
	if shown > maxRenderRows {
		shown = maxRenderRows
	}

	names := f.ColumnNames()
	widths := make([]int, cols)
	for c, name := range names {
		widths[c] = runewidth.StringWidth(name)
	}
	for r := 0; r < shown; r++ {
		for c := 0; c < cols; c++ {
			if w := runewidth.StringWidth(f.CellString(r, c)); w > widths[c] {
				widths[c] = w
			}
		}
	}

	// Cap each column so wide text cannot blow past the terminal.
	maxCol := width / cols
	if maxCol < 6 {
		maxCol = 6
	}
	for c := range widths {
		if widths[c] > maxCol {
			widths[c] = maxCol
		}
	}

	var b strings.Builder
	for c, name := range names {
		if c > 0 {
			b.WriteString("  ")
		}
		b.WriteString(headerStyle.Render(pad(name, widths[c])))
	}
	b.WriteString("\n")
	for c := range names {
		if c > 0 {
			b.WriteString("  ")
		}
		b.WriteString(dimStyle.Render(strings.Repeat("-", widths[c])))
	}
	b.WriteString("\n")

	for r := 0; r < shown; r++ {
		for c := 0; c < cols; c++ {
			if c > 0 {
				b.WriteString("  ")
			}
			b.WriteString(pad(f.CellString(r, c), widths[c]))
		}
		b.WriteString("\n")
	}

	if rows > shown {
		b.WriteString(dimStyle.Render(fmt.Sprintf("... %d more rows", rows-shown)))
		b.WriteString("\n")
	}
	return b.String()
}

// pad truncates or right-pads s to exactly width display cells.
func pad(s string, width int) string {
	if runewidth.StringWidth(s) > width {
		return runewidth.Truncate(s, width, "...")
	}
	return s + strings.Repeat(" ", width-runewidth.StringWidth(s))
}
