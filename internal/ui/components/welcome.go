// Copyright (c) 2025 Richard Iannone
// SPDX-License-Identifier: MIT

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rich-iannone/sweet-data/internal/ui/styles"
)

// =============================================================================
// WELCOME SCREEN COMPONENT
// =============================================================================

// Welcome renders the empty-state screen shown before any data is loaded.
type Welcome struct {
	Version string
	Width   int
	Height  int
	theme   *styles.Theme
}

// NewWelcome creates the welcome screen.
func NewWelcome(theme *styles.Theme, version string) *Welcome {
	return &Welcome{
		Version: version,
		Width:   80,
		Height:  24,
		theme:   theme,
	}
}

// SetSize updates the available area.
func (w *Welcome) SetSize(width, height int) {
	w.Width = width
	w.Height = height
}

// View renders the welcome box centered in the available area.
func (w *Welcome) View() string {
	var b strings.Builder

	b.WriteString(w.theme.WelcomeLogo.Render("sweet"))
	b.WriteString("\n")
	b.WriteString(w.theme.WelcomeVersion.Render("tabular data, in the terminal  " + w.Version))
	b.WriteString("\n\n")

	rows := [][2]string{
		{":open <file>", "load a csv, tsv, json, or xlsx file"},
		{":paste", "import a table from the clipboard"},
		{":sample", "load the bundled sample dataset"},
		{":help", "all commands"},
	}
	for _, row := range rows {
		b.WriteString(w.theme.WelcomeKey.Render(padRight(row[0], 14)))
		b.WriteString(w.theme.WelcomeInfo.Render(row[1]))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(w.theme.WelcomePressKey.Render("press : to begin"))

	box := w.theme.WelcomeBox.Render(b.String())
	return lipgloss.Place(w.Width, w.Height, lipgloss.Center, lipgloss.Center, box)
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
