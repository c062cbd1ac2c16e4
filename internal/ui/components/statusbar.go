// Copyright (c) 2025 Richard Iannone
// SPDX-License-Identifier: MIT

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rich-iannone/sweet-data/internal/ui/styles"
)

// =============================================================================
// STATUS BAR COMPONENT
// =============================================================================

// Status represents the current application status.
type Status int

const (
	StatusReady Status = iota
	StatusLoading
	StatusError
)

// String returns the display string for the status.
func (s Status) String() string {
	switch s {
	case StatusReady:
		return "Ready"
	case StatusLoading:
		return "Loading..."
	case StatusError:
		return "Error"
	default:
		return "Unknown"
	}
}

// StatusBar renders the bottom status bar: cursor address, sheet name,
// shape, column dtype, and a file-changed flag.
type StatusBar struct {
	Address     string // Current cell address, e.g. "C7"
	SheetName   string
	Rows        int
	Cols        int
	DType       string // dtype of the cursor column
	FileChanged bool   // Source file changed on disk
	Status      Status
	Message     string // Transient status line message
	Width       int
	ShowHints   bool

	theme   *styles.Theme
	printer *message.Printer
}

// NewStatusBar creates a new StatusBar component.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{
		Status:    StatusReady,
		Width:     80,
		ShowHints: true,
		theme:     theme,
		printer:   message.NewPrinter(language.English),
	}
}

// SetWidth updates the status bar width.
func (s *StatusBar) SetWidth(width int) {
	s.Width = width
}

// SetSheet updates the sheet section.
func (s *StatusBar) SetSheet(name string, rows, cols int) {
	s.SheetName = name
	s.Rows = rows
	s.Cols = cols
}

// SetCursor updates the cursor section.
func (s *StatusBar) SetCursor(address, dtype string) {
	s.Address = address
	s.DType = dtype
}

// SetMessage sets a transient message shown in place of the hints.
func (s *StatusBar) SetMessage(msg string) {
	s.Message = msg
}

// View renders the status bar.
func (s *StatusBar) View() string {
	if s.Width < 60 {
		return s.viewNarrow()
	}
	return s.viewWide()
}

// viewNarrow renders a compact bar: address, sheet, shape.
func (s *StatusBar) viewNarrow() string {
	parts := []string{}

	if s.Address != "" {
		parts = append(parts, s.theme.StatusAddress.Render(s.Address))
	}
	if s.SheetName != "" {
		parts = append(parts, s.theme.StatusSheet.Render(s.SheetName))
	}
	parts = append(parts, s.theme.StatusShape.Render(s.shape()))
	if s.FileChanged {
		parts = append(parts, s.theme.StatusChanged.Render("[!]"))
	}

	sep := lipgloss.NewStyle().Foreground(styles.Overlay).Render(" ")
	return s.theme.StatusBar.Width(s.Width).Render(strings.Join(parts, sep))
}

// viewWide renders the full bar with dtype, message, and key hints.
func (s *StatusBar) viewWide() string {
	sep := lipgloss.NewStyle().Foreground(styles.Overlay).Render(" | ")

	leftParts := []string{}
	if s.Address != "" {
		leftParts = append(leftParts, s.theme.StatusAddress.Render(s.Address))
	}
	if s.SheetName != "" {
		leftParts = append(leftParts, s.theme.StatusSheet.Render(s.SheetName))
	}
	leftParts = append(leftParts, s.theme.StatusShape.Render(s.shape()))
	if s.DType != "" {
		dtypeStyle := lipgloss.NewStyle().Foreground(styles.DTypeColor(s.DType))
		leftParts = append(leftParts, dtypeStyle.Render(s.DType))
	}
	if s.FileChanged {
		leftParts = append(leftParts, s.theme.StatusChanged.Render("[!] file changed on disk"))
	}
	leftSection := strings.Join(leftParts, sep)

	rightSection := ""
	switch {
	case s.Status == StatusError && s.Message != "":
		rightSection = s.theme.ErrorStyle.Render(s.Message)
	case s.Message != "":
		rightSection = s.theme.InfoStyle.Render(s.Message)
	case s.ShowHints:
		rightSection = s.renderHints()
	}

	spacing := s.Width - lipgloss.Width(leftSection) - lipgloss.Width(rightSection) - 2
	if spacing < 1 {
		spacing = 1
	}

	result := leftSection + strings.Repeat(" ", spacing) + rightSection
	return s.theme.StatusBar.Width(s.Width).Render(result)
}

// shape renders "1,234 x 9" with thousand separators.
func (s *StatusBar) shape() string {
	return s.printer.Sprintf("%d x %d", s.Rows, s.Cols)
}

// renderHints renders the keyboard shortcut hints.
func (s *StatusBar) renderHints() string {
	hints := []string{
		s.theme.ShortcutKey.Render(":") + s.theme.ShortcutDesc.Render("cmd"),
		s.theme.ShortcutKey.Render("F1") + s.theme.ShortcutDesc.Render("help"),
		s.theme.ShortcutKey.Render("F2") + s.theme.ShortcutDesc.Render("script"),
	}
	return strings.Join(hints, " ")
}
