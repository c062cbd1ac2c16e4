// Copyright (c) 2025 Richard Iannone
// SPDX-License-Identifier: MIT

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// APPLICATION CONTAINER STYLES
	// ==========================================================================

	App       lipgloss.Style
	Container lipgloss.Style

	// ==========================================================================
	// GRID STYLES
	// ==========================================================================

	GridHeader    lipgloss.Style
	GridRowLabel  lipgloss.Style
	GridCell      lipgloss.Style
	GridCellAlt   lipgloss.Style
	GridCursor    lipgloss.Style
	GridNilCell   lipgloss.Style
	GridSeparator lipgloss.Style

	// ==========================================================================
	// STATUS BAR STYLES
	// ==========================================================================

	StatusBar     lipgloss.Style
	StatusAddress lipgloss.Style
	StatusSheet   lipgloss.Style
	StatusShape   lipgloss.Style
	StatusDType   lipgloss.Style
	StatusChanged lipgloss.Style
	ShortcutKey   lipgloss.Style
	ShortcutDesc  lipgloss.Style

	// ==========================================================================
	// COMMAND BAR STYLES
	// ==========================================================================

	CommandBar    lipgloss.Style
	CommandPrompt lipgloss.Style
	CommandText   lipgloss.Style
	CommandHint   lipgloss.Style

	// ==========================================================================
	// SCRIPT PANEL STYLES
	// ==========================================================================

	ScriptPanel      lipgloss.Style
	ScriptTitle      lipgloss.Style
	ScriptStep       lipgloss.Style
	ScriptStepActive lipgloss.Style
	ScriptComment    lipgloss.Style

	// ==========================================================================
	// ERROR BOX STYLES
	// ==========================================================================

	ErrorBox     lipgloss.Style
	ErrorTitle   lipgloss.Style
	ErrorMessage lipgloss.Style
	ErrorTip     lipgloss.Style

	// ==========================================================================
	// WELCOME SCREEN STYLES
	// ==========================================================================

	WelcomeBox      lipgloss.Style
	WelcomeLogo     lipgloss.Style
	WelcomeVersion  lipgloss.Style
	WelcomeInfo     lipgloss.Style
	WelcomeKey      lipgloss.Style
	WelcomePressKey lipgloss.Style

	// ==========================================================================
	// HELP OVERLAY STYLES
	// ==========================================================================

	HelpBox      lipgloss.Style
	HelpCategory lipgloss.Style
	HelpCommand  lipgloss.Style
	HelpDesc     lipgloss.Style

	// ==========================================================================
	// STATUS INDICATOR STYLES
	// ==========================================================================

	SuccessStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
	WarningStyle lipgloss.Style
	InfoStyle    lipgloss.Style
}

// NewTheme creates a new theme with all styles configured.
func NewTheme() *Theme {
	colorProfile := termenv.ColorProfile()
	hasTrueColor := colorProfile == termenv.TrueColor
	isDark := termenv.HasDarkBackground()

	t := &Theme{
		IsDark:       isDark,
		HasTrueColor: hasTrueColor,
		ColorProfile: colorProfile,
	}

	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	// App container
	t.App = lipgloss.NewStyle()
	t.Container = lipgloss.NewStyle().Padding(0, 1)

	// Grid
	t.GridHeader = lipgloss.NewStyle().
		Bold(true).
		Foreground(GridHeaderFg).
		Background(GridHeaderBg).
		Padding(0, 1)

	t.GridRowLabel = lipgloss.NewStyle().
		Foreground(TextMuted).
		Align(lipgloss.Right).
		PaddingRight(1)

	t.GridCell = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Padding(0, 1)

	t.GridCellAlt = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(RowStripeBg).
		Padding(0, 1)

	t.GridCursor = lipgloss.NewStyle().
		Foreground(CursorFg).
		Background(CursorBg).
		Bold(true).
		Padding(0, 1)

	t.GridNilCell = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true).
		Padding(0, 1)

	t.GridSeparator = lipgloss.NewStyle().
		Foreground(Overlay)

	// Status bar
	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)

	t.StatusAddress = lipgloss.NewStyle().
		Foreground(Teal).
		Bold(true)

	t.StatusSheet = lipgloss.NewStyle().
		Foreground(Violet).
		Bold(true)

	t.StatusShape = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.StatusDType = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	t.StatusChanged = lipgloss.NewStyle().
		Foreground(Amber).
		Bold(true)

	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(Teal).
		Bold(true)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Command bar
	t.CommandBar = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.CommandPrompt = lipgloss.NewStyle().
		Foreground(Teal).
		Bold(true)

	t.CommandText = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.CommandHint = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	// Script panel
	t.ScriptPanel = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Violet).
		Padding(0, 1)

	t.ScriptTitle = lipgloss.NewStyle().
		Foreground(Violet).
		Bold(true)

	t.ScriptStep = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.ScriptStepActive = lipgloss.NewStyle().
		Foreground(Emerald).
		Bold(true)

	t.ScriptComment = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	// Error boxes
	t.ErrorBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(Rose).
		Padding(1, 2)

	t.ErrorTitle = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)

	t.ErrorMessage = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.ErrorTip = lipgloss.NewStyle().
		Foreground(Teal).
		Italic(true)

	// Welcome screen
	t.WelcomeBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(Violet).
		Padding(2, 4).
		Align(lipgloss.Center)

	t.WelcomeLogo = lipgloss.NewStyle().
		Foreground(Teal).
		Bold(true)

	t.WelcomeVersion = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.WelcomeInfo = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.WelcomeKey = lipgloss.NewStyle().
		Foreground(Teal).
		Bold(true)

	t.WelcomePressKey = lipgloss.NewStyle().
		Foreground(Violet)

	// Help overlay
	t.HelpBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Teal).
		Padding(1, 2)

	t.HelpCategory = lipgloss.NewStyle().
		Foreground(Violet).
		Bold(true)

	t.HelpCommand = lipgloss.NewStyle().
		Foreground(Teal).
		Width(12)

	t.HelpDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Status indicators
	t.SuccessStyle = lipgloss.NewStyle().
		Foreground(Emerald).
		Bold(true)

	t.ErrorStyle = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)

	t.WarningStyle = lipgloss.NewStyle().
		Foreground(Amber).
		Bold(true)

	t.InfoStyle = lipgloss.NewStyle().
		Foreground(Teal).
		Bold(true)
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// GetLayoutMode returns the current layout mode based on width.
func (t *Theme) GetLayoutMode() LayoutMode {
	if t.Width < 60 {
		return LayoutNarrow
	}
	if t.Width < 100 {
		return LayoutMedium
	}
	return LayoutWide
}

// LayoutMode represents the current responsive layout mode.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // < 60 columns
	LayoutMedium                   // 60-100 columns
	LayoutWide                     // > 100 columns
)
