// Copyright (c) 2025 Richard Iannone
// SPDX-License-Identifier: MIT

// Package styles provides the visual styling system for the sweet TUI.
// All colors use Lip Gloss AdaptiveColor for automatic light/dark detection.
package styles

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// PRIMARY ACCENT COLORS
// =============================================================================

// Teal - Brand color, column headers, command prompt
var Teal = lipgloss.AdaptiveColor{Light: "#0D9488", Dark: "#2DD4BF"}

// TealDeep - Darker teal for backgrounds
var TealDeep = lipgloss.AdaptiveColor{Light: "#0F766E", Dark: "#134E4A"}

// Violet - Secondary accent, selections, branch markers
var Violet = lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#A78BFA"}

// VioletDeep - Darker violet for backgrounds
var VioletDeep = lipgloss.AdaptiveColor{Light: "#5B21B6", Dark: "#4C1D95"}

// =============================================================================
// SEMANTIC COLORS
// =============================================================================

// Rose - Errors, destructive confirmations
var Rose = lipgloss.AdaptiveColor{Light: "#E11D48", Dark: "#FB7185"}

// RoseDeep - Darker rose for backgrounds
var RoseDeep = lipgloss.AdaptiveColor{Light: "#BE123C", Dark: "#881337"}

// Amber - Warnings, file-changed flag
var Amber = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}

// Emerald - Success states, applied steps
var Emerald = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34D399"}

// =============================================================================
// SURFACE COLORS
// =============================================================================

// Surface - Main background
var Surface = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1E1E2E"}

// SurfaceDim - Slightly darker/lighter surface for the status bar
var SurfaceDim = lipgloss.AdaptiveColor{Light: "#F5F5F5", Dark: "#181825"}

// Overlay - Borders, separators, grid lines
var Overlay = lipgloss.AdaptiveColor{Light: "#E5E5E5", Dark: "#313244"}

// =============================================================================
// TEXT COLORS
// =============================================================================

// TextPrimary - Cell values, body text
var TextPrimary = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#CDD6F4"}

// TextSecondary - Labels, less prominent text
var TextSecondary = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#A6ADC8"}

// TextMuted - Hints, row numbers, empty cells
var TextMuted = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6C7086"}

// TextInverse - Text on colored backgrounds
var TextInverse = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1E1E2E"}

// =============================================================================
// GRID COLORS
// =============================================================================

// Column header row
var GridHeaderBg = lipgloss.AdaptiveColor{Light: "#E0F2F1", Dark: "#134E4A"}
var GridHeaderFg = lipgloss.AdaptiveColor{Light: "#0F766E", Dark: "#5EEAD4"}

// Cursor cell
var CursorBg = lipgloss.AdaptiveColor{Light: "#BFDBFE", Dark: "#1E3A5F"}
var CursorFg = lipgloss.AdaptiveColor{Light: "#1E40AF", Dark: "#E0F2FE"}

// Alternating row stripe
var RowStripeBg = lipgloss.AdaptiveColor{Light: "#FAFAFA", Dark: "#232334"}

// =============================================================================
// DTYPE COLORS
// =============================================================================

// Per-type tints used in the status bar and schema displays.

var DTypeString = lipgloss.AdaptiveColor{Light: "#40A02B", Dark: "#A6E3A1"}
var DTypeInt = lipgloss.AdaptiveColor{Light: "#FE640B", Dark: "#FAB387"}
var DTypeFloat = lipgloss.AdaptiveColor{Light: "#DF8E1D", Dark: "#F9E2AF"}
var DTypeBool = lipgloss.AdaptiveColor{Light: "#8839EF", Dark: "#CBA6F7"}
var DTypeTime = lipgloss.AdaptiveColor{Light: "#1E66F5", Dark: "#89B4FA"}

// DTypeColor returns the tint for a dtype name ("str", "int", "float",
// "bool", "time").
func DTypeColor(dtype string) lipgloss.AdaptiveColor {
	switch dtype {
	case "int":
		return DTypeInt
	case "float":
		return DTypeFloat
	case "bool":
		return DTypeBool
	case "time":
		return DTypeTime
	default:
		return DTypeString
	}
}

// =============================================================================
// STATUS INDICATORS
// =============================================================================

// StatusIndicatorSet contains text/shape indicators for status states.
// These symbols provide visual cues beyond color for colorblind accessibility.
type StatusIndicatorSet struct {
	Success string
	Error   string
	Warning string
	Info    string
}

// StatusIndicators provides accessible shape/text indicators alongside colors.
var StatusIndicators = StatusIndicatorSet{
	Success: "[OK]",
	Error:   "[X]",
	Warning: "[!]",
	Info:    "[i]",
}

// RenderSuccess renders a success message with indicator and high contrast.
func RenderSuccess(message string) string {
	style := lipgloss.NewStyle().
		Foreground(Emerald).
		Bold(true)
	return style.Render(StatusIndicators.Success + " " + message)
}

// RenderError renders an error message with indicator and high contrast.
func RenderError(message string) string {
	style := lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)
	return style.Render(StatusIndicators.Error + " " + message)
}

// RenderWarning renders a warning message with indicator and high contrast.
func RenderWarning(message string) string {
	style := lipgloss.NewStyle().
		Foreground(Amber).
		Bold(true)
	return style.Render(StatusIndicators.Warning + " " + message)
}
