// Copyright (c) 2025 Richard Iannone
// SPDX-License-Identifier: MIT

package util

import "strings"

// TruncateString shortens s to at most maxLen runes, appending "..." when
// something was cut. Rune-based so multi-byte text is never split.
func TruncateString(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// PadRight pads s with spaces to the given display width.
func PadRight(s string, width int) string {
	runes := []rune(s)
	if len(runes) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(runes))
}

// PadLeft pads s with spaces on the left to the given display width.
func PadLeft(s string, width int) string {
	runes := []rune(s)
	if len(runes) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(runes)) + s
}

// Flatten collapses newlines and carriage returns so a value can be shown
// on a single status or grid line.
func Flatten(s string) string {
	s = strings.ReplaceAll(s, "\r", "")
	return strings.ReplaceAll(s, "\n", " ")
}
