// Copyright (c) 2025 Richard Iannone
// SPDX-License-Identifier: MIT

package cli

import (
	"os"

	"golang.org/x/term"
)

const (
	// DefaultTerminalWidth is the fallback when detection fails.
	DefaultTerminalWidth = 80

	// MinTerminalWidth is the floor used for table rendering.
	MinTerminalWidth = 40
)

// IsStdoutTTY reports whether stdout is a terminal.
func IsStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// IsStdinTTY reports whether stdin is a terminal. The SQL shell refuses
// to start without one.
func IsStdinTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// TerminalWidth returns the current terminal width, clamped to
// [MinTerminalWidth, inf) with a default when detection fails.
func TerminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return DefaultTerminalWidth
	}
	if w < MinTerminalWidth {
		return MinTerminalWidth
	}
	return w
}
