// Copyright (c) 2025 Richard Iannone
// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/rich-iannone/sweet-data/internal/dataio"
)

// HandleInfo handles "sweet info <file> [--format FMT] [--head N]".
// It prints the shape and schema, and with --head a preview of rows.
func HandleInfo(args Args) error {
	p := NewArgParser(args.Raw)
	if p.PositionalCount() < 1 {
		return fmt.Errorf("info: usage: sweet info <file> [--format csv|tsv|json|xlsx] [--head N]")
	}
	path := p.Positional(0)

	format, err := resolveInputFormat(path, p.Flag("format"))
	if err != nil {
		return fmt.Errorf("info: %w", err)
	}
	if args.Verbose {
		fmt.Fprintf(os.Stderr, "reading %s as %s\n", path, format)
	}

	f, err := dataio.ReadFile(path, format)
	if err != nil {
		return fmt.Errorf("info: %w", err)
	}

	rows, cols := f.Shape()
	fmt.Printf("%s\n", headerStyle.Render(path))
	fmt.Printf("format: %s\n", format)
	fmt.Printf("shape:  %d rows x %d cols\n\n", rows, cols)

	// Schema table, aligned on the longest column name.
	nameWidth := len("column")
	for _, fd := range f.Schema() {
		if w := runewidth.StringWidth(fd.Name); w > nameWidth {
			nameWidth = w
		}
	}
	fmt.Printf("%s  %s\n", headerStyle.Render(pad("column", nameWidth)), headerStyle.Render("type"))
	fmt.Printf("%s  %s\n", strings.Repeat("-", nameWidth), strings.Repeat("-", 6))
	for _, fd := range f.Schema() {
		fmt.Printf("%s  %s\n", pad(fd.Name, nameWidth), fd.Type)
	}

	if p.HasFlag("head") {
		n := 10
		if v := p.Flag("head"); v != "" {
			fmt.Sscanf(v, "%d", &n)
		}
		fmt.Println()
		fmt.Print(renderFrame(f.Head(n), TerminalWidth()))
	}
	return nil
}
