// Copyright (c) 2025 Richard Iannone
// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"
	"os"

	"github.com/rich-iannone/sweet-data/internal/dataio"
)

// HandleConvert handles "sweet convert <in> <out> [--format FMT]".
// The optional --format forces the input format; the output format is
// always taken from the destination extension.
func HandleConvert(args Args) error {
	p := NewArgParser(args.Raw)
	if p.PositionalCount() < 2 {
		return fmt.Errorf("convert: usage: sweet convert <in> <out> [--format csv|tsv|json|xlsx]")
	}
	in := p.Positional(0)
	out := p.Positional(1)

	inFormat, err := resolveInputFormat(in, p.Flag("format"))
	if err != nil {
		return fmt.Errorf("convert: %w", err)
	}
	outFormat, err := dataio.DetectFormat(out)
	if err != nil {
		return fmt.Errorf("convert: %w", err)
	}

	f, err := dataio.ReadFile(in, inFormat)
	if err != nil {
		return fmt.Errorf("convert: %w", err)
	}
	if args.Verbose {
		rows, cols := f.Shape()
		fmt.Fprintf(os.Stderr, "read %s: %d rows, %d cols (%s)\n", in, rows, cols, inFormat)
	}

	if err := dataio.WriteFile(f, out, outFormat); err != nil {
		return fmt.Errorf("convert: %w", err)
	}

	rows, _ := f.Shape()
	fmt.Printf("wrote %s (%d rows, %s)\n", out, rows, outFormat)
	return nil
}

// resolveInputFormat picks the explicit format when given, otherwise
// detects from the path.
func resolveInputFormat(path, explicit string) (dataio.Format, error) {
	if explicit != "" {
		return dataio.ParseFormat(explicit)
	}
	return dataio.DetectFormat(path)
}
