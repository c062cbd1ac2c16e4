// Copyright (c) 2025 Richard Iannone
// SPDX-License-Identifier: MIT

package transform

import (
	"fmt"
	"strings"

	"github.com/rich-iannone/sweet-data/internal/frame"
)

// GenerateScript renders a sheet's pipeline as a runnable sweet script: one
// expression line per step, with comments carrying the description and the
// schema each step produced. This is the text the script panel shows and the
// export command writes.
func GenerateScript(sheetName string, steps []Step) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# sheet: %s\n", sheetName)
	if len(steps) == 0 {
		b.WriteString("# no transformations applied\n")
		return b.String()
	}

	for i, step := range steps {
		fmt.Fprintf(&b, "\n# step %d: %s\n", i+1, step.Description)
		b.WriteString(step.Expr)
		b.WriteByte('\n')
		fmt.Fprintf(&b, "# -> %s\n", formatSchema(step.OutputSchema))
	}
	return b.String()
}

// formatSchema renders a schema snapshot on one comment line.
func formatSchema(fields []frame.Field) string {
	if len(fields) == 0 {
		return "empty"
	}
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = fmt.Sprintf("%s (%s)", f.Name, f.Type)
	}
	return strings.Join(parts, ", ")
}

// ParseScript reads a script back into its expression lines, skipping
// comments and blanks, so an exported pipeline can be replayed.
func ParseScript(script string) []string {
	var exprs []string
	for _, line := range strings.Split(script, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		exprs = append(exprs, line)
	}
	return exprs
}
