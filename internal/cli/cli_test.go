// Copyright (c) 2025 Richard Iannone
// SPDX-License-Identifier: MIT

package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rich-iannone/sweet-data/internal/connect"
	"github.com/rich-iannone/sweet-data/internal/frame"
)

// =============================================================================
// DISPATCH
// =============================================================================

func TestParseDispatch(t *testing.T) {
	tests := []struct {
		name string
		argv []string
		want Command
	}{
		{"no args starts tui", nil, CmdTUI},
		{"explicit tui", []string{"tui"}, CmdTUI},
		{"bare file starts tui", []string{"data.csv"}, CmdTUI},
		{"convert", []string{"convert", "a.csv", "b.json"}, CmdConvert},
		{"info", []string{"info", "a.csv"}, CmdInfo},
		{"sql", []string{"sql", "db.sqlite"}, CmdSQL},
		{"version", []string{"version"}, CmdVersion},
		{"version flag", []string{"--version"}, CmdVersion},
		{"help", []string{"help"}, CmdHelp},
		{"help flag", []string{"-h"}, CmdHelp},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, _ := Parse(tt.argv)
			assert.Equal(t, tt.want, cmd)
		})
	}
}

func TestParseTUIOptions(t *testing.T) {
	cmd, args := Parse([]string{"data.csv", "--format", "tsv"})
	assert.Equal(t, CmdTUI, cmd)
	assert.Equal(t, "data.csv", args.File)
	assert.Equal(t, "tsv", args.Format)

	cmd, args = Parse([]string{"--demo"})
	assert.Equal(t, CmdTUI, cmd)
	assert.True(t, args.Demo)

	_, args = Parse([]string{"--file=pop.xlsx", "--format=xlsx"})
	assert.Equal(t, "pop.xlsx", args.File)
	assert.Equal(t, "xlsx", args.Format)
}

func TestParseGlobalVerbose(t *testing.T) {
	cmd, args := Parse([]string{"-v", "convert", "a.csv", "b.json"})
	assert.Equal(t, CmdConvert, cmd)
	assert.True(t, args.Verbose)
	assert.Equal(t, []string{"a.csv", "b.json"}, args.Raw)
}

// =============================================================================
// ARG PARSER
// =============================================================================

func TestArgParser(t *testing.T) {
	p := NewArgParser([]string{"in.csv", "out.json", "--format", "tsv", "--head=5", "--json"})

	assert.Equal(t, 2, p.PositionalCount())
	assert.Equal(t, "in.csv", p.Positional(0))
	assert.Equal(t, "out.json", p.Positional(1))
	assert.Equal(t, "", p.Positional(2))

	assert.Equal(t, "tsv", p.Flag("format"))
	assert.Equal(t, "5", p.Flag("head"))
	assert.True(t, p.BoolFlag("json"))
	assert.False(t, p.BoolFlag("missing"))

	assert.True(t, p.HasFlag("format"))
	assert.True(t, p.HasFlag("--json"))
	assert.False(t, p.HasFlag("output"))

	assert.Equal(t, "md", p.FlagOrDefault("theme", "md"))
	assert.Equal(t, "tsv", p.FlagOrDefault("format", "csv"))
}

func TestArgParserExplicitBool(t *testing.T) {
	p := NewArgParser([]string{"--demo=false", "--verbose=true"})
	assert.False(t, p.BoolFlag("demo"))
	assert.True(t, p.BoolFlag("verbose"))
}

// =============================================================================
// CONVERT
// =============================================================================

func TestHandleConvert(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "cities.csv")
	out := filepath.Join(dir, "cities.json")
	require.NoError(t, os.WriteFile(in, []byte("city,pop\nToronto,2794356\nMontreal,1762949\n"), 0644))

	err := HandleConvert(Args{Raw: []string{in, out}})
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Toronto")
	assert.Contains(t, string(data), "2794356")
}

func TestHandleConvertForcedInputFormat(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "cities.txt")
	out := filepath.Join(dir, "cities.csv")
	require.NoError(t, os.WriteFile(in, []byte("city\tpop\nToronto\t2794356\n"), 0644))

	err := HandleConvert(Args{Raw: []string{in, out, "--format", "tsv"}})
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Toronto,2794356")
}

func TestHandleConvertErrors(t *testing.T) {
	err := HandleConvert(Args{Raw: []string{"only-one.csv"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "usage")

	dir := t.TempDir()
	err = HandleConvert(Args{Raw: []string{filepath.Join(dir, "missing.csv"), filepath.Join(dir, "out.json")}})
	require.Error(t, err)
}

// =============================================================================
// INFO
// =============================================================================

func TestHandleInfoMissingArgs(t *testing.T) {
	err := HandleInfo(Args{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "usage")
}

func TestHandleInfoReadsFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "cities.csv")
	require.NoError(t, os.WriteFile(in, []byte("city,pop\nToronto,2794356\n"), 0644))

	require.NoError(t, HandleInfo(Args{Raw: []string{in}}))
	require.NoError(t, HandleInfo(Args{Raw: []string{in, "--head", "1"}}))
}

// =============================================================================
// RENDERING
// =============================================================================

func testRenderFrame(t *testing.T) *frame.Frame {
	t.Helper()
	f, err := frame.FromRows(
		[]string{"city", "pop"},
		[][]string{
			{"Toronto", "2794356"},
			{"Montreal", "1762949"},
		},
	)
	require.NoError(t, err)
	return f
}

func TestRenderFrame(t *testing.T) {
	out := renderFrame(testRenderFrame(t), 80)
	assert.Contains(t, out, "city")
	assert.Contains(t, out, "Toronto")
	assert.Contains(t, out, "Montreal")

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	// Header, separator, two data rows.
	assert.Len(t, lines, 4)
}

func TestRenderFrameEmpty(t *testing.T) {
	out := renderFrame(frame.Empty(), 80)
	assert.Contains(t, out, "empty result")
}

func TestRenderFrameElidesRows(t *testing.T) {
	rows := make([][]string, maxRenderRows+10)
	for i := range rows {
		rows[i] = []string{"x"}
	}
	f, err := frame.FromRows([]string{"col"}, rows)
	require.NoError(t, err)

	out := renderFrame(f, 80)
	assert.Contains(t, out, "10 more rows")
}

func TestPad(t *testing.T) {
	assert.Equal(t, "ab   ", pad("ab", 5))
	assert.Equal(t, "ab...", pad("abcdefgh", 5))
}

// =============================================================================
// SQL SHELL
// =============================================================================

func TestRunDotCommand(t *testing.T) {
	dir := t.TempDir()
	conn, err := connect.Open(filepath.Join(dir, "shell.db"))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	ctx := context.Background()
	require.NoError(t, conn.WriteTable(ctx, testRenderFrame(t), "cities", connect.WriteReplace))

	assert.True(t, runDotCommand(ctx, conn, ".quit"))
	assert.True(t, runDotCommand(ctx, conn, ".exit"))
	assert.False(t, runDotCommand(ctx, conn, ".tables"))
	assert.False(t, runDotCommand(ctx, conn, ".schema cities"))
	assert.False(t, runDotCommand(ctx, conn, ".schema"))
	assert.False(t, runDotCommand(ctx, conn, ".help"))
	assert.False(t, runDotCommand(ctx, conn, ".bogus"))
}
