// Copyright (c) 2025 Richard Iannone
// SPDX-License-Identifier: MIT

// Package cli parses command-line arguments and runs the non-interactive
// subcommands. The default invocation with no subcommand starts the TUI.
package cli

import (
	"fmt"
	"runtime"
	"strings"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// =============================================================================
// COMMAND DISPATCH
// =============================================================================

// Command identifies the subcommand to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdConvert
	CmdInfo
	CmdSQL
	CmdVersion
	CmdHelp
)

// Args holds the parsed command-line arguments.
type Args struct {
	// Global flags
	Verbose bool

	// TUI launch options
	File   string
	Format string
	Demo   bool

	// Raw args remaining after the subcommand, for per-command parsing
	Raw []string
}

const usageText = `sweet - a terminal editor for tabular data

Sweet loads CSV, TSV, JSON, and XLSX files into sheets and transforms
them through a recorded pipeline of verbs. Every transform is captured
in a script that can be reviewed, exported, and replayed.

Usage:
  sweet                         Start the TUI (empty workbook)
  sweet <file>                  Start the TUI with a file loaded
  sweet --demo                  Start the TUI with sample data
  sweet convert <in> <out>      Convert between data formats
  sweet info <file>             Show shape and schema of a file
  sweet sql [db]                Interactive SQL shell (default: workspace db)
  sweet version                 Print version information
  sweet help                    Show this help

TUI options:
  --file PATH      File to load on startup (same as positional <file>)
  --format FMT     Force the input format (csv, tsv, json, xlsx)
  --demo           Load the built-in sample dataset

Convert options:
  sweet convert data.csv out.json
  sweet convert data.txt out.csv --format tsv
                   --format forces the INPUT format when the extension
                   is ambiguous; the output format comes from <out>.

SQL shell:
  sweet sql workspace.db
                   Omit the path to use the configured workspace database.
                   .tables          list tables
                   .schema TABLE    show a table's columns
                   .quit            exit
                   anything else is executed as SQL.

Global flags:
  -v, --verbose    Diagnostics on stderr

Version: %s
`

// PrintUsage prints the usage text.
func PrintUsage() {
	fmt.Printf(usageText, Version)
}

// PrintVersion prints version information.
func PrintVersion() {
	fmt.Printf("sweet version %s\n", Version)
	fmt.Printf("  Git commit: %s\n", GitCommit)
	fmt.Printf("  Build date: %s\n", BuildDate)
	fmt.Printf("  Go version: %s\n", runtime.Version())
}

// Parse splits raw arguments into a command and its Args. The caller
// passes os.Args[1:].
func Parse(argv []string) (Command, Args) {
	remaining, args := parseGlobalFlags(argv)

	if len(remaining) == 0 {
		return CmdTUI, args
	}

	cmd := strings.ToLower(remaining[0])
	rest := remaining[1:]
	args.Raw = rest

	switch cmd {
	case "tui":
		parseTUIArgs(&args, rest)
		return CmdTUI, args

	case "convert":
		return CmdConvert, args

	case "info":
		return CmdInfo, args

	case "sql":
		return CmdSQL, args

	case "version", "-V", "--version":
		return CmdVersion, args

	case "help", "-h", "--help":
		return CmdHelp, args

	default:
		// Not a known subcommand: treat the whole argv as TUI launch
		// options, so `sweet data.csv --format tsv` works.
		parseTUIArgs(&args, remaining)
		args.Raw = remaining
		return CmdTUI, args
	}
}

// parseGlobalFlags extracts flags that apply to every command and
// returns the remaining arguments.
func parseGlobalFlags(argv []string) ([]string, Args) {
	var remaining []string
	var args Args

	for _, arg := range argv {
		switch arg {
		case "-v", "--verbose":
			args.Verbose = true
		default:
			remaining = append(remaining, arg)
		}
	}
	return remaining, args
}

// parseTUIArgs parses the TUI launch options. The first bare argument
// is taken as the file to open.
func parseTUIArgs(args *Args, remaining []string) {
	i := 0
	for i < len(remaining) {
		arg := remaining[i]

		switch arg {
		case "--demo":
			args.Demo = true
		case "-f", "--file":
			if i+1 < len(remaining) {
				i++
				args.File = remaining[i]
			}
		case "--format":
			if i+1 < len(remaining) {
				i++
				args.Format = remaining[i]
			}
		default:
			switch {
			case strings.HasPrefix(arg, "--file="):
				args.File = strings.TrimPrefix(arg, "--file=")
			case strings.HasPrefix(arg, "--format="):
				args.Format = strings.TrimPrefix(arg, "--format=")
			case !strings.HasPrefix(arg, "-") && args.File == "":
				args.File = arg
			}
		}
		i++
	}
}

// HandleVersion handles the "version" command.
func HandleVersion() {
	PrintVersion()
}

// HandleHelp handles the "help" command.
func HandleHelp() {
	PrintUsage()
}
