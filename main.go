// sweet - a terminal editor for tabular data.
//
// Copyright (c) 2025 Richard Iannone
// SPDX-License-Identifier: MIT
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rich-iannone/sweet-data/internal/cli"
	"github.com/rich-iannone/sweet-data/internal/config"
	"github.com/rich-iannone/sweet-data/internal/ui"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse(os.Args[1:])

	switch cmd {
	case cli.CmdTUI:
		runTUI(args)
	case cli.CmdConvert:
		exitOnError(cli.HandleConvert(args))
	case cli.CmdInfo:
		exitOnError(cli.HandleInfo(args))
	case cli.CmdSQL:
		exitOnError(cli.HandleSQL(args))
	case cli.CmdVersion:
		cli.HandleVersion()
	case cli.CmdHelp:
		cli.HandleHelp()
	default:
		runTUI(args)
	}
}

func exitOnError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runTUI starts the interactive editor.
func runTUI(args cli.Args) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not load config, using defaults: %v\n", err)
		cfg = config.Default()
	}

	var opts []ui.Option
	if args.File != "" {
		opts = append(opts, ui.WithFile(args.File, args.Format))
	}
	if args.Demo {
		opts = append(opts, ui.WithDemo())
	}

	m := ui.New(cfg, Version, opts...)
	defer m.Close()

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running sweet: %v\n", err)
		os.Exit(1)
	}
}
