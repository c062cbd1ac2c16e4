// Copyright (c) 2025 Richard Iannone
// SPDX-License-Identifier: MIT

package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/rich-iannone/sweet-data/internal/config"
	"github.com/rich-iannone/sweet-data/internal/connect"
)

// =============================================================================
// INPUT HISTORY
// =============================================================================

// sqlShell wraps liner with persistent history for the SQL REPL.
type sqlShell struct {
	line        *liner.State
	historyFile string
}

func newSQLShell() *sqlShell {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	configDir, err := config.ConfigDir()
	if err != nil {
		configDir = os.TempDir()
	}
	s := &sqlShell{
		line:        line,
		historyFile: filepath.Join(configDir, "sql_history"),
	}
	s.loadHistory()
	return s
}

func (s *sqlShell) loadHistory() {
	if f, err := os.Open(s.historyFile); err == nil {
		s.line.ReadHistory(f)
		f.Close()
	}
}

func (s *sqlShell) saveHistory() {
	if err := config.EnsureConfigDir(); err != nil {
		return
	}
	f, err := os.OpenFile(s.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return
	}
	defer f.Close()
	s.line.WriteHistory(f)
}

// readInput reads one line with history navigation, recording non-empty
// input into the history.
func (s *sqlShell) readInput(prompt string) (string, error) {
	input, err := s.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		s.line.AppendHistory(input)
	}
	return input, nil
}

func (s *sqlShell) close() {
	s.saveHistory()
	s.line.Close()
}

// =============================================================================
// SQL REPL
// =============================================================================

// HandleSQL handles "sweet sql [db]": an interactive query shell over a
// SQLite database file. Without an argument the configured workspace
// database is opened.
func HandleSQL(args Args) error {
	p := NewArgParser(args.Raw)

	dbPath := p.Positional(0)
	if dbPath == "" {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("sql: usage: sweet sql <database.db>")
		}
		dbPath, err = cfg.DatabasePath()
		if err != nil {
			return fmt.Errorf("sql: %w", err)
		}
		if args.Verbose {
			fmt.Fprintf(os.Stderr, "using workspace database %s\n", dbPath)
		}
	}
	if !IsStdinTTY() {
		return fmt.Errorf("sql: interactive shell requires a terminal")
	}

	conn, err := connect.Open(dbPath)
	if err != nil {
		return fmt.Errorf("sql: %w", err)
	}
	defer conn.Close()

	ctx := context.Background()
	if err := conn.Ping(ctx); err != nil {
		return fmt.Errorf("sql: %w", err)
	}

	shell := newSQLShell()
	defer shell.close()

	fmt.Printf("%s %s\n", headerStyle.Render("sweet sql"), dimStyle.Render(conn.Path()))
	fmt.Println(dimStyle.Render(".tables to list tables, .schema TABLE for columns, .quit to exit"))

	for {
		input, err := shell.readInput(promptStyle.Render("sql> "))
		if err != nil {
			// Ctrl+C or EOF ends the session.
			fmt.Println()
			return nil
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if strings.HasPrefix(input, ".") {
			if done := runDotCommand(ctx, conn, input); done {
				return nil
			}
			continue
		}

		result, err := conn.FetchQuery(ctx, input)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s %v\n", errStyle.Render("[error]"), err)
			continue
		}
		fmt.Print(renderFrame(result, TerminalWidth()))
	}
}

// runDotCommand executes a shell meta command. Returns true when the
// shell should exit.
func runDotCommand(ctx context.Context, conn *connect.Connector, input string) bool {
	fields := strings.Fields(input)

	switch fields[0] {
	case ".quit", ".exit", ".q":
		return true

	case ".tables":
		tables, err := conn.ListTables(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s %v\n", errStyle.Render("[error]"), err)
			return false
		}
		if len(tables) == 0 {
			fmt.Println(dimStyle.Render("(no tables)"))
			return false
		}
		for _, t := range tables {
			fmt.Println(t)
		}

	case ".schema":
		if len(fields) < 2 {
			fmt.Fprintln(os.Stderr, errStyle.Render("[error]")+" .schema requires a table name")
			return false
		}
		schema, err := conn.TableSchema(ctx, fields[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s %v\n", errStyle.Render("[error]"), err)
			return false
		}
		for _, fd := range schema {
			fmt.Printf("%s  %s\n", fd.Name, dimStyle.Render(fd.Type))
		}

	case ".help":
		fmt.Println(".tables          list tables")
		fmt.Println(".schema TABLE    show a table's columns")
		fmt.Println(".quit            exit the shell")
		fmt.Println("anything else is executed as SQL")

	default:
		fmt.Fprintf(os.Stderr, "%s unknown command %s (try .help)\n", errStyle.Render("[error]"), fields[0])
	}
	return false
}
