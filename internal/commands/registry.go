// Copyright (c) 2025 Richard Iannone
// SPDX-License-Identifier: MIT

// Package commands provides the colon command system for the TUI.
package commands

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rich-iannone/sweet-data/internal/config"
	"github.com/rich-iannone/sweet-data/internal/storage"
	"github.com/rich-iannone/sweet-data/internal/workbook"
)

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

// Command represents a colon command that can be executed.
type Command struct {
	// Name is the primary command name (e.g., ":open")
	Name string

	// Aliases are alternative names (e.g., ":o")
	Aliases []string

	// Description is shown in help and completion
	Description string

	// Usage shows argument syntax (e.g., ":open <file> [format]")
	Usage string

	// Args defines the expected arguments
	Args []ArgDef

	// Handler is the function that executes the command
	Handler func(ctx *Context, args []string) tea.Cmd

	// Hidden commands don't appear in help
	Hidden bool

	// Category for grouping in help display
	Category string
}

// ArgDef defines an argument for a command.
type ArgDef struct {
	// Name of the argument
	Name string

	// Required indicates if the argument must be provided
	Required bool

	// Type determines completion behavior
	Type ArgType

	// Description explains the argument
	Description string

	// Values for enum types
	Values []string
}

// ArgType indicates what kind of completion to provide.
type ArgType int

const (
	ArgTypeString ArgType = iota // Free-form string
	ArgTypeFile                  // File path
	ArgTypeSheet                 // Sheet name in the current workbook
	ArgTypeColumn                // Column name in the current sheet
	ArgTypeEnum                  // One of predefined values
	ArgTypeWorkbook              // Stored workbook ID or index
)

// =============================================================================
// COMMAND REGISTRY
// =============================================================================

// Registry holds all registered commands.
type Registry struct {
	commands map[string]*Command
	aliases  map[string]*Command
}

// NewRegistry creates a new command registry with all built-in commands.
func NewRegistry() *Registry {
	r := &Registry{
		commands: make(map[string]*Command),
		aliases:  make(map[string]*Command),
	}
	r.registerBuiltins()
	return r
}

// Register adds a command to the registry.
func (r *Registry) Register(cmd *Command) {
	r.commands[cmd.Name] = cmd
	for _, alias := range cmd.Aliases {
		r.aliases[alias] = cmd
	}
}

// Get retrieves a command by name or alias.
func (r *Registry) Get(name string) *Command {
	if cmd, ok := r.commands[name]; ok {
		return cmd
	}
	if cmd, ok := r.aliases[name]; ok {
		return cmd
	}
	return nil
}

// All returns all registered commands.
func (r *Registry) All() []*Command {
	cmds := make([]*Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		cmds = append(cmds, cmd)
	}
	return cmds
}

// ByCategory returns commands grouped by category.
func (r *Registry) ByCategory() map[string][]*Command {
	result := make(map[string][]*Command)
	for _, cmd := range r.commands {
		if cmd.Hidden {
			continue
		}
		category := cmd.Category
		if category == "" {
			category = "General"
		}
		result[category] = append(result[category], cmd)
	}
	return result
}

// =============================================================================
// BUILT-IN COMMANDS
// =============================================================================

// transformVerbs are registered individually so each gets its own usage and
// help line; all route through the same transform handler.
var transformVerbs = []struct {
	name  string
	usage string
	desc  string
}{
	{"filter", ":filter <col> <op> <value>", "Keep rows matching a condition"},
	{"select", ":select <col, ...>", "Keep only the named columns"},
	{"drop", ":drop <col, ...>", "Remove the named columns"},
	{"rename", ":rename <old> <new>", "Rename a column"},
	{"sort", ":sort <col> [desc]", "Sort rows by a column"},
	{"head", ":head <n>", "Keep the first n rows"},
	{"tail", ":tail <n>", "Keep the last n rows"},
	{"distinct", ":distinct [col, ...]", "Remove duplicate rows"},
	{"withcol", ":withcol <name> = <col> <op> <value>", "Derive a new column"},
}

func (r *Registry) registerBuiltins() {
	// File commands
	r.Register(&Command{
		Name:        ":open",
		Aliases:     []string{":o", ":e"},
		Description: "Open a data file as a new sheet",
		Usage:       ":open <file> [format]",
		Args: []ArgDef{
			{Name: "file", Required: true, Type: ArgTypeFile, Description: "Path to the data file"},
			{Name: "format", Required: false, Type: ArgTypeEnum, Values: []string{"csv", "tsv", "json", "xlsx"}, Description: "Override format detection"},
		},
		Category: "File",
		Handler:  HandleOpen,
	})

	r.Register(&Command{
		Name:        ":save",
		Aliases:     []string{":w"},
		Description: "Save the sheet to a file, or snapshot the session",
		Usage:       ":save [file]",
		Args: []ArgDef{
			{Name: "file", Required: false, Type: ArgTypeFile, Description: "Output path (omit to snapshot the session)"},
		},
		Category: "File",
		Handler:  HandleSave,
	})

	r.Register(&Command{
		Name:        ":load",
		Aliases:     []string{":resume"},
		Description: "Restore a saved session snapshot",
		Usage:       ":load <id|index>",
		Args: []ArgDef{
			{Name: "snapshot", Required: true, Type: ArgTypeWorkbook, Description: "Snapshot ID or list index"},
		},
		Category: "File",
		Handler:  HandleLoad,
	})

	r.Register(&Command{
		Name:        ":export",
		Description: "Export the sheet as a rendered document, or the pipelines as a script",
		Usage:       ":export [markdown|html|json|script]",
		Args: []ArgDef{
			{Name: "format", Required: false, Type: ArgTypeEnum, Values: []string{"markdown", "html", "json", "script"}, Description: "Document format"},
		},
		Category: "File",
		Handler:  HandleExport,
	})

	r.Register(&Command{
		Name:        ":sessions",
		Description: "List, search, or clear stored session snapshots",
		Usage:       ":sessions [query|clear]",
		Args: []ArgDef{
			{Name: "query", Required: false, Type: ArgTypeString, Description: "Filter text, or \"clear\" to remove all"},
		},
		Category: "File",
		Handler:  HandleSessions,
	})

	// Sheet commands
	r.Register(&Command{
		Name:        ":sheet",
		Description: "Switch to a sheet by name",
		Usage:       ":sheet <name>",
		Args: []ArgDef{
			{Name: "name", Required: true, Type: ArgTypeSheet, Description: "Sheet to make current"},
		},
		Category: "Sheets",
		Handler:  HandleSheet,
	})

	r.Register(&Command{
		Name:        ":sheets",
		Aliases:     []string{":ls"},
		Description: "List sheets and their lineage",
		Category:    "Sheets",
		Handler:     HandleSheets,
	})

	r.Register(&Command{
		Name:        ":branch",
		Aliases:     []string{":fork"},
		Description: "Branch the current sheet under a new name",
		Usage:       ":branch <name>",
		Args: []ArgDef{
			{Name: "name", Required: true, Type: ArgTypeString, Description: "Name for the new branch"},
		},
		Category: "Sheets",
		Handler:  HandleBranch,
	})

	r.Register(&Command{
		Name:        ":rmsheet",
		Description: "Remove a sheet",
		Usage:       ":rmsheet <name>",
		Args: []ArgDef{
			{Name: "name", Required: true, Type: ArgTypeSheet, Description: "Sheet to remove"},
		},
		Category: "Sheets",
		Handler:  HandleRemoveSheet,
	})

	// Transform commands
	for _, v := range transformVerbs {
		verb := v.name
		r.Register(&Command{
			Name:        ":" + verb,
			Description: v.desc,
			Usage:       v.usage,
			Category:    "Transform",
			Handler: func(ctx *Context, args []string) tea.Cmd {
				return handleTransform(ctx, verb, args)
			},
		})
	}

	r.Register(&Command{
		Name:        ":undo",
		Aliases:     []string{":u"},
		Description: "Undo the last transformation on the current sheet",
		Category:    "Transform",
		Handler:     HandleUndo,
	})

	r.Register(&Command{
		Name:        ":script",
		Description: "Toggle the pipeline script panel",
		Category:    "Transform",
		Handler:     HandleScript,
	})

	r.Register(&Command{
		Name:        ":run",
		Description: "Replay a transform script against the current sheet",
		Usage:       ":run <file>",
		Args: []ArgDef{
			{Name: "file", Required: true, Type: ArgTypeFile, Description: "Script file to replay"},
		},
		Category: "Transform",
		Handler:  HandleRun,
	})

	// Input commands
	r.Register(&Command{
		Name:        ":set",
		Description: "Set a cell's value by its grid address",
		Usage:       ":set <addr> <value>",
		Args: []ArgDef{
			{Name: "addr", Required: true, Type: ArgTypeString, Description: "Cell address, e.g. B3"},
			{Name: "value", Required: true, Type: ArgTypeString, Description: "New cell value"},
		},
		Category: "Input",
		Handler:  HandleSet,
	})

	r.Register(&Command{
		Name:        ":paste",
		Aliases:     []string{":p"},
		Description: "Import tab-separated text from the clipboard",
		Category:    "Input",
		Handler:     HandlePaste,
	})

	r.Register(&Command{
		Name:        ":sample",
		Description: "Load the bundled sample dataset",
		Category:    "Input",
		Handler:     HandleSample,
	})

	// Navigation commands
	r.Register(&Command{
		Name:        ":help",
		Aliases:     []string{":h", ":?"},
		Description: "Show help and available commands",
		Usage:       ":help [category]",
		Args: []ArgDef{
			{Name: "topic", Required: false, Type: ArgTypeEnum, Values: []string{"file", "sheets", "transform", "input"}, Description: "Help category"},
		},
		Category: "Navigation",
		Handler:  HandleHelp,
	})

	r.Register(&Command{
		Name:        ":quit",
		Aliases:     []string{":q", ":exit"},
		Description: "Exit sweet",
		Category:    "Navigation",
		Handler:     HandleQuit,
	})
}

// =============================================================================
// CONTEXT TYPE
// =============================================================================

// Context provides access to application state for command handlers.
// All fields are optional and may be nil; handlers check before use.
type Context struct {
	// Config provides access to application configuration
	Config *config.Config

	// Workbook is the live sheet collection
	Workbook *workbook.Workbook

	// Store handles session snapshot persistence
	Store *storage.WorkbookStore
}

// NewContext creates a new command context with the given dependencies.
// All parameters are optional and can be nil.
func NewContext(cfg *config.Config, wb *workbook.Workbook, store *storage.WorkbookStore) *Context {
	return &Context{
		Config:   cfg,
		Workbook: wb,
		Store:    store,
	}
}
