// Copyright (c) 2025 Richard Iannone
// SPDX-License-Identifier: MIT

package commands

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rich-iannone/sweet-data/internal/dataio"
	"github.com/rich-iannone/sweet-data/internal/frame"
	"github.com/rich-iannone/sweet-data/internal/storage"
	"github.com/rich-iannone/sweet-data/internal/transform"
)

// =============================================================================
// MESSAGE TYPES
// =============================================================================

// These messages are sent by command handlers to update the application state.

// OpenFileMsg requests loading a data file as a new sheet.
type OpenFileMsg struct {
	Path   string
	Format string // Empty means detect from extension
}

// SheetSavedMsg indicates a sheet was written to a file.
type SheetSavedMsg struct {
	Sheet string
	Path  string
	Error error
}

// SnapshotSavedMsg indicates a session snapshot was stored.
type SnapshotSavedMsg struct {
	ID    string
	Name  string
	Error error
}

// SnapshotLoadedMsg carries a restored session snapshot.
type SnapshotLoadedMsg struct {
	Snapshot *storage.StoredWorkbook
	Error    error
}

// ExportSheetMsg requests a rendered document export of the current sheet.
type ExportSheetMsg struct {
	Format string // "markdown", "html", "json", "script"
}

// CellSetMsg carries the result of a single-cell edit.
type CellSetMsg struct {
	Address string
	Value   string
	Error   error
}

// ScriptRanMsg carries the result of replaying a transform script.
type ScriptRanMsg struct {
	Sheet   string
	Applied int
	Error   error
}

// SessionListMsg requests the stored session list display.
type SessionListMsg struct {
	Lines []string
}

// SwitchSheetMsg indicates the current sheet changed.
type SwitchSheetMsg struct {
	Name  string
	Error error
}

// SheetListMsg requests the sheet list display.
type SheetListMsg struct {
	Lines []string
}

// BranchCreatedMsg indicates a sheet was branched.
type BranchCreatedMsg struct {
	Parent string
	Branch string
	Error  error
}

// SheetRemovedMsg indicates a sheet was removed.
type SheetRemovedMsg struct {
	Name  string
	Error error
}

// TransformAppliedMsg carries the result of applying a transform expression.
type TransformAppliedMsg struct {
	Sheet string
	Step  transform.Step
	Error error
}

// UndoneMsg indicates the last transform was rolled back.
type UndoneMsg struct {
	Sheet string
	Error error
}

// ToggleScriptMsg toggles the pipeline script panel.
type ToggleScriptMsg struct{}

// PasteRequestMsg asks the app to read and parse clipboard text.
type PasteRequestMsg struct{}

// LoadSampleMsg asks the app to load the bundled sample dataset.
type LoadSampleMsg struct{}

// ShowHelpMsg triggers the help overlay.
type ShowHelpMsg struct {
	Topic string // Optional category
}

// ErrorMsg indicates an error occurred.
type ErrorMsg struct {
	Title   string
	Message string
	Tip     string
}

// StatusMsg sets the status line text.
type StatusMsg struct {
	Content string
}

// =============================================================================
// FILE HANDLERS
// =============================================================================

// HandleOpen requests loading a data file.
func HandleOpen(ctx *Context, args []string) tea.Cmd {
	if len(args) == 0 {
		return errorCmd("Missing file", "usage: :open <file> [format]", "")
	}
	msg := OpenFileMsg{Path: args[0]}
	if len(args) > 1 {
		msg.Format = strings.ToLower(args[1])
	}
	return func() tea.Msg { return msg }
}

// HandleSave writes the current sheet to a file, or snapshots the whole
// session when no path is given.
func HandleSave(ctx *Context, args []string) tea.Cmd {
	if ctx == nil || ctx.Workbook == nil || ctx.Workbook.Current() == nil {
		return errorCmd("Nothing to save", "no sheet is loaded", "use :open or :sample first")
	}

	if len(args) > 0 {
		wb := ctx.Workbook
		sheet := wb.CurrentName()
		path := args[0]
		return func() tea.Msg {
			format, err := resolveFormat(path, args)
			if err != nil {
				return SheetSavedMsg{Sheet: sheet, Path: path, Error: err}
			}
			err = wb.SaveSheet(sheet, path, format)
			return SheetSavedMsg{Sheet: sheet, Path: path, Error: err}
		}
	}

	if ctx.Store == nil {
		return errorCmd("Snapshots unavailable", "session storage is not configured", "")
	}
	store := ctx.Store
	wb := ctx.Workbook
	return func() tea.Msg {
		snap := storage.Snapshot("", wb)
		id, err := store.Save(snap)
		if err != nil {
			return SnapshotSavedMsg{Error: err}
		}
		return SnapshotSavedMsg{ID: id, Name: snap.Name}
	}
}

// HandleLoad restores a stored session snapshot by ID or list index.
func HandleLoad(ctx *Context, args []string) tea.Cmd {
	if len(args) == 0 {
		return errorCmd("Missing snapshot", "usage: :load <id|index>", "see stored sessions with sweet info ~/.sweet/workbooks")
	}
	if ctx == nil || ctx.Store == nil {
		return errorCmd("Snapshots unavailable", "session storage is not configured", "")
	}

	store := ctx.Store
	ref := args[0]
	return func() tea.Msg {
		var (
			snap *storage.StoredWorkbook
			err  error
		)
		if n, convErr := strconv.Atoi(ref); convErr == nil {
			snap, err = store.LoadByIndex(n)
		} else {
			snap, err = store.Load(ref)
		}
		return SnapshotLoadedMsg{Snapshot: snap, Error: err}
	}
}

// HandleExport exports the current sheet as a rendered document, or the
// whole workbook's pipelines as a script.
func HandleExport(ctx *Context, args []string) tea.Cmd {
	format := "markdown"
	if len(args) > 0 {
		format = strings.ToLower(args[0])
		switch format {
		case "md":
			format = "markdown"
		case "htm":
			format = "html"
		}
	}

	switch format {
	case "markdown", "html", "json", "script":
	default:
		return errorCmd("Invalid export format",
			fmt.Sprintf("unknown format: %s", format),
			"supported formats: markdown, html, json, script")
	}

	return func() tea.Msg {
		return ExportSheetMsg{Format: format}
	}
}

// =============================================================================
// SHEET HANDLERS
// =============================================================================

// HandleSheet switches the current sheet.
func HandleSheet(ctx *Context, args []string) tea.Cmd {
	if len(args) == 0 {
		return errorCmd("Missing sheet name", "usage: :sheet <name>", "list sheets with :sheets")
	}
	if ctx == nil || ctx.Workbook == nil {
		return nil
	}

	wb := ctx.Workbook
	name := args[0]
	return func() tea.Msg {
		err := wb.SetCurrent(name)
		return SwitchSheetMsg{Name: name, Error: err}
	}
}

// HandleSheets lists the workbook's sheets with shape and lineage.
func HandleSheets(ctx *Context, args []string) tea.Cmd {
	if ctx == nil || ctx.Workbook == nil {
		return nil
	}

	wb := ctx.Workbook
	return func() tea.Msg {
		names := wb.SheetNames()
		if len(names) == 0 {
			return SheetListMsg{Lines: []string{"no sheets loaded"}}
		}

		lines := make([]string, 0, len(names))
		for _, name := range names {
			s, err := wb.Sheet(name)
			if err != nil {
				continue
			}
			marker := " "
			if name == wb.CurrentName() {
				marker = "*"
			}
			line := fmt.Sprintf("%s %s  %dx%d  %d steps",
				marker, name, s.Frame.NumRows(), s.Frame.NumCols(), len(s.Steps))
			if s.Parent != "" {
				line += "  (from " + s.Parent + ")"
			}
			lines = append(lines, line)
		}
		return SheetListMsg{Lines: lines}
	}
}

// HandleBranch forks the current sheet under a new name.
func HandleBranch(ctx *Context, args []string) tea.Cmd {
	if len(args) == 0 {
		return errorCmd("Missing branch name", "usage: :branch <name>", "")
	}
	if ctx == nil || ctx.Workbook == nil || ctx.Workbook.Current() == nil {
		return errorCmd("Nothing to branch", "no sheet is loaded", "")
	}

	wb := ctx.Workbook
	parent := wb.CurrentName()
	branch := args[0]
	return func() tea.Msg {
		_, err := wb.BranchSheet(parent, branch)
		return BranchCreatedMsg{Parent: parent, Branch: branch, Error: err}
	}
}

// HandleRemoveSheet removes a sheet from the workbook.
func HandleRemoveSheet(ctx *Context, args []string) tea.Cmd {
	if len(args) == 0 {
		return errorCmd("Missing sheet name", "usage: :rmsheet <name>", "")
	}
	if ctx == nil || ctx.Workbook == nil {
		return nil
	}

	wb := ctx.Workbook
	name := args[0]
	return func() tea.Msg {
		err := wb.RemoveSheet(name)
		return SheetRemovedMsg{Name: name, Error: err}
	}
}

// =============================================================================
// TRANSFORM HANDLERS
// =============================================================================

// handleTransform applies a verb expression to the current sheet.
func handleTransform(ctx *Context, verb string, args []string) tea.Cmd {
	if ctx == nil || ctx.Workbook == nil || ctx.Workbook.Current() == nil {
		return errorCmd("No sheet", "load a sheet before transforming", "use :open or :sample")
	}

	wb := ctx.Workbook
	sheet := wb.CurrentName()
	expr := verb
	if len(args) > 0 {
		expr += " " + strings.Join(quoteArgs(args), " ")
	}

	return func() tea.Msg {
		if s, serr := wb.Sheet(sheet); serr == nil {
			if verr := transform.Validate(s.Frame, expr); verr != nil {
				return ErrorMsg{
					Title:   "Invalid transform",
					Message: verr.Error(),
					Tip:     "see :help transform",
				}
			}
		}
		step, err := wb.Apply(sheet, expr)
		return TransformAppliedMsg{Sheet: sheet, Step: step, Error: err}
	}
}

// quoteArgs re-quotes tokens containing spaces so the expression parser
// sees them as single values.
func quoteArgs(args []string) []string {
	out := make([]string, len(args))
	for i, a := range args {
		if strings.ContainsAny(a, " \t") {
			out[i] = "\"" + a + "\""
		} else {
			out[i] = a
		}
	}
	return out
}

// HandleSet edits a single cell of the current sheet by grid address.
func HandleSet(ctx *Context, args []string) tea.Cmd {
	if len(args) < 2 {
		return errorCmd("Missing arguments", "usage: :set <addr> <value>", "example: :set B3 42")
	}
	if ctx == nil || ctx.Workbook == nil || ctx.Workbook.Current() == nil {
		return errorCmd("No sheet", "load a sheet before editing", "use :open or :sample")
	}

	sheet := ctx.Workbook.Current()
	addr := strings.ToUpper(args[0])
	value := strings.Join(args[1:], " ")
	return func() tea.Msg {
		row, col, err := frame.ParseAddress(addr)
		if err != nil {
			return CellSetMsg{Address: addr, Error: err}
		}
		err = sheet.Frame.SetCell(row, col, value)
		return CellSetMsg{Address: addr, Value: value, Error: err}
	}
}

// HandleRun replays a transform script file against the current sheet.
func HandleRun(ctx *Context, args []string) tea.Cmd {
	if len(args) == 0 {
		return errorCmd("Missing script", "usage: :run <file>", "write one with :export script")
	}
	if ctx == nil || ctx.Workbook == nil || ctx.Workbook.Current() == nil {
		return errorCmd("No sheet", "load a sheet before running a script", "use :open or :sample")
	}

	wb := ctx.Workbook
	sheet := wb.CurrentName()
	path := args[0]
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			return ScriptRanMsg{Sheet: sheet, Error: err}
		}
		applied := 0
		for _, expr := range transform.ParseScript(string(data)) {
			if _, err := wb.Apply(sheet, expr); err != nil {
				return ScriptRanMsg{Sheet: sheet, Applied: applied, Error: fmt.Errorf("%s: %w", expr, err)}
			}
			applied++
		}
		return ScriptRanMsg{Sheet: sheet, Applied: applied}
	}
}

// HandleUndo rolls back the last transform on the current sheet.
func HandleUndo(ctx *Context, args []string) tea.Cmd {
	if ctx == nil || ctx.Workbook == nil || ctx.Workbook.Current() == nil {
		return errorCmd("Nothing to undo", "no sheet is loaded", "")
	}

	wb := ctx.Workbook
	sheet := wb.CurrentName()
	return func() tea.Msg {
		err := wb.Undo(sheet)
		return UndoneMsg{Sheet: sheet, Error: err}
	}
}

// HandleScript toggles the pipeline script panel.
func HandleScript(ctx *Context, args []string) tea.Cmd {
	return func() tea.Msg {
		return ToggleScriptMsg{}
	}
}

// =============================================================================
// INPUT AND NAVIGATION HANDLERS
// =============================================================================

// HandlePaste asks the app to import clipboard text.
func HandlePaste(ctx *Context, args []string) tea.Cmd {
	return func() tea.Msg {
		return PasteRequestMsg{}
	}
}

// HandleSample asks the app to load the bundled sample dataset.
func HandleSample(ctx *Context, args []string) tea.Cmd {
	return func() tea.Msg {
		return LoadSampleMsg{}
	}
}

// HandleSessions lists stored session snapshots, filters them by a query, or
// clears them all.
func HandleSessions(ctx *Context, args []string) tea.Cmd {
	if ctx == nil || ctx.Store == nil {
		return errorCmd("Snapshots unavailable", "session storage is not configured", "")
	}

	store := ctx.Store
	if len(args) > 0 && strings.EqualFold(args[0], "clear") {
		return func() tea.Msg {
			if err := store.Clear(); err != nil {
				return ErrorMsg{Title: "Clear failed", Message: err.Error()}
			}
			return StatusMsg{Content: "cleared stored sessions"}
		}
	}

	query := strings.Join(args, " ")
	return func() tea.Msg {
		var (
			metas []storage.WorkbookMeta
			err   error
		)
		if query != "" {
			metas, err = store.Search(query)
		} else {
			metas, err = store.List()
		}
		if err != nil {
			return ErrorMsg{Title: "Session list failed", Message: err.Error()}
		}
		if len(metas) == 0 {
			if query != "" {
				return SessionListMsg{Lines: []string{fmt.Sprintf("no sessions matching %q", query)}}
			}
			return SessionListMsg{Lines: []string{"no stored sessions"}}
		}

		lines := make([]string, 0, len(metas))
		for i, meta := range metas {
			lines = append(lines, fmt.Sprintf("%d: %s  %d sheets, %d steps  (%s)",
				i, meta.Name, meta.SheetCount, meta.StepCount, meta.Preview))
		}
		return SessionListMsg{Lines: lines}
	}
}

// HandleHelp shows help information.
func HandleHelp(ctx *Context, args []string) tea.Cmd {
	topic := ""
	if len(args) > 0 {
		topic = strings.ToLower(args[0])
	}
	return func() tea.Msg {
		return ShowHelpMsg{Topic: topic}
	}
}

// HandleQuit exits the application.
func HandleQuit(ctx *Context, args []string) tea.Cmd {
	return tea.Quit
}

// =============================================================================
// HELPERS
// =============================================================================

// resolveFormat picks the output format from an explicit second argument or
// the file extension.
func resolveFormat(path string, args []string) (dataio.Format, error) {
	if len(args) > 1 {
		return dataio.ParseFormat(args[1])
	}
	return dataio.DetectFormat(path)
}

func errorCmd(title, message, tip string) tea.Cmd {
	return func() tea.Msg {
		return ErrorMsg{Title: title, Message: message, Tip: tip}
	}
}
