// Copyright (c) 2025 Richard Iannone
// SPDX-License-Identifier: MIT

package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rich-iannone/sweet-data/internal/frame"
	"github.com/rich-iannone/sweet-data/internal/storage"
	"github.com/rich-iannone/sweet-data/internal/workbook"
)

func testWorkbook(t *testing.T) *workbook.Workbook {
	t.Helper()
	f, err := frame.FromRows(
		[]string{"city", "pop"},
		[][]string{
			{"Toronto", "2794356"},
			{"Montreal", "1762949"},
			{"Calgary", "1306784"},
		},
	)
	require.NoError(t, err)

	wb := workbook.New()
	_, err = wb.AddSheet("cities", f)
	require.NoError(t, err)
	return wb
}

// =============================================================================
// REGISTRY TESTS
// =============================================================================

func TestRegistryLookup(t *testing.T) {
	r := NewRegistry()

	cmd := r.Get(":open")
	require.NotNil(t, cmd)
	assert.Equal(t, ":open", cmd.Name)

	// Aliases resolve to the same command
	assert.Same(t, cmd, r.Get(":o"))
	assert.Same(t, cmd, r.Get(":e"))

	assert.Nil(t, r.Get(":bogus"))
}

func TestRegistryTransformVerbs(t *testing.T) {
	r := NewRegistry()

	for _, verb := range []string{
		":filter", ":select", ":drop", ":rename", ":sort",
		":head", ":tail", ":distinct", ":withcol",
	} {
		cmd := r.Get(verb)
		require.NotNil(t, cmd, verb)
		assert.Equal(t, "Transform", cmd.Category)
	}
}

func TestRegistryByCategory(t *testing.T) {
	r := NewRegistry()
	r.Register(&Command{Name: ":secret", Hidden: true, Category: "File"})

	byCat := r.ByCategory()
	require.Contains(t, byCat, "File")
	require.Contains(t, byCat, "Sheets")
	require.Contains(t, byCat, "Transform")

	for _, cmd := range byCat["File"] {
		assert.NotEqual(t, ":secret", cmd.Name)
	}
}

// =============================================================================
// PARSER TESTS
// =============================================================================

func TestParserBasics(t *testing.T) {
	p := NewParser(NewRegistry())

	res := p.Parse("plain text")
	assert.False(t, res.IsCommand)

	res = p.Parse(":sheets")
	assert.True(t, res.IsCommand)
	require.NotNil(t, res.Command)
	assert.Equal(t, ":sheets", res.CommandName)
	assert.Empty(t, res.Args)

	res = p.Parse(":open data.csv csv")
	require.NotNil(t, res.Command)
	assert.Equal(t, []string{"data.csv", "csv"}, res.Args)
	assert.Equal(t, "data.csv csv", res.RawArgs)
}

func TestParserQuotedArgs(t *testing.T) {
	p := NewParser(NewRegistry())

	res := p.Parse(`:filter city contains "New York"`)
	assert.Equal(t, []string{"city", "contains", "New York"}, res.Args)

	res = p.Parse(`:open 'my data.csv'`)
	assert.Equal(t, []string{"my data.csv"}, res.Args)
}

func TestParserUnknownCommand(t *testing.T) {
	p := NewParser(NewRegistry())

	res := p.Parse(":frobnicate now")
	assert.True(t, res.IsCommand)
	assert.Nil(t, res.Command)
	assert.Equal(t, ":frobnicate", res.CommandName)
}

func TestExtractCommandName(t *testing.T) {
	assert.Equal(t, ":filter", ExtractCommandName(":filter pop > 100"))
	assert.Equal(t, ":sheets", ExtractCommandName("  :sheets  "))
	assert.Equal(t, "", ExtractCommandName("hello"))
}

func TestValidateArgs(t *testing.T) {
	r := NewRegistry()

	open := r.Get(":open")
	require.Error(t, ValidateArgs(open, nil))
	require.NoError(t, ValidateArgs(open, []string{"data.csv"}))

	err := ValidateArgs(open, []string{"data.csv", "parquet"})
	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "format", verr.Arg)

	require.NoError(t, ValidateArgs(open, []string{"data.csv", "XLSX"}))
}

// =============================================================================
// HANDLER TESTS
// =============================================================================

func TestHandleTransformApplies(t *testing.T) {
	ctx := NewContext(nil, testWorkbook(t), nil)

	cmd := handleTransform(ctx, "filter", []string{"pop", ">", "1500000"})
	require.NotNil(t, cmd)

	msg, ok := cmd().(TransformAppliedMsg)
	require.True(t, ok)
	require.NoError(t, msg.Error)
	assert.Equal(t, "cities", msg.Sheet)
	assert.Equal(t, "filter pop > 1500000", msg.Step.Expr)
	assert.Equal(t, 2, ctx.Workbook.Current().Frame.NumRows())
}

func TestHandleTransformQuotesSpacedArgs(t *testing.T) {
	f, err := frame.FromRows(
		[]string{"name"},
		[][]string{{"New York"}, {"Boston"}},
	)
	require.NoError(t, err)
	wb := workbook.New()
	_, err = wb.AddSheet("places", f)
	require.NoError(t, err)

	ctx := NewContext(nil, wb, nil)
	cmd := handleTransform(ctx, "filter", []string{"name", "contains", "New York"})

	msg, ok := cmd().(TransformAppliedMsg)
	require.True(t, ok)
	require.NoError(t, msg.Error)
	assert.Equal(t, 1, wb.Current().Frame.NumRows())
}

func TestHandleTransformRejectsUnknownColumn(t *testing.T) {
	ctx := NewContext(nil, testWorkbook(t), nil)

	msg, ok := handleTransform(ctx, "filter", []string{"budget", ">", "100"})().(ErrorMsg)
	require.True(t, ok)
	assert.Equal(t, "Invalid transform", msg.Title)
	assert.Contains(t, msg.Message, "budget")
	// Nothing was applied
	assert.Empty(t, ctx.Workbook.Current().Steps)
}

func TestHandleSet(t *testing.T) {
	ctx := NewContext(nil, testWorkbook(t), nil)

	msg, ok := HandleSet(ctx, []string{"b2", "999"})().(CellSetMsg)
	require.True(t, ok)
	require.NoError(t, msg.Error)
	assert.Equal(t, "B2", msg.Address)
	assert.Equal(t, int64(999), ctx.Workbook.Current().Frame.Cell(1, 1))

	// A non-parsing value demotes the column instead of failing.
	msg = HandleSet(ctx, []string{"B3", "lots"})().(CellSetMsg)
	require.NoError(t, msg.Error)
	assert.Equal(t, "lots", ctx.Workbook.Current().Frame.CellString(2, 1))

	bad := HandleSet(ctx, []string{"!!", "1"})().(CellSetMsg)
	assert.Error(t, bad.Error)

	oob := HandleSet(ctx, []string{"Z99", "1"})().(CellSetMsg)
	assert.Error(t, oob.Error)

	errMsg, ok := HandleSet(ctx, []string{"B2"})().(ErrorMsg)
	require.True(t, ok)
	assert.Equal(t, "Missing arguments", errMsg.Title)
}

func TestHandleRunReplaysScript(t *testing.T) {
	ctx := NewContext(nil, testWorkbook(t), nil)
	path := filepath.Join(t.TempDir(), "pipeline.sweet")
	script := "# sheet: cities\nfilter pop > 1500000\n\n# keep the top row\nhead 1\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0644))

	msg, ok := HandleRun(ctx, []string{path})().(ScriptRanMsg)
	require.True(t, ok)
	require.NoError(t, msg.Error)
	assert.Equal(t, 2, msg.Applied)
	assert.Equal(t, 1, ctx.Workbook.Current().Frame.NumRows())
	assert.Len(t, ctx.Workbook.Current().Steps, 2)
}

func TestHandleRunStopsOnBadStep(t *testing.T) {
	ctx := NewContext(nil, testWorkbook(t), nil)
	path := filepath.Join(t.TempDir(), "pipeline.sweet")
	require.NoError(t, os.WriteFile(path, []byte("head 2\nfrobnicate\nhead 1\n"), 0644))

	msg, ok := HandleRun(ctx, []string{path})().(ScriptRanMsg)
	require.True(t, ok)
	require.Error(t, msg.Error)
	assert.Equal(t, 1, msg.Applied)
	assert.Equal(t, 2, ctx.Workbook.Current().Frame.NumRows())

	missing := HandleRun(ctx, []string{filepath.Join(t.TempDir(), "nope.sweet")})().(ScriptRanMsg)
	assert.Error(t, missing.Error)
}

func TestHandleSessions(t *testing.T) {
	store := &storage.WorkbookStore{BaseDir: t.TempDir(), MaxWorkbooks: 10}
	ctx := NewContext(nil, testWorkbook(t), store)

	msg, ok := HandleSessions(ctx, nil)().(SessionListMsg)
	require.True(t, ok)
	assert.Equal(t, []string{"no stored sessions"}, msg.Lines)

	saved := HandleSave(ctx, nil)().(SnapshotSavedMsg)
	require.NoError(t, saved.Error)

	msg = HandleSessions(ctx, nil)().(SessionListMsg)
	require.Len(t, msg.Lines, 1)
	assert.Contains(t, msg.Lines[0], "cities")

	// Search filters by name and sheet preview
	msg = HandleSessions(ctx, []string{"cities"})().(SessionListMsg)
	assert.Len(t, msg.Lines, 1)
	msg = HandleSessions(ctx, []string{"nomatch"})().(SessionListMsg)
	require.Len(t, msg.Lines, 1)
	assert.Contains(t, msg.Lines[0], "no sessions matching")

	// Clear removes everything
	status, ok := HandleSessions(ctx, []string{"clear"})().(StatusMsg)
	require.True(t, ok)
	assert.Contains(t, status.Content, "cleared")
	msg = HandleSessions(ctx, nil)().(SessionListMsg)
	assert.Equal(t, []string{"no stored sessions"}, msg.Lines)
}

func TestHandleTransformNoSheet(t *testing.T) {
	ctx := NewContext(nil, workbook.New(), nil)

	cmd := handleTransform(ctx, "head", []string{"5"})
	msg, ok := cmd().(ErrorMsg)
	require.True(t, ok)
	assert.Equal(t, "No sheet", msg.Title)
}

func TestHandleUndo(t *testing.T) {
	ctx := NewContext(nil, testWorkbook(t), nil)

	applied := handleTransform(ctx, "head", []string{"1"})()
	require.NoError(t, applied.(TransformAppliedMsg).Error)
	require.Equal(t, 1, ctx.Workbook.Current().Frame.NumRows())

	msg, ok := HandleUndo(ctx, nil)().(UndoneMsg)
	require.True(t, ok)
	require.NoError(t, msg.Error)
	assert.Equal(t, 3, ctx.Workbook.Current().Frame.NumRows())
}

func TestHandleSheetSwitch(t *testing.T) {
	wb := testWorkbook(t)
	_, err := wb.BranchSheet("cities", "big")
	require.NoError(t, err)
	ctx := NewContext(nil, wb, nil)

	msg, ok := HandleSheet(ctx, []string{"cities"})().(SwitchSheetMsg)
	require.True(t, ok)
	require.NoError(t, msg.Error)
	assert.Equal(t, "cities", wb.CurrentName())

	msg = HandleSheet(ctx, []string{"missing"})().(SwitchSheetMsg)
	assert.Error(t, msg.Error)
}

func TestHandleSheetsListing(t *testing.T) {
	wb := testWorkbook(t)
	_, err := wb.BranchSheet("cities", "big")
	require.NoError(t, err)
	ctx := NewContext(nil, wb, nil)

	msg, ok := HandleSheets(ctx, nil)().(SheetListMsg)
	require.True(t, ok)
	require.Len(t, msg.Lines, 2)
	assert.Contains(t, msg.Lines[0], "cities")
	assert.Contains(t, msg.Lines[1], "(from cities)")
	// The branch is current after forking
	assert.Contains(t, msg.Lines[1], "*")
}

func TestHandleBranchAndRemove(t *testing.T) {
	ctx := NewContext(nil, testWorkbook(t), nil)

	msg, ok := HandleBranch(ctx, []string{"scratch"})().(BranchCreatedMsg)
	require.True(t, ok)
	require.NoError(t, msg.Error)
	assert.Equal(t, "scratch", ctx.Workbook.CurrentName())

	rm, ok := HandleRemoveSheet(ctx, []string{"scratch"})().(SheetRemovedMsg)
	require.True(t, ok)
	require.NoError(t, rm.Error)
	assert.Equal(t, "cities", ctx.Workbook.CurrentName())
}

func TestHandleSaveToFile(t *testing.T) {
	ctx := NewContext(nil, testWorkbook(t), nil)
	path := filepath.Join(t.TempDir(), "out.csv")

	msg, ok := HandleSave(ctx, []string{path})().(SheetSavedMsg)
	require.True(t, ok)
	require.NoError(t, msg.Error)
	assert.Equal(t, path, msg.Path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Toronto")
}

func TestHandleSaveSnapshot(t *testing.T) {
	store := &storage.WorkbookStore{BaseDir: t.TempDir(), MaxWorkbooks: 10}
	ctx := NewContext(nil, testWorkbook(t), store)

	msg, ok := HandleSave(ctx, nil)().(SnapshotSavedMsg)
	require.True(t, ok)
	require.NoError(t, msg.Error)
	assert.NotEmpty(t, msg.ID)

	load, ok := HandleLoad(ctx, []string{msg.ID})().(SnapshotLoadedMsg)
	require.True(t, ok)
	require.NoError(t, load.Error)
	assert.Equal(t, msg.ID, load.Snapshot.ID)

	// Index reference resolves to the most recent snapshot
	load = HandleLoad(ctx, []string{"0"})().(SnapshotLoadedMsg)
	require.NoError(t, load.Error)
	assert.Equal(t, msg.ID, load.Snapshot.ID)
}

func TestHandleExportFormats(t *testing.T) {
	msg := HandleExport(nil, []string{"md"})().(ExportSheetMsg)
	assert.Equal(t, "markdown", msg.Format)

	msg = HandleExport(nil, nil)().(ExportSheetMsg)
	assert.Equal(t, "markdown", msg.Format)

	msg = HandleExport(nil, []string{"script"})().(ExportSheetMsg)
	assert.Equal(t, "script", msg.Format)

	errMsg, ok := HandleExport(nil, []string{"docx"})().(ErrorMsg)
	require.True(t, ok)
	assert.Equal(t, "Invalid export format", errMsg.Title)
}

func TestHandleHelp(t *testing.T) {
	msg := HandleHelp(nil, []string{"Transform"})().(ShowHelpMsg)
	assert.Equal(t, "transform", msg.Topic)
}
