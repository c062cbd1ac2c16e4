// Copyright (c) 2025 Richard Iannone
// SPDX-License-Identifier: MIT

package workbook

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rich-iannone/sweet-data/internal/dataio"
	"github.com/rich-iannone/sweet-data/internal/frame"
)

func cityFrame(t *testing.T) *frame.Frame {
	t.Helper()
	f, err := frame.FromRows(
		[]string{"city", "population"},
		[][]string{
			{"Toronto", "2794356"},
			{"Montreal", "1762949"},
			{"Calgary", "1306784"},
		},
	)
	require.NoError(t, err)
	return f
}

func TestAddSheet(t *testing.T) {
	w := New()
	assert.Nil(t, w.Current())
	assert.Equal(t, "", w.CurrentName())

	s, err := w.AddSheet("cities", cityFrame(t))
	require.NoError(t, err)
	assert.Equal(t, "cities", s.Name)
	assert.Equal(t, "cities", w.CurrentName())

	_, err = w.AddSheet("cities", nil)
	assert.ErrorIs(t, err, ErrDuplicateSheet)

	_, err = w.AddSheet("  ", nil)
	assert.Error(t, err)

	blank, err := w.AddSheet("blank", nil)
	require.NoError(t, err)
	assert.Equal(t, 0, blank.Frame.NumCols())
	assert.Equal(t, []string{"cities", "blank"}, w.SheetNames())
}

func TestSetCurrent(t *testing.T) {
	w := New()
	_, err := w.AddSheet("a", cityFrame(t))
	require.NoError(t, err)
	_, err = w.AddSheet("b", cityFrame(t))
	require.NoError(t, err)

	require.NoError(t, w.SetCurrent("a"))
	assert.Equal(t, "a", w.CurrentName())

	assert.ErrorIs(t, w.SetCurrent("missing"), ErrSheetNotFound)
}

func TestLoadAndSaveSheet(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.csv")
	require.NoError(t, os.WriteFile(src, []byte("a,b\n1,2\n3,4\n"), 0644))

	w := New()
	s, err := w.LoadSheet("in", src, "")
	require.NoError(t, err)
	assert.Equal(t, src, s.Source)
	assert.Equal(t, 2, s.Frame.NumRows())

	dst := filepath.Join(dir, "out.json")
	require.NoError(t, w.SaveSheet("in", dst, ""))
	_, err = os.Stat(dst)
	require.NoError(t, err)

	assert.ErrorIs(t, w.SaveSheet("missing", dst, ""), ErrSheetNotFound)

	_, err = w.LoadSheet("bad", filepath.Join(dir, "nope.csv"), "")
	assert.Error(t, err)
}

func TestApplyAndUndo(t *testing.T) {
	w := New()
	_, err := w.AddSheet("cities", cityFrame(t))
	require.NoError(t, err)

	step, err := w.Apply("cities", "filter population > 1500000")
	require.NoError(t, err)
	assert.Equal(t, "filter population > 1500000", step.Expr)

	s, err := w.Sheet("cities")
	require.NoError(t, err)
	assert.Equal(t, 2, s.Frame.NumRows())
	assert.Len(t, s.Steps, 1)

	_, err = w.Apply("cities", "head 1")
	require.NoError(t, err)
	assert.Equal(t, 1, s.Frame.NumRows())
	assert.Len(t, s.Steps, 2)

	require.NoError(t, w.Undo("cities"))
	assert.Equal(t, 2, s.Frame.NumRows())
	assert.Len(t, s.Steps, 1)

	require.NoError(t, w.Undo("cities"))
	assert.Equal(t, 3, s.Frame.NumRows())

	assert.ErrorIs(t, w.Undo("cities"), ErrNothingToUndo)

	// A failing expression leaves the sheet untouched.
	_, err = w.Apply("cities", "filter population > nope")
	assert.Error(t, err)
	assert.Len(t, s.Steps, 0)
	assert.Equal(t, 3, s.Frame.NumRows())
}

func TestMaxUndoBoundsHistory(t *testing.T) {
	w := New()
	w.MaxUndo = 3
	_, err := w.AddSheet("cities", cityFrame(t))
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		_, err = w.Apply("cities", "sort city")
		require.NoError(t, err)
	}

	undos := 0
	for w.Undo("cities") == nil {
		undos++
	}
	assert.Equal(t, 3, undos)

	// Unset falls back to the default depth.
	w2 := New()
	_, err = w2.AddSheet("cities", cityFrame(t))
	require.NoError(t, err)
	for i := 0; i < DefaultMaxUndo+5; i++ {
		_, err = w2.Apply("cities", "sort city")
		require.NoError(t, err)
	}
	undos = 0
	for w2.Undo("cities") == nil {
		undos++
	}
	assert.Equal(t, DefaultMaxUndo, undos)
}

func TestBranchSheet(t *testing.T) {
	w := New()
	_, err := w.AddSheet("cities", cityFrame(t))
	require.NoError(t, err)

	b, err := w.BranchSheet("cities", "big")
	require.NoError(t, err)
	assert.Equal(t, "cities", b.Parent)
	assert.Equal(t, "big", w.CurrentName())

	p, err := w.Sheet("cities")
	require.NoError(t, err)
	assert.Equal(t, []string{"big"}, p.Branches)

	// The branch is independent of the parent.
	_, err = w.Apply("big", "head 1")
	require.NoError(t, err)
	assert.Equal(t, 3, p.Frame.NumRows())
	assert.Equal(t, 1, b.Frame.NumRows())

	_, err = w.BranchSheet("cities", "big")
	assert.ErrorIs(t, err, ErrDuplicateSheet)

	_, err = w.BranchSheet("missing", "x")
	assert.ErrorIs(t, err, ErrSheetNotFound)

	_, err = w.AddSheet("blank", nil)
	require.NoError(t, err)
	_, err = w.BranchSheet("blank", "x")
	assert.ErrorIs(t, err, ErrEmptySheet)
}

func TestBranchInheritsSource(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.csv")
	require.NoError(t, os.WriteFile(src, []byte("a,b\n1,2\n3,4\n"), 0644))

	w := New()
	_, err := w.LoadSheet("in", src, dataio.FormatCSV)
	require.NoError(t, err)

	b, err := w.BranchSheet("in", "fork")
	require.NoError(t, err)
	assert.Equal(t, src, b.Source)
	assert.Equal(t, dataio.FormatCSV, b.SourceFormat)
}

func TestBranchInheritsPipeline(t *testing.T) {
	w := New()
	_, err := w.AddSheet("cities", cityFrame(t))
	require.NoError(t, err)
	_, err = w.Apply("cities", "sort population desc")
	require.NoError(t, err)

	b, err := w.BranchSheet("cities", "sorted")
	require.NoError(t, err)
	require.Len(t, b.Steps, 1)

	// Steps slice is a copy; appending to the branch leaves the parent alone.
	_, err = w.Apply("sorted", "head 1")
	require.NoError(t, err)
	p, _ := w.Sheet("cities")
	assert.Len(t, p.Steps, 1)
	assert.Len(t, b.Steps, 2)
}

func TestRemoveSheet(t *testing.T) {
	w := New()
	_, err := w.AddSheet("cities", cityFrame(t))
	require.NoError(t, err)
	_, err = w.BranchSheet("cities", "big")
	require.NoError(t, err)
	_, err = w.BranchSheet("big", "bigger")
	require.NoError(t, err)

	// Removing a branch detaches it from its parent.
	require.NoError(t, w.RemoveSheet("bigger"))
	big, err := w.Sheet("big")
	require.NoError(t, err)
	assert.Empty(t, big.Branches)

	// Removing a parent orphans its branches.
	_, err = w.BranchSheet("cities", "other")
	require.NoError(t, err)
	require.NoError(t, w.RemoveSheet("cities"))
	other, err := w.Sheet("other")
	require.NoError(t, err)
	assert.Equal(t, "", other.Parent)

	// Current falls back to the first remaining sheet.
	require.NoError(t, w.SetCurrent("other"))
	require.NoError(t, w.RemoveSheet("other"))
	assert.Equal(t, "big", w.CurrentName())

	require.NoError(t, w.RemoveSheet("big"))
	assert.Equal(t, "", w.CurrentName())
	assert.Nil(t, w.Current())

	assert.ErrorIs(t, w.RemoveSheet("big"), ErrSheetNotFound)
}

func TestScripts(t *testing.T) {
	w := New()
	_, err := w.AddSheet("cities", cityFrame(t))
	require.NoError(t, err)
	_, err = w.Apply("cities", "filter population > 1500000")
	require.NoError(t, err)

	script, err := w.Script("cities")
	require.NoError(t, err)
	assert.Contains(t, script, "# sheet: cities")
	assert.Contains(t, script, "filter population > 1500000")

	_, err = w.AddSheet("empty", nil)
	require.NoError(t, err)

	all := w.ExportScript()
	assert.Contains(t, all, "# sheet: cities")
	assert.Contains(t, all, "# sheet: empty")
	assert.Contains(t, all, "# no transformations applied")

	_, err = w.Script("missing")
	assert.ErrorIs(t, err, ErrSheetNotFound)
}
