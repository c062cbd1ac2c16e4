// Copyright (c) 2025 Richard Iannone
// SPDX-License-Identifier: MIT

package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rich-iannone/sweet-data/internal/commands"
	"github.com/rich-iannone/sweet-data/internal/frame"
	"github.com/rich-iannone/sweet-data/internal/ui/styles"
)

func testFrame(t *testing.T) *frame.Frame {
	t.Helper()
	f, err := frame.FromRows(
		[]string{"city", "pop"},
		[][]string{
			{"Toronto", "2794356"},
			{"Montreal", "1762949"},
			{"Calgary", "1306784"},
			{"Ottawa", "1017449"},
		},
	)
	require.NoError(t, err)
	return f
}

// =============================================================================
// GRID TESTS
// =============================================================================

func TestGridView(t *testing.T) {
	g := NewGrid(styles.NewTheme())
	g.SetSize(80, 10)
	g.SetFrame(testFrame(t))

	out := g.View()
	assert.Contains(t, out, "A (city)")
	assert.Contains(t, out, "B (pop)")
	assert.Contains(t, out, "Toronto")
	assert.Contains(t, out, "1")
}

func TestGridEmpty(t *testing.T) {
	g := NewGrid(styles.NewTheme())
	assert.Contains(t, g.View(), "no data")
	assert.Equal(t, "", g.CursorAddress())
}

func TestGridCursorMovement(t *testing.T) {
	g := NewGrid(styles.NewTheme())
	g.SetSize(80, 10)
	g.SetFrame(testFrame(t))

	assert.Equal(t, "A1", g.CursorAddress())

	g.MoveCursor(1, 1)
	assert.Equal(t, "B2", g.CursorAddress())
	assert.Equal(t, "1762949", g.CursorValue())
	assert.Equal(t, "pop", g.CursorColumn().Name)

	// Clamped at the edges
	g.MoveCursor(100, 100)
	assert.Equal(t, 3, g.CursorRow)
	assert.Equal(t, 1, g.CursorCol)
	g.MoveCursor(-100, -100)
	assert.Equal(t, "A1", g.CursorAddress())
}

func TestGridJumpAndPaging(t *testing.T) {
	g := NewGrid(styles.NewTheme())
	g.SetSize(80, 3)
	g.SetFrame(testFrame(t))

	g.End()
	assert.Equal(t, 3, g.CursorRow)
	g.Home()
	assert.Equal(t, 0, g.CursorRow)
	g.PageDown()
	assert.Equal(t, 2, g.CursorRow)
}

func TestGridTruncatesWideCells(t *testing.T) {
	f, err := frame.FromRows(
		[]string{"note"},
		[][]string{{"a very long cell value that exceeds the column cap"}},
	)
	require.NoError(t, err)

	g := NewGrid(styles.NewTheme())
	g.MaxColWidth = 12
	g.SetSize(40, 5)
	g.SetFrame(f)

	out := g.View()
	assert.Contains(t, out, "...")
	assert.NotContains(t, out, "exceeds the column cap")
}

// =============================================================================
// STATUS BAR TESTS
// =============================================================================

func TestStatusBarWide(t *testing.T) {
	sb := NewStatusBar(styles.NewTheme())
	sb.SetWidth(120)
	sb.SetSheet("cities", 2794356, 9)
	sb.SetCursor("C7", "int")

	out := sb.View()
	assert.Contains(t, out, "C7")
	assert.Contains(t, out, "cities")
	assert.Contains(t, out, "2,794,356 x 9")
	assert.Contains(t, out, "int")
}

func TestStatusBarFileChanged(t *testing.T) {
	sb := NewStatusBar(styles.NewTheme())
	sb.SetWidth(120)
	sb.FileChanged = true

	assert.Contains(t, sb.View(), "file changed on disk")
}

func TestStatusBarNarrow(t *testing.T) {
	sb := NewStatusBar(styles.NewTheme())
	sb.SetWidth(40)
	sb.SetSheet("cities", 10, 2)
	sb.SetCursor("A1", "str")

	out := sb.View()
	assert.Contains(t, out, "A1")
	assert.Contains(t, out, "10 x 2")
	// dtype is dropped in the narrow layout
	assert.NotContains(t, out, "str")
}

// =============================================================================
// COMMAND BAR TESTS
// =============================================================================

func TestCommandBarLifecycle(t *testing.T) {
	cb := NewCommandBar(styles.NewTheme(), commands.NewRegistry())
	cb.SetWidth(80)

	assert.False(t, cb.Active())
	assert.Equal(t, "", cb.View())

	cb.Activate()
	assert.True(t, cb.Active())
	assert.Equal(t, ":", cb.Value())

	cb.Deactivate()
	assert.False(t, cb.Active())
	assert.Equal(t, "", cb.Value())
}

func TestCommandBarHint(t *testing.T) {
	cb := NewCommandBar(styles.NewTheme(), commands.NewRegistry())
	cb.input.SetValue(":open data")
	assert.Equal(t, ":open <file> [format]", cb.Hint())

	cb.input.SetValue(":nothere")
	assert.Equal(t, "", cb.Hint())
}

// =============================================================================
// SCRIPT PANEL TESTS
// =============================================================================

func TestScriptPanelToggle(t *testing.T) {
	p := NewScriptPanel(styles.NewTheme())
	p.SetSize(44, 20)

	assert.False(t, p.Visible())
	assert.Equal(t, "", p.View())
	assert.Equal(t, 0, p.Width())

	p.Toggle()
	assert.True(t, p.Visible())
	assert.Equal(t, 44, p.Width())

	p.SetScript("cities", "# sheet: cities\nfilter pop > 1000000\n")
	out := p.View()
	assert.Contains(t, out, "pipeline: cities")
}

// =============================================================================
// WELCOME AND HELP TESTS
// =============================================================================

func TestWelcomeView(t *testing.T) {
	w := NewWelcome(styles.NewTheme(), "v0.3.0")
	w.SetSize(100, 30)

	out := w.View()
	assert.Contains(t, out, "sweet")
	assert.Contains(t, out, "v0.3.0")
	assert.Contains(t, out, ":open")
	assert.Contains(t, out, ":sample")
}

func TestHelpMarkdown(t *testing.T) {
	h := NewHelp(styles.NewTheme(), commands.NewRegistry())

	md := h.markdown()
	assert.Contains(t, md, "## Transform")
	assert.Contains(t, md, ":filter <col> <op> <value>")
	assert.Contains(t, md, "## File")

	h.topic = "sheets"
	md = h.markdown()
	assert.Contains(t, md, "## Sheets")
	assert.NotContains(t, md, "## Transform")
}

func TestHelpToggle(t *testing.T) {
	h := NewHelp(styles.NewTheme(), commands.NewRegistry())

	h.Toggle()
	assert.True(t, h.Visible())
	assert.NotEqual(t, "", h.View())

	h.Toggle()
	assert.False(t, h.Visible())
	assert.Equal(t, "", h.View())
}
