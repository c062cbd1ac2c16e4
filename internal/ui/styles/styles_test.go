// Copyright (c) 2025 Richard Iannone
// SPDX-License-Identifier: MIT

package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTheme(t *testing.T) {
	theme := NewTheme()
	require.NotNil(t, theme)

	// Styles should render without panicking
	assert.NotPanics(t, func() {
		theme.GridHeader.Render("A (city)")
		theme.GridCursor.Render("Toronto")
		theme.StatusAddress.Render("C7")
		theme.ErrorBox.Render("boom")
	})
}

func TestLayoutMode(t *testing.T) {
	theme := NewTheme()

	theme.SetSize(40, 24)
	assert.Equal(t, LayoutNarrow, theme.GetLayoutMode())

	theme.SetSize(80, 24)
	assert.Equal(t, LayoutMedium, theme.GetLayoutMode())

	theme.SetSize(140, 40)
	assert.Equal(t, LayoutWide, theme.GetLayoutMode())
}

func TestDTypeColor(t *testing.T) {
	assert.Equal(t, DTypeInt, DTypeColor("int"))
	assert.Equal(t, DTypeFloat, DTypeColor("float"))
	assert.Equal(t, DTypeBool, DTypeColor("bool"))
	assert.Equal(t, DTypeTime, DTypeColor("time"))
	assert.Equal(t, DTypeString, DTypeColor("str"))
	assert.Equal(t, DTypeString, DTypeColor("anything"))
}

func TestRenderHelpers(t *testing.T) {
	assert.Contains(t, RenderSuccess("saved"), "saved")
	assert.Contains(t, RenderError("failed"), "failed")
	assert.Contains(t, RenderWarning("careful"), "careful")
}
