// Copyright (c) 2025 Richard Iannone
// SPDX-License-Identifier: MIT

package components

import (
	"strings"

	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromastyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rich-iannone/sweet-data/internal/ui/styles"
)

// =============================================================================
// SCRIPT PANEL COMPONENT
// =============================================================================

// ScriptPanel is the side drawer showing the generated pipeline script for
// the current sheet. It refreshes after every transform so the pipeline under
// review always matches the grid.
type ScriptPanel struct {
	viewport viewport.Model
	theme    *styles.Theme
	visible  bool
	script   string
	sheet    string
	width    int
	height   int
}

// NewScriptPanel creates a hidden script panel.
func NewScriptPanel(theme *styles.Theme) *ScriptPanel {
	vp := viewport.New(44, 20)
	return &ScriptPanel{
		viewport: vp,
		theme:    theme,
	}
}

// Visible reports whether the drawer is open.
func (p *ScriptPanel) Visible() bool {
	return p.visible
}

// Toggle opens or closes the drawer.
func (p *ScriptPanel) Toggle() {
	p.visible = !p.visible
}

// SetSize resizes the drawer.
func (p *ScriptPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.viewport.Width = width - 2
	p.viewport.Height = height - 3
	p.refresh()
}

// Width returns the drawer's configured width.
func (p *ScriptPanel) Width() int {
	if !p.visible {
		return 0
	}
	return p.width
}

// SetScript replaces the displayed script.
func (p *ScriptPanel) SetScript(sheet, script string) {
	p.sheet = sheet
	p.script = script
	p.refresh()
}

func (p *ScriptPanel) refresh() {
	p.viewport.SetContent(p.highlight(p.script))
}

// highlight runs the script through chroma for terminal syntax coloring.
// The pipeline script is shell-shaped (# comments over expression lines),
// so the bash lexer reads well.
func (p *ScriptPanel) highlight(script string) string {
	if script == "" {
		return p.theme.ScriptComment.Render("no transformations applied")
	}

	lexer := lexers.Get("bash")
	if lexer == nil {
		return script
	}
	iterator, err := lexer.Tokenise(nil, script)
	if err != nil {
		return script
	}

	styleName := "friendly"
	if p.theme.IsDark {
		styleName = "monokai"
	}
	style := chromastyles.Get(styleName)
	if style == nil {
		style = chromastyles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		return script
	}

	var b strings.Builder
	if err := formatter.Format(&b, style, iterator); err != nil {
		return script
	}
	return b.String()
}

// Update forwards scroll events to the viewport.
func (p *ScriptPanel) Update(msg tea.Msg) tea.Cmd {
	if !p.visible {
		return nil
	}
	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)
	return cmd
}

// View renders the drawer.
func (p *ScriptPanel) View() string {
	if !p.visible {
		return ""
	}

	title := "pipeline"
	if p.sheet != "" {
		title = "pipeline: " + p.sheet
	}

	var b strings.Builder
	b.WriteString(p.theme.ScriptTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(p.viewport.View())
	return p.theme.ScriptPanel.Width(p.width - 2).Height(p.height - 2).Render(b.String())
}
