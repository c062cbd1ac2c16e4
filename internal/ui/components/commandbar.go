// Copyright (c) 2025 Richard Iannone
// SPDX-License-Identifier: MIT

package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rich-iannone/sweet-data/internal/commands"
	"github.com/rich-iannone/sweet-data/internal/ui/styles"
)

// =============================================================================
// COMMAND BAR COMPONENT
// =============================================================================

// CommandBar wraps a text input for colon-command entry, with inline usage
// hints from the registry.
type CommandBar struct {
	input    textinput.Model
	registry *commands.Registry
	theme    *styles.Theme
	active   bool
	width    int
}

// NewCommandBar creates a command bar bound to a registry.
func NewCommandBar(theme *styles.Theme, registry *commands.Registry) *CommandBar {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "type a command, :help for the list"
	ti.CharLimit = 512
	ti.PromptStyle = theme.CommandPrompt
	ti.TextStyle = theme.CommandText
	ti.PlaceholderStyle = theme.CommandHint

	return &CommandBar{
		input:    ti,
		registry: registry,
		theme:    theme,
	}
}

// Active reports whether the bar is capturing input.
func (c *CommandBar) Active() bool {
	return c.active
}

// Activate opens the bar with ":" pre-filled.
func (c *CommandBar) Activate() tea.Cmd {
	c.active = true
	c.input.SetValue(":")
	c.input.CursorEnd()
	return c.input.Focus()
}

// Deactivate closes the bar and clears its content.
func (c *CommandBar) Deactivate() {
	c.active = false
	c.input.Blur()
	c.input.SetValue("")
}

// Value returns the current input text.
func (c *CommandBar) Value() string {
	return c.input.Value()
}

// SetWidth resizes the bar.
func (c *CommandBar) SetWidth(width int) {
	c.width = width
	c.input.Width = width - 4
}

// Update forwards events to the text input.
func (c *CommandBar) Update(msg tea.Msg) tea.Cmd {
	if !c.active {
		return nil
	}
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return cmd
}

// Hint returns the usage line for the command being typed, if any.
func (c *CommandBar) Hint() string {
	name := commands.ExtractCommandName(c.input.Value())
	if name == "" || c.registry == nil {
		return ""
	}
	cmd := c.registry.Get(name)
	if cmd == nil {
		return ""
	}
	if cmd.Usage != "" {
		return cmd.Usage
	}
	return cmd.Description
}

// View renders the command bar with its hint line.
func (c *CommandBar) View() string {
	if !c.active {
		return ""
	}

	var b strings.Builder
	b.WriteString(c.input.View())
	if hint := c.Hint(); hint != "" {
		b.WriteString("\n")
		b.WriteString(c.theme.CommandHint.Render(hint))
	}
	return c.theme.CommandBar.Width(c.width).Render(b.String())
}
