// Copyright (c) 2025 Richard Iannone
// SPDX-License-Identifier: MIT

package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the application.
func (m *Model) View() string {
	if m.help.Visible() {
		return m.help.View()
	}

	var b strings.Builder

	if m.workbook.NumSheets() == 0 {
		b.WriteString(m.welcome.View())
	} else {
		content := m.grid.View()
		if m.scriptPanel.Visible() {
			content = lipgloss.JoinHorizontal(lipgloss.Top, content, m.scriptPanel.View())
		}
		b.WriteString(content)
	}

	b.WriteString("\n")
	b.WriteString(m.statusBar.View())

	if m.commandBar.Active() {
		b.WriteString("\n")
		b.WriteString(m.commandBar.View())
	}

	return b.String()
}
