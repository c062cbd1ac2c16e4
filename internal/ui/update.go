// Copyright (c) 2025 Richard Iannone
// SPDX-License-Identifier: MIT

package ui

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rich-iannone/sweet-data/internal/commands"
	"github.com/rich-iannone/sweet-data/internal/export"
	"github.com/rich-iannone/sweet-data/internal/paste"
)

// Update routes Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case fileChangedMsg:
		m.changed[msg.Path] = true
		m.refresh()
		return m, m.waitForFileChange()

	// Command results
	case commands.OpenFileMsg:
		if err := m.openFile(msg.Path, msg.Format); err != nil {
			m.fail(err)
		}
		return m, nil

	case commands.SheetSavedMsg:
		if msg.Error != nil {
			m.fail(msg.Error)
		} else {
			m.status(fmt.Sprintf("saved %s to %s", msg.Sheet, msg.Path))
		}
		return m, nil

	case commands.SnapshotSavedMsg:
		if msg.Error != nil {
			m.fail(msg.Error)
		} else {
			m.status(fmt.Sprintf("session saved as %s (%s)", msg.Name, msg.ID))
		}
		return m, nil

	case commands.SnapshotLoadedMsg:
		if msg.Error != nil {
			m.fail(msg.Error)
		} else {
			m.restoreSnapshot(msg.Snapshot)
		}
		return m, nil

	case commands.ExportSheetMsg:
		m.exportSheet(msg.Format)
		return m, nil

	case commands.SwitchSheetMsg:
		if msg.Error != nil {
			m.fail(msg.Error)
		} else {
			m.refresh()
			m.status("sheet: " + msg.Name)
		}
		return m, nil

	case commands.SheetListMsg:
		m.status(joinLines(msg.Lines))
		return m, nil

	case commands.BranchCreatedMsg:
		if msg.Error != nil {
			m.fail(msg.Error)
		} else {
			m.refresh()
			m.status(fmt.Sprintf("branched %s from %s", msg.Branch, msg.Parent))
		}
		return m, nil

	case commands.SheetRemovedMsg:
		if msg.Error != nil {
			m.fail(msg.Error)
		} else {
			m.refresh()
			m.status("removed " + msg.Name)
		}
		return m, nil

	case commands.TransformAppliedMsg:
		if msg.Error != nil {
			m.fail(msg.Error)
		} else {
			m.refresh()
			m.status(msg.Step.Description)
		}
		return m, nil

	case commands.CellSetMsg:
		if msg.Error != nil {
			m.fail(msg.Error)
		} else {
			m.refresh()
			m.status(fmt.Sprintf("set %s = %s", msg.Address, msg.Value))
		}
		return m, nil

	case commands.ScriptRanMsg:
		m.refresh()
		if msg.Error != nil {
			m.fail(fmt.Errorf("script stopped after %d steps: %w", msg.Applied, msg.Error))
		} else {
			m.status(fmt.Sprintf("replayed %d steps on %s", msg.Applied, msg.Sheet))
		}
		return m, nil

	case commands.SessionListMsg:
		m.status(joinLines(msg.Lines))
		return m, nil

	case commands.UndoneMsg:
		if msg.Error != nil {
			m.fail(msg.Error)
		} else {
			m.refresh()
			m.status("undone")
		}
		return m, nil

	case commands.ToggleScriptMsg:
		m.scriptPanel.Toggle()
		m.resize(m.width, m.height)
		return m, nil

	case commands.PasteRequestMsg:
		m.pasteFromClipboard()
		return m, nil

	case commands.LoadSampleMsg:
		m.loadSample()
		return m, nil

	case commands.ShowHelpMsg:
		m.help.Show(msg.Topic)
		return m, nil

	case commands.ErrorMsg:
		text := msg.Message
		if msg.Tip != "" {
			text += " (" + msg.Tip + ")"
		}
		m.fail(fmt.Errorf("%s: %s", msg.Title, text))
		return m, nil

	case commands.StatusMsg:
		m.status(msg.Content)
		return m, nil
	}

	// Forward everything else to focused components
	if m.commandBar.Active() {
		return m, m.commandBar.Update(msg)
	}
	return m, m.scriptPanel.Update(msg)
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The command bar swallows everything while open.
	if m.commandBar.Active() {
		switch msg.String() {
		case "esc":
			m.commandBar.Deactivate()
			return m, nil
		case "enter":
			input := m.commandBar.Value()
			m.commandBar.Deactivate()
			return m, m.execute(input)
		default:
			return m, m.commandBar.Update(msg)
		}
	}

	// Help overlay closes on any of its toggles or esc.
	if m.help.Visible() {
		switch msg.String() {
		case "esc", "f1", "?", "q":
			m.help.Hide()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keyMap.Quit):
		m.Close()
		return m, tea.Quit

	case key.Matches(msg, m.keyMap.Command):
		return m, m.commandBar.Activate()

	case key.Matches(msg, m.keyMap.Help):
		m.help.Toggle()
		return m, nil

	case key.Matches(msg, m.keyMap.Script):
		m.scriptPanel.Toggle()
		m.resize(m.width, m.height)
		return m, nil

	case key.Matches(msg, m.keyMap.Up):
		m.grid.MoveCursor(-1, 0)
	case key.Matches(msg, m.keyMap.Down):
		m.grid.MoveCursor(1, 0)
	case key.Matches(msg, m.keyMap.Left):
		m.grid.MoveCursor(0, -1)
	case key.Matches(msg, m.keyMap.Right):
		m.grid.MoveCursor(0, 1)
	case key.Matches(msg, m.keyMap.PageUp):
		m.grid.PageUp()
	case key.Matches(msg, m.keyMap.PageDown):
		m.grid.PageDown()
	case key.Matches(msg, m.keyMap.Home):
		m.grid.Home()
	case key.Matches(msg, m.keyMap.End):
		m.grid.End()
	}

	m.syncCursor()
	return m, nil
}

// execute parses and runs a command bar entry.
func (m *Model) execute(input string) tea.Cmd {
	result := m.parser.Parse(input)
	if !result.IsCommand {
		return nil
	}
	if result.Command == nil {
		m.fail(fmt.Errorf("unknown command %s", result.CommandName))
		return nil
	}
	if err := commands.ValidateArgs(result.Command, result.Args); err != nil {
		m.fail(err)
		return nil
	}
	return result.Command.Handler(m.cmdCtx, result.Args)
}

// =============================================================================
// ACTION HELPERS
// =============================================================================

// resize distributes the window between the grid, script panel, and chrome.
func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.theme.SetSize(width, height)

	panelWidth := 0
	if m.scriptPanel.Visible() {
		panelWidth = m.cfg.UI.ScriptPanelWidth
		if panelWidth > width/2 {
			panelWidth = width / 2
		}
	}

	// One line for the status bar
	contentHeight := height - 1
	if m.commandBar.Active() {
		contentHeight -= 3
	}

	m.grid.SetSize(width-panelWidth, contentHeight)
	m.scriptPanel.SetSize(panelWidth, contentHeight)
	m.statusBar.SetWidth(width)
	m.commandBar.SetWidth(width)
	m.welcome.SetSize(width, contentHeight)
	m.help.SetWidth(width)
}

// exportSheet writes the current sheet as a rendered document.
func (m *Model) exportSheet(format string) {
	sheet := m.workbook.Current()
	if sheet == nil {
		m.fail(fmt.Errorf("no sheet to export"))
		return
	}

	opts := &export.Options{
		OutputDir:       m.cfg.Export.OutputDir,
		IncludeMetadata: true,
		IncludePipeline: m.cfg.Export.IncludePipeline,
		Theme:           m.cfg.Export.Theme,
	}

	var (
		path string
		err  error
	)
	switch format {
	case "html":
		path, err = export.ExportHTML(sheet, opts)
	case "json":
		path, err = export.ExportJSON(sheet, opts)
	case "script":
		path, err = export.ExportScript(sheet.Name, m.workbook.ExportScript(), opts)
	default:
		path, err = export.ExportMarkdown(sheet, opts)
	}
	if err != nil {
		m.fail(err)
		return
	}
	m.status("exported to " + path)
}

// pasteFromClipboard imports tab-separated clipboard text as a new sheet.
func (m *Model) pasteFromClipboard() {
	text, err := clipboard.ReadAll()
	if err != nil {
		m.fail(fmt.Errorf("clipboard read failed: %w", err))
		return
	}
	m.importPasted(text)
}

// importPasted runs the paste parser and adds the result as a sheet.
func (m *Model) importPasted(text string) {
	result, err := paste.Parse(text)
	if err != nil {
		m.fail(err)
		return
	}
	f, err := result.Frame()
	if err != nil {
		m.fail(err)
		return
	}

	name := m.sheetNameForPath("pasted")
	if _, err := m.workbook.AddSheet(name, f); err != nil {
		m.fail(err)
		return
	}
	m.refresh()

	note := fmt.Sprintf("pasted %d x %d", f.NumRows(), f.NumCols())
	if !result.HasHeaders {
		note += " (no headers detected)"
	}
	m.status(note)
}

// loadSample loads the bundled demo dataset.
func (m *Model) loadSample() {
	f, err := sampleFrame()
	if err != nil {
		m.fail(err)
		return
	}
	name := m.sheetNameForPath("sample")
	if _, err := m.workbook.AddSheet(name, f); err != nil {
		m.fail(err)
		return
	}
	m.refresh()
	m.status("loaded sample data")
}

func joinLines(lines []string) string {
	out := ""
	for i, l := range lines {
		if i > 0 {
			out += "  |  "
		}
		out += l
	}
	return out
}
