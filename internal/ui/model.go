// Copyright (c) 2025 Richard Iannone
// SPDX-License-Identifier: MIT

package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rich-iannone/sweet-data/internal/commands"
	"github.com/rich-iannone/sweet-data/internal/config"
	"github.com/rich-iannone/sweet-data/internal/dataio"
	"github.com/rich-iannone/sweet-data/internal/storage"
	"github.com/rich-iannone/sweet-data/internal/ui/components"
	"github.com/rich-iannone/sweet-data/internal/ui/styles"
	"github.com/rich-iannone/sweet-data/internal/watch"
	"github.com/rich-iannone/sweet-data/internal/workbook"
)

// =============================================================================
// APP MODEL
// =============================================================================

// Model is the Bubble Tea model for the sweet application.
type Model struct {
	cfg     *config.Config
	theme   *styles.Theme
	version string

	// Domain state
	workbook *workbook.Workbook
	store    *storage.WorkbookStore

	// Command system
	registry *commands.Registry
	parser   *commands.Parser
	cmdCtx   *commands.Context

	// Components
	grid        *components.Grid
	statusBar   *components.StatusBar
	commandBar  *components.CommandBar
	scriptPanel *components.ScriptPanel
	welcome     *components.Welcome
	help        *components.Help

	// File watching
	watcher *watch.Watcher
	// changed marks sheets whose source file was modified on disk.
	changed map[string]bool

	keyMap KeyMap
	width  int
	height int

	// Startup actions
	initialFile   string
	initialFormat string
	loadDemo      bool
}

// Option configures the model at startup.
type Option func(*Model)

// WithFile loads a data file when the app starts.
func WithFile(path, format string) Option {
	return func(m *Model) {
		m.initialFile = path
		m.initialFormat = format
	}
}

// WithDemo loads the sample dataset when the app starts.
func WithDemo() Option {
	return func(m *Model) {
		m.loadDemo = true
	}
}

// New assembles the application model. The store and watcher are optional;
// their features degrade gracefully when unavailable.
func New(cfg *config.Config, version string, opts ...Option) *Model {
	theme := styles.NewTheme()
	registry := commands.NewRegistry()
	wb := workbook.New()
	wb.MaxUndo = cfg.Data.MaxUndo

	var store *storage.WorkbookStore
	if dir, err := cfg.StorageDir(); err == nil {
		store = &storage.WorkbookStore{BaseDir: dir, MaxWorkbooks: cfg.Storage.MaxWorkbooks}
	}

	watcher, err := watch.New(watch.DefaultDebounce)
	if err != nil {
		watcher = nil
	}

	grid := components.NewGrid(theme)
	grid.MaxColWidth = cfg.UI.MaxColumnWidth
	grid.ShowRowNumbers = cfg.UI.ShowRowNumbers

	m := &Model{
		cfg:         cfg,
		theme:       theme,
		version:     version,
		workbook:    wb,
		store:       store,
		registry:    registry,
		parser:      commands.NewParser(registry),
		cmdCtx:      commands.NewContext(cfg, wb, store),
		grid:        grid,
		statusBar:   components.NewStatusBar(theme),
		commandBar:  components.NewCommandBar(theme, registry),
		scriptPanel: components.NewScriptPanel(theme),
		welcome:     components.NewWelcome(theme, version),
		help:        components.NewHelp(theme, registry),
		watcher:     watcher,
		changed:     make(map[string]bool),
		keyMap:      DefaultKeyMap(),
		width:       80,
		height:      24,
	}
	return m
}

// Init starts the watch listener and triggers any startup load.
func (m *Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.watcher != nil {
		cmds = append(cmds, m.waitForFileChange())
	}
	if m.initialFile != "" {
		path, format := m.initialFile, m.initialFormat
		cmds = append(cmds, func() tea.Msg {
			return commands.OpenFileMsg{Path: path, Format: format}
		})
	} else if m.loadDemo {
		cmds = append(cmds, func() tea.Msg {
			return commands.LoadSampleMsg{}
		})
	}
	return tea.Batch(cmds...)
}

// Close releases the model's resources.
func (m *Model) Close() {
	if m.watcher != nil {
		m.watcher.Close()
	}
}

// =============================================================================
// FILE CHANGE MESSAGES
// =============================================================================

// fileChangedMsg reports that a watched source file changed on disk.
type fileChangedMsg struct {
	Path string
}

// waitForFileChange blocks on the watcher channel.
func (m *Model) waitForFileChange() tea.Cmd {
	ch := m.watcher.Changes()
	return func() tea.Msg {
		path, ok := <-ch
		if !ok {
			return nil
		}
		return fileChangedMsg{Path: path}
	}
}

// =============================================================================
// SHEET HELPERS
// =============================================================================

// sheetNameForPath derives a unique sheet name from a file path.
func (m *Model) sheetNameForPath(path string) string {
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	if name == "" {
		name = "sheet"
	}

	candidate := name
	for i := 2; ; i++ {
		if _, err := m.workbook.Sheet(candidate); err != nil {
			return candidate
		}
		candidate = fmt.Sprintf("%s_%d", name, i)
	}
}

// openFile loads a data file into a new sheet and registers a watch on it.
func (m *Model) openFile(path, formatName string) error {
	var (
		format dataio.Format
		err    error
	)
	if formatName != "" {
		format, err = dataio.ParseFormat(formatName)
	} else {
		format, err = dataio.DetectFormat(path)
		if err != nil {
			format, err = dataio.ParseFormat(m.cfg.Data.DefaultFormat)
		}
	}
	if err != nil {
		return err
	}

	// The watcher reports absolute paths, so the sheet source has to match.
	if abs, absErr := filepath.Abs(path); absErr == nil {
		path = abs
	}

	name := m.sheetNameForPath(path)
	sheet, err := m.workbook.LoadSheet(name, path, format)
	if err != nil {
		return err
	}

	if m.watcher != nil {
		m.watcher.Add(sheet.Source)
	}
	delete(m.changed, sheet.Source)
	m.refresh()
	m.status(fmt.Sprintf("loaded %s (%d x %d)", name, sheet.Frame.NumRows(), sheet.Frame.NumCols()))
	return nil
}

// restoreSnapshot rebuilds sheets from a stored session: each sheet with a
// source file is reloaded, its pipeline replayed, and the branch lineage and
// current sheet re-established. Sheets without a source (pasted data) can't
// be restored and are reported.
func (m *Model) restoreSnapshot(snap *storage.StoredWorkbook) {
	restored, skipped := 0, 0
	// Stored name to the name the sheet landed under, for relinking.
	names := make(map[string]string, len(snap.Sheets))
	for _, stored := range snap.Sheets {
		if stored.Source == "" {
			skipped++
			continue
		}
		format, err := dataio.ParseFormat(stored.SourceFormat)
		if err != nil {
			skipped++
			continue
		}
		source := stored.Source
		if abs, absErr := filepath.Abs(source); absErr == nil {
			source = abs
		}
		name := stored.Name
		if _, err := m.workbook.Sheet(name); err == nil {
			name = m.sheetNameForPath(source)
		}
		if _, err := m.workbook.LoadSheet(name, source, format); err != nil {
			skipped++
			continue
		}
		names[stored.Name] = name
		for _, step := range stored.Steps {
			if _, err := m.workbook.Apply(name, step.Expr); err != nil {
				break
			}
		}
		if m.watcher != nil {
			m.watcher.Add(source)
		}
		restored++
	}

	// Rebuild parent/branch links between the sheets that made it back.
	for _, stored := range snap.Sheets {
		name, ok := names[stored.Name]
		if !ok || stored.Parent == "" {
			continue
		}
		parent, ok := names[stored.Parent]
		if !ok {
			continue
		}
		if s, err := m.workbook.Sheet(name); err == nil {
			s.Parent = parent
		}
		if p, err := m.workbook.Sheet(parent); err == nil {
			p.Branches = append(p.Branches, name)
		}
	}
	if cur, ok := names[snap.Current]; ok {
		_ = m.workbook.SetCurrent(cur)
	}

	m.refresh()
	msg := fmt.Sprintf("restored %q: %d sheets", snap.Name, restored)
	if skipped > 0 {
		msg += fmt.Sprintf(" (%d skipped, no source file)", skipped)
	}
	m.status(msg)
}

// refresh syncs the grid, status bar, and script panel with the current sheet.
func (m *Model) refresh() {
	sheet := m.workbook.Current()
	if sheet == nil {
		m.grid.SetFrame(nil)
		m.statusBar.SetSheet("", 0, 0)
		m.statusBar.SetCursor("", "")
		m.scriptPanel.SetScript("", "")
		return
	}

	m.grid.SetFrame(sheet.Frame)
	m.syncCursor()
	m.statusBar.FileChanged = sheet.Source != "" && m.changed[sheet.Source]

	script, _ := m.workbook.Script(sheet.Name)
	m.scriptPanel.SetScript(sheet.Name, script)
}

// syncCursor pushes the cursor position into the status bar.
func (m *Model) syncCursor() {
	sheet := m.workbook.Current()
	if sheet == nil {
		return
	}
	rows, cols := sheet.Frame.Shape()
	m.statusBar.SetSheet(sheet.Name, rows, cols)

	dtype := ""
	if col := m.grid.CursorColumn(); col != nil {
		dtype = col.Type.String()
	}
	m.statusBar.SetCursor(m.grid.CursorAddress(), dtype)
}

// status sets a transient status line message.
func (m *Model) status(msg string) {
	m.statusBar.Status = components.StatusReady
	m.statusBar.SetMessage(msg)
}

// fail reports an error on the status line.
func (m *Model) fail(err error) {
	m.statusBar.Status = components.StatusError
	m.statusBar.SetMessage(err.Error())
}

