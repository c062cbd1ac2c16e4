// Copyright (c) 2025 Richard Iannone
// SPDX-License-Identifier: MIT

// Package workbook holds the sheet collection a sweet session works on. Each
// sheet owns a frame plus its applied transform pipeline; sheets can branch
// off one another, and the whole pipeline is exportable as a script.
package workbook

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rich-iannone/sweet-data/internal/dataio"
	"github.com/rich-iannone/sweet-data/internal/frame"
	"github.com/rich-iannone/sweet-data/internal/transform"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrSheetNotFound is returned when an operation names an unknown sheet.
	ErrSheetNotFound = errors.New("sheet not found")

	// ErrDuplicateSheet is returned when a sheet name is already taken.
	ErrDuplicateSheet = errors.New("sheet already exists")

	// ErrEmptySheet is returned when branching a sheet that has no data.
	ErrEmptySheet = errors.New("sheet has no data")

	// ErrNothingToUndo is returned when a sheet's pipeline is already empty.
	ErrNothingToUndo = errors.New("nothing to undo")
)

// =============================================================================
// TYPES
// =============================================================================

// DefaultMaxUndo bounds how many prior frames a sheet keeps for undo when
// the workbook does not set its own limit.
const DefaultMaxUndo = 20

// Sheet is one named table with its transformation lineage. Parent is the
// sheet this one was branched from ("" for root sheets); Branches lists the
// names branched off this one.
type Sheet struct {
	Name     string
	Frame    *frame.Frame
	Steps    []transform.Step
	Parent   string
	Branches []string

	// Source records the file the sheet was loaded from, when any, so the
	// UI can watch it and reload on request.
	Source       string
	SourceFormat dataio.Format

	undo []*frame.Frame
}

// Workbook is an ordered collection of sheets with one current sheet.
type Workbook struct {
	sheets  []*Sheet
	current string

	// MaxUndo bounds the per-sheet undo history. Zero or negative means
	// DefaultMaxUndo.
	MaxUndo int
}

// New returns an empty workbook.
func New() *Workbook {
	return &Workbook{}
}

// =============================================================================
// SHEET LOOKUP
// =============================================================================

// Sheet returns the named sheet.
func (w *Workbook) Sheet(name string) (*Sheet, error) {
	for _, s := range w.sheets {
		if s.Name == name {
			return s, nil
		}
	}
	return nil, fmt.Errorf("%q: %w", name, ErrSheetNotFound)
}

// Current returns the current sheet, or nil when the workbook is empty.
func (w *Workbook) Current() *Sheet {
	s, err := w.Sheet(w.current)
	if err != nil {
		return nil
	}
	return s
}

// CurrentName returns the current sheet's name, "" when the workbook is empty.
func (w *Workbook) CurrentName() string {
	return w.current
}

// SetCurrent switches the current sheet.
func (w *Workbook) SetCurrent(name string) error {
	if _, err := w.Sheet(name); err != nil {
		return err
	}
	w.current = name
	return nil
}

// SheetNames returns all sheet names in insertion order.
func (w *Workbook) SheetNames() []string {
	names := make([]string, len(w.sheets))
	for i, s := range w.sheets {
		names[i] = s.Name
	}
	return names
}

// NumSheets returns the sheet count.
func (w *Workbook) NumSheets() int {
	return len(w.sheets)
}

// Schema returns the named sheet's schema.
func (w *Workbook) Schema(name string) ([]frame.Field, error) {
	s, err := w.Sheet(name)
	if err != nil {
		return nil, err
	}
	return s.Frame.Schema(), nil
}

// =============================================================================
// ADDING AND REMOVING SHEETS
// =============================================================================

// AddSheet inserts a new sheet and makes it current.
func (w *Workbook) AddSheet(name string, f *frame.Frame) (*Sheet, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("sheet name must not be empty")
	}
	if _, err := w.Sheet(name); err == nil {
		return nil, fmt.Errorf("%q: %w", name, ErrDuplicateSheet)
	}
	if f == nil {
		f = frame.Empty()
	}
	s := &Sheet{Name: name, Frame: f}
	w.sheets = append(w.sheets, s)
	w.current = name
	return s, nil
}

// LoadSheet reads a file into a new sheet and makes it current. An empty
// format means detect from the extension.
func (w *Workbook) LoadSheet(name, path string, format dataio.Format) (*Sheet, error) {
	f, err := dataio.ReadFile(path, format)
	if err != nil {
		return nil, err
	}
	s, err := w.AddSheet(name, f)
	if err != nil {
		return nil, err
	}
	s.Source = path
	s.SourceFormat = format
	return s, nil
}

// SaveSheet writes the named sheet's current frame to a file.
func (w *Workbook) SaveSheet(name, path string, format dataio.Format) error {
	s, err := w.Sheet(name)
	if err != nil {
		return err
	}
	return dataio.WriteFile(s.Frame, path, format)
}

// BranchSheet forks the named sheet: the branch starts with a deep copy of
// the parent's frame and pipeline and records its lineage. The branch
// becomes current.
func (w *Workbook) BranchSheet(parent, branch string) (*Sheet, error) {
	p, err := w.Sheet(parent)
	if err != nil {
		return nil, err
	}
	if p.Frame.NumCols() == 0 {
		return nil, fmt.Errorf("branch %q: %w", parent, ErrEmptySheet)
	}
	if _, err := w.Sheet(branch); err == nil {
		return nil, fmt.Errorf("%q: %w", branch, ErrDuplicateSheet)
	}

	s := &Sheet{
		Name:   branch,
		Frame:  p.Frame.Clone(),
		Steps:  append([]transform.Step(nil), p.Steps...),
		Parent: parent,

		// The branch derives from the same file, so replaying its pipeline
		// against the parent's source reproduces it.
		Source:       p.Source,
		SourceFormat: p.SourceFormat,
	}
	p.Branches = append(p.Branches, branch)
	w.sheets = append(w.sheets, s)
	w.current = branch
	return s, nil
}

// RemoveSheet deletes a sheet, detaching it from its parent's branch list and
// orphaning its own branches. When the current sheet is removed, the first
// remaining sheet becomes current (or none).
func (w *Workbook) RemoveSheet(name string) error {
	idx := -1
	for i, s := range w.sheets {
		if s.Name == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%q: %w", name, ErrSheetNotFound)
	}
	removed := w.sheets[idx]

	if removed.Parent != "" {
		if p, err := w.Sheet(removed.Parent); err == nil {
			p.Branches = deleteString(p.Branches, name)
		}
	}
	for _, child := range removed.Branches {
		if c, err := w.Sheet(child); err == nil {
			c.Parent = ""
		}
	}

	w.sheets = append(w.sheets[:idx], w.sheets[idx+1:]...)

	if w.current == name {
		if len(w.sheets) > 0 {
			w.current = w.sheets[0].Name
		} else {
			w.current = ""
		}
	}
	return nil
}

func deleteString(list []string, s string) []string {
	out := list[:0]
	for _, v := range list {
		if v != s {
			out = append(out, v)
		}
	}
	return out
}

// =============================================================================
// TRANSFORMS
// =============================================================================

// Apply runs a transform expression against the named sheet, replacing its
// frame and appending the step record. The prior frame is kept for undo.
func (w *Workbook) Apply(name, expr string) (transform.Step, error) {
	s, err := w.Sheet(name)
	if err != nil {
		return transform.Step{}, err
	}
	out, step, err := transform.Apply(s.Frame, expr)
	if err != nil {
		return transform.Step{}, err
	}

	s.undo = append(s.undo, s.Frame)
	if limit := w.undoLimit(); len(s.undo) > limit {
		s.undo = s.undo[len(s.undo)-limit:]
	}
	s.Frame = out
	s.Steps = append(s.Steps, step)
	return step, nil
}

func (w *Workbook) undoLimit() int {
	if w.MaxUndo > 0 {
		return w.MaxUndo
	}
	return DefaultMaxUndo
}

// Undo reverts the named sheet's most recent transform.
func (w *Workbook) Undo(name string) error {
	s, err := w.Sheet(name)
	if err != nil {
		return err
	}
	if len(s.undo) == 0 || len(s.Steps) == 0 {
		return ErrNothingToUndo
	}
	s.Frame = s.undo[len(s.undo)-1]
	s.undo = s.undo[:len(s.undo)-1]
	s.Steps = s.Steps[:len(s.Steps)-1]
	return nil
}

// Script renders the named sheet's pipeline.
func (w *Workbook) Script(name string) (string, error) {
	s, err := w.Sheet(name)
	if err != nil {
		return "", err
	}
	return transform.GenerateScript(s.Name, s.Steps), nil
}

// ExportScript concatenates every sheet's pipeline into one script document.
func (w *Workbook) ExportScript() string {
	var b strings.Builder
	for i, s := range w.sheets {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(transform.GenerateScript(s.Name, s.Steps))
	}
	return b.String()
}
