// Copyright (c) 2025 Richard Iannone
// SPDX-License-Identifier: MIT

// Package storage persists workbook session snapshots for sweet.
package storage

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rich-iannone/sweet-data/internal/frame"
	"github.com/rich-iannone/sweet-data/internal/transform"
	"github.com/rich-iannone/sweet-data/internal/util"
	"github.com/rich-iannone/sweet-data/internal/workbook"
)

// =============================================================================
// STORED WORKBOOK TYPE
// =============================================================================

// StoredWorkbook is a persisted workbook session: the sheet lineage, the
// pipelines, and the schemas, but not the cell data. Reopening a snapshot
// replays the pipelines against the recorded source files.
type StoredWorkbook struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Sheets  []StoredSheet `json:"sheets"`
	Current string        `json:"current,omitempty"`
}

// StoredSheet is one sheet's snapshot.
type StoredSheet struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Parent   string   `json:"parent,omitempty"`
	Branches []string `json:"branches,omitempty"`

	Source       string `json:"source,omitempty"`
	SourceFormat string `json:"source_format,omitempty"`

	Rows   int              `json:"rows"`
	Cols   int              `json:"cols"`
	Schema []frame.Field    `json:"schema"`
	Steps  []transform.Step `json:"steps,omitempty"`
}

// WorkbookMeta contains metadata for listing snapshots.
type WorkbookMeta struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	SheetCount int       `json:"sheet_count"`
	StepCount  int       `json:"step_count"`

	// Preview names the sheets, truncated for list rendering.
	Preview string `json:"preview"`
}

// Snapshot captures a live workbook into a storable record.
func Snapshot(name string, w *workbook.Workbook) *StoredWorkbook {
	stored := &StoredWorkbook{
		Name:    name,
		Current: w.CurrentName(),
	}
	for _, sheetName := range w.SheetNames() {
		s, err := w.Sheet(sheetName)
		if err != nil {
			continue
		}
		rows, cols := s.Frame.Shape()
		stored.Sheets = append(stored.Sheets, StoredSheet{
			ID:           uuid.NewString(),
			Name:         s.Name,
			Parent:       s.Parent,
			Branches:     append([]string(nil), s.Branches...),
			Source:       s.Source,
			SourceFormat: string(s.SourceFormat),
			Rows:         rows,
			Cols:         cols,
			Schema:       s.Frame.Schema(),
			Steps:        append([]transform.Step(nil), s.Steps...),
		})
	}
	return stored
}

// =============================================================================
// STORE
// =============================================================================

// WorkbookStore manages persisted workbook snapshots.
type WorkbookStore struct {
	// BaseDir is where snapshot files live.
	BaseDir string

	// MaxWorkbooks limits stored snapshots (0 = unlimited).
	MaxWorkbooks int
}

// NewWorkbookStore creates a store under the user's home directory.
func NewWorkbookStore() (*WorkbookStore, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return NewWorkbookStoreWithDir(filepath.Join(homeDir, ".sweet", "workbooks"))
}

// NewWorkbookStoreWithDir creates a store with a custom directory.
func NewWorkbookStoreWithDir(baseDir string) (*WorkbookStore, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}
	return &WorkbookStore{
		BaseDir:      baseDir,
		MaxWorkbooks: 100,
	}, nil
}

// =============================================================================
// SAVE OPERATIONS
// =============================================================================

// Save persists a snapshot and returns its ID.
func (s *WorkbookStore) Save(wb *StoredWorkbook) (string, error) {
	if wb.ID == "" {
		wb.ID = generateWorkbookID()
	}
	if wb.Name == "" {
		wb.Name = s.generateName(wb)
	}

	wb.UpdatedAt = time.Now()
	if wb.CreatedAt.IsZero() {
		wb.CreatedAt = wb.UpdatedAt
	}

	data, err := json.MarshalIndent(wb, "", "  ")
	if err != nil {
		return "", err
	}

	if err := util.AtomicWriteFile(s.filePath(wb.ID), data, 0644); err != nil {
		return "", err
	}

	if s.MaxWorkbooks > 0 {
		s.enforceLimit()
	}
	return wb.ID, nil
}

// generateName derives a name from the first sheet.
func (s *WorkbookStore) generateName(wb *StoredWorkbook) string {
	if len(wb.Sheets) > 0 {
		return wb.Sheets[0].Name
	}
	return "untitled"
}

// enforceLimit removes the oldest snapshots if over limit.
func (s *WorkbookStore) enforceLimit() {
	metas, err := s.List()
	if err != nil || len(metas) <= s.MaxWorkbooks {
		return
	}
	sort.Slice(metas, func(i, j int) bool {
		return metas[i].UpdatedAt.Before(metas[j].UpdatedAt)
	})
	excess := len(metas) - s.MaxWorkbooks
	for i := 0; i < excess; i++ {
		s.Delete(metas[i].ID)
	}
}

// =============================================================================
// LOAD OPERATIONS
// =============================================================================

// Load retrieves a snapshot by ID.
func (s *WorkbookStore) Load(id string) (*StoredWorkbook, error) {
	data, err := os.ReadFile(s.filePath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrWorkbookNotFound
		}
		return nil, err
	}

	var wb StoredWorkbook
	if err := json.Unmarshal(data, &wb); err != nil {
		return nil, err
	}
	return &wb, nil
}

// LoadByIndex loads a snapshot by its list position (0 = most recent).
func (s *WorkbookStore) LoadByIndex(index int) (*StoredWorkbook, error) {
	metas, err := s.List()
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(metas) {
		return nil, ErrWorkbookNotFound
	}
	return s.Load(metas[index].ID)
}

// =============================================================================
// LIST OPERATIONS
// =============================================================================

// List returns all snapshots, most recent first.
func (s *WorkbookStore) List() ([]WorkbookMeta, error) {
	entries, err := os.ReadDir(s.BaseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []WorkbookMeta{}, nil
		}
		return nil, err
	}

	var metas []WorkbookMeta
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		id := strings.TrimSuffix(entry.Name(), ".json")

		wb, err := s.Load(id)
		if err != nil {
			continue // Skip corrupted files
		}

		steps := 0
		names := make([]string, len(wb.Sheets))
		for i, sheet := range wb.Sheets {
			steps += len(sheet.Steps)
			names[i] = sheet.Name
		}

		metas = append(metas, WorkbookMeta{
			ID:         wb.ID,
			Name:       wb.Name,
			CreatedAt:  wb.CreatedAt,
			UpdatedAt:  wb.UpdatedAt,
			SheetCount: len(wb.Sheets),
			StepCount:  steps,
			Preview:    util.TruncateString(strings.Join(names, ", "), 80),
		})
	}

	sort.Slice(metas, func(i, j int) bool {
		return metas[i].UpdatedAt.After(metas[j].UpdatedAt)
	})
	return metas, nil
}

// Search finds snapshots whose name or sheet list matches the query.
func (s *WorkbookStore) Search(query string) ([]WorkbookMeta, error) {
	all, err := s.List()
	if err != nil {
		return nil, err
	}

	query = strings.ToLower(query)
	var results []WorkbookMeta
	for _, meta := range all {
		if strings.Contains(strings.ToLower(meta.Name), query) ||
			strings.Contains(strings.ToLower(meta.Preview), query) {
			results = append(results, meta)
		}
	}
	return results, nil
}

// =============================================================================
// DELETE OPERATIONS
// =============================================================================

// Delete removes a snapshot by ID.
func (s *WorkbookStore) Delete(id string) error {
	if err := os.Remove(s.filePath(id)); err != nil {
		if os.IsNotExist(err) {
			return ErrWorkbookNotFound
		}
		return err
	}
	return nil
}

// Clear removes all snapshots.
func (s *WorkbookStore) Clear() error {
	entries, err := os.ReadDir(s.BaseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".json") {
			os.Remove(filepath.Join(s.BaseDir, entry.Name()))
		}
	}
	return nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// filePath returns the file path for a snapshot ID.
func (s *WorkbookStore) filePath(id string) string {
	return filepath.Join(s.BaseDir, id+".json")
}

// generateWorkbookID creates a unique snapshot ID.
func generateWorkbookID() string {
	bytes := make([]byte, 8)
	rand.Read(bytes)
	return "wb_" + hex.EncodeToString(bytes)
}

// =============================================================================
// ERRORS
// =============================================================================

// ErrWorkbookNotFound is returned when a snapshot doesn't exist.
// Use errors.Is(err, ErrWorkbookNotFound) to check for this error.
var ErrWorkbookNotFound = &WorkbookError{Message: "workbook not found"}

// WorkbookError represents a storage-related error. It can be compared
// using errors.Is.
type WorkbookError struct {
	Message string
}

// Error implements the error interface.
func (e *WorkbookError) Error() string {
	return e.Message
}

// Is implements errors.Is support for comparing workbook errors.
func (e *WorkbookError) Is(target error) bool {
	t, ok := target.(*WorkbookError)
	if !ok {
		return false
	}
	return e.Message == t.Message
}
