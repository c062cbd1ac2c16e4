// Copyright (c) 2025 Richard Iannone
// SPDX-License-Identifier: MIT

// Package config provides unified configuration loading for sweet.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// Configuration file locations (in order of precedence):
//   - ~/.sweet/config.toml
//   - ~/.sweet/config.json
//   - Built-in defaults
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/rich-iannone/sweet-data/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete sweet configuration.
type Config struct {
	Version string `toml:"version" json:"version"`

	// UI configuration
	UI UIConfig `toml:"ui" json:"ui"`

	// Data handling configuration
	Data DataConfig `toml:"data" json:"data"`

	// Database (SQL workspace) configuration
	Database DatabaseConfig `toml:"database" json:"database"`

	// Storage (session snapshots) configuration
	Storage StorageConfig `toml:"storage" json:"storage"`

	// Export configuration
	Export ExportConfig `toml:"export" json:"export"`
}

// UIConfig contains terminal UI configuration.
type UIConfig struct {
	// Theme selects the palette: "auto", "dark", or "light".
	Theme string `toml:"theme" json:"theme"`
	// MaxColumnWidth caps rendered cell width in the grid.
	MaxColumnWidth int `toml:"max_column_width" json:"max_column_width"`
	// ScriptPanelWidth is the width of the pipeline drawer in columns.
	ScriptPanelWidth int `toml:"script_panel_width" json:"script_panel_width"`
	// ShowRowNumbers toggles the numbered row gutter.
	ShowRowNumbers bool `toml:"show_row_numbers" json:"show_row_numbers"`
}

// DataConfig contains table handling configuration.
type DataConfig struct {
	// DefaultFormat is used when a file's extension is not recognized:
	// "csv", "tsv", "json", or "xlsx".
	DefaultFormat string `toml:"default_format" json:"default_format"`
	// MaxUndo bounds the per-sheet undo history.
	MaxUndo int `toml:"max_undo" json:"max_undo"`
}

// DatabaseConfig contains the SQL workspace configuration.
type DatabaseConfig struct {
	// Path is the SQLite database location (empty = ~/.sweet/workspace.db).
	Path string `toml:"path" json:"path"`
	// WriteMode is the default table write mode: "replace", "append", "fail".
	WriteMode string `toml:"write_mode" json:"write_mode"`
}

// StorageConfig contains session snapshot configuration.
type StorageConfig struct {
	// Dir is the snapshot directory (empty = ~/.sweet/workbooks).
	Dir string `toml:"dir" json:"dir"`
	// MaxWorkbooks limits stored snapshots (0 = unlimited).
	MaxWorkbooks int `toml:"max_workbooks" json:"max_workbooks"`
}

// ExportConfig contains document export configuration.
type ExportConfig struct {
	// OutputDir is where exported documents are written.
	OutputDir string `toml:"output_dir" json:"output_dir"`
	// IncludePipeline appends the transformation script to exports.
	IncludePipeline bool `toml:"include_pipeline" json:"include_pipeline"`
	// Theme for HTML exports: "light" or "dark".
	Theme string `toml:"theme" json:"theme"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Version: "1.0",
		UI: UIConfig{
			Theme:            "auto",
			MaxColumnWidth:   32,
			ScriptPanelWidth: 44,
			ShowRowNumbers:   true,
		},
		Data: DataConfig{
			DefaultFormat: "csv",
			MaxUndo:       20,
		},
		Database: DatabaseConfig{
			WriteMode: "fail",
		},
		Storage: StorageConfig{
			MaxWorkbooks: 100,
		},
		Export: ExportConfig{
			OutputDir:       ".",
			IncludePipeline: true,
			Theme:           "light",
		},
	}
}

// =============================================================================
// PATHS
// =============================================================================

// ConfigDir returns the sweet configuration directory (~/.sweet).
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".sweet"), nil
}

// ConfigPathTOML returns the TOML config file path.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the JSON config file path.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// EnsureConfigDir creates the config directory if missing.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the configuration, trying TOML first, then JSON, then falling
// back to defaults. Environment overrides are applied last, followed by
// validation.
func Load() (*Config, error) {
	cfg := Default()

	tomlPath, err := ConfigPathTOML()
	if err == nil {
		if _, statErr := os.Stat(tomlPath); statErr == nil {
			if err := LoadTOML(cfg, tomlPath); err != nil {
				return nil, fmt.Errorf("failed to load TOML config: %w", err)
			}
			return finishLoad(cfg)
		}
	}

	jsonPath, err := ConfigPathJSON()
	if err == nil {
		if _, statErr := os.Stat(jsonPath); statErr == nil {
			if err := LoadJSON(cfg, jsonPath); err != nil {
				return nil, fmt.Errorf("failed to load JSON config: %w", err)
			}
			return finishLoad(cfg)
		}
	}

	return finishLoad(cfg)
}

// finishLoad applies env overrides, defaults, and validation.
func finishLoad(cfg *Config) (*Config, error) {
	cfg.ApplyEnvOverrides()
	fillDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML loads configuration from a TOML file.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	fillDefaults(cfg)
	return nil
}

// LoadJSON loads configuration from a JSON file.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	fillDefaults(cfg)
	return nil
}

// LoadFromPath loads configuration from a specific file with full validation.
func LoadFromPath(path string) (*Config, error) {
	cfg := &Config{}
	if strings.HasSuffix(path, ".json") {
		if err := LoadJSON(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load JSON config from %s: %w", path, err)
		}
	} else {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	}
	return finishLoad(cfg)
}

// fillDefaults fills any missing values with defaults.
func fillDefaults(cfg *Config) {
	def := Default()

	if cfg.Version == "" {
		cfg.Version = def.Version
	}
	if cfg.UI.Theme == "" {
		cfg.UI.Theme = def.UI.Theme
	}
	if cfg.UI.MaxColumnWidth == 0 {
		cfg.UI.MaxColumnWidth = def.UI.MaxColumnWidth
	}
	if cfg.UI.ScriptPanelWidth == 0 {
		cfg.UI.ScriptPanelWidth = def.UI.ScriptPanelWidth
	}
	if cfg.Data.DefaultFormat == "" {
		cfg.Data.DefaultFormat = def.Data.DefaultFormat
	}
	if cfg.Data.MaxUndo == 0 {
		cfg.Data.MaxUndo = def.Data.MaxUndo
	}
	if cfg.Database.WriteMode == "" {
		cfg.Database.WriteMode = def.Database.WriteMode
	}
	if cfg.Storage.MaxWorkbooks == 0 {
		cfg.Storage.MaxWorkbooks = def.Storage.MaxWorkbooks
	}
	if cfg.Export.OutputDir == "" {
		cfg.Export.OutputDir = def.Export.OutputDir
	}
	if cfg.Export.Theme == "" {
		cfg.Export.Theme = def.Export.Theme
	}
}

// =============================================================================
// SAVING
// =============================================================================

// Save writes the configuration to the default TOML path.
func Save(cfg *Config) error {
	if err := EnsureConfigDir(); err != nil {
		return err
	}
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML writes the configuration as TOML.
func SaveTOML(cfg *Config, path string) error {
	var sb strings.Builder
	if err := toml.NewEncoder(&sb).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode TOML: %w", err)
	}
	return util.AtomicWriteFile(path, []byte(sb.String()), 0600)
}

// SaveJSON writes the configuration as JSON.
func SaveJSON(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return util.AtomicWriteFile(path, data, 0600)
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError describes one invalid config field.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	switch c.UI.Theme {
	case "auto", "dark", "light":
	default:
		return ValidationError{"ui.theme", fmt.Sprintf("unknown theme %q", c.UI.Theme)}
	}

	if c.UI.MaxColumnWidth < 4 {
		return ValidationError{"ui.max_column_width", "must be at least 4"}
	}
	if c.UI.ScriptPanelWidth < 20 {
		return ValidationError{"ui.script_panel_width", "must be at least 20"}
	}

	switch c.Data.DefaultFormat {
	case "csv", "tsv", "json", "xlsx":
	default:
		return ValidationError{"data.default_format",
			fmt.Sprintf("unknown format %q", c.Data.DefaultFormat)}
	}

	switch c.Database.WriteMode {
	case "replace", "append", "fail":
	default:
		return ValidationError{"database.write_mode",
			fmt.Sprintf("unknown write mode %q", c.Database.WriteMode)}
	}

	if c.Storage.MaxWorkbooks < 0 {
		return ValidationError{"storage.max_workbooks", "must not be negative"}
	}

	switch c.Export.Theme {
	case "light", "dark":
	default:
		return ValidationError{"export.theme", fmt.Sprintf("unknown theme %q", c.Export.Theme)}
	}
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides:
//   - SWEET_THEME: overrides ui.theme
//   - SWEET_FORMAT: overrides data.default_format
//   - SWEET_DB: overrides database.path
//   - SWEET_STORAGE_DIR: overrides storage.dir
//   - SWEET_EXPORT_DIR: overrides export.output_dir
//   - SWEET_MAX_WORKBOOKS: overrides storage.max_workbooks
//   - SWEET_ROW_NUMBERS: "1"/"true" or "0"/"false" toggles the row gutter
func (c *Config) ApplyEnvOverrides() {
	if theme := os.Getenv("SWEET_THEME"); theme != "" {
		c.UI.Theme = theme
	}
	if format := os.Getenv("SWEET_FORMAT"); format != "" {
		c.Data.DefaultFormat = format
	}
	if db := os.Getenv("SWEET_DB"); db != "" {
		c.Database.Path = db
	}
	if dir := os.Getenv("SWEET_STORAGE_DIR"); dir != "" {
		c.Storage.Dir = dir
	}
	if dir := os.Getenv("SWEET_EXPORT_DIR"); dir != "" {
		c.Export.OutputDir = dir
	}
	if max := os.Getenv("SWEET_MAX_WORKBOOKS"); max != "" {
		if n, err := strconv.Atoi(max); err == nil && n >= 0 {
			c.Storage.MaxWorkbooks = n
		}
	}
	if v := os.Getenv("SWEET_ROW_NUMBERS"); v != "" {
		c.UI.ShowRowNumbers = v == "1" || strings.EqualFold(v, "true")
	}
}

// DatabasePath resolves the SQL workspace location.
func (c *Config) DatabasePath() (string, error) {
	if c.Database.Path != "" {
		return c.Database.Path, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "workspace.db"), nil
}

// StorageDir resolves the snapshot directory.
func (c *Config) StorageDir() (string, error) {
	if c.Storage.Dir != "" {
		return c.Storage.Dir, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "workbooks"), nil
}
