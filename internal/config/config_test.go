// Copyright (c) 2025 Richard Iannone
// SPDX-License-Identifier: MIT

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "1.0", cfg.Version)
	assert.Equal(t, "auto", cfg.UI.Theme)
	assert.Equal(t, 32, cfg.UI.MaxColumnWidth)
	assert.True(t, cfg.UI.ShowRowNumbers)
	assert.Equal(t, "csv", cfg.Data.DefaultFormat)
	assert.Equal(t, 20, cfg.Data.MaxUndo)
	assert.Equal(t, "fail", cfg.Database.WriteMode)
	assert.Equal(t, 100, cfg.Storage.MaxWorkbooks)
	assert.True(t, cfg.Export.IncludePipeline)

	require.NoError(t, cfg.Validate())
}

func TestFillDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.UI.Theme = "dark"

	fillDefaults(cfg)

	assert.Equal(t, "dark", cfg.UI.Theme)
	assert.Equal(t, 32, cfg.UI.MaxColumnWidth)
	assert.Equal(t, "csv", cfg.Data.DefaultFormat)
	assert.Equal(t, "fail", cfg.Database.WriteMode)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"bad theme", func(c *Config) { c.UI.Theme = "neon" }, "ui.theme"},
		{"narrow columns", func(c *Config) { c.UI.MaxColumnWidth = 2 }, "ui.max_column_width"},
		{"narrow panel", func(c *Config) { c.UI.ScriptPanelWidth = 5 }, "ui.script_panel_width"},
		{"bad format", func(c *Config) { c.Data.DefaultFormat = "parquet" }, "data.default_format"},
		{"bad write mode", func(c *Config) { c.Database.WriteMode = "upsert" }, "database.write_mode"},
		{"negative limit", func(c *Config) { c.Storage.MaxWorkbooks = -1 }, "storage.max_workbooks"},
		{"bad export theme", func(c *Config) { c.Export.Theme = "sepia" }, "export.theme"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)

			var verr ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("SWEET_THEME", "dark")
	t.Setenv("SWEET_FORMAT", "tsv")
	t.Setenv("SWEET_DB", "/tmp/ws.db")
	t.Setenv("SWEET_MAX_WORKBOOKS", "7")
	t.Setenv("SWEET_ROW_NUMBERS", "false")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	assert.Equal(t, "dark", cfg.UI.Theme)
	assert.Equal(t, "tsv", cfg.Data.DefaultFormat)
	assert.Equal(t, "/tmp/ws.db", cfg.Database.Path)
	assert.Equal(t, 7, cfg.Storage.MaxWorkbooks)
	assert.False(t, cfg.UI.ShowRowNumbers)
}

func TestSaveAndLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := Default()
	cfg.UI.Theme = "light"
	cfg.Data.DefaultFormat = "json"
	require.NoError(t, SaveTOML(cfg, path))

	loaded, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "light", loaded.UI.Theme)
	assert.Equal(t, "json", loaded.Data.DefaultFormat)
	assert.Equal(t, 32, loaded.UI.MaxColumnWidth)
}

func TestSaveAndLoadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg := Default()
	cfg.Database.WriteMode = "replace"
	require.NoError(t, SaveJSON(cfg, path))

	loaded, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "replace", loaded.Database.WriteMode)
}

func TestLoadFromPathPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	partial := "[ui]\ntheme = \"dark\"\n"
	require.NoError(t, os.WriteFile(path, []byte(partial), 0600))

	loaded, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "dark", loaded.UI.Theme)
	assert.Equal(t, "csv", loaded.Data.DefaultFormat)
	assert.Equal(t, 100, loaded.Storage.MaxWorkbooks)
}

func TestDatabasePathOverride(t *testing.T) {
	cfg := Default()
	cfg.Database.Path = "/data/custom.db"

	path, err := cfg.DatabasePath()
	require.NoError(t, err)
	assert.Equal(t, "/data/custom.db", path)
}
