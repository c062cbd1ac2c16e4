// Copyright (c) 2025 Richard Iannone
// SPDX-License-Identifier: MIT

package connect

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rich-iannone/sweet-data/internal/frame"
)

func openTestDB(t *testing.T) *Connector {
	t.Helper()
	c, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func cityFrame(t *testing.T) *frame.Frame {
	t.Helper()
	f, err := frame.FromRows(
		[]string{"city", "population", "area_km2"},
		[][]string{
			{"Toronto", "2794356", "631.1"},
			{"Montreal", "1762949", "364.74"},
			{"Calgary", "1306784", "820.62"},
		},
	)
	require.NoError(t, err)
	return f
}

func TestPing(t *testing.T) {
	c := openTestDB(t)
	assert.NoError(t, c.Ping(context.Background()))
}

func TestWriteAndFetchTable(t *testing.T) {
	ctx := context.Background()
	c := openTestDB(t)

	require.NoError(t, c.WriteTable(ctx, cityFrame(t), "cities", WriteFail))

	back, err := c.FetchTable(ctx, "cities")
	require.NoError(t, err)
	assert.Equal(t, []string{"city", "population", "area_km2"}, back.ColumnNames())
	assert.Equal(t, 3, back.NumRows())
	assert.Equal(t, frame.TypeInt, back.Columns[1].Type)
	assert.Equal(t, frame.TypeFloat, back.Columns[2].Type)
	assert.Equal(t, int64(2794356), back.Cell(0, 1))

	_, err = c.FetchTable(ctx, "missing")
	assert.ErrorIs(t, err, ErrTableNotFound)
}

func TestWriteModes(t *testing.T) {
	ctx := context.Background()
	c := openTestDB(t)
	f := cityFrame(t)

	require.NoError(t, c.WriteTable(ctx, f, "cities", WriteFail))

	err := c.WriteTable(ctx, f, "cities", WriteFail)
	assert.ErrorIs(t, err, ErrTableExists)

	require.NoError(t, c.WriteTable(ctx, f, "cities", WriteAppend))
	back, err := c.FetchTable(ctx, "cities")
	require.NoError(t, err)
	assert.Equal(t, 6, back.NumRows())

	require.NoError(t, c.WriteTable(ctx, f, "cities", WriteReplace))
	back, err = c.FetchTable(ctx, "cities")
	require.NoError(t, err)
	assert.Equal(t, 3, back.NumRows())
}

func TestParseWriteMode(t *testing.T) {
	m, err := ParseWriteMode(" Replace ")
	require.NoError(t, err)
	assert.Equal(t, WriteReplace, m)

	_, err = ParseWriteMode("upsert")
	assert.Error(t, err)
}

func TestFetchQuery(t *testing.T) {
	ctx := context.Background()
	c := openTestDB(t)
	require.NoError(t, c.WriteTable(ctx, cityFrame(t), "cities", WriteFail))

	f, err := c.FetchQuery(ctx,
		"SELECT city, population FROM cities WHERE population > 1500000 ORDER BY population DESC")
	require.NoError(t, err)
	assert.Equal(t, 2, f.NumRows())
	assert.Equal(t, "Toronto", f.CellString(0, 0))

	_, err = c.FetchQuery(ctx, "SELECT nonsense FROM nowhere")
	assert.Error(t, err)
}

func TestListTablesAndSchema(t *testing.T) {
	ctx := context.Background()
	c := openTestDB(t)

	names, err := c.ListTables(ctx)
	require.NoError(t, err)
	assert.Empty(t, names)

	require.NoError(t, c.WriteTable(ctx, cityFrame(t), "cities", WriteFail))
	require.NoError(t, c.WriteTable(ctx, cityFrame(t), "backup", WriteFail))

	names, err = c.ListTables(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"backup", "cities"}, names)

	fields, err := c.TableSchema(ctx, "cities")
	require.NoError(t, err)
	require.Len(t, fields, 3)
	assert.Equal(t, "city", fields[0].Name)
	assert.Equal(t, "text", fields[0].Type)
	assert.Equal(t, "integer", fields[1].Type)
	assert.Equal(t, "real", fields[2].Type)

	_, err = c.TableSchema(ctx, "missing")
	assert.ErrorIs(t, err, ErrTableNotFound)
}

func TestQuotedIdentifiers(t *testing.T) {
	ctx := context.Background()
	c := openTestDB(t)

	f, err := frame.FromRows(
		[]string{"name", "count (2021)"},
		[][]string{{"a", "1"}},
	)
	require.NoError(t, err)

	require.NoError(t, c.WriteTable(ctx, f, "odd table", WriteFail))
	back, err := c.FetchTable(ctx, "odd table")
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "count (2021)"}, back.ColumnNames())
}

func TestImportCSV(t *testing.T) {
	ctx := context.Background()
	c := openTestDB(t)

	path := filepath.Join(t.TempDir(), "in.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b\n1,x\n2,y\n"), 0644))

	n, err := c.ImportCSV(ctx, path, "imported", WriteFail)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	back, err := c.FetchTable(ctx, "imported")
	require.NoError(t, err)
	assert.Equal(t, 2, back.NumRows())
	assert.Equal(t, int64(1), back.Cell(0, 0))
}

func TestFileBackedDatabase(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "work.db")

	c, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, c.WriteTable(ctx, cityFrame(t), "cities", WriteFail))
	require.NoError(t, c.Close())

	c2, err := Open(path)
	require.NoError(t, err)
	defer c2.Close()

	back, err := c2.FetchTable(ctx, "cities")
	require.NoError(t, err)
	assert.Equal(t, 3, back.NumRows())
	assert.Equal(t, path, c2.Path())
}
