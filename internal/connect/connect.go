// Copyright (c) 2025 Richard Iannone
// SPDX-License-Identifier: MIT

// Package connect gives sweet a SQL workspace: frames can be written to and
// fetched from a SQLite database, so intermediate results survive between
// sessions and ad-hoc queries stay available next to the TUI.
package connect

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/rich-iannone/sweet-data/internal/dataio"
	"github.com/rich-iannone/sweet-data/internal/frame"
)

// =============================================================================
// CONNECTOR
// =============================================================================

var (
	// ErrTableExists is returned by WriteTable in fail mode when the
	// target table is already present.
	ErrTableExists = errors.New("table already exists")

	// ErrTableNotFound is returned when a named table does not exist.
	ErrTableNotFound = errors.New("table not found")
)

// WriteMode controls what WriteTable does when the target table exists.
type WriteMode string

const (
	WriteReplace WriteMode = "replace"
	WriteAppend  WriteMode = "append"
	WriteFail    WriteMode = "fail"
)

// ParseWriteMode validates a user-supplied mode name.
func ParseWriteMode(s string) (WriteMode, error) {
	m := WriteMode(strings.ToLower(strings.TrimSpace(s)))
	switch m {
	case WriteReplace, WriteAppend, WriteFail:
		return m, nil
	}
	return "", fmt.Errorf("unknown write mode %q (want replace, append, or fail)", s)
}

// Connector wraps one SQLite database.
type Connector struct {
	db   *sql.DB
	path string
}

// Open connects to the database at path, creating it when missing. Pass
// ":memory:" for a throwaway in-memory workspace.
func Open(path string) (*Connector, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA temp_store=MEMORY",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	return &Connector{db: db, path: path}, nil
}

// Path returns the database location.
func (c *Connector) Path() string {
	return c.path
}

// Ping verifies the connection.
func (c *Connector) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

// Close releases the database.
func (c *Connector) Close() error {
	return c.db.Close()
}

// =============================================================================
// READS
// =============================================================================

// FetchTable loads a whole table into a frame.
func (c *Connector) FetchTable(ctx context.Context, table string) (*frame.Frame, error) {
	ok, err := c.hasTable(ctx, table)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%q: %w", table, ErrTableNotFound)
	}
	return c.FetchQuery(ctx, "SELECT * FROM "+quoteIdent(table))
}

// FetchQuery runs an arbitrary query and types the result set into a frame.
func (c *Connector) FetchQuery(ctx context.Context, query string) (*frame.Frame, error) {
	rows, err := c.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	cols := make([]frame.Column, len(names))
	for i, name := range names {
		cols[i] = frame.Column{Name: name, Type: frame.TypeString}
	}

	scan := make([]any, len(names))
	ptrs := make([]any, len(names))
	for i := range scan {
		ptrs[i] = &scan[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		for i, v := range scan {
			if b, ok := v.([]byte); ok {
				v = string(b)
			}
			cols[i].Values = append(cols[i].Values, v)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range cols {
		cols[i].Type = columnTypeOf(cols[i].Values)
	}
	return frame.New(cols...)
}

// columnTypeOf picks the frame type the scanned values agree on.
func columnTypeOf(values []any) frame.DType {
	t := frame.TypeString
	decided := false
	for _, v := range values {
		var vt frame.DType
		switch v.(type) {
		case nil:
			continue
		case int64:
			vt = frame.TypeInt
		case float64:
			vt = frame.TypeFloat
		default:
			return frame.TypeString
		}
		if !decided {
			t = vt
			decided = true
		} else if t != vt {
			// Mixed INTEGER and REAL widens to float.
			t = frame.TypeFloat
		}
	}
	return t
}

// ListTables returns the user table names, sorted.
func (c *Connector) ListTables(ctx context.Context) ([]string, error) {
	rows, err := c.db.QueryContext(ctx,
		`SELECT name FROM sqlite_master
		 WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
		 ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// TableSchema returns a table's columns and declared types.
func (c *Connector) TableSchema(ctx context.Context, table string) ([]frame.Field, error) {
	ok, err := c.hasTable(ctx, table)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%q: %w", table, ErrTableNotFound)
	}

	rows, err := c.db.QueryContext(ctx,
		fmt.Sprintf("PRAGMA table_info(%s)", quoteIdent(table)))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fields []frame.Field
	for rows.Next() {
		var cid int
		var name, ctype string
		var notNull int
		var dflt sql.NullString
		var pk int
		if err := rows.Scan(&cid, &name, &ctype, &notNull, &dflt, &pk); err != nil {
			return nil, err
		}
		fields = append(fields, frame.Field{Name: name, Type: strings.ToLower(ctype)})
	}
	return fields, rows.Err()
}

// =============================================================================
// WRITES
// =============================================================================

// WriteTable stores a frame as a table. Mode decides what happens when the
// table already exists: replace drops and recreates it, append inserts into
// it, fail errors out.
func (c *Connector) WriteTable(ctx context.Context, f *frame.Frame, table string, mode WriteMode) error {
	if f.NumCols() == 0 {
		return fmt.Errorf("frame has no columns")
	}

	exists, err := c.hasTable(ctx, table)
	if err != nil {
		return err
	}
	switch {
	case exists && mode == WriteFail:
		return fmt.Errorf("%q: %w", table, ErrTableExists)
	case exists && mode == WriteReplace:
		if _, err := c.db.ExecContext(ctx, "DROP TABLE "+quoteIdent(table)); err != nil {
			return fmt.Errorf("failed to drop %q: %w", table, err)
		}
		exists = false
	}

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if !exists {
		if _, err := tx.ExecContext(ctx, createTableSQL(f, table)); err != nil {
			return fmt.Errorf("failed to create %q: %w", table, err)
		}
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", f.NumCols()), ",")
	quoted := make([]string, f.NumCols())
	for i, name := range f.ColumnNames() {
		quoted[i] = quoteIdent(name)
	}
	insert := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quoteIdent(table), strings.Join(quoted, ", "), placeholders)

	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return err
	}
	defer stmt.Close()

	args := make([]any, f.NumCols())
	for r := 0; r < f.NumRows(); r++ {
		for i := range args {
			args[i] = sqlValue(f.Cell(r, i))
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("failed to insert row %d: %w", r+1, err)
		}
	}
	return tx.Commit()
}

// ImportCSV loads a delimited file straight into a table.
func (c *Connector) ImportCSV(ctx context.Context, path, table string, mode WriteMode) (int, error) {
	f, err := dataio.ReadFile(path, "")
	if err != nil {
		return 0, err
	}
	if err := c.WriteTable(ctx, f, table, mode); err != nil {
		return 0, err
	}
	return f.NumRows(), nil
}

// createTableSQL renders the CREATE TABLE statement for a frame.
func createTableSQL(f *frame.Frame, table string) string {
	defs := make([]string, f.NumCols())
	for i, c := range f.Columns {
		defs[i] = quoteIdent(c.Name) + " " + sqlType(c.Type)
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", quoteIdent(table), strings.Join(defs, ", "))
}

// sqlType maps a frame type to its SQLite column type.
func sqlType(t frame.DType) string {
	switch t {
	case frame.TypeInt, frame.TypeBool:
		return "INTEGER"
	case frame.TypeFloat:
		return "REAL"
	default:
		return "TEXT"
	}
}

// sqlValue converts a cell into a driver-friendly value. Bools store as 0/1,
// times as their display text.
func sqlValue(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case bool:
		if x {
			return int64(1)
		}
		return int64(0)
	case int64, float64, string:
		return v
	default:
		return frame.FormatValue(x)
	}
}

// hasTable reports whether a user table exists.
func (c *Connector) hasTable(ctx context.Context, table string) (bool, error) {
	var n int
	err := c.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?",
		table).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// quoteIdent quotes a table or column name for safe interpolation.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
