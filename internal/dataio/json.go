// Copyright (c) 2025 Richard Iannone
// SPDX-License-Identifier: MIT

package dataio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rich-iannone/sweet-data/internal/frame"
	"github.com/rich-iannone/sweet-data/internal/util"
)

// readJSON loads an array of flat objects. Column order follows first
// appearance across the records (Go maps forget it, so each object is walked
// token by token), and heterogeneous objects union cleanly.
func readJSON(path string) (*frame.Frame, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	var rawRecords []json.RawMessage
	if err := json.Unmarshal(data, &rawRecords); err != nil {
		return nil, fmt.Errorf("failed to parse %s: expected an array of objects: %w", path, err)
	}
	if len(rawRecords) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyFile)
	}

	var headers []string
	index := make(map[string]int)
	records := make([]map[string]string, len(rawRecords))

	for i, raw := range rawRecords {
		rec, keys, err := decodeObject(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: record %d: %w", path, i+1, err)
		}
		for _, key := range keys {
			if _, ok := index[key]; !ok {
				index[key] = len(headers)
				headers = append(headers, key)
			}
		}
		records[i] = rec
	}

	rows := make([][]string, len(records))
	for i, rec := range records {
		row := make([]string, len(headers))
		for key, cell := range rec {
			row[index[key]] = cell
		}
		rows[i] = row
	}
	return frame.FromRows(headers, rows)
}

// decodeObject parses one JSON object into cell text, preserving key order.
func decodeObject(raw json.RawMessage) (map[string]string, []string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, nil, fmt.Errorf("expected an object, got %v", tok)
	}

	rec := make(map[string]string)
	var keys []string
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key := keyTok.(string)

		var val json.RawMessage
		if err := dec.Decode(&val); err != nil {
			return nil, nil, err
		}
		keys = append(keys, key)
		rec[key] = rawToCell(val)
	}
	return rec, keys, nil
}

// rawToCell flattens one JSON value into the raw cell text the inference
// layer expects. Nested arrays and objects keep their JSON text.
func rawToCell(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		if x {
			return "true"
		}
		return "false"
	default:
		// Numbers keep their original text, which is already canonical.
		return string(raw)
	}
}

// writeJSON renders the frame as an indented array of objects.
func writeJSON(f *frame.Frame, path string) error {
	names := f.ColumnNames()
	records := make([]map[string]any, f.NumRows())
	for r := 0; r < f.NumRows(); r++ {
		rec := make(map[string]any, len(names))
		for c, name := range names {
			rec[name] = f.Cell(r, c)
		}
		records[r] = rec
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	data = append(data, '\n')
	return util.AtomicWriteFile(path, data, 0644)
}
