// Copyright (c) 2025 Richard Iannone
// SPDX-License-Identifier: MIT

package dataio

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/rich-iannone/sweet-data/internal/frame"
	"github.com/rich-iannone/sweet-data/internal/util"
)

// readCSV parses a delimited file. The first record is the header row;
// ragged records are tolerated and padded by the frame constructor.
func readCSV(path string, sep rune) (*frame.Frame, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.Comma = sep
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyFile)
	}

	return frame.FromRows(records[0], records[1:])
}

// writeCSV renders a frame as a delimited file, written atomically so a
// failed save never clobbers an existing file.
func writeCSV(f *frame.Frame, path string, sep rune) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = sep

	if err := w.Write(f.ColumnNames()); err != nil {
		return err
	}
	for r := 0; r < f.NumRows(); r++ {
		if err := w.Write(f.Row(r)); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}

	return util.AtomicWriteFile(path, buf.Bytes(), 0644)
}
