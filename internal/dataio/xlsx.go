// Copyright (c) 2025 Richard Iannone
// SPDX-License-Identifier: MIT

package dataio

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/rich-iannone/sweet-data/internal/frame"
)

// readXLSX loads the first sheet of a workbook file. Cell text is taken as
// displayed and re-typed by the frame's inference, so formatted numbers load
// the same way they would from CSV.
func readXLSX(path string) (*frame.Frame, error) {
	wb, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyFile)
	}

	rows, err := wb.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyFile)
	}

	return frame.FromRows(rows[0], rows[1:])
}

// writeXLSX saves a frame as a single-sheet workbook. Typed cells are written
// as their native values so spreadsheets keep numbers as numbers.
func writeXLSX(f *frame.Frame, path string) error {
	wb := excelize.NewFile()
	defer wb.Close()

	sheet := wb.GetSheetName(0)

	for c, name := range f.ColumnNames() {
		cell, err := excelize.CoordinatesToCellName(c+1, 1)
		if err != nil {
			return err
		}
		if err := wb.SetCellValue(sheet, cell, name); err != nil {
			return err
		}
	}

	for r := 0; r < f.NumRows(); r++ {
		for c := 0; c < f.NumCols(); c++ {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			v := f.Cell(r, c)
			if v == nil {
				continue
			}
			if err := wb.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}

	if err := wb.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}
