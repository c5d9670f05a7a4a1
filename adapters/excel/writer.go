package excel

import (
	"fmt"

	"gostock/domain/record"

	"github.com/xuri/excelize/v2"
)

// WriteOptions controls how a table is laid out in a workbook
type WriteOptions struct {
	SheetName string

	// FirstColumnNumFmt styles column A with a built-in number format; 0 leaves it unstyled
	FirstColumnNumFmt int
}

// EncodeTable serializes table into xlsx bytes: header row, then data rows.
// All cells are written as text.
func EncodeTable(table record.Table, opts WriteOptions) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := opts.SheetName
	if sheet == "" {
		sheet = "Sheet1"
	}
	if sheet != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheet); err != nil {
			return nil, fmt.Errorf("failed to name sheet %q: %w", sheet, err)
		}
	}

	// Header row
	for i, name := range table.Schema() {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellStr(sheet, cell, name); err != nil {
			return nil, err
		}
	}

	// Data rows
	for r, row := range table.Rows() {
		rowIdx := r + 2
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, rowIdx)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellStr(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	if opts.FirstColumnNumFmt != 0 {
		style, err := f.NewStyle(&excelize.Style{NumFmt: opts.FirstColumnNumFmt})
		if err != nil {
			return nil, fmt.Errorf("failed to create column style: %w", err)
		}
		if err := f.SetColStyle(sheet, "A", style); err != nil {
			return nil, fmt.Errorf("failed to style column A: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to encode workbook: %w", err)
	}
	return buf.Bytes(), nil
}
