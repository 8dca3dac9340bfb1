package csvtable

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"
)

// defaultSheetName is the worksheet name excelize creates for new files
const defaultSheetName = "Sheet1"

// WriteXLSX writes the table to w as an Excel workbook with a single
// worksheet named sheet. The header goes to the first row. Typed cells keep
// their type; custom values are written as text.
func WriteXLSX(w io.Writer, t *Table, sheet string) error {
	if t == nil || t.NumColumns() == 0 {
		return ErrEmptyTable
	}
	if sheet == "" {
		sheet = defaultSheetName
	}

	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	if sheet != defaultSheetName {
		if err := f.SetSheetName(defaultSheetName, sheet); err != nil {
			return fmt.Errorf("failed to rename sheet: %w", err)
		}
	}

	header := make([]any, t.NumColumns())
	for i, name := range t.Header() {
		header[i] = name
	}
	if err := setSheetRow(f, sheet, 1, header); err != nil {
		return err
	}

	for i, cells := range t.rows {
		values := make([]any, len(cells))
		for j, v := range cells {
			values[j] = xlsxValue(v)
		}
		if err := setSheetRow(f, sheet, i+2, values); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write xlsx: %w", err)
	}
	return nil
}

// setSheetRow writes values starting at column A of the given 1-based row.
func setSheetRow(f *excelize.File, sheet string, row int, values []any) error {
	if len(values) == 0 {
		return nil
	}
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("failed to resolve cell for row %d: %w", row, err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", row, err)
	}
	return nil
}

// xlsxValue maps a cell to a value excelize can store.
func xlsxValue(v any) any {
	switch v.(type) {
	case nil, string, int64, float64, bool, time.Time:
		return v
	default:
		return formatCell(v)
	}
}
