package export

import (
	"github.com/xuri/excelize/v2"

	"github.com/Isakrulander/sheetgrid/pkg/sgerrors"
	"github.com/Isakrulander/sheetgrid/pkg/table"
)

// maxColumnWidth caps auto-sized column widths.
const maxColumnWidth = 80

// Spreadsheet renders the table as a single-sheet xlsx workbook: bold
// header names in row 1, data in rows 2..N+1 with native types preserved
// (numbers as numbers, dates as dates), and columns auto-sized to their
// content. Unlike the report renderer, failures here propagate.
func Spreadsheet(t *table.Table, sheetName string) ([]byte, error) {
	if t == nil {
		return nil, sgerrors.New(sgerrors.ErrorTypeInvalidInput, "table is nil")
	}
	if sheetName == "" {
		sheetName = "Sheet1"
	}

	f := excelize.NewFile()
	defer f.Close()

	if sheetName != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheetName); err != nil {
			return nil, sgerrors.Wrap(err, sgerrors.ErrorTypeExportFailure, "failed to rename sheet")
		}
	}

	columns := t.Columns()
	widths := make([]int, len(columns))

	for j, col := range columns {
		cell, err := excelize.CoordinatesToCellName(j+1, 1)
		if err != nil {
			return nil, sgerrors.Wrap(err, sgerrors.ErrorTypeExportFailure, "invalid header coordinates")
		}
		if err := f.SetCellValue(sheetName, cell, col.Name()); err != nil {
			return nil, sgerrors.Wrap(err, sgerrors.ErrorTypeExportFailure, "failed to write header")
		}
		widths[j] = len(col.Name())
	}

	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, sgerrors.Wrap(err, sgerrors.ErrorTypeExportFailure, "failed to create header style")
	}
	lastHeader, err := excelize.CoordinatesToCellName(len(columns), 1)
	if err != nil {
		return nil, sgerrors.Wrap(err, sgerrors.ErrorTypeExportFailure, "invalid header range")
	}
	if err := f.SetCellStyle(sheetName, "A1", lastHeader, boldStyle); err != nil {
		return nil, sgerrors.Wrap(err, sgerrors.ErrorTypeExportFailure, "failed to style header")
	}

	for i := 0; i < t.RowCount(); i++ {
		for j, col := range columns {
			if col.IsNull(i) {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return nil, sgerrors.Wrap(err, sgerrors.ErrorTypeExportFailure, "invalid cell coordinates")
			}
			if err := f.SetCellValue(sheetName, cell, col.Value(i)); err != nil {
				return nil, sgerrors.Wrap(err, sgerrors.ErrorTypeExportFailure, "failed to write cell")
			}
			if w := len(col.Format(i)); w > widths[j] {
				widths[j] = w
			}
		}
	}

	// Auto-size after all data is written.
	for j := range columns {
		name, err := excelize.ColumnNumberToName(j + 1)
		if err != nil {
			return nil, sgerrors.Wrap(err, sgerrors.ErrorTypeExportFailure, "invalid column number")
		}
		width := float64(widths[j] + 2)
		if width > maxColumnWidth {
			width = maxColumnWidth
		}
		if err := f.SetColWidth(sheetName, name, name, width); err != nil {
			return nil, sgerrors.Wrap(err, sgerrors.ErrorTypeExportFailure, "failed to size column")
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, sgerrors.Wrap(err, sgerrors.ErrorTypeExportFailure, "failed to serialize workbook")
	}
	return buf.Bytes(), nil
}
