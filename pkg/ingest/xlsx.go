// Package ingest turns spreadsheet and CSV inputs into the raw header row
// and cell grid consumed by table.Build. The grid is transient: read
// once, handed to the builder, then discarded.
package ingest

import (
	"io"
	"os"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/Isakrulander/sheetgrid/pkg/logger"
	"github.com/Isakrulander/sheetgrid/pkg/sgerrors"
	"github.com/Isakrulander/sheetgrid/pkg/table"
)

// Workbook reads one worksheet into a header row and a raw cell grid.
// An empty sheet name selects the workbook's first sheet. The first
// worksheet row is the header row and is never part of the grid.
func Workbook(r io.Reader, sheet string) ([]string, [][]table.Cell, error) {
	if r == nil {
		return nil, nil, sgerrors.New(sgerrors.ErrorTypeInvalidInput, "reader is nil")
	}

	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, sgerrors.Wrap(err, sgerrors.ErrorTypeParse, "failed to open workbook")
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, sgerrors.Wrap(err, sgerrors.ErrorTypeInvalidInput, "failed to read worksheet").
			WithDetail("sheet", sheet)
	}
	if len(rows) == 0 {
		return nil, nil, sgerrors.New(sgerrors.ErrorTypeEmptyWorksheet, "worksheet has no rows").
			WithDetail("sheet", sheet)
	}

	headers := rows[0]
	grid := make([][]table.Cell, 0, len(rows)-1)
	for _, row := range rows[1:] {
		cells := make([]table.Cell, len(row))
		for j, v := range row {
			cells[j] = v
		}
		grid = append(grid, cells)
	}

	logger.Debug("worksheet read",
		zap.String("sheet", sheet),
		zap.Int("rows", len(grid)),
		zap.Int("columns", len(headers)))

	return headers, grid, nil
}

// WorkbookFile reads one worksheet from an xlsx file on disk.
func WorkbookFile(path, sheet string) ([]string, [][]table.Cell, error) {
	if path == "" {
		return nil, nil, sgerrors.New(sgerrors.ErrorTypeInvalidInput, "file path is empty")
	}
	f, err := os.Open(path) //nolint:gosec // G304: File path is controlled by caller
	if err != nil {
		return nil, nil, sgerrors.Wrap(err, sgerrors.ErrorTypeInvalidInput, "failed to open file").
			WithDetail("path", path)
	}
	defer f.Close()
	return Workbook(f, sheet)
}
