package ingest

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/Isakrulander/sheetgrid/pkg/sgerrors"
	"github.com/Isakrulander/sheetgrid/pkg/table"
)

// CSVGrid reads delimited text into a header row and a raw cell grid.
// Fields are unquoted per RFC 4180, the inverse of the CSV exporter's
// quoting. Ragged rows are tolerated; table.Build pads them.
func CSVGrid(r io.Reader, delimiter rune) ([]string, [][]table.Cell, error) {
	if r == nil {
		return nil, nil, sgerrors.New(sgerrors.ErrorTypeInvalidInput, "reader is nil")
	}
	if delimiter == 0 {
		delimiter = ','
	}

	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, sgerrors.Wrap(err, sgerrors.ErrorTypeParse, "failed to parse csv")
	}
	if len(records) == 0 {
		return nil, nil, sgerrors.New(sgerrors.ErrorTypeEmptyWorksheet, "csv input has no rows")
	}

	headers := records[0]
	grid := make([][]table.Cell, 0, len(records)-1)
	for _, rec := range records[1:] {
		cells := make([]table.Cell, len(rec))
		for j, v := range rec {
			cells[j] = v
		}
		grid = append(grid, cells)
	}
	return headers, grid, nil
}

// CSVFile reads delimited text from a file on disk.
func CSVFile(path string, delimiter rune) ([]string, [][]table.Cell, error) {
	if path == "" {
		return nil, nil, sgerrors.New(sgerrors.ErrorTypeInvalidInput, "file path is empty")
	}
	f, err := os.Open(path) //nolint:gosec // G304: File path is controlled by caller
	if err != nil {
		return nil, nil, sgerrors.Wrap(err, sgerrors.ErrorTypeInvalidInput, "failed to open file").
			WithDetail("path", path)
	}
	defer f.Close()
	return CSVGrid(f, delimiter)
}
