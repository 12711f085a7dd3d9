// Package export renders a table to the supported output formats:
// delimited text, a styled xlsx workbook, a paginated PDF report, and an
// Arrow IPC buffer. The renderers are independent; each reads the
// immutable table on its own and one failing never prevents another from
// succeeding.
package export

import (
	"strings"

	"github.com/Isakrulander/sheetgrid/pkg/sgerrors"
	"github.com/Isakrulander/sheetgrid/pkg/table"
)

// DefaultDelimiter is the CSV field delimiter used when none is given.
const DefaultDelimiter = ','

// CSVOptions configures CSVBytes.
type CSVOptions struct {
	Delimiter   rune
	Compression Algorithm
	Level       int
}

// CSV renders the table as delimited text: one header line, one line per
// row, each terminated by a single newline. A field is quoted if and only
// if it contains the delimiter or a double quote; internal quotes are
// doubled. Nulls render as empty fields.
func CSV(t *table.Table, delimiter rune) (string, error) {
	if t == nil {
		return "", sgerrors.New(sgerrors.ErrorTypeInvalidInput, "table is nil")
	}
	if delimiter == 0 {
		delimiter = DefaultDelimiter
	}

	columns := t.Columns()
	var b strings.Builder

	for j, col := range columns {
		if j > 0 {
			b.WriteRune(delimiter)
		}
		b.WriteString(quoteField(col.Name(), delimiter))
	}
	b.WriteByte('\n')

	for i := 0; i < t.RowCount(); i++ {
		for j, col := range columns {
			if j > 0 {
				b.WriteRune(delimiter)
			}
			b.WriteString(quoteField(col.Format(i), delimiter))
		}
		b.WriteByte('\n')
	}

	return b.String(), nil
}

// CSVBytes renders the table as CSV and optionally compresses the
// payload.
func CSVBytes(t *table.Table, opts CSVOptions) ([]byte, error) {
	text, err := CSV(t, opts.Delimiter)
	if err != nil {
		return nil, err
	}
	if opts.Compression == "" || opts.Compression == None {
		return []byte(text), nil
	}
	out, err := Compress([]byte(text), opts.Compression, opts.Level)
	if err != nil {
		return nil, sgerrors.Wrap(err, sgerrors.ErrorTypeExportFailure, "csv compression failed")
	}
	return out, nil
}

// quoteField wraps the field in double quotes when it contains the
// delimiter or a quote, doubling internal quotes.
func quoteField(field string, delimiter rune) string {
	if !strings.ContainsRune(field, delimiter) && !strings.Contains(field, `"`) {
		return field
	}
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}
