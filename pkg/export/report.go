package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	"go.uber.org/zap"

	"github.com/Isakrulander/sheetgrid/pkg/logger"
	"github.com/Isakrulander/sheetgrid/pkg/stats"
	"github.com/Isakrulander/sheetgrid/pkg/table"
)

const (
	// previewRowHeight is the fixed data-preview row height in mm.
	previewRowHeight = 6.0
	// headerTruncateLen is the maximum preview header length before the
	// ellipsis marker is appended.
	headerTruncateLen = 10
)

// Report renders the table as a paginated PDF: a title block, a column
// inventory, numeric statistics, and a data preview holding as many rows
// as fit on the remaining page. Report never fails; any rendering problem
// degrades to a plain-text fallback returned as bytes, leaving the CSV
// and spreadsheet exporters as the recommended path for the caller.
func Report(t *table.Table, title, sourceFile string) (out []byte) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("report rendering panicked",
				zap.Any("cause", r))
			out = fallbackReport(title, sourceFile, fmt.Errorf("%v", r))
		}
	}()

	if t == nil {
		return fallbackReport(title, sourceFile, fmt.Errorf("table is nil"))
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	writeTitleBlock(pdf, t, title, sourceFile)
	writeColumnInventory(pdf, t)
	records := stats.Summarize(t)
	writeNumericStatistics(pdf, t, records)
	writeDataPreview(pdf, t)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		logger.Warn("report rendering failed", zap.Error(err))
		return fallbackReport(title, sourceFile, err)
	}
	return buf.Bytes()
}

func writeTitleBlock(pdf *fpdf.Fpdf, t *table.Table, title, sourceFile string) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, title, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Source file: %s", sourceFile), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated: %s", time.Now().Format(table.TimeLayout)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Rows: %d    Columns: %d", t.RowCount(), t.ColumnCount()), "", 1, "L", false, 0, "")
	pdf.Ln(4)
}

func writeColumnInventory(pdf *fpdf.Fpdf, t *table.Table) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Columns", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, col := range t.Columns() {
		line := fmt.Sprintf("%s  (%s, %d null)", col.Name(), col.Kind(), col.NullCount())
		pdf.CellFormat(0, 6, line, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)
}

func writeNumericStatistics(pdf *fpdf.Fpdf, t *table.Table, records map[string]stats.Record) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Numeric statistics", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, col := range t.Columns() {
		rec, ok := records[col.Name()]
		if !ok || rec.Numeric == nil {
			continue
		}
		line := fmt.Sprintf("%s: mean %.2f, min %.2f, max %.2f",
			col.Name(), rec.Numeric.Mean, rec.Numeric.Min, rec.Numeric.Max)
		pdf.CellFormat(0, 6, line, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)
}

func writeDataPreview(pdf *fpdf.Fpdf, t *table.Table) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Data preview", "", 1, "L", false, 0, "")

	columns := t.Columns()
	if len(columns) == 0 {
		return
	}

	pageWidth, pageHeight := pdf.GetPageSize()
	left, _, right, bottom := pdf.GetMargins()
	colWidth := (pageWidth - left - right) / float64(len(columns))

	pdf.SetFont("Helvetica", "B", 9)
	for _, col := range columns {
		pdf.CellFormat(colWidth, previewRowHeight, truncateHeader(col.Name()), "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	// Rows that fit in the remaining page area at the fixed row height,
	// keeping one line free for the truncation notice.
	remaining := pageHeight - bottom - pdf.GetY() - previewRowHeight
	fit := int(remaining / previewRowHeight)
	if fit < 0 {
		fit = 0
	}
	shown := t.RowCount()
	if shown > fit {
		shown = fit
	}

	pdf.SetFont("Helvetica", "", 9)
	for i := 0; i < shown; i++ {
		for _, col := range columns {
			pdf.CellFormat(colWidth, previewRowHeight, col.Format(i), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if shown < t.RowCount() {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.CellFormat(0, previewRowHeight,
			fmt.Sprintf("showing first %d of %d rows", shown, t.RowCount()), "", 1, "L", false, 0, "")
	}
}

// truncateHeader shortens a preview header to headerTruncateLen runes,
// marking the cut with an ellipsis.
func truncateHeader(name string) string {
	runes := []rune(name)
	if len(runes) <= headerTruncateLen {
		return name
	}
	return string(runes[:headerTruncateLen]) + "..."
}

// fallbackReport produces the plain-text stand-in returned when PDF
// construction fails.
func fallbackReport(title, sourceFile string, cause error) []byte {
	text := fmt.Sprintf(
		"Report generation failed for %q (source: %s): %v\n"+
			"The CSV and spreadsheet export formats remain available.\n",
		title, sourceFile, cause)
	return []byte(text)
}
