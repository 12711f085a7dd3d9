// Package sheetgrid turns spreadsheet files into a typed columnar table
// and derives statistics and exports from it.
//
// # Pipeline
//
// The core data flow is:
//
//	raw grid -> type inference (per column) -> typed column store ->
//	{statistics, filter/sort} -> export (csv, xlsx, pdf report, arrow)
//
// Each column of the incoming grid is classified as numeric, temporal or
// text from a small leading sample, then fully materialized into a
// type-homogeneous column where individual parse failures become nulls.
// The resulting table is immutable: statistics are recomputed on demand,
// and filter/sort produce new tables.
//
// # Packages
//
//   - pkg/table: the typed column store, type inference, and transforms
//   - pkg/stats: per-column descriptive statistics
//   - pkg/export: CSV, styled xlsx, paginated PDF report, and Arrow IPC
//   - pkg/ingest: xlsx and CSV readers producing the raw grid
//   - pkg/config, pkg/logger, pkg/sgerrors: configuration, structured
//     logging, and the error taxonomy shared by the pipeline
//
// # Quick start
//
//	headers, grid, err := ingest.WorkbookFile("input.xlsx", "")
//	if err != nil {
//	    return err
//	}
//	t, err := table.Build(headers, grid)
//	if err != nil {
//	    return err
//	}
//	records := stats.Summarize(t)
//	csvText, err := export.CSV(t, ',')
//
// The cmd/sheetgrid CLI wires the same pipeline behind an analyze
// command.
package sheetgrid
