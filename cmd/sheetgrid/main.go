package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/goccy/go-json"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Isakrulander/sheetgrid/pkg/config"
	"github.com/Isakrulander/sheetgrid/pkg/export"
	"github.com/Isakrulander/sheetgrid/pkg/ingest"
	"github.com/Isakrulander/sheetgrid/pkg/logger"
	"github.com/Isakrulander/sheetgrid/pkg/stats"
	"github.com/Isakrulander/sheetgrid/pkg/table"
)

var version = "0.1.0"

type analyzeFlags struct {
	configPath  string
	sheet       string
	sampleSize  int
	delimiter   string
	sortColumn  string
	descending  bool
	exportKind  string
	outPath     string
	compression string
	title       string
	logLevel    string
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load() // Ignore error if .env doesn't exist

	root := &cobra.Command{
		Use:   "sheetgrid",
		Short: "sheetgrid - columnar spreadsheet analysis toolkit",
		Long: `sheetgrid ingests spreadsheet files, infers a columnar schema, computes
descriptive statistics, and re-exports the data as CSV, styled xlsx,
a paginated PDF report, or an Arrow IPC buffer.`,
	}

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("sheetgrid v%s\n", version)
			fmt.Printf("Go version: %s\n", runtime.Version())
			fmt.Printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	})

	root.AddCommand(newAnalyzeCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newAnalyzeCmd() *cobra.Command {
	flags := &analyzeFlags{}

	cmd := &cobra.Command{
		Use:   "analyze <file>",
		Short: "Analyze a spreadsheet or CSV file",
		Long: `Analyze reads a worksheet, infers per-column types, prints column
statistics as JSON, and optionally exports the table to another format.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.configPath, "config", "c", "", "Path to YAML configuration file")
	cmd.Flags().StringVar(&flags.sheet, "sheet", "", "Worksheet name (default: first sheet)")
	cmd.Flags().IntVar(&flags.sampleSize, "sample-size", 0, "Type inference sample size (default: 10)")
	cmd.Flags().StringVar(&flags.delimiter, "delimiter", "", "CSV delimiter (default: \",\")")
	cmd.Flags().StringVar(&flags.sortColumn, "sort", "", "Sort by column before export")
	cmd.Flags().BoolVar(&flags.descending, "desc", false, "Sort descending")
	cmd.Flags().StringVar(&flags.exportKind, "export", "", "Export format: csv, xlsx, pdf or arrow")
	cmd.Flags().StringVarP(&flags.outPath, "out", "o", "", "Output file for --export")
	cmd.Flags().StringVar(&flags.compression, "compress", "", "Compress CSV output: gzip, zstd or lz4")
	cmd.Flags().StringVar(&flags.title, "title", "", "Report title (default: source file name)")
	cmd.Flags().StringVar(&flags.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	return cmd
}

func runAnalyze(path string, flags *analyzeFlags) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}

	if err := logger.Init(logger.Config{
		Level:    cfg.Logging.Level,
		Encoding: cfg.Logging.Encoding,
	}); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	log := logger.With(zap.String("source_file", path))
	log.Info("analyzing file")

	headers, grid, err := readGrid(path, cfg)
	if err != nil {
		return err
	}

	t, err := table.Build(headers, grid, table.WithSampleSize(cfg.SampleSize))
	if err != nil {
		return err
	}

	if flags.sortColumn != "" {
		t, err = t.Sort(flags.sortColumn, !flags.descending)
		if err != nil {
			return err
		}
	}

	records := stats.Summarize(t)
	encoded, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode statistics: %w", err)
	}
	fmt.Println(string(encoded))

	if flags.exportKind != "" {
		return writeExport(t, path, flags, cfg)
	}
	return nil
}

func loadConfig(flags *analyzeFlags) (*config.Config, error) {
	cfg := config.Default()
	if flags.configPath != "" {
		loaded, err := config.Load(flags.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	// Flags override the file.
	if flags.sampleSize > 0 {
		cfg.SampleSize = flags.sampleSize
	}
	if flags.delimiter != "" {
		cfg.Delimiter = flags.delimiter
	}
	if flags.sheet != "" {
		cfg.Sheet = flags.sheet
	}
	if flags.compression != "" {
		cfg.Export.Compression = flags.compression
	}
	if flags.title != "" {
		cfg.Report.Title = flags.title
	}
	if flags.logLevel != "" {
		cfg.Logging.Level = flags.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func readGrid(path string, cfg *config.Config) ([]string, [][]table.Cell, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		return ingest.CSVFile(path, rune(cfg.Delimiter[0]))
	default:
		return ingest.WorkbookFile(path, cfg.Sheet)
	}
}

func writeExport(t *table.Table, path string, flags *analyzeFlags, cfg *config.Config) error {
	outPath := flags.outPath
	if outPath == "" {
		return fmt.Errorf("--out is required with --export")
	}

	title := cfg.Report.Title
	if title == "" {
		title = filepath.Base(path)
	}

	var data []byte
	var err error
	switch flags.exportKind {
	case "csv":
		algo, perr := export.ParseAlgorithm(cfg.Export.Compression)
		if perr != nil {
			return perr
		}
		data, err = export.CSVBytes(t, export.CSVOptions{
			Delimiter:   rune(cfg.Delimiter[0]),
			Compression: algo,
			Level:       cfg.Export.CompressionLevel,
		})
	case "xlsx":
		data, err = export.Spreadsheet(t, "Data")
	case "pdf":
		data = export.Report(t, title, filepath.Base(path))
	case "arrow":
		data, err = export.ArrowIPC(t)
	default:
		return fmt.Errorf("unknown export format %q", flags.exportKind)
	}
	if err != nil {
		return err
	}

	if err := os.WriteFile(outPath, data, 0644); err != nil { //nolint:gosec
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}

	logger.Info("export written",
		zap.String("format", flags.exportKind),
		zap.String("path", outPath),
		zap.Int("bytes", len(data)))
	return nil
}
