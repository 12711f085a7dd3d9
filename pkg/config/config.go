// Package config provides configuration loading for sheetgrid.
//
// Configuration is plain YAML with ${ENV_VAR} substitution applied before
// parsing, so credentials and paths can stay out of the file itself.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Isakrulander/sheetgrid/pkg/sgerrors"
)

// Config is the top-level sheetgrid configuration.
type Config struct {
	// SampleSize is the number of leading non-empty values inspected per
	// column during type inference.
	SampleSize int `yaml:"sample_size"`

	// Delimiter is the CSV field delimiter used for import and export.
	Delimiter string `yaml:"delimiter"`

	// Sheet selects the worksheet to analyze. Empty means the first sheet.
	Sheet string `yaml:"sheet"`

	Report  ReportConfig  `yaml:"report"`
	Export  ExportConfig  `yaml:"export"`
	Logging LoggingConfig `yaml:"logging"`
}

// ReportConfig controls the paginated report renderer.
type ReportConfig struct {
	// Title is the report title. Empty falls back to the source file name.
	Title string `yaml:"title"`
}

// ExportConfig controls export behavior shared across formats.
type ExportConfig struct {
	// Compression compresses CSV output when set: gzip, zstd or lz4.
	Compression string `yaml:"compression"`

	// CompressionLevel is the algorithm-specific level, 1-9.
	CompressionLevel int `yaml:"compression_level"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level       string `yaml:"level"`
	Encoding    string `yaml:"encoding"`
	Development bool   `yaml:"development"`
}

// Default returns the configuration used when no file is supplied.
func Default() *Config {
	return &Config{
		SampleSize: 10,
		Delimiter:  ",",
		Export: ExportConfig{
			CompressionLevel: 5,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Encoding: "json",
		},
	}
}

// Validate checks the configuration for values the core cannot work with.
func (c *Config) Validate() error {
	if c.SampleSize <= 0 {
		return sgerrors.Newf(sgerrors.ErrorTypeConfig, "sample_size must be positive, got %d", c.SampleSize)
	}
	if len(c.Delimiter) != 1 {
		return sgerrors.Newf(sgerrors.ErrorTypeConfig, "delimiter must be a single character, got %q", c.Delimiter)
	}
	switch c.Export.Compression {
	case "", "gzip", "zstd", "lz4":
	default:
		return sgerrors.Newf(sgerrors.ErrorTypeConfig, "unsupported compression %q", c.Export.Compression)
	}
	return nil
}

// Load loads a configuration from a YAML file on top of the defaults.
func Load(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath) //nolint:gosec // G304: File path is controlled by caller and validated
	if err != nil {
		return nil, sgerrors.Wrap(err, sgerrors.ErrorTypeConfig, "failed to read config file")
	}

	// Substitute environment variables
	content := substituteEnvVars(string(data))

	cfg := Default()
	if err := yaml.Unmarshal([]byte(content), cfg); err != nil {
		return nil, sgerrors.Wrap(err, sgerrors.ErrorTypeConfig, "failed to parse YAML")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save saves a configuration to a YAML file
func Save(filePath string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil { //nolint:gosec
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// substituteEnvVars replaces ${VAR_NAME} with environment variable values
func substituteEnvVars(content string) string {
	for {
		start := strings.Index(content, "${")
		if start == -1 {
			break
		}
		end := strings.Index(content[start:], "}")
		if end == -1 {
			break
		}
		end += start

		varName := content[start+2 : end]
		envValue := os.Getenv(varName)
		content = content[:start] + envValue + content[end+1:]
	}
	return content
}
