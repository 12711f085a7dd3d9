package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Isakrulander/sheetgrid/pkg/sgerrors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 10, cfg.SampleSize)
	assert.Equal(t, ",", cfg.Delimiter)
	require.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
sample_size: 25
delimiter: ";"
report:
  title: Monthly numbers
export:
  compression: gzip
  compression_level: 7
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.SampleSize)
	assert.Equal(t, ";", cfg.Delimiter)
	assert.Equal(t, "Monthly numbers", cfg.Report.Title)
	assert.Equal(t, "gzip", cfg.Export.Compression)
	assert.Equal(t, 7, cfg.Export.CompressionLevel)
	// Unset keys keep their defaults.
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadEnvSubstitution(t *testing.T) {
	t.Setenv("SHEETGRID_TEST_SHEET", "Results")
	path := writeConfig(t, "sheet: ${SHEETGRID_TEST_SHEET}\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Results", cfg.Sheet)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, sgerrors.IsType(err, sgerrors.ErrorTypeConfig))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "defaults are valid",
			mutate: func(*Config) {},
		},
		{
			name:    "zero sample size",
			mutate:  func(c *Config) { c.SampleSize = 0 },
			wantErr: true,
		},
		{
			name:    "multi-char delimiter",
			mutate:  func(c *Config) { c.Delimiter = ",," },
			wantErr: true,
		},
		{
			name:    "unknown compression",
			mutate:  func(c *Config) { c.Export.Compression = "brotli" },
			wantErr: true,
		},
		{
			name:   "known compression",
			mutate: func(c *Config) { c.Export.Compression = "zstd" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, sgerrors.IsType(err, sgerrors.ErrorTypeConfig))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	cfg := Default()
	cfg.SampleSize = 42
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 42, loaded.SampleSize)
}
