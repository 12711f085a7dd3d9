package export

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Algorithm selects the compression applied to CSV output.
type Algorithm string

const (
	// None disables compression
	None Algorithm = "none"
	// Gzip selects gzip compression
	Gzip Algorithm = "gzip"
	// Zstd selects zstandard compression
	Zstd Algorithm = "zstd"
	// LZ4 selects lz4 compression
	LZ4 Algorithm = "lz4"
)

// ParseAlgorithm maps a config string to an Algorithm.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch Algorithm(s) {
	case "", None:
		return None, nil
	case Gzip, Zstd, LZ4:
		return Algorithm(s), nil
	default:
		return None, fmt.Errorf("unsupported compression algorithm %q", s)
	}
}

// Compress compresses data with the given algorithm and level (1-9,
// clamped per algorithm). The input is not modified.
func Compress(data []byte, algo Algorithm, level int) ([]byte, error) {
	if level <= 0 {
		level = 5
	}

	var buf bytes.Buffer
	var w io.WriteCloser
	var err error

	switch algo {
	case None:
		return data, nil
	case Gzip:
		if level > gzip.BestCompression {
			level = gzip.BestCompression
		}
		w, err = gzip.NewWriterLevel(&buf, level)
	case Zstd:
		w, err = zstd.NewWriter(&buf, zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(level)))
	case LZ4:
		lw := lz4.NewWriter(&buf)
		err = lw.Apply(lz4.CompressionLevelOption(lz4CompressionLevel(level)))
		w = lw
	default:
		return nil, fmt.Errorf("unsupported compression algorithm %q", algo)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create %s writer: %w", algo, err)
	}

	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("%s compression failed: %w", algo, err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize %s stream: %w", algo, err)
	}

	return buf.Bytes(), nil
}

// lz4CompressionLevel maps a 1-9 level onto lz4's discrete levels.
func lz4CompressionLevel(level int) lz4.CompressionLevel {
	switch {
	case level <= 1:
		return lz4.Fast
	case level <= 3:
		return lz4.Level3
	case level <= 5:
		return lz4.Level5
	case level <= 7:
		return lz4.Level7
	default:
		return lz4.Level9
	}
}
