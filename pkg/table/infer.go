package table

import (
	"strconv"
	"strings"
	"time"
)

// DefaultSampleSize is the number of leading non-empty values inspected
// per column before committing to a kind.
const DefaultSampleSize = 10

// temporalLayouts are the invariant-culture layouts accepted for temporal
// values, tried in order.
var temporalLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"01/02/2006 15:04",
}

// Detector infers the kind of a column from a sample of its raw values.
type Detector struct {
	sampleSize int
}

// NewDetector creates a detector that samples up to sampleSize non-empty
// values per column. Non-positive sizes fall back to DefaultSampleSize.
func NewDetector(sampleSize int) *Detector {
	if sampleSize <= 0 {
		sampleSize = DefaultSampleSize
	}
	return &Detector{sampleSize: sampleSize}
}

// DetectKind classifies a column from its raw values. The first sampleSize
// non-empty values are parsed as numeric and as temporal; a candidate flag
// is cleared the first time a sampled value fails that parse. Numeric wins
// when both survive. A column with no non-empty sampled values is text.
func (d *Detector) DetectKind(values []Cell) Kind {
	numericCandidate := true
	temporalCandidate := true
	sampled := 0

	for _, v := range values {
		if sampled >= d.sampleSize {
			break
		}
		s := Project(v)
		if strings.TrimSpace(s) == "" {
			// Empty slots are skipped, they clear neither flag.
			continue
		}
		sampled++

		if numericCandidate {
			if _, ok := parseNumeric(v); !ok {
				numericCandidate = false
			}
		}
		if temporalCandidate {
			if _, ok := parseTemporal(v); !ok {
				temporalCandidate = false
			}
		}
		if !numericCandidate && !temporalCandidate {
			break
		}
	}

	if sampled == 0 {
		// Both flags are still true here, but nothing was actually
		// tested. Text is the safer default for an unknowable column.
		return KindText
	}

	switch {
	case numericCandidate:
		return KindNumeric
	case temporalCandidate:
		return KindTemporal
	default:
		return KindText
	}
}

// Project converts a raw cell to its string projection for type testing
// and text storage. Nil projects to the empty string.
func Project(v Cell) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return c
	case float64:
		return strconv.FormatFloat(c, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(c), 'f', -1, 32)
	case int:
		return strconv.Itoa(c)
	case int64:
		return strconv.FormatInt(c, 10)
	case bool:
		return strconv.FormatBool(c)
	case time.Time:
		return c.Format(TimeLayout)
	default:
		return ""
	}
}

// parseNumeric coerces a raw cell to float64. Typed numbers pass through;
// strings parse with an invariant decimal point.
func parseNumeric(v Cell) (float64, bool) {
	switch c := v.(type) {
	case float64:
		return c, true
	case float32:
		return float64(c), true
	case int:
		return float64(c), true
	case int64:
		return float64(c), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(c), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// parseTemporal coerces a raw cell to time.Time. Typed times pass through;
// strings are tried against the fixed layout list.
func parseTemporal(v Cell) (time.Time, bool) {
	switch c := v.(type) {
	case time.Time:
		return c, true
	case string:
		s := strings.TrimSpace(c)
		for _, layout := range temporalLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}
