package coercer

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"dataclaw/domain/table"
)

// Config defines the coercion thresholds
type Config struct {
	// NumericThreshold is the fraction of cells that must parse as numbers
	// before a column conversion is committed.
	NumericThreshold float64 `json:"numeric_threshold"`
}

// DefaultConfig returns the standard majority threshold
func DefaultConfig() Config {
	return Config{NumericThreshold: 0.70}
}

// NumericCoercer converts text columns to numeric by majority vote.
// Columns below the threshold are left untouched, which keeps textual
// columns with embedded digits from being corrupted.
type NumericCoercer struct {
	config Config
}

// NewNumericCoercer creates a coercer with the given config
func NewNumericCoercer(config Config) *NumericCoercer {
	return &NumericCoercer{config: config}
}

var nonNumericChars = regexp.MustCompile(`[^0-9,.\-]`)

// CoerceColumn attempts to convert one text column in place. It returns
// true when the conversion was committed. Cells that fail to parse in a
// committed column become missing values.
func (c *NumericCoercer) CoerceColumn(col *table.Column) bool {
	if col.Type != table.TypeText || len(col.Cells) == 0 {
		return false
	}

	converted := make([]table.Value, len(col.Cells))
	parsed := 0
	for i, cell := range col.Cells {
		if f, ok := c.tryParse(cell); ok {
			converted[i] = table.NewNumericValue(f)
			parsed++
		} else {
			converted[i] = table.NewMissingValue()
		}
	}

	ratio := float64(parsed) / float64(len(col.Cells))
	if ratio < c.config.NumericThreshold {
		return false
	}

	col.Type = table.TypeNumeric
	col.Cells = converted
	return true
}

// tryParse strips non-numeric characters, normalizes the decimal comma
// and attempts a float parse.
func (c *NumericCoercer) tryParse(v table.Value) (float64, bool) {
	if v.IsMissing {
		return 0, false
	}

	cleaned := nonNumericChars.ReplaceAllString(v.String(), "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	if cleaned == "" {
		return 0, false
	}

	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}
