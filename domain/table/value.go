package table

import (
	"strconv"
)

// Value is a single typed cell. Cells inside one column always share the
// column's resolved type; unparseable cells in a numeric column are missing.
type Value struct {
	Type       ValueType `json:"type"`
	StringVal  *string   `json:"string_val,omitempty"`
	NumericVal *float64  `json:"numeric_val,omitempty"`
	IsMissing  bool      `json:"is_missing"`
}

// ValueType defines the storage type for cell values
type ValueType string

const (
	ValueTypeText    ValueType = "text"
	ValueTypeNumeric ValueType = "numeric"
	ValueTypeMissing ValueType = "missing"
)

// NewTextValue creates a text value; empty strings become missing
func NewTextValue(s string) Value {
	if s == "" {
		return Value{Type: ValueTypeMissing, IsMissing: true}
	}
	return Value{Type: ValueTypeText, StringVal: &s}
}

// NewNumericValue creates a numeric value
func NewNumericValue(n float64) Value {
	return Value{Type: ValueTypeNumeric, NumericVal: &n}
}

// NewMissingValue creates a missing value
func NewMissingValue() Value {
	return Value{Type: ValueTypeMissing, IsMissing: true}
}

// Float returns the numeric payload, if any
func (v Value) Float() (float64, bool) {
	if v.Type == ValueTypeNumeric && v.NumericVal != nil {
		return *v.NumericVal, true
	}
	return 0, false
}

// String returns the display representation of the value
func (v Value) String() string {
	switch v.Type {
	case ValueTypeText:
		if v.StringVal != nil {
			return *v.StringVal
		}
	case ValueTypeNumeric:
		if v.NumericVal != nil {
			return strconv.FormatFloat(*v.NumericVal, 'f', -1, 64)
		}
	}
	return ""
}
