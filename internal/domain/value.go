package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
)

// Value is a measured value that is either a number or a qualitative text
// such as "Absent" or "ND".
type Value struct {
	num     float64
	text    string
	numeric bool
}

// NumberValue wraps a numeric measurement.
func NumberValue(f float64) Value {
	return Value{num: f, numeric: true}
}

// TextValue wraps a qualitative measurement.
func TextValue(s string) Value {
	return Value{text: s}
}

// Float returns the numeric value and whether the value is numeric.
func (v Value) Float() (float64, bool) {
	return v.num, v.numeric
}

// IsNumeric reports whether v holds a number.
func (v Value) IsNumeric() bool {
	return v.numeric
}

// IsZero reports whether v holds neither a number nor text.
func (v Value) IsZero() bool {
	return !v.numeric && v.text == ""
}

// String renders numbers in their shortest form and returns text unchanged.
func (v Value) String() string {
	if !v.numeric {
		return v.text
	}
	return FormatNumber(v.num)
}

// MarshalJSON encodes numbers as JSON numbers and text as JSON strings.
// Non-finite numbers have no JSON form and encode as null.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.numeric {
		if math.IsNaN(v.num) || math.IsInf(v.num, 0) {
			return []byte("null"), nil
		}
		return []byte(strconv.FormatFloat(v.num, 'f', -1, 64)), nil
	}
	return json.Marshal(v.text)
}

// UnmarshalJSON accepts a JSON number, string, or null.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*v = Value{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = TextValue(s)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*v = NumberValue(f)
	return nil
}

// FormatNumber renders f without trailing zeros ("0.5", "1000").
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
