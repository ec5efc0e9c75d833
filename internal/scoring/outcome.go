package scoring

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// numericPrecision is the number of decimal places numeric outcomes are
// compared at.
const numericPrecision = 9

// Outcome is a raw value an alternative takes on a primitive objective.
// Categorical domains produce text outcomes, numeric domains produce numbers.
type Outcome struct {
	Text    string
	Number  float64
	Numeric bool
}

// Text returns a categorical outcome.
func Text(s string) Outcome { return Outcome{Text: s} }

// Number returns a numeric outcome.
func Number(v float64) Outcome { return Outcome{Number: v, Numeric: true} }

// String renders the outcome the way it is shown in labels.
func (o Outcome) String() string {
	if o.Numeric {
		return strconv.FormatFloat(o.Number, 'f', -1, 64)
	}
	return o.Text
}

// Key identifies the outcome inside a discrete score function. Numbers are
// compared at numericPrecision decimal places so 0.1+0.2 and 0.3 share a key.
func (o Outcome) Key() string {
	if !o.Numeric {
		return o.Text
	}
	return formatRounded(o.Number)
}

// RoundNumber rounds v to numericPrecision decimal places.
func RoundNumber(v float64) float64 {
	r, err := strconv.ParseFloat(formatRounded(v), 64)
	if err != nil {
		return v
	}
	return r
}

func formatRounded(v float64) string {
	s := strconv.FormatFloat(v, 'f', numericPrecision, 64)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	if s == "-0" {
		return "0"
	}
	return s
}

// MarshalJSON encodes numeric outcomes as JSON numbers and the rest as strings.
func (o Outcome) MarshalJSON() ([]byte, error) {
	if o.Numeric {
		return json.Marshal(o.Number)
	}
	return json.Marshal(o.Text)
}

// UnmarshalJSON accepts either a JSON number or a JSON string.
func (o *Outcome) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("empty outcome")
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decode outcome: %w", err)
		}
		*o = Text(s)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("decode outcome: %w", err)
	}
	*o = Number(v)
	return nil
}
