package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind tells which side of the Value union is populated.
type Kind int

const (
	// KindText is a value kept as the string it was ingested as.
	KindText Kind = iota
	// KindNumber is a value ingested from a typed numeric column.
	KindNumber
)

// Value is a field value: either text or a number.
//
// Comparisons always start from String(); Float() is how callers attempt
// the numeric side of a comparison.
type Value struct {
	kind Kind
	text string
	num  float64
}

// Text returns a text value.
func Text(s string) Value {
	return Value{kind: KindText, text: s}
}

// Number returns a numeric value.
func Number(f float64) Value {
	return Value{kind: KindNumber, num: f}
}

// Of converts a primitive into a Value. Integers and floats become numbers,
// everything else is rendered as text.
func Of(v interface{}) Value {
	switch val := v.(type) {
	case Value:
		return val
	case string:
		return Text(val)
	case []byte:
		return Text(string(val))
	case float64:
		return Number(val)
	case float32:
		return Number(float64(val))
	case int:
		return Number(float64(val))
	case int8:
		return Number(float64(val))
	case int16:
		return Number(float64(val))
	case int32:
		return Number(float64(val))
	case int64:
		return Number(float64(val))
	case uint:
		return Number(float64(val))
	case uint8:
		return Number(float64(val))
	case uint16:
		return Number(float64(val))
	case uint32:
		return Number(float64(val))
	case uint64:
		return Number(float64(val))
	case bool:
		return Text(strconv.FormatBool(val))
	case nil:
		return Text("")
	default:
		return Text(fmt.Sprintf("%v", val))
	}
}

// Kind returns the populated side of the union.
func (v Value) Kind() Kind {
	return v.kind
}

// String returns the string representation used by every comparison.
func (v Value) String() string {
	if v.kind == KindNumber {
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	}
	return v.text
}

// Float returns the value as a float64 and whether it is numeric.
// Text values are parsed; surrounding whitespace is ignored and NaN
// is never reported as numeric.
func (v Value) Float() (float64, bool) {
	if v.kind == KindNumber {
		return v.num, !math.IsNaN(v.num)
	}
	return ParseNumber(v.text)
}

// ParseNumber parses s as a float64 the way Value.Float does.
func ParseNumber(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// MarshalJSON encodes numbers as JSON numbers and text as JSON strings.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.kind == KindNumber {
		if math.IsNaN(v.num) || math.IsInf(v.num, 0) {
			return marshalString(v.String())
		}
		return []byte(v.String()), nil
	}
	return marshalString(v.text)
}

// marshalString encodes s as a JSON string without HTML escaping.
func marshalString(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// UnmarshalJSON decodes a JSON scalar. Nested objects and arrays are kept
// as their raw JSON text.
func (v *Value) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "" {
		return fmt.Errorf("empty value")
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Text(s)
	case 'n':
		*v = Text("")
	case 't', 'f':
		*v = Text(raw)
	case '{', '[':
		*v = Text(raw)
	default:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("invalid number %q: %w", raw, err)
		}
		*v = Number(f)
	}
	return nil
}
