package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"unicode/utf8"
)

// ValueKind identifies which scalar a Value carries.
type ValueKind uint8

const (
	KindString ValueKind = iota
	KindNumber
	KindBool
)

// Code returns the single-letter tag used inside tokens.
func (k ValueKind) Code() byte {
	switch k {
	case KindNumber:
		return 'n'
	case KindBool:
		return 'b'
	default:
		return 's'
	}
}

func (k ValueKind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindBool:
		return "boolean"
	default:
		return "string"
	}
}

// Value is the outcome of a decision: a string, a number or a boolean.
// The zero Value is the empty string. Values are comparable with ==.
type Value struct {
	kind ValueKind
	str  string
	num  float64
	flag bool
}

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number returns a numeric value. Non-finite numbers are representable but
// rejected by Validate, so they can never be marked.
func Number(n float64) Value { return Value{kind: KindNumber, num: n} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, flag: b} }

// ValueOf converts a Go scalar into a Value.
// Strings, booleans and every integer and float kind are accepted.
func ValueOf(v any) (Value, error) {
	switch x := v.(type) {
	case Value:
		return x, nil
	case string:
		if !utf8.ValidString(x) {
			return Value{}, NewError(KindInvalidValue, "", "decision values must be valid UTF-8")
		}
		return String(x), nil
	case bool:
		return Bool(x), nil
	case float64:
		return number(x)
	case float32:
		return number(float64(x))
	case int:
		return Number(float64(x)), nil
	case int8:
		return Number(float64(x)), nil
	case int16:
		return Number(float64(x)), nil
	case int32:
		return Number(float64(x)), nil
	case int64:
		return Number(float64(x)), nil
	case uint:
		return Number(float64(x)), nil
	case uint8:
		return Number(float64(x)), nil
	case uint16:
		return Number(float64(x)), nil
	case uint32:
		return Number(float64(x)), nil
	case uint64:
		return Number(float64(x)), nil
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return Value{}, NewError(KindInvalidValue, "", fmt.Sprintf("cannot use %q as a number", x.String()))
		}
		return number(f)
	}
	return Value{}, NewError(KindInvalidValue, "", fmt.Sprintf("unsupported decision value type %T", v))
}

func number(f float64) (Value, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Value{}, NewError(KindInvalidValue, "", "decision values must be finite numbers")
	}
	return Number(f), nil
}

// Validate reports whether v can be recorded: numbers must be finite and
// strings valid UTF-8. Anything else would not survive tokens and documents.
func (v Value) Validate() error {
	switch v.kind {
	case KindNumber:
		if math.IsNaN(v.num) || math.IsInf(v.num, 0) {
			return NewError(KindInvalidValue, "", "decision values must be finite numbers")
		}
	case KindString:
		if !utf8.ValidString(v.str) {
			return NewError(KindInvalidValue, "", "decision values must be valid UTF-8")
		}
	}
	return nil
}

// Coerce interprets raw text the way tokens are read back: exactly "true" or
// "false" become booleans, fully numeric text becomes a number and anything
// else stays a string.
func Coerce(raw string) Value {
	switch raw {
	case "true":
		return Bool(true)
	case "false":
		return Bool(false)
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return Number(f)
	}
	return String(raw)
}

// Kind reports the scalar type held by v.
func (v Value) Kind() ValueKind { return v.kind }

// Str returns the string payload and whether v is a string.
func (v Value) Str() (string, bool) { return v.str, v.kind == KindString }

// Num returns the numeric payload and whether v is a number.
func (v Value) Num() (float64, bool) { return v.num, v.kind == KindNumber }

// Flag returns the boolean payload and whether v is a boolean.
func (v Value) Flag() (bool, bool) { return v.flag, v.kind == KindBool }

// Interface returns the payload as a plain Go value (string, float64 or bool).
func (v Value) Interface() any {
	switch v.kind {
	case KindNumber:
		return v.num
	case KindBool:
		return v.flag
	default:
		return v.str
	}
}

// Text renders the payload without type information.
func (v Value) Text() string {
	switch v.kind {
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.flag)
	default:
		return v.str
	}
}

func (v Value) String() string { return v.Text() }

// MarshalJSON encodes the payload as the matching JSON scalar.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

// UnmarshalJSON accepts a JSON string, number or boolean.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ValueOf(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
