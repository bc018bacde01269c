// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// ValueKind is the persisted type tag of a data point value.
type ValueKind string

const (
	KindBoolean ValueKind = "boolean"
	KindInteger ValueKind = "integer"
	KindFloat   ValueKind = "float"
	KindString  ValueKind = "string"
)

// Value is a typed scalar extracted from clause text. The zero Value is a
// null string.
type Value struct {
	kind  ValueKind
	valid bool
	b     bool
	i     int64
	f     float64
	s     string
}

// Bool returns a boolean Value.
func Bool(b bool) Value { return Value{kind: KindBoolean, valid: true, b: b} }

// Int returns an integer Value.
func Int(i int64) Value { return Value{kind: KindInteger, valid: true, i: i} }

// Float returns a float Value.
func Float(f float64) Value { return Value{kind: KindFloat, valid: true, f: f} }

// String returns a string Value.
func String(s string) Value { return Value{kind: KindString, valid: true, s: s} }

// Null returns a Value recording that a field is known to be absent.
// It persists as SQL NULL with kind "string".
func Null() Value { return Value{kind: KindString} }

// Kind returns the value's type tag.
func (v Value) Kind() ValueKind {
	if v.kind == "" {
		return KindString
	}
	return v.kind
}

// IsNull reports whether v carries no value.
func (v Value) IsNull() bool { return !v.valid }

// BoolValue returns the boolean payload and whether v is a non-null boolean.
func (v Value) BoolValue() (bool, bool) { return v.b, v.valid && v.kind == KindBoolean }

// IntValue returns the integer payload and whether v is a non-null integer.
func (v Value) IntValue() (int64, bool) { return v.i, v.valid && v.kind == KindInteger }

// Text returns the persisted text form of v. Booleans serialize as
// lowercase "true"/"false". The second result is false for null values.
func (v Value) Text() (string, bool) {
	if !v.valid {
		return "", false
	}
	switch v.kind {
	case KindBoolean:
		return strconv.FormatBool(v.b), true
	case KindInteger:
		return strconv.FormatInt(v.i, 10), true
	case KindFloat:
		return strconv.FormatFloat(v.f, 'f', -1, 64), true
	default:
		return v.s, true
	}
}

// String implements fmt.Stringer. Null values render as "null".
func (v Value) String() string {
	s, ok := v.Text()
	if !ok {
		return "null"
	}
	return s
}

// Native returns v as a plain Go value (bool, int64, float64, string, or nil).
func (v Value) Native() any {
	if !v.valid {
		return nil
	}
	switch v.kind {
	case KindBoolean:
		return v.b
	case KindInteger:
		return v.i
	case KindFloat:
		return v.f
	default:
		return v.s
	}
}

// ParseValue rebuilds a Value from its persisted kind and text. A text
// that does not parse as its declared kind is kept as a string.
func ParseValue(kind ValueKind, text string, valid bool) Value {
	if !valid {
		return Null()
	}
	switch kind {
	case KindBoolean:
		if b, err := strconv.ParseBool(text); err == nil {
			return Bool(b)
		}
	case KindInteger:
		if i, err := strconv.ParseInt(text, 10, 64); err == nil {
			return Int(i)
		}
	case KindFloat:
		if f, err := strconv.ParseFloat(text, 64); err == nil {
			return Float(f)
		}
	}
	return String(text)
}

// MarshalJSON encodes v as its native JSON scalar.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Native())
}

// MarshalYAML encodes v as its native YAML scalar.
func (v Value) MarshalYAML() (any, error) {
	return v.Native(), nil
}

// GoString makes test failure output readable.
func (v Value) GoString() string {
	if !v.valid {
		return "types.Null()"
	}
	return fmt.Sprintf("types.Value{%s:%s}", v.Kind(), v.String())
}

// Fields maps extracted field names to typed values.
type Fields map[string]Value

// Keys returns the field names in sorted order.
func (f Fields) Keys() []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
