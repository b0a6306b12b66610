package patient

import "github.com/spf13/cast"

// Kind is the dynamic type of a field value.
type Kind uint8

// Supported field kinds.
const (
	KindString Kind = iota + 1
	KindNumber
	KindBool
)

// Value is a scalar field value read from a record.
type Value struct {
	kind Kind
	str  string
	num  float64
	flag bool
}

// String creates a string value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number creates a numeric value.
func Number(n float64) Value { return Value{kind: KindNumber, num: n} }

// Bool creates a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, flag: b} }

// Kind returns the value kind.
func (v Value) Kind() Kind { return v.kind }

// Str returns the string payload (empty for non-strings).
func (v Value) Str() string { return v.str }

// Num returns the numeric payload (zero for non-numbers).
func (v Value) Num() float64 { return v.num }

// Bool returns the boolean payload (false for non-bools).
func (v Value) Bool() bool { return v.flag }

// Text renders the value the way it is printed in the JSON source:
// 35 -> "35", 3.5 -> "3.5", true -> "true".
func (v Value) Text() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return cast.ToString(v.num)
	case KindBool:
		return cast.ToString(v.flag)
	default:
		return ""
	}
}
