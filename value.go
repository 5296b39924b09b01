// Typed property values.
//
// Value is a closed set: only the four types declared here implement it, so a
// type switch over Bool, Int, Float and String is exhaustive. A nil Value is
// the "none" value; it is what Properties.Get returns for a missing name and
// it is never stored or serialised.
package cktext

import "strconv"

// Kind identifies the payload held by a Value. The numeric values double as
// the type tags of the on-disk attribute record.
type Kind uint8

const (
	KindNone   Kind = 0
	KindBool   Kind = 1
	KindInt    Kind = 2
	KindFloat  Kind = 3
	KindString Kind = 4
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	default:
		return "none"
	}
}

// Value is a property payload. Concrete types: Bool, Int, Float, String.
type Value interface {
	Kind() Kind
	value() // sealed
}

// Bool is a boolean property value.
type Bool bool

// Int is a signed 32-bit property value.
type Int int32

// Float is a 32-bit floating point property value.
type Float float32

// String is a text property value, 1 to MaxStringSize bytes when stored.
type String string

func (Bool) Kind() Kind   { return KindBool }
func (Int) Kind() Kind    { return KindInt }
func (Float) Kind() Kind  { return KindFloat }
func (String) Kind() Kind { return KindString }

func (Bool) value()   {}
func (Int) value()    {}
func (Float) value()  {}
func (String) value() {}

// KindOf returns the kind of v, or KindNone for a nil Value.
func KindOf(v Value) Kind {
	if v == nil {
		return KindNone
	}
	return v.Kind()
}

// Valid reports whether v carries a payload.
func Valid(v Value) bool {
	return v != nil
}

// Format renders v as text; strings are quoted and a nil Value prints as
// <none>.
func Format(v Value) string {
	switch x := v.(type) {
	case Bool:
		return strconv.FormatBool(bool(x))
	case Int:
		return strconv.FormatInt(int64(x), 10)
	case Float:
		return strconv.FormatFloat(float64(x), 'g', -1, 32)
	case String:
		return strconv.Quote(string(x))
	default:
		return "<none>"
	}
}
