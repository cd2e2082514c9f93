package tween

import (
	"fmt"
	"strconv"
)

// Kind identifies which field of a Value is set.
type Kind int

const (
	// KindNone is the zero Value, used for a property the target does not have.
	KindNone Kind = iota
	// KindNumber values are interpolated.
	KindNumber
	// KindString values snap at the end of a step unless a plugin interprets them.
	KindString
	// KindBool values snap at the end of a step.
	KindBool
	// KindOpaque holds anything else. Plugins use it for structured props like guides.
	KindOpaque
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindOpaque:
		return "opaque"
	default:
		return "none"
	}
}

// Value is a tagged property value.
type Value struct {
	kind   Kind
	num    float64
	str    string
	b      bool
	opaque any
}

// Props maps property names to values.
type Props map[string]Value

// Number returns a numeric Value.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// String returns a string Value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Bool returns a boolean Value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Opaque wraps an arbitrary value.
func Opaque(v any) Value { return Value{kind: KindOpaque, opaque: v} }

// Kind returns the tag of v.
func (v Value) Kind() Kind { return v.kind }

// IsNone reports whether v is the zero Value.
func (v Value) IsNone() bool { return v.kind == KindNone }

// IsNumber reports whether v holds a number.
func (v Value) IsNumber() bool { return v.kind == KindNumber }

// Float returns the number held by v. ok is false for non-numeric values.
func (v Value) Float() (f float64, ok bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.num, true
}

// Str returns the string held by v. ok is false for non-string values.
func (v Value) Str() (s string, ok bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.str, true
}

// Truth returns the boolean held by v. ok is false for non-boolean values.
func (v Value) Truth() (b bool, ok bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// Any returns the opaque payload of v, or nil.
func (v Value) Any() any {
	if v.kind != KindOpaque {
		return nil
	}
	return v.opaque
}

// Equal reports whether a and b hold the same tag and payload. Opaque
// values compare by identity of the interface value and never panic.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNumber:
		return v.num == o.num
	case KindString:
		return v.str == o.str
	case KindBool:
		return v.b == o.b
	case KindOpaque:
		return sameOpaque(v.opaque, o.opaque)
	default:
		return true
	}
}

func sameOpaque(a, b any) (same bool) {
	defer func() {
		if recover() != nil {
			same = false
		}
	}()
	return a == b
}

func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case KindString:
		return strconv.Quote(v.str)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindOpaque:
		return fmt.Sprintf("%v", v.opaque)
	default:
		return "<none>"
	}
}

// Clone returns a shallow copy of p.
func (p Props) Clone() Props {
	out := make(Props, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}
