package tween

import (
	"errors"
	"fmt"
)

// ErrorKind identifies the category of an Error.
type ErrorKind int

const (
	// KindInvalidOperation indicates misuse of the API, such as cloning a tween.
	KindInvalidOperation ErrorKind = iota
	// KindInvalidInput indicates malformed step data found while appending a step.
	KindInvalidInput
	// KindUnitMismatch indicates a plugin could not interpolate between two values
	// and fell back to the boundary value.
	KindUnitMismatch
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidOperation:
		return "invalid operation"
	case KindInvalidInput:
		return "invalid input"
	case KindUnitMismatch:
		return "unit mismatch"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

var (
	ErrNotCloneable  = errors.New("instance cannot be cloned")
	ErrUnknownLabel  = errors.New("unknown label")
	ErrMalformedPath = errors.New("malformed guide path")
	ErrUnitMismatch  = errors.New("mismatched units")
)

// Error is a structured error raised by the tween core or a plugin.
type Error struct {
	// Op is the operation that failed (e.g., "tween.To").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Prop is the property involved, if any.
	Prop string
	// Err is the underlying error.
	Err error
}

func (e *Error) Error() string {
	if e.Prop != "" {
		return fmt.Sprintf("%s [%s] prop=%s: %v", e.Op, e.Kind, e.Prop, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var te *Error
	return errors.As(err, &te) && te.Kind == kind
}
