package tween

import (
	"sort"
	"strings"
)

// Target is an object whose properties are animated.
//
// Targets are used as map keys by the Scheduler to count active tweens, so
// implementations must be comparable. Pointer receivers are the usual choice.
type Target interface {
	Get(prop string) (Value, bool)
	Set(prop string, v Value)
}

// Object is a Target backed by a property map.
type Object struct {
	props Props
}

// NewObject returns an Object holding a copy of props.
func NewObject(props Props) *Object {
	o := &Object{props: make(Props, len(props))}
	for k, v := range props {
		o.props[k] = v
	}
	return o
}

// Get returns the named property.
func (o *Object) Get(prop string) (Value, bool) {
	v, ok := o.props[prop]
	return v, ok
}

// Set assigns the named property.
func (o *Object) Set(prop string, v Value) {
	o.props[prop] = v
}

// Float returns the named property as a number, or 0.
func (o *Object) Float(prop string) float64 {
	f, _ := o.props[prop].Float()
	return f
}

// Props returns a copy of the current properties.
func (o *Object) Props() Props {
	return o.props.Clone()
}

func (o *Object) String() string {
	keys := make([]string, 0, len(o.props))
	for k := range o.props {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString("{")
	for i, k := range keys {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(k)
		sb.WriteString(": ")
		sb.WriteString(o.props[k].String())
	}
	sb.WriteString("}")
	return sb.String()
}
