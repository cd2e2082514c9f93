package tween

// ActionFunc is invoked when the playhead crosses an Action.
type ActionFunc func(scope Target, params ...any)

// Action is a zero-duration callback at a position on a tween's timeline.
type Action struct {
	prev, next *Action

	// T is the position of the action.
	T      float64
	Scope  Target
	Func   ActionFunc
	Params []any
}

// Prev returns the action before a.
func (a *Action) Prev() *Action { return a.prev }

// Next returns the action after a.
func (a *Action) Next() *Action { return a.next }

func (a *Action) run() {
	a.Func(a.Scope, a.Params...)
}
