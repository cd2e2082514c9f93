package tween

// Step is a duration-bearing segment of a Tween. Props holds the property
// values at the end of the step; the values at its start are the previous
// step's Props.
//
// Steps created by Wait share the Props map of the step before them. Every
// other step owns a clone, so plugins may write to Props of the step they are
// handed in Step without touching earlier steps.
type Step struct {
	prev, next *Step
	shared     bool

	// T is the start position of the step on the tween's timeline.
	T float64
	// D is the duration of the step.
	D float64
	// Props holds the end values of the step.
	Props Props
	// Ease shapes the ratio through this step; nil means linear.
	Ease EaseFunc
	// Passive steps never write to the target.
	Passive bool
	// Index is the position of the step in the list, starting at 0 for the head.
	Index int
}

// Prev returns the step before s, or nil for the head step.
func (s *Step) Prev() *Step { return s.prev }

// Next returns the step after s, or nil for the tail.
func (s *Step) Next() *Step { return s.next }

// End returns the position at which the step ends.
func (s *Step) End() float64 { return s.T + s.D }

// IsWait reports whether s holds no property changes of its own.
func (s *Step) IsWait() bool { return s.shared }
