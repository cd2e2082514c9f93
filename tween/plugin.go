package tween

type resultKind int

const (
	resultPass resultKind = iota
	resultUse
	resultIgnore
)

// Result is what a plugin returns from Init and Change: leave the value
// alone, replace it, or take the property away from the tween.
type Result struct {
	kind  resultKind
	value Value
}

// Pass leaves the value unchanged.
func Pass() Result { return Result{} }

// Use replaces the value with v.
func Use(v Value) Result { return Result{kind: resultUse, value: v} }

// Ignore removes the property. From Init it is never tweened; from Change it
// is not written to the target on this update.
func Ignore() Result { return Result{kind: resultIgnore} }

// IsPass reports whether r leaves the value unchanged.
func (r Result) IsPass() bool { return r.kind == resultPass }

// IsIgnore reports whether r suppresses the property.
func (r Result) IsIgnore() bool { return r.kind == resultIgnore }

// Value returns the replacement value of a Use result.
func (r Result) Value() Value { return r.value }

// Plugin intercepts property initialization and per-update values.
//
// Plugins are installed on a Scheduler, which consults them in descending
// priority when a tween names a property for the first time. A plugin that
// wants Step and Change calls for a tween adds itself with Tween.AddPlugin,
// usually from Init; those are consulted in ascending priority.
type Plugin interface {
	// ID names the plugin. It keys Tween.AddPlugin and plugin data.
	ID() string
	// Priority orders the plugin relative to others.
	Priority() float64
	// Install receives the props passed to Scheduler.InstallPlugin.
	Install(props Props)
	// Init is called the first time tw names prop. value is the target's
	// current value, or the zero Value if the target has none.
	Init(tw *Tween, prop string, value Value) Result
	// Step is called after a step is appended with the props it changed.
	// It may rewrite step.Props or call tw.InjectProp. A returned error
	// stops the tween from accepting further steps.
	Step(tw *Tween, step *Step, props Props) error
	// Change may replace or suppress the value computed for prop.
	Change(tw *Tween, step *Step, prop string, value Value, ratio float64, end bool) Result
}

// BasePlugin implements every Plugin method as a no-op so plugins can embed
// it and override what they need.
type BasePlugin struct{}

func (BasePlugin) Install(Props) {}

func (BasePlugin) Init(*Tween, string, Value) Result { return Pass() }

func (BasePlugin) Step(*Tween, *Step, Props) error { return nil }

func (BasePlugin) Change(*Tween, *Step, string, Value, float64, bool) Result { return Pass() }

// insertByPriority returns list with p inserted after every plugin of lower
// or equal priority.
func insertByPriority(list []Plugin, p Plugin) []Plugin {
	i := 0
	for ; i < len(list); i++ {
		if p.Priority() < list[i].Priority() {
			break
		}
	}
	list = append(list, nil)
	copy(list[i+1:], list[i:])
	list[i] = p
	return list
}
