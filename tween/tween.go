package tween

import (
	"fmt"
	"log"
	"sort"

	mapset "github.com/deckarep/golang-set/v2"
)

// Tween animates the properties of one target through a chain of steps, and
// fires actions placed along the same timeline.
//
// Build it with chained calls:
//
//	ease, _ := tween.Ease("outQuad")
//	s.Get(obj, nil).Wait(100).To(tween.Props{"x": tween.Number(50)}, 500, ease).Call(done)
type Tween struct {
	Playback

	stepHead, stepTail     *Step
	actionHead, actionTail *Action

	propNames  []string
	plugins    []Plugin
	pluginIDs  mapset.Set[string]
	pluginData map[string]any
	injected   Props

	passive      bool
	stepPosition float64

	err        error
	mismatches []*Error
	reported   mapset.Set[string]
}

func newTween(s *Scheduler, target Target, opts *Options) *Tween {
	tw := &Tween{
		pluginIDs: mapset.NewThreadUnsafeSet[string](),
		reported:  mapset.NewThreadUnsafeSet[string](),
	}
	tw.setup(s, target, tw, opts)
	tw.stepHead = &Step{Props: Props{}}
	tw.stepTail = tw.stepHead
	tw.pluginData = make(map[string]any)
	if opts != nil {
		for k, v := range opts.PluginData {
			tw.pluginData[k] = v
		}
		if opts.Override && target != nil {
			s.RemoveTweens(target)
		}
	}
	tw.start(opts)
	return tw
}

// Wait adds a step that holds the current values for d.
func (tw *Tween) Wait(d float64) *Tween {
	return tw.wait(d, false)
}

// WaitPassive is Wait, but the target is not written to during the step, so
// other tweens may animate the same properties meanwhile.
func (tw *Tween) WaitPassive(d float64) *Tween {
	return tw.wait(d, true)
}

func (tw *Tween) wait(d float64, passive bool) *Tween {
	if tw.err != nil || !(d > 0) {
		return tw
	}
	step := tw.addStep(d, tw.stepTail.Props, nil, passive)
	step.shared = true
	return tw
}

// To adds a step that animates props from their current values over d.
func (tw *Tween) To(props Props, d float64, ease EaseFunc) *Tween {
	if tw.err != nil {
		return tw
	}
	if !(d > 0) {
		d = 0
	}
	step := tw.addStep(d, nil, ease, false)
	tw.appendProps(props, step, true)
	return tw
}

// Call adds an action that calls fn with the tween.
func (tw *Tween) Call(fn func(*Tween)) *Tween {
	return tw.CallWith(func(Target, ...any) { fn(tw) }, nil, tw.target)
}

// CallWith adds an action that calls fn with scope and params. A nil scope
// means the tween's target.
func (tw *Tween) CallWith(fn ActionFunc, params []any, scope Target) *Tween {
	if scope == nil {
		scope = tw.target
	}
	return tw.addAction(scope, fn, params)
}

// Set adds an action that assigns props to target, or to the tween's target
// when target is nil.
func (tw *Tween) Set(props Props, target Target) *Tween {
	values := props.Clone()
	return tw.CallWith(func(scope Target, _ ...any) {
		for _, name := range sortedNames(values) {
			scope.Set(name, values[name])
		}
	}, nil, target)
}

// Label names the current end of the tween.
func (tw *Tween) Label(name string) *Tween {
	tw.AddLabel(name, tw.duration)
	return tw
}

// AddPlugin makes p receive Step and Change calls for this tween.
func (tw *Tween) AddPlugin(p Plugin) {
	if tw.pluginIDs.Contains(p.ID()) {
		return
	}
	tw.pluginIDs.Add(p.ID())
	tw.plugins = insertByPriority(tw.plugins, p)
}

// HasPlugin reports whether a plugin with the given id was added.
func (tw *Tween) HasPlugin(id string) bool {
	return tw.pluginIDs.Contains(id)
}

// PluginData returns the tween's plugin scratch space.
func (tw *Tween) PluginData() map[string]any {
	return tw.pluginData
}

// InjectProp queues a property to be appended to the step currently being
// processed, once every plugin's Step has run.
func (tw *Tween) InjectProp(name string, v Value) {
	if tw.injected == nil {
		tw.injected = make(Props)
	}
	tw.injected[name] = v
}

// RecordMismatch stores a unit mismatch reported by a plugin. Each property
// and step pair is logged once.
func (tw *Tween) RecordMismatch(step *Step, prop string, err error) {
	key := fmt.Sprintf("%d/%s", step.Index, prop)
	if !tw.reported.Add(key) {
		return
	}
	e := &Error{Op: "tween.Change", Kind: KindUnitMismatch, Prop: prop, Err: err}
	tw.mismatches = append(tw.mismatches, e)
	log.Printf("step %d: %v", step.Index, e)
}

// Mismatches returns the unit mismatches recorded so far.
func (tw *Tween) Mismatches() []*Error {
	return tw.mismatches
}

// Err returns the error that stopped the tween accepting steps, if any.
func (tw *Tween) Err() error {
	return tw.err
}

// Steps returns the head step. It holds the initial values and has no duration.
func (tw *Tween) Steps() *Step { return tw.stepHead }

// Actions returns the first action, or nil.
func (tw *Tween) Actions() *Action { return tw.actionHead }

// Passive reports whether the last update landed in a passive step.
func (tw *Tween) Passive() bool { return tw.passive }

// StepPosition returns the time into the step at the current position.
func (tw *Tween) StepPosition() float64 { return tw.stepPosition }

// Clone always panics: a tween shares its target and scheduler registration
// and cannot be duplicated.
func (tw *Tween) Clone() *Tween {
	panic(&Error{Op: "tween.Clone", Kind: KindInvalidOperation, Err: ErrNotCloneable})
}

func (tw *Tween) String() string {
	return fmt.Sprintf("Tween{target=%v %s}", tw.target, tw.Playback.String())
}

func (tw *Tween) addStep(d float64, props Props, ease EaseFunc, passive bool) *Step {
	step := &Step{
		prev:    tw.stepTail,
		T:       tw.duration,
		D:       d,
		Props:   props,
		Ease:    ease,
		Passive: passive,
		Index:   tw.stepTail.Index + 1,
	}
	tw.stepTail.next = step
	tw.stepTail = step
	tw.duration += d
	if tw.parent != nil {
		tw.parent.UpdateDuration()
	}
	return step
}

func (tw *Tween) addAction(scope Target, fn ActionFunc, params []any) *Tween {
	if tw.err != nil {
		return tw
	}
	a := &Action{prev: tw.actionTail, T: tw.duration, Scope: scope, Func: fn, Params: params}
	if tw.actionTail != nil {
		tw.actionTail.next = a
	} else {
		tw.actionHead = a
	}
	tw.actionTail = a
	return tw
}

func (tw *Tween) appendProps(props Props, step *Step, stepPlugins bool) {
	initProps := tw.stepHead.Props
	oldStep := step.prev
	oldProps := oldStep.Props
	if step.Props == nil {
		step.Props = oldProps.Clone()
	}

	clean := make(Props, len(props))
	for _, n := range sortedNames(props) {
		v := props[n]
		clean[n] = v
		step.Props[n] = v
		if _, seen := initProps[n]; seen {
			continue
		}

		current := Value{}
		if tw.target != nil {
			current, _ = tw.target.Get(n)
		}
		initValue, ignored := tw.initProp(n, current)
		if ignored {
			delete(step.Props, n)
			delete(clean, n)
			continue
		}
		oldProps[n] = initValue
		tw.propNames = append(tw.propNames, n)
	}

	// Fill the gap in earlier steps that never named these props.
	for n := range clean {
		for o := oldStep; o.prev != nil; o = o.prev {
			if o.shared {
				continue
			}
			if _, ok := o.prev.Props[n]; ok {
				break
			}
			o.prev.Props[n] = oldProps[n]
		}
	}

	if stepPlugins {
		for i := len(tw.plugins) - 1; i >= 0; i-- {
			if err := tw.plugins[i].Step(tw, step, clean); err != nil {
				tw.fail("tween.To", err)
				return
			}
		}
	}

	if inject := tw.injected; inject != nil {
		tw.injected = nil
		tw.appendProps(inject, step, false)
	}
}

// initProp asks the installed plugins, highest priority first, for the
// starting value of a newly named property.
func (tw *Tween) initProp(name string, current Value) (Value, bool) {
	if tw.sched == nil {
		return current, false
	}
	plugins := tw.sched.plugins
	for i := len(plugins) - 1; i >= 0; i-- {
		r := plugins[i].Init(tw, name, current)
		if r.IsIgnore() {
			return Value{}, true
		}
		if !r.IsPass() {
			return r.Value(), false
		}
	}
	return current, false
}

func (tw *Tween) fail(op string, err error) {
	if _, ok := err.(*Error); !ok {
		err = &Error{Op: op, Kind: KindInvalidInput, Err: err}
	}
	tw.err = err
	log.Printf("tween rejected step: %v", err)
}

func (tw *Tween) hasActions() bool {
	return tw.actionHead != nil
}

func (tw *Tween) updatePosition(jump, end bool) {
	step := tw.stepHead.next
	t, d := tw.position, tw.duration
	if tw.target != nil && step != nil {
		for step.next != nil && step.next.T <= t {
			step = step.next
		}
		var ratio float64
		switch {
		case end && d == 0:
			ratio = 1
		case end:
			ratio = t / d
		case step.D == 0:
			ratio = 1
		default:
			ratio = (t - step.T) / step.D
		}
		tw.updateTargetProps(step, ratio, end)
	}
	if step != nil {
		tw.stepPosition = t - step.T
	} else {
		tw.stepPosition = 0
	}
}

func (tw *Tween) updateTargetProps(step *Step, ratio float64, end bool) {
	tw.passive = step.Passive
	if tw.passive {
		return
	}
	if step.Ease != nil {
		ratio = step.Ease(ratio)
	}
	p0, p1 := step.prev.Props, step.Props

props:
	for _, n := range tw.propNames {
		v0, ok := p0[n]
		if !ok {
			continue
		}
		v1 := p1[n]

		var v Value
		f0, num0 := v0.Float()
		f1, num1 := v1.Float()
		switch {
		case num0 && num1 && f0 != f1:
			v = Number(f0 + (f1-f0)*ratio)
		case ratio >= 1:
			v = v1
		default:
			v = v0
		}

		for _, p := range tw.plugins {
			r := p.Change(tw, step, n, v, ratio, end)
			if r.IsIgnore() {
				continue props
			}
			if !r.IsPass() {
				v = r.Value()
			}
		}
		if v.IsNone() {
			continue
		}
		tw.target.Set(n, v)
	}
}

func (tw *Tween) runActionsRange(startPos, endPos float64, jump, includeStart bool) bool {
	rev := startPos > endPos
	lo, hi := startPos, endPos
	if rev {
		lo, hi = endPos, startPos
	}
	action := tw.actionHead
	if rev {
		action = tw.actionTail
	}

	t, raw := tw.position, tw.rawPosition
	for action != nil {
		pos := action.T
		if pos == endPos || (pos > lo && pos < hi) || (includeStart && pos == startPos) {
			action.run()
			if t != tw.position || raw != tw.rawPosition {
				return true
			}
		}
		if rev {
			action = action.prev
		} else {
			action = action.next
		}
	}
	return false
}

func sortedNames(props Props) []string {
	names := make([]string, 0, len(props))
	for n := range props {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

