package tween

import (
	"fmt"
	"math"
	"sort"
)

// driver is implemented by Tween and Timeline to evaluate a resolved position.
type driver interface {
	// updatePosition applies the current position to the target or children.
	updatePosition(jump, end bool)
	// runActionsRange fires actions in the local range and reports whether an
	// action moved the playhead.
	runActionsRange(start, end float64, jump, includeStart bool) bool
	hasActions() bool
}

// Animator is anything a Timeline can hold: a Tween or another Timeline.
type Animator interface {
	playback() *Playback
}

// Options configures a new Tween or Timeline. A nil *Options is valid and
// gives a playing, non-looping instance.
type Options struct {
	// Loop is the number of extra repeats. -1 loops forever.
	Loop int
	// Reversed plays the instance backwards.
	Reversed bool
	// Bounce reverses direction on every odd loop.
	Bounce bool
	// UseTicks advances by 1 per scheduler tick instead of by the tick delta.
	UseTicks bool
	// IgnoreGlobalPause keeps the instance running while the scheduler tick
	// reports a global pause.
	IgnoreGlobalPause bool
	// TimeScale multiplies every advance. Zero means 1.
	TimeScale float64
	// Paused creates the instance without registering it with the scheduler.
	Paused bool
	// Position, if set, seeks to the position once the instance is created.
	Position *float64
	// Override removes all other tweens of the same target first.
	Override bool
	// PluginData seeds a tween's plugin data.
	PluginData map[string]any
	// Labels seeds the named positions.
	Labels map[string]float64
	// OnChange and OnComplete are registered as listeners.
	OnChange   func()
	OnComplete func()
}

// At returns a pointer to pos, for Options.Position.
func At(pos float64) *float64 { return &pos }

// Label is a named position.
type Label struct {
	Name     string
	Position float64
}

// Playback holds the position state machine shared by Tween and Timeline.
//
// The only independently stored time is the raw position: the total time fed
// into the instance, which may run past one loop. The normalized position is
// always derived from it using the loop count, reversal and bounce parity.
type Playback struct {
	sched  *Scheduler
	drv    driver
	target Target
	parent *Timeline

	duration          float64
	loop              int
	reversed          bool
	bounce            bool
	useTicks          bool
	ignoreGlobalPause bool
	timeScale         float64

	position    float64
	rawPosition float64
	positioned  bool
	paused      bool

	labels    map[string]float64
	labelList []Label

	listeners
	// scheduler list
	prev, next *Playback
	linked     bool
	linkedTick uint64
}

func (pb *Playback) setup(s *Scheduler, target Target, drv driver, opts *Options) {
	pb.sched = s
	pb.target = target
	pb.drv = drv
	pb.paused = true
	pb.timeScale = 1
	pb.labels = make(map[string]float64)
	if opts == nil {
		return
	}
	pb.loop = opts.Loop
	if pb.loop < -1 {
		pb.loop = -1
	}
	pb.reversed = opts.Reversed
	pb.bounce = opts.Bounce
	pb.useTicks = opts.UseTicks
	pb.ignoreGlobalPause = opts.IgnoreGlobalPause
	if opts.TimeScale != 0 {
		pb.timeScale = opts.TimeScale
	}
	for name, pos := range opts.Labels {
		pb.AddLabel(name, pos)
	}
	if opts.OnChange != nil {
		pb.AddListener(EventChange, opts.OnChange)
	}
	if opts.OnComplete != nil {
		pb.AddListener(EventComplete, opts.OnComplete)
	}
}

// start applies the Paused and Position options once the instance is built.
func (pb *Playback) start(opts *Options) {
	if opts == nil || !opts.Paused {
		pb.SetPaused(false)
	}
	if opts != nil && opts.Position != nil {
		pb.SetPosition(*opts.Position, false, false)
	}
}

func (pb *Playback) playback() *Playback { return pb }

// Target returns the animated object, or nil for a Timeline.
func (pb *Playback) Target() Target { return pb.target }

// Scheduler returns the scheduler that owns the instance.
func (pb *Playback) Scheduler() *Scheduler { return pb.sched }

// Parent returns the Timeline driving the instance, if any.
func (pb *Playback) Parent() *Timeline { return pb.parent }

// Duration returns the length of one loop.
func (pb *Playback) Duration() float64 { return pb.duration }

// Position returns the normalized position within the current loop.
func (pb *Playback) Position() float64 { return pb.position }

// RawPosition returns the total time fed into the instance.
func (pb *Playback) RawPosition() float64 {
	if !pb.positioned {
		return 0
	}
	return pb.rawPosition
}

// Loop returns the number of extra repeats, or -1 for infinite.
func (pb *Playback) Loop() int { return pb.loop }

// Reversed reports whether the instance plays backwards.
func (pb *Playback) Reversed() bool { return pb.reversed }

// Bounce reports whether odd loops play in the opposite direction.
func (pb *Playback) Bounce() bool { return pb.bounce }

// UseTicks reports whether the instance counts ticks rather than time.
func (pb *Playback) UseTicks() bool { return pb.useTicks }

// IgnoreGlobalPause reports whether the instance runs during a global pause.
func (pb *Playback) IgnoreGlobalPause() bool { return pb.ignoreGlobalPause }

// TimeScale returns the advance multiplier.
func (pb *Playback) TimeScale() float64 { return pb.timeScale }

// SetTimeScale sets the advance multiplier.
func (pb *Playback) SetTimeScale(scale float64) { pb.timeScale = scale }

// Paused reports whether the instance is stopped.
func (pb *Playback) Paused() bool { return pb.paused }

// SetPaused starts or stops the instance. A top-level instance joins the
// scheduler's active list when unpaused and leaves it when paused; a child of
// a Timeline is only ever driven by its parent.
func (pb *Playback) SetPaused(paused bool) {
	if pb.parent != nil || pb.sched == nil {
		pb.paused = paused
		return
	}
	pb.sched.register(pb, paused)
}

// Advance moves the playhead forward by delta scaled by TimeScale. It
// returns true once the instance has reached its end.
func (pb *Playback) Advance(delta float64) bool {
	return pb.advance(delta, false)
}

func (pb *Playback) advance(delta float64, ignoreActions bool) bool {
	return pb.SetPosition(pb.RawPosition()+delta*pb.timeScale, ignoreActions, false)
}

// SetPosition moves the playhead to a raw position, evaluates the target at
// the resulting normalized position and fires the actions crossed on the way.
// A jump fires only the actions at the landing position. It returns true if
// the instance is complete.
func (pb *Playback) SetPosition(rawPosition float64, ignoreActions, jump bool) bool {
	d, loopCount := pb.duration, pb.loop
	prevRaw, wasPositioned := pb.rawPosition, pb.positioned
	if !wasPositioned {
		prevRaw = 0
	}
	if rawPosition < 0 || math.IsNaN(rawPosition) {
		rawPosition = 0
	}

	loop, t, end := 0, 0.0, false
	if d == 0 {
		if wasPositioned {
			if !pb.paused {
				pb.SetPaused(true)
				pb.emit(EventComplete)
			}
			return true
		}
	} else {
		loop = int(math.Floor(rawPosition / d))
		t = rawPosition - float64(loop)*d
		end = loopCount != -1 && rawPosition >= float64(loopCount)*d+d
		if end {
			t, loop = d, loopCount
			rawPosition = float64(loopCount)*d + d
		}
		if wasPositioned && rawPosition == prevRaw {
			return end
		}
		if pb.reversed != (pb.bounce && loop%2 == 1) {
			t = d - t
		}
	}

	pb.position = t
	pb.rawPosition = rawPosition
	pb.positioned = true
	pb.drv.updatePosition(jump, end || d == 0)
	if end {
		pb.SetPaused(true)
	}

	if !ignoreActions {
		includeStart := !jump && !wasPositioned
		if pb.runActions(prevRaw, rawPosition, jump, includeStart) {
			// An action moved the playhead; that call already reported its own state.
			return pb.atEnd()
		}
	}

	pb.emit(EventChange)
	if end {
		pb.emit(EventComplete)
	}
	return end
}

func (pb *Playback) atEnd() bool {
	if pb.duration == 0 {
		return pb.positioned && pb.paused
	}
	return pb.loop != -1 && pb.rawPosition >= float64(pb.loop+1)*pb.duration
}

// runActions replays every action crossed between two raw positions, one
// loop iteration at a time. It returns true if an action redirected the
// playhead, in which case the rest of the replay is abandoned.
func (pb *Playback) runActions(startRaw, endRaw float64, jump, includeStart bool) bool {
	if !pb.drv.hasActions() {
		return false
	}
	d, reversed, bounce, loopCount := pb.duration, pb.reversed, pb.bounce, pb.loop

	var loop0, loop1 int
	var t0, t1 float64
	if d == 0 {
		reversed, bounce = false, false
	} else {
		loop0 = int(startRaw / d)
		loop1 = int(endRaw / d)
		t0 = startRaw - float64(loop0)*d
		t1 = endRaw - float64(loop1)*d
	}
	if loopCount != -1 && loop1 > loopCount {
		t1, loop1 = d, loopCount
	}
	if loopCount != -1 && loop0 > loopCount {
		t0, loop0 = d, loopCount
	}

	if jump {
		if reversed != (bounce && loop1%2 == 1) {
			t1 = d - t1
		}
		return pb.drv.runActionsRange(t1, t1, jump, includeStart)
	}
	if loop0 == loop1 && t0 == t1 && !includeStart {
		return false
	}

	forward := startRaw <= endRaw
	for loop := loop0; ; {
		rev := reversed != (bounce && loop%2 == 1)
		start, end := t0, t1
		if loop != loop0 {
			start = d
			if forward {
				start = 0
			}
		}
		if loop != loop1 {
			end = 0
			if forward {
				end = d
			}
		}
		if rev {
			start, end = d-start, d-end
		}

		// A later loop starts on a fresh position unless it bounced, in which
		// case its start is where the previous loop ended and already fired.
		include := includeStart || (loop != loop0 && !bounce)
		if !(bounce && loop != loop0 && start == end) {
			if pb.drv.runActionsRange(start, end, jump, include) {
				return true
			}
		}
		includeStart = false

		if forward {
			loop++
			if loop > loop1 {
				break
			}
		} else {
			loop--
			if loop < loop1 {
				break
			}
		}
	}
	return false
}

// GotoAndPlay unpauses the instance and jumps to pos.
func (pb *Playback) GotoAndPlay(pos float64) {
	pb.SetPaused(false)
	pb.SetPosition(pos, false, true)
}

// GotoAndStop pauses the instance and jumps to pos.
func (pb *Playback) GotoAndStop(pos float64) {
	pb.SetPaused(true)
	pb.SetPosition(pos, false, true)
}

// GotoAndPlayLabel is GotoAndPlay with a named position.
func (pb *Playback) GotoAndPlayLabel(label string) error {
	pos, err := pb.Resolve(label)
	if err != nil {
		return err
	}
	pb.GotoAndPlay(pos)
	return nil
}

// GotoAndStopLabel is GotoAndStop with a named position.
func (pb *Playback) GotoAndStopLabel(label string) error {
	pos, err := pb.Resolve(label)
	if err != nil {
		return err
	}
	pb.GotoAndStop(pos)
	return nil
}

// Resolve returns the position of a label.
func (pb *Playback) Resolve(label string) (float64, error) {
	pos, ok := pb.labels[label]
	if !ok {
		return 0, &Error{Op: "tween.Resolve", Kind: KindInvalidInput, Prop: label, Err: ErrUnknownLabel}
	}
	return pos, nil
}

// AddLabel names a position. Re-adding a name moves it.
func (pb *Playback) AddLabel(name string, pos float64) {
	if _, ok := pb.labels[name]; ok {
		for i, l := range pb.labelList {
			if l.Name == name {
				pb.labelList = append(pb.labelList[:i], pb.labelList[i+1:]...)
				break
			}
		}
	}
	pb.labels[name] = pos
	i := sort.Search(len(pb.labelList), func(i int) bool { return pb.labelList[i].Position > pos })
	pb.labelList = append(pb.labelList, Label{})
	copy(pb.labelList[i+1:], pb.labelList[i:])
	pb.labelList[i] = Label{Name: name, Position: pos}
}

// Labels returns the labels sorted by position.
func (pb *Playback) Labels() []Label {
	out := make([]Label, len(pb.labelList))
	copy(out, pb.labelList)
	return out
}

// CurrentLabel returns the last label at or before the current position.
func (pb *Playback) CurrentLabel() string {
	name := ""
	for _, l := range pb.labelList {
		if l.Position > pb.position {
			break
		}
		name = l.Name
	}
	return name
}

func (pb *Playback) String() string {
	return fmt.Sprintf("duration=%g position=%g raw=%g loop=%d paused=%t",
		pb.duration, pb.position, pb.RawPosition(), pb.loop, pb.paused)
}
