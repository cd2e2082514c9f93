package tween

import (
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"
)

// Timeline plays a group of tweens and timelines under one position. Its
// duration is that of its longest child, counting the child's loops.
type Timeline struct {
	Playback

	tweens  []Animator
	members mapset.Set[*Playback]
}

func newTimeline(s *Scheduler, opts *Options, children []Animator) *Timeline {
	tl := &Timeline{members: mapset.NewThreadUnsafeSet[*Playback]()}
	tl.setup(s, nil, tl, opts)
	tl.AddTween(children...)
	tl.start(opts)
	return tl
}

// AddTween adds children to the timeline. Each child is paused and from
// then on driven only by the timeline.
func (tl *Timeline) AddTween(children ...Animator) *Timeline {
	for _, child := range children {
		pb := child.playback()
		if pb == &tl.Playback || tl.members.Contains(pb) {
			continue
		}
		if pb.parent != nil {
			pb.parent.RemoveTween(child)
		}
		pb.SetPaused(true)
		pb.parent = tl
		tl.members.Add(pb)
		tl.tweens = append(tl.tweens, child)

		if d := childDuration(pb); d > tl.duration {
			tl.duration = d
		}
		if tl.positioned {
			pb.SetPosition(tl.position, true, false)
		}
	}
	return tl
}

// RemoveTween detaches children. It returns false if any was not a member.
func (tl *Timeline) RemoveTween(children ...Animator) bool {
	all := true
	for _, child := range children {
		pb := child.playback()
		if !tl.members.Contains(pb) {
			all = false
			continue
		}
		tl.members.Remove(pb)
		for i, c := range tl.tweens {
			if c.playback() == pb {
				tl.tweens = append(tl.tweens[:i], tl.tweens[i+1:]...)
				break
			}
		}
		pb.parent = nil
	}
	tl.UpdateDuration()
	return all
}

// Tweens returns the children in the order they were added.
func (tl *Timeline) Tweens() []Animator {
	out := make([]Animator, len(tl.tweens))
	copy(out, tl.tweens)
	return out
}

// UpdateDuration recomputes the duration from the children.
func (tl *Timeline) UpdateDuration() {
	d := 0.0
	for _, child := range tl.tweens {
		if cd := childDuration(child.playback()); cd > d {
			d = cd
		}
	}
	tl.duration = d
	if tl.parent != nil {
		tl.parent.UpdateDuration()
	}
}

// Label names the current end of the timeline.
func (tl *Timeline) Label(name string) *Timeline {
	tl.AddLabel(name, tl.duration)
	return tl
}

// Clone always panics.
func (tl *Timeline) Clone() *Timeline {
	panic(&Error{Op: "timeline.Clone", Kind: KindInvalidOperation, Err: ErrNotCloneable})
}

func (tl *Timeline) String() string {
	return fmt.Sprintf("Timeline{tweens=%d %s}", len(tl.tweens), tl.Playback.String())
}

func childDuration(pb *Playback) float64 {
	d := pb.duration
	if pb.loop > 0 {
		d *= float64(pb.loop + 1)
	}
	return d
}

func (tl *Timeline) hasActions() bool {
	return len(tl.tweens) > 0
}

// updatePosition positions every child without running their actions; the
// actions run afterwards through runActionsRange.
func (tl *Timeline) updatePosition(jump, end bool) {
	t := tl.position
	for _, child := range tl.tweens {
		child.playback().SetPosition(t, true, jump)
	}
}

func (tl *Timeline) runActionsRange(startPos, endPos float64, jump, includeStart bool) bool {
	t, raw := tl.position, tl.rawPosition
	for _, child := range tl.Tweens() {
		child.playback().runActions(startPos, endPos, jump, includeStart)
		if t != tl.position || raw != tl.rawPosition {
			return true
		}
	}
	return false
}
