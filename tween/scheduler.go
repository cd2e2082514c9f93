package tween

// Scheduler owns the list of active tweens and timelines and advances each of
// them once per Tick. It is not safe for concurrent use: create, tick and
// pause instances from one goroutine, typically the frame loop.
//
// Active instances form an intrusive doubly linked list, so pausing is O(1).
type Scheduler struct {
	head, tail *Playback
	// cursor is the next instance Tick will visit.
	cursor  *Playback
	ticking bool
	tickID  uint64

	counts  map[Target]int
	active  int
	plugins []Plugin
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{counts: make(map[Target]int)}
}

// Get creates a tween for target. Unless opts.Paused is set it is active at once.
func (s *Scheduler) Get(target Target, opts *Options) *Tween {
	return newTween(s, target, opts)
}

// NewTimeline creates a timeline holding children.
func (s *Scheduler) NewTimeline(opts *Options, children ...Animator) *Timeline {
	return newTimeline(s, opts, children)
}

// InstallPlugin registers p for every tween created by s, ordered by
// priority. props is passed to p.Install.
func (s *Scheduler) InstallPlugin(p Plugin, props Props) {
	for _, installed := range s.plugins {
		if installed.ID() == p.ID() {
			return
		}
	}
	p.Install(props)
	s.plugins = insertByPriority(s.plugins, p)
}

// Plugins returns the installed plugins in ascending priority.
func (s *Scheduler) Plugins() []Plugin {
	out := make([]Plugin, len(s.plugins))
	copy(out, s.plugins)
	return out
}

// Tick advances every active instance by delta, or by 1 for instances using
// ticks. While paused is true only instances that ignore the global pause
// advance. Instances activated during the tick wait for the next one.
func (s *Scheduler) Tick(delta float64, paused bool) {
	s.tickID++
	s.ticking = true
	defer func() {
		s.ticking = false
		s.cursor = nil
	}()

	for pb := s.head; pb != nil; pb = s.cursor {
		s.cursor = pb.next
		if pb.linkedTick == s.tickID {
			continue
		}
		if paused && !pb.ignoreGlobalPause {
			continue
		}
		d := delta
		if pb.useTicks {
			d = 1
		}
		pb.Advance(d)
	}
}

// RemoveTweens pauses every active tween of target.
func (s *Scheduler) RemoveTweens(target Target) {
	if s.counts[target] == 0 {
		return
	}
	for pb := s.head; pb != nil; {
		next := pb.next
		if pb.target == target {
			s.register(pb, true)
		}
		pb = next
	}
	delete(s.counts, target)
}

// RemoveAllTweens pauses every active instance.
func (s *Scheduler) RemoveAllTweens() {
	for pb := s.head; pb != nil; {
		next := pb.next
		pb.paused = true
		pb.prev, pb.next, pb.linked = nil, nil, false
		pb = next
	}
	s.head, s.tail, s.cursor = nil, nil, nil
	s.active = 0
	clear(s.counts)
}

// HasActiveTweens reports whether target has an active tween. A nil target
// asks whether anything is active.
func (s *Scheduler) HasActiveTweens(target Target) bool {
	if target == nil {
		return s.head != nil
	}
	return s.counts[target] > 0
}

// ActiveCount returns the number of active instances.
func (s *Scheduler) ActiveCount() int {
	return s.active
}

func (s *Scheduler) register(pb *Playback, paused bool) {
	switch {
	case !paused && pb.paused:
		if pb.target != nil {
			s.counts[pb.target]++
		}
		s.link(pb)
	case paused && !pb.paused:
		if pb.linked {
			s.unlink(pb)
		}
		if pb.target != nil && s.counts[pb.target] > 0 {
			s.counts[pb.target]--
			if s.counts[pb.target] == 0 {
				delete(s.counts, pb.target)
			}
		}
	}
	pb.paused = paused
}

func (s *Scheduler) link(pb *Playback) {
	pb.prev, pb.next = s.tail, nil
	if s.tail != nil {
		s.tail.next = pb
	} else {
		s.head = pb
	}
	s.tail = pb
	pb.linked = true
	if s.ticking {
		pb.linkedTick = s.tickID
	}
	s.active++
}

func (s *Scheduler) unlink(pb *Playback) {
	if s.cursor == pb {
		s.cursor = pb.next
	}
	if pb.next != nil {
		pb.next.prev = pb.prev
	} else {
		s.tail = pb.prev
	}
	if pb.prev != nil {
		pb.prev.next = pb.next
	} else {
		s.head = pb.next
	}
	pb.prev, pb.next, pb.linked = nil, nil, false
	s.active--
}
