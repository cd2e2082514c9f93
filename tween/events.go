package tween

import "fmt"

// Event names something a Tween or Timeline reports to listeners.
type Event int

const (
	// EventChange fires after every position update.
	EventChange Event = iota
	// EventComplete fires when a non-looping instance reaches its end.
	EventComplete
)

// String returns a human-readable representation of the event.
func (e Event) String() string {
	switch e {
	case EventChange:
		return "change"
	case EventComplete:
		return "complete"
	default:
		return fmt.Sprintf("Event(%d)", int(e))
	}
}

type listener struct {
	id int
	fn func()
}

type listeners struct {
	byEvent map[Event][]listener
	nextID  int
}

// AddListener registers fn for ev. Returns an unsubscribe function.
func (l *listeners) AddListener(ev Event, fn func()) func() {
	if l.byEvent == nil {
		l.byEvent = make(map[Event][]listener)
	}
	id := l.nextID
	l.nextID++
	l.byEvent[ev] = append(l.byEvent[ev], listener{id: id, fn: fn})
	return func() {
		list := l.byEvent[ev]
		for i, ln := range list {
			if ln.id == id {
				l.byEvent[ev] = append(list[:i:i], list[i+1:]...)
				return
			}
		}
	}
}

// HasListener reports whether anything listens for ev.
func (l *listeners) HasListener(ev Event) bool {
	return len(l.byEvent[ev]) > 0
}

func (l *listeners) emit(ev Event) {
	list := l.byEvent[ev]
	if len(list) == 0 {
		return
	}
	// Listeners may unsubscribe while we dispatch.
	snapshot := make([]listener, len(list))
	copy(snapshot, list)
	for _, ln := range snapshot {
		ln.fn()
	}
}
