package tween

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newObj(props Props) *Object {
	return NewObject(props)
}

func TestSetPosition(t *testing.T) {
	t.Run("interpolates linearly", func(t *testing.T) {
		s := NewScheduler()
		obj := newObj(Props{"x": Number(0)})
		tw := s.Get(obj, &Options{Paused: true}).Wait(0).To(Props{"x": Number(100)}, 1000, nil)

		tw.SetPosition(250, false, false)

		assert.Equal(t, 25.0, obj.Float("x"))
		assert.Equal(t, 250.0, tw.Position())
	})

	t.Run("same position twice changes once", func(t *testing.T) {
		s := NewScheduler()
		obj := newObj(Props{"x": Number(0)})
		tw := s.Get(obj, &Options{Paused: true}).To(Props{"x": Number(100)}, 1000, nil)
		changes := 0
		tw.AddListener(EventChange, func() { changes++ })

		tw.SetPosition(400, false, false)
		tw.SetPosition(400, false, false)

		assert.Equal(t, 1, changes)
	})

	t.Run("negative positions clamp to zero", func(t *testing.T) {
		s := NewScheduler()
		obj := newObj(Props{"x": Number(10)})
		tw := s.Get(obj, &Options{Paused: true}).To(Props{"x": Number(20)}, 100, nil)

		tw.SetPosition(-50, false, false)

		assert.Equal(t, 0.0, tw.RawPosition())
		assert.Equal(t, 10.0, obj.Float("x"))
	})

	t.Run("completes and snaps to the end", func(t *testing.T) {
		s := NewScheduler()
		obj := newObj(Props{"x": Number(0)})
		tw := s.Get(obj, nil).To(Props{"x": Number(50)}, 500, nil)
		completes := 0
		tw.AddListener(EventComplete, func() { completes++ })

		done := tw.Advance(500)

		assert.True(t, done)
		assert.Equal(t, 50.0, obj.Float("x"))
		assert.True(t, tw.Paused())
		assert.False(t, s.HasActiveTweens(obj))
		assert.Equal(t, 1, completes)

		assert.True(t, tw.SetPosition(900, false, false))
		assert.Equal(t, 500.0, tw.RawPosition())
		assert.Equal(t, 1, completes)
	})

	t.Run("loops wrap the position", func(t *testing.T) {
		s := NewScheduler()
		obj := newObj(Props{"x": Number(0)})
		tw := s.Get(obj, &Options{Loop: 2, Paused: true}).To(Props{"x": Number(100)}, 100, nil)

		assert.False(t, tw.SetPosition(230, false, false))
		assert.InDelta(t, 30.0, tw.Position(), 1e-9)
		assert.InDelta(t, 30.0, obj.Float("x"), 1e-9)

		assert.True(t, tw.SetPosition(310, false, false))
		assert.Equal(t, 100.0, tw.Position())
		assert.Equal(t, 300.0, tw.RawPosition())
	})

	t.Run("bounce flips odd loops", func(t *testing.T) {
		s := NewScheduler()
		obj := newObj(Props{"x": Number(0)})
		tw := s.Get(obj, &Options{Loop: 2, Bounce: true, Paused: true}).To(Props{"x": Number(100)}, 100, nil)

		tw.SetPosition(125, false, false)
		assert.Equal(t, 75.0, tw.Position())

		tw.SetPosition(150, false, false)
		assert.Equal(t, 50.0, tw.Position())

		tw.SetPosition(225, false, false)
		assert.Equal(t, 25.0, tw.Position())

		tw.SetPosition(300, false, false)
		assert.Equal(t, 100.0, tw.Position())
	})

	t.Run("reversed plays backwards", func(t *testing.T) {
		s := NewScheduler()
		obj := newObj(Props{"x": Number(0)})
		tw := s.Get(obj, &Options{Reversed: true, Paused: true}).To(Props{"x": Number(100)}, 100, nil)

		tw.SetPosition(25, false, false)

		assert.Equal(t, 75.0, tw.Position())
		assert.Equal(t, 75.0, obj.Float("x"))
	})

	t.Run("reversed bounce cancels on odd loops", func(t *testing.T) {
		s := NewScheduler()
		obj := newObj(Props{"x": Number(0)})
		tw := s.Get(obj, &Options{Loop: -1, Reversed: true, Bounce: true, Paused: true}).
			To(Props{"x": Number(100)}, 100, nil)

		tw.SetPosition(125, false, false)

		assert.Equal(t, 25.0, tw.Position())
	})

	t.Run("zero duration lands once then completes", func(t *testing.T) {
		s := NewScheduler()
		obj := newObj(Props{"x": Number(0)})
		tw := s.Get(obj, nil).To(Props{"x": Number(5)}, 0, nil)

		assert.False(t, tw.SetPosition(0, false, false))
		assert.Equal(t, 5.0, obj.Float("x"))
		assert.False(t, tw.Paused())

		assert.True(t, tw.SetPosition(10, false, false))
		assert.True(t, tw.Paused())
	})

	t.Run("time scale multiplies advance", func(t *testing.T) {
		s := NewScheduler()
		obj := newObj(Props{"x": Number(0)})
		tw := s.Get(obj, &Options{TimeScale: 2, Paused: true}).To(Props{"x": Number(100)}, 100, nil)

		tw.Advance(10)
		assert.Equal(t, 20.0, obj.Float("x"))

		tw.SetTimeScale(0.5)
		tw.Advance(10)
		assert.Equal(t, 25.0, obj.Float("x"))
	})

	t.Run("initial position option seeks", func(t *testing.T) {
		s := NewScheduler()
		obj := newObj(Props{"x": Number(0)})
		tw := s.Get(obj, &Options{Position: At(0), Paused: true})

		assert.Equal(t, 0.0, tw.RawPosition())
		assert.True(t, tw.Paused())
	})
}

func TestActionReplay(t *testing.T) {
	t.Run("infinite loop fires once per crossing", func(t *testing.T) {
		s := NewScheduler()
		calls := 0
		tw := s.Get(newObj(nil), &Options{Loop: -1}).Wait(100).Call(func(*Tween) { calls++ })

		tw.Advance(250)

		assert.Equal(t, 2, calls)
	})

	t.Run("large delta replays every loop in order", func(t *testing.T) {
		s := NewScheduler()
		log := []string{}
		tw := s.Get(newObj(nil), &Options{Loop: 1, Paused: true}).
			Wait(10).Call(func(*Tween) { log = append(log, "a") }).
			Wait(10).Call(func(*Tween) { log = append(log, "b") }).
			Wait(10)
		require.Equal(t, 30.0, tw.Duration())

		tw.SetPosition(5, false, false)
		tw.SetPosition(65, false, false)

		assert.Equal(t, []string{"a", "b", "a", "b"}, log)
	})

	t.Run("actions at zero fire on the first advance", func(t *testing.T) {
		s := NewScheduler()
		log := []string{}
		tw := s.Get(newObj(nil), &Options{Paused: true}).
			Call(func(*Tween) { log = append(log, "start") }).
			Wait(100)

		tw.Advance(10)
		tw.Advance(10)

		assert.Equal(t, []string{"start"}, log)
	})

	t.Run("ignoreActions skips callbacks", func(t *testing.T) {
		s := NewScheduler()
		calls := 0
		tw := s.Get(newObj(nil), &Options{Paused: true}).Wait(10).Call(func(*Tween) { calls++ }).Wait(10)

		tw.SetPosition(15, true, false)

		assert.Equal(t, 0, calls)
	})

	t.Run("backwards seek replays in reverse", func(t *testing.T) {
		s := NewScheduler()
		log := []string{}
		tw := s.Get(newObj(nil), &Options{Paused: true}).
			Wait(10).Call(func(*Tween) { log = append(log, "a") }).
			Wait(10).Call(func(*Tween) { log = append(log, "b") }).
			Wait(10)

		tw.SetPosition(25, true, false)
		tw.SetPosition(5, false, false)

		assert.Equal(t, []string{"b", "a"}, log)
	})

	t.Run("jump fires only the landing position", func(t *testing.T) {
		s := NewScheduler()
		log := []string{}
		tw := s.Get(newObj(nil), &Options{Paused: true}).
			Wait(10).Call(func(*Tween) { log = append(log, "a") }).
			Wait(10).Call(func(*Tween) { log = append(log, "b") }).
			Wait(10)

		tw.GotoAndStop(20)

		assert.Equal(t, []string{"b"}, log)
		assert.True(t, tw.Paused())
	})

	t.Run("jump on a reversed tween fires at the landing position", func(t *testing.T) {
		s := NewScheduler()
		log := []string{}
		tw := s.Get(newObj(nil), &Options{Reversed: true, Paused: true}).
			Wait(30).Call(func(*Tween) { log = append(log, "at30") }).
			Wait(40).Call(func(*Tween) { log = append(log, "at70") }).
			Wait(30)

		tw.GotoAndStop(30)

		assert.Equal(t, 70.0, tw.Position())
		assert.Equal(t, []string{"at70"}, log)
	})

	t.Run("jump into a bounced loop fires at the landing position", func(t *testing.T) {
		s := NewScheduler()
		log := []string{}
		tw := s.Get(newObj(nil), &Options{Loop: 1, Bounce: true, Paused: true}).
			Wait(20).Call(func(*Tween) { log = append(log, "at20") }).
			Wait(60).Call(func(*Tween) { log = append(log, "at80") }).
			Wait(20)

		tw.GotoAndStop(180)

		assert.Equal(t, 20.0, tw.Position())
		assert.Equal(t, []string{"at20"}, log)
	})

	t.Run("bounce does not repeat the turning point", func(t *testing.T) {
		s := NewScheduler()
		calls := 0
		tw := s.Get(newObj(nil), &Options{Loop: 1, Bounce: true, Paused: true}).
			Wait(10).Call(func(*Tween) { calls++ })

		tw.SetPosition(10, false, false)
		tw.SetPosition(20, false, false)

		assert.Equal(t, 1, calls)
	})

	t.Run("redirect from an action stops the replay", func(t *testing.T) {
		s := NewScheduler()
		obj := newObj(Props{"x": Number(0)})
		reached := false
		tw := s.Get(obj, nil).
			To(Props{"x": Number(100)}, 10, nil).
			Call(func(tw *Tween) { tw.GotoAndStop(0) }).
			To(Props{"x": Number(200)}, 10, nil).
			Call(func(*Tween) { reached = true })
		changes := 0
		tw.AddListener(EventChange, func() { changes++ })

		done := tw.Advance(20)

		assert.False(t, done)
		assert.False(t, reached)
		assert.Equal(t, 0.0, tw.Position())
		assert.Equal(t, 0.0, obj.Float("x"))
		assert.True(t, tw.Paused())
		assert.Equal(t, 1, changes)
	})

	t.Run("set assigns on crossing", func(t *testing.T) {
		s := NewScheduler()
		obj := newObj(Props{"visible": Bool(false)})
		other := newObj(nil)
		tw := s.Get(obj, &Options{Paused: true}).
			Wait(10).Set(Props{"visible": Bool(true)}, nil).
			Set(Props{"name": String("lit")}, other).
			Wait(10)

		tw.SetPosition(15, false, false)

		v, _ := obj.Get("visible")
		assert.Equal(t, Bool(true), v)
		name, _ := other.Get("name")
		assert.Equal(t, String("lit"), name)
	})

	t.Run("call with params and scope", func(t *testing.T) {
		s := NewScheduler()
		obj := newObj(nil)
		var gotScope Target
		var gotParams []any
		tw := s.Get(obj, &Options{Paused: true}).
			Wait(5).
			CallWith(func(scope Target, params ...any) {
				gotScope, gotParams = scope, params
			}, []any{1, "two"}, nil)

		tw.SetPosition(5, false, false)

		assert.Same(t, obj, gotScope)
		assert.Equal(t, []any{1, "two"}, gotParams)
	})
}

func TestLabels(t *testing.T) {
	s := NewScheduler()
	obj := newObj(Props{"x": Number(0)})
	tw := s.Get(obj, &Options{Paused: true}).
		To(Props{"x": Number(10)}, 100, nil).Label("mid").
		To(Props{"x": Number(0)}, 100, nil).Label("end")
	tw.AddLabel("start", 0)

	require.NoError(t, tw.GotoAndStopLabel("mid"))
	assert.Equal(t, 100.0, tw.Position())
	assert.Equal(t, 10.0, obj.Float("x"))
	assert.Equal(t, "mid", tw.CurrentLabel())
	assert.Equal(t, []Label{{"start", 0}, {"mid", 100}, {"end", 200}}, tw.Labels())

	err := tw.GotoAndPlayLabel("nowhere")
	assert.ErrorIs(t, err, ErrUnknownLabel)
	assert.True(t, IsKind(err, KindInvalidInput))
	assert.True(t, tw.Paused())

	require.NoError(t, tw.GotoAndPlayLabel("start"))
	assert.False(t, tw.Paused())
	assert.Equal(t, "start", tw.CurrentLabel())
}
