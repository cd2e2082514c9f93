package stream

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matt-g-everett/ledtween/plugin"
	"github.com/matt-g-everett/ledtween/tween"
)

const testConfig = `
mqtt:
  url: tcp://localhost:1883
  topics:
    stream: home/xmastree/stream
pixels: 4
sceneMs: 1000
transitionMs: 500
scenes:
  - name: pulse
    colour: "#ff0000"
    brightness: 0
    loop: -1
    bounce: true
    steps:
      - to: {brightness: 1}
        duration: 1000
        ease: inOutSine
        label: up
  - name: sweep
    loop: -1
    steps:
      - to: {position: 1, width: 0.2, brightness: 0.8}
        duration: 2000
      - wait: 500
`

func loadTestConfig(t *testing.T) Config {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testConfig), 0644))
	c, err := LoadConfig(path)
	require.NoError(t, err)
	return c
}

func newScheduler() *tween.Scheduler {
	s := tween.NewScheduler()
	plugin.InstallAll(s)
	return s
}

func TestLoadConfig(t *testing.T) {
	c := loadTestConfig(t)

	assert.Equal(t, "tcp://localhost:1883", c.Mqtt.URL)
	assert.Equal(t, "home/xmastree/stream", c.Mqtt.Topics.Stream)
	assert.Equal(t, 30.0, c.FrameRate)
	assert.Equal(t, 4, c.Pixels)
	assert.Equal(t, 500.0, c.TransitionMs)
	require.Len(t, c.Scenes, 2)

	pulse, ok := c.Scene("pulse")
	require.True(t, ok)
	require.NotNil(t, pulse.Brightness)
	assert.Equal(t, 0.0, *pulse.Brightness)
	assert.Equal(t, -1, pulse.Loop)
	assert.Equal(t, "up", pulse.Steps[0].Label)

	_, ok = c.Scene("missing")
	assert.False(t, ok)

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestBuildScene(t *testing.T) {
	c := loadTestConfig(t)

	t.Run("bouncing pulse", func(t *testing.T) {
		s := newScheduler()
		strip := NewStrip(4, nil)
		pulse, _ := c.Scene("pulse")

		tw, err := BuildScene(s, strip, pulse, false)
		require.NoError(t, err)
		assert.True(t, tw.Paused())
		assert.Equal(t, 1000.0, tw.Duration())
		assert.Equal(t, []tween.Label{{Name: "up", Position: 0}}, tw.Labels())

		tw.SetPosition(500, false, false)
		assert.InDelta(t, 0.5, strip.number("brightness"), 1e-9)

		tw.SetPosition(1250, false, false)
		assert.InDelta(t, 0.8536, strip.number("brightness"), 1e-4)
	})

	t.Run("steps and waits", func(t *testing.T) {
		s := newScheduler()
		strip := NewStrip(4, nil)
		sweep, _ := c.Scene("sweep")

		tw, err := BuildScene(s, strip, sweep, true)
		require.NoError(t, err)
		assert.False(t, tw.Paused())
		assert.Equal(t, 2500.0, tw.Duration())

		s.Tick(1000, false)
		assert.InDelta(t, 0.75, strip.number("position"), 1e-9)
		assert.InDelta(t, 0.4, strip.number("brightness"), 1e-9)
	})

	t.Run("unknown ease", func(t *testing.T) {
		_, err := BuildScene(newScheduler(), NewStrip(4, nil), SceneConfig{
			Name:  "bad",
			Steps: []StepConfig{{To: map[string]interface{}{"brightness": 1}, Duration: 10, Ease: "wobble"}},
		}, false)
		assert.ErrorContains(t, err, `unknown ease "wobble"`)
	})

	t.Run("unsupported value", func(t *testing.T) {
		_, err := BuildScene(newScheduler(), NewStrip(4, nil), SceneConfig{
			Name:  "bad",
			Steps: []StepConfig{{To: map[string]interface{}{"brightness": []interface{}{1}}, Duration: 10}},
		}, false)
		assert.ErrorContains(t, err, `prop "brightness"`)
	})
}

func TestStrip(t *testing.T) {
	t.Run("dark by default", func(t *testing.T) {
		f := NewStrip(3, nil).CalculateFrame()
		require.Equal(t, 3, f.Len())
		for i := 0; i < f.Len(); i++ {
			r, g, b := f.Pixel(i).RGB255()
			assert.Equal(t, [3]uint8{0, 0, 0}, [3]uint8{r, g, b})
		}
	})

	t.Run("lit band", func(t *testing.T) {
		strip := NewStrip(5, nil)
		strip.Set("colour", tween.String("#ff0000"))
		strip.Set("brightness", tween.Number(1))
		strip.Set("width", tween.Number(0.5))

		f := strip.CalculateFrame()
		r, _, _ := f.Pixel(0).RGB255()
		assert.Equal(t, uint8(0), r)
		r, g, b := f.Pixel(2).RGB255()
		assert.Equal(t, [3]uint8{255, 0, 0}, [3]uint8{r, g, b})
	})

	t.Run("twinkle", func(t *testing.T) {
		strip := NewStrip(8, nil)
		strip.Set("twinkle", tween.Number(1))

		f := strip.CalculateFrame()
		for i := 0; i < f.Len(); i++ {
			r, _, _ := f.Pixel(i).RGB255()
			assert.NotZero(t, r, i)
		}

		strip.Set("twinkle", tween.Number(0.5))
		lit := 0
		f = strip.CalculateFrame()
		for i := 0; i < f.Len(); i++ {
			if r, _, _ := f.Pixel(i).RGB255(); r > 0 {
				lit++
			}
		}
		assert.Equal(t, 4, lit)
	})

	t.Run("invalid colour falls back to the gradient", func(t *testing.T) {
		strip := NewStrip(2, nil)
		strip.Set("colour", tween.String("red"))
		v, _ := strip.Get("colour")
		assert.Equal(t, tween.String(""), v)
	})
}

func TestFrame(t *testing.T) {
	f := NewFrame(2)
	f.pixels[1].R = 1

	b, err := f.MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, []byte{2, 0, 0, 0, 0, 255, 0, 0}, b)

	black := NewFrame(2)
	mixed := black.InterpolateFrame(f, 1)
	r, _, _ := mixed.Pixel(1).RGB255()
	assert.Equal(t, uint8(255), r)
}

func TestController(t *testing.T) {
	c := loadTestConfig(t)

	t.Run("cycles scenes", func(t *testing.T) {
		s := newScheduler()
		ctl, err := NewController(s, c)
		require.NoError(t, err)
		assert.Equal(t, "pulse", ctl.Scene())
		assert.False(t, ctl.Transitioning())

		s.Tick(1000, false)
		assert.True(t, ctl.Transitioning())
		assert.Equal(t, "sweep", ctl.Scene())
		assert.Equal(t, 4, ctl.CalculateFrame().Len())

		s.Tick(250, false)
		assert.InDelta(t, 0.5, ctl.fader.Float("mix"), 1e-9)

		s.Tick(250, false)
		assert.False(t, ctl.Transitioning())
		assert.Equal(t, "sweep", ctl.Scene())
	})

	t.Run("show by name", func(t *testing.T) {
		s := newScheduler()
		ctl, err := NewController(s, c)
		require.NoError(t, err)

		require.NoError(t, ctl.Show("sweep"))
		require.NoError(t, ctl.Show("pulse"))
		assert.Equal(t, "pulse", ctl.Scene())
		assert.Error(t, ctl.Show("nope"))
	})

	t.Run("needs scenes", func(t *testing.T) {
		_, err := NewController(newScheduler(), Config{})
		assert.Error(t, err)
	})
}

func TestStreamerStep(t *testing.T) {
	c := loadTestConfig(t)
	st, err := NewStreamer(c, nil)
	require.NoError(t, err)

	b, err := st.Step(100 * time.Millisecond)
	require.NoError(t, err)
	assert.Len(t, b, 2+4*3)

	status := st.Status()
	assert.Equal(t, int64(1), status.Frames)
	assert.Equal(t, uint64(len(b)), status.Bytes)
	assert.Equal(t, "pulse", status.Scene)
	assert.Equal(t, 2, status.ActiveTweens)
	assert.NotEmpty(t, status.TickAvg)
}

type stillAnimation struct{ frame *Frame }

func (a stillAnimation) CalculateFrame() *Frame { return a.frame }

func TestStreamerRendersItsAnimation(t *testing.T) {
	st, err := NewStreamer(loadTestConfig(t), nil)
	require.NoError(t, err)
	st.animation = stillAnimation{frame: NewFrame(2)}

	b, err := st.Step(10 * time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, []byte{2, 0, 0, 0, 0, 0, 0, 0}, b)
}

func TestStreamerStatusWhileStepping(t *testing.T) {
	st, err := NewStreamer(loadTestConfig(t), nil)
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			st.Status()
		}
	}()
	for i := 0; i < 100; i++ {
		_, err := st.Step(10 * time.Millisecond)
		require.NoError(t, err)
	}
	wg.Wait()

	status := st.Status()
	assert.Equal(t, int64(100), status.Frames)
	assert.NotEmpty(t, status.TickP99)
}
