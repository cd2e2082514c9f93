package stream

import (
	"errors"
	"fmt"
	"log"

	"github.com/matt-g-everett/ledtween/tween"
)

// Controller cycles through the configured scenes, cross-fading from one
// to the next.
type Controller struct {
	sched       *tween.Scheduler
	config      Config
	index       int
	current     *Strip
	next        *Strip
	currentName string
	nextName    string
	fader       *tween.Object
	clock       *tween.Object
}

// NewController creates a Controller showing the first scene. With more
// than one scene it moves on every config.SceneMs.
func NewController(s *tween.Scheduler, config Config) (*Controller, error) {
	if len(config.Scenes) == 0 {
		return nil, errors.New("no scenes configured")
	}
	c := &Controller{
		sched:  s,
		config: config,
		fader:  tween.NewObject(tween.Props{"mix": tween.Number(0)}),
		clock:  tween.NewObject(nil),
	}

	first := config.Scenes[0]
	c.current = NewStrip(config.Pixels, nil)
	if _, err := BuildScene(s, c.current, first, true); err != nil {
		return nil, err
	}
	c.currentName = first.Name
	log.Printf("Scene: %s", first.Name)

	if len(config.Scenes) > 1 {
		s.Get(c.clock, &tween.Options{Loop: -1}).
			Wait(config.SceneMs).
			Call(func(*tween.Tween) {
				if err := c.Next(); err != nil {
					log.Println(err)
				}
			})
	}
	return c, nil
}

// Next starts a transition to the following scene. It does nothing while a
// transition is running.
func (c *Controller) Next() error {
	if c.next != nil {
		return nil
	}
	i := (c.index + 1) % len(c.config.Scenes)
	return c.show(i)
}

// Show starts a transition to the scene named name.
func (c *Controller) Show(name string) error {
	for i, scene := range c.config.Scenes {
		if scene.Name == name {
			if c.next != nil {
				c.finish()
			}
			return c.show(i)
		}
	}
	return fmt.Errorf("unknown scene %q", name)
}

func (c *Controller) show(i int) error {
	scene := c.config.Scenes[i]
	strip := NewStrip(c.config.Pixels, nil)
	if _, err := BuildScene(c.sched, strip, scene, true); err != nil {
		return err
	}
	c.index = i
	c.next = strip
	c.nextName = scene.Name
	c.fader.Set("mix", tween.Number(0))

	ease, _ := tween.Ease("inOutQuad")
	c.sched.Get(c.fader, &tween.Options{Override: true}).
		To(tween.Props{"mix": tween.Number(1)}, c.config.TransitionMs, ease).
		Call(func(*tween.Tween) { c.finish() })
	return nil
}

func (c *Controller) finish() {
	c.sched.RemoveTweens(c.current)
	c.sched.RemoveTweens(c.fader)
	c.current, c.next = c.next, nil
	c.currentName, c.nextName = c.nextName, ""
	log.Printf("Scene: %s", c.currentName)
}

// Scene returns the name of the scene being shown, or the one being faded
// to during a transition.
func (c *Controller) Scene() string {
	if c.next != nil {
		return c.nextName
	}
	return c.currentName
}

// Transitioning reports whether a cross-fade is running.
func (c *Controller) Transitioning() bool {
	return c.next != nil
}

// CalculateFrame renders the current scene, blended with the next one
// during a transition.
func (c *Controller) CalculateFrame() *Frame {
	f := c.current.CalculateFrame()
	if c.next != nil {
		f = f.InterpolateFrame(c.next.CalculateFrame(), c.fader.Float("mix"))
	}
	return f
}
