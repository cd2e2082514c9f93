package stream

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/eclipse/paho.mqtt.golang"
	"github.com/jamiealquiza/tachymeter"

	"github.com/matt-g-everett/ledtween/plugin"
	"github.com/matt-g-everett/ledtween/tween"
)

const statsSeconds = 10

// Status is a snapshot of the streamer's progress.
type Status struct {
	Scene         string `json:"scene"`
	Transitioning bool   `json:"transitioning"`
	Frames        int64  `json:"frames"`
	Bytes         uint64 `json:"bytes"`
	ActiveTweens  int    `json:"activeTweens"`
	TickAvg       string `json:"tickAvg"`
	TickP99       string `json:"tickP99"`
}

// Streamer that streams RGB data frames to an ledrx device.
type Streamer struct {
	config     Config
	client     mqtt.Client
	sched      *tween.Scheduler
	controller *Controller
	animation  Animation

	// mu guards status and tach, which the status endpoint reads from
	// another goroutine.
	mu     sync.Mutex
	status Status
	tach   *tachymeter.Tachymeter
}

// NewStreamer creates an instance of a Streamer with every plugin installed
// on its scheduler.
func NewStreamer(config Config, client mqtt.Client) (*Streamer, error) {
	sched := tween.NewScheduler()
	plugin.InstallAll(sched)

	controller, err := NewController(sched, config)
	if err != nil {
		return nil, err
	}

	size := int(config.FrameRate * statsSeconds)
	if size < 1 {
		size = 1
	}
	return &Streamer{
		config:     config,
		client:     client,
		sched:      sched,
		controller: controller,
		animation:  controller,
		tach:       tachymeter.New(&tachymeter.Config{Size: size}),
	}, nil
}

// Controller returns the scene controller.
func (s *Streamer) Controller() *Controller {
	return s.controller
}

// Step advances every tween by delta and renders the next frame.
func (s *Streamer) Step(delta time.Duration) ([]byte, error) {
	start := time.Now()
	s.sched.Tick(float64(delta)/float64(time.Millisecond), false)
	b, err := s.animation.CalculateFrame().MarshalBinary()
	if err != nil {
		return nil, err
	}
	elapsed := time.Since(start)

	s.mu.Lock()
	s.tach.AddTime(elapsed)
	s.status.Frames++
	s.status.Bytes += uint64(len(b))
	s.status.Scene = s.controller.Scene()
	s.status.Transitioning = s.controller.Transitioning()
	s.status.ActiveTweens = s.sched.ActiveCount()
	s.mu.Unlock()
	return b, nil
}

// Status returns the latest status snapshot.
func (s *Streamer) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := s.status
	if status.Frames > 0 {
		calc := s.tach.Calc()
		status.TickAvg = calc.Time.Avg.String()
		status.TickP99 = calc.Time.P99.String()
	}
	return status
}

// SendFrame sends a frame as binary over MQTT to an ledrx device.
func (s *Streamer) SendFrame(b []byte) error {
	token := s.client.Publish(s.config.Mqtt.Topics.Stream, 2, false, b)
	token.Wait()
	return token.Error()
}

func (s *Streamer) reportStats() {
	status := s.Status()
	log.Printf("Scene %s: %s frames, %s sent, tick avg %s p99 %s",
		status.Scene, humanize.Comma(status.Frames), humanize.Bytes(status.Bytes),
		status.TickAvg, status.TickP99)

	if s.config.Mqtt.Topics.Status == "" {
		return
	}
	payload, err := json.Marshal(status)
	if err != nil {
		log.Println(err)
		return
	}
	s.client.Publish(s.config.Mqtt.Topics.Status, 0, true, payload)
}

// Run causes the Streamer to send Frames at the configured frame rate until
// ctx is done.
func (s *Streamer) Run(ctx context.Context) error {
	interval := time.Duration(float64(time.Second) / s.config.FrameRate)
	publishTimer := time.NewTicker(interval)
	defer publishTimer.Stop()

	statsEvery := int64(s.config.FrameRate * statsSeconds)
	if statsEvery < 1 {
		statsEvery = 1
	}

	var frames int64
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-publishTimer.C:
			b, err := s.Step(now.Sub(last))
			last = now
			if err != nil {
				return err
			}
			if err := s.SendFrame(b); err != nil {
				log.Printf("Publish failed: %v", err)
			}
			frames++
			if frames%statsEvery == 0 {
				s.reportStats()
			}
		}
	}
}
