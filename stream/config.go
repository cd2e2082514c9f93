package stream

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

const (
	defaultFrameRate    = 30.0
	defaultPixels       = 500
	defaultTransitionMs = 5000
	defaultSceneMs      = 60000
)

// Config is the YAML configuration for the streamer.
type Config struct {
	Mqtt struct {
		URL      string `yaml:"url"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		Topics   struct {
			Stream string `yaml:"stream"`
			Status string `yaml:"status"`
		} `yaml:"topics"`
	} `yaml:"mqtt"`
	FrameRate    float64       `yaml:"frameRate"`
	Pixels       int           `yaml:"pixels"`
	TransitionMs float64       `yaml:"transitionMs"`
	SceneMs      float64       `yaml:"sceneMs"`
	StatusAddr   string        `yaml:"statusAddr"`
	Scenes       []SceneConfig `yaml:"scenes"`
}

// SceneConfig describes one scene: a tween over a strip's props.
type SceneConfig struct {
	Name       string       `yaml:"name"`
	Loop       int          `yaml:"loop"`
	Bounce     bool         `yaml:"bounce"`
	Reversed   bool         `yaml:"reversed"`
	TimeScale  float64      `yaml:"timeScale"`
	Colour     string       `yaml:"colour"`
	Brightness *float64     `yaml:"brightness"`
	Steps      []StepConfig `yaml:"steps"`
}

// StepConfig is one entry of a scene. A step with To set tweens to those
// props over Duration; otherwise a non-zero Wait holds for that long.
type StepConfig struct {
	To       map[string]interface{} `yaml:"to"`
	Duration float64                `yaml:"duration"`
	Ease     string                 `yaml:"ease"`
	Wait     float64                `yaml:"wait"`
	Label    string                 `yaml:"label"`
}

// LoadConfig reads the YAML config at path and fills in defaults.
func LoadConfig(path string) (Config, error) {
	var c Config
	f, err := os.Open(path)
	if err != nil {
		return c, err
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(&c); err != nil {
		return c, fmt.Errorf("decoding %s: %w", path, err)
	}
	c.applyDefaults()
	return c, nil
}

func (c *Config) applyDefaults() {
	if c.FrameRate <= 0 {
		c.FrameRate = defaultFrameRate
	}
	if c.Pixels <= 0 {
		c.Pixels = defaultPixels
	}
	if c.TransitionMs <= 0 {
		c.TransitionMs = defaultTransitionMs
	}
	if c.SceneMs <= 0 {
		c.SceneMs = defaultSceneMs
	}
}

// Scene returns the scene named name.
func (c *Config) Scene(name string) (SceneConfig, bool) {
	for _, s := range c.Scenes {
		if s.Name == name {
			return s, true
		}
	}
	return SceneConfig{}, false
}
