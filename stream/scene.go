package stream

import (
	"fmt"
	"sort"

	"github.com/matt-g-everett/ledtween/tween"
)

// BuildScene creates a tween on strip from cfg. The tween is created paused
// unless play is set.
func BuildScene(s *tween.Scheduler, strip *Strip, cfg SceneConfig, play bool) (*tween.Tween, error) {
	if cfg.Colour != "" {
		strip.Set("colour", tween.String(cfg.Colour))
	}
	if cfg.Brightness != nil {
		strip.Set("brightness", tween.Number(*cfg.Brightness))
	}

	tw := s.Get(strip, &tween.Options{
		Loop:      cfg.Loop,
		Bounce:    cfg.Bounce,
		Reversed:  cfg.Reversed,
		TimeScale: cfg.TimeScale,
		Paused:    !play,
		Override:  true,
	})
	for i, step := range cfg.Steps {
		if step.Label != "" {
			tw.Label(step.Label)
		}
		if len(step.To) == 0 {
			if step.Wait > 0 {
				tw.Wait(step.Wait)
			}
			continue
		}

		props, err := toProps(step.To)
		if err != nil {
			return nil, fmt.Errorf("scene %q step %d: %w", cfg.Name, i, err)
		}
		ease, ok := tween.Ease(step.Ease)
		if !ok {
			return nil, fmt.Errorf("scene %q step %d: unknown ease %q", cfg.Name, i, step.Ease)
		}
		tw.To(props, step.Duration, ease)
		if err := tw.Err(); err != nil {
			return nil, fmt.Errorf("scene %q step %d: %w", cfg.Name, i, err)
		}
		if step.Wait > 0 {
			tw.Wait(step.Wait)
		}
	}
	return tw, nil
}

func toProps(in map[string]interface{}) (tween.Props, error) {
	props := make(tween.Props, len(in))
	names := make([]string, 0, len(in))
	for name := range in {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		switch v := in[name].(type) {
		case int:
			props[name] = tween.Number(float64(v))
		case float64:
			props[name] = tween.Number(v)
		case string:
			props[name] = tween.String(v)
		case bool:
			props[name] = tween.Bool(v)
		default:
			return nil, fmt.Errorf("prop %q: unsupported value %v", name, v)
		}
	}
	return props, nil
}
