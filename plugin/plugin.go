// Package plugin provides the property plugins for tween schedulers:
// relative values, colours, unit suffixes, rotation and motion guides.
package plugin

import "github.com/matt-g-everett/ledtween/tween"

// InstallAll installs every plugin in this package with default settings.
func InstallAll(s *tween.Scheduler) {
	s.InstallPlugin(NewRelative(), nil)
	s.InstallPlugin(NewGuide(), nil)
	s.InstallPlugin(NewRotation(), nil)
	s.InstallPlugin(NewColour(), nil)
	s.InstallPlugin(NewSuffix(), nil)
}

// stepData returns the per-step map a plugin keeps in the tween's plugin data.
func stepData[T any](tw *tween.Tween, key string) map[*tween.Step]map[string]T {
	data := tw.PluginData()
	m, ok := data[key].(map[*tween.Step]map[string]T)
	if !ok {
		m = make(map[*tween.Step]map[string]T)
		data[key] = m
	}
	return m
}

func put[T any](m map[*tween.Step]map[string]T, step *tween.Step, prop string, v T) {
	props, ok := m[step]
	if !ok {
		props = make(map[string]T)
		m[step] = props
	}
	props[prop] = v
}

func lookup[T any](m map[*tween.Step]map[string]T, step *tween.Step, prop string) (T, bool) {
	v, ok := m[step][prop]
	return v, ok
}
