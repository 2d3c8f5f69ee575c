package config

import "sort"

var Presets = map[string]*Config{
	"reference": {
		Iterations: 1000, SampleSizes: []int{10, 40, 4000},
		Workers: 1, MaxRetries: 10, Profile: "default", LogLevel: "info",
	},
	"quick": {
		Iterations: 100, SampleSizes: []int{10, 40, 4000},
		Workers: 1, MaxRetries: 10, Profile: "default", LogLevel: "info",
	},
	"asymptotic": {
		Iterations: 500, SampleSizes: []int{10, 20, 40, 80, 160, 320, 640, 1280, 2560, 5120},
		Workers: 4, MaxRetries: 10, Profile: "default", LogLevel: "info",
	},
	"stress": {
		Iterations: 1000, SampleSizes: []int{2, 3, 5, 10},
		Workers: 4, MaxRetries: 10, Profile: "wide", LogLevel: "info",
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	cfg.SampleSizes = append([]int(nil), p.SampleSizes...)
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
