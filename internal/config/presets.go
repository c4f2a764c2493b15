package config

import (
	"sort"

	"github.com/san-kum/ballpit/internal/physics"
)

var Presets = map[string]physics.Params{
	"classic": physics.DefaultParams(),
	"moon": withParams(func(p *physics.Params) {
		p.Gravity = 0.05
	}),
	"jupiter": withParams(func(p *physics.Params) {
		p.Gravity = 0.8
		p.MaxSpeedY = 16
	}),
	"superball": withParams(func(p *physics.Params) {
		p.Bounce = 0.9
		p.Friction = 0.01
		p.Color = "#FF5F87"
	}),
	"honey": withParams(func(p *physics.Params) {
		p.Bounce = 0.2
		p.Friction = 0.3
		p.Color = "#D7AF00"
	}),
	"marbles": withParams(func(p *physics.Params) {
		p.Radius = 4
		p.Bounce = 0.7
		p.Color = "#87D7FF"
	}),
}

func withParams(fn func(*physics.Params)) physics.Params {
	p := physics.DefaultParams()
	fn(&p)
	return p
}

// GetPreset returns a copy of the default config using the named physics.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Physics = p
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
