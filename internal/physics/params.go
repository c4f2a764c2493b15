package physics

import (
	"errors"
	"fmt"
	"math"
)

const (
	Gravity       = 0.3
	Bounce        = 0.5
	Friction      = 0.05
	SettleVY      = 1.5
	SettleVX      = 1.1
	DefaultRadius = 10.0
	DefaultColor  = "#F3CF68"
	MaxSpeedX     = 10.0
	MaxSpeedY     = 10.0
)

var ErrParameterBounds = errors.New("physics: parameter out of valid bounds")

// Params holds the tunable physics constants. DefaultParams matches the
// package constants.
type Params struct {
	Gravity   float64 `yaml:"gravity" toml:"gravity" json:"gravity"`
	Bounce    float64 `yaml:"bounce" toml:"bounce" json:"bounce"`
	Friction  float64 `yaml:"friction" toml:"friction" json:"friction"`
	SettleVY  float64 `yaml:"settle_vy" toml:"settle_vy" json:"settle_vy"`
	SettleVX  float64 `yaml:"settle_vx" toml:"settle_vx" json:"settle_vx"`
	Radius    float64 `yaml:"radius" toml:"radius" json:"radius"`
	Color     string  `yaml:"color" toml:"color" json:"color"`
	MaxSpeedX float64 `yaml:"max_speed_x" toml:"max_speed_x" json:"max_speed_x"`
	MaxSpeedY float64 `yaml:"max_speed_y" toml:"max_speed_y" json:"max_speed_y"`
}

func DefaultParams() Params {
	return Params{
		Gravity:   Gravity,
		Bounce:    Bounce,
		Friction:  Friction,
		SettleVY:  SettleVY,
		SettleVX:  SettleVX,
		Radius:    DefaultRadius,
		Color:     DefaultColor,
		MaxSpeedX: MaxSpeedX,
		MaxSpeedY: MaxSpeedY,
	}
}

func (p Params) Validate() error {
	for name, v := range map[string]float64{
		"gravity": p.Gravity, "bounce": p.Bounce, "friction": p.Friction,
		"settle_vy": p.SettleVY, "settle_vx": p.SettleVX, "radius": p.Radius,
		"max_speed_x": p.MaxSpeedX, "max_speed_y": p.MaxSpeedY,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s must be finite, got %g", ErrParameterBounds, name, v)
		}
	}

	switch {
	case p.Gravity < 0:
		return fmt.Errorf("%w: gravity must be non-negative, got %g", ErrParameterBounds, p.Gravity)
	case p.Radius <= 0:
		return fmt.Errorf("%w: radius must be positive, got %g", ErrParameterBounds, p.Radius)
	case p.Bounce < 0 || p.Bounce > 1:
		return fmt.Errorf("%w: bounce must be in [0, 1], got %g", ErrParameterBounds, p.Bounce)
	case p.Friction < 0:
		return fmt.Errorf("%w: friction must be non-negative, got %g", ErrParameterBounds, p.Friction)
	case p.SettleVY < 0 || p.SettleVX < 0:
		return fmt.Errorf("%w: settle thresholds must be non-negative", ErrParameterBounds)
	case p.MaxSpeedX < 0 || p.MaxSpeedY < 0:
		return fmt.Errorf("%w: spawn speeds must be non-negative", ErrParameterBounds)
	}
	return nil
}

// GetParams and SetParam expose the float parameters by name for live tuning.
func (p *Params) GetParams() map[string]float64 {
	return map[string]float64{
		"gravity":  p.Gravity,
		"bounce":   p.Bounce,
		"friction": p.Friction,
	}
}

func (p *Params) SetParam(name string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("%w: %s %g", ErrParameterBounds, name, value)
	}
	switch name {
	case "gravity":
		if value < 0 {
			return fmt.Errorf("%w: gravity %g", ErrParameterBounds, value)
		}
		p.Gravity = value
	case "bounce":
		if value < 0 || value > 1 {
			return fmt.Errorf("%w: bounce %g", ErrParameterBounds, value)
		}
		p.Bounce = value
	case "friction":
		if value < 0 {
			return fmt.Errorf("%w: friction %g", ErrParameterBounds, value)
		}
		p.Friction = value
	default:
		return fmt.Errorf("unknown parameter: %s", name)
	}
	return nil
}
