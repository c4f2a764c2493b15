package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/ballpit/internal/palette"
)

// surface draws through raylib. It must be used between BeginDrawing and
// EndDrawing.
type surface struct {
	bg     rl.Color
	colors map[string]rl.Color
}

func newSurface(bg rl.Color) *surface {
	return &surface{bg: bg, colors: make(map[string]rl.Color)}
}

func (s *surface) Clear() {
	rl.ClearBackground(s.bg)
}

func (s *surface) FillCircle(x, y, r float64, color string) {
	rl.DrawCircleV(rl.NewVector2(float32(x), float32(y)), float32(r), s.color(color))
}

func (s *surface) color(hex string) rl.Color {
	if c, ok := s.colors[hex]; ok {
		return c
	}
	c := toColor(hex)
	s.colors[hex] = c
	return c
}

func toColor(hex string) rl.Color {
	r, g, b := palette.RGB8(hex)
	return rl.NewColor(r, g, b, 255)
}

// telemetry scales a series into a line strip inside the given box.
func telemetry(series []float64, x, y, w, h float32) []rl.Vector2 {
	if len(series) < 2 {
		return nil
	}
	lo, hi := series[0], series[0]
	for _, v := range series {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	if hi == lo {
		hi = lo + 1
	}

	points := make([]rl.Vector2, len(series))
	for i, v := range series {
		px := x + float32(i)/float32(len(series)-1)*w
		py := y + h - float32((v-lo)/(hi-lo))*h
		points[i] = rl.NewVector2(px, py)
	}
	return points
}
