package export

import (
	"strings"
	"testing"

	"github.com/san-kum/ballpit/internal/physics"
	"github.com/san-kum/ballpit/internal/sim"
	"github.com/san-kum/ballpit/internal/viz"
)

func TestCanvasToSVG(t *testing.T) {
	if CanvasToSVG(nil, 2) != "" {
		t.Error("nil canvas should export nothing")
	}

	c := viz.NewCanvas(2, 1)
	c.Set(0, 0)
	c.SetColor(3, 3, "#ff0000")

	svg := CanvasToSVG(c, 2)
	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatalf("not an svg document:\n%s", svg)
	}
	if n := strings.Count(svg, "<circle"); n != 2 {
		t.Errorf("expected 2 dots, got %d", n)
	}
	if !strings.Contains(svg, `cx="1.0" cy="1.0"`) {
		t.Errorf("first dot misplaced:\n%s", svg)
	}
	if !strings.Contains(svg, `fill="#ff0000"`) {
		t.Error("cell tint not exported")
	}
	if !strings.Contains(svg, `width="8" height="8"`) {
		t.Error("document size should be canvas dots times scale")
	}
}

func TestTrajectorySVG(t *testing.T) {
	if TrajectorySVG(nil, physics.Viewport{Width: 800, Height: 600}) != "" {
		t.Error("no samples should export nothing")
	}

	samples := []sim.Sample{
		{Frame: 2, Ball: 0, X: 405, Y: 292},
		{Frame: 1, Ball: 0, X: 400, Y: 300},
		{Frame: 1, Ball: 1, X: 100, Y: 100},
	}
	svg := TrajectorySVG(samples, physics.Viewport{Width: 800, Height: 600})

	if n := strings.Count(svg, "<polyline"); n != 2 {
		t.Errorf("expected one polyline per ball, got %d", n)
	}
	if !strings.Contains(svg, `points="400.0,300.0 405.0,292.0"`) {
		t.Errorf("ball 0 path not in frame order:\n%s", svg)
	}
	if !strings.Contains(svg, `cx="405.0" cy="292.0"`) {
		t.Error("missing disc at last position")
	}
	if !strings.Contains(svg, `viewBox="0 0 800 600"`) {
		t.Error("viewBox should match the viewport")
	}
}
