package gui

import "testing"

func TestToColor(t *testing.T) {
	c := toColor("#F3CF68")
	if c.R != 0xF3 || c.G != 0xCF || c.B != 0x68 || c.A != 255 {
		t.Errorf("toColor = %+v", c)
	}
}

func TestTelemetryScalesIntoBox(t *testing.T) {
	if telemetry([]float64{1}, 0, 0, 100, 50) != nil {
		t.Error("a single value has no line")
	}

	pts := telemetry([]float64{0, 5, 10}, 10, 20, 100, 50)
	if len(pts) != 3 {
		t.Fatalf("expected 3 points, got %d", len(pts))
	}
	if pts[0].X != 10 || pts[2].X != 110 {
		t.Errorf("x range = %v..%v, want 10..110", pts[0].X, pts[2].X)
	}
	if pts[0].Y != 70 || pts[2].Y != 20 {
		t.Errorf("y range = %v..%v, want 70..20", pts[0].Y, pts[2].Y)
	}

	flat := telemetry([]float64{3, 3}, 0, 0, 10, 10)
	if flat[0].Y != flat[1].Y {
		t.Error("flat series should draw a flat line")
	}
}
