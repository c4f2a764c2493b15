package viz

import (
	"strings"
	"testing"
)

func TestCanvasSetUnset(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)
	if c.Grid[0][0] != 0x2801 {
		t.Errorf("cell 0 = %U, want U+2801", c.Grid[0][0])
	}
	if c.Grid[0][1] != 0x2800|0x80 {
		t.Errorf("cell 1 = %U, want U+2880", c.Grid[0][1])
	}

	c.Unset(0, 0)
	if c.Grid[0][0] != blank || c.IsSet(0, 0) {
		t.Errorf("cell 0 = %U after unset", c.Grid[0][0])
	}

	// out of range is ignored
	c.Set(-1, 0)
	c.Set(100, 100)
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(4, 1)
	c.DrawLine(0, 0, 7, 0)
	for x := 0; x < 8; x++ {
		if !c.IsSet(x, 0) {
			t.Errorf("dot (%d, 0) not set", x)
		}
	}
	if c.IsSet(0, 1) {
		t.Error("line leaked into row 1")
	}
}

func TestCanvasFillCircle(t *testing.T) {
	c := NewPixelCanvas(10, 5, 8, 16)
	if w, h := c.PixelSize(); w != 80 || h != 80 {
		t.Fatalf("pixel size = %vx%v, want 80x80", w, h)
	}

	c.FillCircle(40, 40, 10, "#F3CF68")
	if !c.IsSet(10, 10) {
		t.Error("centre dot not lit")
	}
	if c.IsSet(0, 0) || c.IsSet(19, 19) {
		t.Error("dots outside the circle lit")
	}
	if c.Colors[2][5] != "#F3CF68" {
		t.Errorf("cell tint = %q", c.Colors[2][5])
	}

	c.Clear()
	if c.IsSet(10, 10) || c.Colors[2][5] != "" {
		t.Error("Clear left content behind")
	}

	c.FillCircle(1, 1, 0.5, "#ffffff")
	if !c.IsSet(0, 0) {
		t.Error("sub-dot circle should light the dot under its centre")
	}
}

func TestCanvasCellMapping(t *testing.T) {
	c := NewPixelCanvas(10, 5, 8, 16)
	x, y := c.CellCenter(2, 3)
	if x != 20 || y != 56 {
		t.Errorf("CellCenter = (%v, %v), want (20, 56)", x, y)
	}
	if col, row := c.CellAt(x, y); col != 2 || row != 3 {
		t.Errorf("CellAt = (%d, %d), want (2, 3)", col, row)
	}
}

func TestCanvasRenderMatchesString(t *testing.T) {
	c := NewCanvas(3, 2)
	c.DrawLine(0, 0, 5, 7)
	if got, want := c.Render(), strings.TrimSuffix(c.String(), "\n"); got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

func TestCanvasResize(t *testing.T) {
	c := NewPixelCanvas(0, 0, 8, 16)
	c.Resize(4, 2)
	if c.Width != 4 || c.Height != 2 || len(c.Grid) != 2 || len(c.Colors[1]) != 4 {
		t.Errorf("resize produced %dx%d grid", c.Width, c.Height)
	}
}
