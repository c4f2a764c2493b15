package palette

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		hex     string
		wantErr bool
	}{
		{"#F3CF68", false},
		{"#f3cf68", false},
		{"#fff", false},
		{"F3CF68", true},
		{"#GGGGGG", true},
		{"", true},
	}
	for _, tt := range tests {
		t.Run(tt.hex, func(t *testing.T) {
			_, err := Parse(tt.hex)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.hex, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidColor) {
				t.Errorf("expected ErrInvalidColor, got %v", err)
			}
		})
	}
}

func TestRGB8(t *testing.T) {
	r, g, b := RGB8("#F3CF68")
	if r != 0xF3 || g != 0xCF || b != 0x68 {
		t.Errorf("RGB8 = %02x%02x%02x, want f3cf68", r, g, b)
	}
	r, g, b = RGB8("nope")
	if r != 0x80 || g != 0x80 || b != 0x80 {
		t.Errorf("fallback = %02x%02x%02x, want grey", r, g, b)
	}
}

func TestBlend(t *testing.T) {
	if got := Blend("#000000", "#ffffff", 0); got != "#000000" {
		t.Errorf("t=0: %s", got)
	}
	if got := Blend("#000000", "#ffffff", 1); got != "#ffffff" {
		t.Errorf("t=1: %s", got)
	}
	if got := Blend("#000000", "#ffffff", 7); got != "#ffffff" {
		t.Errorf("t clamps: %s", got)
	}
	if got := Blend("bad", "#ffffff", 0.5); got != "bad" {
		t.Errorf("bad input: %s", got)
	}
	mid := Blend("#000000", "#ffffff", 0.5)
	if mid == "#000000" || mid == "#ffffff" {
		t.Errorf("midpoint not between endpoints: %s", mid)
	}
}

func TestCycle(t *testing.T) {
	a := Cycle(8)
	b := Cycle(8)
	seen := map[string]bool{}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("color %d differs between calls: %s vs %s", i, a[i], b[i])
		}
		if seen[a[i]] {
			t.Errorf("duplicate color %s", a[i])
		}
		seen[a[i]] = true
	}
	if a[0] != "#f3cf68" {
		t.Errorf("first color = %s, want the default ball color", a[0])
	}
}

func TestCyclerReset(t *testing.T) {
	var c Cycler
	first := c.Next()
	c.Next()
	c.Reset()
	if got := c.Next(); got != first {
		t.Errorf("after reset got %s, want %s", got, first)
	}
}
