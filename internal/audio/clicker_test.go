package audio

import (
	"testing"

	"github.com/gopxl/beep"
)

func drain(g *ImpactTone) (total int, peak float64) {
	buf := make([][2]float64, 512)
	for {
		n, ok := g.Stream(buf)
		if !ok {
			return total, peak
		}
		for i := 0; i < n; i++ {
			if buf[i][0] != buf[i][1] {
				panic("channels differ")
			}
			if v := buf[i][0]; v > peak {
				peak = v
			} else if -v > peak {
				peak = -v
			}
		}
		total += n
	}
}

// TestImpactTone_Finite verifies the tone drains after its length
func TestImpactTone_Finite(t *testing.T) {
	rate := beep.SampleRate(44100)
	g := NewImpactTone(rate, 5)

	total, peak := drain(g)
	if total != g.Len() {
		t.Errorf("streamed %d samples, want %d", total, g.Len())
	}
	if peak <= 0 || peak > 1 {
		t.Errorf("peak %f outside (0, 1]", peak)
	}
	if g.Err() != nil {
		t.Errorf("unexpected error: %v", g.Err())
	}
}

// TestImpactTone_ScalesWithSpeed verifies harder hits ring longer and louder
func TestImpactTone_ScalesWithSpeed(t *testing.T) {
	rate := beep.SampleRate(44100)
	soft := NewImpactTone(rate, 2)
	hard := NewImpactTone(rate, 12)

	if hard.Len() <= soft.Len() {
		t.Errorf("hard tone %d samples, soft %d; want hard longer", hard.Len(), soft.Len())
	}
	_, softPeak := drain(soft)
	_, hardPeak := drain(hard)
	if hardPeak <= softPeak {
		t.Errorf("hard peak %f <= soft peak %f", hardPeak, softPeak)
	}

	capped := NewImpactTone(rate, 500)
	if capped.Len() != hard.Len() {
		t.Errorf("tone length should saturate: %d vs %d", capped.Len(), hard.Len())
	}
}

// TestClicker_Disabled verifies a silent clicker ignores impacts
func TestClicker_Disabled(t *testing.T) {
	c := New(false)
	if c.Enabled() {
		t.Fatal("expected disabled clicker")
	}
	c.Impact(20)
	c.Close()

	var zero Clicker
	zero.Impact(20)
	zero.Close()
}
