// Package audio plays a short click whenever a ball strikes the floor.
package audio

import (
	"log"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)

	// MinImpact is the slowest impact that still clicks. Softer contacts are
	// the settling jitter of a resting ball.
	MinImpact = 1.5
)

// Clicker owns the speaker. The zero value and a Clicker whose
// initialization failed are silent.
type Clicker struct {
	mu      sync.Mutex
	mixer   *beep.Mixer
	enabled bool
}

// New returns a Clicker, initializing the speaker when enabled is set.
// A missing audio device only disables sound.
func New(enabled bool) *Clicker {
	c := &Clicker{mixer: &beep.Mixer{}}
	if !enabled {
		return c
	}
	if err := c.init(); err != nil {
		log.Printf("audio: init failed, running silent: %v", err)
	}
	return c
}

func (c *Clicker) init() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/20)); err != nil {
		return err
	}
	speaker.Play(c.mixer)
	c.enabled = true
	return nil
}

func (c *Clicker) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled
}

// Impact queues one click for a floor hit at the given speed.
func (c *Clicker) Impact(speed float64) {
	if speed < MinImpact {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.enabled {
		return
	}
	speaker.Lock()
	c.mixer.Add(NewImpactTone(sampleRate, speed))
	speaker.Unlock()
}

// Close silences pending clicks and releases the device.
func (c *Clicker) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.enabled {
		return
	}
	speaker.Clear()
	speaker.Close()
	c.enabled = false
}

// ImpactTone is a falling sine chirp with an exponential decay. Harder
// impacts ring longer and louder.
type ImpactTone struct {
	sr     beep.SampleRate
	freq   float64
	gain   float64
	pos    int
	length int
}

func NewImpactTone(sr beep.SampleRate, speed float64) *ImpactTone {
	strength := math.Min(speed/10, 1)
	return &ImpactTone{
		sr:     sr,
		freq:   220 + 440*strength,
		gain:   0.1 + 0.3*strength,
		length: sr.N(time.Duration(15+int(45*strength)) * time.Millisecond),
	}
}

// Len is the tone length in samples.
func (g *ImpactTone) Len() int { return g.length }

func (g *ImpactTone) Stream(samples [][2]float64) (n int, ok bool) {
	if g.pos >= g.length {
		return 0, false
	}
	for i := range samples {
		if g.pos >= g.length {
			break
		}
		t := float64(g.pos) / float64(g.sr)
		progress := float64(g.pos) / float64(g.length)

		freq := g.freq * (1 - 0.5*progress)
		envelope := math.Exp(-5 * progress)
		sample := g.gain * envelope * math.Sin(2*math.Pi*freq*t)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
		n++
	}
	return n, true
}

func (g *ImpactTone) Err() error {
	return nil
}
