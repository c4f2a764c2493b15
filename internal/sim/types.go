package sim

import (
	"errors"
	"fmt"

	"github.com/san-kum/ballpit/internal/physics"
	"github.com/san-kum/ballpit/internal/world"
)

var (
	ErrInvalidConfig = errors.New("sim: invalid config")
	ErrInvalidState  = errors.New("sim: invalid state (NaN or Inf detected)")
)

type EventKind string

const (
	EventClick  EventKind = "click"
	EventResize EventKind = "resize"
)

// Event is a scripted input applied right before frame Frame runs.
type Event struct {
	Frame  int
	Kind   EventKind
	X, Y   float64
	Width  float64
	Height float64

	// VX and VY force the launch velocity of a click instead of drawing it
	// from the spawner.
	VX, VY *float64
}

type Metric interface {
	Name() string
	Observe(s *world.Scene, st world.FrameStats)
	Value() float64
	Reset()
}

type Observer interface {
	OnFrame(s *world.Scene, st world.FrameStats)
}

type Config struct {
	Width         float64
	Height        float64
	Frames        int
	Seed          int64
	RecordEvery   int
	ValidateState bool
	Params        physics.Params
	Events        []Event
}

func DefaultConfig() Config {
	return Config{
		Width:         800,
		Height:        600,
		Frames:        600,
		Seed:          1,
		RecordEvery:   1,
		ValidateState: true,
		Params:        physics.DefaultParams(),
	}
}

// Sample is one ball's state after Frame frames have run.
type Sample struct {
	Frame int
	Ball  int
	X, Y  float64
	VX    float64
	VY    float64
}

// ViewportChange marks the viewport in effect for samples from Frame on.
type ViewportChange struct {
	Frame    int              `json:"frame"`
	Viewport physics.Viewport `json:"viewport"`
}

// ViewportHistory lists viewport changes in frame order, starting with the
// initial viewport at frame 0.
type ViewportHistory []ViewportChange

// At returns the viewport a ball moved in to reach its sample at frame.
func (h ViewportHistory) At(frame int) (physics.Viewport, bool) {
	var vp physics.Viewport
	found := false
	for _, c := range h {
		if c.Frame > frame {
			break
		}
		vp, found = c.Viewport, true
	}
	return vp, found
}

type Result struct {
	Samples   []Sample
	Energy    []float64
	Metrics   map[string]float64
	FramesRun int
	Balls     int
	Viewport  physics.Viewport
	Viewports ViewportHistory
	Errors    []error
}

type SimError struct {
	Frame   int
	Ball    int
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("frame %d ball %d: %s", e.Frame, e.Ball, e.Message)
}

func (e SimError) Unwrap() error { return ErrInvalidState }
