package sim

import (
	"context"
	"fmt"
	"sort"

	"github.com/san-kum/ballpit/internal/physics"
	"github.com/san-kum/ballpit/internal/world"
)

// Simulator drives a Scene without a display: scripted events stand in for
// the pointer and the window, and every frame is drawn to world.Discard.
type Simulator struct {
	metrics   []Metric
	observers []Observer
}

func New() *Simulator {
	return &Simulator{
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	scene := world.NewScene(cfg.Params, cfg.Seed)
	scene.Resize(cfg.Width, cfg.Height)

	events := sortedEvents(cfg.Events)
	result := &Result{
		Samples: make([]Sample, 0),
		Energy:  make([]float64, 0, cfg.Frames),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}

	result.Viewports = ViewportHistory{{Frame: 0, Viewport: scene.Viewport()}}

	for _, m := range s.metrics {
		m.Reset()
	}

	next := 0
	for frame := 0; frame < cfg.Frames; frame++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		for next < len(events) && events[next].Frame <= frame {
			apply(scene, events[next])
			if events[next].Kind == EventResize {
				// The first sample taken after this frame runs is frame+1.
				result.Viewports = append(result.Viewports, ViewportChange{Frame: frame + 1, Viewport: scene.Viewport()})
			}
			next++
		}

		stats := scene.Frame(world.Discard)
		result.FramesRun++

		for _, m := range s.metrics {
			m.Observe(scene, stats)
		}
		for _, o := range s.observers {
			o.OnFrame(scene, stats)
		}

		result.Energy = append(result.Energy, scene.Energy())

		if cfg.ValidateState {
			if err := checkFinite(scene); err != nil {
				result.Errors = append(result.Errors, err)
				break
			}
		}

		if scene.FrameCount()%cfg.RecordEvery == 0 {
			record(result, scene)
		}
	}

	result.Balls = scene.World().Len()
	result.Viewport = scene.Viewport()
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

// RunWithCallback steps a scene frame by frame until the callback returns
// false or the context ends. The callback runs after each frame.
func (s *Simulator) RunWithCallback(ctx context.Context, cfg Config, callback func(*world.Scene, world.FrameStats) bool) error {
	if err := validateConfig(cfg); err != nil {
		return err
	}

	scene := world.NewScene(cfg.Params, cfg.Seed)
	scene.Resize(cfg.Width, cfg.Height)
	events := sortedEvents(cfg.Events)
	next := 0

	for frame := 0; frame < cfg.Frames; frame++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		for next < len(events) && events[next].Frame <= frame {
			apply(scene, events[next])
			next++
		}

		stats := scene.Frame(world.Discard)
		if !callback(scene, stats) {
			return nil
		}
	}
	return nil
}

func validateConfig(cfg Config) error {
	if cfg.Frames <= 0 {
		return fmt.Errorf("%w: frames must be positive, got %d", ErrInvalidConfig, cfg.Frames)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("%w: viewport must be positive, got %gx%g", ErrInvalidConfig, cfg.Width, cfg.Height)
	}
	if cfg.RecordEvery <= 0 {
		return fmt.Errorf("%w: record interval must be positive, got %d", ErrInvalidConfig, cfg.RecordEvery)
	}
	for _, ev := range cfg.Events {
		if ev.Frame < 0 {
			return fmt.Errorf("%w: event at negative frame %d", ErrInvalidConfig, ev.Frame)
		}
		if ev.Kind != EventClick && ev.Kind != EventResize {
			return fmt.Errorf("%w: unknown event kind %q", ErrInvalidConfig, ev.Kind)
		}
	}
	if err := cfg.Params.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

func sortedEvents(in []Event) []Event {
	events := make([]Event, len(in))
	copy(events, in)
	sort.SliceStable(events, func(i, j int) bool { return events[i].Frame < events[j].Frame })
	return events
}

func apply(scene *world.Scene, ev Event) {
	switch ev.Kind {
	case EventResize:
		scene.Resize(ev.Width, ev.Height)
	case EventClick:
		if ev.VX != nil || ev.VY != nil {
			b := scene.Spawner().Spawn(ev.X, ev.Y)
			if ev.VX != nil {
				b.VX = *ev.VX
			}
			if ev.VY != nil {
				b.VY = *ev.VY
			}
			scene.Add(b)
			return
		}
		scene.Click(ev.X, ev.Y)
	}
}

func checkFinite(scene *world.Scene) error {
	var err error
	scene.World().Each(func(i int, b *physics.Ball) {
		if err == nil && !b.IsValid() {
			err = SimError{Frame: scene.FrameCount(), Ball: i, Message: "non-finite position or velocity"}
		}
	})
	return err
}

func record(result *Result, scene *world.Scene) {
	frame := scene.FrameCount()
	scene.World().Each(func(i int, b *physics.Ball) {
		result.Samples = append(result.Samples, Sample{
			Frame: frame,
			Ball:  i,
			X:     b.X,
			Y:     b.Y,
			VX:    b.VX,
			VY:    b.VY,
		})
	})
}
