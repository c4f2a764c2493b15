package metrics

import (
	"context"
	"testing"

	"github.com/san-kum/ballpit/internal/physics"
	"github.com/san-kum/ballpit/internal/sim"
	"github.com/san-kum/ballpit/internal/world"
)

func TestEnergyReset(t *testing.T) {
	scene := world.NewScene(physics.DefaultParams(), 1)
	scene.Resize(800, 600)
	scene.Add(physics.Ball{X: 400, Y: 300, VX: 3, VY: 4, Radius: 10})

	m := NewEnergy()
	m.Observe(scene, world.FrameStats{})

	want := 0.5*25 + physics.Gravity*(590-300)
	if got := m.Value(); got < want-1e-9 || got > want+1e-9 {
		t.Errorf("expected energy %f, got %f", want, got)
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero energy after reset")
	}
}

func TestContacts(t *testing.T) {
	floor := NewFloorContacts()
	wall := NewWallContacts()
	st := world.FrameStats{Floor: 2, Wall: 1}

	floor.Observe(nil, st)
	floor.Observe(nil, st)
	wall.Observe(nil, st)

	if floor.Value() != 4 {
		t.Errorf("floor contacts = %v, want 4", floor.Value())
	}
	if wall.Value() != 1 {
		t.Errorf("wall contacts = %v, want 1", wall.Value())
	}
}

func TestRestFraction(t *testing.T) {
	scene := world.NewScene(physics.DefaultParams(), 1)
	scene.Resize(800, 600)
	scene.Add(physics.Ball{X: 100, Y: 590, Radius: 10})
	scene.Add(physics.Ball{X: 200, Y: 300, VX: 2, Radius: 10})

	m := NewRestFraction()
	m.Observe(scene, world.FrameStats{Balls: 2})
	if m.Value() != 0.5 {
		t.Errorf("rest fraction = %v, want 0.5", m.Value())
	}
}

func TestDefaultMetricsInRun(t *testing.T) {
	s := sim.New()
	for _, m := range Default() {
		s.AddMetric(m)
	}

	cfg := sim.DefaultConfig()
	cfg.Frames = 3000
	cfg.Events = []sim.Event{{Kind: sim.EventClick, X: 400, Y: 300}}

	result, err := s.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	for _, name := range Names() {
		if _, ok := result.Metrics[name]; !ok {
			t.Errorf("metric %s missing from result", name)
		}
	}
	if result.Metrics["floor_contacts"] == 0 {
		t.Error("expected floor contacts")
	}
	if loss := result.Metrics["energy_loss"]; loss <= 0.9 {
		t.Errorf("expected nearly all energy lost, got %v", loss)
	}
}

func TestGetUnknown(t *testing.T) {
	if _, err := Get("nope"); err == nil {
		t.Error("expected error for unknown metric")
	}
}
