package automation

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/ballpit/internal/config"
	"github.com/san-kum/ballpit/internal/physics"
	"github.com/san-kum/ballpit/internal/sim"
)

const dropYAML = `name: drop
description: one forced launch then a shrink
width: 800
height: 600
frames: 3
events:
  - frame: 0
    kind: click
    x: 400
    y: 300
    vx: 5
    vy: -8
  - frame: 2
    kind: resize
    width: 640
    height: 480
`

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadScenario(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t, dropYAML))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if sc.Name != "drop" || len(sc.Events) != 2 {
		t.Fatalf("scenario = %+v", sc)
	}
	if sc.Events[0].VX == nil || *sc.Events[0].VX != 5 {
		t.Errorf("forced vx not parsed: %+v", sc.Events[0])
	}
	if sc.Events[1].VX != nil {
		t.Error("resize event should not carry a velocity")
	}
}

func TestRunScenario(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t, dropYAML))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	result, err := RunScenario(context.Background(), sc)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	first := result.Samples[0]
	if first.X != 405 || first.Y != 292 || math.Abs(first.VY+7.7) > 1e-9 {
		t.Errorf("first sample = %+v", first)
	}
	if result.Viewport.Width != 640 || result.Viewport.Height != 480 {
		t.Errorf("viewport = %+v", result.Viewport)
	}
	if _, ok := result.Metrics["floor_contacts"]; !ok {
		t.Error("default metrics not attached")
	}
}

func TestScenarioUnknownPreset(t *testing.T) {
	sc := &Scenario{Name: "x", Preset: "mars"}
	if _, err := sc.SimConfig(); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestScenarioPartialPhysics(t *testing.T) {
	tests := []struct {
		name string
		body string
		want func(*physics.Params)
	}{
		{
			name: "gravity only",
			body: "name: low\nframes: 50\nphysics:\n  gravity: 0.1\n",
			want: func(p *physics.Params) { p.Gravity = 0.1 },
		},
		{
			name: "over a preset",
			body: "name: soft\nframes: 50\npreset: superball\nphysics:\n  gravity: 0.1\n",
			want: func(p *physics.Params) {
				*p = config.Presets["superball"]
				p.Gravity = 0.1
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc, err := LoadScenario(writeScenario(t, tt.body))
			if err != nil {
				t.Fatalf("load failed: %v", err)
			}
			cfg, err := sc.SimConfig()
			if err != nil {
				t.Fatalf("config failed: %v", err)
			}

			want := physics.DefaultParams()
			tt.want(&want)
			if cfg.Params != want {
				t.Errorf("params = %+v, want %+v", cfg.Params, want)
			}
			if _, err := RunScenario(context.Background(), sc); err != nil {
				t.Errorf("run failed: %v", err)
			}
		})
	}
}

func TestScenarioBadPhysics(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t, "name: bad\nphysics:\n  gravity: [1, 2]\n"))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if _, err := sc.SimConfig(); err == nil {
		t.Error("expected error for a non-numeric gravity")
	}
}

func TestScenarioLayersOverConfig(t *testing.T) {
	file := config.DefaultConfig()
	file.Width = 400
	file.Height = 300
	file.Frames = 50
	file.Seed = 7
	file.RecordEvery = 5
	file.Physics.Gravity = 0.2
	file.Physics.Radius = 6

	sc := &Scenario{Name: "layered", Frames: 20}
	cfg, err := sc.SimConfigOver(BaseConfig(file))
	if err != nil {
		t.Fatalf("config failed: %v", err)
	}

	if cfg.Frames != 20 {
		t.Errorf("frames = %d, want the scenario's 20", cfg.Frames)
	}
	if cfg.Width != 400 || cfg.Height != 300 || cfg.Seed != 7 || cfg.RecordEvery != 5 {
		t.Errorf("config fallbacks not applied: %+v", cfg)
	}
	if cfg.Params.Gravity != 0.2 || cfg.Params.Radius != 6 {
		t.Errorf("params = %+v, want the config file's", cfg.Params)
	}

	sc.Preset = "moon"
	cfg, err = sc.SimConfigOver(BaseConfig(file))
	if err != nil {
		t.Fatalf("config failed: %v", err)
	}
	if cfg.Params != config.Presets["moon"] {
		t.Errorf("preset should replace the config physics, got %+v", cfg.Params)
	}

	if got := BaseConfig(&config.Config{Physics: physics.DefaultParams()}); got.Frames != sim.DefaultConfig().Frames || got.Seed != 1 {
		t.Errorf("empty config should keep simulator defaults, got %+v", got)
	}
}

func TestRunSweepUsesBase(t *testing.T) {
	base := sim.DefaultConfig()
	base.Params.Gravity = 0.6
	results, err := RunSweep(context.Background(), &ParameterSweep{
		Scenario:  &Scenario{Name: "base", Frames: 10},
		ParamName: "bounce",
		ParamMin:  0.2,
		ParamMax:  0.4,
		NumSteps:  2,
		Base:      &base,
	})
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	_, err = RunSweep(context.Background(), &ParameterSweep{
		Scenario:  &Scenario{Name: "base"},
		ParamName: "gravity",
		ParamMin:  -1,
		ParamMax:  1,
		NumSteps:  2,
		Base:      &base,
	})
	if err == nil {
		t.Error("expected negative gravity to be rejected")
	}
}

func TestSaveScenarioRoundTrip(t *testing.T) {
	vx := 2.0
	sc := &Scenario{Name: "rt", Frames: 10, Events: []ScenarioEvent{{Kind: "click", X: 1, Y: 2, VX: &vx}}}
	path := filepath.Join(t.TempDir(), "rt.yaml")
	if err := SaveScenario(path, sc); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := LoadScenario(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Frames != 10 || *loaded.Events[0].VX != 2 {
		t.Errorf("loaded = %+v", loaded)
	}
}

func TestRunSweep(t *testing.T) {
	sc := &Scenario{
		Name:   "bounce",
		Frames: 4000,
		Events: []ScenarioEvent{{Kind: "click", X: 400, Y: 100}},
	}

	results, err := RunSweep(context.Background(), &ParameterSweep{
		Scenario:  sc,
		ParamName: "bounce",
		ParamMin:  0.2,
		ParamMax:  0.8,
		NumSteps:  3,
	})
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[0].ParamValue != 0.2 || math.Abs(results[2].ParamValue-0.8) > 1e-12 {
		t.Errorf("param values = %v, %v", results[0].ParamValue, results[2].ParamValue)
	}
	for _, r := range results {
		if r.SettleFrame < 0 {
			t.Errorf("bounce %.2f never settled", r.ParamValue)
		}
	}
	if results[0].SettleFrame > results[2].SettleFrame {
		t.Errorf("a deader ball should not settle later: %d > %d", results[0].SettleFrame, results[2].SettleFrame)
	}
}

func TestRunSweepRejectsUnknownParam(t *testing.T) {
	sc := &Scenario{Frames: 10}
	_, err := RunSweep(context.Background(), &ParameterSweep{Scenario: sc, ParamName: "spin", NumSteps: 2})
	if err == nil {
		t.Error("expected error for unknown parameter")
	}
}

func TestDemoScenario(t *testing.T) {
	result, err := RunScenario(context.Background(), Demo())
	if err != nil {
		t.Fatalf("demo failed: %v", err)
	}
	if result.Balls != 3 {
		t.Errorf("balls = %d, want 3", result.Balls)
	}
	if result.Viewport.Width != 640 || result.Viewport.Height != 480 {
		t.Errorf("final viewport = %+v, want 640x480", result.Viewport)
	}
	if result.FramesRun != 900 {
		t.Errorf("frames run = %d, want 900", result.FramesRun)
	}
	if vp, _ := result.Viewports.At(450); vp.Height != 600 {
		t.Errorf("viewport before the shrink = %+v, want 800x600", vp)
	}
	if vp, _ := result.Viewports.At(451); vp.Height != 480 {
		t.Errorf("viewport after the shrink = %+v, want 640x480", vp)
	}
}
