package automation

import (
	"context"
	"fmt"
	"os"

	"github.com/san-kum/ballpit/internal/config"
	"github.com/san-kum/ballpit/internal/metrics"
	"github.com/san-kum/ballpit/internal/sim"
	"github.com/san-kum/ballpit/internal/world"
	"gopkg.in/yaml.v3"
)

// Scenario is a scripted session: a viewport, a frame budget and a list of
// timed clicks and resizes.
type Scenario struct {
	Name        string          `yaml:"name"`
	Description string          `yaml:"description"`
	Width       float64         `yaml:"width"`
	Height      float64         `yaml:"height"`
	Frames      int             `yaml:"frames"`
	Seed        int64           `yaml:"seed"`
	RecordEvery int             `yaml:"record_every"`
	Preset      string          `yaml:"preset"`
	Events      []ScenarioEvent `yaml:"events"`

	// Physics is decoded on top of the base or preset params, so a block
	// naming only gravity keeps every other value.
	Physics yaml.Node `yaml:"physics,omitempty"`
}

// ScenarioEvent is a single input. Kind is "click" or "resize".
type ScenarioEvent struct {
	Frame  int      `yaml:"frame"`
	Kind   string   `yaml:"kind"`
	X      float64  `yaml:"x"`
	Y      float64  `yaml:"y"`
	VX     *float64 `yaml:"vx"`
	VY     *float64 `yaml:"vy"`
	Width  float64  `yaml:"width"`
	Height float64  `yaml:"height"`
}

// Demo is the scenario used when none is given: three drops across an
// 800x600 viewport and a shrink halfway through.
func Demo() *Scenario {
	return &Scenario{
		Name:        "demo",
		Description: "three clicks, then the window shrinks",
		Width:       800,
		Height:      600,
		Frames:      900,
		Seed:        1,
		Events: []ScenarioEvent{
			{Frame: 0, Kind: "click", X: 200, Y: 150},
			{Frame: 30, Kind: "click", X: 400, Y: 100},
			{Frame: 60, Kind: "click", X: 600, Y: 200},
			{Frame: 450, Kind: "resize", Width: 640, Height: 480},
		},
	}
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}

	return &scenario, nil
}

func SaveScenario(path string, sc *Scenario) error {
	data, err := yaml.Marshal(sc)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// BaseConfig turns a loaded config file into the simulator settings a
// scenario starts from.
func BaseConfig(c *config.Config) sim.Config {
	cfg := sim.DefaultConfig()
	if c.Width > 0 {
		cfg.Width = c.Width
	}
	if c.Height > 0 {
		cfg.Height = c.Height
	}
	if c.Frames > 0 {
		cfg.Frames = c.Frames
	}
	if c.Seed != 0 {
		cfg.Seed = c.Seed
	}
	if c.RecordEvery > 0 {
		cfg.RecordEvery = c.RecordEvery
	}
	cfg.Params = c.Physics
	return cfg
}

// SimConfig converts the scenario into a simulator config on top of
// sim.DefaultConfig.
func (sc *Scenario) SimConfig() (sim.Config, error) {
	return sc.SimConfigOver(sim.DefaultConfig())
}

// SimConfigOver converts the scenario into a simulator config. Zero fields
// keep the value from base.
func (sc *Scenario) SimConfigOver(base sim.Config) (sim.Config, error) {
	cfg := base
	if sc.Width > 0 {
		cfg.Width = sc.Width
	}
	if sc.Height > 0 {
		cfg.Height = sc.Height
	}
	if sc.Frames > 0 {
		cfg.Frames = sc.Frames
	}
	if sc.Seed != 0 {
		cfg.Seed = sc.Seed
	}
	if sc.RecordEvery > 0 {
		cfg.RecordEvery = sc.RecordEvery
	}
	if sc.Preset != "" {
		preset := config.GetPreset(sc.Preset)
		if preset == nil {
			return cfg, fmt.Errorf("unknown preset: %s (available: %v)", sc.Preset, config.ListPresets())
		}
		cfg.Params = preset.Physics
	}
	if !sc.Physics.IsZero() {
		params := cfg.Params
		if err := sc.Physics.Decode(&params); err != nil {
			return cfg, fmt.Errorf("scenario %s physics: %w", sc.Name, err)
		}
		cfg.Params = params
	}

	cfg.Events = make([]sim.Event, 0, len(sc.Events))
	for _, ev := range sc.Events {
		cfg.Events = append(cfg.Events, sim.Event{
			Frame:  ev.Frame,
			Kind:   sim.EventKind(ev.Kind),
			X:      ev.X,
			Y:      ev.Y,
			VX:     ev.VX,
			VY:     ev.VY,
			Width:  ev.Width,
			Height: ev.Height,
		})
	}
	return cfg, nil
}

// RunScenario executes the scenario headless with the default metrics.
func RunScenario(ctx context.Context, sc *Scenario) (*sim.Result, error) {
	cfg, err := sc.SimConfig()
	if err != nil {
		return nil, err
	}
	return Run(ctx, sc.Name, cfg)
}

// Run executes an already layered config with the default metrics.
func Run(ctx context.Context, name string, cfg sim.Config) (*sim.Result, error) {
	s := sim.New()
	for _, m := range metrics.Default() {
		s.AddMetric(m)
	}

	result, err := s.Run(ctx, cfg)
	if err != nil {
		return result, fmt.Errorf("scenario %s: %w", name, err)
	}
	return result, nil
}

// ParameterSweep replays one scenario across a range of a physics parameter.
type ParameterSweep struct {
	Scenario  *Scenario
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int

	// Base is what the scenario is layered on. Nil means sim.DefaultConfig.
	Base *sim.Config
}

// SweepResult holds results from a parameter sweep
type SweepResult struct {
	ParamValue    float64
	FloorContacts int
	SettleFrame   int
	FinalEnergy   float64
}

// settleWatch records the first frame on which every ball is at rest.
type settleWatch struct {
	frame int
}

func (w *settleWatch) OnFrame(s *world.Scene, st world.FrameStats) {
	if w.frame < 0 && st.Balls > 0 && s.Resting() == st.Balls {
		w.frame = s.FrameCount()
	}
}

// RunSweep executes a parameter sweep. SettleFrame is -1 for runs that never
// came to rest.
func RunSweep(ctx context.Context, sweep *ParameterSweep) ([]SweepResult, error) {
	if sweep.NumSteps < 2 {
		return nil, fmt.Errorf("sweep needs at least 2 steps, got %d", sweep.NumSteps)
	}

	start := sim.DefaultConfig()
	if sweep.Base != nil {
		start = *sweep.Base
	}
	base, err := sweep.Scenario.SimConfigOver(start)
	if err != nil {
		return nil, err
	}

	results := make([]SweepResult, 0, sweep.NumSteps)
	paramStep := (sweep.ParamMax - sweep.ParamMin) / float64(sweep.NumSteps-1)

	for i := 0; i < sweep.NumSteps; i++ {
		paramVal := sweep.ParamMin + float64(i)*paramStep

		cfg := base
		if err := cfg.Params.SetParam(sweep.ParamName, paramVal); err != nil {
			return nil, err
		}

		floor := metrics.NewFloorContacts()
		watch := &settleWatch{frame: -1}
		s := sim.New()
		s.AddMetric(floor)
		s.AddObserver(watch)

		result, err := s.Run(ctx, cfg)
		if err != nil {
			return nil, err
		}

		final := 0.0
		if n := len(result.Energy); n > 0 {
			final = result.Energy[n-1]
		}

		results = append(results, SweepResult{
			ParamValue:    paramVal,
			FloorContacts: int(floor.Value()),
			SettleFrame:   watch.frame,
			FinalEnergy:   final,
		})
	}

	return results, nil
}
