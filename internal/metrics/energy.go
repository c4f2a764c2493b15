package metrics

import "github.com/san-kum/ballpit/internal/world"

// Energy is the mean total energy of the scene across observed frames.
type Energy struct {
	name        string
	samples     int
	totalEnergy float64
}

func NewEnergy() *Energy {
	return &Energy{name: "energy"}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(s *world.Scene, _ world.FrameStats) {
	e.totalEnergy += s.Energy()
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.totalEnergy / float64(e.samples)
}

func (e *Energy) Reset() {
	e.totalEnergy = 0
	e.samples = 0
}

// EnergyLoss is the fraction of the peak scene energy that has been lost
// by the last observed frame.
type EnergyLoss struct {
	name    string
	peak    float64
	current float64
}

func NewEnergyLoss() *EnergyLoss {
	return &EnergyLoss{name: "energy_loss"}
}

func (e *EnergyLoss) Name() string { return e.name }

func (e *EnergyLoss) Observe(s *world.Scene, _ world.FrameStats) {
	e.current = s.Energy()
	if e.current > e.peak {
		e.peak = e.current
	}
}

func (e *EnergyLoss) Value() float64 {
	if e.peak == 0 {
		return 0
	}
	return 1 - e.current/e.peak
}

func (e *EnergyLoss) Reset() {
	e.peak = 0
	e.current = 0
}
