package metrics

import (
	"fmt"
	"sort"

	"github.com/san-kum/ballpit/internal/sim"
)

var constructors = map[string]func() sim.Metric{
	"energy":           func() sim.Metric { return NewEnergy() },
	"energy_loss":      func() sim.Metric { return NewEnergyLoss() },
	"floor_contacts":   func() sim.Metric { return NewFloorContacts() },
	"ceiling_contacts": func() sim.Metric { return NewCeilingContacts() },
	"wall_contacts":    func() sim.Metric { return NewWallContacts() },
	"rest_fraction":    func() sim.Metric { return NewRestFraction() },
}

// Default returns one of every metric.
func Default() []sim.Metric {
	out := make([]sim.Metric, 0, len(constructors))
	for _, name := range Names() {
		out = append(out, constructors[name]())
	}
	return out
}

func Get(name string) (sim.Metric, error) {
	fn, ok := constructors[name]
	if !ok {
		return nil, fmt.Errorf("unknown metric: %s", name)
	}
	return fn(), nil
}

func Names() []string {
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
