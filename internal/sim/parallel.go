package sim

import (
	"context"
	"sync"
)

// Ensemble runs the same scripted config under consecutive seeds, one
// goroutine and one scene per run.
type Ensemble struct {
	newSim    func() *Simulator
	numRuns   int
	seedStart int64
}

func NewEnsemble(newSim func() *Simulator, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{newSim: newSim, numRuns: numRuns, seedStart: seedStart}
}

func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			cfgCopy := cfg
			cfgCopy.Seed = e.seedStart + int64(idx)

			results[idx], errs[idx] = e.newSim().Run(ctx, cfgCopy)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
