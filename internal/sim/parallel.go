package sim

import (
	"context"
	"sync"

	"github.com/mkarren/nbodies/internal/config"
	"github.com/mkarren/nbodies/internal/dynamics"
	"github.com/mkarren/nbodies/internal/metrics"
)

// Ensemble runs the same seed many times with independent random true
// anomalies, one goroutine per run. The spread of the drift metrics
// across runs shows how sensitive the system is to its starting phase.
type Ensemble struct {
	seed    []dynamics.SeedBody
	cfg     *config.Config
	numRuns int
}

func NewEnsemble(seed []dynamics.SeedBody, cfg *config.Config, numRuns int) *Ensemble {
	return &Ensemble{seed: seed, cfg: cfg, numRuns: numRuns}
}

func (e *Ensemble) Run(ctx context.Context, dt float64, steps int) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			cfg := *e.cfg
			sim := New(dynamics.SeededAtRandom(e.seed), &cfg)
			results[idx], errs[idx] = sim.Run(ctx, dt, steps,
				metrics.NewEnergyDrift(), metrics.NewMomentumDrift(), metrics.NewSpread())
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
