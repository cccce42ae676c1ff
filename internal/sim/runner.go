package sim

import (
	"context"
	"fmt"

	"github.com/mkarren/nbodies/internal/dynamics"
	"github.com/mkarren/nbodies/internal/metrics"
)

// Metric accumulates one scalar observable over a headless run.
type Metric interface {
	Name() string
	Observe(bodies []dynamics.Body, t float64)
	Value() float64
	Reset()
}

// Result is the recorded output of a headless run: per-step observable
// series plus the final metric values.
type Result struct {
	Times           []float64
	Energy          []float64
	AngularMomentum []float64
	Metrics         map[string]float64
	StepsTaken      int
}

// Run advances the cluster for steps ticks of length dt without a
// display, recording the energy and angular momentum series and
// feeding every step to the metrics. Cancelling the context returns
// the partial result with the context error.
func (s *Simulator) Run(ctx context.Context, dt float64, steps int, ms ...Metric) (*Result, error) {
	if dt <= 0 {
		return nil, fmt.Errorf("dt must be positive, got %v", dt)
	}
	if steps <= 0 {
		return nil, fmt.Errorf("steps must be positive, got %d", steps)
	}

	for _, m := range ms {
		m.Reset()
	}
	result := &Result{
		Times:           make([]float64, 0, steps),
		Energy:          make([]float64, 0, steps),
		AngularMomentum: make([]float64, 0, steps),
		Metrics:         make(map[string]float64),
	}

	t := 0.0
	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			s.collect(result, ms)
			return result, ctx.Err()
		default:
		}

		s.Step(dt)
		t += dt
		result.StepsTaken++

		bodies := s.cluster.Bodies()
		for _, m := range ms {
			m.Observe(bodies, t)
		}
		result.Times = append(result.Times, t)
		result.Energy = append(result.Energy, metrics.TotalEnergy(bodies))
		result.AngularMomentum = append(result.AngularMomentum, metrics.AngularMomentum(bodies))
	}

	s.collect(result, ms)
	return result, nil
}

func (s *Simulator) collect(result *Result, ms []Metric) {
	for _, m := range ms {
		result.Metrics[m.Name()] = m.Value()
	}
}
