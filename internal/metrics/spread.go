package metrics

import (
	"github.com/mkarren/nbodies/internal/dynamics"
	"github.com/mkarren/nbodies/internal/geometry"
)

// Spread tracks the largest barycentric distance seen over a run. A
// growing spread on a bound system signals an escape or an integration
// blow-up before the outlier ejection would catch it.
type Spread struct {
	name    string
	max     float64
	samples int
}

func NewSpread() *Spread {
	return &Spread{name: "spread"}
}

func (s *Spread) Name() string { return s.name }

func (s *Spread) Observe(bodies []dynamics.Body, t float64) {
	if len(bodies) == 0 {
		return
	}
	var mass float64
	var weighted geometry.Vector2
	for i := range bodies {
		mass += bodies[i].Mass
		weighted = weighted.Add(bodies[i].Shape.Center.Position.Scale(bodies[i].Mass))
	}
	if mass == 0 {
		return
	}
	barycenter := weighted.Div(mass)
	for i := range bodies {
		d := bodies[i].Shape.Center.Position.Distance(barycenter)
		if d > s.max {
			s.max = d
		}
	}
	s.samples++
}

func (s *Spread) Value() float64 {
	return s.max
}

func (s *Spread) Reset() {
	s.max = 0
	s.samples = 0
}
