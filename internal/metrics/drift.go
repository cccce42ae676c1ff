package metrics

import (
	"math"

	"github.com/mkarren/nbodies/internal/dynamics"
)

// EnergyDrift tracks the worst relative total-energy deviation from the
// first observed sample. The value is the conservation figure of merit
// of a run: an exact integrator would hold it at zero.
type EnergyDrift struct {
	name     string
	initial  float64
	current  float64
	maxDrift float64
	samples  int
}

func NewEnergyDrift() *EnergyDrift {
	return &EnergyDrift{name: "energy_drift"}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(bodies []dynamics.Body, t float64) {
	energy := TotalEnergy(bodies)
	if e.samples == 0 {
		e.initial = energy
	}
	e.current = energy
	e.samples++

	if e.initial != 0 {
		drift := math.Abs(energy-e.initial) / math.Abs(e.initial)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.current = 0
	e.maxDrift = 0
	e.samples = 0
}

// MomentumDrift tracks the worst absolute deviation of total linear
// momentum from the first observed sample.
type MomentumDrift struct {
	name     string
	initialX float64
	initialY float64
	maxDrift float64
	samples  int
}

func NewMomentumDrift() *MomentumDrift {
	return &MomentumDrift{name: "momentum_drift"}
}

func (m *MomentumDrift) Name() string { return m.name }

func (m *MomentumDrift) Observe(bodies []dynamics.Body, t float64) {
	p := Momentum(bodies)
	if m.samples == 0 {
		m.initialX = p.X
		m.initialY = p.Y
	}
	m.samples++

	dx := p.X - m.initialX
	dy := p.Y - m.initialY
	m.maxDrift = math.Max(m.maxDrift, math.Hypot(dx, dy))
}

func (m *MomentumDrift) Value() float64 {
	return m.maxDrift
}

func (m *MomentumDrift) Reset() {
	m.initialX = 0
	m.initialY = 0
	m.maxDrift = 0
	m.samples = 0
}
