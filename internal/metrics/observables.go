package metrics

import (
	"github.com/mkarren/nbodies/internal/dynamics"
	"github.com/mkarren/nbodies/internal/geometry"
)

// Momentum is the total linear momentum of the bodies.
func Momentum(bodies []dynamics.Body) geometry.Vector2 {
	var p geometry.Vector2
	for i := range bodies {
		p = p.Add(bodies[i].Shape.Center.Velocity.Scale(bodies[i].Mass))
	}
	return p
}

// AngularMomentum is the total angular momentum about the display
// origin, the scalar z-component of sum m (r x v).
func AngularMomentum(bodies []dynamics.Body) float64 {
	var l float64
	for i := range bodies {
		center := bodies[i].Shape.Center
		l += bodies[i].Mass * (center.Position.X*center.Velocity.Y - center.Position.Y*center.Velocity.X)
	}
	return l
}

// KineticEnergy is the total kinetic energy, sum m v^2 / 2.
func KineticEnergy(bodies []dynamics.Body) float64 {
	var ke float64
	for i := range bodies {
		v2 := bodies[i].Shape.Center.Velocity.Magnitude2()
		ke += 0.5 * bodies[i].Mass * v2
	}
	return ke
}

// PotentialEnergy is the total gravitational potential energy,
// -G m_i m_j / r over unordered pairs. Coincident pairs are skipped,
// matching the force evaluation.
func PotentialEnergy(bodies []dynamics.Body) float64 {
	var pe float64
	for i := range bodies {
		for j := i + 1; j < len(bodies); j++ {
			r := bodies[i].Shape.Center.Position.Distance(bodies[j].Shape.Center.Position)
			if r == 0 {
				continue
			}
			pe -= dynamics.G * bodies[i].Mass * bodies[j].Mass / r
		}
	}
	return pe
}

// TotalEnergy is kinetic plus potential energy.
func TotalEnergy(bodies []dynamics.Body) float64 {
	return KineticEnergy(bodies) + PotentialEnergy(bodies)
}
