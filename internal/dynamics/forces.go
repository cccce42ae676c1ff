package dynamics

import "github.com/mkarren/nbodies/internal/geometry"

// G is the universal gravitational constant, in m³/(kg·s²).
const G = 6.67430e-11

// BaseAcceleration is the magnitude of the interactive thrust force.
const BaseAcceleration = 500.0

// Resistance is the drag coefficient of Drag.
const Resistance = 0.001

const machineEpsilon = 2.220446049250313e-16

// Gravity sums the gravitational acceleration exerted on bodies[target]
// by every other body. Pairs closer than machine epsilon are skipped,
// which also guards self-interaction; an empty or singleton cluster
// yields the zero vector.
func Gravity(target int, bodies []Body) geometry.Vector2 {
	var result geometry.Vector2
	position := bodies[target].Shape.Center.Position
	for j := range bodies {
		if j == target {
			continue
		}
		distance := bodies[j].Shape.Center.Position.Sub(position)
		magnitude := distance.Magnitude()
		if magnitude < machineEpsilon {
			continue
		}
		result = result.Add(distance.Scale(G * bodies[j].Mass / (magnitude * magnitude * magnitude)))
	}
	return result
}

// Drag is a quadratic drag acceleration, -Resistance·|v|·v. Available
// as an alternative force; the main loop does not apply it.
func Drag(velocity geometry.Vector2) geometry.Vector2 {
	return velocity.Scale(-Resistance * velocity.Magnitude())
}

// Push is the interactive thrust acceleration along direction.
func Push(direction Direction) geometry.Vector2 {
	return direction.Vector().Scale(BaseAcceleration)
}
