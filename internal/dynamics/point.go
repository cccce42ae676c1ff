package dynamics

import "github.com/mkarren/nbodies/internal/geometry"

// TrajectorySize is the fixed capacity of a point's position history.
const TrajectorySize = 256

// BaseTranslation is the distance covered by one interactive nudge.
const BaseTranslation = 10.0

// Point is the kinematic state of one body: position, velocity and
// acceleration, plus a circular buffer of the last TrajectorySize
// positions. The buffer always holds exactly TrajectorySize samples;
// a fresh point has every slot set to its initial position.
type Point struct {
	Position     geometry.Vector2
	Velocity     geometry.Vector2
	Acceleration geometry.Vector2

	trajectory [TrajectorySize]geometry.Vector2
	index      int
}

func NewPoint(position, velocity, acceleration geometry.Vector2) Point {
	p := Point{Position: position, Velocity: velocity, Acceleration: acceleration}
	for k := range p.trajectory {
		p.trajectory[k] = position
	}
	return p
}

// Inertial is a point with no acceleration.
func Inertial(position, velocity geometry.Vector2) Point {
	return NewPoint(position, velocity, geometry.Vector2{})
}

// Stationary is a point at rest.
func Stationary(position geometry.Vector2) Point {
	return NewPoint(position, geometry.Vector2{}, geometry.Vector2{})
}

// Reset moves the point to position and zeroes velocity and
// acceleration.
func (p *Point) Reset(position geometry.Vector2) {
	p.Position = position
	p.Velocity = geometry.Vector2{}
	p.Acceleration = geometry.Vector2{}
}

// Reset0 zeroes the whole kinematic state.
func (p *Point) Reset0() {
	p.Reset(geometry.Vector2{})
}

// Translate nudges the position along direction by BaseTranslation.
// No physics: velocity and acceleration are untouched.
func (p *Point) Translate(direction geometry.Vector2) {
	p.Position = p.Position.Add(direction.Scale(BaseTranslation))
}

// Accelerate commits one semi-implicit Euler step: velocity first from
// the stored acceleration, then position from the updated velocity.
func (p *Point) Accelerate(dt float64) {
	p.Velocity = p.Velocity.Add(p.Acceleration.Scale(dt))
	p.Position = p.Position.Add(p.Velocity.Scale(dt))
}

// State packs (position, velocity) for the integrator.
func (p *Point) State() geometry.Vector4 {
	return geometry.Concat(p.Position, p.Velocity)
}

// SetState unpacks a (position, velocity) pair.
func (p *Point) SetState(s geometry.Vector4) {
	p.Position = s.Upper()
	p.Velocity = s.Lower()
}

// PositionAt returns the k-th oldest of the last TrajectorySize
// recorded positions, k in [0, TrajectorySize). The remap keeps the
// view chronological regardless of where the write cursor sits.
func (p *Point) PositionAt(k int) geometry.Vector2 {
	return p.trajectory[(k+p.index)%TrajectorySize]
}

// UpdateTrajectory records the current position and advances the write
// cursor.
func (p *Point) UpdateTrajectory() {
	p.trajectory[p.index] = p.Position
	p.index = (p.index + 1) % TrajectorySize
}

// ClearTrajectory overwrites every sample with the current position.
// Call after any discontinuous reposition, or the trail renders a
// segment jumping across the move.
func (p *Point) ClearTrajectory() {
	for k := range p.trajectory {
		p.trajectory[k] = p.Position
	}
}

// SetOrigin rebases the point into the frame anchored at origin,
// undoing a previous rebase at old when old is non-nil. Position,
// velocity and every trajectory sample shift by the same translation,
// so the rebase is a pure translation: no velocity jump, no trail
// artifact.
func (p *Point) SetOrigin(origin, old *Point) {
	dp := origin.Position
	dv := origin.Velocity
	if old != nil {
		dp = dp.Sub(old.Position)
		dv = dv.Sub(old.Velocity)
	}
	p.Position = p.Position.Sub(dp)
	p.Velocity = p.Velocity.Sub(dv)
	for k := range p.trajectory {
		p.trajectory[k] = p.trajectory[k].Sub(dp)
	}
}
