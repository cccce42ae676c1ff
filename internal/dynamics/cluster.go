package dynamics

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/stat"

	"github.com/mkarren/nbodies/internal/geometry"
)

// Frame selects the referent subtracted from every body's state for
// display and numerical anchoring.
type Frame int

const (
	FrameZero Frame = iota
	FrameCurrent
	FrameBarycenter
)

// Next cycles Zero -> Current -> Barycenter -> Zero.
func (f Frame) Next() Frame {
	return (f + 1) % 3
}

func (f Frame) String() string {
	switch f {
	case FrameCurrent:
		return "current"
	case FrameBarycenter:
		return "barycenter"
	default:
		return "zero"
	}
}

// Derivative evaluates the packed (velocity, acceleration) derivative
// of bodies[i]. The integrator calls it four times per body per
// substep, with exactly one body's (position, velocity) perturbed at a
// time.
type Derivative func(bodies []Body, i int) geometry.Vector4

// GravityDerivative is the standard evaluator: the body's own velocity
// in the upper half, pairwise gravitational acceleration in the lower.
func GravityDerivative(bodies []Body, i int) geometry.Vector4 {
	return geometry.Concat(bodies[i].Shape.Center.Velocity, Gravity(i, bodies))
}

// awayDeviations is the ejection threshold of RemoveAways, in standard
// deviations of barycentric distance.
const awayDeviations = 1000.0

// Cluster owns the body collection, a synthetic barycenter body, the
// reference-frame origin and the interactive selection cursor. Body
// order is identity: there is no persistent id, and every exposed index
// is positional.
//
// Bodies hold display-centered coordinates (absolute minus origin) at
// all times outside an in-progress Advance.
type Cluster struct {
	bodies     []Body
	barycenter Body
	origin     Point
	current    int
	frame      Frame
}

func NewCluster(bodies []Body) *Cluster {
	c := &Cluster{
		bodies:     bodies,
		barycenter: NewBody(0, "barycenter", Centered(0, Red)),
	}
	c.updateBarycenter()
	return c
}

func EmptyCluster() *Cluster {
	return NewCluster(nil)
}

// NewSeededCluster builds a cluster from seed records, each evaluated
// at its own true anomaly. Panics if the lengths differ; callers
// construct the anomaly slice from the seed.
func NewSeededCluster(seed []SeedBody, anomalies []float64) *Cluster {
	bodies := make([]Body, len(seed))
	for i := range seed {
		bodies[i] = NewOrbitalBody(seed[i], anomalies[i])
	}
	return NewCluster(bodies)
}

// SeededAt seeds every body at the same true anomaly.
func SeededAt(seed []SeedBody, trueAnomaly float64) *Cluster {
	anomalies := make([]float64, len(seed))
	for i := range anomalies {
		anomalies[i] = trueAnomaly
	}
	return NewSeededCluster(seed, anomalies)
}

// SeededAtRandom seeds every body at an independent uniform anomaly in
// [0, 2pi).
func SeededAtRandom(seed []SeedBody) *Cluster {
	anomalies := make([]float64, len(seed))
	for i := range anomalies {
		anomalies[i] = 2 * math.Pi * rand.Float64()
	}
	return NewSeededCluster(seed, anomalies)
}

func (c *Cluster) Count() int    { return len(c.bodies) }
func (c *Cluster) IsEmpty() bool { return len(c.bodies) == 0 }

// Bodies exposes the body slice for read-only iteration by display and
// logging collaborators.
func (c *Cluster) Bodies() []Body { return c.bodies }

func (c *Cluster) Body(i int) *Body  { return &c.bodies[i] }
func (c *Cluster) Barycenter() *Body { return &c.barycenter }
func (c *Cluster) Origin() *Point    { return &c.origin }
func (c *Cluster) Frame() Frame      { return c.frame }
func (c *Cluster) CurrentIndex() int { return c.current }

// Current returns the selected body, nil when the cluster is empty.
func (c *Cluster) Current() *Body {
	if c.IsEmpty() {
		return nil
	}
	return &c.bodies[c.current]
}

// Last returns the most recently pushed body, nil when empty.
func (c *Cluster) Last() *Body {
	if c.IsEmpty() {
		return nil
	}
	return &c.bodies[len(c.bodies)-1]
}

// Push appends a body and selects it.
func (c *Cluster) Push(body Body) {
	c.current = len(c.bodies)
	c.bodies = append(c.bodies, body)
	c.updateBarycenter()
}

// Pop removes and returns the last body. The second result is false
// when the cluster is empty.
func (c *Cluster) Pop() (Body, bool) {
	if c.IsEmpty() {
		return Body{}, false
	}
	return c.Remove(len(c.bodies) - 1)
}

// Remove deletes bodies[i], preserving order. The selection cursor
// moves back when it would otherwise point past the new end, and the
// origin rebases when the selected body anchors the frame.
func (c *Cluster) Remove(i int) (Body, bool) {
	if i < 0 || i >= len(c.bodies) {
		return Body{}, false
	}
	body := c.bodies[i]
	c.bodies = append(c.bodies[:i], c.bodies[i+1:]...)
	if c.current >= len(c.bodies) && c.current > 0 {
		c.current--
	}
	c.updateBarycenter()
	if c.frame == FrameCurrent {
		c.rebase()
	}
	return body, true
}

// IncreaseCurrent selects the next body, clamping at the last index.
// With bypassLast set it clamps one earlier, so an uncommitted body
// being interactively placed can never become the selection.
func (c *Cluster) IncreaseCurrent(bypassLast bool) {
	if c.IsEmpty() {
		return
	}
	offset := 1
	if bypassLast {
		offset = 2
	}
	if c.current < len(c.bodies)-offset {
		c.current++
	}
	if c.frame == FrameCurrent {
		c.rebase()
	}
	c.updateBarycenter()
}

// DecreaseCurrent selects the previous body, clamping at zero.
func (c *Cluster) DecreaseCurrent() {
	if c.IsEmpty() {
		return
	}
	if c.current > 0 {
		c.current--
	}
	if c.frame == FrameCurrent {
		c.rebase()
	}
	c.updateBarycenter()
}

// NextFrame cycles the reference frame and rebases every body onto the
// new referent.
func (c *Cluster) NextFrame() {
	c.frame = c.frame.Next()
	c.rebase()
}

// rebase translates every body, the barycenter and the stored origin so
// the new frame referent sits at the display origin. A pure
// translation: velocities shift uniformly and trajectory samples move
// with their bodies, so no trail segment jumps.
func (c *Cluster) rebase() {
	if c.IsEmpty() {
		c.origin = Point{}
		return
	}
	referent := c.referent()
	for i := range c.bodies {
		c.bodies[i].Shape.Center.SetOrigin(&referent, nil)
	}
	c.barycenter.Shape.Center.SetOrigin(&referent, nil)
	c.origin.Position = c.origin.Position.Add(referent.Position)
	c.origin.Velocity = c.origin.Velocity.Add(referent.Velocity)
}

// referent is the new frame anchor in current display coordinates. For
// FrameZero that is absolute zero, which sits at minus the accumulated
// origin.
func (c *Cluster) referent() Point {
	switch c.frame {
	case FrameCurrent:
		return c.bodies[c.current].Shape.Center
	case FrameBarycenter:
		return c.barycenter.Shape.Center
	default:
		return Point{
			Position: c.origin.Position.Neg(),
			Velocity: c.origin.Velocity.Neg(),
		}
	}
}

// updateBarycenter recomputes the synthetic barycenter body: total mass
// and the mass-weighted mean position and velocity. An empty cluster
// leaves mass at zero and resets the kinematics; callers must check
// emptiness before dividing by barycenter mass.
func (c *Cluster) updateBarycenter() {
	c.barycenter.Mass = 0
	c.barycenter.Shape.Center.Reset0()
	if c.IsEmpty() {
		return
	}
	var position, velocity geometry.Vector2
	for i := range c.bodies {
		m := c.bodies[i].Mass
		c.barycenter.Mass += m
		position = position.Add(c.bodies[i].Shape.Center.Position.Scale(m))
		velocity = velocity.Add(c.bodies[i].Shape.Center.Velocity.Scale(m))
	}
	c.barycenter.Shape.Center.Position = position.Div(c.barycenter.Mass)
	c.barycenter.Shape.Center.Velocity = velocity.Div(c.barycenter.Mass)
}

// Advance integrates the cluster forward by oversampling substeps of
// length dt. Each substep runs four derivative evaluations per body,
// combines them into one corrected acceleration, and then commits a
// single semi-implicit Euler step across all bodies and the barycenter.
//
// Every stage perturbation is scoped to one body and fully reverted
// before the next body's evaluation: no evaluation ever observes
// another body's uncommitted perturbed state.
func (c *Cluster) Advance(dt float64, oversampling int, f Derivative) {
	if c.IsEmpty() {
		return
	}
	c.deframe()
	for n := 0; n < oversampling; n++ {
		for i := range c.bodies {
			center := &c.bodies[i].Shape.Center
			s0 := center.State()
			k1 := f(c.bodies, i)
			center.SetState(s0.Add(k1.Scale(dt / 2)))
			k2 := f(c.bodies, i)
			center.SetState(s0.Add(k2.Scale(dt / 2)))
			k3 := f(c.bodies, i)
			center.SetState(s0.Add(k3.Scale(dt)))
			k4 := f(c.bodies, i)
			center.SetState(s0)
			combined := k1.Add(k2.Scale(2)).Add(k3.Scale(2)).Add(k4).Div(6)
			center.Acceleration = combined.Lower()
		}
		c.updateBarycenterAcceleration()
		c.accelerate(dt)
	}
	c.updateBarycenter()
	c.updateAbsoluteOrigin()
	c.origin.UpdateTrajectory()
	c.reframe()
}

// accelerate commits one semi-implicit Euler step on every body and the
// barycenter.
func (c *Cluster) accelerate(dt float64) {
	c.barycenter.Shape.Center.Accelerate(dt)
	for i := range c.bodies {
		c.bodies[i].Shape.Center.Accelerate(dt)
	}
}

// updateBarycenterAcceleration sets the barycenter acceleration to the
// mass-weighted mean of the body accelerations.
func (c *Cluster) updateBarycenterAcceleration() {
	if c.barycenter.Mass == 0 {
		c.barycenter.Shape.Center.Acceleration = geometry.Vector2{}
		return
	}
	var sum geometry.Vector2
	for i := range c.bodies {
		sum = sum.Add(c.bodies[i].Shape.Center.Acceleration.Scale(c.bodies[i].Mass))
	}
	c.barycenter.Shape.Center.Acceleration = sum.Div(c.barycenter.Mass)
}

// deframe restores absolute coordinates before evaluation.
func (c *Cluster) deframe() {
	c.shiftAll(c.origin.Position, c.origin.Velocity)
}

// reframe returns to display-centered coordinates under the updated
// origin.
func (c *Cluster) reframe() {
	c.shiftAll(c.origin.Position.Neg(), c.origin.Velocity.Neg())
}

func (c *Cluster) shiftAll(dp, dv geometry.Vector2) {
	c.barycenter.Shape.Center.Position = c.barycenter.Shape.Center.Position.Add(dp)
	c.barycenter.Shape.Center.Velocity = c.barycenter.Shape.Center.Velocity.Add(dv)
	for i := range c.bodies {
		center := &c.bodies[i].Shape.Center
		center.Position = center.Position.Add(dp)
		center.Velocity = center.Velocity.Add(dv)
	}
}

// updateAbsoluteOrigin recomputes the origin from the frame referent
// while the cluster holds absolute coordinates.
func (c *Cluster) updateAbsoluteOrigin() {
	switch c.frame {
	case FrameCurrent:
		c.origin.Position = c.bodies[c.current].Shape.Center.Position
		c.origin.Velocity = c.bodies[c.current].Shape.Center.Velocity
	case FrameBarycenter:
		c.origin.Position = c.barycenter.Shape.Center.Position
		c.origin.Velocity = c.barycenter.Shape.Center.Velocity
	default:
		c.origin.Position = geometry.Vector2{}
		c.origin.Velocity = geometry.Vector2{}
	}
}

// UpdateTrajectory records every body's current position in its ring
// buffer.
func (c *Cluster) UpdateTrajectory() {
	for i := range c.bodies {
		c.bodies[i].Shape.Center.UpdateTrajectory()
	}
}

// ClearTrajectory flattens every body's trail onto its current
// position.
func (c *Cluster) ClearTrajectory() {
	for i := range c.bodies {
		c.bodies[i].Shape.Center.ClearTrajectory()
	}
}

// UpdateCurrentTrajectory records only the selected body's position.
func (c *Cluster) UpdateCurrentTrajectory() {
	if c.IsEmpty() {
		return
	}
	c.bodies[c.current].Shape.Center.UpdateTrajectory()
}

// ResetCurrent puts the selected body at rest at the display origin and
// clears its trail.
func (c *Cluster) ResetCurrent() {
	if c.IsEmpty() {
		return
	}
	c.bodies[c.current].Shape.Center.Reset(geometry.Vector2{})
	c.bodies[c.current].Shape.Center.ClearTrajectory()
	c.updateBarycenter()
}

// TranslateCurrent nudges the selected body one BaseTranslation step
// along direction.
func (c *Cluster) TranslateCurrent(direction Direction) {
	if c.IsEmpty() {
		return
	}
	c.bodies[c.current].Shape.Center.Translate(direction.Vector())
	c.updateBarycenter()
}

// Bound wraps every body at the edges of the rectangle of half-extents
// middle.
func (c *Cluster) Bound(middle geometry.Vector2) {
	for i := range c.bodies {
		c.bodies[i].Shape.Bound(middle)
	}
	c.updateBarycenter()
}

// BoundCurrent wraps only the selected body.
func (c *Cluster) BoundCurrent(middle geometry.Vector2) {
	if c.IsEmpty() {
		return
	}
	c.bodies[c.current].Shape.Bound(middle)
	c.updateBarycenter()
}

// WaitDrop places the body under interactive placement (the current,
// provisionally last body) at the screen cursor.
func (c *Cluster) WaitDrop(cursor [2]float64, middle geometry.Vector2, scale float64) {
	if c.IsEmpty() {
		return
	}
	c.bodies[c.current].Shape.SetCursorPosition(cursor, middle, scale)
	c.bodies[c.current].Shape.Center.ClearTrajectory()
	c.updateBarycenter()
}

// WaitSpeed derives the placed body's initial velocity from the
// displacement between the cursor and its dropped position.
func (c *Cluster) WaitSpeed(cursor [2]float64, middle geometry.Vector2, scale float64) {
	if c.IsEmpty() {
		return
	}
	c.bodies[c.current].Shape.SetCursorVelocity(cursor, middle, scale)
	c.bodies[c.current].Shape.Center.ClearTrajectory()
	c.updateBarycenter()
}

// RemoveAways ejects the single farthest body when its barycentric
// distance is a statistical outlier: beyond the mean plus
// awayDeviations standard deviations of the other bodies' distances.
// With fewer than 3 bodies the farthest is not excluded from the
// statistics, which makes ejection unreachable; small samples stay
// intact regardless of spread. Runs at most one ejection per call.
func (c *Cluster) RemoveAways() (Body, bool) {
	if c.Count() < 2 {
		return Body{}, false
	}
	distances := make([]float64, len(c.bodies))
	farthest := 0
	for i := range c.bodies {
		distances[i] = c.bodies[i].Shape.Center.Position.Distance(c.barycenter.Shape.Center.Position)
		if distances[i] > distances[farthest] {
			farthest = i
		}
	}
	sample := distances
	if c.Count() >= 3 {
		sample = make([]float64, 0, len(distances)-1)
		for i, d := range distances {
			if i != farthest {
				sample = append(sample, d)
			}
		}
	}
	mean, stddev := stat.MeanStdDev(sample, nil)
	if distances[farthest] > mean+awayDeviations*stddev {
		return c.Remove(farthest)
	}
	return Body{}, false
}
