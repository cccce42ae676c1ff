package dynamics

import (
	"fmt"
	"math/rand"

	"github.com/mkarren/nbodies/internal/geometry"
)

// SpeedScalingFactor divides the cursor displacement when deriving an
// initial velocity during interactive placement.
const SpeedScalingFactor = 2.0

// Color is an RGBA quadruple with components in [0, 1].
type Color [4]float32

var (
	White = Color{1, 1, 1, 1}
	Red   = Color{1, 0, 0, 1}
	Green = Color{0, 1, 0, 1}
	Blue  = Color{0, 0, 1, 1}
)

// RandomColor picks an opaque color with each channel in [0.2, 1).
func RandomColor() Color {
	channel := func() float32 { return 0.2 + 0.8*rand.Float32() }
	return Color{channel(), channel(), channel(), 1}
}

// Circle is the drawable shape of a body: a kinematic center, a radius
// and a color. The radius also inflates the bounding box used for edge
// wrapping.
type Circle struct {
	Center Point
	Radius float64
	Color  Color
}

func NewCircle(center Point, radius float64, color Color) Circle {
	return Circle{Center: center, Radius: radius, Color: color}
}

// Centered is a circle at rest at the origin.
func Centered(radius float64, color Color) Circle {
	return NewCircle(Stationary(geometry.Vector2{}), radius, color)
}

// AtCursor places a stationary circle at a screen cursor, converting
// through the centered transform.
func AtCursor(cursor [2]float64, radius float64, color Color, middle geometry.Vector2, scale float64) Circle {
	position := geometry.Vector2{X: cursor[0], Y: cursor[1]}.Centered(middle, scale)
	return NewCircle(Stationary(position), radius, color)
}

// AtCursorRandom places a circle at the cursor with a random radius in
// [20, 40) and a random color.
func AtCursorRandom(cursor [2]float64, middle geometry.Vector2, scale float64) Circle {
	return AtCursor(cursor, 20*rand.Float64()+20, RandomColor(), middle, scale)
}

// Bound wraps the circle to the opposite edge of the rectangle of
// half-extents middle, inflated by the radius, when its bounding box
// fully exits on an axis. A wrap, not a clamp: a body drifting off the
// right edge reappears on the left with its velocity intact.
func (c *Circle) Bound(middle geometry.Vector2) {
	left := -c.Radius - middle.X
	right := c.Radius + middle.X
	down := -c.Radius - middle.Y
	up := c.Radius + middle.Y

	if c.Center.Position.X < left {
		c.Center.Position.X = right
	} else if c.Center.Position.X > right {
		c.Center.Position.X = left
	}

	if c.Center.Position.Y < down {
		c.Center.Position.Y = up
	} else if c.Center.Position.Y > up {
		c.Center.Position.Y = down
	}
}

// SetCursorPosition moves the circle to a screen cursor.
func (c *Circle) SetCursorPosition(cursor [2]float64, middle geometry.Vector2, scale float64) {
	c.Center.Position = geometry.Vector2{X: cursor[0], Y: cursor[1]}.Centered(middle, scale)
}

// SetCursorVelocity derives a velocity from the displacement between
// the cursor and the circle's position.
func (c *Circle) SetCursorVelocity(cursor [2]float64, middle geometry.Vector2, scale float64) {
	target := geometry.Vector2{X: cursor[0], Y: cursor[1]}.Centered(middle, scale)
	c.Center.Velocity = target.Sub(c.Center.Position).Div(SpeedScalingFactor)
}

// Body is a named point mass. Mass is positive for every real body;
// only the synthetic barycenter may carry zero mass, when the cluster
// is empty.
type Body struct {
	Mass  float64
	Name  string
	Shape Circle
}

func NewBody(mass float64, name string, shape Circle) Body {
	return Body{Mass: mass, Name: name, Shape: shape}
}

// NewOrbitalBody seeds a body from Keplerian elements evaluated at the
// given true anomaly. The orbit is consulted exactly once, here; the
// integrator never sees it again.
func NewOrbitalBody(seed SeedBody, trueAnomaly float64) Body {
	center := Inertial(seed.Orbit.PositionAt(trueAnomaly), seed.Orbit.SpeedAt(trueAnomaly))
	return NewBody(seed.Mass, seed.Name, NewCircle(center, seed.Radius, Color(seed.Color)))
}

func (b *Body) String() string {
	p := b.Shape.Center
	return fmt.Sprintf("%s: mass %.3g, position (%.3g, %.3g), velocity (%.3g, %.3g)",
		b.Name, b.Mass, p.Position.X, p.Position.Y, p.Velocity.X, p.Velocity.Y)
}
