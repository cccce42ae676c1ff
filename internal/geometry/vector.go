package geometry

import "math"

type Vector2 struct {
	X, Y float64
}

type Vector3 struct {
	X, Y, Z float64
}

type Vector4 struct {
	X, Y, Z, W float64
}

// Polar builds the vector of magnitude mag pointing at angle ang,
// measured counterclockwise from the x axis.
func Polar(mag, ang float64) Vector2 {
	return Vector2{X: mag * math.Cos(ang), Y: mag * math.Sin(ang)}
}

// Radial is the unit vector at angle ang.
func Radial(ang float64) Vector2 {
	return Vector2{X: math.Cos(ang), Y: math.Sin(ang)}
}

// Orthoradial is the unit vector orthogonal to Radial(ang), oriented
// in the direction of increasing angle.
func Orthoradial(ang float64) Vector2 {
	return Vector2{X: -math.Sin(ang), Y: math.Cos(ang)}
}

func (v Vector2) Add(w Vector2) Vector2 { return Vector2{v.X + w.X, v.Y + w.Y} }
func (v Vector2) Sub(w Vector2) Vector2 { return Vector2{v.X - w.X, v.Y - w.Y} }
func (v Vector2) Neg() Vector2          { return Vector2{-v.X, -v.Y} }
func (v Vector2) Scale(s float64) Vector2 {
	return Vector2{v.X * s, v.Y * s}
}
func (v Vector2) Div(s float64) Vector2 {
	return Vector2{v.X / s, v.Y / s}
}

func (v Vector2) Dot(w Vector2) float64 { return v.X*w.X + v.Y*w.Y }

func (v Vector2) Magnitude2() float64 { return v.X*v.X + v.Y*v.Y }
func (v Vector2) Magnitude() float64  { return math.Sqrt(v.Magnitude2()) }

func (v Vector2) Distance2(w Vector2) float64 {
	dx := v.X - w.X
	dy := v.Y - w.Y
	return dx*dx + dy*dy
}

func (v Vector2) Distance(w Vector2) float64 {
	return math.Sqrt(v.Distance2(w))
}

// Normalize divides by the magnitude. At zero magnitude the result is
// NaN-valued; guarding is the caller's responsibility.
func (v Vector2) Normalize() Vector2 {
	return v.Div(v.Magnitude())
}

// Equal reports approximate equality, within the smallest positive
// float of squared distance.
func (v Vector2) Equal(w Vector2) bool {
	return v.Distance2(w) < math.SmallestNonzeroFloat64
}

// Angle is the polar angle of v, in (-pi, pi].
func (v Vector2) Angle() float64 { return math.Atan2(v.Y, v.X) }

// Radius is the polar radius of v, an alias of Magnitude.
func (v Vector2) Radius() float64 { return v.Magnitude() }

// LeftUp maps centered world coordinates to left-up screen coordinates,
// scaling by scale around the screen middle. The y axis flips: world y
// grows upward, screen y grows downward.
func (v Vector2) LeftUp(middle Vector2, scale float64) Vector2 {
	return Vector2{X: v.X*scale + middle.X, Y: middle.Y - v.Y*scale}
}

// Centered is the inverse of LeftUp: left-up screen coordinates back to
// centered world coordinates.
func (v Vector2) Centered(middle Vector2, scale float64) Vector2 {
	return Vector2{X: (v.X - middle.X) / scale, Y: (middle.Y - v.Y) / scale}
}

func (v Vector3) Add(w Vector3) Vector3 { return Vector3{v.X + w.X, v.Y + w.Y, v.Z + w.Z} }
func (v Vector3) Sub(w Vector3) Vector3 { return Vector3{v.X - w.X, v.Y - w.Y, v.Z - w.Z} }
func (v Vector3) Neg() Vector3          { return Vector3{-v.X, -v.Y, -v.Z} }
func (v Vector3) Scale(s float64) Vector3 {
	return Vector3{v.X * s, v.Y * s, v.Z * s}
}
func (v Vector3) Div(s float64) Vector3 {
	return Vector3{v.X / s, v.Y / s, v.Z / s}
}

func (v Vector3) Dot(w Vector3) float64 { return v.X*w.X + v.Y*w.Y + v.Z*w.Z }

func (v Vector3) Magnitude2() float64 { return v.X*v.X + v.Y*v.Y + v.Z*v.Z }
func (v Vector3) Magnitude() float64  { return math.Sqrt(v.Magnitude2()) }

func (v Vector3) Distance2(w Vector3) float64 {
	dx := v.X - w.X
	dy := v.Y - w.Y
	dz := v.Z - w.Z
	return dx*dx + dy*dy + dz*dz
}

func (v Vector3) Distance(w Vector3) float64 {
	return math.Sqrt(v.Distance2(w))
}

func (v Vector3) Normalize() Vector3 {
	return v.Div(v.Magnitude())
}

func (v Vector3) Equal(w Vector3) bool {
	return v.Distance2(w) < math.SmallestNonzeroFloat64
}

// Concat packs two plane vectors into a Vector4, upper half first.
func Concat(upper, lower Vector2) Vector4 {
	return Vector4{X: upper.X, Y: upper.Y, Z: lower.X, W: lower.Y}
}

// Upper is the (X, Y) half of v.
func (v Vector4) Upper() Vector2 { return Vector2{v.X, v.Y} }

// Lower is the (Z, W) half of v.
func (v Vector4) Lower() Vector2 { return Vector2{v.Z, v.W} }

func (v Vector4) Add(w Vector4) Vector4 {
	return Vector4{v.X + w.X, v.Y + w.Y, v.Z + w.Z, v.W + w.W}
}
func (v Vector4) Sub(w Vector4) Vector4 {
	return Vector4{v.X - w.X, v.Y - w.Y, v.Z - w.Z, v.W - w.W}
}
func (v Vector4) Neg() Vector4 { return Vector4{-v.X, -v.Y, -v.Z, -v.W} }
func (v Vector4) Scale(s float64) Vector4 {
	return Vector4{v.X * s, v.Y * s, v.Z * s, v.W * s}
}
func (v Vector4) Div(s float64) Vector4 {
	return Vector4{v.X / s, v.Y / s, v.Z / s, v.W / s}
}

func (v Vector4) Dot(w Vector4) float64 {
	return v.X*w.X + v.Y*w.Y + v.Z*w.Z + v.W*w.W
}

func (v Vector4) Magnitude2() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z + v.W*v.W
}
func (v Vector4) Magnitude() float64 { return math.Sqrt(v.Magnitude2()) }

func (v Vector4) Distance2(w Vector4) float64 {
	return v.Sub(w).Magnitude2()
}

func (v Vector4) Distance(w Vector4) float64 {
	return math.Sqrt(v.Distance2(w))
}

func (v Vector4) Normalize() Vector4 {
	return v.Div(v.Magnitude())
}

func (v Vector4) Equal(w Vector4) bool {
	return v.Distance2(w) < math.SmallestNonzeroFloat64
}
