package dynamics

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mkarren/nbodies/internal/geometry"
)

// Inclination tilts an orbit out of the reference plane. The dynamics
// are strictly planar; the value is carried from seed records for
// display and forward compatibility.
type Inclination struct {
	Value    float64 `yaml:"value"`
	Argument float64 `yaml:"argument"`
}

// Orbit is a Keplerian orbit around a focus of standard gravitational
// parameter Mu. Apoapsis and periapsis are distances from the focus,
// both non-negative; Argument orients the periapsis in the plane.
type Orbit struct {
	Mu          float64     `yaml:"mu"`
	Apoapsis    float64     `yaml:"apoapsis"`
	Periapsis   float64     `yaml:"periapsis"`
	Argument    float64     `yaml:"argument"`
	Inclination Inclination `yaml:"inclination"`
}

func (o Orbit) SemiMajor() float64 {
	return 0.5 * (o.Apoapsis + o.Periapsis)
}

func (o Orbit) SemiMinor() float64 {
	return math.Sqrt(o.Apoapsis * o.Periapsis)
}

// Degenerate reports whether either axis is below machine epsilon.
// Degenerate orbits report zero speed instead of dividing by near-zero.
func (o Orbit) Degenerate() bool {
	return o.SemiMajor() < machineEpsilon || o.SemiMinor() < machineEpsilon
}

func (o Orbit) Eccentricity() float64 {
	total := o.Apoapsis + o.Periapsis
	if total <= 0 {
		return 0
	}
	return (o.Apoapsis - o.Periapsis) / total
}

// RadiusAt is the focus distance at the given true anomaly.
func (o Orbit) RadiusAt(trueAnomaly float64) float64 {
	a := o.SemiMajor()
	e := o.Eccentricity()
	return a * (1 - e*e) / (1 + e*math.Cos(trueAnomaly))
}

// EccentricAnomalyAt converts a true anomaly to the corresponding
// eccentric anomaly.
func (o Orbit) EccentricAnomalyAt(trueAnomaly float64) float64 {
	e := o.Eccentricity()
	return math.Atan(math.Sin(trueAnomaly) * math.Sqrt(1-e*e) / (1 + e*math.Cos(trueAnomaly)))
}

// FlightAngleAt is the angle between the velocity and the local
// horizontal: zero at periapsis and apoapsis, positive climbing.
func (o Orbit) FlightAngleAt(trueAnomaly float64) float64 {
	e := o.Eccentricity()
	ec := e * math.Cos(trueAnomaly)
	return math.Acos(math.Min(1, (1+ec)/math.Sqrt(1+e*e+2*ec)))
}

// PositionAt is the position relative to the focus at the given true
// anomaly, with the periapsis rotated by Argument.
func (o Orbit) PositionAt(trueAnomaly float64) geometry.Vector2 {
	return geometry.Polar(o.RadiusAt(trueAnomaly), trueAnomaly+o.Argument)
}

// SpeedAt is the velocity at the given true anomaly, magnitude from the
// vis-viva equation. Degenerate orbits yield the zero vector.
func (o Orbit) SpeedAt(trueAnomaly float64) geometry.Vector2 {
	if o.Degenerate() {
		return geometry.Vector2{}
	}
	ang := trueAnomaly + math.Pi/2 - o.FlightAngleAt(trueAnomaly)
	mag := math.Sqrt(o.Mu * (2/o.RadiusAt(trueAnomaly) - 1/o.SemiMajor()))
	return geometry.Polar(mag, ang+o.Argument)
}

// SeedBody is one record of an orbital seed file.
type SeedBody struct {
	Name   string     `yaml:"name"`
	Mass   float64    `yaml:"mass"`
	Color  [4]float32 `yaml:"color"`
	Radius float64    `yaml:"radius"`
	Orbit  Orbit      `yaml:"orbit"`
}

func (b SeedBody) validate() error {
	if b.Mass <= 0 {
		return fmt.Errorf("mass %v is not positive", b.Mass)
	}
	if b.Radius < 0 {
		return fmt.Errorf("radius %v is negative", b.Radius)
	}
	if b.Orbit.Apoapsis < 0 || b.Orbit.Periapsis < 0 {
		return fmt.Errorf("orbit apsides (%v, %v) must be non-negative",
			b.Orbit.Apoapsis, b.Orbit.Periapsis)
	}
	for _, c := range b.Color {
		if c < 0 || c > 1 {
			return fmt.Errorf("color component %v outside [0, 1]", c)
		}
	}
	return nil
}

// LoadSeed reads an orbital seed file: a YAML sequence of SeedBody
// records. Any read, parse or validation failure returns a single
// error and no bodies; the caller never sees a partial seed.
func LoadSeed(path string) ([]SeedBody, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed: %w", err)
	}
	var seed []SeedBody
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parse seed %s: %w", path, err)
	}
	for i, b := range seed {
		if err := b.validate(); err != nil {
			return nil, fmt.Errorf("seed %s, record %d (%q): %w", path, i, b.Name, err)
		}
	}
	return seed, nil
}
