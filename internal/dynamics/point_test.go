package dynamics

import (
	"testing"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/mkarren/nbodies/internal/geometry"
)

func TestTrajectoryFreshPoint(t *testing.T) {
	p := Stationary(geometry.Vector2{X: 3, Y: -2})
	for k := 0; k < TrajectorySize; k++ {
		if got := p.PositionAt(k); got != (geometry.Vector2{X: 3, Y: -2}) {
			t.Fatalf("sample %d: got %v, want the initial position", k, got)
		}
	}
}

func TestTrajectoryChronology(t *testing.T) {
	p := Stationary(geometry.Vector2{})
	writes := TrajectorySize + 10
	for i := 0; i < writes; i++ {
		p.Position = geometry.Vector2{X: float64(i)}
		p.UpdateTrajectory()
	}
	// The buffer holds the last TrajectorySize writes, oldest first.
	for k := 0; k < TrajectorySize; k++ {
		want := float64(writes - TrajectorySize + k)
		if got := p.PositionAt(k).X; got != want {
			t.Fatalf("sample %d: got %v, want %v", k, got, want)
		}
	}
}

func TestClearTrajectory(t *testing.T) {
	p := Stationary(geometry.Vector2{})
	for i := 0; i < 40; i++ {
		p.Position = geometry.Vector2{X: float64(i), Y: float64(-i)}
		p.UpdateTrajectory()
	}
	p.Position = geometry.Vector2{X: 7, Y: 9}
	p.ClearTrajectory()
	for k := 0; k < TrajectorySize; k++ {
		if got := p.PositionAt(k); got != p.Position {
			t.Fatalf("sample %d: got %v, want %v", k, got, p.Position)
		}
	}
}

func TestAccelerateSemiImplicit(t *testing.T) {
	p := Stationary(geometry.Vector2{})
	p.Acceleration = geometry.Vector2{Y: -10}
	p.Accelerate(0.5)
	// Velocity updates first, then position uses the new velocity.
	if p.Velocity != (geometry.Vector2{Y: -5}) {
		t.Fatalf("velocity: got %v, want (0, -5)", p.Velocity)
	}
	if p.Position != (geometry.Vector2{Y: -2.5}) {
		t.Fatalf("position: got %v, want (0, -2.5)", p.Position)
	}
}

func TestTranslateScalesByBaseTranslation(t *testing.T) {
	p := Stationary(geometry.Vector2{X: 1})
	p.Translate(geometry.Vector2{X: 1, Y: -1})
	want := geometry.Vector2{X: 1 + BaseTranslation, Y: -BaseTranslation}
	if p.Position != want {
		t.Fatalf("got %v, want %v", p.Position, want)
	}
	if p.Velocity != (geometry.Vector2{}) {
		t.Fatalf("translate must not touch velocity, got %v", p.Velocity)
	}
}

func TestStateRoundTrip(t *testing.T) {
	p := Inertial(geometry.Vector2{X: 1, Y: 2}, geometry.Vector2{X: 3, Y: 4})
	s := p.State()
	var q Point
	q.SetState(s)
	if q.Position != p.Position || q.Velocity != p.Velocity {
		t.Fatalf("round trip lost state: got (%v, %v)", q.Position, q.Velocity)
	}
}

func TestSetOriginTranslatesEverything(t *testing.T) {
	p := Inertial(geometry.Vector2{X: 1, Y: 2}, geometry.Vector2{X: 3, Y: 4})
	for i := 0; i < 5; i++ {
		p.Position = p.Position.Add(geometry.Vector2{X: 1})
		p.UpdateTrajectory()
	}
	before := make([]geometry.Vector2, TrajectorySize)
	for k := range before {
		before[k] = p.PositionAt(k)
	}

	origin := Inertial(geometry.Vector2{X: 10}, geometry.Vector2{X: 1})
	p.SetOrigin(&origin, nil)

	if !p.Position.Equal(geometry.Vector2{X: -4, Y: 2}) {
		t.Fatalf("position: got %v, want (-4, 2)", p.Position)
	}
	if !p.Velocity.Equal(geometry.Vector2{X: 2, Y: 4}) {
		t.Fatalf("velocity: got %v, want (2, 4)", p.Velocity)
	}
	for k := 0; k < TrajectorySize; k++ {
		want := before[k].Sub(geometry.Vector2{X: 10})
		if got := p.PositionAt(k); !got.Equal(want) {
			t.Fatalf("sample %d: got %v, want %v", k, got, want)
		}
	}
}

func TestSetOriginReplacesOldOrigin(t *testing.T) {
	p := Inertial(geometry.Vector2{X: 5}, geometry.Vector2{})
	old := Stationary(geometry.Vector2{X: 2})
	next := Stationary(geometry.Vector2{X: 7})
	// Rebasing from old to next shifts by the difference only.
	p.SetOrigin(&next, &old)
	if !scalar.EqualWithinAbs(p.Position.X, 0, 1e-12) {
		t.Fatalf("got %v, want x = 0", p.Position)
	}
}
