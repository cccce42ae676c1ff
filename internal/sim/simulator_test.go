package sim

import (
	"context"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/mkarren/nbodies/internal/config"
	"github.com/mkarren/nbodies/internal/dynamics"
	"github.com/mkarren/nbodies/internal/geometry"
	"github.com/mkarren/nbodies/internal/metrics"
)

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Oversampling = 4
	return cfg
}

func binaryCluster() *dynamics.Cluster {
	m := 1e15
	v := math.Sqrt(dynamics.G * m / (2 * 1000))
	return dynamics.NewCluster([]dynamics.Body{
		dynamics.NewBody(m, "a", dynamics.NewCircle(
			dynamics.Inertial(geometry.Vector2{X: -500}, geometry.Vector2{Y: v}), 10, dynamics.White)),
		dynamics.NewBody(m, "b", dynamics.NewCircle(
			dynamics.Inertial(geometry.Vector2{X: 500}, geometry.Vector2{Y: -v}), 10, dynamics.Blue)),
	})
}

func TestPlacementFlow(t *testing.T) {
	s := New(dynamics.EmptyCluster(), testConfig())

	s.SetCursor(370, 320)
	s.Apply(s.ClickCommand(true))
	if s.Status().State != StateAdd {
		t.Fatalf("after click: state %v, want add", s.Status().State)
	}

	s.Step(0.01)
	if s.Status().State != StateWaitDrop {
		t.Fatalf("state %v, want drop", s.Status().State)
	}
	if s.Cluster().Count() != 1 {
		t.Fatalf("count %d, want 1", s.Cluster().Count())
	}

	s.Step(0.01)
	body := s.Cluster().Current()
	if !body.Shape.Center.Position.Equal(geometry.Vector2{X: 50}) {
		t.Fatalf("dropped at %v, want (50, 0)", body.Shape.Center.Position)
	}

	s.Apply(s.ClickCommand(true))
	if s.Status().State != StateWaitSpeed {
		t.Fatalf("state %v, want speed", s.Status().State)
	}

	s.SetCursor(370, 280)
	s.Step(0.01)
	want := geometry.Vector2{Y: 40 / dynamics.SpeedScalingFactor}
	if got := s.Cluster().Current().Shape.Center.Velocity; !got.Equal(want) {
		t.Fatalf("velocity %v, want %v", got, want)
	}

	s.Apply(s.ClickCommand(true))
	if s.Status().State != StateMove {
		t.Fatalf("state %v, want move", s.Status().State)
	}
	if s.Cluster().Count() != 1 {
		t.Fatalf("confirmed body lost, count %d", s.Cluster().Count())
	}
}

func TestPlacementCancelled(t *testing.T) {
	s := New(binaryCluster(), testConfig())

	s.SetCursor(100, 100)
	s.Apply(CommandAdd)
	s.Step(0.01)
	if s.Cluster().Count() != 3 {
		t.Fatalf("count %d, want 3", s.Cluster().Count())
	}

	s.Apply(s.ClickCommand(false))
	if s.Status().State != StateCancelDrop {
		t.Fatalf("state %v, want cancel", s.Status().State)
	}
	s.Step(0.01)
	if s.Cluster().Count() != 2 {
		t.Fatalf("provisional body not popped, count %d", s.Cluster().Count())
	}
	if s.Status().State != StateMove {
		t.Fatalf("state %v, want move", s.Status().State)
	}
}

func TestToggles(t *testing.T) {
	s := New(binaryCluster(), testConfig())

	s.Apply(CommandToggleBounded)
	s.Apply(CommandTogglePause)
	s.Apply(CommandToggleEject)
	s.Apply(CommandToggleTrajectory)
	st := s.Status()
	if !st.Bounded || !st.Paused || !st.EjectOutliers {
		t.Errorf("toggles not set: %+v", st)
	}
	if st.Trajectory {
		t.Error("trajectory should have flipped off")
	}
}

func TestStepAdvancesAndPauseHolds(t *testing.T) {
	s := New(binaryCluster(), testConfig())
	before := s.Cluster().Body(0).Shape.Center.Position

	s.Step(0.1)
	if s.Cluster().Body(0).Shape.Center.Position.Equal(before) {
		t.Fatal("bodies did not move")
	}

	s.Apply(CommandTogglePause)
	frozen := s.Cluster().Body(0).Shape.Center.Position
	s.Step(0.1)
	if !s.Cluster().Body(0).Shape.Center.Position.Equal(frozen) {
		t.Fatal("paused simulation moved")
	}
}

func TestDirectionThrust(t *testing.T) {
	cfg := testConfig()
	s := New(dynamics.NewCluster([]dynamics.Body{
		dynamics.NewBody(1, "probe", dynamics.Centered(1, dynamics.White)),
	}), cfg)

	s.SetDirection(dynamics.Right)
	s.Step(0.01)

	v := s.Cluster().Body(0).Shape.Center.Velocity
	if !scalar.EqualWithinAbs(v.X, dynamics.BaseAcceleration*0.01, 1e-9) {
		t.Fatalf("velocity %v, want x = %v", v, dynamics.BaseAcceleration*0.01)
	}
	if s.Status().Direction != dynamics.Hold {
		t.Fatal("direction must disarm after the tick")
	}

	// The next tick coasts: no thrust, no gravity partner.
	s.Step(0.01)
	if got := s.Cluster().Body(0).Shape.Center.Velocity; !scalar.EqualWithinAbs(got.X, v.X, 1e-9) {
		t.Fatalf("coasting velocity changed: %v", got)
	}
}

func TestTranslateMode(t *testing.T) {
	s := New(binaryCluster(), testConfig())
	s.Apply(CommandToggleTranslate)

	before := s.Cluster().Current().Shape.Center.Position
	s.SetDirection(dynamics.Up)
	s.Step(0.01)

	want := before.Add(geometry.Vector2{Y: dynamics.BaseTranslation})
	if got := s.Cluster().Current().Shape.Center.Position; !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if s.Status().State != StateTranslate {
		t.Fatalf("state %v, want translate", s.Status().State)
	}
}

func TestRemoveCurrent(t *testing.T) {
	s := New(binaryCluster(), testConfig())
	s.Apply(CommandRemove)
	s.Step(0.01)
	if s.Cluster().Count() != 1 {
		t.Fatalf("count %d, want 1", s.Cluster().Count())
	}
	if s.Status().State != StateMove {
		t.Fatalf("state %v, want move", s.Status().State)
	}
}

func TestResetCurrent(t *testing.T) {
	s := New(binaryCluster(), testConfig())
	s.Apply(CommandReset)
	s.Step(0.01)
	center := s.Cluster().Current().Shape.Center
	if !center.Position.Equal(geometry.Vector2{}) || !center.Velocity.Equal(geometry.Vector2{}) {
		t.Fatalf("not reset: %v, %v", center.Position, center.Velocity)
	}
}

func TestSelectionCommands(t *testing.T) {
	s := New(binaryCluster(), testConfig())
	s.Apply(CommandSelectNext)
	if s.Cluster().CurrentIndex() != 1 {
		t.Fatalf("index %d, want 1", s.Cluster().CurrentIndex())
	}
	s.Apply(CommandSelectPrevious)
	if s.Cluster().CurrentIndex() != 0 {
		t.Fatalf("index %d, want 0", s.Cluster().CurrentIndex())
	}

	// While placing, the provisional last body is unreachable.
	s.Apply(CommandAdd)
	s.Step(0.01)
	s.Apply(CommandSelectNext)
	s.Apply(CommandSelectNext)
	if s.Cluster().CurrentIndex() != 1 {
		t.Fatalf("bypassed index %d, want 1", s.Cluster().CurrentIndex())
	}
}

func TestHeadlessRun(t *testing.T) {
	cfg := config.DefaultConfig()
	s := New(binaryCluster(), cfg)

	drift := metrics.NewEnergyDrift()
	result, err := s.Run(context.Background(), 0.05, 20, drift)
	if err != nil {
		t.Fatal(err)
	}
	if result.StepsTaken != 20 || len(result.Energy) != 20 || len(result.Times) != 20 {
		t.Fatalf("series lengths: steps %d, energy %d, times %d",
			result.StepsTaken, len(result.Energy), len(result.Times))
	}
	got, ok := result.Metrics["energy_drift"]
	if !ok {
		t.Fatal("energy_drift missing from metrics")
	}
	if got > 1e-3 {
		t.Fatalf("energy drift %v too large for a near-circular binary", got)
	}
}

func TestHeadlessRunValidation(t *testing.T) {
	s := New(binaryCluster(), testConfig())
	if _, err := s.Run(context.Background(), 0, 10); err == nil {
		t.Error("expected an error for zero dt")
	}
	if _, err := s.Run(context.Background(), 0.1, 0); err == nil {
		t.Error("expected an error for zero steps")
	}
}

func TestHeadlessRunCancellation(t *testing.T) {
	s := New(binaryCluster(), testConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := s.Run(ctx, 0.1, 100)
	if err == nil {
		t.Fatal("expected a context error")
	}
	if result == nil || result.StepsTaken != 0 {
		t.Fatalf("expected an empty partial result, got %+v", result)
	}
}

func TestEnsemble(t *testing.T) {
	seed := []dynamics.SeedBody{
		{Name: "star", Mass: 1e20, Color: [4]float32{1, 1, 0, 1}, Radius: 10, Orbit: dynamics.Orbit{}},
		{Name: "planet", Mass: 1e10, Color: [4]float32{0, 0, 1, 1}, Radius: 2,
			Orbit: dynamics.Orbit{Mu: dynamics.G * 1e20, Apoapsis: 1000, Periapsis: 1000}},
	}
	cfg := testConfig()

	results, err := NewEnsemble(seed, cfg, 3).Run(context.Background(), 0.05, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	for i, r := range results {
		if r.StepsTaken != 10 {
			t.Errorf("run %d: steps %d, want 10", i, r.StepsTaken)
		}
		if _, ok := r.Metrics["spread"]; !ok {
			t.Errorf("run %d: spread missing", i)
		}
	}
}
