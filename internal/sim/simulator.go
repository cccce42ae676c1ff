package sim

import (
	"fmt"

	"github.com/mkarren/nbodies/internal/config"
	"github.com/mkarren/nbodies/internal/dynamics"
	"github.com/mkarren/nbodies/internal/geometry"
)

// Status is the live toggle set of an interactive session. The zero
// value is a running, unbounded session in the Move state.
type Status struct {
	State         State
	Direction     dynamics.Direction
	Bounded       bool
	Trajectory    bool
	Paused        bool
	EjectOutliers bool
}

// Simulator drives a cluster from discrete commands and a per-tick
// cursor position. It owns the command dispatch; the cluster owns the
// physics.
type Simulator struct {
	cluster *dynamics.Cluster
	cfg     *config.Config
	status  Status
	cursor  [2]float64
	added   int
}

func New(cluster *dynamics.Cluster, cfg *config.Config) *Simulator {
	return &Simulator{
		cluster: cluster,
		cfg:     cfg,
		status: Status{
			Bounded:       cfg.Bounded,
			Trajectory:    cfg.Trajectory,
			Paused:        cfg.Pause,
			EjectOutliers: cfg.EjectOutliers,
		},
	}
}

func (s *Simulator) Cluster() *dynamics.Cluster { return s.cluster }
func (s *Simulator) Config() *config.Config     { return s.cfg }
func (s *Simulator) Status() Status             { return s.status }

// SetCursor records the screen cursor consulted by the placement
// states.
func (s *Simulator) SetCursor(x, y float64) {
	s.cursor = [2]float64{x, y}
}

// SetDirection arms a direction for the next tick. Move applies it as
// thrust on the selected body, Translate as a position nudge; the tick
// consumes it either way.
func (s *Simulator) SetDirection(d dynamics.Direction) {
	s.status.Direction = d
}

// Apply dispatches one discrete command: toggles and adjustments
// resolve immediately, everything else drives the state machine.
func (s *Simulator) Apply(cmd Command) {
	switch cmd {
	case CommandToggleBounded:
		s.status.Bounded = !s.status.Bounded
	case CommandToggleTrajectory:
		s.status.Trajectory = !s.status.Trajectory
	case CommandTogglePause:
		s.status.Paused = !s.status.Paused
	case CommandToggleEject:
		s.status.EjectOutliers = !s.status.EjectOutliers
	case CommandSelectNext:
		s.cluster.IncreaseCurrent(s.status.State.Placing())
	case CommandSelectPrevious:
		s.cluster.DecreaseCurrent()
	case CommandNextFrame:
		s.cluster.NextFrame()
	case CommandZoomIn:
		s.cfg.ZoomIn()
	case CommandZoomOut:
		s.cfg.ZoomOut()
	case CommandMoreOversampling:
		s.cfg.IncreaseOversampling()
	case CommandLessOversampling:
		s.cfg.DecreaseOversampling()
	default:
		s.status.State = s.status.State.Next(cmd)
	}
}

// ClickCommand maps a mouse click to the command it means in the
// current state: placement clicks confirm or cancel, otherwise the
// primary button adds and the secondary removes.
func (s *Simulator) ClickCommand(primary bool) Command {
	if s.status.State.Placing() {
		if primary {
			return CommandConfirm
		}
		return CommandCancel
	}
	if primary {
		return CommandAdd
	}
	return CommandRemove
}

// Step advances one tick of external time dt: it performs the action
// of the current state, lets transient states resolve, and disarms the
// direction.
func (s *Simulator) Step(dt float64) {
	switch s.status.State {
	case StateMove:
		s.move(dt)
	case StateTranslate:
		s.translate()
	case StateAdd:
		s.add()
	case StateRemove:
		s.cluster.Remove(s.cluster.CurrentIndex())
	case StateReset:
		s.cluster.ResetCurrent()
	case StateWaitDrop:
		s.cluster.WaitDrop(s.cursor, s.cfg.Middle(), s.cfg.Distance)
	case StateWaitSpeed:
		s.cluster.WaitSpeed(s.cursor, s.cfg.Middle(), s.cfg.Distance)
	case StateCancelDrop:
		s.cluster.Pop()
	}
	s.status.State = s.status.State.Next(CommandNone)
	s.status.Direction = dynamics.Hold
}

func (s *Simulator) move(dt float64) {
	if s.status.Paused || s.cluster.IsEmpty() {
		return
	}
	f := dynamics.GravityDerivative
	if s.status.Direction != dynamics.Hold {
		target := s.cluster.CurrentIndex()
		thrust := dynamics.Push(s.status.Direction)
		f = func(bodies []dynamics.Body, i int) geometry.Vector4 {
			d := dynamics.GravityDerivative(bodies, i)
			if i == target {
				return geometry.Concat(d.Upper(), d.Lower().Add(thrust))
			}
			return d
		}
	}
	substep := dt * s.cfg.Time / float64(s.cfg.Oversampling)
	s.cluster.Advance(substep, s.cfg.Oversampling, f)
	if s.status.Bounded {
		s.cluster.Bound(s.cfg.HalfExtent())
	}
	if s.status.Trajectory {
		s.cluster.UpdateTrajectory()
	}
	if s.status.EjectOutliers {
		s.cluster.RemoveAways()
	}
}

func (s *Simulator) translate() {
	if s.cluster.IsEmpty() {
		return
	}
	if s.status.Direction != dynamics.Hold {
		s.cluster.TranslateCurrent(s.status.Direction)
	}
	if s.status.Bounded {
		s.cluster.BoundCurrent(s.cfg.HalfExtent())
	}
	s.cluster.UpdateCurrentTrajectory()
}

// add drops a provisional body at the cursor. Mass follows from the
// random radius; the placement states refine position and velocity
// before the body is confirmed.
func (s *Simulator) add() {
	s.added++
	shape := dynamics.AtCursorRandom(s.cursor, s.cfg.Middle(), s.cfg.Distance)
	name := fmt.Sprintf("body-%d", s.added)
	s.cluster.Push(dynamics.NewBody(shape.Radius/10, name, shape))
}
