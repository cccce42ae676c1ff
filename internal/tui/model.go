package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mkarren/nbodies/internal/dynamics"
	"github.com/mkarren/nbodies/internal/metrics"
	"github.com/mkarren/nbodies/internal/sim"
	"github.com/mkarren/nbodies/internal/viz"
)

const (
	tickInterval = 33 * time.Millisecond
	historySize  = 120

	// Canvas offset inside the terminal: header lines above, margin
	// columns to the left. Mouse coordinates subtract these.
	headerLines = 2
	marginCols  = 3
)

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Model is the interactive session: one simulator, one canvas pool, and
// the energy history feeding the sparkline.
type Model struct {
	sim  *sim.Simulator
	pool *viz.CanvasPool

	canvasW, canvasH int
	width, height    int

	energy    []float64
	simTime   float64
	lastFrame time.Time
	fps       float64
}

func NewModel(s *sim.Simulator) *Model {
	w, h := 70, 22
	return &Model{
		sim:     s,
		pool:    viz.NewCanvasPool(w, h),
		canvasW: w,
		canvasH: h,
		width:   80,
		height:  30,
		energy:  make([]float64, 0, historySize),
	}
}

func (m *Model) Init() tea.Cmd { return tick() }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeCanvas()
		return m, nil
	case tickMsg:
		now := time.Now()
		if !m.lastFrame.IsZero() {
			if dt := now.Sub(m.lastFrame).Seconds(); dt > 0 {
				m.fps = 1 / dt
			}
		}
		m.lastFrame = now

		m.sim.Step(tickInterval.Seconds())
		m.simTime += tickInterval.Seconds()
		m.recordEnergy()
		return m, tick()
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up":
		m.sim.SetDirection(dynamics.Up)
	case "down":
		m.sim.SetDirection(dynamics.Down)
	case "left":
		m.sim.SetDirection(dynamics.Left)
	case "right":
		m.sim.SetDirection(dynamics.Right)
	case "enter":
		m.sim.Apply(sim.CommandConfirm)
	case "esc":
		m.sim.Apply(sim.CommandCancel)
	case "a":
		m.sim.Apply(sim.CommandAdd)
	case "x":
		m.sim.Apply(sim.CommandRemove)
	case "backspace":
		m.sim.Apply(sim.CommandReset)
	case "j":
		m.sim.Apply(sim.CommandToggleTranslate)
	case "b":
		m.sim.Apply(sim.CommandToggleBounded)
	case "r":
		m.sim.Apply(sim.CommandToggleTrajectory)
	case " ":
		m.sim.Apply(sim.CommandTogglePause)
	case "e":
		m.sim.Apply(sim.CommandToggleEject)
	case "v":
		m.sim.Apply(sim.CommandSelectNext)
	case "c":
		m.sim.Apply(sim.CommandSelectPrevious)
	case "k":
		m.sim.Apply(sim.CommandNextFrame)
	case "i":
		m.sim.Apply(sim.CommandZoomIn)
	case "u":
		m.sim.Apply(sim.CommandZoomOut)
	case "p":
		m.sim.Apply(sim.CommandMoreOversampling)
	case "o":
		m.sim.Apply(sim.CommandLessOversampling)
	}
	return m, nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	x, y := m.cursorToScreen(msg.X, msg.Y)
	m.sim.SetCursor(x, y)

	if msg.Action == tea.MouseActionPress {
		switch msg.Button {
		case tea.MouseButtonLeft:
			m.sim.Apply(m.sim.ClickCommand(true))
		case tea.MouseButtonRight:
			m.sim.Apply(m.sim.ClickCommand(false))
		}
	}
	return m, nil
}

func (m *Model) resizeCanvas() {
	w := m.width - 2*marginCols
	h := m.height - headerLines - 8
	if w < 40 {
		w = 40
	}
	if h < 10 {
		h = 10
	}
	if w == m.canvasW && h == m.canvasH {
		return
	}
	m.canvasW = w
	m.canvasH = h
	m.pool = viz.NewCanvasPool(w, h)
}

// scale is the canvas projection factor, in subpixels per world unit.
// The configured screen width maps onto the full canvas width.
func (m *Model) scale() float64 {
	return m.sim.Config().Distance * float64(2*m.canvasW) / m.sim.Config().Width
}

// cursorToScreen inverts the canvas projection: a terminal cell back to
// the configured screen coordinates the placement states consume.
func (m *Model) cursorToScreen(col, row int) (float64, float64) {
	cfg := m.sim.Config()
	sub := float64(2*m.canvasW) / cfg.Width

	sx := float64(2*(col-marginCols)) / sub
	sy := cfg.Height/2 - float64(2*m.canvasH-4*(row-headerLines))/sub
	return sx, sy
}

func (m *Model) recordEnergy() {
	if m.sim.Cluster().IsEmpty() {
		return
	}
	m.energy = append(m.energy, metrics.TotalEnergy(m.sim.Cluster().Bodies()))
	if len(m.energy) > historySize {
		m.energy = m.energy[1:]
	}
}

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.viewHeader())
	b.WriteString(m.viewCanvas())
	b.WriteString(m.viewStatus())
	b.WriteString(m.viewHints())

	return b.String()
}

func (m *Model) viewHeader() string {
	st := m.sim.Status()

	status := viz.StatusRunning.Render("● running")
	if st.Paused {
		status = viz.StatusPaused.Render("○ paused")
	}
	if st.State.Placing() {
		status = viz.StatusPlacing.Render("◆ " + st.State.String())
	}

	frame := viz.Subtle.Render("frame: " + m.sim.Cluster().Frame().String())
	return fmt.Sprintf("\n %s  %s  %s  %s\n",
		viz.Title.Render("n-bodies"), status, frame,
		viz.Faint.Render(fmt.Sprintf("%.0ffps", m.fps)))
}

func (m *Model) viewCanvas() string {
	canvas := m.pool.Get()
	defer m.pool.Put(canvas)

	cluster := m.sim.Cluster()
	scale := m.scale()

	if m.sim.Status().Trajectory {
		for i := 0; i < cluster.Count(); i++ {
			canvas.PlotTrail(&cluster.Body(i).Shape.Center, scale)
		}
	}
	for i := 0; i < cluster.Count(); i++ {
		canvas.PlotBody(cluster.Body(i), scale)
	}
	if !cluster.IsEmpty() {
		canvas.PlotCross(cluster.Barycenter().Shape.Center.Position, scale)
	}

	var b strings.Builder
	margin := strings.Repeat(" ", marginCols)
	for _, row := range canvas.Grid {
		b.WriteString(margin + string(row) + "\n")
	}
	return b.String()
}

func (m *Model) viewStatus() string {
	cluster := m.sim.Cluster()
	cfg := m.sim.Config()
	st := m.sim.Status()

	var b strings.Builder

	selected := "-"
	if !cluster.IsEmpty() {
		selected = cluster.Current().Name
	}
	b.WriteString(fmt.Sprintf("\n   %s %s   %s %s   %s %s   %s %s\n",
		viz.Subtle.Render("bodies"), viz.Value.Render(fmt.Sprintf("%d", cluster.Count())),
		viz.Subtle.Render("selected"), viz.Selected.Render(selected),
		viz.Subtle.Render("zoom"), viz.Value.Render(fmt.Sprintf("%.3g", cfg.Distance)),
		viz.Subtle.Render("oversampling"), viz.Value.Render(fmt.Sprintf("%d", cfg.Oversampling))))

	flags := []string{}
	if st.Bounded {
		flags = append(flags, "bounded")
	}
	if st.Trajectory {
		flags = append(flags, "trails")
	}
	if st.EjectOutliers {
		flags = append(flags, "eject")
	}
	if st.State == sim.StateTranslate {
		flags = append(flags, "translate")
	}
	if len(flags) > 0 {
		b.WriteString("   " + viz.Faint.Render(strings.Join(flags, "  ")) + "\n")
	}

	if len(m.energy) > 1 {
		b.WriteString(fmt.Sprintf("   %s %s\n",
			viz.Subtle.Render("energy"),
			viz.Title.Render(viz.Sparkline(m.energy, 32))))
	}
	return b.String()
}

func (m *Model) viewHints() string {
	return "\n" + viz.Faint.Render(
		"   click add/confirm  rclick remove/cancel  arrows thrust  j translate"+
			"\n   space pause  k frame  c/v select  i/u zoom  p/o precision  b bound  q quit") + "\n"
}

// Run starts the interactive session and blocks until it exits.
func Run(s *sim.Simulator) error {
	p := tea.NewProgram(NewModel(s), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
