package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/sphsim/internal/grid"
	"github.com/san-kum/sphsim/internal/render"
	"github.com/san-kum/sphsim/internal/sph"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 600
	frameInterval   = time.Second / 30
)

var (
	canvasStyle      = lipgloss.NewStyle().Padding(1, 2)
	statsStyle       = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(45)
	headerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	activeParamStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	graphStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
	errorStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

// tunables are the parameters adjustable from the keyboard.
var tunables = []string{"viscosity", "gas_constant", "gravity", "damping"}

type TickMsg time.Time

type viewMode int

const (
	densityView viewMode = iota
	particleView
)

// Model contains the simulation state, the last grid and diagnostics, and
// the UI context.
type Model struct {
	name          string
	st            *sph.State
	initial       *sph.State
	g             *grid.Grid
	diag          sph.Diagnostics
	dt            float64
	stepsPerFrame int
	canvas        *render.Canvas
	mode          viewMode
	running       bool
	selected      int
	densityHist   []float64
	err           error
}

// NewModel takes ownership of st.
func NewModel(name string, st *sph.State, dt float64, stepsPerFrame int) Model {
	if stepsPerFrame < 1 {
		stepsPerFrame = 1
	}
	m := Model{
		name:          name,
		st:            st,
		initial:       st.Clone(),
		dt:            dt,
		stepsPerFrame: stepsPerFrame,
		canvas:        render.NewCanvas(width, height),
		running:       true,
		densityHist:   make([]float64, 0, historyCapacity),
	}
	m.g = bucket(st)
	return m
}

// bucket builds a grid for the current positions so the first frame can be
// drawn before any step has run.
func bucket(st *sph.State) *grid.Grid {
	g := grid.New(st.Params.H, st.Params.Bounds)
	for i := range st.Particles {
		g.Insert(i, st.Particles[i].Pos.X, st.Particles[i].Pos.Y)
	}
	return g
}

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick()
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "v":
			m.mode = 1 - m.mode
		case "tab":
			m.selected = (m.selected + 1) % len(tunables)
		case "up", "k":
			m.adjustParam(1.05)
		case "down", "j":
			m.adjustParam(0.95)
		case "+", "=":
			m.stepsPerFrame *= 2
		case "-", "_":
			m.stepsPerFrame = max(1, m.stepsPerFrame/2)
		}
	case TickMsg:
		if m.running && m.err == nil {
			m.step()
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) adjustParam(factor float64) {
	name := tunables[m.selected]
	v, _ := m.st.Params.Get(name)
	p, err := m.st.Params.With(name, v*factor)
	if err != nil {
		return
	}
	m.st.Params = p
}

// step advances the simulation by one frame's worth of steps.
func (m *Model) step() {
	for i := 0; i < m.stepsPerFrame; i++ {
		m.g, m.diag = sph.Advance(m.st, m.dt, m.diag)
		if !m.st.IsValid() {
			m.err = fmt.Errorf("state diverged at step %d", m.diag.Step)
			m.running = false
			return
		}
	}

	m.densityHist = append(m.densityHist, m.diag.MaxDensity)
	if len(m.densityHist) > historyCapacity {
		m.densityHist = m.densityHist[1:]
	}
}

// reset restores the initial state and parameters.
func (m *Model) reset() {
	m.st = m.initial.Clone()
	m.g = bucket(m.st)
	m.diag = sph.Diagnostics{}
	m.densityHist = m.densityHist[:0]
	m.err = nil
}

func (m Model) frame() string {
	if m.mode == particleView {
		m.canvas.Plot(m.st)
		return m.canvas.String()
	}
	f := render.SampleField(m.st, m.g, width, height)
	scale := m.diag.MaxDensity
	if scale == 0 {
		scale = f.Max
	}
	return render.Digits(f, scale)
}

// View renders the TUI interface.
func (m Model) View() string {
	canvasView := canvasStyle.Render(m.frame())

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.name)) + "\n")

	status := "RUNNING"
	switch {
	case m.err != nil:
		status = errorStyle.Render("DIVERGED")
	case !m.running:
		status = "PAUSED"
	}
	s.WriteString(status + "\n\n")

	if len(m.densityHist) > 1 {
		chart := asciigraph.Plot(m.densityHist, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Max density"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Time", fmt.Sprintf("%.4fs", m.st.Time))
	row("Step", fmt.Sprintf("%d (x%d)", m.diag.Step, m.stepsPerFrame))
	row("Particles", fmt.Sprintf("%d", len(m.st.Particles)))
	row("Max density", fmt.Sprintf("%.4g", m.diag.MaxDensity))
	row("Neighbours", fmt.Sprintf("%d", m.diag.MaxNeighbours))
	row("Frame time", m.diag.FrameTime.Round(time.Microsecond).String())
	row("H", fmt.Sprintf("%g", m.diag.H))
	row("Grid", fmt.Sprintf("%dx%d", m.diag.GridWidth, m.diag.GridHeight))
	if m.st.Duck.Enabled() {
		row("Duck", fmt.Sprintf("(%.0f, %.0f)", m.st.Duck.Pos.X, m.st.Duck.Pos.Y))
	}

	s.WriteString("\nPARAMETERS\n")
	for i, name := range tunables {
		v, _ := m.st.Params.Get(name)
		line := fmt.Sprintf("%-13s %.4g", name, v)
		if i == m.selected {
			s.WriteString(activeParamStyle.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + labelStyle.Width(0).Render(line) + "\n")
		}
	}

	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause R:Reset Q:Quit\nV:View Tab:Param ↑↓:Tune +-:Speed"))
	statsView := statsStyle.Render(s.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
}
