package viz

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/sphsim/internal/config"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	st, err := config.GetPreset("line5").NewState()
	if err != nil {
		t.Fatal(err)
	}
	return NewModel("line5", st, 0.0008, 3)
}

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestTickAdvances(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m, TickMsg(time.Now()))
	if m.diag.Step != 3 {
		t.Errorf("step = %d, want 3", m.diag.Step)
	}
	if len(m.densityHist) != 1 {
		t.Errorf("history length = %d", len(m.densityHist))
	}
}

func TestPauseAndReset(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m, key(" "))
	if m.running {
		t.Fatal("space did not pause")
	}
	m = update(t, m, TickMsg(time.Now()))
	if m.diag.Step != 0 {
		t.Errorf("paused model stepped to %d", m.diag.Step)
	}

	m = update(t, m, key(" "))
	m = update(t, m, TickMsg(time.Now()))
	m = update(t, m, key("r"))
	if m.diag.Step != 0 || m.st.Time != 0 {
		t.Errorf("reset left step %d time %v", m.diag.Step, m.st.Time)
	}
	if m.st.Particles[0].Pos != m.initial.Particles[0].Pos {
		t.Error("reset did not restore positions")
	}
}

func TestAdjustParam(t *testing.T) {
	m := newTestModel(t)
	before := m.st.Params.Viscosity
	m = update(t, m, key("k"))
	if m.st.Params.Viscosity <= before {
		t.Errorf("viscosity %v not increased from %v", m.st.Params.Viscosity, before)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if tunables[m.selected] != "gas_constant" {
		t.Errorf("selected %s", tunables[m.selected])
	}
}

func TestStepsPerFrame(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m, key("+"))
	if m.stepsPerFrame != 6 {
		t.Errorf("steps per frame = %d", m.stepsPerFrame)
	}
	for i := 0; i < 5; i++ {
		m = update(t, m, key("-"))
	}
	if m.stepsPerFrame != 1 {
		t.Errorf("steps per frame = %d, want floor of 1", m.stepsPerFrame)
	}
}

func TestView(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m, TickMsg(time.Now()))
	m = update(t, m, TickMsg(time.Now()))

	out := m.View()
	for _, want := range []string{"LINE5", "Max density", "Neighbours", "viscosity"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}

	m = update(t, m, key("v"))
	if m.mode != particleView {
		t.Fatal("v did not switch view")
	}
	if !strings.ContainsRune(m.View(), '⠀') {
		t.Error("particle view has no braille canvas")
	}
}

func TestQuit(t *testing.T) {
	_, cmd := newTestModel(t).Update(key("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}
