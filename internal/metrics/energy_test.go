package metrics

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/sphsim/internal/grid"
	"github.com/san-kum/sphsim/internal/sph"
)

func testState(vel r2.Vec, y float64) *sph.State {
	return &sph.State{
		Particles: []sph.Particle{{Pos: r2.Vec{X: 1, Y: y}, Vel: vel}},
		Params: sph.Params{
			Mass:    2,
			Gravity: -10,
			Bounds:  grid.Bounds{MaxX: 10, MaxY: 10},
		},
	}
}

func TestEnergy(t *testing.T) {
	m := NewEnergy()
	m.Observe(testState(r2.Vec{X: 3, Y: 4}, 0), sph.Diagnostics{})
	if got, want := m.Value(), 0.5*2*25.0; math.Abs(got-want) > 1e-12 {
		t.Errorf("expected energy %f, got %f", want, got)
	}

	m.Observe(testState(r2.Vec{}, 0), sph.Diagnostics{})
	if got := m.Value(); math.Abs(got-12.5) > 1e-12 {
		t.Errorf("expected mean 12.5, got %f", got)
	}
}

func TestEnergyReset(t *testing.T) {
	m := NewEnergy()
	m.Observe(testState(r2.Vec{X: 1}, 0), sph.Diagnostics{})
	if m.Value() == 0 {
		t.Error("expected non-zero energy")
	}
	m.Reset()
	if m.Value() != 0 {
		t.Errorf("expected 0 after reset, got %f", m.Value())
	}
}

func TestEnergyDrift(t *testing.T) {
	m := NewEnergyDrift()
	// potential 2*10*5 = 100 at rest
	m.Observe(testState(r2.Vec{}, 5), sph.Diagnostics{})
	// converted into kinetic energy exactly: 0.5*2*v^2 = 100
	m.Observe(testState(r2.Vec{Y: -10}, 0), sph.Diagnostics{})
	if m.Value() > 1e-12 {
		t.Errorf("expected no drift, got %v", m.Value())
	}

	m.Observe(testState(r2.Vec{}, 0), sph.Diagnostics{})
	if math.Abs(m.Value()-1) > 1e-12 {
		t.Errorf("expected drift 1, got %v", m.Value())
	}
}

func TestStability(t *testing.T) {
	st := testState(r2.Vec{}, 0)
	st.Params.RestDensity = 1
	s := NewStability(2)
	if s.Value() != 1 {
		t.Errorf("empty stability = %v", s.Value())
	}
	for _, d := range []float64{1, 1.5, 3, 1} {
		s.Observe(st, sph.Diagnostics{MaxDensity: d})
	}
	if s.Value() != 0.75 {
		t.Errorf("expected 0.75, got %v", s.Value())
	}
}

func TestPeaks(t *testing.T) {
	pd, mn := NewPeakDensity(), NewMaxNeighbours()
	for _, d := range []sph.Diagnostics{{MaxDensity: 2, MaxNeighbours: 9}, {MaxDensity: 5, MaxNeighbours: 3}} {
		pd.Observe(nil, d)
		mn.Observe(nil, d)
	}
	if pd.Value() != 5 || mn.Value() != 9 {
		t.Errorf("peaks = %v, %v", pd.Value(), mn.Value())
	}
}

func TestDuckTravel(t *testing.T) {
	m := NewDuckTravel()
	st := testState(r2.Vec{}, 0)
	st.Duck = sph.RigidBody{Radius: 1, Mass: 1}
	for _, p := range []r2.Vec{{X: 0, Y: 0}, {X: 3, Y: 4}, {X: 3, Y: 0}} {
		st.Duck.Pos = p
		m.Observe(st, sph.Diagnostics{})
	}
	if m.Value() != 9 {
		t.Errorf("expected travel 9, got %v", m.Value())
	}

	m.Reset()
	st.Duck = sph.RigidBody{}
	m.Observe(st, sph.Diagnostics{})
	if m.Value() != 0 {
		t.Errorf("disabled duck travelled %v", m.Value())
	}
}
