package metrics

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/sphsim/internal/sph"
)

// PeakDensity is the largest density seen in any step.
type PeakDensity struct{ peak float64 }

func NewPeakDensity() *PeakDensity { return &PeakDensity{} }

func (p *PeakDensity) Name() string   { return "peak_density" }
func (p *PeakDensity) Value() float64 { return p.peak }
func (p *PeakDensity) Reset()         { p.peak = 0 }

func (p *PeakDensity) Observe(_ *sph.State, d sph.Diagnostics) {
	p.peak = max(p.peak, d.MaxDensity)
}

// MaxNeighbours is the largest neighbour-set size seen in any step.
type MaxNeighbours struct{ peak int }

func NewMaxNeighbours() *MaxNeighbours { return &MaxNeighbours{} }

func (m *MaxNeighbours) Name() string   { return "max_neighbours" }
func (m *MaxNeighbours) Value() float64 { return float64(m.peak) }
func (m *MaxNeighbours) Reset()         { m.peak = 0 }

func (m *MaxNeighbours) Observe(_ *sph.State, d sph.Diagnostics) {
	m.peak = max(m.peak, d.MaxNeighbours)
}

// DuckTravel is the path length covered by the rigid body.
type DuckTravel struct {
	last    r2.Vec
	started bool
	dist    float64
}

func NewDuckTravel() *DuckTravel { return &DuckTravel{} }

func (d *DuckTravel) Name() string { return "duck_travel" }

func (d *DuckTravel) Observe(st *sph.State, _ sph.Diagnostics) {
	if !st.Duck.Enabled() {
		return
	}
	if d.started {
		d.dist += r2.Norm(r2.Sub(st.Duck.Pos, d.last))
	}
	d.last = st.Duck.Pos
	d.started = true
}

func (d *DuckTravel) Value() float64 { return d.dist }

func (d *DuckTravel) Reset() {
	*d = DuckTravel{}
}
