package metrics

import (
	"github.com/san-kum/sphsim/internal/sph"
)

// Stability is the fraction of steps whose peak density stayed below
// threshold times the rest density.
type Stability struct {
	name       string
	threshold  float64
	violations int
	samples    int
}

func NewStability(threshold float64) *Stability {
	return &Stability{
		name:      "stability",
		threshold: threshold,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(st *sph.State, d sph.Diagnostics) {
	s.samples++
	if d.MaxDensity > s.threshold*st.Params.RestDensity {
		s.violations++
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}
