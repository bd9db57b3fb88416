package metrics

import (
	"math"

	"github.com/san-kum/sphsim/internal/sph"
)

// Energy is the mean total kinetic energy over the observed steps.
type Energy struct {
	name        string
	samples     int
	totalEnergy float64
}

func NewEnergy() *Energy {
	return &Energy{name: "kinetic_energy"}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(st *sph.State, _ sph.Diagnostics) {
	e.totalEnergy += st.KineticEnergy()
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.totalEnergy / float64(e.samples)
}

func (e *Energy) Reset() {
	e.totalEnergy = 0
	e.samples = 0
}

// EnergyDrift tracks the largest relative change in mechanical energy
// (kinetic plus gravitational potential) since the first observation.
type EnergyDrift struct {
	name          string
	initialEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift() *EnergyDrift {
	return &EnergyDrift{name: "energy_drift"}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(st *sph.State, _ sph.Diagnostics) {
	energy := MechanicalEnergy(st)

	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}

// MechanicalEnergy is kinetic energy plus potential energy measured from the
// domain floor. Gravity is negative when it pulls toward MinY.
func MechanicalEnergy(st *sph.State) float64 {
	p := st.Params
	pe := 0.0
	for i := range st.Particles {
		pe -= p.Mass * p.Gravity * (st.Particles[i].Pos.Y - p.Bounds.MinY)
	}
	if st.Duck.Enabled() {
		pe -= st.Duck.Mass * p.Gravity * (st.Duck.Pos.Y - p.Bounds.MinY)
	}
	return st.KineticEnergy() + pe
}
