package sph

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/sphsim/internal/grid"
)

// Particle is one fluid sample. Its index in State.Particles is its identity.
type Particle struct {
	Pos      r2.Vec
	Vel      r2.Vec
	Force    r2.Vec // force from the most recent force stage
	OldForce r2.Vec // force from the stage before that
	Density  float64
	Pressure float64
}

// RigidBody is the single dynamic circular obstacle ("duck").
// A body with zero radius or mass does not interact with the fluid.
type RigidBody struct {
	Pos    r2.Vec
	Vel    r2.Vec
	Radius float64
	Mass   float64
}

// Enabled reports whether the body takes part in the simulation.
func (b RigidBody) Enabled() bool { return b.Radius > 0 && b.Mass > 0 }

// State owns the particle array and the rigid body. It is created once and
// mutated in place by Advance.
type State struct {
	Particles []Particle
	Duck      RigidBody
	Params    Params
	Time      float64
}

// NewState validates p and wraps the given particles. Particles outside the
// domain are clamped onto it.
func NewState(p Params, particles []Particle, duck RigidBody) (*State, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	for i := range particles {
		particles[i].Pos = clampVec(p.Bounds, particles[i].Pos)
	}
	return &State{Particles: particles, Duck: duck, Params: p}, nil
}

// NewLatticeState builds the canonical starting condition: a regular lattice
// filling block with the given spacing, every particle at rest with density 1
// and zero force. When p.RestDensity is zero it is derived from the lattice as
// particle mass over the area each particle occupies.
func NewLatticeState(p Params, block grid.Bounds, spacing float64, duck RigidBody) (*State, error) {
	if spacing <= 0 {
		return nil, fmt.Errorf("lattice spacing must be positive, got %v", spacing)
	}
	if block.MaxX < block.MinX || block.MaxY < block.MinY {
		return nil, fmt.Errorf("lattice block %+v is inverted", block)
	}
	if !p.Bounds.Contains(block.MinX, block.MinY) || !p.Bounds.Contains(block.MaxX, block.MaxY) {
		return nil, fmt.Errorf("lattice block %+v outside domain %+v", block, p.Bounds)
	}

	nx := int(math.Floor(block.Width()/spacing)) + 1
	ny := int(math.Floor(block.Height()/spacing)) + 1

	particles := make([]Particle, 0, nx*ny)
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			particles = append(particles, Particle{
				Pos:     r2.Vec{X: block.MinX + float64(i)*spacing, Y: block.MinY + float64(j)*spacing},
				Density: 1,
			})
		}
	}

	if p.RestDensity == 0 {
		area := float64(len(particles)) * spacing * spacing
		p.RestDensity = float64(len(particles)) * p.Mass / area
	}

	return NewState(p, particles, duck)
}

// Clone returns a deep copy suitable for handing to another goroutine.
func (s *State) Clone() *State {
	c := *s
	c.Particles = make([]Particle, len(s.Particles))
	copy(c.Particles, s.Particles)
	return &c
}

// IsValid reports whether all particle and rigid-body quantities are finite.
func (s *State) IsValid() bool {
	for i := range s.Particles {
		p := &s.Particles[i]
		if !finite(p.Pos.X, p.Pos.Y, p.Vel.X, p.Vel.Y, p.Force.X, p.Force.Y, p.OldForce.X, p.OldForce.Y, p.Density, p.Pressure) {
			return false
		}
	}
	d := s.Duck
	return finite(d.Pos.X, d.Pos.Y, d.Vel.X, d.Vel.Y)
}

// KineticEnergy returns the total kinetic energy of particles and rigid body.
func (s *State) KineticEnergy() float64 {
	e := 0.0
	for i := range s.Particles {
		e += 0.5 * s.Params.Mass * r2.Norm2(s.Particles[i].Vel)
	}
	if s.Duck.Enabled() {
		e += 0.5 * s.Duck.Mass * r2.Norm2(s.Duck.Vel)
	}
	return e
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func clampVec(b grid.Bounds, v r2.Vec) r2.Vec {
	x, y := b.Clamp(v.X, v.Y)
	return r2.Vec{X: x, Y: y}
}
