package sph

import (
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/sphsim/internal/grid"
)

// Advance moves st forward by one fixed timestep dt and returns the grid built
// for the new positions together with the step's diagnostics. st is mutated
// in place.
func Advance(st *State, dt float64, in Diagnostics) (*grid.Grid, Diagnostics) {
	start := time.Now()
	p := st.Params
	g := grid.New(p.H, p.Bounds)

	if st.Duck.Enabled() {
		moveBody(&st.Duck, p, dt)
	}

	for i := range st.Particles {
		pt := &st.Particles[i]
		accel := r2.Scale(1/p.safeDensity(pt.Density), pt.Force)
		pt.Pos = r2.Add(pt.Pos, r2.Add(r2.Scale(dt, pt.Vel), r2.Scale(0.5*dt*dt, accel)))

		reflectWalls(pt, p)
		if st.Duck.Enabled() {
			collideBody(pt, &st.Duck, p)
		}
		g.Insert(i, pt.Pos.X, pt.Pos.Y)
	}

	maxDensity, maxNeighbours := UpdateDensity(st.Particles, g, p)
	ComputeForces(st.Particles, g, p)

	for i := range st.Particles {
		pt := &st.Particles[i]
		avg := r2.Scale(0.5/p.safeDensity(pt.Density), r2.Add(pt.OldForce, pt.Force))
		pt.Vel = r2.Add(pt.Vel, r2.Scale(dt, avg))
	}

	st.Time += dt
	return g, Diagnostics{
		Step:          in.Step + 1,
		Time:          in.Time + dt,
		MaxDensity:    maxDensity,
		MaxNeighbours: maxNeighbours,
		FrameTime:     time.Since(start),
		H:             p.H,
		GridWidth:     g.Width(),
		GridHeight:    g.Height(),
	}
}

// moveBody advances the rigid body and keeps its whole disc inside the domain.
func moveBody(b *RigidBody, p Params, dt float64) {
	b.Pos = r2.Add(b.Pos, r2.Scale(dt, b.Vel))
	bd := p.Bounds

	if lo := bd.MinX + b.Radius; b.Pos.X < lo {
		b.Pos.X = lo
		b.Vel.X = bounce(b.Vel.X, p.Damping, true)
	}
	if hi := bd.MaxX - b.Radius; b.Pos.X > hi {
		b.Pos.X = hi
		b.Vel.X = bounce(b.Vel.X, p.Damping, false)
	}
	if lo := bd.MinY + b.Radius; b.Pos.Y < lo {
		b.Pos.Y = lo
		b.Vel.Y = bounce(b.Vel.Y, p.Damping, true)
	}
	if hi := bd.MaxY - b.Radius; b.Pos.Y > hi {
		b.Pos.Y = hi
		b.Vel.Y = bounce(b.Vel.Y, p.Damping, false)
	}

	b.Vel.Y += p.Gravity * dt
}

// bounce reflects v off a wall with damping, but only while v still points
// into the wall. low is true for the MinX/MinY side.
func bounce(v, damping float64, low bool) float64 {
	if (low && v < 0) || (!low && v > 0) {
		return -damping * v
	}
	return v
}

func reflectWalls(pt *Particle, p Params) {
	bd := p.Bounds
	if pt.Pos.X < bd.MinX {
		pt.Pos.X = bd.MinX
		pt.Vel.X = -p.Damping * pt.Vel.X
	} else if pt.Pos.X > bd.MaxX {
		pt.Pos.X = bd.MaxX
		pt.Vel.X = -p.Damping * pt.Vel.X
	}
	if pt.Pos.Y < bd.MinY {
		pt.Pos.Y = bd.MinY
		pt.Vel.Y = -p.Damping * pt.Vel.Y
	} else if pt.Pos.Y > bd.MaxY {
		pt.Pos.Y = bd.MaxY
		pt.Vel.Y = -p.Damping * pt.Vel.Y
	}
}

// collideBody resolves a particle inside the rigid body's disc: the normal
// component of the particle's velocity relative to the body is reflected and
// damped, the opposite impulse goes to the body, and the particle is pushed
// back onto the surface. Against a body at rest this is a plain damped flip.
func collideBody(pt *Particle, b *RigidBody, p Params) {
	d := r2.Sub(pt.Pos, b.Pos)
	dist := r2.Norm(d)
	if dist >= b.Radius {
		return
	}

	n := r2.Vec{Y: 1}
	if dist > 0 {
		n = r2.Scale(1/dist, d)
	}

	if vn := r2.Dot(r2.Sub(pt.Vel, b.Vel), n); vn < 0 {
		dv := r2.Scale(-(1+p.Damping)*vn, n)
		pt.Vel = r2.Add(pt.Vel, dv)
		b.Vel = r2.Sub(b.Vel, r2.Scale(p.Mass/b.Mass, dv))
	}

	pt.Pos = clampVec(p.Bounds, r2.Add(b.Pos, r2.Scale(b.Radius, n)))
}
