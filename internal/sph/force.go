package sph

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/sphsim/internal/dynamo"
	"github.com/san-kum/sphsim/internal/grid"
	"github.com/san-kum/sphsim/internal/kernel"
)

// ComputeForces evaluates pressure, viscosity and gravity for every particle.
// New forces are written to a separate slice and committed only after every
// particle has been evaluated; the previous force moves to OldForce.
func ComputeForces(particles []Particle, g *grid.Grid, p Params) {
	n := len(particles)
	forces := make([]r2.Vec, n)
	support := kernel.Support * p.H

	dynamo.ParallelFor(n, minChunk, p.Workers, func(start, end int) {
		var scratch []int
		for i := start; i < end; i++ {
			forces[i] = particleForce(particles, g, p, i, support, &scratch)
		}
	})

	for i := range particles {
		particles[i].OldForce = particles[i].Force
		particles[i].Force = forces[i]
	}
}

func particleForce(particles []Particle, g *grid.Grid, p Params, i int, support float64, scratch *[]int) r2.Vec {
	pi := &particles[i]
	di := p.safeDensity(pi.Density)
	f := r2.Vec{Y: p.Gravity * di}

	*scratch = g.Neighbors(pi.Pos.X, pi.Pos.Y, (*scratch)[:0])
	for _, j := range *scratch {
		if j == i {
			continue
		}
		pj := &particles[j]
		r := r2.Sub(pi.Pos, pj.Pos)
		dist := r2.Norm(r)
		// Laplacian is unclamped; out-of-support pairs must not contribute.
		if dist > support {
			continue
		}
		dj := p.safeDensity(pj.Density)

		gx, gy := kernel.Gradient(r.X, r.Y, p.H)
		press := -p.Mass * di * (pi.Pressure/(di*di) + pj.Pressure/(dj*dj))
		f = r2.Add(f, r2.Scale(press, r2.Vec{X: gx, Y: gy}))

		visc := -kernel.Laplacian(dist, p.H) * p.Viscosity * p.Mass / dj
		f = r2.Add(f, r2.Scale(visc, r2.Sub(pj.Vel, pi.Vel)))
	}
	return f
}
