package sph

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/sphsim/internal/dynamo"
	"github.com/san-kum/sphsim/internal/grid"
	"github.com/san-kum/sphsim/internal/kernel"
)

// minChunk is the smallest particle range handed to a worker.
const minChunk = 64

// UpdateDensity recomputes density and pressure for every particle from the
// positions bucketed in g. It returns the largest density and the largest
// neighbour-set size observed. All writes are complete when it returns.
func UpdateDensity(particles []Particle, g *grid.Grid, p Params) (float64, int) {
	n := len(particles)
	densities := make([]float64, n)
	counts := make([]int, n)

	dynamo.ParallelFor(n, minChunk, p.Workers, func(start, end int) {
		var scratch []int
		for i := start; i < end; i++ {
			pi := particles[i].Pos
			scratch = g.Neighbors(pi.X, pi.Y, scratch[:0])
			sum := 0.0
			for _, j := range scratch {
				sum += p.Mass * kernel.Weight(r2.Norm(r2.Sub(pi, particles[j].Pos)), p.H)
			}
			densities[i] = p.safeDensity(sum)
			counts[i] = len(scratch)
		}
	})

	maxDensity, maxNeighbours := 0.0, 0
	for i := range particles {
		particles[i].Density = densities[i]
		particles[i].Pressure = p.pressure(densities[i])
		maxDensity = max(maxDensity, densities[i])
		maxNeighbours = max(maxNeighbours, counts[i])
	}
	return maxDensity, maxNeighbours
}

// DensityAt samples the density field at an arbitrary point.
func DensityAt(particles []Particle, g *grid.Grid, p Params, x, y float64) float64 {
	at := r2.Vec{X: x, Y: y}
	sum := 0.0
	g.ForEachNeighbor(x, y, func(j int) {
		sum += p.Mass * kernel.Weight(r2.Norm(r2.Sub(at, particles[j].Pos)), p.H)
	})
	return sum
}
