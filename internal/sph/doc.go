// Package sph implements a 2-D weakly-compressible Smoothed Particle
// Hydrodynamics solver with a fixed timestep.
//
// One call to [Advance] performs a full step:
//
//  1. move the rigid body and every particle using last step's forces,
//     resolving wall and rigid-body contacts, and bucket them into a fresh grid
//  2. [UpdateDensity]: kernel-weighted density and clamped linear pressure
//  3. [ComputeForces]: pressure, viscosity and gravity, snapshot-then-commit
//  4. finish the Velocity-Verlet velocity update with the averaged force
//
// Density must be complete for every particle before any force is evaluated;
// the two stages are separated by a hard barrier.
//
// # Example
//
//	st, _ := sph.NewLatticeState(params, block, params.H/2, duck)
//	var diag sph.Diagnostics
//	for {
//	    _, diag = sph.Advance(st, 0.0008, diag)
//	}
//
// # Thread Safety
//
// A State is owned by whoever calls Advance. Stages fan work out internally
// but never return until all workers are done, so the State may be handed to
// renderers or encoders between steps without further locking.
package sph
