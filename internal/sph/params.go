package sph

import (
	"fmt"
	"math"

	"github.com/san-kum/sphsim/internal/dynamo"
	"github.com/san-kum/sphsim/internal/grid"
)

// Params is the immutable solver configuration. Every stage receives it
// explicitly so several simulations with different constants can share a
// process.
type Params struct {
	H           float64     // smoothing length; kernel support is 2H
	Mass        float64     // particle mass
	GasConstant float64     // equation-of-state stiffness
	RestDensity float64     // pressure is zero at and below this density
	Viscosity   float64     // viscosity coefficient
	Gravity     float64     // vertical body acceleration, negative pulls toward MinY
	Damping     float64     // restitution for wall and rigid-body contacts, in [0, 1)
	MinDensity  float64     // floor applied before any division by density
	Bounds      grid.Bounds // simulation domain
	Workers     int         // parallel workers per stage, 0 selects GOMAXPROCS
}

// Validate reports the first out-of-range field.
func (p Params) Validate() error {
	checks := []struct {
		ok  bool
		msg string
	}{
		{p.H > 0, fmt.Sprintf("h must be positive, got %v", p.H)},
		{p.Mass > 0, fmt.Sprintf("mass must be positive, got %v", p.Mass)},
		{p.GasConstant >= 0, fmt.Sprintf("gas constant must be non-negative, got %v", p.GasConstant)},
		{p.RestDensity >= 0, fmt.Sprintf("rest density must be non-negative, got %v", p.RestDensity)},
		{p.Viscosity >= 0, fmt.Sprintf("viscosity must be non-negative, got %v", p.Viscosity)},
		{p.Damping >= 0 && p.Damping < 1, fmt.Sprintf("damping must be in [0, 1), got %v", p.Damping)},
		{p.MinDensity > 0, fmt.Sprintf("min density must be positive, got %v", p.MinDensity)},
		{p.Bounds.MaxX > p.Bounds.MinX, fmt.Sprintf("domain x range [%v, %v] is empty", p.Bounds.MinX, p.Bounds.MaxX)},
		{p.Bounds.MaxY > p.Bounds.MinY, fmt.Sprintf("domain y range [%v, %v] is empty", p.Bounds.MinY, p.Bounds.MaxY)},
		{!math.IsNaN(p.Gravity) && !math.IsInf(p.Gravity, 0), fmt.Sprintf("gravity must be finite, got %v", p.Gravity)},
	}
	for _, c := range checks {
		if !c.ok {
			return fmt.Errorf("%w: %s", dynamo.ErrInvalidParams, c.msg)
		}
	}
	return nil
}

// safeDensity floor-clamps d so it can be divided by.
func (p Params) safeDensity(d float64) float64 {
	if d < p.MinDensity || math.IsNaN(d) {
		return p.MinDensity
	}
	return d
}

// pressure is the clamped linear equation of state.
func (p Params) pressure(density float64) float64 {
	return p.GasConstant * math.Max(density-p.RestDensity, 0)
}

// Get returns a tunable parameter by name.
func (p Params) Get(name string) (float64, bool) {
	switch name {
	case "h":
		return p.H, true
	case "mass":
		return p.Mass, true
	case "gas_constant":
		return p.GasConstant, true
	case "rest_density":
		return p.RestDensity, true
	case "viscosity":
		return p.Viscosity, true
	case "gravity":
		return p.Gravity, true
	case "damping":
		return p.Damping, true
	}
	return 0, false
}

// With returns a copy of p with the named parameter replaced.
func (p Params) With(name string, v float64) (Params, error) {
	switch name {
	case "h":
		p.H = v
	case "mass":
		p.Mass = v
	case "gas_constant":
		p.GasConstant = v
	case "rest_density":
		p.RestDensity = v
	case "viscosity":
		p.Viscosity = v
	case "gravity":
		p.Gravity = v
	case "damping":
		p.Damping = v
	default:
		return p, fmt.Errorf("unknown parameter: %s", name)
	}
	return p, p.Validate()
}

// ParamNames lists the names accepted by Get and With.
func ParamNames() []string {
	return []string{"h", "mass", "gas_constant", "rest_density", "viscosity", "gravity", "damping"}
}
