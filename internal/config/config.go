package config

import (
	"errors"
	"fmt"
	"os"

	"gonum.org/v1/gonum/spatial/r2"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/sphsim/internal/grid"
	"github.com/san-kum/sphsim/internal/sph"
)

const (
	DefaultH           = 16.0
	DefaultMass        = 65.0
	DefaultGasConstant = 2e6
	DefaultViscosity   = 250.0
	DefaultGravity     = -980.0
	DefaultDamping     = 0.5
	DefaultMinDensity  = 1e-6
	DefaultSpacing     = 8.0
	DefaultDt          = 0.0008
	DefaultSteps       = 2000
	DefaultDuckRadius  = 24.0
	DefaultDuckRatio   = 50.0
)

type Config struct {
	Name   string      `yaml:"name,omitempty"`
	Domain grid.Bounds `yaml:"domain"`
	Fluid  FluidConfig `yaml:"fluid"`
	Block  BlockConfig `yaml:"block"`
	Duck   DuckConfig  `yaml:"duck"`
	Run    RunConfig   `yaml:"run"`
}

type FluidConfig struct {
	H           float64 `yaml:"h"`
	Mass        float64 `yaml:"mass"`
	GasConstant float64 `yaml:"gas_constant"`
	RestDensity float64 `yaml:"rest_density"` // 0 derives it from the block spacing
	Viscosity   float64 `yaml:"viscosity"`
	Gravity     float64 `yaml:"gravity"`
	Damping     float64 `yaml:"damping"`
	MinDensity  float64 `yaml:"min_density"`
}

// BlockConfig describes the initial particles: either a lattice filling
// Region, or an explicit list of Points.
type BlockConfig struct {
	Region  grid.Bounds  `yaml:"region"`
	Spacing float64      `yaml:"spacing"`
	Points  [][2]float64 `yaml:"points,omitempty"`
}

type DuckConfig struct {
	Enabled   bool    `yaml:"enabled"`
	X         float64 `yaml:"x"`
	Y         float64 `yaml:"y"`
	VX        float64 `yaml:"vx"`
	VY        float64 `yaml:"vy"`
	Radius    float64 `yaml:"radius"`
	MassRatio float64 `yaml:"mass_ratio"` // body mass in particle masses
}

type RunConfig struct {
	Dt            float64 `yaml:"dt"`
	Steps         int     `yaml:"steps"`
	Workers       int     `yaml:"workers"`
	SnapshotEvery int     `yaml:"snapshot_every"`
}

func DefaultConfig() *Config {
	return &Config{
		Name:   "dam_break",
		Domain: grid.Bounds{MinX: 0, MaxX: 480, MinY: 0, MaxY: 320},
		Fluid: FluidConfig{
			H:           DefaultH,
			Mass:        DefaultMass,
			GasConstant: DefaultGasConstant,
			Viscosity:   DefaultViscosity,
			Gravity:     DefaultGravity,
			Damping:     DefaultDamping,
			MinDensity:  DefaultMinDensity,
		},
		Block: BlockConfig{
			Region:  grid.Bounds{MinX: 8, MaxX: 200, MinY: 8, MaxY: 200},
			Spacing: DefaultSpacing,
		},
		Duck: DuckConfig{
			X:         360,
			Y:         260,
			Radius:    DefaultDuckRadius,
			MassRatio: DefaultDuckRatio,
		},
		Run: RunConfig{
			Dt:            DefaultDt,
			Steps:         DefaultSteps,
			SnapshotEvery: 10,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the run settings and the solver parameters.
func (c *Config) Validate() error {
	var errs []error
	if c.Run.Dt <= 0 {
		errs = append(errs, fmt.Errorf("run.dt must be positive, got %v", c.Run.Dt))
	}
	if c.Run.Steps < 0 {
		errs = append(errs, fmt.Errorf("run.steps must be non-negative, got %d", c.Run.Steps))
	}
	if len(c.Block.Points) == 0 && c.Block.Spacing <= 0 {
		errs = append(errs, fmt.Errorf("block.spacing must be positive, got %v", c.Block.Spacing))
	}
	if c.Duck.Enabled && (c.Duck.Radius <= 0 || c.Duck.MassRatio <= 0) {
		errs = append(errs, errors.New("duck.radius and duck.mass_ratio must be positive"))
	}
	if err := c.Params().Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Params converts the fluid and domain sections into solver parameters.
func (c *Config) Params() sph.Params {
	return sph.Params{
		H:           c.Fluid.H,
		Mass:        c.Fluid.Mass,
		GasConstant: c.Fluid.GasConstant,
		RestDensity: c.Fluid.RestDensity,
		Viscosity:   c.Fluid.Viscosity,
		Gravity:     c.Fluid.Gravity,
		Damping:     c.Fluid.Damping,
		MinDensity:  c.Fluid.MinDensity,
		Bounds:      c.Domain,
		Workers:     c.Run.Workers,
	}
}

// Body returns the configured rigid body, or a disabled zero body.
func (c *Config) Body() sph.RigidBody {
	return c.body(c.Fluid.Mass)
}

func (c *Config) body(particleMass float64) sph.RigidBody {
	if !c.Duck.Enabled {
		return sph.RigidBody{}
	}
	return sph.RigidBody{
		Pos:    r2.Vec{X: c.Duck.X, Y: c.Duck.Y},
		Vel:    r2.Vec{X: c.Duck.VX, Y: c.Duck.VY},
		Radius: c.Duck.Radius,
		Mass:   c.Duck.MassRatio * particleMass,
	}
}

// NewState builds the initial simulation state described by c.
func (c *Config) NewState() (*sph.State, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c.NewStateWith(c.Params())
}

// NewStateWith builds the configured initial particles but runs them with p
// instead of the parameters in c. The duck keeps its mass ratio.
func (c *Config) NewStateWith(p sph.Params) (*sph.State, error) {
	if len(c.Block.Points) == 0 {
		return sph.NewLatticeState(p, c.Block.Region, c.Block.Spacing, c.body(p.Mass))
	}

	particles := make([]sph.Particle, len(c.Block.Points))
	for i, pt := range c.Block.Points {
		particles[i] = sph.Particle{Pos: r2.Vec{X: pt[0], Y: pt[1]}, Density: 1}
	}
	return sph.NewState(p, particles, c.body(p.Mass))
}
