package config

import (
	"sort"

	"github.com/san-kum/sphsim/internal/grid"
)

// Presets holds the named starting configurations. legacy keeps the
// constants of the first terminal prototype; line5 is its five particle
// diagonal.
var Presets = map[string]func() *Config{
	"dam_break": DefaultConfig,
	"duck_drop": func() *Config {
		c := DefaultConfig()
		c.Name = "duck_drop"
		c.Block.Region = grid.Bounds{MinX: 8, MaxX: 472, MinY: 8, MaxY: 96}
		c.Duck.Enabled = true
		c.Duck.X, c.Duck.Y = 240, 260
		c.Run.Steps = 3000
		return c
	},
	"legacy": func() *Config {
		c := DefaultConfig()
		c.Name = "legacy"
		c.Fluid.RestDensity = 1000
		c.Fluid.GasConstant = 2000
		return c
	},
	"line5": func() *Config {
		c := DefaultConfig()
		c.Name = "line5"
		c.Fluid.RestDensity = 1000
		c.Fluid.GasConstant = 2000
		c.Block.Points = [][2]float64{{1, 1}, {2, 2}, {3, 3}, {4, 4}, {5, 5}}
		c.Run.Steps = 500
		return c
	},
}

// GetPreset returns a fresh copy of the named preset, or nil.
func GetPreset(name string) *Config {
	fn, ok := Presets[name]
	if !ok {
		return nil
	}
	return fn()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
