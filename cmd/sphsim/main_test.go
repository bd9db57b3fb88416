package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/sphsim/internal/config"
	"github.com/san-kum/sphsim/internal/snapshot"
	"github.com/san-kum/sphsim/internal/sph"
)

// scenarioCmd registers the scenario flags on a fresh command, which also
// resets the package-level flag variables to their defaults.
func scenarioCmd(t *testing.T, flags map[string]string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	addScenarioFlags(cmd)
	addFrameFlags(cmd)
	for name, val := range flags {
		if err := cmd.Flags().Set(name, val); err != nil {
			t.Fatalf("set --%s: %v", name, err)
		}
	}
	return cmd
}

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestResolveConfig_Defaults(t *testing.T) {
	cfg, err := resolveConfig(scenarioCmd(t, nil))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Name != "dam_break" {
		t.Errorf("name = %s, want dam_break", cfg.Name)
	}
	if every != cfg.Run.SnapshotEvery {
		t.Errorf("every = %d, want config snapshot_every %d", every, cfg.Run.SnapshotEvery)
	}
}

func TestResolveConfig_PresetThenFlags(t *testing.T) {
	cmd := scenarioCmd(t, map[string]string{"preset": "line5", "dt": "0.001", "duck": "true"})
	cfg, err := resolveConfig(cmd)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Name != "line5" {
		t.Errorf("name = %s, want line5", cfg.Name)
	}
	if cfg.Run.Dt != 0.001 {
		t.Errorf("dt = %v, want flag value 0.001", cfg.Run.Dt)
	}
	if cfg.Run.Steps != 500 {
		t.Errorf("steps = %d, want preset value 500", cfg.Run.Steps)
	}
	if cfg.Fluid.GasConstant != 2000 {
		t.Errorf("gas constant = %v, want preset value 2000", cfg.Fluid.GasConstant)
	}
	if !cfg.Duck.Enabled {
		t.Error("--duck not applied")
	}
}

func TestResolveConfig_FileThenFlags(t *testing.T) {
	path := writeYAML(t, "fluid:\n  viscosity: 100\nrun:\n  steps: 42\n  snapshot_every: 3\n")
	cmd := scenarioCmd(t, map[string]string{"config": path, "viscosity": "300"})

	cfg, err := resolveConfig(cmd)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Run.Steps != 42 {
		t.Errorf("steps = %d, want file value 42", cfg.Run.Steps)
	}
	if cfg.Fluid.Viscosity != 300 {
		t.Errorf("viscosity = %v, want flag value 300", cfg.Fluid.Viscosity)
	}
	if every != 3 {
		t.Errorf("every = %d, want file value 3", every)
	}
}

func TestResolveConfig_Errors(t *testing.T) {
	if _, err := resolveConfig(scenarioCmd(t, map[string]string{"preset": "nope"})); err == nil || !strings.Contains(err.Error(), "unknown preset") {
		t.Errorf("unknown preset: err = %v", err)
	}
	if _, err := resolveConfig(scenarioCmd(t, map[string]string{"dt": "-1"})); err == nil {
		t.Error("negative dt accepted")
	}
	if _, err := resolveConfig(scenarioCmd(t, map[string]string{"config": "/nonexistent/x.yaml"})); err == nil {
		t.Error("missing config file accepted")
	}
}

func TestInspectSnapshot(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.snap")
	particles := []sph.Particle{
		{Pos: r2.Vec{X: 1, Y: 2}, Vel: r2.Vec{X: 3, Y: 4}, Density: 5, Pressure: 6},
		{Pos: r2.Vec{X: 7, Y: 8}},
	}
	if err := os.WriteFile(good, snapshot.Marshal(particles), 0644); err != nil {
		t.Fatal(err)
	}
	if err := inspectSnapshot(nil, []string{good}); err != nil {
		t.Errorf("inspect valid snapshot: %v", err)
	}

	bad := filepath.Join(dir, "bad.snap")
	if err := os.WriteFile(bad, []byte{1, 2, 3}, 0644); err != nil {
		t.Fatal(err)
	}
	err := inspectSnapshot(nil, []string{bad})
	if !errors.Is(err, snapshot.ErrTruncated) {
		t.Errorf("err = %v, want ErrTruncated", err)
	}
	if err != nil && !strings.Contains(err.Error(), "corrupt at byte 0") {
		t.Errorf("err = %q, want offset", err)
	}
}

func TestWriteConfig(t *testing.T) {
	preset = "duck_drop"
	t.Cleanup(func() { preset = "" })

	path := filepath.Join(t.TempDir(), "duck.yaml")
	if err := writeConfig(nil, []string{path}); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Name != "duck_drop" || !cfg.Duck.Enabled {
		t.Errorf("round trip lost preset: name=%s duck=%v", cfg.Name, cfg.Duck.Enabled)
	}
}

func TestRenderImages_RejectsEmptyRaster(t *testing.T) {
	cmd := scenarioCmd(t, nil)
	cols, rows = -1, 2
	t.Cleanup(func() { cols, rows = 0, 0 })

	err := renderImages(cmd, []string{t.TempDir()})
	if err == nil || !strings.Contains(err.Error(), "--cols") {
		t.Errorf("err = %v, want size rejection", err)
	}
}
