package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/spatial/r2"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/sphsim/internal/config"
	"github.com/san-kum/sphsim/internal/dynamo"
	"github.com/san-kum/sphsim/internal/grid"
	"github.com/san-kum/sphsim/internal/metrics"
	"github.com/san-kum/sphsim/internal/render"
	"github.com/san-kum/sphsim/internal/server"
	"github.com/san-kum/sphsim/internal/sim"
	"github.com/san-kum/sphsim/internal/snapshot"
	"github.com/san-kum/sphsim/internal/sph"
	"github.com/san-kum/sphsim/internal/storage"
	"github.com/san-kum/sphsim/internal/sweep"
	"github.com/san-kum/sphsim/internal/viz"
)

var (
	dataDir  string
	logLevel string
	logger   *slog.Logger
	// Scenario selection
	configFile string
	preset     string
	// Overrides applied on top of the preset or config file
	dt        float64
	steps     int
	workers   int
	h         float64
	viscosity float64
	gasConst  float64
	gravity   float64
	duck      bool
	// Frame output
	every    int
	cols     int
	rows     int
	scale    float64
	ascii    bool
	format   string
	frameGap time.Duration
	// Live view
	stepsPerFrame int
	// Server
	address string
	webRoot string
	// Sweep
	sweepParam  string
	sweepMin    float64
	sweepMax    float64
	sweepN      int
	concurrency int
	// Export
	outFile string
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "sphsim",
		Short:        "2-D smoothed particle hydrodynamics sandbox",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var level slog.Level
			if err := level.UnmarshalText([]byte(logLevel)); err != nil {
				return fmt.Errorf("invalid log level %q: %w", logLevel, err)
			}
			logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
			slog.SetDefault(logger)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".sphsim", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation and store the result",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addScenarioFlags(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "interactive terminal view",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addScenarioFlags(liveCmd)
	liveCmd.Flags().IntVar(&stepsPerFrame, "steps-per-frame", 5, "solver steps per redraw")

	imageCmd := &cobra.Command{
		Use:   "image [out_dir]",
		Short: "render frames as PNG or SVG files",
		Args:  cobra.ExactArgs(1),
		RunE:  renderImages,
	}
	addScenarioFlags(imageCmd)
	addFrameFlags(imageCmd)
	imageCmd.Flags().IntVar(&cols, "cols", 240, "image width in pixels")
	imageCmd.Flags().IntVar(&rows, "rows", 160, "image height in pixels")
	imageCmd.Flags().BoolVar(&ascii, "ascii", false, "print digit frames to stdout instead of writing files")
	imageCmd.Flags().StringVar(&format, "format", "png", "frame format: png (density field) or svg (particles)")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve the browser viewer and stream snapshots over websocket",
		Args:  cobra.NoArgs,
		RunE:  serveSimulation,
	}
	addScenarioFlags(serveCmd)
	serveCmd.Flags().IntVar(&every, "every", 10, "broadcast a frame every n steps")
	serveCmd.Flags().StringVar(&address, "addr", ":8080", "listen address")
	serveCmd.Flags().StringVar(&webRoot, "root", "", "static file directory (default: built-in viewer)")
	serveCmd.Flags().DurationVar(&frameGap, "min-gap", 16*time.Millisecond, "minimum wall time between frames")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "measure solver throughput across worker counts",
		Args:  cobra.NoArgs,
		RunE:  benchSolver,
	}
	addScenarioFlags(benchCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "run one scenario across a range of a fluid parameter",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	addScenarioFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "viscosity", "parameter to vary ("+strings.Join(sph.ParamNames(), ", ")+")")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 100, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 400, "last value")
	sweepCmd.Flags().IntVar(&sweepN, "n", 4, "number of values")
	sweepCmd.Flags().IntVar(&concurrency, "concurrency", 0, "variants run at once (0 = all)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run diagnostics",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata and diagnostics as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export the final particle snapshot as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&outFile, "output", "o", "", "output file (default: stdout)")

	inspectCmd := &cobra.Command{
		Use:   "inspect [file.snap]",
		Short: "decode a snapshot file and summarize it",
		Args:  cobra.ExactArgs(1),
		RunE:  inspectSnapshot,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("available presets:")
			for _, name := range config.ListPresets() {
				fmt.Printf("  %s\n", name)
			}
			return nil
		},
	}

	configCmd := &cobra.Command{
		Use:   "config [path]",
		Short: "write the default (or --preset) configuration as YAML",
		Args:  cobra.MaximumNArgs(1),
		RunE:  writeConfig,
	}
	configCmd.Flags().StringVar(&preset, "preset", "", "preset to write")

	rootCmd.AddCommand(runCmd, liveCmd, imageCmd, serveCmd, benchCmd, sweepCmd, listCmd, plotCmd,
		exportCmd, exportCSVCmd, inspectCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addScenarioFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&preset, "preset", "", "use preset configuration")
	f.Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	f.IntVar(&steps, "steps", config.DefaultSteps, "number of steps")
	f.IntVar(&workers, "workers", 0, "solver goroutines (0 = GOMAXPROCS)")
	f.Float64Var(&h, "smoothing", config.DefaultH, "smoothing radius h")
	f.Float64Var(&viscosity, "viscosity", config.DefaultViscosity, "viscosity coefficient")
	f.Float64Var(&gasConst, "gas-constant", config.DefaultGasConstant, "pressure stiffness")
	f.Float64Var(&gravity, "gravity", config.DefaultGravity, "vertical acceleration")
	f.BoolVar(&duck, "duck", false, "enable the rigid body")
}

func addFrameFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&every, "every", 10, "write a frame every n steps")
	cmd.Flags().Float64Var(&scale, "scale", 0, "density mapped to full intensity (0 = twice the rest density)")
}

// resolveConfig builds the scenario for cmd: preset first, then the config
// file, then any flag the user actually set.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("dt") {
		cfg.Run.Dt = dt
	}
	if flags.Changed("steps") {
		cfg.Run.Steps = steps
	}
	if flags.Changed("workers") {
		cfg.Run.Workers = workers
	}
	if flags.Changed("smoothing") {
		cfg.Fluid.H = h
	}
	if flags.Changed("viscosity") {
		cfg.Fluid.Viscosity = viscosity
	}
	if flags.Changed("gas-constant") {
		cfg.Fluid.GasConstant = gasConst
	}
	if flags.Changed("gravity") {
		cfg.Fluid.Gravity = gravity
	}
	if flags.Changed("duck") {
		cfg.Duck.Enabled = duck
	}
	if flags.Lookup("every") != nil && !flags.Changed("every") && cfg.Run.SnapshotEvery > 0 {
		every = cfg.Run.SnapshotEvery
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

// frameScale returns the --scale value, or twice the rest density.
func frameScale(st *sph.State) float64 {
	if scale > 0 {
		return scale
	}
	return 2 * st.Params.RestDensity
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	store := storage.New(dataDir)
	if err := store.Init(); err != nil {
		return err
	}

	st, err := cfg.NewState()
	if err != nil {
		return err
	}

	s := sim.New(logger)
	for _, m := range []sim.Metric{
		metrics.NewEnergy(),
		metrics.NewEnergyDrift(),
		metrics.NewStability(10),
		metrics.NewPeakDensity(),
		metrics.NewMaxNeighbours(),
		metrics.NewDuckTravel(),
	} {
		s.AddMetric(m)
	}

	ctx, stop := signalContext()
	defer stop()

	fmt.Printf("running %s: %d particles, %d steps...\n", cfg.Name, len(st.Particles), cfg.Run.Steps)

	result, err := s.Run(ctx, st, sim.Config{Dt: cfg.Run.Dt, Steps: cfg.Run.Steps, ValidateState: true, LogEvery: 100})
	if err != nil && !errors.Is(err, dynamo.ErrCanceled) {
		return err
	}
	if err != nil {
		logger.Warn("run interrupted, saving partial result", "err", err)
	}

	runID, err := store.Save(cfg, st, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", result.Elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d (%.0f steps/sec)\n", result.StepsTaken, result.StepsPerSecond())
	for _, e := range result.Errors {
		fmt.Printf("error: %v\n", e)
	}

	fmt.Println("\nmetrics:")
	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6g\n", name, result.Metrics[name])
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	st, err := cfg.NewState()
	if err != nil {
		return err
	}

	m := viz.NewModel(cfg.Name, st, cfg.Run.Dt, stepsPerFrame)

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func renderImages(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	st, err := cfg.NewState()
	if err != nil {
		return err
	}
	if every < 1 {
		return fmt.Errorf("--every must be at least 1, got %d", every)
	}
	if cols < 1 || rows < 1 {
		return fmt.Errorf("--cols and --rows must be positive, got %dx%d", cols, rows)
	}
	if format != "png" && format != "svg" {
		return fmt.Errorf("unknown frame format %q", format)
	}

	outDir := args[0]
	if !ascii {
		if err := os.MkdirAll(outDir, 0755); err != nil {
			return err
		}
	}

	ctx, stop := signalContext()
	defer stop()

	frames := 0
	var diag sph.Diagnostics
	for i := 0; i < cfg.Run.Steps; i++ {
		if ctx.Err() != nil {
			break
		}
		g, d := sph.Advance(st, cfg.Run.Dt, diag)
		diag = d
		if !st.IsValid() {
			return &dynamo.SimError{Step: diag.Step, Time: diag.Time, Message: "invalid state (NaN/Inf)", Wrapped: dynamo.ErrInvalidState}
		}
		if diag.Step%every != 0 {
			continue
		}

		if ascii {
			field := render.SampleField(st, g, cols, rows)
			fmt.Print(render.Digits(field, frameScale(st)))
			fmt.Print(render.Stats(diag))
			frames++
			continue
		}

		path := filepath.Join(outDir, fmt.Sprintf("frame_%05d.%s", frames, format))
		if err := writeFrame(path, st, g); err != nil {
			return err
		}
		frames++
		logger.Debug("frame written", "path", path, "diag", diag)
	}

	logger.Info("render finished", "frames", frames, "steps", diag.Step)
	if !ascii {
		fmt.Printf("wrote %d frames to %s\n", frames, outDir)
	}
	return nil
}

func writeFrame(path string, st *sph.State, g *grid.Grid) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if format == "svg" {
		zoom := float64(cols) / st.Params.Bounds.Width()
		err = render.WriteSVG(f, st, frameScale(st), zoom)
	} else {
		err = render.WritePNG(f, render.SampleField(st, g, cols, rows), frameScale(st))
	}
	if err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return f.Close()
}

func serveSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	st, err := cfg.NewState()
	if err != nil {
		return err
	}

	srv := server.New(server.Params{
		Address: address,
		Root:    webRoot,
		Every:   every,
		MinGap:  frameGap,
	}, logger)

	ctx, stop := signalContext()
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.ListenAndServe(ctx) })
	g.Go(func() error { return srv.Simulate(ctx, st, cfg.Run.Dt) })

	fmt.Printf("serving %s on %s (%d particles)\n", cfg.Name, address, len(st.Particles))
	return g.Wait()
}

func benchSolver(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("steps") {
		cfg.Run.Steps = 200
	}

	counts := []int{1, 2, 4, runtime.GOMAXPROCS(0)}
	if cmd.Flags().Changed("workers") {
		counts = []int{cfg.Run.Workers}
	}

	ctx, stop := signalContext()
	defer stop()

	fmt.Printf("benchmarking %s\n\n", cfg.Name)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WORKERS\tPARTICLES\tSTEPS\tTIME\tSTEPS/SEC\tUS/STEP")

	seen := make(map[int]bool)
	for _, n := range counts {
		if seen[n] {
			continue
		}
		seen[n] = true

		p := cfg.Params()
		p.Workers = n
		st, err := cfg.NewStateWith(p)
		if err != nil {
			return err
		}

		result, err := sim.New(logger).Run(ctx, st, sim.Config{Dt: cfg.Run.Dt, Steps: cfg.Run.Steps})
		if err != nil {
			return err
		}
		perStep := time.Duration(0)
		if result.StepsTaken > 0 {
			perStep = result.Elapsed / time.Duration(result.StepsTaken)
		}

		fmt.Fprintf(w, "%d\t%d\t%d\t%v\t%.0f\t%d\n",
			n, len(st.Particles), result.StepsTaken, result.Elapsed.Round(time.Millisecond),
			result.StepsPerSecond(), perStep.Microseconds())
	}

	return w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	sw := &sweep.ParameterSweep{
		ParamName:   sweepParam,
		ParamMin:    sweepMin,
		ParamMax:    sweepMax,
		NumSteps:    sweepN,
		Steps:       cfg.Run.Steps,
		Dt:          cfg.Run.Dt,
		Concurrency: concurrency,
	}

	ctx, stop := signalContext()
	defer stop()

	results, err := sweep.Run(ctx, sw, cfg, logger)
	if err != nil {
		return err
	}

	fmt.Printf("sweep %s over %s\n\n", sweepParam, cfg.Name)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tPEAK DENSITY\tNEIGHBOURS\tKINETIC\tSTABILITY\tDUCK TRAVEL\tSTEPS/SEC\tDIVERGED\n", strings.ToUpper(sweepParam))
	for _, r := range results {
		fmt.Fprintf(w, "%g\t%.4g\t%d\t%.4g\t%.4g\t%.4g\t%.0f\t%v\n",
			r.ParamValue, r.PeakDensity, r.MaxNeighbours, r.KineticEnergy,
			r.Stability, r.DuckTravel, r.StepsPerSecond, r.Diverged)
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	runs, err := store.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tPARTICLES\tSTEPS\tSIM TIME\tDT\tDUCK")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d/%d\t%.3fs\t%.4fs\t%v\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Particles,
			run.StepsTaken, run.Steps,
			run.SimTime,
			run.Dt,
			run.Duck,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	store := storage.New(dataDir)
	meta, err := store.Load(runID)
	if err != nil {
		return err
	}

	records, err := store.LoadDiagnostics(runID)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("preset: %s\n", meta.Preset)
	fmt.Printf("samples: %d\n\n", len(records))

	density := make([]float64, len(records))
	neighbours := make([]float64, len(records))
	frame := make([]float64, len(records))
	for i, r := range records {
		density[i] = r.MaxDensity
		neighbours[i] = float64(r.MaxNeighbours)
		frame[i] = float64(r.FrameMicros)
	}

	series := []struct {
		caption string
		data    []float64
	}{
		{"max density", density},
		{"max neighbours", neighbours},
		{"frame time (us)", frame},
	}
	for _, s := range series {
		graph := asciigraph.Plot(s.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(s.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	store := storage.New(dataDir)
	meta, err := store.Load(runID)
	if err != nil {
		return err
	}
	records, err := store.LoadDiagnostics(runID)
	if err != nil {
		return err
	}

	return storage.ExportJSON(os.Stdout, *meta, records)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	store := storage.New(dataDir)
	particles, err := store.LoadSnapshot(runID)
	if err != nil {
		return err
	}

	if outFile == "" {
		return storage.ExportParticlesCSV(os.Stdout, particles)
	}

	f, err := os.Create(outFile)
	if err != nil {
		return err
	}
	if err := storage.ExportParticlesCSV(f, particles); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "wrote %d particles to %s\n", len(particles), outFile)
	return nil
}

func inspectSnapshot(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	particles, err := snapshot.Decode(f)
	if err != nil {
		var de *snapshot.DecodeError
		if errors.As(err, &de) {
			return fmt.Errorf("%s: corrupt at byte %d: %w", args[0], de.Offset, de.Err)
		}
		return err
	}

	fmt.Printf("file: %s\n", args[0])
	fmt.Printf("particles: %d (%d bytes)\n", len(particles), snapshot.Size(len(particles)))
	if len(particles) == 0 {
		return nil
	}

	first := particles[0]
	minX, maxX, minY, maxY := first.Pos.X, first.Pos.X, first.Pos.Y, first.Pos.Y
	var sumDensity, maxDensity, maxPressure, maxSpeed float64
	for _, p := range particles {
		minX, maxX = min(minX, p.Pos.X), max(maxX, p.Pos.X)
		minY, maxY = min(minY, p.Pos.Y), max(maxY, p.Pos.Y)
		sumDensity += p.Density
		maxDensity = max(maxDensity, p.Density)
		maxPressure = max(maxPressure, p.Pressure)
		maxSpeed = max(maxSpeed, r2.Norm(p.Vel))
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "x range\t[%.3f, %.3f]\n", minX, maxX)
	fmt.Fprintf(w, "y range\t[%.3f, %.3f]\n", minY, maxY)
	fmt.Fprintf(w, "mean density\t%.6g\n", sumDensity/float64(len(particles)))
	fmt.Fprintf(w, "max density\t%.6g\n", maxDensity)
	fmt.Fprintf(w, "max pressure\t%.6g\n", maxPressure)
	fmt.Fprintf(w, "max speed\t%.6g\n", maxSpeed)
	return w.Flush()
}

func writeConfig(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if len(args) == 0 {
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	}

	if err := config.Save(args[0], cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s config to %s\n", cfg.Name, args[0])
	return nil
}
