// Package sweep runs one configuration many times with a single solver
// parameter varied, each variant on its own State and goroutine.
package sweep

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/sphsim/internal/config"
	"github.com/san-kum/sphsim/internal/dynamo"
	"github.com/san-kum/sphsim/internal/metrics"
	"github.com/san-kum/sphsim/internal/sim"
	"github.com/san-kum/sphsim/internal/sph"
)

// ParameterSweep varies ParamName over NumSteps evenly spaced values in
// [ParamMin, ParamMax].
type ParameterSweep struct {
	ParamName   string
	ParamMin    float64
	ParamMax    float64
	NumSteps    int
	Steps       int // solver steps per variant
	Dt          float64
	Concurrency int // 0 runs every variant at once
}

// SweepResult summarizes one variant.
type SweepResult struct {
	ParamValue     float64       `json:"param_value"`
	StepsTaken     int           `json:"steps_taken"`
	PeakDensity    float64       `json:"peak_density"`
	MaxNeighbours  int           `json:"max_neighbours"`
	KineticEnergy  float64       `json:"kinetic_energy"`
	Stability      float64       `json:"stability"`
	DuckTravel     float64       `json:"duck_travel"`
	Diverged       bool          `json:"diverged"`
	Elapsed        time.Duration `json:"elapsed"`
	StepsPerSecond float64       `json:"steps_per_second"`
}

// Values returns the parameter values visited by the sweep.
func (s *ParameterSweep) Values() []float64 {
	if s.NumSteps == 1 {
		return []float64{s.ParamMin}
	}
	vals := make([]float64, s.NumSteps)
	step := (s.ParamMax - s.ParamMin) / float64(s.NumSteps-1)
	for i := range vals {
		vals[i] = s.ParamMin + float64(i)*step
	}
	return vals
}

func (s *ParameterSweep) validate() error {
	if _, ok := (sph.Params{}).Get(s.ParamName); !ok {
		return fmt.Errorf("%w: unknown sweep parameter %q", dynamo.ErrInvalidParams, s.ParamName)
	}
	if s.NumSteps < 1 {
		return fmt.Errorf("%w: sweep needs at least one value", dynamo.ErrInvalidParams)
	}
	if s.Dt <= 0 || s.Steps < 1 {
		return fmt.Errorf("%w: dt and steps must be positive", dynamo.ErrInvalidParams)
	}
	return nil
}

// Run executes every variant of the sweep against base. Results are returned
// in parameter order. The first failing variant cancels the others.
func Run(ctx context.Context, sw *ParameterSweep, base *config.Config, logger *slog.Logger) ([]SweepResult, error) {
	if err := sw.validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	values := sw.Values()
	states := make([]*sph.State, len(values))
	for i, v := range values {
		p, err := base.Params().With(sw.ParamName, v)
		if err != nil {
			return nil, fmt.Errorf("%s=%g: %w", sw.ParamName, v, err)
		}
		if states[i], err = base.NewStateWith(p); err != nil {
			return nil, fmt.Errorf("%s=%g: %w", sw.ParamName, v, err)
		}
	}

	results := make([]SweepResult, len(values))
	g, ctx := errgroup.WithContext(ctx)
	if sw.Concurrency > 0 {
		g.SetLimit(sw.Concurrency)
	}

	for i := range values {
		i := i
		g.Go(func() error {
			res, err := runVariant(ctx, states[i], sw, logger.With(sw.ParamName, values[i]))
			if err != nil {
				return fmt.Errorf("%s=%g: %w", sw.ParamName, values[i], err)
			}
			res.ParamValue = values[i]
			results[i] = res
			logger.Info("variant done", sw.ParamName, values[i], "peak_density", res.PeakDensity, "diverged", res.Diverged)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func runVariant(ctx context.Context, st *sph.State, sw *ParameterSweep, logger *slog.Logger) (SweepResult, error) {
	s := sim.New(logger)
	peak, neighbours := metrics.NewPeakDensity(), metrics.NewMaxNeighbours()
	energy, stability, travel := metrics.NewEnergy(), metrics.NewStability(10), metrics.NewDuckTravel()
	for _, m := range []sim.Metric{peak, neighbours, energy, stability, travel} {
		s.AddMetric(m)
	}

	result, err := s.Run(ctx, st, sim.Config{Dt: sw.Dt, Steps: sw.Steps, ValidateState: true})
	if err != nil {
		return SweepResult{}, err
	}

	diverged := false
	for _, e := range result.Errors {
		if errors.Is(e, dynamo.ErrInvalidState) {
			diverged = true
		}
	}

	return SweepResult{
		StepsTaken:     result.StepsTaken,
		PeakDensity:    result.Metrics[peak.Name()],
		MaxNeighbours:  int(result.Metrics[neighbours.Name()]),
		KineticEnergy:  result.Metrics[energy.Name()],
		Stability:      result.Metrics[stability.Name()],
		DuckTravel:     result.Metrics[travel.Name()],
		Diverged:       diverged,
		Elapsed:        result.Elapsed,
		StepsPerSecond: result.StepsPerSecond(),
	}, nil
}
