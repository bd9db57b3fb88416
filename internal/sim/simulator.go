package sim

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/san-kum/sphsim/internal/dynamo"
	"github.com/san-kum/sphsim/internal/sph"
)

type Simulator struct {
	logger    *slog.Logger
	metrics   []Metric
	observers []Observer
}

func New(logger *slog.Logger) *Simulator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Simulator{
		logger:    logger,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run advances st for cfg.Steps steps, mutating it in place. Cancellation is
// checked between steps only; the partial result is returned with the error.
func (s *Simulator) Run(ctx context.Context, st *sph.State, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	result := &Result{
		Diagnostics: make([]sph.Diagnostics, 0, cfg.Steps),
		Metrics:     make(map[string]float64),
		Errors:      make([]error, 0),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	start := time.Now()
	defer func() { result.Elapsed = time.Since(start) }()

	s.logger.Info("run started",
		"particles", len(st.Particles),
		"steps", cfg.Steps,
		"dt", cfg.Dt,
		"duck", st.Duck.Enabled())

	var diag sph.Diagnostics
	for i := 0; i < cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			s.collect(result)
			return result, &dynamo.SimError{Step: i, Time: diag.Time, Message: "canceled", Wrapped: dynamo.ErrCanceled}
		default:
		}

		_, diag = sph.Advance(st, cfg.Dt, diag)
		result.StepsTaken++
		result.Diagnostics = append(result.Diagnostics, diag)

		if cfg.ValidateState && !st.IsValid() {
			err := &dynamo.SimError{Step: diag.Step, Time: diag.Time, Message: "invalid state (NaN/Inf)", Wrapped: dynamo.ErrInvalidState}
			result.Errors = append(result.Errors, err)
			s.logger.Error("run diverged", "diag", diag)
			break
		}

		for _, m := range s.metrics {
			m.Observe(st, diag)
		}
		for _, obs := range s.observers {
			obs.OnStep(st, diag)
		}

		if cfg.LogEvery > 0 && diag.Step%cfg.LogEvery == 0 {
			s.logger.Debug("step", "diag", diag)
		}
	}

	s.collect(result)
	s.logger.Info("run finished", "steps", result.StepsTaken, "elapsed", time.Since(start))
	return result, nil
}

func (s *Simulator) collect(result *Result) {
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Steps < 0 {
		return fmt.Errorf("steps must be non-negative, got %d", cfg.Steps)
	}
	return nil
}

// RunWithCallback steps st until the callback returns false, the context is
// done or cfg.Steps is reached (0 means unbounded). The callback runs between
// steps and may read st freely.
func (s *Simulator) RunWithCallback(ctx context.Context, st *sph.State, cfg Config, callback func(*sph.State, sph.Diagnostics) bool) error {
	if err := validateConfig(cfg); err != nil {
		return err
	}

	var diag sph.Diagnostics
	for cfg.Steps == 0 || diag.Step < cfg.Steps {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		_, diag = sph.Advance(st, cfg.Dt, diag)

		if cfg.ValidateState && !st.IsValid() {
			return &dynamo.SimError{Step: diag.Step, Time: diag.Time, Message: "invalid state (NaN/Inf)", Wrapped: dynamo.ErrInvalidState}
		}
		if !callback(st, diag) {
			return nil
		}
	}

	return nil
}
