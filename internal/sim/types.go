package sim

import (
	"time"

	"github.com/san-kum/sphsim/internal/sph"
)

// Metric accumulates a scalar over the steps of a run. Observe sees the state
// strictly between steps and must not retain it.
type Metric interface {
	Name() string
	Observe(st *sph.State, d sph.Diagnostics)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(st *sph.State, d sph.Diagnostics)
}

type Config struct {
	Dt            float64
	Steps         int
	ValidateState bool
	LogEvery      int // 0 disables progress logging
}

type Result struct {
	Diagnostics []sph.Diagnostics
	Metrics     map[string]float64
	StepsTaken  int
	Elapsed     time.Duration
	Errors      []error
}

// Last returns the final diagnostics record, or the zero value for an empty run.
func (r *Result) Last() sph.Diagnostics {
	if len(r.Diagnostics) == 0 {
		return sph.Diagnostics{}
	}
	return r.Diagnostics[len(r.Diagnostics)-1]
}

// StepsPerSecond is the mean solver throughput of the run.
func (r *Result) StepsPerSecond() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.StepsTaken) / r.Elapsed.Seconds()
}
