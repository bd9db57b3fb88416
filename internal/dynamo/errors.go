package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrInvalidState indicates NaN or Inf in particle or rigid-body state.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrInvalidParams indicates a solver parameter outside its valid range.
	ErrInvalidParams = errors.New("dynamo: parameter out of valid bounds")

	// ErrCanceled indicates the run was interrupted between steps.
	ErrCanceled = errors.New("dynamo: simulation canceled by context")
)

// SimError wraps a run failure with the step at which it occurred.
type SimError struct {
	Step    int
	Time    float64
	Message string
	Wrapped error
}

func (e *SimError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %s", e.Step, e.Time, e.Message)
}

func (e *SimError) Unwrap() error {
	return e.Wrapped
}
