package dynamo

import (
	"errors"
	"sync/atomic"
	"testing"
)

func TestParallelFor_CoversRangeOnce(t *testing.T) {
	tests := []struct {
		name              string
		n, chunk, workers int
	}{
		{"empty", 0, 4, 4},
		{"inline", 10, 64, 8},
		{"single worker", 1000, 1, 1},
		{"uneven", 1001, 16, 7},
		{"default workers", 513, 8, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hits := make([]int32, tt.n)
			ParallelFor(tt.n, tt.chunk, tt.workers, func(start, end int) {
				for i := start; i < end; i++ {
					atomic.AddInt32(&hits[i], 1)
				}
			})
			for i, h := range hits {
				if h != 1 {
					t.Fatalf("index %d visited %d times", i, h)
				}
			}
		})
	}
}

func TestSimError(t *testing.T) {
	err := &SimError{Time: 1.5, Step: 150, Message: "test error", Wrapped: ErrInvalidState}
	expected := "step 150 (t=1.5000): test error"
	if err.Error() != expected {
		t.Errorf("SimError.Error() = %q, want %q", err.Error(), expected)
	}
	if !errors.Is(err, ErrInvalidState) {
		t.Error("SimError does not unwrap to ErrInvalidState")
	}
}
