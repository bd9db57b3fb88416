package sph

import (
	"log/slog"
	"time"
)

// Diagnostics is the per-step report carried between calls to Advance.
// It has no effect on the physics.
type Diagnostics struct {
	Step          int
	Time          float64
	MaxDensity    float64
	MaxNeighbours int
	FrameTime     time.Duration
	H             float64
	GridWidth     int
	GridHeight    int
}

// LogValue implements slog.LogValuer for structured logging.
func (d Diagnostics) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("step", d.Step),
		slog.Float64("time", d.Time),
		slog.Float64("max_density", d.MaxDensity),
		slog.Int("max_neighbours", d.MaxNeighbours),
		slog.Int64("frame_us", d.FrameTime.Microseconds()),
		slog.Float64("h", d.H),
		slog.Int("grid_w", d.GridWidth),
		slog.Int("grid_h", d.GridHeight),
	)
}
