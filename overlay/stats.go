package overlay

import (
	"log/slog"
	"math"
)

// Stats holds the values shown by the panel at its last refresh.
type Stats struct {
	FPS            float64
	MaxFrameTimeMS float64
	Entities       int
	CPUPercent     int
	MemoryPercent  uint64
}

// LogValue implements slog.LogValuer for structured logging.
func (s Stats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Float64("max_frametime_ms", s.MaxFrameTimeMS),
		slog.Int("entities", s.Entities),
		slog.Int("cpu_pct", s.CPUPercent),
		slog.Uint64("mem_pct", s.MemoryPercent),
	}

	// The JSON handler cannot encode Inf or NaN.
	if !math.IsInf(s.FPS, 0) && !math.IsNaN(s.FPS) {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}

	return slog.GroupValue(attrs...)
}
