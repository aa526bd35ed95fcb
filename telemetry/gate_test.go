package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGate_FiresOnceAcrossThreshold(t *testing.T) {
	const period, eps = 0.05, 0.01
	g := NewGate(period)

	assert.False(t, g.Advance(period-eps), "below threshold")
	assert.True(t, g.Advance(2*eps), "crossing threshold fires")
	assert.InDelta(t, eps, g.Accumulated(), 1e-12, "excess carries over")
	assert.False(t, g.Advance(0), "no second fire without new time")
}

func TestGate_EqualToPeriodDoesNotFire(t *testing.T) {
	g := NewGate(1)
	assert.False(t, g.Advance(1))
	assert.True(t, g.Advance(0.5))
	assert.InDelta(t, 0.5, g.Accumulated(), 1e-12)
}

func TestGate_AtMostOneFirePerCall(t *testing.T) {
	g := NewGate(0.1)

	assert.True(t, g.Advance(0.35))
	assert.InDelta(t, 0.25, g.Accumulated(), 1e-12)

	// Backlog drains one period per call.
	assert.True(t, g.Advance(0))
	assert.True(t, g.Advance(0))
	assert.False(t, g.Advance(0))
	assert.InDelta(t, 0.05, g.Accumulated(), 1e-12)
}

func TestGate_CadenceTracksElapsedTime(t *testing.T) {
	g := NewGate(DefaultDisplayPeriod)

	// Jittery frame times averaging 16ms over 10 simulated seconds.
	deltas := []float64{0.012, 0.020, 0.016, 0.014, 0.018}
	fires := 0
	elapsed := 0.0
	for elapsed < 10 {
		for _, d := range deltas {
			elapsed += d
			if g.Advance(d) {
				fires++
			}
		}
	}

	// One fire per period, give or take the final partial interval.
	want := int(elapsed / DefaultDisplayPeriod)
	assert.InDelta(t, want, fires, 1)
	assert.Equal(t, DefaultDisplayPeriod, g.Period())
}

func TestMemoryPercent(t *testing.T) {
	tests := []struct {
		name        string
		used, total uint64
		want        uint64
	}{
		{"quarter", 50, 200, 25},
		{"zero total", 50, 0, 0},
		{"full", 16 << 30, 16 << 30, 100},
		{"truncates", 1, 3, 33},
		{"empty", 0, 1024, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MemoryPercent(tt.used, tt.total))
		})
	}
}
