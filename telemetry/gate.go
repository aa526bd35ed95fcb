package telemetry

// Default refresh periods in seconds.
const (
	DefaultResourcePeriod = 0.2
	DefaultDisplayPeriod  = 0.05
)

// Gate is an accumulate-and-fire timer. It decouples how often a caller ticks
// from how often some work is done.
type Gate struct {
	accumulated float64
	period      float64
}

// NewGate creates a gate that fires once more than period has accumulated.
func NewGate(period float64) *Gate {
	return &Gate{period: period}
}

// Advance adds delta to the accumulated time and reports whether the gate fired.
// On fire exactly one period is subtracted, so the excess carries into the
// next interval. A single call fires at most once even if several periods
// have elapsed.
func (g *Gate) Advance(delta float64) bool {
	g.accumulated += delta
	if g.accumulated > g.period {
		g.accumulated -= g.period
		return true
	}
	return false
}

// Accumulated returns the time carried since the last fire.
func (g *Gate) Accumulated() float64 {
	return g.accumulated
}

// Period returns the firing threshold.
func (g *Gate) Period() float64 {
	return g.period
}
