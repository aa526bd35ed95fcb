package telemetry

import (
	"iter"

	"gonum.org/v1/gonum/floats"
)

// DefaultRingCapacity is the number of frame-time samples kept by default.
const DefaultRingCapacity = 128

// SampleRing is a fixed-capacity circular buffer of frame-time samples in seconds.
//
// Capacity must be a power of two. This is not checked: the write cursor
// wraps with a mask, so any other capacity silently skips slots.
type SampleRing struct {
	samples     []float64
	mask        int
	writeIndex  int
	sampleCount int
}

// NewSampleRing creates a ring with all slots zeroed.
func NewSampleRing(capacity int) *SampleRing {
	return &SampleRing{
		samples: make([]float64, capacity),
		mask:    capacity - 1,
	}
}

// Push records a sample, evicting the oldest one once the ring is full.
func (r *SampleRing) Push(sample float64) {
	r.samples[r.writeIndex] = sample
	r.writeIndex = (r.writeIndex + 1) & r.mask
	if r.sampleCount < len(r.samples) {
		r.sampleCount++
	}
}

// Len returns the number of valid samples.
func (r *SampleRing) Len() int {
	return r.sampleCount
}

// IsEmpty reports whether no sample has been pushed yet.
func (r *SampleRing) IsEmpty() bool {
	return r.sampleCount == 0
}

// Capacity returns the number of slots.
func (r *SampleRing) Capacity() int {
	return len(r.samples)
}

// All yields the valid samples in storage order, not chronological order.
// Only order-insensitive reductions should rely on it.
func (r *SampleRing) All() iter.Seq[float64] {
	return func(yield func(float64) bool) {
		for _, s := range r.samples[:r.sampleCount] {
			if !yield(s) {
				return
			}
		}
	}
}

// Values returns the valid prefix of the backing storage without copying.
// The slice is only valid until the next Push and must not be modified.
func (r *SampleRing) Values() []float64 {
	return r.samples[:r.sampleCount]
}

// Sum returns the total time covered by the valid samples.
func (r *SampleRing) Sum() float64 {
	return floats.Sum(r.Values())
}

// Max returns the largest valid sample, or 0 for an empty ring.
func (r *SampleRing) Max() float64 {
	if r.IsEmpty() {
		return 0
	}
	return floats.Max(r.Values())
}
