// Package components defines ECS components for the demo particle world.
package components

// Position represents an entity's screen position.
type Position struct {
	X, Y float32
}

// Velocity represents an entity's velocity in pixels per second.
type Velocity struct {
	X, Y float32
}

// Lifetime counts down to despawn.
type Lifetime struct {
	Remaining float32
	Total     float32
}

// Fraction returns remaining life in [0, 1].
func (l Lifetime) Fraction() float32 {
	if l.Total <= 0 {
		return 0
	}
	f := l.Remaining / l.Total
	if f < 0 {
		return 0
	}
	return f
}
