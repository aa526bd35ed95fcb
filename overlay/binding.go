package overlay

// Slot identifies one label/value row of the panel.
type Slot int

const (
	SlotFPS Slot = iota
	SlotMaxFrameTime
	SlotEntities
	SlotCPU
	SlotMemory

	SlotCount = 5
)

var slotLabels = [SlotCount]string{
	SlotFPS:          "FPS:",
	SlotMaxFrameTime: "Max Frametime:",
	SlotEntities:     "Entities:",
	SlotCPU:          "CPU Usage:",
	SlotMemory:       "Memory Usage:",
}

// Label returns the static text shown next to the slot's value.
func (s Slot) Label() string {
	if s < 0 || s >= SlotCount {
		return ""
	}
	return slotLabels[s]
}

// Binding caches the value-slot handles of a panel built on first use.
//
// It is not safe for concurrent use. The host calls the overlay from a
// single frame loop, so the first call cannot race.
type Binding struct {
	handles [SlotCount]Handle
	built   bool
}

// GetOrCreate returns the cached handles, calling factory on the first call only.
func (b *Binding) GetOrCreate(factory func() [SlotCount]Handle) [SlotCount]Handle {
	if !b.built {
		b.handles = factory()
		b.built = true
	}
	return b.handles
}

// Built reports whether the factory has run.
func (b *Binding) Built() bool {
	return b.built
}
