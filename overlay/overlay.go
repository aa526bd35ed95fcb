// Package overlay turns per-frame timing and host resource readings into the
// text of a small diagnostics panel.
//
// An Overlay is driven by the host's frame loop: call Update once per frame,
// before presenting, with the frame's delta time and the live entity count.
// Frame times go into a ring buffer every frame; the resource probe and the
// panel text are refreshed on their own throttled cadences.
package overlay

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/pthm-cable/minifps/telemetry"
)

// Overlay is the per-frame aggregator. It is not safe for concurrent use.
type Overlay struct {
	tree   Tree
	probe  telemetry.ResourceProbe
	layout Layout
	logger *slog.Logger

	samples      *telemetry.SampleRing
	resourceGate *telemetry.Gate
	displayGate  *telemetry.Gate
	binding      Binding
	build        func() [SlotCount]Handle

	stats     Stats
	refreshes uint64
	scratch   []byte
}

// New creates an overlay writing into tree and reading from probe.
// Nothing is built in tree until the first display refresh.
func New(tree Tree, probe telemetry.ResourceProbe, opts Options) *Overlay {
	opts = opts.withDefaults()
	o := &Overlay{
		tree:         tree,
		probe:        probe,
		layout:       opts.Layout,
		logger:       opts.Logger,
		samples:      telemetry.NewSampleRing(opts.Capacity),
		resourceGate: telemetry.NewGate(opts.ResourcePeriod),
		displayGate:  telemetry.NewGate(opts.DisplayPeriod),
		scratch:      make([]byte, 0, 32),
	}
	o.build = o.buildPanel
	return o
}

func (o *Overlay) buildPanel() [SlotCount]Handle {
	o.logger.Debug("building overlay panel")
	return o.tree.Build(o.layout)
}

// Update records one frame. delta is the frame time in seconds, entities the
// host's live object count.
func (o *Overlay) Update(delta float64, entities int) {
	o.samples.Push(delta)

	if o.resourceGate.Advance(delta) {
		o.probe.RefreshMemory()
		o.probe.RefreshCPU()
	}

	if !o.displayGate.Advance(delta) {
		return
	}

	handles := o.binding.GetOrCreate(o.build)
	o.stats = o.compute(entities)
	o.refreshes++
	o.write(handles)
}

func (o *Overlay) compute(entities int) Stats {
	return Stats{
		// Averaged over the whole window, not 1/delta. A zero sum gives +Inf
		// during start-up.
		FPS:            float64(o.samples.Len()) / o.samples.Sum(),
		MaxFrameTimeMS: o.samples.Max() * 1000,
		Entities:       entities,
		CPUPercent:     int(o.probe.CPUUsage()),
		MemoryPercent:  telemetry.MemoryPercent(o.probe.UsedMemory(), o.probe.TotalMemory()),
	}
}

func (o *Overlay) write(handles [SlotCount]Handle) {
	s := o.stats
	o.setText(handles, SlotFPS, strconv.AppendFloat(o.scratch[:0], s.FPS, 'f', 0, 64))

	b := strconv.AppendFloat(o.scratch[:0], s.MaxFrameTimeMS, 'f', 2, 64)
	o.setText(handles, SlotMaxFrameTime, append(b, "ms"...))

	o.setText(handles, SlotEntities, strconv.AppendInt(o.scratch[:0], int64(s.Entities), 10))

	b = strconv.AppendInt(o.scratch[:0], int64(s.CPUPercent), 10)
	o.setText(handles, SlotCPU, append(b, '%'))

	b = strconv.AppendUint(o.scratch[:0], s.MemoryPercent, 10)
	o.setText(handles, SlotMemory, append(b, '%'))
}

// setText writes one slot. A stale handle skips the slot for this refresh;
// the next refresh tries again.
func (o *Overlay) setText(handles [SlotCount]Handle, slot Slot, text []byte) {
	o.scratch = text[:0]
	if err := o.tree.SetText(handles[slot], string(text)); err != nil {
		if o.logger.Enabled(context.Background(), slog.LevelDebug) {
			o.logger.Debug("overlay slot write skipped", "slot", slot.Label(), "error", err)
		}
	}
}

// Stats returns the values written at the last display refresh.
func (o *Overlay) Stats() Stats {
	return o.stats
}

// Refreshes returns how many display refreshes have happened.
func (o *Overlay) Refreshes() uint64 {
	return o.refreshes
}

// Samples exposes the frame-time ring for read-only inspection.
func (o *Overlay) Samples() *telemetry.SampleRing {
	return o.samples
}
