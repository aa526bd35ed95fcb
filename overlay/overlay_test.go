package overlay

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/minifps/config"
	"github.com/pthm-cable/minifps/telemetry"
)

// fakeTree records builds and keeps node text in a NodeSet.
type fakeTree struct {
	nodes   NodeSet
	builds  int
	layouts []Layout
	handles [SlotCount]Handle
}

func (f *fakeTree) Build(layout Layout) [SlotCount]Handle {
	f.builds++
	f.layouts = append(f.layouts, layout)
	for i := range f.handles {
		f.handles[i] = f.nodes.Add("")
	}
	return f.handles
}

func (f *fakeTree) SetText(h Handle, text string) error {
	return f.nodes.SetText(h, text)
}

func (f *fakeTree) text(t *testing.T, slot Slot) string {
	t.Helper()
	s, ok := f.nodes.Text(f.handles[slot])
	require.True(t, ok, "slot %s not live", slot.Label())
	return s
}

type fakeProbe struct {
	cpu          float64
	used, total  uint64
	cpuRefreshes int
	memRefreshes int
}

func (p *fakeProbe) RefreshCPU()         { p.cpuRefreshes++ }
func (p *fakeProbe) RefreshMemory()      { p.memRefreshes++ }
func (p *fakeProbe) CPUUsage() float64   { return p.cpu }
func (p *fakeProbe) UsedMemory() uint64  { return p.used }
func (p *fakeProbe) TotalMemory() uint64 { return p.total }

func testOptions(capacity int) Options {
	opts := DefaultOptions()
	opts.Capacity = capacity
	opts.Logger = slog.New(slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return opts
}

func TestOverlay_EndToEnd(t *testing.T) {
	tree := &fakeTree{}
	probe := &fakeProbe{cpu: 37.9, used: 50, total: 200}
	o := New(tree, probe, testOptions(4))

	for i := 0; i < 3; i++ {
		o.Update(0.016, 42)
	}
	assert.Zero(t, tree.builds, "panel is built on the first display refresh, not before")
	assert.Zero(t, o.Refreshes())

	o.Update(0.016, 42)
	require.Equal(t, 1, tree.builds)
	require.EqualValues(t, 1, o.Refreshes())

	assert.Equal(t, "16.00ms", tree.text(t, SlotMaxFrameTime))
	assert.InDelta(t, 62.5, o.Stats().FPS, 1e-6)
	assert.Equal(t, "42", tree.text(t, SlotEntities))
	assert.Equal(t, "37%", tree.text(t, SlotCPU))
	assert.Equal(t, "25%", tree.text(t, SlotMemory))
	assert.Zero(t, probe.cpuRefreshes, "resource gate has not fired after 64ms")
}

func TestOverlay_BuildsPanelOnce(t *testing.T) {
	tree := &fakeTree{}
	o := New(tree, &fakeProbe{}, testOptions(8))

	for i := 0; i < 1000; i++ {
		o.Update(0.1, i)
	}

	assert.Equal(t, 1, tree.builds)
	assert.EqualValues(t, 1000, o.Refreshes(), "a 0.1s frame exceeds the 0.05s display period every tick")
	assert.Equal(t, DefaultLayout().Labels, tree.layouts[0].Labels)
	assert.Equal(t, "999", tree.text(t, SlotEntities))
}

func TestOverlay_FPSAveragesWindow(t *testing.T) {
	tree := &fakeTree{}
	opts := testOptions(16)
	opts.DisplayPeriod = 0.001
	o := New(tree, &fakeProbe{}, opts)

	for i := 0; i < 10; i++ {
		o.Update(0.01, 0)
	}

	assert.InDelta(t, 100, o.Stats().FPS, 1e-9)
	assert.Equal(t, "100", tree.text(t, SlotFPS))
	assert.Equal(t, "10.00ms", tree.text(t, SlotMaxFrameTime))
}

func TestOverlay_FPSIsNotSingleFrameReciprocal(t *testing.T) {
	tree := &fakeTree{}
	opts := testOptions(4)
	opts.DisplayPeriod = 0.001
	o := New(tree, &fakeProbe{}, opts)

	o.Update(0.01, 0)
	o.Update(0.01, 0)
	o.Update(0.01, 0)
	o.Update(0.05, 0) // spike

	// 4 frames over 80ms, not 1/50ms.
	assert.InDelta(t, 50, o.Stats().FPS, 1e-9)
	assert.Equal(t, "50.00ms", tree.text(t, SlotMaxFrameTime))
}

func TestOverlay_ZeroDurationStartup(t *testing.T) {
	tree := &fakeTree{}
	opts := testOptions(4)
	opts.DisplayPeriod = -1 // fire on every tick, even a zero-length one
	o := New(tree, &fakeProbe{}, opts)

	assert.NotPanics(t, func() { o.Update(0, 0) })
	assert.True(t, math.IsInf(o.Stats().FPS, 1))
	assert.Equal(t, "+Inf", tree.text(t, SlotFPS))
	assert.Equal(t, "0.00ms", tree.text(t, SlotMaxFrameTime))
}

func TestOverlay_ZeroTotalMemory(t *testing.T) {
	tree := &fakeTree{}
	o := New(tree, &fakeProbe{used: 1 << 20, total: 0}, testOptions(4))

	o.Update(0.1, 0)

	assert.Equal(t, "0%", tree.text(t, SlotMemory))
}

func TestOverlay_ResourceRefreshCadence(t *testing.T) {
	probe := &fakeProbe{}
	o := New(&fakeTree{}, probe, testOptions(128))

	// 1.0s of 10ms frames: 0.2s period fires on frames 21, 41, 61, 81.
	for i := 0; i < 100; i++ {
		o.Update(0.01, 0)
	}

	assert.InDelta(t, 4, probe.cpuRefreshes, 1)
	assert.Equal(t, probe.cpuRefreshes, probe.memRefreshes)
}

func TestOverlay_DisplayThrottle(t *testing.T) {
	o := New(&fakeTree{}, &fakeProbe{}, testOptions(128))

	// 1.0s of 1ms frames refreshes about 20 times, not 1000.
	for i := 0; i < 1000; i++ {
		o.Update(0.001, 0)
	}

	assert.InDelta(t, 20, o.Refreshes(), 1)
}

func TestOverlay_StaleHandleSkipsSlot(t *testing.T) {
	tree := &fakeTree{}
	o := New(tree, &fakeProbe{cpu: 12}, testOptions(4))

	o.Update(0.1, 1)
	require.Equal(t, "1", tree.text(t, SlotEntities))

	// Host tears down the entity value node.
	tree.nodes.Release(tree.handles[SlotEntities])

	assert.NotPanics(t, func() { o.Update(0.1, 2) })
	_, ok := tree.nodes.Text(tree.handles[SlotEntities])
	assert.False(t, ok)
	assert.Equal(t, "12%", tree.text(t, SlotCPU), "other slots still update")
	assert.Equal(t, 1, tree.builds, "stale handles are not rebuilt")
}

func TestOverlay_WriteAllocationsBounded(t *testing.T) {
	opts := testOptions(128)
	opts.DisplayPeriod = 1e9
	o := New(&fakeTree{}, &fakeProbe{cpu: 50, used: 1, total: 2}, opts)

	allocs := testing.AllocsPerRun(100, func() {
		o.Update(0.001, 7) // no display refresh
	})
	assert.Zero(t, allocs, "a tick that does not refresh the panel must not allocate")
}

func TestOverlay_ZeroOptionsUseDefaults(t *testing.T) {
	tree := &fakeTree{}
	o := New(tree, &fakeProbe{}, Options{})

	assert.NotPanics(t, func() {
		for i := 0; i < 4; i++ {
			o.Update(0.02, 3)
		}
	})
	assert.Equal(t, telemetry.DefaultRingCapacity, o.Samples().Capacity())
	assert.EqualValues(t, 1, o.Refreshes(), "default 0.05s display period")
	require.Len(t, tree.layouts, 1)
	assert.Equal(t, DefaultLayout(), tree.layouts[0])
	assert.Equal(t, "3", tree.text(t, SlotEntities))
}

func TestOptionsFromConfig(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultOptions(), OptionsFromConfig(cfg.Overlay))
}

func TestStats_LogValue(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	logger.Info("overlay", "stats", Stats{FPS: math.Inf(1), MaxFrameTimeMS: 16, Entities: 3, CPUPercent: 5, MemoryPercent: 25})

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	stats, ok := line["stats"].(map[string]any)
	require.True(t, ok)
	assert.NotContains(t, stats, "fps")
	assert.EqualValues(t, 25, stats["mem_pct"])
	assert.EqualValues(t, 3, stats["entities"])
}
