// Package replay plays recorded frame traces through an overlay.
//
// A trace is a CSV file with one row per frame:
//
//	delta,entities,cpu,used_memory,total_memory
//	0.016,1200,12.5,4294967296,17179869184
//
// Probe readings in a row only become visible to the overlay when its
// resource gate next refreshes the probe, as they would with a live probe.
package replay

import (
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/minifps/overlay"
)

// Frame is one recorded host frame.
type Frame struct {
	Delta       float64 `csv:"delta"`
	Entities    int     `csv:"entities"`
	CPU         float64 `csv:"cpu"`
	UsedMemory  uint64  `csv:"used_memory"`
	TotalMemory uint64  `csv:"total_memory"`
}

// Load parses a trace.
func Load(r io.Reader) ([]Frame, error) {
	var frames []Frame
	if err := gocsv.Unmarshal(r, &frames); err != nil {
		return nil, fmt.Errorf("parsing trace: %w", err)
	}
	for i, f := range frames {
		if f.Delta < 0 {
			return nil, fmt.Errorf("frame %d: negative delta %v", i, f.Delta)
		}
	}
	return frames, nil
}

// LoadFile parses a trace file.
func LoadFile(path string) ([]Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening trace: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Probe is a telemetry.ResourceProbe fed from trace frames.
type Probe struct {
	pending Frame

	cpu         float64
	usedMemory  uint64
	totalMemory uint64
}

// Stage makes f the reading returned after the next refresh.
func (p *Probe) Stage(f Frame) {
	p.pending = f
}

func (p *Probe) RefreshCPU() {
	p.cpu = p.pending.CPU
}

func (p *Probe) RefreshMemory() {
	p.usedMemory = p.pending.UsedMemory
	p.totalMemory = p.pending.TotalMemory
}

func (p *Probe) CPUUsage() float64   { return p.cpu }
func (p *Probe) UsedMemory() uint64  { return p.usedMemory }
func (p *Probe) TotalMemory() uint64 { return p.totalMemory }

// Player drives an overlay from a trace.
type Player struct {
	Overlay *overlay.Overlay
	Probe   *Probe

	// OnRefresh, if set, is called after every frame that refreshed the panel.
	OnRefresh func(frame int) error
}

// NewPlayer creates an overlay over tree fed by a fresh Probe.
func NewPlayer(tree overlay.Tree, opts overlay.Options) *Player {
	probe := &Probe{}
	return &Player{
		Overlay: overlay.New(tree, probe, opts),
		Probe:   probe,
	}
}

// Play feeds every frame to the overlay in order.
func (p *Player) Play(frames []Frame) error {
	for i, f := range frames {
		before := p.Overlay.Refreshes()
		p.Probe.Stage(f)
		p.Overlay.Update(f.Delta, f.Entities)

		if p.OnRefresh != nil && p.Overlay.Refreshes() != before {
			if err := p.OnRefresh(i); err != nil {
				return fmt.Errorf("frame %d: %w", i, err)
			}
		}
	}
	return nil
}
