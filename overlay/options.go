package overlay

import (
	"image/color"
	"log/slog"

	"github.com/pthm-cable/minifps/config"
	"github.com/pthm-cable/minifps/telemetry"
)

// Options configures an Overlay. Values are fixed for the overlay's lifetime.
// Zero fields take their DefaultOptions value, so Options{} is usable.
type Options struct {
	// Capacity is the number of frame-time samples averaged. Must be a power of two.
	Capacity       int
	ResourcePeriod float64 // seconds between probe refreshes
	DisplayPeriod  float64 // seconds between panel refreshes
	Layout         Layout

	// Logger receives debug output for skipped writes. Defaults to slog.Default().
	Logger *slog.Logger
}

// DefaultOptions returns a 128-sample ring, 0.2s probe refresh and 0.05s display refresh.
func DefaultOptions() Options {
	return Options{
		Capacity:       telemetry.DefaultRingCapacity,
		ResourcePeriod: telemetry.DefaultResourcePeriod,
		DisplayPeriod:  telemetry.DefaultDisplayPeriod,
		Layout:         DefaultLayout(),
	}
}

// withDefaults replaces zero fields with their default values.
func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.Capacity <= 0 {
		o.Capacity = def.Capacity
	}
	if o.ResourcePeriod == 0 {
		o.ResourcePeriod = def.ResourcePeriod
	}
	if o.DisplayPeriod == 0 {
		o.DisplayPeriod = def.DisplayPeriod
	}
	if o.Layout == (Layout{}) {
		o.Layout = def.Layout
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// OptionsFromConfig builds options from the overlay config section.
func OptionsFromConfig(c config.OverlayConfig) Options {
	opts := DefaultOptions()
	opts.Capacity = c.RingCapacity
	opts.ResourcePeriod = c.ResourcePeriod
	opts.DisplayPeriod = c.DisplayPeriod
	opts.Layout.FontSize = c.FontSize
	opts.Layout.OuterMargin = c.OuterMargin
	opts.Layout.InnerMargin = c.InnerMargin
	opts.Layout.ValueMinWidth = c.ValueMinWidth
	opts.Layout.Background = color.RGBA{
		R: c.Background[0],
		G: c.Background[1],
		B: c.Background[2],
		A: c.Background[3],
	}
	return opts
}
