package overlay

import (
	"errors"
	"image/color"
)

// ErrStaleHandle is returned when a handle no longer resolves to a live node.
var ErrStaleHandle = errors.New("overlay: stale widget handle")

// Handle is an opaque reference to a text node owned by a Tree.
// The zero Handle never resolves.
type Handle uint64

// Tree is the host UI tree the overlay writes into.
type Tree interface {
	// Build creates the panel described by layout and returns the handles of
	// its value nodes, indexed by Slot.
	Build(layout Layout) [SlotCount]Handle

	// SetText replaces the text of a node. Returns ErrStaleHandle if the node
	// has been torn down.
	SetText(h Handle, text string) error
}

// Anchor selects the screen corner a panel is pinned to.
type Anchor uint8

const (
	AnchorTopRight Anchor = iota
	AnchorTopLeft
	AnchorBottomRight
	AnchorBottomLeft
)

// Layout describes the panel: a bordered box with a left-aligned label
// column and a right-aligned value column.
type Layout struct {
	Labels [SlotCount]string
	Anchor Anchor

	FontSize      float32
	OuterMargin   float32
	InnerMargin   float32
	ValueMinWidth float32
	Background    color.RGBA
}

// DefaultLayout returns the top-right panel with the standard labels.
func DefaultLayout() Layout {
	return Layout{
		Labels:        slotLabels,
		Anchor:        AnchorTopRight,
		FontSize:      16,
		OuterMargin:   4,
		InnerMargin:   2,
		ValueMinWidth: 80,
		Background:    color.RGBA{R: 51, G: 51, B: 51, A: 255},
	}
}
