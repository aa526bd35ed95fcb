// Package ui draws overlay panels with raylib.
//
// Tree implements overlay.Tree: the overlay asks it to build a panel once and
// then only replaces node text. Layout is recomputed from the current text on
// every Draw, so nothing else needs to be invalidated.
package ui

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Theme holds UI styling constants.
type Theme struct {
	PanelBorder rl.Color
	LabelColor  rl.Color
	ValueColor  rl.Color
	LineSpacing int32 // Extra pixels between rows
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBorder: rl.Color{R: 90, G: 90, B: 90, A: 255},
		LabelColor:  rl.White,
		ValueColor:  rl.White,
		LineSpacing: 2,
	}
}

func toRaylib(c color.RGBA) rl.Color {
	return rl.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}
