package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Renderer handles all UI drawing with consistent styling.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel draws a panel background with border.
func (r *Renderer) DrawPanel(x, y, width, height int32, bg rl.Color) {
	rl.DrawRectangle(x, y, width, height, bg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// DrawLabel draws left-aligned label text.
func (r *Renderer) DrawLabel(x, y int32, text string, fontSize int32) {
	rl.DrawText(text, x, y, fontSize, r.Theme.LabelColor)
}

// DrawValue draws value text ending at right.
func (r *Renderer) DrawValue(right, y int32, text string, fontSize, width int32) {
	rl.DrawText(text, right-width, y, fontSize, r.Theme.ValueColor)
}
