package game

import rl "github.com/gen2brain/raylib-go/raylib"

// handleInput processes keyboard input.
func (g *Game) handleInput() {
	// Fullscreen toggle
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}

	// Population control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) {
		g.SetTarget(g.target / 2)
	}
	if rl.IsKeyPressed(rl.KeyPeriod) {
		g.SetTarget(max(g.target*2, 1))
	}

	if rl.IsWindowResized() {
		g.width = float32(rl.GetScreenWidth())
		g.height = float32(rl.GetScreenHeight())
	}
}
