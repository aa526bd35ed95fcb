package game

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/minifps/config"
)

// frameTime returns the duration of the last rendered frame in seconds.
func frameTime() float32 {
	return rl.GetFrameTime()
}

// Draw renders the game state. The overlay panel is drawn last so it sits on
// top of the scene.
func (g *Game) Draw() {
	cfg := config.Cfg()
	c := cfg.Demo.ClearColor

	rl.BeginDrawing()
	rl.ClearBackground(rl.Color{R: c[0], G: c[1], B: c[2], A: c[3]})

	g.drawParticles()
	g.drawControls(cfg.Demo.MaxParticles)

	g.panel.Draw(int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight()))

	rl.EndDrawing()
}

// drawParticles renders particles as dots fading out with age.
func (g *Game) drawParticles() {
	query := g.particleFilter.Query()
	for query.Next() {
		pos, _, life := query.Get()
		color := rl.White
		color.A = uint8(40 + 215*life.Fraction())
		rl.DrawPixel(int32(pos.X), int32(pos.Y), color)
	}
}

// drawControls renders the population slider and buttons.
func (g *Game) drawControls(maxParticles int) {
	x, y := float32(10), float32(10)

	rl.DrawText(fmt.Sprintf("Target particles: %d", g.target), int32(x), int32(y), 16, rl.White)
	y += 20

	newTarget := gui.SliderBar(
		rl.Rectangle{X: x, Y: y, Width: 240, Height: 20},
		"", fmt.Sprint(maxParticles),
		float32(g.target), 0, float32(maxParticles),
	)
	if int(newTarget) != g.target {
		g.SetTarget(int(newTarget))
	}
	y += 30

	if gui.Button(rl.Rectangle{X: x, Y: y, Width: 115, Height: 24}, toggleText(g.paused, "Resume", "Pause")) {
		g.paused = !g.paused
	}
	if gui.Button(rl.Rectangle{X: x + 125, Y: y, Width: 115, Height: 24}, "Drop panel") {
		// Simulates the host tearing down the overlay's widgets; the overlay
		// keeps running and skips its writes.
		g.panel.Clear()
	}
	y += 34

	if g.paused {
		rl.DrawText("PAUSED", int32(x), int32(y), 16, rl.Yellow)
	}
}

func toggleText(on bool, onText, offText string) string {
	if on {
		return onText
	}
	return offText
}
