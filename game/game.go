// Package game is a demo host for the overlay: a raylib window over an ark
// world of short-lived particles, with the overlay sampling every frame.
package game

import (
	"io"
	"log/slog"
	"math/rand"
	"os"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/minifps/components"
	"github.com/pthm-cable/minifps/config"
	"github.com/pthm-cable/minifps/console"
	"github.com/pthm-cable/minifps/overlay"
	"github.com/pthm-cable/minifps/sysprobe"
	"github.com/pthm-cable/minifps/telemetry"
	"github.com/pthm-cable/minifps/ui"
)

// Options holds runtime options for the game.
type Options struct {
	Seed     int64
	Headless bool
	LogStats bool

	// Probe overrides the system probe. Nil uses sysprobe.
	Probe telemetry.ResourceProbe

	// Output receives the console panel in headless mode. Nil discards it.
	Output io.Writer
}

// Game holds the complete demo state.
type Game struct {
	world          *ecs.World
	particleMapper *ecs.Map3[components.Position, components.Velocity, components.Lifetime]
	particleFilter *ecs.Filter3[components.Position, components.Velocity, components.Lifetime]
	allFilter      ecs.UnsafeFilter
	rng            *rand.Rand
	expired        []ecs.Entity

	overlay *overlay.Overlay
	panel   *ui.Tree      // graphical mode
	console *console.Tree // headless mode
	output  io.Writer

	// Headless: how often the console panel is printed and stats logged
	reportGate *telemetry.Gate
	logStats   bool

	// State
	tick   int32
	paused bool
	target int
	width  float32
	height float32
}

// NewGameWithOptions creates a game. config.Init must have been called.
func NewGameWithOptions(opts Options) *Game {
	cfg := config.Cfg()

	world := ecs.NewWorld()
	g := &Game{
		world:          world,
		particleMapper: ecs.NewMap3[components.Position, components.Velocity, components.Lifetime](world),
		particleFilter: ecs.NewFilter3[components.Position, components.Velocity, components.Lifetime](world),
		allFilter:      ecs.NewUnsafeFilter(world),
		rng:            rand.New(rand.NewSource(opts.Seed)),
		reportGate:     telemetry.NewGate(cfg.Demo.StatsLogPeriod),
		logStats:       opts.LogStats,
		target:         cfg.Demo.Particles,
		width:          float32(cfg.Screen.Width),
		height:         float32(cfg.Screen.Height),
		output:         opts.Output,
	}
	if g.output == nil {
		g.output = io.Discard
	}

	probe := opts.Probe
	if probe == nil {
		probe = sysprobe.New(nil)
	}

	var tree overlay.Tree
	if opts.Headless {
		fd := -1
		if f, ok := g.output.(*os.File); ok {
			fd = int(f.Fd())
		}
		g.console = console.NewTree(fd)
		tree = g.console
	} else {
		g.panel = ui.NewTree()
		tree = g.panel
	}
	g.overlay = overlay.New(tree, probe, overlay.OptionsFromConfig(cfg.Overlay))

	return g
}

// Update runs one graphical frame.
func (g *Game) Update() {
	g.handleInput()
	g.step(float64(frameTime()))
}

// UpdateHeadless runs one frame of dt seconds without graphics.
func (g *Game) UpdateHeadless(dt float64) {
	g.step(dt)

	if g.reportGate.Advance(dt) {
		g.report()
	}
}

// step advances one frame. The overlay samples first so the frame's
// statistics reflect the entity count the frame started with.
func (g *Game) step(dt float64) {
	g.overlay.Update(dt, g.EntityCount())

	if !g.paused {
		g.updateParticles(float32(dt))
	}
	g.spawnTowardTarget()
	g.tick++
}

// report prints the console panel and logs overlay stats.
func (g *Game) report() {
	if g.console != nil && g.overlay.Refreshes() > 0 {
		if err := g.console.Render(g.output); err != nil {
			slog.Warn("rendering console panel", "error", err)
		}
	}
	if g.logStats {
		slog.Info("overlay", "tick", g.tick, "stats", g.overlay.Stats())
	}
}

// SetTarget changes the particle population the game converges to.
func (g *Game) SetTarget(n int) {
	maxParticles := config.Cfg().Demo.MaxParticles
	g.target = min(max(n, 0), maxParticles)
}

// EntityCount returns the number of live entities in the world.
func (g *Game) EntityCount() int {
	// An empty filter matches every entity, whatever its components.
	query := g.allFilter.Query()
	n := query.Count()
	query.Close()
	return n
}

// Overlay returns the diagnostics overlay.
func (g *Game) Overlay() *overlay.Overlay {
	return g.overlay
}

// Unload releases all resources.
func (g *Game) Unload() {
	if g.panel != nil {
		g.panel.Clear()
	}
	if g.console != nil {
		g.console.Clear()
	}
}

// Tick returns the current frame number.
func (g *Game) Tick() int32 {
	return g.tick
}
