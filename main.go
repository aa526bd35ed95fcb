package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/minifps/config"
	"github.com/pthm-cable/minifps/game"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics, printing the panel to stdout")
	logStats := flag.Bool("log-stats", false, "Output overlay stats via slog")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N frames (0 = unlimited)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := game.Options{
		Seed:     rngSeed,
		Headless: *headless,
		LogStats: *logStats,
		Output:   os.Stdout,
	}

	if *headless {
		g := game.NewGameWithOptions(opts)
		defer g.Unload()

		slog.Info("starting headless demo",
			"seed", rngSeed,
			"max_ticks", *maxTicks,
		)

		// Pace frames like a capped render loop would.
		var frameBudget time.Duration
		if cfg.Screen.TargetFPS > 0 {
			frameBudget = time.Second / time.Duration(cfg.Screen.TargetFPS)
		}

		last := time.Now()
		for {
			if frameBudget > 0 {
				time.Sleep(frameBudget - time.Since(last))
			}
			now := time.Now()
			g.UpdateHeadless(now.Sub(last).Seconds())
			last = now

			if *maxTicks > 0 && int(g.Tick()) >= *maxTicks {
				slog.Info("max ticks reached", "tick", g.Tick())
				return
			}
		}
	}

	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), cfg.Screen.Title)
	defer rl.CloseWindow()

	// 0 leaves the frame rate uncapped so frame times reflect real cost.
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g := game.NewGameWithOptions(opts)
	defer g.Unload()

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()

		if *maxTicks > 0 && int(g.Tick()) >= *maxTicks {
			break
		}
	}
}
