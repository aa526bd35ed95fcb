// Command overlayreplay plays a recorded CSV frame trace through the overlay
// and prints the panel as it would have appeared.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/pthm-cable/minifps/config"
	"github.com/pthm-cable/minifps/console"
	"github.com/pthm-cable/minifps/overlay"
	"github.com/pthm-cable/minifps/replay"
)

var (
	configPath string
	tracePath  string
	everyFrame bool
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "overlayreplay",
	Short: "Replay a frame trace through the diagnostics overlay",
	Long: `Replay a CSV frame trace through the diagnostics overlay.

The trace has one row per frame with the columns
delta,entities,cpu,used_memory,total_memory.

Examples:
  overlayreplay -t frames.csv
  overlayreplay -t frames.csv --every   # print the panel at every refresh`,
	SilenceUsage: true,
	RunE:         runReplay,
}

func init() {
	rootCmd.Flags().StringVarP(&tracePath, "trace", "t", "", "CSV frame trace to replay (required)")
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config.yaml (empty = use defaults)")
	rootCmd.Flags().BoolVar(&everyFrame, "every", false, "Print the panel after every display refresh")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output")
	_ = rootCmd.MarkFlagRequired("trace")
}

func runReplay(cmd *cobra.Command, args []string) error {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	frames, err := replay.LoadFile(tracePath)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	tree := console.NewTree(int(os.Stdout.Fd()))
	// Replays print a history, not a live view.
	tree.Interactive = false

	player := replay.NewPlayer(tree, overlay.OptionsFromConfig(cfg.Overlay))
	if everyFrame {
		player.OnRefresh = func(frame int) error {
			if _, err := fmt.Fprintf(out, "frame %d\n", frame); err != nil {
				return err
			}
			return tree.Render(out)
		}
	}

	if err := player.Play(frames); err != nil {
		return fmt.Errorf("replaying trace: %w", err)
	}

	ov := player.Overlay
	if ov.Refreshes() == 0 {
		return fmt.Errorf("trace covers %d frames but never reaches a display refresh", len(frames))
	}
	if !everyFrame {
		if err := tree.Render(out); err != nil {
			return err
		}
	}

	slog.Info("replay finished", "frames", len(frames), "refreshes", ov.Refreshes(), "stats", ov.Stats())
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
