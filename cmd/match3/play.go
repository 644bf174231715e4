package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-match3/internal/platform/tui"
	"github.com/vovakirdan/tui-match3/internal/registry"
)

var flagEasing string

var playCmd = &cobra.Command{
	Use:   "play [board]",
	Short: "Play a board",
	Long: `Start playing the specified board. Without a board a picker is shown.

Controls:
  Arrows/WASD  - Move cursor (drags the held gem)
  Enter/Space  - Pick up a gem, drop it on a neighbor to swap
  Mouse        - Click or drag a gem onto a neighbor
  Esc          - Drop the held gem
  H            - Show a hint
  P            - Pause
  R            - New board
  Ctrl+S       - Save a screenshot
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - 5 colors
  normal - 6 colors
  hard   - 7 colors
  fixed  - Palette from the board config

Easing options:
  linear, in, out, smoothstep, smootherstep

Examples:
  match3 play
  match3 play classic
  match3 play quarry --difficulty easy
  match3 play glass --easing out --log-file match3.log`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagEasing, "easing", "", "Fall animation curve (default smootherstep)")
}

func runPlay(cmd *cobra.Command, args []string) error {
	// Logs would tear the alternate screen, so only a file receives them.
	logger, err := newLogger(io.Discard)
	if err != nil {
		return err
	}

	// Get terminal size early for the picker
	cfg := runtimeConfig(logger)
	cfg.Easing = flagEasing
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}

	var boardID string
	if len(args) == 1 {
		boardID = args[0]
	} else {
		boardID, err = tui.RunPicker(cfg)
		if err != nil {
			return err
		}
		// User quit the picker
		if boardID == "" {
			return nil
		}
	}

	if !registry.Exists(boardID) {
		return fmt.Errorf("unknown board %q, run 'match3 list' to see available boards", boardID)
	}
	game, err := registry.Create(boardID)
	if err != nil {
		return err
	}

	logger.Info("starting", "board", boardID, "seed", cfg.Seed, "fps", cfg.TickRate)
	return tui.Run(game, cfg)
}
