package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/registry"
	"github.com/vovakirdan/tui-match3/internal/sim"
)

var (
	flagBoards  int
	flagSwaps   int
	flagWorkers int
	flagPolicy  string
	flagDump    bool
	flagQuiet   bool
)

var simCmd = &cobra.Command{
	Use:   "sim [board]",
	Short: "Simulate boards and report cascade statistics",
	Long: `Plays many boards without a terminal UI. Each board is dealt from
its own seed (--seed plus its index), so a run is reproducible for any
worker count.

Policies:
  random - try any legal swap, most are reverted
  greedy - only try swaps that make a match

Examples:
  match3 sim
  match3 sim glass --boards 1000 --swaps 100 --policy greedy
  match3 sim quarry --seed 42 --dump --quiet`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagBoards, "boards", 200, "Number of boards to play")
	simCmd.Flags().IntVar(&flagSwaps, "swaps", 50, "Swaps attempted per board")
	simCmd.Flags().IntVar(&flagWorkers, "workers", 0, "Concurrent boards (0 = one per CPU)")
	simCmd.Flags().StringVar(&flagPolicy, "policy", string(sim.PolicyRandom), "Swap policy: random, greedy")
	simCmd.Flags().BoolVar(&flagDump, "dump", false, "Print every final board")
	simCmd.Flags().BoolVarP(&flagQuiet, "quiet", "q", false, "Hide the progress bar")
}

func runSim(cmd *cobra.Command, args []string) error {
	boardID := config.DefaultPreset
	if len(args) == 1 {
		boardID = args[0]
	}
	if !registry.Exists(boardID) && flagConfig == "" {
		return fmt.Errorf("unknown board %q, run 'match3 list' to see available boards", boardID)
	}

	logger, err := newLogger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	policy, err := sim.ParsePolicy(flagPolicy)
	if err != nil {
		return err
	}
	board, err := loadBoard(boardID)
	if err != nil {
		return err
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	var progress io.Writer = cmd.ErrOrStderr()
	if flagQuiet {
		progress = nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	logger.Info("simulating", "board", boardID, "boards", flagBoards, "swaps", flagSwaps,
		"policy", policy, "seed", seed)
	rep, err := sim.Run(ctx, board, sim.Options{
		Boards:   flagBoards,
		Swaps:    flagSwaps,
		Workers:  flagWorkers,
		Seed:     seed,
		Policy:   policy,
		Progress: progress,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if flagDump {
		if err := rep.DumpBoards(out); err != nil {
			return err
		}
	}
	fmt.Fprint(out, rep.String())
	if rep.Violations > 0 {
		return fmt.Errorf("%d cascades left the board unsettled", rep.Violations)
	}
	return nil
}
