// match3 is a falling-tile puzzle for the terminal.
//
// Usage:
//
//	match3 list              - List available boards
//	match3 play [board]      - Play a board, or pick one from a menu
//	match3 sim [board]       - Play boards headlessly and report cascade stats
//	match3 config [board]    - Print a board's resolved YAML config
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible boards
//	--config <path>       - Use a custom board config YAML
//	--difficulty <preset> - Palette size: easy, normal, hard, fixed
//	--log-level <level>   - debug, info, warn or error
//	--log-file <path>     - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/core"
	// Import boards to register them
	_ "github.com/vovakirdan/tui-match3/internal/games/gems"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

// logFile is the open --log-file, closed after the command runs.
var logFile *os.File

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "match3",
	Short: "Match 3 - Swap and cascade gems in your terminal",
	Long: `Match 3 is a terminal puzzle: swap two neighboring gems to line up
three or more of a color. Matches clear, gems fall, and new ones drop in
until the board settles.

Available commands:
  list     - Show all available boards
  play     - Play a board (menu when no board is given)
  sim      - Simulate many boards and report cascade statistics
  config   - Print the resolved config of a board

Examples:
  match3 list
  match3 play classic
  match3 play glass --difficulty hard
  match3 sim quarry --boards 500 --policy greedy
  match3 config classic > ~/.match3/configs/classic.yaml`,
	SilenceUsage: true,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logFile != nil {
			logFile.Close()
			logFile = nil
		}
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom board config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger builds the command logger. Without --log-file logs go to
// fallback, which is io.Discard while the TUI owns the terminal.
func newLogger(fallback io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("--log-level: %w", err)
	}

	out := fallback
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		logFile = f
		out = f
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "match3",
		Level:           level,
	})
	return logger, nil
}

// runtimeConfig collects the global flags for a game session.
func runtimeConfig(logger *log.Logger) core.RuntimeConfig {
	cfg := core.DefaultConfig()
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	cfg.ConfigPath = flagConfig
	cfg.Difficulty = flagDifficulty
	cfg.Logger = logger
	return cfg
}

// loadBoard resolves a board config with the difficulty flag applied.
func loadBoard(id string) (config.Match3Config, error) {
	cfg, err := config.Load(id, flagConfig)
	if err != nil {
		return cfg, err
	}
	diff, err := config.ParseDifficulty(flagDifficulty)
	if err != nil {
		return cfg, err
	}
	config.ApplyPreset(&cfg, diff)
	return cfg, nil
}
