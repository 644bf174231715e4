package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config [board]",
	Short: "Print the resolved config of a board",
	Long: `Prints the YAML config a board would be played with, after the
search path and --difficulty are applied. Save it under
~/.match3/configs/<board>.yaml to customize the board.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	boardID := config.DefaultPreset
	if len(args) == 1 {
		boardID = args[0]
	}
	cfg, err := loadBoard(boardID)
	if err != nil {
		return err
	}
	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
