package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagCheckBoard  string
	flagCheckSize   int
	flagCheckStrict bool
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Inspect a board headless",
	Long: `Print a board, its crush groups, every legal move and a hint.

Without --board a random stable board is dealt using --seed and --size.
The board is shown as loaded: groups already on the board are listed,
not resolved.

Examples:
  crush check --board tutorial
  crush check --board ./boards/mine.yaml
  crush check --size 6 --seed 42
  crush check --board deadlock --strict   # exit 1 if no legal move`,
	Args: cobra.NoArgs,
	Run:  runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&flagCheckBoard, "board", "", "Builtin board ID or board YAML path")
	checkCmd.Flags().IntVar(&flagCheckSize, "size", 0, "Random board size (default from config)")
	checkCmd.Flags().BoolVar(&flagCheckStrict, "strict", false, "Exit with status 1 when the board has no legal move")
}

func runCheck(_ *cobra.Command, _ []string) {
	size := appConfig.Board.Size
	if flagCheckSize > 0 {
		size = flagCheckSize
	}

	rules, err := newRules(flagCheckBoard, size, flagSeed, logger.WithPrefix("engine"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if moves := report(os.Stdout, rules); moves == 0 && flagCheckStrict {
		os.Exit(1)
	}
}
