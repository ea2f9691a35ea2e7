package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-crush/internal/games/crush"
	"github.com/vovakirdan/tui-crush/internal/storage"
)

var (
	flagAutoMoves int
	flagAutoBoard string
	flagAutoSize  int
	flagAutoQuiet bool
	flagAutoSave  bool
)

var autoplayCmd = &cobra.Command{
	Use:   "autoplay",
	Short: "Let the engine play headless",
	Long: `Play random legal moves without a terminal UI, printing the board
after each move. Moves that crush exactly three are preferred.

Examples:
  crush autoplay --moves 20
  crush autoplay --board classic --seed 3
  crush autoplay --moves 500 --quiet --save`,
	Args: cobra.NoArgs,
	Run:  runAutoplay,
}

func init() {
	autoplayCmd.Flags().IntVar(&flagAutoMoves, "moves", 10, "Maximum number of moves")
	autoplayCmd.Flags().StringVar(&flagAutoBoard, "board", "", "Builtin board ID or board YAML path")
	autoplayCmd.Flags().IntVar(&flagAutoSize, "size", 0, "Random board size (default from config)")
	autoplayCmd.Flags().BoolVar(&flagAutoQuiet, "quiet", false, "Only print the summary")
	autoplayCmd.Flags().BoolVar(&flagAutoSave, "save", false, "Record the run in the scores database")
}

func runAutoplay(_ *cobra.Command, _ []string) {
	size := appConfig.Board.Size
	if flagAutoSize > 0 {
		size = flagAutoSize
	}
	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	rules, err := newRules(flagAutoBoard, size, seed, logger.WithPrefix("engine"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger.Info("autoplay", "board", flagAutoBoard, "size", rules.Grid().Size(), "seed", seed, "moves", flagAutoMoves)
	res := autoplay(os.Stdout, rules, flagAutoMoves, !flagAutoQuiet)

	if !flagAutoSave || res.Score == 0 {
		return
	}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	runID, err := store.SaveScore(string(crush.ModeAuto), res.Score, res.Moves)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error saving score: %v\n", err)
		return
	}
	fmt.Printf("Saved run %s\n", runID)
}
