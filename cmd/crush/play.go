package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-crush/internal/games/crush"
	"github.com/vovakirdan/tui-crush/internal/platform/tui"
	"github.com/vovakirdan/tui-crush/internal/registry"
	"github.com/vovakirdan/tui-crush/internal/storage"
)

var (
	flagAuto  bool
	flagSize  int
	flagBoard string
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode",
	Long: `Start playing straight away, skipping the menu.

Controls:
  Arrows/WASD/hjkl  - Move cursor (swap when a candy is selected)
  Enter/Space       - Select a candy, or swap with the selected neighbour
  Esc               - Drop the selection
  ?                 - Show a hint
  N                 - Deal a new board
  P                 - Pause
  R                 - Restart (after game over)
  Q/Ctrl+C          - Quit

Boards:
  --board takes a builtin board ID (see 'crush list') or a path to a
  board YAML file. Without it a random board is dealt.

Examples:
  crush play
  crush play --board tutorial
  crush play --auto --size 12
  crush play crush --board ./boards/mine.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagAuto, "auto", false, "Let the engine play")
	playCmd.Flags().IntVar(&flagSize, "size", 0, "Board size (3-20, default from config)")
	playCmd.Flags().StringVar(&flagBoard, "board", "", "Builtin board ID or board YAML path")
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := string(crush.ModePlayer)
	if len(args) > 0 {
		gameID = args[0]
	}
	if flagAuto {
		gameID = string(crush.ModeAuto)
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'crush list' to see available modes.")
		os.Exit(1)
	}

	cfg := runtimeConfig()
	if flagSize > 0 {
		cfg.BoardSize = flagSize
	}
	if flagBoard != "" {
		cfg.BoardFile = flagBoard
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	logger.Info("starting game", "mode", gameID, "board", cfg.BoardFile, "size", cfg.BoardSize, "seed", cfg.Seed)
	_, runErr := tui.Run(game, store, cfg)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
