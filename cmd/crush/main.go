// crush is a match-3 candy game for the terminal.
//
// Usage:
//
//	crush                    - Start menu to pick a board interactively
//	crush play [mode]        - Play a mode directly (crush, crush_auto)
//	crush list               - List modes and builtin boards
//	crush scores [mode]      - Show high scores
//	crush serve              - Start SSH server for remote play
//	crush check              - Print a board's crush groups and legal moves
//	crush autoplay           - Play random legal moves headless
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: from config)
//	--seed <value>      - Set RNG seed for reproducible boards
//	--db <path>         - Set database path (default: ~/.crush/scores.db)
//	--config <path>     - Use a custom config YAML
//	--log-level <lvl>   - debug, info, warn or error
//	--log-file <path>   - Write logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/tui-crush/internal/games/crush"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "crush",
	Short: "Crush - line up candies in your terminal",
	Long: `Crush is a match-3 game for the terminal. Swap neighbouring candies
to line up three or more of a color; they crush, the column falls and
new candies drop in from above.

Available commands:
  play      - Play a mode directly
  menu      - Interactive board picker (default)
  list      - Show modes and builtin boards
  scores    - View high scores
  serve     - Start SSH server for remote play
  check     - Inspect a board headless
  autoplay  - Let the engine play headless

Examples:
  crush
  crush play --board tutorial
  crush play crush_auto --size 10
  crush serve --ssh :2222
  crush autoplay --moves 20 --seed 7`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return setup(cmd)
	},
	SilenceUsage: true,
	Run:          runMenu,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (frames per second, 0 = from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.crush/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(autoplayCmd)
}
