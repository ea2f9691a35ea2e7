package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-crush/internal/config"
	"github.com/vovakirdan/tui-crush/internal/core"
	"github.com/vovakirdan/tui-crush/internal/games/crush"
	"github.com/vovakirdan/tui-crush/internal/platform/tui"
)

// Loaded by setup before any command runs.
var (
	appConfig config.CrushConfig
	logger    = log.New(io.Discard)
	logFile   *os.File
)

// headless commands log to stderr when no log file is given; the TUI
// commands would be corrupted by it.
var headless = map[string]bool{
	"check":    true,
	"autoplay": true,
	"serve":    true,
	"list":     true,
	"scores":   true,
}

// setup loads config and wires logging into the game and TUI packages.
func setup(cmd *cobra.Command) error {
	cfg, source, err := config.LoadCrushWithSource(flagConfig)
	if err != nil {
		return err
	}
	problems := cfg.Validate()
	cfg.Normalize()
	appConfig = cfg

	level := appConfig.Log.Level
	if flagLogLevel != "" {
		level = flagLogLevel
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}

	path := appConfig.Log.File
	if flagLogFile != "" {
		path = flagLogFile
	}

	var out io.Writer = io.Discard
	switch {
	case path != "":
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		logFile = f
		out = f
	case headless[cmd.Name()]:
		out = os.Stderr
	}

	logger = log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "crush",
		Level:           lvl,
	})
	logger.Debug("config loaded", "source", source)
	if problems != nil {
		logger.Warn("config values out of range were clamped", "source", source, "err", problems)
	}

	crush.Configure(crush.Settings{
		Timing: crush.Timing{
			SwapTicks:     appConfig.Timing.SwapTicks,
			CrushTicks:    appConfig.Timing.CrushTicks,
			CollapseTicks: appConfig.Timing.CollapseTicks,
			AutoMoveTicks: appConfig.Timing.AutoMoveTicks,
			HintTicks:     appConfig.Timing.HintTicks,
		},
		HintsEnabled: appConfig.Hints.Enabled,
		Logger:       logger.WithPrefix("engine"),
	})
	tui.SetLogger(logger.WithPrefix("tui"))

	cobra.OnFinalize(func() {
		if logFile != nil {
			logFile.Close()
		}
	})

	return nil
}

// runtimeConfig builds the base runtime config from config, flags and terminal size.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}

	cfg.TickRate = appConfig.Timing.TickRate
	if flagFPS > 0 {
		cfg.TickRate = flagFPS
	}
	cfg.Seed = flagSeed
	cfg.BoardSize = appConfig.Board.Size
	cfg.BoardFile = appConfig.Board.File
	return cfg
}
