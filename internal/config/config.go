// Package config provides YAML-based configuration loading for Crush.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// Board size limits, matching the board files.
const (
	MinBoardSize = 3
	MaxBoardSize = 20
)

// CrushConfig contains all configuration for the Crush game.
type CrushConfig struct {
	Board  BoardConfig  `yaml:"board"`
	Timing TimingConfig `yaml:"timing"`
	Hints  HintsConfig  `yaml:"hints"`
	Log    LogConfig    `yaml:"log"`
}

// BoardConfig defines the board to deal.
type BoardConfig struct {
	Size int    `yaml:"size"`
	File string `yaml:"file"` // Builtin board ID or path; empty for random
}

// TimingConfig defines tick rate and stage durations in ticks.
type TimingConfig struct {
	TickRate      int `yaml:"tick_rate"`
	SwapTicks     int `yaml:"swap_ticks"`
	CrushTicks    int `yaml:"crush_ticks"`
	CollapseTicks int `yaml:"collapse_ticks"`
	AutoMoveTicks int `yaml:"auto_move_ticks"`
	HintTicks     int `yaml:"hint_ticks"`
}

// HintsConfig toggles the hint key.
type HintsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// LogConfig defines where diagnostics go.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // Empty logs to stderr outside the TUI, nowhere inside it
}

var validLevels = []string{"debug", "info", "warn", "error"}

// Validate reports every out-of-range value.
func (c CrushConfig) Validate() error {
	var errs []error

	if c.Board.Size < MinBoardSize || c.Board.Size > MaxBoardSize {
		errs = append(errs, fmt.Errorf("board.size %d out of range %d..%d", c.Board.Size, MinBoardSize, MaxBoardSize))
	}
	if c.Timing.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("timing.tick_rate must be positive, got %d", c.Timing.TickRate))
	}

	ticks := []struct {
		name string
		val  int
	}{
		{"swap_ticks", c.Timing.SwapTicks},
		{"crush_ticks", c.Timing.CrushTicks},
		{"collapse_ticks", c.Timing.CollapseTicks},
		{"auto_move_ticks", c.Timing.AutoMoveTicks},
		{"hint_ticks", c.Timing.HintTicks},
	}
	for _, t := range ticks {
		if t.val < 0 {
			errs = append(errs, fmt.Errorf("timing.%s must not be negative, got %d", t.name, t.val))
		}
	}

	if c.Log.Level != "" && !isValidLevel(c.Log.Level) {
		errs = append(errs, fmt.Errorf("log.level %q is not one of %s", c.Log.Level, strings.Join(validLevels, ", ")))
	}

	return errors.Join(errs...)
}

// Normalize clamps out-of-range values into range and fills blanks
// from the defaults.
func (c *CrushConfig) Normalize() {
	def := DefaultCrushConfig()

	if c.Board.Size == 0 {
		c.Board.Size = def.Board.Size
	}
	c.Board.Size = clamp(c.Board.Size, MinBoardSize, MaxBoardSize)

	if c.Timing.TickRate <= 0 {
		c.Timing.TickRate = def.Timing.TickRate
	}
	for _, v := range []*int{
		&c.Timing.SwapTicks,
		&c.Timing.CrushTicks,
		&c.Timing.CollapseTicks,
		&c.Timing.AutoMoveTicks,
		&c.Timing.HintTicks,
	} {
		if *v < 0 {
			*v = 0
		}
	}

	c.Log.Level = strings.ToLower(c.Log.Level)
	if !isValidLevel(c.Log.Level) {
		c.Log.Level = def.Log.Level
	}
}

func isValidLevel(level string) bool {
	for _, l := range validLevels {
		if strings.EqualFold(level, l) {
			return true
		}
	}
	return false
}

func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
