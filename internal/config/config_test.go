package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := parse(DefaultCrushYAML())
	require.NoError(t, err)
	assert.Equal(t, DefaultCrushConfig(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoadCrushCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crush.yaml")
	data := []byte("board:\n  size: 5\n  file: tutorial\nhints:\n  enabled: false\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, source, err := LoadCrushWithSource(path)
	require.NoError(t, err)
	assert.Equal(t, path, source)
	assert.Equal(t, 5, cfg.Board.Size)
	assert.Equal(t, "tutorial", cfg.Board.File)
	assert.False(t, cfg.Hints.Enabled)

	// Keys absent from the file keep their defaults
	assert.Equal(t, DefaultCrushConfig().Timing, cfg.Timing)
}

func TestLoadCrushMissingCustomPath(t *testing.T) {
	cfg, err := LoadCrush(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
	assert.Equal(t, DefaultCrushConfig(), cfg)
}

func TestLoadCrushInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crush.yaml")
	require.NoError(t, os.WriteFile(path, []byte("board: [not, a, map"), 0o644))

	_, err := LoadCrush(path)
	assert.Error(t, err)
}

func TestLoadCrushNormalizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crush.yaml")
	require.NoError(t, os.WriteFile(path, []byte("board:\n  size: 99\n"), 0o644))

	raw, _, err := LoadCrushWithSource(path)
	require.NoError(t, err)
	assert.Equal(t, 99, raw.Board.Size)
	assert.Error(t, raw.Validate())

	cfg, err := LoadCrush(path)
	require.NoError(t, err)
	assert.Equal(t, MaxBoardSize, cfg.Board.Size)
}

func TestNormalizeClamps(t *testing.T) {
	tests := []struct {
		name string
		in   int
		want int
	}{
		{"zero uses default", 0, 8},
		{"too small", 2, MinBoardSize},
		{"too large", 50, MaxBoardSize},
		{"in range", 12, 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultCrushConfig()
			cfg.Board.Size = tt.in
			cfg.Normalize()
			assert.Equal(t, tt.want, cfg.Board.Size)
		})
	}
}

func TestNormalizeTiming(t *testing.T) {
	cfg := DefaultCrushConfig()
	cfg.Timing.TickRate = -1
	cfg.Timing.CrushTicks = -4
	cfg.Log.Level = "LOUD"
	cfg.Normalize()

	assert.Equal(t, 30, cfg.Timing.TickRate)
	assert.Equal(t, 0, cfg.Timing.CrushTicks)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.NoError(t, cfg.Validate())
}

func TestValidateReportsEveryProblem(t *testing.T) {
	cfg := DefaultCrushConfig()
	cfg.Board.Size = 1
	cfg.Timing.SwapTicks = -1
	cfg.Log.Level = "verbose"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "board.size 1")
	assert.Contains(t, err.Error(), "timing.swap_ticks")
	assert.Contains(t, err.Error(), "log.level")
}
