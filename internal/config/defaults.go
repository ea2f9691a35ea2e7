package config

import (
	_ "embed"
)

//go:embed defaults/crush.yaml
var defaultCrushYAML []byte

// DefaultCrushConfig returns the default Crush configuration.
func DefaultCrushConfig() CrushConfig {
	return CrushConfig{
		Board: BoardConfig{
			Size: 8,
		},
		Timing: TimingConfig{
			TickRate:      30,
			SwapTicks:     6,
			CrushTicks:    9,
			CollapseTicks: 9,
			AutoMoveTicks: 15,
			HintTicks:     60,
		},
		Hints: HintsConfig{
			Enabled: true,
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// DefaultCrushYAML returns the embedded default config file.
func DefaultCrushYAML() []byte {
	return defaultCrushYAML
}
