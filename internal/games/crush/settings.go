package crush

import (
	"io"

	"github.com/charmbracelet/log"
)

// Timing holds stage durations in simulation ticks.
type Timing struct {
	SwapTicks     int // Swap animation before crushes are found
	CrushTicks    int // Crushed tokens flash before removal
	CollapseTicks int // Tokens fall into place
	AutoMoveTicks int // Idle delay between automatic moves
	HintTicks     int // How long a hint stays on screen
}

// DefaultTiming returns durations tuned for 30 ticks per second.
func DefaultTiming() Timing {
	return Timing{
		SwapTicks:     6,
		CrushTicks:    9,
		CollapseTicks: 9,
		AutoMoveTicks: 15,
		HintTicks:     60,
	}
}

// Settings configures every Crush game created after Configure.
type Settings struct {
	Timing       Timing
	HintsEnabled bool
	Logger       *log.Logger
}

// DefaultSettings returns the settings used when Configure is never called.
func DefaultSettings() Settings {
	return Settings{
		Timing:       DefaultTiming(),
		HintsEnabled: true,
		Logger:       log.New(io.Discard),
	}
}

// Package-level settings, set by the CLI before games are created.
var settings = DefaultSettings()

// Configure replaces the settings applied on the next Reset.
func Configure(s Settings) {
	if s.Logger == nil {
		s.Logger = log.New(io.Discard)
	}
	settings = s
}

// CurrentSettings returns the active settings.
func CurrentSettings() Settings {
	return settings
}
