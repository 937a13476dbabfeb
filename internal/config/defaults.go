package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/speedkeys.yaml
var defaultYAML []byte

// DefaultConfig returns the default configuration (the classic rules).
func DefaultConfig() Config {
	return Config{
		Rules: Rules{
			TimeInitial:  10,
			TimeMin:      2,
			TimeDiscount: 2,
			LevelsStep:   5,
		},
		Feedback: Feedback{
			Delay: 500 * time.Millisecond,
		},
		Countdown: Countdown{
			From: 3,
			Step: time.Second,
			Hold: 500 * time.Millisecond,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultYAML
}
