// Package config provides YAML-based game configuration loading and
// rule presets for SpeedKeys.
package config

import "time"

// Config contains all configuration for the typing game.
type Config struct {
	Rules     Rules     `yaml:"rules"`
	Feedback  Feedback  `yaml:"feedback"`
	Countdown Countdown `yaml:"countdown"`
	Words     Words     `yaml:"words"`
}

// Rules defines how the per-level time budget shrinks.
type Rules struct {
	TimeInitial  int `yaml:"time_initial"`  // Seconds for the first levels
	TimeMin      int `yaml:"time_min"`      // Floor for the time budget
	TimeDiscount int `yaml:"time_discount"` // Seconds removed every LevelsStep levels
	LevelsStep   int `yaml:"levels_step"`   // Levels between two discounts
}

// Feedback defines how long the correct/incorrect flash stays on screen.
type Feedback struct {
	Delay time.Duration `yaml:"delay"`
}

// Countdown defines the 3-2-1 screen shown before the first level.
type Countdown struct {
	From int           `yaml:"from"` // First number shown; 0 disables the countdown
	Step time.Duration `yaml:"step"` // Time each number stays on screen
	Hold time.Duration `yaml:"hold"` // Time the last number stays before play starts
}

// Total returns the full countdown duration.
func (c Countdown) Total() time.Duration {
	if c.From <= 0 {
		return 0
	}
	return time.Duration(c.From-1)*c.Step + c.Hold
}

// Words points at an optional word list file; empty uses the embedded list.
type Words struct {
	Path string `yaml:"path"`
}
