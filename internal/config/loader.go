package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrInvalidRules is returned by Validate for rules that cannot produce a
// positive time budget.
var ErrInvalidRules = errors.New("config: invalid rules")

// Load loads the game configuration.
// Search order: customPath -> ~/.speedkeys/config.yaml -> ./configs/speedkeys.yaml -> embedded default
func Load(customPath string) (Config, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("config.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "speedkeys.yaml")); err == nil {
		if cfg, err := parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parse(defaultYAML)
	if err != nil {
		return DefaultConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parse decodes YAML on top of the defaults, so partial files only
// override the keys they name, then validates the result.
func parse(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the configuration can drive a game.
func (c Config) Validate() error {
	r := c.Rules
	switch {
	case r.TimeInitial <= 0:
		return fmt.Errorf("%w: time_initial must be positive, got %d", ErrInvalidRules, r.TimeInitial)
	case r.TimeMin <= 0:
		return fmt.Errorf("%w: time_min must be positive, got %d", ErrInvalidRules, r.TimeMin)
	case r.TimeDiscount < 0:
		return fmt.Errorf("%w: time_discount must not be negative, got %d", ErrInvalidRules, r.TimeDiscount)
	case r.LevelsStep <= 0:
		return fmt.Errorf("%w: levels_step must be positive, got %d", ErrInvalidRules, r.LevelsStep)
	}
	if c.Feedback.Delay < 0 {
		return fmt.Errorf("config: feedback delay must not be negative, got %v", c.Feedback.Delay)
	}
	if c.Countdown.From < 0 || c.Countdown.Step < 0 || c.Countdown.Hold < 0 {
		return errors.New("config: countdown values must not be negative")
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".speedkeys", filename)
}
