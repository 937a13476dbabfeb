package config

// Preset represents a named rule set.
type Preset string

// The presets differ only in the initial time budget. Classic is the
// default.
const (
	PresetClassic  Preset = "classic"
	PresetExtended Preset = "extended"
)

// TimeInitialForPreset returns the initial time budget for a preset.
func TimeInitialForPreset(preset Preset) int {
	switch preset {
	case PresetExtended:
		return 20
	default:
		return 10
	}
}

// ApplyPreset modifies the config based on a preset.
// Only the initial budget changes; floor, discount and step are shared.
func ApplyPreset(cfg *Config, preset Preset) {
	cfg.Rules.TimeInitial = TimeInitialForPreset(preset)
}
