package game

import (
	"github.com/vovakirdan/speedkeys/internal/config"
	"github.com/vovakirdan/speedkeys/internal/registry"
)

// Mode identifiers.
const (
	ModeClassic  = "classic"
	ModeExtended = "extended"
	ModeCustom   = "custom"
)

// Register the modes with the registry
func init() {
	registry.Register(ModeClassic, func(deps registry.Deps) registry.Game {
		return New(ModeClassic, "Classic", config.PresetClassic, deps)
	})
	registry.Register(ModeExtended, func(deps registry.Deps) registry.Game {
		return New(ModeExtended, "Extended", config.PresetExtended, deps)
	})
	// Custom plays with whatever rules the loaded config file defines
	registry.Register(ModeCustom, func(deps registry.Deps) registry.Game {
		return New(ModeCustom, "Custom", "", deps)
	})
}
