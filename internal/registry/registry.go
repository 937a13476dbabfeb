// Package registry provides a registry for game mode factories.
// Modes register themselves in init() functions, allowing the platform
// to discover and instantiate them without hardcoded dependencies.
package registry

import (
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/speedkeys/internal/config"
	"github.com/vovakirdan/speedkeys/internal/core"
)

// Game is the interface every registered mode implements.
// Games contain pure logic with no external dependencies (especially no Bubble Tea).
// The platform handles input mapping, timing, and rendering.
type Game interface {
	// ID returns a unique identifier for this mode (e.g., "classic").
	// Used for CLI commands and score storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Rules returns the timing rules this mode plays with.
	Rules() config.Rules

	// Reset starts a new run.
	// Called once at start and again when replaying after game over.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Frame returns what the presentation layer should draw.
	Frame() core.Frame

	// State returns the current game state (score, level, game over).
	State() core.GameState
}

// WordSource draws target words.
type WordSource interface {
	Random() string
	Reseed(seed int64)
}

// Deps carries the collaborators a mode needs. Nothing is global: the CLI
// builds one Deps per process and passes it to Create.
type Deps struct {
	Config    config.Config
	Words     WordSource
	Navigator core.Navigator
	Presenter core.Presenter
	Logger    *log.Logger
}

// WithDefaults fills unset collaborators with inert ones.
func (d Deps) WithDefaults() Deps {
	if d.Config == (config.Config{}) {
		d.Config = config.DefaultConfig()
	}
	if d.Logger == nil {
		d.Logger = log.New(io.Discard)
	}
	return d
}

// GameInfo contains metadata about a registered mode.
type GameInfo struct {
	ID    string
	Title string
	Rules config.Rules
}

// Factory is a function that creates a new instance of a mode.
type Factory func(deps Deps) Game

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]GameInfo)
	mu        sync.RWMutex
)

// Register adds a mode factory to the registry.
// Typically called from an init() function.
// Panics if a mode with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: mode %q already registered", id))
	}

	factories[id] = f

	// Get metadata by creating a temporary instance with default config
	g := f(Deps{}.WithDefaults())
	infos[id] = GameInfo{ID: id, Title: g.Title(), Rules: g.Rules()}
}

// List returns information about all registered modes, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a mode by its ID.
// Returns an error if the mode ID is not registered.
func Create(id string, deps Deps) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown mode %q", id)
	}

	return f(deps.WithDefaults()), nil
}

// Exists checks if a mode with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
