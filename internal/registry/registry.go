// Package registry provides a global registry for game factories.
// Games register themselves in init() functions, allowing the platform
// to discover and instantiate games without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-arcade-engine/internal/config"
	"github.com/vovakirdan/tui-arcade-engine/internal/core"
	"github.com/vovakirdan/tui-arcade-engine/internal/engine"
)

// Game is a host the engine can run, plus the metadata the CLI needs.
// Games contain pure logic with no external dependencies (especially no Bubble Tea).
// The engine handles screens, timing and hiscores; the platform handles
// input mapping and rendering.
type Game interface {
	engine.Host

	// ID returns a unique identifier for this game (e.g., "catch").
	// Used for CLI commands and the hiscore archive.
	ID() string

	// Title returns a human-readable name for display (e.g., "Catch").
	Title() string

	// Reset initializes the game state for a new session.
	// The RuntimeConfig provides screen dimensions and RNG seed.
	Reset(cfg core.RuntimeConfig)
}

// Configurable is implemented by games that read their own YAML file.
// customPath may be empty to use the standard search order.
type Configurable interface {
	LoadConfig(customPath string, preset config.DifficultyPreset) error
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a game.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a game factory to the registry.
// Typically called from a game's init() function.
// Panics if a game with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f
	titles[id] = f().Title()
}

// List returns information about all registered games, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{ID: id, Title: titles[id]})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Create instantiates a new game by its ID.
// Returns an error if the game ID is not registered.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return f(), nil
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}

// CreateConfigured instantiates a game and, if it is Configurable, loads its
// YAML config with the given preset.
func CreateConfigured(id, customPath string, preset config.DifficultyPreset) (Game, error) {
	g, err := Create(id)
	if err != nil {
		return nil, err
	}
	if c, ok := g.(Configurable); ok {
		if err := c.LoadConfig(customPath, preset); err != nil {
			return nil, fmt.Errorf("registry: config for %q: %w", id, err)
		}
	}
	return g, nil
}
