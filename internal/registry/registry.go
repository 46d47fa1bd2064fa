// Package registry provides a global registry for game factories.
// Games register themselves in init() functions, allowing the CLI to
// discover and instantiate games without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/coil/internal/config"
	"github.com/vovakirdan/coil/internal/core"
	"github.com/vovakirdan/coil/internal/engine"
	"github.com/vovakirdan/coil/internal/render"
)

// Game is a GameState the CLI can list, launch and record runs for.
type Game interface {
	engine.GameState

	// ID returns a unique identifier for this game (e.g., "life").
	// Used for CLI commands and run history.
	ID() string

	// Title returns a human-readable name for display.
	Title() string
}

// Env is what a factory gets to build a game.
type Env struct {
	Renderer    *render.Renderer
	Runtime     core.RuntimeConfig
	Config      config.EngineConfig
	Logger      *log.Logger
	SnapshotDir string

	// Stats reports the counters of the loop running the game.
	Stats func() engine.Stats
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID          string
	Title       string
	Description string
}

// Factory is a function that creates a new instance of a game.
type Factory func(env Env) (Game, error)

type entry struct {
	info    GameInfo
	factory Factory
}

var (
	entries = make(map[string]entry)
	mu      sync.RWMutex
)

// Register adds a game factory to the registry.
// Typically called from a game's init() function.
// Panics if a game with the same ID is already registered.
func Register(info GameInfo, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if info.ID == "" {
		panic("registry: game registered without an ID")
	}
	if _, exists := entries[info.ID]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", info.ID))
	}
	if info.Title == "" {
		info.Title = info.ID
	}

	entries[info.ID] = entry{info: info, factory: f}
}

// List returns information about all registered games, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(entries))
	for _, e := range entries {
		result = append(result, e.info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Lookup returns the metadata of a registered game.
func Lookup(id string) (GameInfo, bool) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := entries[id]
	return e.info, ok
}

// Create instantiates a new game by its ID.
// Returns an error if the game ID is not registered.
func Create(id string, env Env) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	if env.Renderer == nil {
		return nil, fmt.Errorf("registry: game %q needs a renderer", id)
	}
	if env.Logger == nil {
		env.Logger = log.Default()
	}
	if env.Stats == nil {
		env.Stats = func() engine.Stats { return engine.Stats{} }
	}

	g, err := e.factory(env)
	if err != nil {
		return nil, fmt.Errorf("registry: cannot create %q: %w", id, err)
	}
	return g, nil
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := entries[id]
	return ok
}
