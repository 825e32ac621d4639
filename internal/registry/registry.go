// Package registry provides a global registry for game factories.
// Games register themselves in init() functions, allowing the platform
// to discover and instantiate games without hardcoded dependencies.
package registry

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/birthday-arcade/internal/core"
)

// Game is the interface platforms drive. Games own their simulation and draw
// into the canvas they are given; the platform forwards input through the
// binder, advances the scheduler once per frame and presents the canvas.
type Game interface {
	// ID returns a unique identifier for this game (e.g., "kitty").
	// Used for CLI commands and score storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Setup wires the game to its collaborators. Called once before Start.
	Setup(ctx context.Context, env core.Env) error

	// Start begins play.
	Start()

	// Input returns the binder that receives raw input events.
	Input() *core.InputBinder

	// TogglePause flips between paused and running.
	TogglePause()

	// VisibilityChanged reports focus or visibility changes.
	VisibilityChanged(visible bool)

	// Resize recomputes geometry after the canvas changed size.
	Resize()

	// OrientationChanged resets transient input and recomputes geometry.
	OrientationChanged()

	// State returns the current game state.
	State() core.GameState

	// Cleanup releases everything the game holds. Idempotent.
	Cleanup()
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

	// Get title by creating a temporary instance
	g := f()
	titles[id] = g.Title()
}

// List returns information about all registered games, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{
			ID:    id,
			Title: titles[id],
		})
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
