package catch

import (
	"context"

	"github.com/vovakirdan/birthday-arcade/internal/config"
	"github.com/vovakirdan/birthday-arcade/internal/core"
	"github.com/vovakirdan/birthday-arcade/internal/registry"
)

// ID is the registry and score-storage identifier of the game.
const ID = "kitty"

// configPath stores the custom config path set via CLI
var configPath string
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// Game adapts a Session to the registry.
type Game struct {
	*Session
}

// New creates a new kitty catch game instance.
func New() *Game {
	return &Game{Session: NewSession(config.DefaultCatchConfig())}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Kitty Catch"
}

// Setup loads the configuration and sets up the session.
func (g *Game) Setup(ctx context.Context, env core.Env) error {
	cfg, err := config.LoadCatch(configPath)
	if err != nil {
		if env.Logger != nil {
			env.Logger.Warn("using default game config", "error", err)
		}
		cfg = config.DefaultCatchConfig()
	}
	config.ApplyCatchPreset(&cfg, difficultyPreset)

	g.Session.cfg = cfg
	return g.Session.Setup(ctx, env)
}

// Register the game with the registry
func init() {
	registry.Register(ID, func() registry.Game {
		return New()
	})
}
