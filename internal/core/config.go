package core

// RuntimeConfig contains configuration passed to games at setup.
type RuntimeConfig struct {
	TickRate int    // Host frames per second (default 60)
	Seed     int64  // RNG seed, 0 means use current time in platform layer
	Device   string // Free-form device label reported with scores
	Touch    bool   // Host has a touch screen
	Strict   bool   // Missing optional capabilities fail setup
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		TickRate: 60,
		Device:   "desktop",
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	TimeLeft int  // Seconds remaining on the countdown
	Active   bool // Game is running (possibly paused)
	Paused   bool // Whether the game is paused
	GameOver bool // Countdown expired
}

// Env bundles the collaborators a game is wired to.
// Canvas and Scheduler are required; the rest may be nil.
type Env struct {
	Canvas    Canvas
	Scheduler Scheduler
	Pointer   PointerSurface
	Touch     TouchControls
	Sprites   SpriteLoader
	Display   Display
	Audio     AudioPlayer
	Session   SessionStore
	Scores    ScoreSubmitter
	Navigator Navigator
	Logger    Logger
	Config    RuntimeConfig
}
