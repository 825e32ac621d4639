// Package config provides YAML-based configuration loading and difficulty
// management for the birthday arcade.
package config

import "time"

// Profile names.
const (
	ProfileDesktop = "desktop"
	ProfileTouch   = "touch"
)

// CatchConfig contains all configuration for the kitty catching game.
type CatchConfig struct {
	Profiles   map[string]Profile `yaml:"profiles"`
	Assets     AssetsConfig       `yaml:"assets"`
	Session    SessionConfig      `yaml:"session"`
	Difficulty DifficultyConfig   `yaml:"difficulty"`
}

// Profile holds every tunable that differs between device classes.
// One profile is selected per game session; the game logic is shared.
type Profile struct {
	Countdown    CountdownConfig `yaml:"countdown"`
	Spawn        SpawnConfig     `yaml:"spawn"`
	Kitty        KittyConfig     `yaml:"kitty"`
	Catcher      CatcherConfig   `yaml:"catcher"`
	Theme        ThemeConfig     `yaml:"theme"`
	TouchButtons bool            `yaml:"touch_buttons"` // Show on-screen left/right buttons
}

// CountdownConfig defines the session timer.
type CountdownConfig struct {
	Seconds int `yaml:"seconds"`  // Session length
	LowTime int `yaml:"low_time"` // Countdown cue plays at or below this value
}

// SpawnConfig defines spawn pacing.
type SpawnConfig struct {
	BaseDelay   time.Duration `yaml:"base_delay"`   // Minimum delay between spawns
	Jitter      time.Duration `yaml:"jitter"`       // Uniform random extra delay
	MaxEntities int           `yaml:"max_entities"` // Live entity cap
	StartY      float64       `yaml:"start_y"`      // Spawn height, just above the top edge
}

// KittyConfig defines the falling collectibles.
type KittyConfig struct {
	MaxRadius   float64  `yaml:"max_radius"`
	WidthRatio  float64  `yaml:"width_ratio"`  // Radius cap relative to canvas width
	HeightRatio float64  `yaml:"height_ratio"` // Radius cap relative to canvas height
	MinSpeed    float64  `yaml:"min_speed"`    // Fall speed band, logical units per frame
	MaxSpeed    float64  `yaml:"max_speed"`
	MaxDrift    float64  `yaml:"max_drift"` // Horizontal drift band is [-MaxDrift, MaxDrift]
	Colors      []string `yaml:"colors"`    // Fallback disc colors
}

// CatcherConfig defines the player-controlled bucket.
type CatcherConfig struct {
	MaxWidth     float64 `yaml:"max_width"`
	WidthRatio   float64 `yaml:"width_ratio"`
	MaxHeight    float64 `yaml:"max_height"`
	HeightRatio  float64 `yaml:"height_ratio"`
	BottomOffset float64 `yaml:"bottom_offset"` // Distance from the bottom edge to the catcher top
	KeyStep      float64 `yaml:"key_step"`      // Movement per frame while a direction is held
}

// ThemeConfig defines colors and captions.
type ThemeConfig struct {
	Background string `yaml:"background"`
	Catcher    string `yaml:"catcher"` // Fallback when the bucket sprite is missing
	Text       string `yaml:"text"`
	Hint       string `yaml:"hint"`
}

// AssetsConfig lists the sprite files, relative to Dir.
type AssetsConfig struct {
	Dir     string   `yaml:"dir"`
	Kitties []string `yaml:"kitties"`
	Catcher string   `yaml:"catcher"`
}

// SessionConfig defines end-of-game behavior.
type SessionConfig struct {
	ResultScene    string        `yaml:"result_scene"`
	ResultDelay    time.Duration `yaml:"result_delay"`    // Pause between the jingle and navigation
	PersistTimeout time.Duration `yaml:"persist_timeout"` // Upper bound for score persistence
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score or elapsed seconds at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64       `yaml:"speed_multiplier"` // Multiplier added to fall speed at max difficulty
	SpawnReduction  time.Duration `yaml:"spawn_reduction"`  // Spawn delay reduction at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI value to a preset. Unknown values return "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ApplyCatchPreset modifies the config based on a difficulty preset.
func ApplyCatchPreset(cfg *CatchConfig, preset DifficultyPreset) {
	switch preset {
	case "":
		return
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
	default:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}
}
