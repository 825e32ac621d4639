package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/catch.yaml
var defaultCatchYAML []byte

//go:embed defaults/server.yaml
var defaultServerYAML []byte

// DefaultProfile returns the desktop gameplay profile.
func DefaultProfile() Profile {
	return Profile{
		Countdown: CountdownConfig{
			Seconds: 60,
			LowTime: 5,
		},
		Spawn: SpawnConfig{
			BaseDelay:   800 * time.Millisecond,
			Jitter:      1200 * time.Millisecond,
			MaxEntities: 12,
			StartY:      -20,
		},
		Kitty: KittyConfig{
			MaxRadius:   105,
			WidthRatio:  0.12,
			HeightRatio: 0.15,
			MinSpeed:    1.5,
			MaxSpeed:    3.0,
			MaxDrift:    0.2,
			Colors:      []string{"#FFDDE6", "#FFCCD5", "#FFB6C1", "#FFA8B8"},
		},
		Catcher: CatcherConfig{
			MaxWidth:     120,
			WidthRatio:   0.15,
			MaxHeight:    120,
			HeightRatio:  0.195,
			BottomOffset: 100,
			KeyStep:      10,
		},
		Theme: ThemeConfig{
			Background: "#E0F7FF",
			Catcher:    "#ff8aa1",
			Text:       "#553c4e",
			Hint:       "Catch the kitties with the bucket!",
		},
	}
}

// DefaultCatchConfig returns the hardcoded kitty catch configuration.
func DefaultCatchConfig() CatchConfig {
	touch := DefaultProfile()
	touch.Spawn.BaseDelay = 900 * time.Millisecond
	touch.Spawn.MaxEntities = 8
	touch.Catcher.WidthRatio = 0.2
	touch.Catcher.HeightRatio = 0.15
	touch.Catcher.BottomOffset = 140
	touch.Theme.Hint = "Drag or tap the arrows to catch the kitties!"
	touch.TouchButtons = true

	return CatchConfig{
		Profiles: map[string]Profile{
			ProfileDesktop: DefaultProfile(),
			ProfileTouch:   touch,
		},
		Assets: AssetsConfig{
			Dir:     "assets",
			Kitties: []string{"kitty_01.png", "kitty_02.png", "kitty_03.png", "kitty_04.png", "kitty_05.png"},
			Catcher: "bucket.png",
		},
		Session: SessionConfig{
			ResultScene:    "result",
			ResultDelay:    2 * time.Second,
			PersistTimeout: 5 * time.Second,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "time",
				MaxAt: 60,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.0,
				SpawnReduction:  400 * time.Millisecond,
			},
		},
	}
}

// DefaultServerConfig returns the hardcoded server configuration.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:           ":8080",
		SessionTimeout: time.Hour,
		MaxScores:      1000,
		TopScores:      10,
		Site: SiteConfig{
			BannerText: "Happy Birthday!",
			Balloons:   8,
			CloudMessages: []string{
				"Best Wishes!",
				"Happy Birthday!",
				"You're Amazing!",
				"So Special!",
				"Joy & Happiness!",
			},
		},
		SSH: SSHConfig{
			Addr:        ":23234",
			IdleTimeout: 30 * time.Minute,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a config name.
func GetDefaultYAML(name string) []byte {
	switch name {
	case "catch":
		return defaultCatchYAML
	case "server":
		return defaultServerYAML
	default:
		return nil
	}
}
