package main

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/birthday-arcade/internal/config"
	"github.com/vovakirdan/birthday-arcade/internal/platform"
	"github.com/vovakirdan/birthday-arcade/internal/session"
)

// appName names the per-user local storage directory.
const appName = "birthday-arcade"

// clientBackend builds the session API backend used by the local players.
// Without --api every call falls back to local storage.
func clientBackend(logger *log.Logger) platform.Backend {
	local, err := session.OpenLocal(appName)
	if err != nil {
		logger.Warn("local storage unavailable", "error", err)
	}

	timeout := 5 * time.Second
	if cfg, err := config.LoadCatch(flagConfig); err == nil && cfg.Session.PersistTimeout > 0 {
		timeout = cfg.Session.PersistTimeout
	}
	return platform.ClientBackend(session.NewClient(flagAPI, timeout, local, logger))
}

// assetsDir returns the configured asset directory, used for audio overrides.
func assetsDir() string {
	cfg, err := config.LoadCatch(flagConfig)
	if err != nil {
		return config.DefaultCatchConfig().Assets.Dir
	}
	return cfg.Assets.Dir
}
