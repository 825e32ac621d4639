// birthday is a birthday surprise with a kitty catching mini-game, playable
// in a terminal, in a window or over SSH.
//
// Usage:
//
//	birthday play            - Play in the terminal
//	birthday window          - Play in a desktop window
//	birthday serve           - Start the session API (and optionally SSH)
//	birthday scores          - Show the leaderboard
//	birthday list            - List available games
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.birthday/birthday.db)
//	--api <url>           - Session API base URL (empty plays offline)
//	--config <path>       - Custom game config YAML
//	--difficulty <preset> - easy, normal, hard or fixed
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/birthday-arcade/internal/core"
	"github.com/vovakirdan/birthday-arcade/internal/games/catch"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagAPI        string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "birthday",
	Short: "Happy Birthday - catch the falling kitties",
	Long: `A birthday surprise: a landing page, a 30 second kitty catching game
and a leaderboard, in your terminal, in a window or over SSH.

Available commands:
  play     - Play in the terminal
  window   - Play in a desktop window
  serve    - Start the session API server
  scores   - View the leaderboard
  list     - Show all available games

Examples:
  birthday play
  birthday play --api http://localhost:8080
  birthday window --difficulty easy
  birthday serve --addr :8080 --ssh :23234
  birthday scores`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		catch.SetConfigPath(flagConfig)
		catch.SetDifficultyPreset(flagDifficulty)
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.birthday/birthday.db", "Path to the sessions and scores database")
	rootCmd.PersistentFlags().StringVar(&flagAPI, "api", "", "Session API base URL (empty plays offline)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(listCmd)
}

// newLogger creates the stderr logger for the given prefix.
func newLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	setLevel(logger)
	return logger
}

// newFileLogger logs to ~/.birthday/birthday.log so full-screen terminal
// output is not corrupted. It falls back to a discarding logger.
func newFileLogger(prefix string) (*log.Logger, func()) {
	logger := log.NewWithOptions(nopWriter{}, log.Options{Prefix: prefix})
	home, err := os.UserHomeDir()
	if err != nil {
		return logger, func() {}
	}
	dir := filepath.Join(home, ".birthday")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return logger, func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, "birthday.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return logger, func() {}
	}
	logger = log.NewWithOptions(f, log.Options{ReportTimestamp: true, Prefix: prefix})
	setLevel(logger)
	return logger, func() { f.Close() } //nolint:errcheck
}

func setLevel(logger *log.Logger) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }

// runtimeConfig builds the game runtime config from the global flags.
func runtimeConfig(device string, touch bool) core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if flagFPS > 0 {
		cfg.TickRate = flagFPS
	}
	cfg.Seed = flagSeed
	cfg.Device = device
	cfg.Touch = touch
	return cfg
}
