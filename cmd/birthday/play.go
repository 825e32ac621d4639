package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/birthday-arcade/internal/audio"
	"github.com/vovakirdan/birthday-arcade/internal/games/catch"
	"github.com/vovakirdan/birthday-arcade/internal/platform/tui"
)

var flagMute bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Open the birthday landing page in the terminal and play Kitty Catch.

Controls:
  Left/Right, A/D  - Move the basket
  Mouse drag       - Move the basket
  P/Esc            - Pause
  M                - Mute
  Enter/Space      - Start, play again
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  birthday play
  birthday play --difficulty hard
  birthday play --api http://localhost:8080
  birthday play --config ./my-catch.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Start with sound off")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	logger, closeLog := newFileLogger("birthday")
	defer closeLog()

	// Get terminal size early so the first frame fits
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	player, err := audio.Open(assetsDir(), logger)
	if err != nil {
		logger.Warn("audio disabled", "error", err)
	}
	if flagMute && !player.Muted() {
		player.ToggleMute()
	}
	defer player.StopAll()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = tui.Run(ctx, tui.Options{
		GameID:  catch.ID,
		Backend: clientBackend(logger),
		Audio:   player,
		Sprites: tui.SpriteLoader{},
		Logger:  logger,
		Config:  runtimeConfig("terminal", false),
		Width:   width,
		Height:  height,
	})
	if err != nil && !interrupted(err) {
		return fmt.Errorf("play: %w", err)
	}
	return nil
}

// interrupted reports whether err only says the program was stopped by a
// signal or a cancelled context.
func interrupted(err error) bool {
	return errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, context.Canceled)
}
