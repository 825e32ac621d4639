package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/birthday-arcade/internal/audio"
	"github.com/vovakirdan/birthday-arcade/internal/games/catch"
	"github.com/vovakirdan/birthday-arcade/internal/platform/window"
)

var (
	flagWidth  int
	flagHeight int
	flagTouch  bool
)

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Play in a desktop window",
	Long: `Open the birthday landing page in a resizable window and play Kitty Catch.

Controls:
  Left/Right, A/D  - Move the basket
  Mouse            - Move the basket while over the playfield
  Touch            - Drag, or hold the on-screen buttons
  P/Esc            - Pause
  M                - Mute
  Enter/Space      - Start, play again

Examples:
  birthday window
  birthday window --width 390 --height 844 --touch
  birthday window --api http://localhost:8080`,
	Args: cobra.NoArgs,
	RunE: runWindow,
}

func init() {
	windowCmd.Flags().IntVar(&flagWidth, "width", 800, "Initial window width")
	windowCmd.Flags().IntVar(&flagHeight, "height", 600, "Initial window height")
	windowCmd.Flags().BoolVar(&flagTouch, "touch", false, "Show on-screen movement buttons")
}

func runWindow(cmd *cobra.Command, _ []string) error {
	logger := newLogger("birthday")

	player, err := audio.Open(assetsDir(), logger)
	if err != nil {
		logger.Warn("audio disabled", "error", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	device := "desktop"
	if flagTouch {
		device = "touch"
	}
	return window.Run(ctx, window.Options{
		GameID:  catch.ID,
		Backend: clientBackend(logger),
		Audio:   player,
		Logger:  logger,
		Config:  runtimeConfig(device, flagTouch),
		Title:   "Happy Birthday!",
		Width:   flagWidth,
		Height:  flagHeight,
	})
}
