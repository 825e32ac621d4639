package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/birthday-arcade/internal/config"
	"github.com/vovakirdan/birthday-arcade/internal/games/catch"
	"github.com/vovakirdan/birthday-arcade/internal/platform"
	"github.com/vovakirdan/birthday-arcade/internal/platform/tui"
	"github.com/vovakirdan/birthday-arcade/internal/server"
	"github.com/vovakirdan/birthday-arcade/internal/storage"
)

var (
	flagServerConfig string
	flagAddr         string
	flagSSHAddr      string
	flagHostKey      string
	flagIdleTimeout  int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the session API server",
	Long: `Start the HTTP session API used by the players to keep sessions and
scores, and optionally an SSH server for remote terminal play.

All players share the same leaderboard. SSH players write to the same
database directly.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.birthday/host_key

Examples:
  birthday serve                         # API on :8080
  birthday serve --addr :9000            # API on port 9000
  birthday serve --ssh :23234            # API plus SSH play
  birthday serve --db ./birthday.db      # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagServerConfig, "server-config", "", "Path to custom server config YAML")
	serveCmd.Flags().StringVar(&flagAddr, "addr", "", "HTTP listen address (default from config, :8080)")
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port), empty disables SSH")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 0, "SSH idle timeout in minutes (default from config)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	logger := newLogger("birthday")

	cfg, err := config.LoadServer(flagServerConfig)
	if err != nil {
		logger.Warn("using default server config", "error", err)
		cfg = config.DefaultServerConfig()
	}
	if flagAddr != "" {
		cfg.Addr = flagAddr
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	api := server.New(store, cfg, catch.ID, logger.WithPrefix("api"))
	g.Go(func() error {
		return api.ListenAndServe(ctx)
	})

	if flagSSHAddr != "" {
		sshCfg := cfg.SSH
		sshCfg.Addr = flagSSHAddr
		if flagHostKey != "" {
			sshCfg.HostKey = flagHostKey
		}
		if flagIdleTimeout > 0 {
			sshCfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
		}

		site := cfg.Site
		backends := func(string) platform.Backend {
			return platform.StoreBackend(storage.NewRecorder(store, catch.ID, ""), site)
		}
		sshSrv, err := tui.NewSSHServer(sshCfg, runtimeConfig("ssh", false), backends, tui.SpriteLoader{}, logger.WithPrefix("ssh"))
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		g.Go(func() error {
			return sshSrv.ListenAndServe(ctx)
		})
		logger.Info("Connect with: ssh localhost -p <port>", "addr", sshCfg.Addr)
	}

	return g.Wait()
}
