// The server command runs the squares-pool API server.
package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"github.com/DjangoClawd/superbowl-boxes/internal/auth"
	"github.com/DjangoClawd/superbowl-boxes/internal/config"
	"github.com/DjangoClawd/superbowl-boxes/internal/scores"
	"github.com/DjangoClawd/superbowl-boxes/internal/server"
	"github.com/DjangoClawd/superbowl-boxes/internal/service"
	"github.com/DjangoClawd/superbowl-boxes/internal/storage/sqlite"
	"github.com/DjangoClawd/superbowl-boxes/pkg/logging"
)

func main() {
	var configPath string

	root := &cobra.Command{
		Use:   "sbboxes-server",
		Short: "Run the squares-pool API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(configPath)
		},
	}
	root.Flags().StringVar(&configPath, "config", "", "directory containing sbboxes.yaml")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(configPath string) error {
	logging.Setup()
	config.Init(configPath)

	store, err := sqlite.New(config.DBPath())
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		return err
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", config.DBPath())

	clock := clockwork.NewRealClock()
	pools := service.NewPoolService(store, clock)

	secret := config.JWTSecret()
	if secret == "" {
		// Sessions won't survive a restart without a configured secret.
		secret = randomSecret()
		slog.Warn("SBBOXES_JWT_SECRET not set, using an ephemeral secret")
	}
	jwtManager := auth.NewJWTManager(secret, config.SessionTTL())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	feed := scores.NewClient(
		config.ScoreFeedURL(),
		scores.Team{Abbreviation: config.TeamAAbbreviation(), Name: config.TeamAName()},
		scores.Team{Abbreviation: config.TeamBAbbreviation(), Name: config.TeamBName()},
	)
	poller := scores.NewPoller(feed, clock, config.ScorePollInterval())
	go poller.Run(ctx)

	router := server.NewRouter(pools, jwtManager, poller)
	srv := &http.Server{
		Addr:    config.ListenAddress(),
		Handler: router,
	}

	errs := make(chan error, 1)
	go func() {
		slog.Info("Server starting", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
	}()

	select {
	case err := <-errs:
		slog.Error("Server failed", "error", err)
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func randomSecret() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b)
}
