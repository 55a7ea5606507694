// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"golang.org/x/sync/errgroup"

	"github.com/sanjkatariya/infraFix/internal/assistant"
	"github.com/sanjkatariya/infraFix/internal/config"
	"github.com/sanjkatariya/infraFix/internal/handlers"
	"github.com/sanjkatariya/infraFix/internal/logging"
	"github.com/sanjkatariya/infraFix/internal/repo"
	"github.com/sanjkatariya/infraFix/internal/security"
	"github.com/sanjkatariya/infraFix/internal/session"
)

func main() {
	// --- Load config (config.yaml + env overrides) ---
	cfg := config.Load()

	// --- Logger ---
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format == "json")

	loc, err := cfg.Location()
	if err != nil {
		slog.Error("analytics timezone", "err", err)
		os.Exit(1)
	}

	// --- Stores ---
	store := repo.NewMemory(repo.WithLocation(loc))
	sessions := session.NewStore(cfg.Security.Session.TTL)
	deny := security.NewDenylist(cfg.Security.Session.TTL)

	ai := assistant.New(cfg.Assistant.URL, cfg.Assistant.Timeout)
	if !ai.Configured() {
		slog.Warn("assistant.url not set; /assistant/chat will answer 503")
	}

	mux := handlers.NewRouter(cfg, handlers.Deps{
		Repo:      store,
		Sessions:  sessions,
		Deny:      deny,
		Assistant: ai,
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	// --- Background sweepers: expired sessions and old revocations ---
	g.Go(func() error {
		sessions.StartSweeper(gctx, cfg.Security.Session.SweeperInterval)
		return nil
	})
	g.Go(func() error {
		interval := cfg.Security.Session.SweeperInterval
		if interval <= 0 {
			interval = 5 * time.Minute
		}
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-t.C:
				if n := deny.Prune(); n > 0 {
					slog.Debug("denylist pruned", "removed", n)
				}
			}
		}
	})

	// --- Start server ---
	g.Go(func() error {
		slog.Info("listening", "addr", srv.Addr, "base_path", cfg.Server.BasePath)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(sctx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("server error", "err", err)
		os.Exit(1)
	}
}
