// Package server wires the reminders API: configuration, the store client
// and its credential, the HTTP routes and the listener.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/sethvargo/go-limiter"
	"github.com/sethvargo/go-limiter/memorystore"
	"golang.org/x/exp/slog"
	"golang.org/x/sync/errgroup"

	"reminders/internal/app/server/api"
	"reminders/internal/app/server/config"
	"reminders/internal/infrastructure/identity"
	"reminders/internal/infrastructure/storage/firebase"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	cfg     *config.Config
	log     *slog.Logger
	store   *firebase.Client
	limiter limiter.Store
	server  *http.Server
}

// New builds the application from its configuration. Nothing is contacted
// until the first request: the store credential is obtained lazily.
func New(cfg *config.Config, log *slog.Logger) (*App, error) {
	provider := newProvider(cfg, log)

	credential := firebase.NewCredential(provider, clockwork.NewRealClock(), log)
	store := firebase.New(cfg.Store.URI, credential, log, firebase.WithTimeout(cfg.Store.Timeout))

	opts := api.Options{Secret: cfg.Auth.Secret}

	var rateLimiter limiter.Store
	if cfg.RateLimit.Tokens > 0 {
		var err error
		rateLimiter, err = memorystore.New(&memorystore.Config{
			Tokens:   cfg.RateLimit.Tokens,
			Interval: cfg.RateLimit.Interval,
		})
		if err != nil {
			return nil, fmt.Errorf("create rate limiter: %w", err)
		}
		opts.Limiter = rateLimiter
	}

	return &App{
		cfg:     cfg,
		log:     log.With("component", "server"),
		store:   store,
		limiter: rateLimiter,
		server: &http.Server{
			Addr:              cfg.Server.RunAddress,
			Handler:           api.New(store, opts, log),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

func newProvider(cfg *config.Config, log *slog.Logger) identity.Provider {
	if cfg.Store.Token != "" {
		log.Info("using static store credential")
		return identity.NewStatic(cfg.Store.Token)
	}
	return identity.NewGoogle()
}

// Handler exposes the routes, mostly for tests.
func (a *App) Handler() http.Handler {
	return a.server.Handler
}

// Run serves until ctx is cancelled or the listener fails, then shuts the
// server down gracefully.
func (a *App) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.log.Info("starting server", "address", a.server.Addr, "env", a.cfg.Env)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		a.log.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		if a.limiter != nil {
			if err := a.limiter.Close(shutdownCtx); err != nil {
				a.log.Warn("failed to close rate limiter", "error", err)
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	a.log.Info("server stopped")
	return nil
}
