// Package client talks to the reminders API on behalf of remindctl.
package client

import (
	"context"
	"strings"

	"golang.org/x/exp/slog"

	"reminders/internal/app/client/config"
	"reminders/internal/domain/reminder"
)

// Collections maps the names accepted on the command line to route
// families of the API.
var Collections = map[string]string{
	"v1": "/reminders",
	"v2": "/reminders/v2",
}

type App struct {
	config *config.Config
	log    *slog.Logger
	http   *httpClient
}

func New(cfg *config.Config, log *slog.Logger) (*App, error) {
	cfg.ServerAddress = strings.TrimSuffix(cfg.ServerAddress, "/")

	return &App{
		config: cfg,
		log:    log,
		http:   newHTTPClient(cfg, log),
	}, nil
}

func (a *App) Config() *config.Config {
	return a.config
}

// HealthCheck verifies that the server is up and accepts the secret.
func (a *App) HealthCheck(ctx context.Context) error {
	return a.http.Health(ctx)
}

func (a *App) ListReminders(ctx context.Context, collection string) ([]reminder.Reminder, error) {
	return a.http.List(ctx, collection)
}

func (a *App) CreateReminder(ctx context.Context, collection string, r reminder.Reminder) error {
	return a.http.Create(ctx, collection, r)
}

func (a *App) UpdateReminder(ctx context.Context, collection string, r reminder.Reminder) error {
	return a.http.Update(ctx, collection, r)
}

func (a *App) DeleteReminder(ctx context.Context, collection, id string) error {
	return a.http.Delete(ctx, collection, id)
}

// ReplaceReminders overwrites the whole collection.
func (a *App) ReplaceReminders(ctx context.Context, collection string, reminders []reminder.Reminder) error {
	return a.http.Bulk(ctx, collection, reminders)
}

type appKey struct{}

// WithApp stores the app in ctx for subcommands.
func WithApp(ctx context.Context, app *App) context.Context {
	return context.WithValue(ctx, appKey{}, app)
}

// FromContext returns the app stored by WithApp, or nil.
func FromContext(ctx context.Context) *App {
	app, _ := ctx.Value(appKey{}).(*App)
	return app
}
