// Package api assembles the HTTP surface:
//
//	GET    /reminders   list reminders
//	POST   /reminders   create a reminder (no id)
//	PUT    /reminders   replace a reminder (id required)
//	DELETE /reminders   delete a reminder ({id})
//	PATCH  /reminders   overwrite the collection
//
// The same family is served under /reminders/v2 from its own collection.
// Every route sits behind the shared-secret gate; anything else is 404.
package api

import (
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/sethvargo/go-limiter"
	"golang.org/x/exp/slog"

	healthAPI "reminders/internal/app/server/api/http/health"
	"reminders/internal/app/server/api/http/middleware"
	"reminders/internal/app/server/api/http/middleware/auth"
	"reminders/internal/app/server/api/http/middleware/logger"
	"reminders/internal/app/server/api/http/middleware/ratelimit"
	reminderAPI "reminders/internal/app/server/api/http/reminder"
	"reminders/internal/app/server/api/http/response"
	"reminders/internal/domain/reminder"
)

// Collection describes one reminders route family and the store path that
// backs it.
type Collection struct {
	Name      string
	Path      string
	StorePath string
}

// Collections are the route families served by default.
var Collections = []Collection{
	{Name: "reminders", Path: "/reminders", StorePath: "reminders"},
	{Name: "reminders-v2", Path: "/reminders/v2", StorePath: "reminders/v2"},
}

type Options struct {
	// Secret is the shared secret clients present as a bearer credential.
	Secret string
	// Limiter enables per-client rate limiting when set.
	Limiter limiter.Store
}

type Handlers struct {
	Health    *healthAPI.Handler
	Reminders []*reminderAPI.Handler
}

func init() {
	huma.NewError = newError
}

// New creates *chi.Mux with every operation registered through huma.
func New(store reminder.Store, opts Options, log *slog.Logger) *chi.Mux {
	mux := chi.NewMux()

	notFound := func(w http.ResponseWriter, _ *http.Request) {
		response.New("Not found").WithStatus(http.StatusNotFound).Write(w)
	}
	mux.NotFound(notFound)
	mux.MethodNotAllowed(notFound)

	config := huma.DefaultConfig("Reminders API", "2.0.0")
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {Type: "http", Scheme: "bearer"},
	}
	// Every route is behind the gate, so the OpenAPI document, docs and schema routes
	// are not served, and responses carry no $schema links.
	config.OpenAPIPath = ""
	config.DocsPath = ""
	config.SchemasPath = ""
	config.CreateHooks = nil

	API := humachi.New(mux, config)

	h := handlers(store, opts, log)
	h.Health.SetupRoutes(API)
	for _, r := range h.Reminders {
		r.SetupRoutes(API)
	}

	return mux
}

func handlers(store reminder.Store, opts Options, log *slog.Logger) *Handlers {
	middlewares := middleware.NewContainer()
	middlewares.Add(logger.New(log).Middleware())
	if opts.Limiter != nil {
		middlewares.Add(ratelimit.New(opts.Limiter, log).Middleware())
	}
	middlewares.Add(auth.New(opts.Secret, log).Middleware())

	h := &Handlers{
		Health: healthAPI.NewHandler(log, middlewares.GetAll()),
	}

	for _, c := range Collections {
		service := reminder.NewService(store, c.StorePath, log)
		h.Reminders = append(h.Reminders,
			reminderAPI.NewHandler(service, c.Name, c.Path, log, middlewares.GetAll()),
		)
	}

	return h
}

// newError renders every error huma produces itself (malformed bodies,
// failed validation) as the uniform envelope.
func newError(status int, msg string, errs ...error) huma.StatusError {
	details := make([]string, 0, len(errs))
	for _, err := range errs {
		if err != nil {
			details = append(details, err.Error())
		}
	}
	if len(details) > 0 {
		msg = msg + ": " + strings.Join(details, "; ")
	}
	return response.New(msg).WithStatus(status)
}
