package auth

import (
	"crypto/subtle"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"reminders/internal/app/server/api/http/response"
)

const bearerPrefix = "Bearer "

// Auth is the gate in front of every route: the Authorization header must
// carry the process-wide shared secret as a bearer credential.
type Auth struct {
	expected []byte
	log      *slog.Logger
}

// New takes the shared secret once; it is never re-read per request.
func New(secret string, log *slog.Logger) *Auth {
	return &Auth{
		expected: []byte(bearerPrefix + secret),
		log:      log.With("component", "auth_middleware"),
	}
}

// Middleware rejects the request with 401 before the handler runs.
func (a *Auth) Middleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		header := ctx.Header("Authorization")

		if header == "" || !a.Authorized(header) {
			a.log.Warn("unauthorized request",
				"method", ctx.Method(),
				"path", ctx.URL().Path,
				"remote_addr", ctx.RemoteAddr(),
			)
			unauthorized(ctx)
			return
		}

		next(ctx)
	}
}

// Authorized compares the header with the expected value byte for byte.
func (a *Auth) Authorized(header string) bool {
	return subtle.ConstantTimeCompare([]byte(header), a.expected) == 1
}

func unauthorized(ctx huma.Context) {
	msg := response.New("Unauthorized").WithStatus(http.StatusUnauthorized)

	ctx.SetHeader("Content-Type", "application/json")
	ctx.SetStatus(msg.GetStatus())
	_, _ = ctx.BodyWriter().Write(msg.ToJSON())
}
