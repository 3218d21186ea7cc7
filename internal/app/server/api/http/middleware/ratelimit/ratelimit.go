package ratelimit

import (
	"net"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/sethvargo/go-limiter"
	"golang.org/x/exp/slog"

	"reminders/internal/app/server/api/http/response"
)

// RateLimit takes one token per request, keyed by the client host.
type RateLimit struct {
	store limiter.Store
	log   *slog.Logger
}

func New(store limiter.Store, log *slog.Logger) *RateLimit {
	return &RateLimit{
		store: store,
		log:   log.With("component", "ratelimit_middleware"),
	}
}

// Middleware answers 429 once the client has used up its tokens. A limiter
// failure lets the request through.
func (rl *RateLimit) Middleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		key := host(ctx.RemoteAddr())

		_, _, _, ok, err := rl.store.Take(ctx.Context(), key)
		if err != nil {
			rl.log.Error("rate limiter failed", "key", key, "error", err)
			next(ctx)
			return
		}
		if !ok {
			rl.log.Warn("rate limit exceeded", "key", key)
			msg := response.New("Too many requests").WithStatus(http.StatusTooManyRequests)
			ctx.SetHeader("Content-Type", "application/json")
			ctx.SetStatus(msg.GetStatus())
			_, _ = ctx.BodyWriter().Write(msg.ToJSON())
			return
		}

		next(ctx)
	}
}

func host(remoteAddr string) string {
	h, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return h
}
