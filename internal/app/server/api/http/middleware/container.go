package middleware

import (
	"github.com/danielgtaylor/huma/v2"
)

// Container collects operation middlewares in the order they should run.
type Container struct {
	huma.Middlewares
}

func NewContainer() *Container {
	return &Container{
		Middlewares: make(huma.Middlewares, 0),
	}
}

// Add appends a middleware. Nil middlewares are skipped.
func (mc *Container) Add(middleware func(ctx huma.Context, next func(huma.Context))) {
	if middleware == nil {
		return
	}
	mc.Middlewares = append(mc.Middlewares, middleware)
}

// GetAll returns a copy of the collected middlewares, so that several
// handlers can share one chain.
func (mc *Container) GetAll() huma.Middlewares {
	result := make(huma.Middlewares, len(mc.Middlewares))
	copy(result, mc.Middlewares)
	return result
}
