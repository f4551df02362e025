package llm

import (
	"context"
	"strings"
)

// Router picks a Streamer by model identifier prefix.
type Router struct {
	fallback Streamer
	routes   []route
}

type route struct {
	prefix   string
	streamer Streamer
}

func NewRouter(fallback Streamer) *Router {
	return &Router{fallback: fallback}
}

// Handle registers streamer for models starting with prefix. First match wins.
func (r *Router) Handle(prefix string, streamer Streamer) *Router {
	r.routes = append(r.routes, route{prefix: prefix, streamer: streamer})
	return r
}

func (r *Router) Stream(ctx context.Context, req Request, model string) (*Stream, error) {
	for _, rt := range r.routes {
		if strings.HasPrefix(model, rt.prefix) {
			return rt.streamer.Stream(ctx, req, model)
		}
	}
	return r.fallback.Stream(ctx, req, model)
}
