package botx

import (
	"context"
	"sort"
	"strings"
)

// Router is a multiplexer for handlers, matching commands by prefix.
type Router struct {
	notFound    Handler
	handlers    map[string]Handler
	middlewares []Middleware
}

// NewRouter returns a multiplexer for handlers.
func NewRouter() *Router {
	return &Router{
		handlers: make(map[string]Handler),
		notFound: NotFound,
	}
}

// Add adds a handler to the router.
func (r *Router) Add(prefix string, h Handler) {
	r.handlers[prefix] = h
}

// Use applies middleware to all handlers.
func (r *Router) Use(mvs ...Middleware) *Router {
	r.middlewares = append(r.middlewares, mvs...)
	return r
}

// Group groups handlers, middlewares of the group apply only to its handlers.
func (r *Router) Group(f func(rtr *Router)) {
	nested := NewRouter()
	f(nested)

	for prefix, h := range nested.handlers {
		r.Add(prefix, chain(h, nested.middlewares))
	}
}

// NotFound sets a not found handler to the router.
func (r *Router) NotFound(h Handler) {
	r.notFound = h
}

// Handle handles request. The longest matching prefix wins.
func (r *Router) Handle(ctx context.Context, req Request) ([]Response, error) {
	if req.Text == "" {
		return nil, nil
	}

	h := r.notFound
	if prefix, ok := r.match(req.Text); ok {
		h = r.handlers[prefix]
	}

	return chain(h, r.middlewares)(ctx, req)
}

func (r *Router) match(text string) (string, bool) {
	prefixes := make([]string, 0, len(r.handlers))
	for prefix := range r.handlers {
		if prefix != "" && strings.HasPrefix(text, prefix) {
			prefixes = append(prefixes, prefix)
		}
	}

	if len(prefixes) == 0 {
		return "", false
	}

	sort.Slice(prefixes, func(i, j int) bool { return len(prefixes[i]) > len(prefixes[j]) })
	return prefixes[0], true
}

func chain(h Handler, mvs []Middleware) Handler {
	for i := len(mvs) - 1; i >= 0; i-- {
		h = mvs[i](h)
	}
	return h
}
