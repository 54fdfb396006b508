package hostrouter

import (
	"net/http"
	"strings"

	"github.com/dmitrymomot/hostguard/pkg/hostresolver"
)

// Routes maps host patterns to HTTP handlers.
// Exact: "admin.example.com"
// Wildcard: "*.example.com"
type Routes map[string]http.Handler

// Router dispatches requests on the resolved request host.
type Router struct {
	exact    map[string]http.Handler // "admin.example.com" -> handler
	wildcard map[string]http.Handler // "example.com" -> handler (for *.example.com)
	fallback http.Handler
	resolver *hostresolver.Resolver
}

// Option configures a Router.
type Option func(*Router)

// WithResolver resolves requests that did not pass through the Origin
// middleware instead of falling back to the raw Host header.
func WithResolver(r *hostresolver.Resolver) Option {
	return func(rt *Router) {
		rt.resolver = r
	}
}

// New creates a host router from the given routes.
// The fallback handler is used for requests that don't match any host pattern.
// A nil fallback responds with 404.
func New(routes Routes, fallback http.Handler, opts ...Option) *Router {
	r := &Router{
		exact:    make(map[string]http.Handler),
		wildcard: make(map[string]http.Handler),
		fallback: fallback,
	}
	if r.fallback == nil {
		r.fallback = http.NotFoundHandler()
	}
	for _, opt := range opts {
		opt(r)
	}

	for pattern, handler := range routes {
		pattern = strings.ToLower(strings.TrimSpace(pattern))
		if pattern == "" || handler == nil {
			continue
		}
		if rest, ok := strings.CutPrefix(pattern, "*."); ok {
			r.wildcard[rest] = handler
		} else {
			r.exact[pattern] = handler
		}
	}
	return r
}

// ServeHTTP routes the request by its resolved hostname.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	host := r.domain(req)

	if h, ok := r.exact[host]; ok {
		h.ServeHTTP(w, req)
		return
	}

	// *.example.com matches foo.example.com only, not example.com
	if _, parent, ok := strings.Cut(host, "."); ok {
		if h, ok := r.wildcard[parent]; ok {
			h.ServeHTTP(w, req)
			return
		}
	}

	r.fallback.ServeHTTP(w, req)
}

func (r *Router) domain(req *http.Request) string {
	if res, ok := hostresolver.FromContext(req.Context()); ok {
		return res.Host.Hostname()
	}
	if r.resolver != nil {
		return r.resolver.Request(req).Host.Hostname()
	}
	return normalizeHost(req.Host)
}
