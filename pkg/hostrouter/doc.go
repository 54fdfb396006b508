// Package hostrouter dispatches HTTP requests by host.
//
// The host is taken from the hostresolver.Resolution stored in the request
// context by middlewares.Origin, so routing decisions use the same sanitized,
// proxy-aware host as link generation. Requests without a stored resolution
// are resolved with the Router's resolver when one is configured, and fall
// back to the normalized Host header otherwise.
//
// # Host Patterns
//
//   - Exact: "admin.example.com" matches only that host
//   - Wildcard: "*.example.com" matches any direct subdomain (foo.example.com)
//
// Exact matches take priority over wildcard matches. Matching is
// case-insensitive and ports are ignored.
//
// # Usage
//
//	router := hostrouter.New(hostrouter.Routes{
//	    "admin.example.com": adminHandler,
//	    "*.example.com":     tenantHandler,
//	}, siteHandler, hostrouter.WithResolver(resolver))
//
//	http.ListenAndServe(":8080", middlewares.Origin(resolver)(router))
package hostrouter
