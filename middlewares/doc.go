// Package middlewares provides net/http middleware for hostguard services.
//
// # Request ID
//
// RequestID assigns a unique ID to each request. It reuses a printable
// upstream X-Request-ID / X-Correlation-ID or generates a UUID.
//
//	r := chi.NewRouter()
//	r.Use(middlewares.RequestID())
//
// # Origin
//
// Origin resolves the request's scheme and host once with a
// hostresolver.Resolver and stores the Resolution in the request context.
// Rejected candidates (spoofed forwarded headers, malformed Host values) are
// logged and counted without failing the request.
//
//	r.Use(middlewares.Origin(resolver,
//	    middlewares.WithOriginLogger(log),
//	    middlewares.WithOriginRecorder(metrics.New()),
//	))
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//	    res, _ := middlewares.GetOrigin(r.Context())
//	    if res.HasURL {
//	        // absolute links: res.URL + "/path"
//	    }
//	}
//
// RequireRequestURL guards handlers that must build absolute URLs, such as
// redirects and password-reset links. It answers 400 instead of guessing a host.
//
// # Recover
//
// Recover converts handler panics into 500 responses and logs them with a
// stack trace through the given slog logger.
//
//	r.Use(middlewares.Recover(log))
//
// # Logging
//
// Use the extractors with logger.New so every record carries the request ID
// and resolved origin:
//
//	log := logger.New(cfg,
//	    middlewares.RequestIDExtractor(),
//	    middlewares.OriginExtractor(),
//	)
//
// # Recommended Order
//
//	r.Use(
//	    middlewares.RequestID(), // first: every later log line has an ID
//	    middlewares.Origin(resolver),
//	    middlewares.Recover(log), // panics are logged with request ID and origin
//	)
package middlewares
