// Package server wires the resolver into an HTTP service.
//
// Every request passes through RequestID and Origin, so handlers read the
// resolved origin from the request context. Routes:
//
//	GET /healthz         liveness
//	GET /readyz          readiness; 503 while shutting down
//	GET /whoami          JSON view of the resolution
//	GET /admin/          dashboard fragment
//	GET /admin/dismiss   sets the banner cookie and redirects back
//	GET /go?to=/path     absolute redirect; 400 without a trustworthy origin
//
// When an admin host is configured the admin routes are only reachable on
// that resolved host. Metrics are served on a separate listener.
package server
