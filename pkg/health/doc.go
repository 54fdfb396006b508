// Package health provides liveness and readiness probe handlers.
//
// Live always answers 200. Ready runs named checks concurrently under one
// deadline and answers 503 when any of them fails:
//
//	r.Get("/healthz", health.Live())
//	r.Get("/readyz", health.Ready(health.Checks{
//	    "resolver": server.ResolverCheck(resolver),
//	}))
//
// Responses are plain text by default. Send Accept: application/json or
// ?format=json to get a Report.
package health
