// Package logger builds the process *slog.Logger.
//
// Records are written as JSON (or text) to stdout and, when SENTRY_DSN is
// set, also forwarded to Sentry: errors become issues, warnings and errors
// are stored as logs. Context extractors add request-scoped attributes such
// as the request id and the resolved origin to every record:
//
//	log := logger.New(cfg,
//		middlewares.RequestIDExtractor(),
//		middlewares.OriginExtractor(),
//	)
//	log.InfoContext(r.Context(), "served")
//	// {"level":"INFO","msg":"served","request_id":"...","origin":{"scheme":"https","host":"example.com"}}
package logger
