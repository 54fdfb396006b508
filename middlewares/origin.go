package middlewares

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/hostguard/pkg/hostresolver"
	"github.com/dmitrymomot/hostguard/pkg/logger"
)

// Recorder observes every resolution. *metrics.Recorder implements it.
type Recorder interface {
	Observe(res hostresolver.Resolution)
}

// OriginConfig configures the Origin middleware.
type OriginConfig struct {
	Logger   *slog.Logger
	Recorder Recorder
}

// OriginOption configures OriginConfig.
type OriginOption func(*OriginConfig)

// WithOriginLogger logs demoted candidates. Rejected values from trusted
// proxies are logged at warn level, everything else at debug.
func WithOriginLogger(l *slog.Logger) OriginOption {
	return func(cfg *OriginConfig) {
		cfg.Logger = l
	}
}

// WithOriginRecorder sets the resolution observer.
func WithOriginRecorder(rec Recorder) OriginOption {
	return func(cfg *OriginConfig) {
		cfg.Recorder = rec
	}
}

// Origin returns middleware that resolves the request origin once and stores
// it in the request context. It never rejects a request; use
// RequireRequestURL for handlers that cannot work without an absolute URL.
func Origin(resolver *hostresolver.Resolver, opts ...OriginOption) func(http.Handler) http.Handler {
	cfg := &OriginConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			res := resolver.Request(r)
			ctx := hostresolver.NewContext(r.Context(), res)

			if cfg.Recorder != nil {
				cfg.Recorder.Observe(res)
			}
			if cfg.Logger != nil {
				for _, rej := range res.Rejections {
					cfg.Logger.Log(ctx, rejectionLevel(rej), "request origin candidate rejected",
						slog.String("source", string(rej.Source)),
						slog.String("reason", rej.Err.Error()),
						slog.String("peer", r.RemoteAddr),
					)
				}
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// rejectionLevel keeps client-controlled noise at debug. Only a forwarded
// value sent by a trusted proxy and then rejected is a warning, since it
// points at a proxy misconfiguration.
func rejectionLevel(rej hostresolver.Rejection) slog.Level {
	switch rej.Source {
	case hostresolver.SourceForwardedHost, hostresolver.SourceForwardedProto:
		if !errors.Is(rej.Err, hostresolver.ErrUntrustedProxy) {
			return slog.LevelWarn
		}
	}
	return slog.LevelDebug
}

// GetOrigin returns the resolution stored by Origin.
func GetOrigin(ctx context.Context) (hostresolver.Resolution, bool) {
	return hostresolver.FromContext(ctx)
}

// RequireRequestURL responds 400 when the request has no trustworthy
// absolute URL. Requests that did not pass through Origin are rejected too.
func RequireRequestURL() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if res, ok := hostresolver.FromContext(r.Context()); !ok || !res.HasURL {
				http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// OriginExtractor returns a ContextExtractor that adds the resolved origin
// as an "origin" group to log entries.
func OriginExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		res, ok := hostresolver.FromContext(ctx)
		if !ok {
			return slog.Attr{}, false
		}
		return slog.Group("origin",
			slog.String("scheme", res.Host.Prefix),
			slog.String("host", res.Host.Domain),
			slog.String("source", string(res.Source)),
		), true
	}
}
