package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/hostguard/internal/config"
	"github.com/dmitrymomot/hostguard/pkg/hostresolver"
	"github.com/dmitrymomot/hostguard/pkg/metrics"
)

// Run builds the resolver from cfg, binds the listeners and serves until ctx
// is cancelled or the process receives SIGINT or SIGTERM.
func Run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	resolver, err := hostresolver.New(cfg.Resolver)
	if err != nil {
		return err
	}

	s := New(resolver,
		WithLogger(logger),
		WithMetrics(metrics.New()),
		WithAdminHost(cfg.AdminHost),
		WithShutdownTimeout(cfg.ShutdownTimeout),
	)

	address := cfg.Address
	if address == "" {
		address = ":8080"
	}
	ln, err := net.Listen("tcp", address)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrListen, address, err)
	}

	var metricsLn net.Listener
	if cfg.MetricsAddress != "" {
		metricsLn, err = net.Listen("tcp", cfg.MetricsAddress)
		if err != nil {
			_ = ln.Close()
			return fmt.Errorf("%w: %s: %w", ErrListen, cfg.MetricsAddress, err)
		}
	}

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return s.Serve(ctx, ln, metricsLn)
}

// Serve serves the main handler on ln and, when metricsLn is not nil, the
// metrics handler on metricsLn. It returns after both servers have shut
// down. A failure of either server stops the other.
func (s *Server) Serve(ctx context.Context, ln, metricsLn net.Listener) error {
	servers := []*http.Server{newHTTPServer(s.Handler())}
	listeners := []net.Listener{ln}
	if metricsLn != nil {
		servers = append(servers, newHTTPServer(s.MetricsHandler()))
		listeners = append(listeners, metricsLn)
	}

	g, gctx := errgroup.WithContext(ctx)

	for i, srv := range servers {
		l := listeners[i]
		g.Go(func() error {
			s.logger.Info("server starting", slog.String("address", l.Addr().String()))
			if err := srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		s.draining.Store(true)
		s.logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()

		var errs []error
		for _, srv := range servers {
			if err := srv.Shutdown(shutdownCtx); err != nil {
				errs = append(errs, err)
			}
		}
		if err := errors.Join(errs...); err != nil {
			s.logger.Error("shutdown completed with errors", slog.String("error", err.Error()))
			return err
		}

		s.logger.Info("shutdown completed")
		return nil
	})

	return g.Wait()
}

func newHTTPServer(h http.Handler) *http.Server {
	return &http.Server{
		Handler:           h,
		ReadTimeout:       defaultReadTimeout,
		WriteTimeout:      defaultWriteTimeout,
		IdleTimeout:       defaultIdleTimeout,
		ReadHeaderTimeout: defaultReadHeaderTimeout,
		MaxHeaderBytes:    defaultMaxHeaderBytes,
	}
}
