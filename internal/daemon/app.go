// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package daemon owns the long-running HTTP server lifecycle.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ManuGH/dvrsched/internal/config"
	"github.com/ManuGH/dvrsched/internal/log"
	"github.com/rs/zerolog"
)

// ShutdownHook is a function that performs cleanup during graceful shutdown.
// Hooks are executed in reverse registration order (LIFO).
type ShutdownHook func(ctx context.Context) error

type namedHook struct {
	name string
	hook ShutdownHook
}

// App runs the API server, the config watcher and reload wiring until its
// context is cancelled.
type App struct {
	logger    zerolog.Logger
	cfg       config.AppConfig
	handler   http.Handler
	cfgHolder *config.Holder

	reloadSignal os.Signal

	mu       sync.Mutex
	listener net.Listener
	hooks    []namedHook
}

// NewApp creates a new App. cfgHolder may be nil, which disables reloads.
func NewApp(logger zerolog.Logger, cfg config.AppConfig, handler http.Handler, cfgHolder *config.Holder) (*App, error) {
	if handler == nil {
		return nil, ErrMissingAPIHandler
	}
	return &App{
		logger:       logger,
		cfg:          cfg,
		handler:      handler,
		cfgHolder:    cfgHolder,
		reloadSignal: syscall.SIGHUP,
	}, nil
}

// RegisterShutdownHook registers a function to be called during shutdown,
// after the HTTP server has stopped accepting requests.
func (a *App) RegisterShutdownHook(name string, hook ShutdownHook) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.hooks = append(a.hooks, namedHook{name: name, hook: hook})
}

// Listen binds the configured address. Run calls it when needed; calling it
// first lets the caller learn the bound address.
func (a *App) Listen() (net.Addr, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.listener != nil {
		return a.listener.Addr(), nil
	}
	ln, err := net.Listen("tcp", a.cfg.Server.ListenAddr)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrServerStartFailed, err)
	}
	a.listener = ln
	return ln.Addr(), nil
}

// Run starts all owned subsystems and blocks until ctx is cancelled or a
// fatal error occurs.
func (a *App) Run(ctx context.Context) error {
	addr, err := a.Listen()
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           a.handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.logger.Info().
			Str(log.FieldEvent, "server.started").
			Str("addr", addr.String()).
			Msg("API server listening")
		if err := srv.Serve(a.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error().Err(err).Str(log.FieldEvent, "server.failed").Msg("API server failed")
			return fmt.Errorf("%w: %w", ErrServerStartFailed, err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		// Detached but bounded so shutdown completes after the parent is cancelled.
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.cfg.Server.ShutdownTimeout)
		defer cancel()
		return a.shutdown(shutdownCtx, srv)
	})

	if a.cfgHolder != nil {
		a.startReload(gctx, g)
	}

	return g.Wait()
}

func (a *App) shutdown(ctx context.Context, srv *http.Server) error {
	a.logger.Info().Str(log.FieldEvent, "server.stopping").Msg("shutting down API server")

	var errs []error
	if err := srv.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("http shutdown: %w", err))
	}

	a.mu.Lock()
	hooks := append([]namedHook(nil), a.hooks...)
	a.mu.Unlock()
	for i := len(hooks) - 1; i >= 0; i-- {
		h := hooks[i]
		if err := h.hook(ctx); err != nil {
			a.logger.Error().Err(err).Str("hook", h.name).Msg("shutdown hook failed")
			errs = append(errs, fmt.Errorf("hook %s: %w", h.name, err))
		}
	}

	a.logger.Info().Str(log.FieldEvent, "server.stopped").Msg("API server stopped")
	return errors.Join(errs...)
}

// startReload wires the file watcher, SIGHUP and reload listener into g.
func (a *App) startReload(ctx context.Context, g *errgroup.Group) {
	g.Go(func() error {
		// Best-effort: a broken watcher must not stop the server.
		if err := a.cfgHolder.Watch(ctx); err != nil {
			a.logger.Warn().Err(err).Str(log.FieldEvent, "config.watcher_start_failed").Msg("failed to start config watcher")
		}
		return nil
	})

	applyCh := make(chan config.AppConfig, 1)
	a.cfgHolder.RegisterListener(applyCh)
	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case next := <-applyCh:
				a.applyConfig(next)
			}
		}
	})

	if a.reloadSignal == nil {
		return
	}
	g.Go(func() error {
		hupChan := make(chan os.Signal, 1)
		signal.Notify(hupChan, a.reloadSignal)
		defer signal.Stop(hupChan)

		for {
			select {
			case <-ctx.Done():
				return nil
			case <-hupChan:
				a.logger.Info().
					Str(log.FieldEvent, "config.reload_signal").
					Str("signal", a.reloadSignal.String()).
					Msg("received reload signal, reloading config")
				if err := a.cfgHolder.Reload(); err != nil {
					a.logger.Warn().Err(err).Str(log.FieldEvent, "config.reload_failed").Msg("config reload failed")
				}
			}
		}
	})
}

// applyConfig applies the runtime-adjustable parts of a reloaded config.
// The tuner count, listen address and rate limit are fixed for the life of
// the process. The export path is read from the holder at shutdown.
func (a *App) applyConfig(next config.AppConfig) {
	if err := log.SetLevel(next.Log.Level); err != nil {
		a.logger.Warn().Err(err).Str("level", next.Log.Level).Msg("ignoring invalid log level")
	} else {
		a.logger.Info().Str(log.FieldEvent, "config.applied").Str("level", next.Log.Level).Msg("log level applied")
	}
	if next.Tuners != a.cfg.Tuners {
		a.logger.Warn().
			Str(log.FieldEvent, "config.tuners_ignored").
			Int("current", a.cfg.Tuners).
			Int("requested", next.Tuners).
			Msg("tuner count cannot change at runtime, restart to apply")
	}
	if next.Server.ListenAddr != a.cfg.Server.ListenAddr {
		a.logger.Warn().
			Str(log.FieldEvent, "config.listen_ignored").
			Str("current", a.cfg.Server.ListenAddr).
			Str("requested", next.Server.ListenAddr).
			Msg("listen address cannot change at runtime, restart to apply")
	}
	if next.Server.RateLimit != a.cfg.Server.RateLimit {
		a.logger.Warn().
			Str(log.FieldEvent, "config.ratelimit_ignored").
			Int("current", a.cfg.Server.RateLimit.Requests).
			Int("requested", next.Server.RateLimit.Requests).
			Msg("rate limit cannot change at runtime, restart to apply")
	}
}
