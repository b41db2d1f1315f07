// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/ManuGH/dvrsched/internal/api"
	"github.com/ManuGH/dvrsched/internal/config"
	"github.com/ManuGH/dvrsched/internal/daemon"
	"github.com/ManuGH/dvrsched/internal/dvr"
	"github.com/ManuGH/dvrsched/internal/health"
	"github.com/ManuGH/dvrsched/internal/log"
	"github.com/ManuGH/dvrsched/internal/telemetry"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long:  "Serve the booking API, health and Prometheus metrics until interrupted.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, loader, err := loadConfig()
	if err != nil {
		return err
	}
	logger := log.WithComponent("daemon")
	if err := health.PerformStartupChecks(cfg); err != nil {
		return err
	}

	tp, err := telemetry.NewProvider(ctx, cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("initialize tracer: %w", err)
	}

	mgr, err := dvr.NewManager(cfg.Tuners, dvr.WithLogger(log.WithComponent("dvr")))
	if err != nil {
		return err
	}

	tracingService := ""
	if tp.Enabled() {
		tracingService = cfg.Log.Service
	}
	srv := api.New(api.Config{
		RateLimitEnabled: cfg.Server.RateLimit.Enabled,
		RateLimit:        cfg.Server.RateLimit.Requests,
		RateWindow:       cfg.Server.RateLimit.Window,
		TracingService:   tracingService,
		AccessLog:        true,
		Version:          cfg.Version,
	}, mgr)

	holder := config.NewHolder(cfg, loader)
	app, err := daemon.NewApp(logger, cfg, srv.Handler(), holder)
	if err != nil {
		return err
	}
	// Hooks run LIFO: export first, then flush spans.
	app.RegisterShutdownHook("telemetry", tp.Shutdown)
	app.RegisterShutdownHook("export", exportHook(holder, mgr))

	logger.Info().
		Str(log.FieldEvent, "daemon.starting").
		Int(log.FieldTuners, cfg.Tuners).
		Bool("tracing", tp.Enabled()).
		Msg("dvrsched starting")
	return app.Run(ctx)
}

// exportHook writes the listing to the export path current at shutdown, so a
// reloaded path takes effect. An empty path skips the export.
func exportHook(holder *config.Holder, mgr *dvr.Manager) daemon.ShutdownHook {
	return func(ctx context.Context) error {
		path := holder.Get().ExportPath
		if path == "" {
			return nil
		}
		return mgr.Export(ctx, path)
	}
}
