// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package main

import (
	"context"
	"io"

	"github.com/ManuGH/dvrsched/internal/config"
	"github.com/ManuGH/dvrsched/internal/console"
	"github.com/ManuGH/dvrsched/internal/dvr"
	"github.com/ManuGH/dvrsched/internal/health"
	"github.com/ManuGH/dvrsched/internal/log"
	"github.com/ManuGH/dvrsched/internal/version"
	"github.com/spf13/cobra"
)

func newConsoleCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "console",
		Short: "Run the interactive scheduling prompt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConsole(cmd.Context(), verbose, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show booking diagnostics on stderr")
	return cmd
}

// configureConsoleLog replaces the global logger with a human-readable one
// on errOut. Only warnings reach the terminal unless verbose is set.
func configureConsoleLog(errOut io.Writer, verbose bool) {
	level := "warn"
	if verbose {
		level = "debug"
	}
	log.Configure(log.Config{Level: level, Output: log.ConsoleWriter(errOut)})
}

func runConsole(ctx context.Context, verbose bool, in io.Reader, out, errOut io.Writer) error {
	// The configured log level applies to serve only; the prompt owns the terminal.
	configureConsoleLog(errOut, verbose)

	cfg, err := config.NewLoader(configPath, envFile, version.Version).Load()
	if err != nil {
		return err
	}
	if err := health.PerformStartupChecks(cfg); err != nil {
		return err
	}

	mgr, err := dvr.NewManager(cfg.Tuners)
	if err != nil {
		return err
	}

	if err := console.New(mgr, in, out).Run(ctx); err != nil {
		return err
	}

	if cfg.ExportPath != "" {
		return mgr.Export(ctx, cfg.ExportPath)
	}
	return nil
}
