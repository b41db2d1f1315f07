// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Command dvrsched books recordings onto a fixed pool of tuners, either
// interactively or as an HTTP service.
package main

import (
	"fmt"
	"os"

	"github.com/ManuGH/dvrsched/internal/config"
	"github.com/ManuGH/dvrsched/internal/log"
	"github.com/ManuGH/dvrsched/internal/version"
	"github.com/spf13/cobra"
)

var (
	configPath string
	envFile    string
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "dvrsched",
		Short:         "Tuner scheduler for a multi-tuner DVR",
		Long:          "dvrsched assigns recording requests to the first free tuner and answers which channels are being recorded at a given time.",
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", os.Getenv(config.EnvPrefix+"CONFIG"), "path to YAML config file")
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file read beneath the process environment")

	consoleCmd := newConsoleCmd()
	root.AddCommand(consoleCmd, newServeCmd(), newVersionCmd())

	// Without a subcommand, run the interactive console.
	root.RunE = consoleCmd.RunE
	root.Flags().AddFlagSet(consoleCmd.Flags())
	return root
}

func main() {
	log.Configure(log.Config{Version: version.Version})

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig resolves configuration and reconfigures the global logger from it.
func loadConfig() (config.AppConfig, *config.Loader, error) {
	loader := config.NewLoader(configPath, envFile, version.Version)
	cfg, err := loader.Load()
	if err != nil {
		return cfg, nil, err
	}
	log.Configure(log.Config{
		Level:   cfg.Log.Level,
		Service: cfg.Log.Service,
		Version: cfg.Version,
	})
	return cfg, loader, nil
}
