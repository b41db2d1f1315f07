// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"time"

	"github.com/ManuGH/dvrsched/internal/telemetry"
)

// EnvPrefix prefixes every environment key read by the loader.
const EnvPrefix = "DVRSCHED_"

// AppConfig is the fully resolved configuration.
type AppConfig struct {
	// Tuners is the number of devices. Read once at startup.
	Tuners int `yaml:"tuners"`

	Log       LogConfig        `yaml:"log"`
	Server    ServerConfig     `yaml:"server"`
	Telemetry telemetry.Config `yaml:"telemetry"`

	// ExportPath, when set, receives a JSON listing on shutdown.
	ExportPath string `yaml:"exportPath"`

	// Version is filled in from the binary, never from the file.
	Version string `yaml:"-"`
}

type LogConfig struct {
	Level   string `yaml:"level"`
	Service string `yaml:"service"`
}

type ServerConfig struct {
	ListenAddr      string          `yaml:"listen"`
	ShutdownTimeout time.Duration   `yaml:"shutdownTimeout"`
	RateLimit       RateLimitConfig `yaml:"rateLimit"`
}

type RateLimitConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Requests int           `yaml:"requests"`
	Window   time.Duration `yaml:"window"`
}

// Defaults returns the built-in configuration.
func Defaults() AppConfig {
	return AppConfig{
		Tuners: 2,
		Log: LogConfig{
			Level:   "info",
			Service: "dvrsched",
		},
		Server: ServerConfig{
			ListenAddr:      ":8080",
			ShutdownTimeout: 10 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled:  true,
				Requests: 600,
				Window:   time.Minute,
			},
		},
		Telemetry: telemetry.Config{
			ExporterType: "grpc",
			Endpoint:     "localhost:4317",
			SamplingRate: 1.0,
		},
	}
}
