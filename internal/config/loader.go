// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ManuGH/dvrsched/internal/log"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Loader handles configuration loading with precedence.
type Loader struct {
	configPath string
	envFile    string
	version    string
	lookup     lookupFunc

	// envKeys lists the environment keys that set a value during the last Load.
	envKeys []string
}

// NewLoader creates a loader. configPath and envFile may be empty.
func NewLoader(configPath, envFile, version string) *Loader {
	return &Loader{
		configPath: configPath,
		envFile:    envFile,
		version:    version,
		lookup:     os.LookupEnv,
	}
}

// ConfigPath returns the YAML file this loader reads, if any.
func (l *Loader) ConfigPath() string { return l.configPath }

// Load resolves configuration: Defaults -> File (strict) -> dotenv -> Env -> Validate.
func (l *Loader) Load() (AppConfig, error) {
	logger := log.WithComponent("config")
	cfg := Defaults()

	if l.configPath != "" {
		if err := loadFile(l.configPath, &cfg); err != nil {
			return cfg, fmt.Errorf("load config file: %w", err)
		}
	}

	lookup, err := l.envLookup()
	if err != nil {
		return cfg, fmt.Errorf("load env file: %w", err)
	}
	env := &envReader{lookup: lookup, logger: logger}
	mergeEnv(env, &cfg)
	l.envKeys = env.set

	cfg.Version = l.version
	cfg.Telemetry.ServiceName = cfg.Log.Service
	cfg.Telemetry.ServiceVersion = l.version

	if err := Validate(cfg); err != nil {
		return cfg, fmt.Errorf("config validation failed: %w", err)
	}

	logger.Info().
		Str(log.FieldEvent, "config.loaded").
		Str("path", l.configPath).
		Int(log.FieldTuners, cfg.Tuners).
		Str("listen", cfg.Server.ListenAddr).
		Strs("env_keys", l.envKeys).
		Msg("configuration loaded")
	return cfg, nil
}

// envLookup layers the dotenv file beneath the process environment. A
// missing dotenv file is not an error.
func (l *Loader) envLookup() (lookupFunc, error) {
	if l.envFile == "" {
		return l.lookup, nil
	}
	dotenv, err := godotenv.Read(l.envFile)
	if errors.Is(err, fs.ErrNotExist) {
		return l.lookup, nil
	}
	if err != nil {
		return nil, err
	}
	base := l.lookup
	return func(key string) (string, bool) {
		if v, ok := base(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}, nil
}

func mergeEnv(env *envReader, cfg *AppConfig) {
	cfg.Tuners = env.Int(EnvPrefix+"TUNERS", cfg.Tuners)
	cfg.Log.Level = env.String(EnvPrefix+"LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Service = env.String(EnvPrefix+"LOG_SERVICE", cfg.Log.Service)

	cfg.Server.ListenAddr = env.String(EnvPrefix+"LISTEN", cfg.Server.ListenAddr)
	cfg.Server.ShutdownTimeout = env.Duration(EnvPrefix+"SHUTDOWN_TIMEOUT", cfg.Server.ShutdownTimeout)
	cfg.Server.RateLimit.Enabled = env.Bool(EnvPrefix+"RATELIMIT_ENABLED", cfg.Server.RateLimit.Enabled)
	cfg.Server.RateLimit.Requests = env.Int(EnvPrefix+"RATELIMIT_REQUESTS", cfg.Server.RateLimit.Requests)
	cfg.Server.RateLimit.Window = env.Duration(EnvPrefix+"RATELIMIT_WINDOW", cfg.Server.RateLimit.Window)

	cfg.Telemetry.Enabled = env.Bool(EnvPrefix+"OTEL_ENABLED", cfg.Telemetry.Enabled)
	cfg.Telemetry.ExporterType = env.String(EnvPrefix+"OTEL_EXPORTER", cfg.Telemetry.ExporterType)
	cfg.Telemetry.Endpoint = env.String(EnvPrefix+"OTEL_ENDPOINT", cfg.Telemetry.Endpoint)
	cfg.Telemetry.Environment = env.String(EnvPrefix+"OTEL_ENVIRONMENT", cfg.Telemetry.Environment)
	cfg.Telemetry.SamplingRate = env.Float(EnvPrefix+"OTEL_SAMPLING", cfg.Telemetry.SamplingRate)

	cfg.ExportPath = env.String(EnvPrefix+"EXPORT_PATH", cfg.ExportPath)
}

// loadFile decodes a YAML file over cfg with STRICT parsing.
// Keys absent from the file keep their current value.
func loadFile(path string, cfg *AppConfig) error {
	path = filepath.Clean(path)

	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("unsupported config format: %s (only YAML supported)", ext)
	}

	// #nosec G304 -- configuration file paths are provided by the operator via CLI/ENV
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(cfg); err != nil {
		if err == io.EOF {
			return nil
		}
		if strings.Contains(err.Error(), "not found in type") {
			return fmt.Errorf("strict config parse error: %w: %w", ErrUnknownConfigField, err)
		}
		return fmt.Errorf("strict config parse error: %w", err)
	}

	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return fmt.Errorf("config file contains multiple documents or trailing content")
	}
	return nil
}
