// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// lookupFunc resolves an environment key. The bool reports presence.
type lookupFunc func(key string) (string, bool)

// envReader parses typed values from a lookup, logging where each came from.
// Invalid values keep the current value and log a warning.
type envReader struct {
	lookup lookupFunc
	logger zerolog.Logger
	// set collects the keys that carried a value.
	set []string
}

func (e *envReader) get(key string) (string, bool) {
	v, ok := e.lookup(key)
	if !ok || v == "" {
		return "", false
	}
	e.set = append(e.set, key)
	return v, true
}

func (e *envReader) String(key string, current string) string {
	v, ok := e.get(key)
	if !ok {
		return current
	}
	e.logger.Debug().
		Str("key", key).
		Str("value", v).
		Str("source", "environment").
		Msg("using environment variable")
	return v
}

func (e *envReader) Int(key string, current int) int {
	v, ok := e.get(key)
	if !ok {
		return current
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		e.logger.Warn().
			Str("key", key).
			Str("value", v).
			Int("kept", current).
			Msg("invalid integer in environment variable, keeping previous value")
		return current
	}
	e.logger.Debug().Str("key", key).Int("value", i).Str("source", "environment").Msg("using environment variable")
	return i
}

func (e *envReader) Duration(key string, current time.Duration) time.Duration {
	v, ok := e.get(key)
	if !ok {
		return current
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		e.logger.Warn().
			Str("key", key).
			Str("value", v).
			Dur("kept", current).
			Msg("invalid duration in environment variable, keeping previous value")
		return current
	}
	e.logger.Debug().Str("key", key).Dur("value", d).Str("source", "environment").Msg("using environment variable")
	return d
}

// Bool accepts "true", "false", "1", "0", "yes", "no" (case-insensitive).
func (e *envReader) Bool(key string, current bool) bool {
	v, ok := e.get(key)
	if !ok {
		return current
	}
	switch strings.ToLower(v) {
	case "true", "1", "yes":
		e.logger.Debug().Str("key", key).Bool("value", true).Str("source", "environment").Msg("using environment variable")
		return true
	case "false", "0", "no":
		e.logger.Debug().Str("key", key).Bool("value", false).Str("source", "environment").Msg("using environment variable")
		return false
	default:
		e.logger.Warn().
			Str("key", key).
			Str("value", v).
			Bool("kept", current).
			Msg("invalid boolean in environment variable, keeping previous value")
		return current
	}
}

func (e *envReader) Float(key string, current float64) float64 {
	v, ok := e.get(key)
	if !ok {
		return current
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		e.logger.Warn().
			Str("key", key).
			Str("value", v).
			Float64("kept", current).
			Msg("invalid float in environment variable, keeping previous value")
		return current
	}
	e.logger.Debug().Str("key", key).Float64("value", f).Str("source", "environment").Msg("using environment variable")
	return f
}
