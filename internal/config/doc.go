// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package config loads dvrsched configuration.
//
// Precedence, highest first: process environment, a dotenv file, the YAML
// config file, built-in defaults. The YAML file is parsed strictly; unknown
// keys are rejected.
package config
