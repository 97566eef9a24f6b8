// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/north-config/internal/logger"
	"github.com/MKhiriev/north-config/internal/parser"
	"github.com/MKhiriev/north-config/migrations"
	"github.com/MKhiriev/north-config/models"
)

const (
	defaultOutput   = "json"
	defaultLogLevel = "info"
	defaultKVDriver = migrations.DriverSQLite
)

// setDefaults fills the settings nothing else provided.
func (cfg *StructuredConfig) setDefaults() {
	if cfg.Resolve.Output == "" {
		cfg.Resolve.Output = defaultOutput
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = defaultLogLevel
	}
	if cfg.KV.DSN != "" && cfg.KV.Driver == "" {
		cfg.KV.Driver = defaultKVDriver
	}
}

// validate checks that the final merged [StructuredConfig] can be turned
// into a pipeline. All problems are reported at once.
func (cfg *StructuredConfig) validate() error {
	var errs []error

	if _, err := models.ParseCase(cfg.Env.KeyCase); err != nil {
		errs = append(errs, fmt.Errorf("%w: %w", ErrInvalidEnvConfigs, err))
	}

	if _, err := models.ParseProfile(cfg.Resolve.Profile); err != nil {
		errs = append(errs, fmt.Errorf("%w: %w", ErrInvalidResolveConfigs, err))
	}

	if format, err := parser.ParseFormat(cfg.Resolve.Output); err != nil {
		errs = append(errs, fmt.Errorf("%w: output: %w", ErrInvalidResolveConfigs, err))
	} else if format == parser.RON {
		errs = append(errs, fmt.Errorf("%w: ron cannot be used as output", ErrInvalidResolveConfigs))
	}

	if cfg.Remote.Timeout < 0 || cfg.Remote.Retries < 0 {
		errs = append(errs, fmt.Errorf("%w: timeout and retries must not be negative", ErrInvalidRemoteConfigs))
	}

	switch cfg.KV.Driver {
	case "", migrations.DriverPostgres, migrations.DriverSQLite:
	default:
		errs = append(errs, fmt.Errorf("%w: unsupported driver %q", ErrInvalidKVConfigs, cfg.KV.Driver))
	}

	if _, err := logger.ParseLevel(cfg.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("%w: %w", ErrInvalidLogConfigs, err))
	}

	return errors.Join(errs...)
}

// RequireSources reports [ErrNoSources] when the settings would resolve
// nothing at all.
func (cfg *StructuredConfig) RequireSources() error {
	if len(cfg.Sources.Files) == 0 && cfg.Sources.NoEnv && cfg.Remote.URL == "" && cfg.KV.DSN == "" {
		return ErrNoSources
	}
	return nil
}
