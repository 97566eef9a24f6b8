// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package app

import (
	"context"
	"database/sql"
	"strings"

	"github.com/MKhiriev/north-config/internal/config"
	"github.com/MKhiriev/north-config/internal/logger"
	"github.com/MKhiriev/north-config/models"
	"github.com/MKhiriev/north-config/northconfig"
	"github.com/MKhiriev/north-config/providers/remote"
	"github.com/MKhiriev/north-config/providers/sqlkv"
)

// optionalSuffix marks a file that may be missing.
const optionalSuffix = "?"

// pipeline is a northconfig.Options together with the resources its
// sources hold open.
type pipeline struct {
	opts northconfig.Options
	db   *sql.DB
}

func (p *pipeline) Close() error {
	if p.db == nil {
		return nil
	}
	return p.db.Close()
}

// buildPipeline turns the settings into sources ordered from lowest to
// highest priority: files, the key/value store, the remote endpoint and
// finally the environment.
func buildPipeline(ctx context.Context, cfg *config.StructuredConfig, log *logger.Logger) (*pipeline, error) {
	profile, err := models.ParseProfile(cfg.Resolve.Profile)
	if err != nil {
		return nil, err
	}

	p := &pipeline{
		opts: northconfig.Options{
			BaseDir: cfg.Resolve.BaseDir,
			Profile: profile,
			Logger:  &log.Logger,
		},
	}

	for _, entry := range cfg.Sources.Files {
		p.opts.Sources = append(p.opts.Sources, fileSource(entry, cfg.Sources.Watch))
	}

	if cfg.KV.DSN != "" {
		db, err := sqlkv.Open(ctx, cfg.KV.Driver, cfg.KV.DSN, log)
		if err != nil {
			return nil, err
		}
		p.db = db
		p.opts.Sources = append(p.opts.Sources, northconfig.Custom("kv", kvProvider(cfg.KV, db, log)))
	}

	if cfg.Remote.URL != "" {
		p.opts.Sources = append(p.opts.Sources, northconfig.Custom("remote", remoteProvider(cfg.Remote)))
	}

	if !cfg.Sources.NoEnv {
		envOpts, err := envOptions(cfg)
		if err != nil {
			_ = p.Close()
			return nil, err
		}
		p.opts.Sources = append(p.opts.Sources, northconfig.Env(envOpts))
	}

	return p, nil
}

// fileSource reads "path" or "path?"; the latter is skipped when missing.
func fileSource(entry string, watch bool) northconfig.FileSource {
	opts := models.DefaultFileSourceOptions()
	opts.Watch = watch

	path, optional := strings.CutSuffix(entry, optionalSuffix)
	opts.SkipOnError = optional

	return northconfig.FileWithOptions(path, opts)
}

func envOptions(cfg *config.StructuredConfig) (models.EnvSourceOptions, error) {
	keyCase, err := models.ParseCase(cfg.Env.KeyCase)
	if err != nil {
		return models.EnvSourceOptions{}, err
	}

	return models.EnvSourceOptions{
		Prefix:          cfg.Env.Prefix,
		NestedSeparator: cfg.Env.Separator,
		KeyCase:         keyCase,
		EnvFilePath:     cfg.Env.File,
		Watch:           cfg.Sources.Watch,
		ParseJSONValues: cfg.Env.ParseJSON,
	}, nil
}

func kvProvider(cfg config.KV, db *sql.DB, log *logger.Logger) *sqlkv.Provider {
	return sqlkv.New(db,
		sqlkv.WithDriver(cfg.Driver),
		sqlkv.WithNamespace(cfg.Namespace),
		sqlkv.WithTable(cfg.Table),
		sqlkv.WithLogger(&log.Logger),
	)
}

func remoteProvider(cfg config.Remote) *remote.Provider {
	opts := []remote.Option{
		remote.WithTimeout(cfg.Timeout),
		remote.WithRetries(cfg.Retries),
	}
	if cfg.Token != "" {
		opts = append(opts, remote.WithHeader("Authorization", "Bearer "+cfg.Token))
	}
	return remote.New(cfg.URL, opts...)
}
