// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/MKhiriev/north-config/internal/config"
	"github.com/MKhiriev/north-config/internal/logger"
	"github.com/MKhiriev/north-config/internal/parser"
	"github.com/MKhiriev/north-config/internal/workers"
	"github.com/MKhiriev/north-config/migrations"
	"github.com/MKhiriev/north-config/northconfig"
	"github.com/MKhiriev/north-config/providers/sqlkv"
	"github.com/MKhiriev/north-config/value"
)

// App runs northcfg commands against one set of settings. Commands log
// through the logger attached to their context (see [logger.FromContext]);
// without one they are silent.
type App struct {
	cfg *config.StructuredConfig
	out io.Writer
}

// New returns an App printing documents to out.
func New(cfg *config.StructuredConfig, out io.Writer) (*App, error) {
	if cfg == nil {
		return nil, errors.New("app: nil config")
	}
	if out == nil {
		return nil, errors.New("app: nil output")
	}

	return &App{cfg: cfg, out: out}, nil
}

// commandLogger tags the context logger with the running command.
func commandLogger(ctx context.Context, command string) *logger.Logger {
	return &logger.Logger{Logger: logger.FromContext(ctx).With().Str("command", command).Logger()}
}

// Resolve resolves the configured sources once and prints the document.
func (a *App) Resolve(ctx context.Context) error {
	if err := a.cfg.RequireSources(); err != nil {
		return err
	}

	log := commandLogger(ctx, "resolve")
	p, err := buildPipeline(ctx, a.cfg, log)
	if err != nil {
		return err
	}
	defer p.Close()

	return a.resolveAndPrint(ctx, p.opts, log)
}

// Watch prints the document, then prints it again every time a watched file
// changes, until ctx is done. A failed re-resolution is logged and the
// previous output stands.
func (a *App) Watch(ctx context.Context) error {
	if err := a.cfg.RequireSources(); err != nil {
		return err
	}

	log := commandLogger(ctx, "watch")
	p, err := buildPipeline(ctx, a.cfg, log)
	if err != nil {
		return err
	}
	defer p.Close()

	paths := northconfig.WatchedPaths(p.opts)
	if len(paths) == 0 {
		return fmt.Errorf("%w: pass --watch-all", northconfig.ErrNothingToWatch)
	}

	if err := a.resolveAndPrint(ctx, p.opts, log); err != nil {
		return err
	}

	// Bursts collapse into one pending reload; it reads the latest files.
	changes := make(chan northconfig.ChangeEvent, 1)

	watch := workers.WorkerFunc(func(ctx context.Context) error {
		return northconfig.Watch(ctx, p.opts, func(ev northconfig.ChangeEvent) {
			select {
			case changes <- ev:
			default:
			}
		})
	})

	reload := workers.WorkerFunc(func(ctx context.Context) error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case ev := <-changes:
				log.Info().
					Str("path", ev.Path).
					Str("source", ev.Source).
					Bool("removed", ev.Removed).
					Msg(MsgConfigChanged)

				if err := a.resolveAndPrint(ctx, p.opts, log); err != nil {
					log.Err(err).Msg(MsgResolveFailed)
				}
			}
		}
	})

	log.Info().Strs("paths", paths).Msg(MsgWatching)
	return workers.New(watch, reload).Run(ctx)
}

// Migrate brings the key/value schema up to date.
func (a *App) Migrate(ctx context.Context) error {
	if a.cfg.KV.DSN == "" {
		return ErrNoKVStore
	}

	log := commandLogger(ctx, "migrate")
	db, err := sqlkv.Open(ctx, a.cfg.KV.Driver, a.cfg.KV.DSN, log)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := migrations.Migrate(db, a.cfg.KV.Driver); err != nil {
		return err
	}

	log.Info().Str("driver", a.cfg.KV.Driver).Msg(MsgMigrated)
	return nil
}

// Set stores raw under key in the key/value store. raw is read as a JSON
// literal when it is one and as a string otherwise.
func (a *App) Set(ctx context.Context, key, raw string) error {
	if a.cfg.KV.DSN == "" {
		return ErrNoKVStore
	}

	log := commandLogger(ctx, "set")
	db, err := sqlkv.Open(ctx, a.cfg.KV.Driver, a.cfg.KV.DSN, log)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := kvProvider(a.cfg.KV, db, log).Put(ctx, key, value.ParseLiteral(raw)); err != nil {
		return err
	}

	log.Info().Str("key", key).Msg(MsgValueStored)
	return nil
}

func (a *App) resolveAndPrint(ctx context.Context, opts northconfig.Options, log *logger.Logger) error {
	doc, err := northconfig.ResolveDocument(ctx, opts)
	if err != nil {
		return err
	}

	if ptr := a.cfg.Resolve.Pointer; ptr != "" {
		sub, ok := value.Pointer(doc, ptr)
		if !ok {
			return fmt.Errorf("%w: %s", ErrPointerNotFound, ptr)
		}
		doc = sub
	}

	format, err := parser.ParseFormat(a.cfg.Resolve.Output)
	if err != nil {
		return err
	}

	data, err := parser.Encode(format, doc)
	if err != nil {
		return err
	}
	if !bytes.HasSuffix(data, []byte("\n")) {
		data = append(data, '\n')
	}

	if _, err := a.out.Write(data); err != nil {
		return fmt.Errorf("error writing output: %w", err)
	}

	log.Debug().Str("format", string(format)).Msg(MsgResolved)
	return nil
}
