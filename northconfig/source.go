// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package northconfig

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"

	"github.com/MKhiriev/north-config/internal/environ"
	"github.com/MKhiriev/north-config/internal/parser"
	"github.com/MKhiriev/north-config/models"
	"github.com/MKhiriev/north-config/value"
)

// Source is one contributor to the configuration document. The set of
// sources is closed: EnvSource, FileSource and CustomSource.
type Source interface {
	// Name identifies the source in logs and errors.
	Name() string

	// resolve returns the document the source contributes, or nil for no
	// contribution. A non-nil error stops the resolution.
	resolve(ctx context.Context, r *resolution) (any, error)
	// watchPath returns the file to watch, if the source asks for it.
	watchPath(r *resolution) (string, bool)
}

// ── environment ──────────────────────────────────────────────────────────────

// EnvSource reads prefixed variables from the environment.
type EnvSource struct {
	Options models.EnvSourceOptions
	// Environ replaces the process environment, mostly for tests. When it is
	// set, the env file is merged into its result instead of the process
	// environment.
	Environ func() map[string]string
}

// Env returns an environment source with the given options.
func Env(opts models.EnvSourceOptions) EnvSource {
	return EnvSource{Options: opts}
}

func (s EnvSource) Name() string {
	return fmt.Sprintf("env(%s)", s.Options.WithDefaults().Prefix)
}

func (s EnvSource) resolve(_ context.Context, r *resolution) (any, error) {
	opts := s.Options.WithDefaults()

	var env map[string]string
	if s.Environ != nil {
		env = maps.Clone(s.Environ())
		if env == nil {
			env = make(map[string]string)
		}
	}

	if opts.EnvFilePath != "" {
		path := r.path(opts.EnvFilePath)
		err := environ.LoadFile(path, env)
		switch {
		case errors.Is(err, environ.ErrEnvFileNotFound):
			r.log.Debug().Str("path", path).Msg("env file not found, skipping")
		case err != nil:
			return nil, fmt.Errorf("%w: %w", ErrParse, err)
		}
	}

	if env == nil {
		env = environ.Snapshot()
	}

	doc := environ.Flatten(env, opts)
	if doc == nil {
		r.log.Warn().Str("prefix", opts.Prefix).Msg("no environment variables matched the prefix")
		return nil, nil
	}
	return doc, nil
}

func (s EnvSource) watchPath(r *resolution) (string, bool) {
	if !s.Options.Watch || s.Options.EnvFilePath == "" {
		return "", false
	}
	return r.path(s.Options.EnvFilePath), true
}

// ── files ────────────────────────────────────────────────────────────────────

// FileSource reads a JSON, YAML, TOML or RON file. The format follows the
// extension; unknown extensions are read as JSON.
type FileSource struct {
	Path    string
	Options models.FileSourceOptions
}

// File returns a file source with the default options: {{env}} substitution
// on, errors fatal.
func File(path string) FileSource {
	return FileSource{Path: path, Options: models.DefaultFileSourceOptions()}
}

// FileWithOptions returns a file source with explicit options.
func FileWithOptions(path string, opts models.FileSourceOptions) FileSource {
	return FileSource{Path: path, Options: opts}
}

func (s FileSource) Name() string {
	return fmt.Sprintf("file(%s)", s.Path)
}

func (s FileSource) location(r *resolution) string {
	path := s.Path
	if s.Options.EnvironmentSubstitution {
		path = r.profile.Substitute(path)
	}
	return r.path(path)
}

func (s FileSource) resolve(_ context.Context, r *resolution) (any, error) {
	path := s.location(r)

	data, err := os.ReadFile(path)
	if err != nil {
		kind := ErrReadFile
		if errors.Is(err, fs.ErrNotExist) {
			kind = ErrFileNotFound
		}
		if s.Options.SkipOnError {
			r.log.Debug().Err(err).Str("path", path).Msg("configuration file skipped")
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %s: %w", kind, path, err)
	}

	doc, err := parser.ParseFile(path, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrParse, path, err)
	}
	if doc == nil {
		r.log.Debug().Str("path", path).Msg("configuration file is empty")
	}
	return doc, nil
}

func (s FileSource) watchPath(r *resolution) (string, bool) {
	if !s.Options.Watch {
		return "", false
	}
	return s.location(r), true
}

// ── custom providers ─────────────────────────────────────────────────────────

// CustomSource asks a Provider for a document. Provider errors are logged
// and the source is skipped; a successful value that is not an object is
// discarded.
type CustomSource struct {
	Provider Provider
	// SourceName labels the source in logs. Empty means "custom".
	SourceName string
}

// Custom returns a custom source backed by p.
func Custom(name string, p Provider) CustomSource {
	return CustomSource{Provider: p, SourceName: name}
}

func (s CustomSource) Name() string {
	if s.SourceName == "" {
		return "custom"
	}
	return fmt.Sprintf("custom(%s)", s.SourceName)
}

func (s CustomSource) resolve(ctx context.Context, r *resolution) (any, error) {
	if s.Provider == nil {
		r.log.Warn().Err(ErrNilProvider).Str("source", s.Name()).Msg("custom config was not loaded")
		return nil, nil
	}

	v, err := s.Provider.ConfigValue(ctx)
	if err != nil {
		r.log.Warn().Err(fmt.Errorf("%w: %w", ErrCustomSource, err)).
			Str("source", s.Name()).
			Msg("custom config was not loaded")
		return nil, nil
	}

	doc, err := value.Normalize(v)
	if err != nil {
		r.log.Warn().Err(fmt.Errorf("%w: %w", ErrCustomSource, err)).
			Str("source", s.Name()).
			Msg("custom config was not loaded")
		return nil, nil
	}

	if !value.IsObject(doc) {
		r.log.Debug().
			Str("source", s.Name()).
			Stringer("kind", value.KindOf(doc)).
			Msg("custom config is not an object, discarded")
		return nil, nil
	}
	return doc, nil
}

func (s CustomSource) watchPath(*resolution) (string, bool) {
	return "", false
}
