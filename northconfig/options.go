// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package northconfig

import (
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/MKhiriev/north-config/internal/logger"
	"github.com/MKhiriev/north-config/models"
)

// DefaultTagName is the struct tag read by the decoder.
const DefaultTagName = "json"

// Options describes one resolution.
type Options struct {
	// Sources are resolved in order; later sources override earlier ones.
	Sources []Source

	// BaseDir is joined with relative file and env-file paths. Empty means
	// the working directory.
	BaseDir string

	// Profile replaces {{env}} in file paths. Empty means the build profile.
	Profile models.Profile

	// TagName is the struct tag used to match document keys to fields.
	// Empty means "json".
	TagName string

	// StrictTypes turns off weak decoding, so that "8080" no longer fills an
	// int field and "true" no longer fills a bool.
	StrictTypes bool

	// Logger receives debug and warning messages. Nil keeps the library
	// silent.
	Logger *zerolog.Logger
}

// resolution carries the per-call state shared by the sources.
type resolution struct {
	id      string
	baseDir string
	profile models.Profile
	log     *logger.Logger
}

func newResolution(opts Options) *resolution {
	id := newResolutionID()
	base := logger.Wrap(opts.Logger)

	return &resolution{
		id:      id,
		baseDir: opts.BaseDir,
		profile: opts.Profile.OrDefault(),
		log:     &logger.Logger{Logger: base.With().Str("resolution_id", id).Logger()},
	}
}

// newResolutionID returns a time-ordered v7 id, so ids sort by start time in
// logs.
func newResolutionID() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return v7.String()
}

// path joins relative paths with the base directory.
func (r *resolution) path(p string) string {
	if r.baseDir == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(r.baseDir, p)
}
