// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package watcher reports changes to a fixed set of files.
//
// The parent directory of every file is watched rather than the file itself,
// so editors that save by renaming a temporary file over the original are
// still noticed, and a file that does not exist yet is picked up once it is
// created. Bursts of events on one file are coalesced into a single
// notification.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/MKhiriev/north-config/internal/logger"
)

// DefaultDebounce is the quiet period after the last event on a file before
// the change is reported.
const DefaultDebounce = 100 * time.Millisecond

var (
	// ErrNoPaths is returned by New when there is nothing to watch.
	ErrNoPaths = errors.New("no paths to watch")
	// ErrWatch wraps failures to register a directory with fsnotify.
	ErrWatch = errors.New("error watching path")
)

// Event describes one coalesced change.
type Event struct {
	Path string
	// Op accumulates every fsnotify operation seen during the debounce
	// window.
	Op fsnotify.Op
}

// Removed reports whether the file was deleted or renamed away.
func (e Event) Removed() bool {
	return e.Op.Has(fsnotify.Remove) || e.Op.Has(fsnotify.Rename)
}

// Option tweaks a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period. Zero or negative values keep the
// default.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the logger used for watch errors.
func WithLogger(l *logger.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// Watcher implements workers.Worker.
type Watcher struct {
	targets  map[string]struct{}
	dirs     []string
	onChange func(Event)
	debounce time.Duration
	logger   *logger.Logger
}

// New prepares a watcher for paths. onChange is called from the Run
// goroutine, one call per changed file, in path order.
func New(paths []string, onChange func(Event), opts ...Option) (*Watcher, error) {
	if len(paths) == 0 {
		return nil, ErrNoPaths
	}

	w := &Watcher{
		targets:  make(map[string]struct{}, len(paths)),
		onChange: onChange,
		debounce: DefaultDebounce,
		logger:   logger.Nop(),
	}
	for _, opt := range opts {
		opt(w)
	}

	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrWatch, p, err)
		}
		w.targets[abs] = struct{}{}

		if dir := filepath.Dir(abs); !slices.Contains(w.dirs, dir) {
			w.dirs = append(w.dirs, dir)
		}
	}

	return w, nil
}

// Paths returns the absolute paths being watched, sorted.
func (w *Watcher) Paths() []string {
	paths := make([]string, 0, len(w.targets))
	for p := range w.targets {
		paths = append(paths, p)
	}
	slices.Sort(paths)
	return paths
}

// Run watches until ctx is done. It returns an error only when the watch
// cannot be set up.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("error creating file watcher: %w", err)
	}
	defer fsw.Close()

	for _, dir := range w.dirs {
		if err := fsw.Add(dir); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrWatch, dir, err)
		}
	}
	w.logger.Debug().Strs("paths", w.Paths()).Msg("watching for changes")

	pending := make(map[string]fsnotify.Op)
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			path, err := filepath.Abs(ev.Name)
			if err != nil {
				continue
			}
			if _, watched := w.targets[path]; !watched || ev.Op == fsnotify.Chmod {
				continue
			}
			pending[path] |= ev.Op
			timer.Reset(w.debounce)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn().Err(err).Msg("file watcher error")

		case <-timer.C:
			w.flush(pending)
		}
	}
}

func (w *Watcher) flush(pending map[string]fsnotify.Op) {
	paths := make([]string, 0, len(pending))
	for p := range pending {
		paths = append(paths, p)
	}
	slices.Sort(paths)

	for _, p := range paths {
		ev := Event{Path: p, Op: pending[p]}
		delete(pending, p)

		w.logger.Debug().Str("path", p).Str("op", ev.Op.String()).Msg("file changed")
		if w.onChange != nil {
			w.onChange(ev)
		}
	}
}
