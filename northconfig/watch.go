// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package northconfig

import (
	"context"
	"path/filepath"

	"github.com/MKhiriev/north-config/internal/watcher"
	"github.com/MKhiriev/north-config/internal/workers"
)

// ChangeEvent reports that the file behind a watched source changed.
type ChangeEvent struct {
	// Path is the absolute path of the file.
	Path string
	// Source and Index identify the first source backed by the file.
	Source string
	Index  int
	// Removed is set when the file was deleted or renamed away.
	Removed bool
}

type watchTarget struct {
	source string
	index  int
}

// WatchedPaths returns the files Watch would observe for opts, in source
// order.
func WatchedPaths(opts Options) []string {
	paths, _ := watchTargets(opts, newResolution(opts))
	return paths
}

func watchTargets(opts Options, r *resolution) ([]string, map[string]watchTarget) {
	var paths []string
	targets := make(map[string]watchTarget)
	for i, src := range opts.Sources {
		if src == nil {
			continue
		}
		path, ok := src.watchPath(r)
		if !ok {
			continue
		}
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
		if _, dup := targets[path]; dup {
			continue
		}
		targets[path] = watchTarget{source: src.Name(), index: i}
		paths = append(paths, path)
	}
	return paths, targets
}

// Watch calls onChange whenever a file behind a source with Watch set
// changes. Only files are watched: the env file of an env source and the
// file of a file source. Watch blocks until ctx is done.
//
// Watch never resolves anything itself; callers resolve again from scratch
// in onChange. onChange runs on the watcher goroutine, one call at a time.
func Watch(ctx context.Context, opts Options, onChange func(ChangeEvent)) error {
	r := newResolution(opts)

	paths, targets := watchTargets(opts, r)
	if len(paths) == 0 {
		return ErrNothingToWatch
	}

	w, err := watcher.New(paths, func(ev watcher.Event) {
		target := targets[ev.Path]
		r.log.Info().Str("path", ev.Path).Str("source", target.source).Msg("configuration changed")
		if onChange != nil {
			onChange(ChangeEvent{
				Path:    ev.Path,
				Source:  target.source,
				Index:   target.index,
				Removed: ev.Removed(),
			})
		}
	}, watcher.WithLogger(r.log))
	if err != nil {
		return err
	}

	return workers.New(w).Run(ctx)
}
