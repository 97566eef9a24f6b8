// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package northconfig

import (
	"context"
	"fmt"

	"github.com/MKhiriev/north-config/merge"
	"github.com/MKhiriev/north-config/value"
)

// ResolvedConfig is the outcome of a successful resolution.
type ResolvedConfig[T any] struct {
	value    T
	document any
	id       string
}

// Value returns the decoded configuration.
func (c *ResolvedConfig[T]) Value() T {
	return c.value
}

// Document returns a copy of the merged document the value was decoded from.
func (c *ResolvedConfig[T]) Document() any {
	return value.Clone(c.document)
}

// ResolutionID identifies the resolution in log entries.
func (c *ResolvedConfig[T]) ResolutionID() string {
	return c.id
}

// ResolveDocument resolves every source in order and returns the merged
// document. It is nil when no source contributed.
func ResolveDocument(ctx context.Context, opts Options) (any, error) {
	doc, _, err := resolveDocument(ctx, opts)
	return doc, err
}

func resolveDocument(ctx context.Context, opts Options) (any, *resolution, error) {
	r := newResolution(opts)
	r.log.Debug().Int("sources", len(opts.Sources)).Msg("resolving configuration")

	var acc any
	for i, src := range opts.Sources {
		if err := ctx.Err(); err != nil {
			return nil, r, fmt.Errorf("configuration resolution cancelled: %w", err)
		}
		if src == nil {
			continue
		}

		contribution, err := src.resolve(ctx, r)
		if err != nil {
			r.log.Error().Err(err).Int("index", i).Str("source", src.Name()).Msg("configuration source failed")
			return nil, r, &SourceError{Source: src.Name(), Index: i, Err: err}
		}
		if contribution == nil {
			r.log.Debug().Int("index", i).Str("source", src.Name()).Msg("source skipped")
			continue
		}

		acc = merge.Merge(acc, contribution)
		r.log.Debug().Int("index", i).Str("source", src.Name()).Msg("source merged")
	}

	if err := ctx.Err(); err != nil {
		return nil, r, fmt.Errorf("configuration resolution cancelled: %w", err)
	}
	return acc, r, nil
}

// Resolve resolves the sources and decodes the merged document into T.
func Resolve[T any](ctx context.Context, opts Options) (*ResolvedConfig[T], error) {
	doc, r, err := resolveDocument(ctx, opts)
	if err != nil {
		return nil, err
	}

	var out T
	if err := decode(doc, &out, opts); err != nil {
		r.log.Error().Err(err).Msg("configuration does not fit the target type")
		return nil, err
	}

	r.log.Debug().Msg("configuration resolved")
	return &ResolvedConfig[T]{value: out, document: doc, id: r.id}, nil
}

// MustResolve is like Resolve but panics on error. It suits program start-up,
// where a process cannot run without its configuration.
func MustResolve[T any](ctx context.Context, opts Options) *ResolvedConfig[T] {
	cfg, err := Resolve[T](ctx, opts)
	if err != nil {
		panic(err)
	}
	return cfg
}
