// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package environ

import (
	"slices"
	"strings"

	"github.com/MKhiriev/north-config/models"
	"github.com/MKhiriev/north-config/value"
)

// Flatten turns the prefixed entries of env into a nested document.
//
// For every key starting with opts.Prefix the prefix is stripped, the rest is
// split on opts.NestedSeparator, each segment is rewritten with opts.KeyCase
// and the value is assigned at the resulting path with [value.Set]. Keys are
// visited in sorted order so the outcome does not depend on map iteration.
// Keys that yield an empty segment (NORTH_, NORTH_A____B) are skipped.
//
// Flatten returns nil when no key matched.
func Flatten(env map[string]string, opts models.EnvSourceOptions) any {
	opts = opts.WithDefaults()

	keys := make([]string, 0, len(env))
	for key := range env {
		if strings.HasPrefix(key, opts.Prefix) {
			keys = append(keys, key)
		}
	}
	slices.Sort(keys)

	var doc any
	for _, key := range keys {
		path, ok := KeyPath(key, opts)
		if !ok {
			continue
		}
		doc = value.Set(doc, path, parseValue(env[key], opts.ParseJSONValues))
	}

	return doc
}

// KeyPath converts one environment key into the document path it is assigned
// to. It reports false when the key lacks the prefix or produces an empty
// segment.
func KeyPath(key string, opts models.EnvSourceOptions) ([]string, bool) {
	opts = opts.WithDefaults()

	rest, ok := strings.CutPrefix(key, opts.Prefix)
	if !ok || rest == "" {
		return nil, false
	}

	segments := strings.Split(rest, opts.NestedSeparator)
	for i, segment := range segments {
		if segment == "" {
			return nil, false
		}
		segments[i] = ConvertCase(segment, opts.KeyCase)
		if segments[i] == "" {
			return nil, false
		}
	}

	return segments, true
}

// DotPath is the dot-joined form of [KeyPath].
func DotPath(key string, opts models.EnvSourceOptions) (string, bool) {
	path, ok := KeyPath(key, opts)
	if !ok {
		return "", false
	}
	return strings.Join(path, "."), true
}

func parseValue(raw string, parseJSON bool) any {
	if !parseJSON {
		return raw
	}
	return value.ParseLiteral(raw)
}
