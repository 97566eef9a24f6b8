// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package parser

import (
	"errors"
	"fmt"
	"mime"
	"path/filepath"
	"strings"

	"github.com/MKhiriev/north-config/value"
)

var (
	// ErrUnsupportedFormat is returned for formats the package cannot
	// decode or encode.
	ErrUnsupportedFormat = errors.New("unsupported format")
	// ErrSyntax wraps every decoding failure.
	ErrSyntax = errors.New("syntax error")
)

// Format names a document encoding.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
	TOML Format = "toml"
	RON  Format = "ron"
)

// FromPath picks the format from a file extension. Unknown extensions fall
// back to JSON.
func FromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML
	case ".toml":
		return TOML
	case ".ron":
		return RON
	default:
		return JSON
	}
}

// FromContentType picks the format from a MIME type such as
// "application/yaml; charset=utf-8". It reports false for types it does not
// recognise.
func FromContentType(contentType string) (Format, bool) {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", false
	}

	if format, ok := mediaTypes[mediaType]; ok {
		return format, true
	}

	// Structured syntax suffixes such as application/vnd.north+yaml.
	if i := strings.LastIndexByte(mediaType, '+'); i >= 0 {
		if format, ok := suffixes[mediaType[i+1:]]; ok {
			return format, true
		}
	}
	return "", false
}

var mediaTypes = map[string]Format{
	"application/json":   JSON,
	"text/json":          JSON,
	"application/yaml":   YAML,
	"application/x-yaml": YAML,
	"text/yaml":          YAML,
	"text/x-yaml":        YAML,
	"application/toml":   TOML,
	"text/toml":          TOML,
	"application/ron":    RON,
	"text/ron":           RON,
}

var suffixes = map[string]Format{
	"json": JSON,
	"yaml": YAML,
	"toml": TOML,
	"ron":  RON,
}

// ParseFormat accepts a format name, case-insensitively; "yml" is an alias
// of yaml.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case JSON, YAML, TOML, RON:
		return f, nil
	case "yml":
		return YAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
}

// Parse decodes data in the given format and returns a normalized document.
func Parse(format Format, data []byte) (any, error) {
	var (
		doc any
		err error
	)

	switch format {
	case JSON:
		doc, err = parseJSON(data)
	case YAML:
		doc, err = parseYAML(data)
	case TOML:
		doc, err = parseTOML(data)
	case RON:
		doc, err = parseRON(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSyntax, format, err)
	}

	normalized, err := value.Normalize(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSyntax, format, err)
	}
	return normalized, nil
}

// ParseFile decodes data using the format implied by path.
func ParseFile(path string, data []byte) (any, error) {
	return Parse(FromPath(path), data)
}
