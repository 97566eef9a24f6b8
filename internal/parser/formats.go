// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package parser

import (
	"bytes"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
)

var jsonAPI = sonic.Config{
	UseNumber:        true,
	EscapeHTML:       false,
	SortMapKeys:      true,
	ValidateString:   true,
	CompactMarshaler: true,
}.Froze()

func parseJSON(data []byte) (any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var doc any
	if err := jsonAPI.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func parseYAML(data []byte) (any, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func parseTOML(data []byte) (any, error) {
	doc := make(map[string]any)
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Encode renders a document in the given format. RON output is not
// supported.
func Encode(format Format, doc any) ([]byte, error) {
	switch format {
	case JSON:
		return jsonAPI.MarshalIndent(doc, "", "  ")
	case YAML:
		return yaml.Marshal(doc)
	case TOML:
		if _, ok := doc.(map[string]any); !ok {
			return nil, fmt.Errorf("%w: toml needs an object at the root", ErrUnsupportedFormat)
		}
		return toml.Marshal(doc)
	default:
		return nil, fmt.Errorf("%w: cannot encode %q", ErrUnsupportedFormat, format)
	}
}
