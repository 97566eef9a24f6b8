// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

const (
	// DefaultEnvPrefix is the prefix environment keys must carry to take part
	// in resolution.
	DefaultEnvPrefix = "NORTH_"
	// DefaultNestedSeparator splits an environment key into nested segments.
	DefaultNestedSeparator = "__"
)

// EnvSourceOptions configures how the process environment is turned into a
// configuration document.
type EnvSourceOptions struct {
	// Prefix is stripped from matching keys; keys without it are ignored.
	// Empty means [DefaultEnvPrefix].
	Prefix string `json:"prefix"`

	// NestedSeparator splits the remainder of a key into nested segments.
	// Empty means [DefaultNestedSeparator].
	NestedSeparator string `json:"nested_separator"`

	// KeyCase is applied to every segment. The zero value means snake case.
	KeyCase Case `json:"key_case"`

	// EnvFilePath points at an optional dotenv file loaded before the
	// environment is read. Variables already set are not overridden.
	EnvFilePath string `json:"env_file_path"`

	// Watch asks [northconfig.Watch] to report changes of EnvFilePath.
	Watch bool `json:"watch"`

	// ParseJSONValues parses every value as a JSON literal, so that
	// NORTH_PORT=8080 yields a number and NORTH_TAGS=["a","b"] an array.
	// Values that are not valid JSON stay strings. When false every value is
	// kept as the raw string.
	ParseJSONValues bool `json:"parse_json_values"`
}

// DefaultEnvSourceOptions returns options with the NORTH_ prefix, "__"
// separator and snake case keys.
func DefaultEnvSourceOptions() EnvSourceOptions {
	return EnvSourceOptions{
		Prefix:          DefaultEnvPrefix,
		NestedSeparator: DefaultNestedSeparator,
		KeyCase:         CaseSnake,
	}
}

// WithDefaults fills empty fields with their default values.
func (o EnvSourceOptions) WithDefaults() EnvSourceOptions {
	if o.Prefix == "" {
		o.Prefix = DefaultEnvPrefix
	}
	if o.NestedSeparator == "" {
		o.NestedSeparator = DefaultNestedSeparator
	}
	o.KeyCase = o.KeyCase.OrDefault()
	return o
}

// FileSourceOptions configures a single configuration file source.
type FileSourceOptions struct {
	// SkipOnError turns a missing or unreadable file into "no contribution"
	// instead of a resolution failure. Parse errors are fatal regardless.
	SkipOnError bool `json:"skip_on_error"`

	// EnvironmentSubstitution replaces {{env}} in the path with the build
	// profile name.
	EnvironmentSubstitution bool `json:"environment_substitution"`

	// Watch asks [northconfig.Watch] to report changes of the file.
	Watch bool `json:"watch"`
}

// DefaultFileSourceOptions returns options with {{env}} substitution enabled
// and errors treated as fatal.
func DefaultFileSourceOptions() FileSourceOptions {
	return FileSourceOptions{EnvironmentSubstitution: true}
}
