// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"

	"github.com/urfave/cli/v2"
)

// EnvPrefix is prepended to every environment variable read by northcfg.
const EnvPrefix = "NORTHCFG_"

// StructuredConfig is the top-level settings container of the northcfg
// command. It is populated by merging a settings file, environment
// variables and command-line flags.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env:       direct environment variable name for scalar fields.
//   - json:      key in the settings file.
type StructuredConfig struct {
	// Sources lists what to resolve besides the optional KV and remote
	// providers.
	Sources Sources `envPrefix:"SOURCES_" json:"sources"`

	// Env controls the environment source.
	Env Env `envPrefix:"ENV_" json:"env"`

	// Resolve holds pipeline and output settings.
	Resolve Resolve `envPrefix:"RESOLVE_" json:"resolve"`

	// Remote configures an optional HTTP provider.
	Remote Remote `envPrefix:"REMOTE_" json:"remote"`

	// KV configures an optional SQL key/value provider and the migrate
	// command.
	KV KV `envPrefix:"KV_" json:"kv"`

	// Log holds logging settings.
	Log Log `envPrefix:"LOG_" json:"log"`

	// JSONFilePath is the optional path to a settings file. The file is
	// merged underneath the values from environment variables and flags.
	// Populated via NORTHCFG_CONFIG or the -c / --config flag.
	JSONFilePath string `env:"CONFIG" json:"-"`
}

// Sources lists the files to resolve, in order.
type Sources struct {
	// Files are resolved in order. A trailing "?" marks a file as optional
	// (skipped when missing).
	// Env: NORTHCFG_SOURCES_FILES (comma separated)
	Files []string `env:"FILES" envSeparator:"," json:"files"`

	// NoEnv leaves the environment source out.
	// Env: NORTHCFG_SOURCES_NO_ENV
	NoEnv bool `env:"NO_ENV" json:"no_env"`

	// Watch marks every file (and the env file) as watched.
	// Env: NORTHCFG_SOURCES_WATCH
	Watch bool `env:"WATCH" json:"watch"`
}

// Env mirrors models.EnvSourceOptions in string form.
type Env struct {
	// Env: NORTHCFG_ENV_PREFIX
	Prefix string `env:"PREFIX" json:"prefix"`
	// Env: NORTHCFG_ENV_SEPARATOR
	Separator string `env:"SEPARATOR" json:"separator"`
	// KeyCase is a case name such as "snake" or "kebab".
	// Env: NORTHCFG_ENV_KEY_CASE
	KeyCase string `env:"KEY_CASE" json:"key_case"`
	// File is a dotenv file loaded before the environment is read.
	// Env: NORTHCFG_ENV_FILE
	File string `env:"FILE" json:"file"`
	// ParseJSON reads values as JSON literals.
	// Env: NORTHCFG_ENV_PARSE_JSON
	ParseJSON bool `env:"PARSE_JSON" json:"parse_json"`
}

// Resolve holds pipeline and output settings.
type Resolve struct {
	// Profile replaces {{env}} in file paths: "debug" or "release".
	// Env: NORTHCFG_RESOLVE_PROFILE
	Profile string `env:"PROFILE" json:"profile"`
	// BaseDir is joined with relative paths.
	// Env: NORTHCFG_RESOLVE_BASE_DIR
	BaseDir string `env:"BASE_DIR" json:"base_dir"`
	// Output is the format of the printed document: json, yaml or toml.
	// Env: NORTHCFG_RESOLVE_OUTPUT
	Output string `env:"OUTPUT" json:"output"`
	// Pointer selects a sub-document to print, e.g. "/db".
	// Env: NORTHCFG_RESOLVE_POINTER
	Pointer string `env:"POINTER" json:"pointer"`
}

// Remote configures the HTTP provider. It is used when URL is set.
type Remote struct {
	// Env: NORTHCFG_REMOTE_URL
	URL string `env:"URL" json:"url"`
	// Env: NORTHCFG_REMOTE_TIMEOUT
	Timeout time.Duration `env:"TIMEOUT" json:"timeout"`
	// Token is sent as a bearer token.
	// Env: NORTHCFG_REMOTE_TOKEN
	Token string `env:"TOKEN" json:"token"`
	// Env: NORTHCFG_REMOTE_RETRIES
	Retries int `env:"RETRIES" json:"retries"`
}

// KV configures the SQL key/value provider. It is used when DSN is set.
type KV struct {
	// Driver is "pgx" or "sqlite3".
	// Env: NORTHCFG_KV_DRIVER
	Driver string `env:"DRIVER" json:"driver"`
	// Env: NORTHCFG_KV_DSN
	DSN string `env:"DSN" json:"dsn"`
	// Env: NORTHCFG_KV_NAMESPACE
	Namespace string `env:"NAMESPACE" json:"namespace"`
	// Env: NORTHCFG_KV_TABLE
	Table string `env:"TABLE" json:"table"`
}

// Log holds logging settings.
type Log struct {
	// Level is a zerolog level name.
	// Env: NORTHCFG_LOG_LEVEL
	Level string `env:"LEVEL" json:"level"`
}

// GetStructuredConfig loads, merges, and validates the northcfg settings
// from the settings file, the environment and the flags of c, in that
// order of increasing priority.
func GetStructuredConfig(c *cli.Context) (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(c).
		withJSON().
		build()
}
