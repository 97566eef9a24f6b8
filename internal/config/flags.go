// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"github.com/urfave/cli/v2"
)

// Flag names shared by [Flags] and [parseFlags].
const (
	flagFile          = "file"
	flagNoEnv         = "no-env"
	flagWatchAll      = "watch-all"
	flagPrefix        = "prefix"
	flagSeparator     = "separator"
	flagKeyCase       = "key-case"
	flagEnvFile       = "env-file"
	flagParseJSON     = "parse-json"
	flagProfile       = "profile"
	flagBaseDir       = "base-dir"
	flagOutput        = "output"
	flagPointer       = "pointer"
	flagRemoteURL     = "remote-url"
	flagRemoteTimeout = "remote-timeout"
	flagRemoteToken   = "remote-token"
	flagRemoteRetries = "remote-retries"
	flagKVDriver      = "kv-driver"
	flagKVDSN         = "kv-dsn"
	flagKVNamespace   = "kv-namespace"
	flagKVTable       = "kv-table"
	flagLogLevel      = "log-level"
	flagConfig        = "config"
)

// Flags returns the global flags of the northcfg command.
//
// Flags:
//
//	-f/--file        configuration file, repeatable; "path?" marks it optional
//	--no-env         leave the environment source out
//	--watch-all      watch every file and the env file
//	--prefix         environment prefix (default NORTH_)
//	--separator      nested key separator (default __)
//	--key-case       key case, e.g. snake, camel, kebab
//	--env-file       dotenv file loaded before the environment is read
//	--parse-json     parse environment values as JSON literals
//	--profile        build profile for {{env}}: debug or release
//	--base-dir       directory relative paths are resolved against
//	-o/--output      output format: json, yaml or toml
//	--pointer        JSON pointer selecting the printed sub-document
//	--remote-*       HTTP provider settings
//	--kv-*           SQL key/value provider settings
//	--log-level      zerolog level name
//	-c/--config      settings file for northcfg itself
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{Name: flagFile, Aliases: []string{"f"}, Usage: "configuration file, repeatable; a trailing ? marks it optional"},
		&cli.BoolFlag{Name: flagNoEnv, Usage: "leave the environment source out"},
		&cli.BoolFlag{Name: flagWatchAll, Usage: "watch every file and the env file"},
		&cli.StringFlag{Name: flagPrefix, Usage: "environment prefix (default NORTH_)"},
		&cli.StringFlag{Name: flagSeparator, Usage: "nested key separator (default __)"},
		&cli.StringFlag{Name: flagKeyCase, Usage: "key case: snake, camel, pascal, kebab, ..."},
		&cli.StringFlag{Name: flagEnvFile, Usage: "dotenv file loaded before the environment is read"},
		&cli.BoolFlag{Name: flagParseJSON, Usage: "parse environment values as JSON literals"},
		&cli.StringFlag{Name: flagProfile, Usage: "build profile substituted for {{env}}: debug or release"},
		&cli.StringFlag{Name: flagBaseDir, Usage: "directory relative paths are resolved against"},
		&cli.StringFlag{Name: flagOutput, Aliases: []string{"o"}, Usage: "output format: json, yaml or toml"},
		&cli.StringFlag{Name: flagPointer, Usage: "JSON pointer selecting the printed sub-document"},
		&cli.StringFlag{Name: flagRemoteURL, Usage: "URL of an HTTP configuration endpoint"},
		&cli.DurationFlag{Name: flagRemoteTimeout, Usage: "HTTP request timeout (e.g. 5s)"},
		&cli.StringFlag{Name: flagRemoteToken, Usage: "bearer token for the HTTP endpoint"},
		&cli.IntFlag{Name: flagRemoteRetries, Usage: "HTTP retry count"},
		&cli.StringFlag{Name: flagKVDriver, Usage: "SQL driver: pgx or sqlite3"},
		&cli.StringFlag{Name: flagKVDSN, Usage: "SQL data source name"},
		&cli.StringFlag{Name: flagKVNamespace, Usage: "key/value namespace"},
		&cli.StringFlag{Name: flagKVTable, Usage: "key/value table"},
		&cli.StringFlag{Name: flagLogLevel, Usage: "log level: debug, info, warn, error"},
		&cli.StringFlag{Name: flagConfig, Aliases: []string{"c"}, Usage: "settings file for northcfg"},
	}
}

// parseFlags copies the flags that were set on the command line into a
// partial config. Unset flags stay zero so they do not override the env or
// the settings file when merged.
func parseFlags(c *cli.Context) *StructuredConfig {
	cfg := &StructuredConfig{}

	if c.IsSet(flagFile) {
		cfg.Sources.Files = c.StringSlice(flagFile)
	}
	cfg.Sources.NoEnv = c.Bool(flagNoEnv)
	cfg.Sources.Watch = c.Bool(flagWatchAll)

	cfg.Env = Env{
		Prefix:    c.String(flagPrefix),
		Separator: c.String(flagSeparator),
		KeyCase:   c.String(flagKeyCase),
		File:      c.String(flagEnvFile),
		ParseJSON: c.Bool(flagParseJSON),
	}

	cfg.Resolve = Resolve{
		Profile: c.String(flagProfile),
		BaseDir: c.String(flagBaseDir),
		Output:  c.String(flagOutput),
		Pointer: c.String(flagPointer),
	}

	cfg.Remote = Remote{
		URL:     c.String(flagRemoteURL),
		Timeout: c.Duration(flagRemoteTimeout),
		Token:   c.String(flagRemoteToken),
		Retries: c.Int(flagRemoteRetries),
	}

	cfg.KV = KV{
		Driver:    c.String(flagKVDriver),
		DSN:       c.String(flagKVDSN),
		Namespace: c.String(flagKVNamespace),
		Table:     c.String(flagKVTable),
	}

	cfg.Log.Level = c.String(flagLogLevel)
	cfg.JSONFilePath = c.String(flagConfig)

	return cfg
}
