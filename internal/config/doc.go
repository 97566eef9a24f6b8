// Package config provides configuration loading, merging, and validation
// for the northcfg command itself.
//
// Settings are assembled from three places, in increasing priority:
//  1. a settings file (JSON, YAML, TOML or RON) named by --config or
//     NORTHCFG_CONFIG
//  2. NORTHCFG_* environment variables
//  3. command-line flags
//
// The settings file is read with northconfig, the library the command
// fronts. The main entry point is [GetStructuredConfig].
package config
