package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] and
// [StructuredConfig.RequireSources].
var (
	// ErrInvalidEnvConfigs indicates invalid environment source settings
	// (for example, an unknown key case).
	ErrInvalidEnvConfigs = errors.New("invalid env configuration")
	// ErrInvalidResolveConfigs indicates invalid pipeline settings
	// (for example, an unknown profile or output format).
	ErrInvalidResolveConfigs = errors.New("invalid resolve configuration")
	// ErrInvalidKVConfigs indicates invalid key/value provider settings
	// (for example, an unsupported driver).
	ErrInvalidKVConfigs = errors.New("invalid kv configuration")
	// ErrInvalidRemoteConfigs indicates invalid HTTP provider settings
	// (for example, a negative timeout).
	ErrInvalidRemoteConfigs = errors.New("invalid remote configuration")
	// ErrInvalidLogConfigs indicates an unknown log level.
	ErrInvalidLogConfigs = errors.New("invalid log configuration")
	// ErrNoSources is returned when nothing would be resolved.
	ErrNoSources = errors.New("no configuration sources given")
)
