package config

import (
	"testing"
	"time"

	"github.com/MKhiriev/north-config/northconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON_Success(t *testing.T) {
	path := writeTempJSONConfig(t, map[string]any{
		"sources": map[string]any{"files": []string{"a.json", "b.toml?"}, "no_env": true},
		"remote":  map[string]any{"url": "http://x", "timeout": "30s", "retries": 1},
		"kv":      map[string]any{"driver": "pgx", "dsn": "postgres://db"},
	})

	cfg, err := parseJSON(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.json", "b.toml?"}, cfg.Sources.Files)
	assert.True(t, cfg.Sources.NoEnv)
	assert.Equal(t, 30*time.Second, cfg.Remote.Timeout)
	assert.Equal(t, 1, cfg.Remote.Retries)
	assert.Equal(t, "pgx", cfg.KV.Driver)
	assert.Empty(t, cfg.JSONFilePath)
}

// TestParseJSON_OtherFormats verifies that the settings file may be TOML.
func TestParseJSON_OtherFormats(t *testing.T) {
	path := writeTempFile(t, "northcfg.toml", `
[resolve]
output = "yaml"
profile = "release"
`)

	cfg, err := parseJSON(path)
	require.NoError(t, err)
	assert.Equal(t, Resolve{Output: "yaml", Profile: "release"}, cfg.Resolve)
}

func TestParseJSON_FileNotFound(t *testing.T) {
	_, err := parseJSON("/nonexistent/northcfg.json")
	assert.ErrorIs(t, err, northconfig.ErrFileNotFound)
}

func TestParseJSON_InvalidJSON(t *testing.T) {
	path := writeTempFile(t, "northcfg.json", `{"env": `)

	_, err := parseJSON(path)
	assert.ErrorIs(t, err, northconfig.ErrParse)
}

// TestParseJSON_WrongTypes verifies that the settings file is decoded
// strictly.
func TestParseJSON_WrongTypes(t *testing.T) {
	path := writeTempJSONConfig(t, map[string]any{"remote": map[string]any{"retries": "three"}})

	_, err := parseJSON(path)
	assert.ErrorIs(t, err, northconfig.ErrDecode)
}

func TestParseJSON_EmptyObject(t *testing.T) {
	path := writeTempJSONConfig(t, map[string]any{})

	cfg, err := parseJSON(path)
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}
