// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package northconfig

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/north-config/internal/mock"
	"github.com/MKhiriev/north-config/models"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func envOf(pairs map[string]string) EnvSource {
	return EnvSource{
		Options: models.DefaultEnvSourceOptions(),
		Environ: func() map[string]string { return pairs },
	}
}

type testSettings struct {
	Host    string        `json:"host"`
	Port    int           `json:"port"`
	Debug   bool          `json:"debug"`
	Timeout time.Duration `json:"timeout"`
	Tags    []string      `json:"tags"`
	KeyCase models.Case   `json:"key_case"`
	Nested  struct {
		Foo string `json:"foo"`
		Bar string `json:"bar"`
	} `json:"nested"`
}

// ── pipeline ─────────────────────────────────────────────────────────────────

// TestResolve_LastSourceWins resolves base.json, override.json and the
// environment, in that order.
func TestResolve_LastSourceWins(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "base.json", `{"host":"0.0.0.0","nested":{"foo":"base","bar":"base"}}`)
	writeFile(t, dir, "override.json", `{"host":"0.0.0.5","nested":{"bar":"override"}}`)

	cfg, err := Resolve[testSettings](context.Background(), Options{
		BaseDir: dir,
		Sources: []Source{
			File("base.json"),
			File("override.json"),
			envOf(map[string]string{"NORTH_HOST": "address"}),
		},
	})
	require.NoError(t, err)

	got := cfg.Value()
	assert.Equal(t, "address", got.Host)
	assert.Equal(t, "base", got.Nested.Foo)
	assert.Equal(t, "override", got.Nested.Bar)
	assert.NotEmpty(t, cfg.ResolutionID())
}

// TestResolveDocument_NoSources yields a nil document.
func TestResolveDocument_NoSources(t *testing.T) {
	doc, err := ResolveDocument(context.Background(), Options{})
	require.NoError(t, err)
	assert.Nil(t, doc)

	cfg, err := Resolve[testSettings](context.Background(), Options{})
	require.NoError(t, err)
	assert.Equal(t, testSettings{}, cfg.Value())
}

// TestResolveDocument_FormatsMix merges JSON, YAML, TOML and RON files.
func TestResolveDocument_FormatsMix(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.json", `{"list":["a","b"],"from":"json"}`)
	writeFile(t, dir, "b.yaml", "list: [b, c]\nyaml: true\n")
	writeFile(t, dir, "c.toml", "from = \"toml\"\n")
	writeFile(t, dir, "d.ron", `(ron: Some(1))`)

	doc, err := ResolveDocument(context.Background(), Options{
		BaseDir: dir,
		Sources: []Source{File("a.json"), File("b.yaml"), File("c.toml"), File("d.ron")},
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"list": []any{"a", "b", "c"},
		"from": "toml",
		"yaml": true,
		"ron":  int64(1),
	}, doc)
}

func TestResolveDocument_Idempotent(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "base.yaml", "names: [a, b]\nnested:\n  foo: bar\n")

	opts := Options{
		BaseDir: dir,
		Sources: []Source{
			File("base.yaml"),
			envOf(map[string]string{"NORTH_NAMES__2": "c"}),
		},
	}

	first, err := ResolveDocument(context.Background(), opts)
	require.NoError(t, err)
	second, err := ResolveDocument(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestResolvedConfig_DocumentIsCopy(t *testing.T) {
	cfg, err := Resolve[map[string]any](context.Background(), Options{
		Sources: []Source{Custom("static", Static(map[string]any{"a": "b"}))},
	})
	require.NoError(t, err)

	doc := cfg.Document().(map[string]any)
	doc["a"] = "changed"

	assert.Equal(t, map[string]any{"a": "b"}, cfg.Document())
}

func TestResolveDocument_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ResolveDocument(ctx, Options{Sources: []Source{envOf(nil)}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestResolveDocument_LogsWithResolutionID(t *testing.T) {
	var buf bytes.Buffer
	zl := zerolog.New(&buf)

	_, err := ResolveDocument(context.Background(), Options{
		Logger: &zl,
		Sources: []Source{Custom("broken", ProviderFunc(func(context.Context) (any, error) {
			return nil, errors.New("backend down")
		}))},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"resolution_id"`)
	assert.Contains(t, out, "custom config was not loaded")
	assert.Contains(t, out, "backend down")
}

// ── file sources ─────────────────────────────────────────────────────────────

func TestFileSource_MissingIsFatal(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "base.json", `{"host":"0.0.0.0"}`)

	_, err := ResolveDocument(context.Background(), Options{
		BaseDir: dir,
		Sources: []Source{File("base.json"), File("missing.json")},
	})
	require.ErrorIs(t, err, ErrFileNotFound)

	var srcErr *SourceError
	require.ErrorAs(t, err, &srcErr)
	assert.Equal(t, 1, srcErr.Index)
	assert.Equal(t, "file(missing.json)", srcErr.Source)
}

func TestFileSource_SkipOnError(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "base.json", `{"host":"0.0.0.0"}`)

	doc, err := ResolveDocument(context.Background(), Options{
		BaseDir: dir,
		Sources: []Source{
			File("base.json"),
			FileWithOptions("missing.json", models.FileSourceOptions{SkipOnError: true}),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"host": "0.0.0.0"}, doc)
}

func TestFileSource_UnreadableIsReadError(t *testing.T) {
	dir := t.TempDir()

	_, err := ResolveDocument(context.Background(), Options{
		Sources: []Source{File(dir)},
	})
	assert.ErrorIs(t, err, ErrReadFile)
}

func TestFileSource_SkipOnErrorCoversUnreadable(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "base.json", `{"host":"0.0.0.0"}`)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "conf.d"), 0o755))

	doc, err := ResolveDocument(context.Background(), Options{
		BaseDir: dir,
		Sources: []Source{
			File("base.json"),
			FileWithOptions("conf.d", models.FileSourceOptions{SkipOnError: true}),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"host": "0.0.0.0"}, doc)
}

func TestFileSource_ParseErrorIsAlwaysFatal(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "broken.json", `{"host":`)

	_, err := ResolveDocument(context.Background(), Options{
		BaseDir: dir,
		Sources: []Source{FileWithOptions("broken.json", models.FileSourceOptions{SkipOnError: true})},
	})
	assert.ErrorIs(t, err, ErrParse)
}

func TestFileSource_EmptyFileContributesNothing(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "base.json", `{"host":"0.0.0.0"}`)
	writeFile(t, dir, "empty.yaml", "")

	doc, err := ResolveDocument(context.Background(), Options{
		BaseDir: dir,
		Sources: []Source{File("base.json"), File("empty.yaml")},
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"host": "0.0.0.0"}, doc)
}

func TestFileSource_ProfileSubstitution(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "debug.json", `{"level":"debug"}`)
	writeFile(t, dir, "release.json", `{"level":"release"}`)

	for _, profile := range []models.Profile{models.ProfileDebug, models.ProfileRelease} {
		doc, err := ResolveDocument(context.Background(), Options{
			BaseDir: dir,
			Profile: profile,
			Sources: []Source{File("{{env}}.json")},
		})
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"level": string(profile)}, doc)
	}

	_, err := ResolveDocument(context.Background(), Options{
		BaseDir: dir,
		Sources: []Source{FileWithOptions("{{env}}.json", models.FileSourceOptions{})},
	})
	assert.ErrorIs(t, err, ErrFileNotFound, "substitution off keeps the placeholder")
}

// ── env sources ──────────────────────────────────────────────────────────────

func TestEnvSource_NoMatchContributesNothing(t *testing.T) {
	doc, err := ResolveDocument(context.Background(), Options{
		Sources: []Source{
			Custom("base", Static(map[string]any{"host": "base"})),
			envOf(map[string]string{"HOME": "/root"}),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"host": "base"}, doc)
}

func TestEnvSource_EnvFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".env", "NORTH_HOST=from-file\nNORTH_PORT=9000\n")

	src := envOf(map[string]string{"NORTH_HOST": "from-env"})
	src.Options.EnvFilePath = ".env"

	doc, err := ResolveDocument(context.Background(), Options{BaseDir: dir, Sources: []Source{src}})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"host": "from-env", "port": "9000"}, doc)
}

func TestEnvSource_MissingEnvFileIsSkipped(t *testing.T) {
	src := envOf(map[string]string{"NORTH_HOST": "h"})
	src.Options.EnvFilePath = filepath.Join(t.TempDir(), "nope.env")

	doc, err := ResolveDocument(context.Background(), Options{Sources: []Source{src}})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"host": "h"}, doc)
}

func TestEnvSource_ProcessEnvironment(t *testing.T) {
	t.Setenv("NORTHTEST_NESTED__FOO", "env_foo")

	opts := models.DefaultEnvSourceOptions()
	opts.Prefix = "NORTHTEST_"

	doc, err := ResolveDocument(context.Background(), Options{Sources: []Source{Env(opts)}})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"nested": map[string]any{"foo": "env_foo"}}, doc)
}

// ── custom sources ───────────────────────────────────────────────────────────

func TestCustomSource_MockProvider(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	provider := mock.NewMockProvider(ctrl)
	provider.EXPECT().ConfigValue(gomock.Any()).Return(map[string]any{"host": "custom"}, nil).Times(1)

	doc, err := ResolveDocument(context.Background(), Options{
		Sources: []Source{
			Custom("base", Static(map[string]any{"host": "base", "port": 1})),
			Custom("mock", provider),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"host": "custom", "port": int64(1)}, doc)
}

func TestCustomSource_ErrorIsSkipped(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	provider := mock.NewMockProvider(ctrl)
	provider.EXPECT().ConfigValue(gomock.Any()).Return(nil, errors.New("unavailable"))

	doc, err := ResolveDocument(context.Background(), Options{
		Sources: []Source{
			Custom("base", Static(map[string]any{"host": "base"})),
			Custom("failing", provider),
			CustomSource{},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"host": "base"}, doc)
}

// TestCustomSource_NonObjectDiscarded verifies that successful values that are
// not objects never reach the document.
func TestCustomSource_NonObjectDiscarded(t *testing.T) {
	for _, v := range []any{"text", int64(4), []any{"a"}, nil, true} {
		doc, err := ResolveDocument(context.Background(), Options{
			Sources: []Source{
				Custom("base", Static(map[string]any{"host": "base"})),
				Custom("odd", Static(v)),
			},
		})
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"host": "base"}, doc, "%v", v)
	}
}

func TestCustomSource_StructValue(t *testing.T) {
	type db struct {
		Host string `json:"host"`
		Port uint16 `json:"port"`
	}
	provider := ProviderFunc(func(context.Context) (any, error) {
		return struct {
			DB db `json:"db"`
		}{DB: db{Host: "pg", Port: 5432}}, nil
	})

	doc, err := ResolveDocument(context.Background(), Options{Sources: []Source{Custom("struct", provider)}})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"db": map[string]any{"host": "pg", "port": int64(5432)}}, doc)
}

func TestCustomSource_Name(t *testing.T) {
	assert.Equal(t, "custom", CustomSource{}.Name())
	assert.Equal(t, "custom(vault)", Custom("vault", nil).Name())
	assert.Equal(t, "env(NORTH_)", EnvSource{}.Name())
}

// ── decoding ─────────────────────────────────────────────────────────────────

func TestResolve_WeakDecoding(t *testing.T) {
	cfg, err := Resolve[testSettings](context.Background(), Options{
		Sources: []Source{envOf(map[string]string{
			"NORTH_PORT":     "8080",
			"NORTH_DEBUG":    "true",
			"NORTH_TIMEOUT":  "5s",
			"NORTH_TAGS":     "a,b",
			"NORTH_KEY_CASE": "kebab",
		})},
	})
	require.NoError(t, err)

	got := cfg.Value()
	assert.Equal(t, 8080, got.Port)
	assert.True(t, got.Debug)
	assert.Equal(t, 5*time.Second, got.Timeout)
	assert.Equal(t, []string{"a", "b"}, got.Tags)
	assert.Equal(t, models.CaseKebab, got.KeyCase)
}

func TestResolve_StrictTypes(t *testing.T) {
	_, err := Resolve[testSettings](context.Background(), Options{
		StrictTypes: true,
		Sources:     []Source{envOf(map[string]string{"NORTH_PORT": "8080"})},
	})
	assert.ErrorIs(t, err, ErrDecode)

	src := envOf(map[string]string{"NORTH_PORT": "8080"})
	src.Options.ParseJSONValues = true
	cfg, err := Resolve[testSettings](context.Background(), Options{
		StrictTypes: true,
		Sources:     []Source{src},
	})
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Value().Port)
}

func TestResolve_CustomTagName(t *testing.T) {
	type tagged struct {
		Address string `cfg:"host"`
	}

	cfg, err := Resolve[tagged](context.Background(), Options{
		TagName: "cfg",
		Sources: []Source{Custom("s", Static(map[string]any{"host": "h"}))},
	})
	require.NoError(t, err)
	assert.Equal(t, "h", cfg.Value().Address)
}

func TestMustResolve_Panics(t *testing.T) {
	assert.Panics(t, func() {
		MustResolve[testSettings](context.Background(), Options{
			Sources: []Source{File(filepath.Join(t.TempDir(), "missing.json"))},
		})
	})

	assert.NotPanics(t, func() {
		MustResolve[testSettings](context.Background(), Options{})
	})
}
