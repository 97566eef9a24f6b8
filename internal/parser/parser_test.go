// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── format detection ──────────────────────────────────────────────────────────

func TestFromPath(t *testing.T) {
	tests := map[string]Format{
		"config/base.json":  JSON,
		"config/base.yaml":  YAML,
		"config/base.YML":   YAML,
		"config/base.toml":  TOML,
		"config/base.ron":   RON,
		"config/base":       JSON,
		"config/base.conf":  JSON,
		"config.d/app.json": JSON,
	}
	for path, want := range tests {
		assert.Equal(t, want, FromPath(path), path)
	}
}

func TestFromContentType(t *testing.T) {
	tests := []struct {
		contentType string
		want        Format
		ok          bool
	}{
		{"application/json", JSON, true},
		{"application/json; charset=utf-8", JSON, true},
		{"application/vnd.north+json", JSON, true},
		{"application/yaml", YAML, true},
		{"text/x-yaml", YAML, true},
		{"application/toml", TOML, true},
		{"application/vnd.north+yaml", YAML, true},
		{"application/ron", RON, true},
		{"text/ron; charset=utf-8", RON, true},
		{"application/vnd.north+ron", RON, true},
		{"text/plain", "", false},
		{"application/octet-stream", "", false},
		{"text/x-chronicle", "", false},
		{"application/vnd.yamlish", "", false},
		{"application/tomlette", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := FromContentType(tt.contentType)
		assert.Equal(t, tt.ok, ok, tt.contentType)
		assert.Equal(t, tt.want, got, tt.contentType)
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" YML ")
	require.NoError(t, err)
	assert.Equal(t, YAML, f)

	_, err = ParseFormat("ini")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

// ── parsing ───────────────────────────────────────────────────────────────────

var expected = map[string]any{
	"host": "localhost",
	"port": int64(8080),
	"nested": map[string]any{
		"foo":   "bar",
		"ratio": 0.5,
	},
	"names": []any{"a", "b"},
	"debug": true,
}

func TestParse_AllFormatsAgree(t *testing.T) {
	docs := map[Format]string{
		JSON: `{"host":"localhost","port":8080,"nested":{"foo":"bar","ratio":0.5},"names":["a","b"],"debug":true}`,
		YAML: `
host: localhost
port: 8080
nested:
  foo: bar
  ratio: 0.5
names: [a, b]
debug: true
`,
		TOML: `
host = "localhost"
port = 8080
names = ["a", "b"]
debug = true

[nested]
foo = "bar"
ratio = 0.5
`,
		RON: `
#![enable(implicit_some)]
// application settings
Config(
    host: "localhost",
    port: 8080,
    nested: (foo: "bar", ratio: 0.5), /* inline */
    names: ["a", "b"],
    debug: true,
)
`,
	}

	for format, src := range docs {
		t.Run(string(format), func(t *testing.T) {
			got, err := Parse(format, []byte(src))
			require.NoError(t, err)
			assert.Equal(t, expected, got)
		})
	}
}

func TestParse_EmptyInput(t *testing.T) {
	for _, f := range []Format{JSON, YAML, RON} {
		got, err := Parse(f, []byte("  \n"))
		require.NoError(t, err, f)
		assert.Nil(t, got, f)
	}

	got, err := Parse(TOML, nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{}, got)
}

func TestParse_SyntaxErrors(t *testing.T) {
	docs := map[Format]string{
		JSON: `{"host":`,
		YAML: "host: [unclosed",
		TOML: "host = ",
		RON:  "(host: \"x\"",
	}
	for format, src := range docs {
		_, err := Parse(format, []byte(src))
		assert.ErrorIs(t, err, ErrSyntax, format)
	}
}

func TestParse_UnsupportedFormat(t *testing.T) {
	_, err := Parse("ini", []byte("a=b"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestParseFile_UsesExtension(t *testing.T) {
	got, err := ParseFile("settings.yaml", []byte("a: 1"))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": int64(1)}, got)
}

// ── RON specifics ─────────────────────────────────────────────────────────────

func TestParseRON_Values(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want any
	}{
		{"unit", "()", nil},
		{"none", "None", nil},
		{"some", "Some(3)", int64(3)},
		{"enum variant", "Blue", "Blue"},
		{"tuple", "(1, \"two\", 3.5)", []any{int64(1), "two", 3.5}},
		{"newtype", "Port(8080)", int64(8080)},
		{"map", `{"a": 1, 2: "b"}`, map[string]any{"a": int64(1), "2": "b"}},
		{"char", `'x'`, "x"},
		{"escapes", `"a\n\"b\"\u{41}"`, "a\n\"b\"A"},
		{"raw string", `r#"say "hi""#`, `say "hi"`},
		{"hex", "0xff", int64(255)},
		{"binary", "-0b101", int64(-5)},
		{"underscores", "1_000_000", int64(1000000)},
		{"exponent", "1.5e-3", 0.0015},
		{"trailing comma", "[1, 2,]", []any{int64(1), int64(2)}},
		{"empty list", "[]", []any{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(RON, []byte(tt.src))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRON_Errors(t *testing.T) {
	for _, src := range []string{"[1 2]", "(a: )", "{[1]: 2}", "\"open", "1 2", "inf", "@"} {
		_, err := Parse(RON, []byte(src))
		assert.ErrorIs(t, err, ErrSyntax, src)
	}
}

func TestParseRON_DeepNesting(t *testing.T) {
	for _, src := range []string{
		strings.Repeat("[", 20000),
		strings.Repeat("Some(", 20000) + "1" + strings.Repeat(")", 20000),
	} {
		_, err := Parse(RON, []byte(src))
		require.ErrorIs(t, err, ErrSyntax)
		assert.Contains(t, err.Error(), "nesting deeper than")
	}

	got, err := Parse(RON, []byte(strings.Repeat("[", 100)+strings.Repeat("]", 100)))
	require.NoError(t, err)
	assert.NotNil(t, got)
}

// ── encoding ──────────────────────────────────────────────────────────────────

func TestEncode_RoundTrip(t *testing.T) {
	for _, f := range []Format{JSON, YAML, TOML} {
		t.Run(string(f), func(t *testing.T) {
			out, err := Encode(f, expected)
			require.NoError(t, err)

			back, err := Parse(f, out)
			require.NoError(t, err)
			assert.Equal(t, expected, back)
		})
	}
}

func TestEncode_Unsupported(t *testing.T) {
	_, err := Encode(RON, expected)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Encode(TOML, []any{1})
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
