// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package merge

import (
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/north-config/value"
)

// doc parses a JSON literal into a normalized document.
func doc(t *testing.T, s string) any {
	t.Helper()
	var v any
	require.NoError(t, sonic.ConfigStd.UnmarshalFromString(s, &v))
	n, err := value.Normalize(v)
	require.NoError(t, err)
	return n
}

// ── Merge ─────────────────────────────────────────────────────────────────────

func TestMerge(t *testing.T) {
	tests := []struct {
		name     string
		existing string
		incoming string
		want     string
	}{
		{
			name:     "objects merge recursively",
			existing: `{"title":"a title","person":{"firstName":"John","lastName":"Doe"},"cities":["london","paris"]}`,
			incoming: `{"title":"another title","person":{"firstName":"Jane"},"cities":["colombo"]}`,
			want:     `{"title":"another title","person":{"firstName":"Jane","lastName":"Doe"},"cities":["london","paris","colombo"]}`,
		},
		{
			name:     "object keys only in existing survive",
			existing: `{"value1":"a","value2":"b"}`,
			incoming: `{"value1":"a","value2":"c","value3":"d"}`,
			want:     `{"value1":"a","value2":"c","value3":"d"}`,
		},
		{
			name:     "arrays collapse the duplicate at the splice point",
			existing: `["a","b"]`,
			incoming: `["b","c"]`,
			want:     `["a","b","c"]`,
		},
		{
			name:     "non-adjacent duplicates survive",
			existing: `["a","b"]`,
			incoming: `["a","c"]`,
			want:     `["a","b","a","c"]`,
		},
		{
			name:     "arrays of objects collapse equal neighbours",
			existing: `[{"value":"a"},{"value":"b"}]`,
			incoming: `[{"value":"b"},{"value":"c"}]`,
			want:     `[{"value":"a"},{"value":"b"},{"value":"c"}]`,
		},
		{
			name:     "runs inside incoming collapse too",
			existing: `[]`,
			incoming: `["x","x","y","x"]`,
			want:     `["x","y","x"]`,
		},
		{
			name:     "object is appended to array",
			existing: `[]`,
			incoming: `{"field1":"value1"}`,
			want:     `[{"field1":"value1"}]`,
		},
		{
			name:     "equal object is not appended twice",
			existing: `[{"field1":"value1"}]`,
			incoming: `{"field1":"value1"}`,
			want:     `[{"field1":"value1"}]`,
		},
		{
			name:     "array replaces object",
			existing: `{"field1":"value1"}`,
			incoming: `["value2","value3"]`,
			want:     `["value2","value3"]`,
		},
		{
			name:     "scalar replaces object",
			existing: `{"a":1}`,
			incoming: `5`,
			want:     `5`,
		},
		{
			name:     "scalar replaces array",
			existing: `[1,2]`,
			incoming: `"s"`,
			want:     `"s"`,
		},
		{
			name:     "null incoming replaces",
			existing: `{"a":1}`,
			incoming: `null`,
			want:     `null`,
		},
		{
			name:     "anything replaces null",
			existing: `null`,
			incoming: `{"a":1}`,
			want:     `{"a":1}`,
		},
		{
			name:     "nested null value overrides key",
			existing: `{"a":{"b":1}}`,
			incoming: `{"a":null}`,
			want:     `{"a":null}`,
		},
		{
			name:     "type mismatch inside object replaces",
			existing: `{"a":{"b":1}}`,
			incoming: `{"a":[1]}`,
			want:     `{"a":[1]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Merge(doc(t, tt.existing), doc(t, tt.incoming))
			assert.Equal(t, doc(t, tt.want), got)
		})
	}
}

// TestMerge_ObjectProperty checks that keys of A not in B are unchanged and
// keys of B carry B's value.
func TestMerge_ObjectProperty(t *testing.T) {
	a := doc(t, `{"keep":{"x":1},"both":"old","deep":{"k":"v","n":{"m":1}}}`)
	b := doc(t, `{"both":"new","added":true,"deep":{"n":{"o":2}}}`)

	got := Merge(a, b).(map[string]any)

	assert.Equal(t, doc(t, `{"x":1}`), got["keep"])
	assert.Equal(t, "new", got["both"])
	assert.Equal(t, true, got["added"])
	assert.Equal(t, doc(t, `{"k":"v","n":{"m":1,"o":2}}`), got["deep"])
}

func TestMerge_Idempotent(t *testing.T) {
	base := `{"host":"0.0.0.0","list":["a"]}`
	over := `{"host":"0.0.0.5","list":["b"]}`

	first := Merge(doc(t, base), doc(t, over))
	second := Merge(doc(t, base), doc(t, over))
	assert.True(t, value.Equal(first, second))
}

// ── MergeIn ───────────────────────────────────────────────────────────────────

func TestMergeIn(t *testing.T) {
	tests := []struct {
		name     string
		root     string
		pointer  string
		incoming string
		want     string
	}{
		{
			name:     "append array into existing array",
			root:     `{"my_array":[{"a":"t"}]}`,
			pointer:  "/my_array",
			incoming: `["b","c"]`,
			want:     `{"my_array":[{"a":"t"},"b","c"]}`,
		},
		{
			name:     "merge into existing array element",
			root:     `{"my_array":[{"a":"t"}]}`,
			pointer:  "/my_array/0",
			incoming: `{"b":"c"}`,
			want:     `{"my_array":[{"a":"t","b":"c"}]}`,
		},
		{
			name:     "replace scalar inside element",
			root:     `{"my_array":[{"a":"t"}]}`,
			pointer:  "/my_array/0/a",
			incoming: `{"b":"c"}`,
			want:     `{"my_array":[{"a":{"b":"c"}}]}`,
		},
		{
			name:     "slash merges at root",
			root:     `{"field":"value"}`,
			pointer:  "/",
			incoming: `{"field2":"value2"}`,
			want:     `{"field":"value","field2":"value2"}`,
		},
		{
			name:     "empty pointer merges at root",
			root:     `{"field":"value"}`,
			pointer:  "",
			incoming: `{"field2":"value2"}`,
			want:     `{"field":"value","field2":"value2"}`,
		},
		{
			name:     "empty middle segment merges at the node reached",
			root:     `{"a":{"x":1}}`,
			pointer:  "/a//b",
			incoming: `{"y":2}`,
			want:     `{"a":{"x":1,"y":2}}`,
		},
		{
			name:     "missing key on array root appends an object element",
			root:     `[{"array1":[{"field":"value1"}]}]`,
			pointer:  "/other_field",
			incoming: `"value"`,
			want:     `[{"array1":[{"field":"value1"}]},{"other_field":"value"}]`,
		},
		{
			name:     "nested path is created from null",
			root:     `null`,
			pointer:  "/a/b/c",
			incoming: `1`,
			want:     `{"a":{"b":{"c":1}}}`,
		},
		{
			name:     "index beyond the end appends",
			root:     `{"list":["x"]}`,
			pointer:  "/list/5",
			incoming: `"y"`,
			want:     `{"list":["x","y"]}`,
		},
		{
			name:     "index after trailing null appends instead of collapsing",
			root:     `{"list":["x",null]}`,
			pointer:  "/list/7/name",
			incoming: `"n"`,
			want:     `{"list":["x",null,{"name":"n"}]}`,
		},
		{
			name:     "index on missing key creates an array",
			root:     `{}`,
			pointer:  "/list/0/name",
			incoming: `"first"`,
			want:     `{"list":[{"name":"first"}]}`,
		},
		{
			name:     "index on an object replaces it with an array",
			root:     `{"a":{"k":"v"}}`,
			pointer:  "/a/0",
			incoming: `"z"`,
			want:     `{"a":["z"]}`,
		},
		{
			name:     "key under a scalar replaces the scalar",
			root:     `{"a":"scalar"}`,
			pointer:  "/a/b",
			incoming: `true`,
			want:     `{"a":{"b":true}}`,
		},
		{
			name:     "escaped segment",
			root:     `{}`,
			pointer:  "/a~1b",
			incoming: `1`,
			want:     `{"a/b":1}`,
		},
		{
			name:     "pointer without leading slash",
			root:     `{}`,
			pointer:  "a/b",
			incoming: `1`,
			want:     `{"a":{"b":1}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MergeIn(doc(t, tt.root), tt.pointer, doc(t, tt.incoming))
			assert.Equal(t, doc(t, tt.want), got)
		})
	}
}

// TestMergeIn_BuildsObject mirrors building a document field by field.
func TestMergeIn_BuildsObject(t *testing.T) {
	var root any
	root = MergeIn(root, "/field", "value")
	root = MergeIn(root, "/object", map[string]any{})
	root = MergeIn(root, "/array", []any{})

	assert.Equal(t, doc(t, `{"array":[],"field":"value","object":{}}`), root)
}
