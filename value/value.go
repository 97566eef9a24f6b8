// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package value

import (
	"github.com/google/go-cmp/cmp"
)

// Kind classifies a normalized value.
type Kind int

const (
	// Invalid is reported for values outside the normalized set.
	Invalid Kind = iota
	Null
	Bool
	Number
	String
	Array
	Object
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	default:
		return "invalid"
	}
}

// KindOf reports the kind of a normalized value.
func KindOf(v any) Kind {
	switch v.(type) {
	case nil:
		return Null
	case bool:
		return Bool
	case int64, float64:
		return Number
	case string:
		return String
	case []any:
		return Array
	case map[string]any:
		return Object
	default:
		return Invalid
	}
}

// IsObject reports whether v is an Object.
func IsObject(v any) bool {
	_, ok := v.(map[string]any)
	return ok
}

// IsNull reports whether v is Null.
func IsNull(v any) bool {
	return v == nil
}

// Equal reports whether two normalized values are structurally equal.
// Numbers compare by their Go type as well, so int64(1) and float64(1)
// differ.
func Equal(a, b any) bool {
	return cmp.Equal(a, b)
}

// Clone returns a deep copy of a normalized value.
func Clone(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, child := range t {
			out[k] = Clone(child)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, child := range t {
			out[i] = Clone(child)
		}
		return out
	default:
		return v
	}
}
