// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package value

import (
	"encoding"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"

	"github.com/bytedance/sonic"
)

// ErrNotNormalizable is returned when a Go value cannot be expressed as a
// document value (channels, functions, cyclic data and the like).
var ErrNotNormalizable = errors.New("value cannot be normalized")

var numberAPI = sonic.Config{UseNumber: true}.Froze()

// Normalize converts the output of a parser or a custom provider into the
// normalized set: nil, bool, int64, float64, string, []any and
// map[string]any.
//
// Integers of every width become int64 (a uint64 above the int64 range
// becomes float64), json.Number becomes int64 when integral and float64
// otherwise, maps with non-string keys get their keys formatted with fmt,
// and text marshalers (time.Time, TOML dates) become strings. Anything else
// is round-tripped through JSON.
func Normalize(v any) (any, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case bool:
		return t, nil
	case string:
		return t, nil
	case int:
		return int64(t), nil
	case int8:
		return int64(t), nil
	case int16:
		return int64(t), nil
	case int32:
		return int64(t), nil
	case int64:
		return t, nil
	case uint:
		return fromUint(uint64(t)), nil
	case uint8:
		return int64(t), nil
	case uint16:
		return int64(t), nil
	case uint32:
		return int64(t), nil
	case uint64:
		return fromUint(t), nil
	case float32:
		return float64(t), nil
	case float64:
		return t, nil
	case json.Number:
		return fromJSONNumber(t)
	case []any:
		out := make([]any, len(t))
		for i, child := range t {
			n, err := Normalize(child)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			out[i] = n
		}
		return out, nil
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, child := range t {
			n, err := Normalize(child)
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", k, err)
			}
			out[k] = n
		}
		return out, nil
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, child := range t {
			key := fmt.Sprint(k)
			n, err := Normalize(child)
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", key, err)
			}
			out[key] = n
		}
		return out, nil
	case encoding.TextMarshaler:
		text, err := t.MarshalText()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrNotNormalizable, err)
		}
		return string(text), nil
	}

	return normalizeReflect(v)
}

// ParseLiteral parses raw as a JSON literal ("8080", "true", `["a"]`) and
// returns the normalized result. Text that is not valid JSON comes back
// unchanged as a string.
func ParseLiteral(raw string) any {
	var parsed any
	if err := numberAPI.UnmarshalFromString(raw, &parsed); err != nil {
		return raw
	}

	n, err := Normalize(parsed)
	if err != nil {
		return raw
	}
	return n
}

// MustNormalize is like [Normalize] but panics on error. It is meant for
// literals in tests and examples.
func MustNormalize(v any) any {
	n, err := Normalize(v)
	if err != nil {
		panic(err)
	}
	return n
}

func normalizeReflect(v any) (any, error) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil, nil
		}
		return Normalize(rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
			break // []byte goes through JSON as base64, like encoding/json does
		}
		out := make([]any, rv.Len())
		for i := range rv.Len() {
			n, err := Normalize(rv.Index(i).Interface())
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			out[i] = n
		}
		return out, nil
	case reflect.Map:
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			key := fmt.Sprint(iter.Key().Interface())
			n, err := Normalize(iter.Value().Interface())
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", key, err)
			}
			out[key] = n
		}
		return out, nil
	case reflect.Bool:
		return rv.Bool(), nil
	case reflect.String:
		return rv.String(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return fromUint(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return rv.Float(), nil
	case reflect.Chan, reflect.Func, reflect.UnsafePointer, reflect.Complex64, reflect.Complex128:
		return nil, fmt.Errorf("%w: unsupported kind %s", ErrNotNormalizable, rv.Kind())
	}

	return roundTrip(v)
}

// roundTrip encodes v as JSON and decodes it back as a generic document.
// Structs honour their json tags this way.
func roundTrip(v any) (any, error) {
	data, err := numberAPI.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotNormalizable, err)
	}

	var generic any
	if err := numberAPI.Unmarshal(data, &generic); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotNormalizable, err)
	}

	return Normalize(generic)
}

func fromUint(u uint64) any {
	if u > math.MaxInt64 {
		return float64(u)
	}
	return int64(u)
}

func fromJSONNumber(n json.Number) (any, error) {
	if i, err := n.Int64(); err == nil {
		return i, nil
	}
	f, err := n.Float64()
	if err != nil {
		return nil, fmt.Errorf("%w: bad number %q: %w", ErrNotNormalizable, n.String(), err)
	}
	return f, nil
}
