// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package value

import (
	"strconv"
	"strings"
)

// ParseIndex reports whether segment is a non-negative decimal integer and
// returns it. Leading zeros are rejected ("0" is fine, "01" is a key).
func ParseIndex(segment string) (int, bool) {
	if segment == "" || segment[0] < '0' || segment[0] > '9' {
		return 0, false
	}
	if len(segment) > 1 && segment[0] == '0' {
		return 0, false
	}
	i, err := strconv.Atoi(segment)
	if err != nil || i < 0 {
		return 0, false
	}
	return i, true
}

// Child returns the element of node addressed by segment: an object key, or
// an array index when segment is a non-negative integer within bounds.
func Child(node any, segment string) (any, bool) {
	switch t := node.(type) {
	case map[string]any:
		child, ok := t[segment]
		return child, ok
	case []any:
		i, ok := ParseIndex(segment)
		if !ok || i >= len(t) {
			return nil, false
		}
		return t[i], true
	default:
		return nil, false
	}
}

// SetChild stores v under segment in node, which must already contain that
// child (see [Child]). It returns node for chaining.
func SetChild(node any, segment string, v any) any {
	switch t := node.(type) {
	case map[string]any:
		t[segment] = v
	case []any:
		if i, ok := ParseIndex(segment); ok && i < len(t) {
			t[i] = v
		}
	}
	return node
}

// Pointer resolves a slash-delimited pointer ("/a/0/b") against root.
// "~1" and "~0" in segments decode to "/" and "~". The empty pointer
// addresses root.
func Pointer(root any, pointer string) (any, bool) {
	if pointer == "" {
		return root, true
	}
	if !strings.HasPrefix(pointer, "/") {
		return nil, false
	}

	current := root
	for _, segment := range strings.Split(pointer[1:], "/") {
		child, ok := Child(current, UnescapeSegment(segment))
		if !ok {
			return nil, false
		}
		current = child
	}
	return current, true
}

var segmentUnescaper = strings.NewReplacer("~1", "/", "~0", "~")

// UnescapeSegment decodes the "~1" and "~0" escapes of a pointer segment.
func UnescapeSegment(segment string) string {
	if !strings.Contains(segment, "~") {
		return segment
	}
	return segmentUnescaper.Replace(segment)
}

// DotSet assigns v at the dot-separated path inside root and returns the
// (possibly replaced) root. See [Set].
func DotSet(root any, dotPath string, v any) any {
	return Set(root, strings.Split(dotPath, "."), v)
}

// Set assigns v at path inside root and returns the (possibly replaced) root.
//
// Missing containers are created on the way down: an integer segment creates
// or indexes an array, any other segment an object. An index at or past the
// array length appends one element, so a large index never allocates more
// than that element. A scalar standing in
// the way is replaced by the container the path needs. Set always overwrites
// the leaf; it never merges.
func Set(root any, path []string, v any) any {
	if len(path) == 0 {
		return v
	}

	segment, rest := path[0], path[1:]

	if i, isIndex := ParseIndex(segment); isIndex {
		if obj, ok := root.(map[string]any); ok {
			obj[segment] = Set(obj[segment], rest, v)
			return obj
		}

		arr, _ := root.([]any)
		if i >= len(arr) {
			return append(arr, Set(nil, rest, v))
		}
		arr[i] = Set(arr[i], rest, v)
		return arr
	}

	obj, ok := root.(map[string]any)
	if !ok {
		obj = make(map[string]any)
	}
	obj[segment] = Set(obj[segment], rest, v)
	return obj
}
