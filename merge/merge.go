// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package merge

import (
	"strconv"
	"strings"

	"github.com/MKhiriev/north-config/value"
)

// Merge overlays incoming onto existing and returns the result. Both must be
// normalized values (see [value.Normalize]).
//
// Rules, first match wins:
//   - object onto object: every key of incoming is merged recursively into
//     existing; keys only present in existing are kept. existing is mutated.
//   - array onto array: incoming is appended, then equal neighbours are
//     collapsed into one.
//   - object onto array: the object is appended as one element, then equal
//     neighbours are collapsed.
//   - anything else: incoming replaces existing.
//
// The collapse only looks at adjacent elements: merging ["a","b"] with
// ["a","c"] yields ["a","b","a","c"]. Callers rely on this exact behaviour,
// do not turn it into a full de-duplication.
func Merge(existing, incoming any) any {
	switch dst := existing.(type) {
	case map[string]any:
		src, ok := incoming.(map[string]any)
		if !ok {
			return incoming
		}
		for k, v := range src {
			dst[k] = Merge(dst[k], v)
		}
		return dst

	case []any:
		switch src := incoming.(type) {
		case []any:
			return dedupAdjacent(append(dst, src...))
		case map[string]any:
			return dedupAdjacent(append(dst, src))
		}
	}

	return incoming
}

// dedupAdjacent collapses runs of equal consecutive elements in place.
func dedupAdjacent(arr []any) []any {
	if len(arr) < 2 {
		return arr
	}

	out := arr[:1]
	for _, v := range arr[1:] {
		if value.Equal(out[len(out)-1], v) {
			continue
		}
		out = append(out, v)
	}

	clear(arr[len(out):])
	return out
}

// MergeIn merges incoming into the node addressed by pointer inside root and
// returns the (possibly replaced) root.
//
// The pointer is split on "/" with the leading empty segment dropped, so "/"
// and "" both merge at root. An empty segment in the middle ("/a//b") stops
// the walk and merges at the node reached so far.
//
// Missing nodes are created on the way. An integer segment appends a Null
// placeholder to the current array (a non-array node is merged with [null],
// which replaces it) and continues at that placeholder. Any other segment
// merges {segment: null} into the current node; when that node is an array
// the object becomes a new element and the walk continues inside it.
func MergeIn(root any, pointer string, incoming any) any {
	segments := strings.Split(pointer, "/")
	if segments[0] == "" {
		segments = segments[1:]
	}
	for i, s := range segments {
		segments[i] = value.UnescapeSegment(s)
	}

	return mergeIn(root, segments, incoming)
}

// mergeIn consumes one segment per call, so recursion depth never exceeds
// the number of segments plus the array redirects (one per segment).
func mergeIn(node any, segments []string, incoming any) any {
	if len(segments) == 0 || segments[0] == "" {
		return Merge(node, incoming)
	}

	segment, rest := segments[0], segments[1:]

	if _, ok := value.Child(node, segment); !ok {
		node, segment, rest = vivify(node, segment, rest)
	}

	child, _ := value.Child(node, segment)
	if len(rest) == 0 {
		return value.SetChild(node, segment, Merge(child, incoming))
	}
	return value.SetChild(node, segment, mergeIn(child, rest, incoming))
}

// vivify creates the child addressed by segment and returns the new node
// together with the segment and remaining path that now reach that child.
func vivify(node any, segment string, rest []string) (any, string, []string) {
	if _, isIndex := value.ParseIndex(segment); isIndex {
		arr, ok := node.([]any)
		if ok {
			arr = append(arr, nil)
		} else {
			arr = Merge(node, []any{nil}).([]any)
		}
		return arr, strconv.Itoa(len(arr) - 1), rest
	}

	placeholder := map[string]any{segment: nil}
	merged := Merge(node, placeholder)

	if arr, ok := merged.([]any); ok {
		// The placeholder became (or collapsed into) the last element.
		redirected := append([]string{segment}, rest...)
		return arr, strconv.Itoa(len(arr) - 1), redirected
	}

	return merged, segment, rest
}
