// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"
	"strings"
)

// Case selects how each environment key segment is rewritten before it is
// used as a document key. It must match the field names (or tags) of the
// target configuration struct.
type Case int

const (
	// CaseDefault resolves to [CaseSnake].
	CaseDefault Case = iota
	// CaseSnake turns SOME_THING into some_thing.
	CaseSnake
	// CaseCamel turns SOME_THING into someThing.
	CaseCamel
	// CasePascal turns SOME_THING into SomeThing.
	CasePascal
	// CaseKebab turns SOME_THING into some-thing.
	CaseKebab
	// CaseScreamingSnake turns someThing into SOME_THING.
	CaseScreamingSnake
	// CaseScreamingKebab turns some_thing into SOME-THING.
	CaseScreamingKebab
	// CaseLower lowercases the segment and keeps its separators.
	CaseLower
	// CaseUpper uppercases the segment and keeps its separators.
	CaseUpper
	// CaseFlat turns SOME_THING into something.
	CaseFlat
	// CaseUpperFlat turns some_thing into SOMETHING.
	CaseUpperFlat
	// CasePreserve leaves the segment untouched.
	CasePreserve
)

var caseNames = map[Case]string{
	CaseSnake:          "snake",
	CaseCamel:          "camel",
	CasePascal:         "pascal",
	CaseKebab:          "kebab",
	CaseScreamingSnake: "screaming_snake",
	CaseScreamingKebab: "screaming_kebab",
	CaseLower:          "lower",
	CaseUpper:          "upper",
	CaseFlat:           "flat",
	CaseUpperFlat:      "upper_flat",
	CasePreserve:       "preserve",
}

// OrDefault returns c, or [CaseSnake] when c is the zero value.
func (c Case) OrDefault() Case {
	if c == CaseDefault {
		return CaseSnake
	}
	return c
}

// String returns the lowercase name accepted by [ParseCase].
func (c Case) String() string {
	if name, ok := caseNames[c.OrDefault()]; ok {
		return name
	}
	return fmt.Sprintf("case(%d)", int(c))
}

// ParseCase maps a case name (e.g. "snake", "Kebab", "screaming-snake") to a
// [Case]. An empty name yields [CaseDefault].
func ParseCase(name string) (Case, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	if normalized == "" {
		return CaseDefault, nil
	}

	for c, n := range caseNames {
		if n == normalized {
			return c, nil
		}
	}

	return CaseDefault, fmt.Errorf("%w: %q", ErrUnknownCase, name)
}

// UnmarshalText lets a [Case] be decoded from configuration text.
func (c *Case) UnmarshalText(text []byte) error {
	parsed, err := ParseCase(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
