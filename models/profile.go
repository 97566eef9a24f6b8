// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"
	"strings"
)

// Profile is the build profile substituted for the {{env}} placeholder in
// file source paths.
type Profile string

const (
	// ProfileDebug is used by development builds.
	ProfileDebug Profile = "debug"
	// ProfileRelease is used by builds compiled with -tags release.
	ProfileRelease Profile = "release"
)

// EnvPlaceholder is replaced with the active [Profile] in file source paths.
const EnvPlaceholder = "{{env}}"

// DefaultProfile returns the profile the binary was built with.
func DefaultProfile() Profile {
	return buildProfile
}

// OrDefault returns p, or [DefaultProfile] when p is empty.
func (p Profile) OrDefault() Profile {
	if p == "" {
		return DefaultProfile()
	}
	return p
}

// Substitute replaces every {{env}} placeholder in path with the profile name.
func (p Profile) Substitute(path string) string {
	return strings.ReplaceAll(path, EnvPlaceholder, string(p.OrDefault()))
}

// ParseProfile accepts "debug" or "release" (case-insensitive). An empty
// string yields the build default.
func ParseProfile(s string) (Profile, error) {
	switch Profile(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return DefaultProfile(), nil
	case ProfileDebug:
		return ProfileDebug, nil
	case ProfileRelease:
		return ProfileRelease, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownProfile, s)
	}
}
