// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "errors"

var (
	// ErrUnknownCase is returned by [ParseCase] for names it does not know.
	ErrUnknownCase = errors.New("unknown key case")
	// ErrUnknownProfile is returned by [ParseProfile] for anything other than
	// debug or release.
	ErrUnknownProfile = errors.New("unknown build profile")
)
