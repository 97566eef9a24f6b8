// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package northconfig

import (
	"errors"
	"fmt"
)

var (
	// ErrFileNotFound is returned when a file source points at a path that
	// does not exist and SkipOnError is off.
	ErrFileNotFound = errors.New("configuration file not found")
	// ErrReadFile is returned when a file source exists but cannot be read.
	ErrReadFile = errors.New("error reading configuration file")
	// ErrParse is returned when a file or env file is malformed. It is never
	// skipped.
	ErrParse = errors.New("error parsing configuration")
	// ErrCustomSource wraps provider failures. They are logged, not
	// returned.
	ErrCustomSource = errors.New("custom configuration source failed")
	// ErrDecode is returned when the merged document does not fit the
	// target type.
	ErrDecode = errors.New("error decoding configuration")
	// ErrNothingToWatch is returned by Watch when no source asks to be
	// watched.
	ErrNothingToWatch = errors.New("no configuration source to watch")
	// ErrNilProvider is logged when a custom source has no provider.
	ErrNilProvider = errors.New("custom source has no provider")
)

// SourceError names the source that stopped a resolution.
type SourceError struct {
	Source string
	Index  int
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("source #%d %s: %v", e.Index, e.Source, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}
