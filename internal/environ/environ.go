// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package environ

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	// ErrEnvFileNotFound is returned by [LoadFile] when the dotenv file does
	// not exist. Callers treat it as "nothing to load".
	ErrEnvFileNotFound = errors.New("env file not found")
	// ErrEnvFileMalformed is returned by [LoadFile] when the dotenv file
	// cannot be parsed.
	ErrEnvFileMalformed = errors.New("env file malformed")
)

// Snapshot returns the current process environment as a map.
func Snapshot() map[string]string {
	return env.ToMap(os.Environ())
}

// LoadFile reads KEY=VALUE pairs from the dotenv file at path.
//
// When into is nil the pairs are exported to the process environment;
// variables that are already set keep their value. Otherwise the pairs are
// added to into, again without overriding existing entries, and the process
// environment is left alone.
func LoadFile(path string, into map[string]string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrEnvFileNotFound, path)
		}
		return fmt.Errorf("error reading env file %s: %w", path, err)
	}

	if into == nil {
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrEnvFileMalformed, path, err)
		}
		return nil
	}

	pairs, err := godotenv.Read(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrEnvFileMalformed, path, err)
	}

	for k, v := range pairs {
		if _, exists := into[k]; !exists {
			into[k] = v
		}
	}
	return nil
}
