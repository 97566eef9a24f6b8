// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app wires the northcfg settings into a northconfig pipeline and
// runs the command's actions: resolve, watch, migrate and set.
//
// All Msg* constants are the human-readable messages written into log
// entries and errors, so that the wording stays the same across commands.
package app

const (
	// MsgResolved is logged after a document was printed.
	MsgResolved = "configuration resolved"

	// MsgResolveFailed is logged when a re-resolution during watch fails.
	// Watching continues.
	MsgResolveFailed = "configuration could not be resolved"

	// MsgConfigChanged is logged when a watched file changed.
	MsgConfigChanged = "configuration file changed"

	// MsgWatching is logged once the watch loop starts.
	MsgWatching = "watching configuration files"

	// MsgMigrated is logged after the key/value schema was brought up to date.
	MsgMigrated = "key/value schema migrated"

	// MsgValueStored is logged after set wrote a key.
	MsgValueStored = "value stored"

	// MsgPointerNotFound is used when --pointer selects nothing.
	MsgPointerNotFound = "pointer does not match the resolved document"

	// MsgNoKVStore is used when migrate or set run without a DSN.
	MsgNoKVStore = "no key/value store configured"
)
