package app

import "errors"

var (
	// ErrPointerNotFound is returned when --pointer selects nothing.
	ErrPointerNotFound = errors.New(MsgPointerNotFound)
	// ErrNoKVStore is returned by Migrate and Set without a DSN.
	ErrNoKVStore = errors.New(MsgNoKVStore)
)
