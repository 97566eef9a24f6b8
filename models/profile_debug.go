//go:build !release

package models

const buildProfile = ProfileDebug
