//go:build release

package models

const buildProfile = ProfileRelease
