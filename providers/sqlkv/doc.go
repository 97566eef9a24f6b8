// Package sqlkv serves configuration stored as dot-path key/value rows in a
// SQL table.
//
// Every row of config_entries whose namespace matches becomes one leaf of the
// document: the row ("app", "db.hosts.0", `"pg-1"`) yields
// {"db":{"hosts":["pg-1"]}}. Values are read as JSON literals, so 5432 is a
// number and "pg-1" (quoted) a string; text that is not valid JSON is kept as
// is. The table is created by the migrations package.
package sqlkv
