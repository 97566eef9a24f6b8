// Package environ flattens a flat KEY=VALUE namespace into a nested
// configuration document.
//
// NORTH_NESTED__FOO=env_foo with the default options (prefix "NORTH_",
// separator "__", snake case keys) becomes {"nested":{"foo":"env_foo"}}.
//
// The environment is passed in as a map so that flattening stays a pure
// function; [Snapshot] captures the process environment and [LoadFile]
// brings in the variables of a dotenv file beforehand.
package environ
