// Package value defines the semi-structured document that every
// configuration source is reduced to before merging.
//
// A document is a plain Go value drawn from a closed set:
//
//	nil             Null
//	bool            Bool
//	int64, float64  Number
//	string          String
//	[]any           Array
//	map[string]any  Object
//
// Parsers and custom providers may hand back richer Go values; [Normalize]
// folds them into this set so that merging and equality only ever deal with
// the six kinds above. Objects are mutated in place by the merge engine,
// arrays are replaced, so callers always keep the returned value.
package value
