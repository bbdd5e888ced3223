// Package codec encodes and decodes plain trees in the supported
// serialization formats.
//
// A plain tree is built from nil, bool, int, uint64, float64, string,
// []byte, []any and [Map]. Map keeps its items in insertion order so
// that a round trip through JSON, YAML or msgpack preserves key order.
// TOML decoding yields keys in sorted order; CSV carries a list of flat
// rows with string values.
//
//	tree, err := codec.Decode(r, format.YAMLFormat)
//	err = codec.Encode(w, format.JSONFormat, tree, codec.Indent(2))
//
// Decoding fails with an error wrapping [ErrFormat] when the input is
// not valid for the format.
package codec
