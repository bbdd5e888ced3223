// Package ident turns arbitrary mapping keys into attribute names.
//
// # Normalization
//
// A key of any comparable type (string, number, bool, byte slice, array or
// tuple-like slice) is rendered to text and then reduced to the characters
// [A-Za-z0-9_]:
//
//	ident.Namer{}.Name("Hello World!")          // "Hello_World"
//	ident.Namer{CamelKiller: true}.Name("HTMLParser") // "html_parser"
//	ident.Namer{Prefix: "x"}.Name(42)           // "x42"
//	ident.Namer{Prefix: "x"}.Name("for")        // "xfor"
//
// Names that would start with a digit or collide with a Go keyword get the
// Namer's prefix. Name never fails; degenerate input yields "".
//
// # Duplicates
//
// Two distinct keys may normalize to the same name ("A" and "a" under
// camel folding, "a b" and "a_b" always). [Check] and [CheckInsert] detect
// these collisions and apply a [Policy]: ignore them, report them through a
// warning callback, or fail with a [*DuplicateError].
//
// [Namer.Match] is the reverse lookup: given an attribute name, find the
// first key (in the given order) whose normalized name is equal to it.
package ident
