// Package dotpath parses dotted access paths into linked segments.
//
// A path addresses nested mappings and sequences in one string:
//
//	"a.b.c"        // three field steps
//	"a[0][1]"      // field, then two index steps
//	"[2].name"     // index into a sequence root, then field
//	"'x.y'.z"      // quoted field "x.y", then field "z"
//	"items[-1]"    // negative index counts from the end
//
// Fields may be quoted with ' or " when they contain separators; a
// backslash escapes the quote character inside a quoted field. Empty
// fields ("a..b", ".a", "a.") and unbalanced brackets are syntax errors
// wrapping [ErrSyntax].
package dotpath
