// Package box provides dictionaries with attribute style access.
//
// A [Box] is an insertion ordered mapping. Besides plain item access
// through [Box.Get] and [Box.Set], every key is reachable as an
// attribute through its normalized name (see package ident):
//
//	b := box.Must(box.New(map[string]any{"Hello World": 1, "HTMLParser": 2}, box.CamelKiller()))
//	b.Attr("hello_world") // 1
//	b.Attr("html_parser") // 2
//
// Raw Go maps and slices stored in a box are wrapped into boxes and
// [List] values the first time they are read, and the wrapped value is
// kept, so repeated reads return the same *Box.
//
// # Configuration
//
// Options given to [New] form a [Config] that is shared with every box
// and list created below it:
//
//   - [DefaultBox] makes missing keys produce a value instead of failing.
//     By default the value is an empty box that stores itself into its
//     parent on its first write, so that b.a.b.c = 5 works on an empty
//     box.
//   - [Frozen] forbids mutation after construction and makes boxes
//     hashable.
//   - [Dots] lets keys such as "a.b[0].c" address nested values.
//   - [Duplicates] reports keys that normalize to the same name.
//   - [Recast] coerces values assigned to chosen keys.
//
// # Serialization
//
// Boxes and lists convert to and from JSON, YAML, TOML, msgpack and
// (for lists of flat boxes) CSV through package codec. [FromFile]
// picks the format from the file extension.
package box
