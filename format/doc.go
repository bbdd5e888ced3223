// Package format names the serialization formats a box can be read from
// and written to, and maps file extensions onto them.
//
//	f, err := format.ParseFormat("yml")   // YAMLFormat
//	f, err := format.FromPath("conf.TOML") // TOMLFormat
//	f.Suffix()                             // ".toml"
package format
