package format

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

type Format int

const (
	JSONFormat Format = iota
	YAMLFormat
	TOMLFormat
	MsgpackFormat
	CSVFormat
)

var ErrBadFormat = errors.New("bad format")

var names = map[string]Format{
	"j":       JSONFormat,
	"json":    JSONFormat,
	"jsn":     JSONFormat,
	"y":       YAMLFormat,
	"yaml":    YAMLFormat,
	"yml":     YAMLFormat,
	"t":       TOMLFormat,
	"toml":    TOMLFormat,
	"tml":     TOMLFormat,
	"m":       MsgpackFormat,
	"msgpack": MsgpackFormat,
	"pack":    MsgpackFormat,
	"c":       CSVFormat,
	"csv":     CSVFormat,
}

// ParseFormat accepts a format name, a short name or a file extension,
// with or without a leading dot, in any case.
func ParseFormat(v string) (Format, error) {
	f, ok := names[strings.ToLower(strings.TrimPrefix(v, "."))]
	if ok {
		return f, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBadFormat, v)
}

// FromPath returns the format named by the extension of path.
func FromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if len(ext) < 2 {
		return 0, fmt.Errorf("%w: %q has no extension", ErrBadFormat, path)
	}
	f, err := ParseFormat(ext)
	if err != nil {
		return 0, fmt.Errorf("%w: unknown extension %q, use one of csv, toml, msgpack, yaml or json", ErrBadFormat, ext)
	}
	return f, nil
}

func (f Format) String() string {
	d, err := f.MarshalText()
	if err != nil {
		return err.Error()
	}
	return string(d)
}

func (f Format) MarshalText() ([]byte, error) {
	switch f {
	case JSONFormat:
		return []byte("json"), nil
	case YAMLFormat:
		return []byte("yaml"), nil
	case TOMLFormat:
		return []byte("toml"), nil
	case MsgpackFormat:
		return []byte("msgpack"), nil
	case CSVFormat:
		return []byte("csv"), nil
	default:
		return nil, fmt.Errorf("<err: %d is not a format>", f)
	}
}

func (f *Format) UnmarshalText(d []byte) error {
	pf, err := ParseFormat(string(d))
	if err != nil {
		return err
	}
	*f = pf
	return nil
}

func (f Format) IsJSON() bool    { return f == JSONFormat }
func (f Format) IsYAML() bool    { return f == YAMLFormat }
func (f Format) IsTOML() bool    { return f == TOMLFormat }
func (f Format) IsMsgpack() bool { return f == MsgpackFormat }
func (f Format) IsCSV() bool     { return f == CSVFormat }

// IsBinary reports whether the encoded form is not text.
func (f Format) IsBinary() bool { return f == MsgpackFormat }

// Suffix returns the file extension for this format (including the dot).
func (f Format) Suffix() string {
	switch f {
	case JSONFormat:
		return ".json"
	case YAMLFormat:
		return ".yaml"
	case TOMLFormat:
		return ".toml"
	case MsgpackFormat:
		return ".msgpack"
	case CSVFormat:
		return ".csv"
	default:
		return ""
	}
}

// AllFormats returns all supported formats in preference order.
func AllFormats() []Format {
	return []Format{JSONFormat, YAMLFormat, TOMLFormat, MsgpackFormat, CSVFormat}
}
