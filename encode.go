package box

import (
	"bytes"
	"io"
	"os"

	"github.com/signadot/tony-format/box/codec"
	"github.com/signadot/tony-format/box/format"
)

// Encode writes the box to w in format f. Boxes cannot be written as
// CSV, and cyclic boxes cannot be written at all.
func (b *Box) Encode(w io.Writer, f format.Format, opts ...codec.EncodeOption) error {
	tree, err := b.ToOrdered()
	if err != nil {
		return err
	}
	return codec.Encode(w, f, tree, opts...)
}

func (b *Box) Marshal(f format.Format, opts ...codec.EncodeOption) ([]byte, error) {
	return marshal(b, f, opts)
}

func (b *Box) ToJSON(opts ...codec.EncodeOption) ([]byte, error) {
	return b.Marshal(format.JSONFormat, opts...)
}

func (b *Box) ToYAML(opts ...codec.EncodeOption) ([]byte, error) {
	return b.Marshal(format.YAMLFormat, opts...)
}

// ToTOML writes the box as a TOML document. Nil values are left out and
// keys come out in TOML encoder order.
func (b *Box) ToTOML() ([]byte, error) {
	return b.Marshal(format.TOMLFormat)
}

func (b *Box) ToMsgpack() ([]byte, error) {
	return b.Marshal(format.MsgpackFormat)
}

// WriteFile writes the box to path in format f.
func (b *Box) WriteFile(path string, f format.Format, opts ...codec.EncodeOption) error {
	return writeFile(b, path, f, opts)
}

func (b *Box) ToJSONFile(path string, opts ...codec.EncodeOption) error {
	return b.WriteFile(path, format.JSONFormat, opts...)
}

func (b *Box) ToYAMLFile(path string, opts ...codec.EncodeOption) error {
	return b.WriteFile(path, format.YAMLFormat, opts...)
}

func (b *Box) ToTOMLFile(path string) error {
	return b.WriteFile(path, format.TOMLFormat)
}

func (b *Box) ToMsgpackFile(path string) error {
	return b.WriteFile(path, format.MsgpackFormat)
}

// Encode writes the list to w in format f. TOML needs a top level
// table, see ToTOML.
func (l *List) Encode(w io.Writer, f format.Format, opts ...codec.EncodeOption) error {
	tree, err := l.ToOrdered()
	if err != nil {
		return err
	}
	return codec.Encode(w, f, tree, opts...)
}

func (l *List) Marshal(f format.Format, opts ...codec.EncodeOption) ([]byte, error) {
	return marshal(l, f, opts)
}

// ToJSON writes the list as a JSON array, or as JSON lines with
// codec.EncodeLines(true).
func (l *List) ToJSON(opts ...codec.EncodeOption) ([]byte, error) {
	return l.Marshal(format.JSONFormat, opts...)
}

func (l *List) ToYAML(opts ...codec.EncodeOption) ([]byte, error) {
	return l.Marshal(format.YAMLFormat, opts...)
}

// ToTOML writes the list as the array under key in a TOML document.
func (l *List) ToTOML(key string) ([]byte, error) {
	tree, err := l.ToOrdered()
	if err != nil {
		return nil, err
	}
	return codec.Marshal(format.TOMLFormat, codec.Map{{Key: key, Value: tree}})
}

func (l *List) ToMsgpack() ([]byte, error) {
	return l.Marshal(format.MsgpackFormat)
}

// ToCSV writes a list of flat boxes sharing the same keys as CSV with a
// header row.
func (l *List) ToCSV() ([]byte, error) {
	return l.Marshal(format.CSVFormat)
}

func (l *List) WriteFile(path string, f format.Format, opts ...codec.EncodeOption) error {
	return writeFile(l, path, f, opts)
}

func (l *List) ToJSONFile(path string, opts ...codec.EncodeOption) error {
	return l.WriteFile(path, format.JSONFormat, opts...)
}

func (l *List) ToYAMLFile(path string, opts ...codec.EncodeOption) error {
	return l.WriteFile(path, format.YAMLFormat, opts...)
}

func (l *List) ToMsgpackFile(path string) error {
	return l.WriteFile(path, format.MsgpackFormat)
}

func (l *List) ToCSVFile(path string) error {
	return l.WriteFile(path, format.CSVFormat)
}

type encoder interface {
	Encode(w io.Writer, f format.Format, opts ...codec.EncodeOption) error
}

func marshal(e encoder, f format.Format, opts []codec.EncodeOption) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := e.Encode(buf, f, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeFile(e encoder, path string, f format.Format, opts []codec.EncodeOption) error {
	d, err := marshal(e, f, opts)
	if err != nil {
		return err
	}
	return os.WriteFile(path, d, 0o644)
}

// Decode reads a box in format f from r. The payload must be a mapping.
func Decode(r io.Reader, f format.Format, opts ...Option) (*Box, error) {
	tree, err := codec.Decode(r, f)
	if err != nil {
		return nil, err
	}
	return boxFromTree(f, tree, opts)
}

func boxFromTree(f format.Format, tree any, opts []Option) (*Box, error) {
	m, ok := tree.(codec.Map)
	if !ok {
		return nil, &FormatError{Format: f, Want: "mapping", Got: codec.Kind(tree)}
	}
	cfg, err := makeConfig(opts)
	if err != nil {
		return nil, err
	}
	return build(cfg, m, nil, nil)
}

func FromJSON(data []byte, opts ...Option) (*Box, error) {
	return Decode(bytes.NewReader(data), format.JSONFormat, opts...)
}

func FromYAML(data []byte, opts ...Option) (*Box, error) {
	return Decode(bytes.NewReader(data), format.YAMLFormat, opts...)
}

func FromTOML(data []byte, opts ...Option) (*Box, error) {
	return Decode(bytes.NewReader(data), format.TOMLFormat, opts...)
}

func FromMsgpack(data []byte, opts ...Option) (*Box, error) {
	return Decode(bytes.NewReader(data), format.MsgpackFormat, opts...)
}

// DecodeList reads a list in format f from r. The payload must be a
// sequence; for TOML use ListFromTOML.
func DecodeList(r io.Reader, f format.Format, opts ...Option) (*List, error) {
	tree, err := codec.Decode(r, f)
	if err != nil {
		return nil, err
	}
	return listFromTree(f, tree, opts)
}

func listFromTree(f format.Format, tree any, opts []Option) (*List, error) {
	s, ok := tree.([]any)
	if !ok {
		return nil, &FormatError{Format: f, Want: "list", Got: codec.Kind(tree)}
	}
	return NewList(s, opts...)
}

func ListFromJSON(data []byte, opts ...Option) (*List, error) {
	return DecodeList(bytes.NewReader(data), format.JSONFormat, opts...)
}

// ListFromJSONLines reads one JSON value per line.
func ListFromJSONLines(data []byte, opts ...Option) (*List, error) {
	tree, err := codec.Unmarshal(format.JSONFormat, data, codec.DecodeLines(true))
	if err != nil {
		return nil, err
	}
	return listFromTree(format.JSONFormat, tree, opts)
}

func ListFromYAML(data []byte, opts ...Option) (*List, error) {
	return DecodeList(bytes.NewReader(data), format.YAMLFormat, opts...)
}

// ListFromTOML reads the array under key of a TOML document.
func ListFromTOML(data []byte, key string, opts ...Option) (*List, error) {
	tree, err := codec.Unmarshal(format.TOMLFormat, data)
	if err != nil {
		return nil, err
	}
	m, ok := tree.(codec.Map)
	if !ok {
		return nil, &FormatError{Format: format.TOMLFormat, Want: "mapping", Got: codec.Kind(tree)}
	}
	v, ok := m.Get(key)
	if !ok {
		return nil, &FormatError{Format: format.TOMLFormat, Want: "array under " + key, Got: "nothing"}
	}
	return listFromTree(format.TOMLFormat, v, opts)
}

func ListFromMsgpack(data []byte, opts ...Option) (*List, error) {
	return DecodeList(bytes.NewReader(data), format.MsgpackFormat, opts...)
}

// ListFromCSV reads CSV with a header row into a list of boxes whose
// values are all strings.
func ListFromCSV(data []byte, opts ...Option) (*List, error) {
	return DecodeList(bytes.NewReader(data), format.CSVFormat, opts...)
}
