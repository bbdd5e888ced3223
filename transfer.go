package box

import (
	"encoding"
	"encoding/json"
	"fmt"

	"github.com/signadot/tony-format/box/codec"
	"github.com/signadot/tony-format/box/format"
	"github.com/signadot/tony-format/box/ident"
)

var (
	_ encoding.BinaryMarshaler   = (*Box)(nil)
	_ encoding.BinaryUnmarshaler = (*Box)(nil)
	_ json.Marshaler             = (*Box)(nil)
	_ json.Unmarshaler           = (*Box)(nil)
	_ encoding.BinaryMarshaler   = (*List)(nil)
	_ encoding.BinaryUnmarshaler = (*List)(nil)
	_ json.Marshaler             = (*List)(nil)
	_ json.Unmarshaler           = (*List)(nil)
)

// MarshalBinary encodes the box and its configuration as msgpack, so
// that a box survives encoding/gob and similar transfers. Function
// valued settings (factories, recasts, hooks, loggers, intact types) are
// not carried over.
func (b *Box) MarshalBinary() ([]byte, error) {
	data, err := b.ToOrdered()
	if err != nil {
		return nil, err
	}
	return codec.Marshal(format.MsgpackFormat, codec.Map{
		{Key: "config", Value: configTree(b.cfg)},
		{Key: "data", Value: data},
	})
}

func (b *Box) UnmarshalBinary(d []byte) error {
	cfg, data, err := unmarshalTransfer(d)
	if err != nil {
		return err
	}
	m, ok := data.(codec.Map)
	if !ok {
		return &FormatError{Format: format.MsgpackFormat, Want: "mapping", Got: codec.Kind(data)}
	}
	nb, err := build(cfg, m, nil, nil)
	if err != nil {
		return err
	}
	*b = *nb
	b.adoptAll()
	return nil
}

func (l *List) MarshalBinary() ([]byte, error) {
	data, err := l.ToOrdered()
	if err != nil {
		return nil, err
	}
	return codec.Marshal(format.MsgpackFormat, codec.Map{
		{Key: "config", Value: configTree(l.cfg)},
		{Key: "data", Value: data},
	})
}

func (l *List) UnmarshalBinary(d []byte) error {
	cfg, data, err := unmarshalTransfer(d)
	if err != nil {
		return err
	}
	s, ok := data.([]any)
	if !ok {
		return &FormatError{Format: format.MsgpackFormat, Want: "list", Got: codec.Kind(data)}
	}
	nl, err := newList(cfg, s, nil)
	if err != nil {
		return err
	}
	*l = *nl
	l.adoptAll()
	return nil
}

func unmarshalTransfer(d []byte) (*Config, any, error) {
	tree, err := codec.Unmarshal(format.MsgpackFormat, d)
	if err != nil {
		return nil, nil, err
	}
	m, ok := tree.(codec.Map)
	if !ok {
		return nil, nil, &FormatError{Format: format.MsgpackFormat, Want: "mapping", Got: codec.Kind(tree)}
	}
	ct, _ := m.Get("config")
	cfg, err := configFromTree(ct)
	if err != nil {
		return nil, nil, err
	}
	data, _ := m.Get("data")
	return cfg, data, nil
}

// adoptAll relinks the children of a box that was copied by value.
func (b *Box) adoptAll() {
	for _, k := range b.keys {
		adopt(b, k, b.vals[k])
	}
}

func (l *List) adoptAll() {
	for _, it := range l.items {
		adopt(l, nil, it)
	}
}

func configTree(c *Config) codec.Map {
	m := codec.Map{
		{Key: "default_box", Value: c.DefaultBox},
		{Key: "none_transform", Value: c.NoneTransform},
		{Key: "conversion", Value: c.Conversion},
		{Key: "safe_prefix", Value: c.SafePrefix},
		{Key: "frozen", Value: c.Frozen},
		{Key: "camel_killer", Value: c.CamelKiller},
		{Key: "modify_tuples", Value: c.ModifyTuples},
		{Key: "duplicates", Value: c.Duplicates.String()},
		{Key: "dots", Value: c.Dots},
		{Key: "no_propagate", Value: c.NoPropagate},
	}
	switch c.Default.kind {
	case constantKind:
		if isScalar(c.Default.value) {
			m = append(m, codec.Item{Key: "default", Value: c.Default.value})
		}
	}
	return m
}

func configFromTree(v any) (*Config, error) {
	cfg := DefaultConfig()
	m, ok := v.(codec.Map)
	if !ok {
		return &cfg, nil
	}
	flags := map[string]*bool{
		"default_box":    &cfg.DefaultBox,
		"none_transform": &cfg.NoneTransform,
		"conversion":     &cfg.Conversion,
		"frozen":         &cfg.Frozen,
		"camel_killer":   &cfg.CamelKiller,
		"modify_tuples":  &cfg.ModifyTuples,
		"dots":           &cfg.Dots,
		"no_propagate":   &cfg.NoPropagate,
	}
	for _, it := range m {
		k, _ := it.Key.(string)
		if p, ok := flags[k]; ok {
			b, ok := it.Value.(bool)
			if !ok {
				return nil, &FormatError{Format: format.MsgpackFormat, Want: "bool for " + k, Got: codec.Kind(it.Value)}
			}
			*p = b
			continue
		}
		switch k {
		case "safe_prefix":
			s, ok := it.Value.(string)
			if !ok {
				return nil, &FormatError{Format: format.MsgpackFormat, Want: "string for " + k, Got: codec.Kind(it.Value)}
			}
			cfg.SafePrefix = s
		case "duplicates":
			s, _ := it.Value.(string)
			p, err := ident.ParsePolicy(s)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrFormat, err)
			}
			cfg.Duplicates = p
		case "default":
			cfg.Default = Constant(it.Value)
		}
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func isScalar(v any) bool {
	switch v.(type) {
	case nil, bool, string, int, int64, uint64, float64:
		return true
	}
	return false
}

// MarshalJSON writes the entries of the box in key order.
func (b *Box) MarshalJSON() ([]byte, error) {
	return b.Marshal(format.JSONFormat)
}

// UnmarshalJSON replaces the entries of the box with a JSON object. A
// zero Box gets the default configuration.
func (b *Box) UnmarshalJSON(d []byte) error {
	tree, err := codec.Unmarshal(format.JSONFormat, d)
	if err != nil {
		return err
	}
	m, ok := tree.(codec.Map)
	if !ok {
		return &FormatError{Format: format.JSONFormat, Want: "mapping", Got: codec.Kind(tree)}
	}
	cfg := b.cfg
	if cfg == nil {
		c := DefaultConfig()
		cfg = &c
	}
	nb, err := build(cfg, m, nil, nil)
	if err != nil {
		return err
	}
	parent := b.parent
	*b = *nb
	b.parent = parent
	b.adoptAll()
	return nil
}

// MarshalYAML lets YAML encoders write the box in key order.
func (b *Box) MarshalYAML() (any, error) {
	return b.ToOrdered()
}

func (l *List) MarshalJSON() ([]byte, error) {
	return l.Marshal(format.JSONFormat)
}

func (l *List) UnmarshalJSON(d []byte) error {
	tree, err := codec.Unmarshal(format.JSONFormat, d)
	if err != nil {
		return err
	}
	s, ok := tree.([]any)
	if !ok {
		return &FormatError{Format: format.JSONFormat, Want: "list", Got: codec.Kind(tree)}
	}
	cfg := l.cfg
	if cfg == nil {
		c := DefaultConfig()
		cfg = &c
	}
	nl, err := newList(cfg, s, nil)
	if err != nil {
		return err
	}
	parent := l.parent
	*l = *nl
	l.parent = parent
	l.adoptAll()
	return nil
}

func (l *List) MarshalYAML() (any, error) {
	return l.ToOrdered()
}
