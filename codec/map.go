package codec

import (
	"bytes"
	"encoding/json"

	"github.com/goccy/go-yaml"
	"github.com/signadot/tony-format/box/ident"
	"github.com/vmihailenco/msgpack/v5"
)

type Item struct {
	Key   any
	Value any
}

// Map is an insertion ordered mapping.
type Map []Item

// Get returns the value stored under key.
func (m Map) Get(key any) (any, bool) {
	for i := range m {
		if m[i].Key == key {
			return m[i].Value, true
		}
	}
	return nil, false
}

// Set replaces the value under key in place, or appends a new item.
func (m *Map) Set(key, value any) {
	for i := range *m {
		if (*m)[i].Key == key {
			(*m)[i].Value = value
			return
		}
	}
	*m = append(*m, Item{Key: key, Value: value})
}

func (m Map) Keys() []any {
	res := make([]any, len(m))
	for i := range m {
		res[i] = m[i].Key
	}
	return res
}

// Plain converts m and everything below it to map[string]any, rendering
// keys as text. Order is lost.
func (m Map) Plain() map[string]any {
	res := make(map[string]any, len(m))
	for _, it := range m {
		res[ident.KeyString(it.Key)] = plain(it.Value)
	}
	return res
}

func plain(v any) any {
	switch x := v.(type) {
	case Map:
		return x.Plain()
	case []any:
		res := make([]any, len(x))
		for i := range x {
			res[i] = plain(x[i])
		}
		return res
	}
	return v
}

func (m Map) MarshalJSON() ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	buf.WriteByte('{')
	for i, it := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSON(buf, ident.KeyString(it.Key)); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := writeJSON(buf, it.Value); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, v any) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	// Encoder terminates each value with a newline.
	buf.Truncate(buf.Len() - 1)
	return nil
}

func (m Map) MarshalYAML() (any, error) {
	return toYAML(m), nil
}

func toYAML(v any) any {
	switch x := v.(type) {
	case Map:
		res := make(yaml.MapSlice, len(x))
		for i, it := range x {
			res[i] = yaml.MapItem{Key: it.Key, Value: toYAML(it.Value)}
		}
		return res
	case []any:
		res := make([]any, len(x))
		for i := range x {
			res[i] = toYAML(x[i])
		}
		return res
	}
	return v
}

var _ msgpack.CustomEncoder = Map(nil)

func (m Map) EncodeMsgpack(enc *msgpack.Encoder) error {
	if err := enc.EncodeMapLen(len(m)); err != nil {
		return err
	}
	for _, it := range m {
		if err := enc.Encode(it.Key); err != nil {
			return err
		}
		if err := enc.Encode(it.Value); err != nil {
			return err
		}
	}
	return nil
}
