package codec

import (
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
	"github.com/signadot/tony-format/box/format"
)

// encodeTOML writes a mapping as a TOML document. TOML has no null, so
// nil values are left out.
func encodeTOML(w io.Writer, v any) error {
	m, ok := v.(Map)
	if !ok {
		return &FormatError{Format: format.TOMLFormat, Want: "mapping", Got: Kind(v)}
	}
	d, err := toml.Marshal(stripNil(m.Plain()))
	if err != nil {
		return fmt.Errorf("toml: %w", err)
	}
	_, err = w.Write(d)
	return err
}

func stripNil(v any) any {
	switch x := v.(type) {
	case map[string]any:
		for k, e := range x {
			if e == nil {
				delete(x, k)
				continue
			}
			x[k] = stripNil(e)
		}
	case []any:
		for i := range x {
			x[i] = stripNil(x[i])
		}
	}
	return v
}

// decodeTOML reads a TOML document. Keys of each table come out sorted.
func decodeTOML(r io.Reader) (any, error) {
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var v map[string]any
	if err := toml.Unmarshal(d, &v); err != nil {
		return nil, formatErr(format.TOMLFormat, err)
	}
	if v == nil {
		return Map{}, nil
	}
	return fromTOML(v), nil
}

func fromTOML(v any) any {
	switch x := v.(type) {
	case map[string]any:
		m := make(Map, 0, len(x))
		for k, e := range x {
			m = append(m, Item{Key: k, Value: fromTOML(e)})
		}
		return sortKeys(m)
	case []any:
		res := make([]any, len(x))
		for i := range x {
			res[i] = fromTOML(x[i])
		}
		return res
	case []map[string]any:
		res := make([]any, len(x))
		for i := range x {
			res[i] = fromTOML(x[i])
		}
		return res
	}
	return scalar(v)
}
