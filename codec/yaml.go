package codec

import (
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
	"github.com/signadot/tony-format/box/format"
)

func encodeYAML(w io.Writer, v any, es *encState) error {
	var opts []yaml.EncodeOption
	if es.indent > 0 {
		opts = append(opts, yaml.Indent(es.indent))
	}
	d, err := yaml.MarshalWithOptions(toYAML(v), opts...)
	if err != nil {
		return fmt.Errorf("yaml: %w", err)
	}
	_, err = w.Write(d)
	return err
}

func decodeYAML(r io.Reader) (any, error) {
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var v any
	if err := yaml.UnmarshalWithOptions(d, &v, yaml.UseOrderedMap()); err != nil {
		return nil, formatErr(format.YAMLFormat, err)
	}
	return fromYAML(v), nil
}

func fromYAML(v any) any {
	switch x := v.(type) {
	case yaml.MapSlice:
		m := make(Map, 0, len(x))
		for _, it := range x {
			m.Set(mapKey(fromYAML(it.Key)), fromYAML(it.Value))
		}
		return m
	case map[string]any:
		m := make(Map, 0, len(x))
		for k, v := range x {
			m.Set(k, fromYAML(v))
		}
		return sortKeys(m)
	case []any:
		res := make([]any, len(x))
		for i := range x {
			res[i] = fromYAML(x[i])
		}
		return res
	}
	return scalar(v)
}
