package codec

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"slices"
	"strings"

	"github.com/signadot/tony-format/box/debug"
	"github.com/signadot/tony-format/box/format"
	"github.com/signadot/tony-format/box/ident"
)

// Encode writes the plain tree v to w in format f.
func Encode(w io.Writer, f format.Format, v any, opts ...EncodeOption) error {
	es := encodeOpts(opts)
	if es.sorted {
		v = sortKeys(v)
	}
	if debug.Codec() {
		debug.Logf("encode %s %s\n", f, Kind(v))
	}
	switch f {
	case format.JSONFormat:
		return encodeJSON(w, v, es)
	case format.YAMLFormat:
		return encodeYAML(w, v, es)
	case format.TOMLFormat:
		return encodeTOML(w, v)
	case format.MsgpackFormat:
		return encodeMsgpack(w, v)
	case format.CSVFormat:
		return encodeCSV(w, v)
	}
	return fmt.Errorf("%w: %d", format.ErrBadFormat, f)
}

// Marshal is Encode into a byte slice.
func Marshal(f format.Format, v any, opts ...EncodeOption) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := Encode(buf, f, v, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode reads one plain tree in format f from r.
func Decode(r io.Reader, f format.Format, opts ...DecodeOption) (any, error) {
	ds := decodeOpts(opts)
	if debug.Codec() {
		debug.Logf("decode %s\n", f)
	}
	switch f {
	case format.JSONFormat:
		if ds.lines {
			return decodeJSONLines(r)
		}
		return decodeJSON(r)
	case format.YAMLFormat:
		return decodeYAML(r)
	case format.TOMLFormat:
		return decodeTOML(r)
	case format.MsgpackFormat:
		return decodeMsgpack(r)
	case format.CSVFormat:
		return decodeCSV(r)
	}
	return nil, fmt.Errorf("%w: %d", format.ErrBadFormat, f)
}

// Unmarshal is Decode from a byte slice.
func Unmarshal(f format.Format, data []byte, opts ...DecodeOption) (any, error) {
	return Decode(bytes.NewReader(data), f, opts...)
}

// scalar normalizes decoded numbers: integers become int, or uint64 when
// too large, and floats become float64.
func scalar(v any) any {
	switch x := v.(type) {
	case int8:
		return int(x)
	case int16:
		return int(x)
	case int32:
		return int(x)
	case int64:
		return int(x)
	case uint:
		return unsigned(uint64(x))
	case uint8:
		return int(x)
	case uint16:
		return int(x)
	case uint32:
		return int(x)
	case uint64:
		return unsigned(x)
	case float32:
		return float64(x)
	}
	return v
}

func unsigned(u uint64) any {
	if u <= math.MaxInt64 {
		return int(u)
	}
	return u
}

// mapKey makes a decoded key usable as a Go map key.
func mapKey(k any) any {
	switch x := k.(type) {
	case []byte:
		return string(x)
	case Map, []any:
		return ident.KeyString(plain(x))
	}
	return k
}

func sortKeys(v any) any {
	switch x := v.(type) {
	case Map:
		res := make(Map, len(x))
		for i, it := range x {
			res[i] = Item{Key: it.Key, Value: sortKeys(it.Value)}
		}
		slices.SortStableFunc(res, func(a, b Item) int {
			return strings.Compare(ident.KeyString(a.Key), ident.KeyString(b.Key))
		})
		return res
	case []any:
		res := make([]any, len(x))
		for i := range x {
			res[i] = sortKeys(x[i])
		}
		return res
	}
	return v
}
