package codec

import (
	"errors"
	"fmt"
	"io"
	"reflect"

	"github.com/signadot/tony-format/box/format"
	"github.com/vmihailenco/msgpack/v5"
	"github.com/vmihailenco/msgpack/v5/msgpcode"
)

func encodeMsgpack(w io.Writer, v any) error {
	enc := msgpack.NewEncoder(w)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("msgpack: %w", err)
	}
	return nil
}

func decodeMsgpack(r io.Reader) (any, error) {
	dec := msgpack.NewDecoder(r)
	v, err := decodeMsgpackValue(dec)
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return nil, formatErr(format.MsgpackFormat, err)
	}
	return v, nil
}

// decodeMsgpackValue walks maps and arrays itself so that map entries
// keep their encoded order.
func decodeMsgpackValue(dec *msgpack.Decoder) (any, error) {
	c, err := dec.PeekCode()
	if err != nil {
		return nil, err
	}
	switch {
	case msgpcode.IsFixedMap(c), c == msgpcode.Map16, c == msgpcode.Map32:
		n, err := dec.DecodeMapLen()
		if err != nil {
			return nil, err
		}
		m := make(Map, 0, max(n, 0))
		for range n {
			k, err := decodeMsgpackValue(dec)
			if err != nil {
				return nil, err
			}
			k = mapKey(k)
			if k != nil && !reflect.TypeOf(k).Comparable() {
				return nil, fmt.Errorf("unusable map key of type %T", k)
			}
			v, err := decodeMsgpackValue(dec)
			if err != nil {
				return nil, err
			}
			m.Set(k, v)
		}
		return m, nil
	case msgpcode.IsFixedArray(c), c == msgpcode.Array16, c == msgpcode.Array32:
		n, err := dec.DecodeArrayLen()
		if err != nil {
			return nil, err
		}
		list := make([]any, 0, max(n, 0))
		for range n {
			v, err := decodeMsgpackValue(dec)
			if err != nil {
				return nil, err
			}
			list = append(list, v)
		}
		return list, nil
	}
	v, err := dec.DecodeInterfaceLoose()
	if err != nil {
		return nil, err
	}
	return scalar(v), nil
}
