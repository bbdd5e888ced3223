package codec

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/signadot/tony-format/box/format"
)

func encodeJSON(w io.Writer, v any, es *encState) error {
	if es.lines {
		return encodeJSONLines(w, v)
	}
	buf := bytes.NewBuffer(nil)
	if err := writeJSON(buf, v); err != nil {
		return fmt.Errorf("json: %w", err)
	}
	if es.indent > 0 {
		out := bytes.NewBuffer(nil)
		if err := json.Indent(out, buf.Bytes(), "", strings.Repeat(" ", es.indent)); err != nil {
			return fmt.Errorf("json: %w", err)
		}
		buf = out
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func encodeJSONLines(w io.Writer, v any) error {
	list, ok := v.([]any)
	if !ok {
		return &FormatError{Format: format.JSONFormat, Want: "list", Got: Kind(v)}
	}
	buf := bytes.NewBuffer(nil)
	for _, elt := range list {
		if err := writeJSON(buf, elt); err != nil {
			return fmt.Errorf("json: %w", err)
		}
		buf.WriteByte('\n')
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func decodeJSON(r io.Reader) (any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	v, err := decodeJSONValue(dec)
	if err != nil {
		return nil, formatErr(format.JSONFormat, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, formatErr(format.JSONFormat, errors.New("trailing data after value"))
	}
	return v, nil
}

func decodeJSONLines(r io.Reader) (any, error) {
	res := []any{}
	sc := bufio.NewScanner(r)
	sc.Buffer(nil, 64<<20)
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		v, err := decodeJSON(strings.NewReader(line))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
		res = append(res, v)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

// decodeJSONValue reads one value token by token so that object keys
// keep their order.
func decodeJSONValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	switch x := tok.(type) {
	case json.Delim:
		switch x {
		case '{':
			m := Map{}
			index := map[string]int{}
			for dec.More() {
				kt, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := kt.(string)
				if !ok {
					return nil, fmt.Errorf("unexpected object key %v", kt)
				}
				v, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				if i, ok := index[key]; ok {
					m[i].Value = v
					continue
				}
				index[key] = len(m)
				m = append(m, Item{Key: key, Value: v})
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return m, nil
		case '[':
			list := []any{}
			for dec.More() {
				v, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				list = append(list, v)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return list, nil
		}
		return nil, fmt.Errorf("unexpected delimiter %v", x)
	case json.Number:
		return number(x), nil
	}
	return tok, nil
}

func number(n json.Number) any {
	s := n.String()
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return int(i)
	}
	if u, err := strconv.ParseUint(s, 10, 64); err == nil {
		return u
	}
	f, err := n.Float64()
	if err != nil {
		return s
	}
	return f
}
