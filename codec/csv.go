package codec

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/signadot/tony-format/box/format"
	"github.com/signadot/tony-format/box/ident"
)

// encodeCSV writes a list of flat mappings sharing one key set. The
// header follows the first row's key order.
func encodeCSV(w io.Writer, v any) error {
	rows, ok := v.([]any)
	if !ok {
		return &FormatError{Format: format.CSVFormat, Want: "list of mappings", Got: Kind(v)}
	}
	cw := csv.NewWriter(w)
	var header []any
	for i, r := range rows {
		row, ok := r.(Map)
		if !ok {
			return &FormatError{Format: format.CSVFormat, Want: "mapping row", Got: Kind(r)}
		}
		if i == 0 {
			header = row.Keys()
			names := make([]string, len(header))
			for j, k := range header {
				names[j] = ident.KeyString(k)
			}
			if err := cw.Write(names); err != nil {
				return err
			}
		}
		if len(row) != len(header) {
			return formatErr(format.CSVFormat, fmt.Errorf("row %d has %d fields, header has %d", i, len(row), len(header)))
		}
		rec := make([]string, len(header))
		for j, k := range header {
			cell, ok := row.Get(k)
			if !ok {
				return formatErr(format.CSVFormat, fmt.Errorf("row %d lacks field %q", i, ident.KeyString(k)))
			}
			switch cell.(type) {
			case Map, []any:
				return formatErr(format.CSVFormat, fmt.Errorf("row %d field %q is not flat", i, ident.KeyString(k)))
			case nil:
			default:
				rec[j] = ident.KeyString(cell)
			}
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// decodeCSV reads a header line followed by rows into a list of
// mappings with string values.
func decodeCSV(r io.Reader) (any, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return []any{}, nil
	}
	if err != nil {
		return nil, formatErr(format.CSVFormat, err)
	}
	header = slices.Clone(header)
	res := []any{}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, formatErr(format.CSVFormat, err)
		}
		row := make(Map, 0, len(header))
		for i, name := range header {
			row.Set(name, rec[i])
		}
		res = append(res, row)
	}
	return res, nil
}
