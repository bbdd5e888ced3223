package codec

import (
	"errors"
	"fmt"

	"github.com/signadot/tony-format/box/format"
)

var (
	ErrFormat = errors.New("format error")
	ErrCycle  = errors.New("cyclic structure cannot be encoded")
)

// FormatError reports a payload whose decoded shape is not the one
// required, such as a list where a mapping was expected.
type FormatError struct {
	Format format.Format
	Want   string
	Got    string
	Err    error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Format, e.Err)
	}
	return fmt.Sprintf("%s: expected %s, got %s", e.Format, e.Want, e.Got)
}

func (e *FormatError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrFormat, e.Err}
	}
	return []error{ErrFormat}
}

func formatErr(f format.Format, err error) error {
	return &FormatError{Format: f, Err: err}
}

// Kind names the shape of a tree value for error messages.
func Kind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case Map:
		return "mapping"
	case []any:
		return "list"
	case string:
		return "string"
	case bool:
		return "bool"
	case int, uint64, float64:
		return "number"
	case []byte:
		return "bytes"
	}
	return fmt.Sprintf("%T", v)
}
