package box

import (
	"fmt"
	"io"
	"os"

	"github.com/signadot/tony-format/box/codec"
	"github.com/signadot/tony-format/box/format"
)

// Container is what FromFile returns: a *Box or a *List.
type Container interface {
	Len() int
	Equal(other any) bool
	Hash() (uint64, error)
	BoxItUp() error
	Encode(w io.Writer, f format.Format, opts ...codec.EncodeOption) error
	String() string
}

var (
	_ Container = (*Box)(nil)
	_ Container = (*List)(nil)
)

// FromFile loads path, choosing the format from its extension. A
// mapping payload gives a *Box and a sequence a *List.
func FromFile(path string, opts ...Option) (Container, error) {
	f, err := format.FromPath(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFormat, err)
	}
	return FromFileAs(path, f, opts...)
}

// FromFileAs is FromFile with an explicit format.
func FromFileAs(path string, f format.Format, opts ...Option) (Container, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFormat, err)
	}
	defer fh.Close()
	tree, err := codec.Decode(fh, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	switch x := tree.(type) {
	case codec.Map:
		return boxFromTree(f, x, opts)
	case []any:
		return NewList(x, opts...)
	}
	return nil, &FormatError{Format: f, Want: "mapping or list", Got: codec.Kind(tree)}
}
