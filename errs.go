package box

import (
	"errors"
	"fmt"

	"github.com/signadot/tony-format/box/codec"
	"github.com/signadot/tony-format/box/dotpath"
	"github.com/signadot/tony-format/box/ident"
)

var (
	ErrConstruction = errors.New("invalid box construction")
	ErrKeyNotFound  = errors.New("key not found")
	ErrAttrNotFound = errors.New("attribute not found")
	ErrFrozen       = errors.New("box is frozen")
	ErrRecast       = errors.New("recast failed")
	ErrUnhashable   = errors.New("unhashable")
	ErrProtected    = errors.New("protected attribute")
	ErrIndex        = errors.New("index out of range")
	ErrValue        = errors.New("value not in list")
	ErrType         = errors.New("unexpected value type")

	ErrDuplicateKey = ident.ErrDuplicateKey
	ErrFormat       = codec.ErrFormat
	ErrCycle        = codec.ErrCycle
	ErrPath         = dotpath.ErrSyntax
)

type (
	DuplicateError = ident.DuplicateError
	FormatError    = codec.FormatError
)

// KeyError reports a missing key or attribute. It matches both
// ErrKeyNotFound and ErrAttrNotFound.
type KeyError struct {
	Key  any
	Attr bool
}

func (e *KeyError) Error() string {
	if e.Attr {
		return fmt.Sprintf("attribute %q not found", ident.KeyString(e.Key))
	}
	return fmt.Sprintf("key %s not found", quoteKey(e.Key))
}

func (e *KeyError) Is(target error) bool {
	return target == ErrKeyNotFound || target == ErrAttrNotFound
}

// RecastError wraps the failure of a recast function. It matches
// ErrRecast and the function's own error.
type RecastError struct {
	Key any
	Err error
}

func (e *RecastError) Error() string {
	return fmt.Sprintf("recast of %s: %v", quoteKey(e.Key), e.Err)
}

func (e *RecastError) Unwrap() []error {
	return []error{ErrRecast, e.Err}
}

// TypeError reports a value of the wrong kind at Key.
type TypeError struct {
	Key      any
	Expected string
	Actual   string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("type error at %s: expected %s, got %s", quoteKey(e.Key), e.Expected, e.Actual)
}

func (e *TypeError) Unwrap() error {
	return ErrType
}

func quoteKey(k any) string {
	if s, ok := k.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprintf("%v", k)
}

func frozenErr(op string) error {
	return fmt.Errorf("%w: cannot %s", ErrFrozen, op)
}
