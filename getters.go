package box

import (
	"errors"

	"github.com/signadot/tony-format/box/recast"
)

// configValue looks up key for a typed getter: attribute names resolve as in
// Attr, and defaults are never synthesized.
func (b *Box) configValue(key any) (any, error) {
	if s, ok := key.(string); ok {
		if k, ok := b.resolve(s); ok {
			key = k
		}
	}
	return b.lookup(key, false, true)
}

func getAs[T any](b *Box, key any, conv recast.Func, def []T) (T, error) {
	var zero T
	v, err := b.configValue(key)
	if err != nil {
		if len(def) > 0 && errors.Is(err, ErrKeyNotFound) {
			return def[0], nil
		}
		return zero, err
	}
	r, err := conv(v)
	if err != nil {
		return zero, &RecastError{Key: key, Err: err}
	}
	return r.(T), nil
}

// GetBool returns the value under key as a bool, see recast.Bool. The
// optional default is returned when key is missing.
func (b *Box) GetBool(key any, def ...bool) (bool, error) {
	return getAs(b, key, recast.Bool, def)
}

func (b *Box) GetInt(key any, def ...int) (int, error) {
	return getAs(b, key, recast.Int, def)
}

func (b *Box) GetFloat(key any, def ...float64) (float64, error) {
	return getAs(b, key, recast.Float, def)
}

func (b *Box) GetString(key any, def ...string) (string, error) {
	return getAs(b, key, recast.String, def)
}

// GetList splits the text under key on sep, or returns the elements of
// the list under key, applying mod to each element if non-nil.
func (b *Box) GetList(key any, sep string, mod recast.Func, def ...[]any) ([]any, error) {
	v, err := b.configValue(key)
	if err != nil {
		if len(def) > 0 && errors.Is(err, ErrKeyNotFound) {
			return def[0], nil
		}
		return nil, err
	}
	if l, ok := v.(*List); ok {
		v = l.Values()
	}
	r, err := recast.List(sep, mod)(v)
	if err != nil {
		return nil, &RecastError{Key: key, Err: err}
	}
	return r.([]any), nil
}
