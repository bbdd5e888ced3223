package box

import (
	"reflect"

	"github.com/signadot/tony-format/box/debug"
)

type defaultKind int

const (
	selfKind defaultKind = iota
	factoryKind
	prototypeKind
	constantKind
)

// Default describes the value produced for a missing key in default
// mode. The zero Default is SelfKind.
type Default struct {
	kind    defaultKind
	factory func() any
	value   any
}

// SelfKind produces an empty box with the same configuration. Writing
// into it stores it under the missing key.
func SelfKind() Default {
	return Default{kind: selfKind}
}

// Factory calls f for each missing key.
func Factory(f func() any) Default {
	return Default{kind: factoryKind, factory: f}
}

// Prototype produces a shallow copy of v for each missing key.
func Prototype(v any) Default {
	return Default{kind: prototypeKind, value: v}
}

// Constant produces v itself.
func Constant(v any) Default {
	return Default{kind: constantKind, value: v}
}

func (d Default) String() string {
	switch d.kind {
	case factoryKind:
		return "factory"
	case prototypeKind:
		return "prototype"
	case constantKind:
		return "constant"
	}
	return "self"
}

// synthesize returns the default value for key requested on b.
func (b *Box) synthesize(key any) any {
	d := b.cfg.Default
	switch d.kind {
	case factoryKind:
		return d.factory()
	case prototypeKind:
		return shallowCopy(d.value)
	case constantKind:
		return d.value
	}
	child := &Box{
		cfg:       b.cfg.child(),
		vals:      map[any]any{},
		converted: map[any]struct{}{},
		heritage:  &lineage{parent: b, key: key},
		created:   true,
	}
	if debug.Heritage() {
		debug.Logf("default box for %v\n", key)
	}
	return child
}

func shallowCopy(v any) any {
	switch x := v.(type) {
	case *Box:
		return x.Copy()
	case *List:
		return x.Copy()
	case Tuple:
		return append(Tuple(nil), x...)
	case []byte:
		return append([]byte(nil), x...)
	case nil:
		return nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		if rv.IsNil() {
			return v
		}
		res := reflect.MakeMapWithSize(rv.Type(), rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			res.SetMapIndex(iter.Key(), iter.Value())
		}
		return res.Interface()
	case reflect.Slice:
		if rv.IsNil() {
			return v
		}
		res := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
		reflect.Copy(res, rv)
		return res.Interface()
	}
	return v
}
