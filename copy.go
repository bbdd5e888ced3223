package box

import (
	"maps"
	"reflect"
	"slices"

	"github.com/signadot/tony-format/box/codec"
)

// Copy returns a new box with the same configuration and entries. Stored
// boxes and lists are shared, except that references to b itself refer
// to the copy.
func (b *Box) Copy() *Box {
	c := &Box{
		keys:      slices.Clone(b.keys),
		vals:      make(map[any]any, len(b.vals)),
		cfg:       b.cfg,
		converted: map[any]struct{}{},
		origin:    b.origin,
		created:   true,
	}
	for k, v := range b.vals {
		if v == any(b) {
			v = c
		}
		c.vals[k] = v
	}
	return c
}

// DeepCopy copies b and everything reachable from it. Shared and cyclic
// references are copied once, so the copy has the same shape.
func (b *Box) DeepCopy() *Box {
	return newCopier().box(b)
}

func (l *List) DeepCopy() *List {
	return newCopier().list(l)
}

// rawID identifies a Go map or slice by its storage.
type rawID struct {
	ptr uintptr
	typ reflect.Type
	n   int
}

type copier struct {
	memo map[any]any
}

func newCopier() *copier {
	return &copier{memo: map[any]any{}}
}

func (c *copier) box(b *Box) *Box {
	if v, ok := c.memo[b]; ok {
		return v.(*Box)
	}
	out := &Box{
		keys:      slices.Clone(b.keys),
		vals:      make(map[any]any, len(b.vals)),
		cfg:       b.cfg,
		converted: maps.Clone(b.converted),
		created:   true,
	}
	c.memo[b] = out
	for _, k := range b.keys {
		v := c.value(b.vals[k])
		out.vals[k] = v
		adopt(out, k, v)
	}
	return out
}

func (c *copier) list(l *List) *List {
	if v, ok := c.memo[l]; ok {
		return v.(*List)
	}
	out := &List{cfg: l.cfg, items: make([]any, len(l.items))}
	c.memo[l] = out
	for i, it := range l.items {
		v := c.value(it)
		out.items[i] = v
		adopt(out, nil, v)
	}
	return out
}

func (c *copier) value(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case *Box:
		return c.box(x)
	case *List:
		return c.list(x)
	case Tuple:
		out := make(Tuple, len(x))
		for i, e := range x {
			out[i] = c.value(e)
		}
		return out
	case codec.Map:
		out := make(codec.Map, len(x))
		for i, it := range x {
			out[i] = codec.Item{Key: it.Key, Value: c.value(it.Value)}
		}
		return out
	case []byte:
		return slices.Clone(x)
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		if rv.IsNil() {
			return v
		}
		id := rawID{ptr: rv.Pointer(), typ: rv.Type()}
		if m, ok := c.memo[id]; ok {
			return m
		}
		out := reflect.MakeMapWithSize(rv.Type(), rv.Len())
		c.memo[id] = out.Interface()
		iter := rv.MapRange()
		for iter.Next() {
			out.SetMapIndex(iter.Key(), valueOf(c.value(iter.Value().Interface()), rv.Type().Elem()))
		}
		return out.Interface()
	case reflect.Slice:
		if rv.IsNil() || rv.Len() == 0 {
			return v
		}
		id := rawID{ptr: rv.Pointer(), typ: rv.Type(), n: rv.Len()}
		if s, ok := c.memo[id]; ok {
			return s
		}
		out := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
		c.memo[id] = out.Interface()
		for i := range rv.Len() {
			out.Index(i).Set(valueOf(c.value(rv.Index(i).Interface()), rv.Type().Elem()))
		}
		return out.Interface()
	}
	return v
}

// valueOf returns v as a reflect.Value assignable to t.
func valueOf(v any, t reflect.Type) reflect.Value {
	if v == nil {
		return reflect.Zero(t)
	}
	return reflect.ValueOf(v)
}
