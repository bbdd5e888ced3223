package box

import (
	"bytes"
	"reflect"

	"github.com/signadot/tony-format/box/codec"
)

// Equal reports whether b and other hold equal entries. other may be a
// *Box, a codec.Map or any Go map; key order is not compared. Nested
// values compare structurally, with numbers compared by value.
func (b *Box) Equal(other any) bool {
	return equal(b, other, map[pairID]bool{})
}

// Equal reports whether l and other hold equal elements in the same
// order. other may be a *List, a Tuple or any Go slice or array.
func (l *List) Equal(other any) bool {
	return equal(l, other, map[pairID]bool{})
}

// pairID is a pair of container identities under comparison.
type pairID struct {
	a, b uintptr
}

// mapping is a read only view of a box or a raw map.
type mapping interface {
	length() int
	keyList() []any
	lookup(k any) (any, bool)
}

type boxView struct{ *Box }

func (v boxView) length() int    { return len(v.keys) }
func (v boxView) keyList() []any { return v.keys }
func (v boxView) lookup(k any) (any, bool) {
	if checkKey(k) != nil {
		return nil, false
	}
	if _, ok := v.vals[k]; !ok {
		return nil, false
	}
	return v.value(k), true
}

type orderedView codec.Map

func (v orderedView) length() int { return len(v) }
func (v orderedView) keyList() []any {
	res := make([]any, len(v))
	for i, it := range v {
		res[i] = it.Key
	}
	return res
}
func (v orderedView) lookup(k any) (any, bool) {
	return codec.Map(v).Get(k)
}

type reflectView struct{ reflect.Value }

func (v reflectView) length() int { return v.Len() }
func (v reflectView) keyList() []any {
	keys := v.MapKeys()
	res := make([]any, len(keys))
	for i, k := range keys {
		res[i] = k.Interface()
	}
	return res
}
func (v reflectView) lookup(k any) (any, bool) {
	if k == nil || checkKey(k) != nil {
		return nil, false
	}
	kv := reflect.ValueOf(k)
	kt := v.Type().Key()
	if !kv.Type().AssignableTo(kt) {
		return nil, false
	}
	res := v.MapIndex(kv)
	if !res.IsValid() {
		return nil, false
	}
	return res.Interface(), true
}

func asMapping(v any) (mapping, bool) {
	switch x := v.(type) {
	case nil:
		return nil, false
	case *Box:
		if x == nil {
			return nil, false
		}
		return boxView{x}, true
	case codec.Map:
		return orderedView(x), true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Map {
		return reflectView{rv}, true
	}
	return nil, false
}

func asSequence(v any) ([]any, bool) {
	switch x := v.(type) {
	case nil, string, []byte:
		return nil, false
	case *List:
		if x == nil {
			return nil, false
		}
		return x.items, true
	case Tuple:
		return x, true
	case []any:
		return x, true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		res := make([]any, rv.Len())
		for i := range res {
			res[i] = rv.Index(i).Interface()
		}
		return res, true
	}
	return nil, false
}

func equal(a, b any, seen map[pairID]bool) bool {
	if ma, ok := asMapping(a); ok {
		mb, ok := asMapping(b)
		if !ok || ma.length() != mb.length() {
			return false
		}
		if id := (pairID{identity(a), identity(b)}); id.a != 0 && id.b != 0 {
			if seen[id] {
				return true
			}
			seen[id] = true
		}
		for _, k := range ma.keyList() {
			va, _ := ma.lookup(k)
			vb, ok := mb.lookup(k)
			if !ok || !equal(va, vb, seen) {
				return false
			}
		}
		return true
	}
	if sa, ok := asSequence(a); ok {
		sb, ok := asSequence(b)
		if !ok || len(sa) != len(sb) {
			return false
		}
		if id := (pairID{identity(a), identity(b)}); id.a != 0 && id.b != 0 {
			if seen[id] {
				return true
			}
			seen[id] = true
		}
		for i := range sa {
			if !equal(sa[i], sb[i], seen) {
				return false
			}
		}
		return true
	}
	if _, ok := asMapping(b); ok {
		return false
	}
	if _, ok := asSequence(b); ok {
		return false
	}
	return scalarEqual(a, b)
}

func scalarEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if ia, ok := integer(a); ok {
		if ib, ok := integer(b); ok {
			return ia == ib
		}
	}
	if fa, ok := numeric(a); ok {
		fb, ok := numeric(b)
		return ok && fa == fb
	}
	if ba, ok := a.([]byte); ok {
		bb, ok := b.([]byte)
		return ok && bytes.Equal(ba, bb)
	}
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	if reflect.ValueOf(a).Comparable() {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}
