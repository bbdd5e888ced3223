package box

import (
	"fmt"
	"reflect"

	"github.com/signadot/tony-format/box/codec"
	"github.com/signadot/tony-format/box/debug"
)

// convert returns the stored value under key, wrapping raw maps and
// slices on first access and storing the wrapped value back.
func (b *Box) convert(key, raw any) (any, error) {
	if _, ok := b.converted[key]; ok {
		return raw, nil
	}
	v, changed, err := b.wrap(key, raw)
	if err != nil {
		return nil, err
	}
	if changed {
		if debug.Convert() {
			debug.Logf("converted %v: %s -> %s\n", key, fmt.Sprintf("%T", raw), fmt.Sprintf("%T", v))
		}
		b.vals[key] = v
	}
	b.converted[key] = struct{}{}
	return v, nil
}

// wrap returns the container form of raw, or raw itself if it needs no
// wrapping. The second result is whether anything changed.
func (b *Box) wrap(key, raw any) (any, bool, error) {
	if raw == nil || b.cfg.intact(raw) {
		return raw, false, nil
	}
	switch x := raw.(type) {
	case *Box, *List, string, []byte:
		return raw, false, nil
	case Tuple:
		if !b.cfg.ModifyTuples {
			return raw, false, nil
		}
		t, err := b.tuple(key, x)
		return t, err == nil, err
	case codec.Map:
		c, err := b.childBox(key, x)
		return c, err == nil, err
	}
	rv := reflect.ValueOf(raw)
	switch rv.Kind() {
	case reflect.Map:
		c, err := b.childBox(key, raw)
		return c, err == nil, err
	case reflect.Slice:
		if b.cfg.Frozen {
			t, err := b.tuple(key, raw)
			return t, err == nil, err
		}
		if up := ancestor(b, identity(raw)); up != nil {
			return up, true, nil
		}
		l, err := newList(b.cfg.child(), raw, &link{to: b, key: key})
		if err != nil {
			return nil, false, err
		}
		return l, true, nil
	case reflect.Array:
		if b.cfg.ModifyTuples {
			t, err := b.tuple(key, raw)
			return t, err == nil, err
		}
	}
	return raw, false, nil
}

func (b *Box) childBox(key, src any) (any, error) {
	if up := ancestor(b, identity(src)); up != nil {
		return up, nil
	}
	return build(b.cfg.child(), src, nil, &link{to: b, key: key})
}

// tuple rebuilds a sequence as a Tuple whose mappings are boxes and whose
// nested sequences are tuples. A sequence containing itself fails with
// ErrCycle.
func (b *Box) tuple(key, src any) (Tuple, error) {
	return b.tupleIn(key, src, map[rawID]bool{})
}

func (b *Box) tupleIn(key, src any, active map[rawID]bool) (Tuple, error) {
	rv := reflect.ValueOf(src)
	if id := identity(src); id != 0 {
		k := rawID{ptr: id, typ: rv.Type(), n: rv.Len()}
		if active[k] {
			return nil, fmt.Errorf("%w: sequence under %s contains itself", ErrCycle, quoteKey(key))
		}
		active[k] = true
		defer delete(active, k)
	}
	res := make(Tuple, rv.Len())
	for i := range res {
		e := rv.Index(i).Interface()
		switch {
		case e == nil || b.cfg.intact(e):
		case isMapping(e):
			if _, ok := e.(*Box); ok {
				break
			}
			c, err := b.childBox(key, e)
			if err != nil {
				return nil, err
			}
			e = c
		case isSequence(e):
			if _, ok := e.(*List); ok {
				break
			}
			t, err := b.tupleIn(key, e, active)
			if err != nil {
				return nil, err
			}
			e = t
		}
		res[i] = e
	}
	return res, nil
}

func isMapping(v any) bool {
	switch v.(type) {
	case *Box, codec.Map:
		return true
	case nil:
		return false
	}
	return reflect.ValueOf(v).Kind() == reflect.Map
}

func isSequence(v any) bool {
	switch v.(type) {
	case *List, Tuple:
		return true
	case nil, string, []byte:
		return false
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Slice, reflect.Array:
		return true
	}
	return false
}

// ancestor returns the first container from start upward built from the
// raw value with the given identity.
func ancestor(start container, id uintptr) container {
	if id == 0 {
		return nil
	}
	for c := start; c != nil; {
		if c.originID() == id {
			return c
		}
		l := c.up()
		if l == nil {
			return nil
		}
		c = l.to
	}
	return nil
}
