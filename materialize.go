package box

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/signadot/tony-format/box/codec"
	"github.com/signadot/tony-format/box/ident"
)

// ToMap returns the box as plain Go values: map[string]any for
// mappings, with keys rendered as text, and []any for sequences. A
// container reachable from itself maps to a value reachable from itself.
func (b *Box) ToMap() map[string]any {
	return newPlainer(b.cfg).box(b)
}

// ToList is ToMap for lists.
func (l *List) ToList() []any {
	return newPlainer(l.cfg).list(l)
}

type plainer struct {
	cfg  *Config
	memo map[any]any
}

func newPlainer(cfg *Config) *plainer {
	return &plainer{cfg: cfg, memo: map[any]any{}}
}

func (p *plainer) box(b *Box) map[string]any {
	if m, ok := p.memo[b]; ok {
		return m.(map[string]any)
	}
	res := make(map[string]any, len(b.keys))
	p.memo[b] = res
	for _, k := range b.keys {
		res[ident.KeyString(k)] = p.value(b.value(k))
	}
	return res
}

func (p *plainer) list(l *List) []any {
	if s, ok := p.memo[l]; ok {
		return s.([]any)
	}
	res := make([]any, len(l.items))
	p.memo[l] = res
	for i, it := range l.items {
		res[i] = p.value(it)
	}
	return res
}

func (p *plainer) value(v any) any {
	if v == nil || p.cfg.intact(v) {
		return v
	}
	switch x := v.(type) {
	case *Box:
		return p.box(x)
	case *List:
		return p.list(x)
	case Tuple:
		res := make([]any, len(x))
		for i, e := range x {
			res[i] = p.value(e)
		}
		return res
	case codec.Map:
		res := make(map[string]any, len(x))
		for _, it := range x {
			res[ident.KeyString(it.Key)] = p.value(it.Value)
		}
		return res
	case string, []byte:
		return v
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		if rv.IsNil() {
			return v
		}
		id := rawID{ptr: rv.Pointer(), typ: rv.Type()}
		if m, ok := p.memo[id]; ok {
			return m
		}
		res := make(map[string]any, rv.Len())
		p.memo[id] = res
		iter := rv.MapRange()
		for iter.Next() {
			res[ident.KeyString(iter.Key().Interface())] = p.value(iter.Value().Interface())
		}
		return res
	case reflect.Slice, reflect.Array:
		res := make([]any, rv.Len())
		for i := range res {
			res[i] = p.value(rv.Index(i).Interface())
		}
		return res
	}
	return v
}

// ToOrdered returns the box as a codec tree: codec.Map for mappings, in
// key order, and []any for sequences. Go maps are ordered by Compare on
// their keys. A cyclic box fails with ErrCycle.
func (b *Box) ToOrdered() (codec.Map, error) {
	v, err := newOrderer(b.cfg).value(b)
	if err != nil {
		return nil, err
	}
	return v.(codec.Map), nil
}

// ToOrdered is the list counterpart of Box.ToOrdered.
func (l *List) ToOrdered() ([]any, error) {
	v, err := newOrderer(l.cfg).value(l)
	if err != nil {
		return nil, err
	}
	return v.([]any), nil
}

type orderer struct {
	cfg    *Config
	active map[any]bool
}

func newOrderer(cfg *Config) *orderer {
	return &orderer{cfg: cfg, active: map[any]bool{}}
}

func (o *orderer) enter(id any) error {
	if o.active[id] {
		return fmt.Errorf("%w: container contains itself", ErrCycle)
	}
	o.active[id] = true
	return nil
}

func (o *orderer) value(v any) (any, error) {
	if v == nil || o.cfg.intact(v) {
		return v, nil
	}
	switch x := v.(type) {
	case *Box:
		if err := o.enter(x); err != nil {
			return nil, err
		}
		defer delete(o.active, x)
		res := make(codec.Map, 0, len(x.keys))
		for _, k := range x.keys {
			cv, err := o.value(x.value(k))
			if err != nil {
				return nil, err
			}
			res = append(res, codec.Item{Key: k, Value: cv})
		}
		return res, nil
	case *List:
		if err := o.enter(x); err != nil {
			return nil, err
		}
		defer delete(o.active, x)
		return o.seq(x.items)
	case Tuple:
		return o.seq(x)
	case codec.Map:
		res := make(codec.Map, len(x))
		for i, it := range x {
			cv, err := o.value(it.Value)
			if err != nil {
				return nil, err
			}
			res[i] = codec.Item{Key: it.Key, Value: cv}
		}
		return res, nil
	case string, []byte:
		return v, nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array:
		id := identity(v)
		if id != 0 {
			key := rawID{ptr: id, typ: rv.Type(), n: rv.Len()}
			if err := o.enter(key); err != nil {
				return nil, err
			}
			defer delete(o.active, key)
		}
		if rv.Kind() != reflect.Map {
			items, _ := asSequence(v)
			return o.seq(items)
		}
		es, err := entries(v)
		if err != nil {
			return nil, err
		}
		res := make(codec.Map, len(es))
		for i, e := range es {
			cv, err := o.value(e.Value)
			if err != nil {
				return nil, err
			}
			res[i] = codec.Item{Key: e.Key, Value: cv}
		}
		return res, nil
	}
	return v, nil
}

func (o *orderer) seq(items []any) (any, error) {
	res := make([]any, len(items))
	for i, it := range items {
		cv, err := o.value(it)
		if err != nil {
			return nil, err
		}
		res[i] = cv
	}
	return res, nil
}

// String renders the box as "<Box: {...}>". A container met again inside
// itself is rendered as {...} or [...].
func (b *Box) String() string {
	var p printer
	p.active = map[any]bool{}
	p.buf.WriteString("<Box: ")
	p.value(b)
	p.buf.WriteString(">")
	return p.buf.String()
}

func (l *List) String() string {
	var p printer
	p.active = map[any]bool{}
	p.buf.WriteString("<List: ")
	p.value(l)
	p.buf.WriteString(">")
	return p.buf.String()
}

type printer struct {
	buf    strings.Builder
	active map[any]bool
}

func (p *printer) value(v any) {
	switch x := v.(type) {
	case nil:
		p.buf.WriteString("null")
	case string:
		p.buf.WriteString(strconv.Quote(x))
	case *Box:
		if p.active[x] {
			p.buf.WriteString("{...}")
			return
		}
		p.active[x] = true
		defer delete(p.active, x)
		p.buf.WriteByte('{')
		for i, k := range x.keys {
			if i > 0 {
				p.buf.WriteString(", ")
			}
			p.value(k)
			p.buf.WriteString(": ")
			p.value(x.vals[k])
		}
		p.buf.WriteByte('}')
	case *List:
		if p.active[x] {
			p.buf.WriteString("[...]")
			return
		}
		p.active[x] = true
		defer delete(p.active, x)
		p.seq(x.items)
	case Tuple:
		p.buf.WriteByte('(')
		for i, e := range x {
			if i > 0 {
				p.buf.WriteString(", ")
			}
			p.value(e)
		}
		p.buf.WriteByte(')')
	default:
		if isMapping(v) {
			id := rawID{ptr: identity(v), typ: reflect.TypeOf(v)}
			if p.active[id] {
				p.buf.WriteString("{...}")
				return
			}
			p.active[id] = true
			defer delete(p.active, id)
			es, _ := entries(v)
			p.buf.WriteByte('{')
			for i, e := range es {
				if i > 0 {
					p.buf.WriteString(", ")
				}
				p.value(e.Key)
				p.buf.WriteString(": ")
				p.value(e.Value)
			}
			p.buf.WriteByte('}')
			return
		}
		if s, ok := asSequence(v); ok {
			p.seq(s)
			return
		}
		fmt.Fprint(&p.buf, v)
	}
}

func (p *printer) seq(items []any) {
	p.buf.WriteByte('[')
	for i, e := range items {
		if i > 0 {
			p.buf.WriteString(", ")
		}
		p.value(e)
	}
	p.buf.WriteByte(']')
}
