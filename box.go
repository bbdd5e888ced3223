package box

import (
	"fmt"
	"iter"
	"maps"
	"reflect"
	"slices"

	"github.com/signadot/tony-format/box/codec"
	"github.com/signadot/tony-format/box/debug"
	"github.com/signadot/tony-format/box/dotpath"
	"github.com/signadot/tony-format/box/ident"
)

// Box is an insertion ordered mapping whose keys can also be reached as
// attributes through their normalized names.
//
// Raw Go maps and slices stored in a Box are wrapped into boxes and
// lists the first time they are read. A Box must be made with New or one
// of the decoding functions; the zero Box is only a valid target for
// UnmarshalJSON and UnmarshalBinary.
type Box struct {
	keys      []any
	vals      map[any]any
	cfg       *Config
	converted map[any]struct{}
	heritage  *lineage
	parent    *link
	origin    uintptr
	created   bool
}

// KV is one key value pair, passed to New as a keyword entry.
type KV struct {
	Key   any
	Value any
}

// lineage records where a default-created box must store itself on its
// first write.
type lineage struct {
	parent *Box
	key    any
}

// New builds a Box. Arguments are classified by type: Option values
// configure the box, KV values are keyword entries, and at most one
// other argument is the source. A source is nil, a *Box, any Go map, a
// codec.Map, a []KV, or a sequence of two element pairs. Keyword
// entries are applied after the source.
func New(args ...any) (*Box, error) {
	var (
		opts []Option
		kvs  []KV
		src  any
		n    int
	)
	for _, a := range args {
		switch x := a.(type) {
		case Option:
			opts = append(opts, x)
		case KV:
			kvs = append(kvs, x)
		default:
			src = a
			n++
		}
	}
	if n > 1 {
		return nil, fmt.Errorf("%w: expected at most 1 source, got %d", ErrConstruction, n)
	}
	cfg, err := makeConfig(opts)
	if err != nil {
		return nil, err
	}
	return build(cfg, src, kvs, nil)
}

// Must returns b or panics on err.
func Must(b *Box, err error) *Box {
	if err != nil {
		panic(err)
	}
	return b
}

func newBox(cfg *Config) *Box {
	return &Box{
		vals:      map[any]any{},
		cfg:       cfg,
		converted: map[any]struct{}{},
	}
}

// build constructs a box from src and kvs. A non nil parent is linked
// before any entry is wrapped, so that entries leading back to an
// ancestor resolve to it.
func build(cfg *Config, src any, kvs []KV, parent *link) (*Box, error) {
	es, err := entries(src)
	if err != nil {
		return nil, err
	}
	b := newBox(cfg)
	b.origin = identity(src)
	b.parent = parent
	for _, e := range slices.Concat(es, kvs) {
		v := e.Value
		if b.origin != 0 && identity(v) == b.origin {
			v = b
		}
		if v == nil && cfg.DefaultBox && cfg.NoneTransform {
			continue
		}
		if err := b.set(e.Key, v); err != nil {
			return nil, err
		}
	}
	if err := b.finish(); err != nil {
		return nil, err
	}
	return b, nil
}

// finish runs the construction time duplicate check and realization,
// then marks b as constructed.
func (b *Box) finish() error {
	if b.cfg.Conversion {
		if err := ident.Check(b.cfg.Duplicates, b.cfg.namer(), b.keys, b.warn); err != nil {
			return err
		}
	}
	if b.cfg.Frozen || b.cfg.Duplicates != ident.Ignore {
		// ancestors are being realized already
		seen := map[any]bool{}
		for l := b.parent; l != nil; l = l.to.up() {
			seen[l.to] = true
		}
		if err := b.boxItUp(seen); err != nil {
			return err
		}
	}
	b.created = true
	return nil
}

func entries(src any) ([]KV, error) {
	switch x := src.(type) {
	case nil:
		return nil, nil
	case string, []byte:
		return nil, fmt.Errorf("%w: cannot build a box from text", ErrConstruction)
	case *Box:
		if x == nil {
			return nil, nil
		}
		res := make([]KV, len(x.keys))
		for i, k := range x.keys {
			res[i] = KV{Key: k, Value: x.vals[k]}
		}
		return res, nil
	case codec.Map:
		res := make([]KV, len(x))
		for i, it := range x {
			res[i] = KV{Key: it.Key, Value: it.Value}
		}
		return res, nil
	case []KV:
		return x, nil
	case KV:
		return []KV{x}, nil
	case map[string]any:
		res := make([]KV, 0, len(x))
		for _, k := range slices.Sorted(maps.Keys(x)) {
			res = append(res, KV{Key: k, Value: x[k]})
		}
		return res, nil
	}
	rv := reflect.ValueOf(src)
	switch rv.Kind() {
	case reflect.Map:
		keys := rv.MapKeys()
		slices.SortFunc(keys, func(a, b reflect.Value) int {
			return Compare(a.Interface(), b.Interface())
		})
		res := make([]KV, len(keys))
		for i, k := range keys {
			res[i] = KV{Key: k.Interface(), Value: rv.MapIndex(k).Interface()}
		}
		return res, nil
	case reflect.Slice, reflect.Array:
		res := make([]KV, rv.Len())
		for i := range res {
			kv, ok := pair(rv.Index(i).Interface())
			if !ok {
				return nil, fmt.Errorf("%w: element %d of %T is not a key value pair", ErrConstruction, i, src)
			}
			res[i] = kv
		}
		return res, nil
	}
	return nil, fmt.Errorf("%w: source must be a mapping or a sequence of pairs, got %T", ErrConstruction, src)
}

func pair(v any) (KV, bool) {
	switch x := v.(type) {
	case KV:
		return x, true
	case [2]any:
		return KV{Key: x[0], Value: x[1]}, true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Len() == 2 {
			return KV{Key: rv.Index(0).Interface(), Value: rv.Index(1).Interface()}, true
		}
	}
	return KV{}, false
}

// identity returns a token equal for two references to the same box,
// list, map or non-empty slice, and 0 for anything else.
func identity(v any) uintptr {
	switch v.(type) {
	case nil:
		return 0
	case *Box, *List:
		return reflect.ValueOf(v).Pointer()
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice:
		if rv.Len() == 0 {
			return 0
		}
		return rv.Pointer()
	}
	return 0
}

// sameRef reports whether a and b are the same box or list.
func sameRef(a, b any) bool {
	switch a.(type) {
	case *Box, *List:
		return a == b
	}
	return false
}

func checkKey(key any) error {
	switch key.(type) {
	case nil, string, int, int64, uint64, float64, bool:
		return nil
	}
	if !reflect.ValueOf(key).Comparable() {
		return fmt.Errorf("%w: key of type %T", ErrUnhashable, key)
	}
	return nil
}

// Get returns the value under key. A missing key is resolved as a
// dotted path when Dots is set and key looks like one, then as a
// default in default mode; otherwise Get fails with a *KeyError.
func (b *Box) Get(key any) (any, error) {
	return b.lookup(key, true, true)
}

func (b *Box) lookup(key any, dflt, dots bool) (any, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}
	if raw, ok := b.vals[key]; ok {
		if raw == nil && dflt && b.cfg.DefaultBox && b.cfg.NoneTransform {
			return b.synthesize(key), nil
		}
		return b.convert(key, raw)
	}
	if key == ConfigSlot {
		return nil, &KeyError{Key: key}
	}
	if p, ok := b.dotted(key); ok && dots {
		return b.getPath(p, dflt)
	}
	if dflt && b.cfg.DefaultBox {
		return b.synthesize(key), nil
	}
	return nil, &KeyError{Key: key}
}

// GetOr returns the value under key, or def when Get fails. A raw map
// or slice def is returned wrapped.
func (b *Box) GetOr(key, def any) any {
	if v, err := b.Get(key); err == nil {
		return v
	}
	v, _, err := b.wrap(key, def)
	if err != nil {
		return def
	}
	return v
}

// Has reports whether key is stored, or names an existing dotted path.
// It never synthesizes defaults.
func (b *Box) Has(key any) bool {
	if checkKey(key) != nil {
		return false
	}
	if _, ok := b.vals[key]; ok {
		return true
	}
	if p, ok := b.dotted(key); ok {
		_, err := b.getPath(p, false)
		return err == nil
	}
	return false
}

// Set stores value under key. A dotted key that is not stored literally
// is resolved as a path when its first segment exists, or always in
// default mode; otherwise it is stored as a plain key.
func (b *Box) Set(key, value any) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if _, ok := b.vals[key]; !ok {
		if p, ok := b.dotted(key); ok {
			first, err := dotpath.Parse(p)
			if err != nil {
				return err
			}
			if _, ok := b.vals[first.Key()]; ok || b.cfg.DefaultBox {
				return b.setPath(p, value)
			}
		}
	}
	return b.set(key, value)
}

func (b *Box) set(key, value any) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if b.created && b.cfg.Frozen {
		return frozenErr(fmt.Sprintf("set %s", quoteKey(key)))
	}
	if fn, ok := b.cfg.Recast[key]; ok {
		v, err := fn(value)
		if err != nil {
			return &RecastError{Key: key, Err: err}
		}
		value = v
	}
	if b.created && b.cfg.Conversion {
		if err := ident.CheckInsert(b.cfg.Duplicates, b.cfg.namer(), key, b.keys, b.warn); err != nil {
			return err
		}
	}
	b.store(key, value)
	delete(b.converted, key)
	b.adopt(key, value)
	if b.created {
		b.notify(key, value, ActionSet)
	}
	return b.inherit()
}

func (b *Box) store(key, value any) {
	old, ok := b.vals[key]
	if !ok {
		b.keys = append(b.keys, key)
	} else if !sameRef(old, value) {
		b.release(old)
	}
	b.vals[key] = value
}

// inherit stores a default-created box into the parent it was requested
// from, once it holds data.
func (b *Box) inherit() error {
	h := b.heritage
	if h == nil || !b.created {
		return nil
	}
	b.heritage = nil
	if cur, ok := h.parent.vals[h.key]; ok && cur != nil {
		return nil
	}
	if debug.Heritage() {
		debug.Logf("storing default box under %v\n", h.key)
	}
	return h.parent.set(h.key, b)
}

// Delete removes key. A dotted key that is not stored literally is
// resolved as a path.
func (b *Box) Delete(key any) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if _, ok := b.vals[key]; !ok {
		if p, ok := b.dotted(key); ok {
			if b.cfg.Frozen {
				return frozenErr("delete")
			}
			return b.deletePath(p)
		}
	}
	return b.deleteKey(key)
}

func (b *Box) deleteKey(key any) error {
	if key == ConfigSlot {
		return fmt.Errorf("%w: %s", ErrProtected, ConfigSlot)
	}
	if b.cfg.Frozen {
		return frozenErr(fmt.Sprintf("delete %s", quoteKey(key)))
	}
	if err := checkKey(key); err != nil {
		return err
	}
	if _, ok := b.vals[key]; !ok {
		return &KeyError{Key: key}
	}
	b.remove(key)
	b.notify(key, nil, ActionDelete)
	return nil
}

func (b *Box) remove(key any) {
	b.release(b.vals[key])
	delete(b.vals, key)
	delete(b.converted, key)
	if i := slices.Index(b.keys, key); i >= 0 {
		b.keys = slices.Delete(b.keys, i, i+1)
	}
}

// SetDefault returns the value under key, storing def there first if
// key is absent.
func (b *Box) SetDefault(key, def any) (any, error) {
	if b.Has(key) {
		return b.Get(key)
	}
	if err := b.Set(key, def); err != nil {
		return nil, err
	}
	return b.lookup(key, false, true)
}

// Pop removes key and returns its value.
func (b *Box) Pop(key any) (any, error) {
	if b.cfg.Frozen {
		return nil, frozenErr("pop")
	}
	if !b.Has(key) {
		return nil, &KeyError{Key: key}
	}
	v, err := b.lookup(key, false, true)
	if err != nil {
		return nil, err
	}
	if err := b.Delete(key); err != nil {
		return nil, err
	}
	return v, nil
}

// PopOr is Pop returning def instead of failing on a missing key.
func (b *Box) PopOr(key, def any) (any, error) {
	if !b.Has(key) {
		if b.cfg.Frozen {
			return nil, frozenErr("pop")
		}
		return def, nil
	}
	return b.Pop(key)
}

// PopItem removes and returns the first item.
func (b *Box) PopItem() (KV, error) {
	if b.cfg.Frozen {
		return KV{}, frozenErr("pop")
	}
	if len(b.keys) == 0 {
		return KV{}, fmt.Errorf("%w: empty box", ErrKeyNotFound)
	}
	k := b.keys[0]
	v, err := b.Pop(k)
	if err != nil {
		return KV{}, err
	}
	return KV{Key: k, Value: v}, nil
}

func (b *Box) Clear() error {
	if b.cfg.Frozen {
		return frozenErr("clear")
	}
	for _, v := range b.vals {
		b.release(v)
	}
	b.keys = nil
	b.vals = map[any]any{}
	b.converted = map[any]struct{}{}
	b.notify(nil, nil, ActionClear)
	return nil
}

func (b *Box) Len() int {
	return len(b.keys)
}

// Keys returns the keys in insertion order.
func (b *Box) Keys() []any {
	return slices.Clone(b.keys)
}

func (b *Box) Values() []any {
	res := make([]any, len(b.keys))
	for i, k := range b.keys {
		res[i] = b.value(k)
	}
	return res
}

func (b *Box) Items() []KV {
	res := make([]KV, len(b.keys))
	for i, k := range b.keys {
		res[i] = KV{Key: k, Value: b.value(k)}
	}
	return res
}

// All iterates over keys and converted values in insertion order.
func (b *Box) All() iter.Seq2[any, any] {
	return func(yield func(any, any) bool) {
		for _, k := range slices.Clone(b.keys) {
			if _, ok := b.vals[k]; !ok {
				continue
			}
			if !yield(k, b.value(k)) {
				return
			}
		}
	}
}

// Backward iterates like All in reverse insertion order.
func (b *Box) Backward() iter.Seq2[any, any] {
	return func(yield func(any, any) bool) {
		keys := slices.Clone(b.keys)
		for i := len(keys) - 1; i >= 0; i-- {
			k := keys[i]
			if _, ok := b.vals[k]; !ok {
				continue
			}
			if !yield(k, b.value(k)) {
				return
			}
		}
	}
}

// value returns the converted value under a stored key, or the raw one
// if conversion fails.
func (b *Box) value(k any) any {
	v, err := b.convert(k, b.vals[k])
	if err != nil {
		b.cfg.logger().Warn("box conversion failed", "key", k, "err", err)
		return b.vals[k]
	}
	return v
}

// Config returns a copy of the box configuration.
func (b *Box) Config() Config {
	return b.cfg.clone()
}

// Sub returns the box under key.
func (b *Box) Sub(key any) (*Box, error) {
	v, err := b.Get(key)
	if err != nil {
		return nil, err
	}
	sub, ok := v.(*Box)
	if !ok {
		return nil, &TypeError{Key: key, Expected: "box", Actual: fmt.Sprintf("%T", v)}
	}
	return sub, nil
}

// SubList returns the list under key.
func (b *Box) SubList(key any) (*List, error) {
	v, err := b.Get(key)
	if err != nil {
		return nil, err
	}
	l, ok := v.(*List)
	if !ok {
		return nil, &TypeError{Key: key, Expected: "list", Actual: fmt.Sprintf("%T", v)}
	}
	return l, nil
}

// BoxItUp converts every stored value, recursively.
func (b *Box) BoxItUp() error {
	return b.boxItUp(map[any]bool{})
}

func (b *Box) boxItUp(seen map[any]bool) error {
	if seen[b] {
		return nil
	}
	seen[b] = true
	for _, k := range slices.Clone(b.keys) {
		v, err := b.convert(k, b.vals[k])
		if err != nil {
			return err
		}
		if err := realize(v, seen); err != nil {
			return err
		}
	}
	return nil
}

func realize(v any, seen map[any]bool) error {
	switch x := v.(type) {
	case *Box:
		return x.boxItUp(seen)
	case *List:
		return x.boxItUp(seen)
	case Tuple:
		for _, e := range x {
			if err := realize(e, seen); err != nil {
				return err
			}
		}
	}
	return nil
}

func (b *Box) warn(err error) {
	attrs := []any{"err", err}
	if de, ok := err.(*ident.DuplicateError); ok {
		attrs = append(attrs, "keys", de.Keys())
	}
	b.cfg.logger().Warn("duplicate box keys", attrs...)
	if b.cfg.OnWarning != nil {
		b.cfg.OnWarning(err)
	}
}
