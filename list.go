package box

import (
	"fmt"
	"iter"
	"reflect"
	"slices"

	"github.com/signadot/tony-format/box/codec"
)

// List is a sequence whose raw map and slice elements are wrapped into
// boxes and lists as they are inserted.
type List struct {
	items  []any
	cfg    *Config
	parent *link
	origin uintptr
}

// NewList builds a List from src, which is nil, a *List, a Tuple or any
// Go slice or array other than []byte.
func NewList(src any, opts ...Option) (*List, error) {
	cfg, err := makeConfig(opts)
	if err != nil {
		return nil, err
	}
	return newList(cfg, src, nil)
}

// MustList returns l or panics on err.
func MustList(l *List, err error) *List {
	if err != nil {
		panic(err)
	}
	return l
}

func newList(cfg *Config, src any, parent *link) (*List, error) {
	items, err := seqItems(src)
	if err != nil {
		return nil, err
	}
	l := &List{cfg: cfg, origin: identity(src), parent: parent, items: make([]any, 0, len(items))}
	for _, it := range items {
		if l.origin != 0 && identity(it) == l.origin {
			l.items = append(l.items, l)
			continue
		}
		v, err := l.wrap(it)
		if err != nil {
			return nil, err
		}
		l.items = append(l.items, v)
		adopt(l, nil, v)
	}
	return l, nil
}

func seqItems(src any) ([]any, error) {
	switch x := src.(type) {
	case nil:
		return nil, nil
	case string, []byte:
		return nil, fmt.Errorf("%w: cannot build a list from text", ErrConstruction)
	case *List:
		if x == nil {
			return nil, nil
		}
		return slices.Clone(x.items), nil
	case Tuple:
		return slices.Clone([]any(x)), nil
	case []any:
		return slices.Clone(x), nil
	}
	rv := reflect.ValueOf(src)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		res := make([]any, rv.Len())
		for i := range res {
			res[i] = rv.Index(i).Interface()
		}
		return res, nil
	}
	return nil, fmt.Errorf("%w: source must be a sequence, got %T", ErrConstruction, src)
}

func (l *List) wrap(v any) (any, error) {
	if v == nil || l.cfg.intact(v) {
		return v, nil
	}
	switch v.(type) {
	case *Box, *List, Tuple, string, []byte:
		return v, nil
	case codec.Map:
		return l.childBox(v)
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Map:
		return l.childBox(v)
	case reflect.Slice:
		if up := ancestor(l, identity(v)); up != nil {
			return up, nil
		}
		return newList(l.cfg.child(), v, &link{to: l})
	}
	return v, nil
}

func (l *List) childBox(src any) (any, error) {
	if up := ancestor(l, identity(src)); up != nil {
		return up, nil
	}
	return build(l.cfg.child(), src, nil, &link{to: l})
}

func (l *List) frozen(op string) error {
	if l.cfg.Frozen {
		return frozenErr(op)
	}
	return nil
}

// index resolves a possibly negative index against length n.
func index(n, i int) (int, bool) {
	if i < 0 {
		i += n
	}
	return i, i >= 0 && i < n
}

func indexErr(i, n int) error {
	return fmt.Errorf("%w: %d (length %d)", ErrIndex, i, n)
}

func (l *List) Len() int {
	return len(l.items)
}

// Get returns the element at i. Negative indexes count from the end.
func (l *List) Get(i int) (any, error) {
	j, ok := index(len(l.items), i)
	if !ok {
		return nil, indexErr(i, len(l.items))
	}
	return l.items[j], nil
}

func (l *List) Set(i int, v any) error {
	if err := l.frozen("set element"); err != nil {
		return err
	}
	j, ok := index(len(l.items), i)
	if !ok {
		return indexErr(i, len(l.items))
	}
	w, err := l.wrap(v)
	if err != nil {
		return err
	}
	if old := l.items[j]; !sameRef(old, w) {
		release(l, old)
	}
	l.items[j] = w
	adopt(l, nil, w)
	l.notify(j, w, ActionSet)
	return nil
}

func (l *List) Append(v any) error {
	if err := l.frozen("append"); err != nil {
		return err
	}
	w, err := l.wrap(v)
	if err != nil {
		return err
	}
	l.items = append(l.items, w)
	adopt(l, nil, w)
	l.notify(len(l.items)-1, w, ActionAppend)
	return nil
}

// Extend appends every element of src.
func (l *List) Extend(src any) error {
	if err := l.frozen("extend"); err != nil {
		return err
	}
	items, err := seqItems(src)
	if err != nil {
		return err
	}
	for _, it := range items {
		if err := l.Append(it); err != nil {
			return err
		}
	}
	return nil
}

// Insert puts v before index i. Out of range indexes are clamped.
func (l *List) Insert(i int, v any) error {
	if err := l.frozen("insert"); err != nil {
		return err
	}
	n := len(l.items)
	if i < 0 {
		i = max(i+n, 0)
	}
	i = min(i, n)
	w, err := l.wrap(v)
	if err != nil {
		return err
	}
	l.items = slices.Insert(l.items, i, w)
	adopt(l, nil, w)
	l.notify(i, w, ActionInsert)
	return nil
}

func (l *List) Delete(i int) error {
	if err := l.frozen("delete element"); err != nil {
		return err
	}
	j, ok := index(len(l.items), i)
	if !ok {
		return indexErr(i, len(l.items))
	}
	l.cut(j)
	l.notify(j, nil, ActionDelete)
	return nil
}

// Pop removes and returns the element at i.
func (l *List) Pop(i int) (any, error) {
	if err := l.frozen("pop"); err != nil {
		return nil, err
	}
	j, ok := index(len(l.items), i)
	if !ok {
		return nil, indexErr(i, len(l.items))
	}
	v := l.items[j]
	l.cut(j)
	l.notify(j, nil, ActionPop)
	return v, nil
}

// Remove deletes the first element equal to v.
func (l *List) Remove(v any) error {
	if err := l.frozen("remove"); err != nil {
		return err
	}
	j := l.Index(v)
	if j < 0 {
		return fmt.Errorf("%w: %v", ErrValue, v)
	}
	l.cut(j)
	l.notify(j, nil, ActionRemove)
	return nil
}

func (l *List) cut(j int) {
	release(l, l.items[j])
	l.items = slices.Delete(l.items, j, j+1)
}

// Index returns the position of the first element equal to v, or -1.
func (l *List) Index(v any) int {
	for i, it := range l.items {
		if equal(it, v, map[pairID]bool{}) {
			return i
		}
	}
	return -1
}

func (l *List) Contains(v any) bool {
	return l.Index(v) >= 0
}

func (l *List) Reverse() error {
	if err := l.frozen("reverse"); err != nil {
		return err
	}
	slices.Reverse(l.items)
	l.notify(nil, nil, ActionReverse)
	return nil
}

// Sort sorts the list stably by cmp, or by Compare when cmp is nil.
func (l *List) Sort(cmp func(a, b any) int) error {
	if err := l.frozen("sort"); err != nil {
		return err
	}
	if cmp == nil {
		cmp = Compare
	}
	slices.SortStableFunc(l.items, cmp)
	l.notify(nil, nil, ActionSort)
	return nil
}

func (l *List) Clear() error {
	if err := l.frozen("clear"); err != nil {
		return err
	}
	for _, it := range l.items {
		release(l, it)
	}
	l.items = nil
	l.notify(nil, nil, ActionClear)
	return nil
}

// Values returns a copy of the elements.
func (l *List) Values() []any {
	return slices.Clone(l.items)
}

func (l *List) All() iter.Seq2[int, any] {
	return func(yield func(int, any) bool) {
		for i, it := range slices.Clone(l.items) {
			if !yield(i, it) {
				return
			}
		}
	}
}

func (l *List) Config() Config {
	return l.cfg.clone()
}

// Copy returns a new list holding the same elements. Elements referring
// to l refer to the copy instead.
func (l *List) Copy() *List {
	c := &List{cfg: l.cfg, items: make([]any, len(l.items))}
	for i, it := range l.items {
		if it == any(l) {
			it = c
		}
		c.items[i] = it
	}
	return c
}

func (l *List) BoxItUp() error {
	return l.boxItUp(map[any]bool{})
}

func (l *List) boxItUp(seen map[any]bool) error {
	if seen[l] {
		return nil
	}
	seen[l] = true
	for _, it := range l.items {
		if err := realize(it, seen); err != nil {
			return err
		}
	}
	return nil
}
