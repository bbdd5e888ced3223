package box

import "slices"

// ListMergeMode says how MergeUpdate combines a list already stored with
// an incoming sequence.
type ListMergeMode int

const (
	// ListReplace stores the incoming sequence in place of the list.
	ListReplace ListMergeMode = iota
	// ListExtend appends the incoming elements.
	ListExtend
	// ListUnique appends the incoming elements not already present.
	// Repeats within the incoming sequence are dropped too.
	ListUnique
)

func (m ListMergeMode) String() string {
	switch m {
	case ListExtend:
		return "extend"
	case ListUnique:
		return "unique"
	}
	return "replace"
}

type mergeState struct {
	lists ListMergeMode
}

type MergeOption func(*mergeState)

func ListMerge(m ListMergeMode) MergeOption {
	return func(s *mergeState) { s.lists = m }
}

// Update sets every entry of src, then every kv, replacing whole values.
// src is anything New accepts as a source.
func (b *Box) Update(src any, kv ...KV) error {
	if b.cfg.Frozen {
		return frozenErr("update")
	}
	es, err := entries(src)
	if err != nil {
		return err
	}
	for _, e := range slices.Concat(es, kv) {
		if err := b.Set(e.Key, e.Value); err != nil {
			return err
		}
	}
	return nil
}

// MergeUpdate is Update that merges incoming mappings into the boxes
// already stored under the same key, recursively, and combines lists
// according to the ListMerge option.
func (b *Box) MergeUpdate(src any, opts ...MergeOption) error {
	if b.cfg.Frozen {
		return frozenErr("update")
	}
	st := &mergeState{}
	for _, o := range opts {
		o(st)
	}
	es, err := entries(src)
	if err != nil {
		return err
	}
	for _, e := range es {
		if err := b.merge(e.Key, e.Value, st); err != nil {
			return err
		}
	}
	return nil
}

func (b *Box) merge(k, v any, st *mergeState) error {
	if v == nil || b.cfg.intact(v) || !b.Has(k) {
		return b.Set(k, v)
	}
	switch {
	case isMapping(v):
		cur, err := b.lookup(k, false, true)
		if err != nil {
			return err
		}
		if sub, ok := cur.(*Box); ok && cur != v {
			es, err := entries(v)
			if err != nil {
				return err
			}
			for _, e := range es {
				if err := sub.merge(e.Key, e.Value, st); err != nil {
					return err
				}
			}
			return nil
		}
	case isSequence(v) && st.lists != ListReplace:
		cur, err := b.lookup(k, false, true)
		if err != nil {
			return err
		}
		l, ok := cur.(*List)
		if !ok {
			break
		}
		items, err := seqItems(v)
		if err != nil {
			return err
		}
		for _, it := range items {
			if st.lists == ListUnique && l.Contains(it) {
				continue
			}
			if err := l.Append(it); err != nil {
				return err
			}
		}
		return nil
	}
	return b.Set(k, v)
}
