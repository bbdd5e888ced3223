package box

import (
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/signadot/tony-format/box/codec"
	"github.com/signadot/tony-format/box/format"
	"github.com/signadot/tony-format/box/ident"
)

// ApplyJSONPatch applies an RFC 6902 JSON patch document to the box.
// Keys keep their order; added keys come last.
func (b *Box) ApplyJSONPatch(patch []byte) error {
	ops, err := jsonpatch.DecodePatch(patch)
	if err != nil {
		return &FormatError{Format: format.JSONFormat, Err: fmt.Errorf("json patch: %w", err)}
	}
	return b.rewrite(func(doc []byte) ([]byte, error) {
		return ops.Apply(doc)
	})
}

// MergePatch applies an RFC 7386 JSON merge patch to the box.
func (b *Box) MergePatch(patch []byte) error {
	return b.rewrite(func(doc []byte) ([]byte, error) {
		return jsonpatch.MergePatch(doc, patch)
	})
}

func (b *Box) rewrite(apply func([]byte) ([]byte, error)) error {
	if b.cfg.Frozen {
		return frozenErr("patch")
	}
	prev, err := b.ToOrdered()
	if err != nil {
		return err
	}
	doc, err := codec.Marshal(format.JSONFormat, prev)
	if err != nil {
		return err
	}
	out, err := apply(doc)
	if err != nil {
		return fmt.Errorf("patch: %w", err)
	}
	tree, err := codec.Unmarshal(format.JSONFormat, out)
	if err != nil {
		return err
	}
	next, ok := keepOrder(tree, prev).(codec.Map)
	if !ok {
		return &FormatError{Format: format.JSONFormat, Want: "mapping", Got: codec.Kind(tree)}
	}
	nb, err := build(b.cfg, next, nil, b.parent)
	if err != nil {
		return fmt.Errorf("patch: %w", err)
	}
	for _, v := range b.vals {
		b.release(v)
	}
	b.keys, b.vals, b.converted = nb.keys, nb.vals, nb.converted
	for _, k := range b.keys {
		v := b.vals[k]
		release(nb, v)
		b.adopt(k, v)
	}
	for _, k := range b.keys {
		b.notify(k, b.vals[k], ActionSet)
	}
	return b.inherit()
}

// keepOrder reorders the mappings of next so that keys also in prev come
// first, in prev order.
func keepOrder(next, prev any) any {
	switch n := next.(type) {
	case codec.Map:
		p, ok := prev.(codec.Map)
		if !ok {
			return n
		}
		res := make(codec.Map, 0, len(n))
		done := make(map[any]bool, len(n))
		for _, it := range p {
			k := ident.KeyString(it.Key)
			if v, ok := n.Get(k); ok {
				res = append(res, codec.Item{Key: it.Key, Value: keepOrder(v, it.Value)})
				done[k] = true
			}
		}
		for _, it := range n {
			if !done[it.Key] {
				res = append(res, it)
			}
		}
		return res
	case []any:
		p, ok := prev.([]any)
		if !ok {
			return n
		}
		for i := range min(len(n), len(p)) {
			n[i] = keepOrder(n[i], p[i])
		}
		return n
	}
	return next
}
