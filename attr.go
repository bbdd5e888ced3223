package box

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/signadot/tony-format/box/ident"
)

// protected holds the method names of *Box, in their Go and camel killed
// forms. They cannot be assigned as attributes.
var protected = func() map[string]struct{} {
	t := reflect.TypeFor[*Box]()
	res := make(map[string]struct{}, 2*t.NumMethod())
	for i := range t.NumMethod() {
		name := t.Method(i).Name
		res[name] = struct{}{}
		res[ident.CamelKill(name)] = struct{}{}
	}
	return res
}()

// resolve finds the stored key reachable through attribute name.
func (b *Box) resolve(name string) (any, bool) {
	if _, ok := b.vals[name]; ok {
		return name, true
	}
	if b.cfg.CamelKiller {
		if k, ok := ident.MatchCamel(name, b.keys); ok {
			return k, true
		}
	}
	if b.cfg.Conversion {
		if k, ok := b.cfg.namer().Match(name, b.keys); ok {
			return k, true
		}
	}
	return nil, false
}

// Attr returns the value reachable through attribute name: the key name
// itself, its camel killed form when CamelKiller is set, or a key whose
// normalized name is name. ConfigSlot returns a copy of the Config.
func (b *Box) Attr(name string) (any, error) {
	if name == ConfigSlot {
		return b.cfg.clone(), nil
	}
	if k, ok := b.resolve(name); ok {
		return b.lookup(k, true, false)
	}
	if p, ok := b.dotted(name); ok {
		return b.getPath(p, true)
	}
	if b.cfg.DefaultBox {
		return b.synthesize(name), nil
	}
	return nil, &KeyError{Key: name, Attr: true}
}

// SetAttr assigns value through attribute name. An existing key reachable
// through name is overwritten; otherwise name becomes a new key.
func (b *Box) SetAttr(name string, value any) error {
	if name == ConfigSlot {
		return fmt.Errorf("%w: %s", ErrProtected, name)
	}
	if b.cfg.Frozen {
		return frozenErr(fmt.Sprintf("set attribute %q", name))
	}
	if _, ok := protected[name]; ok {
		return fmt.Errorf("%w: %s", ErrProtected, name)
	}
	if k, ok := b.resolve(name); ok {
		return b.set(k, value)
	}
	return b.Set(name, value)
}

// DelAttr deletes the key reachable through attribute name.
func (b *Box) DelAttr(name string) error {
	if name == ConfigSlot {
		return fmt.Errorf("%w: %s", ErrProtected, name)
	}
	if b.cfg.Frozen {
		return frozenErr(fmt.Sprintf("delete attribute %q", name))
	}
	if k, ok := b.resolve(name); ok {
		return b.deleteKey(k)
	}
	if p, ok := b.dotted(name); ok {
		return b.deletePath(p)
	}
	return &KeyError{Key: name, Attr: true}
}

// Attrs lists the method names of Box followed by the attribute names
// of the stored keys, each part sorted.
func (b *Box) Attrs() []string {
	methods := make([]string, 0, len(protected))
	for name := range protected {
		methods = append(methods, name)
	}
	slices.Sort(methods)
	seen := make(map[string]bool, len(b.keys))
	var names []string
	add := func(s string) {
		if s != "" && !seen[s] {
			seen[s] = true
			names = append(names, s)
		}
	}
	n := b.cfg.namer()
	for _, k := range b.keys {
		s, isStr := k.(string)
		switch {
		case isStr && b.cfg.CamelKiller && ident.IsName(ident.CamelKill(s)):
			add(ident.CamelKill(s))
		case isStr && ident.IsName(s):
			add(s)
		case b.cfg.Conversion:
			add(n.Name(k))
		}
	}
	slices.Sort(names)
	return append(methods, names...)
}
