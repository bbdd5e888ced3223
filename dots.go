package box

import (
	"errors"
	"fmt"

	"github.com/signadot/tony-format/box/debug"
	"github.com/signadot/tony-format/box/dotpath"
)

// dotted returns key as a path when dotted addressing applies to it.
func (b *Box) dotted(key any) (string, bool) {
	s, ok := key.(string)
	if !ok || !b.cfg.Dots || !dotpath.IsPath(s) {
		return "", false
	}
	return s, true
}

// walk resolves all but the last segment of path from root and returns
// the container reached with the last segment. With vivify, absent keys
// on the way are filled with defaults when the box is in default mode.
func walk(root any, path string, vivify bool) (any, *dotpath.Path, error) {
	p, err := dotpath.Parse(path)
	if err != nil {
		return nil, nil, err
	}
	if p == nil {
		return nil, nil, fmt.Errorf("%w: empty path", ErrPath)
	}
	if debug.Dots() {
		debug.Logf("walk %s from %s\n", p, fmt.Sprintf("%T", root))
	}
	cur := root
	seg := p
	for ; seg.Next != nil; seg = seg.Next {
		next, err := step(cur, seg, vivify)
		if err != nil {
			return nil, nil, fmt.Errorf("path %q: %w", path, err)
		}
		switch next.(type) {
		case *Box, *List, Tuple:
		default:
			return nil, nil, fmt.Errorf("path %q: %w", path, &TypeError{
				Key:      seg.SegmentString(),
				Expected: "box or list",
				Actual:   fmt.Sprintf("%T", next),
			})
		}
		cur = next
	}
	return cur, seg, nil
}

// step reads one segment from cur.
func step(cur any, seg *dotpath.Path, dflt bool) (any, error) {
	switch x := cur.(type) {
	case *Box:
		return x.lookup(seg.Key(), dflt, false)
	case *List:
		if seg.Index == nil {
			return nil, &KeyError{Key: *seg.Field}
		}
		return x.Get(*seg.Index)
	case Tuple:
		if seg.Index == nil {
			return nil, &KeyError{Key: *seg.Field}
		}
		i, ok := index(len(x), *seg.Index)
		if !ok {
			return nil, indexErr(*seg.Index, len(x))
		}
		return x[i], nil
	}
	return nil, &TypeError{Key: seg.SegmentString(), Expected: "box or list", Actual: fmt.Sprintf("%T", cur)}
}

func getPath(root any, path string, dflt bool) (any, error) {
	parent, last, err := walk(root, path, dflt)
	if err != nil {
		return nil, err
	}
	v, err := step(parent, last, dflt)
	if err != nil {
		return nil, fmt.Errorf("path %q: %w", path, err)
	}
	return v, nil
}

func setPath(root any, path string, v any) error {
	parent, last, err := walk(root, path, true)
	if err != nil {
		return err
	}
	switch x := parent.(type) {
	case *Box:
		return x.set(last.Key(), v)
	case *List:
		if last.Index == nil {
			return fmt.Errorf("path %q: %w", path, &KeyError{Key: *last.Field})
		}
		return x.Set(*last.Index, v)
	}
	return fmt.Errorf("path %q: %w", path, frozenErr("assign into a tuple"))
}

func deletePath(root any, path string) error {
	parent, last, err := walk(root, path, false)
	if err != nil {
		return err
	}
	switch x := parent.(type) {
	case *Box:
		err = x.deleteKey(last.Key())
	case *List:
		if last.Index == nil {
			err = &KeyError{Key: *last.Field}
		} else {
			err = x.Delete(*last.Index)
		}
	default:
		err = frozenErr("delete from a tuple")
	}
	var ke *KeyError
	if errors.As(err, &ke) {
		return fmt.Errorf("path %q: %w", path, err)
	}
	return err
}

func (b *Box) getPath(path string, dflt bool) (any, error) {
	return getPath(b, path, dflt)
}

func (b *Box) setPath(path string, v any) error {
	return setPath(b, path, v)
}

func (b *Box) deletePath(path string) error {
	return deletePath(b, path)
}

// GetPath reads a dotted path such as "a.b[0]" regardless of the Dots
// setting.
func (b *Box) GetPath(path string) (any, error) {
	return getPath(b, path, true)
}

func (b *Box) SetPath(path string, v any) error {
	return setPath(b, path, v)
}

func (b *Box) DeletePath(path string) error {
	return deletePath(b, path)
}

// GetPath reads a dotted path starting at the list, such as "[0].a".
func (l *List) GetPath(path string) (any, error) {
	return getPath(l, path, true)
}

func (l *List) SetPath(path string, v any) error {
	return setPath(l, path, v)
}

func (l *List) DeletePath(path string) error {
	return deletePath(l, path)
}
