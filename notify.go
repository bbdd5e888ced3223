package box

import "slices"

// Action names the kind of mutation reported by a Change.
type Action int

const (
	ActionSet Action = iota
	ActionDelete
	ActionClear
	ActionAppend
	ActionInsert
	ActionPop
	ActionRemove
	ActionReverse
	ActionSort
	ActionChildChange
)

func (a Action) String() string {
	switch a {
	case ActionSet:
		return "set"
	case ActionDelete:
		return "delete"
	case ActionClear:
		return "clear"
	case ActionAppend:
		return "append"
	case ActionInsert:
		return "insert"
	case ActionPop:
		return "pop"
	case ActionRemove:
		return "remove"
	case ActionReverse:
		return "reverse"
	case ActionSort:
		return "sort"
	case ActionChildChange:
		return "child_change"
	}
	return "unknown"
}

// Change describes one mutation, as seen by the OnChange hook of the top
// container.
//
// When the mutated container is the top one, Root is true and Key,
// Value and Action describe the mutation itself. Otherwise Action is
// ActionChildChange, Key locates the changed child in Container and
// Value is that child.
type Change struct {
	Container any
	Key       any
	Value     any
	Action    Action
	Root      bool
}

// container is implemented by *Box and *List.
type container interface {
	childChanged(key, child any)
	up() *link
	originID() uintptr
}

// link points from a child to the container holding it.
type link struct {
	to  container
	key any
}

func (b *Box) up() *link         { return b.parent }
func (b *Box) originID() uintptr { return b.origin }

func (b *Box) notify(key, value any, act Action) {
	if b.parent != nil {
		b.parent.to.childChanged(b.parent.key, b)
		return
	}
	b.cfg.emit(Change{Container: b, Key: key, Value: value, Action: act, Root: true})
}

func (b *Box) childChanged(key, child any) {
	if b.parent != nil {
		b.parent.to.childChanged(b.parent.key, b)
		return
	}
	b.cfg.emit(Change{Container: b, Key: key, Value: child, Action: ActionChildChange})
}

// adopt links a box or list stored under key back to b, unless that
// would make b its own ancestor.
func (b *Box) adopt(key, v any) {
	adopt(b, key, v)
}

// release drops the link from v to b.
func (b *Box) release(v any) {
	release(b, v)
}

func adopt(p container, key, v any) {
	var c container
	switch x := v.(type) {
	case *Box:
		if x == nil {
			return
		}
		c = x
	case *List:
		if x == nil {
			return
		}
		c = x
	default:
		return
	}
	for a := p; a != nil; {
		if a == c {
			return
		}
		l := a.up()
		if l == nil {
			break
		}
		a = l.to
	}
	l := &link{to: p, key: key}
	switch x := v.(type) {
	case *Box:
		x.parent = l
	case *List:
		x.parent = l
	}
}

func release(p container, v any) {
	switch x := v.(type) {
	case *Box:
		if x != nil && x.parent != nil && x.parent.to == p {
			x.parent = nil
		}
	case *List:
		if x != nil && x.parent != nil && x.parent.to == p {
			x.parent = nil
		}
	}
}

func (l *List) up() *link         { return l.parent }
func (l *List) originID() uintptr { return l.origin }

func (l *List) notify(index, value any, act Action) {
	if l.parent != nil {
		l.parent.to.childChanged(l.parent.key, l)
		return
	}
	l.cfg.emit(Change{Container: l, Key: index, Value: value, Action: act, Root: true})
}

func (l *List) childChanged(_, child any) {
	if l.parent != nil {
		l.parent.to.childChanged(l.parent.key, l)
		return
	}
	i := slices.IndexFunc(l.items, func(e any) bool { return e == child })
	l.cfg.emit(Change{Container: l, Key: i, Value: child, Action: ActionChildChange})
}

func (c *Config) emit(ch Change) {
	if c.OnChange == nil {
		return
	}
	if err := c.OnChange(ch); err != nil {
		c.logger().Warn("box change hook failed", "action", ch.Action.String(), "key", ch.Key, "err", err)
	}
}
