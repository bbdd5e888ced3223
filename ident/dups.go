package ident

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var ErrDuplicateKey = errors.New("duplicate key")

// Policy says what to do when distinct keys normalize to the same name.
type Policy int

const (
	Ignore Policy = iota
	Warn
	Error
)

func ParsePolicy(v string) (Policy, error) {
	p, ok := map[string]Policy{
		"":        Ignore,
		"ignore":  Ignore,
		"warn":    Warn,
		"warning": Warn,
		"error":   Error,
	}[v]
	if ok {
		return p, nil
	}
	return 0, fmt.Errorf("unknown duplicate policy %q", v)
}

func (p Policy) String() string {
	d, err := p.MarshalText()
	if err != nil {
		return err.Error()
	}
	return string(d)
}

func (p Policy) MarshalText() ([]byte, error) {
	switch p {
	case Ignore:
		return []byte("ignore"), nil
	case Warn:
		return []byte("warn"), nil
	case Error:
		return []byte("error"), nil
	default:
		return nil, fmt.Errorf("<err: %d is not a duplicate policy>", p)
	}
}

func (p *Policy) UnmarshalText(d []byte) error {
	pp, err := ParsePolicy(string(d))
	if err != nil {
		return err
	}
	*p = pp
	return nil
}

// Collision is a group of distinct keys sharing one normalized name.
type Collision struct {
	Name string
	Keys []any
}

// DuplicateError reports every collision found in a key set.
type DuplicateError struct {
	Collisions []Collision
}

func (e *DuplicateError) Error() string {
	parts := make([]string, 0, len(e.Collisions))
	for _, c := range e.Collisions {
		keys := make([]string, len(c.Keys))
		for i, k := range c.Keys {
			keys[i] = fmt.Sprintf("%q", KeyString(k))
		}
		parts = append(parts, fmt.Sprintf("%s(%s)", strings.Join(keys, ", "), c.Name))
	}
	return fmt.Sprintf("duplicate conversion attributes exist: %s", strings.Join(parts, "; "))
}

func (e *DuplicateError) Unwrap() error {
	return ErrDuplicateKey
}

// Keys returns all colliding keys, grouped by name, in key order.
func (e *DuplicateError) Keys() []any {
	var res []any
	for _, c := range e.Collisions {
		res = append(res, c.Keys...)
	}
	return res
}

// Collisions groups keys by normalized name and returns the groups with
// more than one member, ordered by first occurrence.
func (n Namer) Collisions(keys []any) []Collision {
	var (
		order  []string
		groups = make(map[string][]any, len(keys))
	)
	for _, k := range keys {
		name := n.Name(k)
		if _, ok := groups[name]; !ok {
			order = append(order, name)
		}
		groups[name] = append(groups[name], k)
	}
	var res []Collision
	for _, name := range order {
		if g := groups[name]; len(g) > 1 {
			res = append(res, Collision{Name: name, Keys: g})
		}
	}
	return res
}

// Match returns the first key whose normalized name equals attr.
func (n Namer) Match(attr string, keys []any) (any, bool) {
	if attr == "" {
		return nil, false
	}
	for _, k := range keys {
		if n.Name(k) == attr {
			return k, true
		}
	}
	return nil, false
}

// MatchCamel returns the first string-rendered key whose camel folded form
// equals attr.
func MatchCamel(attr string, keys []any) (any, bool) {
	for _, k := range keys {
		if CamelKill(KeyString(k)) == attr {
			return k, true
		}
	}
	return nil, false
}

// Check applies p to the collisions among keys. Under Warn the collisions
// are passed to warn, if non-nil, and Check returns nil.
func Check(p Policy, n Namer, keys []any, warn func(error)) error {
	if p == Ignore {
		return nil
	}
	cs := n.Collisions(keys)
	if len(cs) == 0 {
		return nil
	}
	err := &DuplicateError{Collisions: cs}
	if p == Warn {
		if warn != nil {
			warn(err)
		}
		return nil
	}
	return err
}

// CheckInsert is Check on keys plus candidate, the key about to be
// inserted. A candidate already present is not counted twice.
func CheckInsert(p Policy, n Namer, candidate any, keys []any, warn func(error)) error {
	if p == Ignore {
		return nil
	}
	if !slices.Contains(keys, candidate) {
		keys = append(slices.Clip(keys), candidate)
	}
	return Check(p, n, keys, warn)
}
