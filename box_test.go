package box

import (
	"errors"
	"io"
	"log/slog"
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/tony-format/box/codec"
	"github.com/signadot/tony-format/box/ident"
	"github.com/signadot/tony-format/box/recast"
	"github.com/stretchr/testify/require"
)

var quiet = Logger(slog.New(slog.NewTextHandler(io.Discard, nil)))

func TestNew(t *testing.T) {
	b, err := New(map[string]any{"b": 1, "a": 2}, KV{Key: "c", Value: 3})
	require.NoError(t, err)
	require.Equal(t, []any{"a", "b", "c"}, b.Keys())
	require.Equal(t, 3, b.Len())

	b, err = New(codec.Map{{Key: "z", Value: 1}, {Key: "a", Value: 2}})
	require.NoError(t, err)
	require.Equal(t, []any{"z", "a"}, b.Keys())

	b, err = New([][2]any{{"x", 1}, {"y", 2}}, KV{Key: "x", Value: 3})
	require.NoError(t, err)
	require.Equal(t, []any{"x", "y"}, b.Keys())
	v, err := b.Get("x")
	require.NoError(t, err)
	require.Equal(t, 3, v)

	b, err = New()
	require.NoError(t, err)
	require.Equal(t, 0, b.Len())
}

func TestNewErrors(t *testing.T) {
	tests := []struct {
		name string
		args []any
	}{
		{name: "text", args: []any{"a=1"}},
		{name: "bytes", args: []any{[]byte("{}")}},
		{name: "two sources", args: []any{map[string]any{}, map[string]any{}}},
		{name: "not pairs", args: []any{[]any{1, 2, 3}}},
		{name: "scalar", args: []any{42}},
		{name: "bad prefix", args: []any{SafePrefix("1")}},
		{name: "duplicates without conversion", args: []any{Conversion(false), Duplicates(ident.Warn)}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.args...)
			require.ErrorIs(t, err, ErrConstruction)
		})
	}
}

func TestGetSetDelete(t *testing.T) {
	b := Must(New())
	require.NoError(t, b.Set("a", 1))
	v, err := b.Get("a")
	require.NoError(t, err)
	require.Equal(t, 1, v)
	require.True(t, b.Has("a"))

	_, err = b.Get("missing")
	require.ErrorIs(t, err, ErrKeyNotFound)
	require.ErrorIs(t, err, ErrAttrNotFound)
	var ke *KeyError
	require.True(t, errors.As(err, &ke))
	require.Equal(t, "missing", ke.Key)

	require.NoError(t, b.Delete("a"))
	require.False(t, b.Has("a"))
	require.ErrorIs(t, b.Delete("a"), ErrKeyNotFound)

	_, err = b.Get([]any{1})
	require.ErrorIs(t, err, ErrUnhashable)
	require.ErrorIs(t, b.Set(map[string]any{}, 1), ErrUnhashable)
}

func TestOverwriteKeepsPosition(t *testing.T) {
	b := Must(New(codec.Map{{Key: "a", Value: 1}, {Key: "b", Value: 2}, {Key: "c", Value: 3}}))
	require.NoError(t, b.Set("b", 20))
	require.Equal(t, []any{"a", "b", "c"}, b.Keys())
	require.Equal(t, []any{1, 20, 3}, b.Values())

	var keys []any
	for k := range b.Backward() {
		keys = append(keys, k)
	}
	require.Equal(t, []any{"c", "b", "a"}, keys)

	keys = keys[:0]
	for k := range b.All() {
		if k == "a" {
			require.NoError(t, b.Delete("b"))
		}
		keys = append(keys, k)
	}
	require.Equal(t, []any{"a", "c"}, keys)
}

func TestPop(t *testing.T) {
	b := Must(New(codec.Map{{Key: "a", Value: 1}, {Key: "b", Value: 2}, {Key: "c", Value: 3}}))
	v, err := b.Pop("b")
	require.NoError(t, err)
	require.Equal(t, 2, v)
	require.Equal(t, []any{"a", "c"}, b.Keys())

	_, err = b.Pop("b")
	require.ErrorIs(t, err, ErrKeyNotFound)
	v, err = b.PopOr("b", 9)
	require.NoError(t, err)
	require.Equal(t, 9, v)

	kv, err := b.PopItem()
	require.NoError(t, err)
	require.Equal(t, KV{Key: "a", Value: 1}, kv)

	require.NoError(t, b.Clear())
	require.Equal(t, 0, b.Len())
	_, err = b.PopItem()
	require.ErrorIs(t, err, ErrKeyNotFound)
}

func TestSetDefault(t *testing.T) {
	b := Must(New())
	v1, err := b.SetDefault("x", map[string]any{"y": 1})
	require.NoError(t, err)
	sub, ok := v1.(*Box)
	require.True(t, ok)
	require.True(t, sub.Equal(map[string]any{"y": 1}))

	v2, err := b.SetDefault("x", "ignored")
	require.NoError(t, err)
	require.Same(t, sub, v2)
}

func TestLazyConversionIsStable(t *testing.T) {
	b := Must(New(map[string]any{
		"sub": map[string]any{"x": 1},
		"l":   []any{1, map[string]any{"y": 2}},
	}))
	s1, err := b.Get("sub")
	require.NoError(t, err)
	s2, err := b.Get("sub")
	require.NoError(t, err)
	require.IsType(t, &Box{}, s1)
	require.Same(t, s1, s2)

	l, err := b.SubList("l")
	require.NoError(t, err)
	l2, err := b.SubList("l")
	require.NoError(t, err)
	require.Same(t, l, l2)
	e, err := l.Get(1)
	require.NoError(t, err)
	require.IsType(t, &Box{}, e)

	_, err = b.Sub("l")
	require.ErrorIs(t, err, ErrType)

	require.NoError(t, b.Set("sub", map[string]any{"z": 3}))
	s3, err := b.Sub("sub")
	require.NoError(t, err)
	require.NotSame(t, s1, s3)
	require.True(t, s3.Equal(map[string]any{"z": 3}))
}

func TestSelfReference(t *testing.T) {
	d := map[string]any{}
	d["self"] = d
	b := Must(New(d))
	v, err := b.Get("self")
	require.NoError(t, err)
	require.Same(t, b, v)

	m := b.ToMap()
	self, ok := m["self"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, reflect.ValueOf(m).Pointer(), reflect.ValueOf(self).Pointer())

	require.Equal(t, `<Box: {"self": {...}}>`, b.String())

	_, err = b.ToJSON()
	require.ErrorIs(t, err, ErrCycle)
}

func TestIndirectCycle(t *testing.T) {
	m1 := map[string]any{"name": "one"}
	m2 := map[string]any{"back": m1}
	m1["next"] = m2
	b := Must(New(m1))
	next, err := b.Sub("next")
	require.NoError(t, err)
	back, err := next.Get("back")
	require.NoError(t, err)
	require.Same(t, b, back)
	require.True(t, b.Equal(b.DeepCopy()))
}

func TestEagerIndirectCycle(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
	}{
		{name: "frozen", opt: Frozen()},
		{name: "warn", opt: Duplicates(ident.Warn)},
		{name: "error", opt: Duplicates(ident.Error)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := map[string]any{"x": 1}
			d["a"] = map[string]any{"back": d}
			b, err := New(d, tc.opt, quiet)
			require.NoError(t, err)
			back, err := b.GetPath("a.back")
			require.NoError(t, err)
			require.Same(t, b, back)
		})
	}
}

func TestFrozenSequenceCycle(t *testing.T) {
	d := map[string]any{}
	d["l"] = []any{d}
	b := Must(New(d, Frozen()))
	v, err := b.Get("l")
	require.NoError(t, err)
	tup, ok := v.(Tuple)
	require.True(t, ok)
	require.Same(t, b, tup[0])

	s := []any{nil}
	s[0] = s
	_, err = New(map[string]any{"s": s}, Frozen())
	require.ErrorIs(t, err, ErrCycle)
}

func TestUpdateReplacesMergeMerges(t *testing.T) {
	a := Must(New(map[string]any{"k": map[string]any{"x": 1}}))
	c := a.DeepCopy()

	require.NoError(t, a.Update(map[string]any{"k": map[string]any{"y": 2}}))
	k, err := a.Sub("k")
	require.NoError(t, err)
	require.True(t, k.Equal(map[string]any{"y": 2}))

	require.NoError(t, c.MergeUpdate(map[string]any{"k": map[string]any{"z": 3}}))
	k, err = c.Sub("k")
	require.NoError(t, err)
	require.True(t, k.Equal(map[string]any{"x": 1, "z": 3}))

	require.NoError(t, c.Update(nil, KV{Key: "n", Value: 1}))
	require.True(t, c.Has("n"))
}

func TestMergeLists(t *testing.T) {
	tests := []struct {
		mode ListMergeMode
		want []any
	}{
		{mode: ListReplace, want: []any{2, 3}},
		{mode: ListExtend, want: []any{1, 2, 2, 3}},
		{mode: ListUnique, want: []any{1, 2, 3}},
	}
	for _, tc := range tests {
		t.Run(tc.mode.String(), func(t *testing.T) {
			b := Must(New(map[string]any{"l": []any{1, 2}}))
			require.NoError(t, b.MergeUpdate(map[string]any{"l": []any{2, 3}}, ListMerge(tc.mode)))
			l, err := b.SubList("l")
			require.NoError(t, err)
			if diff := cmp.Diff(tc.want, l.ToList()); diff != "" {
				t.Errorf("merged list mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMergeUniqueDropsIncomingRepeats(t *testing.T) {
	b := Must(New(map[string]any{"l": []any{1}}))
	require.NoError(t, b.MergeUpdate(map[string]any{"l": []any{2, 2, 1}}, ListMerge(ListUnique)))
	l, err := b.SubList("l")
	require.NoError(t, err)
	require.Equal(t, []any{1, 2}, l.ToList())
}

func TestCopy(t *testing.T) {
	b := Must(New(map[string]any{"sub": map[string]any{"x": 1}, "n": 1}))
	sub, err := b.Sub("sub")
	require.NoError(t, err)

	c := b.Copy()
	require.True(t, c.Equal(b))
	csub, err := c.Sub("sub")
	require.NoError(t, err)
	require.Same(t, sub, csub)
	require.NoError(t, c.Set("n", 2))
	v, _ := b.Get("n")
	require.Equal(t, 1, v)

	d := b.DeepCopy()
	require.True(t, d.Equal(b))
	dsub, err := d.Sub("sub")
	require.NoError(t, err)
	require.NotSame(t, sub, dsub)
	require.NoError(t, dsub.Set("x", 2))
	v, _ = sub.Get("x")
	require.Equal(t, 1, v)

	cyc := map[string]any{}
	cyc["self"] = cyc
	cb := Must(New(cyc))
	cd := cb.DeepCopy()
	v, err = cd.Get("self")
	require.NoError(t, err)
	require.Same(t, cd, v)
}

func TestEqual(t *testing.T) {
	b := Must(New(map[string]any{"a": 1, "l": []any{1.0, "x"}}))
	require.True(t, b.Equal(map[string]any{"a": 1.0, "l": []any{1, "x"}}))
	require.True(t, b.Equal(codec.Map{{Key: "l", Value: []any{1, "x"}}, {Key: "a", Value: 1}}))
	require.True(t, b.Equal(Must(New(map[string]any{"l": []any{1, "x"}, "a": 1}))))
	require.False(t, b.Equal(map[string]any{"a": 1}))
	require.False(t, b.Equal(map[string]any{"a": "1", "l": []any{1, "x"}}))
	require.False(t, b.Equal([]any{1}))
	require.False(t, b.Equal(nil))
}

func TestHash(t *testing.T) {
	x := Must(New(codec.Map{{Key: "a", Value: 1}, {Key: "b", Value: []any{1, 2}}}, Frozen()))
	y := Must(New(codec.Map{{Key: "b", Value: []any{1, 2}}, {Key: "a", Value: 1.0}}, Frozen()))
	hx, err := x.Hash()
	require.NoError(t, err)
	hy, err := y.Hash()
	require.NoError(t, err)
	require.Equal(t, hx, hy)

	z := Must(New(codec.Map{{Key: "a", Value: 1}, {Key: "b", Value: []any{2, 1}}}, Frozen()))
	hz, err := z.Hash()
	require.NoError(t, err)
	require.NotEqual(t, hx, hz)

	_, err = Must(New()).Hash()
	require.ErrorIs(t, err, ErrUnhashable)
}

func TestFrozen(t *testing.T) {
	b := Must(New(map[string]any{
		"a":   1,
		"sub": map[string]any{"x": 1},
		"l":   []any{1, map[string]any{"y": 2}},
	}, Frozen()))
	before := b.ToMap()

	sub, err := b.Sub("sub")
	require.NoError(t, err)
	l, err := b.Get("l")
	require.NoError(t, err)
	tup, ok := l.(Tuple)
	require.True(t, ok)
	require.IsType(t, &Box{}, tup[1])

	mutations := map[string]func() error{
		"set":         func() error { return b.Set("a", 2) },
		"set new":     func() error { return b.Set("new", 2) },
		"delete":      func() error { return b.Delete("a") },
		"update":      func() error { return b.Update(map[string]any{"a": 2}) },
		"merge":       func() error { return b.MergeUpdate(map[string]any{"a": 2}) },
		"clear":       func() error { return b.Clear() },
		"pop":         func() error { _, err := b.Pop("a"); return err },
		"pop missing": func() error { _, err := b.PopOr("zz", 1); return err },
		"popitem":     func() error { _, err := b.PopItem(); return err },
		"set attr":    func() error { return b.SetAttr("a", 2) },
		"del attr":    func() error { return b.DelAttr("a") },
		"patch":       func() error { return b.MergePatch([]byte(`{"a":2}`)) },
		"nested set":  func() error { return sub.Set("x", 2) },
	}
	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			require.ErrorIs(t, mutate(), ErrFrozen)
		})
	}
	if diff := cmp.Diff(before, b.ToMap()); diff != "" {
		t.Errorf("frozen box changed (-before +after):\n%s", diff)
	}
}

func TestRecast(t *testing.T) {
	b := Must(New(map[string]any{"port": "80"}, Recast("port", recast.Int)))
	v, err := b.Get("port")
	require.NoError(t, err)
	require.Equal(t, 80, v)

	require.NoError(t, b.Set("port", 8080.0))
	v, _ = b.Get("port")
	require.Equal(t, 8080, v)

	err = b.Set("port", "eighty")
	require.ErrorIs(t, err, ErrRecast)
	var re *RecastError
	require.True(t, errors.As(err, &re))
	require.Equal(t, "port", re.Key)
	require.ErrorContains(t, re.Err, `invalid int "eighty"`)
	v, _ = b.Get("port")
	require.Equal(t, 8080, v)

	_, err = New(map[string]any{"port": []any{}}, Recast("port", recast.Int))
	require.ErrorIs(t, err, ErrRecast)
	require.ErrorIs(t, err, recast.ErrType)
}

func TestDuplicates(t *testing.T) {
	src := map[string]any{"A": 1, "a": 2}

	_, err := New(src, CamelKiller(), Duplicates(ident.Error))
	require.ErrorIs(t, err, ErrDuplicateKey)
	var de *DuplicateError
	require.True(t, errors.As(err, &de))
	require.Equal(t, []any{"A", "a"}, de.Keys())

	var warnings []error
	b, err := New(src, CamelKiller(), Duplicates(ident.Warn), quiet, OnWarning(func(err error) {
		warnings = append(warnings, err)
	}))
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	require.ErrorIs(t, warnings[0], ErrDuplicateKey)
	require.Equal(t, 2, b.Len())

	_, err = New(src, Duplicates(ident.Error))
	require.NoError(t, err)

	b = Must(New(map[string]any{"a b": 1, "a?b": 2}))
	v, err := b.Attr("a_b")
	require.NoError(t, err)
	require.Equal(t, 1, v)

	b = Must(New(map[string]any{"a b": 1}, Duplicates(ident.Error)))
	require.ErrorIs(t, b.Set("a_b", 2), ErrDuplicateKey)
	require.False(t, b.Has("a_b"))
	require.NoError(t, b.Set("a b", 3))
}

func TestIntactTypes(t *testing.T) {
	raw := map[string]int{"a": 1}
	b := Must(New(map[string]any{"m": raw, "n": map[string]any{}}, IntactTypes(reflect.TypeFor[map[string]int]())))
	v, err := b.Get("m")
	require.NoError(t, err)
	require.IsType(t, raw, v)
	v, err = b.Get("n")
	require.NoError(t, err)
	require.IsType(t, &Box{}, v)
}

func TestModifyTuples(t *testing.T) {
	src := map[string]any{"t": Tuple{map[string]any{"a": 1}, [2]int{1, 2}}}

	v, err := Must(New(src)).Get("t")
	require.NoError(t, err)
	require.IsType(t, map[string]any{}, v.(Tuple)[0])

	v, err = Must(New(src, ModifyTuples())).Get("t")
	require.NoError(t, err)
	tup := v.(Tuple)
	require.IsType(t, &Box{}, tup[0])
	require.Equal(t, Tuple{1, 2}, tup[1])
}

func TestString(t *testing.T) {
	b := Must(New(codec.Map{
		{Key: "a", Value: 1},
		{Key: "l", Value: []any{"x", nil}},
		{Key: 2, Value: map[string]any{"k": true}},
	}))
	require.Equal(t, `<Box: {"a": 1, "l": ["x", null], 2: {"k": true}}>`, b.String())
}
