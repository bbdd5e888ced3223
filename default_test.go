package box

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultChain(t *testing.T) {
	b := Must(New(DefaultBox()))
	a, err := b.Attr("a")
	require.NoError(t, err)
	ab, err := a.(*Box).Attr("b")
	require.NoError(t, err)
	require.Equal(t, 0, b.Len())

	require.NoError(t, ab.(*Box).SetAttr("c", 5))
	require.True(t, b.Equal(map[string]any{"a": map[string]any{"b": map[string]any{"c": 5}}}))

	again, err := b.Attr("a")
	require.NoError(t, err)
	require.Same(t, a, again)
}

func TestDefaultChainWithDots(t *testing.T) {
	b := Must(New(DefaultBox(), Dots()))
	require.NoError(t, b.Set("x.y.z", 1))
	require.True(t, b.Equal(map[string]any{"x": map[string]any{"y": map[string]any{"z": 1}}}))
}

func TestDefaultReadDoesNotStore(t *testing.T) {
	b := Must(New(DefaultBox()))
	v, err := b.Get("missing")
	require.NoError(t, err)
	require.IsType(t, &Box{}, v)
	require.False(t, b.Has("missing"))

	// An explicit value stored meanwhile is kept.
	require.NoError(t, b.Set("missing", 1))
	require.NoError(t, v.(*Box).Set("k", 2))
	got, _ := b.Get("missing")
	require.Equal(t, 1, got)
}

func TestDefaultKinds(t *testing.T) {
	calls := 0
	b := Must(New(DefaultValue(Factory(func() any {
		calls++
		return []any{}
	}))))
	v, err := b.Get("x")
	require.NoError(t, err)
	require.Equal(t, []any{}, v)
	require.Equal(t, 1, calls)

	proto := map[string]any{"n": 1}
	b = Must(New(DefaultValue(Prototype(proto))))
	v1, _ := b.Get("x")
	v2, _ := b.Get("y")
	v1.(map[string]any)["n"] = 2
	require.Equal(t, 1, v2.(map[string]any)["n"])
	require.Equal(t, 1, proto["n"])

	b = Must(New(DefaultValue(Constant(7))))
	v, _ = b.Attr("anything")
	require.Equal(t, 7, v)

	require.Equal(t, "factory", Factory(nil).String())
	require.Equal(t, "self", Default{}.String())
}

func TestNoneTransform(t *testing.T) {
	src := map[string]any{"a": nil, "b": 1}

	b := Must(New(src, DefaultBox()))
	require.Equal(t, []any{"b"}, b.Keys())
	require.NoError(t, b.Set("c", nil))
	v, err := b.Get("c")
	require.NoError(t, err)
	require.IsType(t, &Box{}, v)

	b = Must(New(src, DefaultBox(), NoneTransform(false)))
	require.Equal(t, 2, b.Len())
	v, err = b.Get("a")
	require.NoError(t, err)
	require.Nil(t, v)

	b = Must(New(src))
	v, err = b.Get("a")
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestNoPropagate(t *testing.T) {
	b := Must(New(map[string]any{"sub": map[string]any{}}, DefaultBox(), NoPropagate()))
	_, err := b.Get("other")
	require.NoError(t, err)
	sub, err := b.Sub("sub")
	require.NoError(t, err)
	_, err = sub.Get("other")
	require.ErrorIs(t, err, ErrKeyNotFound)
}

func TestGetOr(t *testing.T) {
	b := Must(New(map[string]any{"a": 1}))
	require.Equal(t, 1, b.GetOr("a", 2))
	require.Equal(t, 2, b.GetOr("b", 2))
	require.IsType(t, &Box{}, b.GetOr("b", map[string]any{}))
	require.False(t, b.Has("b"))
}
