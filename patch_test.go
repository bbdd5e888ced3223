package box

import (
	"testing"

	"github.com/signadot/tony-format/box/ident"
	"github.com/signadot/tony-format/box/recast"
	"github.com/stretchr/testify/require"
)

func TestApplyJSONPatch(t *testing.T) {
	b, err := FromJSON([]byte(`{"b": 1, "a": {"x": 1}}`))
	require.NoError(t, err)
	patch := `[
		{"op": "add", "path": "/a/y", "value": 2},
		{"op": "replace", "path": "/b", "value": 5},
		{"op": "add", "path": "/c", "value": true}
	]`
	require.NoError(t, b.ApplyJSONPatch([]byte(patch)))
	d, err := b.ToJSON()
	require.NoError(t, err)
	require.Equal(t, `{"b":5,"a":{"x":1,"y":2},"c":true}`, string(d))

	require.ErrorIs(t, b.ApplyJSONPatch([]byte(`[{`)), ErrFormat)

	err = b.ApplyJSONPatch([]byte(`[{"op": "remove", "path": "/nope"}]`))
	require.Error(t, err)
	d, err = b.ToJSON()
	require.NoError(t, err)
	require.Equal(t, `{"b":5,"a":{"x":1,"y":2},"c":true}`, string(d))
}

func TestMergePatch(t *testing.T) {
	b, err := FromJSON([]byte(`{"b": 1, "a": {"x": 1}}`))
	require.NoError(t, err)
	require.NoError(t, b.MergePatch([]byte(`{"a": {"x": null, "z": 3}, "d": "new"}`)))
	d, err := b.ToJSON()
	require.NoError(t, err)
	require.Equal(t, `{"b":1,"a":{"z":3},"d":"new"}`, string(d))

	sub, err := b.Sub("a")
	require.NoError(t, err)
	require.NoError(t, sub.Set("w", 1))
	v, err := b.GetPath("a.w")
	require.NoError(t, err)
	require.Equal(t, 1, v)
}

func TestPatchIntKeys(t *testing.T) {
	b := Must(New(KV{Key: 2, Value: "two"}, KV{Key: "x", Value: 1}))
	require.NoError(t, b.MergePatch([]byte(`{"x": 2}`)))
	require.Equal(t, []any{2, "x"}, b.Keys())
}

func TestPatchFrozen(t *testing.T) {
	b := Must(New(map[string]any{"a": 1}, Frozen()))
	require.ErrorIs(t, b.MergePatch([]byte(`{"a": 2}`)), ErrFrozen)
	require.ErrorIs(t, b.ApplyJSONPatch([]byte(`[]`)), ErrFrozen)
}

func TestFailedPatchKeepsBox(t *testing.T) {
	b := Must(New(
		KV{Key: "port", Value: 1}, KV{Key: "b", Value: 2}, KV{Key: "c", Value: 3},
		Recast("port", recast.Int), Duplicates(ident.Error)))
	sub := Must(New(map[string]any{"x": 1}))
	require.NoError(t, b.Set("sub", sub))

	err := b.ApplyJSONPatch([]byte(`[{"op": "replace", "path": "/port", "value": "notanint"}]`))
	require.ErrorIs(t, err, ErrRecast)
	err = b.MergePatch([]byte(`{"b-": 5}`))
	require.ErrorIs(t, err, ErrDuplicateKey)

	require.Equal(t, []any{"port", "b", "c", "sub"}, b.Keys())
	d, err := b.ToJSON()
	require.NoError(t, err)
	require.Equal(t, `{"port":1,"b":2,"c":3,"sub":{"x":1}}`, string(d))
	v, err := b.Get("sub")
	require.NoError(t, err)
	require.Same(t, sub, v)
}
