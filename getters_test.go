package box

import (
	"testing"

	"github.com/signadot/tony-format/box/recast"
	"github.com/stretchr/testify/require"
)

func TestTypedGetters(t *testing.T) {
	b := Must(New(map[string]any{
		"port":   "8080",
		"debug":  "no",
		"ratio":  "0.5",
		"hosts":  "[a, b]",
		"ids":    []any{1, 2},
		"Name-1": "x",
	}, DefaultBox()))

	port, err := b.GetInt("port")
	require.NoError(t, err)
	require.Equal(t, 8080, port)

	debug, err := b.GetBool("debug")
	require.NoError(t, err)
	require.False(t, debug)

	ratio, err := b.GetFloat("ratio")
	require.NoError(t, err)
	require.Equal(t, 0.5, ratio)

	s, err := b.GetString("port")
	require.NoError(t, err)
	require.Equal(t, "8080", s)

	s, err = b.GetString("Name_1")
	require.NoError(t, err)
	require.Equal(t, "x", s)

	hosts, err := b.GetList("hosts", ",", nil)
	require.NoError(t, err)
	require.Equal(t, []any{"a", "b"}, hosts)

	ids, err := b.GetList("ids", "", recast.String)
	require.NoError(t, err)
	require.Equal(t, []any{"1", "2"}, ids)
}

func TestTypedGetterDefaults(t *testing.T) {
	b := Must(New(map[string]any{"hosts": "a b"}, DefaultBox()))

	n, err := b.GetInt("missing", 7)
	require.NoError(t, err)
	require.Equal(t, 7, n)

	_, err = b.GetInt("missing")
	require.ErrorIs(t, err, ErrKeyNotFound)
	require.Equal(t, 1, b.Len())

	_, err = b.GetInt("hosts")
	require.ErrorIs(t, err, ErrRecast)

	l, err := b.GetList("other", " ", nil, []any{"z"})
	require.NoError(t, err)
	require.Equal(t, []any{"z"}, l)
}
