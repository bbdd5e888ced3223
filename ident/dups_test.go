package ident

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParsePolicy(t *testing.T) {
	for in, want := range map[string]Policy{
		"":        Ignore,
		"ignore":  Ignore,
		"warn":    Warn,
		"warning": Warn,
		"error":   Error,
	} {
		got, err := ParsePolicy(in)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
	_, err := ParsePolicy("loud")
	require.Error(t, err)

	var p Policy
	require.NoError(t, p.UnmarshalText([]byte("warn")))
	require.Equal(t, Warn, p)
	require.Equal(t, "warn", p.String())
}

func TestCheck(t *testing.T) {
	keys := []any{"?a", "b", "!a"}

	require.NoError(t, Check(Ignore, Namer{}, keys, nil))

	err := Check(Error, Namer{}, keys, nil)
	require.ErrorIs(t, err, ErrDuplicateKey)
	var de *DuplicateError
	require.True(t, errors.As(err, &de))
	require.Equal(t, []any{"?a", "!a"}, de.Keys())
	require.Contains(t, err.Error(), `"?a", "!a"(a)`)

	var warned []error
	require.NoError(t, Check(Warn, Namer{}, keys, func(err error) { warned = append(warned, err) }))
	require.Len(t, warned, 1)
	require.ErrorIs(t, warned[0], ErrDuplicateKey)

	require.NoError(t, Check(Error, Namer{}, []any{"A", "a"}, nil))
	require.ErrorIs(t, Check(Error, Namer{CamelKiller: true}, []any{"A", "a"}, nil), ErrDuplicateKey)
}

func TestCheckInsert(t *testing.T) {
	keys := []any{"?a"}
	require.ErrorIs(t, CheckInsert(Error, Namer{}, "^a", keys, nil), ErrDuplicateKey)
	require.NoError(t, CheckInsert(Error, Namer{}, "?a", keys, nil))
	require.NoError(t, CheckInsert(Error, Namer{}, "b", keys, nil))
	require.Equal(t, []any{"?a"}, keys)
}

func TestMatch(t *testing.T) {
	keys := []any{"b", "?a", "!a", 3}
	k, ok := Namer{}.Match("a", keys)
	require.True(t, ok)
	require.Equal(t, "?a", k)

	k, ok = Namer{}.Match("x3", keys)
	require.True(t, ok)
	require.Equal(t, 3, k)

	_, ok = Namer{}.Match("", []any{"!"})
	require.False(t, ok)

	k, ok = MatchCamel("camel_case", []any{"x", "CamelCase"})
	require.True(t, ok)
	require.Equal(t, "CamelCase", k)
}
