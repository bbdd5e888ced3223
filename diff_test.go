package box

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDiff(t *testing.T) {
	a := Must(New(KV{Key: "a", Value: 1}, KV{Key: "b", Value: 2}))
	b := Must(New(KV{Key: "a", Value: 1}, KV{Key: "b", Value: 3}))

	d, changed, err := Diff(a, b)
	require.NoError(t, err)
	require.True(t, changed)
	require.Equal(t, " a: 1\n-b: 2\n+b: 3\n", d)

	d, changed, err = Diff(a, a.Copy())
	require.NoError(t, err)
	require.False(t, changed)
	require.Equal(t, " a: 1\n b: 2\n", d)

	l := MustList(NewList([]any{1}))
	l.Append(l)
	_, _, err = Diff(a, l)
	require.ErrorIs(t, err, ErrCycle)
}
