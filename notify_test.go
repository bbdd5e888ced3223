package box

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type recorder struct {
	changes []Change
	err     error
}

func (r *recorder) hook(c Change) error {
	r.changes = append(r.changes, c)
	return r.err
}

func (r *recorder) last(t *testing.T) Change {
	t.Helper()
	require.NotEmpty(t, r.changes)
	return r.changes[len(r.changes)-1]
}

func TestOnChange(t *testing.T) {
	rec := &recorder{}
	b := Must(New(map[string]any{"sub": map[string]any{"x": 1}, "l": []any{}}, OnChange(rec.hook)))
	require.Empty(t, rec.changes)

	require.NoError(t, b.Set("a", 1))
	require.Equal(t, Change{Container: b, Key: "a", Value: 1, Action: ActionSet, Root: true}, rec.last(t))

	sub, err := b.Sub("sub")
	require.NoError(t, err)
	require.Len(t, rec.changes, 1)
	require.NoError(t, sub.Set("y", 2))
	c := rec.last(t)
	require.Equal(t, ActionChildChange, c.Action)
	require.False(t, c.Root)
	require.Same(t, b, c.Container)
	require.Equal(t, "sub", c.Key)
	require.Same(t, sub, c.Value)

	l, err := b.SubList("l")
	require.NoError(t, err)
	require.NoError(t, l.Append(1))
	c = rec.last(t)
	require.Equal(t, ActionChildChange, c.Action)
	require.Equal(t, "l", c.Key)

	require.NoError(t, b.Delete("a"))
	require.Equal(t, Change{Container: b, Key: "a", Action: ActionDelete, Root: true}, rec.last(t))

	require.NoError(t, b.Delete("sub"))
	require.NoError(t, sub.Set("z", 3))
	c = rec.last(t)
	require.Same(t, sub, c.Container)
	require.True(t, c.Root)
	require.Equal(t, ActionSet, c.Action)
}

func TestOnChangeErrorIsLogged(t *testing.T) {
	rec := &recorder{err: errors.New("boom")}
	b := Must(New(OnChange(rec.hook), quiet))
	require.NoError(t, b.Set("a", 1))
	require.Len(t, rec.changes, 1)
}

func TestListOnChange(t *testing.T) {
	rec := &recorder{}
	l := MustList(NewList([]any{3, 1}, OnChange(rec.hook)))
	require.NoError(t, l.Append(2))
	require.Equal(t, Change{Container: l, Key: 2, Value: 2, Action: ActionAppend, Root: true}, rec.last(t))
	require.NoError(t, l.Sort(nil))
	require.Equal(t, ActionSort, rec.last(t).Action)
	_, err := l.Pop(0)
	require.NoError(t, err)
	require.Equal(t, Change{Container: l, Key: 0, Action: ActionPop, Root: true}, rec.last(t))
	require.NoError(t, l.Remove(3))
	require.Equal(t, ActionRemove, rec.last(t).Action)
	require.Equal(t, "remove", ActionRemove.String())
}
