package box

// Tuple is an immutable sequence. Frozen boxes store their sequences as
// tuples so that they can be hashed.
type Tuple []any

// Hash hashes the elements in order.
func (t Tuple) Hash() (uint64, error) {
	return t.hash(map[any]bool{})
}

func (t Tuple) Len() int {
	return len(t)
}

func (t Tuple) Equal(other any) bool {
	return equal(t, other, map[pairID]bool{})
}
