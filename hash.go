package box

import (
	"encoding/binary"
	"fmt"
	"hash/maphash"
	"math"
	"reflect"
)

// seed is shared by every hash in the process, so equal frozen
// containers hash equally.
var seed = maphash.MakeSeed()

const (
	boxSalt  = 54321
	listSalt = 98765
)

// Hash returns a hash of the entries of a frozen box that does not
// depend on their order. Unfrozen boxes fail with ErrUnhashable.
func (b *Box) Hash() (uint64, error) {
	if !b.cfg.Frozen {
		return 0, fmt.Errorf("%w: box is not frozen", ErrUnhashable)
	}
	return b.hash(map[any]bool{})
}

func (b *Box) hash(active map[any]bool) (uint64, error) {
	active[b] = true
	defer delete(active, b)
	var res uint64 = boxSalt
	for _, k := range b.keys {
		kh, err := hashValue(k, active)
		if err != nil {
			return 0, err
		}
		vh, err := hashValue(b.value(k), active)
		if err != nil {
			return 0, fmt.Errorf("value of %s: %w", quoteKey(k), err)
		}
		var h maphash.Hash
		h.SetSeed(seed)
		writeUint64(&h, kh)
		writeUint64(&h, vh)
		res ^= h.Sum64()
	}
	return res, nil
}

// Hash returns an ordered hash of the elements of a frozen list.
func (l *List) Hash() (uint64, error) {
	if !l.cfg.Frozen {
		return 0, fmt.Errorf("%w: list is not frozen", ErrUnhashable)
	}
	return l.hash(map[any]bool{})
}

func (l *List) hash(active map[any]bool) (uint64, error) {
	active[l] = true
	defer delete(active, l)
	h, err := Tuple(l.items).hash(active)
	if err != nil {
		return 0, err
	}
	return listSalt ^ h, nil
}

func (t Tuple) hash(active map[any]bool) (uint64, error) {
	var h maphash.Hash
	h.SetSeed(seed)
	h.WriteByte(byte(reflect.Slice))
	for i, e := range t {
		eh, err := hashValue(e, active)
		if err != nil {
			return 0, fmt.Errorf("element %d: %w", i, err)
		}
		writeUint64(&h, eh)
	}
	return h.Sum64(), nil
}

func hashValue(v any, active map[any]bool) (uint64, error) {
	switch x := v.(type) {
	case *Box:
		if active[x] {
			return boxSalt, nil
		}
		if !x.cfg.Frozen {
			return 0, fmt.Errorf("%w: box is not frozen", ErrUnhashable)
		}
		return x.hash(active)
	case *List:
		if active[x] {
			return listSalt, nil
		}
		if !x.cfg.Frozen {
			return 0, fmt.Errorf("%w: list is not frozen", ErrUnhashable)
		}
		return x.hash(active)
	case Tuple:
		return x.hash(active)
	}
	var h maphash.Hash
	h.SetSeed(seed)
	if err := writeScalar(&h, v); err != nil {
		return 0, err
	}
	return h.Sum64(), nil
}

// writeScalar writes v so that values equal under Equal write the same
// bytes: integral floats are written as integers.
func writeScalar(h *maphash.Hash, v any) error {
	switch x := v.(type) {
	case nil:
		h.WriteByte(0)
		return nil
	case bool:
		h.WriteByte(1)
		if x {
			h.WriteByte(1)
		} else {
			h.WriteByte(0)
		}
		return nil
	case string:
		h.WriteByte(3)
		h.WriteString(x)
		return nil
	case []byte:
		h.WriteByte(4)
		h.Write(x)
		return nil
	}
	if i, ok := integer(v); ok {
		h.WriteByte(2)
		writeUint64(h, uint64(i))
		return nil
	}
	if f, ok := numeric(v); ok {
		if f == math.Trunc(f) && math.Abs(f) < math.MaxInt64 {
			h.WriteByte(2)
			writeUint64(h, uint64(int64(f)))
			return nil
		}
		h.WriteByte(5)
		writeUint64(h, math.Float64bits(f))
		return nil
	}
	if !reflect.ValueOf(v).Comparable() {
		return fmt.Errorf("%w: value of type %T", ErrUnhashable, v)
	}
	h.WriteByte(9)
	writeUint64(h, maphash.Comparable(seed, v))
	return nil
}

func writeUint64(h *maphash.Hash, u uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], u)
	h.Write(b[:])
}
