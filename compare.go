package box

import (
	"cmp"
	"fmt"
	"math"
	"reflect"
	"strings"
)

// rank orders values of different kinds:
// nil < bool < number < string < sequence < mapping < anything else.
func rank(v any) int {
	switch v.(type) {
	case nil:
		return 0
	case bool:
		return 1
	case string:
		return 3
	}
	if _, ok := numeric(v); ok {
		return 2
	}
	if _, ok := asSequence(v); ok {
		return 4
	}
	if _, ok := asMapping(v); ok {
		return 5
	}
	return 6
}

// Compare is a total order over box values, used by List.Sort when no
// comparison is given. Values of different kinds are ordered by kind,
// sequences lexicographically and mappings by length.
func Compare(a, b any) int {
	ra, rb := rank(a), rank(b)
	if ra != rb {
		return cmp.Compare(ra, rb)
	}
	switch ra {
	case 0:
		return 0
	case 1:
		x, y := a.(bool), b.(bool)
		switch {
		case x == y:
			return 0
		case !x:
			return -1
		}
		return 1
	case 2:
		if ia, ok := integer(a); ok {
			if ib, ok := integer(b); ok {
				return cmp.Compare(ia, ib)
			}
		}
		fa, _ := numeric(a)
		fb, _ := numeric(b)
		return cmp.Compare(fa, fb)
	case 3:
		return strings.Compare(a.(string), b.(string))
	case 4:
		sa, _ := asSequence(a)
		sb, _ := asSequence(b)
		for i := range min(len(sa), len(sb)) {
			if c := Compare(sa[i], sb[i]); c != 0 {
				return c
			}
		}
		return cmp.Compare(len(sa), len(sb))
	case 5:
		ma, _ := asMapping(a)
		mb, _ := asMapping(b)
		return cmp.Compare(ma.length(), mb.length())
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

// integer returns v as an int64 if it is an integer that fits.
func integer(v any) (int64, bool) {
	switch x := v.(type) {
	case int:
		return int64(x), true
	case int64:
		return x, true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if u := rv.Uint(); u <= math.MaxInt64 {
			return int64(u), true
		}
	}
	return 0, false
}

// numeric returns v as a float64 if it is any kind of number.
func numeric(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int:
		return float64(x), true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}
