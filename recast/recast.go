package recast

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/signadot/tony-format/box/ident"
)

// Func coerces a value before it is stored.
type Func func(any) (any, error)

var ErrType = errors.New("unsupported type")

func Int(v any) (any, error) {
	switch x := v.(type) {
	case int:
		return x, nil
	case int64:
		return int(x), nil
	case uint64:
		if x > math.MaxInt64 {
			return nil, fmt.Errorf("%d overflows int", x)
		}
		return int(x), nil
	case float64:
		return int(x), nil
	case bool:
		if x {
			return 1, nil
		}
		return 0, nil
	case string:
		s := strings.TrimSpace(x)
		if i, err := strconv.Atoi(s); err == nil {
			return i, nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid int %q", x)
		}
		return int(f), nil
	}
	return nil, fmt.Errorf("%w %T for int", ErrType, v)
}

func Float(v any) (any, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case uint64:
		return float64(x), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid float %q", x)
		}
		return f, nil
	}
	return nil, fmt.Errorf("%w %T for float", ErrType, v)
}

// Bool treats n, no, false, f, 0 and off (any case) as false and any
// other non-empty text as true.
func Bool(v any) (any, error) {
	switch x := v.(type) {
	case bool:
		return x, nil
	case nil:
		return false, nil
	case int:
		return x != 0, nil
	case float64:
		return x != 0, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(x)) {
		case "", "n", "no", "false", "f", "0", "off":
			return false, nil
		}
		return true, nil
	}
	return nil, fmt.Errorf("%w %T for bool", ErrType, v)
}

func String(v any) (any, error) {
	switch v.(type) {
	case map[string]any, map[any]any:
		return nil, fmt.Errorf("%w %T for string", ErrType, v)
	}
	return ident.KeyString(v), nil
}

// List returns a coercion splitting text on sep. Surrounding brackets
// and whitespace around elements are removed; each element then goes
// through mod if it is non-nil. Lists are passed through mod as well.
func List(sep string, mod Func) Func {
	if sep == "" {
		sep = ","
	}
	return func(v any) (any, error) {
		var parts []any
		switch x := v.(type) {
		case string:
			s := strings.TrimSuffix(strings.TrimPrefix(strings.TrimSpace(x), "["), "]")
			for _, p := range strings.Split(s, sep) {
				p = strings.TrimSpace(p)
				if p == "" && sep == " " {
					continue
				}
				parts = append(parts, p)
			}
		case []any:
			parts = append(parts, x...)
		default:
			return nil, fmt.Errorf("%w %T for list", ErrType, v)
		}
		if mod == nil {
			return parts, nil
		}
		for i := range parts {
			p, err := mod(parts[i])
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			parts[i] = p
		}
		return parts, nil
	}
}
