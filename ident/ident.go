package ident

import (
	"fmt"
	"go/token"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

// DefaultPrefix is prepended to names starting with a digit or naming a
// keyword.
const DefaultPrefix = "x"

var (
	firstCapRe  = regexp.MustCompile(`(.)([A-Z][a-z]+)`)
	allCapRe    = regexp.MustCompile(`([a-z0-9])([A-Z])`)
	underscores = regexp.MustCompile(`_+`)
)

// Namer normalizes keys into attribute names.
type Namer struct {
	CamelKiller bool
	Prefix      string
}

// Name returns the attribute name for key.
func (n Namer) Name(key any) string {
	s := KeyString(key)
	if n.CamelKiller {
		s = CamelKill(s)
	}
	buf := make([]byte, 0, len(s))
	for _, r := range s {
		if allowed(r) {
			buf = append(buf, byte(r))
			continue
		}
		buf = append(buf, '_')
	}
	out := strings.Trim(underscores.ReplaceAllString(string(buf), "_"), "_")
	if out == "" {
		return ""
	}
	prefix := n.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}
	if isDigit(out[0]) {
		out = prefix + out
	}
	for token.IsKeyword(out) {
		out = prefix + out
	}
	return out
}

// IsName reports whether s is already a legal attribute name, that is
// whether a key s is reachable by attribute without conversion.
func IsName(s string) bool {
	if s == "" || isDigit(s[0]) || token.IsKeyword(s) {
		return false
	}
	for _, r := range s {
		if !allowed(r) {
			return false
		}
	}
	return true
}

// ValidPrefix reports whether p can serve as a Namer prefix: prefixing
// with it must never produce a name starting with a digit.
func ValidPrefix(p string) bool {
	if p == "" || isDigit(p[0]) {
		return false
	}
	for _, r := range p {
		if !allowed(r) {
			return false
		}
	}
	return true
}

// CamelKill splits case transitions with '_' and case folds the result:
// "CamelCase" becomes "camel_case", "HTMLParser" becomes "html_parser".
func CamelKill(s string) string {
	s = firstCapRe.ReplaceAllString(s, "${1}_${2}")
	s = allCapRe.ReplaceAllString(s, "${1}_${2}")
	return underscores.ReplaceAllString(cases.Fold().String(s), "_")
}

// KeyString renders a key as text. Sequences and arrays (tuple keys) join
// their rendered elements with '_'.
func KeyString(key any) string {
	switch k := key.(type) {
	case nil:
		return "null"
	case string:
		return k
	case []byte:
		return string(k)
	case bool:
		return strconv.FormatBool(k)
	case int:
		return strconv.Itoa(k)
	case int64:
		return strconv.FormatInt(k, 10)
	case uint64:
		return strconv.FormatUint(k, 10)
	case float64:
		return strconv.FormatFloat(k, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(k), 'g', -1, 32)
	}
	v := reflect.ValueOf(key)
	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		parts := make([]string, v.Len())
		for i := range parts {
			parts[i] = KeyString(v.Index(i).Interface())
		}
		return strings.Join(parts, "_")
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(v.Uint(), 10)
	}
	if s, ok := key.(fmt.Stringer); ok {
		return s.String()
	}
	if v.Kind() == reflect.String {
		return v.String()
	}
	return fmt.Sprint(key)
}

func allowed(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
		return true
	}
	return false
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
