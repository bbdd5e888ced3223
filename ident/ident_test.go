package ident

import (
	"go/token"
	"testing"
)

func TestName(t *testing.T) {
	tests := []struct {
		name  string
		namer Namer
		key   any
		want  string
	}{
		{name: "plain", key: "foo", want: "foo"},
		{name: "spaces", key: "Hello World!", want: "Hello_World"},
		{name: "surrounding", key: "  a b  ", want: "a_b"},
		{name: "collapse", key: "a--b__c", want: "a_b_c"},
		{name: "digit", key: "3d", want: "x3d"},
		{name: "int", key: 42, want: "x42"},
		{name: "keyword", key: "for", want: "xfor"},
		{name: "keyword after trim", key: "?type?", want: "xtype"},
		{name: "custom prefix", namer: Namer{Prefix: "my"}, key: "1a", want: "my1a"},
		{name: "empty", key: "", want: ""},
		{name: "symbols only", key: "!!!", want: ""},
		{name: "non ascii", key: "café", want: "caf"},
		{name: "tuple key", key: []any{"a", 1}, want: "a_1"},
		{name: "array key", key: [2]int{1, 2}, want: "x1_2"},
		{name: "bool", key: true, want: "true"},
		{name: "camel", namer: Namer{CamelKiller: true}, key: "CamelCase", want: "camel_case"},
		{name: "camel acronym", namer: Namer{CamelKiller: true}, key: "HTMLParser", want: "html_parser"},
		{name: "camel lower first", namer: Namer{CamelKiller: true}, key: "camelCase", want: "camel_case"},
		{name: "camel off", key: "CamelCase", want: "CamelCase"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.namer.Name(tc.key); got != tc.want {
				t.Errorf("Name(%v) = %q, want %q", tc.key, got, tc.want)
			}
		})
	}
}

func TestKeyString(t *testing.T) {
	tests := []struct {
		key  any
		want string
	}{
		{nil, "null"},
		{"s", "s"},
		{[]byte("b"), "b"},
		{1.5, "1.5"},
		{int8(-3), "-3"},
		{uint16(7), "7"},
		{false, "false"},
		{[]any{"a", []any{1, 2}}, "a_1_2"},
	}
	for _, tc := range tests {
		if got := KeyString(tc.key); got != tc.want {
			t.Errorf("KeyString(%#v) = %q, want %q", tc.key, got, tc.want)
		}
	}
}

func TestIsName(t *testing.T) {
	for s, want := range map[string]bool{
		"a":     true,
		"a_b1":  true,
		"_x":    true,
		"":      false,
		"1a":    false,
		"a b":   false,
		"func":  false,
		"a.b":   false,
		"Hello": true,
	} {
		if got := IsName(s); got != want {
			t.Errorf("IsName(%q) = %v", s, got)
		}
	}
}

func TestValidPrefix(t *testing.T) {
	for p, want := range map[string]bool{
		"x":   true,
		"_":   true,
		"k_":  true,
		"":    false,
		"1":   false,
		"a-b": false,
	} {
		if got := ValidPrefix(p); got != want {
			t.Errorf("ValidPrefix(%q) = %v", p, got)
		}
	}
}

func FuzzName(f *testing.F) {
	for _, s := range []string{"", "a", "1", "for", "Hello World", "_1_", "x y z", "CamelCase", "日本"} {
		f.Add(s, false)
		f.Add(s, true)
	}
	f.Fuzz(func(t *testing.T, s string, camel bool) {
		got := Namer{CamelKiller: camel}.Name(s)
		if got == "" {
			return
		}
		if !IsName(got) {
			t.Fatalf("Name(%q) = %q is not a name", s, got)
		}
		if token.IsKeyword(got) {
			t.Fatalf("Name(%q) = %q is a keyword", s, got)
		}
	})
}
