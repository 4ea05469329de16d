package ui

import (
	"testing"

	"github.com/zem-editor/zem/pkg/eval/vals"
	"github.com/zem-editor/zem/pkg/persistent/hash"
)

var kTests = []struct {
	k1 Key
	k2 Key
}{
	{K('a'), Key{'a', 0}},
	{K('a', Alt), Key{'a', Alt}},
	{K('a', Alt, Ctrl), Key{'a', Alt | Ctrl}},
}

func TestK(t *testing.T) {
	for _, test := range kTests {
		if test.k1 != test.k2 {
			t.Errorf("%v != %v", test.k1, test.k2)
		}
	}
}

func TestKeyAsValue(t *testing.T) {
	k := K('a')
	if kind := vals.Kind(k); kind != "key" {
		t.Errorf("Kind(K('a')) = %q, want %q", kind, "key")
	}
	if h := vals.Hash(k); h != hash.DJB('a', 0) {
		t.Errorf("Hash(K('a')) = %v, want %v", h, hash.DJB('a', 0))
	}
	if !vals.Equal(k, K('a')) {
		t.Errorf("K('a') not equal to itself")
	}
	if vals.Equal(k, K('A')) || vals.Equal(k, K('a', Alt)) {
		t.Errorf("K('a') equal to a different key")
	}

	reprTests := []struct {
		key  Key
		repr string
	}{
		{K('a'), `(key "a")`},
		{K('a', Alt), `(key "Alt-a")`},
		{K('a', Ctrl, Alt, Shift), `(key "Ctrl-Alt-Shift-a")`},
		{K('\t'), `(key "Tab")`},
		{K(F1), `(key "F1")`},
		{K(-2000), `(key "(bad function key -2000)")`},
	}
	for _, test := range reprTests {
		if repr := vals.Repr(test.key); repr != test.repr {
			t.Errorf("Repr(%v) = %q, want %q", test.key, repr, test.repr)
		}
	}
}

var parseKeyTests = []struct {
	s       string
	wantKey Key
	wantErr string
}{
	{s: "x", wantKey: K('x')},
	{s: "Tab", wantKey: K(Tab)},
	{s: "Escape", wantKey: K(Escape)},
	{s: "F1", wantKey: K(F1)},

	// Alt- keys are case-sensitive.
	{s: "a-x", wantKey: Key{'x', Alt}},
	{s: "a-X", wantKey: Key{'X', Alt}},

	// Ctrl- keys are case-insensitive.
	{s: "C-x", wantKey: Key{'X', Ctrl}},
	{s: "C-X", wantKey: Key{'X', Ctrl}},

	// + is the same as -.
	{s: "C+X", wantKey: Key{'X', Ctrl}},

	// Full names and alternative names can also be used.
	{s: "M-x", wantKey: Key{'x', Alt}},
	{s: "Meta-x", wantKey: Key{'x', Alt}},

	// Multiple modifiers can appear in any order.
	{s: "Alt-Ctrl-Delete", wantKey: Key{Delete, Alt | Ctrl}},
	{s: "Ctrl-Alt-Delete", wantKey: Key{Delete, Alt | Ctrl}},

	// Ctrl-I and Ctrl-J are normalized to Tab and Enter.
	{s: "Ctrl-I", wantKey: K(Tab)},
	{s: "Ctrl-J", wantKey: K(Enter)},

	// Errors.
	{s: "F123", wantErr: "bad key: F123"},
	{s: "Super-X", wantErr: "bad modifier: super"},
}

func TestParseKey(t *testing.T) {
	for _, test := range parseKeyTests {
		key, err := ParseKey(test.s)
		if key != test.wantKey {
			t.Errorf("ParseKey(%q) => %v, want %v", test.s, key, test.wantKey)
		}
		if test.wantErr == "" {
			if err != nil {
				t.Errorf("ParseKey(%q) => error %v, want nil", test.s, err)
			}
		} else {
			if err == nil || err.Error() != test.wantErr {
				t.Errorf("ParseKey(%q) => error %v, want error with message %q",
					test.s, err, test.wantErr)
			}
		}
	}
}

var parseKeysTests = []struct {
	s        string
	wantKeys []Key
	wantErr  string
}{
	{s: "C-x C-s", wantKeys: []Key{{'X', Ctrl}, {'S', Ctrl}}},
	{s: "x", wantKeys: []Key{K('x')}},
	{s: "  Up   Down ", wantKeys: []Key{K(Up), K(Down)}},
	{s: "", wantErr: "empty key sequence"},
	{s: "C-x F123", wantErr: "bad key: F123"},
}

func TestParseKeys(t *testing.T) {
	for _, test := range parseKeysTests {
		keys, err := ParseKeys(test.s)
		if test.wantErr != "" {
			if err == nil || err.Error() != test.wantErr {
				t.Errorf("ParseKeys(%q) => error %v, want error with message %q",
					test.s, err, test.wantErr)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseKeys(%q) => error %v, want nil", test.s, err)
			continue
		}
		if len(keys) != len(test.wantKeys) {
			t.Errorf("ParseKeys(%q) => %v, want %v", test.s, keys, test.wantKeys)
			continue
		}
		for i := range keys {
			if keys[i] != test.wantKeys[i] {
				t.Errorf("ParseKeys(%q)[%d] => %v, want %v",
					test.s, i, keys[i], test.wantKeys[i])
			}
		}
	}
}
