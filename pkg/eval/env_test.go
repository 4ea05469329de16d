package eval

import (
	"reflect"
	"testing"

	"github.com/zem-editor/zem/pkg/eval/errs"
	"github.com/zem-editor/zem/pkg/eval/vars"
)

func TestEnv_DefineAndLookup(t *testing.T) {
	env := NewEnv(nil)
	env.Define("x", 1.0)

	if v, err := env.Lookup("x"); err != nil || v != 1.0 {
		t.Errorf("Lookup(x) -> %v, %v, want 1, nil", v, err)
	}
	if _, err := env.Lookup("y"); err != error(errs.Unbound{Symbol: "y"}) {
		t.Errorf("Lookup(y) -> error %v, want unbound", err)
	}

	// Define overwrites within the same scope.
	env.Define("x", 2.0)
	if v, _ := env.Lookup("x"); v != 2.0 {
		t.Errorf("Lookup(x) after redefine -> %v, want 2", v)
	}
}

func TestEnv_LookupWalksChain(t *testing.T) {
	outer := NewEnv(nil)
	outer.Define("x", 1.0)
	outer.Define("y", 2.0)
	inner := NewEnv(outer)
	inner.Define("x", 10.0)

	if v, _ := inner.Lookup("x"); v != 10.0 {
		t.Errorf("inner Lookup(x) -> %v, want the shadowing 10", v)
	}
	if v, _ := inner.Lookup("y"); v != 2.0 {
		t.Errorf("inner Lookup(y) -> %v, want the outer 2", v)
	}
	if v, _ := outer.Lookup("x"); v != 1.0 {
		t.Errorf("outer Lookup(x) -> %v, want 1; shadowing must not touch it", v)
	}
}

func TestEnv_Set(t *testing.T) {
	outer := NewEnv(nil)
	outer.Define("x", 1.0)
	inner := NewEnv(outer)

	if err := inner.Set("x", 5.0); err != nil {
		t.Fatalf("Set(x) -> %v", err)
	}
	if v, _ := outer.Lookup("x"); v != 5.0 {
		t.Errorf("outer Lookup(x) after inner Set -> %v, want 5", v)
	}

	// Set assigns to the nearest binding only.
	inner.Define("x", 10.0)
	inner.Set("x", 11.0)
	if v, _ := inner.Lookup("x"); v != 11.0 {
		t.Errorf("inner Lookup(x) -> %v, want 11", v)
	}
	if v, _ := outer.Lookup("x"); v != 5.0 {
		t.Errorf("outer Lookup(x) -> %v, want 5; inner Set must not leak out", v)
	}

	// Set never creates a binding.
	if err := inner.Set("y", 1.0); err != error(errs.Unbound{Symbol: "y"}) {
		t.Errorf("Set(y) -> error %v, want unbound", err)
	}
	if inner.Bound("y") {
		t.Errorf("y is bound after a failed Set, want unbound")
	}
}

func TestEnv_Bound(t *testing.T) {
	outer := NewEnv(nil)
	outer.Define("x", 1.0)
	inner := NewEnv(outer)
	inner.Define("y", 2.0)

	for name, want := range map[string]bool{"x": true, "y": true, "z": false} {
		if got := inner.Bound(name); got != want {
			t.Errorf("inner Bound(%s) -> %v, want %v", name, got, want)
		}
	}
	if outer.Bound("y") {
		t.Errorf("outer Bound(y) -> true, want false")
	}
}

func TestEnv_Names(t *testing.T) {
	outer := NewEnv(nil)
	outer.Define("c", 1.0)
	outer.Define("a", 2.0)
	inner := NewEnv(outer)
	inner.Define("b", 3.0)
	inner.Define("a", 4.0)

	want := []string{"a", "b", "c"}
	if got := inner.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names -> %v, want %v", got, want)
	}
}

func TestEnv_DefineVar(t *testing.T) {
	env := NewEnv(nil)
	env.DefineVar("ro", vars.NewReadOnly("fixed"))

	if v, err := env.Lookup("ro"); err != nil || v != "fixed" {
		t.Errorf("Lookup(ro) -> %v, %v, want fixed, nil", v, err)
	}
	if err := env.Set("ro", "changed"); err != error(errs.SetReadOnlyVar{VarName: "ro"}) {
		t.Errorf("Set(ro) -> error %v, want read-only error", err)
	}
	if v, _ := env.Lookup("ro"); v != "fixed" {
		t.Errorf("Lookup(ro) after failed Set -> %v, want fixed", v)
	}

	// A pointer-backed variable stays in sync with the Go value.
	n := 1
	env.DefineVar("n", vars.FromPtr(&n))
	if v, _ := env.Lookup("n"); v != 1.0 {
		t.Errorf("Lookup(n) -> %v, want 1", v)
	}
	n = 2
	if v, _ := env.Lookup("n"); v != 2.0 {
		t.Errorf("Lookup(n) after Go-side write -> %v, want 2", v)
	}
	if err := env.Set("n", 3.0); err != nil {
		t.Fatalf("Set(n) -> %v", err)
	}
	if n != 3 {
		t.Errorf("n after script-side set -> %v, want 3", n)
	}
}
