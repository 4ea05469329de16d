package hashmap

import (
	"math/rand"
	"testing"
)

// A deliberately bad hash function so that collision leaves and branch
// splits are both exercised.
func collidingHash(k any) uint32 {
	return uint32(k.(int) % 7)
}

func intEqual(k1, k2 any) bool {
	return k1 == k2
}

func TestAssocIndexDissoc(t *testing.T) {
	const n = 500
	m := New(intEqual, collidingHash)
	for i := 0; i < n; i++ {
		m = m.Assoc(i, i*10)
		if m.Len() != i+1 {
			t.Errorf("after %d Assoc, Len = %d", i+1, m.Len())
		}
	}
	for i := 0; i < n; i++ {
		v, ok := m.Index(i)
		if !ok || v != i*10 {
			t.Errorf("Index(%d) = (%v, %v), want (%v, true)", i, v, ok, i*10)
		}
	}
	if _, ok := m.Index(n + 1); ok {
		t.Errorf("Index of missing key returns ok")
	}

	// Overwriting does not change the length.
	m2 := m.Assoc(0, "zero")
	if m2.Len() != n {
		t.Errorf("after overwrite, Len = %d, want %d", m2.Len(), n)
	}
	if v, _ := m2.Index(0); v != "zero" {
		t.Errorf("overwritten value not returned")
	}
	// The original map is unchanged.
	if v, _ := m.Index(0); v != 0 {
		t.Errorf("Assoc mutated the original map")
	}

	perm := rand.Perm(n)
	for i, k := range perm {
		m = m.Dissoc(k)
		if m.Len() != n-i-1 {
			t.Errorf("after %d Dissoc, Len = %d", i+1, m.Len())
		}
		if _, ok := m.Index(k); ok {
			t.Errorf("Index(%d) succeeds after Dissoc", k)
		}
	}
}

func TestDissocMissingKey(t *testing.T) {
	m := New(intEqual, collidingHash).Assoc(1, "one")
	m2 := m.Dissoc(2)
	if m2.Len() != 1 {
		t.Errorf("Dissoc of missing key changed Len to %d", m2.Len())
	}
	if m3 := New(intEqual, collidingHash).Dissoc(1); m3.Len() != 0 {
		t.Errorf("Dissoc on empty map changed Len")
	}
}

func TestIterator(t *testing.T) {
	const n = 100
	m := New(intEqual, collidingHash)
	for i := 0; i < n; i++ {
		m = m.Assoc(i, i)
	}
	seen := make(map[int]bool)
	for it := m.Iterator(); it.HasElem(); it.Next() {
		k, v := it.Elem()
		if k != v {
			t.Errorf("Elem() = (%v, %v), want equal", k, v)
		}
		if seen[k.(int)] {
			t.Errorf("key %v seen twice", k)
		}
		seen[k.(int)] = true
	}
	if len(seen) != n {
		t.Errorf("iterator saw %d keys, want %d", len(seen), n)
	}
}

func TestHasKey(t *testing.T) {
	m := New(intEqual, collidingHash).Assoc(1, "one")
	if !HasKey(m, 1) {
		t.Errorf("HasKey(m, 1) = false")
	}
	if HasKey(m, 2) {
		t.Errorf("HasKey(m, 2) = true")
	}
}

func TestMarshalJSON(t *testing.T) {
	m := New(func(a, b any) bool { return a == b },
		func(k any) uint32 { return 0 }).Assoc("a", 1.0)
	b, err := m.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON -> error %v", err)
	}
	if string(b) != `{"a":1}` {
		t.Errorf("MarshalJSON -> %s, want {\"a\":1}", b)
	}
}
