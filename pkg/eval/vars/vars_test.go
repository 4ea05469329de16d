package vars

import (
	"testing"
)

func TestFromInit(t *testing.T) {
	v := FromInit("initial")
	if v.Get() != "initial" {
		t.Errorf("Get() = %v, want initial", v.Get())
	}
	if err := v.Set(2.0); err != nil {
		t.Errorf("Set -> error %v", err)
	}
	if v.Get() != 2.0 {
		t.Errorf("Get() after Set = %v", v.Get())
	}
}

func TestFromPtr(t *testing.T) {
	n := 10
	v := FromPtr(&n)
	// Get converts the Go int to a number.
	if v.Get() != 10.0 {
		t.Errorf("Get() = %v, want 10", v.Get())
	}
	if err := v.Set(20.0); err != nil {
		t.Errorf("Set -> error %v", err)
	}
	if n != 20 {
		t.Errorf("pointee = %v, want 20", n)
	}
	// Set with a non-integral value fails and leaves the pointee alone.
	if err := v.Set("x"); err == nil {
		t.Errorf("Set with wrong type -> no error")
	}
	if n != 20 {
		t.Errorf("pointee changed by failed Set")
	}
}

func TestReadOnly(t *testing.T) {
	v := NewReadOnly("x")
	if v.Get() != "x" {
		t.Errorf("Get() = %v", v.Get())
	}
	if err := v.Set("y"); err == nil {
		t.Errorf("Set on read-only -> no error")
	}
	if !IsReadOnly(v) {
		t.Errorf("IsReadOnly = false")
	}
	if IsReadOnly(FromInit(nil)) {
		t.Errorf("IsReadOnly(FromInit) = true")
	}
}

func TestFromSetGet(t *testing.T) {
	var store any
	v := FromSetGet(
		func(val any) error { store = val; return nil },
		func() any { return store })
	v.Set(1.0)
	if v.Get() != 1.0 {
		t.Errorf("Get() = %v", v.Get())
	}
}

func TestFromGet(t *testing.T) {
	v := FromGet(func() any { return "computed" })
	if v.Get() != "computed" {
		t.Errorf("Get() = %v", v.Get())
	}
	if err := v.Set("x"); err == nil {
		t.Errorf("Set on FromGet -> no error")
	}
	if !IsReadOnly(v) {
		t.Errorf("IsReadOnly = false")
	}
}
