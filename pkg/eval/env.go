package eval

import (
	"sort"
	"sync"

	"github.com/zem-editor/zem/pkg/eval/errs"
	"github.com/zem-editor/zem/pkg/eval/vars"
)

// Env is one scope of bindings, linked to the scope it was created in.
// Lookup and assignment walk the parent chain; definition always hits the
// receiver scope, so an inner define shadows an outer binding without
// touching it.
//
// The parent pointer is fixed at creation. Closures capture their defining
// Env by reference, so bindings added to a scope after a closure captured it
// are still visible to the closure.
//
// Each scope is guarded by its own RWMutex. Sibling scopes may therefore be
// used from different goroutines, as long as writers of the shared ancestor
// scopes are serialized by the caller.
type Env struct {
	mu     sync.RWMutex
	parent *Env
	slots  map[string]vars.Var
}

// NewEnv creates an empty scope with the given parent. A nil parent makes a
// root scope.
func NewEnv(parent *Env) *Env {
	return &Env{parent: parent, slots: make(map[string]vars.Var)}
}

// Define binds name to a fresh variable holding value, in this scope only.
// An existing binding for name in this scope is overwritten; bindings in
// outer scopes are shadowed.
func (e *Env) Define(name string, value any) {
	e.DefineVar(name, vars.FromInit(value))
}

// DefineVar is like Define but binds name to a caller-supplied variable
// cell, which may be computed or read-only.
func (e *Env) DefineVar(name string, v vars.Var) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.slots[name] = v
}

// Lookup returns the value bound to name in the closest scope that binds
// it. It returns an errs.Unbound error if no scope in the chain binds name.
func (e *Env) Lookup(name string) (any, error) {
	if v, ok := e.lookupVar(name); ok {
		return v.Get(), nil
	}
	return nil, errs.Unbound{Symbol: name}
}

// Set assigns value to the existing binding closest to this scope. Unlike
// Define it never creates a binding: assigning an unbound name is an
// errs.Unbound error.
func (e *Env) Set(name string, value any) error {
	if v, ok := e.lookupVar(name); ok {
		err := v.Set(value)
		if ro, ok := err.(errs.SetReadOnlyVar); ok && ro.VarName == "" {
			ro.VarName = name
			return ro
		}
		return err
	}
	return errs.Unbound{Symbol: name}
}

// Bound reports whether name is visible from this scope.
func (e *Env) Bound(name string) bool {
	_, ok := e.lookupVar(name)
	return ok
}

func (e *Env) lookupVar(name string) (vars.Var, bool) {
	for env := e; env != nil; env = env.parent {
		env.mu.RLock()
		v, ok := env.slots[name]
		env.mu.RUnlock()
		if ok {
			return v, true
		}
	}
	return nil, false
}

// Names returns the sorted names of all bindings visible from this scope,
// shadowed or not, without duplicates.
func (e *Env) Names() []string {
	seen := make(map[string]bool)
	for env := e; env != nil; env = env.parent {
		env.mu.RLock()
		for name := range env.slots {
			seen[name] = true
		}
		env.mu.RUnlock()
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
