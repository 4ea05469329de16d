// Package test implements the test framework for Zem Lisp scripts.
//
// Scripts declare tests with the deftest macro from the prelude, which
// expands to a test:register call. The builtins only exist on Evalers a
// Runner has been attached to; evaluating deftest elsewhere raises an
// unbound symbol error.
package test

import (
	"fmt"
	"sync"

	"github.com/zem-editor/zem/pkg/eval"
	"github.com/zem-editor/zem/pkg/eval/errs"
	"github.com/zem-editor/zem/pkg/eval/vals"
)

// Runner collects the tests registered by scripts and runs them. All state
// lives on the Runner, so independent Evalers get independent test sets.
type Runner struct {
	ev *eval.Evaler

	mu    sync.Mutex
	tests []scriptTest
}

type scriptTest struct {
	name vals.Symbol
	body eval.Callable
}

// Result is the outcome of one test. Err is nil for a pass; for a fail it
// holds the raised error.
type Result struct {
	Name string
	Err  error
}

// NewRunner returns a Runner bound to ev and defines the framework builtins
// in its global scope: test:register, test:run-all and assert-equal. The
// plain assert builtin is part of the core.
func NewRunner(ev *eval.Evaler) *Runner {
	r := &Runner{ev: ev}
	ev.DefineBuiltin("test:register", r.register)
	ev.DefineBuiltin("test:run-all", r.runAll)
	ev.DefineBuiltin("assert-equal", assertEqual)
	return r
}

// register records a test body under a name. Registering a name again
// replaces the body but keeps the original position, so re-evaluating a
// script does not duplicate its tests.
func (r *Runner) register(name vals.Symbol, body eval.Callable) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, t := range r.tests {
		if t.name == name {
			r.tests[i].body = body
			return
		}
	}
	r.tests = append(r.tests, scriptTest{name, body})
}

// RunAll runs the registered tests in registration order and returns one
// Result per test. Each body is a closure called with no arguments, so its
// bindings live in a fresh child of the scope it was defined in and do not
// leak into sibling tests; defvar still targets the global scope.
func (r *Runner) RunAll() []Result {
	r.mu.Lock()
	tests := make([]scriptTest, len(r.tests))
	copy(tests, r.tests)
	r.mu.Unlock()

	results := make([]Result, len(tests))
	for i, t := range tests {
		_, err := r.ev.Call(t.body, nil)
		results[i] = Result{Name: string(t.name), Err: err}
	}
	return results
}

// runAll implements test:run-all. It prints one line per failure and a
// summary line, and returns whether every test passed.
func (r *Runner) runAll(fm *eval.Frame) bool {
	out := fm.Evaler.Output()
	passed, failed := 0, 0
	for _, res := range r.RunAll() {
		if res.Err == nil {
			passed++
			continue
		}
		failed++
		fmt.Fprintf(out, "FAIL %s: %v\n", res.Name, reason(res.Err))
	}
	fmt.Fprintf(out, "%d passed, %d failed\n", passed, failed)
	return failed == 0
}

// reason unwraps an exception to the underlying raise reason, which reads
// better in one-line reports.
func reason(err error) error {
	if exc, ok := err.(eval.Exception); ok {
		return exc.Reason()
	}
	return err
}

// assertEqual raises a user error unless the two values are equal.
func assertEqual(want, got any) error {
	if vals.Equal(got, want) {
		return nil
	}
	return errs.User{
		Message: fmt.Sprintf("got %s, want %s", vals.Repr(got), vals.Repr(want))}
}
