// Package eval handles evaluation of Zem Lisp code and provides the runtime
// the host subsystems embed.
//
// All mutable interpreter state hangs off the Evaler: the global scope, the
// gensym counter and the depth limit. There are no package-level registries,
// so any number of Evalers can coexist in one process and an editor can run
// a throwaway interpreter next to its main one.
package eval

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/zem-editor/zem/pkg/diag"
	"github.com/zem-editor/zem/pkg/eval/errs"
	"github.com/zem-editor/zem/pkg/eval/vals"
	"github.com/zem-editor/zem/pkg/logutil"
	"github.com/zem-editor/zem/pkg/parse"
)

var logger = logutil.GetLogger("[eval] ")

// DefaultMaxDepth is the default limit on evaluation depth. Recursing past
// the limit raises errs.StackOverflow instead of exhausting the Go stack;
// the language does not eliminate tail calls, so deliberately unbounded
// loops should use while.
const DefaultMaxDepth = 4096

// Evaler provides a Zem Lisp interpreter.
type Evaler struct {
	global *Env

	mu            sync.Mutex
	out           io.Writer
	gensymCounter int
	maxDepth      int
}

// NewEvaler creates a new Evaler, with the global scope populated with the
// builtin functions and the prelude already evaluated.
func NewEvaler() *Evaler {
	ev := &Evaler{
		global:   NewEnv(nil),
		out:      os.Stdout,
		maxDepth: DefaultMaxDepth,
	}
	for name, impl := range builtinFns {
		ev.DefineBuiltin(name, impl)
	}
	if _, err := ev.Execute(parse.Source{Name: "[prelude]", Code: preludeCode}); err != nil {
		panic(fmt.Sprintf("bug: prelude failed to evaluate: %v", err))
	}
	return ev
}

// Global returns the global scope.
func (ev *Evaler) Global() *Env {
	return ev.global
}

// DefineBuiltin binds name in the global scope to a native function,
// wrapping impl with NewGoFn unless it is already a Callable. Defining a
// name again overwrites the previous binding.
func (ev *Evaler) DefineBuiltin(name string, impl any) {
	if fn, ok := impl.(Callable); ok {
		ev.global.Define(name, fn)
		return
	}
	ev.global.Define(name, NewGoFn(name, impl))
}

// SetOutput redirects the output of print and friends. The default is
// os.Stdout; the editor points this at its message area.
func (ev *Evaler) SetOutput(w io.Writer) {
	ev.mu.Lock()
	defer ev.mu.Unlock()
	ev.out = w
}

// Output returns the writer print and friends currently write to. Host
// functions that produce output should write to it as well.
func (ev *Evaler) Output() io.Writer {
	return ev.output()
}

func (ev *Evaler) output() io.Writer {
	ev.mu.Lock()
	defer ev.mu.Unlock()
	return ev.out
}

// SetMaxDepth changes the evaluation depth limit.
func (ev *Evaler) SetMaxDepth(n int) {
	ev.mu.Lock()
	defer ev.mu.Unlock()
	ev.maxDepth = n
}

func (ev *Evaler) depthLimit() int {
	ev.mu.Lock()
	defer ev.mu.Unlock()
	return ev.maxDepth
}

// Gensym returns a symbol guaranteed to be distinct from every symbol this
// Evaler has handed out before. Macro authors use it for bindings that must
// not capture user symbols.
func (ev *Evaler) Gensym() vals.Symbol {
	ev.mu.Lock()
	defer ev.mu.Unlock()
	ev.gensymCounter++
	return vals.Symbol(fmt.Sprintf("gensym-%d", ev.gensymCounter))
}

// Execute reads all forms in src and evaluates them in order in the global
// scope, returning the value of the last form, or nil if src has no forms.
//
// A malformed src returns a *parse.Error before anything is evaluated. A
// fault during evaluation returns an Exception and abandons the remaining
// forms; forms already evaluated keep their effects. Execute never panics
// on bad input.
func (ev *Evaler) Execute(src parse.Source) (any, error) {
	forms, err := parse.ReadAll(src)
	if err != nil {
		return nil, err
	}
	logger.Printf("executing %v (%d forms)", src.Name, len(forms))
	var result any
	for _, form := range forms {
		fm := &Frame{
			Evaler:    ev,
			src:       src,
			traceback: &StackTrace{Head: diag.NewContext(src.Name, src.Code, form)},
		}
		result, err = fm.eval(form.Value, ev.global)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

// Eval evaluates a single already-read form in the given scope. A nil env
// means the global scope.
func (ev *Evaler) Eval(expr any, env *Env) (any, error) {
	if env == nil {
		env = ev.global
	}
	fm := &Frame{Evaler: ev, src: parse.Source{Name: "[eval]"}}
	return fm.eval(expr, env)
}

// Call calls a Callable with the given arguments, outside of any source
// form. Hosts use this to invoke script-defined handlers.
func (ev *Evaler) Call(fn Callable, args []any) (any, error) {
	fm := &Frame{Evaler: ev, src: parse.Source{Name: "[host]"}}
	result, err := fn.Call(fm, args)
	if err != nil {
		return nil, fm.errorp(err)
	}
	return result, nil
}

// Callable wraps the Call method.
type Callable interface {
	// Call calls the receiver with evaluated arguments.
	Call(fm *Frame, args []any) (any, error)
}

// Frame tracks the dynamic state of one evaluation: the source being
// evaluated, the stack trace so far and the recursion depth.
type Frame struct {
	Evaler *Evaler

	src       parse.Source
	traceback *StackTrace
	depth     int
}

// eval evaluates one expression in env.
func (fm *Frame) eval(expr any, env *Env) (any, error) {
	if limit := fm.Evaler.depthLimit(); fm.depth >= limit {
		return nil, fm.errorp(errs.StackOverflow{Limit: limit})
	}
	fm.depth++
	defer func() { fm.depth-- }()

	switch expr := expr.(type) {
	case vals.Symbol:
		v, err := env.Lookup(string(expr))
		if err != nil {
			return nil, fm.errorp(err)
		}
		return v, nil
	case vals.List:
		return fm.evalCall(expr, env)
	default:
		// Numbers, strings, booleans, nil and opaque values evaluate to
		// themselves.
		return expr, nil
	}
}

// evalCall evaluates a non-atomic form: a special form, a macro use or a
// function call.
func (fm *Frame) evalCall(form vals.List, env *Env) (any, error) {
	if len(form) == 0 {
		return nil, nil
	}

	if sym, ok := form[0].(vals.Symbol); ok {
		if impl, ok := specialForms[string(sym)]; ok {
			return impl(fm, form, env)
		}
	}

	head, err := fm.eval(form[0], env)
	if err != nil {
		return nil, err
	}

	if m, ok := head.(*Macro); ok {
		expansion, err := m.Expand(fm, form[1:])
		if err != nil {
			return nil, fm.errorp(err)
		}
		return fm.eval(expansion, env)
	}

	fn, ok := head.(Callable)
	if !ok {
		return nil, fm.errorp(errs.BadType{
			What: "called value", Want: "callable", Got: vals.Kind(head)})
	}
	args := make([]any, len(form)-1)
	for i, argExpr := range form[1:] {
		arg, err := fm.eval(argExpr, env)
		if err != nil {
			return nil, err
		}
		args[i] = arg
	}
	result, err := fn.Call(fm, args)
	if err != nil {
		return nil, fm.errorp(err)
	}
	return result, nil
}

// evalSeq evaluates forms in order and returns the value of the last one,
// or nil if forms is empty.
func (fm *Frame) evalSeq(forms []any, env *Env) (any, error) {
	var result any
	for _, form := range forms {
		var err error
		result, err = fm.eval(form, env)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

// errorp wraps a reason into an Exception carrying the frame's stack trace.
// An error that is already an Exception is returned unchanged, so a reason
// keeps the trace of its original raise point.
func (fm *Frame) errorp(reason error) error {
	if _, ok := reason.(Exception); ok {
		return reason
	}
	return &exception{reason, fm.traceback}
}

// errorpf is like errorp, but builds the reason from a format string.
func (fm *Frame) errorpf(format string, args ...any) error {
	return fm.errorp(fmt.Errorf(format, args...))
}

// fork returns a copy of fm with a context pushed onto the stack trace.
// Callable implementations fork the frame when descending into code that
// has its own source location.
func (fm *Frame) fork(ctx *diag.Context) *Frame {
	newFm := *fm
	newFm.traceback = &StackTrace{Head: ctx, Next: fm.traceback}
	return &newFm
}
