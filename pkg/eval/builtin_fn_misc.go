package eval

import (
	"github.com/zem-editor/zem/pkg/eval/errs"
	"github.com/zem-editor/zem/pkg/eval/vals"
)

// Reflection and control.

func init() {
	addBuiltinFns(map[string]any{
		"eval":        evalFn,
		"apply":       apply,
		"macroexpand": macroexpand,
		"doc":         doc,
		"type":        vals.Kind,
		"gensym":      gensymFn,
		"error":       errorFn,
		"assert":      assert,
	})
}

// evalFn evaluates a value as code in the global scope. Code built at run
// time does not see the lexical scope of the eval call site.
func evalFn(fm *Frame, form any) (any, error) {
	return fm.eval(form, fm.Evaler.global)
}

func apply(fm *Frame, f Callable, args any) (any, error) {
	lst, err := asList("second argument to apply", args)
	if err != nil {
		return nil, err
	}
	return f.Call(fm, lst)
}

// macroexpand expands a form repeatedly until its head no longer names a
// macro in the global scope, and returns the expansion as data. Forms that
// are not macro calls are returned unchanged.
func macroexpand(fm *Frame, form any) (any, error) {
	env := fm.Evaler.global
	for {
		list, ok := form.(vals.List)
		if !ok || len(list) == 0 {
			return form, nil
		}
		sym, ok := list[0].(vals.Symbol)
		if !ok || IsSpecialForm(string(sym)) {
			return form, nil
		}
		v, err := env.Lookup(string(sym))
		if err != nil {
			return form, nil
		}
		m, ok := v.(*Macro)
		if !ok {
			return form, nil
		}
		form, err = m.Expand(fm, list[1:])
		if err != nil {
			return nil, err
		}
	}
}

// doc returns the docstring of a function or macro, or nil if it has none.
// A symbol argument is looked up in the global scope first.
func doc(fm *Frame, v any) (any, error) {
	if sym, ok := v.(vals.Symbol); ok {
		bound, err := fm.Evaler.global.Lookup(string(sym))
		if err != nil {
			return nil, err
		}
		v = bound
	}
	switch v := v.(type) {
	case *Closure:
		if v.Doc != "" {
			return v.Doc, nil
		}
	case *Macro:
		if v.Fn.Doc != "" {
			return v.Fn.Doc, nil
		}
	}
	return nil, nil
}

func gensymFn(fm *Frame) vals.Symbol {
	return vals.Symbol(fm.Evaler.Gensym())
}

// errorFn raises a user error with a message and an optional detail value.
func errorFn(msg string, detail ...any) error {
	e := errs.User{Message: msg}
	if len(detail) > 0 {
		e.Detail = detail[0]
	}
	return e
}

// assert raises a user error if a value is false. The optional second
// argument overrides the message.
func assert(cond any, msg ...string) error {
	if vals.Bool(cond) {
		return nil
	}
	message := "assertion failed"
	if len(msg) > 0 {
		message = msg[0]
	}
	return errs.User{Message: message}
}
