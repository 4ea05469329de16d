package eval

import (
	"github.com/zem-editor/zem/pkg/eval/errs"
	"github.com/zem-editor/zem/pkg/eval/vals"
)

// A specialFormImpl receives the whole form, head included, with nothing
// evaluated.
type specialFormImpl func(fm *Frame, form vals.List, env *Env) (any, error)

// specialForms maps the reserved heads to their implementations. The
// evaluator consults this table before resolving the head symbol, so these
// names cannot be shadowed by bindings. It is populated in init to avoid an
// initialization cycle with the evaluator functions.
var specialForms map[string]specialFormImpl

func init() {
	specialForms = map[string]specialFormImpl{
		"quote":      quoteForm,
		"quasiquote": quasiquoteForm,
		"if":         ifForm,
		"let":        letForm,
		"let*":       letStarForm,
		"lambda":     lambdaForm,
		"define":     defineForm,
		"defun":      defunForm,
		"defmacro":   defmacroForm,
		"defvar":     defvarForm,
		"set!":       setForm,
		"progn":      prognForm,
		"while":      whileForm,
		"and":        andForm,
		"or":         orForm,
		"cond":       condForm,
	}
}

// IsSpecialForm reports whether name is a special form head. Hosts use this
// for completion and to refuse rebinding.
func IsSpecialForm(name string) bool {
	_, ok := specialForms[name]
	return ok
}

// SpecialFormNames returns the names of all special forms.
func SpecialFormNames() []string {
	names := make([]string, 0, len(specialForms))
	for name := range specialForms {
		names = append(names, name)
	}
	return names
}

// checkFormArity checks the number of arguments of a form, not counting the
// head. high of -1 means no upper bound.
func checkFormArity(form vals.List, low, high int) error {
	n := len(form) - 1
	if n < low || (high != -1 && n > high) {
		return errs.ArityMismatch{
			What: "arguments", ValidLow: low, ValidHigh: high, Actual: n}
	}
	return nil
}

func formSymbol(fm *Frame, form vals.List, i int, what string) (string, error) {
	sym, ok := form[i].(vals.Symbol)
	if !ok {
		return "", fm.errorp(errs.BadType{
			What: what, Want: "symbol", Got: vals.Kind(form[i])})
	}
	return string(sym), nil
}

func quoteForm(fm *Frame, form vals.List, env *Env) (any, error) {
	if err := checkFormArity(form, 1, 1); err != nil {
		return nil, fm.errorp(err)
	}
	return form[1], nil
}

func ifForm(fm *Frame, form vals.List, env *Env) (any, error) {
	if err := checkFormArity(form, 2, 3); err != nil {
		return nil, fm.errorp(err)
	}
	cond, err := fm.eval(form[1], env)
	if err != nil {
		return nil, err
	}
	if vals.Bool(cond) {
		return fm.eval(form[2], env)
	}
	if len(form) == 4 {
		return fm.eval(form[3], env)
	}
	return nil, nil
}

// parseBinding destructures one element of a let binding list. A binding is
// a bare symbol (bound to nil), or a list of a symbol and optionally an
// initializer form.
func parseBinding(fm *Frame, b any) (string, any, error) {
	switch b := b.(type) {
	case vals.Symbol:
		return string(b), nil, nil
	case vals.List:
		if len(b) < 1 || len(b) > 2 {
			return "", nil, fm.errorp(errs.BadType{What: "binding",
				Want: "symbol or (symbol value)", Got: vals.Repr(b)})
		}
		sym, ok := b[0].(vals.Symbol)
		if !ok {
			return "", nil, fm.errorp(errs.BadType{
				What: "bound name", Want: "symbol", Got: vals.Kind(b[0])})
		}
		if len(b) == 1 {
			return string(sym), nil, nil
		}
		return string(sym), b[1], nil
	default:
		return "", nil, fm.errorp(errs.BadType{What: "binding",
			Want: "symbol or (symbol value)", Got: vals.Kind(b)})
	}
}

// letForm binds simultaneously: all initializers are evaluated in the outer
// scope before any name is bound, so (let ((a 1) (b a)) ...) sees the outer
// a, not 1.
func letForm(fm *Frame, form vals.List, env *Env) (any, error) {
	if err := checkFormArity(form, 1, -1); err != nil {
		return nil, fm.errorp(err)
	}
	bindings, ok := form[1].(vals.List)
	if !ok {
		return nil, fm.errorp(errs.BadType{
			What: "let bindings", Want: "list", Got: vals.Kind(form[1])})
	}
	names := make([]string, len(bindings))
	values := make([]any, len(bindings))
	for i, b := range bindings {
		name, init, err := parseBinding(fm, b)
		if err != nil {
			return nil, err
		}
		var value any
		if init != nil {
			value, err = fm.eval(init, env)
			if err != nil {
				return nil, err
			}
		}
		names[i], values[i] = name, value
	}
	local := NewEnv(env)
	for i, name := range names {
		local.Define(name, values[i])
	}
	return fm.evalSeq(form[2:], local)
}

// letStarForm binds sequentially: each initializer sees the bindings before
// it.
func letStarForm(fm *Frame, form vals.List, env *Env) (any, error) {
	if err := checkFormArity(form, 1, -1); err != nil {
		return nil, fm.errorp(err)
	}
	bindings, ok := form[1].(vals.List)
	if !ok {
		return nil, fm.errorp(errs.BadType{
			What: "let* bindings", Want: "list", Got: vals.Kind(form[1])})
	}
	local := NewEnv(env)
	for _, b := range bindings {
		name, init, err := parseBinding(fm, b)
		if err != nil {
			return nil, err
		}
		var value any
		if init != nil {
			value, err = fm.eval(init, local)
			if err != nil {
				return nil, err
			}
		}
		local.Define(name, value)
	}
	return fm.evalSeq(form[2:], local)
}

func lambdaForm(fm *Frame, form vals.List, env *Env) (any, error) {
	if err := checkFormArity(form, 1, -1); err != nil {
		return nil, fm.errorp(err)
	}
	params, ok := form[1].(vals.List)
	if !ok {
		return nil, fm.errorp(errs.BadType{
			What: "parameter list", Want: "list", Got: vals.Kind(form[1])})
	}
	c, err := newClosure("", params, form[2:], env, fm)
	if err != nil {
		return nil, fm.errorp(err)
	}
	return c, nil
}

// defineForm creates a binding in the current scope and returns the value.
func defineForm(fm *Frame, form vals.List, env *Env) (any, error) {
	if err := checkFormArity(form, 2, 2); err != nil {
		return nil, fm.errorp(err)
	}
	name, err := formSymbol(fm, form, 1, "defined name")
	if err != nil {
		return nil, err
	}
	value, err := fm.eval(form[2], env)
	if err != nil {
		return nil, err
	}
	env.Define(name, value)
	return value, nil
}

// extractDoc splits a leading docstring off a body. A lone string body is
// the return value, not documentation.
func extractDoc(body []any) (string, []any) {
	if len(body) > 1 {
		if doc, ok := body[0].(string); ok {
			return doc, body[1:]
		}
	}
	return "", body
}

func defineCallable(fm *Frame, form vals.List, env *Env, what string) (*Closure, string, error) {
	if err := checkFormArity(form, 2, -1); err != nil {
		return nil, "", fm.errorp(err)
	}
	name, err := formSymbol(fm, form, 1, what+" name")
	if err != nil {
		return nil, "", err
	}
	params, ok := form[2].(vals.List)
	if !ok {
		return nil, "", fm.errorp(errs.BadType{
			What: "parameter list", Want: "list", Got: vals.Kind(form[2])})
	}
	doc, body := extractDoc(form[3:])
	c, err := newClosure(name, params, body, env, fm)
	if err != nil {
		return nil, "", fm.errorp(err)
	}
	c.Doc = doc
	return c, name, nil
}

// defunForm defines a named function in the current scope and returns its
// name.
func defunForm(fm *Frame, form vals.List, env *Env) (any, error) {
	c, name, err := defineCallable(fm, form, env, "function")
	if err != nil {
		return nil, err
	}
	env.Define(name, c)
	return vals.Symbol(name), nil
}

// defmacroForm defines a named macro in the current scope and returns its
// name.
func defmacroForm(fm *Frame, form vals.List, env *Env) (any, error) {
	c, name, err := defineCallable(fm, form, env, "macro")
	if err != nil {
		return nil, err
	}
	env.Define(name, &Macro{Fn: c})
	return vals.Symbol(name), nil
}

// defvarForm defines a variable in the global scope, regardless of the
// scope the form runs in. If the name is already globally bound the form is
// inert: the initializer is not even evaluated.
func defvarForm(fm *Frame, form vals.List, env *Env) (any, error) {
	if err := checkFormArity(form, 1, 2); err != nil {
		return nil, fm.errorp(err)
	}
	name, err := formSymbol(fm, form, 1, "variable name")
	if err != nil {
		return nil, err
	}
	global := fm.Evaler.global
	if global.Bound(name) {
		return vals.Symbol(name), nil
	}
	var value any
	if len(form) == 3 {
		value, err = fm.eval(form[2], env)
		if err != nil {
			return nil, err
		}
	}
	global.Define(name, value)
	return vals.Symbol(name), nil
}

// setForm assigns to the nearest existing binding. It never creates a
// binding: assigning an unbound name is an error.
func setForm(fm *Frame, form vals.List, env *Env) (any, error) {
	if err := checkFormArity(form, 2, 2); err != nil {
		return nil, fm.errorp(err)
	}
	name, err := formSymbol(fm, form, 1, "assigned name")
	if err != nil {
		return nil, err
	}
	value, err := fm.eval(form[2], env)
	if err != nil {
		return nil, err
	}
	if err := env.Set(name, value); err != nil {
		return nil, fm.errorp(err)
	}
	return value, nil
}

func prognForm(fm *Frame, form vals.List, env *Env) (any, error) {
	return fm.evalSeq(form[1:], env)
}

func whileForm(fm *Frame, form vals.List, env *Env) (any, error) {
	if err := checkFormArity(form, 1, -1); err != nil {
		return nil, fm.errorp(err)
	}
	for {
		cond, err := fm.eval(form[1], env)
		if err != nil {
			return nil, err
		}
		if !vals.Bool(cond) {
			return nil, nil
		}
		if _, err := fm.evalSeq(form[2:], env); err != nil {
			return nil, err
		}
	}
}

// andForm evaluates left to right and returns the first false value, or the
// last value. An empty and is true.
func andForm(fm *Frame, form vals.List, env *Env) (any, error) {
	var result any = true
	for _, sub := range form[1:] {
		var err error
		result, err = fm.eval(sub, env)
		if err != nil {
			return nil, err
		}
		if !vals.Bool(result) {
			return result, nil
		}
	}
	return result, nil
}

// orForm evaluates left to right and returns the first true value, or the
// last value. An empty or is nil.
func orForm(fm *Frame, form vals.List, env *Env) (any, error) {
	var result any
	for _, sub := range form[1:] {
		var err error
		result, err = fm.eval(sub, env)
		if err != nil {
			return nil, err
		}
		if vals.Bool(result) {
			return result, nil
		}
	}
	return result, nil
}

// condForm evaluates clauses of the shape (test body...) in order. The body
// of the first clause whose test is true gives the value; a clause without
// a body gives the test value itself. No true test gives nil.
func condForm(fm *Frame, form vals.List, env *Env) (any, error) {
	for _, clauseForm := range form[1:] {
		clause, ok := clauseForm.(vals.List)
		if !ok || len(clause) == 0 {
			return nil, fm.errorp(errs.BadType{What: "cond clause",
				Want: "(test body...)", Got: vals.Repr(clauseForm)})
		}
		test, err := fm.eval(clause[0], env)
		if err != nil {
			return nil, err
		}
		if vals.Bool(test) {
			if len(clause) == 1 {
				return test, nil
			}
			return fm.evalSeq(clause[1:], env)
		}
	}
	return nil, nil
}

func quasiquoteForm(fm *Frame, form vals.List, env *Env) (any, error) {
	if err := checkFormArity(form, 1, 1); err != nil {
		return nil, fm.errorp(err)
	}
	return expandQuasiquote(fm, form[1], env, 1)
}

// expandQuasiquote walks a template. depth counts enclosing quasiquotes:
// unquote evaluates its argument only at depth 1 and otherwise strips one
// level, so nested templates compose.
func expandQuasiquote(fm *Frame, tmpl any, env *Env, depth int) (any, error) {
	list, ok := tmpl.(vals.List)
	if !ok || len(list) == 0 {
		return tmpl, nil
	}

	if sym, ok := list[0].(vals.Symbol); ok {
		switch string(sym) {
		case "unquote":
			if err := checkFormArity(list, 1, 1); err != nil {
				return nil, fm.errorp(err)
			}
			if depth == 1 {
				return fm.eval(list[1], env)
			}
			sub, err := expandQuasiquote(fm, list[1], env, depth-1)
			if err != nil {
				return nil, err
			}
			return vals.List{sym, sub}, nil
		case "quasiquote":
			if err := checkFormArity(list, 1, 1); err != nil {
				return nil, fm.errorp(err)
			}
			sub, err := expandQuasiquote(fm, list[1], env, depth+1)
			if err != nil {
				return nil, err
			}
			return vals.List{sym, sub}, nil
		case "unquote-splicing":
			if depth == 1 {
				return nil, fm.errorpf("unquote-splicing outside of list")
			}
			if err := checkFormArity(list, 1, 1); err != nil {
				return nil, fm.errorp(err)
			}
			sub, err := expandQuasiquote(fm, list[1], env, depth-1)
			if err != nil {
				return nil, err
			}
			return vals.List{sym, sub}, nil
		}
	}

	out := vals.List{}
	for _, elem := range list {
		if sub, ok := elem.(vals.List); ok && len(sub) > 0 {
			if s, ok := sub[0].(vals.Symbol); ok && string(s) == "unquote-splicing" && depth == 1 {
				if err := checkFormArity(sub, 1, 1); err != nil {
					return nil, fm.errorp(err)
				}
				spliced, err := fm.eval(sub[1], env)
				if err != nil {
					return nil, err
				}
				splicedList, ok := spliced.(vals.List)
				if !ok {
					return nil, fm.errorp(errs.BadType{What: "unquote-splicing value",
						Want: "list", Got: vals.Kind(spliced)})
				}
				out = append(out, splicedList...)
				continue
			}
		}
		expanded, err := expandQuasiquote(fm, elem, env, depth)
		if err != nil {
			return nil, err
		}
		out = append(out, expanded)
	}
	return out, nil
}
