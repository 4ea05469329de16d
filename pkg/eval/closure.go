package eval

import (
	"unsafe"

	"github.com/zem-editor/zem/pkg/diag"
	"github.com/zem-editor/zem/pkg/eval/errs"
	"github.com/zem-editor/zem/pkg/eval/vals"
	"github.com/zem-editor/zem/pkg/parse"
	"github.com/zem-editor/zem/pkg/persistent/hash"
)

// restMarker separates fixed parameters from the rest parameter in a
// parameter list.
const restMarker = "&rest"

// Closure is a function defined in Zem Lisp. Each Closure has its unique
// identity.
type Closure struct {
	// Name is the defun or defmacro name, or "" for a lambda.
	Name string
	// ArgNames holds the fixed parameter names, in order.
	ArgNames []string
	// RestArg is the name of the parameter bound to the remaining
	// arguments, or "" if the parameter list has no &rest marker.
	RestArg string
	// Params is the parameter list as written, for introspection.
	Params vals.List
	// Doc is the docstring, or "".
	Doc string
	// Body holds the body forms.
	Body []any

	// Scope the closure was created in. Captured by reference: bindings
	// added to the scope after creation are visible, and set! through the
	// closure is visible outside.
	captured *Env

	src      parse.Source
	defRange diag.Ranging
}

var _ Callable = (*Closure)(nil)

// newClosure validates a parameter list and builds a Closure. It returns an
// error if the parameter list contains non-symbols or misuses &rest.
func newClosure(name string, params vals.List, body []any, env *Env, fm *Frame) (*Closure, error) {
	c := &Closure{
		Name:     name,
		Params:   params,
		Body:     body,
		captured: env,
		src:      fm.src,
	}
	if fm.traceback != nil {
		c.defRange = fm.traceback.Head.Ranging
	}
	for i := 0; i < len(params); i++ {
		sym, ok := params[i].(vals.Symbol)
		if !ok {
			return nil, errs.BadType{
				What: "parameter", Want: "symbol", Got: vals.Kind(params[i])}
		}
		if string(sym) == restMarker {
			if i != len(params)-2 {
				return nil, errs.BadType{What: "parameter list",
					Want: "exactly one symbol after &rest", Got: vals.Repr(params)}
			}
			restSym, ok := params[i+1].(vals.Symbol)
			if !ok {
				return nil, errs.BadType{
					What: "rest parameter", Want: "symbol", Got: vals.Kind(params[i+1])}
			}
			c.RestArg = string(restSym)
			return c, nil
		}
		c.ArgNames = append(c.ArgNames, string(sym))
	}
	return c, nil
}

// Kind returns "fn".
func (*Closure) Kind() string { return "fn" }

// Equal compares by identity.
func (c *Closure) Equal(rhs any) bool { return c == rhs }

// Hash returns the hash of the address of the closure.
func (c *Closure) Hash() uint32 { return hash.Pointer(unsafe.Pointer(c)) }

// Repr returns an opaque representation with the name if there is one.
func (c *Closure) Repr() string {
	if c.Name == "" {
		return "<fn>"
	}
	return "<fn " + c.Name + ">"
}

// Call binds args in a fresh child of the captured scope and evaluates the
// body forms in order, returning the value of the last one.
func (c *Closure) Call(fm *Frame, args []any) (any, error) {
	if c.RestArg != "" {
		if len(args) < len(c.ArgNames) {
			return nil, errs.ArityMismatch{What: "arguments",
				ValidLow: len(c.ArgNames), ValidHigh: -1, Actual: len(args)}
		}
	} else if len(args) != len(c.ArgNames) {
		return nil, errs.ArityMismatch{What: "arguments",
			ValidLow: len(c.ArgNames), ValidHigh: len(c.ArgNames), Actual: len(args)}
	}

	local := NewEnv(c.captured)
	for i, name := range c.ArgNames {
		local.Define(name, args[i])
	}
	if c.RestArg != "" {
		rest := make(vals.List, len(args)-len(c.ArgNames))
		copy(rest, args[len(c.ArgNames):])
		local.Define(c.RestArg, rest)
	}

	body := fm.fork(diag.NewContext(c.src.Name, c.src.Code, c.describeRange()))
	return body.evalSeq(c.Body, local)
}

func (c *Closure) describeRange() diag.Ranging {
	if c.defRange == (diag.Ranging{}) {
		return diag.PointRanging(0)
	}
	return c.defRange
}

// Macro is a closure that receives its arguments unevaluated and whose
// result is evaluated again at the use site.
type Macro struct {
	Fn *Closure
}

// Kind returns "macro".
func (*Macro) Kind() string { return "macro" }

// Equal compares by identity.
func (m *Macro) Equal(rhs any) bool { return m == rhs }

// Hash returns the hash of the address of the macro.
func (m *Macro) Hash() uint32 { return hash.Pointer(unsafe.Pointer(m)) }

// Repr returns an opaque representation with the name if there is one.
func (m *Macro) Repr() string {
	if m.Fn.Name == "" {
		return "<macro>"
	}
	return "<macro " + m.Fn.Name + ">"
}

// Expand calls the macro body with the unevaluated argument forms and
// returns the replacement form. The body runs in a child of the scope the
// macro was defined in; the caller is responsible for evaluating the
// expansion in the use-site scope.
func (m *Macro) Expand(fm *Frame, argForms []any) (any, error) {
	return m.Fn.Call(fm, argForms)
}
