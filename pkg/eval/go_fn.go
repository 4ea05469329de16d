package eval

import (
	"fmt"
	"reflect"
	"unsafe"

	"github.com/zem-editor/zem/pkg/eval/errs"
	"github.com/zem-editor/zem/pkg/eval/vals"
	"github.com/zem-editor/zem/pkg/persistent/hash"
)

var (
	frameType = reflect.TypeOf((*Frame)(nil))
	errorType = reflect.TypeOf((*error)(nil)).Elem()
)

// GoFn uses reflection to wrap a Go function into a Callable.
//
// The Go function may take a *Frame as its first parameter to gain access
// to the Evaler. Remaining parameters are converted from runtime values
// with vals.ScanToGo; a variadic function accepts the surplus arguments in
// its final slice. Results: a final error return becomes the raised error,
// at most one other return value is converted back with vals.FromGo, and a
// function with several value returns yields a list.
type GoFn struct {
	name string
	impl reflect.Value

	takesFrame  bool
	normalArgs  []reflect.Type
	variadicArg reflect.Type
	outs        []reflect.Type
	hasErrorOut bool
}

var _ Callable = (*GoFn)(nil)

// NewGoFn wraps a Go function into a Callable. It panics if impl is not a
// function, or if it has more than one non-error return value after an
// error return.
func NewGoFn(name string, impl any) *GoFn {
	implType := reflect.TypeOf(impl)
	if implType == nil || implType.Kind() != reflect.Func {
		panic(fmt.Sprintf("bug: NewGoFn %s: impl is %T, not a function", name, impl))
	}

	fn := &GoFn{name: name, impl: reflect.ValueOf(impl)}

	in := 0
	if implType.NumIn() > 0 && implType.In(0) == frameType {
		fn.takesFrame = true
		in = 1
	}
	numNormal := implType.NumIn()
	if implType.IsVariadic() {
		numNormal--
		fn.variadicArg = implType.In(implType.NumIn() - 1).Elem()
	}
	for ; in < numNormal; in++ {
		fn.normalArgs = append(fn.normalArgs, implType.In(in))
	}

	for i := 0; i < implType.NumOut(); i++ {
		fn.outs = append(fn.outs, implType.Out(i))
	}
	if n := len(fn.outs); n > 0 && fn.outs[n-1] == errorType {
		fn.hasErrorOut = true
		fn.outs = fn.outs[:n-1]
	}
	for _, out := range fn.outs {
		if out == errorType {
			panic(fmt.Sprintf("bug: NewGoFn %s: error return must be last", name))
		}
	}
	return fn
}

// Kind returns "fn".
func (*GoFn) Kind() string { return "fn" }

// Equal compares by identity.
func (f *GoFn) Equal(rhs any) bool { return f == rhs }

// Hash returns the hash of the address of the function.
func (f *GoFn) Hash() uint32 { return hash.Pointer(unsafe.Pointer(f)) }

// Repr returns an opaque representation.
func (f *GoFn) Repr() string { return "<builtin " + f.name + ">" }

// Name returns the name the function was registered under.
func (f *GoFn) Name() string { return f.name }

// Call converts args, calls the wrapped function and converts its results.
func (f *GoFn) Call(fm *Frame, args []any) (any, error) {
	n := len(f.normalArgs)
	if f.variadicArg != nil {
		if len(args) < n {
			return nil, errs.ArityMismatch{What: "arguments",
				ValidLow: n, ValidHigh: -1, Actual: len(args)}
		}
	} else if len(args) != n {
		return nil, errs.ArityMismatch{What: "arguments",
			ValidLow: n, ValidHigh: n, Actual: len(args)}
	}

	var in []reflect.Value
	if f.takesFrame {
		in = append(in, reflect.ValueOf(fm))
	}
	for i, arg := range args {
		var dstType reflect.Type
		if i < n {
			dstType = f.normalArgs[i]
		} else {
			dstType = f.variadicArg
		}
		ptr := reflect.New(dstType)
		if err := vals.ScanToGo(arg, ptr.Interface()); err != nil {
			if wrong, ok := err.(vals.WrongType); ok {
				return nil, errs.BadType{
					What: fmt.Sprintf("argument %d to %s", i+1, f.name),
					Want: wrong.Want, Got: wrong.Got}
			}
			return nil, err
		}
		in = append(in, ptr.Elem())
	}

	outs := f.impl.Call(in)
	if f.hasErrorOut {
		errOut := outs[len(outs)-1]
		outs = outs[:len(outs)-1]
		if !errOut.IsNil() {
			return nil, errOut.Interface().(error)
		}
	}
	switch len(outs) {
	case 0:
		return nil, nil
	case 1:
		return vals.FromGo(outs[0].Interface()), nil
	default:
		results := make(vals.List, len(outs))
		for i, out := range outs {
			results[i] = vals.FromGo(out.Interface())
		}
		return results, nil
	}
}
