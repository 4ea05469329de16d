// Package errs declares error types used as runtime error reasons, and the
// classification hosts use to act on them without string matching.
package errs

import (
	"errors"
	"fmt"

	"github.com/zem-editor/zem/pkg/parse"
)

// Kind classifies an error crossing the runtime boundary. Hosts switch on
// the kind; the structured fields of the concrete types carry the details.
type Kind string

const (
	// KindParse marks malformed source text, found before any evaluation.
	KindParse Kind = "parse-error"
	// KindUnbound marks lookup or assignment of a symbol with no binding.
	KindUnbound Kind = "unbound-symbol"
	// KindArity marks a call with the wrong number of arguments.
	KindArity Kind = "arity-mismatch"
	// KindType marks an operation applied to a value of the wrong type.
	KindType Kind = "type-error"
	// KindUser marks errors raised by the error builtin, and any error from
	// a host function with no finer classification.
	KindUser Kind = "user-error"
	// KindFatal marks conditions the runtime cannot recover from in the
	// current evaluation, like exceeding the depth limit.
	KindFatal Kind = "fatal-error"
)

// classified is implemented by error types that know their own Kind.
type classified interface {
	ErrorKind() Kind
}

// KindOf returns the Kind of an error. Errors that are not classified,
// typically plain Go errors returned by host functions, report KindUser.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var parseErr *parse.Error
	if errors.As(err, &parseErr) {
		return KindParse
	}
	var c classified
	if errors.As(err, &c) {
		return c.ErrorKind()
	}
	return KindUser
}

// Details returns the structured metadata of an error as a map, for hosts
// that forward errors over a wire or into scripts. Unclassified errors have
// no details.
func Details(err error) map[string]any {
	switch e := reason(err).(type) {
	case ArityMismatch:
		return map[string]any{
			"what": e.What, "valid-low": e.ValidLow,
			"valid-high": e.ValidHigh, "actual": e.Actual,
		}
	case OutOfRange:
		return map[string]any{
			"what": e.What, "valid-low": e.ValidLow,
			"valid-high": e.ValidHigh, "actual": e.Actual,
		}
	case BadValue:
		return map[string]any{"what": e.What, "valid": e.Valid, "actual": e.Actual}
	case BadType:
		return map[string]any{"what": e.What, "want": e.Want, "got": e.Got}
	case Unbound:
		return map[string]any{"symbol": e.Symbol}
	case User:
		return map[string]any{"detail": e.Detail}
	case StackOverflow:
		return map[string]any{"limit": e.Limit}
	default:
		return nil
	}
}

func reason(err error) error {
	for err != nil {
		if _, ok := err.(classified); ok {
			return err
		}
		err = errors.Unwrap(err)
	}
	return nil
}

// OutOfRange encodes an error where a value is out of its valid range.
type OutOfRange struct {
	What      string
	ValidLow  int
	ValidHigh int
	Actual    string
}

// Error implements the error interface.
func (e OutOfRange) Error() string {
	if e.ValidHigh < e.ValidLow {
		return fmt.Sprintf("out of range: %s has no valid value, but is %s",
			e.What, e.Actual)
	}
	return fmt.Sprintf("out of range: %s must be from %d to %d, but is %s",
		e.What, e.ValidLow, e.ValidHigh, e.Actual)
}

// ErrorKind returns KindType.
func (OutOfRange) ErrorKind() Kind { return KindType }

// ArityMismatch encodes an error where the expected number of values is out
// of the valid range.
type ArityMismatch struct {
	What      string
	ValidLow  int
	ValidHigh int
	Actual    int
}

func valuesString(n int) string {
	if n == 1 {
		return "1 value"
	}
	return fmt.Sprintf("%d values", n)
}

// Error implements the error interface.
func (e ArityMismatch) Error() string {
	switch {
	case e.ValidHigh == e.ValidLow:
		return fmt.Sprintf("arity mismatch: %s must be %s, but is %s",
			e.What, valuesString(e.ValidLow), valuesString(e.Actual))
	case e.ValidHigh == -1:
		return fmt.Sprintf("arity mismatch: %s must be %d or more values, but is %s",
			e.What, e.ValidLow, valuesString(e.Actual))
	default:
		return fmt.Sprintf("arity mismatch: %s must be %d to %d values, but is %s",
			e.What, e.ValidLow, e.ValidHigh, valuesString(e.Actual))
	}
}

// ErrorKind returns KindArity.
func (ArityMismatch) ErrorKind() Kind { return KindArity }

// BadValue encodes an error where a value has the right type but is
// otherwise unacceptable.
type BadValue struct {
	What   string
	Valid  string
	Actual string
}

// Error implements the error interface.
func (e BadValue) Error() string {
	return fmt.Sprintf("bad value: %s must be %s, but is %s", e.What, e.Valid, e.Actual)
}

// ErrorKind returns KindType.
func (BadValue) ErrorKind() Kind { return KindType }

// BadType encodes an error where a value has the wrong type.
type BadType struct {
	What string
	Want string
	Got  string
}

// Error implements the error interface.
func (e BadType) Error() string {
	return fmt.Sprintf("bad type: %s must be %s, but is %s", e.What, e.Want, e.Got)
}

// ErrorKind returns KindType.
func (BadType) ErrorKind() Kind { return KindType }

// Unbound encodes a reference to a symbol that has no binding in scope.
type Unbound struct {
	Symbol string
}

// Error implements the error interface.
func (e Unbound) Error() string {
	return "unbound symbol: " + e.Symbol
}

// ErrorKind returns KindUnbound.
func (Unbound) ErrorKind() Kind { return KindUnbound }

// User encodes an error raised deliberately from script, via the error
// builtin. Detail carries the optional payload value.
type User struct {
	Message string
	Detail  any
}

// Error implements the error interface.
func (e User) Error() string {
	return e.Message
}

// ErrorKind returns KindUser.
func (User) ErrorKind() Kind { return KindUser }

// SetReadOnlyVar encodes an attempt to assign a read-only variable.
type SetReadOnlyVar struct {
	VarName string
}

// Error implements the error interface.
func (e SetReadOnlyVar) Error() string {
	if e.VarName == "" {
		return "cannot set read-only variable"
	}
	return fmt.Sprintf("cannot set read-only variable %s", e.VarName)
}

// ErrorKind returns KindType.
func (SetReadOnlyVar) ErrorKind() Kind { return KindType }

// StackOverflow encodes exceeding the evaluation depth limit. Unbounded
// recursion surfaces as this error instead of exhausting the Go stack.
type StackOverflow struct {
	Limit int
}

// Error implements the error interface.
func (e StackOverflow) Error() string {
	return fmt.Sprintf("stack overflow: evaluation depth exceeded %d", e.Limit)
}

// ErrorKind returns KindFatal.
func (StackOverflow) ErrorKind() Kind { return KindFatal }
