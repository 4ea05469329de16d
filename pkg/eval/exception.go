package eval

import (
	"bytes"
	"fmt"
	"unsafe"

	"github.com/zem-editor/zem/pkg/diag"
	"github.com/zem-editor/zem/pkg/persistent/hash"
)

// Exception represents a runtime error: an underlying reason, usually one of
// the types in the errs package, together with the stack trace where it was
// raised. Every error returned by Eval and Execute for a fault during
// evaluation is an Exception; use errs.KindOf to classify it without
// unwrapping by hand.
type Exception interface {
	error
	diag.Shower
	Reason() error
	StackTrace() *StackTrace
	isException()
}

// StackTrace represents a stack trace as a linked list of diag.Context. The
// head is the innermost frame.
type StackTrace struct {
	Head *diag.Context
	Next *StackTrace
}

// NewException creates a new Exception.
func NewException(reason error, stackTrace *StackTrace) Exception {
	return &exception{reason, stackTrace}
}

type exception struct {
	reason     error
	stackTrace *StackTrace
}

func (exc *exception) isException() {}

// Reason returns the underlying reason of the exception.
func (exc *exception) Reason() error { return exc.reason }

// StackTrace returns the stack trace at the point the exception was raised.
// It may be nil for exceptions raised outside any evaluation.
func (exc *exception) StackTrace() *StackTrace { return exc.stackTrace }

// Unwrap makes the reason visible to the errors package.
func (exc *exception) Unwrap() error { return exc.reason }

// Error returns the message of the underlying reason.
func (exc *exception) Error() string { return exc.reason.Error() }

// Show shows the exception and its stack trace.
func (exc *exception) Show(indent string) string {
	buf := new(bytes.Buffer)

	if shower, ok := exc.reason.(diag.Shower); ok {
		fmt.Fprintf(buf, "Exception: %s", shower.Show(indent))
	} else {
		fmt.Fprintf(buf, "Exception: \033[31;1m%s\033[m", exc.reason.Error())
	}

	for tb := exc.stackTrace; tb != nil; tb = tb.Next {
		buf.WriteString("\n" + indent + "  ")
		buf.WriteString(tb.Head.ShowCompact(indent + "    "))
	}
	return buf.String()
}

// Kind returns "exception".
func (exc *exception) Kind() string { return "exception" }

// Repr returns an opaque representation.
func (exc *exception) Repr() string {
	return "<exception: " + exc.reason.Error() + ">"
}

// Equal compares by identity.
func (exc *exception) Equal(rhs any) bool { return exc == rhs }

// Hash returns the hash of the address.
func (exc *exception) Hash() uint32 {
	return hash.Pointer(unsafe.Pointer(exc))
}
