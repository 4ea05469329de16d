package evaltest

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/zem-editor/zem/pkg/eval"
	"github.com/zem-editor/zem/pkg/eval/errs"
	"github.com/zem-editor/zem/pkg/parse"
)

type errorMatcher interface{ matchError(error) bool }

func matchErr(want, got error) bool {
	if want == nil {
		return got == nil
	}
	if m, ok := want.(errorMatcher); ok {
		return m.matchError(got)
	}
	return reflect.DeepEqual(want, got)
}

// An errorMatcher for exceptions.
type exc struct {
	reason error
	stacks []string
}

func (e exc) Error() string {
	if len(e.stacks) == 0 {
		return fmt.Sprintf("error with reason %v", e.reason)
	}
	return fmt.Sprintf("error with reason %v and stacks %v", e.reason, e.stacks)
}

func (e exc) matchError(e2 error) bool {
	if e2, ok := e2.(eval.Exception); ok {
		return matchErr(e.reason, e2.Reason()) &&
			(len(e.stacks) == 0 ||
				reflect.DeepEqual(e.stacks, getStackTexts(e2.StackTrace())))
	}
	// Parse errors are not wrapped into exceptions; let reason matchers see
	// them directly.
	return matchErr(e.reason, e2)
}

// getStackTexts returns the culprit source fragment of each frame, innermost
// first.
func getStackTexts(tb *eval.StackTrace) []string {
	texts := []string{}
	for tb != nil {
		ctx := tb.Head
		texts = append(texts, ctx.Source[ctx.From:ctx.To])
		tb = tb.Next
	}
	return texts
}

// AnyParseError matches any parse error. Pass it to Case.Throws.
var AnyParseError anyParseError

type anyParseError struct{}

func (anyParseError) Error() string { return "any parse error" }

func (anyParseError) matchError(e error) bool {
	var parseErr *parse.Error
	return errors.As(e, &parseErr)
}

// ErrorWithType returns an error that can be passed to Case.Throws to match
// any error with the same type as the argument.
func ErrorWithType(v error) error { return errWithType{v} }

type errWithType struct{ v error }

func (e errWithType) Error() string { return fmt.Sprintf("error with type %T", e.v) }

func (e errWithType) matchError(e2 error) bool {
	return reflect.TypeOf(e.v) == reflect.TypeOf(e2)
}

// ErrorWithMessage returns an error that can be passed to Case.Throws to
// match any error with the given message.
func ErrorWithMessage(msg string) error { return errWithMessage{msg} }

type errWithMessage struct{ msg string }

func (e errWithMessage) Error() string { return "error with message " + e.msg }

func (e errWithMessage) matchError(e2 error) bool {
	return e2 != nil && e.msg == e2.Error()
}

// ErrorWithKind returns an error that can be passed to Case.Throws to match
// any error classified under the given kind.
func ErrorWithKind(k errs.Kind) error { return errWithKind{k} }

type errWithKind struct{ kind errs.Kind }

func (e errWithKind) Error() string { return fmt.Sprintf("error with kind %v", e.kind) }

func (e errWithKind) matchError(e2 error) bool {
	return e2 != nil && errs.KindOf(e2) == e.kind
}

// OneOfErrors returns an error that can be passed to Case.Throws to match
// any of the given errors.
func OneOfErrors(errs ...error) error { return errOneOf{errs} }

type errOneOf struct{ errs []error }

func (e errOneOf) Error() string { return fmt.Sprint("one of ", e.errs) }

func (e errOneOf) matchError(gotError error) bool {
	for _, want := range e.errs {
		if matchErr(want, gotError) {
			return true
		}
	}
	return false
}
