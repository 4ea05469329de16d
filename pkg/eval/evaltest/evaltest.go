// Package evaltest provides a framework for testing Zem Lisp script.
//
// The entry point for the framework is the Test function, which accepts a
// *testing.T and any number of test cases.
//
// Test cases are constructed using the That function, followed by method
// calls that add additional information to it.
//
// Example:
//
//	Test(t,
//	    That("(+ 1 2)").Evals(3.0),
//	    That("(println 'x)").Prints("x\n"))
//
// Each code piece is executed as a script, and contributes the value of its
// last form; use the Then method to execute several pieces against one
// evaluator. If some setup is needed, use the TestWithSetup function
// instead.
package evaltest

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/zem-editor/zem/pkg/eval"
	"github.com/zem-editor/zem/pkg/eval/vals"
	"github.com/zem-editor/zem/pkg/parse"
)

// Case is a test case that can be used in Test.
type Case struct {
	codes []string
	setup func(ev *eval.Evaler)
	want  result
}

type result struct {
	Values []any
	Output []byte
	Err    error
}

// That returns a new Case with the specified source code. Multiple arguments
// are joined with newlines.
//
// When combined with subsequent method calls, a test case reads like
// English. For example, a test for the fact that (+ 1 2) evaluates to 3
// reads:
//
//	That("(+ 1 2)").Evals(3.0)
func That(lines ...string) Case {
	return Case{codes: []string{strings.Join(lines, "\n")}}
}

// Then returns a new Case that executes the given code in addition. Multiple
// arguments are joined with newlines.
func (c Case) Then(lines ...string) Case {
	c.codes = append(c.codes, strings.Join(lines, "\n"))
	return c
}

// WithSetup returns a new Case with the given setup function executed on the
// Evaler before the code is executed.
func (c Case) WithSetup(f func(*eval.Evaler)) Case {
	c.setup = f
	return c
}

// DoesNothing returns c unchanged. It marks tests that only care that the
// code runs without error, for example:
//
//	That("(defvar x 1)").DoesNothing()
func (c Case) DoesNothing() Case {
	return c
}

// Evals returns an altered Case that requires the code pieces to evaluate,
// in order, to the given values. Each piece contributes the value of its
// last form. Arguments may be ValueMatchers. Cases that never call Evals
// have their values ignored.
func (c Case) Evals(vs ...any) Case {
	c.want.Values = vs
	if c.want.Values == nil {
		c.want.Values = []any{}
	}
	return c
}

// Prints returns an altered Case that requires the code to write exactly the
// given text to the evaluator's output.
func (c Case) Prints(s string) Case {
	c.want.Output = []byte(s)
	return c
}

// Throws returns an altered Case that requires the code to fail with the
// given error reason. The reason supports special matcher values constructed
// by functions like ErrorWithMessage.
//
// If at least one stack string is given, the error must also be an
// eval.Exception whose stack trace matches the given source fragments, frame
// by frame, innermost first. If no stack string is given the stack trace is
// not checked.
func (c Case) Throws(reason error, stacks ...string) Case {
	c.want.Err = exc{reason, stacks}
	return c
}

// Test runs test cases. For each test case, a new Evaler is created with
// NewEvaler.
func Test(t *testing.T, tests ...Case) {
	t.Helper()
	TestWithSetup(t, func(*eval.Evaler) {}, tests...)
}

// TestWithSetup runs test cases. For each test case, a new Evaler is created
// with NewEvaler and passed to the setup function.
func TestWithSetup(t *testing.T, setup func(*eval.Evaler), tests ...Case) {
	t.Helper()
	for _, tc := range tests {
		t.Run(strings.Join(tc.codes, "\n"), func(t *testing.T) {
			t.Helper()
			ev := eval.NewEvaler()
			setup(ev)
			if tc.setup != nil {
				tc.setup(ev)
			}

			r := evalAndCollect(ev, tc.codes)

			// Values are only checked when the case declares them with
			// Evals, since every successful piece produces a value.
			if tc.want.Values != nil && !matchValues(tc.want.Values, r.Values) {
				t.Errorf("got values (-want +got):\n%s",
					cmp.Diff(reprList(tc.want.Values), reprList(r.Values)))
			}
			if !bytes.Equal(tc.want.Output, r.Output) {
				t.Errorf("got output %q, want %q", r.Output, tc.want.Output)
			}
			if !matchErr(tc.want.Err, r.Err) {
				t.Errorf("got error %v, want %v", r.Err, tc.want.Err)
				if exc, ok := r.Err.(eval.Exception); ok {
					t.Logf("reason: %T: %v", exc.Reason(), exc.Reason())
					t.Logf("stack trace: %v", getStackTexts(exc.StackTrace()))
				}
			}
		})
	}
}

// evalAndCollect executes the code pieces on ev and collects their results.
// A piece that fails stops that piece, but later pieces still run; the last
// error wins.
func evalAndCollect(ev *eval.Evaler, texts []string) result {
	var r result
	var output bytes.Buffer
	ev.SetOutput(&output)
	for _, text := range texts {
		v, err := ev.Execute(parse.SourceText("[test]", text))
		if err != nil {
			r.Err = err
			continue
		}
		r.Values = append(r.Values, v)
	}
	r.Output = output.Bytes()
	return r
}

func matchValues(want, got []any) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if !matchValue(want[i], got[i]) {
			return false
		}
	}
	return true
}

func matchValue(want, got any) bool {
	if m, ok := want.(ValueMatcher); ok {
		return m.matchValue(got)
	}
	return vals.Equal(got, want)
}

// reprList renders values for diffing. Diffing the rendered forms sidesteps
// values go-cmp cannot look inside, like closures.
func reprList(values []any) []string {
	reprs := make([]string, len(values))
	for i, v := range values {
		reprs[i] = vals.Repr(v)
	}
	return reprs
}
