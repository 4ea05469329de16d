package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/zem-editor/zem/pkg/parse"
)

var errorMessageTests = []struct {
	err     error
	wantMsg string
}{
	{
		OutOfRange{What: "list index here", ValidLow: 0, ValidHigh: 2, Actual: "3"},
		"out of range: list index here must be from 0 to 2, but is 3",
	},
	{
		OutOfRange{What: "list index here", ValidLow: 1, ValidHigh: 0, Actual: "0"},
		"out of range: list index here has no valid value, but is 0",
	},
	{
		ArityMismatch{What: "arguments here", ValidLow: 2, ValidHigh: 2, Actual: 3},
		"arity mismatch: arguments here must be 2 values, but is 3 values",
	},
	{
		ArityMismatch{What: "arguments here", ValidLow: 2, ValidHigh: -1, Actual: 1},
		"arity mismatch: arguments here must be 2 or more values, but is 1 value",
	},
	{
		ArityMismatch{What: "arguments here", ValidLow: 2, ValidHigh: 3, Actual: 1},
		"arity mismatch: arguments here must be 2 to 3 values, but is 1 value",
	},
	{
		BadValue{What: "flag here", Valid: "a non-negative number", Actual: "-1"},
		"bad value: flag here must be a non-negative number, but is -1",
	},
	{
		BadType{What: "argument to fn", Want: "number", Got: "string"},
		"bad type: argument to fn must be number, but is string",
	},
	{
		Unbound{Symbol: "x"},
		"unbound symbol: x",
	},
	{
		User{Message: "boom"},
		"boom",
	},
	{
		StackOverflow{Limit: 4096},
		"stack overflow: evaluation depth exceeded 4096",
	},
}

func TestErrorMessages(t *testing.T) {
	for _, test := range errorMessageTests {
		if gotMsg := test.err.Error(); gotMsg != test.wantMsg {
			t.Errorf("got message %v, want %v", gotMsg, test.wantMsg)
		}
	}
}

var kindOfTests = []struct {
	err  error
	want Kind
}{
	{nil, Kind("")},
	{ArityMismatch{}, KindArity},
	{OutOfRange{}, KindType},
	{BadValue{}, KindType},
	{BadType{}, KindType},
	{Unbound{}, KindUnbound},
	{User{}, KindUser},
	{StackOverflow{}, KindFatal},
	{&parse.Error{}, KindParse},
	// Wrapped reasons keep their classification.
	{fmt.Errorf("while loading: %w", Unbound{Symbol: "x"}), KindUnbound},
	// Plain Go errors default to user errors.
	{errors.New("plain"), KindUser},
}

func TestKindOf(t *testing.T) {
	for _, test := range kindOfTests {
		if got := KindOf(test.err); got != test.want {
			t.Errorf("KindOf(%v) = %v, want %v", test.err, got, test.want)
		}
	}
}

func TestDetails(t *testing.T) {
	d := Details(ArityMismatch{What: "arguments", ValidLow: 1, ValidHigh: 2, Actual: 3})
	if d["valid-low"] != 1 || d["valid-high"] != 2 || d["actual"] != 3 {
		t.Errorf("Details of ArityMismatch = %v", d)
	}
	d = Details(Unbound{Symbol: "x"})
	if d["symbol"] != "x" {
		t.Errorf("Details of Unbound = %v", d)
	}
	if d := Details(errors.New("plain")); d != nil {
		t.Errorf("Details of plain error = %v, want nil", d)
	}
}
