package eval_test

import (
	"testing"

	"github.com/zem-editor/zem/pkg/eval/errs"
	. "github.com/zem-editor/zem/pkg/eval/evaltest"
	"github.com/zem-editor/zem/pkg/eval/vals"
)

func TestPrelude_WhenUnless(t *testing.T) {
	Test(t,
		That("(when true 1 2)").Evals(2.0),
		That("(when false 1 2)").Evals(nil),
		That("(when true)").Evals(nil),
		That(`(when false (error "not evaluated"))`).Evals(nil),
		That("(unless false 1 2)").Evals(2.0),
		That("(unless true 1 2)").Evals(nil),
		That(`(unless true (error "not evaluated"))`).Evals(nil),
		// Only nil and false count as false.
		That("(when 0 'yes)").Evals(vals.Symbol("yes")),
		That(`(when "" 'yes)`).Evals(vals.Symbol("yes")),
	)
}

func TestPrelude_IncDec(t *testing.T) {
	Test(t,
		That("(define x 1) (inc! x) x").Evals(2.0),
		That("(define x 1) (inc! x 5) x").Evals(6.0),
		That("(define x 5) (dec! x) x").Evals(4.0),
		That("(define x 5) (dec! x 3) x").Evals(2.0),
		// inc! is a set!, so it returns the new value and reaches the
		// nearest binding.
		That("(define x 1) (inc! x)").Evals(2.0),
		That("(define x 1)",
			"(let ((x 10)) (inc! x))",
			"x").
			Evals(1.0),
		That("(inc! missing)").Throws(errs.Unbound{Symbol: "missing"}),
	)
}

func TestPrelude_Dolist(t *testing.T) {
	Test(t,
		That("(define sum 0)",
			"(dolist (x '(1 2 3)) (set! sum (+ sum x)))",
			"sum").
			Evals(6.0),
		That("(dolist (x '(a b)) (println x))").Prints("a\nb\n"),
		That("(dolist (x '(1 2 3)) x)").Evals(nil),
		That(`(dolist (x '()) (error "never runs"))`).Evals(nil),
		// The loop variable is scoped to the body.
		That("(dolist (x '(1)) x) x").Throws(errs.Unbound{Symbol: "x"}),
	)
}

func TestPrelude_Deftest(t *testing.T) {
	Test(t,
		// deftest defers to test:register, which only the script test runner
		// binds. A plain evaluator leaves the body unevaluated.
		That("(deftest sums (assert (= (+ 1 1) 2)))").
			Throws(errs.Unbound{Symbol: "test:register"}),
		That("(macro? deftest)").Evals(true),
	)
}
