package eval_test

import (
	"testing"

	. "github.com/zem-editor/zem/pkg/eval/evaltest"
)

func TestNot(t *testing.T) {
	Test(t,
		That("(not nil)").Evals(true),
		That("(not false)").Evals(true),
		That("(not true)").Evals(false),
		// Only nil and false are false.
		That("(not 0)").Evals(false),
		That("(not \"\")").Evals(false),
		That("(not '())").Evals(false),
	)
}

func TestEqP(t *testing.T) {
	Test(t,
		That("(eq? 1 1)").Evals(true),
		That("(eq? 1 2)").Evals(false),
		That("(eq? 'a 'a)").Evals(true),
		That("(eq? \"x\" \"x\")").Evals(true),
		That("(eq? nil nil)").Evals(true),
		That("(eq? nil false)").Evals(false),
		// Lists compare by identity, not structure.
		That("(eq? '(1) '(1))").Evals(false),
		That("(let ((x '(1))) (eq? x x))").Evals(true),
		// All empty lists are the same empty list.
		That("(eq? (list) (list))").Evals(true),
		That("(eq? + +)").Evals(true),
	)
}

func TestEqualP(t *testing.T) {
	Test(t,
		That("(equal? 1 1)").Evals(true),
		That("(equal? 1 2)").Evals(false),
		That("(equal? \"1\" 1)").Evals(false),
		That("(equal? '(1 (2 3)) '(1 (2 3)))").Evals(true),
		That("(equal? '(1 2) '(1))").Evals(false),
		That("(equal? (hash-map \"a\" 1) (hash-map \"a\" 1))").Evals(true),
		That("(equal? (hash-map \"a\" 1) (hash-map \"a\" 2))").Evals(false),
	)
}

func TestTypePredicates(t *testing.T) {
	Test(t,
		That("(null? nil)").Evals(true),
		That("(null? false)").Evals(false),
		// The empty list is a list, not nil.
		That("(null? '())").Evals(false),
		That("(list? '())").Evals(true),
		That("(list? '(1))").Evals(true),
		That("(list? nil)").Evals(false),
		That("(symbol? 'a)").Evals(true),
		That("(symbol? \"a\")").Evals(false),
		That("(string? \"a\")").Evals(true),
		That("(string? 'a)").Evals(false),
		That("(number? 1)").Evals(true),
		That("(number? \"1\")").Evals(false),
		That("(boolean? true)").Evals(true),
		That("(boolean? false)").Evals(true),
		That("(boolean? nil)").Evals(false),
		That("(map? (hash-map))").Evals(true),
		That("(map? '())").Evals(false),
		That("(fn? (lambda (x) x))").Evals(true),
		That("(fn? +)").Evals(true),
		That("(fn? '+)").Evals(false),
		That("(fn? when)").Evals(false),
		That("(macro? when)").Evals(true),
		That("(macro? +)").Evals(false),
	)
}
