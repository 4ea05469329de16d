package eval_test

import (
	"testing"

	"github.com/zem-editor/zem/pkg/eval/errs"
	. "github.com/zem-editor/zem/pkg/eval/evaltest"
	"github.com/zem-editor/zem/pkg/eval/vals"
)

func TestListOps(t *testing.T) {
	Test(t,
		That("(list 1 2 3)").Evals(vals.MakeList(1.0, 2.0, 3.0)),
		That("(list)").Evals(vals.List{}),
		That("(cons 1 '(2 3))").Evals(vals.MakeList(1.0, 2.0, 3.0)),
		That("(cons 1 nil)").Evals(vals.MakeList(1.0)),
		That("(cons 1 2)").Throws(errs.BadType{
			What: "second argument to cons", Want: "list", Got: "number"}),

		That("(first '(1 2))").Evals(1.0),
		That("(first '())").Evals(nil),
		That("(first nil)").Evals(nil),
		That("(rest '(1 2 3))").Evals(vals.MakeList(2.0, 3.0)),
		That("(rest '(1))").Evals(vals.List{}),
		That("(rest nil)").Evals(vals.List{}),
		That("(first 1)").Throws(ErrorWithKind(errs.KindType)),

		That("(nth '(10 20 30) 1)").Evals(20.0),
		That("(nth '(10 20 30) 3)").Throws(errs.OutOfRange{
			What: "list index", ValidLow: 0, ValidHigh: 2, Actual: "3"}),
		That("(nth '(10) -1)").Throws(ErrorWithType(errs.OutOfRange{})),
		That("(nth '(10) 0.5)").Throws(errs.BadType{
			What: "argument 2 to nth", Want: "integer", Got: "number"}),

		That("(length '(1 2 3))").Evals(3.0),
		That("(length '())").Evals(0.0),
		That("(length nil)").Evals(0.0),
		// String length counts runes, not bytes.
		That(`(length "héllo")`).Evals(5.0),
		That(`(length (hash-map "a" 1))`).Evals(1.0),
		That("(length 5)").Throws(errs.BadType{
			What: "argument to length", Want: "list, map or string", Got: "number"}),

		That("(append '(1) '(2 3) nil '(4))").Evals(
			vals.MakeList(1.0, 2.0, 3.0, 4.0)),
		That("(append)").Evals(vals.List{}),
		That("(append '(1) 2)").Throws(errs.BadType{
			What: "argument 2 to append", Want: "list", Got: "number"}),
		That("(reverse '(1 2 3))").Evals(vals.MakeList(3.0, 2.0, 1.0)),
		That("(reverse nil)").Evals(vals.List{}),
	)
}

func TestHigherOrderFns(t *testing.T) {
	Test(t,
		That("(map (lambda (x) (* x 2)) '(1 2 3))").Evals(
			vals.MakeList(2.0, 4.0, 6.0)),
		// Natives work as arguments too.
		That("(map abs '(-1 2 -3))").Evals(vals.MakeList(1.0, 2.0, 3.0)),
		That("(map (lambda (x) x) '())").Evals(vals.List{}),
		That("(filter (lambda (x) (< x 3)) '(1 5 2 8))").Evals(
			vals.MakeList(1.0, 2.0)),
		That("(reduce + 0 '(1 2 3))").Evals(6.0),
		That("(reduce + 10 '())").Evals(10.0),
		That("(reduce (lambda (acc x) (cons x acc)) '() '(1 2 3))").Evals(
			vals.MakeList(3.0, 2.0, 1.0)),

		That("(map 5 '(1))").Throws(errs.BadType{
			What: "argument 1 to map", Want: "function", Got: "number"}),
		That(`(map (lambda (x) (error "boom")) '(1))`).Throws(
			errs.User{Message: "boom"}),
	)
}

func TestMapOps(t *testing.T) {
	Test(t,
		That(`(hash-map "a" 1 "b" 2)`).Evals(vals.MakeMap("a", 1.0, "b", 2.0)),
		That("(hash-map)").Evals(vals.EmptyMap),
		That(`(hash-map "a")`).Throws(errs.BadValue{
			What:  "arguments to hash-map",
			Valid: "an even number of values", Actual: "1 values"}),

		That(`(get (hash-map "a" 1) "a")`).Evals(1.0),
		That(`(get (hash-map "a" 1) "b")`).Evals(nil),
		That("(get (assoc (hash-map) 'k 7) 'k)").Evals(7.0),
		That(`(get (assoc (hash-map "a" 1) "a" 2) "a")`).Evals(2.0),
		// Maps are persistent: assoc does not modify the original.
		That(`(let ((m (hash-map "a" 1))) (assoc m "a" 2) (get m "a"))`).Evals(1.0),
		That(`(let ((m (hash-map "a" 1))) (dissoc m "a") (has-key? m "a"))`).Evals(true),

		That(`(has-key? (hash-map "a" 1) "a")`).Evals(true),
		That(`(has-key? (dissoc (hash-map "a" 1) "a") "a")`).Evals(false),
		// Lists have their indices as keys.
		That("(has-key? '(10 20) 1)").Evals(true),
		That("(has-key? '(10 20) 2)").Evals(false),
		That("(has-key? 5 1)").Evals(false),

		That(`(keys (hash-map "a" 1))`).Evals(vals.MakeList("a")),
		That(`(values (hash-map "a" 1))`).Evals(vals.MakeList(1.0)),
		That(`(length (keys (hash-map "a" 1 "b" 2)))`).Evals(2.0),

		That("(get 5 'k)").Throws(errs.BadType{
			What: "argument 1 to get", Want: "map", Got: "number"}),
	)
}
