package eval_test

import (
	"testing"

	. "github.com/zem-editor/zem/pkg/eval/evaltest"
	"github.com/zem-editor/zem/pkg/eval/vals"
	"github.com/zem-editor/zem/pkg/parse"
)

func TestStrConversion(t *testing.T) {
	Test(t,
		That(`(str "a" 1 'b nil)`).Evals("a1bnil"),
		That("(str)").Evals(""),
		That("(str '(1 2))").Evals("(1 2)"),

		That(`(to-string "x")`).Evals("x"),
		That("(to-string 2)").Evals("2"),
		That("(to-string 'sym)").Evals("sym"),
		// Strings nested in containers keep their quotes.
		That(`(to-string '(1 "x"))`).Evals(`(1 "x")`),

		That(`(repr "x")`).Evals(`"x"`),
		That("(repr 2.5)").Evals("2.5"),
		That("(repr 2.0)").Evals("2"),
		That("(repr nil)").Evals("nil"),
		That("(repr '(1 (2) \"s\"))").Evals(`(1 (2) "s")`),
	)
}

func TestPrint(t *testing.T) {
	Test(t,
		That(`(print "a")`).Prints("a"),
		That(`(print "a" "b" 1)`).Prints("a b 1"),
		That("(println 'x)").Prints("x\n"),
		That("(println)").Prints("\n"),
		That(`(progn (println "one") (println "two"))`).Prints("one\ntwo\n"),
		// Printed strings are unquoted.
		That(`(println "a b")`).Prints("a b\n"),
		That("(print '(1 2))").Prints("(1 2)"),
	)
}

func TestReadString(t *testing.T) {
	Test(t,
		That(`(read-string "(+ 1 2)")`).Evals(
			vals.MakeList(vals.Symbol("+"), 1.0, 2.0)),
		That(`(read-string "42")`).Evals(42.0),
		// The result is data; eval runs it.
		That(`(eval (read-string "(+ 1 2)"))`).Evals(3.0),
		That(`(read-string "(")`).Throws(ErrorWithType(&parse.Error{})),
		That(`(read-string "1 2")`).Throws(AnyParseError),
	)
}
