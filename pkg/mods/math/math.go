// Package math exposes functionality from Go's math package as a Zem Lisp
// module.
package math

import (
	"math"

	"github.com/zem-editor/zem/pkg/eval/vars"
)

// Vars are the variables of the math: module.
var Vars = map[string]vars.Var{
	"e":  vars.NewReadOnly(math.E),
	"pi": vars.NewReadOnly(math.Pi),
}

// Fns are the functions of the math: module.
var Fns = map[string]any{
	"abs":           math.Abs,
	"acos":          math.Acos,
	"asin":          math.Asin,
	"atan":          math.Atan,
	"ceil":          math.Ceil,
	"cos":           math.Cos,
	"exp":           math.Exp,
	"floor":         math.Floor,
	"is-inf":        isInf,
	"is-nan":        math.IsNaN,
	"log":           math.Log,
	"log10":         math.Log10,
	"log2":          math.Log2,
	"pow":           math.Pow,
	"round":         math.Round,
	"round-to-even": math.RoundToEven,
	"sin":           math.Sin,
	"sqrt":          math.Sqrt,
	"tan":           math.Tan,
	"trunc":         math.Trunc,
}

// isInf reports whether the number is an infinity of either sign.
func isInf(f float64) bool { return math.IsInf(f, 0) }
