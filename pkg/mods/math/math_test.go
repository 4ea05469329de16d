package math_test

import (
	"testing"

	"github.com/zem-editor/zem/pkg/eval"
	"github.com/zem-editor/zem/pkg/eval/errs"
	. "github.com/zem-editor/zem/pkg/eval/evaltest"
	"github.com/zem-editor/zem/pkg/mods"
	"github.com/zem-editor/zem/pkg/mods/math"
)

func TestMath(t *testing.T) {
	setup := func(ev *eval.Evaler) {
		mods.AddFns(ev, "math", math.Fns)
		mods.AddVars(ev, "math", math.Vars)
	}
	TestWithSetup(t, setup,
		That(`math:pi`).Evals(Approximately(3.141592653589793)),
		That(`math:e`).Evals(Approximately(2.718281828459045)),
		That(`(set! math:pi 3)`).Throws(errs.SetReadOnlyVar{VarName: "math:pi"}),

		That(`(math:abs -2.5)`).Evals(2.5),
		That(`(math:abs 2.5)`).Evals(2.5),

		That(`(math:ceil 1.1)`).Evals(2.0),
		That(`(math:floor 1.9)`).Evals(1.0),
		That(`(math:round 1.5)`).Evals(2.0),
		That(`(math:round -1.5)`).Evals(-2.0),
		That(`(math:round-to-even 1.5)`).Evals(2.0),
		That(`(math:round-to-even 2.5)`).Evals(2.0),
		That(`(math:trunc 1.9)`).Evals(1.0),
		That(`(math:trunc -1.9)`).Evals(-1.0),

		That(`(math:pow 2 10)`).Evals(1024.0),
		That(`(math:sqrt 9)`).Evals(3.0),
		That(`(math:exp 0)`).Evals(1.0),
		That(`(math:log math:e)`).Evals(Approximately(1.0)),
		That(`(math:log10 1000)`).Evals(Approximately(3.0)),
		That(`(math:log2 8)`).Evals(Approximately(3.0)),

		That(`(math:sin 0)`).Evals(0.0),
		That(`(math:cos 0)`).Evals(1.0),
		That(`(math:tan 0)`).Evals(0.0),
		That(`(math:asin 1)`).Evals(Approximately(1.5707963267948966)),
		That(`(math:acos 1)`).Evals(0.0),
		That(`(math:atan 1)`).Evals(Approximately(0.7853981633974483)),

		That(`(math:is-inf (/ 1 0))`).Evals(true),
		That(`(math:is-inf (/ -1 0))`).Evals(true),
		That(`(math:is-inf 1)`).Evals(false),
		That(`(math:is-nan (/ 0 0))`).Evals(true),
		That(`(math:is-nan 0)`).Evals(false),

		That(`(math:sqrt)`).Throws(ErrorWithType(errs.ArityMismatch{})),
		That(`(math:sqrt "x")`).Throws(ErrorWithType(errs.BadType{})),
	)
}
