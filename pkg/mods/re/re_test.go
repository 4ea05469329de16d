package re_test

import (
	"regexp/syntax"
	"testing"

	"github.com/zem-editor/zem/pkg/eval"
	"github.com/zem-editor/zem/pkg/eval/errs"
	. "github.com/zem-editor/zem/pkg/eval/evaltest"
	"github.com/zem-editor/zem/pkg/eval/vals"
	"github.com/zem-editor/zem/pkg/mods"
	"github.com/zem-editor/zem/pkg/mods/re"
)

func TestRe(t *testing.T) {
	setup := func(ev *eval.Evaler) {
		mods.AddFns(ev, "re", re.Fns)
	}
	TestWithSetup(t, setup,
		That(`(re:match "." "xyz")`).Evals(true),
		That(`(re:match "." "")`).Evals(false),
		That(`(re:match "[a-z]" "A")`).Evals(false),
		That(`(re:match "(" "x")`).Throws(ErrorWithType(&syntax.Error{})),

		That(`(re:find "[A-Z][0-9]" "A1 B2")`).Evals("A1"),
		That(`(re:find "[A-Z][0-9]" "none")`).Evals(""),
		That(`(re:find "(" "x")`).Throws(ErrorWithType(&syntax.Error{})),

		That(`(re:find-all "[A-Z][0-9]" "A1 B2")`).Evals(vals.List{"A1", "B2"}),
		That(`(re:find-all "[A-Z][0-9]" "none")`).Evals(vals.List{}),
		That(`(re:find-all "(" "x")`).Throws(ErrorWithType(&syntax.Error{})),

		That(`(re:replace "(ba|z)sh" "${1}SH" "bash and zsh")`).
			Evals("baSH and zSH"),
		That(`(re:replace "x+" "y" "xxapplexx")`).Evals("yappley"),
		That(`(re:replace "(" "y" "x")`).Throws(ErrorWithType(&syntax.Error{})),

		That(`(re:split ":" "/usr/sbin:/usr/bin:/bin")`).
			Evals(vals.List{"/usr/sbin", "/usr/bin", "/bin"}),
		That(`(re:split "," "no commas")`).Evals(vals.List{"no commas"}),
		That(`(re:split "(" "x")`).Throws(ErrorWithType(&syntax.Error{})),

		That(`(re:quote "a.txt")`).Evals(`a\.txt`),
		That(`(re:quote "(*)")`).Evals(`\(\*\)`),

		That(`(re:match ".")`).Throws(ErrorWithType(errs.ArityMismatch{})),
		That(`(re:match "." 1)`).Throws(ErrorWithType(errs.BadType{})),
	)
}
