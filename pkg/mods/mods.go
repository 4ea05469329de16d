// Package mods collects the standard library modules.
package mods

import (
	"github.com/zem-editor/zem/pkg/eval"
	"github.com/zem-editor/zem/pkg/eval/vars"
	"github.com/zem-editor/zem/pkg/mods/file"
	"github.com/zem-editor/zem/pkg/mods/math"
	"github.com/zem-editor/zem/pkg/mods/path"
	"github.com/zem-editor/zem/pkg/mods/re"
	"github.com/zem-editor/zem/pkg/mods/str"
)

// AddTo installs the standard library modules into the Evaler. Module
// builtins are qualified with the module name, like str:to-upper.
func AddTo(ev *eval.Evaler) {
	AddFns(ev, "file", file.Fns)
	AddFns(ev, "math", math.Fns)
	AddVars(ev, "math", math.Vars)
	AddFns(ev, "path", path.Fns)
	AddVars(ev, "path", path.Vars)
	AddFns(ev, "re", re.Fns)
	AddFns(ev, "str", str.Fns)
}

// AddFns installs fns into the Evaler as builtins qualified with the module
// name.
func AddFns(ev *eval.Evaler, module string, fns map[string]any) {
	for name, impl := range fns {
		ev.DefineBuiltin(module+":"+name, impl)
	}
}

// AddVars installs vs into the global scope as variables qualified with the
// module name.
func AddVars(ev *eval.Evaler, module string, vs map[string]vars.Var) {
	for name, v := range vs {
		ev.Global().DefineVar(module+":"+name, v)
	}
}
