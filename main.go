// Zem is a terminal text editor with modal editing and a built-in Lisp
// dialect, Zem Lisp. Buffers, key bindings and the editor's own defaults are
// all driven from the language, so the editor can be reprogrammed while it
// runs. It is suitable for interactive editing and for running Zem Lisp
// scripts.
package main

import (
	"os"

	"github.com/zem-editor/zem/pkg/buildinfo"
	"github.com/zem-editor/zem/pkg/daemon"
	"github.com/zem-editor/zem/pkg/edit"
	"github.com/zem-editor/zem/pkg/lsp"
	"github.com/zem-editor/zem/pkg/prog"
)

func main() {
	os.Exit(prog.Run(
		[3]*os.File{os.Stdin, os.Stdout, os.Stderr}, os.Args,
		prog.Composite(
			&buildinfo.Program{}, &daemon.Program{}, &lsp.Program{},
			&edit.Program{ActivateStore: daemon.Activate})))
}
