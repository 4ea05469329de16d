// Command zem is the main program of zem, kept under cmd so that
// "go install github.com/zem-editor/zem/cmd/zem" works.
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
