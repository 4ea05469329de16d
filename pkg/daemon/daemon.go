// Package daemon implements a service for mediating access to the data
// store, and its client.
//
// Both sides speak JSON-RPC 2.0 over a Unix domain socket, using a varint
// length-prefixed framing. Most methods exposed by the service correspond to
// the methods of Store in the storedefs package and are not documented here.
package daemon

import (
	"os"

	"github.com/zem-editor/zem/pkg/logutil"
	"github.com/zem-editor/zem/pkg/prog"
)

var logger = logutil.GetLogger("[daemon] ")

// Version is the API version. It should be bumped any time the API changes.
const Version = 1

// Program is the daemon subprogram.
type Program struct {
	run   bool
	paths *prog.DaemonPaths
	// Used in tests.
	serveOpts ServeOpts
}

func (p *Program) RegisterFlags(fs *prog.FlagSet) {
	fs.BoolVar(&p.run, "daemon", false,
		"[internal flag] run the storage daemon instead of the editor")
	p.paths = fs.DaemonPaths()
}

func (p *Program) Run(fds [3]*os.File, args []string) error {
	if !p.run {
		return prog.ErrNextProgram
	}
	if len(args) > 0 {
		return prog.BadUsage("arguments are not allowed with -daemon")
	}

	// The stdout is redirected to a unique log file (see spawn), so just use
	// it for logging.
	logutil.SetOutput(fds[1])
	setUmaskForDaemon()
	exit := Serve(p.paths.Sock, p.paths.DB, p.serveOpts)
	return prog.Exit(exit)
}
