// Package buildinfo contains build information.
//
// The version suffix may be overridden at build time:
//
//	go build -ldflags \
//	  '-X github.com/zem-editor/zem/pkg/buildinfo.VersionSuffix=-official' .
package buildinfo

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"

	"github.com/zem-editor/zem/pkg/prog"
)

// Version identifies the version of zem.
const Version = "0.1.0"

// VersionSuffix is appended to Version to build the full version string.
var VersionSuffix = "-dev"

// BuildInfo contains the full version string and the Go version the binary
// was built with.
type BuildInfo struct {
	Version   string `json:"version"`
	GoVersion string `json:"goversion"`
}

// Value contains the build information of the current binary.
var Value = BuildInfo{
	Version:   Version + VersionSuffix,
	GoVersion: runtime.Version(),
}

// Program is the buildinfo subprogram.
type Program struct {
	version, buildinfo bool
	json               *bool
}

func (p *Program) RegisterFlags(fs *prog.FlagSet) {
	fs.BoolVar(&p.version, "version", false, "show version and quit")
	fs.BoolVar(&p.buildinfo, "buildinfo", false, "show build information and quit")
	p.json = fs.JSON()
}

func (p *Program) Run(fds [3]*os.File, _ []string) error {
	switch {
	case p.buildinfo:
		if *p.json {
			fmt.Fprintln(fds[1], mustToJSON(Value))
		} else {
			fmt.Fprintln(fds[1], "Version:", Value.Version)
			fmt.Fprintln(fds[1], "Go version:", Value.GoVersion)
		}
	case p.version:
		if *p.json {
			fmt.Fprintln(fds[1], mustToJSON(Value.Version))
		} else {
			fmt.Fprintln(fds[1], Value.Version)
		}
	default:
		return prog.ErrNextProgram
	}
	return nil
}

func mustToJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(b)
}
