//go:build !windows && !plan9

package daemon

import (
	"os"
	"syscall"
)

func procAttrForSpawn(files []*os.File) *os.ProcAttr {
	return &os.ProcAttr{
		Dir:   "/", // cd to / to avoid keeping the working directory busy
		Env:   []string{},
		Files: files,
		Sys: &syscall.SysProcAttr{
			Setsid: true, // detach from the current terminal
		},
	}
}
