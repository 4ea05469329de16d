package daemon

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/zem-editor/zem/pkg/daemon/daemondefs"
)

// spawn spawns a daemon process in the background by invoking BinPath,
// passing BinPath, DbPath and SockPath as command-line arguments after
// resolving them to absolute paths. The daemon log file is created in
// RunDir, and the stdout and stderr of the daemon are redirected to the
// log file.
func spawn(cfg *daemondefs.SpawnConfig) error {
	binPath := cfg.BinPath
	if binPath == "" {
		bin, err := os.Executable()
		if err != nil {
			return errors.New("cannot find zem: " + err.Error())
		}
		binPath = bin
	}

	var pathError error
	abs := func(name string, path string) string {
		if pathError != nil {
			return ""
		}
		if path == "" {
			pathError = fmt.Errorf("%s is required for spawning daemon", name)
			return ""
		}
		absPath, err := filepath.Abs(path)
		if err != nil {
			pathError = fmt.Errorf("cannot resolve %s to absolute path: %s", name, err)
		}
		return absPath
	}
	binPath = abs("BinPath", binPath)
	dbPath := abs("DbPath", cfg.DbPath)
	sockPath := abs("SockPath", cfg.SockPath)
	if pathError != nil {
		return pathError
	}

	args := []string{
		binPath,
		"-daemon",
		"-db", dbPath,
		"-sock", sockPath,
	}

	// The daemon does not read any input; open DevNull and use it for stdin.
	// We could also just close the stdin, but on Unix that would make the
	// first file opened by the daemon take FD 0.
	in, err := os.OpenFile(os.DevNull, os.O_RDONLY, 0)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.CreateTemp(cfg.RunDir, "daemon-*.log")
	if err != nil {
		return err
	}
	defer out.Close()

	procattrs := procAttrForSpawn([]*os.File{in, out, out})

	_, err = startProcess(binPath, args, procattrs)
	return err
}

// A variable to allow mocking os.StartProcess in tests.
var startProcess = os.StartProcess
