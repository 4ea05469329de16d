package edit

import (
	"os"
	"path/filepath"

	"github.com/zem-editor/zem/pkg/daemon/daemondefs"
	"github.com/zem-editor/zem/pkg/prog"
)

// ConfigPath returns the path of the configuration file.
func ConfigPath() (string, error) {
	home, err := ConfigHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "zem.yaml"), nil
}

// RCPath returns the default path of the rc script, executed when the editor
// starts interactively.
func RCPath() (string, error) {
	home, err := ConfigHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "rc.zl"), nil
}

// PluginDir returns the default plugin directory.
func PluginDir() (string, error) {
	home, err := ConfigHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "plugins"), nil
}

// daemonPaths assembles the paths needed to connect to or spawn the storage
// daemon. It respects overrides of sock and db from CLI flags.
func daemonPaths(flags *prog.DaemonPaths) (*daemondefs.SpawnConfig, error) {
	runDir, err := getSecureRunDir()
	if err != nil {
		return nil, err
	}
	sock := flags.Sock
	if sock == "" {
		sock = filepath.Join(runDir, "sock")
	}

	db := flags.DB
	if db == "" {
		db, err = dbPath()
		if err != nil {
			return nil, err
		}
		if err := os.MkdirAll(filepath.Dir(db), 0700); err != nil {
			return nil, err
		}
	}
	return &daemondefs.SpawnConfig{DbPath: db, SockPath: sock, RunDir: runDir}, nil
}
