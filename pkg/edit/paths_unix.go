//go:build !windows && !plan9

package edit

import (
	"fmt"
	"os"
	"path/filepath"
	"syscall"
)

// dbPath returns the default database path, $XDG_STATE_HOME/zem/db.bolt with
// the usual ~/.local/state fallback.
func dbPath() (string, error) {
	base := os.Getenv("XDG_STATE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(base, "zem", "db.bolt"), nil
}

// getRunDirPaths returns the candidate run directories in order of
// preference: $XDG_RUNTIME_DIR/zem when the variable is set, then
// $TMPDIR/zem-$uid.
func getRunDirPaths() []string {
	var paths []string
	if xdg := os.Getenv("XDG_RUNTIME_DIR"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, "zem"))
	}
	return append(paths,
		filepath.Join(os.TempDir(), fmt.Sprintf("zem-%d", os.Getuid())))
}

// getSecureRunDir returns a directory for the daemon socket that only the
// current user can access. It prefers a candidate that already exists with
// exclusive access, and creates the most preferred candidate otherwise.
func getSecureRunDir() (string, error) {
	paths := getRunDirPaths()
	for _, p := range paths {
		if hasExclusiveAccess(p) {
			return p, nil
		}
	}
	p := paths[0]
	if err := os.MkdirAll(p, 0700); err != nil {
		return "", fmt.Errorf("mkdir run dir: %v", err)
	}
	if !hasExclusiveAccess(p) {
		return "", fmt.Errorf("cannot create %v as a secure run directory", p)
	}
	return p, nil
}

func hasExclusiveAccess(p string) bool {
	info, err := os.Stat(p)
	if err != nil {
		return false
	}
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return false
	}
	return info.IsDir() && int(st.Uid) == os.Getuid() &&
		info.Mode().Perm()&0o077 == 0
}
