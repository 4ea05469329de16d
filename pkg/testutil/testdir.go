package testutil

import (
	"os"
	"path/filepath"
)

// TempDir creates a unique temporary directory and sets up cleanup.
func TempDir(c Cleanuper) string {
	dir, err := os.MkdirTemp("", "zemtest.")
	if err != nil {
		panic(err)
	}
	dir, err = filepath.EvalSymlinks(dir)
	if err != nil {
		panic(err)
	}
	c.Cleanup(func() {
		err := os.RemoveAll(dir)
		if err != nil {
			panic(err)
		}
	})
	return dir
}

// TempHome is like TempDir, but it also sets HOME to the temporary
// directory.
func TempHome(c Cleanuper) string {
	return Setenv(c, "HOME", TempDir(c))
}

// InTempDir is like TempDir, but also changes into the temporary directory
// and restores the original working directory during cleanup.
func InTempDir(c Cleanuper) string {
	dir := TempDir(c)
	oldWd, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	MustChdir(dir)
	c.Cleanup(func() {
		MustChdir(oldWd)
	})
	return dir
}

// InTempHome is equivalent to Setenv(c, "HOME", InTempDir(c)).
func InTempHome(c Cleanuper) string {
	return Setenv(c, "HOME", InTempDir(c))
}
