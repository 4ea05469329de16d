// Package path exposes functionality from Go's path/filepath package as a
// Zem Lisp module.
package path

import (
	"os"
	"path/filepath"

	"github.com/zem-editor/zem/pkg/eval/errs"
	"github.com/zem-editor/zem/pkg/eval/vars"
)

// Vars are the variables of the path: module.
var Vars = map[string]vars.Var{
	"dev-null":       vars.NewReadOnly(os.DevNull),
	"list-separator": vars.NewReadOnly(string(filepath.ListSeparator)),
	"separator":      vars.NewReadOnly(string(filepath.Separator)),
}

// Fns are the functions of the path: module.
var Fns = map[string]any{
	"abs":           filepath.Abs,
	"base":          filepath.Base,
	"clean":         filepath.Clean,
	"dir":           filepath.Dir,
	"ext":           filepath.Ext,
	"eval-symlinks": filepath.EvalSymlinks,
	"is-abs":        filepath.IsAbs,
	"is-dir":        isDir,
	"is-regular":    isRegular,
	"join":          filepath.Join,
	"temp-dir":      tempDir,
}

// Symlinks are followed: a symlink to a directory counts as a directory.
func isDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsDir()
}

func isRegular(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}

func tempDir(args ...string) (string, error) {
	var pattern string
	switch len(args) {
	case 0:
		pattern = "zem-*"
	case 1:
		pattern = args[0]
	default:
		return "", errs.ArityMismatch{What: "arguments",
			ValidLow: 0, ValidHigh: 1, Actual: len(args)}
	}
	return os.MkdirTemp("", pattern)
}
