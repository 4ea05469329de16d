// Package file exposes filesystem operations as a Zem Lisp module. Scripts
// deal in whole file contents as strings; there are no file handle values.
package file

import (
	"os"

	"github.com/zem-editor/zem/pkg/eval/errs"
)

// Fns are the functions of the file: module.
var Fns = map[string]any{
	"append":     appendFile,
	"exists":     exists,
	"mkdir":      mkdir,
	"read":       read,
	"remove":     remove,
	"remove-all": removeAll,
	"write":      write,
}

// ErrEmptyPath is thrown by the functions that modify the filesystem when
// given an empty path.
var ErrEmptyPath = errs.BadValue{
	What: "path", Valid: "non-empty string", Actual: "empty string"}

func read(name string) (string, error) {
	b, err := os.ReadFile(name)
	return string(b), err
}

func write(name, data string) error {
	if name == "" {
		return ErrEmptyPath
	}
	return os.WriteFile(name, []byte(data), 0o644)
}

func appendFile(name, data string) error {
	if name == "" {
		return ErrEmptyPath
	}
	f, err := os.OpenFile(name, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	_, err = f.WriteString(data)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	return err
}

// Symlinks are not followed, so a dangling symlink exists.
func exists(name string) bool {
	_, err := os.Lstat(name)
	return err == nil
}

func mkdir(name string) error {
	if name == "" {
		return ErrEmptyPath
	}
	return os.Mkdir(name, 0o755)
}

// Wraps os.Remove to reject empty paths.
func remove(name string) error {
	if name == "" {
		return ErrEmptyPath
	}
	return os.Remove(name)
}

// Wraps os.RemoveAll to reject empty paths, which it would otherwise
// silently accept.
func removeAll(name string) error {
	if name == "" {
		return ErrEmptyPath
	}
	return os.RemoveAll(name)
}
