// Package plugin loads Zem Lisp plugins from a directory.
package plugin

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"unicode/utf8"

	"github.com/zem-editor/zem/pkg/eval"
	"github.com/zem-editor/zem/pkg/parse"
)

var errSourceNotUTF8 = errors.New("source is not UTF-8")

// LoadDir executes every *.zl file in dir in the evaluator's global scope,
// in sorted file name order so plugins can rely on their load order. A
// failing plugin does not stop the ones after it; the returned slice holds
// one error per file that failed. A directory that does not exist loads
// nothing.
func LoadDir(ev *eval.Evaler, dir string) []error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return []error{err}
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".zl" {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	var errs []error
	for _, name := range names {
		path := filepath.Join(dir, name)
		if err := loadFile(ev, path); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	return errs
}

func loadFile(ev *eval.Evaler, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if !utf8.Valid(content) {
		return errSourceNotUTF8
	}
	_, err = ev.Execute(parse.Source{Name: path, Code: string(content), IsFile: true})
	return err
}
