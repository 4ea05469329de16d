package edit

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/zem-editor/zem/pkg/eval/errs"
	"github.com/zem-editor/zem/pkg/eval/vals"
	"github.com/zem-editor/zem/pkg/ui"
)

// initBuiltins defines the editor builtins on the evaluator. They close over
// the editor, so each editor instance gets its own set.
func (ed *Editor) initBuiltins() {
	fns := map[string]any{
		"insert":            ed.insertText,
		"delete-backward":   ed.deleteBackward,
		"delete-char":       ed.deleteChar,
		"point":             ed.point,
		"goto-char":         ed.gotoChar,
		"forward-char":      ed.forwardChar,
		"backward-char":     ed.backwardChar,
		"next-line":         ed.nextLine,
		"previous-line":     ed.previousLine,
		"beginning-of-line": ed.beginningOfLine,
		"end-of-line":       ed.endOfLine,
		"undo":              ed.undoCmd,
		"buffer-text":       ed.bufferText,
		"buffer-name":       ed.bufferName,
		"buffer-modified?":  ed.bufferModified,
		"buffer-list":       ed.bufferList,
		"switch-to-buffer":  ed.switchToBuffer,
		"find-file":         ed.findFile,
		"save-buffer":       ed.saveBuffer,
		"kill-buffer":       ed.killBuffer,
		"message":           ed.messageCmd,
		"bind-key":          ed.bindKey,
		"set-mode":          ed.setMode,
		"current-mode":      ed.currentMode,
		"editor-quit":       ed.editorQuit,
		"key":               parseKey,
	}
	for name, impl := range fns {
		ed.ev.DefineBuiltin(name, impl)
	}
}

// optionalCount extracts the optional count argument shared by the motion
// and deletion builtins, defaulting to 1.
func optionalCount(what string, ns []int) (int, error) {
	switch len(ns) {
	case 0:
		return 1, nil
	case 1:
		return ns[0], nil
	default:
		return 0, errs.ArityMismatch{
			What: "arguments to " + what, ValidLow: 0, ValidHigh: 1, Actual: len(ns)}
	}
}

func (ed *Editor) insertText(s string) {
	ed.Current().Insert(s)
}

func (ed *Editor) deleteBackward(ns ...int) (int, error) {
	n, err := optionalCount("delete-backward", ns)
	if err != nil {
		return 0, err
	}
	return ed.Current().DeleteBackward(n), nil
}

func (ed *Editor) deleteChar(ns ...int) (int, error) {
	n, err := optionalCount("delete-char", ns)
	if err != nil {
		return 0, err
	}
	return ed.Current().DeleteForward(n), nil
}

func (ed *Editor) point() int {
	return ed.Current().Point()
}

func (ed *Editor) gotoChar(n int) error {
	b := ed.Current()
	if n < 0 || n > b.Len() {
		return errs.OutOfRange{
			What: "position", ValidLow: 0, ValidHigh: b.Len(),
			Actual: strconv.Itoa(n)}
	}
	b.SetPoint(n)
	return nil
}

func (ed *Editor) forwardChar(ns ...int) error {
	n, err := optionalCount("forward-char", ns)
	if err != nil {
		return err
	}
	b := ed.Current()
	b.SetPoint(b.Point() + n)
	return nil
}

func (ed *Editor) backwardChar(ns ...int) error {
	n, err := optionalCount("backward-char", ns)
	if err != nil {
		return err
	}
	b := ed.Current()
	b.SetPoint(b.Point() - n)
	return nil
}

func (ed *Editor) nextLine(ns ...int) error {
	n, err := optionalCount("next-line", ns)
	if err != nil {
		return err
	}
	ed.Current().MoveLines(n)
	return nil
}

func (ed *Editor) previousLine(ns ...int) error {
	n, err := optionalCount("previous-line", ns)
	if err != nil {
		return err
	}
	ed.Current().MoveLines(-n)
	return nil
}

func (ed *Editor) beginningOfLine() {
	b := ed.Current()
	b.SetPoint(b.lineStart(b.Point()))
}

func (ed *Editor) endOfLine() {
	b := ed.Current()
	b.SetPoint(b.lineEnd(b.Point()))
}

func (ed *Editor) undoCmd() bool {
	if ed.Current().Undo() {
		ed.message = "undid one change"
		return true
	}
	ed.message = "nothing to undo"
	return false
}

func (ed *Editor) bufferText() string { return ed.Current().Text() }

func (ed *Editor) bufferName() string { return ed.Current().Name }

func (ed *Editor) bufferModified() bool { return ed.Current().Modified() }

func (ed *Editor) bufferList() vals.List {
	names := make(vals.List, len(ed.buffers))
	for i, b := range ed.buffers {
		names[i] = b.Name
	}
	return names
}

func (ed *Editor) switchToBuffer(name string) {
	ed.switchTo(name)
}

// findFile opens path in a buffer and makes it current. Opening a path that
// is already visited switches to its buffer instead. A stored mark for the
// path moves the point back to where it was last saved.
func (ed *Editor) findFile(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	for i, b := range ed.buffers {
		if b.Path == abs {
			ed.current = i
			return b.Name, nil
		}
	}
	b, err := NewFileBuffer(abs)
	if err != nil {
		return "", err
	}
	ed.addBuffer(b)
	if ed.store != nil {
		if m, err := ed.store.Mark(abs); err == nil {
			b.GotoLineCol(m.Line, m.Col)
		}
	}
	return b.Name, nil
}

func (ed *Editor) saveBuffer() error {
	b := ed.Current()
	if b.Path == "" {
		return errs.BadValue{
			What: "buffer", Valid: "a buffer visiting a file", Actual: b.Name}
	}
	if err := b.Save(); err != nil {
		return err
	}
	if ed.store != nil {
		line, col := b.LineCol()
		// Mark errors do not fail the save.
		ed.store.SetMark(b.Path, line, col)
	}
	ed.message = "Wrote " + b.Path
	return nil
}

// killBuffer removes the named buffer, or the current one when called
// without arguments. Killing the last buffer leaves a fresh *scratch*.
func (ed *Editor) killBuffer(names ...string) error {
	var i int
	switch len(names) {
	case 0:
		i = ed.current
	case 1:
		i = -1
		for j, b := range ed.buffers {
			if b.Name == names[0] {
				i = j
				break
			}
		}
		if i == -1 {
			return errs.BadValue{
				What: "buffer name", Valid: "the name of an open buffer",
				Actual: names[0]}
		}
	default:
		return errs.ArityMismatch{
			What: "arguments to kill-buffer", ValidLow: 0, ValidHigh: 1,
			Actual: len(names)}
	}
	if b := ed.buffers[i]; b.Modified() {
		return fmt.Errorf("buffer %s has unsaved changes", b.Name)
	}
	ed.removeBuffer(i)
	return nil
}

func (ed *Editor) messageCmd(s string) {
	ed.message = s
}

func (ed *Editor) setMode(mode string) error {
	if ed.bindings[mode] == nil {
		return errs.BadValue{
			What: "mode", Valid: "a mode with key bindings", Actual: mode}
	}
	ed.mode = mode
	ed.pending = nil
	return nil
}

func (ed *Editor) currentMode() string { return ed.mode }

// editorQuit requests the interactive loop to exit. It refuses when a
// file-visiting buffer has unsaved changes, unless forced with a true
// argument.
func (ed *Editor) editorQuit(force ...bool) error {
	if len(force) > 1 {
		return errs.ArityMismatch{
			What: "arguments to editor-quit", ValidLow: 0, ValidHigh: 1,
			Actual: len(force)}
	}
	if len(force) == 0 || !force[0] {
		for _, b := range ed.buffers {
			if b.Modified() && b.Path != "" {
				return fmt.Errorf("buffer %s has unsaved changes", b.Name)
			}
		}
	}
	ed.quit = true
	return nil
}

// parseKey exposes key parsing to scripts, mainly so they can compare keys.
func parseKey(spec string) (ui.Key, error) {
	return ui.ParseKey(spec)
}
