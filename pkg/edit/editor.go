// Package edit implements the modal editor: buffers, key dispatch and the
// builtin functions scripts use to drive both.
//
// All editor behavior is reachable from Zem Lisp. Keys are looked up in
// per-mode binding maps whose values are callables, so the default bindings
// are themselves a script, and user configuration uses the same bind-key
// builtin they do.
package edit

import (
	_ "embed"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/zem-editor/zem/pkg/eval"
	"github.com/zem-editor/zem/pkg/parse"
	"github.com/zem-editor/zem/pkg/store/storedefs"
	"github.com/zem-editor/zem/pkg/ui"
)

const (
	modeNormal = "normal"
	modeInsert = "insert"
)

//go:embed default_bindings.zl
var defaultBindings string

// Editor hosts an evaluator and a set of buffers, and dispatches keys to
// bound callables. It is driven from a single goroutine; neither the
// interactive loop nor the builtins lock anything.
type Editor struct {
	ev *eval.Evaler

	buffers []*Buffer
	current int

	mode     string
	bindings map[string]*bindingMap
	pending  []ui.Key

	message string
	quit    bool

	tabStop int

	// Command history and marks, when the storage daemon is available.
	store storedefs.Store
}

// bindingMap maps a key to either an eval.Callable or a nested *bindingMap
// holding the continuations of a multi-key sequence.
type bindingMap struct {
	entries map[ui.Key]any
}

func newBindingMap() *bindingMap {
	return &bindingMap{entries: make(map[ui.Key]any)}
}

// NewEditor creates an editor with a single *scratch* buffer, defines the
// editor builtins on ev, and installs the default key bindings.
func NewEditor(ev *eval.Evaler) *Editor {
	ed := &Editor{
		ev:      ev,
		buffers: []*Buffer{NewBuffer("*scratch*")},
		mode:    modeNormal,
		bindings: map[string]*bindingMap{
			modeNormal: newBindingMap(),
			modeInsert: newBindingMap(),
		},
		tabStop: 8,
	}
	ed.initBuiltins()
	if _, err := ev.Execute(parse.SourceText("[default bindings]", defaultBindings)); err != nil {
		panic(fmt.Sprintf("bug: default bindings failed to evaluate: %v", err))
	}
	return ed
}

// Current returns the current buffer.
func (ed *Editor) Current() *Buffer { return ed.buffers[ed.current] }

// Mode returns the name of the current mode.
func (ed *Editor) Mode() string { return ed.mode }

// Message returns the content of the message line.
func (ed *Editor) Message() string { return ed.message }

// QuitRequested reports whether editor-quit has been called.
func (ed *Editor) QuitRequested() bool { return ed.quit }

// SetStore attaches the storage daemon client and defines the store:
// builtins. Without a store those builtins are unbound and scripts that use
// them fail with an unbound symbol error.
func (ed *Editor) SetStore(st storedefs.Store) {
	ed.store = st
	ed.initStoreBuiltins()
}

// HandleKey feeds one key into the dispatch state machine. A key sequence
// that resolves to a callable runs it; a proper prefix of a longer binding
// waits for more keys; anything else either self-inserts (a plain printable
// in insert mode) or reports an unbound sequence on the message line.
func (ed *Editor) HandleKey(k ui.Key) {
	ed.pending = append(ed.pending, k)
	switch v := ed.lookupPending().(type) {
	case *bindingMap:
		ed.message = keysString(ed.pending) + "-"
	case eval.Callable:
		ed.pending = nil
		ed.message = ""
		if _, err := ed.ev.Call(v, nil); err != nil {
			ed.message = "error: " + errReason(err).Error()
		}
	default:
		keys := ed.pending
		ed.pending = nil
		if ed.mode == modeInsert && len(keys) == 1 && selfInsertable(keys[0]) {
			ed.message = ""
			ed.Current().Insert(string(keys[0].Rune))
			return
		}
		ed.message = keysString(keys) + " is unbound"
	}
}

// lookupPending resolves the pending key sequence in the current mode's
// binding map. It returns the callable or prefix map reached, or nil when
// the sequence is unbound.
func (ed *Editor) lookupPending() any {
	m := ed.bindings[ed.mode]
	if m == nil {
		return nil
	}
	var cur any = m
	for _, k := range ed.pending {
		m, ok := cur.(*bindingMap)
		if !ok {
			return nil
		}
		cur, ok = m.entries[k]
		if !ok {
			return nil
		}
	}
	return cur
}

// bindKey binds a key sequence in the given mode, creating prefix maps for
// all but the last key. Binding the last key replaces whatever was there,
// including a whole prefix map.
func (ed *Editor) bindKey(mode, spec string, fn eval.Callable) error {
	keys, err := ui.ParseKeys(spec)
	if err != nil {
		return err
	}
	m := ed.bindings[mode]
	if m == nil {
		m = newBindingMap()
		ed.bindings[mode] = m
	}
	for _, k := range keys[:len(keys)-1] {
		next, ok := m.entries[k].(*bindingMap)
		if !ok {
			if _, bound := m.entries[k]; bound {
				return fmt.Errorf("key %s is bound to a command and cannot prefix %s", k, spec)
			}
			next = newBindingMap()
			m.entries[k] = next
		}
		m = next
	}
	m.entries[keys[len(keys)-1]] = fn
	return nil
}

// selfInsertable reports whether a key is inserted literally in insert mode
// when it has no binding. Newline and tab count; control chords and the
// named special keys do not.
func selfInsertable(k ui.Key) bool {
	if k.Mod != 0 || k.Rune < 0 {
		return false
	}
	return k.Rune == '\n' || k.Rune == '\t' || unicode.IsPrint(k.Rune)
}

func keysString(keys []ui.Key) string {
	var sb strings.Builder
	for i, k := range keys {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(k.String())
	}
	return sb.String()
}

// errReason unwraps the evaluator's exception wrapper so the message line
// shows the cause, not the stack trace header.
func errReason(err error) error {
	if exc, ok := err.(eval.Exception); ok {
		return exc.Reason()
	}
	return err
}

// switchTo makes the buffer with the given name current, creating an empty
// one if it does not exist yet, and returns it.
func (ed *Editor) switchTo(name string) *Buffer {
	for i, b := range ed.buffers {
		if b.Name == name {
			ed.current = i
			return b
		}
	}
	b := NewBuffer(name)
	ed.addBuffer(b)
	return b
}

// addBuffer appends a buffer and makes it current, renaming it name<2>,
// name<3>... if the name is taken.
func (ed *Editor) addBuffer(b *Buffer) {
	base := b.Name
	for n := 2; ed.hasBuffer(b.Name); n++ {
		b.Name = fmt.Sprintf("%s<%d>", base, n)
	}
	ed.buffers = append(ed.buffers, b)
	ed.current = len(ed.buffers) - 1
}

func (ed *Editor) hasBuffer(name string) bool {
	for _, b := range ed.buffers {
		if b.Name == name {
			return true
		}
	}
	return false
}

// removeBuffer drops the buffer at index i. The editor always keeps at least
// one buffer; killing the last one leaves a fresh *scratch*.
func (ed *Editor) removeBuffer(i int) {
	ed.buffers = append(ed.buffers[:i], ed.buffers[i+1:]...)
	if len(ed.buffers) == 0 {
		ed.buffers = []*Buffer{NewBuffer("*scratch*")}
		ed.current = 0
		return
	}
	if ed.current >= i && ed.current > 0 {
		ed.current--
	}
}

// MessageWriter returns a writer that shows its input on the message line.
// The interactive loop points the evaluator's output here so print and
// friends stay visible inside the editor.
func (ed *Editor) MessageWriter() io.Writer {
	return messageWriter{ed}
}

type messageWriter struct{ ed *Editor }

func (w messageWriter) Write(p []byte) (int, error) {
	s := strings.TrimRight(string(p), "\n")
	s = strings.ReplaceAll(s, "\n", " ")
	if s != "" {
		if w.ed.message != "" {
			w.ed.message += " "
		}
		w.ed.message += s
	}
	return len(p), nil
}
