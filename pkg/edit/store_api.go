package edit

import (
	"errors"

	"github.com/zem-editor/zem/pkg/eval/vals"
	"github.com/zem-editor/zem/pkg/store/storedefs"
)

// initStoreBuiltins defines the store: builtins. They are only defined when
// a store is attached; without one, scripts that use them fail with an
// unbound symbol error.
func (ed *Editor) initStoreBuiltins() {
	fns := map[string]any{
		"store:add-cmd":  ed.storeAddCmd,
		"store:cmds":     ed.storeCmds,
		"store:del-cmd":  ed.store.DelCmd,
		"store:prev-cmd": ed.storePrevCmd,
		"store:set-mark": ed.store.SetMark,
		"store:mark":     ed.storeMark,
		"store:del-mark": ed.store.DelMark,
		"store:marks":    ed.storeMarks,
	}
	for name, impl := range fns {
		ed.ev.DefineBuiltin(name, impl)
	}
}

func (ed *Editor) storeAddCmd(text string) (int, error) {
	return ed.store.AddCmd(text)
}

// storeCmds returns the whole command history, oldest first.
func (ed *Editor) storeCmds() (vals.List, error) {
	next, err := ed.store.NextCmdSeq()
	if err != nil {
		return nil, err
	}
	cmds, err := ed.store.CmdsWithSeq(0, next)
	if err != nil {
		return nil, err
	}
	texts := make(vals.List, len(cmds))
	for i, cmd := range cmds {
		texts[i] = cmd.Text
	}
	return texts, nil
}

// storePrevCmd returns the text of the most recent history command with the
// given prefix, or nil when there is none.
func (ed *Editor) storePrevCmd(prefix string) (any, error) {
	next, err := ed.store.NextCmdSeq()
	if err != nil {
		return nil, err
	}
	cmd, err := ed.store.PrevCmd(next, prefix)
	if errors.Is(err, storedefs.ErrNoMatchingCmd) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return cmd.Text, nil
}

// storeMark returns the stored (line col) for a path, or nil when the path
// has no mark.
func (ed *Editor) storeMark(path string) (any, error) {
	m, err := ed.store.Mark(path)
	if errors.Is(err, storedefs.ErrNoMark) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return vals.List{float64(m.Line), float64(m.Col)}, nil
}

// storeMarks returns all marks as a list of (path line col) lists.
func (ed *Editor) storeMarks() (vals.List, error) {
	marks, err := ed.store.Marks()
	if err != nil {
		return nil, err
	}
	out := make(vals.List, len(marks))
	for i, m := range marks {
		out[i] = vals.List{m.Path, float64(m.Line), float64(m.Col)}
	}
	return out, nil
}
