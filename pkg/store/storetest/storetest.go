// Package storetest keeps test suites against storedefs.Store.
//
// Both the bbolt-backed implementation and the daemon client run the same
// suites, which is also why errors are compared by message: errors that
// cross the daemon's RPC boundary come back as new values.
package storetest

import (
	"reflect"
	"testing"

	"github.com/zem-editor/zem/pkg/store/storedefs"
)

func matchErr(e1, e2 error) bool {
	return (e1 == nil && e2 == nil) ||
		(e1 != nil && e2 != nil && e1.Error() == e2.Error())
}

// TestCmd tests the command history part of a fresh Store.
func TestCmd(t *testing.T, store storedefs.Store) {
	if seq, err := store.NextCmdSeq(); seq != 1 || err != nil {
		t.Errorf("NextCmdSeq -> (%v, %v), want (1, nil)", seq, err)
	}

	texts := []string{"find-file", "save-buffer", "find-file again"}
	for i, text := range texts {
		seq, err := store.AddCmd(text)
		if seq != i+1 || err != nil {
			t.Errorf("AddCmd(%q) -> (%v, %v), want (%v, nil)", text, seq, err, i+1)
		}
	}

	if seq, err := store.NextCmdSeq(); seq != 4 || err != nil {
		t.Errorf("NextCmdSeq -> (%v, %v), want (4, nil)", seq, err)
	}

	if cmd, err := store.Cmd(2); cmd != "save-buffer" || err != nil {
		t.Errorf(`Cmd(2) -> (%q, %v), want ("save-buffer", nil)`, cmd, err)
	}
	if _, err := store.Cmd(42); !matchErr(err, storedefs.ErrNoMatchingCmd) {
		t.Errorf("Cmd(42) -> error %v, want %v", err, storedefs.ErrNoMatchingCmd)
	}

	wantCmds := []storedefs.Cmd{
		{Text: "find-file", Seq: 1}, {Text: "save-buffer", Seq: 2}}
	if cmds, err := store.CmdsWithSeq(1, 3); !reflect.DeepEqual(cmds, wantCmds) || err != nil {
		t.Errorf("CmdsWithSeq(1, 3) -> (%v, %v), want (%v, nil)", cmds, err, wantCmds)
	}

	// NextCmd and PrevCmd match prefixes.
	wantCmd := storedefs.Cmd{Text: "find-file again", Seq: 3}
	if cmd, err := store.NextCmd(2, "find"); cmd != wantCmd || err != nil {
		t.Errorf("NextCmd(2, find) -> (%v, %v), want (%v, nil)", cmd, err, wantCmd)
	}
	wantCmd = storedefs.Cmd{Text: "find-file", Seq: 1}
	if cmd, err := store.PrevCmd(3, "find"); cmd != wantCmd || err != nil {
		t.Errorf("PrevCmd(3, find) -> (%v, %v), want (%v, nil)", cmd, err, wantCmd)
	}
	if _, err := store.NextCmd(1, "oops"); !matchErr(err, storedefs.ErrNoMatchingCmd) {
		t.Errorf("NextCmd(1, oops) -> error %v, want %v", err, storedefs.ErrNoMatchingCmd)
	}

	// Deleting a command does not reuse its sequence number.
	if err := store.DelCmd(2); err != nil {
		t.Errorf("DelCmd(2) -> error %v, want nil", err)
	}
	if _, err := store.Cmd(2); !matchErr(err, storedefs.ErrNoMatchingCmd) {
		t.Errorf("Cmd(2) after DelCmd -> error %v, want %v", err, storedefs.ErrNoMatchingCmd)
	}
	if seq, err := store.NextCmdSeq(); seq != 4 || err != nil {
		t.Errorf("NextCmdSeq after DelCmd -> (%v, %v), want (4, nil)", seq, err)
	}
}

// TestMark tests the mark part of a fresh Store.
func TestMark(t *testing.T, store storedefs.Store) {
	if _, err := store.Mark("/w/a.zl"); !matchErr(err, storedefs.ErrNoMark) {
		t.Errorf("Mark on a fresh store -> error %v, want %v", err, storedefs.ErrNoMark)
	}

	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
	}
	must(store.SetMark("/w/b.zl", 1, 0))
	must(store.SetMark("/w/a.zl", 10, 4))

	wantMark := storedefs.Mark{Path: "/w/a.zl", Line: 10, Col: 4}
	if m, err := store.Mark("/w/a.zl"); m != wantMark || err != nil {
		t.Errorf("Mark(/w/a.zl) -> (%v, %v), want (%v, nil)", m, err, wantMark)
	}

	// SetMark overwrites.
	must(store.SetMark("/w/a.zl", 2, 2))
	wantMark = storedefs.Mark{Path: "/w/a.zl", Line: 2, Col: 2}
	if m, err := store.Mark("/w/a.zl"); m != wantMark || err != nil {
		t.Errorf("Mark after SetMark -> (%v, %v), want (%v, nil)", m, err, wantMark)
	}

	// Marks lists all marks ordered by path.
	wantMarks := []storedefs.Mark{
		{Path: "/w/a.zl", Line: 2, Col: 2}, {Path: "/w/b.zl", Line: 1, Col: 0}}
	if marks, err := store.Marks(); !reflect.DeepEqual(marks, wantMarks) || err != nil {
		t.Errorf("Marks -> (%v, %v), want (%v, nil)", marks, err, wantMarks)
	}

	must(store.DelMark("/w/a.zl"))
	if _, err := store.Mark("/w/a.zl"); !matchErr(err, storedefs.ErrNoMark) {
		t.Errorf("Mark after DelMark -> error %v, want %v", err, storedefs.ErrNoMark)
	}
}
