package edit_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/zem-editor/zem/pkg/edit"
	"github.com/zem-editor/zem/pkg/testutil"
)

func TestLoadConfig(t *testing.T) {
	testutil.InTempDir(t)
	testutil.MustWriteFile("zem.yaml", `
tabstop: 4
plugindir: /opt/zem/plugins
rc: /opt/zem/rc.zl
bindings:
  normal:
    "C-x C-f": my-find-file
  insert:
    "C-n": complete
`)
	cfg, err := edit.LoadConfig("zem.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.TabStop != 4 {
		t.Errorf("TabStop = %v, want 4", cfg.TabStop)
	}
	if cfg.PluginDir != "/opt/zem/plugins" {
		t.Errorf("PluginDir = %q, want /opt/zem/plugins", cfg.PluginDir)
	}
	if cfg.RC != "/opt/zem/rc.zl" {
		t.Errorf("RC = %q, want /opt/zem/rc.zl", cfg.RC)
	}
	if got := cfg.Bindings["normal"]["C-x C-f"]; got != "my-find-file" {
		t.Errorf(`Bindings[normal][C-x C-f] = %q, want my-find-file`, got)
	}
	if got := cfg.Bindings["insert"]["C-n"]; got != "complete" {
		t.Errorf(`Bindings[insert][C-n] = %q, want complete`, got)
	}
}

func TestLoadConfig_MissingFileIsNotAnError(t *testing.T) {
	testutil.InTempDir(t)
	cfg, err := edit.LoadConfig("zem.yaml")
	if err != nil {
		t.Errorf("LoadConfig on missing file -> %v, want nil", err)
	}
	if !reflect.DeepEqual(cfg, edit.Config{}) {
		t.Errorf("cfg = %v, want zero value", cfg)
	}
}

func TestLoadConfig_BadYAML(t *testing.T) {
	testutil.InTempDir(t)
	testutil.MustWriteFile("zem.yaml", "tabstop: [")
	_, err := edit.LoadConfig("zem.yaml")
	if err == nil {
		t.Errorf("LoadConfig on malformed file -> nil error")
	}
}

func TestApplyConfig_Bindings(t *testing.T) {
	ed, ev := newTestEditor(t)
	mustExecute(t, ev, `(defun jump-home () (goto-char 0))`)
	mustExecute(t, ev, `(insert "hello")`)

	errs := ed.ApplyConfig(edit.Config{Bindings: map[string]map[string]string{
		"normal": {"G": "jump-home"},
	}})
	if len(errs) > 0 {
		t.Fatalf("ApplyConfig -> %v, want no errors", errs)
	}
	feed(t, ed, "G")
	if p := ed.Current().Point(); p != 0 {
		t.Errorf("point %v after configured binding, want 0", p)
	}
}

func TestApplyConfig_ReportsBadBindings(t *testing.T) {
	ed, ev := newTestEditor(t)
	mustExecute(t, ev, `(defvar not-a-fn 1)`)

	errs := ed.ApplyConfig(edit.Config{Bindings: map[string]map[string]string{
		"normal": {"a": "no-such-fn", "b": "not-a-fn"},
	}})
	if len(errs) != 2 {
		t.Fatalf("ApplyConfig -> %v errors, want 2", len(errs))
	}
	msgs := []string{errs[0].Error(), errs[1].Error()}
	joined := strings.Join(msgs, "; ")
	if !strings.Contains(joined, "no-such-fn") {
		t.Errorf("errors %q do not mention the unbound name", joined)
	}
	if !strings.Contains(joined, "not a function") {
		t.Errorf("errors %q do not mention the non-function", joined)
	}
}

func TestApplyConfig_KeepsWorkingBindingsOnPartialFailure(t *testing.T) {
	ed, ev := newTestEditor(t)
	mustExecute(t, ev, `(defun jump-home () (goto-char 0))`)
	mustExecute(t, ev, `(insert "hello")`)

	errs := ed.ApplyConfig(edit.Config{Bindings: map[string]map[string]string{
		"normal": {"G": "jump-home", "Z": "no-such-fn"},
	}})
	if len(errs) != 1 {
		t.Fatalf("ApplyConfig -> %v errors, want 1", len(errs))
	}
	feed(t, ed, "G")
	if p := ed.Current().Point(); p != 0 {
		t.Errorf("point %v after configured binding, want 0", p)
	}
}
