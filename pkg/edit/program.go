package edit

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/zem-editor/zem/pkg/daemon/daemondefs"
	"github.com/zem-editor/zem/pkg/diag"
	"github.com/zem-editor/zem/pkg/eval"
	"github.com/zem-editor/zem/pkg/eval/vals"
	"github.com/zem-editor/zem/pkg/mods"
	modstest "github.com/zem-editor/zem/pkg/mods/test"
	"github.com/zem-editor/zem/pkg/parse"
	"github.com/zem-editor/zem/pkg/plugin"
	"github.com/zem-editor/zem/pkg/prog"
	"github.com/zem-editor/zem/pkg/sys"
)

// Program is the editor subprogram. It evaluates -c code and .zl script
// arguments, runs registered tests under -test, and otherwise starts the
// interactive editor. It comes last in the subprogram composite, so it never
// returns prog.ErrNextProgram.
type Program struct {
	// ActivateStore connects to (or spawns) the storage daemon. A nil value
	// runs the editor without persistent history and marks.
	ActivateStore daemondefs.ActivateFunc

	codeInArg bool
	rc        string
	noRC      bool
	runTests  bool
	paths     *prog.DaemonPaths
}

func (p *Program) RegisterFlags(fs *prog.FlagSet) {
	fs.BoolVar(&p.codeInArg, "c", false, "execute the first argument as code")
	fs.StringVar(&p.rc, "rc", "", "path to the rc script, instead of the default")
	fs.BoolVar(&p.noRC, "norc", false, "do not execute the rc script")
	fs.BoolVar(&p.runTests, "test", false,
		"run the tests registered by the script arguments and exit")
	p.paths = fs.DaemonPaths()
}

func (p *Program) Run(fds [3]*os.File, args []string) error {
	ev := eval.NewEvaler()
	ev.SetOutput(fds[1])
	mods.AddTo(ev)
	runner := modstest.NewRunner(ev)

	if p.codeInArg {
		if len(args) == 0 {
			return prog.BadUsage("no code given with -c")
		}
		if len(args) > 1 {
			return prog.BadUsage("-c takes one argument")
		}
		val, err := ev.Execute(parse.SourceText("[code]", args[0]))
		if err != nil {
			diag.ShowError(fds[2], err)
			return prog.Exit(2)
		}
		if val != nil {
			fmt.Fprintln(fds[1], vals.Repr(val))
		}
		if p.runTests {
			return reportTests(fds, runner)
		}
		return nil
	}

	scripts, files := splitArgs(args)
	for _, script := range scripts {
		if err := runScript(fds, ev, script); err != nil {
			return err
		}
	}

	if p.runTests {
		if len(scripts) == 0 {
			return prog.BadUsage("-test requires at least one script file")
		}
		return reportTests(fds, runner)
	}
	if len(scripts) > 0 && len(files) == 0 {
		return nil
	}

	if !sys.IsATTY(fds[0].Fd()) || !sys.IsATTY(fds[1].Fd()) {
		return errors.New("the editor requires the standard input and output to be a terminal")
	}
	return p.interact(fds, ev, files)
}

// splitArgs separates script arguments from files to edit. Scripts are the
// arguments with the .zl extension.
func splitArgs(args []string) (scripts, files []string) {
	for _, arg := range args {
		if filepath.Ext(arg) == ".zl" {
			scripts = append(scripts, arg)
		} else {
			files = append(files, arg)
		}
	}
	return scripts, files
}

func runScript(fds [3]*os.File, ev *eval.Evaler, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	code, err := readFileUTF8(abs)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if _, err := ev.Execute(parse.Source{Name: abs, Code: code, IsFile: true}); err != nil {
		diag.ShowError(fds[2], err)
		return prog.Exit(2)
	}
	return nil
}

// reportTests runs the registered tests and reports each result plus a
// summary line on stdout. Any failure makes the exit status 1.
func reportTests(fds [3]*os.File, runner *modstest.Runner) error {
	results := runner.RunAll()
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(fds[1], "FAIL %s: %v\n", r.Name, errReason(r.Err))
		} else {
			fmt.Fprintf(fds[1], "PASS %s\n", r.Name)
		}
	}
	fmt.Fprintf(fds[1], "%d passed, %d failed\n", len(results)-failed, failed)
	if failed > 0 {
		return prog.Exit(1)
	}
	return nil
}

// interact wires up the full interactive editor: configuration, the storage
// daemon, the rc script, plugins and the files named on the command line,
// then hands the terminal to the editor loop. Everything optional that fails
// produces a warning on stderr and the editor starts anyway.
func (p *Program) interact(fds [3]*os.File, ev *eval.Evaler, files []string) error {
	ed := NewEditor(ev)

	var cfg Config
	cfgPath, err := ConfigPath()
	if err == nil {
		cfg, err = LoadConfig(cfgPath)
	}
	if err != nil {
		fmt.Fprintln(fds[2], "warning:", err)
	}

	if p.ActivateStore != nil {
		spawnCfg, err := daemonPaths(p.paths)
		if err != nil {
			fmt.Fprintln(fds[2], "warning: daemon paths:", err)
		} else if cl, err := p.ActivateStore(fds[2], spawnCfg); err != nil {
			fmt.Fprintln(fds[2],
				"warning: history and marks will not be persisted:", err)
		} else {
			ed.SetStore(cl)
			defer cl.Close()
		}
	}

	if !p.noRC {
		sourceRC(fds, ev, p.rc, cfg)
	}

	pluginDir := cfg.PluginDir
	if pluginDir == "" {
		pluginDir, err = PluginDir()
		if err != nil {
			fmt.Fprintln(fds[2], "warning:", err)
		}
	}
	if pluginDir != "" {
		for _, err := range plugin.LoadDir(ev, pluginDir) {
			fmt.Fprintln(fds[2], "warning: plugin:", err)
		}
	}

	for _, err := range ed.ApplyConfig(cfg) {
		fmt.Fprintln(fds[2], "warning: config:", err)
	}

	for _, f := range files {
		if _, err := ed.findFile(f); err != nil {
			fmt.Fprintln(fds[2], "warning:", err)
		}
	}

	// From here on, print and friends write to the message line.
	ev.SetOutput(ed.MessageWriter())
	defer ev.SetOutput(fds[1])
	return ed.Run(fds[0], fds[1])
}

// sourceRC executes the rc script: the -rc flag, the config file's rc entry,
// or rc.zl in the config directory, in that order of preference. A missing
// file is fine; a failing one is reported but does not stop the editor.
func sourceRC(fds [3]*os.File, ev *eval.Evaler, flagRC string, cfg Config) {
	rcPath := flagRC
	if rcPath == "" {
		rcPath = cfg.RC
	}
	if rcPath == "" {
		p, err := RCPath()
		if err != nil {
			fmt.Fprintln(fds[2], "warning:", err)
			return
		}
		rcPath = p
	}
	code, err := readFileUTF8(rcPath)
	if err != nil {
		if !os.IsNotExist(err) {
			fmt.Fprintln(fds[2], "warning: rc:", err)
		}
		return
	}
	if _, err := ev.Execute(parse.Source{Name: rcPath, Code: code, IsFile: true}); err != nil {
		diag.ShowError(fds[2], err)
	}
}

var errSourceNotUTF8 = errors.New("source is not UTF-8")

func readFileUTF8(fname string) (string, error) {
	bytes, err := os.ReadFile(fname)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(bytes) {
		return "", errSourceNotUTF8
	}
	return string(bytes), nil
}
