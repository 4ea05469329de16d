package prog_test

import (
	"errors"
	"os"
	"testing"

	"github.com/zem-editor/zem/pkg/prog"
	. "github.com/zem-editor/zem/pkg/prog/progtest"
)

var errDoom = errors.New("doom")

// testProgram is a minimal Program for testing Run and Composite.
type testProgram struct {
	shouldRun bool
	returnErr error
	writeOut  string
}

func (p testProgram) RegisterFlags(*prog.FlagSet) {}

func (p testProgram) Run(fds [3]*os.File, args []string) error {
	if !p.shouldRun {
		return prog.ErrNextProgram
	}
	if p.writeOut != "" {
		fds[1].WriteString(p.writeOut)
	}
	return p.returnErr
}

func TestRun(t *testing.T) {
	Test(t, testProgram{shouldRun: true, writeOut: "hello\n"},
		ThatZem().WritesStdout("hello\n"))
}

func TestRun_Error(t *testing.T) {
	Test(t, testProgram{shouldRun: true, returnErr: errDoom},
		ThatZem().ExitsWith(2).WritesStderrContaining("doom"))
}

func TestRun_BadUsage(t *testing.T) {
	Test(t, testProgram{shouldRun: true, returnErr: prog.BadUsage("lorem ipsum")},
		ThatZem().ExitsWith(2).
			WritesStderrContaining("lorem ipsum").
			WritesStderrContaining("Usage:"))
}

func TestRun_Exit(t *testing.T) {
	Test(t, testProgram{shouldRun: true, returnErr: prog.Exit(3)},
		ThatZem().ExitsWith(3))
}

func TestRun_ExitZero(t *testing.T) {
	Test(t, testProgram{shouldRun: true, returnErr: prog.Exit(0)},
		ThatZem().ExitsWith(0))
}

func TestRun_BadFlag(t *testing.T) {
	Test(t, testProgram{shouldRun: true},
		ThatZem("-bad-flag").ExitsWith(2).
			WritesStderrContaining("flag provided but not defined"))
}

func TestRun_Help(t *testing.T) {
	Test(t, testProgram{shouldRun: true},
		ThatZem("-help").WritesStdoutContaining("Usage: zem"))
}

func TestComposite_PicksTheFirstWillingProgram(t *testing.T) {
	Test(t, prog.Composite(
		testProgram{},
		testProgram{shouldRun: true, writeOut: "second\n"},
		testProgram{shouldRun: true, writeOut: "third\n"}),
		ThatZem().WritesStdout("second\n"))
}

func TestComposite_NoSuitableSubprogram(t *testing.T) {
	Test(t, prog.Composite(testProgram{}, testProgram{}),
		ThatZem().ExitsWith(2).
			WritesStderrContaining("internal error: no suitable subprogram"))
}
