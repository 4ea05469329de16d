//go:build !windows

package progtest

import (
	"bytes"
	"os"
	"testing"
	"time"

	"github.com/creack/pty"
	"github.com/zem-editor/zem/pkg/prog"
)

const (
	terminalRows = 24
	terminalCols = 80

	waitTimeout = 10 * time.Second
)

// Terminal is a fixture for testing subprograms that talk to a terminal. The
// program runs against the program end of a pseudo-terminal; the test types
// on and reads from the control end.
type Terminal struct {
	ctrl *os.File
	tty  *os.File

	output <-chan byte
	exitCh <-chan int
}

// RunInTerminal starts p in a new pseudo-terminal and returns a fixture for
// driving it. All three standard files of the program are connected to the
// terminal, as they would be when run from a shell.
func RunInTerminal(t *testing.T, p prog.Program, args ...string) *Terminal {
	t.Helper()
	ctrl, tty, err := pty.Open()
	if err != nil {
		t.Skipf("cannot open pty: %v", err)
	}
	winsize := pty.Winsize{Rows: terminalRows, Cols: terminalCols}
	pty.Setsize(ctrl, &winsize)

	output := make(chan byte, 32*1024)
	go func() {
		buf := make([]byte, 1024)
		for {
			n, err := ctrl.Read(buf)
			for i := 0; i < n; i++ {
				output <- buf[i]
			}
			if err != nil {
				close(output)
				return
			}
		}
	}()

	exitCh := make(chan int, 1)
	go func() {
		exitCh <- prog.Run([3]*os.File{tty, tty, tty}, append([]string{"zem"}, args...), p)
	}()

	term := &Terminal{ctrl: ctrl, tty: tty, output: output, exitCh: exitCh}
	t.Cleanup(func() {
		ctrl.Close()
		tty.Close()
	})
	return term
}

// Input writes s to the terminal, as if typed by the user.
func (term *Terminal) Input(s string) {
	term.ctrl.WriteString(s)
}

// WaitForOutput waits until the program has written output containing the
// given text, and returns everything read so far. It fails the test after a
// timeout.
func (term *Terminal) WaitForOutput(t *testing.T, expected string) string {
	t.Helper()
	var text []byte
	timeout := time.After(waitTimeout)
	for {
		select {
		case b, ok := <-term.output:
			if !ok {
				t.Fatalf("program closed the terminal waiting for %q; output so far:\n%q",
					expected, text)
			}
			text = append(text, b)
			if bytes.Contains(text, []byte(expected)) {
				return string(text)
			}
		case <-timeout:
			t.Fatalf("timed out waiting for %q; output so far:\n%q", expected, text)
		}
	}
}

// WaitExit waits for the program to exit, and returns its exit status. It
// fails the test after a timeout.
func (term *Terminal) WaitExit(t *testing.T) int {
	t.Helper()
	select {
	case exit := <-term.exitCh:
		return exit
	case <-time.After(waitTimeout):
		t.Fatalf("timed out waiting for the program to exit")
		return -1
	}
}
