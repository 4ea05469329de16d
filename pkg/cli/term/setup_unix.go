//go:build !windows && !plan9

package term

import (
	"fmt"
	"os"

	"github.com/zem-editor/zem/pkg/sys"
)

const (
	enterAltScreen = "\033[?1049h"
	exitAltScreen  = "\033[?1049l"
)

// Setup puts the terminal in the mode suitable for the editor: raw
// noncanonical input without echo, and the alternate screen. It returns a
// function to restore the terminal and any error encountered.
func Setup(in, out *os.File) (func() error, error) {
	// Use the input file for changing termios. All fds pointing to the same
	// terminal should work the same.
	fd := int(in.Fd())
	term, err := sys.TermiosForFd(fd)
	if err != nil {
		return nil, fmt.Errorf("can't get terminal attribute: %s", err)
	}

	savedTermios := term.Copy()

	term.SetICanon(false)
	term.SetIExten(false)
	term.SetEcho(false)
	term.SetVMin(1)
	term.SetVTime(0)

	// Enforcing crlf translation on input. Assuming user won't set
	// inlcr or -icrnl.
	term.SetICRNL(true)

	if err := term.ApplyToFd(fd); err != nil {
		return nil, fmt.Errorf("can't set terminal attribute: %s", err)
	}

	_, errVT := out.WriteString(enterAltScreen)

	restore := func() error {
		_, errVT := out.WriteString(exitAltScreen)
		if err := savedTermios.ApplyToFd(fd); err != nil {
			return fmt.Errorf("can't restore terminal attribute: %s", err)
		}
		return errVT
	}
	return restore, errVT
}
