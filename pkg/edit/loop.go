package edit

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/zem-editor/zem/pkg/cli/term"
	"github.com/zem-editor/zem/pkg/logutil"
	"github.com/zem-editor/zem/pkg/sys"
	"github.com/zem-editor/zem/pkg/ui"
)

var logger = logutil.GetLogger("[edit] ")

// Run runs the interactive loop on the given terminal files until
// editor-quit is called or the terminal goes away. It puts the terminal in
// raw mode and restores it on return, including when a key handler panics.
func (ed *Editor) Run(in, out *os.File) (err error) {
	defer rescue(&err)
	restore, err := term.Setup(in, out)
	if err != nil {
		return err
	}
	defer func() {
		if restoreErr := restore(); restoreErr != nil && err == nil {
			err = restoreErr
		}
	}()

	reader, err := term.NewReader(in)
	if err != nil {
		return err
	}
	defer reader.Close()
	writer := term.NewWriter(out)

	events := make(chan term.Event, 16)
	readErrs := make(chan error, 1)
	go func() {
		for {
			event, err := reader.ReadEvent()
			switch {
			case err == nil:
				events <- event
			case err == term.ErrStopped:
				return
			case term.IsReadErrorRecoverable(err):
				logger.Println("recoverable read error:", err)
			default:
				readErrs <- err
				return
			}
		}
	}()

	sigCh := sys.NotifySignals()
	defer signal.Stop(sigCh)

	for !ed.quit {
		rows, cols := sys.WinSize(out)
		if rows <= 0 || cols <= 0 {
			rows, cols = 24, 80
		}
		lines, row, col := ed.render(rows, cols)
		if err := writer.UpdateScreen(lines, row, col); err != nil {
			return err
		}

		select {
		case event := <-events:
			if k, ok := event.(term.KeyEvent); ok {
				ed.HandleKey(ui.Key(k))
			}
		case err := <-readErrs:
			return err
		case sig := <-sigCh:
			switch sig {
			case sys.SIGWINCH:
				writer.Reset()
			case syscall.SIGHUP, syscall.SIGTERM:
				return nil
			}
		}
	}
	return nil
}

// rescue turns a panic from a key handler into an error. It runs after the
// deferred terminal restore, so the stack trace lands on a sane terminal.
func rescue(errp *error) {
	if r := recover(); r != nil {
		logger.Println("editor panicked:", r)
		logger.Println(sys.DumpStack())
		*errp = fmt.Errorf("editor panicked: %v (stack trace in the log)", r)
	}
}
