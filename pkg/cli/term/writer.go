package term

import (
	"fmt"
	"io"
	"strings"
)

// Writer renders screen updates to a terminal. The editor redraws the whole
// screen on every update; the state it keeps is only used to skip writes
// that would not change anything.
type Writer struct {
	file      io.Writer
	lastDraw  string
	lastValid bool
}

// NewWriter returns a Writer that writes VT100 sequences to the given
// io.Writer.
func NewWriter(f io.Writer) *Writer {
	return &Writer{file: f}
}

// UpdateScreen redraws the screen to show the given lines, with the cursor
// left on the 0-based (row, col) cell. Lines beyond the given ones are
// cleared.
func (w *Writer) UpdateScreen(lines []string, row, col int) error {
	var sb strings.Builder
	sb.WriteString("\033[?25l") // hide cursor
	sb.WriteString("\033[H")    // move to top left
	for i, line := range lines {
		if i > 0 {
			sb.WriteString("\r\n")
		}
		sb.WriteString(line)
		sb.WriteString("\033[K") // clear rest of line
	}
	sb.WriteString("\033[J") // clear rest of screen
	fmt.Fprintf(&sb, "\033[%d;%dH", row+1, col+1)
	sb.WriteString("\033[?25h") // show cursor

	draw := sb.String()
	if w.lastValid && draw == w.lastDraw {
		return nil
	}
	_, err := io.WriteString(w.file, draw)
	if err == nil {
		w.lastDraw, w.lastValid = draw, true
	}
	return err
}

// Reset clears the screen and makes the next UpdateScreen redraw
// unconditionally.
func (w *Writer) Reset() error {
	w.lastValid = false
	_, err := io.WriteString(w.file, "\033[2J\033[H")
	return err
}
