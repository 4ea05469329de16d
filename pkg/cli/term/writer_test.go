package term

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriter_UpdateScreen(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	if err := w.UpdateScreen([]string{"hello", "world"}, 1, 3); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"hello", "world", "\033[2;4H"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q does not contain %q", out, want)
		}
	}

	// An identical update writes nothing.
	buf.Reset()
	if err := w.UpdateScreen([]string{"hello", "world"}, 1, 3); err != nil {
		t.Fatal(err)
	}
	if buf.Len() > 0 {
		t.Errorf("identical update wrote %q, want no output", buf.String())
	}

	// Reset forces the next update to redraw.
	buf.Reset()
	if err := w.Reset(); err != nil {
		t.Fatal(err)
	}
	if err := w.UpdateScreen([]string{"hello", "world"}, 1, 3); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "hello") {
		t.Errorf("update after Reset wrote %q, want a full redraw", buf.String())
	}
}
