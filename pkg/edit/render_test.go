package edit

import (
	"reflect"
	"strings"
	"testing"

	"github.com/zem-editor/zem/pkg/eval"
)

func testEditor() *Editor {
	return NewEditor(eval.NewEvaler())
}

func TestRender_EmptyBuffer(t *testing.T) {
	ed := testEditor()
	screen, row, col := ed.render(5, 40)
	want := []string{"", "", "", "- *scratch*  (normal)  L1,C1", ""}
	if !reflect.DeepEqual(screen, want) {
		t.Errorf("screen %q, want %q", screen, want)
	}
	if row != 0 || col != 0 {
		t.Errorf("cursor (%v, %v), want (0, 0)", row, col)
	}
}

func TestRender_StatusLineTracksState(t *testing.T) {
	ed := testEditor()
	ed.Current().Insert("hello\nworld")
	screen, row, col := ed.render(6, 40)
	want := []string{
		"hello", "world", "", "",
		"* *scratch*  (normal)  L2,C6",
		"",
	}
	if !reflect.DeepEqual(screen, want) {
		t.Errorf("screen %q, want %q", screen, want)
	}
	if row != 1 || col != 5 {
		t.Errorf("cursor (%v, %v), want (1, 5)", row, col)
	}
}

func TestRender_ScrollFollowsPoint(t *testing.T) {
	ed := testEditor()
	b := ed.Current()
	b.Insert("l0\nl1\nl2\nl3\nl4")

	// Point is on the last line; the window scrolls down to show it.
	screen, row, _ := ed.render(4, 40)
	if screen[0] != "l3" || screen[1] != "l4" {
		t.Errorf("content %q, want [l3 l4]", screen[:2])
	}
	if row != 1 {
		t.Errorf("cursor row %v, want 1", row)
	}

	// Moving the point back above the window scrolls up again.
	b.SetPoint(0)
	screen, row, _ = ed.render(4, 40)
	if screen[0] != "l0" || screen[1] != "l1" {
		t.Errorf("content %q, want [l0 l1]", screen[:2])
	}
	if row != 0 {
		t.Errorf("cursor row %v, want 0", row)
	}
}

func TestRender_TabStop(t *testing.T) {
	ed := testEditor()
	ed.Current().Insert("a\tb")

	screen, _, col := ed.render(4, 40)
	if want := "a       b"; screen[0] != want {
		t.Errorf("line %q, want %q", screen[0], want)
	}
	if col != 9 {
		t.Errorf("cursor col %v, want 9", col)
	}

	ed.ApplyConfig(Config{TabStop: 4})
	screen, _, col = ed.render(4, 40)
	if want := "a   b"; screen[0] != want {
		t.Errorf("line %q, want %q", screen[0], want)
	}
	if col != 5 {
		t.Errorf("cursor col %v, want 5", col)
	}
}

func TestRender_TruncatesLongLines(t *testing.T) {
	ed := testEditor()
	ed.Current().Insert(strings.Repeat("x", 50))
	screen, _, col := ed.render(4, 10)
	if want := strings.Repeat("x", 10); screen[0] != want {
		t.Errorf("line %q, want %q", screen[0], want)
	}
	if col != 9 {
		t.Errorf("cursor col %v, want 9 (clamped)", col)
	}
}

func TestRender_MessageLine(t *testing.T) {
	ed := testEditor()
	ed.message = "hello there"
	screen, _, _ := ed.render(4, 40)
	if screen[3] != "hello there" {
		t.Errorf("message line %q, want %q", screen[3], "hello there")
	}
}

func TestRender_TinyTerminal(t *testing.T) {
	ed := testEditor()
	ed.Current().Insert("abc")
	// A one-row terminal still gets one content row.
	screen, row, _ := ed.render(1, 10)
	if len(screen) != 3 {
		t.Errorf("screen has %v lines, want 3", len(screen))
	}
	if row != 0 {
		t.Errorf("cursor row %v, want 0", row)
	}
}

func TestExpandTabs(t *testing.T) {
	tests := []struct {
		line    string
		tabStop int
		want    string
	}{
		{"", 8, ""},
		{"abc", 8, "abc"},
		{"\t", 8, "        "},
		{"a\tb", 8, "a       b"},
		{"ab\tc", 4, "ab  c"},
		{"\t\t", 4, "        "},
		{"abcd\te", 4, "abcd    e"},
	}
	for _, test := range tests {
		if got := expandTabs(test.line, test.tabStop); got != test.want {
			t.Errorf("expandTabs(%q, %v) = %q, want %q",
				test.line, test.tabStop, got, test.want)
		}
	}
}

func TestDisplayCol(t *testing.T) {
	tests := []struct {
		prefix  string
		tabStop int
		want    int
	}{
		{"", 8, 0},
		{"abc", 8, 3},
		{"\t", 8, 8},
		{"a\t", 8, 8},
		{"a\tb", 4, 5},
	}
	for _, test := range tests {
		if got := displayCol([]rune(test.prefix), test.tabStop); got != test.want {
			t.Errorf("displayCol(%q, %v) = %v, want %v",
				test.prefix, test.tabStop, got, test.want)
		}
	}
}
