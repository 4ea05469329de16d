package edit

import (
	"os"
	"path/filepath"
	"strings"
)

// maxUndo bounds the number of undo snapshots a buffer keeps. Editing past
// the bound drops the oldest snapshot.
const maxUndo = 1024

// Buffer is one editable text. The text is a rune slice, so the point and
// all the editing primitives count runes, not bytes.
//
// Buffer methods never fail; callers enforce range and mode policy and turn
// violations into structured errors.
type Buffer struct {
	// Name identifies the buffer in the buffer list. Unique per editor.
	Name string
	// Path is the file the buffer was opened from or saved to. It is empty
	// for buffers not backed by a file, like *scratch*.
	Path string

	text     []rune
	point    int
	modified bool
	undo     []undoState
	// First visible line, maintained by the renderer.
	scroll int
}

type undoState struct {
	text  []rune
	point int
}

// NewBuffer creates an empty buffer that is not backed by a file.
func NewBuffer(name string) *Buffer {
	return &Buffer{Name: name}
}

// NewFileBuffer creates a buffer visiting path. A file that does not exist
// yet gives an empty, unmodified buffer; saving will create it.
func NewFileBuffer(path string) (*Buffer, error) {
	b := &Buffer{Name: filepath.Base(path), Path: path}
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return b, nil
		}
		return nil, err
	}
	b.text = []rune(string(content))
	return b, nil
}

// Text returns the buffer content.
func (b *Buffer) Text() string { return string(b.text) }

// Len returns the number of runes in the buffer.
func (b *Buffer) Len() int { return len(b.text) }

// Point returns the cursor position, a rune offset in [0, Len()].
func (b *Buffer) Point() int { return b.point }

// Modified reports whether the buffer has unsaved changes.
func (b *Buffer) Modified() bool { return b.modified }

// SetPoint moves the point, clamping to the valid range.
func (b *Buffer) SetPoint(p int) {
	if p < 0 {
		p = 0
	}
	if p > len(b.text) {
		p = len(b.text)
	}
	b.point = p
}

// Insert inserts text at the point and leaves the point after it.
func (b *Buffer) Insert(s string) {
	if s == "" {
		return
	}
	b.pushUndo()
	rs := []rune(s)
	b.text = append(b.text[:b.point], append(rs, b.text[b.point:]...)...)
	b.point += len(rs)
	b.modified = true
}

// DeleteBackward deletes up to n runes before the point, stopping at the
// beginning of the buffer. It returns the number of runes deleted.
func (b *Buffer) DeleteBackward(n int) int {
	if n > b.point {
		n = b.point
	}
	if n <= 0 {
		return 0
	}
	b.pushUndo()
	b.text = append(b.text[:b.point-n], b.text[b.point:]...)
	b.point -= n
	b.modified = true
	return n
}

// DeleteForward deletes up to n runes at the point, stopping at the end of
// the buffer. It returns the number of runes deleted.
func (b *Buffer) DeleteForward(n int) int {
	if n > len(b.text)-b.point {
		n = len(b.text) - b.point
	}
	if n <= 0 {
		return 0
	}
	b.pushUndo()
	b.text = append(b.text[:b.point], b.text[b.point+n:]...)
	b.modified = true
	return n
}

// Undo restores the most recent snapshot, if any, and reports whether
// anything was undone.
func (b *Buffer) Undo() bool {
	if len(b.undo) == 0 {
		return false
	}
	last := b.undo[len(b.undo)-1]
	b.undo = b.undo[:len(b.undo)-1]
	b.text = last.text
	b.point = last.point
	b.modified = true
	return true
}

func (b *Buffer) pushUndo() {
	snapshot := make([]rune, len(b.text))
	copy(snapshot, b.text)
	if len(b.undo) >= maxUndo {
		b.undo = b.undo[1:]
	}
	b.undo = append(b.undo, undoState{snapshot, b.point})
}

// Save writes the buffer to its file and clears the modified flag.
func (b *Buffer) Save() error {
	if err := os.WriteFile(b.Path, []byte(string(b.text)), 0o644); err != nil {
		return err
	}
	b.modified = false
	return nil
}

// LineCol returns the 0-based line and column of the point.
func (b *Buffer) LineCol() (line, col int) {
	for _, r := range b.text[:b.point] {
		if r == '\n' {
			line++
			col = 0
		} else {
			col++
		}
	}
	return line, col
}

// GotoLineCol moves the point to the given 0-based line and column, clamping
// both to what the buffer actually has.
func (b *Buffer) GotoLineCol(line, col int) {
	pos := 0
	for line > 0 && pos < len(b.text) {
		if b.text[pos] == '\n' {
			line--
		}
		pos++
	}
	for col > 0 && pos < len(b.text) && b.text[pos] != '\n' {
		col--
		pos++
	}
	b.point = pos
}

// Lines splits the content into display lines. The result always has at
// least one element; a trailing newline yields a final empty line, matching
// where the cursor can go.
func (b *Buffer) Lines() []string {
	return strings.Split(string(b.text), "\n")
}

// lineStart returns the offset of the first rune of the line containing pos.
func (b *Buffer) lineStart(pos int) int {
	for pos > 0 && b.text[pos-1] != '\n' {
		pos--
	}
	return pos
}

// lineEnd returns the offset just past the last rune of the line containing
// pos, excluding the newline itself.
func (b *Buffer) lineEnd(pos int) int {
	for pos < len(b.text) && b.text[pos] != '\n' {
		pos++
	}
	return pos
}

// MoveLines moves the point n lines down (negative moves up), keeping the
// column when the target line is long enough and clamping to its end when
// it is not.
func (b *Buffer) MoveLines(n int) {
	start := b.lineStart(b.point)
	col := b.point - start
	pos := start
	for ; n > 0; n-- {
		end := b.lineEnd(pos)
		if end >= len(b.text) {
			break
		}
		pos = end + 1
	}
	for ; n < 0; n++ {
		if pos == 0 {
			break
		}
		pos = b.lineStart(pos - 1)
	}
	end := b.lineEnd(pos)
	if pos+col > end {
		b.point = end
	} else {
		b.point = pos + col
	}
}
