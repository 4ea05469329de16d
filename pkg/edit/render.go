package edit

import (
	"fmt"
	"strings"
)

// render lays out the current buffer for a terminal of the given size,
// reserving the bottom two rows for the status and message lines. It returns
// the screen lines and the 0-based cursor cell, and adjusts the buffer's
// scroll offset so the point stays visible.
func (ed *Editor) render(rows, cols int) ([]string, int, int) {
	b := ed.Current()
	contentRows := rows - 2
	if contentRows < 1 {
		contentRows = 1
	}
	lines := b.Lines()
	ptLine, ptCol := b.LineCol()

	if b.scroll > ptLine {
		b.scroll = ptLine
	}
	if ptLine >= b.scroll+contentRows {
		b.scroll = ptLine - contentRows + 1
	}

	screen := make([]string, 0, contentRows+2)
	for i := b.scroll; i < b.scroll+contentRows; i++ {
		if i < len(lines) {
			screen = append(screen, truncate(expandTabs(lines[i], ed.tabStop), cols))
		} else {
			screen = append(screen, "")
		}
	}
	screen = append(screen, truncate(ed.statusLine(), cols))
	screen = append(screen, truncate(ed.message, cols))

	cursorRow := ptLine - b.scroll
	cursorCol := displayCol([]rune(lines[ptLine])[:ptCol], ed.tabStop)
	if cursorCol >= cols {
		cursorCol = cols - 1
	}
	return screen, cursorRow, cursorCol
}

func (ed *Editor) statusLine() string {
	b := ed.Current()
	mod := "-"
	if b.Modified() {
		mod = "*"
	}
	line, col := b.LineCol()
	return fmt.Sprintf("%s %s  (%s)  L%d,C%d", mod, b.Name, ed.mode, line+1, col+1)
}

// expandTabs replaces tabs with spaces up to the next tab stop.
func expandTabs(line string, tabStop int) string {
	if !strings.ContainsRune(line, '\t') {
		return line
	}
	var sb strings.Builder
	col := 0
	for _, r := range line {
		if r == '\t' {
			n := tabStop - col%tabStop
			sb.WriteString(strings.Repeat(" ", n))
			col += n
		} else {
			sb.WriteRune(r)
			col++
		}
	}
	return sb.String()
}

// displayCol returns the display column after the given line prefix, with
// tabs expanded. Columns count runes; double-width characters are not
// accounted for.
func displayCol(prefix []rune, tabStop int) int {
	col := 0
	for _, r := range prefix {
		if r == '\t' {
			col += tabStop - col%tabStop
		} else {
			col++
		}
	}
	return col
}

func truncate(s string, w int) string {
	rs := []rune(s)
	if w >= 0 && len(rs) > w {
		return string(rs[:w])
	}
	return s
}
