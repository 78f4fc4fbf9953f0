package buffer

import (
	"strings"

	"gitlab.com/tozd/go/errors"
)

// Buffer is the line addressable text the editor mutates.
// Lines are zero based and never include their terminator.
type Buffer interface {
	LineCount() int
	Line(n int) string
	// LineStart is the offset of the first byte of line n
	LineStart(n int) int
	// LineEnd is the offset just past the last content byte of line n
	LineEnd(n int) int
	LineFromOffset(offset int) int
	CursorOffset() int
	ReplaceRange(start, end int, text string) error
	BeginUndoGroup()
	EndUndoGroup()
}

var ErrOutOfRange = errors.Base("range out of bounds")

type edit struct {
	start int
	old   string
	new   string
}

type undoGroup []edit

// TextBuffer is an in-memory Buffer with grouped undo and redo
type TextBuffer struct {
	text   string
	starts []int
	ends   []int
	cursor int

	undo  []undoGroup
	redo  []undoGroup
	open  undoGroup
	depth int
}

var _ Buffer = (*TextBuffer)(nil)

// NewTextBuffer creates a TextBuffer holding text with the cursor at offset 0
func NewTextBuffer(text string) *TextBuffer {
	b := &TextBuffer{text: text}
	b.index()
	return b
}

func (b *TextBuffer) index() {
	b.starts = b.starts[:0]
	b.ends = b.ends[:0]
	start := 0
	for i := 0; i < len(b.text); i++ {
		if b.text[i] != '\n' {
			continue
		}
		end := i
		if end > start && b.text[end-1] == '\r' {
			end--
		}
		b.starts = append(b.starts, start)
		b.ends = append(b.ends, end)
		start = i + 1
	}
	b.starts = append(b.starts, start)
	b.ends = append(b.ends, len(b.text))
}

func (b *TextBuffer) String() string {
	return b.text
}

func (b *TextBuffer) LineCount() int {
	return len(b.starts)
}

func (b *TextBuffer) Line(n int) string {
	if n < 0 || n >= len(b.starts) {
		return ""
	}
	return b.text[b.starts[n]:b.ends[n]]
}

func (b *TextBuffer) LineStart(n int) int {
	if n < 0 {
		return 0
	}
	if n >= len(b.starts) {
		return len(b.text)
	}
	return b.starts[n]
}

func (b *TextBuffer) LineEnd(n int) int {
	if n < 0 {
		return 0
	}
	if n >= len(b.ends) {
		return len(b.text)
	}
	return b.ends[n]
}

func (b *TextBuffer) LineFromOffset(offset int) int {
	if offset <= 0 {
		return 0
	}
	// last line whose start is <= offset
	lo, hi := 0, len(b.starts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if b.starts[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

func (b *TextBuffer) CursorOffset() int {
	return b.cursor
}

// SetCursor moves the cursor, clamped to the text
func (b *TextBuffer) SetCursor(offset int) {
	b.cursor = clamp(offset, 0, len(b.text))
}

func (b *TextBuffer) ReplaceRange(start, end int, text string) error {
	if start < 0 || end < start || end > len(b.text) {
		return errors.WithDetails(ErrOutOfRange, "start", start, "end", end, "length", len(b.text))
	}

	e := edit{start: start, old: b.text[start:end], new: text}
	if e.old == e.new {
		return nil
	}
	b.apply(e.start, len(e.old), e.new)

	b.redo = nil
	if b.depth > 0 {
		b.open = append(b.open, e)
	} else {
		b.undo = append(b.undo, undoGroup{e})
	}
	return nil
}

func (b *TextBuffer) apply(start, oldLen int, text string) {
	end := start + oldLen
	b.text = b.text[:start] + text + b.text[end:]

	delta := len(text) - oldLen
	switch {
	case b.cursor >= end:
		b.cursor += delta
	case b.cursor > start:
		b.cursor = start + len(text)
	}
	b.cursor = clamp(b.cursor, 0, len(b.text))

	b.index()
}

// BeginUndoGroup opens a group; groups nest and only the outermost one is recorded
func (b *TextBuffer) BeginUndoGroup() {
	if b.depth == 0 {
		b.open = nil
	}
	b.depth++
}

func (b *TextBuffer) EndUndoGroup() {
	if b.depth == 0 {
		return
	}
	b.depth--
	if b.depth == 0 && len(b.open) > 0 {
		b.undo = append(b.undo, b.open)
		b.open = nil
	}
}

// Undo reverts the last recorded group. It returns false when there is nothing to undo.
func (b *TextBuffer) Undo() bool {
	if len(b.undo) == 0 || b.depth > 0 {
		return false
	}
	g := b.undo[len(b.undo)-1]
	b.undo = b.undo[:len(b.undo)-1]
	for i := len(g) - 1; i >= 0; i-- {
		b.apply(g[i].start, len(g[i].new), g[i].old)
	}
	b.redo = append(b.redo, g)
	return true
}

// Redo reapplies the last undone group
func (b *TextBuffer) Redo() bool {
	if len(b.redo) == 0 || b.depth > 0 {
		return false
	}
	g := b.redo[len(b.redo)-1]
	b.redo = b.redo[:len(b.redo)-1]
	for _, e := range g {
		b.apply(e.start, len(e.old), e.new)
	}
	b.undo = append(b.undo, g)
	return true
}

// UndoDepth is the number of groups that can be undone
func (b *TextBuffer) UndoDepth() int {
	return len(b.undo)
}

// Lines returns a copy of every line without terminators
func (b *TextBuffer) Lines() []string {
	out := make([]string, len(b.starts))
	for i := range b.starts {
		out[i] = b.Line(i)
	}
	return out
}

// EOL returns the first line terminator found in the text, defaulting to "\n"
func (b *TextBuffer) EOL() string {
	i := strings.IndexByte(b.text, '\n')
	if i > 0 && b.text[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
