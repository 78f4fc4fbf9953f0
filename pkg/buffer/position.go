package buffer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/apparentlymart/go-textseg/v13/textseg"
	"gitlab.com/tozd/go/errors"
)

// Place is a zero based line and a column counted in grapheme clusters
type Place struct {
	Line      int
	Character int
}

func (p Place) String() string {
	return fmt.Sprintf("%d:%d", p.Line+1, p.Character+1)
}

// ParsePlace parses the one based "line:col" form used on the command line
func ParsePlace(s string) (Place, error) {
	lineStr, colStr, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		colStr = "1"
	}
	line, err := strconv.Atoi(lineStr)
	if err != nil || line < 1 {
		return Place{}, errors.Errorf("invalid line in position %q", s)
	}
	col, err := strconv.Atoi(colStr)
	if err != nil || col < 1 {
		return Place{}, errors.Errorf("invalid column in position %q", s)
	}
	return Place{Line: line - 1, Character: col - 1}, nil
}

// OffsetOf converts a place into a byte offset. Columns past the end of the line clamp to LineEnd.
func OffsetOf(b Buffer, p Place) (int, error) {
	if p.Line < 0 || p.Line >= b.LineCount() {
		return 0, errors.WithDetails(ErrOutOfRange, "line", p.Line, "lines", b.LineCount())
	}

	rest := []byte(b.Line(p.Line))
	offset := 0
	for i := 0; i < p.Character && len(rest) > 0; i++ {
		advance, _, err := textseg.ScanGraphemeClusters(rest, true)
		if err != nil {
			return 0, errors.Errorf("scanning line %d: %w", p.Line, err)
		}
		if advance == 0 {
			break
		}
		offset += advance
		rest = rest[advance:]
	}

	return b.LineStart(p.Line) + offset, nil
}

// PlaceOf converts a byte offset into a line and grapheme column
func PlaceOf(b Buffer, offset int) (Place, error) {
	line := b.LineFromOffset(offset)
	start := b.LineStart(line)
	text := b.Line(line)
	within := offset - start
	if within < 0 {
		within = 0
	}
	if within > len(text) {
		within = len(text)
	}

	col, err := textseg.TokenCount([]byte(text[:within]), textseg.ScanGraphemeClusters)
	if err != nil {
		return Place{}, errors.Errorf("counting columns on line %d: %w", line, err)
	}

	return Place{Line: line, Character: col}, nil
}
