package locator

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/modgen/pkg/buffer"
	"github.com/walteh/modgen/pkg/catalog"
	"github.com/walteh/modgen/pkg/symbols"
)

// Found is the declaration enclosing a line: a class and, optionally, one of its members
type Found struct {
	Class  *symbols.Class
	Member *symbols.Member
}

// IsEmpty reports whether no class encloses the line
func (f Found) IsEmpty() bool {
	return f.Class == nil
}

// Target is the declaration a toggle would edit: the member when there is one, else the class
func (f Found) Target() *symbols.Member {
	if f.Member != nil {
		return f.Member
	}
	if f.Class != nil {
		return &f.Class.Member
	}
	return nil
}

// Locate returns the first class containing line and the first of its members containing it
func Locate(model *symbols.FileModel, line int) Found {
	var found Found
	if model == nil {
		return found
	}
	for _, class := range model.Classes {
		if class == nil || !class.Contains(line) {
			continue
		}
		found.Class = class
		for _, member := range class.Members {
			if member.Contains(line) {
				found.Member = member
				return found
			}
		}
		return found
	}
	return found
}

// IsValid reports whether the buffer cursor sits somewhere a toggle menu makes sense for found:
// on the header before the end of the declaration keyword, at the end of the header line's
// code, or right after the declaration's last piece of code.
func IsValid(ctx context.Context, b buffer.Buffer, found Found, caps *catalog.Capabilities) bool {
	if found.IsEmpty() {
		return false
	}
	target := found.Target()
	cursor := b.CursorOffset()

	header, ok := FindHeader(b, target.LineFrom, target.LineTo, caps)
	if !ok {
		zerolog.Ctx(ctx).Debug().Str("declaration", target.Name).Msg("no declaration keyword in range")
		return false
	}
	if cursor < b.LineStart(header.Line)+header.End {
		return true
	}

	code := strings.TrimRight(Code(b, target.LineFrom, header.Line), " \t")
	if cursor == b.LineStart(header.Line)+len(code) {
		return true
	}

	end, ok := ContentEnd(b, target.LineFrom, target.LineTo)
	return ok && cursor == end
}

// Header is the first line of a declaration carrying its start keyword.
// Start and End are byte positions of the keyword match within the line.
type Header struct {
	Line  int
	Start int
	End   int
}

// FindHeader returns the first line in [from, to] whose code matches the declaration start pattern.
// Block comments opened on earlier lines of the range hide the lines they cover.
func FindHeader(b buffer.Buffer, from, to int, caps *catalog.Capabilities) (Header, bool) {
	inBlock := false
	for line := from; line <= to && line < b.LineCount(); line++ {
		var code string
		code, inBlock = StripCommentsFrom(b.Line(line), inBlock)
		if code == "" {
			continue
		}
		start, end, ok := caps.MatchStart(code)
		if !ok {
			continue
		}
		return Header{Line: line, Start: start, End: end}, true
	}
	return Header{}, false
}

// ContentEnd is the offset just past the last non-comment, non-blank byte in lines [from, to]
func ContentEnd(b buffer.Buffer, from, to int) (int, bool) {
	for line := to; line >= from; line-- {
		text := strings.TrimRight(Code(b, from, line), " \t\r")
		if text == "" {
			continue
		}
		return b.LineStart(line) + len(text), true
	}
	return 0, false
}

// Code is line with its comments removed, following block comments left open on the
// lines from..line-1
func Code(b buffer.Buffer, from, line int) string {
	inBlock := false
	for l := from; l < line; l++ {
		_, inBlock = StripCommentsFrom(b.Line(l), inBlock)
	}
	code, _ := StripCommentsFrom(b.Line(line), inBlock)
	return code
}

// StripComments cuts // line comments and blanks /* */ comments that open on the line,
// so offsets of the remaining code are unchanged. An unterminated /* hides the rest of the line.
func StripComments(line string) string {
	code, _ := StripCommentsFrom(line, false)
	return code
}

// StripCommentsFrom is StripComments for a line that starts inside a block comment when
// inBlock is set. It reports whether a block comment is still open at the end of the line.
func StripCommentsFrom(line string, inBlock bool) (string, bool) {
	var sb strings.Builder
	i := 0
	if inBlock {
		closeAt := strings.Index(line, "*/")
		if closeAt < 0 {
			return "", true
		}
		i = closeAt + 2
		sb.WriteString(strings.Repeat(" ", i))
	}
	for i < len(line) {
		if strings.HasPrefix(line[i:], "//") {
			break
		}
		if strings.HasPrefix(line[i:], "/*") {
			closeAt := strings.Index(line[i+2:], "*/")
			if closeAt < 0 {
				return sb.String(), true
			}
			n := 2 + closeAt + 2
			sb.WriteString(strings.Repeat(" ", n))
			i += n
			continue
		}
		sb.WriteByte(line[i])
		i++
	}
	return sb.String(), false
}
