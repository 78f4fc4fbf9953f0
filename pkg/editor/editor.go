package editor

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/modgen/pkg/buffer"
	"github.com/walteh/modgen/pkg/catalog"
	"github.com/walteh/modgen/pkg/locator"
	"gitlab.com/tozd/go/errors"
)

// Span is an inclusive line range of a declaration
type Span struct {
	From int
	To   int
}

// Editor rewrites modifier tokens inside declaration spans of one buffer
type Editor struct {
	buf  buffer.Buffer
	caps *catalog.Capabilities
}

// New creates an Editor for b using the language table caps
func New(b buffer.Buffer, caps *catalog.Capabilities) *Editor {
	return &Editor{buf: b, caps: caps}
}

// lineRewrite returns the new text for a line, or ok=false to keep scanning
type lineRewrite func(line int, text string) (newText string, ok bool)

// findAndReplaceInRange walks span top to bottom and rewrites the first line rewrite accepts.
// Only the changed bytes are replaced. It reports whether a line was accepted.
func (me *Editor) findAndReplaceInRange(ctx context.Context, span Span, rewrite lineRewrite) (bool, error) {
	for line := span.From; line <= span.To && line < me.buf.LineCount(); line++ {
		text := me.buf.Line(line)
		if text == "" {
			continue
		}
		newText, ok := rewrite(line, text)
		if !ok {
			continue
		}
		if newText == text {
			return true, nil
		}

		start, end, repl := diffSpan(text, newText)
		base := me.buf.LineStart(line)
		if err := me.buf.ReplaceRange(base+start, base+end, repl); err != nil {
			return true, errors.Errorf("rewriting line %d: %w", line, err)
		}

		zerolog.Ctx(ctx).Debug().
			Int("line", line).
			Str("before", text).
			Str("after", newText).
			Msg("rewrote declaration line")

		return true, nil
	}
	return false, nil
}

// diffSpan trims the common prefix and suffix of two lines
func diffSpan(old, new string) (start, end int, repl string) {
	for start < len(old) && start < len(new) && old[start] == new[start] {
		start++
	}
	oe, ne := len(old), len(new)
	for oe > start && ne > start && old[oe-1] == new[ne-1] {
		oe--
		ne--
	}
	return start, oe, new[start:ne]
}

// code is a line of span with its comments blanked, including block comments opened on
// earlier lines of the span
func (me *Editor) code(span Span, line int) string {
	return locator.Code(me.buf, span.From, line)
}

// header finds the declaration keyword on a line of span, ignoring comments
func (me *Editor) header(span Span, line int) (start, end int, ok bool) {
	return me.caps.MatchStart(me.code(span, line))
}

// searchable is the part of a line a modifier may live in: the code on lines above the
// header, and only the code before the keyword on the header line itself
func (me *Editor) searchable(span Span, line int) string {
	code := me.code(span, line)
	if start, _, ok := me.caps.MatchStart(code); ok {
		return code[:start]
	}
	return code
}

// ChangeAccess replaces the visibility keyword of the declaration with vis, or inserts it.
// When vis is the implicit visibility for kind the keyword is dropped instead.
func (me *Editor) ChangeAccess(ctx context.Context, span Span, kind catalog.Kind, vis string) error {
	keyword := me.caps.VisibilityKeyword(kind, vis)

	replaced, err := me.findAndReplaceInRange(ctx, span, func(line int, text string) (string, bool) {
		start, end, ok := me.caps.FindVisibility(me.searchable(span, line))
		if !ok {
			return "", false
		}
		end = skipBlanks(text, end)
		if keyword == "" {
			return text[:start] + text[end:], true
		}
		return text[:start] + keyword + " " + text[end:], true
	})
	if err != nil || replaced || keyword == "" {
		return err
	}

	_, err = me.findAndReplaceInRange(ctx, span, func(line int, text string) (string, bool) {
		if _, _, ok := me.header(span, line); !ok {
			return "", false
		}
		at := firstModifierChar(text)
		return text[:at] + keyword + " " + text[at:], true
	})
	return err
}

// AddModifier inserts tok directly before the declaration keyword
func (me *Editor) AddModifier(ctx context.Context, span Span, tok catalog.ModifierToken) error {
	_, err := me.findAndReplaceInRange(ctx, span, func(line int, text string) (string, bool) {
		start, _, ok := me.header(span, line)
		if !ok {
			return "", false
		}
		return text[:start] + tok.Keyword + " " + text[start:], true
	})
	return err
}

// RemoveModifier deletes the first occurrence of tok and one adjacent blank
func (me *Editor) RemoveModifier(ctx context.Context, span Span, tok catalog.ModifierToken) error {
	_, err := me.findAndReplaceInRange(ctx, span, func(line int, text string) (string, bool) {
		start, end, ok := tok.Find(me.searchable(span, line))
		if !ok {
			return "", false
		}
		return cut(text, start, end), true
	})
	return err
}

// FixModifierOrder moves a visibility keyword to the front of the modifiers preceding the
// declaration keyword. Leading annotations stay in front of it. When the modifiers contain
// something other than plain words and annotations, only the plain words directly before
// the keyword are reordered.
func (me *Editor) FixModifierOrder(ctx context.Context, span Span) error {
	_, err := me.findAndReplaceInRange(ctx, span, func(line int, text string) (string, bool) {
		start, _, ok := me.header(span, line)
		if !ok {
			return "", false
		}

		runStart := len(text) - len(strings.TrimLeft(text, " \t"))
		if runStart > start || !isModifierRun(text[runStart:start]) {
			runStart = keywordRunStart(text, start)
		}
		run := text[runStart:start]
		words := strings.Fields(run)

		lead := 0
		for lead < len(words) && strings.HasPrefix(words[lead], "@") {
			lead++
		}
		at := -1
		for i, w := range words {
			if me.caps.IsVisibility(w) {
				at = i
				break
			}
		}
		if at <= lead {
			return text, true
		}

		ordered := make([]string, 0, len(words))
		ordered = append(ordered, words[:lead]...)
		ordered = append(ordered, words[at])
		ordered = append(ordered, words[lead:at]...)
		ordered = append(ordered, words[at+1:]...)
		sep := run[len(strings.TrimRight(run, " \t")):]

		return text[:runStart] + strings.Join(ordered, " ") + sep + text[start:], true
	})
	return err
}

// isModifierRun reports whether every word of run is a plain word or an annotation
func isModifierRun(run string) bool {
	for _, w := range strings.Fields(run) {
		if strings.HasPrefix(w, "@") {
			continue
		}
		for i := 0; i < len(w); i++ {
			if !isPlainWordByte(w[i]) {
				return false
			}
		}
	}
	return true
}

// FixFinalPlacement moves the final token to the start of its line
func (me *Editor) FixFinalPlacement(ctx context.Context, span Span) error {
	return me.fixPlacement(ctx, span, catalog.ModifierFinal)
}

// FixInlinePlacement moves the inline token directly before the declaration keyword
func (me *Editor) FixInlinePlacement(ctx context.Context, span Span) error {
	return me.fixPlacement(ctx, span, catalog.ModifierInline)
}

// FixMetadataPlacement moves the completion metadata to the start of its line
func (me *Editor) FixMetadataPlacement(ctx context.Context, span Span) error {
	return me.fixPlacement(ctx, span, catalog.ModifierNoCompletion)
}

func (me *Editor) fixPlacement(ctx context.Context, span Span, mod catalog.Modifier) error {
	tok, ok := me.caps.Token(mod)
	if !ok {
		return nil
	}

	var rewrite lineRewrite
	switch tok.Placement {
	case catalog.PlacementLineStart:
		rewrite = func(line int, text string) (string, bool) {
			start, end, ok := tok.Find(me.searchable(span, line))
			if !ok {
				return "", false
			}
			indent := len(text) - len(strings.TrimLeft(text, " \t"))
			if start >= indent && onlyAnnotations(text[indent:start]) {
				return text, true
			}
			rest := cut(text, start, end)
			return rest[:indent] + tok.Keyword + " " + rest[indent:], true
		}
	case catalog.PlacementBeforeKeyword:
		rewrite = func(line int, text string) (string, bool) {
			start, end, ok := tok.Find(me.searchable(span, line))
			if !ok {
				return "", false
			}
			kwStart, _, ok := me.header(span, line)
			if !ok || skipBlanks(text, end) == kwStart {
				return text, true
			}
			rest := cut(text, start, end)
			// everything cut lies before the keyword
			kwStart -= len(text) - len(rest)
			return rest[:kwStart] + tok.Keyword + " " + rest[kwStart:], true
		}
	default:
		return nil
	}

	matched, err := me.findAndReplaceInRange(ctx, span, rewrite)
	if err == nil && !matched {
		zerolog.Ctx(ctx).Debug().Str("token", tok.Keyword).Msg("placement fixup found nothing to move")
	}
	return err
}

// onlyAnnotations reports whether every word of s is an annotation. Line start tokens inside
// the leading annotation run are already in place.
func onlyAnnotations(s string) bool {
	for _, w := range strings.Fields(s) {
		if !strings.HasPrefix(w, "@") {
			return false
		}
	}
	return true
}

// cut removes text[start:end] together with one neighbouring blank, preferring the one after
func cut(text string, start, end int) string {
	switch {
	case end < len(text) && isBlank(text[end]):
		end++
	case start > 0 && isBlank(text[start-1]):
		start--
	}
	return text[:start] + text[end:]
}

// keywordRunStart walks left from pos over plain words separated by blanks
func keywordRunStart(text string, pos int) int {
	runStart := pos
	i := pos
	for {
		j := i
		for j > 0 && isBlank(text[j-1]) {
			j--
		}
		k := j
		for k > 0 && isPlainWordByte(text[k-1]) {
			k--
		}
		if k == j || (k > 0 && !isBlank(text[k-1])) {
			return runStart
		}
		runStart = k
		i = k
	}
}

// firstModifierChar is where a new leading keyword goes: the first letter, '@' or ':' on the line
func firstModifierChar(text string) int {
	for i := 0; i < len(text); i++ {
		b := text[i]
		if b == '@' || b == ':' || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z') {
			return i
		}
	}
	return 0
}

func skipBlanks(text string, i int) int {
	for i < len(text) && isBlank(text[i]) {
		i++
	}
	return i
}

func isBlank(b byte) bool {
	return b == ' ' || b == '\t'
}

func isPlainWordByte(b byte) bool {
	return b == '_' || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z') || ('0' <= b && b <= '9')
}
