package inspect

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/walteh/modgen/pkg/buffer"
	"github.com/walteh/modgen/pkg/catalog"
	"github.com/walteh/modgen/pkg/locator"
	"github.com/walteh/modgen/pkg/symbols"
)

// State is what the inspector learned about one declaration
type State struct {
	Found      locator.Found
	Kind       catalog.Kind
	Header     locator.Header
	Visibility string

	present map[catalog.Modifier]bool
}

// Has reports whether mod is present on the declaration
func (s *State) Has(mod catalog.Modifier) bool {
	return s.present[mod]
}

// Target is the declaration the state describes
func (s *State) Target() *symbols.Member {
	return s.Found.Target()
}

// Span is the header span: the lines a modifier of this declaration can live on
func (s *State) Span() (from, to int) {
	return s.Target().LineFrom, s.Header.Line
}

// Classify derives the declaration kind from the engine flags
func Classify(found locator.Found) catalog.Kind {
	if found.IsEmpty() {
		return catalog.KindNone
	}
	if found.Member == nil {
		return catalog.KindClass
	}
	flags := found.Member.Flags
	switch {
	case flags.Has(symbols.FlagConstructor):
		return catalog.KindConstructor
	case flags.Has(symbols.FlagFunction):
		return catalog.KindMethod
	case !flags.Has(symbols.FlagLocalVar) && flags.Has(symbols.FlagVariable|symbols.FlagGetter|symbols.FlagSetter|symbols.FlagConstant):
		return catalog.KindField
	}
	return catalog.KindNone
}

// Inspect classifies the declaration in found and collects its modifiers.
// ok is false when the declaration cannot be edited.
func Inspect(ctx context.Context, b buffer.Buffer, found locator.Found, caps *catalog.Capabilities) (*State, bool) {
	logger := zerolog.Ctx(ctx)

	kind := Classify(found)
	if kind == catalog.KindNone {
		logger.Debug().Msg("declaration kind not editable")
		return nil, false
	}

	target := found.Target()
	header, ok := locator.FindHeader(b, target.LineFrom, target.LineTo, caps)
	if !ok {
		logger.Debug().Str("declaration", target.Name).Msg("no declaration keyword in range")
		return nil, false
	}

	state := &State{
		Found:   found,
		Kind:    kind,
		Header:  header,
		present: map[catalog.Modifier]bool{},
	}

	for _, tok := range caps.Tokens() {
		if HasModifier(b, state, tok) {
			state.present[tok.Modifier] = true
		}
	}

	if target.Flags.Has(symbols.FlagStatic) {
		state.present[catalog.ModifierStatic] = true
	}
	if target.Flags.Has(symbols.FlagFinal) {
		state.present[catalog.ModifierFinal] = true
	}
	if target.Flags.Has(symbols.FlagExtern) {
		state.present[catalog.ModifierExtern] = true
	}

	state.Visibility = visibility(b, state, caps)

	logger.Debug().
		Str("declaration", target.Name).
		Stringer("kind", kind).
		Str("visibility", state.Visibility).
		Int("header", header.Line).
		Msg("inspected declaration")

	return state, true
}

// HasModifier searches the code of the header span for tok. On the header line only the
// text before the declaration keyword counts.
func HasModifier(b buffer.Buffer, state *State, tok catalog.ModifierToken) bool {
	from, to := state.Span()
	inBlock := false
	for line := from; line <= to; line++ {
		var text string
		text, inBlock = locator.StripCommentsFrom(b.Line(line), inBlock)
		if line == state.Header.Line {
			text = text[:min(state.Header.Start, len(text))]
		}
		if _, _, ok := tok.Find(text); ok {
			return true
		}
	}
	return false
}

func visibility(b buffer.Buffer, state *State, caps *catalog.Capabilities) string {
	if v := state.Target().Visibility(); v != "" {
		return v
	}

	text := locator.Code(b, state.Target().LineFrom, state.Header.Line)
	text = text[:min(state.Header.Start, len(text))]
	if start, end, ok := caps.FindVisibility(text); ok {
		return text[start:end]
	}

	if state.Kind == catalog.KindClass {
		return caps.ImplicitClassVisibility
	}
	return caps.ImplicitMemberVisibility
}
