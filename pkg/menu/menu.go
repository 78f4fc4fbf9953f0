package menu

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/walteh/modgen/pkg/catalog"
	"github.com/walteh/modgen/pkg/inspect"
)

// ToggleAction is one menu entry. Actions are built per trigger and thrown away afterwards.
type ToggleAction struct {
	ID    string
	Label string
	Job   JobKind
	// Target is the inspected declaration the job edits
	Target *inspect.State
	// Visibility is the requested visibility for JobChangeAccess
	Visibility string
	// SortIndex is the precedence used to order the visibility family
	SortIndex int
}

// Build returns the ordered toggles for an inspected declaration.
// The order is fixed: visibility family, final, extern (classes), static, inline, metadata.
func Build(ctx context.Context, state *inspect.State, caps *catalog.Capabilities) []ToggleAction {
	if state == nil {
		return nil
	}

	var actions []ToggleAction
	add := func(label string, job JobKind) {
		actions = append(actions, newAction(state, label, job))
	}

	switch state.Kind {
	case catalog.KindClass:
		actions = append(actions, visibilityActions(state, caps)...)
		if caps.Supports(catalog.ModifierFinal, catalog.KindClass) {
			if state.Has(catalog.ModifierFinal) {
				add("Make not final", JobMakeClassNotFinal)
			} else {
				add("Make final", JobMakeClassFinal)
			}
		}
		if tok, ok := caps.Token(catalog.ModifierExtern); ok && tok.Targets.Has(catalog.KindClass) {
			if state.Has(catalog.ModifierExtern) {
				add("Make not "+tok.Keyword, JobMakeClassNotExtern)
			} else {
				add("Make "+tok.Keyword, JobMakeClassExtern)
			}
		}

	case catalog.KindConstructor:
		actions = append(actions, visibilityActions(state, caps)...)

	case catalog.KindMethod, catalog.KindField:
		actions = append(actions, visibilityActions(state, caps)...)

		isStatic := state.Has(catalog.ModifierStatic)
		if caps.Supports(catalog.ModifierFinal, state.Kind) && !isStatic {
			if state.Has(catalog.ModifierFinal) {
				add("Remove final", JobMakeMethodNotFinal)
			} else {
				add("Add final", JobMakeMethodFinal)
			}
		}
		if caps.Supports(catalog.ModifierStatic, state.Kind) {
			if isStatic {
				add("Remove static modifier", JobRemoveStaticModifier)
			} else {
				add("Add static modifier", JobAddStaticModifier)
			}
		}
		if caps.Supports(catalog.ModifierInline, state.Kind) {
			if state.Has(catalog.ModifierInline) {
				add("Remove inline modifier", JobRemoveInlineModifier)
			} else {
				add("Add inline modifier", JobAddInlineModifier)
			}
		}
		if tok, ok := caps.Token(catalog.ModifierNoCompletion); ok && tok.Targets.Has(state.Kind) {
			if state.Has(catalog.ModifierNoCompletion) {
				add("Remove "+tok.Keyword, JobRemoveNoCompletionMeta)
			} else {
				add("Add "+tok.Keyword, JobAddNoCompletionMeta)
			}
		}

	default:
		return nil
	}

	zerolog.Ctx(ctx).Debug().
		Stringer("kind", state.Kind).
		Int("actions", len(actions)).
		Msg("built toggle menu")

	return actions
}

// visibilityActions returns "Make <vis>" for every other visibility, sorted by the configured
// access order. Names missing from the order sort after listed ones, keeping discovery order.
func visibilityActions(state *inspect.State, caps *catalog.Capabilities) []ToggleAction {
	var names []string
	names = append(names, caps.Visibilities(state.Kind)...)
	if state.Kind != catalog.KindClass {
		names = append(names, caps.CustomAccess...)
	}

	seen := map[string]bool{}
	var actions []ToggleAction
	for i, vis := range names {
		if vis == "" || vis == state.Visibility || seen[vis] {
			continue
		}
		seen[vis] = true

		a := newAction(state, "Make "+vis, JobChangeAccess)
		a.Visibility = vis
		a.SortIndex = caps.AccessIndex(vis)
		if a.SortIndex < 0 {
			a.SortIndex = len(caps.AccessOrder) + i
		}
		actions = append(actions, a)
	}

	sort.SliceStable(actions, func(i, j int) bool {
		return actions[i].SortIndex < actions[j].SortIndex
	})

	return actions
}

func newAction(state *inspect.State, label string, job JobKind) ToggleAction {
	return ToggleAction{
		ID:     uuid.NewString(),
		Label:  label,
		Job:    job,
		Target: state,
	}
}
