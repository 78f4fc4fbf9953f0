package editor

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/walteh/modgen/pkg/catalog"
	"github.com/walteh/modgen/pkg/menu"
	"gitlab.com/tozd/go/errors"
)

// Apply performs one toggle and then restores the canonical layout, all inside a single
// undo group: final placement, modifier order (when configured), inline placement and
// metadata placement.
func (me *Editor) Apply(ctx context.Context, action menu.ToggleAction) error {
	state := action.Target
	if state == nil {
		return errors.Errorf("toggle %q has no target declaration", action.Label)
	}

	from, to := state.Span()
	span := Span{From: from, To: to}

	logger := zerolog.Ctx(ctx).With().
		Stringer("job", action.Job).
		Str("declaration", state.Target().Name).
		Int("from", span.From).
		Int("to", span.To).
		Logger()
	ctx = logger.WithContext(ctx)

	me.buf.BeginUndoGroup()
	defer me.buf.EndUndoGroup()

	if err := me.run(ctx, span, action); err != nil {
		return errors.Errorf("applying %s: %w", action.Job, err)
	}

	if err := me.Normalize(ctx, span); err != nil {
		return errors.Errorf("normalizing after %s: %w", action.Job, err)
	}

	logger.Debug().Msg("applied toggle")

	return nil
}

// Normalize runs the fixup passes in their fixed order
func (me *Editor) Normalize(ctx context.Context, span Span) error {
	if err := me.FixFinalPlacement(ctx, span); err != nil {
		return err
	}
	if me.caps.StartWithModifiers {
		if err := me.FixModifierOrder(ctx, span); err != nil {
			return err
		}
	}
	if err := me.FixInlinePlacement(ctx, span); err != nil {
		return err
	}
	return me.FixMetadataPlacement(ctx, span)
}

func (me *Editor) run(ctx context.Context, span Span, action menu.ToggleAction) error {
	state := action.Target

	switch action.Job {
	case menu.JobChangeAccess:
		return me.ChangeAccess(ctx, span, state.Kind, action.Visibility)
	case menu.JobMakeClassFinal, menu.JobMakeMethodFinal:
		return me.add(ctx, span, catalog.ModifierFinal)
	case menu.JobMakeClassNotFinal, menu.JobMakeMethodNotFinal:
		return me.remove(ctx, span, catalog.ModifierFinal)
	case menu.JobMakeClassExtern:
		return me.add(ctx, span, catalog.ModifierExtern)
	case menu.JobMakeClassNotExtern:
		return me.remove(ctx, span, catalog.ModifierExtern)
	case menu.JobAddStaticModifier:
		// static methods cannot stay final
		if state.Kind == catalog.KindMethod {
			if err := me.remove(ctx, span, catalog.ModifierFinal); err != nil {
				return err
			}
		}
		return me.add(ctx, span, catalog.ModifierStatic)
	case menu.JobRemoveStaticModifier:
		return me.remove(ctx, span, catalog.ModifierStatic)
	case menu.JobAddInlineModifier:
		return me.add(ctx, span, catalog.ModifierInline)
	case menu.JobRemoveInlineModifier:
		return me.remove(ctx, span, catalog.ModifierInline)
	case menu.JobAddNoCompletionMeta:
		return me.add(ctx, span, catalog.ModifierNoCompletion)
	case menu.JobRemoveNoCompletionMeta:
		return me.remove(ctx, span, catalog.ModifierNoCompletion)
	}

	return errors.Errorf("unknown job %d", action.Job)
}

func (me *Editor) add(ctx context.Context, span Span, mod catalog.Modifier) error {
	tok, ok := me.caps.Token(mod)
	if !ok {
		zerolog.Ctx(ctx).Debug().Stringer("modifier", mod).Msg("language has no such modifier")
		return nil
	}
	return me.AddModifier(ctx, span, tok)
}

func (me *Editor) remove(ctx context.Context, span Span, mod catalog.Modifier) error {
	tok, ok := me.caps.Token(mod)
	if !ok {
		return nil
	}
	return me.RemoveModifier(ctx, span, tok)
}
