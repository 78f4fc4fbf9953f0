package generator

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/walteh/modgen/pkg/buffer"
	"github.com/walteh/modgen/pkg/catalog"
	"github.com/walteh/modgen/pkg/editor"
	"github.com/walteh/modgen/pkg/inspect"
	"github.com/walteh/modgen/pkg/locator"
	"github.com/walteh/modgen/pkg/menu"
	"github.com/walteh/modgen/pkg/symbols"
)

// Host is the editor side of a contextual generation request
type Host interface {
	// Language is the active project's language id, or "" without a project
	Language() string
	Buffer() buffer.Buffer
	// Model is the completion engine's model of the current file
	Model() *symbols.FileModel
}

// Item is one entry shown to the user. Invoke applies the toggle synchronously.
type Item struct {
	Label  string
	Action menu.ToggleAction
	Invoke func(ctx context.Context) error
}

// Generator answers "contextual generation requested at the cursor"
type Generator struct {
	registry *catalog.Registry
}

func New(registry *catalog.Registry) *Generator {
	return &Generator{registry: registry}
}

// Contextual builds the toggle menu for the declaration under the cursor.
// handled is false when there is nothing to offer; that is never an error.
func (me *Generator) Contextual(ctx context.Context, host Host) (items []Item, handled bool) {
	logger := zerolog.Ctx(ctx)

	if host == nil {
		return nil, false
	}
	caps, ok := me.registry.Lookup(host.Language())
	if !ok {
		logger.Debug().Str("language", host.Language()).Msg("no context: unsupported language")
		return nil, false
	}
	buf := host.Buffer()
	model := host.Model()
	if buf == nil || model == nil {
		logger.Debug().Msg("no context: no file")
		return nil, false
	}

	line := buf.LineFromOffset(buf.CursorOffset())
	found := locator.Locate(model, line)
	if !locator.IsValid(ctx, buf, found, caps) {
		logger.Debug().Int("line", line).Msg("cursor is not on a declaration header")
		return nil, false
	}

	state, ok := inspect.Inspect(ctx, buf, found, caps)
	if !ok {
		return nil, false
	}

	actions := menu.Build(ctx, state, caps)
	if len(actions) == 0 {
		return nil, false
	}

	ed := editor.New(buf, caps)
	items = make([]Item, 0, len(actions))
	for _, a := range actions {
		action := a
		items = append(items, Item{
			Label:  action.Label,
			Action: action,
			Invoke: func(ctx context.Context) error {
				return ed.Apply(ctx, action)
			},
		})
	}

	return items, true
}

// StaticHost is a Host over fixed values
type StaticHost struct {
	Lang string
	Buf  buffer.Buffer
	File *symbols.FileModel
}

var _ Host = (*StaticHost)(nil)

func (me *StaticHost) Language() string          { return me.Lang }
func (me *StaticHost) Buffer() buffer.Buffer     { return me.Buf }
func (me *StaticHost) Model() *symbols.FileModel { return me.File }
