package workspace

import (
	"context"
	"strings"

	"github.com/editorconfig/editorconfig-core-go/v2"
	"github.com/rs/zerolog"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/afero"
	"github.com/walteh/modgen/pkg/buffer"
	"github.com/walteh/modgen/pkg/catalog"
	"github.com/walteh/modgen/pkg/config"
	"github.com/walteh/modgen/pkg/generator"
	"github.com/walteh/modgen/pkg/symbols"
	"gitlab.com/tozd/go/errors"
)

// Options locate everything a command line request needs
type Options struct {
	File     string
	Outline  string
	Config   string
	Position string
	// Language overrides outline and file pattern detection
	Language string
}

// Session is one file opened for a contextual generation request.
// It plays the host role for the generator.
type Session struct {
	fs       afero.Fs
	path     string
	original string

	Config   *config.Config
	Registry *catalog.Registry
	Buffer   *buffer.TextBuffer
	Model    *symbols.FileModel
	Language string
}

// Open loads settings, source and outline and places the cursor
func Open(ctx context.Context, fs afero.Fs, opts Options) (*Session, error) {
	cfg := config.Default()
	if opts.Config != "" {
		loaded, err := config.Load(fs, opts.Config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	registry, err := cfg.Registry()
	if err != nil {
		return nil, errors.Errorf("building language tables: %w", err)
	}

	buf, err := buffer.Load(fs, opts.File)
	if err != nil {
		return nil, err
	}

	model, err := symbols.LoadOutline(fs, opts.Outline)
	if err != nil {
		return nil, err
	}

	s := &Session{
		fs:       fs,
		path:     opts.File,
		original: buf.String(),
		Config:   cfg,
		Registry: registry,
		Buffer:   buf,
		Model:    model,
		Language: detectLanguage(cfg, model, opts),
	}

	if opts.Position != "" {
		place, err := buffer.ParsePlace(opts.Position)
		if err != nil {
			return nil, err
		}
		offset, err := buffer.OffsetOf(buf, place)
		if err != nil {
			return nil, errors.Errorf("cursor %s: %w", place, err)
		}
		buf.SetCursor(offset)
	}

	zerolog.Ctx(ctx).Debug().
		Str("file", opts.File).
		Str("language", s.Language).
		Int("cursor", buf.CursorOffset()).
		Int("classes", len(model.Classes)).
		Msg("opened session")

	return s, nil
}

func detectLanguage(cfg *config.Config, model *symbols.FileModel, opts Options) string {
	if opts.Language != "" {
		return opts.Language
	}
	if model.Language != "" {
		return model.Language
	}
	if lang, ok := cfg.LanguageForPath(opts.File); ok {
		return lang
	}
	return ""
}

// Host exposes the session to the generator
func (s *Session) Host() generator.Host {
	return &generator.StaticHost{
		Lang: s.Language,
		Buf:  s.Buffer,
		File: s.Model,
	}
}

// Changed reports whether the buffer differs from the file as loaded
func (s *Session) Changed() bool {
	return s.Buffer.String() != s.original
}

// Diff renders the changed lines between the loaded file and the buffer
func (s *Session) Diff() string {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(s.original, s.Buffer.String())
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var sb strings.Builder
	for _, d := range diffs {
		var prefix string
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		default:
			continue
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			sb.WriteString(prefix)
			sb.WriteString(strings.TrimRight(line, "\r\n"))
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// Save writes the buffer back, using the editorconfig end_of_line of the file when one applies
func (s *Session) Save(ctx context.Context) error {
	eol := EndOfLine(ctx, s.path)
	if err := buffer.Save(s.fs, s.path, s.Buffer, eol); err != nil {
		return err
	}
	s.original = s.Buffer.String()
	return nil
}

// EndOfLine resolves the editorconfig end_of_line for path, or "" when none is set
func EndOfLine(ctx context.Context, path string) string {
	def, err := editorconfig.GetDefinitionForFilename(path)
	if err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Str("file", path).Msg("no editorconfig definition")
		return ""
	}
	switch def.EndOfLine {
	case editorconfig.EndOfLineLf:
		return "\n"
	case editorconfig.EndOfLineCrLf:
		return "\r\n"
	case editorconfig.EndOfLineCr:
		return "\r"
	}
	return ""
}
