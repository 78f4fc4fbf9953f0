package catalog

import (
	"regexp"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// Options are the user settings layered on top of a base language table
type Options struct {
	StartWithModifiers bool
	ExplicitPrivate    bool
	CustomAccess       []string
	AccessOrder        []string
}

// Haxe returns the Haxe table
func Haxe(opts Options) *Capabilities {
	c := &Capabilities{
		Name:                     "haxe",
		DeclarationStart:         regexp.MustCompile(`(class|interface|abstract|enum|typedef|var|function)\s`),
		ClassVisibilities:        []string{"public", "private"},
		MemberVisibilities:       []string{"public", "private"},
		ImplicitClassVisibility:  "public",
		ImplicitMemberVisibility: "private",
		ExplicitPrivate:          opts.ExplicitPrivate,
		AccessOrder:              orDefault(opts.AccessOrder, []string{"public", "private"}),
		StartWithModifiers:       opts.StartWithModifiers,
		tokens: tokenTable(
			NewModifierToken(ModifierStatic, "static", LeadingSpecial, PlacementFree, Kinds(KindMethod, KindField)),
			NewModifierToken(ModifierFinal, "@:final", LeadingSpecial, PlacementLineStart, Kinds(KindClass, KindMethod)),
			NewModifierToken(ModifierExtern, "extern", LeadingSpecial, PlacementFree, Kinds(KindClass)),
			NewModifierToken(ModifierInline, "inline", TrailingSpecial, PlacementBeforeKeyword, Kinds(KindMethod)),
			NewModifierToken(ModifierNoCompletion, "@:noCompletion", Metadata, PlacementLineStart, Kinds(KindMethod, KindField)),
		),
	}
	c.compile()
	return c
}

// ActionScript3 returns the ActionScript 3 table. AS3 has no inline or completion metadata,
// but supports user declared namespaces as access identifiers.
func ActionScript3(opts Options) *Capabilities {
	c := &Capabilities{
		Name:                     "as3",
		DeclarationStart:         regexp.MustCompile(`(class|interface|var|const|function)\s`),
		ClassVisibilities:        []string{"public", "internal"},
		MemberVisibilities:       []string{"public", "protected", "internal", "private"},
		ImplicitClassVisibility:  "internal",
		ImplicitMemberVisibility: "internal",
		ExplicitPrivate:          opts.ExplicitPrivate,
		CustomAccess:             dedupe(opts.CustomAccess),
		AccessOrder:              orDefault(opts.AccessOrder, []string{"public", "protected", "internal", "private"}),
		StartWithModifiers:       opts.StartWithModifiers,
		tokens: tokenTable(
			NewModifierToken(ModifierStatic, "static", LeadingSpecial, PlacementFree, Kinds(KindMethod, KindField)),
			NewModifierToken(ModifierFinal, "final", LeadingSpecial, PlacementLineStart, Kinds(KindClass, KindMethod)),
		),
	}
	c.compile()
	return c
}

// Registry maps language names to their capability tables
type Registry struct {
	langs []*Capabilities
}

type Builder func(Options) *Capabilities

var builders = map[string]Builder{
	"haxe": Haxe,
	"as3":  ActionScript3,
}

// BaseNames lists the built-in language tables
func BaseNames() []string {
	return []string{"haxe", "as3"}
}

// Build returns the base table named base with opts applied under a new name.
// Names are stored lowercased, the form Lookup compares against.
func Build(name, base string, opts Options) (*Capabilities, error) {
	b, ok := builders[strings.ToLower(strings.TrimSpace(base))]
	if !ok {
		return nil, errors.Errorf("unknown base language %q", base)
	}
	c := b(opts)
	if name = strings.ToLower(strings.TrimSpace(name)); name != "" {
		c.Name = name
	}
	return c, nil
}

func NewRegistry(langs ...*Capabilities) *Registry {
	return &Registry{langs: langs}
}

// DefaultRegistry has every built-in table with default options
func DefaultRegistry() *Registry {
	opts := Options{StartWithModifiers: true}
	return NewRegistry(Haxe(opts), ActionScript3(opts))
}

// Lookup finds the table for a host language id. Ids are matched by prefix, so
// "haxe3" and "haxe4" both resolve to "haxe".
func (r *Registry) Lookup(language string) (*Capabilities, bool) {
	language = strings.ToLower(strings.TrimSpace(language))
	if language == "" {
		return nil, false
	}
	for _, c := range r.langs {
		if c.Name == language {
			return c, true
		}
	}
	for _, c := range r.langs {
		if strings.HasPrefix(language, c.Name) {
			return c, true
		}
	}
	return nil, false
}

func (r *Registry) Languages() []*Capabilities {
	return r.langs
}

func tokenTable(tokens ...ModifierToken) map[Modifier]ModifierToken {
	m := make(map[Modifier]ModifierToken, len(tokens))
	for _, t := range tokens {
		m[t.Modifier] = t
	}
	return m
}

func orDefault(v, def []string) []string {
	if len(v) == 0 {
		return def
	}
	return dedupe(v)
}

func dedupe(v []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(v))
	for _, s := range v {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
