/*
Package catalog holds the per-language modifier tables.

A Capabilities value answers every language question the rest of the engine asks:

	+--------------+      +-------------------------+
	| Capabilities | ---> | declaration start regex |
	+--------------+      +-------------------------+
	       |              | visibility keywords     |
	       |              | modifier tokens         |
	       v              | custom access order     |
	  menu / editor       +-------------------------+

Nothing here switches on a language name. New languages are new tables.
*/
package catalog

import (
	"regexp"
	"strings"
)

// Kind is the syntactic kind of a declaration
type Kind int

const (
	KindNone Kind = iota
	KindClass
	KindConstructor
	KindMethod
	KindField
)

func (k Kind) String() string {
	switch k {
	case KindClass:
		return "class"
	case KindConstructor:
		return "constructor"
	case KindMethod:
		return "method"
	case KindField:
		return "field"
	}
	return "none"
}

// KindSet is a set of declaration kinds a token may be applied to
type KindSet uint8

func Kinds(kinds ...Kind) KindSet {
	var s KindSet
	for _, k := range kinds {
		s |= 1 << uint(k)
	}
	return s
}

func (s KindSet) Has(k Kind) bool {
	return s&(1<<uint(k)) != 0
}

// Modifier identifies a non-visibility modifier concept
type Modifier int

const (
	ModifierStatic Modifier = iota + 1
	ModifierFinal
	ModifierExtern
	ModifierInline
	ModifierNoCompletion
)

func (m Modifier) String() string {
	switch m {
	case ModifierStatic:
		return "static"
	case ModifierFinal:
		return "final"
	case ModifierExtern:
		return "extern"
	case ModifierInline:
		return "inline"
	case ModifierNoCompletion:
		return "nocompletion"
	}
	return "unknown"
}

// PositionClass is where a token lives in a canonical declaration header
type PositionClass int

const (
	LeadingVisibility PositionClass = iota
	LeadingSpecial
	TrailingSpecial
	Metadata
)

// Placement tells the fixup passes where a token must end up
type Placement int

const (
	// PlacementFree tokens are never moved
	PlacementFree Placement = iota
	// PlacementLineStart tokens go first on their line, after the indentation
	PlacementLineStart
	// PlacementBeforeKeyword tokens go directly before the declaration keyword
	PlacementBeforeKeyword
)

// ModifierToken is one spelling of a modifier in a language
type ModifierToken struct {
	Modifier  Modifier
	Keyword   string
	Class     PositionClass
	Placement Placement
	Targets   KindSet

	pattern *regexp.Regexp
}

// NewModifierToken compiles the search pattern for keyword
func NewModifierToken(mod Modifier, keyword string, class PositionClass, placement Placement, targets KindSet) ModifierToken {
	return ModifierToken{
		Modifier:  mod,
		Keyword:   keyword,
		Class:     class,
		Placement: placement,
		Targets:   targets,
		pattern:   keywordPattern(keyword),
	}
}

func keywordPattern(keyword string) *regexp.Regexp {
	return regexp.MustCompile(regexp.QuoteMeta(keyword) + `(\s|$)`)
}

// Find returns the span of the first standalone occurrence of the token in text.
// The span covers the keyword only; ok is false when it does not occur.
func (t ModifierToken) Find(text string) (start, end int, ok bool) {
	return findKeyword(t.pattern, t.Keyword, text)
}

func findKeyword(re *regexp.Regexp, keyword, text string) (start, end int, ok bool) {
	if re == nil || keyword == "" {
		return 0, 0, false
	}
	for _, loc := range re.FindAllStringIndex(text, -1) {
		if loc[0] > 0 && isWordByte(text[loc[0]-1]) {
			continue
		}
		return loc[0], loc[0] + len(keyword), true
	}
	return 0, 0, false
}

func isWordByte(b byte) bool {
	return b == '_' || b == '@' || b == ':' || b == '$' ||
		('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z') || ('0' <= b && b <= '9')
}

// Capabilities is the immutable description of one language
type Capabilities struct {
	Name string

	// DeclarationStart matches the keyword that introduces a class or member
	DeclarationStart *regexp.Regexp

	ClassVisibilities  []string
	MemberVisibilities []string

	// ImplicitClassVisibility is never spelled out on classes
	ImplicitClassVisibility string
	// ImplicitMemberVisibility is omitted on members unless ExplicitPrivate is set
	ImplicitMemberVisibility string
	ExplicitPrivate          bool

	// CustomAccess are user declared access identifiers (namespaces)
	CustomAccess []string
	// AccessOrder is the display precedence of the visibility family
	AccessOrder []string

	StartWithModifiers bool

	tokens     map[Modifier]ModifierToken
	visibility *regexp.Regexp
}

// Token returns the language's spelling of mod, if the concept exists
func (c *Capabilities) Token(mod Modifier) (ModifierToken, bool) {
	t, ok := c.tokens[mod]
	return t, ok
}

// Supports reports whether mod exists and applies to declarations of kind k
func (c *Capabilities) Supports(mod Modifier, k Kind) bool {
	t, ok := c.tokens[mod]
	return ok && t.Targets.Has(k)
}

// Tokens returns the modifier tokens in a stable order
func (c *Capabilities) Tokens() []ModifierToken {
	out := make([]ModifierToken, 0, len(c.tokens))
	for _, mod := range []Modifier{ModifierStatic, ModifierFinal, ModifierExtern, ModifierInline, ModifierNoCompletion} {
		if t, ok := c.tokens[mod]; ok {
			out = append(out, t)
		}
	}
	return out
}

// Visibilities returns the allowed built-in visibilities for kind k
func (c *Capabilities) Visibilities(k Kind) []string {
	if k == KindClass {
		return c.ClassVisibilities
	}
	return c.MemberVisibilities
}

// VisibilityKeyword is the spelling used when a declaration of kind k is changed to vis.
// An empty result means the keyword is omitted.
func (c *Capabilities) VisibilityKeyword(k Kind, vis string) string {
	if c.OmitsVisibility(k, vis) {
		return ""
	}
	return vis
}

// OmitsVisibility reports whether vis is the implicit visibility for kind k
func (c *Capabilities) OmitsVisibility(k Kind, vis string) bool {
	if k == KindClass {
		return c.ImplicitClassVisibility != "" && vis == c.ImplicitClassVisibility
	}
	return !c.ExplicitPrivate && c.ImplicitMemberVisibility != "" && vis == c.ImplicitMemberVisibility
}

// FindVisibility returns the span of the first visibility keyword (built-in or custom) in text
func (c *Capabilities) FindVisibility(text string) (start, end int, ok bool) {
	if c.visibility == nil {
		return 0, 0, false
	}
	for _, loc := range c.visibility.FindAllStringSubmatchIndex(text, -1) {
		if loc[2] > 0 && isWordByte(text[loc[2]-1]) {
			continue
		}
		return loc[2], loc[3], true
	}
	return 0, 0, false
}

// IsVisibility reports whether word is a visibility keyword of this language
func (c *Capabilities) IsVisibility(word string) bool {
	for _, v := range c.allVisibilities() {
		if v == word {
			return true
		}
	}
	return false
}

// AccessIndex is the precedence of vis in AccessOrder, or -1 when it is not listed
func (c *Capabilities) AccessIndex(vis string) int {
	for i, v := range c.AccessOrder {
		if v == vis {
			return i
		}
	}
	return -1
}

// MatchStart finds the declaration start keyword in line.
// end includes the whitespace that follows the keyword.
func (c *Capabilities) MatchStart(line string) (start, end int, ok bool) {
	if c.DeclarationStart == nil {
		return 0, 0, false
	}
	for _, loc := range c.DeclarationStart.FindAllStringIndex(line, -1) {
		if loc[0] > 0 && isWordByte(line[loc[0]-1]) {
			continue
		}
		return loc[0], loc[1], true
	}
	return 0, 0, false
}

func (c *Capabilities) allVisibilities() []string {
	seen := map[string]bool{}
	var out []string
	for _, list := range [][]string{c.MemberVisibilities, c.ClassVisibilities, c.CustomAccess} {
		for _, v := range list {
			if v == "" || seen[v] {
				continue
			}
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

// compile builds the derived patterns; it must run before a Capabilities value is shared
func (c *Capabilities) compile() {
	vis := c.allVisibilities()
	if len(vis) == 0 {
		c.visibility = nil
		return
	}
	quoted := make([]string, len(vis))
	for i, v := range vis {
		quoted[i] = regexp.QuoteMeta(v)
	}
	c.visibility = regexp.MustCompile(`(` + strings.Join(quoted, "|") + `)(\s|$)`)
}
