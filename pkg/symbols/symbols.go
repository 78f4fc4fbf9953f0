package symbols

import (
	"strings"
)

// Flags describes what a class or member is, as reported by the completion engine
type Flags uint32

const (
	FlagClass Flags = 1 << iota
	FlagInterface
	FlagFunction
	FlagConstructor
	FlagVariable
	FlagGetter
	FlagSetter
	FlagConstant
	FlagLocalVar
	FlagStatic
	FlagFinal
	FlagExtern
)

var flagNames = []struct {
	flag Flags
	name string
}{
	{FlagClass, "class"},
	{FlagInterface, "interface"},
	{FlagFunction, "function"},
	{FlagConstructor, "constructor"},
	{FlagVariable, "variable"},
	{FlagGetter, "getter"},
	{FlagSetter, "setter"},
	{FlagConstant, "constant"},
	{FlagLocalVar, "localvar"},
	{FlagStatic, "static"},
	{FlagFinal, "final"},
	{FlagExtern, "extern"},
}

// Has reports whether any of the given flags is set
func (f Flags) Has(flags Flags) bool {
	return f&flags != 0
}

func (f Flags) String() string {
	var names []string
	for _, fn := range flagNames {
		if f&fn.flag != 0 {
			names = append(names, fn.name)
		}
	}
	return strings.Join(names, "|")
}

// ParseFlag returns the flag with the given name, or 0 if unknown
func ParseFlag(name string) Flags {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, fn := range flagNames {
		if fn.name == name {
			return fn.flag
		}
	}
	return 0
}

// Access is the visibility bit set of a class or member
type Access uint32

const (
	AccessPublic Access = 1 << iota
	AccessPrivate
	AccessProtected
	AccessInternal
	// AccessNamespace marks a custom access identifier, spelled by Member.Namespace
	AccessNamespace
)

var accessNames = []struct {
	access Access
	name   string
}{
	{AccessPublic, "public"},
	{AccessPrivate, "private"},
	{AccessProtected, "protected"},
	{AccessInternal, "internal"},
	{AccessNamespace, "namespace"},
}

func (a Access) String() string {
	for _, an := range accessNames {
		if a&an.access != 0 {
			return an.name
		}
	}
	return ""
}

// ParseAccess returns the access bit for a built-in visibility name, or 0
func ParseAccess(name string) Access {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, an := range accessNames {
		if an.name == name {
			return an.access
		}
	}
	return 0
}

// Member is a class or class member extent with its engine metadata
type Member struct {
	Name      string
	LineFrom  int
	LineTo    int
	Flags     Flags
	Access    Access
	Namespace string
}

// Contains reports whether line falls within the member's line range
func (m *Member) Contains(line int) bool {
	return m != nil && m.LineFrom <= line && line <= m.LineTo
}

// Visibility returns the visibility name of the member, or "" when the engine reported none
func (m *Member) Visibility() string {
	if m.Access&AccessNamespace != 0 && m.Namespace != "" {
		return m.Namespace
	}
	return m.Access.String()
}

// Class is a class declaration and its ordered members
type Class struct {
	Member
	Members []*Member
}

// FileModel is the completion engine's view of one source file
type FileModel struct {
	Path     string
	Language string
	Classes  []*Class
}
