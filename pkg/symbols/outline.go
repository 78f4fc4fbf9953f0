package symbols

import (
	"bytes"
	"io"

	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// outline files are what an external completion engine hands us for a source file:
//
//	path: src/Foo.hx
//	language: haxe
//	classes:
//	  - name: Foo
//	    lines: [2, 20]
//	    flags: [class]
//	    access: public
//	    members:
//	      - name: bar
//	        lines: [4, 6]
//	        flags: [function, static]
//	        access: private
type outlineFile struct {
	Path     string          `yaml:"path"`
	Language string          `yaml:"language"`
	Classes  []*outlineClass `yaml:"classes"`
}

type outlineMember struct {
	Name      string   `yaml:"name"`
	Lines     []int    `yaml:"lines"`
	Flags     []string `yaml:"flags"`
	Access    string   `yaml:"access"`
	Namespace string   `yaml:"namespace,omitempty"`
}

type outlineClass struct {
	outlineMember `yaml:",inline"`
	Members       []*outlineMember `yaml:"members"`
}

// LoadOutline reads a YAML outline file from fs
func LoadOutline(fs afero.Fs, path string) (*FileModel, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Errorf("reading outline file: %w", err)
	}

	model, err := DecodeOutline(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Errorf("decoding outline %s: %w", path, err)
	}

	return model, nil
}

// DecodeOutline decodes a YAML outline into a FileModel
func DecodeOutline(r io.Reader) (*FileModel, error) {
	var raw outlineFile
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&raw); err != nil {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}

	model := &FileModel{
		Path:     raw.Path,
		Language: raw.Language,
	}

	for i, rc := range raw.Classes {
		if rc == nil {
			continue
		}
		cm, err := rc.outlineMember.toMember()
		if err != nil {
			return nil, errors.Errorf("class %d: %w", i, err)
		}
		cm.Flags |= FlagClass
		class := &Class{Member: *cm}
		for j, rm := range rc.Members {
			if rm == nil {
				continue
			}
			m, err := rm.toMember()
			if err != nil {
				return nil, errors.Errorf("class %d member %d: %w", i, j, err)
			}
			class.Members = append(class.Members, m)
		}
		model.Classes = append(model.Classes, class)
	}

	return model, nil
}

func (me *outlineMember) toMember() (*Member, error) {
	if len(me.Lines) != 2 {
		return nil, errors.Errorf("%q: lines must be [from, to], got %v", me.Name, me.Lines)
	}
	if me.Lines[0] < 0 || me.Lines[0] > me.Lines[1] {
		return nil, errors.Errorf("%q: invalid line range %v", me.Name, me.Lines)
	}

	m := &Member{
		Name:      me.Name,
		LineFrom:  me.Lines[0],
		LineTo:    me.Lines[1],
		Namespace: me.Namespace,
	}

	for _, name := range me.Flags {
		f := ParseFlag(name)
		if f == 0 {
			return nil, errors.Errorf("%q: unknown flag %q", me.Name, name)
		}
		m.Flags |= f
	}

	if me.Access != "" {
		a := ParseAccess(me.Access)
		if a == 0 {
			// anything else is a custom access identifier
			a = AccessNamespace
			m.Namespace = me.Access
		}
		m.Access = a
	}

	return m, nil
}
