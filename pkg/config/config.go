package config

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/spf13/afero"
	"github.com/walteh/modgen/pkg/catalog"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// 📝 Settings file structure
type Config struct {
	// 🔧 Move visibility keywords in front of other keywords after every toggle
	StartWithModifiers *bool `json:"start_with_modifiers,omitempty" yaml:"start_with_modifiers,omitempty" hcl:"start_with_modifiers,optional"`
	// 🔧 Spell out the implicit member visibility instead of dropping it
	ExplicitPrivate bool `json:"explicit_private,omitempty" yaml:"explicit_private,omitempty" hcl:"explicit_private,optional"`

	// 📝 Language tables
	Languages []*Language `json:"languages" yaml:"languages" hcl:"language,block"`
}

// 🎯 One language, derived from a built-in base table
type Language struct {
	Name string `json:"name" yaml:"name" hcl:"name,label"`
	// Base is the built-in table to start from; defaults to Name
	Base         string   `json:"base,omitempty" yaml:"base,omitempty" hcl:"base,optional"`
	Files        []string `json:"files,omitempty" yaml:"files,omitempty" hcl:"files,optional"`
	CustomAccess []string `json:"custom_access,omitempty" yaml:"custom_access,omitempty" hcl:"custom_access,optional"`
	AccessOrder  []string `json:"access_order,omitempty" yaml:"access_order,omitempty" hcl:"access_order,optional"`
	// ExplicitPrivate overrides the top level setting for this language
	ExplicitPrivate *bool `json:"explicit_private,omitempty" yaml:"explicit_private,omitempty" hcl:"explicit_private,optional"`
}

// Default is used when no settings file exists
func Default() *Config {
	return &Config{
		Languages: []*Language{
			{Name: "haxe", Files: []string{"**/*.hx"}},
			{Name: "as3", Files: []string{"**/*.as", "**/*.mxml"}},
		},
	}
}

// 📝 Load settings from file (supports YAML and HCL)
func Load(fs afero.Fs, path string) (*Config, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	cfg, err := Parse(path, data)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// Parse decodes data as YAML when path ends in .yaml or .yml, and as HCL otherwise
func Parse(path string, data []byte) (*Config, error) {
	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		var cfg Config
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, errors.Errorf("parsing YAML: %w", err)
		}
		return &cfg, nil
	}

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, path)
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(hclFile.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	return &cfg, nil
}

// Validate reports every problem in the config at once
func (cfg *Config) Validate() error {
	var result *multierror.Error

	known := map[string]bool{}
	for _, b := range catalog.BaseNames() {
		known[b] = true
	}

	names := map[string]bool{}
	for i, lang := range cfg.Languages {
		if lang == nil {
			continue
		}
		if lang.Name == "" {
			result = multierror.Append(result, errors.Errorf("language %d: missing name", i))
			continue
		}
		key := strings.ToLower(strings.TrimSpace(lang.Name))
		if names[key] {
			result = multierror.Append(result, errors.Errorf("language %q: declared twice", lang.Name))
		}
		names[key] = true

		if !known[strings.ToLower(strings.TrimSpace(lang.base()))] {
			result = multierror.Append(result, errors.Errorf("language %q: unknown base %q", lang.Name, lang.base()))
		}
		for _, pattern := range lang.Files {
			if !doublestar.ValidatePattern(pattern) {
				result = multierror.Append(result, errors.Errorf("language %q: bad file pattern %q", lang.Name, pattern))
			}
		}
	}

	return result.ErrorOrNil()
}

func (lang *Language) base() string {
	if lang.Base != "" {
		return lang.Base
	}
	return lang.Name
}

func (cfg *Config) startWithModifiers() bool {
	if cfg.StartWithModifiers == nil {
		return true
	}
	return *cfg.StartWithModifiers
}

// Options returns the catalog options for lang
func (cfg *Config) Options(lang *Language) catalog.Options {
	explicit := cfg.ExplicitPrivate
	if lang.ExplicitPrivate != nil {
		explicit = *lang.ExplicitPrivate
	}
	return catalog.Options{
		StartWithModifiers: cfg.startWithModifiers(),
		ExplicitPrivate:    explicit,
		CustomAccess:       lang.CustomAccess,
		AccessOrder:        lang.AccessOrder,
	}
}

// Registry builds the immutable language tables
func (cfg *Config) Registry() (*catalog.Registry, error) {
	var langs []*catalog.Capabilities
	for _, lang := range cfg.Languages {
		if lang == nil {
			continue
		}
		caps, err := catalog.Build(lang.Name, lang.base(), cfg.Options(lang))
		if err != nil {
			return nil, errors.Errorf("language %q: %w", lang.Name, err)
		}
		langs = append(langs, caps)
	}
	return catalog.NewRegistry(langs...), nil
}

// LanguageForPath returns the first language whose file patterns match path
func (cfg *Config) LanguageForPath(path string) (string, bool) {
	path = strings.TrimPrefix(filepath.ToSlash(path), "/")
	for _, lang := range cfg.Languages {
		if lang == nil {
			continue
		}
		for _, pattern := range lang.Files {
			ok, err := doublestar.Match(pattern, path)
			if err == nil && ok {
				return lang.Name, true
			}
		}
	}
	return "", false
}
