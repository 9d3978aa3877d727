// Package manifest loads structure definitions from YAML (or JSON) files.
//
// A manifest lists structures in dependency order:
//
//	structures:
//	  - name: User
//	    options: {ignore_extra: true}
//	    fields:
//	      - name: id
//	        type: int
//	      - name: email
//	        type: Optional[string]
//	        default: null
//	  - name: Admin
//	    extends: User
//	    fields:
//	      - name: level
//	        type: Literal[1, 2, 3]
//
// A field is optional exactly when its "default" key is present, even when
// the value is null. An empty type means Any.
package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/typedclass/pkg/class"
	"github.com/aretw0/typedclass/pkg/constraint"
	"github.com/aretw0/typedclass/pkg/domain"
)

// Manifest represents the structure of structures.yaml.
type Manifest struct {
	Structures []Structure `yaml:"structures" json:"structures"`
}

// Structure is one structure definition.
type Structure struct {
	Name        string         `yaml:"name" json:"name"`
	Description string         `yaml:"description,omitempty" json:"description,omitempty"`
	Extends     string         `yaml:"extends,omitempty" json:"extends,omitempty"`
	Options     map[string]any `yaml:"options,omitempty" json:"options,omitempty"`
	Fields      []Field        `yaml:"fields" json:"fields"`
}

// Field is one field definition.
type Field struct {
	Name       string `yaml:"name" json:"name"`
	Type       string `yaml:"type,omitempty" json:"type,omitempty"`
	Default    any    `yaml:"default,omitempty" json:"default,omitempty"`
	HasDefault bool   `yaml:"-" json:"-"`
}

// UnmarshalYAML records whether the "default" key was present.
func (f *Field) UnmarshalYAML(node *yaml.Node) error {
	type plain Field
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*f = Field(p)
	if node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i]
		switch key.Value {
		case "name", "type":
		case "default":
			f.HasDefault = true
		default:
			return fmt.Errorf("line %d: field %q not found in field definition", key.Line, key.Value)
		}
	}
	return nil
}

// Load reads and parses a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return m, nil
}

// Parse decodes a manifest. JSON input is accepted as YAML.
// Unknown keys are rejected.
func Parse(data []byte) (*Manifest, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var m Manifest
	if err := dec.Decode(&m); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return &m, nil
}

// Apply registers every structure of the manifest into reg, in order.
// An extends entry must name a structure already present in reg.
func (m *Manifest) Apply(reg *class.Registry, table *constraint.TypeTable) ([]*class.Metadata, error) {
	if table == nil {
		table = constraint.NewTypeTable()
	}

	out := make([]*class.Metadata, 0, len(m.Structures))
	for _, s := range m.Structures {
		opts, err := s.options(reg)
		if err != nil {
			return out, err
		}
		decls, err := s.Decls(table)
		if err != nil {
			return out, err
		}
		md, err := reg.Register(s.Name, decls, opts...)
		if err != nil {
			return out, err
		}
		out = append(out, md)
	}
	return out, nil
}

// Decls resolves the field types of s against table.
func (s Structure) Decls(table *constraint.TypeTable) (class.Decls, error) {
	decls := make(class.Decls, 0, len(s.Fields))
	for _, f := range s.Fields {
		c := constraint.Any()
		if f.Type != "" {
			parsed, err := constraint.Parse(f.Type, table)
			if err != nil {
				return nil, fmt.Errorf("structure %s, field %s: %w", s.Name, f.Name, err)
			}
			c = parsed
		}
		decls = append(decls, class.FieldDecl{
			Name:       f.Name,
			Constraint: c,
			HasDefault: f.HasDefault,
			Default:    f.Default,
		})
	}
	return decls, nil
}

// Config decodes the options map over class.DefaultConfig.
func (s Structure) Config() (class.Config, error) {
	cfg := class.DefaultConfig()
	if len(s.Options) == 0 {
		return cfg, nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &cfg,
		ErrorUnused: true,
	})
	if err != nil {
		return cfg, err
	}
	if err := decoder.Decode(s.Options); err != nil {
		return cfg, fmt.Errorf("%w: structure %s options: %v", domain.ErrInvalidDefinition, s.Name, err)
	}
	return cfg, nil
}

func (s Structure) options(reg *class.Registry) ([]class.Option, error) {
	cfg, err := s.Config()
	if err != nil {
		return nil, err
	}
	opts := []class.Option{class.WithConfig(cfg)}

	if s.Extends != "" {
		parent, ok := reg.Lookup(s.Extends)
		if !ok {
			return nil, fmt.Errorf("%w: structure %s extends %s which is not defined",
				domain.ErrUnknownStructure, s.Name, s.Extends)
		}
		opts = append(opts, class.Extends(parent))
	}
	return opts, nil
}
