package class

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/aretw0/typedclass/pkg/constraint"
	"github.com/aretw0/typedclass/pkg/domain"
)

// Metadata is the immutable description of a registered structure.
type Metadata struct {
	name     string
	params   []string
	required *bucket
	optional *bucket
	defaults map[string]any
	config   Config
	parent   *Metadata
}

// Register builds the metadata of a structure from the fields reported by provider.
//
// Fields are visited in declaration order. Names of the form __x__ are
// reserved and skipped, as are names starting with "_" unless
// IgnoreInternal(false) is given. A field with a default lands in the
// optional bucket, any other field in the required bucket; with Extends, a
// redeclared parent field moves between buckets accordingly.
//
// Register is not safe to call concurrently for the same structure.
func Register(name string, provider FieldProvider, opts ...Option) (*Metadata, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: structure name is required", domain.ErrInvalidDefinition)
	}

	s := newSettings(opts)

	var decls []FieldDecl
	if provider != nil {
		var err error
		decls, err = provider.Fields()
		if err != nil {
			return nil, fmt.Errorf("failed to read fields of %s: %w", name, err)
		}
	}

	md := &Metadata{
		name:     name,
		required: newBucket(),
		optional: newBucket(),
		defaults: make(map[string]any),
		config:   s.config,
		parent:   s.parent,
	}
	if p := s.parent; p != nil {
		md.params = slices.Clone(p.params)
		md.required = p.required.clone()
		md.optional = p.optional.clone()
		md.defaults = maps.Clone(p.defaults)
	}

	seen := make(map[string]bool, len(decls))
	for _, d := range decls {
		if d.Name == "" {
			return nil, fmt.Errorf("%w: %s declares a field without a name", domain.ErrInvalidDefinition, name)
		}
		if seen[d.Name] {
			return nil, fmt.Errorf("%w: %s declares field %q twice", domain.ErrInvalidDefinition, name, d.Name)
		}
		seen[d.Name] = true

		if isReserved(d.Name) {
			continue
		}
		if isInternal(d.Name) && s.config.IgnoreInternal {
			continue
		}

		if err := constraint.Validate(d.Constraint); err != nil {
			return nil, fmt.Errorf("%w: %s field %q: %w", domain.ErrInvalidDefinition, name, d.Name, err)
		}
		if !constraint.Supported(d.Constraint) {
			s.logger.Warn("unsupported constraint accepts any value",
				"structure", name,
				"field", d.Name,
				"constraint", describeConstraint(d.Constraint))
		}

		if d.HasDefault {
			md.required.remove(d.Name)
			md.optional.set(d.Name, d.Constraint)
			md.defaults[d.Name] = d.Default
		} else {
			md.optional.remove(d.Name)
			md.required.set(d.Name, d.Constraint)
			delete(md.defaults, d.Name)
		}

		if !slices.Contains(md.params, d.Name) {
			md.params = append(md.params, d.Name)
		}
	}

	s.logger.Debug("structure registered",
		"structure", name,
		"required", md.required.names,
		"optional", md.optional.names)

	return md, nil
}

// Name returns the structure name.
func (m *Metadata) Name() string { return m.name }

// Config returns the structure configuration.
func (m *Metadata) Config() Config { return m.config }

// Parent returns the structure this one extends, or nil.
func (m *Metadata) Parent() *Metadata { return m.parent }

// Params returns every field name in declaration order.
func (m *Metadata) Params() []string { return slices.Clone(m.params) }

// RequiredNames returns the required fields in binding order.
func (m *Metadata) RequiredNames() []string { return slices.Clone(m.required.names) }

// OptionalNames returns the optional fields in binding order.
func (m *Metadata) OptionalNames() []string { return slices.Clone(m.optional.names) }

// Default returns the default value of an optional field.
func (m *Metadata) Default(name string) (any, bool) {
	v, ok := m.defaults[name]
	return v, ok
}

// Field returns the description of a declared field.
func (m *Metadata) Field(name string) (Field, bool) {
	if c, ok := m.required.constraints[name]; ok {
		return Field{Name: name, Constraint: c, Required: true}, true
	}
	if c, ok := m.optional.constraints[name]; ok {
		return Field{Name: name, Constraint: c, HasDefault: true, Default: m.defaults[name]}, true
	}
	return Field{}, false
}

// Fields returns every declared field in declaration order.
func (m *Metadata) Fields() []Field {
	fields := make([]Field, 0, len(m.params))
	for _, name := range m.params {
		if f, ok := m.Field(name); ok {
			fields = append(fields, f)
		}
	}
	return fields
}

// isReserved reports names of the form __x__.
func isReserved(name string) bool {
	return len(name) > 4 && strings.HasPrefix(name, "__") && strings.HasSuffix(name, "__")
}

func isInternal(name string) bool {
	return strings.HasPrefix(name, "_")
}

func describeConstraint(c constraint.Constraint) string {
	if c == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s (%T)", c.String(), c)
}

// bucket is an insertion-ordered name to constraint map.
type bucket struct {
	names       []string
	constraints map[string]constraint.Constraint
}

func newBucket() *bucket {
	return &bucket{constraints: make(map[string]constraint.Constraint)}
}

// set keeps the position of an existing name.
func (b *bucket) set(name string, c constraint.Constraint) {
	if _, ok := b.constraints[name]; !ok {
		b.names = append(b.names, name)
	}
	b.constraints[name] = c
}

func (b *bucket) remove(name string) {
	if _, ok := b.constraints[name]; !ok {
		return
	}
	delete(b.constraints, name)
	b.names = slices.DeleteFunc(b.names, func(n string) bool { return n == name })
}

func (b *bucket) clone() *bucket {
	return &bucket{
		names:       slices.Clone(b.names),
		constraints: maps.Clone(b.constraints),
	}
}
