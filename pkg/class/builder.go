package class

import "github.com/aretw0/typedclass/pkg/constraint"

// Builder declares a structure's fields through a fluent API.
type Builder struct {
	name     string
	decls    []FieldDecl
	index    map[string]int
	registry *Registry
}

// Define starts the declaration of a structure.
func Define(name string) *Builder {
	return &Builder{
		name:  name,
		index: make(map[string]int),
	}
}

// Field declares a field without a default.
// Declaring an existing name again replaces it in place.
func (b *Builder) Field(name string, c constraint.Constraint) *Builder {
	return b.put(FieldDecl{Name: name, Constraint: c})
}

// Default declares a field with a default value.
func (b *Builder) Default(name string, c constraint.Constraint, value any) *Builder {
	return b.put(FieldDecl{Name: name, Constraint: c, HasDefault: true, Default: value})
}

func (b *Builder) put(decl FieldDecl) *Builder {
	if i, ok := b.index[decl.Name]; ok {
		b.decls[i] = decl
		return b
	}
	b.index[decl.Name] = len(b.decls)
	b.decls = append(b.decls, decl)
	return b
}

// Fields implements FieldProvider.
func (b *Builder) Fields() ([]FieldDecl, error) {
	out := make([]FieldDecl, len(b.decls))
	copy(out, b.decls)
	return out, nil
}

// Build registers the declared structure, in the registry the builder was
// started from when there is one.
func (b *Builder) Build(opts ...Option) (*Metadata, error) {
	if b.registry != nil {
		return b.registry.Register(b.name, b, opts...)
	}
	return Register(b.name, b, opts...)
}
