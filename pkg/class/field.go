package class

import "github.com/aretw0/typedclass/pkg/constraint"

// FieldDecl is one declared field as reported by a FieldProvider.
type FieldDecl struct {
	Name       string
	Constraint constraint.Constraint
	HasDefault bool
	Default    any
}

// FieldProvider supplies a structure's field declarations in declaration order.
type FieldProvider interface {
	Fields() ([]FieldDecl, error)
}

// Decls is a FieldProvider backed by an explicit list of declarations.
type Decls []FieldDecl

// Fields returns the declarations unchanged.
func (d Decls) Fields() ([]FieldDecl, error) {
	return d, nil
}

// Field describes a registered field.
type Field struct {
	Name       string
	Constraint constraint.Constraint
	Required   bool
	HasDefault bool
	Default    any
}
