package constraint

import (
	"reflect"
	"strings"
)

// Kind identifies the shape of a constraint.
type Kind uint8

const (
	KindAny Kind = iota
	KindNone
	KindExact
	KindOptional
	KindUnion
	KindLiteral
	KindSubtype
)

func (k Kind) String() string {
	switch k {
	case KindAny:
		return "any"
	case KindNone:
		return "none"
	case KindExact:
		return "exact"
	case KindOptional:
		return "optional"
	case KindUnion:
		return "union"
	case KindLiteral:
		return "literal"
	case KindSubtype:
		return "subtype"
	default:
		return "unknown"
	}
}

// Constraint defines the validation rule attached to a declared field.
type Constraint interface {
	// Kind reports which matching rule applies.
	Kind() Kind
	// String returns the constraint as an expression accepted by Parse.
	String() string
}

// --- Built-in Constraint Implementations ---

// AnyConstraint accepts every value.
type AnyConstraint struct{}

func (c *AnyConstraint) Kind() Kind     { return KindAny }
func (c *AnyConstraint) String() string { return "Any" }

// NoneConstraint accepts only absent values.
type NoneConstraint struct{}

func (c *NoneConstraint) Kind() Kind     { return KindNone }
func (c *NoneConstraint) String() string { return "None" }

// ExactConstraint requires the value to be an instance of Type.
type ExactConstraint struct {
	Type reflect.Type
}

func (c *ExactConstraint) Kind() Kind     { return KindExact }
func (c *ExactConstraint) String() string {
	if c.Type == nil {
		return "None"
	}
	return c.Type.String()
}

// OptionalConstraint accepts absent values or values satisfying Elem.
type OptionalConstraint struct {
	Elem Constraint
}

func (c *OptionalConstraint) Kind() Kind { return KindOptional }

func (c *OptionalConstraint) String() string {
	return "Optional[" + stringOf(c.Elem) + "]"
}

// UnionConstraint accepts values satisfying at least one of Options.
type UnionConstraint struct {
	Options []Constraint
}

func (c *UnionConstraint) Kind() Kind { return KindUnion }

func (c *UnionConstraint) String() string {
	if elem, ok := c.OptionalForm(); ok {
		return "Optional[" + stringOf(elem) + "]"
	}
	parts := make([]string, len(c.Options))
	for i, opt := range c.Options {
		parts[i] = stringOf(opt)
	}
	return "Union[" + strings.Join(parts, ", ") + "]"
}

// OptionalForm reports whether the union is the two-branch "C or None" form.
func (c *UnionConstraint) OptionalForm() (Constraint, bool) {
	if len(c.Options) != 2 {
		return nil, false
	}
	if c.Options[1] == nil || c.Options[1].Kind() != KindNone {
		return nil, false
	}
	return c.Options[0], true
}

// LiteralConstraint requires the value to be identical to one of Values.
type LiteralConstraint struct {
	Values []any
}

func (c *LiteralConstraint) Kind() Kind { return KindLiteral }

func (c *LiteralConstraint) String() string {
	return "Literal[" + formatValues(c.Values) + "]"
}

// SubtypeConstraint requires the value to be a reflect.Type that is Base or derives from it.
type SubtypeConstraint struct {
	Base reflect.Type
}

func (c *SubtypeConstraint) Kind() Kind     { return KindSubtype }
func (c *SubtypeConstraint) String() string { return "SubtypeOf[" + typeString(c.Base) + "]" }

func typeString(t reflect.Type) string {
	if t == nil {
		return "nil"
	}
	return t.String()
}

// --- Factory Functions ---

// Any creates a constraint accepting every value.
func Any() Constraint { return &AnyConstraint{} }

// None creates a constraint accepting only absent values.
func None() Constraint { return &NoneConstraint{} }

// Exact creates a constraint requiring an instance of t.
// A nil type denotes the absence type and yields None().
func Exact(t reflect.Type) Constraint {
	if t == nil {
		return None()
	}
	return &ExactConstraint{Type: t}
}

// ExactOf creates a constraint requiring an instance of T.
func ExactOf[T any]() Constraint {
	return Exact(reflect.TypeFor[T]())
}

// Optional creates a constraint accepting nil or values satisfying elem.
func Optional(elem Constraint) Constraint {
	return &OptionalConstraint{Elem: elem}
}

// Union creates a constraint accepting values that satisfy any of options, tried in order.
func Union(options ...Constraint) Constraint {
	return &UnionConstraint{Options: options}
}

// Literal creates a constraint accepting only values identical to one of values.
func Literal(values ...any) Constraint {
	return &LiteralConstraint{Values: values}
}

// SubtypeOf creates a constraint accepting reflect.Type values equal to or deriving from base.
func SubtypeOf(base reflect.Type) Constraint {
	return &SubtypeConstraint{Base: base}
}

func stringOf(c Constraint) string {
	if c == nil {
		return "Any"
	}
	return c.String()
}
