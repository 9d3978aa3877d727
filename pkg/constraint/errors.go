package constraint

import (
	"fmt"
	"strings"

	"github.com/aretw0/typedclass/pkg/domain"
)

// MismatchError reports a value that does not satisfy its field's constraint.
type MismatchError struct {
	Field      string     // Field name
	Owner      string     // Name of the structure declaring the field
	Constraint Constraint // The constraint that rejected the value
	Value      any        // The rejected value
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("field %q in %s must be %s, not %s",
		e.Field, e.Owner, Describe(e.Constraint), e.actual())
}

// Is reports whether target is domain.ErrTypeMismatch.
func (e *MismatchError) Is(target error) bool {
	return target == domain.ErrTypeMismatch
}

// Literal and subtype constraints constrain values rather than types, so the
// offending value itself is more useful than its type.
func (e *MismatchError) actual() string {
	if e.Constraint != nil {
		switch e.Constraint.Kind() {
		case KindLiteral, KindSubtype:
			return FormatValue(e.Value)
		}
	}
	return TypeName(e.Value)
}

// Describe renders the expected-type phrase for a constraint, as used in
// mismatch messages (e.g. "nil or string", "exactly one of 1, 2").
func Describe(c Constraint) string {
	switch c := c.(type) {
	case *ExactConstraint:
		if c.Type == nil {
			return "nil"
		}
		return "an instance of " + c.Type.String()
	case *NoneConstraint:
		return "nil"
	case *OptionalConstraint:
		return "nil or " + noun(c.Elem)
	case *UnionConstraint:
		if elem, ok := c.OptionalForm(); ok {
			return "nil or " + noun(elem)
		}
		return "an instance of one of " + nouns(c.Options)
	case *LiteralConstraint:
		return "exactly one of " + formatValues(c.Values)
	case *SubtypeConstraint:
		return "a type derived from " + typeString(c.Base)
	case *AnyConstraint, nil:
		return "anything"
	default:
		return c.String()
	}
}

// noun is the short form of a constraint used inside compound descriptions.
func noun(c Constraint) string {
	switch c := c.(type) {
	case *ExactConstraint:
		return typeString(c.Type)
	case *NoneConstraint:
		return "nil"
	case *UnionConstraint:
		if _, ok := c.OptionalForm(); !ok {
			return "one of " + nouns(c.Options)
		}
	case *LiteralConstraint, *SubtypeConstraint:
		return c.String()
	}
	return Describe(c)
}

func nouns(cs []Constraint) string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = noun(c)
	}
	return strings.Join(parts, ", ")
}
