package constraint

import (
	"fmt"
	"reflect"

	"github.com/aretw0/typedclass/pkg/domain"
)

// Match checks value against c on behalf of field in the structure owner.
// It returns nil when the value is accepted and a *MismatchError otherwise.
func Match(value any, c Constraint, field, owner string) error {
	if Accepts(value, c) {
		return nil
	}
	return &MismatchError{
		Field:      field,
		Owner:      owner,
		Constraint: c,
		Value:      value,
	}
}

// Accepts reports whether value satisfies c.
// Unknown constraint kinds and a nil constraint accept every value.
func Accepts(value any, c Constraint) bool {
	switch c := c.(type) {
	case *AnyConstraint:
		return true
	case *NoneConstraint:
		return IsAbsent(value)
	case *ExactConstraint:
		if c.Type == nil {
			return IsAbsent(value)
		}
		return isInstance(value, c.Type)
	case *OptionalConstraint:
		return IsAbsent(value) || Accepts(value, c.Elem)
	case *UnionConstraint:
		if elem, ok := c.OptionalForm(); ok {
			return IsAbsent(value) || Accepts(value, elem)
		}
		for _, opt := range c.Options {
			if tryAccepts(value, opt) {
				return true
			}
		}
		return false
	case *LiteralConstraint:
		for _, lit := range c.Values {
			if identical(value, lit) {
				return true
			}
		}
		return false
	case *SubtypeConstraint:
		t, ok := value.(reflect.Type)
		return ok && t != nil && c.Base != nil && derives(t, c.Base)
	default:
		return true
	}
}

// Supported reports whether every node of c is a kind Accepts knows how to check.
func Supported(c Constraint) bool {
	switch c := c.(type) {
	case *AnyConstraint, *NoneConstraint, *ExactConstraint, *LiteralConstraint, *SubtypeConstraint:
		return true
	case *OptionalConstraint:
		return Supported(c.Elem)
	case *UnionConstraint:
		for _, opt := range c.Options {
			if !Supported(opt) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Validate reports constraint nodes that can never be checked meaningfully,
// such as a SubtypeOf without a base type.
func Validate(c Constraint) error {
	switch c := c.(type) {
	case *SubtypeConstraint:
		if c.Base == nil {
			return fmt.Errorf("%w: SubtypeOf without a base type", domain.ErrInvalidConstraint)
		}
	case *OptionalConstraint:
		return Validate(c.Elem)
	case *UnionConstraint:
		if len(c.Options) == 0 {
			return fmt.Errorf("%w: Union without options", domain.ErrInvalidConstraint)
		}
		for _, opt := range c.Options {
			if err := Validate(opt); err != nil {
				return err
			}
		}
	}
	return nil
}

// tryAccepts evaluates a union branch; a branch that panics is a non-match.
func tryAccepts(value any, c Constraint) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	return Accepts(value, c)
}

// IsAbsent reports whether v is the absence sentinel: an untyped nil or a nil
// pointer, map, slice, func, chan or interface.
func IsAbsent(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

func isInstance(v any, t reflect.Type) bool {
	if v == nil {
		return false
	}
	vt := reflect.TypeOf(v)
	if vt == t {
		return true
	}
	return t.Kind() == reflect.Interface && vt.Implements(t)
}

func derives(t, base reflect.Type) bool {
	if t == base {
		return true
	}
	return base.Kind() == reflect.Interface && t.Implements(base)
}

// identical compares dynamic type and value. Values whose type is not
// comparable never match.
func identical(v, lit any) (same bool) {
	if v == nil || lit == nil {
		return v == nil && lit == nil
	}
	vt := reflect.TypeOf(v)
	if vt != reflect.TypeOf(lit) || !vt.Comparable() {
		return false
	}
	defer func() {
		if recover() != nil {
			same = false
		}
	}()
	return v == lit
}
