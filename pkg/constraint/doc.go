// Package constraint implements the type constraints attached to structure
// fields and the matcher that decides whether a runtime value satisfies them.
//
// A constraint is a small recursive tree built from six kinds:
//
//	constraint.ExactOf[int]()                             // value is an int
//	constraint.Optional(constraint.ExactOf[string]())     // nil or a string
//	constraint.Union(constraint.ExactOf[int](), constraint.ExactOf[string]())
//	constraint.Literal(1, 2, 3)                           // identical to one literal
//	constraint.SubtypeOf(reflect.TypeFor[fmt.Stringer]()) // a reflect.Type implementing Stringer
//	constraint.Any()                                      // anything
//
// Match walks the tree and reports a *MismatchError describing the expected
// and actual types when the value is rejected:
//
//	err := constraint.Match("1", constraint.ExactOf[int](), "id", "User")
//	// field "id" in User must be an instance of int, not string
//
// Constraints can also be written as expressions and resolved against a
// TypeTable, which is how manifests and struct tags declare them:
//
//	c, err := constraint.Parse(`Union[int, Literal["auto"]]`, constraint.NewTypeTable())
//
// Constraint kinds this package does not know (custom implementations of the
// Constraint interface) are accepted without checking.
package constraint
