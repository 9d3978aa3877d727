/*
Package class turns field declarations into structure metadata and binds
keyword arguments into validated instances.

Registration partitions the declared fields into required and optional
buckets, depending on whether a default is declared:

	user, err := class.Define("User").
		Field("id", constraint.ExactOf[int]()).
		Field("name", constraint.ExactOf[string]()).
		Default("email", constraint.Optional(constraint.ExactOf[string]()), nil).
		Build()

Construction validates every supplied value against its constraint and
reports missing or unexpected fields:

	u, err := user.New(map[string]any{"id": 1, "name": "a"})
	fmt.Println(u) // User(id=1, name="a", email=nil)

Metadata is immutable once Register returns and may be shared between
goroutines; Register itself must not race with another registration of the
same structure. A derived structure (Extends) starts from copies of its
parent's buckets, so redeclaring a parent field with a default makes it
optional in the derived structure only.
*/
package class
