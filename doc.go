/*
Package typedclass validates keyword-constructed records against declared field types at runtime.

A structure declares named fields, each with a type constraint and an optional
default. Constructing an instance binds keyword arguments to those fields,
checks every supplied value against its constraint and rejects missing,
mistyped or unexpected arguments with typed errors.

# Constraints

  - Exact: the value's dynamic type is T (or implements the interface T).
  - Optional[T]: nil or a valid T.
  - Union[A, B, ...]: any branch matches.
  - Literal[v1, v2, ...]: identical to one of the values.
  - SubtypeOf[T]: a reflect.Type equal to or implementing T.
  - Any: every value.

Constraints are built with the constructors of pkg/constraint or parsed from
expressions such as "Optional[string]" and "Literal[1, 2, 3]".

# Usage

Structures are declared in code, from tagged Go structs, or in a YAML manifest:

	structures:
	  - name: User
	    fields:
	      - name: id
	        type: int
	      - name: email
	        type: Optional[string]
	        default: null

and loaded with New:

	cat, err := typedclass.New("structures.yaml")
	if err != nil {
		log.Fatal(err)
	}

	inst, err := cat.Check("User", []byte(`{"id": 1}`))
	if err != nil {
		log.Fatal(err) // e.g. field "id" in User must be an instance of int, not string
	}
	fmt.Println(inst) // User(id=1, email=nil)

Errors match the sentinels of pkg/domain with errors.Is.

# Packages

  - pkg/constraint: constraint kinds, matching and the expression parser.
  - pkg/class: structure registration, inheritance and instance construction.
  - pkg/manifest: YAML/JSON manifests and documents.
  - pkg/openapi: OpenAPI 3 schema export.
  - pkg/observability: Prometheus metrics fed by registry hooks.
  - pkg/adapters/http: HTTP API over a registry.
*/
package typedclass
