package typedclass_test

import (
	"errors"
	"fmt"
	"log"

	"github.com/aretw0/typedclass"
	"github.com/aretw0/typedclass/pkg/class"
	"github.com/aretw0/typedclass/pkg/constraint"
	"github.com/aretw0/typedclass/pkg/domain"
	"github.com/aretw0/typedclass/pkg/manifest"
)

// ExampleNew_builder declares a structure in code and constructs instances from documents.
func ExampleNew_builder() {
	cat, err := typedclass.New("")
	if err != nil {
		log.Fatal(err)
	}

	_, err = cat.Define("User").
		Field("id", constraint.ExactOf[int]()).
		Field("name", constraint.ExactOf[string]()).
		Default("email", constraint.Optional(constraint.ExactOf[string]()), nil).
		Build()
	if err != nil {
		log.Fatal(err)
	}

	inst, err := cat.Check("User", []byte(`{"id": 1, "name": "a"}`))
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(inst)

	_, err = cat.Check("User", []byte(`{"id": "1", "name": "a"}`))
	fmt.Println(err)
	fmt.Println(errors.Is(err, domain.ErrTypeMismatch))

	_, err = cat.Check("User", []byte(`{"name": "a"}`))
	fmt.Println(err)

	_, err = cat.Check("User", []byte(`{"id": 1, "name": "a", "extra": 5}`))
	fmt.Println(err)

	// Output:
	// User(id=1, name="a", email=nil)
	// field "id" in User must be an instance of int, not string
	// true
	// User is missing required fields "id"
	// User got unexpected fields "extra"
}

// ExampleCatalog_RegisterStruct reads fields from struct tags and decodes instances back into the struct.
func ExampleCatalog_RegisterStruct() {
	type Server struct {
		Host string `tc:"host"`
		Port int    `tc:"port,default"`
		Mode string `tc:"mode,default,type=Literal[\"dev\", \"prod\"]"`
	}

	cat, _ := typedclass.New("")
	if _, err := cat.RegisterStruct("Server", Server{Port: 8080, Mode: "dev"}); err != nil {
		log.Fatal(err)
	}

	inst, err := cat.Check("Server", []byte("host: example.org\nmode: prod\n"))
	if err != nil {
		log.Fatal(err)
	}

	var srv Server
	if err := inst.Decode(&srv); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%s:%d (%s)\n", srv.Host, srv.Port, srv.Mode)

	_, err = cat.Check("Server", []byte("host: example.org\nmode: test\n"))
	fmt.Println(err)

	// Output:
	// example.org:8080 (prod)
	// field "mode" in Server must be exactly one of "dev", "prod", not "test"
}

// ExampleCatalog_Apply loads a manifest with inheritance.
func ExampleCatalog_Apply() {
	m, err := manifest.Parse([]byte(`
structures:
  - name: Base
    fields:
      - name: id
        type: int
      - name: owner
        type: string
  - name: Service
    extends: Base
    fields:
      - name: owner
        type: string
        default: platform
      - name: tier
        type: Union[int, Literal["best-effort"]]
`))
	if err != nil {
		log.Fatal(err)
	}

	cat, _ := typedclass.New("")
	if err := cat.Apply(m); err != nil {
		log.Fatal(err)
	}

	base, _ := cat.Lookup("Base")
	svc, _ := cat.Lookup("Service")
	fmt.Println(base.RequiredNames(), svc.RequiredNames(), svc.OptionalNames())

	inst, err := cat.Construct("Service", map[string]any{"id": 7, "tier": "best-effort"})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(inst)

	// Output:
	// [id owner] [id tier] [owner]
	// Service(id=7, owner="platform", tier="best-effort")
}

// ExampleNew_hooks observes constructions through registry hooks.
func ExampleNew_hooks() {
	cat, _ := typedclass.New("", typedclass.WithHooks(class.Hooks{
		OnConstruct: func(e *class.ConstructEvent) {
			fmt.Printf("construct %s ok=%t\n", e.Structure, e.Err == nil)
		},
	}))
	_, _ = cat.Register("Point", class.Decls{
		{Name: "x", Constraint: constraint.ExactOf[int]()},
		{Name: "y", Constraint: constraint.ExactOf[int]()},
	})

	_, _ = cat.Construct("Point", map[string]any{"x": 1, "y": 2})
	_, _ = cat.Construct("Point", map[string]any{"x": 1})

	// Output:
	// construct Point ok=true
	// construct Point ok=false
}
