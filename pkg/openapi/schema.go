// Package openapi exports registered structures as OpenAPI 3 schemas.
package openapi

import (
	"reflect"
	"time"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/aretw0/typedclass/pkg/class"
	"github.com/aretw0/typedclass/pkg/constraint"
)

// Version of the OpenAPI documents produced by Document.
const Version = "3.0.3"

var timeType = reflect.TypeFor[time.Time]()

// Schema returns the object schema of a structure. Inherited fields are
// flattened into the object. Extra properties are forbidden unless the
// structure ignores them.
func Schema(md *class.Metadata) *openapi3.Schema {
	s := openapi3.NewObjectSchema()
	s.Title = md.Name()

	for _, f := range md.Fields() {
		prop := FieldSchema(f.Constraint)
		if f.HasDefault && f.Default != nil {
			prop.Default = f.Default
		}
		s.Properties[f.Name] = openapi3.NewSchemaRef("", prop)
	}
	if req := md.RequiredNames(); len(req) > 0 {
		s.Required = req
	}
	if !md.Config().IgnoreExtra {
		s.AdditionalProperties = openapi3.AdditionalProperties{Has: openapi3.BoolPtr(false)}
	}
	return s
}

// FieldSchema maps a constraint to the schema of the values it accepts.
func FieldSchema(c constraint.Constraint) *openapi3.Schema {
	switch c := c.(type) {
	case *constraint.ExactConstraint:
		if c.Type == nil {
			return &openapi3.Schema{}
		}
		return typeSchema(c.Type)
	case *constraint.NoneConstraint:
		return &openapi3.Schema{Nullable: true, Enum: []any{nil}}
	case *constraint.OptionalConstraint:
		return FieldSchema(c.Elem).WithNullable()
	case *constraint.UnionConstraint:
		if elem, ok := c.OptionalForm(); ok {
			return FieldSchema(elem).WithNullable()
		}
		s := &openapi3.Schema{}
		for _, opt := range c.Options {
			if opt != nil && opt.Kind() == constraint.KindNone {
				s.Nullable = true
				continue
			}
			s.AnyOf = append(s.AnyOf, openapi3.NewSchemaRef("", FieldSchema(opt)))
		}
		return s
	case *constraint.LiteralConstraint:
		return literalSchema(c.Values)
	case *constraint.SubtypeConstraint:
		s := openapi3.NewStringSchema()
		s.Description = "Name of a type derived from " + c.Base.String()
		return s
	default:
		return &openapi3.Schema{}
	}
}

// Components returns the schemas of every structure in reg keyed by name.
func Components(reg *class.Registry) openapi3.Schemas {
	schemas := make(openapi3.Schemas)
	for _, name := range reg.Names() {
		if md, ok := reg.Lookup(name); ok {
			schemas[name] = openapi3.NewSchemaRef("", Schema(md))
		}
	}
	return schemas
}

// Document wraps the component schemas of reg into a standalone document.
func Document(reg *class.Registry, title, version string) *openapi3.T {
	return &openapi3.T{
		OpenAPI: Version,
		Info: &openapi3.Info{
			Title:   title,
			Version: version,
		},
		Paths: openapi3.NewPaths(),
		Components: &openapi3.Components{
			Schemas: Components(reg),
		},
	}
}

func typeSchema(t reflect.Type) *openapi3.Schema {
	if t == timeType {
		return openapi3.NewDateTimeSchema()
	}

	switch t.Kind() {
	case reflect.Bool:
		return openapi3.NewBoolSchema()
	case reflect.Int, reflect.Int64, reflect.Uint, reflect.Uint64, reflect.Uintptr:
		return openapi3.NewInt64Schema()
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Uint8, reflect.Uint16, reflect.Uint32:
		return openapi3.NewInt32Schema()
	case reflect.Float32, reflect.Float64:
		return openapi3.NewFloat64Schema()
	case reflect.String:
		return openapi3.NewStringSchema()
	case reflect.Slice, reflect.Array:
		if t.Elem().Kind() == reflect.Uint8 {
			return openapi3.NewBytesSchema()
		}
		return openapi3.NewArraySchema().WithItems(typeSchema(t.Elem()))
	case reflect.Map:
		return openapi3.NewObjectSchema().WithAdditionalProperties(typeSchema(t.Elem()))
	case reflect.Struct:
		s := openapi3.NewObjectSchema()
		s.Title = t.String()
		return s
	case reflect.Pointer:
		return typeSchema(t.Elem()).WithNullable()
	default:
		return &openapi3.Schema{}
	}
}

func literalSchema(values []any) *openapi3.Schema {
	s := &openapi3.Schema{}
	var kind reflect.Kind
	uniform := true
	for _, v := range values {
		if v == nil {
			s.Nullable = true
			continue
		}
		s.Enum = append(s.Enum, v)
		k := reflect.TypeOf(v).Kind()
		if kind == reflect.Invalid {
			kind = k
		} else if kind != k {
			uniform = false
		}
	}
	if s.Nullable {
		s.Enum = append(s.Enum, nil)
	}
	if uniform && kind != reflect.Invalid {
		s.Type = typeSchema(reflect.TypeOf(s.Enum[0])).Type
	}
	return s
}
