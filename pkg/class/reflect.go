package class

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/aretw0/typedclass/pkg/constraint"
	"github.com/aretw0/typedclass/pkg/domain"
)

// Struct returns a FieldProvider that declares one field per exported field
// of proto's struct type. The `tc` tag controls each field:
//
//	type User struct {
//		ID    int     `tc:"id"`
//		Name  string  `tc:"name"`
//		Email *string `tc:"email,default"`
//		Kind  any     `tc:"kind,default,type=Literal[\"admin\", \"user\"]"`
//		Skip  string  `tc:"-"`
//	}
//
// Without a type= option the constraint follows the Go type: an empty
// interface accepts anything, a pointer *T accepts nil, a *T or a value
// accepted for T (Optional[Union[*T, T]]), anything else is Exact. The default option takes the value held by proto. type= must be
// the last option since the expression may contain commas; it is resolved
// against table (builtins only when nil).
func Struct(proto any, table *constraint.TypeTable) FieldProvider {
	return &structProvider{proto: proto, table: table}
}

type structProvider struct {
	proto any
	table *constraint.TypeTable
}

func (p *structProvider) Fields() ([]FieldDecl, error) {
	rv := reflect.ValueOf(p.proto)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			rv = reflect.Zero(rv.Type().Elem())
			continue
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: expected a struct, got %T", domain.ErrInvalidDefinition, p.proto)
	}

	rt := rv.Type()
	decls := make([]FieldDecl, 0, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		tag, hasTag := sf.Tag.Lookup(TagName)
		if tag == "-" {
			continue
		}
		if sf.Anonymous && !hasTag {
			continue
		}

		name, withDefault, expr := parseTag(tag)
		if name == "" {
			name = sf.Name
		}

		c := fromGoType(sf.Type)
		if expr != "" {
			parsed, err := constraint.Parse(expr, p.table)
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", sf.Name, err)
			}
			c = parsed
		}

		decl := FieldDecl{Name: name, Constraint: c}
		if withDefault {
			decl.HasDefault = true
			decl.Default = rv.Field(i).Interface()
		}
		decls = append(decls, decl)
	}
	return decls, nil
}

// parseTag splits `name,default,type=<expr>`.
func parseTag(tag string) (name string, withDefault bool, expr string) {
	parts := strings.Split(tag, ",")
	name = strings.TrimSpace(parts[0])
	for i := 1; i < len(parts); i++ {
		opt := strings.TrimSpace(parts[i])
		if opt == "default" {
			withDefault = true
			continue
		}
		if strings.HasPrefix(opt, "type=") {
			rest := strings.TrimSpace(strings.Join(parts[i:], ","))
			expr = strings.TrimPrefix(rest, "type=")
			break
		}
	}
	return name, withDefault, expr
}

func fromGoType(t reflect.Type) constraint.Constraint {
	switch {
	case t.Kind() == reflect.Interface && t.NumMethod() == 0:
		return constraint.Any()
	case t.Kind() == reflect.Pointer:
		return constraint.Optional(constraint.Union(constraint.Exact(t), fromGoType(t.Elem())))
	default:
		return constraint.Exact(t)
	}
}
