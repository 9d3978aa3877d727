package constraint

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"text/scanner"

	"github.com/aretw0/typedclass/pkg/domain"
)

// Parse converts a constraint expression into a Constraint, resolving type
// names through table (builtins only when table is nil).
//
// Supported forms:
//
//	int, string, time, MyType          Exact
//	Any, None                          Any and the absence type
//	Optional[T]                        nil or T
//	Union[A, B, ...]                   first matching branch
//	Literal[1, 2.5, "a", true, nil]    identical values
//	SubtypeOf[MyInterface]             reflect.Type deriving from the type
func Parse(expr string, table *TypeTable) (Constraint, error) {
	if table == nil {
		table = NewTypeTable()
	}

	p := &parser{expr: expr, table: table}
	p.s.Init(strings.NewReader(expr))
	p.s.Mode = scanner.ScanIdents | scanner.ScanInts | scanner.ScanFloats |
		scanner.ScanStrings | scanner.ScanRawStrings
	p.s.Error = func(_ *scanner.Scanner, msg string) {
		if p.scanErr == nil {
			p.scanErr = p.errorf("%s", msg)
		}
	}
	p.next()

	c, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.scanErr != nil {
		return nil, p.scanErr
	}
	if p.tok != scanner.EOF {
		return nil, p.errorf("unexpected %s after expression", p.token())
	}
	return c, nil
}

// MustParse is like Parse but panics on error. It is meant for package-level declarations.
func MustParse(expr string, table *TypeTable) Constraint {
	c, err := Parse(expr, table)
	if err != nil {
		panic(err)
	}
	return c
}

type parser struct {
	s       scanner.Scanner
	tok     rune
	text    string
	expr    string
	table   *TypeTable
	scanErr error
}

func (p *parser) next() {
	p.tok = p.s.Scan()
	p.text = p.s.TokenText()
}

func (p *parser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: %q: %s", domain.ErrInvalidConstraint, p.expr, fmt.Sprintf(format, args...))
}

func (p *parser) token() string {
	if p.tok == scanner.EOF {
		return "end of expression"
	}
	return strconv.Quote(p.text)
}

func (p *parser) expect(tok rune) error {
	if p.tok != tok {
		return p.errorf("expected %q, got %s", string(tok), p.token())
	}
	p.next()
	return nil
}

// name := ident ("." ident)*
func (p *parser) parseName() (string, error) {
	if p.tok != scanner.Ident {
		return "", p.errorf("expected a type name, got %s", p.token())
	}
	name := p.text
	p.next()
	for p.tok == '.' {
		p.next()
		if p.tok != scanner.Ident {
			return "", p.errorf("expected a name after %q, got %s", name+".", p.token())
		}
		name += "." + p.text
		p.next()
	}
	return name, nil
}

func (p *parser) parseExpr() (Constraint, error) {
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}

	switch name {
	case "Any", "any":
		return Any(), nil
	case "None", "nil":
		return None(), nil
	case "Optional":
		args, err := parseList(p, p.parseExpr)
		if err != nil {
			return nil, err
		}
		if len(args) != 1 {
			return nil, p.errorf("Optional takes exactly one argument, got %d", len(args))
		}
		return Optional(args[0]), nil
	case "Union":
		args, err := parseList(p, p.parseExpr)
		if err != nil {
			return nil, err
		}
		return Union(args...), nil
	case "Literal":
		values, err := parseList(p, p.parseLiteral)
		if err != nil {
			return nil, err
		}
		return Literal(values...), nil
	case "SubtypeOf":
		bases, err := parseList(p, p.parseTypeRef)
		if err != nil {
			return nil, err
		}
		if len(bases) != 1 {
			return nil, p.errorf("SubtypeOf takes exactly one argument, got %d", len(bases))
		}
		return SubtypeOf(bases[0]), nil
	}

	typ, ok := p.table.Lookup(name)
	if !ok {
		return nil, p.errorf("unknown type %q", name)
	}
	return Exact(typ), nil
}

func (p *parser) parseTypeRef() (reflect.Type, error) {
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	typ, ok := p.table.Lookup(name)
	if !ok {
		return nil, p.errorf("unknown type %q", name)
	}
	return typ, nil
}

func (p *parser) parseLiteral() (any, error) {
	negative := false
	if p.tok == '-' {
		negative = true
		p.next()
	}

	text := p.text
	if negative {
		text = "-" + text
	}

	switch p.tok {
	case scanner.Int:
		n, err := strconv.Atoi(text)
		if err != nil {
			return nil, p.errorf("invalid integer %s", text)
		}
		p.next()
		return n, nil
	case scanner.Float:
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, p.errorf("invalid float %s", text)
		}
		p.next()
		return f, nil
	}

	if negative {
		return nil, p.errorf("expected a number after '-', got %s", p.token())
	}

	switch p.tok {
	case scanner.String, scanner.RawString:
		s, err := strconv.Unquote(p.text)
		if err != nil {
			return nil, p.errorf("invalid string %s", p.text)
		}
		p.next()
		return s, nil
	case scanner.Ident:
		var v any
		switch p.text {
		case "true":
			v = true
		case "false":
			v = false
		case "nil", "None":
			v = nil
		default:
			return nil, p.errorf("invalid literal %s", p.token())
		}
		p.next()
		return v, nil
	}
	return nil, p.errorf("expected a literal, got %s", p.token())
}

// parseList parses "[" item ("," item)* "]".
func parseList[T any](p *parser, item func() (T, error)) ([]T, error) {
	if err := p.expect('['); err != nil {
		return nil, err
	}
	var items []T
	for {
		v, err := item()
		if err != nil {
			return nil, err
		}
		items = append(items, v)
		if p.tok != ',' {
			break
		}
		p.next()
	}
	if err := p.expect(']'); err != nil {
		return nil, err
	}
	return items, nil
}
