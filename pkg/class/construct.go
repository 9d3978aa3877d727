package class

import (
	"fmt"
	"maps"
	"slices"

	"github.com/aretw0/typedclass/pkg/constraint"
)

// Construct builds an instance from keyword arguments.
//
// The pipeline is strict: positional arguments are rejected, required fields
// are bound (a type mismatch fails immediately, missing names are collected
// and reported together), then supplied optional fields are bound, and
// finally leftover arguments are rejected unless the structure ignores
// extras. kwargs is never modified.
func (m *Metadata) Construct(positional []any, kwargs map[string]any) (*Instance, error) {
	if len(positional) > 0 {
		return nil, &ShapeError{Structure: m.name, Count: len(positional)}
	}

	args := maps.Clone(kwargs)
	inst := &Instance{
		meta:   m,
		values: make(map[string]any, len(m.params)),
	}

	var missing []string
	for _, name := range m.required.names {
		v, ok := args[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		if err := constraint.Match(v, m.required.constraints[name], name, m.name); err != nil {
			return nil, err
		}
		inst.values[name] = v
		delete(args, name)
	}

	if len(missing) > 0 {
		return nil, &MissingFieldsError{Structure: m.name, Names: missing}
	}

	for _, name := range m.optional.names {
		v, ok := args[name]
		if !ok {
			continue
		}
		if err := constraint.Match(v, m.optional.constraints[name], name, m.name); err != nil {
			return nil, err
		}
		inst.values[name] = v
		delete(args, name)
	}

	if len(args) > 0 && !m.config.IgnoreExtra {
		extra := slices.Sorted(maps.Keys(args))
		return nil, &UnexpectedFieldsError{Structure: m.name, Names: extra}
	}

	return inst, nil
}

// New builds an instance from keyword arguments only.
func (m *Metadata) New(kwargs map[string]any) (*Instance, error) {
	return m.Construct(nil, kwargs)
}

// Bind builds an instance from a decoded document (YAML, JSON, ...).
// A mapping supplies keyword arguments, nil supplies none, and a sequence or
// scalar is treated as positional arguments and therefore rejected.
func (m *Metadata) Bind(doc any) (*Instance, error) {
	switch d := doc.(type) {
	case nil:
		return m.Construct(nil, nil)
	case map[string]any:
		return m.Construct(nil, d)
	case map[any]any:
		kwargs := make(map[string]any, len(d))
		for k, v := range d {
			kwargs[fmt.Sprint(k)] = v
		}
		return m.Construct(nil, kwargs)
	case []any:
		return m.Construct(d, nil)
	default:
		return m.Construct([]any{doc}, nil)
	}
}
