package class

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/aretw0/typedclass/pkg/constraint"
)

// TagName is the struct tag read by Struct and Instance.Decode.
const TagName = "tc"

// Instance is a validated set of field values for a structure.
// Optional fields that were not supplied read through to their defaults.
type Instance struct {
	meta   *Metadata
	values map[string]any
}

// Structure returns the metadata the instance was built from.
func (i *Instance) Structure() *Metadata {
	return i.meta
}

// Get returns the value of a declared field.
func (i *Instance) Get(name string) (any, bool) {
	if v, ok := i.values[name]; ok {
		return v, true
	}
	return i.meta.Default(name)
}

// Supplied reports whether the field was passed explicitly at construction.
func (i *Instance) Supplied(name string) bool {
	_, ok := i.values[name]
	return ok
}

// Values returns every declared field with defaults applied.
func (i *Instance) Values() map[string]any {
	out := make(map[string]any, len(i.meta.params))
	for _, name := range i.meta.params {
		if v, ok := i.Get(name); ok {
			out[name] = v
		}
	}
	return out
}

// String renders Name(field=value, ...) in declaration order, or <Name> when
// the structure was registered with GenerateRepr(false).
func (i *Instance) String() string {
	if !i.meta.config.GenerateRepr {
		return "<" + i.meta.name + ">"
	}

	parts := make([]string, 0, len(i.meta.params))
	for _, name := range i.meta.params {
		v, _ := i.Get(name)
		parts = append(parts, name+"="+constraint.FormatValue(v))
	}
	return fmt.Sprintf("%s(%s)", i.meta.name, strings.Join(parts, ", "))
}

// Decode copies the instance values into out, a pointer to a struct whose
// fields are matched by their `tc` tag or, failing that, by name.
func (i *Instance) Decode(out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          TagName,
		Result:           out,
		WeaklyTypedInput: false,
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder for %s: %w", i.meta.name, err)
	}
	if err := decoder.Decode(i.Values()); err != nil {
		return fmt.Errorf("failed to decode %s: %w", i.meta.name, err)
	}
	return nil
}
