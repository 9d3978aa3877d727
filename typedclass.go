package typedclass

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/typedclass/internal/logging"
	"github.com/aretw0/typedclass/pkg/class"
	"github.com/aretw0/typedclass/pkg/constraint"
	"github.com/aretw0/typedclass/pkg/manifest"
)

// Catalog is the high-level entry point of the library.
// It wraps a structure registry together with the type table used to
// resolve type expressions.
type Catalog struct {
	registry *class.Registry
	types    *constraint.TypeTable
	hooks    class.Hooks
	logger   *slog.Logger
	Name     string
}

// Option defines a functional option for configuring the Catalog.
type Option func(*Catalog)

// WithHooks registers observability hooks.
func WithHooks(hooks class.Hooks) Option {
	return func(c *Catalog) {
		c.hooks = hooks
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Catalog) {
		c.logger = logger
	}
}

// WithTypes sets the type table used to resolve type expressions.
// Register application types on it before calling New.
func WithTypes(table *constraint.TypeTable) Option {
	return func(c *Catalog) {
		c.types = table
	}
}

// New creates a Catalog and loads the structures of the manifest at path.
// An empty path yields an empty catalog.
func New(path string, opts ...Option) (*Catalog, error) {
	c := &Catalog{}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logging.NewNop()
	}
	if c.types == nil {
		c.types = constraint.NewTypeTable()
	}

	c.registry = class.NewRegistry(
		class.WithRegistryLogger(c.logger),
		class.WithHooks(c.hooks),
	)

	if path == "" {
		return c, nil
	}

	m, err := manifest.Load(path)
	if err != nil {
		return nil, err
	}
	if err := c.Apply(m); err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	c.Name = path
	return c, nil
}

// Apply registers the structures of a parsed manifest.
func (c *Catalog) Apply(m *manifest.Manifest) error {
	_, err := m.Apply(c.registry, c.types)
	return err
}

// Define starts a structure declaration; Build registers it in the catalog.
func (c *Catalog) Define(name string) *class.Builder {
	return c.registry.Define(name)
}

// Register adds a structure built from provider.
func (c *Catalog) Register(name string, provider class.FieldProvider, opts ...class.Option) (*class.Metadata, error) {
	return c.registry.Register(name, provider, opts...)
}

// RegisterStruct adds a structure whose fields are read from the `tc` tags of proto.
func (c *Catalog) RegisterStruct(name string, proto any, opts ...class.Option) (*class.Metadata, error) {
	return c.registry.Register(name, class.Struct(proto, c.types), opts...)
}

// Lookup returns a registered structure.
func (c *Catalog) Lookup(name string) (*class.Metadata, bool) {
	return c.registry.Lookup(name)
}

// Construct builds an instance of the named structure from a decoded document.
func (c *Catalog) Construct(name string, doc any) (*class.Instance, error) {
	return c.registry.Construct(name, doc)
}

// Check decodes a YAML or JSON document and constructs the named structure from it.
func (c *Catalog) Check(name string, data []byte) (*class.Instance, error) {
	doc, err := manifest.DecodeDocument(data)
	if err != nil {
		return nil, err
	}
	return c.registry.Construct(name, doc)
}

// Registry exposes the underlying registry.
func (c *Catalog) Registry() *class.Registry {
	return c.registry
}

// Types exposes the type table.
func (c *Catalog) Types() *constraint.TypeTable {
	return c.types
}
