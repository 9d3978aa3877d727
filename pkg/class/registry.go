package class

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/aretw0/typedclass/internal/logging"
	"github.com/aretw0/typedclass/pkg/domain"
)

// ConstructEvent describes one construction attempt made through a Registry.
type ConstructEvent struct {
	Structure string
	Instance  *Instance // nil on failure
	Err       error
	Duration  time.Duration
}

// Hooks are optional callbacks invoked by a Registry.
type Hooks struct {
	OnRegister  func(md *Metadata)
	OnConstruct func(e *ConstructEvent)
}

// Registry manages the available structures by name.
// Safe for concurrent use.
type Registry struct {
	mu         sync.RWMutex
	structures map[string]*Metadata
	order      []string
	logger     *slog.Logger
	hooks      Hooks
}

// RegistryOption defines a functional option for configuring a Registry.
type RegistryOption func(*Registry)

// WithHooks registers observability hooks.
func WithHooks(hooks Hooks) RegistryOption {
	return func(r *Registry) {
		r.hooks = hooks
	}
}

// WithRegistryLogger sets the logger used by the registry and the structures it registers.
func WithRegistryLogger(logger *slog.Logger) RegistryOption {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRegistry creates a new empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		structures: make(map[string]*Metadata),
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register builds a structure (see Register) and adds it to the registry.
func (r *Registry) Register(name string, provider FieldProvider, opts ...Option) (*Metadata, error) {
	opts = append([]Option{WithLogger(r.logger)}, opts...)
	md, err := Register(name, provider, opts...)
	if err != nil {
		return nil, err
	}
	r.Add(md)
	return md, nil
}

// Add stores md under its name.
// If a structure with the same name exists, it is overwritten.
func (r *Registry) Add(md *Metadata) {
	r.mu.Lock()
	if _, exists := r.structures[md.name]; exists {
		r.logger.Warn("structure redefined", "structure", md.name)
	} else {
		r.order = append(r.order, md.name)
	}
	r.structures[md.name] = md
	r.mu.Unlock()

	if r.hooks.OnRegister != nil {
		r.hooks.OnRegister(md)
	}
}

// Define starts a structure declaration whose Build registers into r.
func (r *Registry) Define(name string) *Builder {
	b := Define(name)
	b.registry = r
	return b
}

// Lookup returns the structure registered under name.
func (r *Registry) Lookup(name string) (*Metadata, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	md, ok := r.structures[name]
	return md, ok
}

// Names returns the registered structure names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.order)
}

// Construct looks up a structure by name and binds doc into a new instance.
// Returns domain.ErrUnknownStructure if the structure is not registered.
func (r *Registry) Construct(name string, doc any) (*Instance, error) {
	start := time.Now()

	var inst *Instance
	var err error
	if md, ok := r.Lookup(name); ok {
		inst, err = md.Bind(doc)
	} else {
		err = fmt.Errorf("%w: %s", domain.ErrUnknownStructure, name)
	}

	if err != nil {
		r.logger.Debug("construction failed", "structure", name, "error", err)
	}
	if r.hooks.OnConstruct != nil {
		r.hooks.OnConstruct(&ConstructEvent{
			Structure: name,
			Instance:  inst,
			Err:       err,
			Duration:  time.Since(start),
		})
	}
	return inst, err
}
