package class

import (
	"log/slog"

	"github.com/aretw0/typedclass/internal/logging"
)

// Config holds the per-structure switches fixed at registration time.
type Config struct {
	// IgnoreInternal excludes fields whose name starts with a single underscore.
	IgnoreInternal bool `json:"ignore_internal" yaml:"ignore_internal" mapstructure:"ignore_internal"`
	// IgnoreExtra silently drops keyword arguments that match no declared field.
	IgnoreExtra bool `json:"ignore_extra" yaml:"ignore_extra" mapstructure:"ignore_extra"`
	// GenerateRepr renders instances as Name(field=value, ...).
	GenerateRepr bool `json:"generate_repr" yaml:"generate_repr" mapstructure:"generate_repr"`
}

// DefaultConfig returns the configuration used when no option overrides it.
func DefaultConfig() Config {
	return Config{
		IgnoreInternal: true,
		IgnoreExtra:    false,
		GenerateRepr:   true,
	}
}

type settings struct {
	config Config
	parent *Metadata
	logger *slog.Logger
}

// Option defines a functional option for Register.
type Option func(*settings)

// IgnoreInternal sets whether single-underscore fields are skipped (default true).
func IgnoreInternal(ignore bool) Option {
	return func(s *settings) {
		s.config.IgnoreInternal = ignore
	}
}

// IgnoreExtra sets whether unknown keyword arguments are dropped instead of rejected (default false).
func IgnoreExtra(ignore bool) Option {
	return func(s *settings) {
		s.config.IgnoreExtra = ignore
	}
}

// GenerateRepr sets whether instances get the Name(field=value, ...) representation (default true).
func GenerateRepr(generate bool) Option {
	return func(s *settings) {
		s.config.GenerateRepr = generate
	}
}

// WithConfig replaces the whole configuration.
func WithConfig(cfg Config) Option {
	return func(s *settings) {
		s.config = cfg
	}
}

// Extends derives the structure from parent, starting from its field buckets.
func Extends(parent *Metadata) Option {
	return func(s *settings) {
		s.parent = parent
	}
}

// WithLogger sets the logger used to report registration details.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func newSettings(opts []Option) *settings {
	s := &settings{
		config: DefaultConfig(),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
