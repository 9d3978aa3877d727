package cli

import (
	"log/slog"

	"github.com/aretw0/typedclass"
	"github.com/aretw0/typedclass/pkg/class"
)

// Options contains the configuration shared by every command.
type Options struct {
	ManifestPath string
	Debug        bool
}

// LoadRegistry reads the manifest and registers its structures.
func LoadRegistry(opts Options, logger *slog.Logger, hooks class.Hooks) (*class.Registry, error) {
	cat, err := typedclass.New(opts.ManifestPath,
		typedclass.WithLogger(logger),
		typedclass.WithHooks(hooks),
	)
	if err != nil {
		return nil, err
	}

	reg := cat.Registry()
	logger.Debug("manifest loaded", "path", opts.ManifestPath, "structures", len(reg.Names()))
	return reg, nil
}
