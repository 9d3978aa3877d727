package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/aretw0/typedclass/internal/presentation/tui"
	"github.com/aretw0/typedclass/pkg/class"
	"github.com/aretw0/typedclass/pkg/openapi"
)

// RunDescribe prints the field tables of the named structures, or of every
// structure when names is empty.
func RunDescribe(w io.Writer, reg *class.Registry, names []string, render func(string) (string, error)) error {
	if len(names) == 0 {
		names = reg.Names()
	}

	mds := make([]*class.Metadata, 0, len(names))
	for _, name := range names {
		md, ok := reg.Lookup(name)
		if !ok {
			return fmt.Errorf("unknown structure %q", name)
		}
		mds = append(mds, md)
	}

	out, err := render(tui.DescribeMarkdown(mds))
	if err != nil {
		return fmt.Errorf("failed to render: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}

// RunSchema prints the OpenAPI schema of a structure, or a full document
// with every structure when name is empty.
func RunSchema(w io.Writer, reg *class.Registry, name, version string) error {
	var v any
	if name == "" {
		v = openapi.Document(reg, "typedclass structures", version)
	} else {
		md, ok := reg.Lookup(name)
		if !ok {
			return fmt.Errorf("unknown structure %q", name)
		}
		v = openapi.Schema(md)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
