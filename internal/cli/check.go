package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/typedclass/internal/presentation/tui"
	"github.com/aretw0/typedclass/pkg/class"
	"github.com/aretw0/typedclass/pkg/manifest"
	"github.com/aretw0/typedclass/pkg/observability"
)

// ErrCheckFailed is returned when at least one document is rejected.
var ErrCheckFailed = errors.New("check failed")

// CheckOptions contains the configuration for the check command.
type CheckOptions struct {
	Structure string
	Paths     []string // "-" reads stdin
	Many      bool     // each file holds several documents
	Color     bool
	Stdin     io.Reader
}

// CheckReport summarizes a check run.
type CheckReport struct {
	Passed int
	Failed int
}

// RunCheck constructs Structure from every document and prints one line per document.
// It returns ErrCheckFailed when any document is rejected.
func RunCheck(w io.Writer, reg *class.Registry, opts CheckOptions) (CheckReport, error) {
	var report CheckReport
	if _, ok := reg.Lookup(opts.Structure); !ok {
		return report, fmt.Errorf("unknown structure %q (available: %v)", opts.Structure, reg.Names())
	}

	p := tui.NewPrinter(w, opts.Color)
	for _, path := range opts.Paths {
		data, err := manifest.ReadDocument(path, opts.Stdin)
		if err != nil {
			return report, err
		}

		docs, err := decode(data, opts.Many)
		if err != nil {
			p.Fail(path, observability.ResultError, err)
			report.Failed++
			continue
		}

		for i, doc := range docs {
			label := path
			if opts.Many {
				label = fmt.Sprintf("%s#%d", path, i+1)
			}
			inst, err := reg.Construct(opts.Structure, doc)
			if err != nil {
				p.Fail(label, observability.Result(err), err)
				report.Failed++
				continue
			}
			p.OK(label, inst.String())
			report.Passed++
		}
	}

	if opts.Many || len(opts.Paths) > 1 {
		p.Summary(report.Passed, report.Failed)
	}
	if report.Failed > 0 {
		return report, ErrCheckFailed
	}
	return report, nil
}

func decode(data []byte, many bool) ([]any, error) {
	if many {
		return manifest.DecodeDocuments(data)
	}
	doc, err := manifest.DecodeDocument(data)
	if err != nil {
		return nil, err
	}
	return []any{doc}, nil
}
