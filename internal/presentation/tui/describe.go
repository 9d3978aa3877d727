package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/typedclass/pkg/class"
	"github.com/aretw0/typedclass/pkg/constraint"
)

// DescribeMarkdown renders one section per structure with a field table.
func DescribeMarkdown(mds []*class.Metadata) string {
	var b strings.Builder
	for i, md := range mds {
		if i > 0 {
			b.WriteString("\n")
		}
		writeStructure(&b, md)
	}
	return b.String()
}

func writeStructure(b *strings.Builder, md *class.Metadata) {
	fmt.Fprintf(b, "# %s\n\n", md.Name())
	if p := md.Parent(); p != nil {
		fmt.Fprintf(b, "Extends **%s**.\n\n", p.Name())
	}

	cfg := md.Config()
	fmt.Fprintf(b, "ignore_internal: `%t` · ignore_extra: `%t` · generate_repr: `%t`\n\n",
		cfg.IgnoreInternal, cfg.IgnoreExtra, cfg.GenerateRepr)

	fields := md.Fields()
	if len(fields) == 0 {
		b.WriteString("_No fields._\n")
		return
	}

	b.WriteString("| Field | Type | Required | Default |\n")
	b.WriteString("|-------|------|----------|---------|\n")
	for _, f := range fields {
		typ := "Any"
		if f.Constraint != nil {
			typ = f.Constraint.String()
		}
		required := "no"
		def := ""
		if f.Required {
			required = "yes"
		} else {
			def = "`" + constraint.FormatValue(f.Default) + "`"
		}
		fmt.Fprintf(b, "| %s | `%s` | %s | %s |\n", f.Name, escapeCell(typ), required, def)
	}
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
