package decision

import (
	"fmt"
	"strings"

	"github.com/marmotdata/schemakit/internal/model"
)

// RenderMarkdown renders a Decision as a MADR-style document: a
// front-matter table of the record's scalar fields, followed by
// Context/Decision/Options/Consequences sections. The rendering is
// one-way (spec.md §4.6); there is no Markdown importer.
func RenderMarkdown(d *model.Decision) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %d. %s\n\n", d.Number, d.Title)
	fmt.Fprintf(&b, "| Field | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Status | %s |\n", d.Status)
	fmt.Fprintf(&b, "| ID | %s |\n", d.ID)
	if d.Supersedes != 0 {
		fmt.Fprintf(&b, "| Supersedes | %d |\n", d.Supersedes)
	}
	if d.SupersededBy != 0 {
		fmt.Fprintf(&b, "| Superseded by | %d |\n", d.SupersededBy)
	}
	if len(d.Tags) > 0 {
		fmt.Fprintf(&b, "| Tags | %s |\n", strings.Join(model.RenderTags(d.Tags), ", "))
	}
	b.WriteString("\n")

	if d.Context != "" {
		fmt.Fprintf(&b, "## Context\n\n%s\n\n", d.Context)
	}
	if d.Decision != "" {
		fmt.Fprintf(&b, "## Decision\n\n%s\n\n", d.Decision)
	}
	if len(d.Options) > 0 {
		b.WriteString("## Considered Options\n\n")
		for _, opt := range d.Options {
			fmt.Fprintf(&b, "### %s\n\n", opt.Name)
			for _, pro := range opt.Pros {
				fmt.Fprintf(&b, "- Good, because %s\n", pro)
			}
			for _, con := range opt.Cons {
				fmt.Fprintf(&b, "- Bad, because %s\n", con)
			}
			b.WriteString("\n")
		}
	}
	if d.Consequences != "" {
		fmt.Fprintf(&b, "## Consequences\n\n%s\n", d.Consequences)
	}

	return b.String()
}
