package knowledge

import (
	"fmt"
	"strings"

	"github.com/marmotdata/schemakit/internal/model"
)

// RenderMarkdown renders a KnowledgeArticle as a front-matter table
// followed by its body. One-way; there is no Markdown importer
// (spec.md §4.6).
func RenderMarkdown(a *model.KnowledgeArticle) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %d. %s\n\n", a.Number, a.Title)
	fmt.Fprintf(&b, "| Field | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Type | %s |\n", a.Type)
	fmt.Fprintf(&b, "| Status | %s |\n", a.Status)
	fmt.Fprintf(&b, "| ID | %s |\n", a.ID)
	if len(a.Related) > 0 {
		related := make([]string, len(a.Related))
		for i, n := range a.Related {
			related[i] = fmt.Sprintf("%d", n)
		}
		fmt.Fprintf(&b, "| Related | %s |\n", strings.Join(related, ", "))
	}
	if len(a.Tags) > 0 {
		fmt.Fprintf(&b, "| Tags | %s |\n", strings.Join(model.RenderTags(a.Tags), ", "))
	}
	b.WriteString("\n")

	if a.Summary != "" {
		fmt.Fprintf(&b, "%s\n\n", a.Summary)
	}
	if a.Body != "" {
		b.WriteString(a.Body)
		b.WriteString("\n")
	}

	return b.String()
}
