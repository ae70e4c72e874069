// Package markdown renders Tables and DataProducts as human-readable
// Markdown documentation: a front-matter table followed by templated
// sections, the same shape internal/governance/{decision,knowledge} use
// for their own records (spec.md's supplemented "Markdown rendering
// templates" feature). One-way; there is no Markdown importer.
package markdown

import (
	"fmt"
	"strings"

	"github.com/marmotdata/schemakit/internal/model"
)

// ExportTable renders a Table's columns as a Markdown document.
func ExportTable(tbl *model.Table) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", tbl.Name)
	b.WriteString("| Field | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Database Type | %s |\n", tbl.DatabaseType)
	if tbl.Catalog != "" {
		fmt.Fprintf(&b, "| Catalog | %s |\n", tbl.Catalog)
	}
	if tbl.Schema != "" {
		fmt.Fprintf(&b, "| Schema | %s |\n", tbl.Schema)
	}
	if len(tbl.Tags) > 0 {
		fmt.Fprintf(&b, "| Tags | %s |\n", strings.Join(model.RenderTags(tbl.Tags), ", "))
	}
	b.WriteString("\n")

	if tbl.TechNotes != "" {
		fmt.Fprintf(&b, "%s\n\n", tbl.TechNotes)
	}

	if len(tbl.Columns) > 0 {
		b.WriteString("## Columns\n\n")
		b.WriteString("| Name | Type | Nullable | Description |\n|---|---|---|---|\n")
		for _, col := range tbl.Columns {
			writeColumnRow(&b, col)
		}
		b.WriteString("\n")
	}

	return b.String()
}

func writeColumnRow(b *strings.Builder, col *model.Column) {
	nullable := "yes"
	if !col.Nullable {
		nullable = "no"
	}
	flags := ""
	if col.PrimaryKey {
		flags = " (PK)"
	}
	fmt.Fprintf(b, "| %s%s | %s | %s | %s |\n", col.Name, flags, col.LogicalType, nullable, col.Description)
}

// ExportDataProduct renders a DataProduct's ports as a Markdown document.
func ExportDataProduct(dp *model.DataProduct) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", dp.Name)
	b.WriteString("| Field | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Version | %s |\n", dp.Version)
	fmt.Fprintf(&b, "| Status | %s |\n", dp.Status)
	fmt.Fprintf(&b, "| Owner | %s |\n", dp.Owner)
	if dp.Domain != "" {
		fmt.Fprintf(&b, "| Domain | %s |\n", dp.Domain)
	}
	b.WriteString("\n")

	if dp.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", dp.Description)
	}

	if len(dp.OutputPorts) > 0 {
		b.WriteString("## Output Ports\n\n")
		for _, p := range dp.OutputPorts {
			fmt.Fprintf(&b, "- **%s** (%s)\n", p.Name, p.Type)
		}
		b.WriteString("\n")
	}

	if len(dp.InputPorts) > 0 {
		b.WriteString("## Input Ports\n\n")
		for _, p := range dp.InputPorts {
			fmt.Fprintf(&b, "- **%s** (contract %s)\n", p.Name, p.ContractID)
		}
		b.WriteString("\n")
	}

	return b.String()
}
