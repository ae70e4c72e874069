package validate

import (
	"fmt"

	"github.com/marmotdata/schemakit/internal/diagnostics"
	"github.com/marmotdata/schemakit/internal/model"
)

// Table runs the structural invariant checks spec.md §3/§8 require of a
// Table: unique column names per scope, contiguous primary-key and
// partition-key positions, and no nested path collisions. Violations are
// recorded as error-severity diagnostics; Table never panics on bad input.
func Table(t *model.Table) diagnostics.Diagnostics {
	var diags diagnostics.Diagnostics

	checkUniqueNames(t.Columns, t.Name, &diags)
	checkContiguousPositions(t.Columns, "primary_key", &diags, func(c *model.Column) (bool, int) {
		return c.PrimaryKey, c.PrimaryKeyPosition
	})
	checkContiguousPositions(t.Columns, "partition", &diags, func(c *model.Column) (bool, int) {
		return c.Partition, c.PartitionPosition
	})

	paths := model.ColumnPaths(&model.Column{Properties: t.Columns}, "")
	seen := make(map[string]bool, len(paths))
	for path := range paths {
		if path == "" {
			continue
		}
		if seen[path] {
			diags.AddAt(diagnostics.Error, fmt.Sprintf("duplicate nested column path %q", path), t.Name, 0, 0)
		}
		seen[path] = true
	}

	return diags
}

func checkUniqueNames(cols []*model.Column, scope string, diags *diagnostics.Diagnostics) {
	seen := make(map[string]bool, len(cols))
	for _, c := range cols {
		if seen[c.Name] {
			diags.AddAt(diagnostics.Error, fmt.Sprintf("duplicate column name %q", c.Name), scope, 0, 0)
		}
		seen[c.Name] = true
		if c.IsNested() {
			childScope := scope + "." + c.Name
			if c.Items != nil {
				checkUniqueNames([]*model.Column{c.Items}, childScope, diags)
			}
			checkUniqueNames(c.Properties, childScope, diags)
		}
	}
}

func checkContiguousPositions(cols []*model.Column, label string, diags *diagnostics.Diagnostics, get func(*model.Column) (bool, int)) {
	var positions []int
	for _, c := range cols {
		marked, pos := get(c)
		if marked {
			positions = append(positions, pos)
		}
	}
	if len(positions) == 0 {
		return
	}
	seen := make(map[int]bool, len(positions))
	for _, p := range positions {
		if seen[p] {
			diags.Addf(diagnostics.Error, "%s positions are not unique: position %d used more than once", label, p)
		}
		seen[p] = true
	}
	for i := 1; i <= len(positions); i++ {
		if !seen[i] {
			diags.Addf(diagnostics.Error, "%s positions are not contiguous starting at 1: missing position %d", label, i)
			break
		}
	}
}

// Relationships runs the relationship-level invariant checks across a full
// set: every edge's From/To table IDs must exist in the supplied table
// set, and the set as a whole must remain acyclic.
func Relationships(tables []*model.Table, relationships []*model.Relationship) diagnostics.Diagnostics {
	var diags diagnostics.Diagnostics

	known := make(map[string]bool, len(tables))
	for _, t := range tables {
		known[t.ID] = true
	}
	for _, r := range relationships {
		if !known[r.From.TableID] {
			diags.Addf(diagnostics.Error, "relationship %s references unknown table %s", r.ID, r.From.TableID)
		}
		if !known[r.To.TableID] {
			diags.Addf(diagnostics.Error, "relationship %s references unknown table %s", r.ID, r.To.TableID)
		}
	}

	for _, id := range FindCycles(relationships) {
		diags.Addf(diagnostics.Error, "relationship %s would close a cycle", id)
	}

	return diags
}
