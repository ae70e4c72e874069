package sync

import (
	"fmt"
	"sort"
)

// ChangeType classifies what happened to one entity during a Sync call.
type ChangeType string

const (
	Created  ChangeType = "created"
	Updated  ChangeType = "updated"
	NoChange ChangeType = "no_change"
)

// Summary tracks the changes made during a sync operation, grouped by
// entity kind (spec.md §4.4 ordering: workspace, domains, systems, tables,
// columns, relationships).
type Summary struct {
	byKind map[string]map[string]ChangeType
}

func newSummary() *Summary {
	return &Summary{byKind: make(map[string]map[string]ChangeType)}
}

func (s *Summary) record(kind, name string, change ChangeType) {
	if s.byKind[kind] == nil {
		s.byKind[kind] = make(map[string]ChangeType)
	}
	s.byKind[kind][name] = change
}

// CountByType counts entities of a kind with the given change type.
func (s *Summary) CountByType(kind string, change ChangeType) int {
	count := 0
	for _, c := range s.byKind[kind] {
		if c == change {
			count++
		}
	}
	return count
}

// Print outputs a formatted summary of all changes, in the order spec.md
// §4.4 defines writes: workspace, domains, systems, tables, columns,
// relationships.
func (s *Summary) Print() {
	fmt.Println("\nSync complete! Summary of changes:")
	for _, kind := range []string{"workspace", "domains", "systems", "tables", "columns", "relationships"} {
		items := s.byKind[kind]
		fmt.Printf("\n%s:\n", kind)
		s.printSection(items)
	}
}

func (s *Summary) printSection(items map[string]ChangeType) {
	if len(items) == 0 {
		fmt.Println("  no changes")
		return
	}

	keys := make([]string, 0, len(items))
	for k := range items {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		var symbol string
		switch items[k] {
		case Created:
			symbol = "+"
		case Updated:
			symbol = "~"
		case NoChange:
			symbol = " "
		}
		fmt.Printf("  %s %s\n", symbol, k)
	}
}

// Result is the return value of a Sync call: per-entity-kind change
// summary, elapsed time, and any non-fatal errors encountered along the
// way (spec.md §4.4: "Returns counts per entity kind, elapsed milliseconds,
// and any non-fatal errors as a list").
type Result struct {
	Summary   *Summary
	ElapsedMS int64
	Errors    []string
}
