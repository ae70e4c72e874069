// Package yaml re-emits canonical model entities as the on-disk YAML
// documents the workspace layout expects (spec.md §4.1 `export`).
package yaml

import (
	"github.com/marmotdata/schemakit/internal/format/yamlcodec"
)

// ExportTable renders a Table to its canonical YAML form. The same model
// must produce byte-identical output across runs: yamlcodec.Marshal uses a
// stable key order and stable indent, and callers are expected to have
// already fixed list order at construction time (source order is
// preserved end to end, never resorted here).
func ExportTable(v interface{}) ([]byte, error) {
	return yamlcodec.Marshal(v)
}

// ExportRelationship renders a Relationship to its canonical YAML form.
func ExportRelationship(v interface{}) ([]byte, error) {
	return yamlcodec.Marshal(v)
}

// ExportWorkspace renders a Workspace index document to its canonical
// YAML form.
func ExportWorkspace(v interface{}) ([]byte, error) {
	return yamlcodec.Marshal(v)
}
