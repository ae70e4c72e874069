package workspace

import (
	"os"
	"path/filepath"

	"github.com/marmotdata/schemakit/internal/diagnostics"
	"github.com/marmotdata/schemakit/internal/format/yamlcodec"
	"github.com/marmotdata/schemakit/internal/model"
)

// LoadWorkspace parses "workspace.yaml" and "relationships.yaml" under
// directory and reconciles the result against the discovered asset files.
// Mismatches between the index and the filesystem are recorded as
// diagnostics but never fail the load (spec.md §4.3).
func LoadWorkspace(directory string) (*model.Workspace, diagnostics.Diagnostics) {
	var diags diagnostics.Diagnostics

	ws := &model.Workspace{}
	wsPath := filepath.Join(directory, "workspace.yaml")
	data, err := os.ReadFile(wsPath)
	if err != nil {
		diags.Addf(diagnostics.Error, "workspace: cannot read %q: %v", wsPath, err)
		return nil, diags
	}
	if err := yamlcodec.Unmarshal(data, ws); err != nil {
		diags.Addf(diagnostics.Error, "workspace: cannot parse %q: %v", wsPath, err)
		return nil, diags
	}

	relPath := filepath.Join(directory, "relationships.yaml")
	if data, err := os.ReadFile(relPath); err == nil {
		var rels []*model.Relationship
		if err := yamlcodec.Unmarshal(data, &rels); err != nil {
			diags.Addf(diagnostics.Warning, "workspace: cannot parse %q: %v", relPath, err)
		} else {
			ws.Relationships = rels
		}
	}

	discovered, discoverDiags := Discover(directory)
	diags.Merge(discoverDiags)

	indexed := make(map[string]bool, len(ws.Assets))
	for _, a := range ws.Assets {
		indexed[a.Path] = true
	}
	for _, d := range discovered {
		if !indexed[d.Path] {
			diags.Addf(diagnostics.Warning, "workspace: file %q present on disk but not listed in workspace.yaml", d.Path)
		}
	}
	onDisk := make(map[string]bool, len(discovered))
	for _, d := range discovered {
		onDisk[d.Path] = true
	}
	for _, a := range ws.Assets {
		if a.Path != "" && !onDisk[a.Path] {
			diags.Addf(diagnostics.Warning, "workspace: asset %q listed in workspace.yaml but missing on disk", a.Path)
		}
	}

	return ws, diags
}
