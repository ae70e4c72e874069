package workspace

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/marmotdata/schemakit/internal/diagnostics"
	"github.com/marmotdata/schemakit/internal/model"
)

// Discover enumerates supported files under directory and parses each
// filename into an AssetRef. Unrecognized filenames are skipped and
// reported as warning-severity diagnostics rather than failing the whole
// scan (spec.md §4.3).
func Discover(directory string) ([]model.AssetRef, diagnostics.Diagnostics) {
	var refs []model.AssetRef
	var diags diagnostics.Diagnostics

	entries, err := os.ReadDir(directory)
	if err != nil {
		diags.Addf(diagnostics.Error, "workspace: cannot read directory %q: %v", directory, err)
		return nil, diags
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		if IsWorkspaceLevel(name) {
			continue
		}
		ref, err := ParseFilename(name)
		if err != nil {
			diags.Addf(diagnostics.Warning, "workspace: skipping %q: %v", name, err)
			continue
		}
		ref.Path = filepath.Join(directory, name)
		refs = append(refs, ref)
	}

	return refs, diags
}
