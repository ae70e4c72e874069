package workspace

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/marmotdata/schemakit/internal/format/yamlcodec"
	"github.com/marmotdata/schemakit/internal/model"
)

// AssetBody pairs an AssetRef with the value to serialize at its path —
// an importer/exporter-produced document (ODCS, ODPS, CADS, …).
type AssetBody struct {
	Ref  model.AssetRef
	Body interface{}
}

// Emit writes workspace.yaml, relationships.yaml, and every asset body
// under its generated filename into directory. Each file is written
// atomically (temp file + rename); order is leaves first, workspace.yaml
// last, matching spec.md §4.3's atomicity guarantee.
func Emit(directory string, ws *model.Workspace, assets []AssetBody) error {
	for _, a := range assets {
		filename, err := GenerateFilename(ws.Name, a.Ref)
		if err != nil {
			return fmt.Errorf("workspace: emit: %w", err)
		}
		if err := writeAtomic(filepath.Join(directory, filename), a.Body); err != nil {
			return fmt.Errorf("workspace: emit asset %q: %w", filename, err)
		}
	}

	if err := writeAtomic(filepath.Join(directory, "relationships.yaml"), ws.Relationships); err != nil {
		return fmt.Errorf("workspace: emit relationships: %w", err)
	}

	if err := writeAtomic(filepath.Join(directory, "workspace.yaml"), ws); err != nil {
		return fmt.Errorf("workspace: emit workspace: %w", err)
	}

	return nil
}

func writeAtomic(path string, v interface{}) error {
	data, err := yamlcodec.Marshal(v)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}
