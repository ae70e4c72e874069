// Package workspace maps between the filename-addressed on-disk layout
// and the in-memory Workspace model.
package workspace

import (
	"fmt"
	"strings"

	"github.com/marmotdata/schemakit/internal/model"
)

// kindExtensions maps an AssetKind to its canonical file extension,
// mirroring the filename grammar in spec.md §4.3.
var kindExtensions = map[model.AssetKind]string{
	model.KindODCS:      "odcs.yaml",
	model.KindODPS:      "odps.yaml",
	model.KindCADS:      "cads.yaml",
	model.KindBPMN:      "bpmn.xml",
	model.KindDMN:       "dmn.xml",
	model.KindOpenAPI:   "openapi.yaml",
	model.KindDecision:  "decision.yaml",
	model.KindKnowledge: "knowledge.yaml",
}

var extensionKinds = func() map[string]model.AssetKind {
	m := make(map[string]model.AssetKind, len(kindExtensions))
	for k, ext := range kindExtensions {
		m[ext] = k
	}
	m["openapi.json"] = model.KindOpenAPI
	return m
}()

// workspaceLevelFiles are the fixed filenames present once per workspace,
// never following the "{workspace}_{domain}..." pattern.
var workspaceLevelFiles = map[string]model.AssetKind{
	"workspace.yaml":      model.KindWorkspace,
	"relationships.yaml":  model.KindRelationships,
	"decisions.yaml":      model.KindDecisionIndex,
	"knowledge.yaml":       model.KindKnowledgeIndex,
}

// GenerateFilename renders an AssetRef to its on-disk filename:
// "{workspace}_{domain}[_{system}]_{resource}.{kind-ext}", each segment
// sanitized independently.
func GenerateFilename(workspaceName string, ref model.AssetRef) (string, error) {
	ext, ok := kindExtensions[ref.Kind]
	if !ok {
		return "", fmt.Errorf("workspace: no filename extension for asset kind %q", ref.Kind)
	}

	segments := []string{model.SanitizeIdentifier(workspaceName), model.SanitizeIdentifier(ref.Domain)}
	if ref.System != "" {
		segments = append(segments, model.SanitizeIdentifier(ref.System))
	}
	segments = append(segments, model.SanitizeIdentifier(ref.Name))

	return strings.Join(segments, "_") + "." + ext, nil
}

// ParseFilename parses an on-disk filename back into its grammar
// components. Workspace-level fixed filenames (workspace.yaml, …) are
// recognized first and return a zero-value AssetRef with only Kind set.
func ParseFilename(filename string) (model.AssetRef, error) {
	if kind, ok := workspaceLevelFiles[filename]; ok {
		return model.AssetRef{Kind: kind}, nil
	}

	for ext, kind := range extensionKinds {
		suffix := "." + ext
		if !strings.HasSuffix(filename, suffix) {
			continue
		}
		base := strings.TrimSuffix(filename, suffix)
		parts := strings.Split(base, "_")
		if len(parts) < 3 {
			return model.AssetRef{}, fmt.Errorf("workspace: filename %q has too few segments for kind %q", filename, kind)
		}

		domain := parts[1]
		resource := parts[len(parts)-1]
		var system string
		if len(parts) > 3 {
			system = strings.Join(parts[2:len(parts)-1], "_")
		}

		return model.AssetRef{
			Domain:   domain,
			System:   system,
			Name:     resource,
			Kind:     kind,
			Path:     filename,
		}, nil
	}

	return model.AssetRef{}, fmt.Errorf("workspace: unrecognized filename %q", filename)
}

// IsWorkspaceLevel reports whether filename is one of the fixed
// once-per-workspace files.
func IsWorkspaceLevel(filename string) bool {
	_, ok := workspaceLevelFiles[filename]
	return ok
}
