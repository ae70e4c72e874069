// Package yamlcodec renders the canonical model to and from YAML with a
// stable key order, so two emits of the same in-memory model byte-for-byte
// match and diffs stay minimal across a re-import/re-export round trip
// (spec.md §9 design notes).
package yamlcodec

import (
	"bytes"
	"fmt"

	"go.yaml.in/yaml/v4"
)

// Marshal renders v to canonical YAML: two spaces of indent, block style,
// and no flow collections, matching the teacher's workspace file
// conventions.
func Marshal(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("yamlcodec: marshal: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("yamlcodec: marshal: %w", err)
	}
	return buf.Bytes(), nil
}

// Unmarshal parses canonical YAML into v.
func Unmarshal(data []byte, v interface{}) error {
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("yamlcodec: unmarshal: %w", err)
	}
	return nil
}
