// Package jsonschema imports Draft-07+ JSON Schema documents into the
// canonical model. Local "#/definitions/*" refs are resolved by copying
// the referenced shape into the reference site; no third-party JSON
// Schema library in the retrieved dependencies supports that local-only
// resolution mode cheaply, so this package walks the parsed document with
// encoding/json (see DESIGN.md).
package jsonschema

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/marmotdata/schemakit/internal/diagnostics"
	"github.com/marmotdata/schemakit/internal/model"
)

// schema is the JSON Schema subset this importer understands. Its Type
// field decodes both the scalar and the array form of "type".
type schema struct {
	Type                 Types                `json:"type,omitempty"`
	Properties           map[string]*schema   `json:"properties,omitempty"`
	Items                *schema              `json:"items,omitempty"`
	Required             []string             `json:"required,omitempty"`
	Description          string               `json:"description,omitempty"`
	Enum                 []interface{}        `json:"enum,omitempty"`
	Default              interface{}          `json:"default,omitempty"`
	Examples             []interface{}        `json:"examples,omitempty"`
	Ref                  string               `json:"$ref,omitempty"`
	Format               string               `json:"format,omitempty"`
	Definitions          map[string]*schema   `json:"definitions,omitempty"`
}

// Types decodes both the common "type": "string" shorthand and the
// draft-06+ union form "type": ["string", "null"] into a slice. Only
// decoding is customized; encoding a Types always yields a JSON array.
type Types []string

func (t *Types) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*t = Types{single}
		return nil
	}
	var multi []string
	if err := json.Unmarshal(data, &multi); err != nil {
		return err
	}
	*t = Types(multi)
	return nil
}

func (t Types) primary() string {
	for _, v := range t {
		if v != "null" {
			return v
		}
	}
	if len(t) > 0 {
		return t[0]
	}
	return "object"
}

func (t Types) nullable() bool {
	for _, v := range t {
		if v == "null" {
			return true
		}
	}
	return false
}

// Import parses a top-level JSON Schema object document into one Table
// per object schema: the root, plus one per entry under "definitions"
// (spec.md §4.1).
func Import(data []byte, tableName string) ([]*model.Table, diagnostics.Diagnostics) {
	var diags diagnostics.Diagnostics

	var root schema
	if err := json.Unmarshal(data, &root); err != nil {
		diags.Addf(diagnostics.Error, "jsonschema: malformed document: %v", err)
		return nil, diags
	}

	var tables []*model.Table
	tables = append(tables, schemaToTable(tableName, &root, root.Definitions, &diags))

	defNames := make([]string, 0, len(root.Definitions))
	for name := range root.Definitions {
		defNames = append(defNames, name)
	}
	sort.Strings(defNames)
	for _, name := range defNames {
		tables = append(tables, schemaToTable(name, root.Definitions[name], root.Definitions, &diags))
	}

	return tables, diags
}

func schemaToTable(name string, s *schema, defs map[string]*schema, diags *diagnostics.Diagnostics) *model.Table {
	tbl := model.NewTable(model.Postgres, name, "", "", true)

	requiredSet := make(map[string]bool, len(s.Required))
	for _, r := range s.Required {
		requiredSet[r] = true
	}

	propNames := make([]string, 0, len(s.Properties))
	for pname := range s.Properties {
		propNames = append(propNames, pname)
	}
	sort.Strings(propNames)

	for _, pname := range propNames {
		col := schemaToColumn(pname, s.Properties[pname], defs, diags)
		col.Nullable = !requiredSet[pname]
		tbl.AddColumn(col)
	}

	return tbl
}

func schemaToColumn(name string, s *schema, defs map[string]*schema, diags *diagnostics.Diagnostics) *model.Column {
	s = resolveRef(s, defs, diags)

	col := model.NewColumn(name, toLogicalType(s))
	col.Description = s.Description
	col.Default = s.Default
	col.ExampleValues = s.Examples
	col.Nullable = s.Type.nullable()

	for _, e := range s.Enum {
		if str, ok := e.(string); ok {
			col.EnumValues = append(col.EnumValues, str)
		}
	}

	switch col.LogicalType {
	case model.LogicalObject:
		propNames := make([]string, 0, len(s.Properties))
		for pname := range s.Properties {
			propNames = append(propNames, pname)
		}
		sort.Strings(propNames)
		requiredSet := make(map[string]bool, len(s.Required))
		for _, r := range s.Required {
			requiredSet[r] = true
		}
		for _, pname := range propNames {
			child := schemaToColumn(pname, s.Properties[pname], defs, diags)
			child.Nullable = !requiredSet[pname]
			col.WithProperty(child)
		}
	case model.LogicalArray:
		if s.Items != nil {
			col.WithItems(schemaToColumn(model.ArrayPathToken, s.Items, defs, diags))
		}
	}

	return col
}

func resolveRef(s *schema, defs map[string]*schema, diags *diagnostics.Diagnostics) *schema {
	if s.Ref == "" {
		return s
	}
	const prefix = "#/definitions/"
	if !strings.HasPrefix(s.Ref, prefix) {
		diags.Addf(diagnostics.Warning, "jsonschema: unresolved non-local $ref %q, left unresolved", s.Ref)
		return s
	}
	name := strings.TrimPrefix(s.Ref, prefix)
	target, ok := defs[name]
	if !ok {
		diags.Addf(diagnostics.Warning, "jsonschema: $ref %q does not resolve to a known definition", s.Ref)
		return s
	}
	return target
}

func toLogicalType(s *schema) model.LogicalType {
	switch s.Type.primary() {
	case "object":
		return model.LogicalObject
	case "array":
		return model.LogicalArray
	case "integer":
		return model.LogicalInteger
	case "number":
		return model.LogicalNumber
	case "boolean":
		return model.LogicalBoolean
	case "string":
		switch s.Format {
		case "date":
			return model.LogicalDate
		case "date-time":
			return model.LogicalTimestampTZ
		case "uuid":
			return model.LogicalUUID
		case "time":
			return model.LogicalTime
		default:
			return model.LogicalString
		}
	default:
		return model.LogicalString
	}
}
