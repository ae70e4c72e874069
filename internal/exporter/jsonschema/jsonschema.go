// Package jsonschema renders Tables back into JSON Schema documents, the
// inverse of internal/importer/jsonschema. The first table becomes the
// root object schema; any further tables are emitted as entries under
// "definitions" so a round trip through both packages is a fixed point
// for the shapes the importer understands (spec.md §4.1).
package jsonschema

import (
	"encoding/json"
	"sort"

	"github.com/marmotdata/schemakit/internal/model"
)

type schema struct {
	Type        []string           `json:"type,omitempty"`
	Properties  map[string]*schema `json:"properties,omitempty"`
	Items       *schema            `json:"items,omitempty"`
	Required    []string           `json:"required,omitempty"`
	Description string             `json:"description,omitempty"`
	Enum        []interface{}      `json:"enum,omitempty"`
	Default     interface{}        `json:"default,omitempty"`
	Examples    []interface{}      `json:"examples,omitempty"`
	Format      string             `json:"format,omitempty"`
	Definitions map[string]*schema `json:"definitions,omitempty"`
}

// Export renders tables[0] as the root schema, with tables[1:] nested
// under "definitions" keyed by table name.
func Export(tables []*model.Table) ([]byte, error) {
	if len(tables) == 0 {
		return json.MarshalIndent(&schema{Type: []string{"object"}}, "", "  ")
	}

	root := tableToSchema(tables[0])
	if len(tables) > 1 {
		root.Definitions = make(map[string]*schema, len(tables)-1)
		for _, tbl := range tables[1:] {
			root.Definitions[tbl.Name] = tableToSchema(tbl)
		}
	}
	return json.MarshalIndent(root, "", "  ")
}

func tableToSchema(tbl *model.Table) *schema {
	s := &schema{Type: []string{"object"}}
	if len(tbl.Columns) == 0 {
		return s
	}

	s.Properties = make(map[string]*schema, len(tbl.Columns))
	names := make([]string, 0, len(tbl.Columns))
	for _, col := range tbl.Columns {
		names = append(names, col.Name)
	}
	sort.Strings(names)

	byName := make(map[string]*model.Column, len(tbl.Columns))
	for _, col := range tbl.Columns {
		byName[col.Name] = col
	}

	for _, name := range names {
		col := byName[name]
		s.Properties[name] = columnToSchema(col)
		if !col.Nullable {
			s.Required = append(s.Required, name)
		}
	}
	sort.Strings(s.Required)

	return s
}

func columnToSchema(col *model.Column) *schema {
	s := &schema{
		Type:        []string{toJSONType(col.LogicalType)},
		Description: col.Description,
		Default:     col.Default,
		Examples:    col.ExampleValues,
		Format:      toJSONFormat(col.LogicalType),
	}
	for _, v := range col.EnumValues {
		s.Enum = append(s.Enum, v)
	}
	if col.Nullable {
		s.Type = append(s.Type, "null")
	}

	switch col.LogicalType {
	case model.LogicalObject:
		if len(col.Properties) > 0 {
			s.Properties = make(map[string]*schema, len(col.Properties))
			for _, child := range col.Properties {
				s.Properties[child.Name] = columnToSchema(child)
				if !child.Nullable {
					s.Required = append(s.Required, child.Name)
				}
			}
			sort.Strings(s.Required)
		}
	case model.LogicalArray:
		if col.Items != nil {
			s.Items = columnToSchema(col.Items)
		}
	}

	return s
}

func toJSONType(lt model.LogicalType) string {
	switch lt {
	case model.LogicalObject:
		return "object"
	case model.LogicalArray:
		return "array"
	case model.LogicalInteger:
		return "integer"
	case model.LogicalNumber:
		return "number"
	case model.LogicalBoolean:
		return "boolean"
	default:
		return "string"
	}
}

func toJSONFormat(lt model.LogicalType) string {
	switch lt {
	case model.LogicalDate:
		return "date"
	case model.LogicalTimestamp, model.LogicalTimestampTZ:
		return "date-time"
	case model.LogicalUUID:
		return "uuid"
	case model.LogicalTime:
		return "time"
	default:
		return ""
	}
}
