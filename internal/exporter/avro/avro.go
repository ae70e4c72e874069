// Package avro renders Tables back into Avro record schema JSON, the
// inverse of internal/importer/avro. hamba/avro/v2 exposes schema
// *parsing* (avro.Parse) but no schema *construction* API, so this
// package builds the equivalent schema JSON by hand with encoding/json,
// the same way internal/exporter/jsonschema builds JSON Schema text
// (see DESIGN.md).
package avro

import (
	"encoding/json"

	"github.com/marmotdata/schemakit/internal/model"
)

type field struct {
	Name    string      `json:"name"`
	Type    interface{} `json:"type"`
	Doc     string      `json:"doc,omitempty"`
	Default interface{} `json:"default,omitempty"`
}

type record struct {
	Type      string  `json:"type"`
	Name      string  `json:"name"`
	Namespace string  `json:"namespace,omitempty"`
	Fields    []field `json:"fields"`
}

type arrayType struct {
	Type  string      `json:"type"`
	Items interface{} `json:"items"`
}

// Export renders a Table as an Avro record schema document. The
// namespace is taken from Table.Schema, restoring what the importer
// stashed there (spec.md §4.1).
func Export(tbl *model.Table) ([]byte, error) {
	return json.MarshalIndent(tableToRecord(tbl), "", "  ")
}

func tableToRecord(tbl *model.Table) *record {
	r := &record{Type: "record", Name: tbl.Name, Namespace: tbl.Schema}
	for _, col := range tbl.Columns {
		r.Fields = append(r.Fields, columnToField(col))
	}
	return r
}

func columnToField(col *model.Column) field {
	f := field{Name: col.Name, Doc: col.Description}
	if col.Default != nil {
		f.Default = col.Default
	}

	avroType := columnToAvroType(col)
	if col.Nullable {
		f.Type = []interface{}{"null", avroType}
	} else {
		f.Type = avroType
	}
	return f
}

func columnToAvroType(col *model.Column) interface{} {
	switch col.LogicalType {
	case model.LogicalObject:
		r := &record{Type: "record", Name: col.Name}
		for _, child := range col.Properties {
			r.Fields = append(r.Fields, columnToField(child))
		}
		return r
	case model.LogicalArray:
		items := interface{}("string")
		if col.Items != nil {
			items = columnToAvroType(col.Items)
		}
		return &arrayType{Type: "array", Items: items}
	default:
		if col.PhysicalType != "" {
			return col.PhysicalType
		}
		return primitiveAvroType(col.LogicalType)
	}
}

func primitiveAvroType(lt model.LogicalType) string {
	switch lt {
	case model.LogicalInteger:
		return "long"
	case model.LogicalNumber:
		return "double"
	case model.LogicalBoolean:
		return "boolean"
	case model.LogicalBytes:
		return "bytes"
	default:
		return "string"
	}
}
