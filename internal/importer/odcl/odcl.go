// Package odcl imports the legacy Open Data Contract Language format, one
// model per file, into the canonical model. ODCL is ODCS's predecessor
// (spec.md GLOSSARY); its field shape is a simpler, single-schema
// document with no servers/ports section.
package odcl

import (
	"github.com/marmotdata/schemakit/internal/diagnostics"
	"github.com/marmotdata/schemakit/internal/format/yamlcodec"
	"github.com/marmotdata/schemakit/internal/model"
)

// Field is one ODCL field entry. Quality is retained as an arbitrary
// nested structure, since the core never interprets quality rule content.
type Field struct {
	Name        string                   `yaml:"name"`
	Type        string                   `yaml:"type"`
	Description string                   `yaml:"description,omitempty"`
	Ref         string                   `yaml:"$ref,omitempty"`
	Quality     []map[string]interface{} `yaml:"quality,omitempty"`
	Fields      []*Field                 `yaml:"fields,omitempty"`
}

// Document is the top-level ODCL document: one model per file.
type Document struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description,omitempty"`
	Fields      []*Field `yaml:"fields"`
}

var odclTypeMap = map[string]model.LogicalType{
	"string": model.LogicalString, "int": model.LogicalInteger, "integer": model.LogicalInteger,
	"float": model.LogicalNumber, "decimal": model.LogicalNumber, "bool": model.LogicalBoolean,
	"boolean": model.LogicalBoolean, "date": model.LogicalDate, "datetime": model.LogicalTimestamp,
	"object": model.LogicalObject, "array": model.LogicalArray,
}

// Import parses a single ODCL document into its one Table.
func Import(data []byte) (*model.Table, diagnostics.Diagnostics) {
	var diags diagnostics.Diagnostics

	var doc Document
	if err := yamlcodec.Unmarshal(data, &doc); err != nil {
		diags.Addf(diagnostics.Error, "odcl: malformed document: %v", err)
		return nil, diags
	}

	tbl := model.NewTable(model.Postgres, doc.Name, "", "", true)
	tbl.Description = doc.Description
	for _, f := range doc.Fields {
		tbl.AddColumn(fieldToColumn(f, &diags))
	}
	return tbl, diags
}

func fieldToColumn(f *Field, diags *diagnostics.Diagnostics) *model.Column {
	lt, ok := odclTypeMap[f.Type]
	if !ok {
		diags.Addf(diagnostics.Warning, "odcl: field %q has unknown type %q, defaulting to string", f.Name, f.Type)
		lt = model.LogicalString
	}

	col := model.NewColumn(f.Name, lt)
	col.Description = f.Description
	for _, q := range f.Quality {
		col.QualityRules = append(col.QualityRules, model.QualityRule(q))
	}
	if f.Ref != "" {
		col.SetFormatMetadata("odcl", map[string]interface{}{"$ref": f.Ref})
	}

	if lt == model.LogicalObject {
		for _, child := range f.Fields {
			col.WithProperty(fieldToColumn(child, diags))
		}
	}

	return col
}
