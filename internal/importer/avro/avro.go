// Package avro imports Avro record schemas into the canonical model using
// hamba/avro/v2's schema parser.
package avro

import (
	"github.com/hamba/avro/v2"

	"github.com/marmotdata/schemakit/internal/diagnostics"
	"github.com/marmotdata/schemakit/internal/model"
)

// Import parses an Avro schema document (JSON schema text) into one Table
// for the top-level `record`; nested records become the nested Properties
// of the column that holds them, not Tables of their own. Namespaces are
// preserved as table metadata but never participate in naming (spec.md §4.1).
func Import(schemaJSON string) ([]*model.Table, diagnostics.Diagnostics) {
	var diags diagnostics.Diagnostics

	parsed, err := avro.Parse(schemaJSON)
	if err != nil {
		diags.Addf(diagnostics.Error, "avro: malformed schema: %v", err)
		return nil, diags
	}

	record, ok := parsed.(*avro.RecordSchema)
	if !ok {
		diags.Addf(diagnostics.Error, "avro: top-level schema must be a record, got %s", parsed.Type())
		return nil, diags
	}

	var tables []*model.Table
	seen := make(map[string]bool)
	top := collectRecords(record, &tables, seen, &diags)
	return []*model.Table{top}, diags
}

func collectRecords(record *avro.RecordSchema, tables *[]*model.Table, seen map[string]bool, diags *diagnostics.Diagnostics) *model.Table {
	for _, t := range *tables {
		if t.Name == record.Name() && t.Schema == record.Namespace() {
			return t
		}
	}
	seen[record.FullName()] = true

	tbl := model.NewTable(model.Kafka, record.Name(), "", record.Namespace(), true)
	tbl.SetFormatMetadata("avro", map[string]interface{}{"namespace": record.Namespace()})

	for _, f := range record.Fields() {
		col := avroFieldToColumn(f, tables, seen, diags)
		tbl.AddColumn(col)
	}

	*tables = append(*tables, tbl)
	return tbl
}

func avroFieldToColumn(f *avro.Field, tables *[]*model.Table, seen map[string]bool, diags *diagnostics.Diagnostics) *model.Column {
	fieldType := f.Type()
	nullable := false

	if union, ok := fieldType.(*avro.UnionSchema); ok {
		resolved, isNullable := resolveUnion(union)
		nullable = isNullable
		fieldType = resolved
	}

	col := avroTypeToColumn(f.Name(), fieldType, tables, seen, diags)
	col.Nullable = nullable
	if f.HasDefault() {
		col.Default = f.Default()
	}
	if f.Doc() != "" {
		col.Description = f.Doc()
	}
	return col
}

// resolveUnion implements the ["null", T] convention: nullable = true and
// the effective type is T.
func resolveUnion(union *avro.UnionSchema) (avro.Schema, bool) {
	var nullable bool
	var effective avro.Schema
	for _, t := range union.Types() {
		if t.Type() == avro.Null {
			nullable = true
			continue
		}
		effective = t
	}
	if effective == nil {
		effective = union
	}
	return effective, nullable
}

func avroTypeToColumn(name string, t avro.Schema, tables *[]*model.Table, seen map[string]bool, diags *diagnostics.Diagnostics) *model.Column {
	switch s := t.(type) {
	case *avro.RecordSchema:
		nested := collectRecords(s, tables, seen, diags)
		col := model.NewColumn(name, model.LogicalObject)
		for _, nc := range nested.Columns {
			col.WithProperty(nc)
		}
		return col
	case *avro.ArraySchema:
		col := model.NewColumn(name, model.LogicalArray)
		col.WithItems(avroTypeToColumn(model.ArrayPathToken, s.Items(), tables, seen, diags))
		return col
	default:
		col := model.NewColumn(name, primitiveLogicalType(t.Type()))
		col.PhysicalType = string(t.Type())
		return col
	}
}

func primitiveLogicalType(t avro.Type) model.LogicalType {
	switch t {
	case avro.String:
		return model.LogicalString
	case avro.Bytes, avro.Fixed:
		return model.LogicalBytes
	case avro.Int, avro.Long:
		return model.LogicalInteger
	case avro.Float, avro.Double:
		return model.LogicalNumber
	case avro.Boolean:
		return model.LogicalBoolean
	default:
		return model.LogicalString
	}
}
