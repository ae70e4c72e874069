// Package protobuf renders Tables back into .proto message definitions,
// the inverse of internal/importer/protobuf. Field numbers are not part
// of the canonical model, so this package assigns them sequentially in
// column order, matching the field order the importer itself produced
// when assembling that Table from a DescriptorProto.
package protobuf

import (
	"fmt"
	"strings"

	"github.com/marmotdata/schemakit/internal/model"
)

var scalarTypeNames = map[model.LogicalType]string{
	model.LogicalString:  "string",
	model.LogicalBytes:   "bytes",
	model.LogicalInteger: "int64",
	model.LogicalNumber:  "double",
	model.LogicalBoolean: "bool",
}

// Export renders every table as a top-level message, in the order given.
func Export(tables []*model.Table) (string, error) {
	var b strings.Builder
	b.WriteString("syntax = \"proto3\";\n\n")

	for i, tbl := range tables {
		if i > 0 {
			b.WriteString("\n")
		}
		writeMessage(&b, tbl.Name, tbl.Columns)
	}
	return b.String(), nil
}

func writeMessage(b *strings.Builder, name string, columns []*model.Column) {
	fmt.Fprintf(b, "message %s {\n", name)
	for i, col := range columns {
		writeField(b, col, i+1)
	}
	b.WriteString("}\n")
}

func writeField(b *strings.Builder, col *model.Column, number int) {
	switch col.LogicalType {
	case model.LogicalArray:
		elemType, repeated := fieldType(col.Items)
		_ = repeated
		fmt.Fprintf(b, "\trepeated %s %s = %d;\n", elemType, col.Name, number)
	case model.LogicalObject:
		typeName := objectTypeName(col)
		fmt.Fprintf(b, "\t%s %s = %d;\n", typeName, col.Name, number)
	default:
		typeName, _ := fieldType(col)
		fmt.Fprintf(b, "\t%s %s = %d;\n", typeName, col.Name, number)
	}
}

func objectTypeName(col *model.Column) string {
	if len(col.Relationships) > 0 {
		return col.Relationships[0].RelationshipID
	}
	if col.PhysicalType != "" {
		return col.PhysicalType
	}
	return strings.Title(col.Name)
}

func fieldType(col *model.Column) (string, bool) {
	if col == nil {
		return "string", false
	}
	switch col.LogicalType {
	case model.LogicalObject:
		return objectTypeName(col), false
	case model.LogicalArray:
		elemType, _ := fieldType(col.Items)
		return elemType, true
	default:
		if col.PhysicalType != "" {
			return col.PhysicalType, false
		}
		if name, ok := scalarTypeNames[col.LogicalType]; ok {
			return name, false
		}
		return "string", false
	}
}
