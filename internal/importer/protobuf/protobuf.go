// Package protobuf imports .proto message definitions into the canonical
// model. No textual .proto parser exists among the retrieved
// dependencies, so this package hand-rolls a brace-matching tokenizer
// (see DESIGN.md) and represents each message as a
// descriptorpb.DescriptorProto, the canonical parsed-descriptor shape
// google.golang.org/protobuf already defines, before converting to Tables.
package protobuf

import (
	"regexp"
	"strconv"
	"strings"

	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/marmotdata/schemakit/internal/diagnostics"
	"github.com/marmotdata/schemakit/internal/model"
)

var (
	messagePattern = regexp.MustCompile(`(?m)^\s*message\s+(\w+)\s*\{`)
	fieldPattern   = regexp.MustCompile(`^(repeated\s+)?(\w[\w.]*)\s+(\w+)\s*=\s*(\d+)\s*;`)
)

// Import parses .proto source into one Table per top-level `message`.
// Nested message types produce additional Tables rather than being
// flattened, and the referencing field becomes a typed reference by name
// (spec.md §4.1).
func Import(source string) ([]*model.Table, diagnostics.Diagnostics) {
	var diags diagnostics.Diagnostics

	descriptors := parseMessages(source, &diags)
	if len(descriptors) == 0 {
		diags.Addf(diagnostics.Warning, "protobuf: no message definitions found")
		return nil, diags
	}

	known := make(map[string]bool, len(descriptors))
	for _, d := range descriptors {
		known[d.GetName()] = true
	}

	var tables []*model.Table
	for _, d := range descriptors {
		tables = append(tables, descriptorToTable(d, known, &diags))
	}
	return tables, diags
}

// parseMessages extracts each "message Name { ... }" block, nested ones
// included, tracking brace depth so nested messages do not prematurely
// close the outer block, and parses the field lines directly inside each
// into a DescriptorProto (a nested message's fields belong only to it).
func parseMessages(source string, diags *diagnostics.Diagnostics) []*descriptorpb.DescriptorProto {
	var out []*descriptorpb.DescriptorProto

	locs := messagePattern.FindAllStringSubmatchIndex(source, -1)
	for _, loc := range locs {
		name := source[loc[2]:loc[3]]
		bodyStart := loc[1]
		bodyEnd := matchBrace(source, bodyStart-1)
		if bodyEnd < 0 {
			diags.Addf(diagnostics.Warning, "protobuf: unterminated message %q", name)
			continue
		}
		body := source[bodyStart:bodyEnd]

		desc := &descriptorpb.DescriptorProto{Name: strPtr(name)}
		nested := 0
		for _, line := range strings.Split(body, "\n") {
			line = strings.TrimSpace(line)
			if nested > 0 || strings.HasPrefix(line, "message ") {
				nested += strings.Count(line, "{") - strings.Count(line, "}")
				continue
			}
			if line == "" || strings.HasPrefix(line, "//") {
				continue
			}
			m := fieldPattern.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			repeated := m[1] != ""
			fieldType := m[2]
			fieldName := m[3]
			number, _ := strconv.Atoi(m[4])

			label := descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL
			if repeated {
				label = descriptorpb.FieldDescriptorProto_LABEL_REPEATED
			}
			desc.Field = append(desc.Field, &descriptorpb.FieldDescriptorProto{
				Name:     strPtr(fieldName),
				Number:   int32Ptr(int32(number)),
				Label:    &label,
				TypeName: strPtr(fieldType),
			})
		}
		out = append(out, desc)
	}

	return out
}

// matchBrace finds the index of the '{' at openIdx's matching '}',
// returning the position just past it, or -1 if unbalanced.
func matchBrace(source string, openIdx int) int {
	depth := 0
	for i := openIdx; i < len(source); i++ {
		switch source[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

var scalarTypes = map[string]model.LogicalType{
	"string": model.LogicalString, "bytes": model.LogicalBytes,
	"int32": model.LogicalInteger, "int64": model.LogicalInteger,
	"uint32": model.LogicalInteger, "uint64": model.LogicalInteger,
	"sint32": model.LogicalInteger, "sint64": model.LogicalInteger,
	"fixed32": model.LogicalInteger, "fixed64": model.LogicalInteger,
	"float": model.LogicalNumber, "double": model.LogicalNumber,
	"bool": model.LogicalBoolean,
}

func descriptorToTable(d *descriptorpb.DescriptorProto, known map[string]bool, diags *diagnostics.Diagnostics) *model.Table {
	tbl := model.NewTable(model.Postgres, d.GetName(), "", "", true)

	// Field names, including reserved words of languages the schema may
	// target (type, class, package, …), are carried through verbatim.
	for _, f := range d.GetField() {
		name := f.GetName()

		var col *model.Column
		typeName := strings.TrimPrefix(f.GetTypeName(), ".")
		if lt, ok := scalarTypes[typeName]; ok {
			col = model.NewColumn(name, lt)
			col.PhysicalType = typeName
		} else if known[typeName] {
			col = model.NewColumn(name, model.LogicalObject)
			col.Relationships = append(col.Relationships, model.RelationshipRef{RelationshipID: typeName})
			col.PhysicalType = typeName
		} else {
			col = model.NewColumn(name, model.LogicalString)
			col.PhysicalType = typeName
			diags.Addf(diagnostics.Warning, "protobuf: field %q.%q has unresolved type %q", d.GetName(), name, typeName)
		}

		col.Nullable = f.GetLabel() == descriptorpb.FieldDescriptorProto_LABEL_REPEATED
		if f.GetLabel() == descriptorpb.FieldDescriptorProto_LABEL_REPEATED {
			inner := col
			col = model.NewColumn(name, model.LogicalArray)
			col.WithItems(inner)
			col.Nullable = true
		}

		tbl.AddColumn(col)
	}

	return tbl
}

func strPtr(s string) *string { return &s }
func int32Ptr(i int32) *int32 { return &i }
