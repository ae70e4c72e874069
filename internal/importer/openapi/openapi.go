// Package openapi imports OAS 3.x component schemas into the canonical
// model using pb33f/libopenapi. Paths and operations are out of scope for
// the core (spec.md §4.1); only `components.schemas` is consumed.
package openapi

import (
	"sort"

	"github.com/pb33f/libopenapi"
	"github.com/pb33f/libopenapi/datamodel/high/base"

	"github.com/marmotdata/schemakit/internal/diagnostics"
	"github.com/marmotdata/schemakit/internal/model"
)

// Import parses an OAS 3.x document into one Table per entry under
// `components.schemas`.
func Import(data []byte) ([]*model.Table, diagnostics.Diagnostics) {
	var diags diagnostics.Diagnostics

	doc, err := libopenapi.NewDocument(data)
	if err != nil {
		diags.Addf(diagnostics.Error, "openapi: malformed document: %v", err)
		return nil, diags
	}

	docModel, errs := doc.BuildV3Model()
	for _, e := range errs {
		diags.Addf(diagnostics.Warning, "openapi: %v", e)
	}
	if docModel == nil {
		diags.Addf(diagnostics.Error, "openapi: document did not build a valid OAS 3.x model")
		return nil, diags
	}

	if docModel.Model.Components == nil || docModel.Model.Components.Schemas == nil {
		diags.Addf(diagnostics.Warning, "openapi: document defines no components.schemas")
		return nil, diags
	}

	var names []string
	schemas := docModel.Model.Components.Schemas
	for pair := schemas.First(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key())
	}
	sort.Strings(names)

	var tables []*model.Table
	for _, name := range names {
		proxy, _ := schemas.Get(name)
		sch, err := proxy.BuildSchema()
		if err != nil {
			diags.Addf(diagnostics.Warning, "openapi: schema %q: %v", name, err)
			continue
		}
		tables = append(tables, schemaToTable(name, sch, &diags))
	}

	return tables, diags
}

func schemaToTable(name string, s *base.Schema, diags *diagnostics.Diagnostics) *model.Table {
	tbl := model.NewTable(model.Postgres, name, "", "", true)

	required := make(map[string]bool)
	for _, r := range s.Required {
		required[r] = true
	}

	if s.Properties != nil {
		var names []string
		for pair := s.Properties.First(); pair != nil; pair = pair.Next() {
			names = append(names, pair.Key())
		}
		sort.Strings(names)

		for _, pname := range names {
			proxy, _ := s.Properties.Get(pname)
			child, err := proxy.BuildSchema()
			if err != nil {
				diags.Addf(diagnostics.Warning, "openapi: %s.%s: %v", name, pname, err)
				continue
			}
			col := schemaToColumn(pname, child, diags)
			col.Nullable = !required[pname]
			tbl.AddColumn(col)
		}
	}

	return tbl
}

func schemaToColumn(name string, s *base.Schema, diags *diagnostics.Diagnostics) *model.Column {
	col := model.NewColumn(name, toLogicalType(s))
	col.Description = s.Description
	if s.Default != nil {
		col.Default = s.Default
	}

	switch col.LogicalType {
	case model.LogicalObject:
		if s.Properties != nil {
			required := make(map[string]bool)
			for _, r := range s.Required {
				required[r] = true
			}
			var names []string
			for pair := s.Properties.First(); pair != nil; pair = pair.Next() {
				names = append(names, pair.Key())
			}
			sort.Strings(names)
			for _, pname := range names {
				proxy, _ := s.Properties.Get(pname)
				child, err := proxy.BuildSchema()
				if err != nil {
					diags.Addf(diagnostics.Warning, "openapi: %s.%s: %v", name, pname, err)
					continue
				}
				childCol := schemaToColumn(pname, child, diags)
				childCol.Nullable = !required[pname]
				col.WithProperty(childCol)
			}
		}
	case model.LogicalArray:
		if s.Items != nil && s.Items.IsA() {
			itemSchema, err := s.Items.A.BuildSchema()
			if err == nil {
				col.WithItems(schemaToColumn(model.ArrayPathToken, itemSchema, diags))
			}
		}
	}

	return col
}

func toLogicalType(s *base.Schema) model.LogicalType {
	t := "object"
	if len(s.Type) > 0 {
		t = s.Type[0]
	}
	switch t {
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
		default:
			return model.LogicalString
		}
	default:
		return model.LogicalString
	}
}
