// Package odcs imports Open Data Contract Standard v3.1.0 documents into
// the canonical model.
package odcs

import (
	"sort"

	"github.com/marmotdata/schemakit/internal/diagnostics"
	"github.com/marmotdata/schemakit/internal/format/yamlcodec"
	"github.com/marmotdata/schemakit/internal/model"
)

// Property is one ODCS 3.1.0 schema property. Properties is declared as
// an array in the 3.1.0 spec, though some source documents encode it as a
// map; Import accepts both shapes (spec.md §9 open question).
type Property struct {
	Name             string                    `yaml:"name"`
	LogicalType      string                    `yaml:"logicalType"`
	PhysicalType     string                    `yaml:"physicalType,omitempty"`
	Required         bool                      `yaml:"required,omitempty"`
	Description      string                    `yaml:"description,omitempty"`
	Quality          []map[string]interface{}  `yaml:"quality,omitempty"`
	Properties       PropertyList              `yaml:"properties,omitempty"`
	Items            *Property                 `yaml:"items,omitempty"`
	Ref              string                    `yaml:"$ref,omitempty"`
	CustomProperties map[string]interface{}    `yaml:"customProperties,omitempty"`
}

// PropertyList accepts both the 3.1.0 array shape and the map shape seen
// in some source documents, normalizing either into an ordered slice (map
// keys are sorted for determinism, since a map carries no source order).
type PropertyList []*Property

func (pl *PropertyList) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var asList []*Property
	if err := unmarshal(&asList); err == nil {
		*pl = asList
		return nil
	}

	var asMap map[string]*Property
	if err := unmarshal(&asMap); err != nil {
		return err
	}
	names := make([]string, 0, len(asMap))
	for name := range asMap {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]*Property, 0, len(names))
	for _, name := range names {
		p := asMap[name]
		if p.Name == "" {
			p.Name = name
		}
		out = append(out, p)
	}
	*pl = out
	return nil
}

// Schema is one ODCS 3.1.0 "schema[]" entry, which becomes one Table.
type Schema struct {
	Name       string       `yaml:"name"`
	Properties PropertyList `yaml:"properties"`
}

// Server carries the database type an ODCS document's tables belong to.
type Server struct {
	Type   string `yaml:"type"`
	Schema string `yaml:"schema,omitempty"`
}

// Document is the top-level ODCS 3.1.0 DataContract shape.
type Document struct {
	APIVersion       string                 `yaml:"apiVersion"`
	Kind             string                 `yaml:"kind"`
	ID               string                 `yaml:"id"`
	Name             string                 `yaml:"name"`
	Version          string                 `yaml:"version"`
	Status           string                 `yaml:"status"`
	Servers          []Server               `yaml:"servers,omitempty"`
	Schema           []Schema               `yaml:"schema"`
	Tags             []string               `yaml:"tags,omitempty"`
	CustomProperties map[string]interface{} `yaml:"customProperties,omitempty"`
}

var logicalTypeMap = map[string]model.LogicalType{
	"string": model.LogicalString, "integer": model.LogicalInteger, "number": model.LogicalNumber,
	"boolean": model.LogicalBoolean, "date": model.LogicalDate, "timestamp": model.LogicalTimestamp,
	"object": model.LogicalObject, "array": model.LogicalArray,
}

// Import parses an ODCS 3.1.0 document into one Table per `schema[]`
// entry.
func Import(data []byte) ([]*model.Table, diagnostics.Diagnostics) {
	var diags diagnostics.Diagnostics

	var doc Document
	if err := yamlcodec.Unmarshal(data, &doc); err != nil {
		diags.Addf(diagnostics.Error, "odcs: malformed document: %v", err)
		return nil, diags
	}
	if doc.Kind != "" && doc.Kind != "DataContract" {
		diags.Addf(diagnostics.Warning, "odcs: unexpected kind %q, expected DataContract", doc.Kind)
	}

	dbType := model.Postgres
	schemaName := ""
	if len(doc.Servers) > 0 {
		if dt, ok := serverDatabaseType[doc.Servers[0].Type]; ok {
			dbType = dt
		}
		schemaName = doc.Servers[0].Schema
	}

	var tables []*model.Table
	for _, s := range doc.Schema {
		tbl := model.NewTable(dbType, s.Name, "", schemaName, true)
		tbl.Tags = model.ParseTags(doc.Tags)
		tbl.SetFormatMetadata("odcs", map[string]interface{}{
			"apiVersion": doc.APIVersion, "id": doc.ID, "version": doc.Version,
			"status": doc.Status, "customProperties": doc.CustomProperties,
		})
		for _, p := range s.Properties {
			tbl.AddColumn(propertyToColumn(p, &diags))
		}
		tables = append(tables, tbl)
	}

	return tables, diags
}

var serverDatabaseType = map[string]model.DatabaseType{
	"postgres": model.Postgres, "postgresql": model.Postgres, "mysql": model.MySQL,
	"sqlserver": model.SQLServer, "dynamodb": model.DynamoDB, "cassandra": model.Cassandra,
	"kafka": model.Kafka, "pulsar": model.Pulsar, "databricks": model.DatabricksDelta,
	"glue": model.AWSGlue,
}

func propertyToColumn(p *Property, diags *diagnostics.Diagnostics) *model.Column {
	lt, ok := logicalTypeMap[p.LogicalType]
	if !ok {
		diags.Addf(diagnostics.Warning, "odcs: property %q has unknown logicalType %q, defaulting to string", p.Name, p.LogicalType)
		lt = model.LogicalString
	}

	col := model.NewColumn(p.Name, lt)
	col.PhysicalType = p.PhysicalType
	col.Nullable = !p.Required
	col.Description = p.Description
	col.CustomProperties = p.CustomProperties

	for _, q := range p.Quality {
		col.QualityRules = append(col.QualityRules, model.QualityRule(q))
	}

	if p.Ref != "" {
		col.SetFormatMetadata("odcs", map[string]interface{}{"$ref": p.Ref})
	}

	switch lt {
	case model.LogicalObject:
		for _, child := range p.Properties {
			col.WithProperty(propertyToColumn(child, diags))
		}
	case model.LogicalArray:
		if p.Items != nil {
			col.WithItems(propertyToColumn(p.Items, diags))
		}
	}

	return col
}
