package model

import "fmt"

// Contact is a governance contact block shared by Tables and Relationships.
type Contact struct {
	Name    string `json:"name,omitempty" yaml:"name,omitempty"`
	Email   string `json:"email,omitempty" yaml:"email,omitempty"`
	Channel string `json:"channel,omitempty" yaml:"channel,omitempty"`
}

// SLA is a single service-level agreement entry.
type SLA struct {
	Name        string `json:"name" yaml:"name"`
	Target      string `json:"target,omitempty" yaml:"target,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Table is a named collection of ordered Columns plus the metadata
// described in spec.md §3.
type Table struct {
	ID                 string          `json:"id" yaml:"id"`
	Name               string          `json:"name" yaml:"name"`
	DatabaseType       DatabaseType    `json:"database_type" yaml:"database_type"`
	Catalog            string          `json:"catalog,omitempty" yaml:"catalog,omitempty"`
	Schema             string          `json:"schema,omitempty" yaml:"schema,omitempty"`
	MedallionLayers    []MedallionLayer `json:"medallion_layers,omitempty" yaml:"medallion_layers,omitempty"`
	SCDPattern         *SCDPattern     `json:"scd_pattern,omitempty" yaml:"scd_pattern,omitempty"`
	DataVault          *DataVaultClass `json:"data_vault,omitempty" yaml:"data_vault,omitempty"`
	ModelingLevel      *ModelingLevel  `json:"modeling_level,omitempty" yaml:"modeling_level,omitempty"`
	Tags               []Tag           `json:"-" yaml:"-"`
	PositionX          float64         `json:"position_x,omitempty" yaml:"position_x,omitempty"`
	PositionY          float64         `json:"position_y,omitempty" yaml:"position_y,omitempty"`
	TechNotes          string          `json:"tech_notes,omitempty" yaml:"tech_notes,omitempty"`
	Contact            *Contact        `json:"contact,omitempty" yaml:"contact,omitempty"`
	SLAs               []SLA           `json:"slas,omitempty" yaml:"slas,omitempty"`
	InfrastructureType string          `json:"infrastructure_type,omitempty" yaml:"infrastructure_type,omitempty"`
	QualityRules       []QualityRule   `json:"quality_rules,omitempty" yaml:"quality_rules,omitempty"`
	ParseErrors        []string        `json:"parse_errors,omitempty" yaml:"parse_errors,omitempty"`

	Columns []*Column `json:"columns" yaml:"columns"`

	FormatMetadata map[string]map[string]interface{} `json:"format_metadata,omitempty" yaml:"format_metadata,omitempty"`
}

// NewTable constructs a Table. When deterministic is true, the identity is
// derived from (databaseType, name, catalog, schema); otherwise a fresh
// random UUID is used.
func NewTable(databaseType DatabaseType, name, catalog, schema string, deterministic bool) *Table {
	id := NewTableID()
	if deterministic {
		id = DeriveTableID(databaseType, name, catalog, schema)
	}
	return &Table{
		ID:           id,
		Name:         name,
		DatabaseType: databaseType,
		Catalog:      catalog,
		Schema:       schema,
	}
}

// AddColumn appends a column to the table's top-level scope.
func (t *Table) AddColumn(col *Column) *Table {
	t.Columns = append(t.Columns, col)
	return t
}

// ColumnByName returns the top-level column with the given name, or nil.
func (t *Table) ColumnByName(name string) *Column {
	for _, c := range t.Columns {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// SetPrimaryKey marks the named columns, in the given order, as the
// table's composite primary key, assigning contiguous 1-based positions.
// It returns an error if any name does not resolve to a top-level column.
func (t *Table) SetPrimaryKey(columnNames []string) error {
	for _, c := range t.Columns {
		c.PrimaryKey = false
		c.PrimaryKeyPosition = 0
	}
	for i, name := range columnNames {
		col := t.ColumnByName(name)
		if col == nil {
			return fmt.Errorf("primary key column %q not found on table %q", name, t.Name)
		}
		col.PrimaryKey = true
		col.PrimaryKeyPosition = i + 1
		col.Nullable = false
	}
	return nil
}

// SetPartitionKey marks the named columns, in the given order, as the
// table's partitioning key, assigning contiguous 1-based positions.
func (t *Table) SetPartitionKey(columnNames []string) error {
	for _, c := range t.Columns {
		c.Partition = false
		c.PartitionPosition = 0
	}
	for i, name := range columnNames {
		col := t.ColumnByName(name)
		if col == nil {
			return fmt.Errorf("partition column %q not found on table %q", name, t.Name)
		}
		col.Partition = true
		col.PartitionPosition = i + 1
	}
	return nil
}

// SetFormatMetadata stashes opaque per-format data on the table.
func (t *Table) SetFormatMetadata(format string, data map[string]interface{}) {
	if t.FormatMetadata == nil {
		t.FormatMetadata = make(map[string]map[string]interface{})
	}
	t.FormatMetadata[format] = data
}

// QualifiedName returns "schema.name" when a schema is set, else just name.
func (t *Table) QualifiedName() string {
	if t.Schema == "" {
		return t.Name
	}
	return t.Schema + "." + t.Name
}

// tableAlias mirrors Table but exposes Tags in its canonical rendered
// string form, so the YAML codec never has to know about the Tag sum type.
type tableAlias struct {
	ID                 string                             `yaml:"id"`
	Name               string                             `yaml:"name"`
	DatabaseType       DatabaseType                       `yaml:"database_type"`
	Catalog            string                             `yaml:"catalog,omitempty"`
	Schema             string                             `yaml:"schema,omitempty"`
	MedallionLayers    []MedallionLayer                   `yaml:"medallion_layers,omitempty"`
	SCDPattern         *SCDPattern                        `yaml:"scd_pattern,omitempty"`
	DataVault          *DataVaultClass                    `yaml:"data_vault,omitempty"`
	ModelingLevel      *ModelingLevel                     `yaml:"modeling_level,omitempty"`
	Tags               []string                           `yaml:"tags,omitempty"`
	PositionX          float64                            `yaml:"position_x,omitempty"`
	PositionY          float64                            `yaml:"position_y,omitempty"`
	TechNotes          string                             `yaml:"tech_notes,omitempty"`
	Contact            *Contact                           `yaml:"contact,omitempty"`
	SLAs               []SLA                              `yaml:"slas,omitempty"`
	InfrastructureType string                             `yaml:"infrastructure_type,omitempty"`
	QualityRules       []QualityRule                      `yaml:"quality_rules,omitempty"`
	ParseErrors        []string                           `yaml:"parse_errors,omitempty"`
	Columns            []*Column                          `yaml:"columns"`
	FormatMetadata     map[string]map[string]interface{} `yaml:"format_metadata,omitempty"`
}

// MarshalYAML renders Table.Tags to their canonical string form.
func (t Table) MarshalYAML() (interface{}, error) {
	return tableAlias{
		ID: t.ID, Name: t.Name, DatabaseType: t.DatabaseType, Catalog: t.Catalog, Schema: t.Schema,
		MedallionLayers: t.MedallionLayers, SCDPattern: t.SCDPattern, DataVault: t.DataVault,
		ModelingLevel: t.ModelingLevel, Tags: RenderTags(t.Tags), PositionX: t.PositionX, PositionY: t.PositionY,
		TechNotes: t.TechNotes, Contact: t.Contact, SLAs: t.SLAs, InfrastructureType: t.InfrastructureType,
		QualityRules: t.QualityRules, ParseErrors: t.ParseErrors, Columns: t.Columns, FormatMetadata: t.FormatMetadata,
	}, nil
}

// UnmarshalYAML parses Table.Tags back from their canonical string form.
func (t *Table) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var a tableAlias
	if err := unmarshal(&a); err != nil {
		return err
	}
	*t = Table{
		ID: a.ID, Name: a.Name, DatabaseType: a.DatabaseType, Catalog: a.Catalog, Schema: a.Schema,
		MedallionLayers: a.MedallionLayers, SCDPattern: a.SCDPattern, DataVault: a.DataVault,
		ModelingLevel: a.ModelingLevel, Tags: ParseTags(a.Tags), PositionX: a.PositionX, PositionY: a.PositionY,
		TechNotes: a.TechNotes, Contact: a.Contact, SLAs: a.SLAs, InfrastructureType: a.InfrastructureType,
		QualityRules: a.QualityRules, ParseErrors: a.ParseErrors, Columns: a.Columns, FormatMetadata: a.FormatMetadata,
	}
	return nil
}
