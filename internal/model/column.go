package model

import "strings"

// ArrayPathToken is the path segment used for an ARRAY element scope, so a
// dotted path view never collides with a literal field named "items".
const ArrayPathToken = "[]"

// RelationshipRef is a lightweight reference from a Column to a
// Relationship that involves it.
type RelationshipRef struct {
	RelationshipID string `json:"relationship_id" yaml:"relationship_id"`
}

// AuthoritativeDefinition records an external document describing a
// Column, preserving order of declaration.
type AuthoritativeDefinition struct {
	URL  string `json:"url" yaml:"url"`
	Type string `json:"type,omitempty" yaml:"type,omitempty"`
}

// QualityRule is an opaque JSON object whose top-level "type" field
// distinguishes library/sql/custom rules. The core never interprets its
// contents beyond that field (spec.md §1 Non-goals: executing quality
// rules).
type QualityRule map[string]interface{}

// Type returns the rule's discriminating "type" field, or "" if absent.
func (q QualityRule) Type() string {
	if v, ok := q["type"].(string); ok {
		return v
	}
	return ""
}

// Column belongs to exactly one Table (or, when nested, to a parent
// Column's Properties/Items). Name is unique within its parent scope.
type Column struct {
	Name                     string                    `json:"name" yaml:"name"`
	LogicalType              LogicalType               `json:"logical_type" yaml:"logical_type"`
	PhysicalType             string                    `json:"physical_type,omitempty" yaml:"physical_type,omitempty"`
	PhysicalName             string                    `json:"physical_name,omitempty" yaml:"physical_name,omitempty"`
	Nullable                 bool                      `json:"nullable" yaml:"nullable"`
	PrimaryKey               bool                      `json:"primary_key,omitempty" yaml:"primary_key,omitempty"`
	PrimaryKeyPosition       int                       `json:"primary_key_position,omitempty" yaml:"primary_key_position,omitempty"`
	Unique                   bool                      `json:"unique,omitempty" yaml:"unique,omitempty"`
	Partition                bool                      `json:"partition,omitempty" yaml:"partition,omitempty"`
	PartitionPosition        int                       `json:"partition_position,omitempty" yaml:"partition_position,omitempty"`
	Clustered                bool                      `json:"clustered,omitempty" yaml:"clustered,omitempty"`
	Description              string                    `json:"description,omitempty" yaml:"description,omitempty"`
	BusinessName             string                    `json:"business_name,omitempty" yaml:"business_name,omitempty"`
	Classification           string                    `json:"classification,omitempty" yaml:"classification,omitempty"`
	CriticalDataElement      bool                      `json:"critical_data_element,omitempty" yaml:"critical_data_element,omitempty"`
	EncryptedName            string                    `json:"encrypted_name,omitempty" yaml:"encrypted_name,omitempty"`
	ExampleValues            []interface{}             `json:"example_values,omitempty" yaml:"example_values,omitempty"`
	Default                  interface{}               `json:"default,omitempty" yaml:"default,omitempty"`
	Relationships            []RelationshipRef         `json:"relationships,omitempty" yaml:"relationships,omitempty"`
	AuthoritativeDefinitions []AuthoritativeDefinition `json:"authoritative_definitions,omitempty" yaml:"authoritative_definitions,omitempty"`
	QualityRules             []QualityRule             `json:"quality_rules,omitempty" yaml:"quality_rules,omitempty"`
	EnumValues               []string                  `json:"enum_values,omitempty" yaml:"enum_values,omitempty"`
	Tags                     []Tag                     `json:"-" yaml:"-"`
	CustomProperties         map[string]interface{}    `json:"custom_properties,omitempty" yaml:"custom_properties,omitempty"`

	// Items holds the element Column of an ARRAY-typed column.
	Items *Column `json:"items,omitempty" yaml:"items,omitempty"`
	// Properties holds the ordered field Columns of an OBJECT-typed column.
	Properties []*Column `json:"properties,omitempty" yaml:"properties,omitempty"`

	// FormatMetadata retains per-format data the canonical model does not
	// understand, keyed by format name, so a format round-trip is a fixed
	// point even for fields with no canonical representation.
	FormatMetadata map[string]map[string]interface{} `json:"format_metadata,omitempty" yaml:"format_metadata,omitempty"`
}

// NewColumn constructs a Column with the given name and logical type.
func NewColumn(name string, logicalType LogicalType) *Column {
	return &Column{Name: name, LogicalType: logicalType}
}

// IsNested reports whether the column carries a nested OBJECT or ARRAY
// shape.
func (c *Column) IsNested() bool {
	return c.Items != nil || len(c.Properties) > 0
}

// WithProperty appends a child field Column under this OBJECT-typed
// column and returns it for chaining.
func (c *Column) WithProperty(child *Column) *Column {
	c.LogicalType = LogicalObject
	c.Properties = append(c.Properties, child)
	return c
}

// WithItems sets the ARRAY element Column for this column.
func (c *Column) WithItems(item *Column) *Column {
	c.LogicalType = LogicalArray
	c.Items = item
	return c
}

// SetFormatMetadata stashes opaque per-format data under the given format
// name.
func (c *Column) SetFormatMetadata(format string, data map[string]interface{}) {
	if c.FormatMetadata == nil {
		c.FormatMetadata = make(map[string]map[string]interface{})
	}
	c.FormatMetadata[format] = data
}

// JoinPath joins a parent dotted path and a child name with a dot. An
// empty parent path yields just the child name. For an array element the
// caller passes ArrayPathToken as the child.
func JoinPath(parent, child string) string {
	if parent == "" {
		return child
	}
	return parent + "." + child
}

// ColumnPaths returns a flattened dotted-path view of a Column tree,
// rooted at rootPath, for analytics consumers that want a flat namespace
// derived from the canonical nested tree (spec.md §9 design notes).
func ColumnPaths(root *Column, rootPath string) map[string]*Column {
	out := make(map[string]*Column)
	walkColumnPaths(root, rootPath, out)
	return out
}

func walkColumnPaths(col *Column, path string, out map[string]*Column) {
	if col == nil {
		return
	}
	out[path] = col
	if col.Items != nil {
		walkColumnPaths(col.Items, JoinPath(path, ArrayPathToken), out)
	}
	for _, p := range col.Properties {
		walkColumnPaths(p, JoinPath(path, p.Name), out)
	}
}

// ReservedColumnNames lists identifiers that are preserved verbatim when
// they appear as nested Column names, because nested fields live inside a
// distinct "properties" scope and can never collide with schema-level
// fields of the same name (spec.md invariants).
var ReservedColumnNames = map[string]bool{
	"type":        true,
	"status":      true,
	"name":        true,
	"required":    true,
	"description": true,
}

// SanitizeIdentifier lowercases s and replaces reserved filename
// characters with '-', matching the workspace filename grammar
// (spec.md §4.3).
func SanitizeIdentifier(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '/', ':', '"', '<', '>', '|', '?', '*':
			return '-'
		}
		return r
	}, strings.ToLower(s))
}

// columnAlias mirrors Column but exposes Tags in its canonical rendered
// string form for the YAML codec.
type columnAlias struct {
	Name                     string                             `yaml:"name"`
	LogicalType              LogicalType                        `yaml:"logical_type"`
	PhysicalType             string                             `yaml:"physical_type,omitempty"`
	PhysicalName             string                             `yaml:"physical_name,omitempty"`
	Nullable                 bool                               `yaml:"nullable"`
	PrimaryKey               bool                               `yaml:"primary_key,omitempty"`
	PrimaryKeyPosition       int                                `yaml:"primary_key_position,omitempty"`
	Unique                   bool                               `yaml:"unique,omitempty"`
	Partition                bool                               `yaml:"partition,omitempty"`
	PartitionPosition        int                                `yaml:"partition_position,omitempty"`
	Clustered                bool                               `yaml:"clustered,omitempty"`
	Description              string                             `yaml:"description,omitempty"`
	BusinessName             string                             `yaml:"business_name,omitempty"`
	Classification           string                             `yaml:"classification,omitempty"`
	CriticalDataElement      bool                               `yaml:"critical_data_element,omitempty"`
	EncryptedName            string                             `yaml:"encrypted_name,omitempty"`
	ExampleValues            []interface{}                      `yaml:"example_values,omitempty"`
	Default                  interface{}                        `yaml:"default,omitempty"`
	Relationships            []RelationshipRef                  `yaml:"relationships,omitempty"`
	AuthoritativeDefinitions []AuthoritativeDefinition          `yaml:"authoritative_definitions,omitempty"`
	QualityRules             []QualityRule                      `yaml:"quality_rules,omitempty"`
	EnumValues               []string                           `yaml:"enum_values,omitempty"`
	Tags                     []string                           `yaml:"tags,omitempty"`
	CustomProperties         map[string]interface{}             `yaml:"custom_properties,omitempty"`
	Items                    *Column                            `yaml:"items,omitempty"`
	Properties               []*Column                         `yaml:"properties,omitempty"`
	FormatMetadata           map[string]map[string]interface{}  `yaml:"format_metadata,omitempty"`
}

// MarshalYAML renders Column.Tags to their canonical string form.
func (c Column) MarshalYAML() (interface{}, error) {
	return columnAlias{
		Name: c.Name, LogicalType: c.LogicalType, PhysicalType: c.PhysicalType, PhysicalName: c.PhysicalName,
		Nullable: c.Nullable, PrimaryKey: c.PrimaryKey, PrimaryKeyPosition: c.PrimaryKeyPosition, Unique: c.Unique,
		Partition: c.Partition, PartitionPosition: c.PartitionPosition, Clustered: c.Clustered,
		Description: c.Description, BusinessName: c.BusinessName, Classification: c.Classification,
		CriticalDataElement: c.CriticalDataElement, EncryptedName: c.EncryptedName, ExampleValues: c.ExampleValues,
		Default: c.Default, Relationships: c.Relationships, AuthoritativeDefinitions: c.AuthoritativeDefinitions,
		QualityRules: c.QualityRules, EnumValues: c.EnumValues, Tags: RenderTags(c.Tags),
		CustomProperties: c.CustomProperties, Items: c.Items, Properties: c.Properties, FormatMetadata: c.FormatMetadata,
	}, nil
}

// UnmarshalYAML parses Column.Tags back from their canonical string form.
func (c *Column) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var a columnAlias
	if err := unmarshal(&a); err != nil {
		return err
	}
	*c = Column{
		Name: a.Name, LogicalType: a.LogicalType, PhysicalType: a.PhysicalType, PhysicalName: a.PhysicalName,
		Nullable: a.Nullable, PrimaryKey: a.PrimaryKey, PrimaryKeyPosition: a.PrimaryKeyPosition, Unique: a.Unique,
		Partition: a.Partition, PartitionPosition: a.PartitionPosition, Clustered: a.Clustered,
		Description: a.Description, BusinessName: a.BusinessName, Classification: a.Classification,
		CriticalDataElement: a.CriticalDataElement, EncryptedName: a.EncryptedName, ExampleValues: a.ExampleValues,
		Default: a.Default, Relationships: a.Relationships, AuthoritativeDefinitions: a.AuthoritativeDefinitions,
		QualityRules: a.QualityRules, EnumValues: a.EnumValues, Tags: ParseTags(a.Tags),
		CustomProperties: a.CustomProperties, Items: a.Items, Properties: a.Properties, FormatMetadata: a.FormatMetadata,
	}
	return nil
}
