package model

import "fmt"

// RelationshipEndpoint identifies one side of a Relationship: a Table and,
// optionally, the specific columns participating in the join.
type RelationshipEndpoint struct {
	TableID string   `json:"table_id" yaml:"table_id"`
	Columns []string `json:"columns,omitempty" yaml:"columns,omitempty"`
}

// ETLMetadata captures the pipeline details of a data-flow or ETL edge.
type ETLMetadata struct {
	JobName     string `json:"job_name,omitempty" yaml:"job_name,omitempty"`
	Schedule    string `json:"schedule,omitempty" yaml:"schedule,omitempty"`
	Transform   string `json:"transform,omitempty" yaml:"transform,omitempty"`
}

// VisualRouting records the diagram routing hints produced by interactive
// editors; the core never interprets these beyond round-tripping them.
type VisualRouting struct {
	Points []struct {
		X float64 `json:"x" yaml:"x"`
		Y float64 `json:"y" yaml:"y"`
	} `json:"points,omitempty" yaml:"points,omitempty"`
}

// Relationship is a directed edge between two Tables. From == To is
// rejected by construction: NewRelationship returns an error rather than
// ever producing a self-referencing edge (spec.md invariant).
type Relationship struct {
	ID           string                `json:"id" yaml:"id"`
	Name         string                `json:"name,omitempty" yaml:"name,omitempty"`
	Type         RelationshipType      `json:"type" yaml:"type"`
	Cardinality  Cardinality           `json:"cardinality" yaml:"cardinality"`
	From         RelationshipEndpoint  `json:"from" yaml:"from"`
	To           RelationshipEndpoint  `json:"to" yaml:"to"`
	Description  string                `json:"description,omitempty" yaml:"description,omitempty"`
	ETL          *ETLMetadata          `json:"etl,omitempty" yaml:"etl,omitempty"`
	Routing      *VisualRouting        `json:"routing,omitempty" yaml:"routing,omitempty"`
	Tags         []Tag                 `json:"-" yaml:"-"`
	Contact      *Contact              `json:"contact,omitempty" yaml:"contact,omitempty"`

	FormatMetadata map[string]map[string]interface{} `json:"format_metadata,omitempty" yaml:"format_metadata,omitempty"`
}

// NewRelationship constructs a Relationship between two distinct tables.
// It rejects an edge whose From and To reference the same table, since a
// table's own columns never participate in a modeled Relationship with
// themselves (self-joins are expressed as Column-level references
// instead).
func NewRelationship(relType RelationshipType, cardinality Cardinality, from, to RelationshipEndpoint) (*Relationship, error) {
	if from.TableID == to.TableID {
		return nil, fmt.Errorf("relationship cannot self-reference table %q", from.TableID)
	}
	return &Relationship{
		ID:          NewID(),
		Type:        relType,
		Cardinality: cardinality,
		From:        from,
		To:          to,
	}, nil
}

// SetFormatMetadata stashes opaque per-format data on the relationship.
func (r *Relationship) SetFormatMetadata(format string, data map[string]interface{}) {
	if r.FormatMetadata == nil {
		r.FormatMetadata = make(map[string]map[string]interface{})
	}
	r.FormatMetadata[format] = data
}

type relationshipAlias struct {
	ID          string                             `yaml:"id"`
	Name        string                             `yaml:"name,omitempty"`
	Type        RelationshipType                   `yaml:"type"`
	Cardinality Cardinality                        `yaml:"cardinality"`
	From        RelationshipEndpoint               `yaml:"from"`
	To          RelationshipEndpoint               `yaml:"to"`
	Description string                             `yaml:"description,omitempty"`
	ETL         *ETLMetadata                       `yaml:"etl,omitempty"`
	Routing     *VisualRouting                     `yaml:"routing,omitempty"`
	Tags        []string                           `yaml:"tags,omitempty"`
	Contact     *Contact                           `yaml:"contact,omitempty"`

	FormatMetadata map[string]map[string]interface{} `yaml:"format_metadata,omitempty"`
}

// MarshalYAML renders Relationship.Tags to their canonical string form.
func (r Relationship) MarshalYAML() (interface{}, error) {
	return relationshipAlias{
		ID: r.ID, Name: r.Name, Type: r.Type, Cardinality: r.Cardinality, From: r.From, To: r.To,
		Description: r.Description, ETL: r.ETL, Routing: r.Routing, Tags: RenderTags(r.Tags),
		Contact: r.Contact, FormatMetadata: r.FormatMetadata,
	}, nil
}

// UnmarshalYAML parses Relationship.Tags back from their canonical string form.
func (r *Relationship) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var a relationshipAlias
	if err := unmarshal(&a); err != nil {
		return err
	}
	*r = Relationship{
		ID: a.ID, Name: a.Name, Type: a.Type, Cardinality: a.Cardinality, From: a.From, To: a.To,
		Description: a.Description, ETL: a.ETL, Routing: a.Routing, Tags: ParseTags(a.Tags),
		Contact: a.Contact, FormatMetadata: a.FormatMetadata,
	}
	return nil
}
