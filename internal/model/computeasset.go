package model

// ComputeAssetAttachment is an external document attached to a compute
// asset (a model card, a BPMN/DMN process diagram, a training report).
// The core only validates XML attachments for well-formedness; it never
// interprets their contents (spec.md §1 Non-goals).
type ComputeAssetAttachment struct {
	Name        string `json:"name" yaml:"name"`
	ContentType string `json:"content_type,omitempty" yaml:"content_type,omitempty"`
	URL         string `json:"url,omitempty" yaml:"url,omitempty"`
	Inline      string `json:"inline,omitempty" yaml:"inline,omitempty"`
}

// ComputeAsset is the canonical CADS (Compute Asset Description Standard)
// representation of a model, pipeline, application, or process asset.
type ComputeAsset struct {
	ID                 string                   `json:"id" yaml:"id"`
	Name                string                   `json:"name" yaml:"name"`
	Kind               ComputeAssetKind         `json:"kind" yaml:"kind"`
	Status             ComputeAssetStatus       `json:"status" yaml:"status"`
	Version            string                   `json:"version,omitempty" yaml:"version,omitempty"`
	Description        string                   `json:"description,omitempty" yaml:"description,omitempty"`
	Owner              string                   `json:"owner,omitempty" yaml:"owner,omitempty"`
	RiskClassification RiskClassification       `json:"risk_classification,omitempty" yaml:"risk_classification,omitempty"`
	Inputs             []string                 `json:"inputs,omitempty" yaml:"inputs,omitempty"`
	Outputs            []string                 `json:"outputs,omitempty" yaml:"outputs,omitempty"`
	Attachments        []ComputeAssetAttachment `json:"attachments,omitempty" yaml:"attachments,omitempty"`
	Tags               []Tag                    `json:"-" yaml:"-"`
	Contact            *Contact                 `json:"contact,omitempty" yaml:"contact,omitempty"`

	FormatMetadata map[string]map[string]interface{} `json:"format_metadata,omitempty" yaml:"format_metadata,omitempty"`
}

// NewComputeAsset constructs a ComputeAsset in draft status.
func NewComputeAsset(name string, kind ComputeAssetKind) *ComputeAsset {
	return &ComputeAsset{
		ID:     NewID(),
		Name:   name,
		Kind:   kind,
		Status: CADraft,
	}
}

// AddAttachment appends an attachment and returns the asset for chaining.
func (c *ComputeAsset) AddAttachment(a ComputeAssetAttachment) *ComputeAsset {
	c.Attachments = append(c.Attachments, a)
	return c
}

// SetFormatMetadata stashes opaque per-format data on the compute asset.
func (c *ComputeAsset) SetFormatMetadata(format string, data map[string]interface{}) {
	if c.FormatMetadata == nil {
		c.FormatMetadata = make(map[string]map[string]interface{})
	}
	c.FormatMetadata[format] = data
}

type computeAssetAlias struct {
	ID                 string                   `yaml:"id"`
	Name               string                   `yaml:"name"`
	Kind               ComputeAssetKind         `yaml:"kind"`
	Status             ComputeAssetStatus       `yaml:"status"`
	Version            string                   `yaml:"version,omitempty"`
	Description        string                   `yaml:"description,omitempty"`
	Owner              string                   `yaml:"owner,omitempty"`
	RiskClassification RiskClassification       `yaml:"risk_classification,omitempty"`
	Inputs             []string                 `yaml:"inputs,omitempty"`
	Outputs            []string                 `yaml:"outputs,omitempty"`
	Attachments        []ComputeAssetAttachment `yaml:"attachments,omitempty"`
	Tags               []string                 `yaml:"tags,omitempty"`
	Contact            *Contact                 `yaml:"contact,omitempty"`

	FormatMetadata map[string]map[string]interface{} `yaml:"format_metadata,omitempty"`
}

// MarshalYAML renders ComputeAsset.Tags to their canonical string form.
func (c ComputeAsset) MarshalYAML() (interface{}, error) {
	return computeAssetAlias{
		ID: c.ID, Name: c.Name, Kind: c.Kind, Status: c.Status, Version: c.Version, Description: c.Description,
		Owner: c.Owner, RiskClassification: c.RiskClassification, Inputs: c.Inputs, Outputs: c.Outputs,
		Attachments: c.Attachments, Tags: RenderTags(c.Tags), Contact: c.Contact, FormatMetadata: c.FormatMetadata,
	}, nil
}

// UnmarshalYAML parses ComputeAsset.Tags back from their canonical string form.
func (c *ComputeAsset) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var a computeAssetAlias
	if err := unmarshal(&a); err != nil {
		return err
	}
	*c = ComputeAsset{
		ID: a.ID, Name: a.Name, Kind: a.Kind, Status: a.Status, Version: a.Version, Description: a.Description,
		Owner: a.Owner, RiskClassification: a.RiskClassification, Inputs: a.Inputs, Outputs: a.Outputs,
		Attachments: a.Attachments, Tags: ParseTags(a.Tags), Contact: a.Contact, FormatMetadata: a.FormatMetadata,
	}
	return nil
}
