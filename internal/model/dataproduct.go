package model

// OutputPort is a single consumable interface a DataProduct exposes, such
// as a table, a view, or an API.
type OutputPort struct {
	Name           string   `json:"name" yaml:"name"`
	Type           string   `json:"type" yaml:"type"`
	Version        string   `json:"version,omitempty" yaml:"version,omitempty"`
	ContractID     string   `json:"contract_id,omitempty" yaml:"contract_id,omitempty"`
	SBOM           string   `json:"sbom,omitempty" yaml:"sbom,omitempty"`
	InputContracts []string `json:"input_contracts,omitempty" yaml:"input_contracts,omitempty"`
	Description    string   `json:"description,omitempty" yaml:"description,omitempty"`
	AssetRef       string   `json:"asset_ref,omitempty" yaml:"asset_ref,omitempty"`
}

// InputPort is a single upstream dependency a DataProduct consumes,
// referencing the contract ID of the asset it depends on.
type InputPort struct {
	Name       string `json:"name" yaml:"name"`
	ContractID string `json:"contract_id,omitempty" yaml:"contract_id,omitempty"`
	SourceID   string `json:"source_id,omitempty" yaml:"source_id,omitempty"`
}

// ManagementPort is a non-data interface a DataProduct exposes for
// observability or operational control.
type ManagementPort struct {
	Name        string `json:"name" yaml:"name"`
	URL         string `json:"url" yaml:"url"`
	Channel     string `json:"channel,omitempty" yaml:"channel,omitempty"`
	ContentKind string `json:"content_kind,omitempty" yaml:"content_kind,omitempty"`
}

// DataProduct is the canonical ODPS (Open Data Product Standard)
// representation: a named, owned, versioned bundle of input/output ports.
type DataProduct struct {
	ID               string            `json:"id" yaml:"id"`
	Name             string            `json:"name" yaml:"name"`
	Version          string            `json:"version" yaml:"version"`
	Status           DataProductStatus `json:"status" yaml:"status"`
	Description      string            `json:"description,omitempty" yaml:"description,omitempty"`
	Owner            string            `json:"owner,omitempty" yaml:"owner,omitempty"`
	Domain           string            `json:"domain,omitempty" yaml:"domain,omitempty"`
	Tenant           string            `json:"tenant,omitempty" yaml:"tenant,omitempty"`
	Team             []string          `json:"team,omitempty" yaml:"team,omitempty"`
	SupportChannels  []string          `json:"support_channels,omitempty" yaml:"support_channels,omitempty"`
	AuthoritativeDefinitions []string  `json:"authoritative_definitions,omitempty" yaml:"authoritative_definitions,omitempty"`
	InputPorts       []InputPort       `json:"input_ports,omitempty" yaml:"input_ports,omitempty"`
	OutputPorts      []OutputPort      `json:"output_ports,omitempty" yaml:"output_ports,omitempty"`
	ManagementPorts  []ManagementPort  `json:"management_ports,omitempty" yaml:"management_ports,omitempty"`
	SLAs             []SLA             `json:"slas,omitempty" yaml:"slas,omitempty"`
	Tags             []Tag             `json:"-" yaml:"-"`
	Contact          *Contact          `json:"contact,omitempty" yaml:"contact,omitempty"`
	CustomProperties map[string]interface{} `json:"custom_properties,omitempty" yaml:"custom_properties,omitempty"`

	FormatMetadata map[string]map[string]interface{} `json:"format_metadata,omitempty" yaml:"format_metadata,omitempty"`
}

// NewDataProduct constructs a DataProduct in proposed status with a fresh
// random identity.
func NewDataProduct(name, version string) *DataProduct {
	return &DataProduct{
		ID:      NewID(),
		Name:    name,
		Version: version,
		Status:  DPProposed,
	}
}

// Promote advances the DataProduct's status, validating the expected
// lifecycle progression (spec.md ODPS lifecycle).
func (d *DataProduct) Promote(to DataProductStatus) bool {
	allowed := map[DataProductStatus][]DataProductStatus{
		DPProposed:   {DPDraft},
		DPDraft:      {DPActive},
		DPActive:     {DPDeprecated},
		DPDeprecated: {DPRetired},
	}
	for _, next := range allowed[d.Status] {
		if next == to {
			d.Status = to
			return true
		}
	}
	return false
}

// SetFormatMetadata stashes opaque per-format data on the data product.
func (d *DataProduct) SetFormatMetadata(format string, data map[string]interface{}) {
	if d.FormatMetadata == nil {
		d.FormatMetadata = make(map[string]map[string]interface{})
	}
	d.FormatMetadata[format] = data
}

type dataProductAlias struct {
	ID                       string                 `yaml:"id"`
	Name                     string                 `yaml:"name"`
	Version                  string                 `yaml:"version"`
	Status                   DataProductStatus      `yaml:"status"`
	Description              string                 `yaml:"description,omitempty"`
	Owner                    string                 `yaml:"owner,omitempty"`
	Domain                   string                 `yaml:"domain,omitempty"`
	Tenant                   string                 `yaml:"tenant,omitempty"`
	Team                     []string               `yaml:"team,omitempty"`
	SupportChannels          []string               `yaml:"support_channels,omitempty"`
	AuthoritativeDefinitions []string               `yaml:"authoritative_definitions,omitempty"`
	InputPorts               []InputPort            `yaml:"input_ports,omitempty"`
	OutputPorts              []OutputPort           `yaml:"output_ports,omitempty"`
	ManagementPorts          []ManagementPort       `yaml:"management_ports,omitempty"`
	SLAs                     []SLA                  `yaml:"slas,omitempty"`
	Tags                     []string               `yaml:"tags,omitempty"`
	Contact                  *Contact               `yaml:"contact,omitempty"`
	CustomProperties         map[string]interface{} `yaml:"custom_properties,omitempty"`

	FormatMetadata map[string]map[string]interface{} `yaml:"format_metadata,omitempty"`
}

// MarshalYAML renders DataProduct.Tags to their canonical string form.
func (d DataProduct) MarshalYAML() (interface{}, error) {
	return dataProductAlias{
		ID: d.ID, Name: d.Name, Version: d.Version, Status: d.Status, Description: d.Description,
		Owner: d.Owner, Domain: d.Domain, Tenant: d.Tenant, Team: d.Team,
		SupportChannels: d.SupportChannels, AuthoritativeDefinitions: d.AuthoritativeDefinitions,
		InputPorts: d.InputPorts, OutputPorts: d.OutputPorts, ManagementPorts: d.ManagementPorts,
		SLAs: d.SLAs, Tags: RenderTags(d.Tags), Contact: d.Contact,
		CustomProperties: d.CustomProperties, FormatMetadata: d.FormatMetadata,
	}, nil
}

// UnmarshalYAML parses DataProduct.Tags back from their canonical string form.
func (d *DataProduct) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var a dataProductAlias
	if err := unmarshal(&a); err != nil {
		return err
	}
	*d = DataProduct{
		ID: a.ID, Name: a.Name, Version: a.Version, Status: a.Status, Description: a.Description,
		Owner: a.Owner, Domain: a.Domain, Tenant: a.Tenant, Team: a.Team,
		SupportChannels: a.SupportChannels, AuthoritativeDefinitions: a.AuthoritativeDefinitions,
		InputPorts: a.InputPorts, OutputPorts: a.OutputPorts, ManagementPorts: a.ManagementPorts,
		SLAs: a.SLAs, Tags: ParseTags(a.Tags), Contact: a.Contact,
		CustomProperties: a.CustomProperties, FormatMetadata: a.FormatMetadata,
	}
	return nil
}
