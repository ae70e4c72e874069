// Package odps imports Open Data Product Standard v1.0.0 documents into
// the canonical DataProduct model.
package odps

import (
	"github.com/marmotdata/schemakit/internal/diagnostics"
	"github.com/marmotdata/schemakit/internal/format/yamlcodec"
	"github.com/marmotdata/schemakit/internal/model"
)

// InputPort is the ODPS v1.0.0 inputPorts[] shape: a named reference to an
// upstream contract.
type InputPort struct {
	Name       string `yaml:"name"`
	ContractID string `yaml:"contractId"`
}

// OutputPort is the ODPS v1.0.0 outputPorts[] shape.
type OutputPort struct {
	Name           string   `yaml:"name"`
	Version        string   `yaml:"version"`
	ContractID     string   `yaml:"contractId"`
	SBOM           string   `yaml:"sbom,omitempty"`
	InputContracts []string `yaml:"inputContracts,omitempty"`
}

// ManagementPort is the ODPS v1.0.0 managementPorts[] shape.
type ManagementPort struct {
	Name        string `yaml:"name"`
	URL         string `yaml:"url"`
	Channel     string `yaml:"channel,omitempty"`
	ContentKind string `yaml:"contentKind,omitempty"`
}

// Document is the top-level ODPS v1.0.0 DataProduct shape.
type Document struct {
	APIVersion       string                 `yaml:"apiVersion"`
	Kind             string                 `yaml:"kind"`
	ID               string                 `yaml:"id"`
	Name             string                 `yaml:"name,omitempty"`
	Status           string                 `yaml:"status"`
	Domain           string                 `yaml:"domain"`
	Tenant           string                 `yaml:"tenant,omitempty"`
	Description      string                 `yaml:"description,omitempty"`
	Tags             []string               `yaml:"tags,omitempty"`
	CustomProperties map[string]interface{} `yaml:"customProperties,omitempty"`
	SupportChannels  []string               `yaml:"supportChannels,omitempty"`
	Team             []string               `yaml:"team,omitempty"`
	AuthoritativeDefinitions []string       `yaml:"authoritativeDefinitions,omitempty"`
	InputPorts       []InputPort            `yaml:"inputPorts,omitempty"`
	OutputPorts      []OutputPort           `yaml:"outputPorts,omitempty"`
	ManagementPorts  []ManagementPort       `yaml:"managementPorts,omitempty"`
}

var statusMap = map[string]model.DataProductStatus{
	"proposed": model.DPProposed, "draft": model.DPDraft, "active": model.DPActive,
	"deprecated": model.DPDeprecated, "retired": model.DPRetired,
}

// Options controls optional contract-ID validation against a known table
// universe (spec.md §3: "Contract IDs in ports may be validated against a
// caller-supplied table-id universe; unknown IDs fail the import when
// validation is enabled").
type Options struct {
	ValidateContracts bool
	KnownTableIDs     map[string]bool
}

// Import parses an ODPS v1.0.0 document into a DataProduct.
func Import(data []byte, opts Options) (*model.DataProduct, diagnostics.Diagnostics) {
	var diags diagnostics.Diagnostics

	var doc Document
	if err := yamlcodec.Unmarshal(data, &doc); err != nil {
		diags.Addf(diagnostics.Error, "odps: malformed document: %v", err)
		return nil, diags
	}
	if doc.Kind != "" && doc.Kind != "DataProduct" {
		diags.Addf(diagnostics.Warning, "odps: unexpected kind %q, expected DataProduct", doc.Kind)
	}

	name := doc.Name
	if name == "" {
		name = doc.ID
	}
	dp := model.NewDataProduct(name, doc.APIVersion)
	dp.ID = doc.ID
	if status, ok := statusMap[doc.Status]; ok {
		dp.Status = status
	} else if doc.Status != "" {
		diags.Addf(diagnostics.Warning, "odps: unknown status %q, defaulting to proposed", doc.Status)
	}
	dp.Description = doc.Description
	dp.Domain = doc.Domain
	dp.Tenant = doc.Tenant
	dp.Team = doc.Team
	dp.SupportChannels = doc.SupportChannels
	dp.AuthoritativeDefinitions = doc.AuthoritativeDefinitions
	dp.Tags = model.ParseTags(doc.Tags)
	dp.CustomProperties = doc.CustomProperties

	for _, p := range doc.InputPorts {
		validateContract(p.ContractID, "inputPorts", p.Name, opts, &diags)
		dp.InputPorts = append(dp.InputPorts, model.InputPort{Name: p.Name, ContractID: p.ContractID})
	}
	for _, p := range doc.OutputPorts {
		validateContract(p.ContractID, "outputPorts", p.Name, opts, &diags)
		for _, ic := range p.InputContracts {
			validateContract(ic, "outputPorts.inputContracts", p.Name, opts, &diags)
		}
		dp.OutputPorts = append(dp.OutputPorts, model.OutputPort{
			Name: p.Name, Version: p.Version, ContractID: p.ContractID,
			SBOM: p.SBOM, InputContracts: p.InputContracts,
		})
	}
	for _, p := range doc.ManagementPorts {
		dp.ManagementPorts = append(dp.ManagementPorts, model.ManagementPort{
			Name: p.Name, URL: p.URL, Channel: p.Channel, ContentKind: p.ContentKind,
		})
	}

	return dp, diags
}

func validateContract(contractID, section, portName string, opts Options, diags *diagnostics.Diagnostics) {
	if !opts.ValidateContracts || contractID == "" {
		return
	}
	if !opts.KnownTableIDs[contractID] {
		diags.Addf(diagnostics.Error, "odps: %s %q references unknown contract ID %q", section, portName, contractID)
	}
}
