package workspace

import (
	"testing"

	"github.com/marmotdata/schemakit/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseFilenameRoundTrip(t *testing.T) {
	ref := model.AssetRef{Domain: "sales", System: "crm", Name: "customer", Kind: model.KindODCS}

	filename, err := GenerateFilename("acme", ref)
	require.NoError(t, err)
	assert.Equal(t, "acme_sales_crm_customer.odcs.yaml", filename)

	parsed, err := ParseFilename(filename)
	require.NoError(t, err)
	assert.Equal(t, ref.Domain, parsed.Domain)
	assert.Equal(t, ref.System, parsed.System)
	assert.Equal(t, ref.Name, parsed.Name)
	assert.Equal(t, ref.Kind, parsed.Kind)
}

func TestGenerateFilenameNoSystem(t *testing.T) {
	ref := model.AssetRef{Domain: "sales", Name: "orders", Kind: model.KindODPS}
	filename, err := GenerateFilename("acme", ref)
	require.NoError(t, err)
	assert.Equal(t, "acme_sales_orders.odps.yaml", filename)
}

func TestGenerateFilenameSanitizesSegments(t *testing.T) {
	ref := model.AssetRef{Domain: "Sales Team", Name: "customer/profile", Kind: model.KindODCS}
	filename, err := GenerateFilename("Acme Corp", ref)
	require.NoError(t, err)
	assert.Equal(t, "acme-corp_sales-team_customer-profile.odcs.yaml", filename)
}

func TestParseFilenameWorkspaceLevel(t *testing.T) {
	ref, err := ParseFilename("workspace.yaml")
	require.NoError(t, err)
	assert.Equal(t, model.KindWorkspace, ref.Kind)
}

func TestParseFilenameUnrecognized(t *testing.T) {
	_, err := ParseFilename("not-a-workspace-file.txt")
	assert.Error(t, err)
}
