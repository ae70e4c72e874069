package odps

import (
	"testing"

	"github.com/marmotdata/schemakit/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const productYAML = `
apiVersion: v1.0.0
kind: DataProduct
id: customer-360
name: Customer 360
status: active
domain: growth
tenant: acme
description: Unified customer view
tags:
  - pii
team:
  - growth-platform
supportChannels:
  - "#growth-platform"
inputPorts:
  - name: raw-customers
    contractId: 11111111-1111-1111-1111-111111111111
outputPorts:
  - name: customer-view
    version: "1.0.0"
    contractId: 22222222-2222-2222-2222-222222222222
    inputContracts:
      - 11111111-1111-1111-1111-111111111111
managementPorts:
  - name: dashboard
    url: https://grafana.internal/d/customer-360
    channel: growth-platform
    contentKind: text/html
`

func TestImportProduct(t *testing.T) {
	dp, diags := Import([]byte(productYAML), Options{})
	require.Empty(t, diags.Errors())
	require.NotNil(t, dp)

	assert.Equal(t, "customer-360", dp.ID)
	assert.Equal(t, model.DPActive, dp.Status)
	assert.Equal(t, "growth", dp.Domain)
	assert.Equal(t, "acme", dp.Tenant)
	assert.ElementsMatch(t, model.RenderTags(dp.Tags), []string{"pii"})

	require.Len(t, dp.InputPorts, 1)
	assert.Equal(t, "11111111-1111-1111-1111-111111111111", dp.InputPorts[0].ContractID)

	require.Len(t, dp.OutputPorts, 1)
	assert.Equal(t, "22222222-2222-2222-2222-222222222222", dp.OutputPorts[0].ContractID)
	require.Len(t, dp.OutputPorts[0].InputContracts, 1)

	require.Len(t, dp.ManagementPorts, 1)
	assert.Equal(t, "https://grafana.internal/d/customer-360", dp.ManagementPorts[0].URL)
}

func TestImportValidatesContractIDs(t *testing.T) {
	opts := Options{
		ValidateContracts: true,
		KnownTableIDs: map[string]bool{
			"22222222-2222-2222-2222-222222222222": true,
		},
	}
	_, diags := Import([]byte(productYAML), opts)
	require.NotEmpty(t, diags.Errors())
	assert.True(t, diags.HasErrors())
}

func TestImportValidationPassesWithKnownIDs(t *testing.T) {
	opts := Options{
		ValidateContracts: true,
		KnownTableIDs: map[string]bool{
			"11111111-1111-1111-1111-111111111111": true,
			"22222222-2222-2222-2222-222222222222": true,
		},
	}
	_, diags := Import([]byte(productYAML), opts)
	assert.False(t, diags.HasErrors())
}
