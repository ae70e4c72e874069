package odcs

import (
	"testing"

	"github.com/marmotdata/schemakit/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const contractYAML = `
apiVersion: v3.1.0
kind: DataContract
id: 9d3b1f2a-0000-0000-0000-000000000000
name: customer-contract
version: "1.0.0"
status: active
servers:
  - type: postgres
    schema: public
tags:
  - pii
  - "owner:growth"
schema:
  - name: customer
    properties:
      - name: id
        logicalType: string
        physicalType: UUID
        required: true
      - name: balance
        logicalType: number
        physicalType: DECIMAL(10,2)
      - name: profile
        logicalType: object
        properties:
          - name: status
            logicalType: string
          - name: type
            logicalType: string
`

func TestImportContract(t *testing.T) {
	tables, diags := Import([]byte(contractYAML))
	require.Empty(t, diags.Errors())
	require.Len(t, tables, 1)

	tbl := tables[0]
	assert.Equal(t, "customer", tbl.Name)
	assert.Equal(t, "public", tbl.Schema)
	assert.Equal(t, model.Postgres, tbl.DatabaseType)
	assert.ElementsMatch(t, model.RenderTags(tbl.Tags), []string{"pii", "owner:growth"})

	id := tbl.ColumnByName("id")
	require.NotNil(t, id)
	assert.False(t, id.Nullable)
	assert.Equal(t, "UUID", id.PhysicalType)

	balance := tbl.ColumnByName("balance")
	require.NotNil(t, balance)
	assert.Equal(t, "DECIMAL(10,2)", balance.PhysicalType)

	profile := tbl.ColumnByName("profile")
	require.NotNil(t, profile)
	require.Len(t, profile.Properties, 2)
	assert.Equal(t, "status", profile.Properties[0].Name)
	assert.Equal(t, "type", profile.Properties[1].Name)
}

const contractMapProperties = `
apiVersion: v3.1.0
kind: DataContract
name: legacy-contract
version: "1.0.0"
status: draft
schema:
  - name: legacy
    properties:
      b_field:
        logicalType: string
      a_field:
        logicalType: integer
`

func TestImportPropertiesAsMap(t *testing.T) {
	tables, diags := Import([]byte(contractMapProperties))
	require.Empty(t, diags.Errors())
	require.Len(t, tables, 1)
	require.Len(t, tables[0].Columns, 2)
	assert.Equal(t, "a_field", tables[0].Columns[0].Name)
	assert.Equal(t, "b_field", tables[0].Columns[1].Name)
}
