package odcl

import (
	"testing"

	"github.com/marmotdata/schemakit/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const legacyContract = `
name: customer
description: legacy customer contract
fields:
  - name: id
    type: string
    description: primary identifier
    quality:
      - type: not_null
  - name: address
    type: object
    fields:
      - name: city
        type: string
        $ref: "#/definitions/city"
`

func TestImportDocument(t *testing.T) {
	tbl, diags := Import([]byte(legacyContract))
	require.Empty(t, diags.Errors())
	require.NotNil(t, tbl)
	assert.Equal(t, "customer", tbl.Name)
	assert.Equal(t, "legacy customer contract", tbl.Description)

	id := tbl.ColumnByName("id")
	require.NotNil(t, id)
	require.Len(t, id.QualityRules, 1)
	assert.Equal(t, "not_null", id.QualityRules[0]["type"])

	address := tbl.ColumnByName("address")
	require.NotNil(t, address)
	assert.Equal(t, model.LogicalObject, address.LogicalType)
	require.Len(t, address.Properties, 1)
	assert.Equal(t, "city", address.Properties[0].Name)
}

func TestImportUnknownType(t *testing.T) {
	tbl, diags := Import([]byte("name: weird\nfields:\n  - name: f\n    type: blob\n"))
	require.NotEmpty(t, diags)
	require.NotNil(t, tbl)
	f := tbl.ColumnByName("f")
	require.NotNil(t, f)
	assert.Equal(t, model.LogicalString, f.LogicalType)
}
