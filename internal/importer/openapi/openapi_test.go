package openapi

import (
	"testing"

	"github.com/marmotdata/schemakit/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const orderSpec = `
openapi: 3.0.3
info:
  title: Orders
  version: 1.0.0
paths: {}
components:
  schemas:
    Order:
      type: object
      required: [id]
      properties:
        id:
          type: string
          format: uuid
        total:
          type: number
        address:
          type: object
          properties:
            city:
              type: string
`

func TestImportComponentSchemas(t *testing.T) {
	tables, diags := Import([]byte(orderSpec))
	require.Empty(t, diags.Errors())
	require.Len(t, tables, 1)

	tbl := tables[0]
	assert.Equal(t, "Order", tbl.Name)

	id := tbl.ColumnByName("id")
	require.NotNil(t, id)
	assert.False(t, id.Nullable)
	assert.Equal(t, model.LogicalUUID, id.LogicalType)

	address := tbl.ColumnByName("address")
	require.NotNil(t, address)
	assert.Equal(t, model.LogicalObject, address.LogicalType)
	require.Len(t, address.Properties, 1)
}
