package avro

import (
	"testing"

	"github.com/marmotdata/schemakit/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const orderSchema = `{
	"type": "record",
	"name": "Order",
	"namespace": "com.acme.orders",
	"fields": [
		{"name": "id", "type": "string"},
		{"name": "total", "type": ["null", "double"], "default": null},
		{"name": "items", "type": {"type": "array", "items": "string"}}
	]
}`

func TestImportRecord(t *testing.T) {
	tables, diags := Import(orderSchema)
	require.Empty(t, diags.Errors())
	require.Len(t, tables, 1)

	tbl := tables[0]
	assert.Equal(t, "Order", tbl.Name)
	assert.Equal(t, "com.acme.orders", tbl.Schema)

	total := tbl.ColumnByName("total")
	require.NotNil(t, total)
	assert.True(t, total.Nullable)
	assert.Equal(t, model.LogicalNumber, total.LogicalType)

	items := tbl.ColumnByName("items")
	require.NotNil(t, items)
	assert.Equal(t, model.LogicalArray, items.LogicalType)
}

const nestedSchema = `{
	"type": "record",
	"name": "Customer",
	"fields": [
		{"name": "id", "type": "string"},
		{"name": "address", "type": {
			"type": "record",
			"name": "Address",
			"fields": [{"name": "city", "type": "string"}]
		}}
	]
}`

func TestImportNestedRecord(t *testing.T) {
	tables, diags := Import(nestedSchema)
	require.Empty(t, diags.Errors())
	require.Len(t, tables, 1)

	address := tables[0].ColumnByName("address")
	require.NotNil(t, address)
	assert.Equal(t, model.LogicalObject, address.LogicalType)
	require.Len(t, address.Properties, 1)
	assert.Equal(t, "city", address.Properties[0].Name)
}
