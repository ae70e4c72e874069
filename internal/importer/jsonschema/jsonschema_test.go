package jsonschema

import (
	"testing"

	"github.com/marmotdata/schemakit/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const customerSchema = `{
	"type": "object",
	"required": ["id"],
	"properties": {
		"id": {"type": "string", "format": "uuid"},
		"age": {"type": "integer"},
		"address": {
			"type": "object",
			"properties": {
				"city": {"type": "string"},
				"status": {"type": "string"}
			}
		},
		"tags": {"type": "array", "items": {"type": "string"}}
	}
}`

func TestImportObjectSchema(t *testing.T) {
	tables, diags := Import([]byte(customerSchema), "customer")
	require.Empty(t, diags.Errors())
	require.Len(t, tables, 1)

	tbl := tables[0]
	id := tbl.ColumnByName("id")
	require.NotNil(t, id)
	assert.False(t, id.Nullable)
	assert.Equal(t, model.LogicalUUID, id.LogicalType)

	age := tbl.ColumnByName("age")
	require.NotNil(t, age)
	assert.True(t, age.Nullable)

	address := tbl.ColumnByName("address")
	require.NotNil(t, address)
	assert.Equal(t, model.LogicalObject, address.LogicalType)
	status := address.Properties[1]
	require.NotNil(t, status)

	tags := tbl.ColumnByName("tags")
	require.NotNil(t, tags)
	assert.Equal(t, model.LogicalArray, tags.LogicalType)
	require.NotNil(t, tags.Items)
}

const schemaWithRef = `{
	"type": "object",
	"properties": {
		"billing": {"$ref": "#/definitions/address"}
	},
	"definitions": {
		"address": {
			"type": "object",
			"properties": {"city": {"type": "string"}}
		}
	}
}`

func TestImportLocalRef(t *testing.T) {
	tables, diags := Import([]byte(schemaWithRef), "order")
	require.Empty(t, diags.Errors())
	require.Len(t, tables, 2)

	billing := tables[0].ColumnByName("billing")
	require.NotNil(t, billing)
	assert.Equal(t, model.LogicalObject, billing.LogicalType)
	require.Len(t, billing.Properties, 1)
}

func TestImportUnresolvedRefWarns(t *testing.T) {
	src := `{"type": "object", "properties": {"x": {"$ref": "#/definitions/missing"}}}`
	_, diags := Import([]byte(src), "t")
	assert.True(t, len(diags) > 0)
}
