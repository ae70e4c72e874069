package protobuf

import (
	"testing"

	"github.com/marmotdata/schemakit/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const orderProto = `
syntax = "proto3";

message Address {
	string city = 1;
}

message Order {
	string id = 1;
	repeated string tags = 2;
	Address billing = 3;
	int32 quantity = 4;
}
`

func TestImportMessages(t *testing.T) {
	tables, diags := Import(orderProto)
	require.Empty(t, diags.Errors())
	require.Len(t, tables, 2)

	var order *model.Table
	for _, tbl := range tables {
		if tbl.Name == "Order" {
			order = tbl
		}
	}
	require.NotNil(t, order)

	tags := order.ColumnByName("tags")
	require.NotNil(t, tags)
	assert.Equal(t, model.LogicalArray, tags.LogicalType)

	billing := order.ColumnByName("billing")
	require.NotNil(t, billing)
	require.Len(t, billing.Relationships, 1)
	assert.Equal(t, "Address", billing.Relationships[0].RelationshipID)

	qty := order.ColumnByName("quantity")
	require.NotNil(t, qty)
	assert.Equal(t, model.LogicalInteger, qty.LogicalType)
}
