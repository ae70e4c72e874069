package sql

import (
	"testing"

	"github.com/marmotdata/schemakit/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportSimpleTable(t *testing.T) {
	ddl := `CREATE TABLE public.orders (
		id INT NOT NULL,
		customer_name VARCHAR(255),
		total DECIMAL(10,2),
		PRIMARY KEY (id)
	);`

	tables, diags := Import(ddl, Postgres)
	require.Empty(t, diags.Errors())
	require.Len(t, tables, 1)

	tbl := tables[0]
	assert.Equal(t, "orders", tbl.Name)
	assert.Equal(t, "public", tbl.Schema)
	require.Len(t, tbl.Columns, 3)

	id := tbl.ColumnByName("id")
	require.NotNil(t, id)
	assert.True(t, id.PrimaryKey)
	assert.Equal(t, 1, id.PrimaryKeyPosition)
	assert.Equal(t, model.LogicalInteger, id.LogicalType)

	total := tbl.ColumnByName("total")
	require.NotNil(t, total)
	assert.Equal(t, "DECIMAL(10,2)", total.PhysicalType)
	assert.Equal(t, model.LogicalNumber, total.LogicalType)
}

func TestImportReservedNestedNames(t *testing.T) {
	ddl := "CREATE TABLE t(id STRING, m STRUCT<status:STRING, type:STRING>);"

	tables, diags := Import(ddl, Databricks)
	require.Empty(t, diags.Errors())
	require.Len(t, tables, 1)

	m := tables[0].ColumnByName("m")
	require.NotNil(t, m)
	assert.Equal(t, model.LogicalObject, m.LogicalType)
	assert.Contains(t, m.PhysicalType, "STRUCT")
}

func TestImportSkipsUnrecognizedStatement(t *testing.T) {
	ddl := "DROP TABLE foo; CREATE TABLE bar(id INT);"

	tables, diags := Import(ddl, Postgres)
	require.Len(t, tables, 1)
	assert.Equal(t, "bar", tables[0].Name)
	assert.Empty(t, diags.Errors())
}

func TestImportCompositePrimaryKey(t *testing.T) {
	ddl := `CREATE TABLE order_items (
		order_id INT,
		line_no INT,
		PRIMARY KEY (order_id, line_no)
	);`

	tables, _ := Import(ddl, MySQL)
	require.Len(t, tables, 1)
	orderID := tables[0].ColumnByName("order_id")
	lineNo := tables[0].ColumnByName("line_no")
	assert.Equal(t, 1, orderID.PrimaryKeyPosition)
	assert.Equal(t, 2, lineNo.PrimaryKeyPosition)
}
