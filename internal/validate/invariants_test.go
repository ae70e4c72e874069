package validate

import (
	"testing"

	"github.com/marmotdata/schemakit/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableDuplicateColumnName(t *testing.T) {
	tbl := model.NewTable(model.Postgres, "orders", "", "public", false)
	tbl.AddColumn(model.NewColumn("id", model.LogicalInteger))
	tbl.AddColumn(model.NewColumn("id", model.LogicalString))

	diags := Table(tbl)
	require.True(t, diags.HasErrors())
	assert.Contains(t, diags.Errors()[0].Message, "duplicate column name")
}

func TestTablePrimaryKeyContiguous(t *testing.T) {
	tbl := model.NewTable(model.Postgres, "orders", "", "public", false)
	tbl.AddColumn(model.NewColumn("id", model.LogicalInteger))
	tbl.AddColumn(model.NewColumn("region", model.LogicalString))
	require.NoError(t, tbl.SetPrimaryKey([]string{"id", "region"}))

	diags := Table(tbl)
	assert.False(t, diags.HasErrors())
}

func TestTablePrimaryKeyGapIsInvalid(t *testing.T) {
	tbl := model.NewTable(model.Postgres, "orders", "", "public", false)
	tbl.AddColumn(model.NewColumn("id", model.LogicalInteger))
	tbl.Columns[0].PrimaryKey = true
	tbl.Columns[0].PrimaryKeyPosition = 2

	diags := Table(tbl)
	require.True(t, diags.HasErrors())
	assert.Contains(t, diags.Errors()[0].Message, "not contiguous")
}

func TestRelationshipsUnknownTable(t *testing.T) {
	tbl := model.NewTable(model.Postgres, "orders", "", "public", false)
	r := rel(t, tbl.ID, "missing")

	diags := Relationships([]*model.Table{tbl}, []*model.Relationship{r})
	require.True(t, diags.HasErrors())
}
