package yamlcodec

import (
	"testing"

	"github.com/marmotdata/schemakit/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	tbl := model.NewTable(model.Postgres, "customers", "analytics", "public", true)
	tbl.Tags = []model.Tag{model.NewSimpleTag("pii"), model.NewPairTag("owner", "growth")}
	tbl.AddColumn(model.NewColumn("id", model.LogicalUUID))
	require.NoError(t, tbl.SetPrimaryKey([]string{"id"}))

	data, err := Marshal(tbl)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	var out model.Table
	require.NoError(t, Unmarshal(data, &out))

	assert.Equal(t, tbl.ID, out.ID)
	assert.Equal(t, tbl.Name, out.Name)
	assert.Equal(t, model.RenderTags(tbl.Tags), model.RenderTags(out.Tags))
	require.Len(t, out.Columns, 1)
	assert.True(t, out.Columns[0].PrimaryKey)
}

func TestMarshalIsDeterministic(t *testing.T) {
	tbl := model.NewTable(model.MySQL, "orders", "", "shop", true)
	tbl.AddColumn(model.NewColumn("id", model.LogicalInteger))

	first, err := Marshal(tbl)
	require.NoError(t, err)
	second, err := Marshal(tbl)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
