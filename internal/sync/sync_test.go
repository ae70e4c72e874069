package sync

import (
	"testing"

	"github.com/marmotdata/schemakit/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentHashDeterministic(t *testing.T) {
	tbl := model.NewTable(model.Postgres, "customers", "", "public", true)
	tbl.AddColumn(model.NewColumn("id", model.LogicalUUID))

	h1, err := contentHash(tbl)
	require.NoError(t, err)
	h2, err := contentHash(tbl)
	require.NoError(t, err)
	assert.Equal(t, h1, h2)

	tbl.AddColumn(model.NewColumn("email", model.LogicalString))
	h3, err := contentHash(tbl)
	require.NoError(t, err)
	assert.NotEqual(t, h1, h3)
}

func TestSummaryCountByType(t *testing.T) {
	s := newSummary()
	s.record("tables", "customers", Created)
	s.record("tables", "orders", Updated)
	s.record("tables", "products", NoChange)

	assert.Equal(t, 1, s.CountByType("tables", Created))
	assert.Equal(t, 1, s.CountByType("tables", Updated))
	assert.Equal(t, 1, s.CountByType("tables", NoChange))
	assert.Equal(t, 0, s.CountByType("columns", Created))
}

func TestTrinoDSN(t *testing.T) {
	dsn := TrinoDSN("localhost", 8080, "schemakit", "iceberg", "staging", "schemakit", false)
	assert.Equal(t, "http://schemakit@localhost:8080?catalog=iceberg&schema=staging&source=schemakit", dsn)

	dsn = TrinoDSN("trino.internal", 443, "schemakit", "iceberg", "staging", "schemakit", true)
	assert.Equal(t, "https://schemakit@trino.internal:443?catalog=iceberg&schema=staging&source=schemakit", dsn)
}
