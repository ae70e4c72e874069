package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marmotdata/schemakit/internal/model"
)

func TestBuildCreateViewProjectsTypedColumns(t *testing.T) {
	schema := []*model.Column{
		model.NewColumn("id", model.LogicalInteger),
		model.NewColumn("select", model.LogicalString),
		model.NewColumn("payload", model.LogicalObject),
	}

	stmt, err := BuildCreateView("events", "s3://bucket/warehouse/raw/events", schema)
	require.NoError(t, err)

	assert.Contains(t, stmt, `CREATE OR REPLACE VIEW events AS`)
	assert.Contains(t, stmt, `read_parquet('s3://bucket/warehouse/raw/events/data/*.parquet')`)
	assert.Contains(t, stmt, `CAST(json_extract_string(content, '$.id') AS BIGINT) AS id`)
	assert.Contains(t, stmt, `AS "select"`)
	assert.Contains(t, stmt, `json_extract(content, '$.payload') AS payload`)
}

func TestBuildCreateViewRejectsEmptySchema(t *testing.T) {
	_, err := BuildCreateView("events", "s3://bucket/warehouse", nil)
	assert.Error(t, err)
}

func TestSqlTypeFor(t *testing.T) {
	assert.Equal(t, "BIGINT", sqlTypeFor(model.LogicalInteger))
	assert.Equal(t, "DOUBLE", sqlTypeFor(model.LogicalNumber))
	assert.Equal(t, "JSON", sqlTypeFor(model.LogicalArray))
	assert.Equal(t, "VARCHAR", sqlTypeFor(model.LogicalString))
}

func TestQuoteIdentifier(t *testing.T) {
	assert.Equal(t, "name", quoteIdentifier("name"))
	assert.Equal(t, `"select"`, quoteIdentifier("select"))
	assert.Equal(t, `"has space"`, quoteIdentifier("has space"))
}
