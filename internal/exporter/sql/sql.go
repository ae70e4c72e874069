// Package sql renders Tables back to CREATE TABLE DDL, the inverse of
// internal/importer/sql (spec.md §4.1/§4.2). Identifiers are quoted with
// a per-dialect quote character; a column without a physical type gets a
// default from one logical-to-physical map that is the same for every
// dialect.
package sql

import (
	"fmt"
	"strings"

	"github.com/marmotdata/schemakit/internal/model"
)

// Dialect selects the quoting convention used while rendering DDL.
type Dialect string

const (
	Postgres   Dialect = "postgres"
	MySQL      Dialect = "mysql"
	SQLServer  Dialect = "sqlserver"
	SQLite     Dialect = "sqlite"
	Databricks Dialect = "databricks"
	Snowflake  Dialect = "snowflake"
	BigQuery   Dialect = "bigquery"
)

var quoteChar = map[Dialect][2]string{
	Postgres:   {`"`, `"`},
	MySQL:      {"`", "`"},
	SQLServer:  {"[", "]"},
	SQLite:     {`"`, `"`},
	Databricks: {"`", "`"},
	Snowflake:  {`"`, `"`},
	BigQuery:   {"`", "`"},
}

func quote(d Dialect, identifier string) string {
	q, ok := quoteChar[d]
	if !ok {
		q = [2]string{`"`, `"`}
	}
	return q[0] + identifier + q[1]
}

// logicalToPhysical maps a LogicalType to a default physical type when the
// column carries none of its own (tables imported from non-SQL formats
// have no physical_type to fall back on).
var logicalToPhysical = map[model.LogicalType]string{
	model.LogicalString:      "TEXT",
	model.LogicalInteger:     "BIGINT",
	model.LogicalNumber:      "DOUBLE PRECISION",
	model.LogicalBoolean:     "BOOLEAN",
	model.LogicalDate:        "DATE",
	model.LogicalTime:        "TIME",
	model.LogicalTimestamp:   "TIMESTAMP",
	model.LogicalTimestampTZ: "TIMESTAMPTZ",
	model.LogicalUUID:        "UUID",
	model.LogicalBytes:       "BYTEA",
	model.LogicalObject:      "JSONB",
	model.LogicalArray:       "JSONB",
}

// Export renders a Table as a single CREATE TABLE statement.
func Export(tbl *model.Table, dialect Dialect) (string, error) {
	var b strings.Builder

	name := tbl.Name
	if tbl.Schema != "" {
		name = tbl.Schema + "." + tbl.Name
	}
	if tbl.Catalog != "" {
		name = tbl.Catalog + "." + name
	}

	fmt.Fprintf(&b, "CREATE TABLE %s (\n", quoteQualified(dialect, name))

	var pkNames []string
	lines := make([]string, 0, len(tbl.Columns))
	for _, col := range tbl.Columns {
		lines = append(lines, columnDefinition(dialect, col))
		if col.PrimaryKey {
			pkNames = append(pkNames, quote(dialect, col.Name))
		}
	}
	if len(pkNames) > 0 {
		lines = append(lines, fmt.Sprintf("PRIMARY KEY (%s)", strings.Join(pkNames, ", ")))
	}

	b.WriteString("  " + strings.Join(lines, ",\n  "))
	b.WriteString("\n);\n")

	return b.String(), nil
}

func quoteQualified(dialect Dialect, qualified string) string {
	parts := strings.Split(qualified, ".")
	for i, p := range parts {
		parts[i] = quote(dialect, p)
	}
	return strings.Join(parts, ".")
}

func columnDefinition(dialect Dialect, col *model.Column) string {
	physicalType := col.PhysicalType
	if physicalType == "" {
		physicalType = logicalToPhysical[col.LogicalType]
		if physicalType == "" {
			physicalType = "TEXT"
		}
	}

	def := fmt.Sprintf("%s %s", quote(dialect, col.Name), physicalType)
	if !col.Nullable {
		def += " NOT NULL"
	}
	return def
}
