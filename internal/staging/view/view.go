// Package view generates DuckDB views over a staging table's content
// column (the raw JSON document), projecting each inferred field out as a typed SQL expression
// (spec.md §4.5 view generation). The staging engine writes every
// document as an opaque JSON string; this package is how a consumer
// queries that content as though it were a normal typed table, without
// a second, duplicated copy of the data.
package view

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/marmotdata/schemakit/internal/model"
)

// reservedIdentifiers are SQL keywords DuckDB would otherwise choke on
// unquoted when they appear as a generated column name.
var reservedIdentifiers = map[string]bool{
	"select": true, "from": true, "where": true, "group": true, "order": true,
	"table": true, "column": true, "user": true, "default": true, "primary": true,
	"key": true, "index": true, "view": true, "case": true, "when": true,
	"then": true, "else": true, "end": true, "all": true, "and": true, "or": true,
	"not": true, "null": true, "true": true, "false": true, "in": true, "is": true,
	"like": true, "limit": true, "offset": true, "join": true, "on": true, "as": true,
}

// Generator opens a DuckDB connection and materializes CREATE VIEW
// statements over a staging table's location.
type Generator struct {
	db *sql.DB
}

// Open opens an in-process DuckDB database. path may be ":memory:" for a
// throwaway session or a file path for a persistent catalog of views.
func Open(path string) (*Generator, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("view: opening duckdb at %q: %w", path, err)
	}
	return &Generator{db: db}, nil
}

// Close releases the underlying DuckDB connection.
func (g *Generator) Close() error {
	return g.db.Close()
}

// DB exposes the underlying *sql.DB for callers that want to query a
// view directly after CreateView.
func (g *Generator) DB() *sql.DB {
	return g.db
}

// CreateView registers viewName over the Parquet files at tableLocation,
// projecting each column in schema out of the raw_json content field
// using DuckDB's JSON extraction functions and the type mapping spec.md
// §4.5 gives for generated views.
func (g *Generator) CreateView(ctx context.Context, viewName, tableLocation string, schema []*model.Column) error {
	stmt, err := BuildCreateView(viewName, tableLocation, schema)
	if err != nil {
		return err
	}
	if _, err := g.db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("view: creating view %q: %w", viewName, err)
	}
	return nil
}

// BuildCreateView renders the CREATE OR REPLACE VIEW statement without
// executing it, so callers (and tests) can inspect the generated SQL
// directly.
func BuildCreateView(viewName, tableLocation string, schema []*model.Column) (string, error) {
	if len(schema) == 0 {
		return "", fmt.Errorf("view: schema has no columns to project")
	}

	var projections []string
	for _, col := range schema {
		projections = append(projections, projectColumn(col))
	}

	source := fmt.Sprintf("read_parquet('%s/data/*.parquet')", escapeLiteral(tableLocation))
	return fmt.Sprintf(
		"CREATE OR REPLACE VIEW %s AS\nSELECT\n\t%s\nFROM %s;",
		quoteIdentifier(viewName),
		strings.Join(projections, ",\n\t"),
		source,
	), nil
}

// projectColumn renders one SELECT expression extracting col out of the
// raw_json "content" field and casting it to the SQL type spec.md §4.5
// maps its logical type onto.
func projectColumn(col *model.Column) string {
	path := "$." + col.Name
	sqlType := sqlTypeFor(col.LogicalType)
	extracted := fmt.Sprintf("json_extract_string(content, '%s')", escapeLiteral(path))

	var expr string
	switch col.LogicalType {
	case model.LogicalObject, model.LogicalArray:
		expr = fmt.Sprintf("json_extract(content, '%s')", escapeLiteral(path))
	case model.LogicalInteger, model.LogicalNumber, model.LogicalBoolean, model.LogicalDate, model.LogicalTimestamp, model.LogicalTimestampTZ:
		expr = fmt.Sprintf("CAST(%s AS %s)", extracted, sqlType)
	default:
		expr = extracted
	}

	return fmt.Sprintf("%s AS %s", expr, quoteIdentifier(col.Name))
}

// sqlTypeFor maps a canonical logical type onto the DuckDB type spec.md
// §4.5 names for generated views.
func sqlTypeFor(lt model.LogicalType) string {
	switch lt {
	case model.LogicalInteger:
		return "BIGINT"
	case model.LogicalNumber:
		return "DOUBLE"
	case model.LogicalBoolean:
		return "BOOLEAN"
	case model.LogicalDate:
		return "DATE"
	case model.LogicalTimestamp, model.LogicalTimestampTZ:
		return "TIMESTAMP"
	case model.LogicalObject, model.LogicalArray:
		return "JSON"
	default:
		return "VARCHAR"
	}
}

func quoteIdentifier(name string) string {
	if reservedIdentifiers[strings.ToLower(name)] || strings.ContainsAny(name, " -.") {
		return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
	}
	return name
}

func escapeLiteral(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
