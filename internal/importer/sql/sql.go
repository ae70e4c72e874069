// Package sql imports CREATE TABLE DDL statements into the canonical
// model. There is no suitable third-party SQL DDL parsing library among
// the retrieved dependencies, so this package hand-rolls a small
// statement-level tokenizer (see DESIGN.md).
package sql

import (
	"regexp"
	"strings"

	"github.com/marmotdata/schemakit/internal/diagnostics"
	"github.com/marmotdata/schemakit/internal/model"
)

// Dialect names the SQL dialect of a DDL source. Import uses it to pick the
// Tables' DatabaseType; identifier unquoting and type inference are the
// same for every dialect.
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

var dialectDatabaseType = map[Dialect]model.DatabaseType{
	Postgres:   model.Postgres,
	MySQL:      model.MySQL,
	SQLServer:  model.SQLServer,
	SQLite:     model.Postgres,
	Databricks: model.DatabricksDelta,
	Snowflake:  model.Postgres,
	BigQuery:   model.Postgres,
}

// DialectFromString validates a CLI-supplied dialect name, returning
// false for anything not in the known set.
func DialectFromString(s string) (Dialect, bool) {
	d := Dialect(strings.ToLower(s))
	_, ok := dialectDatabaseType[d]
	return d, ok
}

var createTablePattern = regexp.MustCompile(`(?is)CREATE\s+TABLE\s+(?:IF\s+NOT\s+EXISTS\s+)?([\w."` + "`" + `\[\]]+)\s*\((.*)\)\s*;?\s*$`)

var primaryKeyPattern = regexp.MustCompile(`(?i)^PRIMARY\s+KEY\s*\(([^)]+)\)$`)

// Import parses DDL source written in the given dialect into a slice of
// Tables. Unknown or unparseable statements are skipped with a warning
// diagnostic rather than aborting the whole import (spec.md §4.1).
func Import(source string, dialect Dialect) ([]*model.Table, diagnostics.Diagnostics) {
	var diags diagnostics.Diagnostics
	var tables []*model.Table

	dbType, ok := dialectDatabaseType[dialect]
	if !ok {
		diags.Addf(diagnostics.Error, "sql: unknown dialect %q", dialect)
		return nil, diags
	}

	for _, stmt := range splitStatements(source) {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if !strings.HasPrefix(strings.ToUpper(strings.TrimSpace(stripLeadingComments(stmt))), "CREATE TABLE") {
			diags.Addf(diagnostics.Warning, "sql: unsupported statement, skipping: %.60s", stmt)
			continue
		}

		m := createTablePattern.FindStringSubmatch(stmt)
		if m == nil {
			diags.Addf(diagnostics.Warning, "sql: unrecognized CREATE TABLE statement, skipping: %.60s", stmt)
			continue
		}

		qualified := unquoteIdentifier(m[1])
		catalog, schema, name := splitQualifiedName(qualified)

		tbl := model.NewTable(dbType, name, catalog, schema, true)
		parseColumnList(m[2], tbl, &diags)
		tables = append(tables, tbl)
	}

	return tables, diags
}

// splitStatements splits source on top-level semicolons, ignoring ones
// nested inside parentheses (so a column list's internal punctuation is
// never mistaken for a statement boundary).
func splitStatements(source string) []string {
	var stmts []string
	depth := 0
	start := 0
	for i, r := range source {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ';':
			if depth == 0 {
				stmts = append(stmts, source[start:i])
				start = i + 1
			}
		}
	}
	if start < len(source) {
		stmts = append(stmts, source[start:])
	}
	return stmts
}

// stripLeadingComments removes Liquibase-formatted "--" comment lines
// preceding a statement; they are recognized only as a discovery hint and
// otherwise ignored (spec.md §4.1).
func stripLeadingComments(stmt string) string {
	lines := strings.Split(stmt, "\n")
	i := 0
	for i < len(lines) && strings.HasPrefix(strings.TrimSpace(lines[i]), "--") {
		i++
	}
	return strings.Join(lines[i:], "\n")
}

func unquoteIdentifier(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "\"`[]")
	return s
}

func splitQualifiedName(qualified string) (catalog, schema, name string) {
	parts := strings.Split(qualified, ".")
	for i, p := range parts {
		parts[i] = unquoteIdentifier(p)
	}
	switch len(parts) {
	case 1:
		return "", "", parts[0]
	case 2:
		return "", parts[0], parts[1]
	default:
		return parts[0], parts[1], parts[len(parts)-1]
	}
}

// splitTopLevel splits a column/constraint list on commas at paren-depth
// zero, so nested type expressions like DECIMAL(10,2) or STRUCT<...> are
// never split internally.
func splitTopLevel(s string) []string {
	var parts []string
	depth := 0
	start := 0
	for i, r := range s {
		switch r {
		case '(', '<':
			depth++
		case ')', '>':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, s[start:])
	return parts
}

func parseColumnList(body string, tbl *model.Table, diags *diagnostics.Diagnostics) {
	var pkNames []string

	for _, entry := range splitTopLevel(body) {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		if m := primaryKeyPattern.FindStringSubmatch(entry); m != nil {
			for _, col := range strings.Split(m[1], ",") {
				pkNames = append(pkNames, unquoteIdentifier(strings.TrimSpace(col)))
			}
			continue
		}

		upper := strings.ToUpper(entry)
		if strings.HasPrefix(upper, "CONSTRAINT") || strings.HasPrefix(upper, "FOREIGN KEY") ||
			strings.HasPrefix(upper, "UNIQUE") || strings.HasPrefix(upper, "CHECK") {
			diags.Addf(diagnostics.Info, "sql: table-level constraint not modeled, skipped: %.60s", entry)
			continue
		}

		col, err := parseColumnDef(entry)
		if err != nil {
			diags.Addf(diagnostics.Warning, "sql: %v, skipping column definition: %.60s", err, entry)
			continue
		}
		tbl.AddColumn(col)
	}

	if len(pkNames) > 0 {
		if err := tbl.SetPrimaryKey(pkNames); err != nil {
			diags.Addf(diagnostics.Warning, "sql: %v", err)
		}
	}
}

var columnDefPattern = regexp.MustCompile(`(?is)^([\w."` + "`" + `]+)\s+(.+)$`)

func parseColumnDef(entry string) (*model.Column, error) {
	m := columnDefPattern.FindStringSubmatch(strings.TrimSpace(entry))
	if m == nil {
		return nil, errNoColumnMatch
	}

	name := unquoteIdentifier(m[1])
	rest := strings.TrimSpace(m[2])

	physicalType, remainder := splitTypeExpression(rest)
	upperRemainder := strings.ToUpper(remainder)

	col := model.NewColumn(name, inferLogicalType(physicalType))
	col.PhysicalType = physicalType
	col.Nullable = !strings.Contains(upperRemainder, "NOT NULL")
	if strings.Contains(upperRemainder, "PRIMARY KEY") {
		col.PrimaryKey = true
		col.PrimaryKeyPosition = 1
		col.Nullable = false
	}

	return col, nil
}

// splitTypeExpression splits a column's trailing clause into its type
// expression (preserved verbatim, composite types included) and whatever
// constraint keywords follow it.
func splitTypeExpression(rest string) (typeExpr, remainder string) {
	depth := 0
	for i, r := range rest {
		switch r {
		case '(', '<':
			depth++
		case ')', '>':
			depth--
		case ' ':
			if depth == 0 {
				return strings.TrimSpace(rest[:i]), strings.TrimSpace(rest[i:])
			}
		}
	}
	return strings.TrimSpace(rest), ""
}

func inferLogicalType(physicalType string) model.LogicalType {
	upper := strings.ToUpper(physicalType)
	switch {
	case strings.HasPrefix(upper, "STRUCT"):
		return model.LogicalObject
	case strings.HasPrefix(upper, "ARRAY"):
		return model.LogicalArray
	case strings.Contains(upper, "INT"):
		return model.LogicalInteger
	case strings.Contains(upper, "DECIMAL"), strings.Contains(upper, "NUMERIC"),
		strings.Contains(upper, "FLOAT"), strings.Contains(upper, "DOUBLE"), strings.Contains(upper, "REAL"):
		return model.LogicalNumber
	case strings.Contains(upper, "BOOL"):
		return model.LogicalBoolean
	case strings.Contains(upper, "BYTEA"), strings.Contains(upper, "BLOB"), strings.Contains(upper, "BINARY"):
		return model.LogicalBytes
	case upper == "DATE":
		return model.LogicalDate
	case strings.Contains(upper, "TIMESTAMPTZ"), strings.Contains(upper, "TIMESTAMP WITH TIME ZONE"):
		return model.LogicalTimestampTZ
	case strings.Contains(upper, "TIMESTAMP"):
		return model.LogicalTimestamp
	case strings.Contains(upper, "TIME"):
		return model.LogicalTime
	case strings.Contains(upper, "UUID"):
		return model.LogicalUUID
	default:
		return model.LogicalString
	}
}

var errNoColumnMatch = columnMatchError{}

type columnMatchError struct{}

func (columnMatchError) Error() string { return "could not parse column definition" }
