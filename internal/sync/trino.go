package sync

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/trinodb/trino-go-client/trino"

	"github.com/marmotdata/schemakit/internal/metrics"
	"github.com/marmotdata/schemakit/internal/model"
)

// TrinoSyncer projects workspaces into the analytic tables of a Trino
// catalog (spec.md §11's "postgres + trino sync engine" alternate
// backend) — the same entities and write order as Syncer, reached
// through database/sql over the trino-go-client driver instead of pgx,
// since Trino connectors generally lack transactions and upserts.
type TrinoSyncer struct {
	db       *sql.DB
	catalog  string
	schema   string
	recorder *metrics.Recorder
}

// TrinoDSN builds the "trino" driver's connection string from connection
// fields, following the same Config.FormatDSN convention as database/sql
// drivers in the go-sql-driver/mysql lineage.
func TrinoDSN(host string, port int, user, catalog, schema, source string, ssl bool) string {
	scheme := "http"
	if ssl {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s@%s:%d?catalog=%s&schema=%s&source=%s",
		scheme, user, host, port, catalog, schema, source)
}

// NewTrinoSyncer opens a database/sql connection against dsn (see
// TrinoDSN). recorder may be nil.
func NewTrinoSyncer(dsn, catalog, schema string, recorder *metrics.Recorder) (*TrinoSyncer, error) {
	db, err := sql.Open("trino", dsn)
	if err != nil {
		return nil, fmt.Errorf("sync: opening trino connection: %w", err)
	}
	return &TrinoSyncer{db: db, catalog: catalog, schema: schema, recorder: recorder}, nil
}

// Close releases the underlying connection.
func (s *TrinoSyncer) Close() error {
	return s.db.Close()
}

func (s *TrinoSyncer) qualify(table string) string {
	return fmt.Sprintf("%s.%s.%s", s.catalog, s.schema, table)
}

// trinoInitializeStatements mirrors Syncer.initializeSQL's relations, as
// individual CREATE TABLE statements: Trino's Iceberg/Hive connectors
// reject multi-statement batches, so each DDL runs as its own query.
var trinoInitializeStatements = []string{
	`CREATE TABLE IF NOT EXISTS %s (version INT)`,
	`CREATE TABLE IF NOT EXISTS %s (id VARCHAR, name VARCHAR, owner VARCHAR, description VARCHAR, content_hash VARCHAR, updated_at TIMESTAMP)`,
	`CREATE TABLE IF NOT EXISTS %s (id VARCHAR, workspace_id VARCHAR, name VARCHAR, description VARCHAR, content_hash VARCHAR, updated_at TIMESTAMP)`,
	`CREATE TABLE IF NOT EXISTS %s (id VARCHAR, domain_id VARCHAR, name VARCHAR, description VARCHAR, content_hash VARCHAR, updated_at TIMESTAMP)`,
	`CREATE TABLE IF NOT EXISTS %s (id VARCHAR, workspace_id VARCHAR, name VARCHAR, catalog VARCHAR, schema_name VARCHAR, content_hash VARCHAR, updated_at TIMESTAMP)`,
	`CREATE TABLE IF NOT EXISTS %s (id VARCHAR, table_id VARCHAR, name VARCHAR, content_hash VARCHAR, updated_at TIMESTAMP)`,
	`CREATE TABLE IF NOT EXISTS %s (id VARCHAR, workspace_id VARCHAR, from_table_id VARCHAR, to_table_id VARCHAR, content_hash VARCHAR, updated_at TIMESTAMP)`,
}

var trinoTableNames = []string{"schema_version", "workspaces", "domains", "systems", "tables", "columns", "relationships"}

// Initialize creates the analytic relations if missing.
func (s *TrinoSyncer) Initialize(ctx context.Context) error {
	for i, stmt := range trinoInitializeStatements {
		q := fmt.Sprintf(stmt, s.qualify(trinoTableNames[i]))
		if _, err := s.db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("sync: trino initialize %s: %w", trinoTableNames[i], err)
		}
	}
	var count int
	row := s.db.QueryRowContext(ctx, fmt.Sprintf("SELECT count(*) FROM %s", s.qualify("schema_version")))
	if err := row.Scan(&count); err != nil {
		return fmt.Errorf("sync: trino checking schema_version: %w", err)
	}
	if count == 0 {
		if _, err := s.db.ExecContext(ctx, fmt.Sprintf("INSERT INTO %s VALUES (%d)", s.qualify("schema_version"), schemaVersion)); err != nil {
			return fmt.Errorf("sync: trino recording schema version: %w", err)
		}
	}
	return nil
}

// Sync reconciles a workspace with the Trino catalog using delete-then-
// insert per changed row, since Trino connectors generally support
// neither ON CONFLICT nor multi-statement transactions.
func (s *TrinoSyncer) Sync(ctx context.Context, ws *model.Workspace, tables []*model.Table, force bool) (*Result, error) {
	start := time.Now()
	result := &Result{Summary: newSummary()}

	if err := s.upsertRow(ctx, result, "workspace", ws.Name, "workspaces", ws.ID, ws, force,
		func() (string, []interface{}) {
			return "INSERT INTO %s (id, name, owner, description, content_hash, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
				[]interface{}{ws.ID, ws.Name, ws.Owner, ws.Description}
		}); err != nil {
		result.Errors = append(result.Errors, err.Error())
	}

	for i := range ws.Domains {
		d := &ws.Domains[i]
		if err := s.upsertRow(ctx, result, "domains", d.Name, "domains", d.ID, d, force,
			func() (string, []interface{}) {
				return "INSERT INTO %s (id, workspace_id, name, description, content_hash, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
					[]interface{}{d.ID, ws.ID, d.Name, d.Description}
			}); err != nil {
			result.Errors = append(result.Errors, err.Error())
		}
		for j := range d.Systems {
			sys := &d.Systems[j]
			if err := s.upsertRow(ctx, result, "systems", sys.Name, "systems", sys.ID, sys, force,
				func() (string, []interface{}) {
					return "INSERT INTO %s (id, domain_id, name, description, content_hash, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
						[]interface{}{sys.ID, d.ID, sys.Name, sys.Description}
				}); err != nil {
				result.Errors = append(result.Errors, err.Error())
			}
		}
	}

	for _, tbl := range tables {
		t := tbl
		if err := s.upsertRow(ctx, result, "tables", t.Name, "tables", t.ID, t, force,
			func() (string, []interface{}) {
				return "INSERT INTO %s (id, workspace_id, name, catalog, schema_name, content_hash, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
					[]interface{}{t.ID, ws.ID, t.Name, t.Catalog, t.Schema}
			}); err != nil {
			result.Errors = append(result.Errors, err.Error())
		}
		for _, col := range t.Columns {
			c := col
			colID := t.ID + ":" + c.Name
			if err := s.upsertRow(ctx, result, "columns", colID, "columns", colID, c, force,
				func() (string, []interface{}) {
					return "INSERT INTO %s (id, table_id, name, content_hash, updated_at) VALUES (?, ?, ?, ?, ?)",
						[]interface{}{colID, t.ID, c.Name}
				}); err != nil {
				result.Errors = append(result.Errors, err.Error())
			}
		}
	}

	for _, rel := range ws.Relationships {
		r := rel
		if err := s.upsertRow(ctx, result, "relationships", r.Name, "relationships", r.ID, r, force,
			func() (string, []interface{}) {
				return "INSERT INTO %s (id, workspace_id, from_table_id, to_table_id, content_hash, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
					[]interface{}{r.ID, ws.ID, r.From.TableID, r.To.TableID}
			}); err != nil {
			result.Errors = append(result.Errors, err.Error())
		}
	}

	result.ElapsedMS = time.Since(start).Milliseconds()
	s.recorder.ObserveSyncDuration("trino", time.Since(start))
	return result, nil
}

// upsertRow resolves the change type for one entity against table/id,
// and on a change deletes any existing row and inserts the current one
// (insertStmt's %s is the qualified table name; content_hash and
// updated_at are appended as the last two bind values automatically).
func (s *TrinoSyncer) upsertRow(ctx context.Context, result *Result, entity, recordKey, table, id string, v interface{}, force bool, insertStmt func() (string, []interface{})) error {
	hash, err := contentHash(v)
	if err != nil {
		return err
	}

	var existing string
	row := s.db.QueryRowContext(ctx, fmt.Sprintf("SELECT content_hash FROM %s WHERE id = ?", s.qualify(table)), id)
	err = row.Scan(&existing)

	var changed ChangeType
	switch {
	case errors.Is(err, sql.ErrNoRows):
		changed = Created
	case err != nil:
		return err
	case force || existing != hash:
		changed = Updated
	default:
		changed = NoChange
	}

	result.Summary.record(entity, recordKey, changed)
	s.recorder.RecordSync(entity, string(changed))
	if changed == NoChange {
		return nil
	}

	if _, err := s.db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = ?", s.qualify(table)), id); err != nil {
		return fmt.Errorf("sync: trino deleting %s %s: %w", table, id, err)
	}

	stmt, args := insertStmt()
	args = append(args, hash, time.Now())
	if _, err := s.db.ExecContext(ctx, fmt.Sprintf(stmt, s.qualify(table)), args...); err != nil {
		return fmt.Errorf("sync: trino inserting %s %s: %w", table, id, err)
	}
	return nil
}
