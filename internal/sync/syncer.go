// Package sync projects a workspace into an analytic relational database
// and back (spec.md §4.4), reconciling by content hash so that unchanged
// entities are not rewritten.
package sync

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/marmotdata/schemakit/internal/format/yamlcodec"
	"github.com/marmotdata/schemakit/internal/metrics"
	"github.com/marmotdata/schemakit/internal/model"
)

// Syncer projects workspaces into an analytic Postgres database.
type Syncer struct {
	db       *pgxpool.Pool
	recorder *metrics.Recorder
}

// NewSyncer wraps an already-connected pool. recorder may be nil.
func NewSyncer(db *pgxpool.Pool, recorder *metrics.Recorder) *Syncer {
	return &Syncer{db: db, recorder: recorder}
}

const schemaVersion = 1

const initializeSQL = `
CREATE TABLE IF NOT EXISTS schema_version (version INT NOT NULL);
CREATE TABLE IF NOT EXISTS workspaces (
	id UUID PRIMARY KEY, name TEXT NOT NULL, owner TEXT, description TEXT,
	content_hash TEXT NOT NULL, updated_at TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS domains (
	id UUID PRIMARY KEY, workspace_id UUID NOT NULL REFERENCES workspaces(id),
	name TEXT NOT NULL, description TEXT, content_hash TEXT NOT NULL, updated_at TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS systems (
	id UUID PRIMARY KEY, domain_id UUID NOT NULL REFERENCES domains(id),
	name TEXT NOT NULL, description TEXT, content_hash TEXT NOT NULL, updated_at TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS tables (
	id UUID PRIMARY KEY, workspace_id UUID NOT NULL REFERENCES workspaces(id),
	name TEXT NOT NULL, catalog TEXT, schema_name TEXT, tags TEXT[], metadata JSONB,
	content_hash TEXT NOT NULL, updated_at TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS columns (
	id TEXT PRIMARY KEY, table_id UUID NOT NULL REFERENCES tables(id),
	name TEXT NOT NULL, content_hash TEXT NOT NULL, updated_at TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS relationships (
	id UUID PRIMARY KEY, workspace_id UUID NOT NULL REFERENCES workspaces(id),
	from_table_id UUID NOT NULL, to_table_id UUID NOT NULL,
	content_hash TEXT NOT NULL, updated_at TIMESTAMPTZ NOT NULL
);
`

// Initialize creates the analytic relations if missing and records the
// schema version.
func (s *Syncer) Initialize(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, initializeSQL); err != nil {
		return fmt.Errorf("sync: initialize: %w", err)
	}
	var count int
	if err := s.db.QueryRow(ctx, "SELECT count(*) FROM schema_version").Scan(&count); err != nil {
		return fmt.Errorf("sync: checking schema_version: %w", err)
	}
	if count == 0 {
		if _, err := s.db.Exec(ctx, "INSERT INTO schema_version (version) VALUES ($1)", schemaVersion); err != nil {
			return fmt.Errorf("sync: recording schema version: %w", err)
		}
	}
	return nil
}

// contentHash hashes the canonical YAML rendering of an entity, never the
// raw source file, so reordering source assets never causes spurious diffs.
func contentHash(v interface{}) (string, error) {
	data, err := yamlcodec.Marshal(v)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// Sync reconciles a workspace's domains, systems, tables, columns, and
// relationships with the target database. When force is false, only rows
// whose content hash changed are written.
func (s *Syncer) Sync(ctx context.Context, ws *model.Workspace, tables []*model.Table, force bool) (*Result, error) {
	start := time.Now()
	result := &Result{Summary: newSummary()}

	tx, err := s.db.Begin(ctx)
	singleTx := err == nil
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("opening transaction: %v (falling back to best-effort writes)", err))
	}
	defer func() {
		if singleTx {
			_ = tx.Rollback(ctx)
		}
	}()

	exec := func(ctx context.Context, sql string, args ...interface{}) error {
		if singleTx {
			_, err := tx.Exec(ctx, sql, args...)
			return err
		}
		_, err := s.db.Exec(ctx, sql, args...)
		return err
	}
	query := func(ctx context.Context, sql string, args ...interface{}) pgx.Row {
		if singleTx {
			return tx.QueryRow(ctx, sql, args...)
		}
		return s.db.QueryRow(ctx, sql, args...)
	}

	if err := s.syncWorkspace(ctx, exec, query, ws, force, result); err != nil {
		result.Errors = append(result.Errors, err.Error())
	}
	for i := range ws.Domains {
		if err := s.syncDomain(ctx, exec, query, ws.ID, &ws.Domains[i], force, result); err != nil {
			result.Errors = append(result.Errors, err.Error())
		}
	}
	for _, tbl := range tables {
		if err := s.syncTable(ctx, exec, query, ws.ID, tbl, force, result); err != nil {
			result.Errors = append(result.Errors, err.Error())
		}
	}
	for _, rel := range ws.Relationships {
		if err := s.syncRelationship(ctx, exec, query, ws.ID, rel, force, result); err != nil {
			result.Errors = append(result.Errors, err.Error())
		}
	}

	if singleTx {
		if err := tx.Commit(ctx); err != nil {
			return result, fmt.Errorf("sync: committing: %w", err)
		}
	}

	result.ElapsedMS = time.Since(start).Milliseconds()
	s.recorder.ObserveSyncDuration("postgres", time.Since(start))
	return result, nil
}

// record updates the summary and, when a recorder is attached, the
// matching Prometheus counter in one place.
func (s *Syncer) record(result *Result, entity, id string, change ChangeType) {
	result.Summary.record(entity, id, change)
	s.recorder.RecordSync(entity, string(change))
}

type execFn func(ctx context.Context, sql string, args ...interface{}) error
type queryFn func(ctx context.Context, sql string, args ...interface{}) pgx.Row

func (s *Syncer) syncWorkspace(ctx context.Context, exec execFn, query queryFn, ws *model.Workspace, force bool, result *Result) error {
	hash, err := contentHash(ws)
	if err != nil {
		return err
	}
	changed, err := rowChanged(ctx, query, "workspaces", ws.ID, hash, force)
	if err != nil {
		return err
	}
	s.record(result, "workspace", ws.Name, changed)
	if changed == NoChange {
		return nil
	}
	return exec(ctx, `
		INSERT INTO workspaces (id, name, owner, description, content_hash, updated_at)
		VALUES ($1,$2,$3,$4,$5,now())
		ON CONFLICT (id) DO UPDATE SET name=$2, owner=$3, description=$4, content_hash=$5, updated_at=now()`,
		ws.ID, ws.Name, ws.Owner, ws.Description, hash)
}

func (s *Syncer) syncDomain(ctx context.Context, exec execFn, query queryFn, workspaceID string, d *model.Domain, force bool, result *Result) error {
	hash, err := contentHash(d)
	if err != nil {
		return err
	}
	changed, err := rowChanged(ctx, query, "domains", d.ID, hash, force)
	if err != nil {
		return err
	}
	s.record(result, "domains", d.Name, changed)
	if changed == NoChange {
		return nil
	}
	if err := exec(ctx, `
		INSERT INTO domains (id, workspace_id, name, description, content_hash, updated_at)
		VALUES ($1,$2,$3,$4,$5,now())
		ON CONFLICT (id) DO UPDATE SET name=$3, description=$4, content_hash=$5, updated_at=now()`,
		d.ID, workspaceID, d.Name, d.Description, hash); err != nil {
		return err
	}
	for i := range d.Systems {
		if err := s.syncSystem(ctx, exec, query, d.ID, &d.Systems[i], force, result); err != nil {
			return err
		}
	}
	return nil
}

func (s *Syncer) syncSystem(ctx context.Context, exec execFn, query queryFn, domainID string, sys *model.System, force bool, result *Result) error {
	hash, err := contentHash(sys)
	if err != nil {
		return err
	}
	changed, err := rowChanged(ctx, query, "systems", sys.ID, hash, force)
	if err != nil {
		return err
	}
	s.record(result, "systems", sys.Name, changed)
	if changed == NoChange {
		return nil
	}
	return exec(ctx, `
		INSERT INTO systems (id, domain_id, name, description, content_hash, updated_at)
		VALUES ($1,$2,$3,$4,$5,now())
		ON CONFLICT (id) DO UPDATE SET name=$3, description=$4, content_hash=$5, updated_at=now()`,
		sys.ID, domainID, sys.Name, sys.Description, hash)
}

func (s *Syncer) syncTable(ctx context.Context, exec execFn, query queryFn, workspaceID string, tbl *model.Table, force bool, result *Result) error {
	hash, err := contentHash(tbl)
	if err != nil {
		return err
	}
	changed, err := rowChanged(ctx, query, "tables", tbl.ID, hash, force)
	if err != nil {
		return err
	}
	s.record(result, "tables", tbl.Name, changed)
	if changed != NoChange {
		tags := model.RenderTags(tbl.Tags)
		var metadata map[string]map[string]interface{}
		if len(tbl.FormatMetadata) > 0 {
			metadata = tbl.FormatMetadata
		}
		// tags/metadata are plain Go slice/map values: pgx/v5 encodes
		// []string against text[] and any map/struct against jsonb
		// without a pgtype wrapper, so no separate type-mapping
		// dependency is needed here.
		if err := exec(ctx, `
			INSERT INTO tables (id, workspace_id, name, catalog, schema_name, tags, metadata, content_hash, updated_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,now())
			ON CONFLICT (id) DO UPDATE SET name=$3, catalog=$4, schema_name=$5, tags=$6, metadata=$7, content_hash=$8, updated_at=now()`,
			tbl.ID, workspaceID, tbl.Name, tbl.Catalog, tbl.Schema, tags, metadata, hash); err != nil {
			return err
		}
	}
	for _, col := range tbl.Columns {
		if err := s.syncColumn(ctx, exec, query, tbl.ID, col, force, result); err != nil {
			return err
		}
	}
	return nil
}

func (s *Syncer) syncColumn(ctx context.Context, exec execFn, query queryFn, tableID string, col *model.Column, force bool, result *Result) error {
	colID := tableID + ":" + col.Name
	hash, err := contentHash(col)
	if err != nil {
		return err
	}
	changed, err := rowChangedText(ctx, query, "columns", colID, hash, force)
	if err != nil {
		return err
	}
	s.record(result, "columns", colID, changed)
	if changed == NoChange {
		return nil
	}
	return exec(ctx, `
		INSERT INTO columns (id, table_id, name, content_hash, updated_at)
		VALUES ($1,$2,$3,$4,now())
		ON CONFLICT (id) DO UPDATE SET name=$3, content_hash=$4, updated_at=now()`,
		colID, tableID, col.Name, hash)
}

func (s *Syncer) syncRelationship(ctx context.Context, exec execFn, query queryFn, workspaceID string, rel *model.Relationship, force bool, result *Result) error {
	hash, err := contentHash(rel)
	if err != nil {
		return err
	}
	changed, err := rowChanged(ctx, query, "relationships", rel.ID, hash, force)
	if err != nil {
		return err
	}
	s.record(result, "relationships", rel.Name, changed)
	if changed == NoChange {
		return nil
	}
	return exec(ctx, `
		INSERT INTO relationships (id, workspace_id, from_table_id, to_table_id, content_hash, updated_at)
		VALUES ($1,$2,$3,$4,$5,now())
		ON CONFLICT (id) DO UPDATE SET from_table_id=$3, to_table_id=$4, content_hash=$5, updated_at=now()`,
		rel.ID, workspaceID, rel.From.TableID, rel.To.TableID, hash)
}

func rowChanged(ctx context.Context, query queryFn, table, id, hash string, force bool) (ChangeType, error) {
	var existing string
	err := query(ctx, fmt.Sprintf("SELECT content_hash FROM %s WHERE id=$1", table), id).Scan(&existing)
	switch {
	case err == pgx.ErrNoRows:
		return Created, nil
	case err != nil:
		return NoChange, err
	case force || existing != hash:
		return Updated, nil
	default:
		return NoChange, nil
	}
}

// rowChangedText is rowChanged for tables whose primary key is TEXT
// rather than UUID (columns, keyed by "<table-id>:<name>").
func rowChangedText(ctx context.Context, query queryFn, table, id, hash string, force bool) (ChangeType, error) {
	return rowChanged(ctx, query, table, id, hash, force)
}
