package sync

import (
	"context"
	"fmt"

	"github.com/marmotdata/schemakit/internal/model"
)

// ExportWorkspace is the inverse of Sync: it reconstructs a Workspace, its
// Tables, and its Relationships from the analytic database (spec.md §4.4
// `export_workspace`).
func (s *Syncer) ExportWorkspace(ctx context.Context, workspaceID string) (*model.Workspace, []*model.Table, error) {
	ws := &model.Workspace{ID: workspaceID}
	row := s.db.QueryRow(ctx, "SELECT name, owner, description FROM workspaces WHERE id=$1", workspaceID)
	if err := row.Scan(&ws.Name, &ws.Owner, &ws.Description); err != nil {
		return nil, nil, fmt.Errorf("sync: workspace %s not found: %w", workspaceID, err)
	}

	domainRows, err := s.db.Query(ctx, "SELECT id, name, description FROM domains WHERE workspace_id=$1", workspaceID)
	if err != nil {
		return nil, nil, fmt.Errorf("sync: loading domains: %w", err)
	}
	defer domainRows.Close()
	for domainRows.Next() {
		var d model.Domain
		if err := domainRows.Scan(&d.ID, &d.Name, &d.Description); err != nil {
			return nil, nil, err
		}
		systemRows, err := s.db.Query(ctx, "SELECT id, name, description FROM systems WHERE domain_id=$1", d.ID)
		if err != nil {
			return nil, nil, fmt.Errorf("sync: loading systems for domain %s: %w", d.ID, err)
		}
		for systemRows.Next() {
			var sys model.System
			if err := systemRows.Scan(&sys.ID, &sys.Name, &sys.Description); err != nil {
				systemRows.Close()
				return nil, nil, err
			}
			d.Systems = append(d.Systems, sys)
		}
		systemRows.Close()
		ws.Domains = append(ws.Domains, d)
	}

	tableRows, err := s.db.Query(ctx, "SELECT id, name, catalog, schema_name FROM tables WHERE workspace_id=$1", workspaceID)
	if err != nil {
		return nil, nil, fmt.Errorf("sync: loading tables: %w", err)
	}
	defer tableRows.Close()
	var tables []*model.Table
	for tableRows.Next() {
		tbl := &model.Table{}
		if err := tableRows.Scan(&tbl.ID, &tbl.Name, &tbl.Catalog, &tbl.Schema); err != nil {
			return nil, nil, err
		}
		tables = append(tables, tbl)
	}

	relRows, err := s.db.Query(ctx, "SELECT id, from_table_id, to_table_id FROM relationships WHERE workspace_id=$1", workspaceID)
	if err != nil {
		return nil, nil, fmt.Errorf("sync: loading relationships: %w", err)
	}
	defer relRows.Close()
	for relRows.Next() {
		rel := &model.Relationship{}
		if err := relRows.Scan(&rel.ID, &rel.From.TableID, &rel.To.TableID); err != nil {
			return nil, nil, err
		}
		ws.Relationships = append(ws.Relationships, rel)
	}

	return ws, tables, nil
}
