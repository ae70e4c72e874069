package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/marmotdata/schemakit/internal/config"
	"github.com/marmotdata/schemakit/internal/format/yamlcodec"
	"github.com/marmotdata/schemakit/internal/metrics"
	"github.com/marmotdata/schemakit/internal/model"
	"github.com/marmotdata/schemakit/internal/sync"
	"github.com/marmotdata/schemakit/internal/workspace"
)

var (
	syncWorkspaceDir string
	syncForce        bool
)

func init() {
	syncCmd.Flags().StringVar(&syncWorkspaceDir, "workspace", ".", "workspace directory")
	syncCmd.Flags().BoolVar(&syncForce, "force", false, "rewrite every row regardless of content hash")
	rootCmd.AddCommand(syncCmd)
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Reconcile a workspace with the configured analytic database",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSync(cmd.Context())
	},
}

func runSync(ctx context.Context) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	ws, diags := workspace.LoadWorkspace(syncWorkspaceDir)
	if diags.HasErrors() {
		for _, d := range diags.Errors() {
			log.Error().Msg(d.String())
		}
		return fmt.Errorf("sync: workspace %q failed to load", syncWorkspaceDir)
	}
	for _, d := range diags {
		log.Warn().Msg(d.String())
	}

	tables, err := loadODCSTables(syncWorkspaceDir, ws)
	if err != nil {
		return fmt.Errorf("sync: loading tables: %w", err)
	}

	recorder := metrics.NewRecorder(prometheus.DefaultRegisterer)

	var result *sync.Result
	switch cfg.Sync.Target {
	case "trino":
		result, err = runTrinoSync(ctx, cfg, ws, tables, recorder)
	default:
		result, err = runPostgresSync(ctx, cfg, ws, tables, recorder)
	}
	if err != nil {
		return err
	}

	result.Summary.Print()
	if len(result.Errors) > 0 {
		fmt.Println("\nNon-fatal errors:")
		for _, e := range result.Errors {
			fmt.Printf("  - %s\n", e)
		}
	}
	fmt.Printf("\nCompleted in %dms\n", result.ElapsedMS)
	return nil
}

// loadODCSTables reads every ODCS asset the workspace index points at into
// its full model.Table body; LoadWorkspace itself only resolves the
// lightweight AssetRef index, not asset contents.
func loadODCSTables(directory string, ws *model.Workspace) ([]*model.Table, error) {
	var tables []*model.Table
	for _, ref := range ws.Assets {
		if ref.Kind != model.KindODCS || ref.Path == "" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(directory, ref.Path))
		if err != nil {
			return nil, err
		}
		tbl := &model.Table{}
		if err := yamlcodec.Unmarshal(data, tbl); err != nil {
			return nil, fmt.Errorf("%s: %w", ref.Path, err)
		}
		tables = append(tables, tbl)
	}
	return tables, nil
}

func runPostgresSync(ctx context.Context, cfg *config.Config, ws *model.Workspace, tables []*model.Table, recorder *metrics.Recorder) (*sync.Result, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.Sync.Database.BuildDSN())
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}
	poolConfig.MaxConns = int32(cfg.Sync.Database.MaxConns)
	poolConfig.MinConns = int32(cfg.Sync.Database.IdleConns)
	poolConfig.MaxConnLifetime = time.Duration(cfg.Sync.Database.ConnLifetime) * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	syncer := sync.NewSyncer(pool, recorder)
	if err := syncer.Initialize(ctx); err != nil {
		return nil, err
	}
	return syncer.Sync(ctx, ws, tables, syncForce)
}

func runTrinoSync(ctx context.Context, cfg *config.Config, ws *model.Workspace, tables []*model.Table, recorder *metrics.Recorder) (*sync.Result, error) {
	dsn := sync.TrinoDSN(cfg.Sync.Trino.Host, cfg.Sync.Trino.Port, cfg.Sync.Trino.User,
		cfg.Sync.Trino.Catalog, cfg.Sync.Trino.Schema, cfg.Sync.Trino.Source, cfg.Sync.Trino.SSLMode)

	syncer, err := sync.NewTrinoSyncer(dsn, cfg.Sync.Trino.Catalog, cfg.Sync.Trino.Schema, recorder)
	if err != nil {
		return nil, err
	}
	defer syncer.Close()

	if err := syncer.Initialize(ctx); err != nil {
		return nil, err
	}
	return syncer.Sync(ctx, ws, tables, syncForce)
}
