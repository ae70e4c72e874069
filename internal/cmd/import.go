package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/marmotdata/schemakit/internal/diagnostics"
	"github.com/marmotdata/schemakit/internal/importer/avro"
	"github.com/marmotdata/schemakit/internal/importer/jsonschema"
	"github.com/marmotdata/schemakit/internal/importer/odcl"
	"github.com/marmotdata/schemakit/internal/importer/odcs"
	"github.com/marmotdata/schemakit/internal/importer/odps"
	"github.com/marmotdata/schemakit/internal/importer/openapi"
	"github.com/marmotdata/schemakit/internal/importer/protobuf"
	"github.com/marmotdata/schemakit/internal/importer/sql"
	"github.com/marmotdata/schemakit/internal/model"
	"github.com/marmotdata/schemakit/internal/workspace"
)

var (
	importFormat    string
	importDialect   string
	importWorkspace string
	importDomain    string
	importSystem    string
	importTableName string
	importOwner     string
)

func init() {
	importCmd.Flags().StringVar(&importFormat, "format", "", "source format: sql, jsonschema, avro, protobuf, openapi, odcl, odcs, odps (required)")
	importCmd.Flags().StringVar(&importDialect, "dialect", "postgres", "SQL dialect, when --format=sql")
	importCmd.Flags().StringVar(&importWorkspace, "workspace", ".", "workspace directory to write into")
	importCmd.Flags().StringVar(&importDomain, "domain", "default", "domain the imported asset(s) belong to")
	importCmd.Flags().StringVar(&importSystem, "system", "", "system the imported asset(s) belong to")
	importCmd.Flags().StringVar(&importTableName, "table-name", "", "table name, when --format=jsonschema")
	importCmd.Flags().StringVar(&importOwner, "owner", "", "workspace owner, used only when creating a new workspace")
	_ = importCmd.MarkFlagRequired("format")
	rootCmd.AddCommand(importCmd)
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a schema document into the canonical model and write it into a workspace",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runImport(args[0])
	},
}

func runImport(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("import: reading %q: %w", path, err)
	}

	tables, product, diags := dispatchImport(importFormat, data)
	for _, d := range diags {
		log.Warn().Msg(d.String())
	}
	if diags.HasErrors() {
		return fmt.Errorf("import: %q failed with %d error(s)", path, len(diags.Errors()))
	}

	ws, loadDiags := workspace.LoadWorkspace(importWorkspace)
	if loadDiags.HasErrors() {
		ws = model.NewWorkspace("workspace", importOwner)
	}
	ws.EnsureDomain(importDomain)

	var assets []workspace.AssetBody
	for _, tbl := range tables {
		ref := model.AssetRef{ID: tbl.ID, Name: tbl.Name, Domain: importDomain, System: importSystem, Kind: model.KindODCS}
		ws.AddAsset(ref)
		assets = append(assets, workspace.AssetBody{Ref: ref, Body: tbl})
	}
	if product != nil {
		ref := model.AssetRef{ID: product.ID, Name: product.Name, Domain: importDomain, System: importSystem, Kind: model.KindODPS}
		ws.AddAsset(ref)
		assets = append(assets, workspace.AssetBody{Ref: ref, Body: product})
	}

	if err := workspace.Emit(importWorkspace, ws, assets); err != nil {
		return fmt.Errorf("import: writing workspace: %w", err)
	}

	fmt.Printf("Imported %d table(s) from %s into %s\n", len(tables), path, importWorkspace)
	return nil
}

// dispatchImport routes to the importer matching --format. Every
// importer's return shape (single table, table slice, or data product)
// is normalized to (tables, product) here so the rest of the command
// doesn't need to know the per-format quirks.
func dispatchImport(format string, data []byte) ([]*model.Table, *model.DataProduct, diagnostics.Diagnostics) {
	switch format {
	case "sql":
		dialect, ok := sql.DialectFromString(importDialect)
		if !ok {
			var diags diagnostics.Diagnostics
			diags.Addf(diagnostics.Error, "import: unknown SQL dialect %q", importDialect)
			return nil, nil, diags
		}
		tables, diags := sql.Import(string(data), dialect)
		return tables, nil, diags
	case "jsonschema":
		name := importTableName
		if name == "" {
			var diags diagnostics.Diagnostics
			diags.Addf(diagnostics.Error, "import: --table-name is required for --format=jsonschema")
			return nil, nil, diags
		}
		tables, diags := jsonschema.Import(data, name)
		return tables, nil, diags
	case "avro":
		tables, diags := avro.Import(string(data))
		return tables, nil, diags
	case "protobuf":
		tables, diags := protobuf.Import(string(data))
		return tables, nil, diags
	case "openapi":
		tables, diags := openapi.Import(data)
		return tables, nil, diags
	case "odcs":
		tables, diags := odcs.Import(data)
		return tables, nil, diags
	case "odcl":
		tbl, diags := odcl.Import(data)
		if tbl == nil {
			return nil, nil, diags
		}
		return []*model.Table{tbl}, nil, diags
	case "odps":
		product, diags := odps.Import(data, odps.Options{})
		return nil, product, diags
	default:
		var diags diagnostics.Diagnostics
		diags.Addf(diagnostics.Error, "import: unknown format %q", format)
		return nil, nil, diags
	}
}
