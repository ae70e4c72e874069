package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	avroexp "github.com/marmotdata/schemakit/internal/exporter/avro"
	jsonschemaexp "github.com/marmotdata/schemakit/internal/exporter/jsonschema"
	markdownexp "github.com/marmotdata/schemakit/internal/exporter/markdown"
	protobufexp "github.com/marmotdata/schemakit/internal/exporter/protobuf"
	sqlexp "github.com/marmotdata/schemakit/internal/exporter/sql"
	yamlexp "github.com/marmotdata/schemakit/internal/exporter/yaml"
	"github.com/marmotdata/schemakit/internal/format/yamlcodec"
	"github.com/marmotdata/schemakit/internal/model"
	"github.com/marmotdata/schemakit/internal/workspace"
)

var (
	exportWorkspace string
	exportFormat    string
	exportDialect   string
	exportAsset     string
	exportOutput    string
)

func init() {
	exportCmd.Flags().StringVar(&exportWorkspace, "workspace", ".", "workspace directory to read from")
	exportCmd.Flags().StringVar(&exportFormat, "format", "yaml", "output format: yaml, sql, jsonschema, avro, protobuf, markdown")
	exportCmd.Flags().StringVar(&exportDialect, "dialect", "postgres", "SQL dialect, when --format=sql")
	exportCmd.Flags().StringVar(&exportAsset, "asset", "", "name of the asset to export (required)")
	exportCmd.Flags().StringVar(&exportOutput, "output", "", "output path; defaults to stdout")
	_ = exportCmd.MarkFlagRequired("asset")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Render a workspace asset in a target format",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport()
	},
}

func runExport() error {
	ws, diags := workspace.LoadWorkspace(exportWorkspace)
	if diags.HasErrors() {
		return fmt.Errorf("export: loading workspace %q: %d error(s)", exportWorkspace, len(diags.Errors()))
	}

	var ref *model.AssetRef
	for i := range ws.Assets {
		if ws.Assets[i].Name == exportAsset {
			ref = &ws.Assets[i]
			break
		}
	}
	if ref == nil {
		return fmt.Errorf("export: no asset named %q in workspace %q", exportAsset, exportWorkspace)
	}

	out, err := renderAsset(*ref)
	if err != nil {
		return err
	}

	if exportOutput == "" {
		_, err = os.Stdout.Write(out)
		return err
	}
	return os.WriteFile(exportOutput, out, 0o644)
}

func renderAsset(ref model.AssetRef) ([]byte, error) {
	data, err := os.ReadFile(ref.Path)
	if err != nil {
		return nil, fmt.Errorf("export: reading %q: %w", ref.Path, err)
	}

	switch ref.Kind {
	case model.KindODPS:
		product := &model.DataProduct{}
		if err := yamlcodec.Unmarshal(data, product); err != nil {
			return nil, fmt.Errorf("export: parsing data product %q: %w", ref.Path, err)
		}
		switch exportFormat {
		case "yaml":
			return yamlexp.ExportTable(product)
		case "markdown":
			return []byte(markdownexp.ExportDataProduct(product)), nil
		default:
			return nil, fmt.Errorf("export: format %q is not supported for data products", exportFormat)
		}
	default:
		tbl := &model.Table{}
		if err := yamlcodec.Unmarshal(data, tbl); err != nil {
			return nil, fmt.Errorf("export: parsing table %q: %w", ref.Path, err)
		}
		return renderTable(tbl)
	}
}

func renderTable(tbl *model.Table) ([]byte, error) {
	switch exportFormat {
	case "yaml":
		return yamlexp.ExportTable(tbl)
	case "sql":
		text, err := sqlexp.Export(tbl, sqlexp.Dialect(exportDialect))
		if err != nil {
			return nil, err
		}
		return []byte(text), nil
	case "jsonschema":
		return jsonschemaexp.Export([]*model.Table{tbl})
	case "avro":
		return avroexp.Export(tbl)
	case "protobuf":
		text, err := protobufexp.Export([]*model.Table{tbl})
		if err != nil {
			return nil, err
		}
		return []byte(text), nil
	case "markdown":
		return []byte(markdownexp.ExportTable(tbl)), nil
	default:
		return nil, fmt.Errorf("export: unknown format %q", exportFormat)
	}
}
