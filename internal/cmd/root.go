// Package cmd implements the schemakit CLI: import/export between the
// canonical model and on-disk formats, workspace↔analytic-database sync,
// Iceberg staging ingestion, and governance record management.
package cmd

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	cfgFile  string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "schemakit",
	Short: "schemakit converts, syncs, and stages data-platform schema artifacts.",
	Long: `schemakit ingests SQL DDL, JSON Schema, Avro, Protobuf, OpenAPI, and the
Open Data Contract/Product standards (ODCL, ODCS, ODPS) into a canonical
model, re-emits it as canonical YAML, SQL DDL, JSON Schema, Avro, Protobuf,
or Markdown, reconciles a workspace against an
analytic database, stages raw documents into Apache Iceberg tables, and
tracks architecture decisions and knowledge-base articles alongside the
schemas they document.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := zerolog.ParseLevel(logLevel)
		if err != nil {
			return err
		}
		zerolog.SetGlobalLevel(level)
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")
}
