package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags; it defaults to "0.1.0"
// when built without them.
var Version = "0.1.0"

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print schemakit version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("schemakit v%s\n", Version)
		return nil
	},
}
