package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/marmotdata/schemakit/internal/governance/decision"
)

var (
	decisionWorkspace string
	decisionMode      string
)

func init() {
	decisionCmd.PersistentFlags().StringVar(&decisionWorkspace, "workspace", ".", "workspace directory")
	decisionCmd.AddCommand(decisionCreateCmd, decisionListCmd, decisionShowCmd, decisionSupersedeCmd)
	decisionCreateCmd.Flags().StringVar(&decisionMode, "mode", "sequential", "numbering mode for a new index: sequential or timestamp")
	rootCmd.AddCommand(decisionCmd)
}

var decisionCmd = &cobra.Command{
	Use:   "decision",
	Short: "Manage architecture decision records",
}

var decisionCreateCmd = &cobra.Command{
	Use:   "create <title>",
	Short: "Create a new decision record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := decision.Open(decisionWorkspace)
		d, err := store.Create(args[0], decision.NumberingMode(decisionMode))
		if err != nil {
			return err
		}
		fmt.Printf("Created decision %d: %s (%s)\n", d.Number, d.Title, d.ID)
		return nil
	},
}

var decisionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List decision records",
	RunE: func(cmd *cobra.Command, args []string) error {
		store := decision.Open(decisionWorkspace)
		entries, err := store.List()
		if err != nil {
			return err
		}
		for _, e := range entries {
			fmt.Printf("%d\t%s\t%s\n", e.Number, e.Status, e.Title)
		}
		return nil
	},
}

var decisionShowCmd = &cobra.Command{
	Use:   "show <number>",
	Short: "Render a decision record as Markdown",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid decision number %q: %w", args[0], err)
		}
		store := decision.Open(decisionWorkspace)
		d, err := store.Get(n)
		if err != nil {
			return err
		}
		_, err = os.Stdout.WriteString(decision.RenderMarkdown(d))
		return err
	},
}

var decisionSupersedeCmd = &cobra.Command{
	Use:   "supersede <number> <by>",
	Short: "Mark a decision as superseded by another",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		number, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid decision number %q: %w", args[0], err)
		}
		by, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid decision number %q: %w", args[1], err)
		}
		store := decision.Open(decisionWorkspace)
		if err := store.Supersede(number, by); err != nil {
			return err
		}
		fmt.Printf("Decision %d superseded by %d\n", number, by)
		return nil
	},
}
