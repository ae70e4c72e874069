package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/marmotdata/schemakit/internal/governance/knowledge"
	"github.com/marmotdata/schemakit/internal/model"
)

var (
	knowledgeWorkspace string
	knowledgeMode      string
	knowledgeType      string
)

func init() {
	knowledgeCmd.PersistentFlags().StringVar(&knowledgeWorkspace, "workspace", ".", "workspace directory")
	knowledgeCmd.AddCommand(knowledgeCreateCmd, knowledgeListCmd, knowledgeShowCmd, knowledgeRelateCmd)
	knowledgeCreateCmd.Flags().StringVar(&knowledgeMode, "mode", "sequential", "numbering mode for a new index: sequential or timestamp")
	knowledgeCreateCmd.Flags().StringVar(&knowledgeType, "type", string(model.KBGuide), "article type: guide, standard, reference, glossary, how-to, troubleshooting, policy, template, concept, runbook")
	rootCmd.AddCommand(knowledgeCmd)
}

var knowledgeCmd = &cobra.Command{
	Use:   "knowledge",
	Short: "Manage knowledge-base articles",
}

var knowledgeCreateCmd = &cobra.Command{
	Use:   "create <title>",
	Short: "Create a new knowledge-base article",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := knowledge.Open(knowledgeWorkspace)
		a, err := store.Create(args[0], model.KnowledgeType(knowledgeType), knowledge.NumberingMode(knowledgeMode))
		if err != nil {
			return err
		}
		fmt.Printf("Created knowledge article %d: %s (%s)\n", a.Number, a.Title, a.ID)
		return nil
	},
}

var knowledgeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List knowledge-base articles",
	RunE: func(cmd *cobra.Command, args []string) error {
		store := knowledge.Open(knowledgeWorkspace)
		entries, err := store.List()
		if err != nil {
			return err
		}
		for _, e := range entries {
			fmt.Printf("%d\t%s\t%s\t%s\n", e.Number, e.Type, e.Status, e.Title)
		}
		return nil
	},
}

var knowledgeShowCmd = &cobra.Command{
	Use:   "show <number>",
	Short: "Render a knowledge-base article as Markdown",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid article number %q: %w", args[0], err)
		}
		store := knowledge.Open(knowledgeWorkspace)
		a, err := store.Get(n)
		if err != nil {
			return err
		}
		_, err = os.Stdout.WriteString(knowledge.RenderMarkdown(a))
		return err
	},
}

var knowledgeRelateCmd = &cobra.Command{
	Use:   "relate <number> <other>",
	Short: "Record a bidirectional relation between two articles",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		number, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid article number %q: %w", args[0], err)
		}
		other, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid article number %q: %w", args[1], err)
		}
		store := knowledge.Open(knowledgeWorkspace)
		if err := store.Relate(number, other); err != nil {
			return err
		}
		fmt.Printf("Related articles %d and %d\n", number, other)
		return nil
	},
}
