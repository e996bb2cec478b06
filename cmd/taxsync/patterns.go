package main

import (
	"fmt"

	"github.com/Isaloum/TaxSyncForDrivers-sub001/internal/cli"
	"github.com/Isaloum/TaxSyncForDrivers-sub001/internal/config"
	"github.com/Isaloum/TaxSyncForDrivers-sub001/internal/document"
	"github.com/spf13/cobra"
)

func patternsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patterns",
		Short: "Inspect and validate classification patterns",
	}

	cmd.AddCommand(patternsListCmd())
	cmd.AddCommand(patternsValidateCmd())

	return cmd
}

func patternsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered document types",
		RunE:  runPatternsList,
	}

	cmd.Flags().StringP("patterns", "p", "", "JSON pattern file extending the built-in registry")

	return cmd
}

func runPatternsList(cmd *cobra.Command, _ []string) error {
	patternsPath, _ := cmd.Flags().GetString("patterns")

	engine, err := initEngine(patternsPath)
	if err != nil {
		return err
	}

	registry := engine.Registry()
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, cli.FormatTitle("Document Types"))
	for _, docType := range registry.Types() {
		fmt.Fprintf(out, "  %-22s %d fields\n", docType, registry.FieldCount(docType))
	}

	return nil
}

func patternsValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Validate a custom pattern file",
		Long: `Validate a JSON pattern file against the schema and compile every
regular expression in it. A file that validates here will load with
'taxsync classify --patterns'.`,
		Args: cobra.ExactArgs(1),
		RunE: runPatternsValidate,
	}
}

func runPatternsValidate(cmd *cobra.Command, args []string) error {
	path := config.ExpandPath(args[0])

	patterns, err := document.LoadPatternsFile(path)
	if err != nil {
		return fmt.Errorf("pattern file is invalid: %w", err)
	}

	// Compile the merged table exactly as classify would load it.
	if _, err := document.NewRegistry(mergePatterns(document.DefaultPatterns(), patterns)); err != nil {
		return fmt.Errorf("pattern file does not compile: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("%s is valid (%d document types)", args[0], len(patterns))))
	for _, pattern := range patterns {
		fmt.Fprintf(out, "  %-22s %d keywords, %d fields\n", pattern.Type, len(pattern.Keywords), len(pattern.Fields))
	}

	return nil
}
