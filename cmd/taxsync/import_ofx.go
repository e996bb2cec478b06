package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Isaloum/TaxSyncForDrivers-sub001/internal/cli"
	"github.com/Isaloum/TaxSyncForDrivers-sub001/internal/common"
	"github.com/Isaloum/TaxSyncForDrivers-sub001/internal/model"
	"github.com/Isaloum/TaxSyncForDrivers-sub001/internal/ofx"
	"github.com/spf13/cobra"
)

func importOFXCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import-ofx [files...]",
		Short: "Import expenses from OFX/QFX bank statements",
		Long: `Import debit transactions from OFX or QFX files exported from your bank
or credit card. Deposits are skipped; debits are categorized by merchant
and deduplicated, so re-importing overlapping statements is safe.

Examples:
  # Import a single statement
  taxsync import-ofx ~/Downloads/desjardins_jan_2024.ofx

  # Import a whole folder of statements
  taxsync import-ofx ~/Downloads/statements/*.qfx`,
		Args: cobra.MinimumNArgs(1),
		RunE: runImportOFX,
	}

	cmd.Flags().BoolP("dry-run", "d", false, "Preview import without saving")
	cmd.Flags().BoolP("verbose", "v", false, "Show each imported transaction")

	return cmd
}

func runImportOFX(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	verbose, _ := cmd.Flags().GetBool("verbose")

	// Expand globs and collect all files
	var allFiles []string
	for _, pattern := range args {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			if _, statErr := os.Stat(pattern); statErr == nil {
				allFiles = append(allFiles, pattern)
			} else {
				slog.Warn("No files found matching pattern", "pattern", pattern)
			}
		} else {
			allFiles = append(allFiles, matches...)
		}
	}

	if len(allFiles) == 0 {
		return fmt.Errorf("no files found to import")
	}

	slog.Info("Importing OFX files", "file_count", len(allFiles), "dry_run", dryRun)

	parser := ofx.NewParser()

	var allExpenses []model.Expense
	seen := make(map[string]bool)

	for _, filePath := range allFiles {
		f, err := os.Open(filePath) // #nosec G304 -- user-supplied statement path
		if err != nil {
			slog.Error("Failed to open file", "file", filePath, "error", err)
			continue
		}

		expenses, err := parser.ParseFile(ctx, f)
		if closeErr := f.Close(); closeErr != nil {
			slog.Warn("Failed to close file", "file", filePath, "error", closeErr)
		}
		if err != nil {
			slog.Error("Failed to parse OFX file", "file", filePath, "error", err)
			continue
		}

		added := 0
		for _, expense := range expenses {
			if seen[expense.Hash] {
				continue
			}
			seen[expense.Hash] = true
			allExpenses = append(allExpenses, expense)
			added++

			if verbose {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s  %-30s %10.2f  %s\n",
					expense.Date.Format("2006-01-02"), expense.MerchantName, expense.Amount, expense.Category)
			}
		}

		common.LogInfo("Parsed statement", common.Fields{"file": filepath.Base(filePath), "expenses": added})
	}

	if len(allExpenses) == 0 {
		return fmt.Errorf("no debit transactions found")
	}

	out := cmd.OutOrStdout()

	if dryRun {
		fmt.Fprintln(out, cli.FormatInfo(fmt.Sprintf("Dry run: %d expenses would be imported", len(allExpenses))))
		return nil
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			slog.Warn("Failed to close storage", "error", closeErr)
		}
	}()

	inserted, err := store.SaveExpenses(ctx, allExpenses)
	if err != nil {
		return fmt.Errorf("failed to save expenses: %w", err)
	}

	duplicates := len(allExpenses) - inserted
	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("%d expenses imported", inserted)))
	if duplicates > 0 {
		fmt.Fprintln(out, cli.FormatInfo(fmt.Sprintf("%d duplicates skipped (already imported)", duplicates)))
	}

	return nil
}
