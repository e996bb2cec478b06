package main

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/Isaloum/TaxSyncForDrivers-sub001/internal/cli"
	"github.com/spf13/cobra"
)

func receiptsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "receipts",
		Short: "Inspect retained expense receipts",
		Long: `Inspect the receipts retained for CRA and Revenu Québec record-keeping.
Receipts are created automatically when 'taxsync classify --save'
recognizes an expense document.`,
	}

	cmd.AddCommand(receiptsListCmd())

	return cmd
}

func receiptsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List receipts for a filing year",
		RunE:  runReceiptsList,
	}

	cmd.Flags().IntP("year", "y", 0, "Filing year (default: configured profile year)")
	cmd.Flags().Bool("totals", false, "Show per-category totals and sales tax paid")

	return cmd
}

func runReceiptsList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	flagYear, _ := cmd.Flags().GetInt("year")
	showTotals, _ := cmd.Flags().GetBool("totals")

	year, err := filingYear(flagYear)
	if err != nil {
		return err
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

	receipts, err := store.ListReceipts(ctx, year)
	if err != nil {
		return fmt.Errorf("failed to list receipts: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, cli.FormatTitle(fmt.Sprintf("Receipts %d", year)))
	if len(receipts) == 0 {
		fmt.Fprintln(out, cli.FormatInfo("No receipts on file. Classify expense documents with --save to retain them."))
		return nil
	}

	for _, receipt := range receipts {
		fmt.Fprintf(out, "  %s  %-28s %-12s %9.2f  (GST %.2f / QST %.2f)\n",
			receipt.Date.Format("2006-01-02"), receipt.Vendor, receipt.Category,
			receipt.Amount, receipt.GST, receipt.QST)
	}

	if !showTotals {
		return nil
	}

	totals, err := store.GetCategoryTotals(ctx, year)
	if err != nil {
		return fmt.Errorf("failed to total receipts: %w", err)
	}
	gstPaid, qstPaid, err := store.GetTaxPaidTotals(ctx, year)
	if err != nil {
		return fmt.Errorf("failed to total sales tax paid: %w", err)
	}

	categories := make([]string, 0, len(totals))
	for category := range totals {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	fmt.Fprintln(out, cli.FormatTitle("Totals"))
	for _, category := range categories {
		fmt.Fprintf(out, "  %-14s %10.2f\n", category, totals[category])
	}
	fmt.Fprintf(out, "  %-14s %10.2f\n", "GST paid", gstPaid)
	fmt.Fprintf(out, "  %-14s %10.2f\n", "QST paid", qstPaid)

	return nil
}
