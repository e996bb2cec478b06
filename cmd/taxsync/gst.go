package main

import (
	"fmt"
	"log/slog"

	"github.com/Isaloum/TaxSyncForDrivers-sub001/internal/cli"
	"github.com/Isaloum/TaxSyncForDrivers-sub001/internal/config"
	"github.com/Isaloum/TaxSyncForDrivers-sub001/internal/forms"
	"github.com/Isaloum/TaxSyncForDrivers-sub001/internal/model"
	"github.com/Isaloum/TaxSyncForDrivers-sub001/internal/tax"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func gstCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gst",
		Short: "GST/QST position for the filing year",
	}

	cmd.AddCommand(gstSummaryCmd())
	cmd.AddCommand(gstHistoryCmd())

	return cmd
}

func gstHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded remittance positions",
		RunE:  runGSTHistory,
	}

	cmd.Flags().IntP("year", "y", 0, "Filing year (0 = all years)")

	return cmd
}

func runGSTHistory(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	year, _ := cmd.Flags().GetInt("year")

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			slog.Warn("Failed to close storage", "error", closeErr)
		}
	}()

	snapshots, err := store.ListGSTSnapshots(ctx, year)
	if err != nil {
		return fmt.Errorf("failed to load remittance history: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, cli.FormatTitle("Remittance History"))
	if len(snapshots) == 0 {
		fmt.Fprintln(out, cli.FormatInfo("No recorded positions. Run 'taxsync gst summary --save'."))
		return nil
	}

	for _, snapshot := range snapshots {
		method := "regular"
		if snapshot.QuickMethod {
			method = "quick"
		}
		fmt.Fprintf(out, "  %s  %d  sales %10.2f  net owing %10.2f  (%s)\n",
			snapshot.CreatedAt.Format("2006-01-02"), snapshot.Year, snapshot.Sales, snapshot.NetOwing, method)
	}

	return nil
}

func gstSummaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show collected tax, input tax credits and net owing",
		Long: `Compute the year's GST/QST remittance position from stored business
income and the sales tax recorded on expense receipts. Rideshare
drivers must be registered from the first dollar of fares.`,
		RunE: runGSTSummary,
	}

	cmd.Flags().IntP("year", "y", 0, "Filing year (default: configured profile year)")
	cmd.Flags().Bool("save", false, "Record this position in the remittance history")

	return cmd
}

func runGSTSummary(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	profile, err := config.LoadProfile()
	if err != nil {
		return err
	}
	if flagYear, _ := cmd.Flags().GetInt("year"); flagYear != 0 {
		profile.Year = flagYear
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

	pkg, err := forms.Assemble(ctx, store, *profile)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, cli.FormatTitle(fmt.Sprintf("GST/QST Summary %d", profile.Year)))

	if pkg.GST == nil {
		fmt.Fprintln(out, cli.FormatInfo("Profile is not GST/QST registered; nothing to remit."))
		if tax.MustRegister(pkg.T2125.GrossIncome) {
			fmt.Fprintln(out, cli.FormatWarning(fmt.Sprintf(
				"Business income of %.2f exceeds the %.0f small-supplier threshold: registration is mandatory.",
				pkg.T2125.GrossIncome, tax.SmallSupplierThreshold)))
		} else if pkg.T2125.GrossIncome > 0 {
			fmt.Fprintln(out, cli.FormatWarning("Rideshare fares require GST/QST registration regardless of revenue."))
		}
		return nil
	}

	summary := pkg.GST
	method := "regular"
	if summary.QuickMethod {
		method = "quick"
	}

	fmt.Fprintf(out, "  Method            %10s\n", method)
	fmt.Fprintf(out, "  Sales             %10.2f\n", summary.Sales)
	fmt.Fprintf(out, "  GST collected     %10.2f\n", summary.GSTCollected)
	fmt.Fprintf(out, "  QST collected     %10.2f\n", summary.QSTCollected)
	fmt.Fprintf(out, "  GST paid (ITC)    %10.2f\n", summary.GSTPaid)
	fmt.Fprintf(out, "  QST paid (ITR)    %10.2f\n", summary.QSTPaid)
	fmt.Fprintf(out, "  Net GST           %10.2f\n", summary.NetGST)
	fmt.Fprintf(out, "  Net QST           %10.2f\n", summary.NetQST)

	if summary.NetOwing >= 0 {
		fmt.Fprintln(out, cli.FormatWarning(fmt.Sprintf("Net owing: %.2f", summary.NetOwing)))
	} else {
		fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Net refund: %.2f", -summary.NetOwing)))
	}

	if save, _ := cmd.Flags().GetBool("save"); save {
		snapshot := &model.GSTSnapshot{
			ID:           uuid.New().String(),
			Year:         profile.Year,
			Sales:        summary.Sales,
			GSTCollected: summary.GSTCollected,
			QSTCollected: summary.QSTCollected,
			GSTPaid:      summary.GSTPaid,
			QSTPaid:      summary.QSTPaid,
			NetOwing:     summary.NetOwing,
			QuickMethod:  summary.QuickMethod,
		}
		if err := store.SaveGSTSnapshot(ctx, snapshot); err != nil {
			return fmt.Errorf("failed to record remittance position: %w", err)
		}
		fmt.Fprintln(out, cli.FormatSuccess("Position recorded in the remittance history."))
	}

	return nil
}
