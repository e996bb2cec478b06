package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/Isaloum/TaxSyncForDrivers-sub001/internal/cli"
	"github.com/Isaloum/TaxSyncForDrivers-sub001/internal/model"
	"github.com/Isaloum/TaxSyncForDrivers-sub001/internal/tax"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func mileageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mileage",
		Short: "Maintain the vehicle log book",
		Long: `Maintain the kilometre log the CRA expects for motor vehicle claims.
The business-use percentage derived from this log prorates fuel,
maintenance, insurance and CCA on the T2125.`,
	}

	cmd.AddCommand(mileageAddCmd())
	cmd.AddCommand(mileageListCmd())
	cmd.AddCommand(mileageSummaryCmd())

	return cmd
}

func mileageAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a trip",
		Long: `Record one trip in the log book.

Examples:
  taxsync mileage add --km 42.5 --purpose "airport runs"
  taxsync mileage add --km 18 --personal --date 2024-07-01`,
		RunE: runMileageAdd,
	}

	cmd.Flags().Float64("km", 0, "Kilometres driven (required)")
	cmd.Flags().String("date", "", "Trip date (YYYY-MM-DD, default today)")
	cmd.Flags().String("purpose", "", "Trip purpose")
	cmd.Flags().Bool("personal", false, "Record as a personal trip")
	_ = cmd.MarkFlagRequired("km")

	return cmd
}

func runMileageAdd(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	km, _ := cmd.Flags().GetFloat64("km")
	dateStr, _ := cmd.Flags().GetString("date")
	purpose, _ := cmd.Flags().GetString("purpose")
	personal, _ := cmd.Flags().GetBool("personal")

	date, err := parseTripDate(dateStr)
	if err != nil {
		return err
	}

	entry := &model.MileageEntry{
		ID:         uuid.New().String(),
		Date:       date,
		Kilometres: km,
		IsBusiness: !personal,
		Purpose:    purpose,
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

	if err := store.SaveMileageEntry(ctx, entry); err != nil {
		return fmt.Errorf("failed to save trip: %w", err)
	}

	kind := "business"
	if personal {
		kind = "personal"
	}
	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Logged %.1f km %s trip on %s", km, kind, date.Format("2006-01-02"))))

	return nil
}

func mileageListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List logged trips",
		RunE:  runMileageList,
	}

	cmd.Flags().IntP("year", "y", 0, "Filing year (default: configured profile year)")

	return cmd
}

func runMileageList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	flagYear, _ := cmd.Flags().GetInt("year")
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

	entries, err := store.ListMileageEntries(ctx, year)
	if err != nil {
		return fmt.Errorf("failed to list trips: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, cli.FormatTitle(fmt.Sprintf("Log Book %d", year)))
	if len(entries) == 0 {
		fmt.Fprintln(out, cli.FormatInfo("No trips logged. Add one with 'taxsync mileage add --km ...'"))
		return nil
	}

	for _, entry := range entries {
		kind := "business"
		if !entry.IsBusiness {
			kind = "personal"
		}
		fmt.Fprintf(out, "  %s  %8.1f km  %-9s %s\n",
			entry.Date.Format("2006-01-02"), entry.Kilometres, kind, entry.Purpose)
	}

	return nil
}

func mileageSummaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Summarize the year's log book",
		Long: `Summarize the log book for a filing year: business vs personal
kilometres, the derived business-use percentage, and the CRA
reasonable-allowance value of the business driving.`,
		RunE: runMileageSummary,
	}

	cmd.Flags().IntP("year", "y", 0, "Filing year (default: configured profile year)")

	return cmd
}

func runMileageSummary(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	flagYear, _ := cmd.Flags().GetInt("year")
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

	entries, err := store.ListMileageEntries(ctx, year)
	if err != nil {
		return fmt.Errorf("failed to list trips: %w", err)
	}

	summary := tax.SummarizeMileage(entries)
	allowance := tax.MileageAllowance(summary.BusinessKm)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, cli.FormatTitle(fmt.Sprintf("Mileage Summary %d", year)))
	fmt.Fprintf(out, "  Business km       %10.1f\n", summary.BusinessKm)
	fmt.Fprintf(out, "  Personal km       %10.1f\n", summary.PersonalKm)
	fmt.Fprintf(out, "  Total km          %10.1f\n", summary.TotalKm)
	fmt.Fprintf(out, "  Business use      %9.1f%%\n", summary.BusinessUsePercent)
	fmt.Fprintf(out, "  CRA allowance     %10.2f\n", allowance)

	if summary.TotalKm == 0 {
		fmt.Fprintln(out, cli.FormatWarning("Empty log book: vehicle expenses will be claimed at 100% business use."))
	}

	return nil
}

func parseTripDate(dateStr string) (time.Time, error) {
	if dateStr == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", dateStr, err)
	}
	return date, nil
}
