package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/Isaloum/TaxSyncForDrivers-sub001/internal/cli"
	"github.com/Isaloum/TaxSyncForDrivers-sub001/internal/config"
	"github.com/Isaloum/TaxSyncForDrivers-sub001/internal/forms"
	"github.com/Isaloum/TaxSyncForDrivers-sub001/internal/model"
	"github.com/Isaloum/TaxSyncForDrivers-sub001/internal/tax"
	"github.com/spf13/cobra"
)

func calcCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Estimate the year's income tax",
		Long: `Estimate federal and provincial income tax for the profile's year.
Without --income the taxable amount comes from stored documents,
receipts and the mileage log, exactly as the forms would report it.

Examples:
  # Estimate from stored data
  taxsync calc

  # What-if on a taxable income figure
  taxsync calc --income 65000 --province ON`,
		RunE: runCalc,
	}

	cmd.Flags().Float64("income", 0, "Taxable income override (skips the database)")
	cmd.Flags().String("province", "", "Province override (QC, ON, AB)")
	cmd.Flags().IntP("year", "y", 0, "Filing year (default: configured profile year)")

	return cmd
}

func runCalc(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	income, _ := cmd.Flags().GetFloat64("income")
	provinceFlag, _ := cmd.Flags().GetString("province")
	flagYear, _ := cmd.Flags().GetInt("year")

	profile, err := config.LoadProfile()
	if err != nil {
		return err
	}
	if provinceFlag != "" {
		profile.Province = model.Province(provinceFlag)
	}
	if flagYear != 0 {
		profile.Year = flagYear
	}

	out := cmd.OutOrStdout()

	if income > 0 {
		printEstimate(out, profile.Province, income, tax.CalculateEstimate(profile.Province, income))
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

	pkg, err := forms.Assemble(ctx, store, *profile)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, cli.FormatInfo(fmt.Sprintf("Net self-employment income: %.2f", pkg.T2125.NetIncome)))
	printEstimate(out, profile.Province, taxableIncome(pkg), pkg.Estimate)

	return nil
}

// taxableIncome recovers the total taxable amount the assembler fed the
// estimate: net business income plus non-business income buckets.
func taxableIncome(pkg *forms.FilingPackage) float64 {
	taxable := pkg.T2125.NetIncome
	for category, amount := range pkg.IncomeByCategory {
		switch category {
		case "rideshare", "taxi", "self-employment":
			// already in net income
		default:
			taxable += amount
		}
	}
	return model.Round2(taxable)
}

func printEstimate(out io.Writer, province model.Province, taxable float64, estimate tax.Estimate) {
	fmt.Fprintln(out, cli.FormatTitle(fmt.Sprintf("Tax Estimate (%s)", province)))
	fmt.Fprintf(out, "  Taxable income       %12.2f\n", taxable)
	fmt.Fprintf(out, "  Federal gross tax    %12.2f\n", estimate.Federal.GrossTax)
	fmt.Fprintf(out, "  Federal net tax      %12.2f\n", estimate.Federal.NetTax)
	if province == model.ProvinceQC {
		fmt.Fprintf(out, "  Quebec abatement     %12.2f\n", estimate.Federal.QuebecAbatement)
	}
	fmt.Fprintf(out, "  Provincial net tax   %12.2f\n", estimate.Provincial.NetTax)
	fmt.Fprintf(out, "  Total                %12.2f\n", estimate.Total)
}
