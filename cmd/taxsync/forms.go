package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/Isaloum/TaxSyncForDrivers-sub001/internal/cli"
	"github.com/Isaloum/TaxSyncForDrivers-sub001/internal/config"
	"github.com/Isaloum/TaxSyncForDrivers-sub001/internal/forms"
	"github.com/Isaloum/TaxSyncForDrivers-sub001/internal/sheets"
	"github.com/spf13/cobra"
)

func formsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "forms",
		Short: "Assemble and export the filing package",
		Long: `Assemble the filing package (T2125, TP-80-V for Quebec residents,
GST/QST, CCA, mileage) from stored data, and export it for your
accountant.`,
	}

	cmd.AddCommand(formsBuildCmd())
	cmd.AddCommand(formsExportCmd())

	return cmd
}

func formsBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Assemble the package and print the form lines",
		RunE:  runFormsBuild,
	}

	cmd.Flags().IntP("year", "y", 0, "Filing year (default: configured profile year)")

	return cmd
}

func runFormsBuild(cmd *cobra.Command, _ []string) error {
	flagYear, _ := cmd.Flags().GetInt("year")

	pkg, cleanup, err := assemblePackage(cmd, flagYear)
	if err != nil {
		return err
	}
	defer cleanup()

	out := cmd.OutOrStdout()

	fmt.Fprintln(out, cli.FormatTitle(fmt.Sprintf("T2125 — %d", pkg.T2125.Year)))
	printFormLines(out, pkg.T2125.Lines)

	if pkg.TP80 != nil {
		fmt.Fprintln(out, cli.FormatTitle(fmt.Sprintf("TP-80-V — %d", pkg.TP80.Year)))
		printFormLines(out, pkg.TP80.Lines)
	}

	vehicle := pkg.T2125.Vehicle
	fmt.Fprintln(out, cli.FormatTitle("Motor Vehicle (Chart A)"))
	fmt.Fprintf(out, "  Business use        %9.1f%% (%.0f of %.0f km)\n",
		vehicle.BusinessUsePercent, vehicle.BusinessKm, vehicle.TotalKm)
	fmt.Fprintf(out, "  Shared costs        %10.2f\n", vehicle.SharedSubtotal)
	fmt.Fprintf(out, "  Business portion    %10.2f\n", vehicle.BusinessPortion)
	fmt.Fprintf(out, "  Parking (full)      %10.2f\n", vehicle.Parking)
	fmt.Fprintf(out, "  Deductible          %10.2f\n", vehicle.Deductible)

	if pkg.CCA != nil {
		fmt.Fprintln(out, cli.FormatTitle("Capital Cost Allowance"))
		fmt.Fprintf(out, "  Class %-4s claim    %10.2f (closing UCC %.2f)\n",
			pkg.CCA.Class.Code, pkg.CCA.DeductibleClaim, pkg.CCA.ClosingUCC)
	}

	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Net income (line 9369): %.2f", pkg.T2125.NetIncome)))
	fmt.Fprintln(out, cli.FormatInfo(fmt.Sprintf("Estimated tax: %.2f", pkg.Estimate.Total)))

	return nil
}

func formsExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the package as CSV, XLSX, or to Google Sheets",
		Long: `Export the assembled filing package.

Examples:
  taxsync forms export --format csv --output t2125_2024.csv
  taxsync forms export --format xlsx --output package_2024.xlsx
  taxsync forms export --format sheets`,
		RunE: runFormsExport,
	}

	cmd.Flags().IntP("year", "y", 0, "Filing year (default: configured profile year)")
	cmd.Flags().StringP("format", "f", "csv", "Export format: csv, xlsx, or sheets")
	cmd.Flags().StringP("output", "o", "", "Output file (default stdout for csv, required for xlsx)")

	return cmd
}

func runFormsExport(cmd *cobra.Command, _ []string) error {
	flagYear, _ := cmd.Flags().GetInt("year")
	format, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")

	pkg, cleanup, err := assemblePackage(cmd, flagYear)
	if err != nil {
		return err
	}
	defer cleanup()

	switch format {
	case "csv":
		return exportCSV(cmd, pkg, output)
	case "xlsx":
		return exportXLSX(cmd, pkg, output)
	case "sheets":
		return exportSheets(cmd, pkg)
	default:
		return fmt.Errorf("unknown format %q (expected csv, xlsx, or sheets)", format)
	}
}

// assemblePackage loads the profile, opens storage, and assembles the
// filing package. The returned cleanup closes storage.
func assemblePackage(cmd *cobra.Command, flagYear int) (*forms.FilingPackage, func(), error) {
	ctx := cmd.Context()

	profile, err := config.LoadProfile()
	if err != nil {
		return nil, nil, err
	}
	if flagYear != 0 {
		profile.Year = flagYear
	}

	store, err := initStorage(ctx)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if closeErr := store.Close(); closeErr != nil {
			slog.Warn("Failed to close storage", "error", closeErr)
		}
	}

	pkg, err := forms.Assemble(ctx, store, *profile)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	return pkg, cleanup, nil
}

func exportCSV(cmd *cobra.Command, pkg *forms.FilingPackage, output string) error {
	var w io.Writer = cmd.OutOrStdout()
	if output != "" {
		f, err := os.Create(output) // #nosec G304 -- user-supplied output path
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() {
			if closeErr := f.Close(); closeErr != nil {
				slog.Warn("Failed to close output file", "error", closeErr)
			}
		}()
		w = f
	}

	if err := forms.ExportCSV(w, pkg); err != nil {
		return err
	}
	if output != "" {
		fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Wrote %s", output)))
	}
	return nil
}

func exportXLSX(cmd *cobra.Command, pkg *forms.FilingPackage, output string) error {
	if output == "" {
		output = fmt.Sprintf("taxsync_%d.xlsx", pkg.T2125.Year)
	}

	data, err := forms.ExportXLSX(pkg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(output, data, 0o600); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Wrote %s", output)))
	return nil
}

func exportSheets(cmd *cobra.Command, pkg *forms.FilingPackage) error {
	ctx := cmd.Context()

	sheetsConfig, err := config.LoadSheetsConfig()
	if err != nil {
		return fmt.Errorf("google sheets not configured: %w", err)
	}

	writer, err := sheets.NewWriter(ctx, *sheetsConfig, slog.Default())
	if err != nil {
		return err
	}

	if err := writer.Write(ctx, pkg); err != nil {
		return fmt.Errorf("failed to write to Google Sheets: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Filing package exported to Google Sheets"))
	return nil
}

func printFormLines(out io.Writer, lines []forms.LineItem) {
	for _, line := range lines {
		fmt.Fprintf(out, "  %-5s %-44s %12.2f\n", line.Code, line.Label, line.Amount)
	}
}
