package forms

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
)

// ExportCSV writes the filing package as CSV: section, line code, label,
// amount. The flat layout keeps the file importable into any spreadsheet.
func ExportCSV(w io.Writer, pkg *FilingPackage) error {
	if pkg == nil {
		return fmt.Errorf("filing package cannot be nil")
	}

	cw := csv.NewWriter(w)
	write := func(section, code, label string, amount float64) error {
		return cw.Write([]string{section, code, label, strconv.FormatFloat(amount, 'f', 2, 64)})
	}

	if err := cw.Write([]string{"section", "code", "label", "amount"}); err != nil {
		return fmt.Errorf("csv write: %w", err)
	}

	for _, line := range pkg.T2125.Lines {
		if err := write("T2125", line.Code, line.Label, line.Amount); err != nil {
			return fmt.Errorf("csv write: %w", err)
		}
	}
	if pkg.TP80 != nil {
		for _, line := range pkg.TP80.Lines {
			if err := write("TP-80-V", line.Code, line.Label, line.Amount); err != nil {
				return fmt.Errorf("csv write: %w", err)
			}
		}
	}

	categories := make([]string, 0, len(pkg.ExpenseTotals))
	for category := range pkg.ExpenseTotals {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	for _, category := range categories {
		if err := write("expenses", "", category, pkg.ExpenseTotals[category]); err != nil {
			return fmt.Errorf("csv write: %w", err)
		}
	}

	if err := write("mileage", "", "business km", pkg.Mileage.BusinessKm); err != nil {
		return fmt.Errorf("csv write: %w", err)
	}
	if err := write("mileage", "", "allowance", pkg.MileageAllowance); err != nil {
		return fmt.Errorf("csv write: %w", err)
	}

	if pkg.GST != nil {
		if err := write("gst-qst", "", "net owing", pkg.GST.NetOwing); err != nil {
			return fmt.Errorf("csv write: %w", err)
		}
	}

	if err := write("estimate", "", "federal tax", pkg.Estimate.Federal.NetTax); err != nil {
		return fmt.Errorf("csv write: %w", err)
	}
	if err := write("estimate", "", "provincial tax", pkg.Estimate.Provincial.NetTax); err != nil {
		return fmt.Errorf("csv write: %w", err)
	}
	if err := write("estimate", "", "total tax", pkg.Estimate.Total); err != nil {
		return fmt.Errorf("csv write: %w", err)
	}

	cw.Flush()
	return cw.Error()
}
