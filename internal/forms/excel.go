package forms

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"
)

// ExportXLSX renders the filing package as an XLSX workbook: a summary
// tab, one tab per form and an expense breakdown tab.
func ExportXLSX(pkg *FilingPackage) ([]byte, error) {
	if pkg == nil {
		return nil, fmt.Errorf("filing package cannot be nil")
	}

	f := excelize.NewFile()

	if err := writeSummarySheet(f, pkg); err != nil {
		return nil, err
	}
	if err := writeFormSheet(f, "T2125", formRows(pkg.T2125.Lines)); err != nil {
		return nil, err
	}
	if pkg.TP80 != nil {
		if err := writeFormSheet(f, "TP-80-V", formRows(pkg.TP80.Lines)); err != nil {
			return nil, err
		}
	}
	if err := writeExpenseSheet(f, pkg); err != nil {
		return nil, err
	}

	// The default sheet excelize creates is replaced by Summary.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("xlsx cleanup: %w", err)
	}
	if index, err := f.GetSheetIndex("Summary"); err == nil {
		f.SetActiveSheet(index)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}

type sheetRow struct {
	label string
	value any
}

func formRows(lines []LineItem) []sheetRow {
	rows := make([]sheetRow, 0, len(lines))
	for _, line := range lines {
		rows = append(rows, sheetRow{
			label: fmt.Sprintf("%s %s", line.Code, line.Label),
			value: line.Amount,
		})
	}
	return rows
}

func writeSummarySheet(f *excelize.File, pkg *FilingPackage) error {
	rows := []sheetRow{
		{label: "Filing year", value: pkg.Profile.Year},
		{label: "Province", value: string(pkg.Profile.Province)},
		{label: "Gross business income", value: pkg.T2125.GrossIncome},
		{label: "Total expenses", value: pkg.T2125.TotalExpenses},
		{label: "Net business income", value: pkg.T2125.NetIncome},
		{label: "Business km", value: pkg.Mileage.BusinessKm},
		{label: "Business use %", value: pkg.Mileage.BusinessUsePercent},
		{label: "Mileage allowance", value: pkg.MileageAllowance},
		{label: "Federal tax estimate", value: pkg.Estimate.Federal.NetTax},
		{label: "Provincial tax estimate", value: pkg.Estimate.Provincial.NetTax},
		{label: "Total tax estimate", value: pkg.Estimate.Total},
	}
	if pkg.CCA != nil {
		rows = append(rows, sheetRow{label: "CCA deduction", value: pkg.CCA.DeductibleClaim})
	}
	if pkg.GST != nil {
		rows = append(rows,
			sheetRow{label: "Net GST", value: pkg.GST.NetGST},
			sheetRow{label: "Net QST", value: pkg.GST.NetQST},
			sheetRow{label: "Sales tax owing", value: pkg.GST.NetOwing},
		)
	}
	return writeFormSheet(f, "Summary", rows)
}

func writeExpenseSheet(f *excelize.File, pkg *FilingPackage) error {
	categories := make([]string, 0, len(pkg.ExpenseTotals))
	for category := range pkg.ExpenseTotals {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	rows := make([]sheetRow, 0, len(categories))
	for _, category := range categories {
		rows = append(rows, sheetRow{label: category, value: pkg.ExpenseTotals[category]})
	}
	return writeFormSheet(f, "Expenses", rows)
}

func writeFormSheet(f *excelize.File, sheet string, rows []sheetRow) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("xlsx sheet %s: %w", sheet, err)
	}

	for i, row := range rows {
		labelCell, _ := excelize.CoordinatesToCellName(1, i+1)
		valueCell, _ := excelize.CoordinatesToCellName(2, i+1)
		if err := f.SetCellValue(sheet, labelCell, row.label); err != nil {
			return fmt.Errorf("xlsx cell %s: %w", labelCell, err)
		}
		if err := f.SetCellValue(sheet, valueCell, row.value); err != nil {
			return fmt.Errorf("xlsx cell %s: %w", valueCell, err)
		}
	}

	_ = f.SetColWidth(sheet, "A", "A", 46)
	_ = f.SetColWidth(sheet, "B", "B", 16)
	return nil
}
