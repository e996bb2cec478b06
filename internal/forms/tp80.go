package forms

import (
	"github.com/Isaloum/TaxSyncForDrivers-sub001/internal/model"
)

// TP80 is the Revenu Québec mirror of the T2125 (TP-80-V, Business or
// Professional Income and Expenses). Amounts match the federal form; only
// the line numbering differs.
type TP80 struct {
	Year          int
	GrossIncome   float64
	Lines         []LineItem
	Vehicle       VehicleWorksheet
	CCA           float64
	TotalExpenses float64
	NetIncome     float64
}

// BuildTP80 derives the Quebec form from an assembled T2125.
func BuildTP80(t2125 T2125) TP80 {
	form := TP80{
		Year:          t2125.Year,
		GrossIncome:   t2125.GrossIncome,
		Vehicle:       t2125.Vehicle,
		CCA:           t2125.CCA,
		TotalExpenses: t2125.TotalExpenses,
		NetIncome:     t2125.NetIncome,
	}

	form.Lines = []LineItem{
		{Code: "12", Label: "Gross income", Amount: form.GrossIncome},
		{Code: "132", Label: "Meals and entertainment (allowable portion)", Amount: lineAmount(t2125, "8523")},
		{Code: "168", Label: "Telecommunications (business portion)", Amount: lineAmount(t2125, "9220")},
		{Code: "164", Label: "Motor vehicle expenses", Amount: form.Vehicle.Deductible},
		{Code: "240", Label: "Capital cost allowance", Amount: form.CCA},
		{Code: "250", Label: "Total expenses", Amount: form.TotalExpenses},
		{Code: "34", Label: "Net income (loss)", Amount: form.NetIncome},
	}

	return form
}

func lineAmount(form T2125, code string) float64 {
	for _, line := range form.Lines {
		if line.Code == code {
			return line.Amount
		}
	}
	return model.Round2(0)
}
