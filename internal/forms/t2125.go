// Package forms assembles filing-ready form packages (T2125, TP-80-V)
// from stored income records, receipts and the mileage log.
package forms

import (
	"github.com/Isaloum/TaxSyncForDrivers-sub001/internal/model"
)

// LineItem is one numbered line on a government form.
type LineItem struct {
	Code   string
	Label  string
	Amount float64
}

// VehicleWorksheet is the T2125 Chart A motor vehicle expense breakdown.
// Shared costs are prorated by the log book's business-use percentage;
// parking is claimed in full.
type VehicleWorksheet struct {
	BusinessKm         float64
	TotalKm            float64
	BusinessUsePercent float64
	Fuel               float64
	Maintenance        float64
	Insurance          float64
	CarWash            float64
	Parking            float64
	SharedSubtotal     float64
	BusinessPortion    float64
	Deductible         float64 // business portion + parking
}

// T2125 is the federal Statement of Business or Professional Activities.
type T2125 struct {
	Year          int
	GrossIncome   float64 // line 8299
	Lines         []LineItem
	Vehicle       VehicleWorksheet
	CCA           float64 // line 9936
	TotalExpenses float64 // line 9368
	NetIncome     float64 // line 9369
}

// ExpenseTotals holds the per-category expense sums feeding a form.
type ExpenseTotals map[string]float64

func (e ExpenseTotals) get(category string) float64 {
	return e[category]
}

// buildVehicleWorksheet prorates shared vehicle costs by the log book.
func buildVehicleWorksheet(expenses ExpenseTotals, mileage model.MileageSummary) VehicleWorksheet {
	ws := VehicleWorksheet{
		BusinessKm:         mileage.BusinessKm,
		TotalKm:            mileage.TotalKm,
		BusinessUsePercent: mileage.BusinessUsePercent,
		Fuel:               expenses.get("fuel"),
		Maintenance:        expenses.get("maintenance"),
		Insurance:          expenses.get("insurance"),
		CarWash:            expenses.get("carwash"),
		Parking:            expenses.get("parking"),
	}

	// Without a log book the vehicle is assumed fully business-used.
	ratio := 1.0
	if ws.TotalKm > 0 {
		ratio = ws.BusinessUsePercent / 100
	} else {
		ws.BusinessUsePercent = 100
	}

	ws.SharedSubtotal = model.Round2(ws.Fuel + ws.Maintenance + ws.Insurance + ws.CarWash)
	ws.BusinessPortion = model.Round2(ws.SharedSubtotal * ratio)
	ws.Deductible = model.Round2(ws.BusinessPortion + ws.Parking)
	return ws
}

// BuildT2125 assembles the federal form from the year's totals. Phone is
// claimed at its deductible (business-use) amount; meals arrive already
// limited to the 50% deductible portion.
func BuildT2125(year int, grossIncome float64, expenses ExpenseTotals, mealsDeductible, phoneDeductible float64, mileage model.MileageSummary, cca float64) T2125 {
	vehicle := buildVehicleWorksheet(expenses, mileage)

	form := T2125{
		Year:        year,
		GrossIncome: model.Round2(grossIncome),
		Vehicle:     vehicle,
		CCA:         model.Round2(cca),
	}

	form.Lines = []LineItem{
		{Code: "8299", Label: "Gross business income", Amount: form.GrossIncome},
		{Code: "8523", Label: "Meals and entertainment (allowable portion)", Amount: model.Round2(mealsDeductible)},
		{Code: "9220", Label: "Utilities (cell phone, business portion)", Amount: model.Round2(phoneDeductible)},
		{Code: "9281", Label: "Motor vehicle expenses (not including CCA)", Amount: vehicle.Deductible},
		{Code: "9936", Label: "Capital cost allowance", Amount: form.CCA},
	}

	form.TotalExpenses = model.Round2(
		model.Round2(mealsDeductible) +
			model.Round2(phoneDeductible) +
			vehicle.Deductible +
			form.CCA)
	form.NetIncome = model.Round2(form.GrossIncome - form.TotalExpenses)

	form.Lines = append(form.Lines,
		LineItem{Code: "9368", Label: "Total expenses", Amount: form.TotalExpenses},
		LineItem{Code: "9369", Label: "Net income (loss) before adjustments", Amount: form.NetIncome},
	)

	return form
}
