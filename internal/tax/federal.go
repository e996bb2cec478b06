package tax

import (
	"math"

	"github.com/Isaloum/TaxSyncForDrivers-sub001/internal/model"
)

// 2024 federal schedule and basic personal amount.
var federalSchedule = Schedule{
	{UpTo: 55867, Rate: 0.15},
	{UpTo: 111733, Rate: 0.205},
	{UpTo: 173205, Rate: 0.26},
	{UpTo: 246752, Rate: 0.29},
	{UpTo: math.Inf(1), Rate: 0.33},
}

const (
	federalLowestRate = 0.15

	// Enhanced BPA phases down to the base amount across the fourth bracket.
	federalBPAMax           = 15705.0
	federalBPAMin           = 14156.0
	federalBPAPhaseOutStart = 173205.0
	federalBPAPhaseOutEnd   = 246752.0

	// Resident-of-Quebec abatement against basic federal tax.
	quebecAbatementRate = 0.165
)

// FederalResult breaks down a federal tax calculation.
type FederalResult struct {
	TaxableIncome       float64
	GrossTax            float64
	BasicPersonalAmount float64
	BasicPersonalCredit float64
	QuebecAbatement     float64
	NetTax              float64
	MarginalRate        float64
	AverageRate         float64
}

// CalculateFederal computes 2024 federal tax on taxable income. Quebec
// residents get the federal abatement applied.
func CalculateFederal(taxable float64, province model.Province) FederalResult {
	if taxable < 0 {
		taxable = 0
	}

	result := FederalResult{
		TaxableIncome:       model.Round2(taxable),
		GrossTax:            federalSchedule.Apply(taxable),
		BasicPersonalAmount: federalBasicPersonalAmount(taxable),
		MarginalRate:        federalSchedule.MarginalRate(taxable),
	}
	result.BasicPersonalCredit = model.Round2(result.BasicPersonalAmount * federalLowestRate)

	net := result.GrossTax - result.BasicPersonalCredit
	if net < 0 {
		net = 0
	}

	if province == model.ProvinceQC {
		result.QuebecAbatement = model.Round2(net * quebecAbatementRate)
		net -= result.QuebecAbatement
	}

	result.NetTax = model.Round2(net)
	if taxable > 0 {
		result.AverageRate = model.Round2(result.NetTax / taxable * 100)
	}

	return result
}

// federalBasicPersonalAmount applies the high-income phase-out of the
// enhanced BPA.
func federalBasicPersonalAmount(income float64) float64 {
	switch {
	case income <= federalBPAPhaseOutStart:
		return federalBPAMax
	case income >= federalBPAPhaseOutEnd:
		return federalBPAMin
	default:
		span := federalBPAPhaseOutEnd - federalBPAPhaseOutStart
		reduction := (federalBPAMax - federalBPAMin) * (income - federalBPAPhaseOutStart) / span
		return model.Round2(federalBPAMax - reduction)
	}
}
