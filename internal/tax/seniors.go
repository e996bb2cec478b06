package tax

import (
	"math"

	"github.com/Isaloum/TaxSyncForDrivers-sub001/internal/model"
)

// 2024 OAS recovery tax and age amount parameters.
const (
	oasClawbackThreshold = 90997.0
	oasClawbackRate      = 0.15

	ageAmountMax           = 8790.0
	ageAmountIncomeFloor   = 44325.0
	ageAmountReductionRate = 0.15
	ageAmountCreditRate    = 0.15
)

// OASResult breaks down the Old Age Security recovery tax.
type OASResult struct {
	NetIncome   float64
	OASReceived float64
	Clawback    float64
	NetOAS      float64
}

// CalculateOASClawback computes the recovery tax on OAS benefits: 15% of
// net income over the threshold, capped at the OAS received.
func CalculateOASClawback(netIncome, oasReceived float64) OASResult {
	if netIncome < 0 {
		netIncome = 0
	}
	if oasReceived < 0 {
		oasReceived = 0
	}

	clawback := math.Max(0, (netIncome-oasClawbackThreshold)*oasClawbackRate)
	clawback = math.Min(clawback, oasReceived)

	return OASResult{
		NetIncome:   model.Round2(netIncome),
		OASReceived: model.Round2(oasReceived),
		Clawback:    model.Round2(clawback),
		NetOAS:      model.Round2(oasReceived - clawback),
	}
}

// AgeAmountResult breaks down the federal age amount credit (65+).
type AgeAmountResult struct {
	NetIncome float64
	Amount    float64
	Credit    float64
}

// CalculateAgeAmount computes the federal age amount: the maximum reduced
// by 15% of net income over the floor, credited at the lowest rate.
func CalculateAgeAmount(netIncome float64) AgeAmountResult {
	if netIncome < 0 {
		netIncome = 0
	}

	amount := ageAmountMax - math.Max(0, (netIncome-ageAmountIncomeFloor)*ageAmountReductionRate)
	amount = math.Max(0, amount)

	return AgeAmountResult{
		NetIncome: model.Round2(netIncome),
		Amount:    model.Round2(amount),
		Credit:    model.Round2(amount * ageAmountCreditRate),
	}
}
