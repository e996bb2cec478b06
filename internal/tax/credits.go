package tax

import (
	"math"

	"github.com/Isaloum/TaxSyncForDrivers-sub001/internal/model"
)

// DonationResult breaks down the charitable donation credit.
type DonationResult struct {
	Donations     float64
	FederalCredit float64
	QuebecCredit  float64
	TotalCredit   float64
}

const (
	donationLowTier    = 200.0
	donationLowRate    = 0.15
	donationHighRate   = 0.29
	donationQuebecRate = 0.25
)

// CalculateDonation computes the federal (15% of the first $200, 29%
// above) and Quebec (flat 25%) charitable donation credits.
func CalculateDonation(donations float64) DonationResult {
	if donations < 0 {
		donations = 0
	}

	result := DonationResult{Donations: model.Round2(donations)}

	low := math.Min(donations, donationLowTier)
	high := math.Max(0, donations-donationLowTier)
	result.FederalCredit = model.Round2(low*donationLowRate + high*donationHighRate)
	result.QuebecCredit = model.Round2(donations * donationQuebecRate)
	result.TotalCredit = model.Round2(result.FederalCredit + result.QuebecCredit)

	return result
}

// DividendResult breaks down a dividend gross-up and tax credit.
type DividendResult struct {
	Actual        float64
	GrossedUp     float64
	FederalCredit float64
	QuebecCredit  float64
}

const (
	eligibleGrossUp       = 1.38
	eligibleFederalDTC    = 0.150198
	eligibleQuebecDTC     = 0.117
	nonEligibleGrossUp    = 1.15
	nonEligibleFederalDTC = 0.090301
	nonEligibleQuebecDTC  = 0.0342
)

// CalculateEligibleDividend applies the 38% gross-up and the eligible
// dividend tax credits to an actual dividend amount.
func CalculateEligibleDividend(actual float64) DividendResult {
	return dividendResult(actual, eligibleGrossUp, eligibleFederalDTC, eligibleQuebecDTC)
}

// CalculateNonEligibleDividend applies the 15% gross-up and the
// non-eligible dividend tax credits.
func CalculateNonEligibleDividend(actual float64) DividendResult {
	return dividendResult(actual, nonEligibleGrossUp, nonEligibleFederalDTC, nonEligibleQuebecDTC)
}

func dividendResult(actual, grossUp, federalRate, quebecRate float64) DividendResult {
	if actual < 0 {
		actual = 0
	}

	grossed := actual * grossUp
	return DividendResult{
		Actual:        model.Round2(actual),
		GrossedUp:     model.Round2(grossed),
		FederalCredit: model.Round2(grossed * federalRate),
		QuebecCredit:  model.Round2(grossed * quebecRate),
	}
}

// MedicalResult breaks down the medical expense credits.
type MedicalResult struct {
	Expenses        float64
	FederalEligible float64
	FederalCredit   float64
	QuebecEligible  float64
	QuebecCredit    float64
}

const (
	medicalIncomeFraction = 0.03
	medicalFederalFloor   = 2759.0 // 2024 cap on the 3%-of-income reduction
	medicalFederalRate    = 0.15
	medicalQuebecRate     = 0.20
)

// CalculateMedical computes the federal and Quebec medical expense
// credits for the given expenses and net income.
func CalculateMedical(expenses, netIncome float64) MedicalResult {
	if expenses < 0 {
		expenses = 0
	}
	if netIncome < 0 {
		netIncome = 0
	}

	result := MedicalResult{Expenses: model.Round2(expenses)}

	fedThreshold := math.Min(netIncome*medicalIncomeFraction, medicalFederalFloor)
	result.FederalEligible = model.Round2(math.Max(0, expenses-fedThreshold))
	result.FederalCredit = model.Round2(result.FederalEligible * medicalFederalRate)

	qcThreshold := netIncome * medicalIncomeFraction
	result.QuebecEligible = model.Round2(math.Max(0, expenses-qcThreshold))
	result.QuebecCredit = model.Round2(result.QuebecEligible * medicalQuebecRate)

	return result
}

// TuitionResult breaks down the tuition credits.
type TuitionResult struct {
	Tuition       float64
	FederalCredit float64
	QuebecCredit  float64
}

const (
	tuitionFederalRate = 0.15
	tuitionQuebecRate  = 0.08
)

// CalculateTuition computes federal (15%) and Quebec (8%) tuition credits.
func CalculateTuition(tuition float64) TuitionResult {
	if tuition < 0 {
		tuition = 0
	}
	return TuitionResult{
		Tuition:       model.Round2(tuition),
		FederalCredit: model.Round2(tuition * tuitionFederalRate),
		QuebecCredit:  model.Round2(tuition * tuitionQuebecRate),
	}
}

// CapitalGainsResult breaks down the taxable portion of a capital gain.
type CapitalGainsResult struct {
	Gain         float64
	TaxableGain  float64
	LowPortion   float64
	HighPortion  float64
}

const (
	capitalGainsLowRate   = 0.5
	capitalGainsHighRate  = 2.0 / 3.0
	capitalGainsThreshold = 250000.0
)

// CalculateCapitalGains applies the 2024 inclusion rates: one half up to
// $250,000 of net gains, two thirds above.
func CalculateCapitalGains(gain float64) CapitalGainsResult {
	if gain < 0 {
		gain = 0
	}

	low := math.Min(gain, capitalGainsThreshold)
	high := math.Max(0, gain-capitalGainsThreshold)

	return CapitalGainsResult{
		Gain:        model.Round2(gain),
		LowPortion:  model.Round2(low * capitalGainsLowRate),
		HighPortion: model.Round2(high * capitalGainsHighRate),
		TaxableGain: model.Round2(low*capitalGainsLowRate + high*capitalGainsHighRate),
	}
}
