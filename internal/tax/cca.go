package tax

import (
	"fmt"
	"math"

	"github.com/Isaloum/TaxSyncForDrivers-sub001/internal/model"
)

// CCAClass describes a capital cost allowance class. A non-zero
// CostCeiling caps the capital cost that can enter the class.
type CCAClass struct {
	Code        string
	Rate        float64
	CostCeiling float64
}

// Vehicle classes a driver can claim. Class 10.1 is the capped passenger
// vehicle class; class 54 covers zero-emission vehicles.
var ccaClasses = map[string]CCAClass{
	"10":   {Code: "10", Rate: 0.30},
	"10.1": {Code: "10.1", Rate: 0.30, CostCeiling: 37000},
	"54":   {Code: "54", Rate: 0.30, CostCeiling: 61000},
}

// CCAResult breaks down one year's capital cost allowance claim.
type CCAResult struct {
	Class              CCAClass
	CapitalCost        float64
	OpeningUCC         float64
	ClaimBase          float64
	FullClaim          float64
	DeductibleClaim    float64
	ClosingUCC         float64
	BusinessUsePercent float64
	HalfYearApplied    bool
}

// CalculateCCA computes declining-balance CCA for a vehicle. In the
// acquisition year the half-year rule halves the claim base. CCA is
// computed on the full UCC and the deduction prorated by business use,
// but the UCC is reduced by the full claim.
func CalculateCCA(classCode string, capitalCost, openingUCC, businessUsePercent float64, firstYear bool) (CCAResult, error) {
	class, ok := ccaClasses[classCode]
	if !ok {
		return CCAResult{}, fmt.Errorf("unsupported CCA class %q", classCode)
	}
	if businessUsePercent < 0 || businessUsePercent > 100 {
		return CCAResult{}, fmt.Errorf("business use percent out of range: %.2f", businessUsePercent)
	}
	if capitalCost < 0 || openingUCC < 0 {
		return CCAResult{}, fmt.Errorf("capital cost and UCC cannot be negative")
	}

	cost := capitalCost
	if class.CostCeiling > 0 {
		cost = math.Min(cost, class.CostCeiling)
	}

	result := CCAResult{
		Class:              class,
		CapitalCost:        model.Round2(cost),
		OpeningUCC:         model.Round2(openingUCC),
		BusinessUsePercent: businessUsePercent,
	}

	base := openingUCC
	if firstYear {
		base = cost / 2
		result.HalfYearApplied = true
	}
	result.ClaimBase = model.Round2(base)

	result.FullClaim = model.Round2(base * class.Rate)
	result.DeductibleClaim = model.Round2(result.FullClaim * businessUsePercent / 100)

	if firstYear {
		result.ClosingUCC = model.Round2(cost - result.FullClaim)
	} else {
		result.ClosingUCC = model.Round2(openingUCC - result.FullClaim)
	}

	return result, nil
}
