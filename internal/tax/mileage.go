package tax

import (
	"github.com/Isaloum/TaxSyncForDrivers-sub001/internal/model"
)

// 2024 CRA prescribed per-kilometre rates.
const (
	MileageRateFirst     = 0.70
	MileageRateAfter     = 0.64
	MileageRateThreshold = 5000.0
)

// MileageAllowance is the CRA reasonable-allowance value of business
// kilometres driven in a year.
func MileageAllowance(businessKm float64) float64 {
	if businessKm <= 0 {
		return 0
	}
	if businessKm <= MileageRateThreshold {
		return model.Round2(businessKm * MileageRateFirst)
	}
	return model.Round2(MileageRateThreshold*MileageRateFirst + (businessKm-MileageRateThreshold)*MileageRateAfter)
}

// SummarizeMileage aggregates a log into totals and the business-use
// percentage used to prorate vehicle expenses.
func SummarizeMileage(entries []model.MileageEntry) model.MileageSummary {
	var summary model.MileageSummary
	for _, e := range entries {
		if e.Kilometres <= 0 {
			continue
		}
		summary.TotalKm += e.Kilometres
		if e.IsBusiness {
			summary.BusinessKm += e.Kilometres
		} else {
			summary.PersonalKm += e.Kilometres
		}
	}

	summary.TotalKm = model.Round2(summary.TotalKm)
	summary.BusinessKm = model.Round2(summary.BusinessKm)
	summary.PersonalKm = model.Round2(summary.PersonalKm)
	if summary.TotalKm > 0 {
		summary.BusinessUsePercent = model.Round2(summary.BusinessKm / summary.TotalKm * 100)
	}

	return summary
}
