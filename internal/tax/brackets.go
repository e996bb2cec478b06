// Package tax implements the 2024 Canadian federal, Quebec, Ontario, and
// Alberta personal tax schedules plus the credits, CCA, GST/QST, and
// mileage calculations a rideshare driver's return needs. Every calculator
// is a pure function from numeric inputs to a rounded breakdown.
package tax

import (
	"math"

	"github.com/Isaloum/TaxSyncForDrivers-sub001/internal/model"
)

// Bracket is one band of a progressive rate schedule. UpTo is the band's
// upper bound; the last band uses +Inf.
type Bracket struct {
	UpTo float64
	Rate float64
}

// Schedule is an ordered list of brackets from lowest to highest.
type Schedule []Bracket

// Apply computes the tax on taxable income across the schedule's bands.
func (s Schedule) Apply(taxable float64) float64 {
	if taxable <= 0 {
		return 0
	}

	var tax float64
	lower := 0.0
	for _, b := range s {
		if taxable <= lower {
			break
		}
		upper := math.Min(taxable, b.UpTo)
		tax += (upper - lower) * b.Rate
		lower = b.UpTo
	}

	return model.Round2(tax)
}

// MarginalRate returns the rate of the band the income falls in.
func (s Schedule) MarginalRate(taxable float64) float64 {
	if taxable <= 0 || len(s) == 0 {
		return 0
	}
	for _, b := range s {
		if taxable <= b.UpTo {
			return b.Rate
		}
	}
	return s[len(s)-1].Rate
}
