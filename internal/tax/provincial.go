package tax

import (
	"math"

	"github.com/Isaloum/TaxSyncForDrivers-sub001/internal/model"
)

// ProvincialResult breaks down a provincial tax calculation.
type ProvincialResult struct {
	Province            model.Province
	TaxableIncome       float64
	GrossTax            float64
	BasicPersonalCredit float64
	Surtax              float64
	NetTax              float64
	MarginalRate        float64
}

// 2024 Quebec schedule.
var quebecSchedule = Schedule{
	{UpTo: 51780, Rate: 0.14},
	{UpTo: 103545, Rate: 0.19},
	{UpTo: 126000, Rate: 0.24},
	{UpTo: math.Inf(1), Rate: 0.2575},
}

const (
	quebecBPA        = 18056.0
	quebecLowestRate = 0.14
)

// CalculateQuebec computes 2024 Quebec tax on taxable income.
func CalculateQuebec(taxable float64) ProvincialResult {
	if taxable < 0 {
		taxable = 0
	}

	result := ProvincialResult{
		Province:      model.ProvinceQC,
		TaxableIncome: model.Round2(taxable),
		GrossTax:      quebecSchedule.Apply(taxable),
		MarginalRate:  quebecSchedule.MarginalRate(taxable),
	}
	result.BasicPersonalCredit = model.Round2(quebecBPA * quebecLowestRate)
	result.NetTax = model.Round2(math.Max(0, result.GrossTax-result.BasicPersonalCredit))

	return result
}

// 2024 Ontario schedule and surtax thresholds.
var ontarioSchedule = Schedule{
	{UpTo: 51446, Rate: 0.0505},
	{UpTo: 102894, Rate: 0.0915},
	{UpTo: 150000, Rate: 0.1116},
	{UpTo: 220000, Rate: 0.1216},
	{UpTo: math.Inf(1), Rate: 0.1316},
}

const (
	ontarioBPA          = 12399.0
	ontarioLowestRate   = 0.0505
	ontarioSurtaxFirst  = 5554.0
	ontarioSurtaxSecond = 7108.0
)

// CalculateOntario computes 2024 Ontario tax, including the two-tier
// surtax on basic provincial tax.
func CalculateOntario(taxable float64) ProvincialResult {
	if taxable < 0 {
		taxable = 0
	}

	result := ProvincialResult{
		Province:      model.ProvinceON,
		TaxableIncome: model.Round2(taxable),
		GrossTax:      ontarioSchedule.Apply(taxable),
		MarginalRate:  ontarioSchedule.MarginalRate(taxable),
	}
	result.BasicPersonalCredit = model.Round2(ontarioBPA * ontarioLowestRate)

	basicTax := math.Max(0, result.GrossTax-result.BasicPersonalCredit)

	var surtax float64
	if basicTax > ontarioSurtaxFirst {
		surtax += 0.20 * (basicTax - ontarioSurtaxFirst)
	}
	if basicTax > ontarioSurtaxSecond {
		surtax += 0.36 * (basicTax - ontarioSurtaxSecond)
	}
	result.Surtax = model.Round2(surtax)
	result.NetTax = model.Round2(basicTax + result.Surtax)

	return result
}

// 2024 Alberta schedule.
var albertaSchedule = Schedule{
	{UpTo: 148269, Rate: 0.10},
	{UpTo: 177922, Rate: 0.12},
	{UpTo: 237230, Rate: 0.13},
	{UpTo: 355845, Rate: 0.14},
	{UpTo: math.Inf(1), Rate: 0.15},
}

const (
	albertaBPA        = 21885.0
	albertaLowestRate = 0.10
)

// CalculateAlberta computes 2024 Alberta tax on taxable income.
func CalculateAlberta(taxable float64) ProvincialResult {
	if taxable < 0 {
		taxable = 0
	}

	result := ProvincialResult{
		Province:      model.ProvinceAB,
		TaxableIncome: model.Round2(taxable),
		GrossTax:      albertaSchedule.Apply(taxable),
		MarginalRate:  albertaSchedule.MarginalRate(taxable),
	}
	result.BasicPersonalCredit = model.Round2(albertaBPA * albertaLowestRate)
	result.NetTax = model.Round2(math.Max(0, result.GrossTax-result.BasicPersonalCredit))

	return result
}

// CalculateProvincial dispatches on the province code. Unsupported
// provinces return a zero provincial result; the federal estimate still
// applies.
func CalculateProvincial(province model.Province, taxable float64) ProvincialResult {
	switch province {
	case model.ProvinceQC:
		return CalculateQuebec(taxable)
	case model.ProvinceON:
		return CalculateOntario(taxable)
	case model.ProvinceAB:
		return CalculateAlberta(taxable)
	default:
		return ProvincialResult{Province: province, TaxableIncome: model.Round2(math.Max(0, taxable))}
	}
}

// Estimate combines federal and provincial tax for a taxable income.
type Estimate struct {
	Federal    FederalResult
	Provincial ProvincialResult
	Total      float64
}

// CalculateEstimate produces the combined federal + provincial estimate.
func CalculateEstimate(province model.Province, taxable float64) Estimate {
	est := Estimate{
		Federal:    CalculateFederal(taxable, province),
		Provincial: CalculateProvincial(province, taxable),
	}
	est.Total = model.Round2(est.Federal.NetTax + est.Provincial.NetTax)
	return est
}
