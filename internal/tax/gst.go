package tax

import "github.com/Isaloum/TaxSyncForDrivers-sub001/internal/model"

// Sales tax rates and thresholds.
const (
	GSTRate = 0.05
	QSTRate = 0.09975

	// SmallSupplierThreshold is the rolling-year revenue level above which
	// registration is mandatory. Rideshare drivers must register from the
	// first dollar regardless; the threshold only matters for taxi-adjacent
	// side income.
	SmallSupplierThreshold = 30000.0

	// Quick method remittance rates applied to tax-included sales.
	quickMethodGSTRate = 0.036
	quickMethodQSTRate = 0.066
)

// GSTQSTSummary breaks down a filing period's sales tax position.
type GSTQSTSummary struct {
	Sales        float64
	GSTCollected float64
	QSTCollected float64
	GSTPaid      float64 // input tax credits
	QSTPaid      float64 // input tax refunds
	NetGST       float64
	NetQST       float64
	NetOwing     float64
	QuickMethod  bool
}

// CalculateRemittance computes the net GST/QST owing for a period.
// Collected amounts are computed from tax-extra sales; gstPaid/qstPaid are
// the ITC/ITR amounts actually recorded on expense receipts. Under the
// quick method the remittance is a flat rate on tax-included sales and
// operating-expense ITCs are forfeited.
func CalculateRemittance(sales, gstPaid, qstPaid float64, quickMethod bool) GSTQSTSummary {
	if sales < 0 {
		sales = 0
	}
	if gstPaid < 0 {
		gstPaid = 0
	}
	if qstPaid < 0 {
		qstPaid = 0
	}

	summary := GSTQSTSummary{
		Sales:        model.Round2(sales),
		GSTCollected: model.Round2(sales * GSTRate),
		QSTCollected: model.Round2(sales * QSTRate),
		GSTPaid:      model.Round2(gstPaid),
		QSTPaid:      model.Round2(qstPaid),
		QuickMethod:  quickMethod,
	}

	if quickMethod {
		taxIncluded := sales * (1 + GSTRate + QSTRate)
		summary.NetGST = model.Round2(taxIncluded * quickMethodGSTRate)
		summary.NetQST = model.Round2(taxIncluded * quickMethodQSTRate)
	} else {
		summary.NetGST = model.Round2(summary.GSTCollected - gstPaid)
		summary.NetQST = model.Round2(summary.QSTCollected - qstPaid)
	}

	summary.NetOwing = model.Round2(summary.NetGST + summary.NetQST)
	return summary
}

// MustRegister reports whether rolling-year revenue requires GST/QST
// registration.
func MustRegister(rollingYearRevenue float64) bool {
	return rollingYearRevenue > SmallSupplierThreshold
}
