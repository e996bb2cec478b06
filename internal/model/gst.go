package model

import "time"

// GSTSnapshot records a computed GST/QST remittance position so the filing
// history survives later edits to receipts and income documents.
type GSTSnapshot struct {
	CreatedAt    time.Time
	ID           string
	Year         int
	Sales        float64
	GSTCollected float64
	QSTCollected float64
	GSTPaid      float64
	QSTPaid      float64
	NetOwing     float64
	QuickMethod  bool
}
