package model

import "time"

// Receipt represents a retained expense receipt for CRA/Revenu Québec
// record-keeping (six-year retention rule).
type Receipt struct {
	Date       time.Time
	CreatedAt  time.Time
	ID         string
	Vendor     string
	Category   string
	DocumentID string // classified document this receipt came from, if any
	Amount     float64
	GST        float64
	QST        float64
}
