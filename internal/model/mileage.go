package model

import "time"

// MileageEntry is one trip in the vehicle log book.
type MileageEntry struct {
	Date       time.Time
	CreatedAt  time.Time
	ID         string
	Purpose    string
	Kilometres float64
	IsBusiness bool
}

// MileageSummary aggregates a log over a filing year.
type MileageSummary struct {
	BusinessKm         float64
	PersonalKm         float64
	TotalKm            float64
	BusinessUsePercent float64
}
