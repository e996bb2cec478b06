package model

// Province is a two-letter Canadian province code.
type Province string

// Provinces with dedicated tax schedules. Other codes fall back to the
// federal-only estimate.
const (
	ProvinceQC Province = "QC"
	ProvinceON Province = "ON"
	ProvinceAB Province = "AB"
)

// TaxProfile holds the driver's filing-year settings used by the
// calculators and the form assembler.
type TaxProfile struct {
	Name               string
	Province           Province
	SIN                string // stored masked, last 3 digits only
	Year               int
	BusinessUsePercent float64
	GSTRegistered      bool
	QuickMethod        bool
	VehicleCost        float64 // capital cost for CCA, 0 if leased
	VehicleCCAClass    string  // "10", "10.1" or "54"
	OpeningUCC         float64
}
