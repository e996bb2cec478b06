// Package model defines the core domain models used throughout the application.
package model

import "time"

// DocumentType identifies a supported tax document kind.
type DocumentType string

// Supported document types. Order here is informational only; classification
// priority is determined by pattern registration order.
const (
	DocTypeT4                 DocumentType = "t4"
	DocTypeT4A                DocumentType = "t4a"
	DocTypeT5                 DocumentType = "t5"
	DocTypeUberSummary        DocumentType = "uber_summary"
	DocTypeLyftSummary        DocumentType = "lyft_summary"
	DocTypeTaxiStatement      DocumentType = "taxi_statement"
	DocTypeFuelReceipt        DocumentType = "fuel_receipt"
	DocTypeMaintenanceReceipt DocumentType = "maintenance_receipt"
	DocTypeInsuranceReceipt   DocumentType = "insurance_receipt"
	DocTypePhoneReceipt       DocumentType = "phone_receipt"
	DocTypeMealReceipt        DocumentType = "meal_receipt"
	DocTypeParkingReceipt     DocumentType = "parking_receipt"
	DocTypeCarWashReceipt     DocumentType = "carwash_receipt"
	DocTypeUnknown            DocumentType = "unknown"
)

// ClassificationResult is the outcome of scoring a document's text against
// the pattern registry. Confidence is scaled 0-100.
type ClassificationResult struct {
	Type       DocumentType
	Confidence float64
}

// FieldKind describes how a captured value was coerced.
type FieldKind string

const (
	// FieldNumber is a numeric field (currency, distance, count).
	FieldNumber FieldKind = "number"
	// FieldText is a free-text field (vendor name, policy number).
	FieldText FieldKind = "text"
	// FieldYear is a 4-digit year preserved as text.
	FieldYear FieldKind = "year"
)

// FieldValue holds one extracted field. Exactly one of Number or Text is
// meaningful, selected by Kind (FieldYear values live in Text).
type FieldValue struct {
	Text   string
	Number float64
	Kind   FieldKind
}

// Fields maps field names to extracted values. Missing fields are simply
// absent from the map.
type Fields map[string]FieldValue

// Number returns the numeric value of a field, if present and numeric.
func (f Fields) Number(name string) (float64, bool) {
	v, ok := f[name]
	if !ok || v.Kind != FieldNumber {
		return 0, false
	}
	return v.Number, true
}

// NumberOr returns the numeric value of a field or a fallback.
func (f Fields) NumberOr(name string, fallback float64) float64 {
	if n, ok := f.Number(name); ok {
		return n
	}
	return fallback
}

// Text returns the text value of a field, if present and textual.
func (f Fields) Text(name string) (string, bool) {
	v, ok := f[name]
	if !ok || (v.Kind != FieldText && v.Kind != FieldYear) {
		return "", false
	}
	return v.Text, true
}

// ValidationReport collects the outcome of type-specific sanity checks.
// Errors block downstream use; warnings are advisory.
type ValidationReport struct {
	Errors   []string
	Warnings []string
	IsValid  bool
}

// RecordKind indicates whether a categorized record is income or expense.
type RecordKind string

const (
	// RecordIncome marks income records (slips, platform summaries).
	RecordIncome RecordKind = "income"
	// RecordExpense marks deductible expense records (receipts).
	RecordExpense RecordKind = "expense"
)

// CategorizedRecord maps extracted document data into an income/expense
// bucket ready for the form assembler.
type CategorizedRecord struct {
	Kind               RecordKind
	Category           string
	Amount             float64
	BusinessUsePercent float64
	DeductibleAmount   float64
}

// Document represents one processed tax document.
type Document struct {
	ProcessedAt time.Time
	ReviewedAt  *time.Time
	ID          string
	Source      string // file name or email subject the text came from
	Text        string
	Type        DocumentType
	Fields      Fields
	Record      *CategorizedRecord
	Warnings    []string
	Confidence  float64
}
