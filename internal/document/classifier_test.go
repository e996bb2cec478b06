package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Isaloum/TaxSyncForDrivers-sub001/internal/model"
)

// sampleTexts contains a representative OCR text per supported document
// type, each carrying that type's distinctive phrases.
var sampleTexts = map[model.DocumentType]string{
	model.DocTypeT4: `T4 Statement of Remuneration Paid
Employer's name: ACME TAXI INC
Box 14 Employment income $45,000.00
Box 22 Income tax deducted $6,200.00
For the year 2024`,
	model.DocTypeT4A: `T4A Statement of Pension, Retirement, Annuity and Other Income
Box 048 Fees for services $32,500.00
Tax year 2024`,
	model.DocTypeT5: `T5 Statement of Investment Income
Box 24 Actual amount of eligible dividends $800.00
Box 13 Interest from Canadian sources $150.00
For the year 2024`,
	model.DocTypeUberSummary: `UBER RIDES – GROSS FARES BREAKDOWN
Total CA$1,250.00
Online Mileage 450 km
Trip count: 75 trips`,
	model.DocTypeLyftSummary: `LYFT ANNUAL SUMMARY
Gross ride receipts: $22,400.00
Tips: $1,310.00
Platform fees: $5,600.00
Ride count: 1,842
Net earnings: $18,110.00`,
	model.DocTypeTaxiStatement: `TAXI COOP MONTREAL
Shift report
Fares collected: $385.50
Meter total: $380.00
Tips: $42.00
Km driven: 210
GST $16.70 QST $33.32`,
	model.DocTypeFuelReceipt: `PETRO-CANADA
FUEL SELF SERVE
32.5 Litres  Pump #4
Total $58.40
GST $2.54
QST $5.07`,
	model.DocTypeMaintenanceReceipt: `GARAGE MECANIQUE MODERNE
Oil change and tire rotation
Odometer: 84,200 km
Total $156.75
GST $6.82 QST $13.60`,
	model.DocTypeInsuranceReceipt: `DESJARDINS ASSURANCE
Automobile insurance
Policy Number: QC12345678
Premium: $1,440.00`,
	model.DocTypePhoneReceipt: `BELL MOBILITY
Monthly plan charges
Data usage: 4.2 GB
Total due: $79.10`,
	model.DocTypeMealReceipt: `RESTO LA BELLE PROVINCE
Server #12
Subtotal $18.50
TPS $0.93 TVQ $1.85
Gratuity $3.00
Total $24.28`,
	model.DocTypeParkingReceipt: `INDIGO PARKING
Lot #23
Entry time 08:14
Exit time 17:40
Total $18.00`,
	model.DocTypeCarWashReceipt: `CLICK LAVE-AUTO EXPRESS
Deluxe wash and wax
Total $14.95`,
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	engine, err := NewDefaultEngine()
	require.NoError(t, err)
	return engine
}

func TestClassifier_AllTypesRecognizeOwnSample(t *testing.T) {
	engine := newTestEngine(t)
	classifier := NewClassifier(engine.Registry())

	for docType, text := range sampleTexts {
		result := classifier.Classify(text)
		assert.Equal(t, docType, result.Type, "sample for %s", docType)
		assert.Greater(t, result.Confidence, 0.0, "sample for %s", docType)
	}
}

func TestClassifier_EmptyInput(t *testing.T) {
	engine := newTestEngine(t)
	classifier := NewClassifier(engine.Registry())

	for _, text := range []string{"", "   ", "\n\t\n"} {
		result := classifier.Classify(text)
		assert.Equal(t, model.DocTypeUnknown, result.Type)
		assert.Equal(t, 0.0, result.Confidence)
	}
}

func TestClassifier_UnmatchedTextIsUnknown(t *testing.T) {
	engine := newTestEngine(t)
	classifier := NewClassifier(engine.Registry())

	result := classifier.Classify("lorem ipsum dolor sit amet")
	assert.Equal(t, model.DocTypeUnknown, result.Type)
	assert.Equal(t, 0.0, result.Confidence)
}

func TestClassifier_TieBreaksToFirstRegistered(t *testing.T) {
	patterns := []TypePattern{
		{Type: "alpha_receipt", Keywords: []Keyword{{Pattern: `widget`, Weight: 2}}},
		{Type: "beta_receipt", Keywords: []Keyword{{Pattern: `widget`, Weight: 2}}},
	}
	registry, err := NewRegistry(patterns)
	require.NoError(t, err)

	result := NewClassifier(registry).Classify("one widget")
	assert.Equal(t, model.DocumentType("alpha_receipt"), result.Type)
	assert.Equal(t, 100.0, result.Confidence)
}

func TestClassifier_PartialMatchScoresProportionally(t *testing.T) {
	patterns := []TypePattern{
		{Type: "gamma_receipt", Keywords: []Keyword{
			{Pattern: `alpha`, Weight: 1},
			{Pattern: `beta`, Weight: 1},
			{Pattern: `gamma`, Weight: 1},
			{Pattern: `delta`, Weight: 1},
			{Pattern: `epsilon`, Weight: 1},
		}},
	}
	registry, err := NewRegistry(patterns)
	require.NoError(t, err)

	// 3 of 5 phrases present reflects 60% certainty.
	result := NewClassifier(registry).Classify("alpha beta gamma")
	assert.Equal(t, model.DocumentType("gamma_receipt"), result.Type)
	assert.InDelta(t, 60.0, result.Confidence, 0.001)
}

func TestScore(t *testing.T) {
	tests := []struct {
		name    string
		matched int
		total   int
		want    float64
	}{
		{name: "no matches", matched: 0, total: 10, want: 0},
		{name: "all matches", matched: 10, total: 10, want: 100},
		{name: "three of five", matched: 3, total: 5, want: 60},
		{name: "zero total", matched: 3, total: 0, want: 0},
		{name: "matched clamped to total", matched: 12, total: 10, want: 100},
		{name: "two thirds rounds to 2 places", matched: 2, total: 3, want: 66.67},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Score(tt.matched, tt.total), 0.001)
		})
	}
}

func TestNewRegistry_RejectsBadInput(t *testing.T) {
	_, err := NewRegistry([]TypePattern{{Type: model.DocTypeUnknown}})
	assert.Error(t, err)

	_, err = NewRegistry([]TypePattern{
		{Type: "dup", Keywords: []Keyword{{Pattern: `a`}}},
		{Type: "dup", Keywords: []Keyword{{Pattern: `b`}}},
	})
	assert.Error(t, err)

	_, err = NewRegistry([]TypePattern{
		{Type: "bad_regex", Keywords: []Keyword{{Pattern: `([`}}},
	})
	assert.Error(t, err)
}
