package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Isaloum/TaxSyncForDrivers-sub001/internal/model"
)

func numberField(n float64) model.FieldValue {
	return model.FieldValue{Kind: model.FieldNumber, Number: n}
}

func yearField(y string) model.FieldValue {
	return model.FieldValue{Kind: model.FieldYear, Text: y}
}

func TestValidator_CleanDocumentHasNoWarnings(t *testing.T) {
	v := NewValidator(DefaultValidatorConfig())

	fields := model.Fields{
		FieldGrossFares: numberField(1250.00),
		FieldDistance:   numberField(450),
		FieldTrips:      numberField(75),
	}

	report := v.Validate(model.DocTypeUberSummary, fields)
	assert.True(t, report.IsValid)
	assert.Empty(t, report.Errors)
	assert.Empty(t, report.Warnings)
}

func TestValidator_NegativeAmountIsError(t *testing.T) {
	v := NewValidator(DefaultValidatorConfig())

	report := v.Validate(model.DocTypeFuelReceipt, model.Fields{
		FieldAmount: numberField(-58.40),
	})

	assert.False(t, report.IsValid)
	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0], "negative")
}

func TestValidator_AllZeroMonetaryFieldsWarnsOnce(t *testing.T) {
	v := NewValidator(DefaultValidatorConfig())

	// A zero-activity period with real distance: valid, but flagged.
	fields := model.Fields{
		FieldGrossFares: numberField(0),
		FieldTips:       numberField(0),
		FieldNetAmount:  numberField(0),
		FieldDistance:   numberField(6),
	}

	report := v.Validate(model.DocTypeUberSummary, fields)
	assert.True(t, report.IsValid)
	require.Len(t, report.Warnings, 1)
	assert.Contains(t, report.Warnings[0], "zero")
}

func TestValidator_NonZeroIncomeDoesNotWarn(t *testing.T) {
	v := NewValidator(DefaultValidatorConfig())

	report := v.Validate(model.DocTypeUberSummary, model.Fields{
		FieldGrossFares: numberField(100.00),
		FieldTips:       numberField(0),
	})
	assert.Empty(t, report.Warnings)
}

func TestValidator_YearWindowBoundaries(t *testing.T) {
	v := NewValidator(DefaultValidatorConfig())

	tests := []struct {
		year     string
		wantWarn bool
	}{
		{year: "2019", wantWarn: true},
		{year: "2020", wantWarn: false},
		{year: "2030", wantWarn: false},
		{year: "2031", wantWarn: true},
	}

	for _, tt := range tests {
		t.Run(tt.year, func(t *testing.T) {
			report := v.Validate(model.DocTypeT4, model.Fields{
				FieldEmploymentIncome: numberField(45000),
				FieldTaxYear:          yearField(tt.year),
			})
			assert.True(t, report.IsValid)
			if tt.wantWarn {
				require.Len(t, report.Warnings, 1)
				assert.Contains(t, report.Warnings[0], tt.year)
			} else {
				assert.Empty(t, report.Warnings)
			}
		})
	}
}

func TestValidator_NetExceedingGrossWarns(t *testing.T) {
	v := NewValidator(DefaultValidatorConfig())

	report := v.Validate(model.DocTypeUberSummary, model.Fields{
		FieldGrossFares: numberField(1000.00),
		FieldNetAmount:  numberField(1200.00),
	})
	assert.True(t, report.IsValid)
	require.Len(t, report.Warnings, 1)
	assert.Contains(t, report.Warnings[0], "exceeds gross")
}

func TestValidator_NilFieldsIsStructuralError(t *testing.T) {
	v := NewValidator(DefaultValidatorConfig())

	report := v.Validate(model.DocTypeUberSummary, nil)
	assert.False(t, report.IsValid)
	assert.NotEmpty(t, report.Errors)
}

func TestValidator_ConfigurableWindow(t *testing.T) {
	v := NewValidator(ValidatorConfig{YearMin: 2015, YearMax: 2025})

	report := v.Validate(model.DocTypeT4, model.Fields{
		FieldEmploymentIncome: numberField(45000),
		FieldTaxYear:          yearField("2019"),
	})
	assert.Empty(t, report.Warnings)
}
