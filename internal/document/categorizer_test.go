package document

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Isaloum/TaxSyncForDrivers-sub001/internal/common"
	"github.com/Isaloum/TaxSyncForDrivers-sub001/internal/model"
)

func TestCategorizer_RideshareIncomeFoldsTipsAndFees(t *testing.T) {
	c := NewCategorizer()

	record, err := c.Categorize(model.DocTypeUberSummary, model.Fields{
		FieldGrossFares: numberField(22400.00),
		FieldTips:       numberField(1310.00),
		FieldServiceFee: numberField(5600.00),
	})
	require.NoError(t, err)

	assert.Equal(t, model.RecordIncome, record.Kind)
	assert.Equal(t, "rideshare", record.Category)
	assert.InDelta(t, 18110.00, record.Amount, 0.001)
	assert.Equal(t, 0.0, record.DeductibleAmount)
}

func TestCategorizer_RideshareWithoutTipsOrFees(t *testing.T) {
	c := NewCategorizer()

	record, err := c.Categorize(model.DocTypeUberSummary, model.Fields{
		FieldGrossFares: numberField(1250.00),
	})
	require.NoError(t, err)

	assert.Equal(t, model.RecordIncome, record.Kind)
	assert.Equal(t, "rideshare", record.Category)
	assert.InDelta(t, 1250.00, record.Amount, 0.001)
}

func TestCategorizer_ExpenseDeduction(t *testing.T) {
	tests := []struct {
		name           string
		docType        model.DocumentType
		amount         float64
		wantCategory   string
		wantDeductible float64
	}{
		{name: "fuel fully deductible at default business use", docType: model.DocTypeFuelReceipt, amount: 58.40, wantCategory: "fuel", wantDeductible: 58.40},
		{name: "meals capped at 50 percent", docType: model.DocTypeMealReceipt, amount: 24.28, wantCategory: "meals", wantDeductible: 12.14},
		{name: "phone defaults to half business use", docType: model.DocTypePhoneReceipt, amount: 79.10, wantCategory: "phone", wantDeductible: 39.55},
		{name: "parking fully deductible", docType: model.DocTypeParkingReceipt, amount: 18.00, wantCategory: "parking", wantDeductible: 18.00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCategorizer()
			record, err := c.Categorize(tt.docType, model.Fields{FieldAmount: numberField(tt.amount)})
			require.NoError(t, err)

			assert.Equal(t, model.RecordExpense, record.Kind)
			assert.Equal(t, tt.wantCategory, record.Category)
			assert.InDelta(t, tt.amount, record.Amount, 0.001)
			assert.InDelta(t, tt.wantDeductible, record.DeductibleAmount, 0.001)
		})
	}
}

func TestCategorizer_BusinessUseOverride(t *testing.T) {
	c := NewCategorizer()

	record, err := c.CategorizeWithBusinessUse(model.DocTypeFuelReceipt, model.Fields{
		FieldAmount: numberField(100.00),
	}, 80)
	require.NoError(t, err)

	assert.InDelta(t, 80.00, record.DeductibleAmount, 0.001)
	assert.InDelta(t, 80.0, record.BusinessUsePercent, 0.001)

	_, err = c.CategorizeWithBusinessUse(model.DocTypeFuelReceipt, model.Fields{}, 140)
	assert.Error(t, err)
}

func TestCategorizer_T5SumsInvestmentIncome(t *testing.T) {
	c := NewCategorizer()

	record, err := c.Categorize(model.DocTypeT5, model.Fields{
		FieldEligibleDivs:   numberField(800.00),
		FieldInterestIncome: numberField(150.00),
	})
	require.NoError(t, err)

	assert.Equal(t, "investment", record.Category)
	assert.InDelta(t, 950.00, record.Amount, 0.001)
}

func TestCategorizer_UnknownTypeIsError(t *testing.T) {
	c := NewCategorizer()

	_, err := c.Categorize(model.DocTypeUnknown, model.Fields{})
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrUnknownDocumentType)
}

func TestCategorizer_RoundingLaw(t *testing.T) {
	c := NewCategorizer()

	// 1/3 business use on a repeating-decimal amount still leaves the
	// module rounded to cents.
	record, err := c.CategorizeWithBusinessUse(model.DocTypeFuelReceipt, model.Fields{
		FieldAmount: numberField(10.00),
	}, 33)
	require.NoError(t, err)

	cents := record.DeductibleAmount * 100
	assert.InDelta(t, math.Round(cents), cents, 1e-9)
}

func TestRuleFor(t *testing.T) {
	rule, ok := RuleFor(model.DocTypeMealReceipt)
	require.True(t, ok)
	assert.Equal(t, 0.5, rule.DeductionRate)

	_, ok = RuleFor(model.DocTypeUnknown)
	assert.False(t, ok)
}
