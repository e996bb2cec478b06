package tax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateCCA_FirstYear(t *testing.T) {
	got, err := CalculateCCA("10", 30000, 0, 100, true)
	require.NoError(t, err)

	assert.True(t, got.HalfYearApplied)
	assert.InDelta(t, 15000.00, got.ClaimBase, 0.001)
	assert.InDelta(t, 4500.00, got.FullClaim, 0.001)
	assert.InDelta(t, 4500.00, got.DeductibleClaim, 0.001)
	assert.InDelta(t, 25500.00, got.ClosingUCC, 0.001)
}

func TestCalculateCCA_SubsequentYear(t *testing.T) {
	got, err := CalculateCCA("10", 30000, 25500, 100, false)
	require.NoError(t, err)

	assert.False(t, got.HalfYearApplied)
	assert.InDelta(t, 25500.00, got.ClaimBase, 0.001)
	assert.InDelta(t, 7650.00, got.FullClaim, 0.001)
	assert.InDelta(t, 17850.00, got.ClosingUCC, 0.001)
}

func TestCalculateCCA_CostCeilings(t *testing.T) {
	tests := []struct {
		name      string
		classCode string
		cost      float64
		wantCost  float64
	}{
		{name: "class 10.1 caps passenger vehicles", classCode: "10.1", cost: 55000, wantCost: 37000},
		{name: "class 54 caps zero-emission vehicles", classCode: "54", cost: 80000, wantCost: 61000},
		{name: "class 10 is uncapped", classCode: "10", cost: 80000, wantCost: 80000},
		{name: "cost below ceiling kept as-is", classCode: "10.1", cost: 25000, wantCost: 25000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CalculateCCA(tt.classCode, tt.cost, 0, 100, true)
			require.NoError(t, err)
			assert.InDelta(t, tt.wantCost, got.CapitalCost, 0.001)
		})
	}
}

func TestCalculateCCA_BusinessUseProration(t *testing.T) {
	got, err := CalculateCCA("10", 30000, 0, 75, true)
	require.NoError(t, err)

	// Deduction is prorated but the UCC drawdown is not.
	assert.InDelta(t, 4500.00, got.FullClaim, 0.001)
	assert.InDelta(t, 3375.00, got.DeductibleClaim, 0.001)
	assert.InDelta(t, 25500.00, got.ClosingUCC, 0.001)
}

func TestCalculateCCA_Errors(t *testing.T) {
	_, err := CalculateCCA("8", 30000, 0, 100, true)
	assert.Error(t, err)

	_, err = CalculateCCA("10", 30000, 0, 140, true)
	assert.Error(t, err)

	_, err = CalculateCCA("10", -1, 0, 100, true)
	assert.Error(t, err)
}
