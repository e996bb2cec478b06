package main

import (
	"testing"

	"github.com/Isaloum/TaxSyncForDrivers-sub001/internal/forms"
	"github.com/stretchr/testify/assert"
)

func TestTaxableIncome(t *testing.T) {
	pkg := &forms.FilingPackage{
		T2125: forms.T2125{NetIncome: 32680},
		IncomeByCategory: map[string]float64{
			"rideshare":  42000, // already inside net income
			"employment": 12000,
			"investment": 350.25,
		},
	}

	assert.InDelta(t, 45030.25, taxableIncome(pkg), 0.001)
}

func TestTaxableIncome_BusinessOnly(t *testing.T) {
	pkg := &forms.FilingPackage{
		T2125:            forms.T2125{NetIncome: 20000},
		IncomeByCategory: map[string]float64{"taxi": 25000},
	}

	assert.InDelta(t, 20000, taxableIncome(pkg), 0.001)
}
