package tax

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateOASClawback(t *testing.T) {
	tests := []struct {
		name         string
		netIncome    float64
		oasReceived  float64
		wantClawback float64
		wantNetOAS   float64
	}{
		{name: "below threshold", netIncome: 80000, oasReceived: 8500, wantClawback: 0, wantNetOAS: 8500},
		{name: "at threshold", netIncome: 90997, oasReceived: 8500, wantClawback: 0, wantNetOAS: 8500},
		{name: "over threshold", netIncome: 100997, oasReceived: 8500, wantClawback: 1500.00, wantNetOAS: 7000.00},
		{name: "clawback capped at OAS received", netIncome: 200000, oasReceived: 8500, wantClawback: 8500.00, wantNetOAS: 0},
		{name: "no OAS received", netIncome: 120000, oasReceived: 0, wantClawback: 0, wantNetOAS: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateOASClawback(tt.netIncome, tt.oasReceived)
			assert.InDelta(t, tt.wantClawback, got.Clawback, 0.001)
			assert.InDelta(t, tt.wantNetOAS, got.NetOAS, 0.001)
		})
	}
}

func TestCalculateAgeAmount(t *testing.T) {
	tests := []struct {
		name       string
		netIncome  float64
		wantAmount float64
		wantCredit float64
	}{
		{name: "below floor gets maximum", netIncome: 40000, wantAmount: 8790.00, wantCredit: 1318.50},
		{name: "at floor gets maximum", netIncome: 44325, wantAmount: 8790.00, wantCredit: 1318.50},
		{name: "partial reduction", netIncome: 64325, wantAmount: 5790.00, wantCredit: 868.50},
		{name: "fully phased out", netIncome: 200000, wantAmount: 0, wantCredit: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateAgeAmount(tt.netIncome)
			assert.InDelta(t, tt.wantAmount, got.Amount, 0.001)
			assert.InDelta(t, tt.wantCredit, got.Credit, 0.001)
		})
	}
}
