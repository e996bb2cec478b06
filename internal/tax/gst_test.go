package tax

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateRemittance_RegularMethod(t *testing.T) {
	got := CalculateRemittance(40000, 350, 700, false)

	assert.InDelta(t, 2000.00, got.GSTCollected, 0.001)
	assert.InDelta(t, 3990.00, got.QSTCollected, 0.001)
	assert.InDelta(t, 1650.00, got.NetGST, 0.001)
	assert.InDelta(t, 3290.00, got.NetQST, 0.001)
	assert.InDelta(t, 4940.00, got.NetOwing, 0.001)
	assert.False(t, got.QuickMethod)
}

func TestCalculateRemittance_QuickMethod(t *testing.T) {
	got := CalculateRemittance(40000, 350, 700, true)

	// Flat rates on tax-included sales; recorded ITCs are ignored.
	taxIncluded := 40000 * (1 + GSTRate + QSTRate)
	assert.InDelta(t, taxIncluded*0.036, got.NetGST, 0.01)
	assert.InDelta(t, taxIncluded*0.066, got.NetQST, 0.01)
	assert.InDelta(t, got.NetGST+got.NetQST, got.NetOwing, 0.001)
	assert.True(t, got.QuickMethod)
}

func TestCalculateRemittance_RefundPosition(t *testing.T) {
	got := CalculateRemittance(1000, 200, 400, false)
	assert.InDelta(t, -150.00, got.NetGST, 0.001)
	assert.InDelta(t, -300.25, got.NetQST, 0.001)
	assert.InDelta(t, -450.25, got.NetOwing, 0.001)
}

func TestCalculateRemittance_NegativeInputsClamped(t *testing.T) {
	got := CalculateRemittance(-5000, -10, -10, false)
	assert.Zero(t, got.Sales)
	assert.Zero(t, got.NetOwing)
}

func TestMustRegister(t *testing.T) {
	assert.False(t, MustRegister(29999.99))
	assert.False(t, MustRegister(30000))
	assert.True(t, MustRegister(30000.01))
}
