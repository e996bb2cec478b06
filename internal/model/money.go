package model

import "math"

// Round2 rounds a monetary amount to 2 decimal places. Every money-valued
// output leaves the calculators and the document engine through this.
func Round2(amount float64) float64 {
	return math.Round(amount*100) / 100
}
