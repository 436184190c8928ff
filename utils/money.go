package utils

import "math"

// Round2 rounds a currency amount to cents. Monetary figures are float64
// decimal units throughout; each stored figure is rounded once, at write time.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}
