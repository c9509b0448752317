package util

import (
	"math"
)

// Lerp interpolates linearly between a and b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp01 limits v to [0, 1]. NaN maps to 0.
func Clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// GenerateLut samples one forward and reverse pass of curve into length
// entries. The table rises from curve(0) to curve(1) at length/2 and falls
// back again, so it loops seamlessly when played repeatedly.
func GenerateLut(length int, curve func(float64) float64) []float64 {
	if length <= 0 {
		return nil
	}
	lut := make([]float64, length)
	half := float64(length) / 2
	for i := range lut {
		x := float64(i) / half
		if x > 1 {
			x = 2 - x
		}
		lut[i] = Clamp01(curve(x))
	}
	return lut
}
