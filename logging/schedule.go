package logging

import "math"

// episode numbers are logged when they are one of these multiples of a power
// of ten: 1, 2, ..., 10, 12, 14, 17, 20, 25, 30, 40, ..., 100, 120, ...
var logRatios = []float64{1, 1.2, 1.4, 1.7, 2, 2.5, 3, 4, 5, 6, 7, 8, 9, 10}

func logarithmicSchedule(n int) bool {
	if n < 1 {
		return false
	}
	exponent := math.Floor(math.Log10(float64(n)))
	scale := math.Pow(10, exponent)
	for _, r := range logRatios {
		if math.Abs(float64(n)-scale*r) < 1e-6 {
			return true
		}
	}
	return false
}
