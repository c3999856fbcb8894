package core

import "math"

// -----------------------------------------------------------------------------

// CalculateMean computes the arithmetic mean.
func CalculateMean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}

	sum := 0.0
	for _, v := range data {
		sum += v
	}
	return sum / float64(len(data))
}

// -----------------------------------------------------------------------------

// CalculateSampleStd computes the sample standard deviation (N-1
// denominator). Returns 0 for fewer than two values.
func CalculateSampleStd(data []float64) float64 {
	if len(data) < 2 {
		return 0
	}

	mean := CalculateMean(data)

	varianceSum := 0.0
	for _, v := range data {
		varianceSum += (v - mean) * (v - mean)
	}
	return math.Sqrt(varianceSum / float64(len(data)-1))
}

// -----------------------------------------------------------------------------

// Round1 rounds to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Round3 rounds to three decimal places.
func Round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
