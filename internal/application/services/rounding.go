package services

import "math"

// Rounding helpers shared by the scorers. The dashboard feature pages round
// the same way, so the numbers shown there and in the aggregate report agree.

func round(v float64) float64 {
	return math.Round(v)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
