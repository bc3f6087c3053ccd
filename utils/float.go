package utils

import "math"

// Float64AlmostEqual compares two float64s and returns if the difference between them is less than epsilon.
func Float64AlmostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) <= epsilon
}

// Float64IsFinite returns false for NaN and infinities.
func Float64IsFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
