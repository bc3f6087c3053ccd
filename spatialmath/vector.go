package spatialmath

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
)

// R3VectorAlmostEqual compares two r3.Vector objects and returns if the all elementwise differences are less than epsilon.
func R3VectorAlmostEqual(a, b r3.Vector, epsilon float64) bool {
	return math.Abs(a.X-b.X) < epsilon && math.Abs(a.Y-b.Y) < epsilon && math.Abs(a.Z-b.Z) < epsilon
}

// R3VectorIsFinite returns false if any component of the vector is NaN or infinite.
func R3VectorIsFinite(v r3.Vector) bool {
	for _, c := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// FormatR3Vector returns a short human readable form of v with three decimals per component.
func FormatR3Vector(v r3.Vector) string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", v.X, v.Y, v.Z)
}

// Direction returns the unit vector pointing from `from` to `to`. The second return value is false when the two
// points coincide, in which case no direction exists and the zero vector is returned.
func Direction(from, to r3.Vector) (r3.Vector, bool) {
	diff := to.Sub(from)
	norm := diff.Norm()
	if norm == 0 {
		return r3.Vector{}, false
	}
	return diff.Mul(1 / norm), true
}

// StepToward returns the point reached by moving from `from` toward `to` by at most `limit`.
// If `to` is within `limit` of `from` it is returned unchanged. The second return value is false for a
// zero-length step, i.e. when the two points coincide.
func StepToward(from, to r3.Vector, limit float64) (r3.Vector, bool) {
	dir, ok := Direction(from, to)
	if !ok {
		return from, false
	}
	if from.Distance(to) <= limit {
		return to, true
	}
	return from.Add(dir.Mul(limit)), true
}
