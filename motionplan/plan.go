package motionplan

import (
	"strings"

	"github.com/golang/geo/r3"
	"github.com/samber/lo"
	"gonum.org/v1/gonum/floats"

	"go.viam.com/planningsim/spatialmath"
)

// Path is an ordered sequence of positions from the start to the finish of a plan. A path holding only the
// start position means no path was found.
type Path []r3.Vector

// Cost returns the summed length of the path's segments.
func (p Path) Cost() float64 {
	if len(p) < 2 {
		return 0
	}
	return floats.Sum(p.SegmentLengths())
}

// SegmentLengths returns the length of each segment of the path.
func (p Path) SegmentLengths() []float64 {
	if len(p) < 2 {
		return nil
	}
	return lo.Map(p[1:], func(to r3.Vector, i int) float64 {
		return p[i].Distance(to)
	})
}

// String returns a human-readable version of the Path, suitable for debugging.
func (p Path) String() string {
	steps := lo.Map(p, func(v r3.Vector, _ int) string {
		return spatialmath.FormatR3Vector(v)
	})
	return strings.Join(steps, " -> ")
}
