package motionplan

import (
	"math"

	"github.com/golang/geo/r3"
)

// nearest returns the index of the vertex closest to target, walking the whole tree depth first.
func (t *vertexTree) nearest(target r3.Vector) int {
	best, _ := t.nearAndNearest(target, 0)
	return best
}

// nearAndNearest walks the tree once and returns both the vertex closest to target and every vertex strictly
// closer than radius. The near-set is never empty: it falls back to the nearest vertex alone.
func (t *vertexTree) nearAndNearest(target r3.Vector, radius float64) (int, []int) {
	best := -1
	bestDist := math.Inf(1)
	var near []int

	stack := []int{0}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		dist := t.vertices[i].Position.Distance(target)
		if dist < bestDist {
			best = i
			bestDist = dist
		}
		if dist < radius {
			near = append(near, i)
		}
		stack = append(stack, t.vertices[i].Children...)
	}

	if len(near) == 0 {
		near = []int{best}
	}
	return best, near
}
