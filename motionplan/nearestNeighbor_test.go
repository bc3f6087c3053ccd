package motionplan

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func TestNearAndNearest(t *testing.T) {
	tree := newVertexTree(r3.Vector{}, 0)
	a := tree.addVertex(r3.Vector{X: 5}, 0, 5)
	b := tree.addVertex(r3.Vector{X: 9}, a, 9)
	c := tree.addVertex(r3.Vector{X: 10}, b, 10)

	nearest, near := tree.nearAndNearest(r3.Vector{X: 10}, 5)
	test.That(t, nearest, test.ShouldEqual, c)
	test.That(t, near, test.ShouldHaveLength, 2)
	test.That(t, near, test.ShouldContain, b)
	test.That(t, near, test.ShouldContain, c)
	// a is exactly on the radius and so excluded
	test.That(t, near, test.ShouldNotContain, a)

	t.Run("empty near-set falls back to nearest", func(t *testing.T) {
		nearest, near := tree.nearAndNearest(r3.Vector{X: -100}, 5)
		test.That(t, nearest, test.ShouldEqual, 0)
		test.That(t, near, test.ShouldResemble, []int{0})
	})

	test.That(t, tree.nearest(r3.Vector{X: 6, Y: 1}), test.ShouldEqual, a)
}

func TestNearestDeepTree(t *testing.T) {
	// a long chain stays within the explicit stack
	tree := newVertexTree(r3.Vector{}, 0)
	parent := 0
	for i := 1; i <= 100000; i++ {
		parent = tree.addVertex(r3.Vector{X: float64(i)}, parent, float64(i))
	}
	test.That(t, tree.nearest(r3.Vector{X: 99999.4}), test.ShouldEqual, 99999)
}
