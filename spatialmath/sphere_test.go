package spatialmath

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func TestNewSphere(t *testing.T) {
	s, err := NewSphere(r3.Vector{X: 1, Y: 2, Z: 3}, 4)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, s.AlmostEqual(Sphere{Center: r3.Vector{X: 1, Y: 2, Z: 3}, Radius: 4}), test.ShouldBeTrue)

	_, err = NewSphere(r3.Vector{}, -1)
	test.That(t, err, test.ShouldNotBeNil)
	_, err = NewSphere(r3.Vector{}, math.NaN())
	test.That(t, err, test.ShouldNotBeNil)
	_, err = NewSphere(r3.Vector{X: math.Inf(1)}, 1)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestSphereContainsPoint(t *testing.T) {
	s := Sphere{Center: r3.Vector{}, Radius: 5}
	test.That(t, s.ContainsPoint(r3.Vector{Z: 10}, 0), test.ShouldBeFalse)
	test.That(t, s.ContainsPoint(r3.Vector{Z: 3}, 0), test.ShouldBeTrue)
	test.That(t, s.ContainsPoint(r3.Vector{Z: 5}, 0), test.ShouldBeTrue)
	test.That(t, s.ContainsPoint(r3.Vector{Z: 10}, 5), test.ShouldBeTrue)
	test.That(t, s.ContainsPoint(r3.Vector{Z: 10}, 4.9), test.ShouldBeFalse)
}

func TestSphereIntersectsSegment(t *testing.T) {
	s := Sphere{Center: r3.Vector{}, Radius: 1}

	t.Run("segment passing through", func(t *testing.T) {
		test.That(t, s.IntersectsSegment(r3.Vector{X: -5}, r3.Vector{X: 5}, 0), test.ShouldBeTrue)
	})
	t.Run("segment ending before the sphere", func(t *testing.T) {
		test.That(t, s.IntersectsSegment(r3.Vector{X: -5}, r3.Vector{X: -2}, 0), test.ShouldBeFalse)
		test.That(t, s.IntersectsSegment(r3.Vector{X: -5}, r3.Vector{X: -2}, 1), test.ShouldBeTrue)
	})
	t.Run("segment missing to the side", func(t *testing.T) {
		test.That(t, s.IntersectsSegment(r3.Vector{X: -5, Y: 2}, r3.Vector{X: 5, Y: 2}, 0), test.ShouldBeFalse)
		test.That(t, s.IntersectsSegment(r3.Vector{X: -5, Y: 2}, r3.Vector{X: 5, Y: 2}, 1.5), test.ShouldBeTrue)
	})
	t.Run("segment fully inside", func(t *testing.T) {
		test.That(t, s.IntersectsSegment(r3.Vector{X: -0.1}, r3.Vector{X: 0.1}, 0), test.ShouldBeTrue)
	})
	t.Run("zero length segment", func(t *testing.T) {
		test.That(t, s.IntersectsSegment(r3.Vector{X: 3}, r3.Vector{X: 3}, 0), test.ShouldBeFalse)
		test.That(t, s.IntersectsSegment(r3.Vector{X: 0.5}, r3.Vector{X: 0.5}, 0), test.ShouldBeTrue)
	})
}

func TestSpheresNested(t *testing.T) {
	big := Sphere{Center: r3.Vector{}, Radius: 10}
	small := Sphere{Center: r3.Vector{}, Radius: 3}
	test.That(t, SpheresNested(big, small), test.ShouldBeTrue)
	test.That(t, SpheresNested(small, big), test.ShouldBeTrue)
	test.That(t, big.Encloses(small), test.ShouldBeTrue)
	test.That(t, small.Encloses(big), test.ShouldBeFalse)

	apart := Sphere{Center: r3.Vector{X: 20}, Radius: 3}
	test.That(t, SpheresNested(big, apart), test.ShouldBeFalse)

	// identical spheres count as nested
	test.That(t, SpheresNested(small, small), test.ShouldBeTrue)
}

func TestEnclosingSphere(t *testing.T) {
	a := Sphere{Center: r3.Vector{X: -10}, Radius: 1}
	b := Sphere{Center: r3.Vector{X: 10}, Radius: 3}
	parent := EnclosingSphere(a, b)
	test.That(t, parent.Radius, test.ShouldAlmostEqual, 12)
	test.That(t, R3VectorAlmostEqual(parent.Center, r3.Vector{X: 1}, 1e-9), test.ShouldBeTrue)
	test.That(t, parent.Center.Distance(a.Center), test.ShouldBeLessThanOrEqualTo, parent.Radius-a.Radius+1e-9)
	test.That(t, parent.Center.Distance(b.Center), test.ShouldBeLessThanOrEqualTo, parent.Radius-b.Radius+1e-9)

	t.Run("already enclosed", func(t *testing.T) {
		outer := Sphere{Center: r3.Vector{}, Radius: 10}
		inner := Sphere{Center: r3.Vector{Y: 1}, Radius: 1}
		test.That(t, EnclosingSphere(outer, inner), test.ShouldResemble, outer)
		test.That(t, EnclosingSphere(inner, outer), test.ShouldResemble, outer)
	})
}

func TestStepToward(t *testing.T) {
	from := r3.Vector{}
	to := r3.Vector{X: 3, Y: 4}

	p, ok := StepToward(from, to, 10)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, p, test.ShouldResemble, to)

	p, ok = StepToward(from, to, 2.5)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, R3VectorAlmostEqual(p, r3.Vector{X: 1.5, Y: 2}, 1e-9), test.ShouldBeTrue)

	p, ok = StepToward(to, to, 2.5)
	test.That(t, ok, test.ShouldBeFalse)
	test.That(t, p, test.ShouldResemble, to)
	test.That(t, R3VectorIsFinite(p), test.ShouldBeTrue)

	dir, ok := Direction(to, to)
	test.That(t, ok, test.ShouldBeFalse)
	test.That(t, dir, test.ShouldResemble, r3.Vector{})
}

func TestFormatR3Vector(t *testing.T) {
	test.That(t, FormatR3Vector(r3.Vector{X: 1, Y: -2.5, Z: 1. / 3}), test.ShouldEqual, "(1.000, -2.500, 0.333)")
}
