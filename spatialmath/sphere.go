package spatialmath

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"go.viam.com/planningsim/utils"
)

// Sphere is a solid ball described by its center and radius.
type Sphere struct {
	Center r3.Vector `json:"center"`
	Radius float64   `json:"radius"`
}

// NewSphere instantiates a new Sphere, rejecting negative or non-finite dimensions.
func NewSphere(center r3.Vector, radius float64) (Sphere, error) {
	if radius < 0 || math.IsNaN(radius) || math.IsInf(radius, 0) {
		return Sphere{}, newBadSphereRadiusError(radius)
	}
	if !R3VectorIsFinite(center) {
		return Sphere{}, errors.Errorf("sphere center %v is not finite", center)
	}
	return Sphere{Center: center, Radius: radius}, nil
}

// String returns a human readable string that represents the sphere.
func (s Sphere) String() string {
	return fmt.Sprintf("Type: Sphere, Center: (%.2f, %.2f, %.2f), Radius: %.2f", s.Center.X, s.Center.Y, s.Center.Z, s.Radius)
}

// AlmostEqual compares the sphere with another sphere and checks if they are equivalent.
func (s Sphere) AlmostEqual(other Sphere) bool {
	return R3VectorAlmostEqual(s.Center, other.Center, 1e-8) && utils.Float64AlmostEqual(s.Radius, other.Radius, 1e-8)
}

// ContainsPoint returns whether p lies inside or on the sphere after its radius is grown by inflation.
// Inflating by an agent's radius turns a sphere-vs-sphere test into a point test.
func (s Sphere) ContainsPoint(p r3.Vector, inflation float64) bool {
	return p.Distance(s.Center) <= s.Radius+inflation
}

// IntersectsSegment returns whether the segment from p1 to p2 touches the sphere after its radius is grown by
// inflation.
func (s Sphere) IntersectsSegment(p1, p2 r3.Vector, inflation float64) bool {
	// a segment lying entirely inside the sphere has no root in [0, 1], so endpoints are checked first
	if s.ContainsPoint(p1, inflation) || s.ContainsPoint(p2, inflation) {
		return true
	}
	d := p2.Sub(p1)
	a := d.Dot(d)
	if a == 0 {
		return false
	}
	rel := p1.Sub(s.Center)
	r := s.Radius + inflation
	b := 2 * d.Dot(rel)
	c := rel.Dot(rel) - r*r
	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return false
	}
	sqrtDisc := math.Sqrt(discriminant)
	t1 := (-b + sqrtDisc) / (2 * a)
	t2 := (-b - sqrtDisc) / (2 * a)
	return (0 <= t1 && t1 <= 1) || (0 <= t2 && t2 <= 1)
}

// Encloses returns whether other lies entirely within s.
func (s Sphere) Encloses(other Sphere) bool {
	return s.Center.Distance(other.Center) <= s.Radius-other.Radius
}

// SpheresNested returns whether one of the two spheres lies entirely within the other.
func SpheresNested(a, b Sphere) bool {
	return a.Center.Distance(b.Center) <= math.Abs(a.Radius-b.Radius)
}

// EnclosingSphere returns the smallest sphere containing both a and b. The result is centered on the
// segment joining the two outermost tangent points along the axis through both centers.
func EnclosingSphere(a, b Sphere) Sphere {
	if a.Encloses(b) {
		return a
	}
	if b.Encloses(a) {
		return b
	}
	dir, ok := Direction(a.Center, b.Center)
	if !ok {
		// unreachable for non-nested spheres, kept so the result is never NaN
		return Sphere{Center: a.Center, Radius: math.Max(a.Radius, b.Radius)}
	}
	e1 := a.Center.Sub(dir.Mul(a.Radius))
	e2 := b.Center.Add(dir.Mul(b.Radius))
	center := e1.Add(e2).Mul(0.5)
	return Sphere{Center: center, Radius: e1.Distance(center)}
}

func newBadSphereRadiusError(radius float64) error {
	return errors.Errorf("sphere radius must be a finite, non-negative number, got %v", radius)
}
