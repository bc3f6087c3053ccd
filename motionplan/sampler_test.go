package motionplan

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func TestUniformSampler(t *testing.T) {
	lo, hi := r3.Vector{X: -1, Y: 2, Z: 5}, r3.Vector{X: 1, Y: 4, Z: 5}
	sampler, err := NewUniformSampler(lo, hi, rand.NewPCG(1, 2))
	test.That(t, err, test.ShouldBeNil)

	for _, s := range drawSamples(sampler, 1000) {
		test.That(t, s.X, test.ShouldBeBetweenOrEqual, lo.X, hi.X)
		test.That(t, s.Y, test.ShouldBeBetweenOrEqual, lo.Y, hi.Y)
		// degenerate axis
		test.That(t, s.Z, test.ShouldEqual, 5.)
	}

	t.Run("same seed same samples", func(t *testing.T) {
		a, err := NewUniformSampler(lo, hi, rand.NewPCG(3, 4))
		test.That(t, err, test.ShouldBeNil)
		b, err := NewUniformSampler(lo, hi, rand.NewPCG(3, 4))
		test.That(t, err, test.ShouldBeNil)
		test.That(t, drawSamples(a, 10), test.ShouldResemble, drawSamples(b, 10))
	})
}

func TestUniformSamplerInvalidBounds(t *testing.T) {
	_, err := NewUniformSampler(r3.Vector{X: 1}, r3.Vector{}, rand.NewPCG(1, 2))
	test.That(t, err, test.ShouldNotBeNil)
	_, err = NewUniformSampler(r3.Vector{}, r3.Vector{X: 1, Y: 1, Z: math.Inf(1)}, rand.NewPCG(1, 2))
	test.That(t, err, test.ShouldNotBeNil)
}
