package motionplan

import (
	"math/rand/v2"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat/distuv"

	"go.viam.com/planningsim/spatialmath"
)

// Sampler draws points for a planning tree to grow toward.
type Sampler interface {
	Sample() r3.Vector
}

// UniformSampler draws points uniformly from an axis-aligned box. Axes whose bounds coincide always return that
// bound, which lets planar scenes fix one coordinate.
type UniformSampler struct {
	axes [3]axisSampler
}

type axisSampler struct {
	constant float64
	dist     *distuv.Uniform
}

func (a axisSampler) sample() float64 {
	if a.dist == nil {
		return a.constant
	}
	return a.dist.Rand()
}

// NewUniformSampler creates a UniformSampler over the box spanned by lo and hi, drawing from src.
func NewUniformSampler(lo, hi r3.Vector, src rand.Source) (*UniformSampler, error) {
	if !spatialmath.R3VectorIsFinite(lo) || !spatialmath.R3VectorIsFinite(hi) {
		return nil, errors.Errorf("sampling bounds must be finite, got %v and %v", lo, hi)
	}
	if lo.X > hi.X || lo.Y > hi.Y || lo.Z > hi.Z {
		return nil, errors.Errorf("sampling bounds min %v exceeds max %v", lo, hi)
	}
	s := &UniformSampler{}
	for i, bounds := range [3][2]float64{{lo.X, hi.X}, {lo.Y, hi.Y}, {lo.Z, hi.Z}} {
		if bounds[0] == bounds[1] {
			s.axes[i] = axisSampler{constant: bounds[0]}
			continue
		}
		s.axes[i] = axisSampler{dist: &distuv.Uniform{Min: bounds[0], Max: bounds[1], Src: src}}
	}
	return s, nil
}

// Sample returns a single point.
func (s *UniformSampler) Sample() r3.Vector {
	return r3.Vector{X: s.axes[0].sample(), Y: s.axes[1].sample(), Z: s.axes[2].sample()}
}

// drawSamples draws n points from sampler.
func drawSamples(sampler Sampler, n int) []r3.Vector {
	samples := make([]r3.Vector, 0, n)
	for i := 0; i < n; i++ {
		samples = append(samples, sampler.Sample())
	}
	return samples
}
