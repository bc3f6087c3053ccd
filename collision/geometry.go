package collision

import (
	"github.com/golang/geo/r3"

	"go.viam.com/planningsim/spatialmath"
)

// Obstacle is a static spherical obstacle.
type Obstacle struct {
	Center r3.Vector `json:"center"`
	Radius float64   `json:"radius"`
	Label  string    `json:"label,omitempty"`
}

// NewObstacle instantiates an Obstacle, rejecting negative or non-finite dimensions.
func NewObstacle(center r3.Vector, radius float64, label string) (Obstacle, error) {
	if _, err := spatialmath.NewSphere(center, radius); err != nil {
		return Obstacle{}, err
	}
	return Obstacle{Center: center, Radius: radius, Label: label}, nil
}

// Sphere returns the geometry of the obstacle.
func (o Obstacle) Sphere() spatialmath.Sphere {
	return spatialmath.Sphere{Center: o.Center, Radius: o.Radius}
}

// String returns a human readable description of the obstacle.
func (o Obstacle) String() string {
	if o.Label == "" {
		return o.Sphere().String()
	}
	return o.Label + ": " + o.Sphere().String()
}
