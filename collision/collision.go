// Package collision answers whether a spherical agent overlaps a set of static spherical obstacles, either at a
// point or along a straight-line sweep.
package collision

import (
	"github.com/golang/geo/r3"
)

// ConfigurationSpace is the collision oracle consulted by the planners. Implementations are immutable after
// construction, so a single instance may be queried from many goroutines.
type ConfigurationSpace interface {
	// CollidesAtPoint returns true if the agent centered at p overlaps any obstacle.
	CollidesAtPoint(p r3.Vector) bool
	// CollidesOnSegment returns true if the agent swept along the straight line from p1 to p2 overlaps any obstacle.
	CollidesOnSegment(p1, p2 r3.Vector) bool
}

// PlainConfigurationSpace checks every obstacle on every query.
type PlainConfigurationSpace struct {
	obstacles   []Obstacle
	agentRadius float64
}

// NewPlainConfigurationSpace returns a brute force ConfigurationSpace over the given obstacles.
func NewPlainConfigurationSpace(obstacles []Obstacle, agentRadius float64) (*PlainConfigurationSpace, error) {
	if err := validateObstacles(obstacles, agentRadius); err != nil {
		return nil, err
	}
	return &PlainConfigurationSpace{
		obstacles:   append([]Obstacle(nil), obstacles...),
		agentRadius: agentRadius,
	}, nil
}

// CollidesAtPoint returns true if the agent centered at p overlaps any obstacle.
func (cs *PlainConfigurationSpace) CollidesAtPoint(p r3.Vector) bool {
	for _, o := range cs.obstacles {
		if o.Sphere().ContainsPoint(p, cs.agentRadius) {
			return true
		}
	}
	return false
}

// CollidesOnSegment returns true if the agent swept from p1 to p2 overlaps any obstacle.
func (cs *PlainConfigurationSpace) CollidesOnSegment(p1, p2 r3.Vector) bool {
	for _, o := range cs.obstacles {
		if o.Sphere().IntersectsSegment(p1, p2, cs.agentRadius) {
			return true
		}
	}
	return false
}

// CollidingObstacles returns the indices of every obstacle the agent centered at p overlaps.
func (cs *PlainConfigurationSpace) CollidingObstacles(p r3.Vector) []int {
	var hits []int
	for i, o := range cs.obstacles {
		if o.Sphere().ContainsPoint(p, cs.agentRadius) {
			hits = append(hits, i)
		}
	}
	return hits
}
