package collision

import (
	"fmt"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"go.viam.com/planningsim/spatialmath"
	"go.viam.com/planningsim/utils"
)

// ErrInvalidObstacleSet is wrapped by every error returned when a configuration space cannot be built from the
// obstacles it was given.
var ErrInvalidObstacleSet = errors.New("invalid obstacle set")

// maxReportedNestedPairs bounds how many nested pairs a single construction error lists.
const maxReportedNestedPairs = 10

func newEmptyObstacleSetError() error {
	return errors.Wrap(ErrInvalidObstacleSet, "need at least one obstacle")
}

func newBadAgentRadiusError(radius float64) error {
	return errors.Wrapf(ErrInvalidObstacleSet, "agent radius must be a finite, non-negative number, got %v", radius)
}

func newBadObstacleError(idx int, err error) error {
	return errors.Wrapf(ErrInvalidObstacleSet, "obstacle %d: %v", idx, err)
}

func newNestedObstaclesError(i, j int, a, b Obstacle) error {
	return errors.Wrapf(ErrInvalidObstacleSet, "obstacle %d (%v) and obstacle %d (%v) are nested", i, a, j, b)
}

// validateObstacles checks the preconditions shared by every ConfigurationSpace implementation. All offending
// obstacles are reported together.
func validateObstacles(obstacles []Obstacle, agentRadius float64) error {
	if len(obstacles) == 0 {
		return newEmptyObstacleSetError()
	}
	var errs error
	if agentRadius < 0 || !utils.Float64IsFinite(agentRadius) {
		errs = multierr.Append(errs, newBadAgentRadiusError(agentRadius))
	}
	for i, o := range obstacles {
		if _, err := spatialmath.NewSphere(o.Center, o.Radius); err != nil {
			errs = multierr.Append(errs, newBadObstacleError(i, err))
		}
	}
	if errs != nil {
		return errs
	}

	nested := 0
	for i := 0; i < len(obstacles)-1; i++ {
		for j := i + 1; j < len(obstacles); j++ {
			if !spatialmath.SpheresNested(obstacles[i].Sphere(), obstacles[j].Sphere()) {
				continue
			}
			nested++
			if nested <= maxReportedNestedPairs {
				errs = multierr.Append(errs, newNestedObstaclesError(i, j, obstacles[i], obstacles[j]))
			}
		}
	}
	if nested > maxReportedNestedPairs {
		errs = multierr.Append(errs, errors.Wrap(ErrInvalidObstacleSet,
			fmt.Sprintf("%d more nested obstacle pairs not listed", nested-maxReportedNestedPairs)))
	}
	return errs
}
