// Package motionplan grows sampling based planning trees (RRT and RRT*) through a sphere world and extracts
// paths from them.
package motionplan

import (
	"context"

	"github.com/golang/geo/r3"

	"go.viam.com/planningsim/collision"
	"go.viam.com/planningsim/logging"
)

// Planner is a planning tree grown from samples. Implementations are not safe for concurrent use.
type Planner interface {
	// GrowTree runs one growth step per sample against cs.
	GrowTree(samples []r3.Vector, cs collision.ConfigurationSpace)
	// Search returns the path to the finish, or ErrPathNotFound along with the single point path [start].
	Search() (Path, error)
	// Len returns the number of vertices in the tree.
	Len() int
	// Stats returns the growth step outcomes so far.
	Stats() GrowthStats
}

var (
	_ Planner = (*RapidlyExploringRandomTree)(nil)
	_ Planner = (*OptimalRapidlyExploringRandomTree)(nil)
)

// GrowUntil feeds batches of samples to planner until opts.PlanIter samples have been drawn, or, with
// opts.StopOnPath, until the finish is reached. It returns ctx.Err() if ctx is done first. Otherwise it returns
// the result of planner.Search.
func GrowUntil(
	ctx context.Context,
	planner Planner,
	sampler Sampler,
	cs collision.ConfigurationSpace,
	opts *PlannerOptions,
	logger logging.Logger,
) (Path, error) {
	// Number of iterations after which a log will be printed
	logIteration := int(float64(opts.PlanIter) * opts.LoggingInterval)
	nextLog := logIteration

	for drawn := 0; drawn < opts.PlanIter; {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		batch := min(opts.SampleBatch, opts.PlanIter-drawn)
		planner.GrowTree(drawSamples(sampler, batch), cs)
		drawn += batch

		path, err := planner.Search()
		if opts.StopOnPath && err == nil {
			logger.Debugw("path found", "samples", drawn, "vertices", planner.Len(), "cost", path.Cost())
			return path, nil
		}

		// log status of planner to periodically inform user
		if logIteration > 0 && drawn >= nextLog {
			nextLog += logIteration
			stats := planner.Stats()
			logger.Debugw("planning progress",
				"percent", 100*drawn/opts.PlanIter,
				"vertices", planner.Len(),
				"rejected", stats.Rejected,
				"rewired", stats.Rewired,
				"path_found", err == nil,
			)
		}
	}
	return planner.Search()
}
