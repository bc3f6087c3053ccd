package motionplan

import (
	"math"
	"math/rand/v2"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"go.viam.com/planningsim/collision"
	"go.viam.com/planningsim/logging"
	"go.viam.com/planningsim/spatialmath"
)

// GrowthStats counts the outcomes of growth steps.
type GrowthStats struct {
	// Vertices attached to the tree
	Added int
	// Steps dropped because the new edge collided
	Rejected int
	// Steps dropped because the target coincided with the vertex it would grow from
	Discarded int
	// Vertices moved to a cheaper parent
	Rewired int
}

type growthOutcome int

const (
	grown growthOutcome = iota
	discarded
	rejected
)

func (s *GrowthStats) record(outcome growthOutcome) {
	switch outcome {
	case grown:
		s.Added++
	case discarded:
		s.Discarded++
	case rejected:
		s.Rejected++
	}
}

// RapidlyExploringRandomTree grows a single tree from the start position, attaching each new vertex to its
// nearest existing vertex. It does not track cost.
type RapidlyExploringRandomTree struct {
	*vertexTree
	finish   r3.Vector
	opts     *PlannerOptions
	randseed *rand.Rand
	logger   logging.Logger
	stats    GrowthStats
}

// NewRapidlyExploringRandomTree creates a RapidlyExploringRandomTree rooted at start. A nil opts uses
// NewBasicPlannerOptions.
func NewRapidlyExploringRandomTree(
	start, finish r3.Vector,
	opts *PlannerOptions,
	logger logging.Logger,
) (*RapidlyExploringRandomTree, error) {
	//nolint:gosec
	return NewRapidlyExploringRandomTreeWithSeed(start, finish, opts, rand.New(rand.NewPCG(1, 2)), logger)
}

// NewRapidlyExploringRandomTreeWithSeed creates a RapidlyExploringRandomTree whose goal biasing draws from a
// user specified random source.
func NewRapidlyExploringRandomTreeWithSeed(
	start, finish r3.Vector,
	opts *PlannerOptions,
	seed *rand.Rand,
	logger logging.Logger,
) (*RapidlyExploringRandomTree, error) {
	if opts == nil {
		opts = NewBasicPlannerOptions()
	}
	if err := validateEndpoints(start, finish, opts); err != nil {
		return nil, err
	}
	return &RapidlyExploringRandomTree{
		vertexTree: newCostlessVertexTree(start),
		finish:     finish,
		opts:       opts,
		randseed:   seed,
		logger:     logger,
	}, nil
}

func validateEndpoints(start, finish r3.Vector, opts *PlannerOptions) error {
	if !spatialmath.R3VectorIsFinite(start) {
		return newBadEndpointError("start", start)
	}
	if !spatialmath.R3VectorIsFinite(finish) {
		return newBadEndpointError("finish", finish)
	}
	return errors.Wrap(opts.Validate("planner"), "invalid planner options")
}

// goalBiased calls grow toward the finish with probability bias, then toward the sample, for every sample.
// Outcomes are tallied into stats.
func goalBiased(
	samples []r3.Vector,
	finish r3.Vector,
	bias float64,
	randseed *rand.Rand,
	stats *GrowthStats,
	logger logging.Logger,
	grow func(r3.Vector) growthOutcome,
) {
	for _, sample := range samples {
		if randseed.Float64() < bias {
			outcome := grow(finish)
			if outcome == rejected {
				logger.Debugw("goal biased step collided", "finish", finish)
			}
			stats.record(outcome)
		}
		stats.record(grow(sample))
	}
}

// GrowTree runs one goal biased growth step per sample against cs. Samples whose edge collides are dropped.
func (mp *RapidlyExploringRandomTree) GrowTree(samples []r3.Vector, cs collision.ConfigurationSpace) {
	grow := func(target r3.Vector) growthOutcome {
		return mp.grow(target, cs)
	}
	goalBiased(samples, mp.finish, mp.opts.GoalBias, mp.randseed, &mp.stats, mp.logger, grow)
}

func (mp *RapidlyExploringRandomTree) grow(target r3.Vector, cs collision.ConfigurationSpace) growthOutcome {
	nearest := mp.nearest(target)
	from := mp.vertices[nearest].Position
	next, ok := spatialmath.StepToward(from, target, mp.opts.GrowthLimit)
	if !ok {
		return discarded
	}
	if cs.CollidesOnSegment(from, next) {
		return rejected
	}
	mp.addVertex(next, nearest, math.NaN())
	return grown
}

// Search returns the path from the start to the vertex on the finish. If the finish has not been reached the
// path holds only the start, and ErrPathNotFound is returned alongside it.
func (mp *RapidlyExploringRandomTree) Search() (Path, error) {
	return search(mp.vertexTree, mp.finish, mp.logger)
}

func search(t *vertexTree, finish r3.Vector, logger logging.Logger) (Path, error) {
	idx, ok := t.find(finish)
	if !ok {
		logger.Debugw("path not found", "finish", finish, "vertices", t.Len())
		return Path{t.vertices[0].Position}, ErrPathNotFound
	}
	return t.pathTo(idx), nil
}

// Stats returns the growth step outcomes so far.
func (mp *RapidlyExploringRandomTree) Stats() GrowthStats {
	return mp.stats
}
