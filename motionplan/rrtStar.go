package motionplan

import (
	"math"
	"math/rand/v2"

	"github.com/golang/geo/r3"

	"go.viam.com/planningsim/collision"
	"go.viam.com/planningsim/logging"
	"go.viam.com/planningsim/spatialmath"
)

// OptimalRapidlyExploringRandomTree grows a cost aware tree from the start position. Each new vertex is attached
// to the cheapest vertex of its near-set, and near vertices that become cheaper when routed through the new
// vertex are rewired to it.
type OptimalRapidlyExploringRandomTree struct {
	*vertexTree
	finish   r3.Vector
	opts     *PlannerOptions
	randseed *rand.Rand
	logger   logging.Logger
	stats    GrowthStats
}

// NewOptimalRapidlyExploringRandomTree creates an OptimalRapidlyExploringRandomTree rooted at start. A nil opts
// uses NewOptimalPlannerOptions.
func NewOptimalRapidlyExploringRandomTree(
	start, finish r3.Vector,
	opts *PlannerOptions,
	logger logging.Logger,
) (*OptimalRapidlyExploringRandomTree, error) {
	//nolint:gosec
	return NewOptimalRapidlyExploringRandomTreeWithSeed(start, finish, opts, rand.New(rand.NewPCG(1, 2)), logger)
}

// NewOptimalRapidlyExploringRandomTreeWithSeed creates an OptimalRapidlyExploringRandomTree whose goal biasing
// draws from a user specified random source.
func NewOptimalRapidlyExploringRandomTreeWithSeed(
	start, finish r3.Vector,
	opts *PlannerOptions,
	seed *rand.Rand,
	logger logging.Logger,
) (*OptimalRapidlyExploringRandomTree, error) {
	if opts == nil {
		opts = NewOptimalPlannerOptions()
	}
	if err := validateEndpoints(start, finish, opts); err != nil {
		return nil, err
	}
	return &OptimalRapidlyExploringRandomTree{
		vertexTree: newVertexTree(start, 0),
		finish:     finish,
		opts:       opts,
		randseed:   seed,
		logger:     logger,
	}, nil
}

// GrowTree runs one goal biased growth step per sample against cs. Samples whose edge collides are dropped.
func (mp *OptimalRapidlyExploringRandomTree) GrowTree(samples []r3.Vector, cs collision.ConfigurationSpace) {
	grow := func(target r3.Vector) growthOutcome {
		return mp.grow(target, cs)
	}
	goalBiased(samples, mp.finish, mp.opts.GoalBias, mp.randseed, &mp.stats, mp.logger, grow)
}

func (mp *OptimalRapidlyExploringRandomTree) grow(target r3.Vector, cs collision.ConfigurationSpace) growthOutcome {
	nearest, near := mp.nearAndNearest(target, mp.opts.NeighborRadius)
	if mp.vertices[nearest].Position == target {
		// already in the tree
		return discarded
	}

	parent := near[0]
	bestCost := math.Inf(1)
	for _, i := range near {
		v := mp.vertices[i]
		if cost := v.Cost + v.Position.Distance(target); cost < bestCost {
			parent = i
			bestCost = cost
		}
	}

	from := mp.vertices[parent].Position
	next, ok := spatialmath.StepToward(from, target, mp.opts.GrowthLimit)
	if !ok {
		return discarded
	}
	if cs.CollidesOnSegment(from, next) {
		return rejected
	}
	added := mp.addVertex(next, parent, mp.vertices[parent].Cost+from.Distance(next))
	mp.rewire(added, near, cs)
	return grown
}

// rewire reattaches every near vertex that is strictly cheaper to reach through added. A vertex is only moved
// when the new edge is collision free and within the growth limit, and never when it is an ancestor of added.
func (mp *OptimalRapidlyExploringRandomTree) rewire(added int, near []int, cs collision.ConfigurationSpace) {
	newVertex := mp.vertices[added]
	for _, i := range near {
		if i == newVertex.Parent {
			continue
		}
		neighbor := mp.vertices[i]
		dist := newVertex.Position.Distance(neighbor.Position)
		cost := newVertex.Cost + dist
		if cost >= neighbor.Cost || dist > mp.opts.GrowthLimit {
			continue
		}
		if mp.isAncestor(i, added) || cs.CollidesOnSegment(newVertex.Position, neighbor.Position) {
			continue
		}
		mp.reparent(i, added)
		mp.vertices[i].Cost = cost
		mp.stats.Rewired++
		if mp.opts.CascadeRewire {
			mp.propagateCost(i)
		}
	}
}

// Search returns the path from the start to the vertex on the finish. If the finish has not been reached the
// path holds only the start, and ErrPathNotFound is returned alongside it.
func (mp *OptimalRapidlyExploringRandomTree) Search() (Path, error) {
	return search(mp.vertexTree, mp.finish, mp.logger)
}

// Stats returns the growth step outcomes so far.
func (mp *OptimalRapidlyExploringRandomTree) Stats() GrowthStats {
	return mp.stats
}
